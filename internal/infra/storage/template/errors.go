package template

import "errors"

var (
	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("template.repository: template not found")

	// ErrDayNotFound возвращается, когда день шаблона не найден
	ErrDayNotFound = errors.New("template.repository: day not found")

	// ErrDuplicateDayIndex возвращается при нарушении уникальности (template_id, day_index)
	ErrDuplicateDayIndex = errors.New("template.repository: duplicate day index")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("template.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("template.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("template.repository: failed to scan row")
)
