package arrangements

import "errors"

var (
	// ErrArrangementNotFound возвращается, когда привязка не найдена
	ErrArrangementNotFound = errors.New("arrangement not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("service not found")

	// ErrTemplateNotFound возвращается, когда шаблон не найден
	ErrTemplateNotFound = errors.New("template not found")

	// ErrAccessDenied возвращается, когда услуга или шаблон принадлежат другому провайдеру
	ErrAccessDenied = errors.New("access denied")

	// ErrArrangementExists возвращается, когда индекс привязки у услуги уже занят
	ErrArrangementExists = errors.New("arrangement with this index already exists")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
