package generate_slots

import "errors"

var (
	// ErrArrangementNotFound возвращается, когда привязка не найдена
	ErrArrangementNotFound = errors.New("generate_slots: arrangement not found")

	// ErrServiceNotFound возвращается, когда услуга привязки не найдена
	ErrServiceNotFound = errors.New("generate_slots: service not found")

	// ErrTemplateNotFound возвращается, когда шаблон привязки не найден
	ErrTemplateNotFound = errors.New("generate_slots: template not found")

	// ErrAccessDenied возвращается, когда услуга принадлежит другому провайдеру
	ErrAccessDenied = errors.New("generate_slots: access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("generate_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_slots: internal error")
)
