package upsert_template

import "errors"

var (
	// ErrTemplateNotFound возвращается при обновлении несуществующего шаблона
	ErrTemplateNotFound = errors.New("upsert_template: template not found")

	// ErrAccessDenied возвращается, когда шаблон принадлежит другому провайдеру
	ErrAccessDenied = errors.New("upsert_template: access denied")

	// ErrInvalidInput возвращается при некорректном дереве шаблона
	ErrInvalidInput = errors.New("upsert_template: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("upsert_template: internal error")
)
