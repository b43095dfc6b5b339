package update_appointment_status

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда запись не найдена
	ErrAppointmentNotFound = errors.New("update_appointment_status: appointment not found")

	// ErrAccessDenied возвращается, когда услуга записи принадлежит другому провайдеру
	ErrAccessDenied = errors.New("update_appointment_status: access denied")

	// ErrInvalidTransition возвращается для перехода, запрещённого машиной состояний
	ErrInvalidTransition = errors.New("update_appointment_status: invalid status transition")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_appointment_status: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_appointment_status: internal error")
)
