package billingservice

import "errors"

var (
	// ErrBillNotFound возвращается, когда у записи нет счёта
	ErrBillNotFound = errors.New("billingservice client: bill not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("billingservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("billingservice client: invalid response")

	// ErrServiceDegraded возвращается при применении graceful degradation
	// Указывает, что BillingService недоступен и счёт останется в прежнем статусе
	ErrServiceDegraded = errors.New("billingservice unavailable: graceful degradation applied")
)
