package billingservice

// BillStatus статус счёта в BillingService
type BillStatus string

const (
	BillStatusPaid      BillStatus = "paid"
	BillStatusCancelled BillStatus = "cancelled"
)

// UpdateBillStatusRequest тело запроса на смену статуса счёта
type UpdateBillStatusRequest struct {
	Status BillStatus `json:"status"`
}

// ErrorResponse модель ошибки от BillingService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
