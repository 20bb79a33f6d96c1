package paymentprovider

// ConfirmPaymentRequest — тело запроса подтверждения оплаты.
// Amount всегда берётся из серверной записи заказа, а не из параметров
// редиректа: так клиент не может занизить сумму.
type ConfirmPaymentRequest struct {
	PaymentKey string `json:"paymentKey"`
	OrderID    string `json:"orderId"`
	Amount     int    `json:"amount"`
}

// ConfirmPaymentResponse — интересующая нас часть ответа Toss.
type ConfirmPaymentResponse struct {
	PaymentKey  string `json:"paymentKey"`
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	TotalAmount int    `json:"totalAmount"`
	ApprovedAt  string `json:"approvedAt"`
}
