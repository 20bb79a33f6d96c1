package models

import "time"

// Order представляет серверную запись о намерении покупки.
// Создаётся до редиректа на платёжную страницу, читается ровно один раз
// при подтверждении оплаты и никогда не обновляется.
type Order struct {
	ID        string    // Уникальный идентификатор заказа
	PlanID    string    // План, на который оформлен заказ
	Amount    int       // Сумма заказа, зафиксированная при создании
	OrderName string    // Отображаемое название заказа
	CreatedAt time.Time // Время создания
	UserID    string    // Владелец заказа
}
