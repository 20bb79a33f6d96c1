package models

import "time"

// PassStatusActive — единственный статус, который выставляет активация.
const PassStatusActive = "ACTIVE"

// Pass представляет временной пропуск, выданный после оплаты заказа.
// Создаётся только активацией пропуска и всегда перезаписывается целиком:
// повторная активация сбрасывает окно действия, а не продлевает его.
type Pass struct {
	Status  string    `json:"status"`   // Всегда "ACTIVE" после активации
	PlanID  string    `json:"plan_id"`  // Тариф, по которому выдан пропуск
	StartAt time.Time `json:"start_at"` // Начало действия
	EndAt   time.Time `json:"end_at"`   // Окончание действия
}

// IsActive сообщает, действует ли пропуск в момент t.
func (p Pass) IsActive(t time.Time) bool {
	return p.Status == PassStatusActive && !t.Before(p.StartAt) && t.Before(p.EndAt)
}
