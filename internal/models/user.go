// Package models содержит доменные структуры сервиса продажи пропусков:
// пользователь сессии, пропуск, тарифный план и заказ.
package models

// User представляет пользователя, вошедшего через Kakao OAuth.
// Живёт в сессии; durable-запись в БД ведётся опционально.
type User struct {
	ID   string `json:"id"`   // Идентификатор пользователя у провайдера (Kakao id)
	Name string `json:"name"` // Отображаемое имя (nickname)
}
