package models

import "time"

// Plan описывает тарифное предложение: фиксированная цена и срок действия.
// Планы — статическая конфигурация, в БД не хранятся.
type Plan struct {
	ID     string `json:"id"`     // Уникальный идентификатор плана
	Name   string `json:"name"`   // Отображаемое название заказа
	Days   int    `json:"days"`   // Срок действия пропуска в днях
	Amount int    `json:"amount"` // Цена в целых единицах валюты (KRW)
}

// Duration возвращает срок действия пропуска как time.Duration.
func (p Plan) Duration() time.Duration {
	return time.Duration(p.Days) * 24 * time.Hour
}

// Идентификаторы планов каталога.
const (
	PlanWeek7D = "living_week_7d"
	PlanDays3D = "living_days_3d"
)

// Catalog — набор доступных планов с планом по умолчанию.
type Catalog struct {
	plans     map[string]Plan
	defaultID string
}

// NewCatalog создает каталог из перечисленных планов.
// Первый план считается планом по умолчанию.
func NewCatalog(plans ...Plan) *Catalog {
	c := &Catalog{plans: make(map[string]Plan, len(plans))}
	for i, p := range plans {
		if i == 0 {
			c.defaultID = p.ID
		}
		c.plans[p.ID] = p
	}
	return c
}

// DefaultCatalog возвращает каталог продукта: недельный и трёхдневный пропуск.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		Plan{ID: PlanWeek7D, Name: "B·PASS Living Week (7일)", Days: 7, Amount: 99000},
		Plan{ID: PlanDays3D, Name: "B·PASS Living Days (3일)", Days: 3, Amount: 49000},
	)
}

// Resolve возвращает план по идентификатору. Пустой id означает план по умолчанию.
func (c *Catalog) Resolve(id string) (Plan, bool) {
	if id == "" {
		id = c.defaultID
	}
	p, ok := c.plans[id]
	return p, ok
}

// Default возвращает план по умолчанию.
func (c *Catalog) Default() Plan {
	return c.plans[c.defaultID]
}
