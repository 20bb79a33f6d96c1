// Package orderid генерирует идентификаторы заказов.
//
// Формат повторяет принятый на фронтовой интеграции с Toss:
// order_<unix-миллисекунды>_<случайный суффикс>. Генератор вынесен в
// интерфейс, чтобы его можно было заменить (например, на криптостойкий)
// одной точкой подключения.
package orderid

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator выдаёт новые идентификаторы заказов.
type Generator interface {
	NewID() string
}

// TimestampGenerator — генератор по умолчанию: метка времени плюс
// случайный суффикс из uuid. Суффикс защищает от коллизий в пределах
// одной миллисекунды, но не претендует на криптографическую
// непредсказуемость.
type TimestampGenerator struct {
	now func() time.Time
}

// New создает генератор с системными часами.
func New() *TimestampGenerator {
	return &TimestampGenerator{now: time.Now}
}

// NewWithClock создает генератор с переданными часами.
func NewWithClock(now func() time.Time) *TimestampGenerator {
	return &TimestampGenerator{now: now}
}

// NewID возвращает свежий идентификатор заказа.
func (g *TimestampGenerator) NewID() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
	return fmt.Sprintf("order_%d_%s", g.now().UnixMilli(), suffix)
}
