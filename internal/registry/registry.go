// Package registry реализует реестр заказов в памяти процесса.
//
// Реестр принадлежит composition root и внедряется в сервисы создания
// и подтверждения заказа. Записи живут до истечения TTL: фоновая уборка
// не даёт реестру расти бесконечно.
package registry

import (
	"context"
	"sync"
	"time"

	"github.com/magabrotheeeer/bpass-backend/internal/errs"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// Registry — потокобезопасное отображение orderId -> заказ.
type Registry struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
	now     func() time.Time
}

type entry struct {
	order     models.Order
	expiresAt time.Time
}

// New создает реестр с заданным TTL записей. TTL <= 0 отключает уборку:
// записи живут до конца процесса.
func New(ttl time.Duration) *Registry {
	return &Registry{
		ttl:     ttl,
		entries: make(map[string]entry),
		now:     time.Now,
	}
}

// Put вставляет заказ. Повторная вставка того же id — ошибка:
// молчаливая перезапись скрывала бы коллизию генератора.
func (r *Registry) Put(order models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[order.ID]; ok {
		return errs.ErrDuplicateOrderID
	}
	e := entry{order: order}
	if r.ttl > 0 {
		e.expiresAt = r.now().Add(r.ttl)
	}
	r.entries[order.ID] = e
	return nil
}

// Get возвращает заказ по id. Просроченные записи считаются отсутствующими.
func (r *Registry) Get(orderID string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entries[orderID]
	if !ok {
		return nil, errs.ErrOrderNotFound
	}
	if !e.expiresAt.IsZero() && r.now().After(e.expiresAt) {
		return nil, errs.ErrOrderNotFound
	}
	order := e.order
	return &order, nil
}

// Len возвращает число живых записей.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// RunEviction раз в interval удаляет просроченные записи, пока контекст жив.
// При TTL <= 0 возвращается сразу.
func (r *Registry) RunEviction(ctx context.Context, interval time.Duration) {
	if r.ttl <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.evict()
		}
	}
}

func (r *Registry) evict() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for id, e := range r.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(r.entries, id)
		}
	}
}
