package registry

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bpass-backend/internal/errs"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

func testOrder(id string) models.Order {
	return models.Order{
		ID:        id,
		PlanID:    models.PlanWeek7D,
		Amount:    99000,
		OrderName: "B·PASS Living Week (7일)",
		CreatedAt: time.Now(),
		UserID:    "user-1",
	}
}

func TestRegistry_PutGet(t *testing.T) {
	r := New(time.Hour)

	require.NoError(t, r.Put(testOrder("order_1")))

	got, err := r.Get("order_1")
	require.NoError(t, err)
	assert.Equal(t, "order_1", got.ID)
	assert.Equal(t, 99000, got.Amount)
}

func TestRegistry_PutDuplicate(t *testing.T) {
	r := New(time.Hour)

	require.NoError(t, r.Put(testOrder("order_1")))
	err := r.Put(testOrder("order_1"))
	assert.True(t, errors.Is(err, errs.ErrDuplicateOrderID))
}

func TestRegistry_GetUnknown(t *testing.T) {
	r := New(time.Hour)

	_, err := r.Get("order_never_created")
	assert.True(t, errors.Is(err, errs.ErrOrderNotFound))
}

func TestRegistry_TTLExpiry(t *testing.T) {
	r := New(10 * time.Minute)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	require.NoError(t, r.Put(testOrder("order_1")))

	// До истечения TTL заказ виден
	current = current.Add(9 * time.Minute)
	_, err := r.Get("order_1")
	require.NoError(t, err)

	// После истечения - считается отсутствующим
	current = current.Add(2 * time.Minute)
	_, err = r.Get("order_1")
	assert.True(t, errors.Is(err, errs.ErrOrderNotFound))
}

func TestRegistry_Evict(t *testing.T) {
	r := New(10 * time.Minute)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	require.NoError(t, r.Put(testOrder("order_old")))
	current = current.Add(5 * time.Minute)
	require.NoError(t, r.Put(testOrder("order_new")))

	current = current.Add(6 * time.Minute)
	r.evict()

	assert.Equal(t, 1, r.Len())
	_, err := r.Get("order_new")
	assert.NoError(t, err)
}

func TestRegistry_NoTTLKeepsForever(t *testing.T) {
	r := New(0)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return current }

	require.NoError(t, r.Put(testOrder("order_1")))

	current = current.Add(1000 * time.Hour)
	r.evict()

	_, err := r.Get("order_1")
	assert.NoError(t, err)
}
