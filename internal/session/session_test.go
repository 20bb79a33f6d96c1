package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

func TestMemoryStore_LoadUnknown(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	data, err := store.Load(context.Background(), "never-seen")
	require.NoError(t, err)
	assert.Nil(t, data.User)
	assert.Nil(t, data.Pass)
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	err := store.Save(context.Background(), "sid-1", &Data{
		User: &models.User{ID: "42", Name: "Tester"},
	})
	require.NoError(t, err)

	data, err := store.Load(context.Background(), "sid-1")
	require.NoError(t, err)
	require.NotNil(t, data.User)
	assert.Equal(t, "42", data.User.ID)
}

func TestMemoryStore_Expiry(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return current }

	require.NoError(t, store.Save(context.Background(), "sid-1", &Data{
		User: &models.User{ID: "42"},
	}))

	current = current.Add(2 * time.Hour)
	data, err := store.Load(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Nil(t, data.User)
}

func TestSession_WriteThrough(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	sess := New("sid-1", &Data{}, store)
	assert.Nil(t, sess.User())

	require.NoError(t, sess.SetUser(ctx, models.User{ID: "42", Name: "Tester"}))

	// Мутация сразу видна новой загрузке из хранилища
	data, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, data.User)
	assert.Equal(t, "Tester", data.User.Name)
}

func TestSession_SetPassOverwrites(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	sess := New("sid-1", &Data{}, store)

	first := models.Pass{
		Status:  models.PassStatusActive,
		PlanID:  models.PlanWeek7D,
		StartAt: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sess.SetPass(ctx, first))

	second := models.Pass{
		Status:  models.PassStatusActive,
		PlanID:  models.PlanDays3D,
		StartAt: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2025, 2, 4, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, sess.SetPass(ctx, second))

	data, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.NotNil(t, data.Pass)
	assert.Equal(t, models.PlanDays3D, data.Pass.PlanID)
	assert.Equal(t, second.StartAt, data.Pass.StartAt)
}

func TestSession_ClearRemovesUserAndPass(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()
	sess := New("sid-1", &Data{}, store)

	require.NoError(t, sess.SetUser(ctx, models.User{ID: "42"}))
	require.NoError(t, sess.SetPass(ctx, models.Pass{Status: models.PassStatusActive, PlanID: models.PlanWeek7D}))

	require.NoError(t, sess.Clear(ctx))
	assert.Nil(t, sess.User())
	assert.Nil(t, sess.Pass())

	data, err := store.Load(ctx, "sid-1")
	require.NoError(t, err)
	assert.Nil(t, data.User)
	assert.Nil(t, data.Pass)
}

func TestNewSID_Unique(t *testing.T) {
	assert.NotEqual(t, NewSID(), NewSID())
}
