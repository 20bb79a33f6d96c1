package me

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/http/response"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func requestWithSession(t *testing.T, data *session.Data) *http.Request {
	t.Helper()
	store := session.NewMemoryStore(time.Hour)
	sess := session.New(session.NewSID(), data, store)
	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	ctx := context.WithValue(req.Context(), middlewarectx.SessionKey, sess)
	return req.WithContext(ctx)
}

func TestMe_LoggedIn(t *testing.T) {
	handler := New(newNoopLogger(), models.DefaultCatalog(), "test_ck_widget")

	req := requestWithSession(t, &session.Data{
		User: &models.User{ID: "42", Name: "Tester"},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.User)
	assert.Equal(t, "42", resp.User.ID)
	assert.Nil(t, resp.Pass)
	assert.Equal(t, models.PlanWeek7D, resp.Plan.ID)
	require.NotNil(t, resp.TossClientKey)
	assert.Equal(t, "test_ck_widget", *resp.TossClientKey)
}

func TestMe_WithActivePass(t *testing.T) {
	handler := New(newNoopLogger(), models.DefaultCatalog(), "")

	start := time.Now()
	req := requestWithSession(t, &session.Data{
		User: &models.User{ID: "42"},
		Pass: &models.Pass{
			Status:  models.PassStatusActive,
			PlanID:  models.PlanWeek7D,
			StartAt: start,
			EndAt:   start.Add(7 * 24 * time.Hour),
		},
	})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	var resp MeResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.NotNil(t, resp.Pass)
	assert.Equal(t, models.PassStatusActive, resp.Pass.Status)
	// Не сконфигурированный виджет отдается как null, а не пустая строка
	assert.Nil(t, resp.TossClientKey)
}

func TestMe_NotLoggedIn(t *testing.T) {
	handler := New(newNoopLogger(), models.DefaultCatalog(), "test_ck_widget")

	req := requestWithSession(t, &session.Data{})
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnauthorized, rr.Code)
	var resp response.Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, response.CodeNotLoggedIn, resp.Error)
}

func TestMe_NoSessionInContext(t *testing.T) {
	handler := New(newNoopLogger(), models.DefaultCatalog(), "")

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
