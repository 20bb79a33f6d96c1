package kakaostart

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bpass-backend/internal/config"
	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// MockDemoService реализует интерфейс DemoService
type MockDemoService struct {
	mock.Mock
}

func (m *MockDemoService) DemoLogin(ctx context.Context, sess *session.Session) (*models.User, error) {
	args := m.Called(ctx, sess)
	if u := args.Get(0); u != nil {
		return u.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

// stubOAuth возвращает фиксированный адрес страницы согласия.
type stubOAuth struct{ url string }

func (s stubOAuth) AuthorizeURL() string { return s.url }

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func newRequestWithSession() *http.Request {
	store := session.NewMemoryStore(time.Hour)
	sess := session.New(session.NewSID(), &session.Data{}, store)
	req := httptest.NewRequest(http.MethodGet, "/auth/kakao/start", nil)
	return req.WithContext(context.WithValue(req.Context(), middlewarectx.SessionKey, sess))
}

func TestStart_KakaoEnabledRedirectsToConsent(t *testing.T) {
	authorize := "https://kauth.kakao.com/oauth/authorize?client_id=key&response_type=code"
	handler := New(newNoopLogger(), config.Flags{KakaoLogin: true}, stubOAuth{url: authorize}, nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequestWithSession())

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, authorize, rr.Header().Get("Location"))
}

func TestStart_DemoModeLogsInImmediately(t *testing.T) {
	demo := new(MockDemoService)
	demo.On("DemoLogin", mock.Anything, mock.Anything).
		Return(&models.User{ID: "demo_user", Name: "Demo User"}, nil).Once()

	handler := New(newNoopLogger(), config.Flags{DemoLogin: true}, nil, demo)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequestWithSession())

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/?login=1", rr.Header().Get("Location"))
	demo.AssertExpectations(t)
}

func TestStart_DemoLoginFailure(t *testing.T) {
	demo := new(MockDemoService)
	demo.On("DemoLogin", mock.Anything, mock.Anything).
		Return(nil, errors.New("store unavailable")).Once()

	handler := New(newNoopLogger(), config.Flags{DemoLogin: true}, nil, demo)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequestWithSession())

	require.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/?login=0", rr.Header().Get("Location"))
}

func TestStart_NoKeyNoDemoMode(t *testing.T) {
	handler := New(newNoopLogger(), config.Flags{}, nil, nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, newRequestWithSession())

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.True(t, strings.Contains(rr.Body.String(), "Kakao REST API Key not configured"))
}
