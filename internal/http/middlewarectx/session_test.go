package middlewarectx

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/bpass-backend/internal/lib/sessiontoken"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessionMiddleware_NewClientGetsCookie(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	maker := sessiontoken.NewMaker("test_secret", time.Hour)

	var gotSess *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSess = SessionFromContext(r.Context())
	})
	mw := SessionMiddleware(store, maker, time.Hour, newNoopLogger())(next)

	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/me", nil))

	require.NotNil(t, gotSess)
	assert.Nil(t, gotSess.User())

	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	cookie := cookies[0]
	assert.Equal(t, CookieName, cookie.Name)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	// Cookie содержит подписанный токен с тем же sid
	claims, err := maker.Parse(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, gotSess.ID(), claims.SessionID)
}

func TestSessionMiddleware_ReturningClientKeepsSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	maker := sessiontoken.NewMaker("test_secret", time.Hour)

	sid := session.NewSID()
	require.NoError(t, store.Save(context.Background(), sid, &session.Data{
		User: &models.User{ID: "42", Name: "Tester"},
	}))
	token, err := maker.Generate(sid)
	require.NoError(t, err)

	var gotSess *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSess = SessionFromContext(r.Context())
	})
	mw := SessionMiddleware(store, maker, time.Hour, newNoopLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	require.NotNil(t, gotSess)
	assert.Equal(t, sid, gotSess.ID())
	require.NotNil(t, gotSess.User())
	assert.Equal(t, "42", gotSess.User().ID)
	// Повторная cookie не выставляется
	assert.Empty(t, rr.Result().Cookies())
}

func TestSessionMiddleware_TamperedCookieGetsFreshSession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	maker := sessiontoken.NewMaker("test_secret", time.Hour)

	// Токен подписан чужим ключом: сессия заводится заново
	foreign := sessiontoken.NewMaker("other_secret", time.Hour)
	token, err := foreign.Generate(session.NewSID())
	require.NoError(t, err)

	var gotSess *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSess = SessionFromContext(r.Context())
	})
	mw := SessionMiddleware(store, maker, time.Hour, newNoopLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rr := httptest.NewRecorder()
	mw.ServeHTTP(rr, req)

	require.NotNil(t, gotSess)
	assert.Nil(t, gotSess.User())
	require.Len(t, rr.Result().Cookies(), 1)
}

func TestSessionMiddleware_UnknownSIDGetsEmptySession(t *testing.T) {
	store := session.NewMemoryStore(time.Hour)
	maker := sessiontoken.NewMaker("test_secret", time.Hour)

	sid := session.NewSID()
	token, err := maker.Generate(sid)
	require.NoError(t, err)

	var gotSess *session.Session
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSess = SessionFromContext(r.Context())
	})
	mw := SessionMiddleware(store, maker, time.Hour, newNoopLogger())(next)

	req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	mw.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, gotSess)
	assert.Equal(t, sid, gotSess.ID())
	assert.Nil(t, gotSess.User())
}

func TestSessionFromContext_Empty(t *testing.T) {
	assert.Nil(t, SessionFromContext(context.Background()))
}
