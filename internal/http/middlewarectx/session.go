// Package middlewarectx содержит HTTP middleware сервиса.
//
// SessionMiddleware разбирает подписанную cookie, загружает данные сессии
// из хранилища и кладёт значение сессии в контекст запроса. Новому клиенту
// сессия заводится на месте, с выставлением cookie.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/bpass-backend/internal/lib/sessiontoken"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

// SessionKey — ключ значения сессии в контексте.
const SessionKey Key = "session"

// CookieName — имя сессионной cookie.
const CookieName = "bpass_sid"

// SessionMiddleware возвращает middleware, обеспечивающий каждому запросу
// загруженную сессию в контексте.
func SessionMiddleware(store session.Store, maker sessiontoken.Maker, ttl time.Duration, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Session"
			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			sid := ""
			if cookie, err := r.Cookie(CookieName); err == nil {
				if claims, err := maker.Parse(cookie.Value); err == nil {
					sid = claims.SessionID
				}
			}

			if sid == "" {
				sid = session.NewSID()
				token, err := maker.Generate(sid)
				if err != nil {
					log.Error("failed to sign session cookie", sl.Err(err))
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				http.SetCookie(w, &http.Cookie{
					Name:     CookieName,
					Value:    token,
					Path:     "/",
					MaxAge:   int(ttl.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}

			data, err := store.Load(r.Context(), sid)
			if err != nil {
				// Недоступное хранилище не валит запрос: клиент получает
				// пустую сессию и сценарии для неавторизованных.
				log.Error("failed to load session", sl.Err(err))
				data = nil
			}

			sess := session.New(sid, data, store)
			ctx := context.WithValue(r.Context(), SessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext возвращает сессию запроса или nil.
func SessionFromContext(ctx context.Context) *session.Session {
	sess, _ := ctx.Value(SessionKey).(*session.Session)
	return sess
}
