// Package kakaocallback реализует HTTP-обработчик callback-а Kakao OAuth.
//
// Любой сбой обмена — редирект login=0; сессия при этом не трогается.
package kakaocallback

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/bpass-backend/internal/config"
	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// Адреса редиректов терминальных исходов.
const (
	RedirectLoggedIn = "/?login=1"
	RedirectFailed   = "/?login=0"
)

// Service описывает интерфейс входа через OAuth.
type Service interface {
	Login(ctx context.Context, sess *session.Session, code string) (*models.User, error)
}

// Handler обрабатывает callback Kakao OAuth.
type Handler struct {
	log     *slog.Logger
	flags   config.Flags
	service Service
}

// New создает новый Handler.
func New(log *slog.Logger, flags config.Flags, service Service) *Handler {
	return &Handler{
		log:     log,
		flags:   flags,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Callback Kakao OAuth
// @Param code query string true "Код авторизации"
// @Success 302 "Редирект на /?login=1 либо /?login=0"
// @Router /auth/kakao/callback [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.kakaocallback"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if !h.flags.KakaoLogin {
		http.Redirect(w, r, RedirectFailed, http.StatusFound)
		return
	}

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, RedirectFailed, http.StatusFound)
		return
	}

	user, err := h.service.Login(r.Context(), sess, r.URL.Query().Get("code"))
	if err != nil {
		log.Error("kakao login failed", sl.Err(err))
		http.Redirect(w, r, RedirectFailed, http.StatusFound)
		return
	}

	log.Info("kakao login succeeded", slog.String("user_id", user.ID))
	http.Redirect(w, r, RedirectLoggedIn, http.StatusFound)
}
