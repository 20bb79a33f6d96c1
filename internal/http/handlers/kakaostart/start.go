// Package kakaostart реализует HTTP-обработчик начала входа через Kakao.
//
// При включённом Kakao OAuth клиент редиректится на страницу согласия.
// При явно включённом demo-режиме сессия заводится на месте без OAuth.
// Иначе — 500: ключ обязателен, но не сконфигурирован.
package kakaostart

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

// OAuthClient описывает построение адреса страницы согласия.
type OAuthClient interface {
	AuthorizeURL() string
}

// DemoService описывает демо-вход без OAuth.
type DemoService interface {
	DemoLogin(ctx context.Context, sess *session.Session) (*models.User, error)
}

// Handler обрабатывает начало входа.
type Handler struct {
	log   *slog.Logger
	flags config.Flags
	oauth OAuthClient // nil, если Kakao выключен
	demo  DemoService
}

// New создает новый Handler.
func New(log *slog.Logger, flags config.Flags, oauth OAuthClient, demo DemoService) *Handler {
	return &Handler{
		log:   log,
		flags: flags,
		oauth: oauth,
		demo:  demo,
	}
}

// ServeHTTP godoc
// @Summary Начало входа через Kakao
// @Success 302 "Редирект на страницу согласия Kakao либо /?login=1 в demo-режиме"
// @Failure 500 "Kakao REST API key не сконфигурирован"
// @Router /auth/kakao/start [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.kakaostart"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	if h.flags.KakaoLogin {
		http.Redirect(w, r, h.oauth.AuthorizeURL(), http.StatusFound)
		return
	}

	if h.flags.DemoLogin {
		sess := middlewarectx.SessionFromContext(r.Context())
		if sess == nil {
			http.Redirect(w, r, "/?login=0", http.StatusFound)
			return
		}
		if _, err := h.demo.DemoLogin(r.Context(), sess); err != nil {
			log.Error("demo login failed", sl.Err(err))
			http.Redirect(w, r, "/?login=0", http.StatusFound)
			return
		}
		http.Redirect(w, r, "/?login=1", http.StatusFound)
		return
	}

	log.Error("kakao rest api key not configured")
	http.Error(w, "Kakao REST API Key not configured", http.StatusInternalServerError)
}
