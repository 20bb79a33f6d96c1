// Package me реализует HTTP-обработчик профиля текущей сессии.
//
// Handler возвращает пользователя, его пропуск (если куплен), план по
// умолчанию и клиентский ключ Toss для платёжного виджета. Без
// залогиненного пользователя отвечает 401 с кодом NOT_LOGGED_IN.
package me

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/http/response"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// Handler обрабатывает запросы профиля сессии.
type Handler struct {
	log           *slog.Logger // Логгер для записи информации и ошибок
	plans         *models.Catalog
	tossClientKey string // Пустая строка, если виджет Toss не сконфигурирован
}

// New создает новый Handler.
func New(log *slog.Logger, plans *models.Catalog, tossClientKey string) *Handler {
	return &Handler{
		log:           log,
		plans:         plans,
		tossClientKey: tossClientKey,
	}
}

// MeResponse — ответ эндпоинта /api/me.
type MeResponse struct {
	User          *models.User `json:"user"`
	Pass          *models.Pass `json:"pass"`
	Plan          models.Plan  `json:"plan"`
	TossClientKey *string      `json:"tossClientKey"`
}

// ServeHTTP godoc
// @Summary Профиль текущей сессии
// @Description Возвращает пользователя, пропуск, план по умолчанию и клиентский ключ Toss.
// @Tags Session
// @Produce json
// @Success 200 {object} MeResponse "Данные сессии"
// @Failure 401 {object} response.ErrorResponse "Пользователь не залогинен"
// @Router /api/me [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.me"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess == nil || sess.User() == nil {
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeNotLoggedIn))
		return
	}

	var clientKey *string
	if h.tossClientKey != "" {
		clientKey = &h.tossClientKey
	}

	log.Info("session profile served", slog.String("user_id", sess.User().ID))
	render.JSON(w, r, MeResponse{
		User:          sess.User(),
		Pass:          sess.Pass(),
		Plan:          h.plans.Default(),
		TossClientKey: clientKey,
	})
}
