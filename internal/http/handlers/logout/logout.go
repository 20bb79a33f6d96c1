// Package logout реализует HTTP-обработчик выхода из сессии.
// Выход очищает и пользователя, и пропуск: после него /api/me отвечает 401.
package logout

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/http/response"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
)

// Handler обрабатывает запросы выхода.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// LogoutResponse — ответ эндпоинта /api/logout.
type LogoutResponse struct {
	OK bool `json:"ok"`
}

// ServeHTTP godoc
// @Summary Выход из сессии
// @Description Очищает пользователя и пропуск из сессии.
// @Tags Session
// @Produce json
// @Success 200 {object} LogoutResponse "Сессия очищена"
// @Router /api/logout [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.logout"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess != nil {
		if err := sess.Clear(r.Context()); err != nil {
			log.Error("failed to clear session", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("could not clear session"))
			return
		}
	}

	log.Info("session cleared")
	render.JSON(w, r, LogoutResponse{OK: true})
}
