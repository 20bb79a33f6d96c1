// Package paymentfail реализует HTTP-обработчик callback-а неуспешной оплаты.
package paymentfail

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
)

// Handler обрабатывает callback неуспешной оплаты: всегда редирект paid=0.
type Handler struct {
	log *slog.Logger
}

// New создает новый Handler.
func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Callback неуспешной оплаты
// @Success 302 "Редирект на /?paid=0"
// @Router /payment/fail [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.paymentfail"
	h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	).Info("payment fail callback", slog.String("order_id", r.URL.Query().Get("orderId")))

	http.Redirect(w, r, "/?paid=0", http.StatusFound)
}
