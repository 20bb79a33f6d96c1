// Package paymentsuccess реализует HTTP-обработчик callback-а успешной оплаты.
//
// Платёжная страница возвращает клиента сюда с paymentKey, orderId и amount
// в query-параметрах. Любой исход — редирект: paid=1 при подтверждённой
// оплате, paid=0 при любом отказе. Тело ответа не рендерится никогда.
package paymentsuccess

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"

	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// Адреса редиректов терминальных исходов.
const (
	RedirectPaid   = "/?paid=1"
	RedirectUnpaid = "/?paid=0"
)

// Service описывает интерфейс подтверждения оплаты.
type Service interface {
	Confirm(ctx context.Context, sess *session.Session, orderID, rawAmount, paymentKey string) error
}

// Handler обрабатывает callback успешной оплаты.
type Handler struct {
	log     *slog.Logger // Логгер для записи информации и ошибок
	service Service      // Сервис подтверждения оплаты
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Callback успешной оплаты
// @Description Проверяет заказ, опционально подтверждает оплату у Toss и активирует пропуск.
// @Tags Payments
// @Param paymentKey query string false "Ключ платежа Toss"
// @Param orderId query string true "Идентификатор заказа"
// @Param amount query string false "Сумма оплаты"
// @Success 302 "Редирект на /?paid=1 либо /?paid=0"
// @Router /payment/success [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.paymentsuccess"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess == nil {
		http.Redirect(w, r, RedirectUnpaid, http.StatusFound)
		return
	}

	query := r.URL.Query()
	orderID := query.Get("orderId")
	rawAmount := query.Get("amount")
	paymentKey := query.Get("paymentKey")

	if err := h.service.Confirm(r.Context(), sess, orderID, rawAmount, paymentKey); err != nil {
		log.Error("payment rejected", slog.String("order_id", orderID), sl.Err(err))
		http.Redirect(w, r, RedirectUnpaid, http.StatusFound)
		return
	}

	log.Info("payment accepted", slog.String("order_id", orderID))
	http.Redirect(w, r, RedirectPaid, http.StatusFound)
}
