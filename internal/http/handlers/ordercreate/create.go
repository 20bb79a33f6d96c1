// Package ordercreate реализует HTTP-обработчик создания заказа.
//
// Handler принимает опциональный JSON с идентификатором плана, требует
// залогиненного пользователя и возвращает данные заказа вместе с URL-ами
// успеха и отказа для платёжной страницы.
package ordercreate

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/bpass-backend/internal/errs"
	"github.com/magabrotheeeer/bpass-backend/internal/http/middlewarectx"
	"github.com/magabrotheeeer/bpass-backend/internal/http/response"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/services/order"
)

// CreateOrderRequest — тело запроса. Пустое тело допустимо и означает
// план по умолчанию.
type CreateOrderRequest struct {
	PlanID string `json:"plan_id" validate:"omitempty,printascii"` // Идентификатор плана
}

// Service описывает интерфейс бизнес-логики создания заказа.
type Service interface {
	Create(ctx context.Context, user models.User, planID string) (*order.CreateResult, error)
}

// Handler обрабатывает запросы создания заказа.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики создания заказа
	validate *validator.Validate // Валидатор структуры входящих данных
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать заказ
// @Description Регистрирует заказ на покупку пропуска и возвращает параметры для платёжной страницы.
// @Tags Orders
// @Accept json
// @Produce json
// @Param request body CreateOrderRequest false "Идентификатор плана (опционально)"
// @Success 200 {object} order.CreateResult "Созданный заказ"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неизвестный план"
// @Failure 401 {object} response.ErrorResponse "Пользователь не залогинен"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации"
// @Router /api/orders/create [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.ordercreate"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	sess := middlewarectx.SessionFromContext(r.Context())
	if sess == nil || sess.User() == nil {
		log.Error("order create without session user")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error(response.CodeNotLoggedIn))
		return
	}

	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	res, err := h.service.Create(r.Context(), *sess.User(), req.PlanID)
	if err != nil {
		if errors.Is(err, errs.ErrUnknownPlan) {
			log.Error("unknown plan requested", slog.String("plan_id", req.PlanID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("unknown plan"))
			return
		}
		log.Error("failed to create order", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("could not create order"))
		return
	}

	log.Info("success to create order", slog.String("order_id", res.OrderID))
	render.JSON(w, r, res)
}
