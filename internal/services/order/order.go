// Package order содержит бизнес-логику создания заказа на покупку пропуска.
package order

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/magabrotheeeer/bpass-backend/internal/errs"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/orderid"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// Registry описывает запись заказа в реестр.
type Registry interface {
	Put(order models.Order) error
}

// Journal описывает опциональный durable-журнал заказов.
type Journal interface {
	SaveOrder(ctx context.Context, order models.Order) error
}

// CreateResult — ответ на создание заказа. URL-ы успеха и отказа ведут
// обратно на этот сервис с orderId в query-параметре.
type CreateResult struct {
	OrderID    string `json:"orderId"`
	OrderName  string `json:"orderName"`
	Amount     int    `json:"amount"`
	SuccessURL string `json:"successUrl"`
	FailURL    string `json:"failUrl"`
}

// Service реализует создание заказов.
type Service struct {
	registry Registry
	journal  Journal // nil, если durable-журнал не сконфигурирован
	plans    *models.Catalog
	gen      orderid.Generator
	baseURL  string
	log      *slog.Logger
	now      func() time.Time
}

// New создает сервис заказов. journal может быть nil.
func New(registry Registry, journal Journal, plans *models.Catalog, gen orderid.Generator, baseURL string, log *slog.Logger) *Service {
	return &Service{
		registry: registry,
		journal:  journal,
		plans:    plans,
		gen:      gen,
		baseURL:  baseURL,
		log:      log,
		now:      time.Now,
	}
}

// Create регистрирует новый заказ для пользователя.
// Сумма фиксируется планом; пустой planID означает план по умолчанию.
func (s *Service) Create(ctx context.Context, user models.User, planID string) (*CreateResult, error) {
	const op = "services.order.Create"

	plan, ok := s.plans.Resolve(planID)
	if !ok {
		return nil, errs.ErrUnknownPlan
	}

	order := models.Order{
		ID:        s.gen.NewID(),
		PlanID:    plan.ID,
		Amount:    plan.Amount,
		OrderName: plan.Name,
		CreatedAt: s.now(),
		UserID:    user.ID,
	}

	if err := s.registry.Put(order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.journal != nil {
		if err := s.journal.SaveOrder(ctx, order); err != nil {
			s.log.Warn("failed to journal order", slog.String("order_id", order.ID), sl.Err(err))
		}
	}

	s.log.Info("created new order",
		slog.String("order_id", order.ID),
		slog.String("plan_id", plan.ID),
		slog.Int("amount", plan.Amount))

	escaped := url.QueryEscape(order.ID)
	return &CreateResult{
		OrderID:    order.ID,
		OrderName:  order.OrderName,
		Amount:     order.Amount,
		SuccessURL: fmt.Sprintf("%s/payment/success?orderId=%s", s.baseURL, escaped),
		FailURL:    fmt.Sprintf("%s/payment/fail?orderId=%s", s.baseURL, escaped),
	}, nil
}
