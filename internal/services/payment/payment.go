// Package payment содержит бизнес-логику подтверждения оплаты и активации
// пропуска. Один callback от платёжной страницы проходит цепочку проверок:
// аутентификация, наличие заказа, точное совпадение суммы, опциональное
// подтверждение у Toss — и только после этого пропуск попадает в сессию.
package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/magabrotheeeer/bpass-backend/internal/errs"
	"github.com/magabrotheeeer/bpass-backend/internal/events"
	"github.com/magabrotheeeer/bpass-backend/internal/lib/sl"
	"github.com/magabrotheeeer/bpass-backend/internal/models"
	"github.com/magabrotheeeer/bpass-backend/internal/paymentprovider"
	"github.com/magabrotheeeer/bpass-backend/internal/session"
)

// Registry описывает чтение заказа из реестра.
type Registry interface {
	Get(orderID string) (*models.Order, error)
}

// Confirmer описывает подтверждение оплаты у внешнего процессора.
type Confirmer interface {
	ConfirmPayment(ctx context.Context, req paymentprovider.ConfirmPaymentRequest) (*paymentprovider.ConfirmPaymentResponse, error)
}

// Journal описывает опциональный durable-журнал оплат и пропусков.
type Journal interface {
	MarkOrderPaid(ctx context.Context, orderID, paymentKey string) error
	SavePass(ctx context.Context, userID string, pass models.Pass) error
}

// EventPublisher описывает публикацию события об активации пропуска.
type EventPublisher interface {
	PublishPassActivated(event events.PassActivated) error
}

// Service реализует подтверждение оплаты и активацию пропуска.
type Service struct {
	registry  Registry
	confirmer Confirmer      // nil, если подтверждение Toss выключено
	journal   Journal        // nil, если durable-журнал не сконфигурирован
	events    EventPublisher // nil, если брокер не сконфигурирован
	plans     *models.Catalog
	log       *slog.Logger
	now       func() time.Time
}

// New создает сервис оплат. confirmer, journal и events могут быть nil.
func New(registry Registry, confirmer Confirmer, journal Journal, eventsPub EventPublisher, plans *models.Catalog, log *slog.Logger) *Service {
	return &Service{
		registry:  registry,
		confirmer: confirmer,
		journal:   journal,
		events:    eventsPub,
		plans:     plans,
		log:       log,
		now:       time.Now,
	}
}

// Confirm проводит один callback оплаты до конца: либо активирует пропуск,
// либо возвращает ошибку из таксономии errs. Повторов нет.
func (s *Service) Confirm(ctx context.Context, sess *session.Session, orderID, rawAmount, paymentKey string) error {
	const op = "services.payment.Confirm"
	log := s.log.With(slog.String("op", op), slog.String("order_id", orderID))

	user := sess.User()
	if user == nil {
		return errs.ErrNotAuthenticated
	}

	// Пользователь сессии с владельцем заказа не сверяется: поведение
	// исходного продукта, зафиксировано тестом.
	order, err := s.registry.Get(orderID)
	if err != nil {
		return err
	}

	if err := checkAmount(rawAmount, order.Amount); err != nil {
		return err
	}

	if s.confirmer != nil && paymentKey != "" {
		// Сумма в запросе подтверждения — из записи заказа, не из callback.
		req := paymentprovider.ConfirmPaymentRequest{
			PaymentKey: paymentKey,
			OrderID:    order.ID,
			Amount:     order.Amount,
		}
		if _, err := s.confirmer.ConfirmPayment(ctx, req); err != nil {
			log.Error("payment confirm rejected", sl.Err(err))
			return fmt.Errorf("%w: %s", errs.ErrConfirmFailed, err)
		}
	}

	pass, err := s.activatePass(ctx, sess, order.PlanID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if s.journal != nil {
		if err := s.journal.MarkOrderPaid(ctx, order.ID, paymentKey); err != nil {
			log.Warn("failed to journal paid order", sl.Err(err))
		}
		if err := s.journal.SavePass(ctx, user.ID, *pass); err != nil {
			log.Warn("failed to journal pass", sl.Err(err))
		}
	}
	if s.events != nil {
		event := events.PassActivated{
			UserID:  user.ID,
			PlanID:  pass.PlanID,
			OrderID: order.ID,
			StartAt: pass.StartAt,
			EndAt:   pass.EndAt,
		}
		if err := s.events.PublishPassActivated(event); err != nil {
			log.Warn("failed to publish pass activated event", sl.Err(err))
		}
	}

	log.Info("payment confirmed, pass activated",
		slog.String("plan_id", pass.PlanID),
		slog.Time("end_at", pass.EndAt))
	return nil
}

// checkAmount сравнивает сумму из callback с записанной в заказе.
// Пустая строка означает "взять сумму заказа"; любое расхождение,
// нечисловое или бесконечное значение — отказ. Сравнение строгое,
// без epsilon.
func checkAmount(rawAmount string, orderAmount int) error {
	if rawAmount == "" {
		return nil
	}
	amt, err := strconv.ParseFloat(rawAmount, 64)
	if err != nil || math.IsNaN(amt) || math.IsInf(amt, 0) {
		return errs.ErrAmountMismatch
	}
	if amt != float64(orderAmount) {
		return errs.ErrAmountMismatch
	}
	return nil
}

// activatePass вычисляет окно действия и записывает пропуск в сессию,
// безусловно перекрывая прежний. Повторная активация сбрасывает окно,
// а не продлевает его.
func (s *Service) activatePass(ctx context.Context, sess *session.Session, planID string) (*models.Pass, error) {
	plan, ok := s.plans.Resolve(planID)
	if !ok {
		return nil, errs.ErrUnknownPlan
	}

	now := s.now()
	pass := models.Pass{
		Status:  models.PassStatusActive,
		PlanID:  plan.ID,
		StartAt: now,
		EndAt:   now.Add(plan.Duration()),
	}
	if err := sess.SetPass(ctx, pass); err != nil {
		return nil, err
	}
	return &pass, nil
}
