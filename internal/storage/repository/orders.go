package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// Статусы заказа в durable-журнале.
const (
	OrderStatusCreated = "CREATED"
	OrderStatusPaid    = "PAID"
)

// SaveOrder записывает свежесозданный заказ со статусом CREATED.
func (s *Storage) SaveOrder(ctx context.Context, order models.Order) error {
	const op = "storage.SaveOrder"

	query := `INSERT INTO orders (order_id, user_id, plan_id, amount, status, created_at)
			  VALUES ($1, $2, $3, $4, $5, $6);`
	if _, err := s.DB.ExecContext(ctx, query,
		order.ID, order.UserID, order.PlanID, order.Amount,
		OrderStatusCreated, order.CreatedAt); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// MarkOrderPaid переводит заказ в статус PAID, фиксируя paymentKey и время оплаты.
func (s *Storage) MarkOrderPaid(ctx context.Context, orderID, paymentKey string) error {
	const op = "storage.MarkOrderPaid"

	var key sql.NullString
	if paymentKey != "" {
		key = sql.NullString{String: paymentKey, Valid: true}
	}
	query := `UPDATE orders
			  SET status = $1, payment_key = $2, paid_at = $3
			  WHERE order_id = $4;`
	if _, err := s.DB.ExecContext(ctx, query,
		OrderStatusPaid, key, time.Now(), orderID); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// GetOrderStatus возвращает статус заказа в журнале.
func (s *Storage) GetOrderStatus(ctx context.Context, orderID string) (string, error) {
	const op = "storage.GetOrderStatus"

	var status string
	query := `SELECT status FROM orders WHERE order_id = $1;`
	if err := s.DB.QueryRowContext(ctx, query, orderID).Scan(&status); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return status, nil
}
