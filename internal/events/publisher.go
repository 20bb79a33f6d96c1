// Package events публикует события о выданных пропусках в RabbitMQ.
// Публикация строго best-effort: сбой брокера никогда не ломает покупку.
package events

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/streadway/amqp"
)

// QueuePassActivated — очередь событий активации пропуска.
const QueuePassActivated = "pass.activated"

// PassActivated — событие об успешной активации пропуска.
type PassActivated struct {
	UserID  string    `json:"user_id"`
	PlanID  string    `json:"plan_id"`
	OrderID string    `json:"order_id"`
	StartAt time.Time `json:"start_at"`
	EndAt   time.Time `json:"end_at"`
}

// Publisher держит соединение и канал RabbitMQ.
type Publisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewPublisher подключается к брокеру и объявляет очередь.
func NewPublisher(url string) (*Publisher, error) {
	const op = "events.NewPublisher"
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if _, err := ch.QueueDeclare(QueuePassActivated, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Publisher{conn: conn, ch: ch}, nil
}

// PublishPassActivated публикует событие в очередь.
func (p *Publisher) PublishPassActivated(event PassActivated) error {
	const op = "events.PublishPassActivated"
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = p.ch.Publish(
		"",
		QueuePassActivated,
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает канал и соединение.
func (p *Publisher) Close() {
	p.ch.Close()
	p.conn.Close()
}
