package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DeliverySource источник сообщений очереди (реализуется *mq.Consumer)
type DeliverySource interface {
	Deliveries(ctx context.Context, consumerTag string) (<-chan amqp.Delivery, error)
}

// Worker читает события из RabbitMQ и доставляет их отправителями.
// Успех: Ack. Ошибка доставки: Nack с повторной постановкой, но только один раз;
// повторно доставленное сообщение при ошибке отбрасывается. Нераспознанное сообщение отбрасывается сразу.
type Worker struct {
	source      DeliverySource
	senders     []Sender
	sendTimeout time.Duration
	metrics     Metrics
	logger      Logger
}

func NewWorker(source DeliverySource, senders []Sender, sendTimeout time.Duration, metrics Metrics, logger Logger) *Worker {
	return &Worker{
		source:      source,
		senders:     senders,
		sendTimeout: sendTimeout,
		metrics:     metrics,
		logger:      logger,
	}
}

// Run обрабатывает сообщения, пока не отменён ctx или не закрыт канал
func (w *Worker) Run(ctx context.Context, consumerTag string) error {
	msgs, err := w.source.Deliveries(ctx, consumerTag)
	if err != nil {
		return fmt.Errorf("notifications: consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-msgs:
			if !ok {
				return nil
			}
			w.handle(ctx, d)
		}
	}
}

func (w *Worker) handle(ctx context.Context, d amqp.Delivery) {
	ev, err := DecodeEvent(d.Body)
	if err != nil {
		w.logger.Error("Worker: drop message key=%s: %v", d.RoutingKey, err)
		_ = d.Nack(false, false)
		return
	}

	err = deliver(ctx, ev, w.senders, w.sendTimeout, w.metrics, w.logger)
	switch {
	case err == nil:
		_ = d.Ack(false)
	case errors.Is(err, ErrUnknownEvent) || d.Redelivered:
		w.logger.Error("Worker: give up on %s booking id=%d: %v", ev.Type, ev.BookingID, err)
		_ = d.Nack(false, false)
	default:
		w.logger.Warn("Worker: %s booking id=%d failed, requeue: %v", ev.Type, ev.BookingID, err)
		_ = d.Nack(false, true)
	}
}
