package notifications

import (
	"context"
	"errors"
	"fmt"
	"time"
)

const (
	resultSent   = "sent"
	resultFailed = "failed"
)

// deliver отправляет событие во все каналы независимо друг от друга.
// Каждая отправка ограничена timeout; ошибки логируются и объединяются.
func deliver(ctx context.Context, ev Event, senders []Sender, timeout time.Duration, metrics Metrics, logger Logger) error {
	var errs []error

	for _, sender := range senders {
		sendCtx, cancel := context.WithTimeout(ctx, timeout)
		err := sender.Send(sendCtx, ev)
		cancel()

		if err != nil {
			logger.Error("Notify[%s]: %s booking id=%d failed: %v", sender.Name(), ev.Type, ev.BookingID, err)
			metrics.ObserveNotification(sender.Name(), resultFailed)
			errs = append(errs, fmt.Errorf("%s: %w", sender.Name(), err))
			continue
		}

		logger.Info("Notify[%s]: %s booking id=%d sent", sender.Name(), ev.Type, ev.BookingID)
		metrics.ObserveNotification(sender.Name(), resultSent)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrSend, errors.Join(errs...))
	}
	return nil
}
