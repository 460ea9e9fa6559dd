package notifications

import "context"

// Sender доставляет событие по одному каналу (e-mail, WhatsApp, очередь)
type Sender interface {
	Name() string
	Send(ctx context.Context, ev Event) error
}

// Metrics метрики доставки уведомлений
type Metrics interface {
	ObserveNotification(sender, result string)
	SetNotificationQueueSize(n int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
