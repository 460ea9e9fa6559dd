package notifications

import "context"

// Publisher публикует JSON в exchange (реализуется *mq.Publisher)
type Publisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}

// QueueSender передаёт событие в RabbitMQ; доставку выполняет cmd/notifier
type QueueSender struct {
	publisher Publisher
}

func NewQueueSender(publisher Publisher) *QueueSender {
	return &QueueSender{publisher: publisher}
}

func (s *QueueSender) Name() string {
	return "rabbitmq"
}

func (s *QueueSender) Send(ctx context.Context, ev Event) error {
	if err := ev.Validate(); err != nil {
		return err
	}
	return s.publisher.PublishJSON(ctx, ev.Type, ev)
}
