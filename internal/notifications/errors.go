package notifications

import "errors"

var (
	// ErrQueueFull возвращается, когда очередь диспетчера заполнена
	ErrQueueFull = errors.New("notifications: queue is full")

	// ErrDispatcherClosed возвращается после остановки диспетчера
	ErrDispatcherClosed = errors.New("notifications: dispatcher closed")

	// ErrUnknownEvent возвращается для неизвестного типа события
	ErrUnknownEvent = errors.New("notifications: unknown event type")

	// ErrDecodeEvent возвращается при ошибке разбора события из очереди
	ErrDecodeEvent = errors.New("notifications: failed to decode event")

	// ErrSend возвращается, когда хотя бы один канал не доставил событие
	ErrSend = errors.New("notifications: send failed")
)
