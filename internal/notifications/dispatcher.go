package notifications

import (
	"context"
	"sync"
	"time"

	"github.com/m04kA/SMC-CarWashBooking/internal/domain"
)

const resultDropped = "dropped"

// Options параметры пула отправки
type Options struct {
	Workers     int
	QueueSize   int
	SendTimeout time.Duration
	Location    *time.Location
}

// Dispatcher асинхронно доставляет события через ограниченную очередь и пул воркеров.
// Постановка в очередь никогда не блокирует: при переполнении событие отбрасывается.
type Dispatcher struct {
	senders []Sender
	opts    Options
	queue   chan Event
	metrics Metrics
	logger  Logger
	now     func() time.Time

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

// NewDispatcher создает диспетчер; воркеры запускаются в Start
func NewDispatcher(senders []Sender, opts Options, metrics Metrics, logger Logger) *Dispatcher {
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 100
	}
	if opts.SendTimeout <= 0 {
		opts.SendTimeout = 10 * time.Second
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}

	return &Dispatcher{
		senders: senders,
		opts:    opts,
		queue:   make(chan Event, opts.QueueSize),
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// Start запускает воркеров
func (d *Dispatcher) Start() {
	for i := 0; i < d.opts.Workers; i++ {
		d.wg.Add(1)
		go d.work(i)
	}
	d.logger.Info("Dispatcher: started %d workers, queue size %d", d.opts.Workers, d.opts.QueueSize)
}

// NotifyBookingCreated ставит в очередь уведомление о новом бронировании
func (d *Dispatcher) NotifyBookingCreated(b *domain.Booking, service domain.ServiceDefinition) {
	_ = d.Enqueue(NewBookingCreated(b, service, d.opts.Location, d.now()))
}

// NotifyBookingCanceled ставит в очередь уведомление об отмене
func (d *Dispatcher) NotifyBookingCanceled(b *domain.Booking, service domain.ServiceDefinition, channel string) {
	_ = d.Enqueue(NewBookingCanceled(b, service, channel, d.opts.Location, d.now()))
}

// Enqueue добавляет событие в очередь без блокировки
func (d *Dispatcher) Enqueue(ev Event) error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.closed {
		d.logger.Warn("Dispatcher: closed, dropping %s booking id=%d", ev.Type, ev.BookingID)
		d.metrics.ObserveNotification("dispatcher", resultDropped)
		return ErrDispatcherClosed
	}

	select {
	case d.queue <- ev:
		d.metrics.SetNotificationQueueSize(len(d.queue))
		return nil
	default:
		d.logger.Warn("Dispatcher: queue full (%d), dropping %s booking id=%d", d.opts.QueueSize, ev.Type, ev.BookingID)
		d.metrics.ObserveNotification("dispatcher", resultDropped)
		return ErrQueueFull
	}
}

// Shutdown перестаёт принимать события и ждёт, пока воркеры разберут очередь
func (d *Dispatcher) Shutdown(ctx context.Context) error {
	d.mu.Lock()
	if !d.closed {
		d.closed = true
		close(d.queue)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		d.logger.Info("Dispatcher: stopped")
		return nil
	case <-ctx.Done():
		d.logger.Warn("Dispatcher: shutdown timed out with %d events pending", len(d.queue))
		return ctx.Err()
	}
}

func (d *Dispatcher) work(id int) {
	defer d.wg.Done()

	for ev := range d.queue {
		d.metrics.SetNotificationQueueSize(len(d.queue))
		// Ошибки доставки уже залогированы и на бронирование не влияют
		_ = deliver(context.Background(), ev, d.senders, d.opts.SendTimeout, d.metrics, d.logger)
	}
	d.logger.Info("Dispatcher: worker %d finished", id)
}
