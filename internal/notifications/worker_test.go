package notifications

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CarWashBooking/pkg/logger"
)

type ackRecorder struct {
	mu      sync.Mutex
	acks    int
	nacks   int
	requeue []bool
}

func (a *ackRecorder) Ack(uint64, bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *ackRecorder) Nack(_ uint64, _ bool, requeue bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nacks++
	a.requeue = append(a.requeue, requeue)
	return nil
}

func (a *ackRecorder) Reject(uint64, bool) error { return nil }

type channelSource struct{ ch chan amqp.Delivery }

func (s channelSource) Deliveries(context.Context, string) (<-chan amqp.Delivery, error) {
	return s.ch, nil
}

func delivery(t *testing.T, ack amqp.Acknowledger, v any, redelivered bool) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(v)
	require.NoError(t, err)
	return amqp.Delivery{Acknowledger: ack, Body: body, RoutingKey: RKBookingCreated, Redelivered: redelivered}
}

func runWorker(t *testing.T, senders []Sender, deliveries ...amqp.Delivery) {
	t.Helper()
	src := channelSource{ch: make(chan amqp.Delivery, len(deliveries))}
	for _, d := range deliveries {
		src.ch <- d
	}
	close(src.ch)

	w := NewWorker(src, senders, time.Second, &metricsStub{}, logger.NewNop())
	require.NoError(t, w.Run(context.Background(), "test"))
}

func TestWorker_AcksDeliveredEvents(t *testing.T) {
	ack := &ackRecorder{}
	sender := &recordingSender{name: "email"}
	ev := NewBookingCreated(testBooking(), testService(), cet, time.Now())

	runWorker(t, []Sender{sender}, delivery(t, ack, ev, false))

	assert.Equal(t, 1, ack.acks)
	assert.Equal(t, 0, ack.nacks)
	require.Len(t, sender.received(), 1)
	assert.Equal(t, "abc123", sender.received()[0].CancelToken)
}

func TestWorker_RequeuesOnce(t *testing.T) {
	ack := &ackRecorder{}
	sender := &recordingSender{name: "email", err: errors.New("smtp down")}
	ev := NewBookingCreated(testBooking(), testService(), cet, time.Now())

	runWorker(t, []Sender{sender}, delivery(t, ack, ev, false), delivery(t, ack, ev, true))

	assert.Equal(t, 0, ack.acks)
	assert.Equal(t, []bool{true, false}, ack.requeue)
}

func TestWorker_DropsUndecodableMessages(t *testing.T) {
	ack := &ackRecorder{}
	sender := &recordingSender{name: "email"}

	runWorker(t, []Sender{sender},
		amqp.Delivery{Acknowledger: ack, Body: []byte("not json")},
		delivery(t, ack, map[string]string{"type": "payment.paid"}, false),
	)

	assert.Equal(t, []bool{false, false}, ack.requeue)
	assert.Empty(t, sender.received())
}
