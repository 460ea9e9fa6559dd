package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор Prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBOpenConnections  prometheus.Gauge
	DBInUseConnections prometheus.Gauge
	DBIdleConnections  prometheus.Gauge
	DBWaitCount        prometheus.Gauge
	DBTxRetriesTotal   prometheus.Counter

	BookingRequestsTotal  *prometheus.CounterVec
	CancellationsTotal    *prometheus.CounterVec
	NotificationsTotal    *prometheus.CounterVec
	NotificationQueueSize prometheus.Gauge
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики и регистрирует их в переданном реестре
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}),
		DBInUseConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdleConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),
		DBTxRetriesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "db_tx_retries_total",
			Help:        "Serializable transactions retried after a serialization failure",
			ConstLabels: constLabels,
		}),

		BookingRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_requests_total",
			Help:        "Booking requests by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		CancellationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_cancellations_total",
			Help:        "Cancellation attempts by channel and outcome",
			ConstLabels: constLabels,
		}, []string{"channel", "outcome"}),
		NotificationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_total",
			Help:        "Notification deliveries by sender and result",
			ConstLabels: constLabels,
		}, []string{"sender", "result"}),
		NotificationQueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "notification_queue_size",
			Help:        "Events waiting in the notification queue",
			ConstLabels: constLabels,
		}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBTxRetriesTotal,
		m.BookingRequestsTotal,
		m.CancellationsTotal,
		m.NotificationsTotal,
		m.NotificationQueueSize,
	)

	return m
}

// ObserveBooking увеличивает счётчик результатов бронирования. Безопасен для nil.
func (m *Metrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.BookingRequestsTotal.WithLabelValues(result).Inc()
}

// ObserveCancellation увеличивает счётчик отмен. Безопасен для nil.
func (m *Metrics) ObserveCancellation(channel, outcome string) {
	if m == nil {
		return
	}
	m.CancellationsTotal.WithLabelValues(channel, outcome).Inc()
}

// ObserveNotification увеличивает счётчик отправок уведомлений. Безопасен для nil.
func (m *Metrics) ObserveNotification(sender, result string) {
	if m == nil {
		return
	}
	m.NotificationsTotal.WithLabelValues(sender, result).Inc()
}

// SetNotificationQueueSize выставляет текущую длину очереди. Безопасен для nil.
func (m *Metrics) SetNotificationQueueSize(n int) {
	if m == nil {
		return
	}
	m.NotificationQueueSize.Set(float64(n))
}
