package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Результаты бронирования для счетчика BookingsTotal
const (
	BookingResultCreated  = "created"
	BookingResultConflict = "conflict"
	BookingResultNotFound = "not_found"
	BookingResultInvalid  = "invalid"
	BookingResultError    = "error"
	BookingResultReplayed = "replayed"
)

// Metrics набор метрик сервиса
type Metrics struct {
	// HTTP
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	// База данных
	DBQueryDuration     *prometheus.HistogramVec
	DBOpenConnections   prometheus.Gauge
	DBInUseConnections  prometheus.Gauge
	DBIdleConnections   prometheus.Gauge
	DBWaitCount         prometheus.Gauge
	DBTxRetriesTotal    prometheus.Counter

	// Бизнес-метрики
	BookingsTotal       *prometheus.CounterVec
	SlotsGeneratedTotal prometheus.Counter
}

// New создает метрики и регистрирует их в глобальном реестре Prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer создает метрики в указанном реестре
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(prometheus.WrapRegistererWith(prometheus.Labels{"service": serviceName}, reg))

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "path"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation", "status"}),
		DBOpenConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_open_connections",
			Help: "Number of established connections",
		}),
		DBInUseConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_in_use_connections",
			Help: "Number of connections currently in use",
		}),
		DBIdleConnections: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_idle_connections",
			Help: "Number of idle connections",
		}),
		DBWaitCount: factory.NewGauge(prometheus.GaugeOpts{
			Name: "db_wait_count",
			Help: "Total number of connections waited for",
		}),
		DBTxRetriesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "db_tx_retries_total",
			Help: "Serializable transactions retried after a serialization failure",
		}),

		BookingsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "bookings_total",
			Help: "Booking attempts by result",
		}, []string{"result"}),
		SlotsGeneratedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "slots_generated_total",
			Help: "Slots persisted by slot generation",
		}),
	}
}

// ObserveBooking увеличивает счетчик попыток бронирования
// Безопасен для nil (метрики выключены)
func (m *Metrics) ObserveBooking(result string) {
	if m == nil {
		return
	}
	m.BookingsTotal.WithLabelValues(result).Inc()
}

// AddGeneratedSlots учитывает созданные слоты
func (m *Metrics) AddGeneratedSlots(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.SlotsGeneratedTotal.Add(float64(n))
}

// IncTxRetries учитывает повтор транзакции
func (m *Metrics) IncTxRetries() {
	if m == nil {
		return
	}
	m.DBTxRetriesTotal.Inc()
}
