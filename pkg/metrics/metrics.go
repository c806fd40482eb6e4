package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор Prometheus-метрик сервиса
// Регистрируется в собственном registry, чтобы несколько экземпляров (тесты) не конфликтовали
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBOpenConnections *prometheus.GaugeVec
	DBInUse           *prometheus.GaugeVec

	ReservationsCreated   prometheus.Counter
	ReservationsModified  prometheus.Counter
	ReservationsCancelled prometheus.Counter
	PresencesCreated      prometheus.Counter
	EmailsFailed          prometheus.Counter
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "db_query_duration_seconds",
			Help:      "Database query latency",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"pool", "operation"}),
		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_open_connections",
			Help:      "Open connections in the pool",
		}, []string{"pool"}),
		DBInUse: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: serviceName,
			Name:      "db_in_use_connections",
			Help:      "Connections currently in use",
		}, []string{"pool"}),
		ReservationsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_created_total",
			Help:      "Reservations created",
		}),
		ReservationsModified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_modified_total",
			Help:      "Reservations modified by their holder",
		}),
		ReservationsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "reservations_cancelled_total",
			Help:      "Reservations cancelled by their holder",
		}),
		PresencesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "presences_created_total",
			Help:      "Presences created by admins",
		}),
		EmailsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "confirmation_emails_failed_total",
			Help:      "Confirmation e-mails that could not be sent",
		}),
	}

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBOpenConnections,
		m.DBInUse,
		m.ReservationsCreated,
		m.ReservationsModified,
		m.ReservationsCancelled,
		m.PresencesCreated,
		m.EmailsFailed,
	)

	return m
}

// Handler HTTP-обработчик для endpoint'а метрик
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry (для тестов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTP фиксирует завершенный HTTP-запрос
func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// ObserveQuery фиксирует длительность запроса к БД
func (m *Metrics) ObserveQuery(pool, operation string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(pool, operation).Observe(elapsed.Seconds())
}

// Event бизнес-событие для счетчиков
type Event int

const (
	EventReservationCreated Event = iota
	EventReservationModified
	EventReservationCancelled
	EventPresenceCreated
	EventEmailFailed
)

// Record увеличивает счетчик события. Безопасен для nil (метрики выключены).
func (m *Metrics) Record(e Event) {
	if m == nil {
		return
	}
	switch e {
	case EventReservationCreated:
		m.ReservationsCreated.Inc()
	case EventReservationModified:
		m.ReservationsModified.Inc()
	case EventReservationCancelled:
		m.ReservationsCancelled.Inc()
	case EventPresenceCreated:
		m.PresencesCreated.Inc()
	case EventEmailFailed:
		m.EmailsFailed.Inc()
	}
}
