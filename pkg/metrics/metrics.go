package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	serviceName string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueriesTotal  *prometheus.CounterVec
	dbQueryDuration *prometheus.HistogramVec
	dbOpenConns     *prometheus.GaugeVec
	dbIdleConns     *prometheus.GaugeVec

	schedulerPassesTotal *prometheus.CounterVec
	jobsProcessedTotal   *prometheus.CounterVec
}

// New создает и регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return &Metrics{
		serviceName: serviceName,

		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"service", "handler", "method", "status"}),

		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "handler", "method"}),

		dbQueriesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "db_queries_total",
			Help: "Total number of database queries",
		}, []string{"service", "operation"}),

		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "operation"}),

		dbOpenConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Number of open database connections",
		}, []string{"service"}),

		dbIdleConns: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		}, []string{"service"}),

		schedulerPassesTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "scheduler_passes_total",
			Help: "Total number of scheduler processing passes",
		}, []string{"service", "trigger"}),

		jobsProcessedTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_jobs_processed_total",
			Help: "Total number of processed booking jobs by outcome",
		}, []string{"service", "outcome"}),
	}
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(handler, method, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.serviceName, handler, method, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.serviceName, handler, method).Observe(duration.Seconds())
}

// ObserveDBQuery фиксирует выполненный запрос к БД
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueriesTotal.WithLabelValues(m.serviceName, operation).Inc()
	m.dbQueryDuration.WithLabelValues(m.serviceName, operation).Observe(duration.Seconds())
}

// SetDBConnections фиксирует состояние пула соединений
func (m *Metrics) SetDBConnections(open, idle int) {
	m.dbOpenConns.WithLabelValues(m.serviceName).Set(float64(open))
	m.dbIdleConns.WithLabelValues(m.serviceName).Set(float64(idle))
}

// IncSchedulerPass фиксирует запуск прохода обработки (trigger: "timer" | "manual")
func (m *Metrics) IncSchedulerPass(trigger string) {
	m.schedulerPassesTotal.WithLabelValues(m.serviceName, trigger).Inc()
}

// IncJobProcessed фиксирует результат обработки задания
// (outcome: "booked" | "completed" | "noop" | "failed")
func (m *Metrics) IncJobProcessed(outcome string) {
	m.jobsProcessedTotal.WithLabelValues(m.serviceName, outcome).Inc()
}
