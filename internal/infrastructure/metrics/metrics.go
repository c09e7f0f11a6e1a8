package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa os coletores Prometheus da aplicação
type Metrics struct {
	registry *prometheus.Registry

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	domainEvents    *prometheus.CounterVec
	realtimeClients prometheus.Gauge
	realtimeDropped prometheus.Counter
	alertsArchived  prometheus.Counter
}

// New cria e registra os coletores em um registry próprio
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "http_in_flight_requests",
			Help: "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "route", "status"},
		),
		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latencies in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
		domainEvents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "portal_domain_events_total",
				Help: "Domain events published to realtime topics.",
			},
			[]string{"topic", "type"},
		),
		realtimeClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portal_realtime_clients",
			Help: "Connected realtime clients.",
		}),
		realtimeDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_realtime_dropped_clients_total",
			Help: "Realtime clients dropped for being too slow.",
		}),
		alertsArchived: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "portal_alerts_archived_total",
			Help: "Alerts archived by the expiry sweeper.",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.domainEvents,
		m.realtimeClients,
		m.realtimeDropped,
		m.alertsArchived,
	)
	return m
}

// Handler expõe as métricas no formato Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry retorna o registry usado (útil em testes)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Instrument mede requisições, latência e requisições em andamento.
// O rótulo route usa o padrão da rota do gin para evitar alta cardinalidade.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.httpInFlight.Inc()
		start := time.Now()

		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		m.httpRequestDuration.WithLabelValues(c.Request.Method, route, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, route, status).Inc()
		m.httpInFlight.Dec()
	}
}

// EventPublished conta um evento publicado no canal realtime
func (m *Metrics) EventPublished(topic, eventType string) {
	m.domainEvents.WithLabelValues(topic, eventType).Inc()
}

// ClientConnected ajusta o gauge de clientes conectados
func (m *Metrics) ClientConnected(delta int) {
	m.realtimeClients.Add(float64(delta))
}

// ClientDropped conta um cliente descartado por lentidão
func (m *Metrics) ClientDropped() {
	m.realtimeDropped.Inc()
}

// AlertsArchived conta alertas arquivados pelo sweeper
func (m *Metrics) AlertsArchived(n int) {
	m.alertsArchived.Add(float64(n))
}
