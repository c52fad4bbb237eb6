// Package metrics holds the Prometheus collectors of the userbot.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userbot"

var defaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 30}

// Metrics is nil-safe: every method on a nil *Metrics is a no-op.
type Metrics struct {
	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	inspectOutcomes *prometheus.CounterVec
	fetchesTotal    *prometheus.CounterVec
	updatesTotal    *prometheus.CounterVec
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors on reg. Pass prometheus.NewRegistry() in
// tests to avoid duplicate registration.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		commandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "plugin",
				Name:      "commands_total",
				Help:      "Commands handled, by command and status.",
			},
			[]string{"command", "status"},
		),
		commandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "plugin",
				Name:      "command_duration_seconds",
				Help:      "Command handler latency in seconds.",
				Buckets:   defaultBuckets,
			},
			[]string{"command"},
		),
		inspectOutcomes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "subscription",
				Name:      "inspections_total",
				Help:      "Inspected subscription links, by outcome.",
			},
			[]string{"outcome"},
		),
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpclient",
				Name:      "fetches_total",
				Help:      "Outbound fetches, by result.",
			},
			[]string{"result"},
		),
		updatesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "telegram",
				Name:      "updates_total",
				Help:      "Telegram updates received, by source.",
			},
			[]string{"source"},
		),
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "requests_total",
				Help:      "Total number of HTTP requests processed.",
			},
			[]string{"method", "path", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "http",
				Name:      "request_duration_seconds",
				Help:      "Request latency in seconds.",
				Buckets:   defaultBuckets,
			},
			[]string{"method", "path"},
		),
	}
}

func (m *Metrics) ObserveCommand(command, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.commandsTotal.WithLabelValues(command, status).Inc()
	m.commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())
}

func (m *Metrics) IncInspectOutcome(outcome string) {
	if m == nil {
		return
	}
	m.inspectOutcomes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncFetch(result string) {
	if m == nil {
		return
	}
	m.fetchesTotal.WithLabelValues(result).Inc()
}

func (m *Metrics) IncUpdate(source string) {
	if m == nil {
		return
	}
	m.updatesTotal.WithLabelValues(source).Inc()
}

// GinMiddleware records request count and latency per route template.
func (m *Metrics) GinMiddleware(skipPaths ...string) gin.HandlerFunc {
	skip := make(map[string]bool, len(skipPaths))
	for _, p := range skipPaths {
		skip[p] = true
	}

	return func(c *gin.Context) {
		if m == nil || skip[c.Request.URL.Path] {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.requestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
