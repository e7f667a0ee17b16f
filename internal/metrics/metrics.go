// Package metrics defines the Prometheus collectors for HTTP traffic and
// stock movement.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"inventory-tracker/internal/events"
)

const Path = "/metrics"

type Metrics struct {
	InflightRequests prometheus.Gauge
	RequestsTotal    *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
	StockEvents      *prometheus.CounterVec
	UnitsIssued      prometheus.Counter
	UnitsReturned    prometheus.Counter

	gatherer prometheus.Gatherer
}

// New registers collectors on reg. Pass prometheus.NewRegistry() in tests.
func New(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		InflightRequests: f.NewGauge(prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served.",
		}),
		RequestsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		RequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		StockEvents: f.NewCounterVec(prometheus.CounterOpts{
			Name: "inventory_stock_events_total",
			Help: "Stock events published, by type.",
		}, []string{"type"}),
		UnitsIssued: f.NewCounter(prometheus.CounterOpts{
			Name: "inventory_units_issued_total",
			Help: "Units removed from stock by issuances.",
		}),
		UnitsReturned: f.NewCounter(prometheus.CounterOpts{
			Name: "inventory_units_returned_total",
			Help: "Units restored to stock by deleted issuances.",
		}),
		gatherer: reg,
	}
}

// Publish implements events.Publisher.
func (m *Metrics) Publish(_ context.Context, evt events.Event) error {
	m.StockEvents.WithLabelValues(string(evt.Type)).Inc()
	switch evt.Type {
	case events.IssuanceCreated:
		m.UnitsIssued.Add(float64(-evt.Delta))
	case events.IssuanceDeleted:
		m.UnitsReturned.Add(float64(evt.Delta))
	}
	return nil
}

// Middleware records request count, latency and in-flight gauge. Routes are
// labelled by their pattern, not the raw path.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == Path {
			return c.Next()
		}

		start := time.Now()
		m.InflightRequests.Inc()
		defer m.InflightRequests.Dec()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		route := c.Route().Path
		m.RequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		m.RequestDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
	}))
}
