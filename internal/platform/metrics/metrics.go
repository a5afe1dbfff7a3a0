// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/taibuivan/bookshelf/internal/platform/constants"
)

// Metrics owns a private registry so tests and multiple servers never collide
// on the global default registerer.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	queryDuration       prometheus.Histogram
	queryRows           prometheus.Histogram
	queryErrorsTotal    prometheus.Counter
}

// New registers every collector, plus the Go runtime and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: constants.MetricsPrefix,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: constants.MetricsPrefix,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"path"}),
		queryDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: constants.MetricsPrefix,
			Name:      "books_query_duration_seconds",
			Help:      "Duration of the books list query in seconds",
			Buckets:   prometheus.DefBuckets,
		}),
		queryRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: constants.MetricsPrefix,
			Name:      "books_query_rows",
			Help:      "Number of rows returned by the books list query",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		queryErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: constants.MetricsPrefix,
			Name:      "books_query_errors_total",
			Help:      "Total number of failed books list queries",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.queryDuration,
		m.queryRows,
		m.queryErrorsTotal,
	)

	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(method, path string, status int, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(path).Observe(elapsed.Seconds())
}

// ObserveQuery records one books list query. Row counts are only tracked for
// successful queries.
func (m *Metrics) ObserveQuery(elapsed time.Duration, rows int, err error) {
	m.queryDuration.Observe(elapsed.Seconds())
	if err != nil {
		m.queryErrorsTotal.Inc()
		return
	}
	m.queryRows.Observe(float64(rows))
}
