// SPDX-License-Identifier: MIT

package gaussian

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Refresh kinds recorded by Collector.
const (
	refreshParams = "params"
	refreshValues = "values"
)

// Query status labels.
const (
	statusOK    = "ok"
	statusError = "error"
)

// Collector holds the Prometheus metrics of one or more submodels on a private
// registry. A nil *Collector records nothing.
type Collector struct {
	refreshes      *prometheus.CounterVec
	factorizations *prometheus.CounterVec
	queries        *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	factorNNZ      *prometheus.GaugeVec
	registry       *prometheus.Registry
}

// NewCollector creates a Collector with its own registry.
func NewCollector() *Collector {
	registry := prometheus.NewRegistry()

	refreshes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaussnet_refreshes_total",
			Help: "Derived-state rebuilds by kind (params: full refactorization, values: mean only)",
		},
		[]string{"kind"},
	)
	factorizations := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaussnet_factorizations_total",
			Help: "Sparse block factorizations by block role and status",
		},
		[]string{"block", "status"},
	)
	queries := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gaussnet_queries_total",
			Help: "Conditional queries by query type and status",
		},
		[]string{"query", "status"},
	)
	queryDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gaussnet_query_duration_seconds",
			Help:    "Duration of conditional queries by query type",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
		[]string{"query"},
	)
	factorNNZ := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "gaussnet_factor_nonzeros",
			Help: "Stored non-zeros of the most recent factor by matrix",
		},
		[]string{"matrix"},
	)

	registry.MustRegister(refreshes, factorizations, queries, queryDuration, factorNNZ)

	return &Collector{
		refreshes:      refreshes,
		factorizations: factorizations,
		queries:        queries,
		queryDuration:  queryDuration,
		factorNNZ:      factorNNZ,
		registry:       registry,
	}
}

// Registry returns the Prometheus registry for exposure.
func (m *Collector) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}

	return m.registry
}

func (m *Collector) recordRefresh(kind string) {
	if m == nil {
		return
	}
	m.refreshes.WithLabelValues(kind).Inc()
}

func (m *Collector) recordFactorization(block string, err error) {
	if m == nil {
		return
	}
	m.factorizations.WithLabelValues(block, status(err)).Inc()
}

func (m *Collector) recordQuery(query string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.queries.WithLabelValues(query, status(err)).Inc()
	m.queryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
}

func (m *Collector) setNNZ(name string, nnz int) {
	if m == nil {
		return
	}
	m.factorNNZ.WithLabelValues(name).Set(float64(nnz))
}

func status(err error) string {
	if err != nil {
		return statusError
	}

	return statusOK
}
