package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	FixtureLoads = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fixture_loads_total",
			Help: "Number of order fixture parse attempts",
		},
		[]string{"result"}, // ok|malformed|io
	)
	FixtureOrders = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "fixture_orders",
			Help: "Number of orders held by the repository",
		},
	)
	FixtureLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fixture_load_duration_seconds",
			Help:    "Time spent parsing the order fixture",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 12),
		},
	)
	OrderLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_lookups_total",
			Help: "Order lookups by id",
		},
		[]string{"result"}, // found|not_found
	)
)

var (
	CacheOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Cache operations",
		},
		[]string{"op"}, // hit|miss|evicted|expired|purged
	)
	CacheSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "cache_size",
			Help: "Number of items currently in cache",
		},
	)
)

var registerOnce sync.Once

// MustRegister — регистрирует коллекторы в default registry; повторный вызов ничего не делает.
func MustRegister() {
	registerOnce.Do(func() {
		prometheus.MustRegister(FixtureLoads, FixtureOrders, FixtureLoadDuration, OrderLookups, CacheOps, CacheSize)
	})
}
