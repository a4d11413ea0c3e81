package identity

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("liveview.identity")

var (
	cacheHits      metric.Int64Counter
	cacheMisses    metric.Int64Counter
	cacheEvictions metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the counters. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		cacheHits, err = meter.Int64Counter(
			"identity_cache_hits_total",
			metric.WithDescription("Derived instances reused for a repeated source reference"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheMisses, err = meter.Int64Counter(
			"identity_cache_misses_total",
			metric.WithDescription("Derived instances created by projection"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cacheEvictions, err = meter.Int64Counter(
			"identity_cache_evictions_total",
			metric.WithDescription("Derived instances evicted and disposed"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordHit() {
	if err := initMetrics(); err != nil {
		return
	}
	cacheHits.Add(context.Background(), 1)
}

func recordMiss() {
	if err := initMetrics(); err != nil {
		return
	}
	cacheMisses.Add(context.Background(), 1)
}

func recordEvictions(n int) {
	if n == 0 {
		return
	}
	if err := initMetrics(); err != nil {
		return
	}
	cacheEvictions.Add(context.Background(), int64(n))
}
