package views

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var meter = otel.Meter("liveview.views")

var (
	viewRefreshes metric.Int64Counter
	viewChanges   metric.Int64Counter

	metricsOnce sync.Once
	metricsErr  error
)

func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		viewRefreshes, err = meter.Int64Counter(
			"view_refreshes_total",
			metric.WithDescription("Refreshes run by live views"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		viewChanges, err = meter.Int64Counter(
			"view_changes_total",
			metric.WithDescription("Collection changes published by live views"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

func recordRefresh(kind string, changes int) {
	if err := initMetrics(); err != nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("view", kind))
	viewRefreshes.Add(context.Background(), 1, attrs)
	if changes > 0 {
		viewChanges.Add(context.Background(), int64(changes), attrs)
	}
}
