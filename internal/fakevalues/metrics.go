package fakevalues

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// instrumentationName scopes the meter and tracer used by Resolver.
const instrumentationName = "github.com/abhisek/llmfaker/internal/fakevalues"

// metrics records cache and refill activity.
type metrics struct {
	hits         metric.Int64Counter
	misses       metric.Int64Counter
	refills      metric.Int64Counter
	failures     metric.Int64Counter
	durationHist metric.Float64Histogram
}

func newMetrics(meter metric.Meter) (*metrics, error) {
	hits, err := meter.Int64Counter(
		"llmfaker.cache.hits",
		metric.WithDescription("Lookups served from a non-empty pool"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	misses, err := meter.Int64Counter(
		"llmfaker.cache.misses",
		metric.WithDescription("Lookups that found the pool empty"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	refills, err := meter.Int64Counter(
		"llmfaker.cache.refills",
		metric.WithDescription("Backend fetches that filled a pool"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	failures, err := meter.Int64Counter(
		"llmfaker.cache.refill_failures",
		metric.WithDescription("Backend fetches that produced no candidates"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"llmfaker.refill.duration",
		metric.WithDescription("Backend fetch duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &metrics{
		hits:         hits,
		misses:       misses,
		refills:      refills,
		failures:     failures,
		durationHist: durationHist,
	}, nil
}

func (m *metrics) recordLookup(ctx context.Context, key string, hit bool) {
	opt := metric.WithAttributes(attribute.String("llmfaker.key", key))
	if hit {
		m.hits.Add(ctx, 1, opt)
	} else {
		m.misses.Add(ctx, 1, opt)
	}
}

func (m *metrics) recordRefill(ctx context.Context, key string, duration time.Duration, reason string) {
	attrs := []attribute.KeyValue{attribute.String("llmfaker.key", key)}
	if reason == "" {
		m.refills.Add(ctx, 1, metric.WithAttributes(attrs...))
	} else {
		m.failures.Add(ctx, 1, metric.WithAttributes(append(attrs, attribute.String("llmfaker.reason", reason))...))
	}
	m.durationHist.Record(ctx, float64(duration.Milliseconds()), metric.WithAttributes(attrs...))
}
