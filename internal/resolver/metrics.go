package resolver

import (
	"context"
	"fmt"
	"time"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcomes recorded on the lookup counter.
const (
	OutcomeRegistered = "registered"
	OutcomeAvailable  = "available"
	OutcomeError      = "error"
)

type instruments struct {
	lookups  metric.Int64Counter
	duration metric.Float64Histogram
}

func newInstruments(mp metric.MeterProvider) (*instruments, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(instrumentationName)

	lookups, err := meter.Int64Counter("whois.provider.lookups",
		metric.WithDescription("Provider lookups by outcome"),
		metric.WithUnit("{lookup}"))
	if err != nil {
		return nil, fmt.Errorf("could not create lookups counter: %w", err)
	}

	duration, err := meter.Float64Histogram("whois.provider.duration",
		metric.WithDescription("Provider lookup latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create duration histogram: %w", err)
	}

	return &instruments{lookups: lookups, duration: duration}, nil
}

func (i *instruments) record(ctx context.Context, provider, outcome string, took time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("provider", provider),
		attribute.String("outcome", outcome),
	)
	i.lookups.Add(ctx, 1, attrs)
	i.duration.Record(ctx, took.Seconds(), attrs)
}

func outcomeOf(res domain.WhoisResult, err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case res.Available:
		return OutcomeAvailable
	default:
		return OutcomeRegistered
	}
}
