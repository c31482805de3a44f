package resolver

import (
	"context"
	"fmt"
	"time"
	"whoisresolver/pkg/domain"
	"whoisresolver/pkg/logger"
	"whoisresolver/pkg/serrors"
	"whoisresolver/pkg/whois"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const instrumentationName = "whoisresolver/internal/resolver"

// resolver walks the provider chain in order. Providers are consulted
// strictly sequentially: the first registered record wins, an available
// verdict or an error falls through to the next provider, and the last
// provider's outcome is final.
type resolver struct {
	providers []whois.Provider
	tracer    trace.Tracer
	metrics   *instruments
}

var _ Resolver = (*resolver)(nil)

// New returns a Resolver that consults providers in the given order.
// A nil meterProvider means the global one.
func New(providers []whois.Provider, meterProvider metric.MeterProvider) (Resolver, error) {
	if len(providers) == 0 {
		return nil, serrors.With(serrors.ErrConfiguration, "at least one whois provider is required")
	}

	ins, err := newInstruments(meterProvider)
	if err != nil {
		return nil, fmt.Errorf("could not create resolver instruments: %w", err)
	}

	return &resolver{
		providers: providers,
		tracer:    otel.Tracer(instrumentationName),
		metrics:   ins,
	}, nil
}

// Resolve implements Resolver.
func (r *resolver) Resolve(ctx context.Context, name string) (domain.WhoisResult, error) {
	name, err := NormalizeDomain(name)
	if err != nil {
		return domain.WhoisResult{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid domain name")
	}
	ctx = logger.WithFields(ctx, logger.Domain(name))

	var (
		res  domain.WhoisResult
		last whois.Provider
	)
	for i, p := range r.providers {
		last = p
		res, err = r.lookup(ctx, p, name)
		if err == nil && !res.Available {
			return res, nil
		}

		if i == len(r.providers)-1 {
			break
		}
		if ctx.Err() != nil {
			err = serrors.Wrap(serrors.ErrTimeout, ctx.Err(), "lookup cancelled before %s", r.providers[i+1].Name())

			break
		}

		logger.Info(ctx, "falling through to next provider",
			logger.Provider(p.Name()),
			zap.Bool("available", res.Available),
			logger.ErrorKind(err),
			zap.Error(err))
	}

	if err != nil {
		logger.Warn(ctx, "domain could not be resolved",
			logger.Provider(last.Name()),
			logger.ErrorKind(err),
			zap.Error(err))

		return domain.Unresolvable(name, last.Name(), err), nil
	}

	return res, nil
}

// lookup runs a single provider inside its own span and records the outcome.
func (r *resolver) lookup(ctx context.Context, p whois.Provider, name string) (domain.WhoisResult, error) {
	provider := string(p.Name())
	ctx, span := r.tracer.Start(ctx, "whois.provider.lookup", trace.WithAttributes(
		attribute.String("whois.provider", provider),
		attribute.String("whois.domain", name),
	))
	defer span.End()
	ctx = logger.WithFields(ctx, logger.Provider(provider))

	start := time.Now()
	res, err := p.Lookup(ctx, name)
	if err == nil && !res.Available && res.Record == nil {
		err = serrors.With(serrors.ErrInternal, "%s returned neither a verdict nor a record", provider)
	}

	outcome := outcomeOf(res, err)
	r.metrics.record(ctx, provider, outcome, time.Since(start))
	span.SetAttributes(attribute.String("whois.outcome", outcome))
	if err != nil {
		span.SetAttributes(attribute.String("whois.error_kind", serrors.Code(err)))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}

	return res, err
}
