// Package metrics holds the OpenTelemetry setup shared by the lookup API and
// the provider chain. Instruments are exported in Prometheus format.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds. Provider
// calls are bounded by their own timeouts (10-15s) so the upper buckets matter.
var DefaultBuckets = []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10, 15} //nolint: gochecknoglobals

// NewMeterProvider returns a meter provider whose instruments are collected
// by registerer. A nil registerer means prometheus.DefaultRegisterer, which
// is what promhttp.Handler serves.
func NewMeterProvider(registerer prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	exp, err := otelprom.New(otelprom.WithRegisterer(registerer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}
