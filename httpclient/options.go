package httpclient

import (
	"net/http"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/sylph/logger"
)

// Option configures an Adapter.
type Option func(*Adapter)

// WithLogger sets the logger used for request debug lines.
func WithLogger(l *logger.Logger) Option {
	return func(a *Adapter) {
		if l != nil {
			a.log = l
		}
	}
}

// WithTracerProvider sets the provider for request spans. Defaults to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(a *Adapter) { a.tracerProvider = tp }
}

// WithMeterProvider sets the provider for request metrics. Defaults to the global provider.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(a *Adapter) { a.meterProvider = mp }
}

// WithPropagator sets the propagator injecting trace context into request
// headers. Defaults to the global propagator.
func WithPropagator(p propagation.TextMapPropagator) Option {
	return func(a *Adapter) { a.propagator = p }
}

// WithRoundTripper replaces the version-aware transports. Version selection
// is then up to rt; redirect policies and timeouts still apply.
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(a *Adapter) { a.roundTripper = rt }
}
