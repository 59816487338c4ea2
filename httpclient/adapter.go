package httpclient

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/sylph/errors"
	"github.com/kbukum/sylph/future"
	"github.com/kbukum/sylph/logger"
	"github.com/kbukum/sylph/observability"
	"github.com/kbukum/sylph/request"
	"github.com/kbukum/sylph/resilience"
)

// Adapter executes request descriptors over net/http. It is safe for
// concurrent use.
type Adapter struct {
	config     Config
	transports *transports
	log        *logger.Logger

	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider
	propagator     propagation.TextMapPropagator
	roundTripper   http.RoundTripper

	tracer  trace.Tracer
	metrics *observability.ClientMetrics

	retry    *resilience.RetryConfig
	breaker  *resilience.CircuitBreaker
	limiter  *resilience.RateLimiter
	bulkhead *resilience.Bulkhead
}

// New creates a new HTTP adapter with the given configuration.
func New(cfg Config, opts ...Option) (*Adapter, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	ts, err := newTransports(tlsCfg)
	if err != nil {
		return nil, err
	}

	a := &Adapter{
		config:     cfg,
		transports: ts,
		log:        logger.Get("httpclient"),
	}
	for _, opt := range opts {
		opt(a)
	}

	a.tracer = observability.Tracer(a.tracerProvider)
	if a.propagator == nil {
		a.propagator = otel.GetTextMapPropagator()
	}
	a.metrics, err = observability.NewClientMetrics(observability.Meter(a.meterProvider))
	if err != nil {
		return nil, err
	}

	if cfg.Retry != nil {
		retry := *cfg.Retry
		a.retry = &retry
	}
	if cfg.CircuitBreaker != nil {
		cb := *cfg.CircuitBreaker
		if cb.IsFailure == nil {
			// Only retryable failures count against the circuit.
			cb.IsFailure = errors.IsRetryable
		}
		a.breaker = resilience.NewCircuitBreaker(cb)
	}
	if cfg.RateLimiter != nil {
		a.limiter = resilience.NewRateLimiter(*cfg.RateLimiter)
	}
	if cfg.Bulkhead != nil {
		a.bulkhead = resilience.NewBulkhead(*cfg.Bulkhead)
	}

	return a, nil
}

// Name returns the transport name.
func (a *Adapter) Name() string {
	return a.config.Name
}

// Config returns the adapter's configuration with defaults applied.
func (a *Adapter) Config() Config {
	return a.config
}

// SendAsync dispatches d on a new goroutine. body is the serialized request
// body, nil for none. ctx governs the exchange: cancelling it fails the
// returned future with a CANCELED transport error.
func (a *Adapter) SendAsync(ctx context.Context, d request.Descriptor, body []byte) *future.Future[*Response] {
	return future.Go(func() (*Response, error) {
		return a.Send(ctx, d, body)
	})
}

// Send executes d and returns the complete response. Transport failures are
// returned as transport errors. With StrictStatus, a 4xx or 5xx response is
// returned together with its classified error.
func (a *Adapter) Send(ctx context.Context, d request.Descriptor, body []byte) (*Response, error) {
	switch {
	case d.Method() == "":
		return nil, errors.MissingMethod()
	case d.URI() == nil:
		return nil, errors.MissingURI()
	}

	if a.retry == nil {
		return a.guarded(ctx, d, body, 1)
	}
	return resilience.Retry(ctx, *a.retry, func(attempt int) (*Response, error) {
		return a.guarded(ctx, d, body, attempt)
	})
}

// guarded runs one attempt through bulkhead, rate limiter and circuit breaker.
func (a *Adapter) guarded(ctx context.Context, d request.Descriptor, body []byte, attempt int) (*Response, error) {
	if a.bulkhead == nil {
		return a.throttled(ctx, d, body, attempt)
	}
	resp, err := resilience.ExecuteWithResult(ctx, a.bulkhead, func() (*Response, error) {
		return a.throttled(ctx, d, body, attempt)
	})
	return resp, transportError(ctx, err)
}

func (a *Adapter) throttled(ctx context.Context, d request.Descriptor, body []byte, attempt int) (*Response, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			if ctx.Err() != nil {
				return nil, transportError(ctx, ctx.Err())
			}
			return nil, err
		}
	}
	if a.breaker == nil {
		return a.exchange(ctx, d, body, attempt)
	}
	var resp *Response
	err := a.breaker.Execute(func() error {
		var execErr error
		resp, execErr = a.exchange(ctx, d, body, attempt)
		return execErr
	})
	return resp, err
}

// exchange performs a single HTTP round trip.
func (a *Adapter) exchange(ctx context.Context, d request.Descriptor, body []byte, attempt int) (*Response, error) {
	timeout := d.Timeout()
	if timeout <= 0 {
		timeout = a.config.Timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID := a.requestID(d)
	if requestID != "" {
		ctx = logger.ContextWithRequestID(ctx, requestID)
	}

	method := d.Method().String()
	ctx, obs := observability.StartRequest(ctx, a.tracer, a.metrics, a.config.Name, method, d.URI(), requestID)

	req, err := a.newRequest(ctx, d, body, requestID)
	if err != nil {
		obs.End(ctx, 0, 0, err)
		return nil, err
	}

	version := d.Version()
	if version == request.VersionDefault {
		version = a.config.version()
	}
	redirect := d.Redirect()
	if redirect == request.RedirectDefault {
		redirect = a.config.redirect()
	}

	log := a.log.WithContext(ctx)
	log.Debug("sending request", logger.Fields(
		logger.FieldMethod, method,
		logger.FieldURL, obs.URL,
		logger.FieldVersion, version.String(),
		logger.FieldAttempt, attempt,
	))

	client := &http.Client{
		Transport:     a.roundTripperFor(version),
		CheckRedirect: redirectPolicy(redirect),
	}
	httpResp, err := client.Do(req)
	if err != nil {
		err = transportError(ctx, err)
		obs.End(ctx, 0, 0, err)
		return nil, err
	}
	defer func() { _ = httpResp.Body.Close() }()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		err = transportError(ctx, fmt.Errorf("read response body: %w", err))
		obs.End(ctx, httpResp.StatusCode, 0, err)
		return nil, err
	}

	resp := &Response{
		StatusCode: httpResp.StatusCode,
		Headers:    flattenHeaders(httpResp.Header),
		Body:       data,
		Proto:      httpResp.Proto,
	}
	obs.SetProtocol(strings.TrimPrefix(httpResp.Proto, "HTTP/"))

	var statusErr error
	if a.config.StrictStatus {
		if e := errors.FromStatus(resp.StatusCode, data); e != nil {
			statusErr = e
		}
	}
	obs.End(ctx, resp.StatusCode, len(data), statusErr)

	log.Debug("request completed", logger.MergeWithDuration(logger.Fields(
		logger.FieldMethod, method,
		logger.FieldStatus, resp.StatusCode,
		logger.FieldBytes, len(data),
		"proto", resp.Proto,
	), obs.Duration()))

	return resp, statusErr
}

// newRequest builds the *http.Request for d. Precedence for headers is
// config defaults, then descriptor headers, then auth.
func (a *Adapter) newRequest(ctx context.Context, d request.Descriptor, body []byte, requestID string) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	uri := d.URI().String()
	req, err := http.NewRequestWithContext(ctx, d.Method().String(), uri, reader)
	if err != nil {
		return nil, errors.InvalidURI(uri, err)
	}

	for k, v := range a.config.Headers {
		req.Header.Set(k, v)
	}
	d.Headers().Each(func(name, value string) {
		req.Header.Set(name, value)
	})
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", a.config.UserAgent)
	}
	if requestID != "" {
		req.Header.Set(a.config.RequestIDHeader, requestID)
	}
	if err := a.config.Auth.apply(req); err != nil {
		return nil, err
	}

	a.propagator.Inject(ctx, propagation.HeaderCarrier(req.Header))
	return req, nil
}

// requestID returns the ID carried by d or a fresh one. Empty when disabled.
func (a *Adapter) requestID(d request.Descriptor) string {
	name := a.config.RequestIDHeader
	if name == DisableRequestID {
		return ""
	}
	if id := d.Header(name); id != "" {
		return id
	}
	return uuid.NewString()
}

func (a *Adapter) roundTripperFor(v request.Version) http.RoundTripper {
	if a.roundTripper != nil {
		return a.roundTripper
	}
	return a.transports.forVersion(v)
}

// CheckHealth reports the transport health from its circuit breaker state.
func (a *Adapter) CheckHealth(_ context.Context) observability.Health {
	h := observability.Health{
		Name:    a.config.Name,
		Status:  observability.HealthStatusUp,
		Details: map[string]string{},
	}
	if a.bulkhead != nil {
		h.Details["in_flight"] = fmt.Sprintf("%d", a.bulkhead.InUse())
	}
	if a.breaker == nil {
		return h
	}

	state := a.breaker.State()
	h.Details["circuit"] = state.String()
	switch state {
	case resilience.StateOpen:
		h.Status = observability.HealthStatusDown
		h.Message = "circuit breaker is open"
	case resilience.StateHalfOpen:
		h.Status = observability.HealthStatusDegraded
		h.Message = "circuit breaker is probing"
	}
	return h
}

// Close releases idle connections held by the adapter.
func (a *Adapter) Close(_ context.Context) error {
	a.transports.closeIdle()
	return nil
}
