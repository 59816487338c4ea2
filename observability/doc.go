// Package observability provides the OpenTelemetry tracing and metrics used
// by the sylph HTTP transport.
//
// Providers are installed once per process:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("my-service"))
//	defer tp.Shutdown(ctx)
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("my-service"))
//	defer mp.Shutdown(ctx)
//
// The transport then wraps each request in a RequestObservation, which opens
// an "http.request" client span and records the http.client.* instruments.
package observability
