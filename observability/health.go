package observability

import "context"

// HealthStatus is the coarse state of a client transport.
type HealthStatus string

const (
	HealthStatusUp       HealthStatus = "up"
	HealthStatusDegraded HealthStatus = "degraded"
	HealthStatusDown     HealthStatus = "down"
	HealthStatusUnknown  HealthStatus = "unknown"
)

// Health is a point-in-time report. Details carry resilience state such as
// the circuit position and the in-flight count.
type Health struct {
	Name    string            `json:"name"`
	Status  HealthStatus      `json:"status"`
	Message string            `json:"message,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// IsUp reports whether requests are expected to go through.
func (h Health) IsUp() bool { return h.Status == HealthStatusUp }

// HealthChecker is implemented by transports that can report their health.
type HealthChecker interface {
	CheckHealth(ctx context.Context) Health
}

// CheckHealth returns target's report when it implements HealthChecker and
// an unknown status otherwise.
func CheckHealth(ctx context.Context, name string, target any) Health {
	if hc, ok := target.(HealthChecker); ok {
		return hc.CheckHealth(ctx)
	}
	return Health{
		Name:    name,
		Status:  HealthStatusUnknown,
		Message: "transport does not report health",
	}
}
