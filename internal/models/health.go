package models

import "time"

type HealthStatus string

const (
	Healthy   HealthStatus = "healthy"
	Degraded  HealthStatus = "degraded"
	Unhealthy HealthStatus = "unhealthy"
)

type CheckStatus string

const (
	CheckUp   CheckStatus = "up"
	CheckDown CheckStatus = "down"
)

// ComponentCheck is the result of probing a single dependency.
type ComponentCheck struct {
	Status    CheckStatus `json:"status" yaml:"status"`
	LatencyMs float64     `json:"latency_ms" yaml:"latency_ms"`
	Error     string      `json:"error,omitempty" yaml:"error,omitempty"`
}

/*
status: healthy
version: 1.0.0
timestamp: 1705314600
checks:

	database:
	  status: up
	  latency_ms: 2
*/
type HealthReport struct {
	Status    HealthStatus              `json:"status" yaml:"status"`
	Version   string                    `json:"version" yaml:"version"`
	Timestamp float64                   `json:"timestamp" yaml:"timestamp"`
	Checks    map[string]ComponentCheck `json:"checks" yaml:"checks"`
}

func NewComponentCheck(started time.Time, err error) ComponentCheck {
	check := ComponentCheck{
		Status:    CheckUp,
		LatencyMs: float64(time.Since(started).Milliseconds()),
	}
	if err != nil {
		check.Status = CheckDown
		check.Error = err.Error()
	}
	return check
}
