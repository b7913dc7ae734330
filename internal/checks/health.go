package checks

import (
	"fmt"
	"slices"

	"github.com/thand-io/opskit/internal/models"
)

var validHealthStatuses = []models.HealthStatus{
	models.Healthy,
	models.Degraded,
	models.Unhealthy,
}

// ValidateHealthReport checks that the report status is one of healthy,
// degraded or unhealthy and that every check carries a status.
func ValidateHealthReport(report *models.HealthReport) error {
	if report == nil {
		return fmt.Errorf("health report is nil")
	}

	if !slices.Contains(validHealthStatuses, report.Status) {
		return fmt.Errorf("invalid health status: %q", report.Status)
	}

	if report.Checks == nil {
		return fmt.Errorf("health report has no checks")
	}

	for name, check := range report.Checks {
		if len(check.Status) == 0 {
			return fmt.Errorf("check '%s' missing status", name)
		}
	}

	return nil
}

// AggregateStatus derives the overall status from individual checks: all
// up is healthy, none up is unhealthy, anything in between is degraded. An
// empty set of checks is healthy.
func AggregateStatus(checks map[string]models.ComponentCheck) models.HealthStatus {
	up := 0
	for _, check := range checks {
		if check.Status == models.CheckUp {
			up++
		}
	}

	switch {
	case up == len(checks):
		return models.Healthy
	case up == 0:
		return models.Unhealthy
	default:
		return models.Degraded
	}
}
