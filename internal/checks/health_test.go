package checks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
)

func sampleReport() *models.HealthReport {
	return &models.HealthReport{
		Status:    models.Healthy,
		Version:   "1.0.0",
		Timestamp: float64(time.Now().Unix()),
		Checks: map[string]models.ComponentCheck{
			"database": {Status: models.CheckUp, LatencyMs: 2},
			"cache":    {Status: models.CheckUp, LatencyMs: 1},
		},
	}
}

func TestValidateHealthReport(t *testing.T) {
	assert.NoError(t, ValidateHealthReport(sampleReport()))

	for _, status := range []models.HealthStatus{models.Healthy, models.Degraded, models.Unhealthy} {
		report := sampleReport()
		report.Status = status
		assert.NoError(t, ValidateHealthReport(report), "status %s", status)
	}
}

func TestValidateHealthReport_Invalid(t *testing.T) {
	badStatus := sampleReport()
	badStatus.Status = "ok"

	missingCheckStatus := sampleReport()
	missingCheckStatus.Checks["queue"] = models.ComponentCheck{LatencyMs: 5}

	noChecks := sampleReport()
	noChecks.Checks = nil

	tests := []struct {
		name   string
		report *models.HealthReport
	}{
		{"nil", nil},
		{"bad status", badStatus},
		{"check without status", missingCheckStatus},
		{"no checks", noChecks},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateHealthReport(tt.report))
		})
	}
}

func TestAggregateStatus(t *testing.T) {
	up := models.ComponentCheck{Status: models.CheckUp}
	down := models.ComponentCheck{Status: models.CheckDown}

	tests := []struct {
		name     string
		checks   map[string]models.ComponentCheck
		expected models.HealthStatus
	}{
		{"all up", map[string]models.ComponentCheck{"a": up, "b": up}, models.Healthy},
		{"some down", map[string]models.ComponentCheck{"a": up, "b": down}, models.Degraded},
		{"all down", map[string]models.ComponentCheck{"a": down, "b": down}, models.Unhealthy},
		{"empty", map[string]models.ComponentCheck{}, models.Healthy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AggregateStatus(tt.checks))
		})
	}
}

func TestValidateDecodedHealthReport(t *testing.T) {
	payload := []byte(`{
  "status": "healthy",
  "version": "1.0.0",
  "timestamp": 1705314600.123,
  "checks": {
    "database": {"status": "up", "latency_ms": 2.5},
    "cache": {"status": "up", "latency_ms": 1}
  }
}`)

	report, err := common.ReadDataToInterface[models.HealthReport](payload)
	require.NoError(t, err)

	assert.InDelta(t, 1705314600.123, report.Timestamp, 0.0001)
	assert.InDelta(t, 2.5, report.Checks["database"].LatencyMs, 0.0001)
	assert.NoError(t, ValidateHealthReport(report))
}
