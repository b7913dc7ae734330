package patterns

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/opskit/internal/models"
)

func TestDeployBuiltInStrategies(t *testing.T) {
	tests := []struct {
		strategy string
		expected string
		steps    int
	}{
		{"", "rolling", DefaultReplicas},
		{"rolling", "rolling", DefaultReplicas},
		{"blue-green", "blue-green", 3},
		{"canary", "canary", 3},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result, err := Deploy(context.Background(), "api-service", "2.1.0", tt.strategy, DeployOptions{})
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Strategy)
			assert.Equal(t, "api-service", result.Service)
			assert.Equal(t, "2.1.0", result.Version)
			assert.Equal(t, "success", result.Status)
			assert.Len(t, result.Steps, tt.steps)
			assert.GreaterOrEqual(t, result.Duration, 0.0)
		})
	}
}

func TestDeployOptions(t *testing.T) {
	rolling, err := Deploy(context.Background(), "web", "1.0.0", "rolling", DeployOptions{Replicas: 5})
	require.NoError(t, err)
	assert.Len(t, rolling.Steps, 5)
	assert.Equal(t, "Instance 5/5 updated", rolling.Steps[4])

	canary, err := Deploy(context.Background(), "web", "1.0.0", "canary", DeployOptions{CanaryPercent: 5})
	require.NoError(t, err)
	assert.Equal(t, "Routing 5% traffic to canary", canary.Steps[0])
}

func TestDeployMeasuresDuration(t *testing.T) {
	result, err := Deploy(context.Background(), "web", "1.0.0", "blue-green", DeployOptions{StepDelay: 10 * time.Millisecond})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.Duration, 0.03)
}

func TestDeployCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Deploy(ctx, "web", "1.0.0", "rolling", DeployOptions{StepDelay: time.Second})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDeployUnknownStrategy(t *testing.T) {
	_, err := Deploy(context.Background(), "web", "1.0.0", "big-bang", DeployOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownStrategy))
	assert.Contains(t, err.Error(), "blue-green")
}

func TestRegisterDeployStrategy(t *testing.T) {
	RegisterDeployStrategy("recreate", func(ctx context.Context, req models.DeployRequest) (*models.DeployResult, error) {
		return &models.DeployResult{
			Strategy: "recreate",
			Service:  req.Service,
			Version:  req.Version,
			Status:   "success",
			Steps:    []string{"Stopping old instances", "Starting new instances"},
		}, nil
	})

	assert.Contains(t, DeployStrategies(), "recreate")

	result, err := Deploy(context.Background(), "batch-worker", "1.5.0", "recreate", DeployOptions{})
	require.NoError(t, err)
	assert.Equal(t, "recreate", result.Strategy)
	assert.Equal(t, "batch-worker", result.Service)
}

func TestDeployStrategyWithoutResult(t *testing.T) {
	RegisterDeployStrategy("noop", func(ctx context.Context, req models.DeployRequest) (*models.DeployResult, error) {
		return nil, nil
	})

	result, err := Deploy(context.Background(), "batch-worker", "1.5.0", "noop", DeployOptions{})
	assert.Error(t, err)
	assert.Nil(t, result)
}

func TestCreateBackup(t *testing.T) {
	tests := []struct {
		strategy string
		kind     string
		size     string
	}{
		{"", "incremental", "small"},
		{"full", "full", "large"},
		{"incremental", "incremental", "small"},
		{"snapshot", "snapshot", "varies"},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			plan, err := CreateBackup("production-db", "s3://backups/", tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, &models.BackupPlan{
				Type:         tt.kind,
				Resource:     "production-db",
				Destination:  "s3://backups/",
				SizeEstimate: tt.size,
			}, plan)
		})
	}

	_, err := CreateBackup("production-db", "s3://backups/", "differential")
	assert.ErrorIs(t, err, ErrUnknownStrategy)
}
