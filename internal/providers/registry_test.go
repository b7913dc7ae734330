package providers

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thand-io/opskit/internal/models"
)

type fakeProvider struct {
	name   models.ProviderName
	status models.CheckStatus
}

func (f *fakeProvider) Name() models.ProviderName {
	return f.name
}

func (f *fakeProvider) CheckHealth(ctx context.Context) models.ComponentCheck {
	return models.ComponentCheck{Status: f.status}
}

func fakeConstructor(name models.ProviderName, status models.CheckStatus) Constructor {
	return func(conn models.ConnectionConfig) (ProviderImpl, error) {
		return &fakeProvider{name: name, status: status}, nil
	}
}

// withRegistry swaps in an empty registry for the duration of the test.
func withRegistry(t *testing.T) {
	t.Helper()
	registryMutex.Lock()
	saved := registry
	registry = make(map[models.ProviderName]Constructor)
	registryMutex.Unlock()

	t.Cleanup(func() {
		registryMutex.Lock()
		registry = saved
		registryMutex.Unlock()
	})
}

func TestRegisterFirstWins(t *testing.T) {
	withRegistry(t)

	Register("Grafana", fakeConstructor(models.Grafana, models.CheckUp))
	Register(models.Grafana, fakeConstructor(models.Grafana, models.CheckDown))

	provider, err := Create(models.Grafana, models.ConnectionConfig{})
	require.NoError(t, err)
	assert.Equal(t, models.CheckUp, provider.CheckHealth(context.Background()).Status)
}

func TestSetAndRemove(t *testing.T) {
	withRegistry(t)

	Register(models.Vault, fakeConstructor(models.Vault, models.CheckUp))
	Set(models.Vault, fakeConstructor(models.Vault, models.CheckDown))

	provider, err := Create(models.Vault, models.ConnectionConfig{})
	require.NoError(t, err)
	assert.Equal(t, models.CheckDown, provider.CheckHealth(context.Background()).Status)

	Remove(models.Vault)
	_, err = Get(models.Vault)
	assert.Error(t, err)
}

func TestNamesSorted(t *testing.T) {
	withRegistry(t)

	Register(models.Vault, fakeConstructor(models.Vault, models.CheckUp))
	Register(models.Grafana, fakeConstructor(models.Grafana, models.CheckUp))
	Register(models.Pulumi, fakeConstructor(models.Pulumi, models.CheckUp))

	assert.Equal(t, []models.ProviderName{models.Grafana, models.Pulumi, models.Vault}, Names())
}

func resolveAll(name models.ProviderName) (models.ConnectionConfig, error) {
	return models.ConnectionConfig{Provider: name}, nil
}

func TestCheckAll(t *testing.T) {
	tests := []struct {
		name     string
		statuses map[models.ProviderName]models.CheckStatus
		expected models.HealthStatus
	}{
		{
			name: "all up",
			statuses: map[models.ProviderName]models.CheckStatus{
				models.Grafana: models.CheckUp,
				models.Vault:   models.CheckUp,
			},
			expected: models.Healthy,
		},
		{
			name: "one down",
			statuses: map[models.ProviderName]models.CheckStatus{
				models.Grafana: models.CheckUp,
				models.Vault:   models.CheckDown,
			},
			expected: models.Degraded,
		},
		{
			name: "all down",
			statuses: map[models.ProviderName]models.CheckStatus{
				models.Grafana: models.CheckDown,
				models.Vault:   models.CheckDown,
			},
			expected: models.Unhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistry(t)
			for name, status := range tt.statuses {
				Register(name, fakeConstructor(name, status))
			}

			report := CheckAll(context.Background(), resolveAll, "1.2.3")

			assert.Equal(t, tt.expected, report.Status)
			assert.Equal(t, "1.2.3", report.Version)
			assert.NotZero(t, report.Timestamp)
			assert.Len(t, report.Checks, len(tt.statuses))
		})
	}
}

func TestCheckAllResolveAndConstructFailures(t *testing.T) {
	withRegistry(t)

	Register(models.Grafana, fakeConstructor(models.Grafana, models.CheckUp))
	Register(models.Vault, func(conn models.ConnectionConfig) (ProviderImpl, error) {
		return nil, errors.New("bad address")
	})
	Register(models.Pulumi, fakeConstructor(models.Pulumi, models.CheckUp))

	resolve := func(name models.ProviderName) (models.ConnectionConfig, error) {
		if name == models.Pulumi {
			return models.ConnectionConfig{}, errors.New("no binary")
		}
		return models.ConnectionConfig{Provider: name}, nil
	}

	report := CheckAll(context.Background(), resolve, "dev")

	assert.Equal(t, models.Degraded, report.Status)
	assert.Equal(t, models.CheckUp, report.Checks["grafana"].Status)
	assert.Equal(t, models.CheckDown, report.Checks["vault"].Status)
	assert.Equal(t, "bad address", report.Checks["vault"].Error)
	assert.Equal(t, models.CheckDown, report.Checks["pulumi"].Status)
	assert.Equal(t, "no binary", report.Checks["pulumi"].Error)
}
