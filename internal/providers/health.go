package providers

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/checks"
	"github.com/thand-io/opskit/internal/models"
)

// ConnectionResolver returns the connection settings for a provider.
type ConnectionResolver func(name models.ProviderName) (models.ConnectionConfig, error)

// CheckAll probes every registered provider concurrently and aggregates
// the results into a single report.
func CheckAll(ctx context.Context, resolve ConnectionResolver, version string) *models.HealthReport {

	names := Names()

	report := &models.HealthReport{
		Version:   version,
		Timestamp: float64(time.Now().Unix()),
		Checks:    make(map[string]models.ComponentCheck, len(names)),
	}

	var wg sync.WaitGroup
	var mu sync.Mutex

	for _, name := range names {
		wg.Go(func() {
			check := checkOne(ctx, name, resolve)

			mu.Lock()
			report.Checks[string(name)] = check
			mu.Unlock()
		})
	}

	wg.Wait()

	report.Status = checks.AggregateStatus(report.Checks)

	return report
}

func checkOne(ctx context.Context, name models.ProviderName, resolve ConnectionResolver) models.ComponentCheck {
	started := time.Now()

	conn, err := resolve(name)
	if err != nil {
		return models.NewComponentCheck(started, err)
	}

	provider, err := Create(name, conn)
	if err != nil {
		logrus.WithError(err).WithField("provider", name).Errorln("Failed to create provider")
		return models.NewComponentCheck(started, err)
	}

	return provider.CheckHealth(ctx)
}
