package patterns

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

const (
	DefaultDeployStrategy = "rolling"
	DefaultBackupStrategy = "incremental"

	DefaultReplicas      = 3
	DefaultCanaryPercent = 10
)

var ErrUnknownStrategy = errors.New("unknown strategy")

// DeployStrategy rolls req out and describes the steps it took.
type DeployStrategy func(ctx context.Context, req models.DeployRequest) (*models.DeployResult, error)

// DeployOptions tune the built-in strategies. Zero values select the
// defaults; a zero StepDelay does not pause between steps.
type DeployOptions struct {
	Replicas      int
	CanaryPercent int
	StepDelay     time.Duration
}

var (
	deployStrategies = map[string]DeployStrategy{
		"rolling":    deployRolling,
		"blue-green": deployBlueGreen,
		"canary":     deployCanary,
	}
	deployMutex sync.RWMutex
)

// RegisterDeployStrategy adds or replaces a named strategy.
func RegisterDeployStrategy(name string, strategy DeployStrategy) {
	deployMutex.Lock()
	defer deployMutex.Unlock()
	deployStrategies[name] = strategy
	logrus.Infof("Registered deployment strategy: %s", name)
}

func DeployStrategies() []string {
	deployMutex.RLock()
	defer deployMutex.RUnlock()
	return slices.Sorted(maps.Keys(deployStrategies))
}

// Deploy runs the named strategy, rolling by default, and records how long
// it took.
func Deploy(ctx context.Context, service string, version string, strategy string, opts DeployOptions) (*models.DeployResult, error) {

	if len(strategy) == 0 {
		strategy = DefaultDeployStrategy
	}

	deployMutex.RLock()
	deployFunc, ok := deployStrategies[strategy]
	deployMutex.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s. Available: %v", ErrUnknownStrategy, strategy, DeployStrategies())
	}

	req := models.DeployRequest{
		Service:       service,
		Version:       version,
		Replicas:      opts.Replicas,
		CanaryPercent: opts.CanaryPercent,
		StepDelay:     opts.StepDelay,
	}
	if req.Replicas <= 0 {
		req.Replicas = DefaultReplicas
	}
	if req.CanaryPercent <= 0 {
		req.CanaryPercent = DefaultCanaryPercent
	}

	logrus.WithFields(logrus.Fields{
		"service":  service,
		"version":  version,
		"strategy": strategy,
	}).Infoln("Deploying")

	start := time.Now()

	result, err := deployFunc(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s deployment of %s failed: %w", strategy, service, err)
	}
	if result == nil {
		return nil, fmt.Errorf("%s deployment of %s returned no result", strategy, service)
	}

	result.Duration = math.Round(time.Since(start).Seconds()*1000) / 1000

	return result, nil
}

func pause(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(delay):
		return nil
	}
}

// runSteps pauses before each step and stops at the first cancellation.
func runSteps(ctx context.Context, strategy string, req models.DeployRequest, steps []string) (*models.DeployResult, error) {
	for _, step := range steps {
		if err := pause(ctx, req.StepDelay); err != nil {
			return nil, err
		}
		logrus.WithField("service", req.Service).Debugln(step)
	}
	return &models.DeployResult{
		Strategy: strategy,
		Service:  req.Service,
		Version:  req.Version,
		Status:   "success",
		Steps:    steps,
	}, nil
}

func deployRolling(ctx context.Context, req models.DeployRequest) (*models.DeployResult, error) {
	steps := make([]string, 0, req.Replicas)
	for i := range req.Replicas {
		steps = append(steps, fmt.Sprintf("Instance %d/%d updated", i+1, req.Replicas))
	}
	return runSteps(ctx, "rolling", req, steps)
}

func deployBlueGreen(ctx context.Context, req models.DeployRequest) (*models.DeployResult, error) {
	return runSteps(ctx, "blue-green", req, []string{
		"Spinning up green environment",
		"Running health checks on green",
		"Switching traffic from blue to green",
	})
}

func deployCanary(ctx context.Context, req models.DeployRequest) (*models.DeployResult, error) {
	return runSteps(ctx, "canary", req, []string{
		fmt.Sprintf("Routing %d%% traffic to canary", req.CanaryPercent),
		"Monitoring error rates",
		"Canary healthy, promoting to 100%",
	})
}

type backupStrategy func(resource string, destination string) *models.BackupPlan

var backupStrategies = map[string]backupStrategy{
	"full":        newBackupPlan("full", "large"),
	"incremental": newBackupPlan("incremental", "small"),
	"snapshot":    newBackupPlan("snapshot", "varies"),
}

func newBackupPlan(kind string, size string) backupStrategy {
	return func(resource string, destination string) *models.BackupPlan {
		return &models.BackupPlan{
			Type:         kind,
			Resource:     resource,
			Destination:  destination,
			SizeEstimate: size,
		}
	}
}

func BackupStrategies() []string {
	return slices.Sorted(maps.Keys(backupStrategies))
}

// CreateBackup plans a backup of resource to destination, incremental by
// default.
func CreateBackup(resource string, destination string, strategy string) (*models.BackupPlan, error) {

	if len(strategy) == 0 {
		strategy = DefaultBackupStrategy
	}

	plan, ok := backupStrategies[strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %s. Available: %v", ErrUnknownStrategy, strategy, BackupStrategies())
	}

	return plan(resource, destination), nil
}
