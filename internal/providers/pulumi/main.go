package pulumi

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers"
)

const (
	DefaultStack = "dev"
	DefaultDir   = "."

	PreviewTimeout = 300 * time.Second
	UpTimeout      = 600 * time.Second
	RefreshTimeout = 300 * time.Second
	DestroyTimeout = 600 * time.Second
)

// Client drives the pulumi CLI. Each method is one invocation in the given
// project directory.
type Client struct {
	runner Runner
}

// NewClient runs the binary named by conn.BaseURL.
func NewClient(conn models.ConnectionConfig) *Client {
	return NewClientWithRunner(NewExecRunner(conn.BaseURL, conn.Token))
}

func NewClientWithRunner(runner Runner) *Client {
	return &Client{runner: runner}
}

func (c *Client) Name() models.ProviderName {
	return models.Pulumi
}

// CheckHealth runs `pulumi version`.
func (c *Client) CheckHealth(ctx context.Context) models.ComponentCheck {
	started := time.Now()

	output, err := c.runner.Run(ctx, "", "version")
	if err == nil && !output.Success() {
		err = fmt.Errorf("pulumi version exited with %d: %s", output.ExitCode, strings.TrimSpace(output.Stderr))
	}
	if err != nil {
		logrus.WithError(err).Debugln("Pulumi health check failed")
	}

	return models.NewComponentCheck(started, err)
}

// run invokes the CLI, bounding it by timeout when one is given.
func (c *Client) run(ctx context.Context, timeout time.Duration, dir string, args ...string) (*Output, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	if len(dir) == 0 {
		dir = DefaultDir
	}

	output, err := c.runner.Run(ctx, dir, args...)
	if err != nil {
		logrus.WithError(err).WithField("args", args).Errorln("Failed to run pulumi")
		return nil, err
	}
	return output, nil
}

func stackOrDefault(stack string) string {
	if len(stack) == 0 {
		return DefaultStack
	}
	return stack
}

func init() {
	providers.Register(models.Pulumi, func(conn models.ConnectionConfig) (providers.ProviderImpl, error) {
		return NewClient(conn), nil
	})
}
