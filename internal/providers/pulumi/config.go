package pulumi

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

// GetConfig returns every config value of stack. Secrets stay encrypted
// unless the CLI is asked to show them.
func (c *Client) GetConfig(ctx context.Context, dir string, stack string) (map[string]any, error) {
	return c.readJSONMap(ctx, dir, "config", "--stack", stackOrDefault(stack), "--json")
}

// SetConfig sets key on stack, optionally as an encrypted secret.
func (c *Client) SetConfig(
	ctx context.Context,
	dir string,
	stack string,
	key string,
	value string,
	secret bool,
) (*models.ConfigSetResult, error) {

	args := []string{"config", "set", key, value, "--stack", stackOrDefault(stack)}
	if secret {
		args = append(args, "--secret")
	}

	output, err := c.run(ctx, 0, dir, args...)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"key":     key,
		"secret":  secret,
		"success": output.Success(),
	}).Infoln("Set stack config")

	return &models.ConfigSetResult{
		Success: output.Success(),
		Key:     key,
	}, nil
}

// RefreshState reconciles the stack state with the actual cloud resources.
func (c *Client) RefreshState(ctx context.Context, dir string, stack string) (*models.CommandResult, error) {

	stack = stackOrDefault(stack)

	output, err := c.run(ctx, RefreshTimeout, dir, "refresh", "--stack", stack, "--yes")
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stack":   stack,
		"success": output.Success(),
	}).Infoln("Refreshed stack")

	return &models.CommandResult{
		Success: output.Success(),
		Output:  output.Stdout,
	}, nil
}
