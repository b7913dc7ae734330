package pulumi

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

type stackEntry struct {
	Name          string `json:"name"`
	Current       bool   `json:"current"`
	LastUpdate    string `json:"lastUpdate"`
	ResourceCount int    `json:"resourceCount"`
	URL           string `json:"url"`
}

type previewOutput struct {
	ChangeSummary map[string]int `json:"changeSummary"`
}

// ListStacks lists the stacks of the project in dir. A failed command or
// unparsable output yields an empty list.
func (c *Client) ListStacks(ctx context.Context, dir string) ([]models.StackSummary, error) {

	output, err := c.run(ctx, 0, dir, "stack", "ls", "--json")
	if err != nil {
		return nil, err
	}

	stacks := []models.StackSummary{}

	if !output.Success() {
		logrus.WithField("stderr", output.Stderr).Warnln("pulumi stack ls failed")
		return stacks, nil
	}

	var entries []stackEntry
	if err := json.Unmarshal([]byte(output.Stdout), &entries); err != nil {
		logrus.WithError(err).Warnln("Failed to parse pulumi stack ls output")
		return stacks, nil
	}

	for _, entry := range entries {
		stacks = append(stacks, models.StackSummary{
			Name:          entry.Name,
			Current:       entry.Current,
			LastUpdate:    entry.LastUpdate,
			ResourceCount: entry.ResourceCount,
			URL:           entry.URL,
		})
	}

	logrus.Infof("Listed %d stacks", len(stacks))

	return stacks, nil
}

// GetStackOutputs returns the outputs of stack, or an empty map when the
// command fails.
func (c *Client) GetStackOutputs(ctx context.Context, dir string, stack string) (map[string]any, error) {
	return c.readJSONMap(ctx, dir, "stack", "output", "--stack", stackOrDefault(stack), "--json")
}

func (c *Client) readJSONMap(ctx context.Context, dir string, args ...string) (map[string]any, error) {

	output, err := c.run(ctx, 0, dir, args...)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}

	if !output.Success() {
		logrus.WithFields(logrus.Fields{
			"args":   args,
			"stderr": output.Stderr,
		}).Warnln("pulumi command failed")
		return values, nil
	}

	if err := json.Unmarshal([]byte(output.Stdout), &values); err != nil {
		logrus.WithError(err).WithField("args", args).Warnln("Failed to parse pulumi output")
		return map[string]any{}, nil
	}

	return values, nil
}

// PreviewStack previews pending changes. Output that is not JSON is
// returned verbatim in Raw.
func (c *Client) PreviewStack(ctx context.Context, dir string, stack string) (*models.PreviewResult, error) {

	stack = stackOrDefault(stack)

	output, err := c.run(ctx, PreviewTimeout, dir, "preview", "--stack", stack, "--json")
	if err != nil {
		return nil, err
	}

	if !output.Success() {
		return &models.PreviewResult{
			OperationResult: models.OperationResult{
				Status: models.StatusError,
				Stderr: output.Stderr,
			},
		}, nil
	}

	var preview previewOutput
	if err := json.Unmarshal([]byte(output.Stdout), &preview); err != nil {
		return &models.PreviewResult{
			OperationResult: models.OperationResult{Status: models.StatusOK},
			Raw:             output.Stdout,
		}, nil
	}

	if preview.ChangeSummary == nil {
		preview.ChangeSummary = map[string]int{}
	}

	logrus.WithField("stack", stack).Infoln("Previewed stack")

	return &models.PreviewResult{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		Stack:           stack,
		Changes:         preview.ChangeSummary,
	}, nil
}

// DeployStack runs `pulumi up`. Without yes the CLI asks for confirmation
// and fails when stdin is not a terminal.
func (c *Client) DeployStack(ctx context.Context, dir string, stack string, yes bool) (*models.CommandResult, error) {

	stack = stackOrDefault(stack)

	args := []string{"up", "--stack", stack}
	if yes {
		args = append(args, "--yes")
	}

	output, err := c.run(ctx, UpTimeout, dir, args...)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stack":   stack,
		"success": output.Success(),
	}).Infoln("Deployed stack")

	return &models.CommandResult{
		Success: output.Success(),
		Output:  output.Stdout,
		Stderr:  output.Stderr,
	}, nil
}

// InitStack creates a new stack.
func (c *Client) InitStack(ctx context.Context, dir string, name string) (*models.StackInitResult, error) {

	output, err := c.run(ctx, 0, dir, "stack", "init", name)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stack":   name,
		"success": output.Success(),
	}).Infoln("Initialised stack")

	return &models.StackInitResult{
		Success: output.Success(),
		Stack:   name,
	}, nil
}

// DestroyStack destroys every resource in the stack.
func (c *Client) DestroyStack(ctx context.Context, dir string, name string, yes bool) (*models.CommandResult, error) {

	name = stackOrDefault(name)

	args := []string{"destroy", "--stack", name}
	if yes {
		args = append(args, "--yes")
	}

	output, err := c.run(ctx, DestroyTimeout, dir, args...)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"stack":   name,
		"success": output.Success(),
	}).Infoln("Destroyed stack")

	return &models.CommandResult{
		Success: output.Success(),
		Output:  output.Stdout,
	}, nil
}
