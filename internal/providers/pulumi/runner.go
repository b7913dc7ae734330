package pulumi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/sirupsen/logrus"
)

// Output is the captured result of one CLI invocation.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

func (o *Output) Success() bool {
	return o != nil && o.ExitCode == 0
}

// Runner executes the pulumi CLI. A non-zero exit code is reported through
// Output; the error is reserved for invocations that could not complete,
// such as a missing binary or an expired context.
type Runner interface {
	Run(ctx context.Context, dir string, args ...string) (*Output, error)
}

type execRunner struct {
	binary string
	token  string
}

// NewExecRunner runs binary as a subprocess. A non-empty token is exported
// as PULUMI_ACCESS_TOKEN.
func NewExecRunner(binary string, token string) Runner {
	return &execRunner{
		binary: binary,
		token:  token,
	}
}

func (r *execRunner) Run(ctx context.Context, dir string, args ...string) (*Output, error) {

	start := time.Now()

	cmd := exec.CommandContext(ctx, r.binary, args...)
	cmd.Dir = dir
	cmd.Env = os.Environ()
	if len(r.token) > 0 {
		cmd.Env = append(cmd.Env, "PULUMI_ACCESS_TOKEN="+r.token)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	logrus.WithFields(logrus.Fields{
		"binary":   r.binary,
		"args":     args,
		"dir":      dir,
		"duration": time.Since(start).String(),
	}).Debugln("Executed pulumi")

	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("pulumi %v: %w", args, ctxErr)
	}

	output := &Output{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return nil, fmt.Errorf("failed to run %s: %w", r.binary, err)
	}

	return output, nil
}
