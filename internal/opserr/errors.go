package opserr

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
)

const DefaultCode = "OPS_ERROR"

// Category sentinels. An *Error matches its category with errors.Is.
var (
	ErrCloudProvider = errors.New("cloud provider error")
	ErrKubernetes    = errors.New("kubernetes error")
	ErrPipeline      = errors.New("pipeline error")
)

// Error is the structured error shared by the toolkit. Code is a stable
// machine readable identifier, Context carries the resource details and
// Retryable marks transient failures.
type Error struct {
	Kind      string
	Code      string
	Message   string
	Context   map[string]any
	Retryable bool

	category error
}

func New(message string, code string, context map[string]any, retryable bool) *Error {
	if len(code) == 0 {
		code = DefaultCode
	}
	if context == nil {
		context = map[string]any{}
	}
	return &Error{
		Kind:      "OpsError",
		Code:      code,
		Message:   message,
		Context:   context,
		Retryable: retryable,
	}
}

func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("[%s] %s", e.Code, e.Message)}

	if len(e.Context) > 0 {
		keys := slices.Sorted(maps.Keys(e.Context))
		pairs := make([]string, 0, len(keys))
		for _, k := range keys {
			pairs = append(pairs, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		parts = append(parts, "Context: "+strings.Join(pairs, ", "))
	}

	if e.Retryable {
		parts = append(parts, "(retryable)")
	}

	return strings.Join(parts, " | ")
}

func (e *Error) Is(target error) bool {
	return e.category != nil && e.category == target
}

// ToMap converts the error into a map for structured logging and API
// responses.
func (e *Error) ToMap() map[string]any {
	return map[string]any{
		"error_code": e.Code,
		"message":    e.Message,
		"context":    e.Context,
		"retryable":  e.Retryable,
		"type":       e.Kind,
	}
}

func (e *Error) with(kind string, category error) *Error {
	e.Kind = kind
	e.category = category
	return e
}

// Handle logs err at a level matching its retryability and returns its map
// form. Errors that are not an *Error are wrapped as a generic one.
func Handle(err error) map[string]any {
	if err == nil {
		return nil
	}

	var opsErr *Error
	if !errors.As(err, &opsErr) {
		opsErr = New(err.Error(), "", nil, false)
	}

	entry := logrus.WithFields(logrus.Fields{
		"code":      opsErr.Code,
		"retryable": opsErr.Retryable,
	})

	if opsErr.Retryable {
		entry.Warnf("Retryable error: %s", opsErr)
	} else {
		entry.Errorf("Permanent error: %s", opsErr)
	}

	return opsErr.ToMap()
}

// IsRetryable reports whether any *Error in err's chain is retryable.
func IsRetryable(err error) bool {
	var opsErr *Error
	return errors.As(err, &opsErr) && opsErr.Retryable
}
