package models

type OperationStatus string

const (
	StatusOK      OperationStatus = "ok"
	StatusCreated OperationStatus = "created"
	StatusRotated OperationStatus = "rotated"
	StatusRevoked OperationStatus = "revoked"
	StatusDeleted OperationStatus = "deleted"
	StatusError   OperationStatus = "error"
)

// OperationResult is the outcome of a single wrapper call. Typed results
// embed it so the status and error fields sit at the top level when
// serialised.
type OperationResult struct {
	Status OperationStatus `json:"status"`
	Code   int             `json:"code,omitempty"`
	Error  string          `json:"error,omitempty"`
	Stderr string          `json:"stderr,omitempty"`
}

func (r OperationResult) IsError() bool {
	return r.Status == StatusError
}

// NewErrorResult builds an error record from a failed call.
func NewErrorResult(err error) OperationResult {
	result := OperationResult{Status: StatusError}
	if err != nil {
		result.Error = err.Error()
	}
	return result
}

// NewStatusCodeResult builds an error record carrying the raw HTTP status.
func NewStatusCodeResult(code int) OperationResult {
	return OperationResult{
		Status: StatusError,
		Code:   code,
	}
}
