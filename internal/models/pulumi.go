package models

type StackSummary struct {
	Name          string `json:"name"`
	Current       bool   `json:"current"`
	LastUpdate    string `json:"last_update"`
	ResourceCount int    `json:"resource_count"`
	URL           string `json:"url"`
}

type PreviewResult struct {
	OperationResult
	Stack   string         `json:"stack,omitempty"`
	Changes map[string]int `json:"changes,omitempty"`
	Raw     string         `json:"raw,omitempty"`
}

// CommandResult is the outcome of a pulumi invocation that only reports
// success and captured output.
type CommandResult struct {
	Success bool   `json:"success"`
	Output  string `json:"output"`
	Stderr  string `json:"stderr,omitempty"`
}

func (r CommandResult) IsError() bool {
	return !r.Success
}

type ConfigSetResult struct {
	Success bool   `json:"success"`
	Key     string `json:"key"`
}

func (r ConfigSetResult) IsError() bool {
	return !r.Success
}

type StackInitResult struct {
	Success bool   `json:"success"`
	Stack   string `json:"stack"`
}

func (r StackInitResult) IsError() bool {
	return !r.Success
}
