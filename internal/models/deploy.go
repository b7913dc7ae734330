package models

import "time"

type DeployRequest struct {
	Service       string        `json:"service"`
	Version       string        `json:"version"`
	Replicas      int           `json:"replicas"`
	CanaryPercent int           `json:"canary_percent"`
	StepDelay     time.Duration `json:"-"`
}

type DeployResult struct {
	Strategy string   `json:"strategy"`
	Service  string   `json:"service"`
	Version  string   `json:"version"`
	Status   string   `json:"status"`
	Steps    []string `json:"steps"`
	Duration float64  `json:"duration"`
}

type BackupPlan struct {
	Type         string `json:"type"`
	Resource     string `json:"resource"`
	Destination  string `json:"destination"`
	SizeEstimate string `json:"size_estimate"`
}
