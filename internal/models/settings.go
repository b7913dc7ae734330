package models

import "github.com/google/uuid"

// Settings is the process wide tool configuration shared through the
// settings singleton.
type Settings struct {
	AppName        string          `json:"app_name" yaml:"app_name"`
	LogLevel       string          `json:"log_level" yaml:"log_level"`
	MaxRetries     int             `json:"max_retries" yaml:"max_retries"`
	TimeoutSeconds int             `json:"timeout_seconds" yaml:"timeout_seconds"`
	Regions        []string        `json:"regions" yaml:"regions"`
	FeatureFlags   map[string]bool `json:"feature_flags" yaml:"feature_flags"`
}

func DefaultSettings() *Settings {
	return &Settings{
		AppName:        "opskit",
		LogLevel:       "INFO",
		MaxRetries:     3,
		TimeoutSeconds: 30,
		Regions:        []string{"us-east-1", "us-west-2", "eu-west-1"},
		FeatureFlags: map[string]bool{
			"enable_auto_remediation": true,
			"enable_cost_alerts":      true,
		},
	}
}

type PoolConnection struct {
	ID   uuid.UUID `json:"id"`
	Host string    `json:"host"`
}
