package config

import "time"

// Config represents the application configuration structure
type Config struct {
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
	Grafana  GrafanaConfig  `mapstructure:"grafana"`
	Vault    VaultConfig    `mapstructure:"vault"`
	Pulumi   PulumiConfig   `mapstructure:"pulumi"`
	Settings SettingsConfig `mapstructure:"settings"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" default:"info"`
	Format string `mapstructure:"format" default:"text"`
}

type OutputConfig struct {
	Format string `mapstructure:"format" default:"json"` // json, yaml
}

type GrafanaConfig struct {
	Timeout time.Duration `mapstructure:"timeout" default:"30s"`
}

type VaultConfig struct {
	Mount        string `mapstructure:"mount" default:"secret"`
	TransitMount string `mapstructure:"transit_mount" default:"transit"`
}

type PulumiConfig struct {
	Stack string `mapstructure:"stack" default:"dev"`
	Cwd   string `mapstructure:"cwd" default:"."`
}

// SettingsConfig points the settings singleton at an optional file.
type SettingsConfig struct {
	Path string `mapstructure:"path"`
}
