package config

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

const envPrefix = "OPSKIT"

// defaults lists every configuration key. Each key is also readable from
// OPSKIT_<KEY> with dots replaced by underscores.
var defaults = map[string]any{
	"logging.level":       "info",
	"logging.format":      "text",
	"output.format":       "json",
	"grafana.timeout":     "30s",
	"vault.mount":         "secret",
	"vault.transit_mount": "transit",
	"pulumi.stack":        "dev",
	"pulumi.cwd":          ".",
	"settings.path":       "",
}

// envAliases are extra environment variables honoured for a key after the
// OPSKIT_ one.
var envAliases = map[string][]string{
	"pulumi.stack": {"PULUMI_STACK"},
}

// DefaultConfig returns the configuration with nothing but defaults applied.
func DefaultConfig() *Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		logrus.Fatalf("error unmarshaling default config: %v", err)
	}

	return &config
}

// Load builds the configuration from defaults, an optional config file, a
// .env file and the environment, in increasing order of precedence.
func Load(configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()

	setupViperConfig(v, configFile)

	config, err := readAndUnmarshalConfig(v)
	if err != nil {
		return nil, err
	}

	if err := setupLogging(config, v); err != nil {
		return nil, err
	}

	return config, nil
}

// loadEnvFile loads ./.env into the process environment when present.
func loadEnvFile() {
	if err := gotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		logrus.WithError(err).Warnln("Failed to load .env file")
	}
}

func setupViperConfig(v *viper.Viper, configFile string) {
	if len(configFile) > 0 {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("/etc/opskit")

		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "opskit"))
		}
	}

	setDefaults(v)
	bindEnvironmentVariables(v)
}

func bindEnvironmentVariables(v *viper.Viper) {
	replacer := strings.NewReplacer(".", "_")

	for _, key := range slices.Sorted(maps.Keys(defaults)) {
		names := []string{envPrefix + "_" + strings.ToUpper(replacer.Replace(key))}
		names = append(names, envAliases[key]...)

		input := append([]string{key}, names...)
		if err := v.BindEnv(input...); err != nil {
			logrus.WithError(err).WithField("key", key).Warnln("Failed to bind environment variable")
		}
	}
}

func readAndUnmarshalConfig(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		logrus.Debugln("No config file found, using defaults and environment")
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return &config, nil
}

// setupLogging applies the logging level and format to the global logrus
// logger.
func setupLogging(config *Config, v *viper.Viper) error {
	level, err := logrus.ParseLevel(config.Logging.Level)
	if err != nil {
		return fmt.Errorf("error parsing log level: %w", err)
	}

	logrus.SetLevel(level)

	switch strings.ToLower(config.Logging.Format) {
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	default:
		logrus.WithField("format", config.Logging.Format).Warn("Unknown log format")
	}

	if level >= logrus.DebugLevel {
		for key, value := range v.AllSettings() {
			logrus.Debugf("Config '%s': %v", key, value)
		}
	}

	return nil
}

func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}
