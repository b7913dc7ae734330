package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
)

const (
	DefaultGrafanaURL   = "http://localhost:3000"
	DefaultVaultAddress = "http://127.0.0.1:8200"
	DefaultPulumiBinary = "pulumi"
)

type connectionBinding struct {
	urlEnv     string
	urlDefault string
	tokenEnv   string
}

var connectionBindings = map[models.ProviderName]connectionBinding{
	models.Grafana: {
		urlEnv:     "GRAFANA_URL",
		urlDefault: DefaultGrafanaURL,
		tokenEnv:   "GRAFANA_TOKEN",
	},
	models.Vault: {
		urlEnv:     "VAULT_ADDR",
		urlDefault: DefaultVaultAddress,
		tokenEnv:   "VAULT_TOKEN",
	},
	// The pulumi CLI has no base URL; the binary takes its place.
	models.Pulumi: {
		urlEnv:     "PULUMI_BINARY",
		urlDefault: DefaultPulumiBinary,
		tokenEnv:   "PULUMI_ACCESS_TOKEN",
	},
}

// ResolveConnection reads the connection parameters for provider from the
// process environment. Nothing is cached: every call sees the current
// environment.
func ResolveConnection(provider models.ProviderName) (models.ConnectionConfig, error) {
	binding, ok := connectionBindings[provider]
	if !ok {
		return models.ConnectionConfig{}, fmt.Errorf("no connection settings for provider: %s", provider)
	}

	v := viper.New()
	v.SetDefault("base_url", binding.urlDefault)
	v.SetDefault("token", "")
	v.BindEnv("base_url", binding.urlEnv)
	v.BindEnv("token", binding.tokenEnv)

	conn := models.ConnectionConfig{
		Provider: provider,
		BaseURL:  v.GetString("base_url"),
		Token:    v.GetString("token"),
	}

	if provider != models.Pulumi && !common.IsValidURL(conn.BaseURL) {
		logrus.WithFields(logrus.Fields{
			"provider": provider,
			"url":      conn.BaseURL,
		}).Warnln("Provider base URL does not look like an absolute URL")
	}

	return conn, nil
}
