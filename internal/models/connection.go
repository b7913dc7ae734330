package models

// ProviderName identifies an external system wrapped by the toolkit.
type ProviderName string

const (
	Grafana ProviderName = "grafana"
	Vault   ProviderName = "vault"
	Pulumi  ProviderName = "pulumi"
)

// ConnectionConfig holds the connection parameters for one provider call.
// It is resolved from the process environment every time it is needed and
// never cached.
type ConnectionConfig struct {
	Provider ProviderName `json:"provider" mapstructure:"provider"`
	BaseURL  string       `json:"base_url" mapstructure:"base_url"`
	Token    string       `json:"-" mapstructure:"token"`
}

func (c ConnectionConfig) HasToken() bool {
	return len(c.Token) > 0
}
