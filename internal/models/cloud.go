package models

// CloudClient describes how to reach a cloud provider's compute API.
type CloudClient struct {
	Provider        string `json:"provider"`
	Region          string `json:"region"`
	ServiceEndpoint string `json:"service_endpoint"`
	AuthMethod      string `json:"auth_method"`
	SDK             string `json:"sdk"`
	ProjectID       string `json:"project_id,omitempty"`
	SubscriptionID  string `json:"subscription_id,omitempty"`
}
