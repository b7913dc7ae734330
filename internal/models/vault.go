package models

// SecretResult is returned by KV reads and writes. Data is only populated
// on reads.
type SecretResult struct {
	OperationResult
	Path    string         `json:"path,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Version int            `json:"version,omitempty"`
}

type PolicyResult struct {
	OperationResult
	Name string `json:"name,omitempty"`
}

type DatabaseCredentials struct {
	OperationResult
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	LeaseID       string `json:"lease_id,omitempty"`
	LeaseDuration int    `json:"lease_duration"`
}

type AWSCredentials struct {
	OperationResult
	AccessKey     string `json:"access_key,omitempty"`
	SecretKey     string `json:"secret_key,omitempty"`
	SecurityToken string `json:"security_token,omitempty"`
	LeaseDuration int    `json:"lease_duration"`
}

type LeaseResult struct {
	OperationResult
	LeaseID string `json:"lease_id,omitempty"`
}

// TransitResult carries either the ciphertext of an encrypt call or the
// decoded plaintext of a decrypt call.
type TransitResult struct {
	OperationResult
	Ciphertext string `json:"ciphertext,omitempty"`
	Plaintext  string `json:"plaintext,omitempty"`
}

type KeyRotationResult struct {
	OperationResult
	Key string `json:"key,omitempty"`
}
