package patterns

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCloudClient(t *testing.T) {
	tests := []struct {
		provider string
		endpoint string
		auth     string
	}{
		{"aws", "https://ec2.eu-west-1.amazonaws.com", "iam_role"},
		{"GCP", "https://compute.googleapis.com", "service_account"},
		{"Azure", "https://management.azure.com", "managed_identity"},
	}

	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			client, err := CreateCloudClient(tt.provider, "eu-west-1", CloudClientOptions{})
			require.NoError(t, err)
			assert.Equal(t, "eu-west-1", client.Region)
			assert.Equal(t, tt.endpoint, client.ServiceEndpoint)
			assert.Equal(t, tt.auth, client.AuthMethod)
			assert.NotEmpty(t, client.SDK)
		})
	}
}

func TestCreateCloudClientOptions(t *testing.T) {
	client, err := CreateCloudClient("gcp", "", CloudClientOptions{ProjectID: "ops-prod", AuthMethod: "workload_identity"})
	require.NoError(t, err)
	assert.Equal(t, DefaultRegion, client.Region)
	assert.Equal(t, "ops-prod", client.ProjectID)
	assert.Equal(t, "workload_identity", client.AuthMethod)

	defaults, err := CreateCloudClient("gcp", "us-central1", CloudClientOptions{})
	require.NoError(t, err)
	assert.Equal(t, "default-project", defaults.ProjectID)

	azure, err := CreateCloudClient("azure", "westeurope", CloudClientOptions{SubscriptionID: "sub-123"})
	require.NoError(t, err)
	assert.Equal(t, "sub-123", azure.SubscriptionID)
}

func TestCreateCloudClientUnknownProvider(t *testing.T) {
	_, err := CreateCloudClient("oracle", "us-east-1", CloudClientOptions{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownProvider))
	assert.Contains(t, err.Error(), "[aws azure gcp]")
}

func TestSendNotification(t *testing.T) {
	var received []string
	var receivedOpts map[string]string

	RegisterNotificationHandler("test-capture", func(message string, opts map[string]string) bool {
		received = append(received, message)
		receivedOpts = opts
		return true
	})

	assert.True(t, SendNotification("test-capture", "Deployment completed", map[string]string{"to": "ops"}))
	assert.Equal(t, []string{"Deployment completed"}, received)
	assert.Equal(t, "ops", receivedOpts["to"])

	assert.True(t, SendNotification("test-capture", "No options", nil))
	assert.NotNil(t, receivedOpts)

	assert.False(t, SendNotification("sms", "Test message", nil))
}

func TestBuiltInNotificationChannels(t *testing.T) {
	channels := NotificationChannels()
	for _, channel := range []string{"email", "pagerduty", "slack"} {
		assert.Contains(t, channels, channel)
		assert.True(t, SendNotification(channel, "hello", nil))
	}
}
