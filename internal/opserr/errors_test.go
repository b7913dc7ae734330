package opserr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	err := New("something broke", "", nil, false)

	assert.Equal(t, DefaultCode, err.Code)
	assert.NotNil(t, err.Context)
	assert.Equal(t, "[OPS_ERROR] something broke", err.Error())
}

func TestError_Format(t *testing.T) {
	err := NewRateLimit("EC2 DescribeInstances", 5, "aws", "us-west-2")

	assert.Equal(t,
		"[RATE_LIMIT] Rate limit exceeded for EC2 DescribeInstances (retry after 5s) | "+
			"Context: provider=aws, region=us-west-2, retry_after=5 | (retryable)",
		err.Error())
}

func TestResourceNotFound(t *testing.T) {
	err := NewResourceNotFound("EC2 Instance", "i-1234567890abcdef0", "aws", "us-east-1")

	assert.Equal(t, "RESOURCE_NOT_FOUND", err.Code)
	assert.Equal(t, "ResourceNotFoundError", err.Kind)
	assert.False(t, err.Retryable)
	assert.Equal(t, "EC2 Instance 'i-1234567890abcdef0' not found", err.Message)
	assert.Equal(t, "aws", err.Context["provider"])
	assert.Equal(t, "us-east-1", err.Context["region"])
}

func TestCloudProviderError_DefaultsUnknown(t *testing.T) {
	err := NewCloudProviderError("boom", "", "")

	assert.Equal(t, "unknown", err.Context["provider"])
	assert.Equal(t, "unknown", err.Context["region"])
	assert.Equal(t, "CloudProviderError", err.Kind)
}

func TestCategories(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category error
		kind     string
		code     string
	}{
		{"not found", NewResourceNotFound("Bucket", "logs", "aws", "us-east-1"), ErrCloudProvider, "ResourceNotFoundError", "RESOURCE_NOT_FOUND"},
		{"limit", NewResourceLimit("vCPU", 32, 32, "aws", "us-east-1"), ErrCloudProvider, "ResourceLimitError", "RESOURCE_LIMIT_EXCEEDED"},
		{"auth", NewAuthentication("", "gcp", "europe-west1"), ErrCloudProvider, "AuthenticationError", "AUTH_FAILED"},
		{"pod", NewPodNotFound("my-pod", ""), ErrKubernetes, "PodNotFoundError", "POD_NOT_FOUND"},
		{"rollout", NewDeploymentFailed("api-server", "ImagePullBackOff", "production"), ErrKubernetes, "DeploymentFailedError", "DEPLOYMENT_FAILED"},
		{"build", NewBuildFailed("deploy-pipeline", 42, "Test failures"), ErrPipeline, "BuildFailedError", "BUILD_FAILED"},
		{"artifact", NewArtifactNotFound("dist/app.tar.gz"), ErrPipeline, "ArtifactNotFoundError", "ARTIFACT_NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("operation failed: %w", tt.err)

			assert.True(t, errors.Is(wrapped, tt.category))

			var opsErr *Error
			require.True(t, errors.As(wrapped, &opsErr))
			assert.Equal(t, tt.kind, opsErr.Kind)
			assert.Equal(t, tt.code, opsErr.Code)
		})
	}
}

func TestCategories_DoNotCrossMatch(t *testing.T) {
	err := NewPodNotFound("my-pod", "default")

	assert.False(t, errors.Is(err, ErrCloudProvider))
	assert.False(t, errors.Is(err, ErrPipeline))
	assert.False(t, errors.Is(New("plain", "", nil, false), ErrKubernetes))
}

func TestResourceLimitMessage(t *testing.T) {
	err := NewResourceLimit("Elastic IP", 5, 6, "aws", "eu-west-1")
	assert.Equal(t, "Elastic IP limit exceeded: 6/5 used", err.Message)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(fmt.Errorf("wrapped: %w", NewRateLimit("S3", 3, "aws", "us-east-1"))))
	assert.False(t, IsRetryable(NewPodNotFound("p", "default")))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestHandle(t *testing.T) {
	result := Handle(NewBuildFailed("deploy-pipeline", 42, "Test failures"))

	assert.Equal(t, "BUILD_FAILED", result["error_code"])
	assert.Equal(t, "BuildFailedError", result["type"])
	assert.Equal(t, false, result["retryable"])
	assert.Equal(t, map[string]any{"pipeline": "deploy-pipeline", "build_number": 42}, result["context"])
}

func TestHandle_PlainError(t *testing.T) {
	result := Handle(errors.New("disk full"))

	assert.Equal(t, DefaultCode, result["error_code"])
	assert.Equal(t, "disk full", result["message"])
	assert.Nil(t, Handle(nil))
}
