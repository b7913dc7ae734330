package opserr

import "fmt"

func NewCloudProviderError(message string, provider string, region string) *Error {
	return newCloud(message, "", provider, region, false).with("CloudProviderError", ErrCloudProvider)
}

func newCloud(message string, code string, provider string, region string, retryable bool) *Error {
	if len(provider) == 0 {
		provider = "unknown"
	}
	if len(region) == 0 {
		region = "unknown"
	}
	return New(message, code, map[string]any{
		"provider": provider,
		"region":   region,
	}, retryable).with("CloudProviderError", ErrCloudProvider)
}

// NewResourceNotFound reports a resource (instance, bucket, pod) that does
// not exist.
func NewResourceNotFound(resourceType string, resourceID string, provider string, region string) *Error {
	err := newCloud(
		fmt.Sprintf("%s '%s' not found", resourceType, resourceID),
		"RESOURCE_NOT_FOUND", provider, region, false)
	err.Context["resource_type"] = resourceType
	err.Context["resource_id"] = resourceID
	return err.with("ResourceNotFoundError", ErrCloudProvider)
}

func NewResourceLimit(resourceType string, limit int, current int, provider string, region string) *Error {
	return newCloud(
		fmt.Sprintf("%s limit exceeded: %d/%d used", resourceType, current, limit),
		"RESOURCE_LIMIT_EXCEEDED", provider, region, false,
	).with("ResourceLimitError", ErrCloudProvider)
}

func NewAuthentication(message string, provider string, region string) *Error {
	if len(message) == 0 {
		message = "Authentication failed"
	}
	return newCloud(message, "AUTH_FAILED", provider, region, false).
		with("AuthenticationError", ErrCloudProvider)
}

// NewRateLimit reports a throttled API call. Rate limits are transient so
// the error is retryable. A zero retryAfter is omitted from the message.
func NewRateLimit(service string, retryAfter float64, provider string, region string) *Error {
	message := fmt.Sprintf("Rate limit exceeded for %s", service)
	if retryAfter > 0 {
		message += fmt.Sprintf(" (retry after %gs)", retryAfter)
	}
	err := newCloud(message, "RATE_LIMIT", provider, region, true)
	if retryAfter > 0 {
		err.Context["retry_after"] = retryAfter
	}
	return err.with("RateLimitError", ErrCloudProvider)
}
