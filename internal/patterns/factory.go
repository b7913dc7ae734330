package patterns

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

const DefaultRegion = "us-east-1"

var ErrUnknownProvider = errors.New("unknown provider")

// CloudClientOptions overrides the per provider defaults.
type CloudClientOptions struct {
	AuthMethod     string
	ProjectID      string
	SubscriptionID string
}

type cloudClientConstructor func(region string, opts CloudClientOptions) *models.CloudClient

var cloudClientFactories = map[string]cloudClientConstructor{
	"aws":   newAwsClient,
	"gcp":   newGcpClient,
	"azure": newAzureClient,
}

func withDefault(value string, fallback string) string {
	if len(value) == 0 {
		return fallback
	}
	return value
}

func newAwsClient(region string, opts CloudClientOptions) *models.CloudClient {
	return &models.CloudClient{
		Provider:        "aws",
		Region:          region,
		ServiceEndpoint: fmt.Sprintf("https://ec2.%s.amazonaws.com", region),
		AuthMethod:      withDefault(opts.AuthMethod, "iam_role"),
		SDK:             "aws-sdk-go-v2",
	}
}

func newGcpClient(region string, opts CloudClientOptions) *models.CloudClient {
	return &models.CloudClient{
		Provider:        "gcp",
		Region:          region,
		ProjectID:       withDefault(opts.ProjectID, "default-project"),
		ServiceEndpoint: "https://compute.googleapis.com",
		AuthMethod:      withDefault(opts.AuthMethod, "service_account"),
		SDK:             "cloud.google.com/go/compute",
	}
}

func newAzureClient(region string, opts CloudClientOptions) *models.CloudClient {
	return &models.CloudClient{
		Provider:        "azure",
		Region:          region,
		SubscriptionID:  opts.SubscriptionID,
		ServiceEndpoint: "https://management.azure.com",
		AuthMethod:      withDefault(opts.AuthMethod, "managed_identity"),
		SDK:             "azure-sdk-for-go/armcompute",
	}
}

// SupportedCloudProviders returns the provider names accepted by
// CreateCloudClient.
func SupportedCloudProviders() []string {
	return slices.Sorted(maps.Keys(cloudClientFactories))
}

// CreateCloudClient builds the client description for provider. The name
// is matched case-insensitively and region defaults to us-east-1.
func CreateCloudClient(provider string, region string, opts CloudClientOptions) (*models.CloudClient, error) {

	constructor, ok := cloudClientFactories[strings.ToLower(provider)]
	if !ok {
		return nil, fmt.Errorf("%w: %s. Supported: %v", ErrUnknownProvider, provider, SupportedCloudProviders())
	}

	region = withDefault(region, DefaultRegion)

	client := constructor(region, opts)

	logrus.Infof("Created %s client for region %s", provider, region)

	return client, nil
}

// NotificationHandler delivers message to a channel and reports whether it
// was accepted.
type NotificationHandler func(message string, opts map[string]string) bool

var (
	notificationHandlers = make(map[string]NotificationHandler)
	notificationMutex    sync.RWMutex
)

// RegisterNotificationHandler adds or replaces the handler for channel.
func RegisterNotificationHandler(channel string, handler NotificationHandler) {
	notificationMutex.Lock()
	defer notificationMutex.Unlock()
	notificationHandlers[channel] = handler
	logrus.Debugf("Registered notification handler: %s", channel)
}

func NotificationChannels() []string {
	notificationMutex.RLock()
	defer notificationMutex.RUnlock()
	return slices.Sorted(maps.Keys(notificationHandlers))
}

// SendNotification dispatches message to the handler for channel. Unknown
// channels return false.
func SendNotification(channel string, message string, opts map[string]string) bool {

	notificationMutex.RLock()
	handler, ok := notificationHandlers[channel]
	notificationMutex.RUnlock()

	if !ok {
		logrus.Errorf("No handler registered for channel: %s", channel)
		return false
	}

	if opts == nil {
		opts = map[string]string{}
	}

	return handler(message, opts)
}

func optionOrDefault(opts map[string]string, key string, fallback string) string {
	if value, ok := opts[key]; ok && len(value) > 0 {
		return value
	}
	return fallback
}

func sendPagerDuty(message string, opts map[string]string) bool {
	logrus.WithField("channel", "pagerduty").Infof("[PagerDuty -> %s] %s", optionOrDefault(opts, "severity", string(models.SeverityWarning)), message)
	return true
}

func init() {
	RegisterNotificationHandler("slack", sendSlack)
	RegisterNotificationHandler("email", sendEmail)
	RegisterNotificationHandler("pagerduty", sendPagerDuty)
}
