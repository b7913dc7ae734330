package vault

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/vault/api"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers"
)

const (
	DefaultKVMount       = "secret"
	DefaultDatabaseMount = "database"
	DefaultAWSMount      = "aws"
	DefaultTransitMount  = "transit"
)

// Client wraps the Vault HTTP API for the KV v2, database, aws and transit
// secret engines.
type Client struct {
	conn   models.ConnectionConfig
	client *api.Client
}

// NewClient creates a Vault client for conn. Retries are disabled so each
// call maps to a single request.
func NewClient(conn models.ConnectionConfig) (*Client, error) {

	cfg := api.DefaultConfig()
	if cfg.Error != nil {
		logrus.WithError(cfg.Error).Warnln("Ignoring invalid Vault environment settings")
	}

	cfg.Address = conn.BaseURL
	cfg.MaxRetries = 0

	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create vault client: %w", err)
	}

	if conn.HasToken() {
		client.SetToken(conn.Token)
	} else {
		client.ClearToken()
		logrus.Warnln("No Vault token configured, requests will be unauthenticated")
	}

	return &Client{
		conn:   conn,
		client: client,
	}, nil
}

func (c *Client) Name() models.ProviderName {
	return models.Vault
}

// CheckHealth queries sys/health. Sealed, standby and uninitialised nodes
// still answer, so only a transport failure marks the check down unless
// the node reports itself sealed.
func (c *Client) CheckHealth(ctx context.Context) models.ComponentCheck {
	started := time.Now()

	health, err := c.client.Sys().HealthWithContext(ctx)
	if err == nil && health.Sealed {
		err = fmt.Errorf("vault is sealed")
	}
	if err != nil {
		logrus.WithError(err).WithField("address", c.conn.BaseURL).Debugln("Vault health check failed")
	}

	return models.NewComponentCheck(started, err)
}

func mountOrDefault(mount string, fallback string) string {
	if len(mount) == 0 {
		return fallback
	}
	return mount
}

func init() {
	providers.Register(models.Vault, func(conn models.ConnectionConfig) (providers.ProviderImpl, error) {
		return NewClient(conn)
	})
}
