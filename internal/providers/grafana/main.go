package grafana

import (
	"context"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers"
)

// Client wraps the Grafana HTTP API. Every method performs a single
// request with the bearer token it was created with.
type Client struct {
	conn   models.ConnectionConfig
	client *resty.Client
}

func NewClient(conn models.ConnectionConfig) *Client {
	return &Client{
		conn:   conn,
		client: common.NewRestClient(conn.BaseURL, conn.Token),
	}
}

// SetTimeout overrides the per request timeout.
func (c *Client) SetTimeout(timeout time.Duration) *Client {
	if timeout > 0 {
		c.client.SetTimeout(timeout)
	}
	return c
}

func (c *Client) Name() models.ProviderName {
	return models.Grafana
}

func (c *Client) BaseURL() string {
	return c.conn.BaseURL
}

// CheckHealth calls /api/health, which does not require authentication.
func (c *Client) CheckHealth(ctx context.Context) models.ComponentCheck {
	started := time.Now()
	_, err := common.InvokeRequest(c.client.R().SetContext(ctx), http.MethodGet, "/api/health")
	if err != nil {
		logrus.WithError(err).WithField("url", c.conn.BaseURL).Debugln("Grafana health check failed")
	}
	return models.NewComponentCheck(started, err)
}

// get fetches path and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, path string, params map[string]string, out any) error {
	req := c.client.R().
		SetContext(ctx).
		SetResult(out)

	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	_, err := common.InvokeRequest(req, http.MethodGet, path)
	return err
}

// post sends body to path. Non-2xx statuses are not treated as errors here
// so callers can build an error record from the status code.
func (c *Client) post(ctx context.Context, path string, body any, out any) (*resty.Response, error) {
	req := c.client.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(out)

	return common.MakeRequestFromBuilder(req, http.MethodPost, path)
}

func init() {
	providers.Register(models.Grafana, func(conn models.ConnectionConfig) (providers.ProviderImpl, error) {
		return NewClient(conn), nil
	})
}
