package grafana

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

type datasource struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Type      string `json:"type"`
	URL       string `json:"url"`
	IsDefault bool   `json:"isDefault"`
}

type datasourceCreateResponse struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
}

func (c *Client) ListDatasources(ctx context.Context) ([]models.DatasourceSummary, error) {
	var found []datasource
	if err := c.get(ctx, "/api/datasources", nil, &found); err != nil {
		return nil, err
	}

	result := make([]models.DatasourceSummary, 0, len(found))
	for _, ds := range found {
		result = append(result, models.DatasourceSummary{
			ID:        ds.ID,
			Name:      ds.Name,
			Type:      ds.Type,
			URL:       ds.URL,
			IsDefault: ds.IsDefault,
		})
	}
	return result, nil
}

// CreatePrometheusDatasource adds a proxied Prometheus datasource.
func (c *Client) CreatePrometheusDatasource(
	ctx context.Context,
	name string,
	prometheusURL string,
	isDefault bool,
) (*models.DatasourceResult, error) {

	payload := map[string]any{
		"name":      name,
		"type":      "prometheus",
		"url":       prometheusURL,
		"access":    "proxy",
		"isDefault": isDefault,
	}

	var created datasourceCreateResponse
	resp, err := c.post(ctx, "/api/datasources", payload, &created)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return &models.DatasourceResult{
			OperationResult: models.NewStatusCodeResult(resp.StatusCode()),
		}, nil
	}

	logrus.Infof("Created datasource: %s", name)

	return &models.DatasourceResult{
		OperationResult: models.OperationResult{Status: models.StatusCreated},
		ID:              created.ID,
		Name:            created.Name,
		Message:         created.Message,
	}, nil
}
