package grafana

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
)

const DefaultSnapshotExpiry = 3600

type snapshotCreateResponse struct {
	URL       string `json:"url"`
	Key       string `json:"key"`
	DeleteKey string `json:"deleteKey"`
}

// Created and expires come back as timestamps but are kept loose so that
// unexpected shapes do not fail the whole listing.
type snapshot struct {
	Name    string `json:"name"`
	Key     string `json:"key"`
	Created any    `json:"created"`
	Expires any    `json:"expires"`
}

// CreateSnapshot snapshots the dashboard identified by dashboardUID. The
// snapshot name defaults to the dashboard title. A negative expires selects
// one hour and zero keeps the snapshot forever.
func (c *Client) CreateSnapshot(
	ctx context.Context,
	dashboardUID string,
	name string,
	expires int,
) (*models.SnapshotResult, error) {

	document, err := c.GetDashboard(ctx, dashboardUID)
	if err != nil {
		return nil, err
	}

	dashboard, _ := document["dashboard"].(map[string]any)
	if dashboard == nil {
		dashboard = map[string]any{}
	}

	if len(name) == 0 {
		name = common.StringValue(dashboard["title"], "Snapshot")
	}
	if expires < 0 {
		expires = DefaultSnapshotExpiry
	}

	payload := map[string]any{
		"dashboard": dashboard,
		"name":      name,
		"expires":   expires,
	}

	var created snapshotCreateResponse
	resp, err := c.post(ctx, "/api/snapshots", payload, &created)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return &models.SnapshotResult{
			OperationResult: models.NewStatusCodeResult(resp.StatusCode()),
		}, nil
	}

	logrus.Infof("Snapshot created: %s", created.URL)

	return &models.SnapshotResult{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		URL:             created.URL,
		Key:             created.Key,
		DeleteKey:       created.DeleteKey,
	}, nil
}

func (c *Client) ListSnapshots(ctx context.Context) ([]models.SnapshotSummary, error) {
	var found []snapshot
	if err := c.get(ctx, "/api/dashboard/snapshots", nil, &found); err != nil {
		return nil, err
	}

	result := make([]models.SnapshotSummary, 0, len(found))
	for _, s := range found {
		result = append(result, models.SnapshotSummary{
			Name:    s.Name,
			Key:     s.Key,
			Created: common.StringValue(s.Created, ""),
			Expires: common.StringValue(s.Expires, ""),
		})
	}
	return result, nil
}
