package grafana

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

const (
	dashboardSchemaVersion = 36
	defaultFolderTitle     = "General"
)

type searchHit struct {
	UID         string   `json:"uid"`
	Title       string   `json:"title"`
	FolderTitle string   `json:"folderTitle"`
	URL         string   `json:"url"`
	Tags        []string `json:"tags"`
}

type dashboardSaveResponse struct {
	UID string `json:"uid"`
	URL string `json:"url"`
}

// SearchDashboards searches dashboards by query string and optional tag.
func (c *Client) SearchDashboards(ctx context.Context, query string, tag string) ([]models.DashboardSummary, error) {
	params := map[string]string{
		"query": query,
		"type":  "dash-db",
	}
	if len(tag) > 0 {
		params["tag"] = tag
	}

	var hits []searchHit
	if err := c.get(ctx, "/api/search", params, &hits); err != nil {
		return nil, err
	}

	dashboards := make([]models.DashboardSummary, 0, len(hits))
	for _, hit := range hits {
		folder := hit.FolderTitle
		if len(folder) == 0 {
			folder = defaultFolderTitle
		}
		tags := hit.Tags
		if tags == nil {
			tags = []string{}
		}
		dashboards = append(dashboards, models.DashboardSummary{
			UID:    hit.UID,
			Title:  hit.Title,
			Folder: folder,
			URL:    hit.URL,
			Tags:   tags,
		})
	}

	return dashboards, nil
}

// GetDashboard returns the raw dashboard document for uid.
func (c *Client) GetDashboard(ctx context.Context, uid string) (map[string]any, error) {
	var dashboard map[string]any
	path := fmt.Sprintf("/api/dashboards/uid/%s", url.PathEscape(uid))
	if err := c.get(ctx, path, nil, &dashboard); err != nil {
		return nil, err
	}
	return dashboard, nil
}

// CreateDashboard creates or updates a dashboard from a list of panels.
func (c *Client) CreateDashboard(
	ctx context.Context,
	title string,
	panels []map[string]any,
	folderID int,
	overwrite bool,
) (*models.DashboardResult, error) {

	if panels == nil {
		panels = []map[string]any{}
	}

	payload := map[string]any{
		"dashboard": map[string]any{
			"title":         title,
			"panels":        panels,
			"timezone":      "browser",
			"schemaVersion": dashboardSchemaVersion,
		},
		"folderId":  folderID,
		"overwrite": overwrite,
	}

	var saved dashboardSaveResponse
	resp, err := c.post(ctx, "/api/dashboards/db", payload, &saved)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode() != http.StatusOK {
		return &models.DashboardResult{
			OperationResult: models.NewStatusCodeResult(resp.StatusCode()),
		}, nil
	}

	logrus.WithField("uid", saved.UID).Infof("Dashboard created: %s", title)

	return &models.DashboardResult{
		OperationResult: models.OperationResult{Status: models.StatusCreated},
		UID:             saved.UID,
		URL:             saved.URL,
	}, nil
}
