package grafana

import (
	"context"

	"github.com/thand-io/opskit/internal/models"
)

type alertRule struct {
	UID       string `json:"uid"`
	Title     string `json:"title"`
	Condition string `json:"condition"`
	FolderUID string `json:"folderUID"`
}

type contactPoint struct {
	Name string `json:"name"`
	Type string `json:"type"`
	UID  string `json:"uid"`
}

// ListAlertRules lists the unified alerting rules.
func (c *Client) ListAlertRules(ctx context.Context) ([]models.AlertRuleSummary, error) {
	var rules []alertRule
	if err := c.get(ctx, "/api/v1/provisioning/alert-rules", nil, &rules); err != nil {
		return nil, err
	}

	result := make([]models.AlertRuleSummary, 0, len(rules))
	for _, r := range rules {
		result = append(result, models.AlertRuleSummary{
			UID:       r.UID,
			Title:     r.Title,
			Condition: r.Condition,
			FolderUID: r.FolderUID,
		})
	}
	return result, nil
}

// ListContactPoints lists the notification contact points.
func (c *Client) ListContactPoints(ctx context.Context) ([]models.ContactPointSummary, error) {
	var points []contactPoint
	if err := c.get(ctx, "/api/v1/provisioning/contact-points", nil, &points); err != nil {
		return nil, err
	}

	result := make([]models.ContactPointSummary, 0, len(points))
	for _, cp := range points {
		result = append(result, models.ContactPointSummary{
			Name: cp.Name,
			Type: cp.Type,
			UID:  cp.UID,
		})
	}
	return result, nil
}
