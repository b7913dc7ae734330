package vault

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

var policyTemplates = map[string]string{
	"app_readonly": `
path "secret/data/{{identity.entity.name}}/*" {
  capabilities = ["read", "list"]
}
`,
	"cicd_deploy": `
path "secret/data/deploy/*" {
  capabilities = ["read", "list"]
}
path "transit/encrypt/deploy-key" {
  capabilities = ["update"]
}
`,
}

// PolicyTemplate returns the HCL of a built-in policy template.
func PolicyTemplate(name string) (string, error) {
	rules, ok := policyTemplates[name]
	if !ok {
		return "", fmt.Errorf("unknown policy template: %s (available: %v)", name, PolicyTemplateNames())
	}
	return rules, nil
}

func PolicyTemplateNames() []string {
	return slices.Sorted(maps.Keys(policyTemplates))
}

// ListPolicies lists the ACL policy names. Errors are returned to the
// caller.
func (c *Client) ListPolicies(ctx context.Context) ([]string, error) {
	policies, err := c.client.Sys().ListPoliciesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	if policies == nil {
		policies = []string{}
	}
	return policies, nil
}

// CreatePolicy creates or replaces the ACL policy name.
func (c *Client) CreatePolicy(ctx context.Context, name string, rules string) *models.PolicyResult {

	if err := c.client.Sys().PutPolicyWithContext(ctx, name, rules); err != nil {
		logrus.WithError(err).WithField("policy", name).Errorln("Failed to create policy")
		return &models.PolicyResult{OperationResult: models.NewErrorResult(err)}
	}

	logrus.Infof("Created policy: %s", name)

	return &models.PolicyResult{
		OperationResult: models.OperationResult{Status: models.StatusCreated},
		Name:            name,
	}
}
