package vault

import (
	"context"
	"fmt"
	"path"

	"github.com/hashicorp/vault/api"
	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
)

func (c *Client) readCredentials(ctx context.Context, mount string, role string) (*api.Secret, error) {
	credsPath := path.Join(mount, "creds", role)

	secret, err := c.client.Logical().ReadWithContext(ctx, credsPath)
	if err != nil {
		return nil, err
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no credentials returned from %s", credsPath)
	}
	return secret, nil
}

// GetDatabaseCredentials generates short lived database credentials for
// role.
func (c *Client) GetDatabaseCredentials(ctx context.Context, role string, mount string) *models.DatabaseCredentials {

	mount = mountOrDefault(mount, DefaultDatabaseMount)

	secret, err := c.readCredentials(ctx, mount, role)
	if err != nil {
		logrus.WithError(err).WithField("role", role).Errorln("Failed to generate database credentials")
		return &models.DatabaseCredentials{OperationResult: models.NewErrorResult(err)}
	}

	logrus.WithFields(logrus.Fields{
		"role": role,
		"ttl":  secret.LeaseDuration,
	}).Infoln("Generated database credentials")

	return &models.DatabaseCredentials{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		Username:        common.StringValue(secret.Data["username"], ""),
		Password:        common.StringValue(secret.Data["password"], ""),
		LeaseID:         secret.LeaseID,
		LeaseDuration:   secret.LeaseDuration,
	}
}

// GetAWSCredentials generates AWS credentials for role. The security token
// is only set for STS backed roles.
func (c *Client) GetAWSCredentials(ctx context.Context, role string, mount string) *models.AWSCredentials {

	mount = mountOrDefault(mount, DefaultAWSMount)

	secret, err := c.readCredentials(ctx, mount, role)
	if err != nil {
		logrus.WithError(err).WithField("role", role).Errorln("Failed to generate AWS credentials")
		return &models.AWSCredentials{OperationResult: models.NewErrorResult(err)}
	}

	logrus.WithField("role", role).Infoln("Generated AWS credentials")

	return &models.AWSCredentials{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		AccessKey:       common.StringValue(secret.Data["access_key"], ""),
		SecretKey:       common.StringValue(secret.Data["secret_key"], ""),
		SecurityToken:   common.StringValue(secret.Data["security_token"], ""),
		LeaseDuration:   secret.LeaseDuration,
	}
}

// RevokeLease revokes a lease before its TTL expires.
func (c *Client) RevokeLease(ctx context.Context, leaseID string) *models.LeaseResult {

	if err := c.client.Sys().RevokeWithContext(ctx, leaseID); err != nil {
		logrus.WithError(err).WithField("lease_id", leaseID).Errorln("Failed to revoke lease")
		return &models.LeaseResult{OperationResult: models.NewErrorResult(err)}
	}

	logrus.Infof("Revoked lease: %s", leaseID)

	return &models.LeaseResult{
		OperationResult: models.OperationResult{Status: models.StatusRevoked},
		LeaseID:         leaseID,
	}
}
