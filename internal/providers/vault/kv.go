package vault

import (
	"context"
	"fmt"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

// ReadSecret reads the latest version of a KV v2 secret.
func (c *Client) ReadSecret(ctx context.Context, secretPath string, mount string) *models.SecretResult {

	mount = mountOrDefault(mount, DefaultKVMount)

	secret, err := c.client.KVv2(mount).Get(ctx, secretPath)
	if err != nil {
		logrus.WithError(err).WithField("path", secretPath).Errorln("Failed to read secret")
		return &models.SecretResult{OperationResult: models.NewErrorResult(err)}
	}

	result := &models.SecretResult{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		Path:            secretPath,
		Data:            secret.Data,
	}
	if secret.VersionMetadata != nil {
		result.Version = secret.VersionMetadata.Version
	}
	if result.Data == nil {
		result.Data = map[string]any{}
	}

	logrus.WithFields(logrus.Fields{
		"path":    secretPath,
		"version": result.Version,
	}).Infoln("Read secret")

	return result
}

// WriteSecret creates a new version of a KV v2 secret.
func (c *Client) WriteSecret(ctx context.Context, secretPath string, data map[string]any, mount string) *models.SecretResult {
	return c.putSecret(ctx, secretPath, data, mount, models.StatusOK)
}

// RotateKVSecret writes replacement data to a KV v2 secret. Readers pick up
// the new version on their next read; older versions stay retrievable.
func (c *Client) RotateKVSecret(ctx context.Context, secretPath string, data map[string]any, mount string) *models.SecretResult {
	return c.putSecret(ctx, secretPath, data, mount, models.StatusRotated)
}

func (c *Client) putSecret(
	ctx context.Context,
	secretPath string,
	data map[string]any,
	mount string,
	status models.OperationStatus,
) *models.SecretResult {

	mount = mountOrDefault(mount, DefaultKVMount)
	if data == nil {
		data = map[string]any{}
	}

	secret, err := c.client.KVv2(mount).Put(ctx, secretPath, data)
	if err != nil {
		logrus.WithError(err).WithField("path", secretPath).Errorln("Failed to write secret")
		return &models.SecretResult{OperationResult: models.NewErrorResult(err)}
	}

	result := &models.SecretResult{
		OperationResult: models.OperationResult{Status: status},
		Path:            secretPath,
	}
	if secret.VersionMetadata != nil {
		result.Version = secret.VersionMetadata.Version
	}

	logrus.WithFields(logrus.Fields{
		"path":    secretPath,
		"version": result.Version,
	}).Infof("Secret %s", status)

	return result
}

// ListSecrets lists the keys under secretPath. Failures are logged and an
// empty list returned.
func (c *Client) ListSecrets(ctx context.Context, secretPath string, mount string) []string {

	mount = mountOrDefault(mount, DefaultKVMount)
	keys := []string{}

	secret, err := c.client.Logical().ListWithContext(ctx, path.Join(mount, "metadata", secretPath))
	if err != nil {
		logrus.WithError(err).WithField("path", secretPath).Errorln("Failed to list secrets")
		return keys
	}

	if secret == nil || secret.Data == nil {
		return keys
	}

	raw, _ := secret.Data["keys"].([]any)
	for _, key := range raw {
		if name, ok := key.(string); ok {
			keys = append(keys, name)
		}
	}

	logrus.WithField("path", secretPath).Infof("Listed %d secrets", len(keys))

	return keys
}

// DeleteSecret removes the metadata and every version of a KV v2 secret.
func (c *Client) DeleteSecret(ctx context.Context, secretPath string, mount string) *models.SecretResult {

	mount = mountOrDefault(mount, DefaultKVMount)

	if err := c.client.KVv2(mount).DeleteMetadata(ctx, secretPath); err != nil {
		logrus.WithError(err).WithField("path", secretPath).Errorln("Failed to delete secret")
		return &models.SecretResult{
			OperationResult: models.NewErrorResult(fmt.Errorf("failed to delete %s: %w", secretPath, err)),
		}
	}

	logrus.WithField("path", secretPath).Infoln("Deleted secret")

	return &models.SecretResult{
		OperationResult: models.OperationResult{Status: models.StatusDeleted},
		Path:            secretPath,
	}
}
