package vault

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"

	"github.com/sirupsen/logrus"
	"github.com/thand-io/opskit/internal/models"
)

// EncryptData encrypts plaintext with the named transit key. The key never
// leaves Vault; only the ciphertext is returned.
func (c *Client) EncryptData(ctx context.Context, key string, plaintext string, mount string) *models.TransitResult {

	mount = mountOrDefault(mount, DefaultTransitMount)

	secret, err := c.client.Logical().WriteWithContext(ctx, path.Join(mount, "encrypt", key), map[string]any{
		"plaintext": base64.StdEncoding.EncodeToString([]byte(plaintext)),
	})
	if err == nil && (secret == nil || secret.Data["ciphertext"] == nil) {
		err = fmt.Errorf("no ciphertext returned for key %s", key)
	}
	if err != nil {
		logrus.WithError(err).WithField("key", key).Errorln("Failed to encrypt data")
		return &models.TransitResult{OperationResult: models.NewErrorResult(err)}
	}

	ciphertext, _ := secret.Data["ciphertext"].(string)

	logrus.Infof("Encrypted data with key=%s", key)

	return &models.TransitResult{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		Ciphertext:      ciphertext,
	}
}

// DecryptData decrypts ciphertext produced by EncryptData.
func (c *Client) DecryptData(ctx context.Context, key string, ciphertext string, mount string) *models.TransitResult {

	mount = mountOrDefault(mount, DefaultTransitMount)

	secret, err := c.client.Logical().WriteWithContext(ctx, path.Join(mount, "decrypt", key), map[string]any{
		"ciphertext": ciphertext,
	})
	if err == nil && (secret == nil || secret.Data["plaintext"] == nil) {
		err = fmt.Errorf("no plaintext returned for key %s", key)
	}

	var decoded []byte
	if err == nil {
		encoded, _ := secret.Data["plaintext"].(string)
		decoded, err = base64.StdEncoding.DecodeString(encoded)
	}

	if err != nil {
		logrus.WithError(err).WithField("key", key).Errorln("Failed to decrypt data")
		return &models.TransitResult{OperationResult: models.NewErrorResult(err)}
	}

	logrus.Infof("Decrypted data with key=%s", key)

	return &models.TransitResult{
		OperationResult: models.OperationResult{Status: models.StatusOK},
		Plaintext:       string(decoded),
	}
}

// RotateKey adds a new version to the transit key. Data encrypted with
// earlier versions stays decryptable.
func (c *Client) RotateKey(ctx context.Context, key string, mount string) *models.KeyRotationResult {

	mount = mountOrDefault(mount, DefaultTransitMount)

	if _, err := c.client.Logical().WriteWithContext(ctx, path.Join(mount, "keys", key, "rotate"), nil); err != nil {
		logrus.WithError(err).WithField("key", key).Errorln("Failed to rotate key")
		return &models.KeyRotationResult{OperationResult: models.NewErrorResult(err)}
	}

	logrus.Infof("Rotated key: %s", key)

	return &models.KeyRotationResult{
		OperationResult: models.OperationResult{Status: models.StatusRotated},
		Key:             key,
	}
}
