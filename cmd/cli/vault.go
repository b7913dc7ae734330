package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/config"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers/vault"
)

var vaultCmd = &cobra.Command{
	Use:   "vault",
	Short: "Manage Vault secrets, policies and encryption keys",
	Long:  "Read and write secrets, issue dynamic credentials and use the transit engine via VAULT_ADDR and VAULT_TOKEN",
}

func newVaultClient() (*vault.Client, error) {
	conn, err := config.ResolveConnection(models.Vault)
	if err != nil {
		return nil, err
	}
	return vault.NewClient(conn)
}

// kvMount returns the --mount flag, falling back to the configured KV mount.
func kvMount(cmd *cobra.Command) string {
	mount, _ := cmd.Flags().GetString("mount")
	if len(mount) == 0 && cfg != nil {
		mount = cfg.Vault.Mount
	}
	return mount
}

func transitMount(cmd *cobra.Command) string {
	mount, _ := cmd.Flags().GetString("mount")
	if len(mount) == 0 && cfg != nil {
		mount = cfg.Vault.TransitMount
	}
	return mount
}

func secretData(pairs []string) (map[string]any, error) {
	values, err := parseKeyValues(pairs)
	if err != nil {
		return nil, err
	}
	data := make(map[string]any, len(values))
	for key, value := range values {
		data[key] = value
	}
	return data, nil
}

var vaultReadCmd = &cobra.Command{
	Use:   "read <path>",
	Short: "Read a KV v2 secret",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.ReadSecret(cmd.Context(), args[0], kvMount(cmd)))
	},
}

var vaultWriteCmd = &cobra.Command{
	Use:   "write <path> <key=value>...",
	Short: "Write a KV v2 secret",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := secretData(args[1:])
		if err != nil {
			return err
		}
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.WriteSecret(cmd.Context(), args[0], data, kvMount(cmd)))
	},
}

var vaultRotateCmd = &cobra.Command{
	Use:   "rotate <path> <key=value>...",
	Short: "Replace a KV v2 secret with new values",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := secretData(args[1:])
		if err != nil {
			return err
		}
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.RotateKVSecret(cmd.Context(), args[0], data, kvMount(cmd)))
	},
}

var vaultListCmd = &cobra.Command{
	Use:   "list [path]",
	Short: "List secret keys under a path",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) > 0 {
			path = args[0]
		}
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.ListSecrets(cmd.Context(), path, kvMount(cmd)))
	},
}

var vaultDeleteCmd = &cobra.Command{
	Use:   "delete <path>",
	Short: "Delete a KV v2 secret and all of its versions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.DeleteSecret(cmd.Context(), args[0], kvMount(cmd)))
	},
}

var vaultPoliciesCmd = &cobra.Command{
	Use:   "policies",
	Short: "List ACL policies",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		policies, err := client.ListPolicies(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, policies)
	},
}

var vaultCreatePolicyCmd = &cobra.Command{
	Use:   "create-policy <name>",
	Short: "Create or update an ACL policy",
	Long: fmt.Sprintf(`Create or update an ACL policy from an HCL file or a built-in template.

Available templates: %v`, vault.PolicyTemplateNames()),
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rulesFile, _ := cmd.Flags().GetString("rules-file")
		template, _ := cmd.Flags().GetString("template")

		var rules string
		switch {
		case len(rulesFile) > 0:
			data, err := os.ReadFile(rulesFile)
			if err != nil {
				return fmt.Errorf("failed to read rules: %w", err)
			}
			rules = string(data)
		case len(template) > 0:
			var err error
			rules, err = vault.PolicyTemplate(template)
			if err != nil {
				return err
			}
		default:
			return fmt.Errorf("either --rules-file or --template is required")
		}

		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.CreatePolicy(cmd.Context(), args[0], rules))
	},
}

var vaultDBCredsCmd = &cobra.Command{
	Use:   "db-creds <role>",
	Short: "Issue dynamic database credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mount, _ := cmd.Flags().GetString("mount")
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.GetDatabaseCredentials(cmd.Context(), args[0], mount))
	},
}

var vaultAWSCredsCmd = &cobra.Command{
	Use:   "aws-creds <role>",
	Short: "Issue dynamic AWS credentials",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mount, _ := cmd.Flags().GetString("mount")
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.GetAWSCredentials(cmd.Context(), args[0], mount))
	},
}

var vaultRevokeCmd = &cobra.Command{
	Use:   "revoke <lease-id>",
	Short: "Revoke a lease",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.RevokeLease(cmd.Context(), args[0]))
	},
}

var vaultEncryptCmd = &cobra.Command{
	Use:   "encrypt <key> <plaintext>",
	Short: "Encrypt data with a transit key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.EncryptData(cmd.Context(), args[0], args[1], transitMount(cmd)))
	},
}

var vaultDecryptCmd = &cobra.Command{
	Use:   "decrypt <key> <ciphertext>",
	Short: "Decrypt data with a transit key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.DecryptData(cmd.Context(), args[0], args[1], transitMount(cmd)))
	},
}

var vaultRotateKeyCmd = &cobra.Command{
	Use:   "rotate-key <key>",
	Short: "Rotate a transit key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newVaultClient()
		if err != nil {
			return err
		}
		return render(cmd, client.RotateKey(cmd.Context(), args[0], transitMount(cmd)))
	},
}

func init() {
	for _, cmd := range []*cobra.Command{
		vaultReadCmd, vaultWriteCmd, vaultRotateCmd, vaultListCmd, vaultDeleteCmd,
	} {
		cmd.Flags().String("mount", "", "KV v2 mount (default from config, then \"secret\")")
	}
	vaultDBCredsCmd.Flags().String("mount", vault.DefaultDatabaseMount, "Database secrets engine mount")
	vaultAWSCredsCmd.Flags().String("mount", vault.DefaultAWSMount, "AWS secrets engine mount")
	for _, cmd := range []*cobra.Command{
		vaultEncryptCmd, vaultDecryptCmd, vaultRotateKeyCmd,
	} {
		cmd.Flags().String("mount", "", "Transit mount (default from config, then \"transit\")")
	}

	vaultCreatePolicyCmd.Flags().String("rules-file", "", "HCL file holding the policy rules")
	vaultCreatePolicyCmd.Flags().String("template", "", "Built-in policy template")
	vaultCreatePolicyCmd.MarkFlagsMutuallyExclusive("rules-file", "template")

	vaultCmd.AddCommand(
		vaultReadCmd,
		vaultWriteCmd,
		vaultRotateCmd,
		vaultListCmd,
		vaultDeleteCmd,
		vaultPoliciesCmd,
		vaultCreatePolicyCmd,
		vaultDBCredsCmd,
		vaultAWSCredsCmd,
		vaultRevokeCmd,
		vaultEncryptCmd,
		vaultDecryptCmd,
		vaultRotateKeyCmd,
	)
	rootCmd.AddCommand(vaultCmd)
}
