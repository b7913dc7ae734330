package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/config"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers/pulumi"
)

var pulumiCmd = &cobra.Command{
	Use:   "pulumi",
	Short: "Drive the Pulumi CLI",
	Long:  "Preview, deploy and inspect Pulumi stacks by invoking the pulumi binary (PULUMI_BINARY)",
}

func newPulumiClient() (*pulumi.Client, error) {
	conn, err := config.ResolveConnection(models.Pulumi)
	if err != nil {
		return nil, err
	}
	return pulumi.NewClient(conn), nil
}

// stackAndDir resolves the --stack and --cwd flags against the configuration.
func stackAndDir(cmd *cobra.Command) (string, string) {
	stack, _ := cmd.Flags().GetString("stack")
	dir, _ := cmd.Flags().GetString("cwd")
	if cfg != nil {
		if len(stack) == 0 {
			stack = cfg.Pulumi.Stack
		}
		if len(dir) == 0 {
			dir = cfg.Pulumi.Cwd
		}
	}
	return stack, dir
}

// runPulumi runs fn with a context cancelled on interrupt, so a ^C
// terminates the child pulumi process.
func runPulumi[T any](cmd *cobra.Command, fn func(ctx context.Context, client *pulumi.Client, stack string, dir string) (T, error)) error {
	client, err := newPulumiClient()
	if err != nil {
		return err
	}

	ctx, cancel := common.WithInterrupt(cmd.Context())
	defer cancel()

	stack, dir := stackAndDir(cmd)
	result, err := fn(ctx, client, stack, dir)
	if err != nil {
		return err
	}

	return render(cmd, result)
}

// confirmAction asks the user to confirm a destructive stack operation
// unless --yes was given.
func confirmAction(cmd *cobra.Command, title string, description string) (bool, error) {
	yes, _ := cmd.Flags().GetBool("yes")
	if yes {
		return true, nil
	}

	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Value(&confirm),
		),
	)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("failed to get confirmation: %w", err)
	}

	if !confirm {
		fmt.Fprintln(cmd.ErrOrStderr(), warningStyle.Render("Operation cancelled"))
	}
	return confirm, nil
}

var pulumiPreviewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview pending changes",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (*models.PreviewResult, error) {
			return client.PreviewStack(ctx, dir, stack)
		})
	},
}

var pulumiUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Deploy the stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, _ := stackAndDir(cmd)
		confirmed, err := confirmAction(cmd,
			fmt.Sprintf("Deploy stack %s?", stack),
			"This will create, update or delete cloud resources.")
		if err != nil || !confirmed {
			return err
		}
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (*models.CommandResult, error) {
			return client.DeployStack(ctx, dir, stack, true)
		})
	},
}

var pulumiOutputsCmd = &cobra.Command{
	Use:   "outputs",
	Short: "Show stack outputs",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (map[string]any, error) {
			return client.GetStackOutputs(ctx, dir, stack)
		})
	},
}

var pulumiConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show stack configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (map[string]any, error) {
			return client.GetConfig(ctx, dir, stack)
		})
	},
}

var pulumiConfigSetCmd = &cobra.Command{
	Use:   "config-set <key> <value>",
	Short: "Set a stack configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		secret, _ := cmd.Flags().GetBool("secret")
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (*models.ConfigSetResult, error) {
			return client.SetConfig(ctx, dir, stack, args[0], args[1], secret)
		})
	},
}

var pulumiRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh stack state from the cloud",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (*models.CommandResult, error) {
			return client.RefreshState(ctx, dir, stack)
		})
	},
}

var pulumiStacksCmd = &cobra.Command{
	Use:   "stacks",
	Short: "List stacks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) ([]models.StackSummary, error) {
			return client.ListStacks(ctx, dir)
		})
	},
}

var pulumiInitCmd = &cobra.Command{
	Use:   "init <name>",
	Short: "Create a new stack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (*models.StackInitResult, error) {
			return client.InitStack(ctx, dir, args[0])
		})
	},
}

var pulumiDestroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Destroy every resource in the stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		stack, _ := stackAndDir(cmd)
		confirmed, err := confirmAction(cmd,
			fmt.Sprintf("Destroy stack %s?", stack),
			"All resources managed by this stack will be deleted.")
		if err != nil || !confirmed {
			return err
		}
		return runPulumi(cmd, func(ctx context.Context, client *pulumi.Client, stack string, dir string) (*models.CommandResult, error) {
			return client.DestroyStack(ctx, dir, stack, true)
		})
	},
}

func init() {
	pulumiCmd.PersistentFlags().StringP("stack", "s", "", "Stack name (default from config, then \"dev\")")
	pulumiCmd.PersistentFlags().String("cwd", "", "Pulumi project directory (default from config, then \".\")")

	pulumiUpCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	pulumiDestroyCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
	pulumiConfigSetCmd.Flags().Bool("secret", false, "Store the value encrypted")

	pulumiCmd.AddCommand(
		pulumiPreviewCmd,
		pulumiUpCmd,
		pulumiOutputsCmd,
		pulumiConfigCmd,
		pulumiConfigSetCmd,
		pulumiRefreshCmd,
		pulumiStacksCmd,
		pulumiInitCmd,
		pulumiDestroyCmd,
	)
	rootCmd.AddCommand(pulumiCmd)
}
