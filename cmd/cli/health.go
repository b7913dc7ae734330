package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/config"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Probe every configured provider",
	Long:  "Check connectivity to Grafana, Vault and the pulumi binary and print an aggregated health report",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := common.WithInterrupt(cmd.Context())
		defer cancel()

		report := providers.CheckAll(ctx, config.ResolveConnection, common.GetVersion())

		if err := render(cmd, report); err != nil {
			return err
		}

		fmt.Fprintln(cmd.ErrOrStderr(), statusStyle(string(report.Status)).Render(string(report.Status)))

		if report.Status == models.Unhealthy {
			return fmt.Errorf("%w: no provider is reachable", ErrOperationFailed)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
