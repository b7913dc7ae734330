package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/common"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("opskit"))
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", headerStyle.Render("Version:"), infoStyle.Render(common.GetVersion()))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
