package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/config"
	"github.com/thand-io/opskit/internal/opserr"
)

// Global configuration instance
var cfg *config.Config

// loadConfig loads the configuration based on the --config flag or default locations
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	configFile, err := cmd.Flags().GetString("config")

	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}

	return config.Load(configFile)
}

func preRunConfigE(cmd *cobra.Command, _ []string) error {
	// Load configuration before any command runs
	var err error
	cfg, err = loadConfig(cmd)

	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// check if verbose flag is set
	verbose, err := cmd.Flags().GetBool("verbose")
	if err == nil && verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	output, err := cmd.Flags().GetString("output")
	if err == nil && len(output) > 0 {
		cfg.Output.Format = output
	}

	return validateOutputFormat(cfg.Output.Format)
}

var rootCmd = &cobra.Command{
	Use:   "opskit",
	Short: "opskit - operations toolkit for Grafana, Vault and Pulumi",
	Long: `opskit wraps the Grafana HTTP API, HashiCorp Vault and the Pulumi CLI
behind a single command line, alongside small reference implementations of
common operational patterns and convention checks.

Connection settings are read from the environment on every call:
  GRAFANA_URL, GRAFANA_TOKEN
  VAULT_ADDR, VAULT_TOKEN
  PULUMI_BINARY, PULUMI_ACCESS_TOKEN`,
	PersistentPreRunE: preRunConfigE,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func init() {

	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default is ./config.yaml or ~/.config/opskit/config.yaml)")
	rootCmd.PersistentFlags().StringP("output", "o", "", "Output format: json, yaml or table")
	rootCmd.PersistentFlags().StringP("query", "q", "", "jq expression applied to the result before printing")

}

func GetCommandOptions() *cobra.Command {
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var opsErr *opserr.Error
		if errors.As(err, &opsErr) {
			opserr.Handle(opsErr)
		} else {
			fmt.Fprintln(os.Stderr, errorStyle.Render("Error: "+err.Error()))
		}
		os.Exit(1)
	}
}
