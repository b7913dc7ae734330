package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/patterns"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Run the factory, singleton, strategy and observer examples",
}

var cloudClientCmd = &cobra.Command{
	Use:   "cloud-client <provider>",
	Short: "Build a cloud client description",
	Long:  fmt.Sprintf("Build a cloud client description for one of: %s", strings.Join(patterns.SupportedCloudProviders(), ", ")),
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		region, _ := cmd.Flags().GetString("region")
		authMethod, _ := cmd.Flags().GetString("auth-method")
		projectID, _ := cmd.Flags().GetString("project-id")
		subscriptionID, _ := cmd.Flags().GetString("subscription-id")

		client, err := patterns.CreateCloudClient(args[0], region, patterns.CloudClientOptions{
			AuthMethod:     authMethod,
			ProjectID:      projectID,
			SubscriptionID: subscriptionID,
		})
		if err != nil {
			return err
		}
		return render(cmd, client)
	},
}

var notifyCmd = &cobra.Command{
	Use:   "notify <channel> <message>",
	Short: "Send a notification through a registered channel",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("opt")
		opts, err := parseKeyValues(pairs)
		if err != nil {
			return err
		}

		sent := patterns.SendNotification(args[0], args[1], opts)
		if err := render(cmd, map[string]any{"channel": args[0], "sent": sent}); err != nil {
			return err
		}
		if !sent {
			return fmt.Errorf("%w: channel %s (available: %s)", ErrOperationFailed, args[0], strings.Join(patterns.NotificationChannels(), ", "))
		}
		return nil
	},
}

var deployCmd = &cobra.Command{
	Use:   "deploy <service> <version>",
	Short: "Run a deployment strategy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		replicas, _ := cmd.Flags().GetInt("replicas")
		canary, _ := cmd.Flags().GetInt("canary-percent")
		delay, _ := cmd.Flags().GetDuration("step-delay")

		result, err := patterns.Deploy(cmd.Context(), args[0], args[1], strategy, patterns.DeployOptions{
			Replicas:      replicas,
			CanaryPercent: canary,
			StepDelay:     delay,
		})
		if err != nil {
			return err
		}
		return render(cmd, result)
	},
}

var backupCmd = &cobra.Command{
	Use:   "backup <resource> <destination>",
	Short: "Plan a backup with the chosen strategy",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		strategy, _ := cmd.Flags().GetString("strategy")
		plan, err := patterns.CreateBackup(args[0], args[1], strategy)
		if err != nil {
			return err
		}
		return render(cmd, plan)
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the shared settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")
		if len(path) == 0 && cfg != nil {
			path = cfg.Settings.Path
		}
		return render(cmd, patterns.GetSettings(path))
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events <event-type>",
	Short: "Publish an event on the monitoring bus",
	Long: `Publish an event on a bus wired like a monitoring pipeline:
alert.critical goes to slack and pagerduty, alert.warning and deployment.*
go to slack, and every event is audited.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		message, _ := cmd.Flags().GetString("message")
		severity, _ := cmd.Flags().GetString("severity")
		pairs, _ := cmd.Flags().GetStringArray("data")

		level, err := models.ParseSeverity(severity)
		if err != nil {
			return err
		}

		values, err := parseKeyValues(pairs)
		if err != nil {
			return err
		}
		data := map[string]any{
			"message":  message,
			"severity": string(level),
		}
		for key, value := range values {
			data[key] = value
		}

		bus := patterns.NewMonitoringEventBus()
		notified := bus.Publish(args[0], data)

		return render(cmd, map[string]any{
			"event":    args[0],
			"notified": notified,
			"history":  bus.History(""),
		})
	},
}

func init() {
	cloudClientCmd.Flags().String("region", patterns.DefaultRegion, "Region or location")
	cloudClientCmd.Flags().String("auth-method", "", "Override the provider's default auth method")
	cloudClientCmd.Flags().String("project-id", "", "GCP project id")
	cloudClientCmd.Flags().String("subscription-id", "", "Azure subscription id")

	notifyCmd.Flags().StringArray("opt", nil, "Channel option (key=value)")

	deployCmd.Flags().String("strategy", patterns.DefaultDeployStrategy, fmt.Sprintf("Deployment strategy: %s", strings.Join(patterns.DeployStrategies(), ", ")))
	deployCmd.Flags().Int("replicas", patterns.DefaultReplicas, "Replica count")
	deployCmd.Flags().Int("canary-percent", patterns.DefaultCanaryPercent, "Traffic share for the canary step")
	deployCmd.Flags().Duration("step-delay", 0, "Pause between steps")

	backupCmd.Flags().String("strategy", patterns.DefaultBackupStrategy, fmt.Sprintf("Backup strategy: %s", strings.Join(patterns.BackupStrategies(), ", ")))

	settingsCmd.Flags().String("file", "", "JSON or YAML settings file (default from config)")

	eventsCmd.Flags().String("message", "", "Event message")
	eventsCmd.Flags().String("severity", string(models.SeverityInfo), "Event severity")
	eventsCmd.Flags().StringArray("data", nil, "Extra event data (key=value)")

	patternsCmd.AddCommand(
		cloudClientCmd,
		notifyCmd,
		deployCmd,
		backupCmd,
		settingsCmd,
		eventsCmd,
	)
	rootCmd.AddCommand(patternsCmd)
}
