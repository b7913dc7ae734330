package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/config"
	"github.com/thand-io/opskit/internal/interpolate"
	"github.com/thand-io/opskit/internal/models"
	"github.com/thand-io/opskit/internal/providers/grafana"
)

var grafanaCmd = &cobra.Command{
	Use:   "grafana",
	Short: "Manage Grafana dashboards, datasources and alerting",
	Long:  "Query and modify a Grafana instance through its HTTP API using GRAFANA_URL and GRAFANA_TOKEN",
}

func newGrafanaClient() (*grafana.Client, error) {
	conn, err := config.ResolveConnection(models.Grafana)
	if err != nil {
		return nil, err
	}
	client := grafana.NewClient(conn)
	if cfg != nil && cfg.Grafana.Timeout > 0 {
		client.SetTimeout(cfg.Grafana.Timeout)
	}
	return client, nil
}

var grafanaDashboardsCmd = &cobra.Command{
	Use:   "dashboards",
	Short: "Search dashboards",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		search, _ := cmd.Flags().GetString("search")
		tag, _ := cmd.Flags().GetString("tag")

		dashboards, err := client.SearchDashboards(cmd.Context(), search, tag)
		if err != nil {
			return err
		}
		return render(cmd, dashboards)
	},
}

var grafanaDashboardCmd = &cobra.Command{
	Use:   "dashboard <uid>",
	Short: "Show the full dashboard document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		dashboard, err := client.GetDashboard(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render(cmd, dashboard)
	},
}

// loadPanels reads a panel list from a JSON or YAML file and expands any
// ${ } expressions against the supplied variables.
func loadPanels(path string, vars []string) ([]map[string]any, error) {
	if len(path) == 0 {
		return nil, nil
	}

	panels, err := common.ReadFileToInterface[[]map[string]any](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read panels: %w", err)
	}

	values, err := parseKeyValues(vars)
	if err != nil {
		return nil, err
	}
	variables := make(map[string]any, len(values))
	for key, value := range values {
		variables[key] = value
	}

	expanded, err := interpolate.Traverse(*panels, nil, variables)
	if err != nil {
		return nil, fmt.Errorf("failed to expand panels: %w", err)
	}

	var result []map[string]any
	if err := common.ConvertInterfaceToInterface(expanded, &result); err != nil {
		return nil, err
	}
	return result, nil
}

var grafanaCreateDashboardCmd = &cobra.Command{
	Use:   "create-dashboard",
	Short: "Create or update a dashboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		title, _ := cmd.Flags().GetString("title")
		panelsFile, _ := cmd.Flags().GetString("panels")
		vars, _ := cmd.Flags().GetStringArray("var")
		folderID, _ := cmd.Flags().GetInt("folder-id")
		overwrite, _ := cmd.Flags().GetBool("overwrite")

		panels, err := loadPanels(panelsFile, vars)
		if err != nil {
			return err
		}

		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		result, err := client.CreateDashboard(cmd.Context(), title, panels, folderID, overwrite)
		if err != nil {
			return err
		}
		return render(cmd, result)
	},
}

var grafanaDatasourcesCmd = &cobra.Command{
	Use:   "datasources",
	Short: "List datasources",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		datasources, err := client.ListDatasources(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, datasources)
	},
}

var grafanaCreateDatasourceCmd = &cobra.Command{
	Use:   "create-datasource <name> <prometheus-url>",
	Short: "Add a Prometheus datasource",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !common.IsValidURL(args[1]) {
			return fmt.Errorf("invalid prometheus url: %s", args[1])
		}
		isDefault, _ := cmd.Flags().GetBool("default")

		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		result, err := client.CreatePrometheusDatasource(cmd.Context(), args[0], args[1], isDefault)
		if err != nil {
			return err
		}
		return render(cmd, result)
	},
}

var grafanaAlertRulesCmd = &cobra.Command{
	Use:   "alert-rules",
	Short: "List provisioned alert rules",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		rules, err := client.ListAlertRules(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, rules)
	},
}

var grafanaContactPointsCmd = &cobra.Command{
	Use:   "contact-points",
	Short: "List alerting contact points",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		points, err := client.ListContactPoints(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, points)
	},
}

var grafanaSnapshotCmd = &cobra.Command{
	Use:   "snapshot <dashboard-uid>",
	Short: "Create a dashboard snapshot",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		expires, _ := cmd.Flags().GetInt("expires")

		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		result, err := client.CreateSnapshot(cmd.Context(), args[0], name, expires)
		if err != nil {
			return err
		}
		return render(cmd, result)
	},
}

var grafanaSnapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List snapshots",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newGrafanaClient()
		if err != nil {
			return err
		}
		snapshots, err := client.ListSnapshots(cmd.Context())
		if err != nil {
			return err
		}
		return render(cmd, snapshots)
	},
}

func init() {
	grafanaDashboardsCmd.Flags().String("search", "", "Search query")
	grafanaDashboardsCmd.Flags().String("tag", "", "Filter by tag")

	grafanaCreateDashboardCmd.Flags().String("title", "", "Dashboard title")
	grafanaCreateDashboardCmd.Flags().String("panels", "", "JSON or YAML file holding the panel list")
	grafanaCreateDashboardCmd.Flags().StringArray("var", nil, "Variable for ${ } expressions in panels (key=value)")
	grafanaCreateDashboardCmd.Flags().Int("folder-id", 0, "Target folder id")
	grafanaCreateDashboardCmd.Flags().Bool("overwrite", false, "Overwrite an existing dashboard with the same title")
	_ = grafanaCreateDashboardCmd.MarkFlagRequired("title")

	grafanaCreateDatasourceCmd.Flags().Bool("default", false, "Make this the default datasource")

	grafanaSnapshotCmd.Flags().String("name", "", "Snapshot name (defaults to the dashboard title)")
	grafanaSnapshotCmd.Flags().Int("expires", grafana.DefaultSnapshotExpiry, "Expiry in seconds, 0 never expires")

	grafanaCmd.AddCommand(
		grafanaDashboardsCmd,
		grafanaDashboardCmd,
		grafanaCreateDashboardCmd,
		grafanaDatasourcesCmd,
		grafanaCreateDatasourceCmd,
		grafanaAlertRulesCmd,
		grafanaContactPointsCmd,
		grafanaSnapshotCmd,
		grafanaSnapshotsCmd,
	)
	rootCmd.AddCommand(grafanaCmd)
}
