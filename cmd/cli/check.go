package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/checks"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/models"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate names, tags and reports against operational conventions",
}

var checkMetricCmd = &cobra.Command{
	Use:   "metric <name>...",
	Short: "Validate metric names",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		invalid := checks.InvalidMetricNames(args)

		suggestions := make(map[string]string, len(invalid))
		for _, name := range invalid {
			suggestions[name] = checks.SuggestMetricName(name)
		}

		if err := render(cmd, map[string]any{
			"valid":       len(invalid) == 0,
			"invalid":     invalid,
			"suggestions": suggestions,
		}); err != nil {
			return err
		}

		if len(invalid) > 0 {
			return fmt.Errorf("%w: %d invalid metric names", ErrOperationFailed, len(invalid))
		}
		return nil
	},
}

var checkImageCmd = &cobra.Command{
	Use:   "image <registry/image:tag> | <registry> <image> <tag>",
	Short: "Validate or build an image reference",
	Args: cobra.MatchAll(cobra.RangeArgs(1, 3), func(cmd *cobra.Command, args []string) error {
		if len(args) == 2 {
			return fmt.Errorf("expected a full reference or registry, image and tag")
		}
		return nil
	}),
	RunE: func(cmd *cobra.Command, args []string) error {
		tag := args[0]
		if len(args) == 3 {
			tag = checks.FormatImageTag(args[0], args[1], args[2])
		}

		valid := checks.IsValidImageTag(tag)
		if err := render(cmd, map[string]any{"image": tag, "valid": valid}); err != nil {
			return err
		}
		if !valid {
			return fmt.Errorf("%w: %s is not registry/image:tag", ErrOperationFailed, tag)
		}
		return nil
	},
}

var checkPortCmd = &cobra.Command{
	Use:   "port <host:container>",
	Short: "Parse a port mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mapping, err := checks.ParsePortMapping(args[0])
		if err != nil {
			return err
		}
		return render(cmd, mapping)
	},
}

var checkDockerfileCmd = &cobra.Command{
	Use:   "dockerfile <path>",
	Short: "List the instructions of a Dockerfile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read dockerfile: %w", err)
		}
		return render(cmd, checks.DockerfileInstructions(string(content)))
	},
}

var checkHealthCmd = &cobra.Command{
	Use:   "health <report-file>",
	Short: "Validate a JSON or YAML health report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := common.ReadFileToInterface[models.HealthReport](args[0])
		if err != nil {
			return fmt.Errorf("failed to read health report: %w", err)
		}
		if err := checks.ValidateHealthReport(report); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), successStyle.Render("✓ health report is valid"))
		return nil
	},
}

func init() {
	checkCmd.AddCommand(
		checkMetricCmd,
		checkImageCmd,
		checkPortCmd,
		checkDockerfileCmd,
		checkHealthCmd,
	)
	rootCmd.AddCommand(checkCmd)
}
