package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thand-io/opskit/internal/common"
	"github.com/thand-io/opskit/internal/interpolate"
	"gopkg.in/yaml.v3"
)

const (
	formatJSON  = "json"
	formatYAML  = "yaml"
	formatTable = "table"
)

var ErrOperationFailed = errors.New("operation failed")

// failure is implemented by every result that can report a failed call.
type failure interface {
	IsError() bool
}

func validateOutputFormat(format string) error {
	switch strings.ToLower(format) {
	case formatJSON, formatYAML, formatTable:
		return nil
	default:
		return fmt.Errorf("unsupported output format: %s (use json, yaml or table)", format)
	}
}

// render prints value in the configured format after applying the --query
// filter. Results carrying an error status are printed and then reported
// as ErrOperationFailed.
func render(cmd *cobra.Command, value any) error {

	generic, err := common.ConvertToGeneric(value)
	if err != nil {
		return fmt.Errorf("failed to convert result: %w", err)
	}

	query, _ := cmd.Flags().GetString("query")
	if len(query) > 0 {
		results, err := interpolate.Query(query, generic, nil)
		if err != nil {
			return err
		}
		if len(results) == 1 {
			generic = results[0]
		} else {
			generic = results
		}
	}

	format := formatJSON
	if cfg != nil && len(cfg.Output.Format) > 0 {
		format = strings.ToLower(cfg.Output.Format)
	}

	if err := write(cmd.OutOrStdout(), format, generic); err != nil {
		return err
	}

	if result, ok := value.(failure); ok && result.IsError() {
		fmt.Fprintln(cmd.ErrOrStderr(), statusStyle("error").Render("error"))
		return ErrOperationFailed
	}

	return nil
}

func write(out io.Writer, format string, value any) error {
	switch format {
	case formatYAML:
		data, err := yaml.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		_, err = out.Write(data)
		return err
	case formatTable:
		_, err := fmt.Fprint(out, renderTable(value))
		return err
	default:
		data, err := json.MarshalIndent(value, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
		_, err = fmt.Fprintln(out, string(data))
		return err
	}
}

// renderTable lays out a list of objects as columns, and any other value
// as key/value rows.
func renderTable(value any) string {

	var headers []string
	var rows [][]string

	switch v := value.(type) {
	case []any:
		columns := map[string]bool{}
		for _, item := range v {
			if object, ok := item.(map[string]any); ok {
				for key := range object {
					columns[key] = true
				}
			}
		}
		headers = slices.Sorted(maps.Keys(columns))
		if len(headers) == 0 {
			headers = []string{"value"}
		}
		for _, item := range v {
			row := make([]string, len(headers))
			object, ok := item.(map[string]any)
			for i, header := range headers {
				if ok {
					row[i] = common.StringValue(object[header], "")
				} else {
					row[i] = common.StringValue(item, "")
				}
			}
			rows = append(rows, row)
		}
	case map[string]any:
		headers = []string{"key", "value"}
		for _, key := range slices.Sorted(maps.Keys(v)) {
			rows = append(rows, []string{key, common.StringValue(v[key], "")})
		}
	default:
		return common.StringValue(v, "") + "\n"
	}

	widths := make([]int, len(headers))
	for i, header := range headers {
		widths[i] = len(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var builder strings.Builder
	for i, header := range headers {
		builder.WriteString(cellStyle.Width(widths[i] + 2).Inherit(headerStyle).Render(strings.ToUpper(header)))
	}
	builder.WriteString("\n")
	for _, row := range rows {
		for i, cell := range row {
			builder.WriteString(cellStyle.Width(widths[i] + 2).Render(cell))
		}
		builder.WriteString("\n")
	}
	return builder.String()
}

// parseKeyValues turns key=value arguments into a map.
func parseKeyValues(pairs []string) (map[string]string, error) {
	values := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		key, value, found := strings.Cut(pair, "=")
		if !found || len(key) == 0 {
			return nil, fmt.Errorf("expected key=value, got %q", pair)
		}
		values[key] = value
	}
	return values, nil
}
