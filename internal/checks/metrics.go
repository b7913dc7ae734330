package checks

import (
	"regexp"

	"github.com/thand-io/opskit/internal/common"
)

// Prometheus style, restricted to lower case snake case.
var metricNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

func IsValidMetricName(name string) bool {
	return metricNamePattern.MatchString(name)
}

// InvalidMetricNames returns the names that do not follow the naming
// convention, in input order.
func InvalidMetricNames(names []string) []string {
	invalid := []string{}
	for _, name := range names {
		if !IsValidMetricName(name) {
			invalid = append(invalid, name)
		}
	}
	return invalid
}

// SuggestMetricName rewrites name into a valid metric name, or returns an
// empty string when nothing usable remains.
func SuggestMetricName(name string) string {
	suggestion := common.ConvertToSnakeCase(name)
	for len(suggestion) > 0 && !(suggestion[0] >= 'a' && suggestion[0] <= 'z') {
		suggestion = suggestion[1:]
	}
	if !IsValidMetricName(suggestion) {
		return ""
	}
	return suggestion
}
