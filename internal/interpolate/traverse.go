package interpolate

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
)

const (
	exprPrefix = "${"
	exprSuffix = "}"
)

// IsExpression reports whether value is a whole-string runtime expression
// such as "${ .name }".
func IsExpression(value string) bool {
	value = strings.TrimSpace(value)
	return strings.HasPrefix(value, exprPrefix) && strings.HasSuffix(value, exprSuffix)
}

// sanitize strips the ${ } wrapper from an expression.
func sanitize(value string) string {
	value = strings.TrimSpace(value)
	value = strings.TrimPrefix(value, exprPrefix)
	value = strings.TrimSuffix(value, exprSuffix)
	return strings.TrimSpace(value)
}

// Traverse walks a decoded JSON/YAML document and replaces every string of
// the form "${ expr }" with the result of evaluating expr against input.
// Variables are exposed to expressions as $name. Maps and slices are
// updated in place.
func Traverse(node any, input any, variables map[string]any) (any, error) {
	switch v := node.(type) {
	case map[string]any:
		for key, value := range v {
			evaluated, err := Traverse(value, input, variables)
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"key":       key,
					"variables": variables,
				}).WithError(err).Errorln("Failed to evaluate expression in map")
				return nil, err
			}
			v[key] = evaluated
		}
		return v, nil

	case []any:
		for i, value := range v {
			evaluated, err := Traverse(value, input, variables)
			if err != nil {
				return nil, err
			}
			v[i] = evaluated
		}
		return v, nil

	case []map[string]any:
		for i, value := range v {
			if _, err := Traverse(value, input, variables); err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
		}
		return v, nil

	case string:
		if IsExpression(v) {
			return Evaluate(sanitize(v), input, variables)
		}
		return v, nil

	default:
		return v, nil
	}
}
