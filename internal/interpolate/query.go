package interpolate

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/itchyny/gojq"
)

var ErrNoResult = errors.New("no result from jq evaluation")

func compile(expression string, variables map[string]any) (*gojq.Code, []any, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse jq expression: %s, error: %w", expression, err)
	}

	names, values := variableNamesAndValues(variables)

	code, err := gojq.Compile(query, gojq.WithVariables(names))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile jq expression: %s, error: %w", expression, err)
	}

	return code, values, nil
}

// Evaluate runs a jq expression against input and returns the first
// result.
func Evaluate(expression string, input any, variables map[string]any) (any, error) {
	code, values, err := compile(expression, variables)
	if err != nil {
		return nil, err
	}

	iter := code.Run(input, values...)
	result, ok := iter.Next()
	if !ok {
		return nil, ErrNoResult
	}

	if errVal, isErr := result.(error); isErr {
		return nil, fmt.Errorf("jq evaluation error: %w", errVal)
	}

	return result, nil
}

// Query runs a jq expression against input and collects every result.
// input must already be made of plain maps, slices and scalars.
func Query(expression string, input any, variables map[string]any) ([]any, error) {
	code, values, err := compile(expression, variables)
	if err != nil {
		return nil, err
	}

	results := []any{}
	iter := code.Run(input, values...)
	for {
		result, ok := iter.Next()
		if !ok {
			break
		}
		if errVal, isErr := result.(error); isErr {
			return nil, fmt.Errorf("jq evaluation error: %w", errVal)
		}
		results = append(results, result)
	}

	return results, nil
}

// variableNamesAndValues returns matching name and value slices in a
// stable order. Names are prefixed with $ when needed.
func variableNamesAndValues(vars map[string]any) ([]string, []any) {
	names := make([]string, 0, len(vars))
	values := make([]any, 0, len(vars))

	for _, k := range slices.Sorted(maps.Keys(vars)) {
		name := k
		if !strings.HasPrefix(name, "$") {
			name = "$" + name
		}
		names = append(names, name)
		values = append(values, vars[k])
	}
	return names, values
}
