package common

import (
	"encoding/json"
	"strings"
	"unicode"
)

// ConvertInterfaceToInterface round trips from through JSON into to.
func ConvertInterfaceToInterface(from any, to any) error {

	if from == nil {
		return nil
	}

	data, err := json.Marshal(from)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, to)
}

// ConvertToGeneric converts typed values into the plain maps, slices and
// scalars produced by encoding/json.
func ConvertToGeneric(from any) (any, error) {
	var result any
	if err := ConvertInterfaceToInterface(from, &result); err != nil {
		return nil, err
	}
	return result, nil
}

/*
Convert everything to lowercase letters, digits and underscores.
Runs of any other character collapse into a single underscore.
*/
func ConvertToSnakeCase(name string) string {
	var builder strings.Builder
	for _, r := range name {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			builder.WriteRune(unicode.ToLower(r))
		} else if builder.Len() > 0 && !strings.HasSuffix(builder.String(), "_") {
			builder.WriteRune('_')
		}
	}
	return strings.TrimSuffix(builder.String(), "_")
}

// StringValue renders loosely typed JSON values (numbers, strings, nulls)
// as a string, returning fallback for missing values.
func StringValue(value any, fallback string) string {
	switch v := value.(type) {
	case nil:
		return fallback
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		data, _ := json.Marshal(v)
		return string(data)
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fallback
		}
		return string(data)
	}
}
