package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"unicode"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ReadDataToInterface decodes JSON or YAML data into a new T.
func ReadDataToInterface[T any](data []byte) (*T, error) {

	var item T

	// remove all starting whitespace including newlines to figure out
	// what the first character is
	data = bytes.TrimLeftFunc(data, unicode.IsSpace)

	if len(data) == 0 {
		return nil, fmt.Errorf("no data provided")
	}

	if data[0] == '{' || data[0] == '[' {
		logrus.Debugln("Data format detected: JSON")
		if err := json.Unmarshal(data, &item); err != nil {
			return nil, fmt.Errorf("failed to unmarshal JSON data: %w", err)
		}
		return &item, nil
	}

	logrus.Debugln("Data format detected: YAML")
	if err := yaml.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML data: %w", err)
	}

	return &item, nil
}

// ReadFileToInterface reads path and decodes it with ReadDataToInterface.
func ReadFileToInterface[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ReadDataToInterface[T](data)
}
