package models

import (
	"fmt"
	"strings"
)

type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityError    Severity = "error"
	SeverityCritical Severity = "critical"
)

// Severities lists every severity from least to most urgent.
var Severities = []Severity{
	SeverityInfo,
	SeverityWarning,
	SeverityError,
	SeverityCritical,
}

// severityAliases maps alternative names used by alerting tools onto the
// known severities.
var severityAliases = map[string]Severity{
	"high": SeverityCritical,
}

func ParseSeverity(value string) (Severity, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if alias, ok := severityAliases[normalized]; ok {
		return alias, nil
	}
	s := Severity(normalized)
	if s.Rank() < 0 {
		return "", fmt.Errorf("unknown severity: %s", value)
	}
	return s, nil
}

// Rank returns the position of the severity in the ordering, or -1 when it
// is not a known severity.
func (s Severity) Rank() int {
	for i, known := range Severities {
		if known == s {
			return i
		}
	}
	return -1
}

// Compare returns a negative number when s is less urgent than other, zero
// when equal and a positive number when more urgent.
func (s Severity) Compare(other Severity) int {
	return s.Rank() - other.Rank()
}

func (s Severity) AtLeast(other Severity) bool {
	return s.Compare(other) >= 0
}
