package common

import (
	"net/url"
)

// IsAllDigits checks if a string contains only digits (0-9)
func IsAllDigits(s string) bool {
	if len(s) == 0 {
		return false
	}

	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}

	return true
}

// IsValidURL reports whether rawurl is an absolute URL with a scheme and host.
func IsValidURL(rawurl string) bool {
	parsed, err := url.ParseRequestURI(rawurl)
	if err != nil {
		return false
	}
	return len(parsed.Scheme) > 0 && len(parsed.Host) > 0
}
