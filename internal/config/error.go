package config

import (
	"fmt"
	"strings"
)

// ConfigError aggregates configuration errors.
type ConfigError struct {
	Path    string   // Config file path
	Missing []string // Unresolved environment variables
	Errors  []string // Validation errors
}

func (e *ConfigError) Error() string {
	if len(e.Missing) == 0 && len(e.Errors) == 0 {
		return ""
	}

	var parts []string
	if e.Path != "" {
		parts = append(parts, e.Path+":")
	}

	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing environment variables: %s", strings.Join(e.Missing, ", ")))
	}

	if len(e.Errors) > 0 {
		parts = append(parts, "validation failed:")
		for _, err := range e.Errors {
			parts = append(parts, fmt.Sprintf("  - %s", err))
		}
	}

	return strings.Join(parts, "\n")
}

// HasErrors returns true if there are any errors.
func (e *ConfigError) HasErrors() bool {
	return len(e.Missing) > 0 || len(e.Errors) > 0
}

// Warnings returns the validation messages flagged as non-fatal.
func Warnings(errs []string) []string {
	return filter(errs, true)
}

// Fatal returns the validation messages that are not warnings.
func Fatal(errs []string) []string {
	return filter(errs, false)
}

func filter(errs []string, warnings bool) []string {
	var out []string
	for _, e := range errs {
		if isWarning(e) == warnings {
			out = append(out, e)
		}
	}
	return out
}

func isWarning(msg string) bool {
	return strings.Contains(msg, ": warning: ")
}
