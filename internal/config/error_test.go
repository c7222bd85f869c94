package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError_Error_Empty(t *testing.T) {
	e := &ConfigError{Path: "/etc/epsync/config.toml"}
	assert.Empty(t, e.Error())
	assert.False(t, e.HasErrors())
}

func TestConfigError_Error_MissingVars(t *testing.T) {
	e := &ConfigError{
		Path:    "/etc/epsync/config.toml",
		Missing: []string{"TMDB_API_KEY", "SECRET"},
	}
	got := e.Error()
	assert.Contains(t, got, "/etc/epsync/config.toml")
	assert.Contains(t, got, "missing environment variables")
	assert.Contains(t, got, "TMDB_API_KEY")
	assert.Contains(t, got, "SECRET")
	assert.True(t, e.HasErrors())
}

func TestConfigError_Error_ValidationErrors(t *testing.T) {
	e := &ConfigError{
		Path:   "/etc/epsync/config.toml",
		Errors: []string{"catalog.driver: unknown", "log.level: bad"},
	}
	got := e.Error()
	assert.Contains(t, got, "validation failed")
	assert.Contains(t, got, "  - catalog.driver")
	assert.NotContains(t, got, "missing environment variables")
}

func TestConfigError_Error_Both(t *testing.T) {
	e := &ConfigError{
		Missing: []string{"API_KEY"},
		Errors:  []string{"catalog.url: required"},
	}
	got := e.Error()
	assert.Contains(t, got, "missing environment variables")
	assert.Contains(t, got, "validation failed")
}

func TestWarnings(t *testing.T) {
	errs := []string{
		"catalog.url: required",
		`archive.path: warning: file "/x" does not exist`,
	}
	assert.Equal(t, errs[1:], Warnings(errs))
	assert.Empty(t, Warnings(nil))
}

func TestFatal(t *testing.T) {
	errs := []string{
		"catalog.url: required",
		`archive.path: warning: file "/x" does not exist`,
	}
	assert.Equal(t, errs[:1], Fatal(errs))
}
