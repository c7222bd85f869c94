package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfig names the environment variable that pins the config path.
const EnvConfig = "EPSYNC_CONFIG"

// DefaultPath returns the XDG-compliant default config path.
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./epsync.toml"
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "epsync", "config.toml")
}

// Discover finds the config file using the standard search order:
//  1. EPSYNC_CONFIG environment variable
//  2. ./epsync.toml
//  3. $XDG_CONFIG_HOME/epsync/config.toml
//  4. /etc/epsync/config.toml
func Discover() (string, error) {
	if envPath := os.Getenv(EnvConfig); envPath != "" {
		if _, err := os.Stat(envPath); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfig, envPath, err)
		}
		return envPath, nil
	}

	paths := []string{
		"./epsync.toml",
		DefaultPath(),
		"/etc/epsync/config.toml",
	}

	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w, checked: %s", ErrNotFound, formatPaths(paths))
}

// ErrNotFound is returned by Discover when no config file exists.
var ErrNotFound = errors.New("config not found")

func formatPaths(paths []string) string {
	return strings.Join(paths, ", ")
}
