package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/epsync/internal/config"
)

var version = "dev"

var (
	configPath string
	jsonOutput bool
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "epsync",
	Short: "Sync archive episode files into catalog download links",
	Long: `epsync - archive to catalog episode sync

Reads episode files from a media archive, picks the best file per episode
for 720p and 1080p, resolves each episode against the catalog, and writes
streaming download links.

Runs are dry by default. Pass --live to write.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: discovered)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override log level (debug, info, warn, error)")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("epsync {{.Version}}\n")
}

// resolveConfigPath returns the --config flag or the discovered path.
// An empty path with a nil error means no config file exists.
func resolveConfigPath() (string, error) {
	if configPath != "" {
		return configPath, nil
	}
	path, err := config.Discover()
	if errors.Is(err, config.ErrNotFound) {
		return "", nil
	}
	return path, err
}

// loadConfig loads and validates the config, falling back to defaults and
// environment overrides when no file exists.
func loadConfig() (*config.Config, string, error) {
	path, err := resolveConfigPath()
	if err != nil {
		return nil, "", err
	}
	if path == "" {
		cfg := config.Default()
		if errs := config.Fatal(cfg.Validate()); len(errs) > 0 {
			return nil, "", &config.ConfigError{Errors: errs}
		}
		return cfg, "", nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("config: %w", err)
	}
	return cfg, path, nil
}
