package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vmunix/epsync/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
}

var configCheckCmd = &cobra.Command{
	Use:   "check [path]",
	Short: "Validate configuration file",
	Long:  "Validates TOML syntax, required fields, and environment variable substitution without touching the archive or catalog.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigCheck,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write an example configuration file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configCheckCmd, configShowCmd, configInitCmd)
	configInitCmd.Flags().Bool("force", false, "Overwrite an existing file")
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	path := ""
	if len(args) > 0 {
		path = args[0]
	} else {
		p, err := resolveConfigPath()
		if err != nil {
			return err
		}
		if p == "" {
			return fmt.Errorf("no config file found; run 'epsync config init' to create one")
		}
		path = p
	}

	fmt.Fprintf(out, "Validating %s...\n\n", path)

	cfg, err := config.LoadWithoutValidation(path)
	if err != nil {
		var cfgErr *config.ConfigError
		if errors.As(err, &cfgErr) {
			printConfigErrors(out, cfgErr.Missing, nil, nil)
			return fmt.Errorf("configuration invalid")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	errs := cfg.Validate()
	fatal, warnings := config.Fatal(errs), config.Warnings(errs)
	printConfigErrors(out, nil, fatal, warnings)
	if len(fatal) > 0 {
		return fmt.Errorf("configuration invalid")
	}

	printConfigSummary(out, cfg)
	fmt.Fprintln(out, "\nConfiguration valid!")
	return nil
}

func printConfigErrors(w io.Writer, missing, errs, warnings []string) {
	sections := []struct {
		title string
		items []string
	}{
		{"Missing environment variables:", missing},
		{"Validation errors:", errs},
		{"Warnings:", warnings},
	}
	for _, s := range sections {
		if len(s.items) == 0 {
			continue
		}
		fmt.Fprintln(w, s.title)
		for _, item := range s.items {
			fmt.Fprintf(w, "  - %s\n", item)
		}
		fmt.Fprintln(w)
	}
}

func printConfigSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintln(w, "Configuration Summary:")
	fmt.Fprintf(w, "  Archive:   %s (min %s)\n", cfg.Archive.Path, formatBytes(cfg.Archive.MinFileSize))
	switch cfg.Catalog.Driver {
	case config.DriverPostgREST:
		fmt.Fprintf(w, "  Catalog:   postgrest %s\n", cfg.Catalog.URL)
	default:
		fmt.Fprintf(w, "  Catalog:   %s\n", cfg.Catalog.Driver)
	}
	fmt.Fprintf(w, "  Links:     %s/%s -> %s\n", cfg.Sync.ContentType, cfg.Sync.Source, cfg.Sync.StreamBaseURL)
	fmt.Fprintf(w, "  Batches:   insert %d, update %d\n", cfg.Sync.BatchSize, cfg.Sync.UpdateBatchSize)
	if cfg.TMDB.Enabled {
		fmt.Fprintln(w, "  TMDB:      enabled")
	}
	if cfg.Metrics.Textfile != "" {
		fmt.Fprintf(w, "  Metrics:   %s\n", cfg.Metrics.Textfile)
	}
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.TMDB.APIKey != "" {
		cfg.TMDB.APIKey = "********"
	}
	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), cfg)
	}
	return cfg.Encode(cmd.OutOrStdout())
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := config.DefaultPath()
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	}
	if err := config.WriteDefault(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
