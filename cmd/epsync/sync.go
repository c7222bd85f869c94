package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/vmunix/epsync/internal/archive"
	"github.com/vmunix/epsync/internal/catalog"
	"github.com/vmunix/epsync/internal/catalog/postgrest"
	"github.com/vmunix/epsync/internal/catalog/sqlstore"
	"github.com/vmunix/epsync/internal/config"
	"github.com/vmunix/epsync/internal/metrics"
	"github.com/vmunix/epsync/internal/reconcile"
	"github.com/vmunix/epsync/internal/tmdb"
	"github.com/vmunix/epsync/pkg/release"
	"github.com/vmunix/epsync/pkg/release/scoring"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Match archive files to catalog episodes and write links",
	Long: `Match archive episode files against the catalog and write download links.

Without --live nothing is written; the run reports what would change.

Examples:
  epsync sync                          # Dry run over the whole archive
  epsync sync --series "Breaking Bad"  # Dry run for one series
  epsync sync --live --clear           # Replace all generated links
  epsync sync --limit 20 --json        # First 20 series, JSON report`,
	Args: cobra.NoArgs,
	RunE: runSyncCmd,
}

func init() {
	rootCmd.AddCommand(syncCmd)
	syncCmd.Flags().Bool("live", false, "Write links to the catalog")
	syncCmd.Flags().Bool("clear", false, "Delete existing generated links first")
	syncCmd.Flags().Int("limit", 0, "Stop after this many series (0 = all)")
	syncCmd.Flags().String("series", "", "Only sync this series")
	syncCmd.Flags().Int("batch-size", 0, "Links per insert batch (default from config)")
	syncCmd.Flags().Int("unmatched", 20, "Unmatched series to list in the report")
}

func runSyncCmd(cmd *cobra.Command, _ []string) error {
	live, _ := cmd.Flags().GetBool("live")
	clearLinks, _ := cmd.Flags().GetBool("clear")
	limit, _ := cmd.Flags().GetInt("limit")
	series, _ := cmd.Flags().GetString("series")
	batchSize, _ := cmd.Flags().GetInt("batch-size")
	topUnmatched, _ := cmd.Flags().GetInt("unmatched")

	cfg, path, err := loadConfig()
	if err != nil {
		return err
	}
	logger := newLogger(os.Stderr, cfg.Log)
	if path != "" {
		logger.Debug("loaded config", "path", path)
	}
	for _, w := range config.Warnings(cfg.Validate()) {
		logger.Warn("config", "warning", w)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	arc, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		return err
	}
	defer func() { _ = arc.Close() }()

	store, err := openCatalog(ctx, cfg.Catalog, cfg.Sync)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		defer func() { _ = c.Close() }()
	}

	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	classifier := release.NewClassifier(cfg.Matching.Tables())
	deps := reconcile.Deps{
		Archive:    arc,
		Catalog:    store,
		Classifier: classifier,
		Scorer:     scoring.NewScorer(classifier, cfg.Matching.Weights()),
		Metrics:    m,
		Logger:     logger,
	}
	if cfg.TMDB.Enabled {
		deps.Searcher = newSearcher(cfg.TMDB)
	}

	if batchSize <= 0 {
		batchSize = cfg.Sync.BatchSize
	}
	driver := reconcile.New(reconcile.Options{
		Live:          live,
		Clear:         clearLinks,
		Limit:         limit,
		SeriesFilter:  series,
		BatchSize:     batchSize,
		StreamBaseURL: cfg.Sync.StreamBaseURL,
		ContentType:   cfg.Sync.ContentType,
		Source:        cfg.Sync.Source,
		MinFileSize:   cfg.Archive.MinFileSize,
	}, deps)

	rep, runErr := driver.Run(ctx)
	writeMetrics(logger, cfg.Metrics.Textfile, reg)
	if runErr != nil {
		return fmt.Errorf("sync: %w", runErr)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, rep)
	}
	printReport(out, rep, topUnmatched)
	return nil
}

// openCatalog connects the configured catalog backend.
func openCatalog(ctx context.Context, cfg config.CatalogConfig, sync config.SyncConfig) (catalog.Store, error) {
	switch cfg.Driver {
	case config.DriverPostgREST, "":
		opts := []postgrest.Option{postgrest.WithUpdateBatchSize(sync.UpdateBatchSize)}
		if cfg.Timeout > 0 {
			opts = append(opts, postgrest.WithTimeout(cfg.Timeout))
		}
		return postgrest.NewClient(cfg.URL, opts...), nil
	case config.DriverPostgres, config.DriverSQLite:
		d, err := sqlstore.ParseDialect(cfg.Driver)
		if err != nil {
			return nil, err
		}
		s, err := sqlstore.Open(ctx, d, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		s.SetUpdateBatchSize(sync.UpdateBatchSize)
		if d == sqlstore.DialectSQLite {
			if err := s.Migrate(ctx); err != nil {
				_ = s.Close()
				return nil, fmt.Errorf("migrate catalog: %w", err)
			}
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown catalog driver %q", cfg.Driver)
	}
}

func newSearcher(cfg config.TMDBConfig) *tmdb.Client {
	var opts []tmdb.Option
	if cfg.BaseURL != "" {
		opts = append(opts, tmdb.WithBaseURL(cfg.BaseURL))
	}
	return tmdb.NewClient(cfg.APIKey, opts...)
}

func writeMetrics(logger *slog.Logger, path string, g prometheus.Gatherer) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path, g); err != nil {
		logger.Warn("write metrics textfile failed", "path", path, "error", err)
		return
	}
	logger.Debug("wrote metrics textfile", "path", path)
}
