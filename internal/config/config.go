// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/vmunix/epsync/pkg/release"
	"github.com/vmunix/epsync/pkg/release/scoring"
)

// Catalog drivers.
const (
	DriverPostgREST = "postgrest"
	DriverPostgres  = "postgres"
	DriverSQLite    = "sqlite"
)

// Defaults applied by Load and Default.
const (
	DefaultArchivePath     = "/opt/trendimovies/bot/database/movies.db"
	DefaultCatalogURL      = "http://localhost:3001"
	DefaultMinFileSize     = 50 * 1024 * 1024
	DefaultBatchSize       = 500
	DefaultUpdateBatchSize = 200
	DefaultStreamBaseURL   = "http://localhost:8080/tgstream"
	DefaultContentType     = "episode"
	DefaultSource          = "telegram"
	DefaultTimeout         = 30 * time.Second
)

// Config is the root configuration structure.
type Config struct {
	Archive  ArchiveConfig  `toml:"archive"`
	Catalog  CatalogConfig  `toml:"catalog"`
	Sync     SyncConfig     `toml:"sync"`
	Matching MatchingConfig `toml:"matching"`
	TMDB     TMDBConfig     `toml:"tmdb"`
	Log      LogConfig      `toml:"log"`
	Metrics  MetricsConfig  `toml:"metrics"`
}

// ArchiveConfig locates the SQLite file archive.
type ArchiveConfig struct {
	Path        string `toml:"path"`
	MinFileSize int64  `toml:"min_file_size"`
}

// CatalogConfig selects and addresses the catalog store.
type CatalogConfig struct {
	Driver  string        `toml:"driver"`
	URL     string        `toml:"url"` // postgrest
	DSN     string        `toml:"dsn"` // postgres, sqlite
	Timeout time.Duration `toml:"timeout"`
}

// SyncConfig controls link synthesis and persistence.
type SyncConfig struct {
	BatchSize       int    `toml:"batch_size"`
	UpdateBatchSize int    `toml:"update_batch_size"`
	StreamBaseURL   string `toml:"stream_base_url"`
	ContentType     string `toml:"content_type"`
	Source          string `toml:"source"`
}

// MatchingConfig overrides the classifier and scorer tables.
// Keys left out keep their built-in values.
type MatchingConfig struct {
	VariantPriority map[string]int `toml:"variant_priority"`
	CodecBonus      map[string]int `toml:"codec_bonus"`
	GroupBonus      map[string]int `toml:"group_bonus"`
	NonEnglish      []string       `toml:"non_english"`
}

// TMDBConfig enables the TMDB search fallback for unresolved series.
type TMDBConfig struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // auto, text, json
}

// MetricsConfig controls the Prometheus textfile export.
type MetricsConfig struct {
	Textfile string `toml:"textfile"`
}

// Default returns a configuration with every default applied and
// environment overrides honored.
func Default() *Config {
	cfg := &Config{}
	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return cfg
}

// Load reads, parses, and validates the configuration file.
// Returns *ConfigError if environment variables are missing or validation
// fails. Warnings do not fail the load.
func Load(path string) (*Config, error) {
	cfg, err := LoadWithoutValidation(path)
	if err != nil {
		return nil, err
	}

	if errs := Fatal(cfg.Validate()); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return cfg, nil
}

// LoadWithoutValidation reads and parses the configuration file without
// validating it. Used by `epsync config check` to report every problem.
func LoadWithoutValidation(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Archive.Path == "" {
		c.Archive.Path = DefaultArchivePath
	}
	if c.Archive.MinFileSize == 0 {
		c.Archive.MinFileSize = DefaultMinFileSize
	}
	if c.Catalog.Driver == "" {
		c.Catalog.Driver = DriverPostgREST
	}
	if c.Catalog.Driver == DriverPostgREST && c.Catalog.URL == "" {
		c.Catalog.URL = DefaultCatalogURL
	}
	if c.Catalog.Timeout == 0 {
		c.Catalog.Timeout = DefaultTimeout
	}
	if c.Sync.BatchSize == 0 {
		c.Sync.BatchSize = DefaultBatchSize
	}
	if c.Sync.UpdateBatchSize == 0 {
		c.Sync.UpdateBatchSize = DefaultUpdateBatchSize
	}
	if c.Sync.StreamBaseURL == "" {
		c.Sync.StreamBaseURL = DefaultStreamBaseURL
	}
	if c.Sync.ContentType == "" {
		c.Sync.ContentType = DefaultContentType
	}
	if c.Sync.Source == "" {
		c.Sync.Source = DefaultSource
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "auto"
	}
}

// applyEnvOverrides lets the two locations most often changed per host be
// set without a config file.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("EPSYNC_ARCHIVE"); v != "" {
		c.Archive.Path = v
	}
	if v := os.Getenv("EPSYNC_CATALOG_URL"); v != "" {
		c.Catalog.URL = v
	}
}

// Tables builds the classifier tables, applying overrides on top of the
// built-in ones.
func (m MatchingConfig) Tables() release.Tables {
	t := release.DefaultTables()

	if len(m.GroupBonus) > 0 {
		bonus := make(map[string]int, len(t.Groups)+len(m.GroupBonus))
		for _, g := range t.Groups {
			bonus[g.Name] = g.Bonus
		}
		for name, b := range m.GroupBonus {
			bonus[strings.ToLower(name)] = b
		}
		t.Groups = t.Groups[:0]
		for name, b := range bonus {
			t.Groups = append(t.Groups, release.GroupBonus{Name: name, Bonus: b})
		}
		sort.Slice(t.Groups, func(i, j int) bool {
			if t.Groups[i].Bonus != t.Groups[j].Bonus {
				return t.Groups[i].Bonus > t.Groups[j].Bonus
			}
			return t.Groups[i].Name < t.Groups[j].Name
		})
	}

	if len(m.NonEnglish) > 0 {
		t.NonEnglish = append([]string(nil), m.NonEnglish...)
	}
	return t
}

// Weights builds the scorer weights, applying overrides on top of the
// built-in ones. Unknown names are ignored; Validate reports them.
func (m MatchingConfig) Weights() scoring.Weights {
	w := scoring.DefaultWeights()
	for name, p := range m.VariantPriority {
		if v, ok := release.ParseVariant(name); ok {
			w.VariantPriority[v] = p
		}
	}
	for name, b := range m.CodecBonus {
		if c, ok := release.ParseCodec(name); ok && c != release.CodecNone {
			w.CodecBonus[c] = b
		}
	}
	return w
}

// envVarPattern matches ${VAR} and ${VAR:-default}.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-([^}]*))?\}`)

// substituteEnvVars replaces ${VAR} and ${VAR:-default} with environment
// values. Returns the names of variables that are unset and have no default.
func substituteEnvVars(content string) (string, []string) {
	var missing []string
	seen := make(map[string]bool)

	result := envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := envVarPattern.FindStringSubmatch(match)
		name := parts[1]
		hasDefault := len(parts[0]) > len(name)+3 // longer than "${NAME}"

		value, ok := os.LookupEnv(name)
		if ok && value != "" {
			return value
		}
		if hasDefault {
			return parts[2]
		}
		if ok {
			return value
		}
		if !seen[name] {
			seen[name] = true
			missing = append(missing, name)
		}
		return match
	})

	return result, missing
}
