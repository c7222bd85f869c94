package config

import (
	"fmt"
	"net/url"
	"os"
	"sort"

	"github.com/vmunix/epsync/pkg/release"
)

var validLogLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "error": true, "": true,
}

var validLogFormats = map[string]bool{
	"auto": true, "text": true, "json": true, "": true,
}

var validDrivers = map[string]bool{
	DriverPostgREST: true, DriverPostgres: true, DriverSQLite: true,
}

// Validate checks the configuration for errors.
// Returns a slice of error messages (empty if valid).
func (c *Config) Validate() []string {
	var errs []string

	if c.Archive.Path == "" {
		errs = append(errs, "archive.path: required")
	} else if _, err := os.Stat(c.Archive.Path); os.IsNotExist(err) {
		errs = append(errs, fmt.Sprintf("archive.path: warning: file %q does not exist", c.Archive.Path))
	}
	if c.Archive.MinFileSize < 0 {
		errs = append(errs, fmt.Sprintf("archive.min_file_size: must not be negative, got %d", c.Archive.MinFileSize))
	}

	// Catalog
	if !validDrivers[c.Catalog.Driver] {
		errs = append(errs, fmt.Sprintf("catalog.driver: must be one of postgrest, postgres, sqlite; got %q", c.Catalog.Driver))
	}
	switch c.Catalog.Driver {
	case DriverPostgREST:
		if err := checkURL(c.Catalog.URL); err != "" {
			errs = append(errs, "catalog.url: "+err)
		}
	case DriverPostgres, DriverSQLite:
		if c.Catalog.DSN == "" {
			errs = append(errs, fmt.Sprintf("catalog.dsn: required for driver %q", c.Catalog.Driver))
		}
	}
	if c.Catalog.Timeout < 0 {
		errs = append(errs, "catalog.timeout: must not be negative")
	}

	// Sync
	if c.Sync.BatchSize < 0 {
		errs = append(errs, fmt.Sprintf("sync.batch_size: must be positive, got %d", c.Sync.BatchSize))
	}
	if c.Sync.UpdateBatchSize < 0 {
		errs = append(errs, fmt.Sprintf("sync.update_batch_size: must be positive, got %d", c.Sync.UpdateBatchSize))
	}
	if c.Sync.StreamBaseURL != "" {
		if err := checkURL(c.Sync.StreamBaseURL); err != "" {
			errs = append(errs, "sync.stream_base_url: "+err)
		}
	}

	// Matching
	for _, name := range sortedKeys(c.Matching.VariantPriority) {
		if _, ok := release.ParseVariant(name); !ok {
			errs = append(errs, fmt.Sprintf("matching.variant_priority.%s: unknown variant", name))
		}
	}
	for _, name := range sortedKeys(c.Matching.CodecBonus) {
		if codec, ok := release.ParseCodec(name); !ok || codec == release.CodecNone {
			errs = append(errs, fmt.Sprintf("matching.codec_bonus.%s: unknown codec", name))
		}
	}
	for _, name := range sortedKeys(c.Matching.GroupBonus) {
		if name == "" {
			errs = append(errs, "matching.group_bonus: empty group name")
		}
	}

	// TMDB
	if c.TMDB.Enabled && c.TMDB.APIKey == "" {
		errs = append(errs, "tmdb.api_key: required when tmdb is enabled")
	}

	// Log
	if !validLogLevels[c.Log.Level] {
		errs = append(errs, fmt.Sprintf("log.level: must be one of debug, info, warn, error; got %q", c.Log.Level))
	}
	if !validLogFormats[c.Log.Format] {
		errs = append(errs, fmt.Sprintf("log.format: must be one of auto, text, json; got %q", c.Log.Format))
	}

	return errs
}

func checkURL(raw string) string {
	if raw == "" {
		return "required"
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Sprintf("invalid URL %q", raw)
	}
	return ""
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
