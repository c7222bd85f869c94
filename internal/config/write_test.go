package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteDefault(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "epsync", "config.toml")

	require.NoError(t, WriteDefault(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "[archive]")
	assert.Contains(t, string(content), "[catalog]")
	assert.Contains(t, string(content), "${EPSYNC_CATALOG_URL:-http://localhost:3001}")
}

func TestWriteDefault_CreatesDir(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "deep", "config.toml")

	require.NoError(t, WriteDefault(path))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteDefault_Loads(t *testing.T) {
	t.Setenv("EPSYNC_ARCHIVE", "")
	t.Setenv("EPSYNC_CATALOG_URL", "")
	t.Setenv("TMDB_API_KEY", "")
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteDefault(path))

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, DriverPostgREST, cfg.Catalog.Driver)
	assert.Equal(t, "http://localhost:3001", cfg.Catalog.URL)
	assert.Equal(t, DefaultArchivePath, cfg.Archive.Path)
	assert.Equal(t, int64(DefaultMinFileSize), cfg.Archive.MinFileSize)
	assert.Equal(t, DefaultTimeout, cfg.Catalog.Timeout)
	assert.False(t, cfg.TMDB.Enabled)
}

func TestConfig_Write(t *testing.T) {
	cfg := &Config{
		Archive: ArchiveConfig{Path: "/data/movies.db"},
		Catalog: CatalogConfig{Driver: DriverSQLite, DSN: "/data/catalog.db"},
	}

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, cfg.Write(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "/data/movies.db")
	assert.Contains(t, string(content), `driver = "sqlite"`)
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	t.Setenv("EPSYNC_ARCHIVE", "")
	t.Setenv("EPSYNC_CATALOG_URL", "")
	cfg := Default()
	cfg.Matching.GroupBonus = map[string]int{"ntb": 40}

	var buf bytes.Buffer
	require.NoError(t, cfg.Encode(&buf))

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	got, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.Archive, got.Archive)
	assert.Equal(t, cfg.Catalog, got.Catalog)
	assert.Equal(t, cfg.Sync, got.Sync)
	assert.Equal(t, cfg.Matching.GroupBonus, got.Matching.GroupBonus)
}
