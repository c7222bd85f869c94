package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vmunix/epsync/pkg/release"
	"github.com/vmunix/epsync/pkg/release/scoring"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Valid(t *testing.T) {
	t.Setenv("EPSYNC_CATALOG_URL", "")
	t.Setenv("EPSYNC_ARCHIVE", "")
	archive := filepath.Join(t.TempDir(), "movies.db")
	require.NoError(t, os.WriteFile(archive, nil, 0644))

	path := writeConfig(t, `
[archive]
path = "`+archive+`"
min_file_size = 1000

[catalog]
url = "http://catalog:3001"
timeout = "5s"

[sync]
batch_size = 100
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, archive, cfg.Archive.Path)
	assert.Equal(t, int64(1000), cfg.Archive.MinFileSize)
	assert.Equal(t, "http://catalog:3001", cfg.Catalog.URL)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, 100, cfg.Sync.BatchSize)
	assert.Equal(t, DefaultUpdateBatchSize, cfg.Sync.UpdateBatchSize)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	t.Setenv("EPSYNC_CATALOG_URL", "")
	t.Setenv("EPSYNC_ARCHIVE", "")
	path := writeConfig(t, "")

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultArchivePath, cfg.Archive.Path)
	assert.Equal(t, int64(DefaultMinFileSize), cfg.Archive.MinFileSize)
	assert.Equal(t, DriverPostgREST, cfg.Catalog.Driver)
	assert.Equal(t, DefaultCatalogURL, cfg.Catalog.URL)
	assert.Equal(t, DefaultBatchSize, cfg.Sync.BatchSize)
	assert.Equal(t, DefaultStreamBaseURL, cfg.Sync.StreamBaseURL)
	assert.Equal(t, "episode", cfg.Sync.ContentType)
	assert.Equal(t, "telegram", cfg.Sync.Source)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "auto", cfg.Log.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EPSYNC_ARCHIVE", "/srv/archive.db")
	t.Setenv("EPSYNC_CATALOG_URL", "http://override:3001")
	path := writeConfig(t, `
[archive]
path = "/data/movies.db"

[catalog]
url = "http://catalog:3001"
`)

	cfg, err := LoadWithoutValidation(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/archive.db", cfg.Archive.Path)
	assert.Equal(t, "http://override:3001", cfg.Catalog.URL)
}

func TestLoad_MissingEnvVar(t *testing.T) {
	path := writeConfig(t, `
[tmdb]
enabled = true
api_key = "${EPSYNC_TEST_MISSING_KEY_31337}"
`)

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, []string{"EPSYNC_TEST_MISSING_KEY_31337"}, cfgErr.Missing)
}

func TestLoad_ValidationError(t *testing.T) {
	t.Setenv("EPSYNC_CATALOG_URL", "")
	path := writeConfig(t, `
[catalog]
driver = "mongo"
`)

	_, err := Load(path)
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, path, cfgErr.Path)
	assert.Contains(t, err.Error(), "catalog.driver")
}

func TestLoad_WarningsDoNotFail(t *testing.T) {
	t.Setenv("EPSYNC_ARCHIVE", "")
	path := writeConfig(t, `
[archive]
path = "/nonexistent/movies.db"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/nonexistent/movies.db", cfg.Archive.Path)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[archive\npath = ")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing config")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/epsync.toml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestMatchingConfig_Weights(t *testing.T) {
	m := MatchingConfig{
		VariantPriority: map[string]int{"hdtv": 900, "bogus": 5},
		CodecBonus:      map[string]int{"x264": 250},
	}
	w := m.Weights()
	assert.Equal(t, 900, w.VariantPriority[release.VariantHDTV])
	assert.Equal(t, scoring.PriorityBluRay, w.VariantPriority[release.VariantBluRay])
	assert.Equal(t, 250, w.CodecBonus[release.CodecX264])
	assert.Equal(t, scoring.BonusX265, w.CodecBonus[release.CodecX265])
}

func TestMatchingConfig_Tables(t *testing.T) {
	m := MatchingConfig{
		GroupBonus: map[string]int{"NTb": 40, "psa": 5},
		NonEnglish: []string{"klingon"},
	}
	tables := m.Tables()

	bonus := make(map[string]int)
	for _, g := range tables.Groups {
		bonus[g.Name] = g.Bonus
	}
	assert.Equal(t, 40, bonus["ntb"])
	assert.Equal(t, 5, bonus["psa"])
	assert.Equal(t, 20, bonus["bone"])
	assert.Equal(t, "ntb", tables.Groups[0].Name)
	assert.Equal(t, []string{"klingon"}, tables.NonEnglish)

	c := release.NewClassifier(tables)
	assert.Equal(t, 40, c.GroupBonus("Show.S01E01.1080p.WEB-DL-NTb.mkv"))
	assert.True(t, c.IsNonEnglish("Show.S01E01.Klingon.mkv"))
}

func TestMatchingConfig_TablesDefaults(t *testing.T) {
	assert.Equal(t, release.DefaultTables().Groups, MatchingConfig{}.Tables().Groups)
}
