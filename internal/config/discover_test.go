package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, filepath.Join(".config", "epsync", "config.toml"))
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	assert.Equal(t, "/custom/config/epsync/config.toml", DefaultPath())
}

func TestDiscover_EnvVar(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "custom.toml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("[archive]"), 0644))

	t.Setenv(EnvConfig, cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	t.Setenv(EnvConfig, "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvConfig)
}

func TestDiscover_CurrentDir(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))

	require.NoError(t, os.WriteFile("epsync.toml", []byte("[archive]"), 0644))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "./epsync.toml", path)
}

func TestDiscover_XDG(t *testing.T) {
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv(EnvConfig, "")
	xdg := filepath.Join(tmp, "xdg")
	t.Setenv("XDG_CONFIG_HOME", xdg)

	want := filepath.Join(xdg, "epsync", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(want), 0755))
	require.NoError(t, os.WriteFile(want, []byte("[archive]"), 0644))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, want, path)
}

func TestDiscover_NotFound(t *testing.T) {
	if _, err := os.Stat("/etc/epsync/config.toml"); err == nil {
		t.Skip("system config present")
	}
	tmp := t.TempDir()
	t.Chdir(tmp)
	t.Setenv(EnvConfig, "")
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmp, "xdg"))

	_, err := Discover()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "./epsync.toml")
}
