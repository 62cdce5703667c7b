package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"model-viewer/internal/asset"
)

func TestLoadMissingGivesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "viewer.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
	assert.Equal(t, float32(1.4), c.Exposure)
	assert.Equal(t, asset.DefaultDecoderCommand, c.DecoderCommand)
	assert.Zero(t, c.Timeout())
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
model_url: https://example.com/ship.glb
exposure: 1.1
fetch_timeout: 45s
window:
  title: Ship
  width: 800
`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/ship.glb", c.ModelURL)
	assert.Equal(t, float32(1.1), c.Exposure)
	assert.Equal(t, 45*time.Second, c.Timeout())
	assert.Equal(t, "Ship", c.Window.Title)
	assert.Equal(t, int32(800), c.Window.Width)
	assert.Equal(t, int32(720), c.Window.Height)
	assert.Equal(t, "cache/models", c.CacheDir)
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
model_url = "https://example.com/car.glb"
show_fps = true
fetch_timeout = "2m"

[window]
target_fps = 144
`), 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/car.glb", c.ModelURL)
	assert.True(t, c.ShowFPS)
	assert.Equal(t, 2*time.Minute, c.Timeout())
	assert.Equal(t, int32(144), c.Window.TargetFPS)
}

func TestLoadInvalidReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "viewer.yaml")
	require.NoError(t, os.WriteFile(path, []byte("exposure: [oops"), 0o644))
	c, err := Load(path)
	assert.Error(t, err)
	assert.Equal(t, Default(), c)
}

func TestSaveRoundTripsBothFormats(t *testing.T) {
	want := Default()
	want.ModelURL = "https://example.com/x.glb"
	want.FetchTimeout = Duration(10 * time.Second)
	want.ShowGrid = true

	for _, name := range []string{"viewer.yaml", "viewer.toml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config", name)
			require.NoError(t, Save(path, want))
			got, err := Load(path)
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestValidateClampsOutOfRange(t *testing.T) {
	c := Config{Exposure: -1, MaxPixelRatio: 0.5, FetchTimeout: Duration(-time.Second)}
	c.Validate()
	d := Default()
	assert.Equal(t, d.Exposure, c.Exposure)
	assert.Equal(t, float32(1), c.MaxPixelRatio)
	assert.Zero(t, c.FetchTimeout)
	assert.Equal(t, d.Window.Width, c.Window.Width)
	assert.Equal(t, d.Window.TargetFPS, c.Window.TargetFPS)
	assert.Equal(t, d.ModelURL, c.ModelURL)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvModelURL, "https://example.com/env.glb")
	t.Setenv(EnvExposure, "0.9")
	t.Setenv(EnvShowFPS, "1")
	t.Setenv(EnvFetchTimeout, "5s")
	t.Setenv(EnvShowGrid, "sometimes")
	t.Setenv(EnvFont, "Inter")

	c := Default()
	err := c.ApplyEnv()
	assert.ErrorContains(t, err, EnvShowGrid)
	assert.Equal(t, "https://example.com/env.glb", c.ModelURL)
	assert.Equal(t, float32(0.9), c.Exposure)
	assert.True(t, c.ShowFPS)
	assert.False(t, c.ShowGrid)
	assert.Equal(t, 5*time.Second, c.Timeout())
	assert.Equal(t, "Inter", c.Font)
}

func TestResolvedCacheDirExpandsHome(t *testing.T) {
	home, err := homedir.Dir()
	if err != nil {
		t.Skip("no home directory")
	}
	c := Default()
	c.CacheDir = "~/models"
	dir, err := c.ResolvedCacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "models"), dir)
}
