package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".", c.OutputDir)
	assert.Equal(t, "png", c.ImageFormat)
	assert.Equal(t, 10.0, c.FigWidth)
	assert.Equal(t, 6.0, c.FigHeight)
	assert.Equal(t, 50, c.Bins)
	assert.Equal(t, "skyblue", c.Color)
	assert.Equal(t, "black", c.EdgeColor)
	assert.Equal(t, "default", c.Palette)
	assert.Empty(t, c.MissingTokens)
	assert.Equal(t, "info", c.LogLevel)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	c := &Global{
		OutputDir:     "charts",
		ImageFormat:   "svg",
		FigWidth:      8,
		FigHeight:     5,
		Bins:          20,
		Color:         "#336699",
		EdgeColor:     "none",
		Palette:       "dark",
		MissingTokens: []string{"-", "?"},
		LogLevel:      "debug",
	}
	require.NoError(t, Save(c, path))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestSaveDefaultPathUnderHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	c, err := Load("")
	require.NoError(t, err)
	c.Bins = 12
	require.NoError(t, Save(c, ""))

	_, err = os.Stat(filepath.Join(home, ".edakit", "config.yaml"))
	require.NoError(t, err)
	again, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 12, again.Bins)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("bins: 30\ncolor: red\n"), 0o644))
	t.Setenv("EDAKIT_BINS", "7")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, c.Bins)
	assert.Equal(t, "red", c.Color)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("image_format: gif\n"), 0o644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "image_format")

	require.NoError(t, os.WriteFile(path, []byte("bins: 0\n"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bins")
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("bins: [unclosed\n"), 0o644))
	_, err := Load(bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")

	// A not-yet-created explicit file loads defaults so `config set` can create it.
	c, err := Load(filepath.Join(dir, "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 50, c.Bins)

	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".edakit"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".edakit", "config.yaml"), []byte("bins: [unclosed\n"), 0o644))
	_, err = Load("")
	require.Error(t, err)
}
