package geoplot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-simpler.org/env"
)

func writeSettingsFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "geoplot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettingsDefaults(t *testing.T) {
	s, err := loadSettings("", env.Map{})
	require.NoError(t, err)
	assert.Equal(t, DefaultSettings(), s)
}

func TestLoadSettingsFile(t *testing.T) {
	path := writeSettingsFile(t, `
tiles = "toner"
map_alpha = 50
smoothing = true
window_width = 800
window_height = 600
`)
	s, err := loadSettings(path, env.Map{})
	require.NoError(t, err)
	assert.Equal(t, "toner", s.Tiles)
	assert.Equal(t, 50, s.MapAlpha)
	assert.True(t, s.Smoothing)
	assert.Equal(t, 800, s.WindowWidth)
	assert.Equal(t, 600, s.WindowHeight)
	assert.Equal(t, "info", s.LogLevel, "keys missing from the file keep their defaults")
}

func TestLoadSettingsEnvironmentOverridesFile(t *testing.T) {
	path := writeSettingsFile(t, "tiles = \"toner\"\nmap_alpha = 50\n")
	s, err := loadSettings(path, env.Map{
		"GEOPLOT_MAP_ALPHA": "70",
		"GEOPLOT_LOG_LEVEL": "debug",
	})
	require.NoError(t, err)
	assert.Equal(t, "toner", s.Tiles)
	assert.Equal(t, 70, s.MapAlpha)
	assert.Equal(t, "debug", s.LogLevel)
}

func TestLoadSettingsErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := loadSettings(filepath.Join(t.TempDir(), "nope.toml"), env.Map{})
		assert.Error(t, err)
	})
	t.Run("unknown key", func(t *testing.T) {
		path := writeSettingsFile(t, "tiles = \"toner\"\nzoom = 3\n")
		_, err := loadSettings(path, env.Map{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "zoom")
	})
	t.Run("invalid tiles", func(t *testing.T) {
		path := writeSettingsFile(t, "tiles = \"osm\"\n")
		_, err := loadSettings(path, env.Map{})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("invalid env alpha", func(t *testing.T) {
		_, err := loadSettings("", env.Map{"GEOPLOT_MAP_ALPHA": "300"})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
	t.Run("malformed env value", func(t *testing.T) {
		_, err := loadSettings("", env.Map{"GEOPLOT_MAP_ALPHA": "lots"})
		assert.Error(t, err)
	})
}

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		ok     bool
	}{
		{"defaults", func(*Settings) {}, true},
		{"alpha zero", func(s *Settings) { s.MapAlpha = 0 }, true},
		{"alpha negative", func(s *Settings) { s.MapAlpha = -1 }, false},
		{"negative width", func(s *Settings) { s.WindowWidth = -5 }, false},
		{"upper level", func(s *Settings) { s.LogLevel = "WARN" }, true},
		{"bad level", func(s *Settings) { s.LogLevel = "trace" }, false},
		{"bad format", func(s *Settings) { s.LogFormat = "yaml" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidArgument)
			}
		})
	}
}

func TestSettingsEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, DefaultSettings().Encode(&buf))
	assert.Contains(t, buf.String(), `tiles = "mapquest"`)
	assert.Contains(t, buf.String(), "map_alpha = 196")
}

func TestSettingsLogger(t *testing.T) {
	var buf bytes.Buffer
	s := DefaultSettings()
	s.LogFormat = "json"
	s.LogLevel = "warn"
	log := s.Logger(&buf)

	log.Info("dropped")
	assert.Zero(t, buf.Len())

	log.Warn("kept", "layer", "kde")
	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "kept", rec["msg"])
	assert.Equal(t, "geoplot", rec["component"])
	assert.Equal(t, "kde", rec["layer"])
}
