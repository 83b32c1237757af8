package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_GetBasePrefix(t *testing.T) {
	tests := []struct {
		name     string
		prefix   string
		expected string
	}{
		{name: "default prefix", prefix: "archive/", expected: "archive/"},
		{name: "missing trailing slash", prefix: "archive", expected: "archive/"},
		{name: "leading slash", prefix: "/jenkins/archive//", expected: "jenkins/archive/"},
		{name: "empty prefix", prefix: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{BasePrefix: tt.prefix}
			result := cfg.GetBasePrefix()
			if result != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, result)
			}
		})
	}
}

func TestConfig_GetScreenshotPrefix(t *testing.T) {
	cfg := New()
	assert.Equal(t, "archive/test-results/screenshots/", cfg.GetScreenshotPrefix())

	cfg.ScreenshotDir = "/shots"
	assert.Equal(t, "archive/shots/", cfg.GetScreenshotPrefix())
}

func TestConfig_GetStatePath(t *testing.T) {
	cfg := New()
	cfg.StateDir = "/var/lib/cfr"
	assert.Equal(t, filepath.Join("/var/lib/cfr", "abc123.json"), cfg.GetStatePath("abc123"))

	cfg.StateDir = "state"
	assert.True(t, filepath.IsAbs(cfg.GetStatePath("abc123")))
}

func TestConfig_GetWorkersAndLevel(t *testing.T) {
	cfg := &Config{Workers: 0, LogLevel: "nonsense"}
	assert.Equal(t, 1, cfg.GetWorkers())
	assert.Equal(t, logrus.InfoLevel, cfg.GetLogLevel())

	cfg = &Config{Workers: 8, LogLevel: "debug"}
	assert.Equal(t, 8, cfg.GetWorkers())
	assert.Equal(t, logrus.DebugLevel, cfg.GetLogLevel())
}

func TestNew(t *testing.T) {
	cfg := New()

	if cfg.BasePrefix != DefaultBasePrefix {
		t.Errorf("expected BasePrefix %s, got %s", DefaultBasePrefix, cfg.BasePrefix)
	}

	if cfg.Workers != DefaultWorkers {
		t.Errorf("expected Workers %d, got %d", DefaultWorkers, cfg.Workers)
	}

	if cfg.PayloadMarker != DefaultPayloadMarker {
		t.Errorf("expected PayloadMarker %q, got %q", DefaultPayloadMarker, cfg.PayloadMarker)
	}
}

func TestConfig_LoadFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("explicit file is applied", func(t *testing.T) {
		path := filepath.Join(dir, "cfr.yaml")
		content := "base_prefix: build/\nworkers: 2\nline_marker: \"Test failed on\"\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg := New()
		require.NoError(t, cfg.LoadFile(path))
		assert.Equal(t, "build/", cfg.BasePrefix)
		assert.Equal(t, 2, cfg.Workers)
		assert.Equal(t, "Test failed on", cfg.LineMarker)
		assert.Equal(t, DefaultPayloadMarker, cfg.PayloadMarker)
	})

	t.Run("missing explicit file is an error", func(t *testing.T) {
		cfg := New()
		assert.Error(t, cfg.LoadFile(filepath.Join(dir, "missing.yaml")))
	})

	t.Run("invalid yaml is an error", func(t *testing.T) {
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("workers: [1, 2"), 0644))

		cfg := New()
		assert.Error(t, cfg.LoadFile(path))
	})
}

func TestConfig_LoadEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CFR_STATE_DIR=/tmp/from-dotenv\n"), 0644))
	t.Setenv("CFR_WORKERS", "6")
	t.Setenv("CFR_BASE_PREFIX", "artifacts/")
	t.Cleanup(func() { os.Unsetenv("CFR_STATE_DIR") })

	cfg := New()
	require.NoError(t, cfg.LoadEnv(dir))

	assert.Equal(t, 6, cfg.Workers)
	assert.Equal(t, "artifacts/", cfg.BasePrefix)
	assert.Equal(t, "/tmp/from-dotenv", cfg.StateDir)
}

func TestConfig_ApplyFlags(t *testing.T) {
	cfg := New()
	cfg.ApplyFlags(Flags{Workers: 3, Prefix: "ci/", NoProgress: true})

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "ci/", cfg.BasePrefix)
	assert.True(t, cfg.NoProgress)
	assert.Equal(t, DefaultStateDir, cfg.StateDir)
	assert.Equal(t, 3, cfg.Flags.Workers)
}

func TestConfig_GetExportDir(t *testing.T) {
	cfg := New()
	assert.Equal(t, DefaultExportDir, cfg.GetExportDir())

	cfg.ApplyFlags(Flags{Output: "out/shots"})
	assert.Equal(t, "out/shots", cfg.GetExportDir())
}
