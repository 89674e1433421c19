package config

import (
	"os"
	"testing"

	"log/slog"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.True(t, s.PrettyPrint)
	assert.False(t, s.IncludeTests)
	assert.False(t, s.LibraryMode)
	assert.Equal(t, 2, s.MaxDepth)
	assert.Equal(t, "medium", s.Confidence)
	assert.Equal(t, slog.LevelError, s.LogLevel)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, 10, s.ImpactHighDirect)
	assert.Equal(t, 50, s.ImpactHighTransitive)
	assert.Equal(t, 4.0, s.CrowdAsymmetryThreshold)
}

func TestLoadSettingsFromEnvironment(t *testing.T) {
	clearEnvVars(t)

	os.Setenv("LOCTREE_PRETTY", "false")
	os.Setenv("LOCTREE_INCLUDE_TESTS", "true")
	os.Setenv("LOCTREE_CONFIDENCE", "high")
	os.Setenv("LOCTREE_IGNORE", "node_modules, target , .git")
	os.Setenv("LOCTREE_LOG_LEVEL", "debug")
	os.Setenv("LOCTREE_LOG_FORMAT", "json")
	t.Cleanup(func() { clearEnvVars(t) })

	s := LoadSettingsFromEnvironment()

	assert.False(t, s.PrettyPrint)
	assert.True(t, s.IncludeTests)
	assert.Equal(t, "high", s.Confidence)
	assert.Equal(t, []string{"node_modules", "target", ".git"}, s.Ignore)
	assert.Equal(t, slog.LevelDebug, s.LogLevel)
	assert.Equal(t, "json", s.LogFormat)
}

func TestLoadSettingsFromEnvironment_InvalidLogLevelFallsBackToDefault(t *testing.T) {
	clearEnvVars(t)
	os.Setenv("LOCTREE_LOG_LEVEL", "nonsense")
	t.Cleanup(func() { clearEnvVars(t) })

	s := LoadSettingsFromEnvironment()
	assert.Equal(t, slog.LevelError, s.LogLevel)
}

func TestValidate(t *testing.T) {
	s := DefaultSettings()
	assert.NoError(t, s.Validate())

	s.Verbose, s.Debug = true, true
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.Confidence = "extreme"
	assert.Error(t, s.Validate())

	s = DefaultSettings()
	s.MaxDepth = -1
	assert.Error(t, s.Validate())
}

func TestConfigureLogger(t *testing.T) {
	s := &Settings{LogLevel: slog.LevelDebug, LogFormat: "json"}
	assert.NotNil(t, s.ConfigureLogger())
}

func clearEnvVars(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		"LOCTREE_OUTPUT_DIR", "LOCTREE_PRETTY", "LOCTREE_INCLUDE_TESTS",
		"LOCTREE_LIBRARY_MODE", "LOCTREE_CONFIDENCE", "LOCTREE_IGNORE",
		"LOCTREE_VERBOSE", "LOCTREE_DEBUG", "LOCTREE_LOG_LEVEL",
		"LOCTREE_LOG_FORMAT", "LOCTREE_LOG_FILE", "LOCTREE_CACHE_DIR",
		"LOCT_CACHE_DIR", "LOCTREE_FORCE_RESCAN",
	} {
		os.Unsetenv(v)
	}
}
