// Package config holds loctree's ambient configuration: CLI/env-driven
// Settings (logging, output, scan behavior) and the per-repository
// .loctree.yml project config, mirroring the teacher's
// internal/config package split.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"log/slog"
)

// Settings holds the scan-time configuration understood by the whole
// pipeline. Field names mirror the CLI flags in internal/cmd.
type Settings struct {
	// Output
	OutputDir   string
	PrettyPrint bool

	// Snapshot Store (spec.md §4.6)
	CacheDir    string
	ForceRescan bool

	// Scan behavior (spec.md §6 "Configuration")
	IncludeTests         bool
	LibraryMode          bool
	MaxDepth             int
	Confidence           string // low|medium|high
	ScanAll              bool
	Ignore               []string
	Focus                []string
	ExcludeReport        []string
	EditorCmd            string
	FullScan             bool
	LibraryExampleGlobs  []string

	// Workers bounds the C3 extraction worker pool (spec.md §5); 0
	// selects pool.Size() (one worker per hardware thread).
	Workers int

	// Query thresholds (spec.md §4.7, exposed per §9 Open Questions)
	ImpactHighDirect        int
	ImpactHighTransitive    int
	ImpactMediumDirect      int
	ImpactMediumTransitive  int
	CrowdNameCollisionMin   int
	CrowdAsymmetryThreshold float64
	CrowdOverlapThreshold   float64

	Verbose      bool
	Debug        bool
	TraceTimings bool

	LogLevel  slog.Level
	LogFormat string
	LogFile   string
}

// DefaultSettings returns the documented defaults (spec.md §4.7, §6).
func DefaultSettings() *Settings {
	return &Settings{
		OutputDir:               "",
		PrettyPrint:             true,
		CacheDir:                "",
		ForceRescan:             false,
		IncludeTests:            false,
		LibraryMode:             false,
		MaxDepth:                2,
		Confidence:              "medium",
		ScanAll:                 false,
		Ignore:                  []string{},
		Focus:                   []string{},
		ExcludeReport:           []string{},
		FullScan:                false,
		LibraryExampleGlobs:     []string{},
		Workers:                 0,
		ImpactHighDirect:        10,
		ImpactHighTransitive:    50,
		ImpactMediumDirect:      5,
		ImpactMediumTransitive:  20,
		CrowdNameCollisionMin:   3,
		CrowdAsymmetryThreshold: 4.0,
		CrowdOverlapThreshold:   0.5,
		LogLevel:                slog.LevelError,
		LogFormat:               "text",
	}
}

// LoadSettingsFromEnvironment overlays environment variables on top of
// DefaultSettings, matching the teacher's STACK_ANALYZER_* convention
// renamed to LOCTREE_*.
func LoadSettingsFromEnvironment() *Settings {
	s := DefaultSettings()

	if v := os.Getenv("LOCTREE_OUTPUT_DIR"); v != "" {
		s.OutputDir = v
	}
	if v := os.Getenv("LOCTREE_PRETTY"); v != "" {
		s.PrettyPrint = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOCTREE_INCLUDE_TESTS"); v != "" {
		s.IncludeTests = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOCTREE_LIBRARY_MODE"); v != "" {
		s.LibraryMode = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOCTREE_CONFIDENCE"); v != "" {
		s.Confidence = v
	}
	if v := os.Getenv("LOCTREE_IGNORE"); v != "" {
		s.Ignore = splitTrim(v)
	}
	if v := os.Getenv("LOCTREE_VERBOSE"); v != "" {
		s.Verbose = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOCTREE_DEBUG"); v != "" {
		s.Debug = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("LOCTREE_LOG_LEVEL"); v != "" {
		if level, err := parseLogLevel(v); err == nil {
			s.LogLevel = level
		}
	}
	if v := os.Getenv("LOCTREE_LOG_FORMAT"); v != "" {
		s.LogFormat = v
	}
	if v := os.Getenv("LOCTREE_LOG_FILE"); v != "" {
		s.LogFile = v
	}
	// LOCT_CACHE_DIR is the name spec.md §4.6 gives this variable
	// explicitly; LOCTREE_CACHE_DIR is kept as an alias for consistency
	// with every other LOCTREE_* setting (checked first so LOCT_CACHE_DIR
	// can still override it if both are set).
	if v := os.Getenv("LOCTREE_CACHE_DIR"); v != "" {
		s.CacheDir = v
	}
	if v := os.Getenv("LOCT_CACHE_DIR"); v != "" {
		s.CacheDir = v
	}
	if v := os.Getenv("LOCTREE_FORCE_RESCAN"); v != "" {
		s.ForceRescan = strings.EqualFold(v, "true")
	}

	return s
}

func splitTrim(v string) []string {
	parts := strings.Split(v, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug, nil
	case "INFO":
		return slog.LevelInfo, nil
	case "WARN", "WARNING":
		return slog.LevelWarn, nil
	case "ERROR":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// ConfigureLogger builds the slog.Logger for these settings, matching
// the teacher's ConfigureLogger (text/json handler, optional file).
func (s *Settings) ConfigureLogger() *slog.Logger {
	var output io.Writer = os.Stderr
	if s.LogFile != "" {
		file, err := os.OpenFile(s.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: cannot open log file %s: %v\n", s.LogFile, err)
		} else {
			output = file
		}
	}

	opts := &slog.HandlerOptions{Level: s.LogLevel}

	var handler slog.Handler
	if strings.EqualFold(s.LogFormat, "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	return slog.New(handler)
}

// Validate checks settings for internally-inconsistent combinations.
func (s *Settings) Validate() error {
	if s.Verbose && s.Debug {
		return fmt.Errorf("cannot use both --verbose and --debug")
	}

	validConfidence := map[string]bool{"low": true, "medium": true, "high": true}
	if s.Confidence != "" && !validConfidence[s.Confidence] {
		return fmt.Errorf("invalid confidence %q: valid values are low, medium, high", s.Confidence)
	}

	if s.MaxDepth < 0 {
		return fmt.Errorf("max_depth must be >= 0")
	}

	return nil
}
