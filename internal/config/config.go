package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ProjectConfig represents the repository-level .loctree.yml file
// (spec.md §6 "Configuration"). CLI flags and LOCTREE_* environment
// variables both take precedence over values loaded here; ApplyTo
// only fills in fields the caller left at their DefaultSettings value.
type ProjectConfig struct {
	IncludeTests        *bool    `yaml:"include_tests,omitempty"`
	LibraryMode         *bool    `yaml:"library_mode,omitempty"`
	MaxDepth            *int     `yaml:"max_depth,omitempty"`
	Confidence          string   `yaml:"confidence,omitempty"`
	ScanAll             *bool    `yaml:"scan_all,omitempty"`
	Ignore              []string `yaml:"ignore,omitempty"`
	Focus               []string `yaml:"focus,omitempty"`
	ExcludeReport       []string `yaml:"exclude_report,omitempty"`
	EditorCmd           string   `yaml:"editor_cmd,omitempty"`
	FullScan            *bool    `yaml:"full_scan,omitempty"`
	LibraryExampleGlobs []string `yaml:"library_example_globs,omitempty"`
}

// FileName is the project config's expected name at the scan root.
const FileName = ".loctree.yml"

// LoadProjectConfig reads .loctree.yml from scanRoot. A missing file is
// not an error: it returns a zero-value ProjectConfig so callers can
// treat "no config" and "empty config" the same way.
func LoadProjectConfig(scanRoot string) (*ProjectConfig, error) {
	configPath := filepath.Join(scanRoot, FileName)

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return &ProjectConfig{}, nil
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ApplyTo overlays the project config onto s, without overriding
// anything the CLI/environment already set away from DefaultSettings.
// Ignore/Focus/ExcludeReport/LibraryExampleGlobs are appended to
// rather than replaced, matching the teacher's MergeExcludes idiom.
func (c *ProjectConfig) ApplyTo(s *Settings, defaults *Settings) {
	if c == nil {
		return
	}

	if c.IncludeTests != nil && s.IncludeTests == defaults.IncludeTests {
		s.IncludeTests = *c.IncludeTests
	}
	if c.LibraryMode != nil && s.LibraryMode == defaults.LibraryMode {
		s.LibraryMode = *c.LibraryMode
	}
	if c.MaxDepth != nil && s.MaxDepth == defaults.MaxDepth {
		s.MaxDepth = *c.MaxDepth
	}
	if c.Confidence != "" && s.Confidence == defaults.Confidence {
		s.Confidence = c.Confidence
	}
	if c.ScanAll != nil && s.ScanAll == defaults.ScanAll {
		s.ScanAll = *c.ScanAll
	}
	if c.EditorCmd != "" && s.EditorCmd == defaults.EditorCmd {
		s.EditorCmd = c.EditorCmd
	}
	if c.FullScan != nil && s.FullScan == defaults.FullScan {
		s.FullScan = *c.FullScan
	}

	s.Ignore = mergeUnique(s.Ignore, c.Ignore)
	s.Focus = mergeUnique(s.Focus, c.Focus)
	s.ExcludeReport = mergeUnique(s.ExcludeReport, c.ExcludeReport)
	s.LibraryExampleGlobs = mergeUnique(s.LibraryExampleGlobs, c.LibraryExampleGlobs)
}

// mergeUnique merges fromFile into current (CLI/env values already
// applied), deduplicating entries, extending the teacher's
// MergeExcludes to every list-valued setting.
func mergeUnique(current, fromFile []string) []string {
	seen := make(map[string]bool, len(current)+len(fromFile))
	result := make([]string, 0, len(current)+len(fromFile))

	add := func(vals []string) {
		for _, v := range vals {
			if v == "" || seen[v] {
				continue
			}
			seen[v] = true
			result = append(result, v)
		}
	}

	add(current)
	add(fromFile)
	return result
}
