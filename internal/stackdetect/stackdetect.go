// Package stackdetect inspects root markers to decide which language
// extractors to run, which directories are auto-ignored, and whether
// Tauri-specific extras (command/event bridge extraction) apply.
// Grounded on the teacher's internal/scanner/language.go marker-based
// detection, generalized from "which tech is present" to "which
// structural-analysis extractors apply".
package stackdetect

import (
	"os"
	"path/filepath"

	"github.com/petrarca/loctree/internal/model"
)

// ScanConfig enumerates what a scan over a given root should do:
// which languages participate, which globs are auto-ignored, and
// whether Tauri command/event bridge extraction is active.
type ScanConfig struct {
	Languages      []model.Language
	DefaultIgnores []string
	Extensions     []string
	TauriProject   bool
}

// marker associates a root-level file/dir with the language(s) and
// default ignores it implies (spec.md §4.1 table).
type marker struct {
	path      string
	languages []model.Language
	ignores   []string
}

var markers = []marker{
	{"Cargo.toml", []model.Language{model.LangRust}, []string{"target/**"}},
	{"go.mod", []model.Language{model.LangGo}, []string{"vendor/**"}},
	{"pubspec.yaml", []model.Language{model.LangDart}, []string{".dart_tool/**", "build/**"}},
	{"pyproject.toml", []model.Language{model.LangPython}, []string{"**/__pycache__/**", ".venv/**", "venv/**"}},
	{"setup.py", []model.Language{model.LangPython}, []string{"**/__pycache__/**", ".venv/**", "venv/**"}},
	{"tsconfig.json", []model.Language{model.LangTypeScript, model.LangJavaScript}, []string{"node_modules/**", "dist/**", "build/**"}},
	{"package.json", []model.Language{model.LangTypeScript, model.LangJavaScript}, []string{"node_modules/**", "dist/**", "build/**"}},
}

var baseIgnores = []string{".git/**", ".loctree/**"}

var extensionsByLanguage = map[model.Language][]string{
	model.LangTypeScript: {".ts", ".tsx", ".mts", ".cts"},
	model.LangJavaScript: {".js", ".jsx", ".mjs", ".cjs", ".vue", ".svelte"},
	model.LangRust:       {".rs"},
	model.LangPython:     {".py", ".pyi"},
	model.LangGo:         {".go"},
	model.LangDart:       {".dart"},
	model.LangCSS:        {".css", ".scss"},
}

// Detect scans only the root directory (no recursion) for presence
// markers and builds the ScanConfig they imply, composed with the
// user's own ignore globs, appended after the defaults.
func Detect(root string, userIgnores []string) ScanConfig {
	cfg := ScanConfig{DefaultIgnores: append([]string{}, baseIgnores...)}

	seenLang := map[model.Language]bool{}
	for _, m := range markers {
		if _, err := os.Stat(filepath.Join(root, m.path)); err != nil {
			continue
		}
		for _, lang := range m.languages {
			if !seenLang[lang] {
				seenLang[lang] = true
				cfg.Languages = append(cfg.Languages, lang)
				cfg.Extensions = append(cfg.Extensions, extensionsByLanguage[lang]...)
			}
		}
		cfg.DefaultIgnores = append(cfg.DefaultIgnores, m.ignores...)
	}

	// CSS participates whenever any front-end language is present.
	if seenLang[model.LangTypeScript] || seenLang[model.LangJavaScript] {
		cfg.Languages = append(cfg.Languages, model.LangCSS)
		cfg.Extensions = append(cfg.Extensions, extensionsByLanguage[model.LangCSS]...)
	}

	cfg.TauriProject = hasTauriMarker(root)

	cfg.DefaultIgnores = append(cfg.DefaultIgnores, userIgnores...)
	return cfg
}

// hasTauriMarker looks for the native-bridge hybrid marker (spec.md
// §4.1): a src-tauri directory alongside a JS/TS frontend, the
// canonical Tauri project layout.
func hasTauriMarker(root string) bool {
	info, err := os.Stat(filepath.Join(root, "src-tauri"))
	return err == nil && info.IsDir()
}

// HasLanguage reports whether lang is among cfg's detected languages.
func (c ScanConfig) HasLanguage(lang model.Language) bool {
	for _, l := range c.Languages {
		if l == lang {
			return true
		}
	}
	return false
}
