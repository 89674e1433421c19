// Package extract dispatches a source file to its per-language
// extractor by file extension, composing the language-specific
// packages underneath (tsjs, rust, python, golang, dart, css, vue,
// svelte) behind one call the scan orchestrator can use without
// knowing each extractor's import path. Grounded on the teacher's
// internal/scanner/language.go extension-to-detector lookup, same
// shape applied one level up.
package extract

import (
	"path/filepath"
	"strings"

	"github.com/petrarca/loctree/internal/extract/css"
	"github.com/petrarca/loctree/internal/extract/dart"
	"github.com/petrarca/loctree/internal/extract/golang"
	"github.com/petrarca/loctree/internal/extract/python"
	"github.com/petrarca/loctree/internal/extract/rust"
	"github.com/petrarca/loctree/internal/extract/svelte"
	"github.com/petrarca/loctree/internal/extract/tsjs"
	"github.com/petrarca/loctree/internal/extract/vue"
	"github.com/petrarca/loctree/internal/model"
)

// File extracts path/content with whichever extractor its extension
// maps to, or nil if no extractor recognizes it.
func File(path string, content []byte) *model.FileAnalysis {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs":
		return tsjs.Extract(path, content)
	case ".vue":
		return vue.Extract(path, content)
	case ".svelte":
		return svelte.Extract(path, content)
	case ".rs":
		return rust.Extract(path, content)
	case ".py", ".pyi":
		return python.Extract(path, content)
	case ".go":
		return golang.Extract(path, content)
	case ".dart":
		return dart.Extract(path, content)
	case ".css", ".scss":
		return css.Extract(path, content)
	default:
		return nil
	}
}
