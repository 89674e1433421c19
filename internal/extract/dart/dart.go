// Package dart extracts import/export/part directives from Dart
// source. Dart has no tree-sitter grammar in the corpus (unlike
// JS/TS/Rust/Python), and its directive syntax is a fixed, single-line
// grammar (`import '...';`, `export '...';`, `part '...';`, `part of
// ...;`) that a line-oriented scan expresses faithfully without
// needing a full parser — see DESIGN.md for why this extractor scans
// lines with the standard library's regexp package rather than a
// tree-sitter grammar.
package dart

import (
	"regexp"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

var (
	importRe = regexp.MustCompile(`^\s*import\s+['"]([^'"]+)['"]`)
	exportRe = regexp.MustCompile(`^\s*export\s+['"]([^'"]+)['"]`)
	partRe   = regexp.MustCompile(`^\s*part\s+['"]([^'"]+)['"]`)
	partOfRe = regexp.MustCompile(`^\s*part\s+of\s+`)
	classRe  = regexp.MustCompile(`^\s*(?:abstract\s+)?class\s+(\w+)`)
)

// Extract scans a Dart source file line by line for import/export/part
// directives and top-level class declarations.
func Extract(path string, content []byte) *model.FileAnalysis {
	fa := model.NewFileAnalysis(path, model.LangDart)
	lines := strings.Split(string(content), "\n")
	fa.LineCount = len(lines)
	fa.IsTest = strings.HasSuffix(path, "_test.dart")

	for i, line := range lines {
		lineNum := i + 1

		if m := importRe.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.ImportEntry{
				RawSpecifier: m[1], Kind: model.ImportStatic, Line: lineNum,
			})
			continue
		}
		if m := exportRe.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.ImportEntry{
				RawSpecifier: m[1], Kind: model.ImportReExportStar, Line: lineNum,
			})
			continue
		}
		if m := partRe.FindStringSubmatch(line); m != nil {
			fa.Imports = append(fa.Imports, model.ImportEntry{
				RawSpecifier: m[1], Kind: model.ImportStatic, Line: lineNum,
			})
			continue
		}
		if partOfRe.MatchString(line) {
			continue
		}
		if m := classRe.FindStringSubmatch(line); m != nil {
			fa.Exports = append(fa.Exports, model.ExportEntry{
				Name: m[1], Kind: model.ExportClass, Line: lineNum, Visibility: model.VisibilityPublic,
			})
			fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
				Name: m[1], Role: model.RoleDefinition, Line: lineNum, Owner: m[1],
			})
		}
	}

	return fa
}
