// Package python extracts imports, exports and symbol occurrences
// from Python source using smacker/go-tree-sitter's python grammar.
// Grounded on the same viant-linager walking style used throughout
// internal/extract, adapted to Python's import/from-import/__all__/
// TYPE_CHECKING conventions (spec.md §4.3, §9).
package python

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/petrarca/loctree/internal/extract/tsitter"
	"github.com/petrarca/loctree/internal/model"
)

// Extract parses a single Python module.
func Extract(path string, content []byte) *model.FileAnalysis {
	fa := model.NewFileAnalysis(path, model.LangPython)
	fa.LineCount = strings.Count(string(content), "\n") + 1
	fa.IsTest = strings.HasPrefix(lastSegment(path), "test_") || strings.HasSuffix(path, "_test.py")

	root, err := tsitter.Parse(context.Background(), content, python.GetLanguage())
	if err != nil {
		fa.ParseFailed = true
		fa.ParseError = err.Error()
		return fa
	}

	typeCheckingRanges := findTypeCheckingBlocks(root, content)

	for _, node := range tsitter.Find(root, "import_statement") {
		extractImport(fa, node, content, inRanges(node, typeCheckingRanges))
	}
	for _, node := range tsitter.Find(root, "import_from_statement") {
		extractFromImport(fa, node, content, inRanges(node, typeCheckingRanges))
	}

	extractDynamicImports(fa, root, content)
	extractTopLevelDefs(fa, root, content)
	extractAllAssignment(fa, root, content)
	detectDynamicExport(fa, content)

	return fa
}

func lastSegment(path string) string {
	if idx := strings.LastIndex(path, "/"); idx != -1 {
		return path[idx+1:]
	}
	return path
}

// findTypeCheckingBlocks returns the byte ranges of `if TYPE_CHECKING:`
// blocks, whose imports are type-only per spec.md §9.
func findTypeCheckingBlocks(root *sitter.Node, src []byte) [][2]uint32 {
	var ranges [][2]uint32
	for _, ifStmt := range tsitter.Find(root, "if_statement") {
		cond := tsitter.FirstChildOfType(ifStmt, "identifier", "attribute")
		if cond == nil {
			continue
		}
		if strings.Contains(tsitter.Text(cond, src), "TYPE_CHECKING") {
			ranges = append(ranges, [2]uint32{ifStmt.StartByte(), ifStmt.EndByte()})
		}
	}
	return ranges
}

func inRanges(n *sitter.Node, ranges [][2]uint32) bool {
	for _, r := range ranges {
		if n.StartByte() >= r[0] && n.EndByte() <= r[1] {
			return true
		}
	}
	return false
}

func extractImport(fa *model.FileAnalysis, node *sitter.Node, src []byte, typeChecking bool) {
	line := tsitter.Line(node)
	for _, child := range tsitter.Children(node) {
		var module string
		var alias string
		switch child.Type() {
		case "dotted_name":
			module = tsitter.Text(child, src)
		case "aliased_import":
			name := tsitter.FirstChildOfType(child, "dotted_name")
			as := tsitter.FirstChildOfType(child, "identifier")
			if name != nil {
				module = tsitter.Text(name, src)
			}
			if as != nil {
				alias = tsitter.Text(as, src)
			}
		default:
			continue
		}
		fa.Imports = append(fa.Imports, model.ImportEntry{
			RawSpecifier: module,
			Kind:         pickKind(typeChecking),
			Line:         line,
			TypeChecking: typeChecking,
			Symbols:      []model.ImportedSymbol{{Name: module, Alias: alias}},
		})
	}
}

func extractFromImport(fa *model.FileAnalysis, node *sitter.Node, src []byte, typeChecking bool) {
	line := tsitter.Line(node)
	moduleNode := tsitter.FirstChildOfType(node, "dotted_name", "relative_import")
	module := ""
	if moduleNode != nil {
		module = tsitter.Text(moduleNode, src)
	}

	raw := tsitter.Text(node, src)
	if strings.Contains(raw, "import *") {
		fa.Imports = append(fa.Imports, model.ImportEntry{
			RawSpecifier: module, Kind: model.ImportReExportStar, Line: line, TypeChecking: typeChecking,
		})
		return
	}

	entry := model.ImportEntry{RawSpecifier: module, Kind: pickKind(typeChecking), Line: line, TypeChecking: typeChecking}
	for _, name := range tsitter.Find(node, "aliased_import") {
		id := tsitter.FirstChildOfType(name, "identifier")
		as := tsitter.Children(name)
		if id == nil || len(as) < 2 {
			continue
		}
		entry.Symbols = append(entry.Symbols, model.ImportedSymbol{Name: tsitter.Text(id, src), Alias: tsitter.Text(as[1], src)})
	}
	// Plain (non-aliased) imported names sit as direct dotted_name/identifier
	// children after the module and "import" keyword.
	seenModule := false
	for _, child := range tsitter.Children(node) {
		if child == moduleNode {
			seenModule = true
			continue
		}
		if !seenModule || child.Type() != "dotted_name" {
			continue
		}
		entry.Symbols = append(entry.Symbols, model.ImportedSymbol{Name: tsitter.Text(child, src)})
	}
	fa.Imports = append(fa.Imports, entry)
}

func pickKind(typeChecking bool) model.ImportKind {
	if typeChecking {
		return model.ImportTypeOnly
	}
	return model.ImportStatic
}

// extractDynamicImports flags importlib.import_module(...) and
// __import__(...) call sites (spec.md §4.3).
func extractDynamicImports(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, call := range tsitter.Find(root, "call") {
		fn := tsitter.FirstChildOfType(call, "attribute", "identifier")
		if fn == nil {
			continue
		}
		text := tsitter.Text(fn, src)
		if text != "importlib.import_module" && text != "__import__" {
			continue
		}
		args := tsitter.FirstChildOfType(call, "argument_list")
		spec := ""
		dynamic := true
		if args != nil {
			if str := tsitter.FirstChildOfType(args, "string"); str != nil {
				spec = unquote(tsitter.Text(str, src))
				dynamic = false
			}
		}
		fa.Imports = append(fa.Imports, model.ImportEntry{
			RawSpecifier: spec, Kind: model.ImportDynamic, Line: tsitter.Line(call), DynamicImport: dynamic,
		})
	}
}

func extractTopLevelDefs(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, node := range tsitter.Children(root) {
		var kind model.ExportKind
		switch node.Type() {
		case "function_definition":
			kind = model.ExportFunction
		case "class_definition":
			kind = model.ExportClass
		default:
			continue
		}
		id := tsitter.FirstChildOfType(node, "identifier")
		if id == nil {
			continue
		}
		name := tsitter.Text(id, src)
		line := tsitter.Line(node)
		visibility := model.VisibilityPublic
		if strings.HasPrefix(name, "_") {
			visibility = model.VisibilityPackageInternal
		}
		fa.Exports = append(fa.Exports, model.ExportEntry{Name: name, Kind: kind, Line: line, Visibility: visibility})
		fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{Name: name, Role: model.RoleDefinition, Line: line, Owner: name})
	}
}

// extractAllAssignment records `__all__ = [...]` as fa.PublicAPI.
func extractAllAssignment(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, assign := range tsitter.Find(root, "assignment") {
		left := tsitter.FirstChildOfType(assign, "identifier")
		if left == nil || tsitter.Text(left, src) != "__all__" {
			continue
		}
		list := tsitter.FirstChildOfType(assign, "list", "tuple")
		if list == nil {
			continue
		}
		for _, str := range tsitter.Find(list, "string") {
			fa.PublicAPI = append(fa.PublicAPI, unquote(tsitter.Text(str, src)))
		}
	}
}

// detectDynamicExport flags a `sys.modules[...] = ` assignment, a
// common dynamic re-export pattern the parser can't resolve
// structurally (spec.md §9 Open Question 1).
func detectDynamicExport(fa *model.FileAnalysis, src []byte) {
	fa.DynamicExport = strings.Contains(string(src), "sys.modules[")
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
