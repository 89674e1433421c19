// Package rust extracts imports, exports and symbol occurrences from
// Rust source using smacker/go-tree-sitter's rust grammar. Grounded on
// the same viant-linager inspector walking style as internal/extract/
// tsjs, adapted to Rust's use/mod/pub syntax and #[tauri::command]
// bridge markers (spec.md §4.3, §4.5).
package rust

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/petrarca/loctree/internal/extract/tsitter"
	"github.com/petrarca/loctree/internal/model"
)

// Extract parses a single Rust source file. The contents of
// #[cfg(test)] modules are left out of use, mod and top-level item
// extraction, so a module compiled only for tests does not pollute the
// production import graph. IsTest is set from the path alone (a
// tests/ directory or a _test.rs suffix), not from cfg(test) modules.
func Extract(path string, content []byte) *model.FileAnalysis {
	fa := model.NewFileAnalysis(path, model.LangRust)
	fa.LineCount = strings.Count(string(content), "\n") + 1
	fa.IsTest = strings.Contains(path, "/tests/") || strings.HasSuffix(path, "_test.rs")

	root, err := tsitter.Parse(context.Background(), content, rust.GetLanguage())
	if err != nil {
		fa.ParseFailed = true
		fa.ParseError = err.Error()
		return fa
	}

	cfgTestRanges := findCfgTestModules(root, content)

	for _, node := range tsitter.Find(root, "use_declaration") {
		if inRanges(node, cfgTestRanges) {
			continue
		}
		extractUse(fa, node, content)
	}

	for _, node := range tsitter.Find(root, "mod_item") {
		if inRanges(node, cfgTestRanges) {
			continue
		}
		extractMod(fa, node, content)
	}

	extractTopLevelItems(fa, root, content, cfgTestRanges)
	extractTauriCommands(fa, root, content)

	return fa
}

// findCfgTestModules returns the byte ranges of every mod_item whose
// preceding attribute_item is #[cfg(test)], so their contents can be
// excluded from import/export extraction.
func findCfgTestModules(root *sitter.Node, src []byte) [][2]uint32 {
	var ranges [][2]uint32
	for _, mod := range tsitter.Find(root, "mod_item") {
		prev := mod.PrevSibling()
		for prev != nil && prev.Type() == "attribute_item" {
			if strings.Contains(tsitter.Text(prev, src), "cfg(test)") {
				ranges = append(ranges, [2]uint32{mod.StartByte(), mod.EndByte()})
				break
			}
			prev = prev.PrevSibling()
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

func extractUse(fa *model.FileAnalysis, node *sitter.Node, src []byte) {
	raw := tsitter.Text(node, src)
	line := tsitter.Line(node)
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "pub ")
	trimmed = strings.TrimSuffix(strings.TrimPrefix(trimmed, "use "), ";")

	entry := model.ImportEntry{
		RawSpecifier: trimmed,
		Kind:         model.ImportStatic,
		Line:         line,
	}

	switch {
	case strings.HasPrefix(trimmed, "crate::"):
		entry.CrateRelative = true
	case strings.HasPrefix(trimmed, "super::"):
		entry.SuperRelative = true
	case strings.HasPrefix(trimmed, "self::"):
		entry.SelfRelative = true
	}

	for _, leaf := range leafNames(trimmed) {
		entry.Symbols = append(entry.Symbols, model.ImportedSymbol{Name: leaf})
	}

	fa.Imports = append(fa.Imports, entry)
}

// leafNames expands a `use a::b::{c, d as e}` path into its bound leaf
// names, handling the brace-group and single-path forms.
func leafNames(path string) []string {
	if idx := strings.LastIndex(path, "::{"); idx != -1 && strings.HasSuffix(path, "}") {
		prefix := path[idx+3 : len(path)-1]
		var names []string
		for _, part := range strings.Split(prefix, ",") {
			part = strings.TrimSpace(part)
			if as := strings.Index(part, " as "); as != -1 {
				names = append(names, strings.TrimSpace(part[as+4:]))
			} else if part != "" {
				names = append(names, lastSegment(part))
			}
		}
		return names
	}
	if as := strings.Index(path, " as "); as != -1 {
		return []string{strings.TrimSpace(path[as+4:])}
	}
	return []string{lastSegment(path)}
}

func lastSegment(path string) string {
	idx := strings.LastIndex(path, "::")
	if idx == -1 {
		return path
	}
	return path[idx+2:]
}

func extractMod(fa *model.FileAnalysis, node *sitter.Node, src []byte) {
	name := tsitter.FirstChildOfType(node, "identifier")
	if name == nil {
		return
	}
	line := tsitter.Line(node)
	isPub := strings.HasPrefix(strings.TrimSpace(tsitter.Text(node, src)), "pub")
	if isPub {
		fa.Exports = append(fa.Exports, model.ExportEntry{
			Name: tsitter.Text(name, src), Kind: model.ExportValue, Line: line, Visibility: model.VisibilityPublic,
		})
	}
	fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
		Name: tsitter.Text(name, src), Role: model.RoleDefinition, Line: line, Owner: tsitter.Text(name, src),
	})
}

func extractTopLevelItems(fa *model.FileAnalysis, root *sitter.Node, src []byte, cfgTestRanges [][2]uint32) {
	itemTypes := []string{
		"function_item", "struct_item", "enum_item", "trait_item",
		"type_item", "const_item", "static_item", "impl_item",
	}
	for _, node := range tsitter.Children(root) {
		if !contains(itemTypes, node.Type()) || inRanges(node, cfgTestRanges) {
			continue
		}
		visibility := tsitter.FirstChildOfType(node, "visibility_modifier")
		name := declName(node, src)
		if name == "" {
			continue
		}
		line := tsitter.Line(node)
		if visibility != nil {
			fa.Exports = append(fa.Exports, model.ExportEntry{
				Name: name, Kind: kindFor(node.Type()), Line: line, Visibility: model.VisibilityPublic,
			})
		}
		fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
			Name: name, Role: model.RoleDefinition, Line: line, Owner: name,
		})
	}
}

func declName(node *sitter.Node, src []byte) string {
	if id := tsitter.FirstChildOfType(node, "identifier", "type_identifier"); id != nil {
		return tsitter.Text(id, src)
	}
	return ""
}

func kindFor(nodeType string) model.ExportKind {
	switch nodeType {
	case "function_item":
		return model.ExportFunction
	case "struct_item", "enum_item":
		return model.ExportClass
	case "trait_item", "type_item":
		return model.ExportType
	case "const_item", "static_item":
		return model.ExportConst
	default:
		return model.ExportValue
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// extractTauriCommands tags #[tauri::command] functions as
// CommandHandler entries and generate_handler![...] invocations as the
// crate's registered-handler list (spec.md §4.5).
func extractTauriCommands(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, fn := range tsitter.Find(root, "function_item") {
		prev := fn.PrevSibling()
		for prev != nil && prev.Type() == "attribute_item" {
			if strings.Contains(tsitter.Text(prev, src), "tauri::command") {
				name := tsitter.FirstChildOfType(fn, "identifier")
				if name != nil {
					fa.CommandDefs = append(fa.CommandDefs, model.CommandHandler{
						Name: tsitter.Text(name, src), Line: tsitter.Line(fn),
					})
				}
				break
			}
			prev = prev.PrevSibling()
		}
	}

	for _, inv := range tsitter.Find(root, "macro_invocation") {
		macroName := tsitter.FirstChildOfType(inv, "identifier", "scoped_identifier")
		if macroName == nil || !strings.HasSuffix(tsitter.Text(macroName, src), "generate_handler") {
			continue
		}
		tree := tsitter.FirstChildOfType(inv, "token_tree")
		if tree == nil {
			continue
		}
		for _, id := range tsitter.Find(tree, "identifier") {
			fa.CommandRegistrations = append(fa.CommandRegistrations, model.CommandRegistration{
				Name: tsitter.Text(id, src), Line: tsitter.Line(id),
			})
		}
	}
}
