// Package tsjs extracts imports, exports and symbol occurrences from
// JavaScript/TypeScript source (including JSX/TSX) using
// smacker/go-tree-sitter. Grounded on viant-linager's
// inspector/jsx.Inspector: same parse-then-walk-named-children shape,
// generalized from "find React components" to "find every import/
// export/reference this spec's graph needs".
package tsjs

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/petrarca/loctree/internal/extract/tsitter"
	"github.com/petrarca/loctree/internal/model"
)

// Extract parses a JS/TS/JSX/TSX source file and returns its
// FileAnalysis. The grammar is picked from path's extension: .tsx/.jsx
// get the JSX-aware grammar, .ts gets plain TypeScript, everything
// else falls back to JavaScript.
func Extract(path string, content []byte) *model.FileAnalysis {
	lang := languageFor(path)
	fa := model.NewFileAnalysis(path, lang)
	fa.LineCount = strings.Count(string(content), "\n") + 1
	fa.IsTest = isTestFile(path)
	fa.IsGenerated = strings.Contains(firstLines(content, 5), "DO NOT EDIT")

	root, err := tsitter.Parse(context.Background(), content, grammarFor(path))
	if err != nil {
		fa.ParseFailed = true
		fa.ParseError = err.Error()
		return fa
	}

	extractImports(fa, root, content)
	extractExports(fa, root, content)
	extractSymbolUses(fa, root, content)
	extractTopLevelConsts(fa, root, content)
	extractTauriBridge(fa, root, content)

	return fa
}

func languageFor(path string) model.Language {
	if strings.HasSuffix(path, ".ts") || strings.HasSuffix(path, ".tsx") ||
		strings.HasSuffix(path, ".mts") || strings.HasSuffix(path, ".cts") {
		return model.LangTypeScript
	}
	return model.LangJavaScript
}

func grammarFor(path string) *sitter.Language {
	switch {
	case strings.HasSuffix(path, ".tsx"):
		return tsx.GetLanguage()
	case strings.HasSuffix(path, ".ts"), strings.HasSuffix(path, ".mts"), strings.HasSuffix(path, ".cts"):
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

func isTestFile(path string) bool {
	return strings.Contains(path, ".test.") || strings.Contains(path, ".spec.") ||
		strings.Contains(path, "__tests__/")
}

func firstLines(content []byte, n int) string {
	lines := strings.SplitN(string(content), "\n", n+1)
	if len(lines) > n {
		lines = lines[:n]
	}
	return strings.Join(lines, "\n")
}

// extractImports walks top-level import_statement and call_expression
// (require/dynamic import) nodes.
func extractImports(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, node := range tsitter.Find(root, "import_statement") {
		entry, ok := parseImportStatement(node, src)
		if ok {
			fa.Imports = append(fa.Imports, entry)
		}
	}

	for _, call := range tsitter.Find(root, "call_expression") {
		fn := tsitter.FirstChildOfType(call, "identifier", "import")
		if fn == nil {
			continue
		}
		name := tsitter.Text(fn, src)
		if name != "require" && fn.Type() != "import" {
			continue
		}
		args := tsitter.FirstChildOfType(call, "arguments")
		if args == nil {
			continue
		}
		str := tsitter.FirstChildOfType(args, "string")
		if str == nil {
			continue
		}
		spec := unquote(tsitter.Text(str, src))
		fa.Imports = append(fa.Imports, model.ImportEntry{
			RawSpecifier:  spec,
			Kind:          model.ImportDynamic,
			Line:          tsitter.Line(call),
			DynamicImport: true,
		})
	}
}

func parseImportStatement(node *sitter.Node, src []byte) (model.ImportEntry, bool) {
	strNode := tsitter.FirstChildOfType(node, "string")
	if strNode == nil {
		return model.ImportEntry{}, false
	}
	spec := unquote(tsitter.Text(strNode, src))

	entry := model.ImportEntry{
		RawSpecifier: spec,
		Kind:         model.ImportStatic,
		Line:         tsitter.Line(node),
	}

	raw := tsitter.Text(node, src)
	if strings.HasPrefix(strings.TrimSpace(raw), "import type") {
		entry.Kind = model.ImportTypeOnly
		entry.TypeOnly = true
	}

	clause := tsitter.FirstChildOfType(node, "import_clause")
	if clause == nil {
		return entry, true
	}

	for _, child := range tsitter.Children(clause) {
		switch child.Type() {
		case "identifier":
			entry.Symbols = append(entry.Symbols, model.ImportedSymbol{Name: tsitter.Text(child, src)})
		case "namespace_import":
			name := tsitter.Text(child, src)
			entry.Symbols = append(entry.Symbols, model.ImportedSymbol{Name: "*", Alias: strings.TrimSpace(strings.TrimPrefix(name, "* as "))})
		case "named_imports":
			for _, spec := range tsitter.Children(child) {
				if spec.Type() != "import_specifier" {
					continue
				}
				names := tsitter.Children(spec)
				if len(names) == 0 {
					continue
				}
				sym := model.ImportedSymbol{Name: tsitter.Text(names[0], src)}
				if len(names) > 1 {
					sym.Alias = tsitter.Text(names[1], src)
				}
				entry.Symbols = append(entry.Symbols, sym)
			}
		}
	}

	return entry, true
}

// extractExports walks export_statement nodes, handling `export
// const/function/class`, `export default`, `export { a, b }` and
// `export * from "..."` re-exports.
func extractExports(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, node := range tsitter.Find(root, "export_statement") {
		raw := tsitter.Text(node, src)
		line := tsitter.Line(node)

		if strings.Contains(raw, "export *") {
			fromSpec := tsitter.FirstChildOfType(node, "string")
			resolved := ""
			if fromSpec != nil {
				resolved = unquote(tsitter.Text(fromSpec, src))
			}
			fa.Imports = append(fa.Imports, model.ImportEntry{
				RawSpecifier: resolved,
				Kind:         model.ImportReExportStar,
				Line:         line,
			})
			continue
		}

		if decl := tsitter.FirstChildOfType(node,
			"function_declaration", "generator_function_declaration",
			"class_declaration", "interface_declaration",
			"type_alias_declaration", "lexical_declaration", "variable_declaration"); decl != nil {
			exportDeclaration(fa, decl, src, line, strings.Contains(raw, "export default"))
			continue
		}

		if clause := tsitter.FirstChildOfType(node, "export_clause"); clause != nil {
			fromSpec := tsitter.FirstChildOfType(node, "string")
			if fromSpec != nil {
				resolved := unquote(tsitter.Text(fromSpec, src))
				for _, spec := range tsitter.Find(clause, "export_specifier") {
					names := tsitter.Children(spec)
					if len(names) == 0 {
						continue
					}
					fa.Imports = append(fa.Imports, model.ImportEntry{
						RawSpecifier: resolved,
						Kind:         model.ImportReExportNamed,
						Line:         line,
						Symbols:      []model.ImportedSymbol{{Name: tsitter.Text(names[0], src)}},
					})
				}
				continue
			}
			for _, spec := range tsitter.Find(clause, "export_specifier") {
				names := tsitter.Children(spec)
				if len(names) == 0 {
					continue
				}
				fa.Exports = append(fa.Exports, model.ExportEntry{
					Name:       tsitter.Text(names[0], src),
					Kind:       model.ExportValue,
					Line:       line,
					Visibility: model.VisibilityPublic,
				})
			}
		}
	}
}

func exportDeclaration(fa *model.FileAnalysis, decl *sitter.Node, src []byte, line int, isDefault bool) {
	kind := model.ExportValue
	var name string

	switch decl.Type() {
	case "function_declaration", "generator_function_declaration":
		kind = model.ExportFunction
		if id := tsitter.FirstChildOfType(decl, "identifier"); id != nil {
			name = tsitter.Text(id, src)
		}
	case "class_declaration":
		kind = model.ExportClass
		if id := tsitter.FirstChildOfType(decl, "type_identifier", "identifier"); id != nil {
			name = tsitter.Text(id, src)
		}
	case "interface_declaration", "type_alias_declaration":
		kind = model.ExportType
		if id := tsitter.FirstChildOfType(decl, "type_identifier"); id != nil {
			name = tsitter.Text(id, src)
		}
	case "lexical_declaration", "variable_declaration":
		kind = model.ExportConst
		for _, declarator := range tsitter.Find(decl, "variable_declarator") {
			if id := tsitter.FirstChildOfType(declarator, "identifier"); id != nil {
				fa.Exports = append(fa.Exports, model.ExportEntry{
					Name: tsitter.Text(id, src), Kind: kind, Line: line, Visibility: model.VisibilityPublic,
					LiteralValue: stringLiteralValue(declarator, src),
				})
			}
		}
		return
	}

	if name == "" && isDefault {
		name = "default"
	}
	if name == "" {
		return
	}
	fa.Exports = append(fa.Exports, model.ExportEntry{Name: name, Kind: kind, Line: line, Visibility: model.VisibilityPublic})
}

// extractSymbolUses records every identifier as a same-file symbol
// occurrence, except those whose parent is an import specifier or
// import clause.
func extractSymbolUses(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, ident := range tsitter.Find(root, "identifier") {
		parent := ident.Parent()
		if parent != nil && (parent.Type() == "import_specifier" || parent.Type() == "import_clause") {
			continue
		}
		fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
			Name: tsitter.Text(ident, src),
			Role: model.RoleUse,
			Line: tsitter.Line(ident),
		})
	}
}

// extractTopLevelConsts records every module-top-level `const NAME =
// "literal"` binding (exported or not), so the Graph Builder can
// resolve a dynamic command/event name back to its literal value
// (spec.md §9 "dynamic invoke / event-name constants").
func extractTopLevelConsts(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, stmt := range tsitter.Children(root) {
		decl := stmt
		if decl.Type() == "export_statement" {
			if inner := tsitter.FirstChildOfType(decl, "lexical_declaration", "variable_declaration"); inner != nil {
				decl = inner
			} else {
				continue
			}
		}
		if decl.Type() != "lexical_declaration" && decl.Type() != "variable_declaration" {
			continue
		}
		for _, declarator := range tsitter.Find(decl, "variable_declarator") {
			id := tsitter.FirstChildOfType(declarator, "identifier")
			if id == nil {
				continue
			}
			lit := stringLiteralValue(declarator, src)
			if lit == "" {
				continue
			}
			if fa.TopLevelConsts == nil {
				fa.TopLevelConsts = map[string]string{}
			}
			fa.TopLevelConsts[tsitter.Text(id, src)] = lit
		}
	}
}

// stringLiteralValue returns declarator's initializer text when it is
// a plain string or non-interpolated template literal, else "".
func stringLiteralValue(declarator *sitter.Node, src []byte) string {
	for _, child := range tsitter.Children(declarator) {
		switch child.Type() {
		case "string":
			return unquote(tsitter.Text(child, src))
		case "template_string":
			raw := tsitter.Text(child, src)
			if strings.Contains(raw, "${") {
				return ""
			}
			return unquote(raw)
		}
	}
	return ""
}

// extractTauriBridge recognizes `invoke(...)`, `emit(...)` and
// `listen(...)`/`once(...)` calls (bare or as a member access, e.g.
// `event.emit(...)`) as Tauri command/event bridge endpoints. A
// backtick command name with no interpolation counts as a literal
// (spec.md §4.3: "Template literals in invoke-style calls must be
// recognized").
func extractTauriBridge(fa *model.FileAnalysis, root *sitter.Node, src []byte) {
	for _, call := range tsitter.Find(root, "call_expression") {
		children := tsitter.Children(call)
		if len(children) == 0 {
			continue
		}
		fnName := calleeName(children[0], src)
		if fnName == "" {
			continue
		}
		args := tsitter.FirstChildOfType(call, "arguments")
		if args == nil {
			continue
		}
		name, dynamic := firstArgName(args, src)
		line := tsitter.Line(call)

		switch fnName {
		case "invoke":
			fa.CommandCalls = append(fa.CommandCalls, model.CommandCall{Name: name, Line: line, Dynamic: dynamic})
		case "emit", "emitTo":
			fa.EventEmits = append(fa.EventEmits, model.EventEmit{Name: name, Line: line, Dynamic: dynamic})
		case "listen", "once":
			fa.EventListens = append(fa.EventListens, model.EventListen{Name: name, Line: line, Dynamic: dynamic})
		}
	}
}

func calleeName(n *sitter.Node, src []byte) string {
	switch n.Type() {
	case "identifier":
		return tsitter.Text(n, src)
	case "member_expression":
		if prop := tsitter.FirstChildOfType(n, "property_identifier"); prop != nil {
			return tsitter.Text(prop, src)
		}
	}
	return ""
}

// firstArgName returns the command/event name from a call's first
// argument: a literal yields (text, false); a bare identifier yields
// (identifier name, true) for the Graph Builder's constant-resolution
// pass; anything else yields ("", true), an unresolvable dynamic site.
func firstArgName(args *sitter.Node, src []byte) (string, bool) {
	children := tsitter.Children(args)
	if len(children) == 0 {
		return "", true
	}
	switch first := children[0]; first.Type() {
	case "string":
		return unquote(tsitter.Text(first, src)), false
	case "template_string":
		raw := tsitter.Text(first, src)
		if strings.Contains(raw, "${") {
			return "", true
		}
		return unquote(raw), false
	case "identifier":
		return tsitter.Text(first, src), true
	default:
		return "", true
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '`' && s[len(s)-1] == '`') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
