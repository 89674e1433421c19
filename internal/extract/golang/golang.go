// Package golang extracts imports, exports and symbol occurrences from
// Go source files using the standard library's own parser — the
// teacher has no direct analogue (its golang detector classifies
// go.mod/main.go presence for tech detection, not AST-level structure),
// so this package is grounded directly on spec.md §4.3's Go rules:
// capitalized top-level identifiers are exports, everything else is a
// same-file symbol occurrence.
package golang

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"unicode"

	"github.com/petrarca/loctree/internal/model"
)

// Extract parses a single Go source file and returns its FileAnalysis.
// Parse failures are recorded on the result rather than returned as an
// error, so a single malformed file never aborts a scan.
func Extract(path string, content []byte) *model.FileAnalysis {
	fa := model.NewFileAnalysis(path, model.LangGo)
	fa.LineCount = strings.Count(string(content), "\n") + 1
	fa.IsTest = strings.HasSuffix(path, "_test.go")
	fa.IsGenerated = isGenerated(content)

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, path, content, parser.ParseComments)
	if err != nil {
		fa.ParseFailed = true
		fa.ParseError = err.Error()
		return fa
	}

	for _, imp := range file.Imports {
		spec := strings.Trim(imp.Path.Value, `"`)
		line := fset.Position(imp.Pos()).Line
		entry := model.ImportEntry{
			RawSpecifier: spec,
			Kind:         model.ImportStatic,
			Line:         line,
		}
		name := ""
		if imp.Name != nil {
			name = imp.Name.Name
		}
		entry.Symbols = []model.ImportedSymbol{{Name: packageNameOf(spec), Alias: name}}
		fa.Imports = append(fa.Imports, entry)
	}

	for _, decl := range file.Decls {
		collectDecl(fa, fset, decl)
	}

	return fa
}

func collectDecl(fa *model.FileAnalysis, fset *token.FileSet, decl ast.Decl) {
	switch d := decl.(type) {
	case *ast.FuncDecl:
		if d.Recv != nil {
			// Method: not a package-level export, but its body is
			// still a source of same-file symbol uses.
			walkUses(fa, fset, d.Body, "")
			return
		}
		line := fset.Position(d.Pos()).Line
		addTopLevel(fa, d.Name.Name, line, model.ExportFunction)
		walkUses(fa, fset, d.Body, d.Name.Name)

	case *ast.GenDecl:
		for _, spec := range d.Specs {
			switch s := spec.(type) {
			case *ast.TypeSpec:
				line := fset.Position(s.Pos()).Line
				kind := model.ExportValue
				if _, ok := s.Type.(*ast.InterfaceType); ok {
					kind = model.ExportType
				} else if _, ok := s.Type.(*ast.StructType); ok {
					kind = model.ExportClass
				}
				addTopLevel(fa, s.Name.Name, line, kind)
			case *ast.ValueSpec:
				line := fset.Position(s.Pos()).Line
				kind := model.ExportValue
				if d.Tok == token.CONST {
					kind = model.ExportConst
				}
				for _, name := range s.Names {
					addTopLevel(fa, name.Name, line, kind)
				}
				for _, value := range s.Values {
					walkUses(fa, fset, value, "")
				}
			}
		}
	}
}

// addTopLevel records a definition occurrence for name and, if name is
// capitalized (Go's own export rule), an exported symbol as well.
func addTopLevel(fa *model.FileAnalysis, name string, line int, kind model.ExportKind) {
	if name == "" || name == "_" {
		return
	}
	if unicode.IsUpper(rune(name[0])) {
		fa.Exports = append(fa.Exports, model.ExportEntry{
			Name:       name,
			Kind:       kind,
			Line:       line,
			Visibility: model.VisibilityPublic,
		})
	}
	fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
		Name:  name,
		Role:  model.RoleDefinition,
		Line:  line,
		Owner: name,
	})
}

// walkUses records every identifier referenced inside node as a
// same-file symbol use, attributed to owner (the enclosing function
// or declaration, empty for package-level initializers).
func walkUses(fa *model.FileAnalysis, fset *token.FileSet, node ast.Node, owner string) {
	if node == nil {
		return
	}
	ast.Inspect(node, func(n ast.Node) bool {
		ident, ok := n.(*ast.Ident)
		if !ok || ident.Name == "" || ident.Name == "_" {
			return true
		}
		fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
			Name:  ident.Name,
			Role:  model.RoleUse,
			Line:  fset.Position(ident.Pos()).Line,
			Owner: owner,
		})
		return true
	})
}

// packageNameOf returns the conventional package identifier bound by
// importing spec (the final path segment), used when no import alias
// is present.
func packageNameOf(spec string) string {
	idx := strings.LastIndex(spec, "/")
	if idx == -1 {
		return spec
	}
	return spec[idx+1:]
}

// isGenerated matches the "Code generated ... DO NOT EDIT" convention
// (https://go.dev/s/generatedcode) in the first few lines.
func isGenerated(content []byte) bool {
	lines := strings.SplitN(string(content), "\n", 21)
	if len(lines) > 20 {
		lines = lines[:20]
	}
	for _, line := range lines {
		if strings.Contains(line, "Code generated") && strings.Contains(line, "DO NOT EDIT") {
			return true
		}
	}
	return false
}
