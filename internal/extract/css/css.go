// Package css extracts @import rules from CSS/SCSS source using
// smacker/go-tree-sitter's css grammar, consistent with how the other
// extractors in internal/extract parse their languages rather than
// scanning text by hand.
package css

import (
	"context"
	"strings"

	"github.com/smacker/go-tree-sitter/css"

	"github.com/petrarca/loctree/internal/extract/tsitter"
	"github.com/petrarca/loctree/internal/model"
)

// Extract parses a CSS/SCSS file and returns its @import edges.
func Extract(path string, content []byte) *model.FileAnalysis {
	fa := model.NewFileAnalysis(path, model.LangCSS)
	fa.LineCount = strings.Count(string(content), "\n") + 1

	root, err := tsitter.Parse(context.Background(), content, css.GetLanguage())
	if err != nil {
		fa.ParseFailed = true
		fa.ParseError = err.Error()
		return fa
	}

	for _, node := range tsitter.Find(root, "import_statement") {
		str := tsitter.FirstChildOfType(node, "string_value", "plain_value")
		if str == nil {
			continue
		}
		fa.Imports = append(fa.Imports, model.ImportEntry{
			RawSpecifier: unquote(tsitter.Text(str, content)),
			Kind:         model.ImportStatic,
			Line:         tsitter.Line(node),
		})
	}

	return fa
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
