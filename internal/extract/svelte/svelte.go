// Package svelte extracts the import/export/symbol graph from a
// Svelte single-file component: its <script> block routed through
// internal/extract/tsjs (same approach as internal/extract/vue), plus
// the template's component usages recorded as symbol occurrences so
// the graph can tell "imported but never rendered" from "imported and
// used" (spec.md §4.3).
package svelte

import (
	"regexp"
	"strings"

	"github.com/petrarca/loctree/internal/extract/tsjs"
	"github.com/petrarca/loctree/internal/model"
)

var (
	scriptRe   = regexp.MustCompile(`(?s)<script([^>]*)>(.*?)</script>`)
	componentRe = regexp.MustCompile(`<([A-Z]\w*)`)
	mustacheRe  = regexp.MustCompile(`\{([A-Za-z_$][\w.]*)`)
)

// Extract parses a .svelte file's script block via tsjs and scans the
// template for capitalized component tags and {expr} mustache uses.
func Extract(path string, content []byte) *model.FileAnalysis {
	src := string(content)
	match := scriptRe.FindStringSubmatchIndex(src)

	var fa *model.FileAnalysis
	template := src

	if match == nil {
		fa = model.NewFileAnalysis(path, model.LangSvelte)
	} else {
		body := src[match[4]:match[5]]
		offset := strings.Count(src[:match[4]], "\n")
		fa = tsjs.Extract(path+".js", []byte(body))
		fa.Path = path
		fa.Language = model.LangSvelte
		shiftLines(fa, offset)
		template = src[:match[0]] + src[match[1]:]
	}

	fa.LineCount = strings.Count(src, "\n") + 1
	scanTemplate(fa, template)

	return fa
}

func scanTemplate(fa *model.FileAnalysis, template string) {
	lineOf := func(offset int) int {
		return strings.Count(template[:offset], "\n") + 1
	}

	for _, loc := range componentRe.FindAllStringSubmatchIndex(template, -1) {
		name := template[loc[2]:loc[3]]
		fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
			Name: name, Role: model.RoleUse, Line: lineOf(loc[0]),
		})
	}
	for _, loc := range mustacheRe.FindAllStringSubmatchIndex(template, -1) {
		name := template[loc[2]:loc[3]]
		fa.Symbols = append(fa.Symbols, model.SymbolOccurrence{
			Name: name, Role: model.RoleUse, Line: lineOf(loc[0]),
		})
	}
}

func shiftLines(fa *model.FileAnalysis, offset int) {
	for i := range fa.Imports {
		fa.Imports[i].Line += offset
	}
	for i := range fa.Exports {
		fa.Exports[i].Line += offset
	}
	for i := range fa.Symbols {
		fa.Symbols[i].Line += offset
	}
}
