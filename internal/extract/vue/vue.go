// Package vue extracts the import/export/symbol graph out of a Vue
// single-file component. Vue SFCs have no tree-sitter grammar in the
// corpus, but their <script>/<script setup> block is ordinary JS/TS,
// so this extractor slices the block out and routes it through
// internal/extract/tsjs — the approach the spec calls for directly
// (spec.md §4.3: "Vue SFC <script>/<script setup> routed through the
// TS extractor").
package vue

import (
	"regexp"
	"strings"

	"github.com/petrarca/loctree/internal/extract/tsjs"
	"github.com/petrarca/loctree/internal/model"
)

var scriptRe = regexp.MustCompile(`(?s)<script([^>]*)>(.*?)</script>`)

// Extract locates the <script> or <script setup> block in a .vue file
// and delegates to the TS/JS extractor, preserving line numbers by
// offsetting for the lines consumed before the block starts.
func Extract(path string, content []byte) *model.FileAnalysis {
	src := string(content)
	match := scriptRe.FindStringSubmatchIndex(src)
	if match == nil {
		fa := model.NewFileAnalysis(path, model.LangVue)
		fa.LineCount = strings.Count(src, "\n") + 1
		return fa
	}

	attrs := src[match[2]:match[3]]
	body := src[match[4]:match[5]]
	offset := strings.Count(src[:match[4]], "\n")

	scriptPath := path + ".ts"
	if !strings.Contains(attrs, `lang="ts"`) && !strings.Contains(attrs, "lang='ts'") {
		scriptPath = path + ".js"
	}

	fa := tsjs.Extract(scriptPath, []byte(body))
	fa.Path = path
	fa.Language = model.LangVue
	fa.LineCount = strings.Count(src, "\n") + 1
	shiftLines(fa, offset)

	return fa
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
