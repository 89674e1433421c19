// Package resolve implements C4: turning the raw import specifiers
// internal/extract records into canonical, project-relative file
// paths (spec.md §4.4). There is no teacher or pack analogue for this
// stage — loctree's teacher repo reports rule violations per-file and
// never builds a cross-file graph — so the resolution algorithms below
// follow spec.md §4.4's language-by-language description directly,
// reusing the teacher's provider/config idioms for I/O.
package resolve

import (
	"path"
	"sort"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// candidateExtensions lists suffix forms tried, in order, when a
// specifier names a module without its file extension (e.g. "./utils"
// resolving to "./utils.ts" or "./utils/index.ts").
var candidateExtensions = map[model.Language][]string{
	model.LangTypeScript: {"", ".ts", ".tsx", ".d.ts", "/index.ts", "/index.tsx", ".js", ".jsx", "/index.js", "/index.jsx", ".vue", ".svelte"},
	model.LangJavaScript: {"", ".js", ".jsx", "/index.js", "/index.jsx", ".ts", ".tsx", "/index.ts", "/index.tsx"},
	model.LangVue:        {"", ".vue", ".ts", ".js"},
	model.LangSvelte:     {"", ".svelte", ".ts", ".js"},
	model.LangPython:     {"", ".py", "/__init__.py"},
	model.LangRust:       {"", ".rs", "/mod.rs"},
	model.LangGo:         {"", ".go"},
	model.LangDart:       {"", ".dart"},
	model.LangCSS:        {"", ".css", ".scss"},
}

// Index is the set of every file known to the scan, keyed by its
// canonical (root-relative, slash-separated) path. Resolvers use it to
// turn a best-guess module path into an actual project file.
type Index struct {
	byPath map[string]*model.FileAnalysis
}

// BuildIndex indexes files by their canonical path.
func BuildIndex(files []*model.FileAnalysis) *Index {
	idx := &Index{byPath: make(map[string]*model.FileAnalysis, len(files))}
	for _, fa := range files {
		idx.byPath[toSlash(fa.Path)] = fa
	}
	return idx
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// Lookup resolves candidate (an extension-less module path) against
// idx for lang, applying candidateExtensions and the spec.md §4.4
// tie-break rule when more than one suffix form exists in the project.
func (idx *Index) Lookup(candidate string, lang model.Language) (string, bool) {
	candidate = path.Clean(toSlash(candidate))

	var matches []string
	for _, suffix := range candidateExtensions[lang] {
		p := candidate + suffix
		if _, ok := idx.byPath[p]; ok {
			matches = append(matches, p)
		}
	}
	if len(matches) == 0 {
		return "", false
	}
	return idx.tieBreak(candidate, matches), true
}

// Exists reports whether p names a known project file exactly.
func (idx *Index) Exists(p string) bool {
	_, ok := idx.byPath[toSlash(p)]
	return ok
}

// tieBreak applies spec.md §4.4's rule once alias expansion (rule 2,
// applied by the caller before Lookup) has already narrowed things to
// a single module path: (1) an exact path match wins outright, (3)
// prefer a non-test file among the remaining extension guesses, (4)
// break further ties by deterministic sort order.
func (idx *Index) tieBreak(candidate string, matches []string) string {
	for _, m := range matches {
		if m == candidate {
			return m
		}
	}

	nonTest := matches[:0:0]
	for _, m := range matches {
		if fa := idx.byPath[m]; fa != nil && !fa.IsTest {
			nonTest = append(nonTest, m)
		}
	}
	if len(nonTest) > 0 {
		matches = nonTest
	}

	sort.Strings(matches)
	return matches[0]
}
