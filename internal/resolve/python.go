package resolve

import (
	"path"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// PythonResolver resolves Python import specifiers against package
// roots: the project root, a detected src/ layout, and any
// user-specified extra roots (spec.md §4.4: "roots computed from
// pyproject.toml / setup.py ... or user-specified extra roots").
type PythonResolver struct {
	roots []string
}

// NewPythonResolver builds a resolver for files. extraRoots comes from
// project configuration (.loctree.yml); pyproject.toml/setup.py are
// not read — a src/ layout is recognized when any Python file lives
// under src/, so the project's own directory structure is the ground
// truth for where packages live.
func NewPythonResolver(files []*model.FileAnalysis, extraRoots []string) *PythonResolver {
	roots := append([]string{}, extraRoots...)
	roots = append(roots, "")
	if hasSrcLayout(files) {
		roots = append(roots, "src")
	}
	return &PythonResolver{roots: roots}
}

func hasSrcLayout(files []*model.FileAnalysis) bool {
	for _, fa := range files {
		if fa.Language == model.LangPython && strings.HasPrefix(toSlash(fa.Path), "src/") {
			return true
		}
	}
	return false
}

// Resolve turns a dotted module specifier (with any leading dots for
// a relative import) written in fromFile into a canonical path.
func (r *PythonResolver) Resolve(fromFile, specifier string, idx *Index) string {
	if strings.HasPrefix(specifier, ".") {
		return r.resolveRelative(fromFile, specifier, idx)
	}

	rel := strings.ReplaceAll(specifier, ".", "/")
	for _, root := range r.roots {
		if resolved, ok := idx.Lookup(path.Join(root, rel), model.LangPython); ok {
			return resolved
		}
	}
	return ""
}

func (r *PythonResolver) resolveRelative(fromFile, specifier string, idx *Index) string {
	dots := 0
	for dots < len(specifier) && specifier[dots] == '.' {
		dots++
	}
	rest := specifier[dots:]

	dir := path.Dir(toSlash(fromFile))
	for i := 1; i < dots; i++ {
		dir = path.Dir(dir)
	}

	candidate := dir
	if rest != "" {
		candidate = path.Join(dir, strings.ReplaceAll(rest, ".", "/"))
	}
	if resolved, ok := idx.Lookup(candidate, model.LangPython); ok {
		return resolved
	}
	return ""
}
