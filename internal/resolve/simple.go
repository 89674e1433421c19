package resolve

import (
	"path"
	"sort"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// GoResolver resolves Go import paths against the project's own
// module path (read from go.mod), leaving third-party imports
// unresolved — spec.md §4.4's "straightforward path resolution" for Go.
type GoResolver struct {
	modulePath string
	dirFiles   map[string][]string
}

// NewGoResolver indexes every Go file by its containing directory.
func NewGoResolver(modulePath string, files []*model.FileAnalysis) *GoResolver {
	r := &GoResolver{modulePath: modulePath, dirFiles: map[string][]string{}}
	for _, fa := range files {
		if fa.Language != model.LangGo {
			continue
		}
		dir := path.Dir(toSlash(fa.Path))
		r.dirFiles[dir] = append(r.dirFiles[dir], fa.Path)
	}
	for dir := range r.dirFiles {
		sort.Strings(r.dirFiles[dir])
	}
	return r
}

// Resolve turns a Go import path into one representative file from
// the imported package's directory. A Go import binds a whole
// package, not one file, so the first file in deterministic sort
// order stands in for it (tie-break rule 4).
func (r *GoResolver) Resolve(specifier string) string {
	if r.modulePath == "" || !strings.HasPrefix(specifier, r.modulePath) {
		return ""
	}
	dir := strings.TrimPrefix(strings.TrimPrefix(specifier, r.modulePath), "/")
	if dir == "" {
		dir = "."
	}
	files := r.dirFiles[dir]
	if len(files) == 0 {
		return ""
	}
	return files[0]
}

// DartResolver resolves Dart relative imports/exports/parts and
// "package:<name>/..." specifiers against the project's own pubspec
// package name (spec.md §4.4: "straightforward path resolution").
type DartResolver struct {
	packageName string
}

// NewDartResolver builds a Dart resolver for the project named
// packageName in its pubspec.yaml.
func NewDartResolver(packageName string) *DartResolver {
	return &DartResolver{packageName: packageName}
}

// Resolve turns a Dart import/export/part specifier written in
// fromFile into a canonical path.
func (r *DartResolver) Resolve(fromFile, specifier string, idx *Index) string {
	switch {
	case strings.HasPrefix(specifier, "dart:"):
		return "" // SDK built-in, never project-local
	case strings.HasPrefix(specifier, "package:"):
		pkg, sub, found := strings.Cut(strings.TrimPrefix(specifier, "package:"), "/")
		if !found || pkg != r.packageName {
			return "" // external package dependency
		}
		if resolved, ok := idx.Lookup(path.Join("lib", sub), model.LangDart); ok {
			return resolved
		}
		return ""
	default:
		candidate := path.Join(path.Dir(toSlash(fromFile)), specifier)
		if resolved, ok := idx.Lookup(candidate, model.LangDart); ok {
			return resolved
		}
		return ""
	}
}

// ResolveCSS resolves a CSS @import specifier written in fromFile
// against idx, ignoring remote URLs.
func ResolveCSS(fromFile, specifier string, idx *Index) string {
	if strings.HasPrefix(specifier, "http://") || strings.HasPrefix(specifier, "https://") {
		return ""
	}
	candidate := path.Join(path.Dir(toSlash(fromFile)), specifier)
	if resolved, ok := idx.Lookup(candidate, model.LangCSS); ok {
		return resolved
	}
	return ""
}
