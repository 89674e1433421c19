package resolve

import (
	"path/filepath"

	"golang.org/x/mod/modfile"
	"gopkg.in/yaml.v3"

	"github.com/petrarca/loctree/internal/model"
	"github.com/petrarca/loctree/internal/progress"
	"github.com/petrarca/loctree/internal/provider"
)

// Warning records one ambiguous or failed resolution, surfaced to the
// caller instead of silently dropped — spec.md §4.4: "Log a warning."
type Warning struct {
	File      string
	Specifier string
	Reason    string
}

// Resolver turns every FileAnalysis's raw import specifiers into
// canonical project-relative paths, dispatching to the language's
// algorithm from spec.md §4.4. One Resolver is built per scan and
// reused across every file in it so the tsconfig/module-map caches it
// holds amortize across the whole run.
type Resolver struct {
	idx    *Index
	ts     *TSResolver
	rust   *RustModuleMap
	python *PythonResolver
	golang *GoResolver
	dart   *DartResolver
	prog   *progress.Progress

	Warnings []Warning
}

// New builds a Resolver over files, reading go.mod/pubspec.yaml from p
// rooted at root to establish the Go/Dart resolvers' project identity.
func New(p provider.Provider, root string, files []*model.FileAnalysis, extraPyRoots []string, prog *progress.Progress) *Resolver {
	return &Resolver{
		idx:    BuildIndex(files),
		ts:     NewTSResolver(p, root),
		rust:   BuildRustModuleMap(files),
		python: NewPythonResolver(files, extraPyRoots),
		golang: NewGoResolver(readModulePath(p, root), files),
		dart:   NewDartResolver(readPubspecName(p, root)),
		prog:   prog,
	}
}

// ResolveAll mutates every ImportEntry.ResolvedPath in files in place.
// Unresolved entries are left at their zero value ("not an error" per
// spec.md §4.4) and recorded as a Warning.
func (r *Resolver) ResolveAll(files []*model.FileAnalysis) {
	for _, fa := range files {
		for i := range fa.Imports {
			r.resolveOne(fa, &fa.Imports[i])
		}
	}
}

func (r *Resolver) resolveOne(fa *model.FileAnalysis, entry *model.ImportEntry) {
	var resolved string

	switch fa.Language {
	case model.LangTypeScript, model.LangJavaScript, model.LangVue, model.LangSvelte:
		resolved = r.ts.Resolve(fa.Path, entry.RawSpecifier, r.idx, fa.Language)
	case model.LangRust:
		resolved = r.resolveRust(fa, entry)
	case model.LangPython:
		resolved = r.python.Resolve(fa.Path, entry.RawSpecifier, r.idx)
	case model.LangGo:
		resolved = r.golang.Resolve(entry.RawSpecifier)
	case model.LangDart:
		resolved = r.dart.Resolve(fa.Path, entry.RawSpecifier, r.idx)
	case model.LangCSS:
		resolved = ResolveCSS(fa.Path, entry.RawSpecifier, r.idx)
	}

	if resolved == "" {
		r.warn(fa.Path, entry.RawSpecifier, "unresolved")
		return
	}
	entry.ResolvedPath = resolved
}

func (r *Resolver) resolveRust(fa *model.FileAnalysis, entry *model.ImportEntry) string {
	kind, rest := modulePathFromSpecifier(entry.RawSpecifier)
	modPath := stripBraceGroup(rest)

	switch kind {
	case "super", "self":
		modPath = ResolveRelative(modulePathOf(fa.Path), kind, modPath)
	case "bare":
		return "" // external crate dependency, nothing to resolve to
	}

	if resolved, ok := r.rust.Resolve(modPath); ok {
		return resolved
	}
	return ""
}

func (r *Resolver) warn(file, specifier, reason string) {
	r.Warnings = append(r.Warnings, Warning{File: file, Specifier: specifier, Reason: reason})
	if r.prog != nil {
		r.prog.Info("unresolved import: " + file + " -> " + specifier + " (" + reason + ")")
	}
}

// readModulePath reads the project's own module path out of its
// go.mod, using golang.org/x/mod/modfile's lax parser so an otherwise
// malformed or newer-than-we-know go.mod still yields a module path
// instead of failing closed.
func readModulePath(p provider.Provider, root string) string {
	data, err := p.ReadFile(filepath.Join(root, "go.mod"))
	if err != nil {
		return ""
	}
	f, err := modfile.ParseLax("go.mod", data, nil)
	if err != nil || f.Module == nil {
		return ""
	}
	return f.Module.Mod.Path
}

type pubspecFile struct {
	Name string `yaml:"name"`
}

func readPubspecName(p provider.Provider, root string) string {
	data, err := p.ReadFile(filepath.Join(root, "pubspec.yaml"))
	if err != nil {
		return ""
	}
	var ps pubspecFile
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return ""
	}
	return ps.Name
}
