// Package graph assembles the cross-file edge list and indices
// (spec.md §4.5) from already-extracted, already-resolved FileAnalysis
// records: the import/re-export edge list, the export and symbol name
// indices, and the Tauri command/event bridges. There is no teacher or
// pack analogue for cross-file graph assembly; the map-of-maps
// registry shape is grounded on the teacher's own
// internal/scanner/component_registry.go (ComponentRegistry: a
// Register step that fans out per detector, then a resolve step that
// walks the registered set) — here the "detectors" are the
// already-computed per-file command/event sites, simply grouped and
// indexed instead of walked component-tree children.
package graph

import (
	"sort"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// Result bundles everything the Graph Builder stage produces.
type Result struct {
	Edges          []model.Edge
	ExportIndex    map[string][]model.ExportRef
	SymbolIndex    map[string][]model.SymbolRef
	CommandBridges []model.CommandBridge
	EventBridges   []model.EventBridge
}

// Build assembles a Result from files. Imports must already carry a
// ResolvedPath where resolvable (internal/resolve's job); exports and
// symbols are taken as extracted.
func Build(files []*model.FileAnalysis) *Result {
	index := fileIndex(files)
	resolveDynamicNames(files, index)

	r := &Result{
		ExportIndex: map[string][]model.ExportRef{},
		SymbolIndex: map[string][]model.SymbolRef{},
	}
	for _, fa := range files {
		addEdges(r, fa)
		addExportRefs(r, fa)
		addSymbolRefs(r, fa)
	}
	model.SortEdges(r.Edges)
	sortIndices(r)

	r.CommandBridges = buildCommandBridges(files)
	r.EventBridges = buildEventBridges(files)
	return r
}

func fileIndex(files []*model.FileAnalysis) map[string]*model.FileAnalysis {
	idx := make(map[string]*model.FileAnalysis, len(files))
	for _, fa := range files {
		idx[fa.Path] = fa
	}
	return idx
}

func addEdges(r *Result, fa *model.FileAnalysis) {
	for _, imp := range fa.Imports {
		if imp.ResolvedPath == "" {
			continue
		}
		kind := model.EdgeImport
		if imp.Kind == model.ImportReExportStar || imp.Kind == model.ImportReExportNamed {
			kind = model.EdgeReExport
		}
		r.Edges = append(r.Edges, model.Edge{From: fa.Path, To: imp.ResolvedPath, Kind: kind})
	}
}

func addExportRefs(r *Result, fa *model.FileAnalysis) {
	for _, exp := range fa.Exports {
		r.ExportIndex[exp.Name] = append(r.ExportIndex[exp.Name], model.ExportRef{
			File: fa.Path, Line: exp.Line, Kind: exp.Kind,
		})
	}
}

func addSymbolRefs(r *Result, fa *model.FileAnalysis) {
	for _, sym := range fa.Symbols {
		r.SymbolIndex[sym.Name] = append(r.SymbolIndex[sym.Name], model.SymbolRef{
			File: fa.Path, Line: sym.Line, Role: sym.Role,
		})
	}
}

func sortIndices(r *Result) {
	byFileLine := func(refs []model.ExportRef) {
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].File != refs[j].File {
				return refs[i].File < refs[j].File
			}
			return refs[i].Line < refs[j].Line
		})
	}
	for _, refs := range r.ExportIndex {
		byFileLine(refs)
	}
	for _, refs := range r.SymbolIndex {
		sort.Slice(refs, func(i, j int) bool {
			if refs[i].File != refs[j].File {
				return refs[i].File < refs[j].File
			}
			return refs[i].Line < refs[j].Line
		})
	}
}

// resolveDynamicNames implements spec.md §9's constant-resolution
// pass: a command/event name recorded from a bare identifier argument
// (CommandCall/EventEmit/EventListen.Dynamic == true and Name holding
// the identifier's own text) is replaced by that identifier's literal
// value when it names a same-file top-level const or an imported one;
// anything left unresolved stays a dynamic call site, never a guess.
func resolveDynamicNames(files []*model.FileAnalysis, index map[string]*model.FileAnalysis) {
	for _, fa := range files {
		for i := range fa.CommandCalls {
			resolveDynamicName(&fa.CommandCalls[i].Name, &fa.CommandCalls[i].Dynamic, fa, index)
		}
		for i := range fa.EventEmits {
			resolveDynamicName(&fa.EventEmits[i].Name, &fa.EventEmits[i].Dynamic, fa, index)
		}
		for i := range fa.EventListens {
			resolveDynamicName(&fa.EventListens[i].Name, &fa.EventListens[i].Dynamic, fa, index)
		}
	}
}

func resolveDynamicName(name *string, dynamic *bool, fa *model.FileAnalysis, index map[string]*model.FileAnalysis) {
	if !*dynamic || *name == "" {
		return
	}
	if lit, ok := fa.TopLevelConsts[*name]; ok {
		*name, *dynamic = lit, false
		return
	}

	for _, imp := range fa.Imports {
		if imp.ResolvedPath == "" {
			continue
		}
		target, ok := index[imp.ResolvedPath]
		if !ok {
			continue
		}
		for _, sym := range imp.Symbols {
			binding := sym.Alias
			if binding == "" {
				binding = sym.Name
			}
			if binding != *name {
				continue
			}
			if lit, ok := target.TopLevelConsts[sym.Name]; ok {
				*name, *dynamic = lit, false
				return
			}
		}
	}
}

// normalizeCommandName lower-cases name and rewrites camelCase to
// snake_case, so `loginWithPin` and `login_with_pin` collapse to the
// same bridge key (spec.md §4.5).
func normalizeCommandName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
