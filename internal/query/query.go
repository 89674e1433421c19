// Package query implements C7, the Query/Finding Engine: pure
// functions over an already-built model.Snapshot (spec.md §4.7). There
// is no teacher or pack analogue for any of these analyses — the
// teacher reports independent per-file rule violations and never
// builds or queries a cross-file graph — so every algorithm here
// follows spec.md §4.7's description directly. Where the teacher does
// have an applicable idiom (deterministic ordering, a registry-style
// grouping pass), it's reused; see internal/graph's package doc for
// the shared "detect, then group" shape both packages take from
// internal/scanner/component_registry.go.
package query

import (
	"github.com/petrarca/loctree/internal/config"
	"github.com/petrarca/loctree/internal/model"
	"github.com/petrarca/loctree/internal/progress"
)

// Engine answers every spec.md §4.7 query against one Snapshot. It is
// built once per CLI invocation and reused across subcommands (`scan`
// produces the Snapshot; `findings`/`slice`/`impact`/... each build an
// Engine around the loaded or freshly-scanned Snapshot).
type Engine struct {
	snap     *model.Snapshot
	settings *config.Settings
	byPath   map[string]*model.FileAnalysis
	prog     *progress.Progress

	// importEdges/reverseEdges are file-level import adjacency (edges
	// of kind EdgeImport only, per spec.md §4.7.2's "imports only, not
	// re-exports" rule), built once and reused by cycles/slice/impact.
	importEdges  map[string][]string
	reverseEdges map[string][]string
}

// NewEngine builds an Engine over snap. prog is optional: pass the same
// reporter handed to snapshot.Scan to trace findings as Findings()
// produces them; nil disables tracing.
func NewEngine(snap *model.Snapshot, settings *config.Settings, prog *progress.Progress) *Engine {
	if prog == nil {
		prog = progress.New(false, nil)
	}
	e := &Engine{snap: snap, settings: settings, byPath: snap.FileIndex(), prog: prog}
	e.buildAdjacency()
	return e
}

func (e *Engine) buildAdjacency() {
	e.importEdges = map[string][]string{}
	e.reverseEdges = map[string][]string{}
	for _, edge := range e.snap.Edges {
		if edge.Kind != model.EdgeImport {
			continue
		}
		e.importEdges[edge.From] = append(e.importEdges[edge.From], edge.To)
		e.reverseEdges[edge.To] = append(e.reverseEdges[edge.To], edge.From)
	}
}

// Findings runs every finding-producing analysis and bundles the
// result, the shape persisted as findings.json (spec.md §6). Each
// analysis is traced through prog the way the teacher's scanner traces
// per-file rule checks: one QueryCheck before running it, one
// FindingDetected/QueryResult per item it actually produces.
func (e *Engine) Findings() *model.Findings {
	e.prog.QueryCheck("dead_export", []string{"cross-file importers", "same-project symbol use", "live bridge handlers"})
	dead := e.DeadExports()
	for _, d := range dead {
		e.prog.FindingDetected(d.Name, "dead_export", d.File)
		e.prog.QueryResultWithPath("dead_export", true, string(d.Confidence)+" confidence, no importer", d.File)
	}
	parrots := e.DeadParrots(dead)

	e.prog.QueryCheck("cycle", []string{"Tarjan SCC over import edges"})
	cycles := e.Cycles()
	for _, c := range cycles {
		e.prog.FindingDetected(c.Files[0], "cycle", c.Files[0])
		e.prog.QueryResultWithPath("cycle", true, "import cycle among "+joinFiles(c.Files), c.Files[0])
	}

	e.prog.QueryCheck("twins", []string{"same export name, multiple files"})
	twins := e.Twins()
	for _, t := range twins {
		e.prog.FindingDetected(t.Name, "twins", t.Members[0].File)
		e.prog.QueryResultWithPath("twins", true, "exported from multiple files", t.Members[0].File)
	}

	e.prog.QueryCheck("orphan", []string{"bridge call sites without a live counterpart"})
	orphans := e.Orphans()
	for _, o := range orphans {
		e.prog.FindingDetected(o.Name, "orphan", o.Site.File)
		e.prog.QueryResultWithPath("orphan", true, string(o.Kind)+": "+o.Name, o.Site.File)
	}

	e.prog.QueryCheck("shadow", []string{"imported name re-declared locally"})
	shadows := e.Shadows()
	for _, s := range shadows {
		e.prog.FindingDetected(s.Name, "shadow", s.File)
		e.prog.QueryResultWithPath("shadow", true, "local declaration shadows import of "+s.ImportedAs, s.File)
	}

	e.prog.QueryCheck("crowd", []string{"Jaccard overlap across same-pattern files"})
	crowds := e.Crowds("")
	for _, c := range crowds {
		e.prog.FindingDetected(c.Pattern, "crowd", "")
		e.prog.QueryResult("crowd", true, "crowd around pattern "+c.Pattern)
	}

	e.prog.QueryCheck("coverage", []string{"bridges/exports never reached from a test file"})
	coverage := e.Coverage()
	for _, c := range coverage {
		e.prog.FindingDetected(c.Target, "coverage", "")
		e.prog.QueryResult("coverage", true, c.Kind+": "+c.Detail)
	}

	return &model.Findings{
		DeadParrots: parrots,
		DeadExports: dead,
		Cycles:      cycles,
		Twins:       twins,
		Orphans:     orphans,
		Shadows:     shadows,
		Crowds:      crowds,
		Coverage:    coverage,
	}
}

func joinFiles(files []string) string {
	switch len(files) {
	case 0:
		return ""
	case 1:
		return files[0]
	default:
		return files[0] + " -> ... -> " + files[len(files)-1]
	}
}

// resolveExportOrigin follows a chain of `export * from`/`export {n}
// from` re-export edges starting at file, looking for the file that
// actually defines name as an ExportEntry. visited guards against the
// cyclic re-export graphs spec.md §9 calls out (arenas over parent
// pointers) — here a simple seen-set plays the same role at far
// smaller scale.
func (e *Engine) resolveExportOrigin(file, name string) (string, bool) {
	return e.resolveExportOriginVisited(file, name, map[string]bool{})
}

func (e *Engine) resolveExportOriginVisited(file, name string, visited map[string]bool) (string, bool) {
	if visited[file] {
		return "", false
	}
	visited[file] = true

	fa := e.byPath[file]
	if fa == nil {
		return "", false
	}
	for _, exp := range fa.Exports {
		if exp.Name == name {
			return file, true
		}
	}
	for _, imp := range fa.Imports {
		if imp.ResolvedPath == "" {
			continue
		}
		switch imp.Kind {
		case model.ImportReExportStar:
			if origin, ok := e.resolveExportOriginVisited(imp.ResolvedPath, name, visited); ok {
				return origin, true
			}
		case model.ImportReExportNamed:
			for _, sym := range imp.Symbols {
				if sym.Name == name {
					if origin, ok := e.resolveExportOriginVisited(imp.ResolvedPath, name, visited); ok {
						return origin, true
					}
				}
			}
		}
	}
	return "", false
}

// importerIndex maps "<defining file>\x00<export name>" to the sorted
// set of files that import that exact symbol, expanding through
// re-export chains via resolveExportOrigin so a barrel import still
// counts as a use of the original definition. A bare `import * as ns`
// (no bound Symbols) is treated as using every export of its target,
// since without a later property-access analysis there's no way to
// tell which members it actually reaches — spec.md §9's own stance on
// ambiguous signals ("treat any positive signal as sufficient") is
// applied the same way here.
func (e *Engine) importerIndex() map[string]map[string]bool {
	out := map[string]map[string]bool{}
	add := func(file, name, importer string) {
		key := file + "\x00" + name
		if out[key] == nil {
			out[key] = map[string]bool{}
		}
		out[key][importer] = true
	}

	for _, fa := range e.snap.Files {
		for _, imp := range fa.Imports {
			if imp.ResolvedPath == "" {
				continue
			}
			if imp.Kind == model.ImportReExportStar || imp.Kind == model.ImportReExportNamed {
				continue
			}
			if len(imp.Symbols) == 0 {
				if target := e.byPath[imp.ResolvedPath]; target != nil {
					for _, exp := range target.Exports {
						add(imp.ResolvedPath, exp.Name, fa.Path)
					}
				}
				continue
			}
			for _, sym := range imp.Symbols {
				origin, ok := e.resolveExportOrigin(imp.ResolvedPath, sym.Name)
				if !ok {
					origin = imp.ResolvedPath
				}
				add(origin, sym.Name, fa.Path)
			}
		}
	}
	return out
}

// importerCount is a small convenience over importerIndex for callers
// (twins) that only need a count, not the member set.
func importerCount(idx map[string]map[string]bool, file, name string) int {
	return len(idx[file+"\x00"+name])
}
