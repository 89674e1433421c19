package query

import (
	"sort"
	"strings"

	"github.com/petrarca/loctree/internal/model"
)

// DeadExports implements spec.md §4.7.1. An export is dead when none
// of: a cross-file importer, a same-project SymbolOccurrence{role:
// use}, canonical-handler status in a live CommandBridge, or (library
// mode) __all__/DynamicExport membership, account for it. The defining
// file must be neither generated nor (unless include_tests is set) a
// test file — test files still fully participate in resolution/graph
// edges (and so still count as importers/evidence for exports defined
// elsewhere); include_tests only gates whether a test file's own
// exports are reported as findings, per spec.md §6. An export imported
// only by test files is still reported dead at medium confidence
// rather than exonerated outright (hasLiveImporter below) — only a
// non-test importer counts as full evidence of use.
func (e *Engine) DeadExports() []model.DeadExport {
	importers := e.importerIndex()
	usedNames := e.usedSymbolNames()
	handlerNames := e.liveHandlerNames()

	var out []model.DeadExport
	for _, fa := range e.snap.Files {
		if fa.IsGenerated {
			continue
		}
		if fa.IsTest && !e.settings.IncludeTests {
			continue
		}
		for _, exp := range fa.Exports {
			if exp.Kind == model.ExportReExport {
				continue
			}
			if e.hasLiveImporter(importers, fa.Path, exp.Name) {
				continue
			}
			if usedNames[exp.Name] {
				continue
			}
			if handlerNames[handlerKey(fa.Path, exp.Name)] {
				continue
			}
			if e.settings.LibraryMode && inPublicAPI(fa, exp.Name) {
				continue
			}
			if e.settings.LibraryMode && fa.DynamicExport {
				continue
			}

			conf := e.confidence(fa, exp, importers)
			if !passesConfidence(conf, e.settings.Confidence) {
				continue
			}
			out = append(out, model.DeadExport{
				File: fa.Path, Name: exp.Name, Kind: exp.Kind, Line: exp.Line, Confidence: conf,
			})
		}
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// DeadParrots narrows dead (the already-computed DeadExports list) to
// strict zero-importer cases (spec.md §4.7.4): high confidence only,
// since medium/low already signal some non-zero evidence of use.
func (e *Engine) DeadParrots(dead []model.DeadExport) []model.DeadExport {
	var out []model.DeadExport
	for _, d := range dead {
		if d.Confidence == model.ConfidenceHigh {
			out = append(out, d)
		}
	}
	return out
}

// usedSymbolNames is every name appearing as a SymbolOccurrence with
// role=use anywhere in the project — spec.md §4.7.1's "(including f
// itself — catches same-file generic-parameter usage etc.)".
func (e *Engine) usedSymbolNames() map[string]bool {
	used := map[string]bool{}
	for _, fa := range e.snap.Files {
		for _, sym := range fa.Symbols {
			if sym.Role == model.RoleUse {
				used[sym.Name] = true
			}
		}
	}
	return used
}

// liveHandlerNames is every (file, name) pair that is the canonical
// handler of a CommandBridge whose status isn't unused_handler.
func (e *Engine) liveHandlerNames() map[string]bool {
	out := map[string]bool{}
	for _, b := range e.snap.CommandBridges {
		if b.Status == model.BridgeUnusedHandler || b.HandlerFile == "" {
			continue
		}
		out[handlerKeyByNormalizedMatch(e.byPath[b.HandlerFile], b.Name, b.HandlerLine)] = true
	}
	return out
}

// hasLiveImporter reports whether any importer of (file, name) is a
// non-test file — the only case that fully exonerates an export.
// Test-only importers still leave it eligible for the confidence scale
// ("medium: appears only in test-file imports", spec.md §4.7.1) rather
// than skipping it outright, matching DeadParrots' own assumption that
// medium/low confidence already signals some non-zero evidence of use.
func (e *Engine) hasLiveImporter(importers map[string]map[string]bool, file, name string) bool {
	for importer := range importers[file+"\x00"+name] {
		if target := e.byPath[importer]; target == nil || !target.IsTest {
			return true
		}
	}
	return false
}

func handlerKey(file, name string) string { return file + "\x00" + name }

// handlerKeyByNormalizedMatch finds the ExportEntry at handlerLine (the
// Rust #[tauri::command] function line the bridge recorded) and builds
// its key, so liveHandlerNames doesn't need to re-derive the
// normalized<->raw name mapping graph.Build already resolved.
func handlerKeyByNormalizedMatch(fa *model.FileAnalysis, _ string, handlerLine int) string {
	if fa == nil {
		return ""
	}
	for _, exp := range fa.Exports {
		if exp.Line == handlerLine {
			return handlerKey(fa.Path, exp.Name)
		}
	}
	return ""
}

func inPublicAPI(fa *model.FileAnalysis, name string) bool {
	for _, n := range fa.PublicAPI {
		if n == name {
			return true
		}
	}
	return false
}

// confidence implements spec.md §4.7.1's three-tier scale.
func (e *Engine) confidence(fa *model.FileAnalysis, exp model.ExportEntry, importers map[string]map[string]bool) model.Confidence {
	members := importers[fa.Path+"\x00"+exp.Name]
	onlyTestImporters := len(members) > 0
	for importer := range members {
		if target := e.byPath[importer]; target == nil || !target.IsTest {
			onlyTestImporters = false
			break
		}
	}
	if onlyTestImporters {
		return model.ConfidenceMedium
	}
	if fa.UsesWeakRegistry || ambiguousBarrelPath(fa.Path) {
		return model.ConfidenceLow
	}
	return model.ConfidenceHigh
}

// ambiguousBarrelPath flags a defining file whose own name suggests an
// aggregation point ("index"/"barrel") rather than original source —
// resolving through it is exactly the "ambiguous re-export path" case
// spec.md §4.7.1 calls out for low confidence.
func ambiguousBarrelPath(path string) bool {
	base := path
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		base = path[i+1:]
	}
	return strings.HasPrefix(base, "index.") || strings.HasPrefix(base, "barrel.")
}

func passesConfidence(conf model.Confidence, filter string) bool {
	switch filter {
	case "high":
		return conf == model.ConfidenceHigh
	case "medium":
		return conf == model.ConfidenceHigh || conf == model.ConfidenceMedium
	default: // "low" or unset: report everything
		return true
	}
}
