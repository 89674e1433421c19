package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// Coverage implements spec.md §4.7.9: cross-reference the Tauri
// bridges and every export against the test-file partition
// (FileAnalysis.IsTest) to surface untested production surface.
func (e *Engine) Coverage() []model.CoverageIssue {
	var out []model.CoverageIssue
	out = append(out, e.commandCoverage()...)
	out = append(out, e.eventCoverage()...)
	out = append(out, e.exportCoverage()...)

	sort.Slice(out, func(i, j int) bool {
		if out[i].Severity != out[j].Severity {
			return severityRank(out[i].Severity) < severityRank(out[j].Severity)
		}
		return out[i].Target < out[j].Target
	})
	return out
}

func severityRank(s model.CoverageSeverity) int {
	switch s {
	case model.CoverageCritical:
		return 0
	case model.CoverageHigh:
		return 1
	default:
		return 2
	}
}

// commandCoverage flags a live (non-unused_handler) CommandBridge that
// no test file ever invokes or imports its handler from.
func (e *Engine) commandCoverage() []model.CoverageIssue {
	var out []model.CoverageIssue
	for _, b := range e.snap.CommandBridges {
		if b.Status == model.BridgeUnusedHandler || b.HandlerFile == "" {
			continue
		}
		if e.testExercisesHandler(b) {
			continue
		}
		out = append(out, model.CoverageIssue{
			Severity: model.CoverageCritical,
			Kind:     "untested_bridge",
			Target:   b.Name,
			Detail:   "no test imports or invokes handler at " + b.HandlerFile,
		})
	}
	return out
}

func (e *Engine) testExercisesHandler(b model.CommandBridge) bool {
	for _, site := range b.CallSites {
		if fa := e.byPath[site.File]; fa != nil && fa.IsTest {
			return true
		}
	}
	for _, fa := range e.snap.Files {
		if !fa.IsTest {
			continue
		}
		for _, imp := range fa.Imports {
			if imp.ResolvedPath == b.HandlerFile {
				return true
			}
		}
	}
	return false
}

// eventCoverage flags an EventBridge emitted in production with no
// listener reachable from a test file.
func (e *Engine) eventCoverage() []model.CoverageIssue {
	var out []model.CoverageIssue
	for _, b := range e.snap.EventBridges {
		if len(b.EmitSites) == 0 {
			continue
		}
		listenedInTest := false
		for _, site := range b.ListenSites {
			if fa := e.byPath[site.File]; fa != nil && fa.IsTest {
				listenedInTest = true
				break
			}
		}
		if !listenedInTest {
			out = append(out, model.CoverageIssue{
				Severity: model.CoverageHigh,
				Kind:     "unlistened_emit",
				Target:   b.Name,
				Detail:   "event emitted but no test listens for it",
			})
		}
	}
	return out
}

// exportCoverage flags a live (non-dead) export that no test file
// imports, independent of command/event bridges.
func (e *Engine) exportCoverage() []model.CoverageIssue {
	importers := e.importerIndex()
	var out []model.CoverageIssue
	for _, fa := range e.snap.Files {
		if fa.IsTest || fa.IsGenerated {
			continue
		}
		for _, exp := range fa.Exports {
			if exp.Kind == model.ExportReExport || exp.Name == "" {
				continue
			}
			members := importers[fa.Path+"\x00"+exp.Name]
			if len(members) == 0 {
				continue // already dead; not a coverage gap, a dead-export finding
			}
			testImported := false
			for importer := range members {
				if target := e.byPath[importer]; target != nil && target.IsTest {
					testImported = true
					break
				}
			}
			if !testImported {
				out = append(out, model.CoverageIssue{
					Severity: model.CoverageMedium,
					Kind:     "untested_export",
					Target:   fa.Path + "#" + exp.Name,
					Detail:   "exported but never imported by a test file",
				})
			}
		}
	}
	return out
}
