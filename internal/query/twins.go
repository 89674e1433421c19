package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// Twins implements spec.md §4.7.3: group ExportEntries by name across
// the whole snapshot; any group spanning more than one file is a twin.
// Re-export entries and anonymous default exports are excluded so a
// barrel file re-exporting the same symbol from ten places doesn't
// register as ten twins.
func (e *Engine) Twins() []model.TwinGroup {
	importers := e.importerIndex()

	type member struct {
		file string
		line int
	}
	byName := map[string][]member{}
	for _, fa := range e.snap.Files {
		for _, exp := range fa.Exports {
			if exp.Kind == model.ExportReExport || exp.Name == "default" || exp.Name == "" {
				continue
			}
			byName[exp.Name] = append(byName[exp.Name], member{file: fa.Path, line: exp.Line})
		}
	}

	var groups []model.TwinGroup
	for name, members := range byName {
		// De-dup members landing on the same file (re-declared within
		// one file is not a cross-file twin).
		seen := map[string]bool{}
		var files []member
		for _, m := range members {
			if !seen[m.file] {
				seen[m.file] = true
				files = append(files, m)
			}
		}
		if len(files) < 2 {
			continue
		}
		sort.Slice(files, func(i, j int) bool { return files[i].file < files[j].file })

		group := model.TwinGroup{Name: name}
		best, bestCount := -1, -1
		for i, m := range files {
			count := importerCount(importers, m.file, name)
			group.Members = append(group.Members, model.TwinMember{
				File: m.file, Line: m.line, ImporterCount: count,
			})
			if count > bestCount {
				bestCount, best = count, i
			}
		}
		if best >= 0 {
			group.Members[best].Canonical = true
		}
		groups = append(groups, group)
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}
