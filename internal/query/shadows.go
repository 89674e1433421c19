package query

import (
	"sort"

	"github.com/petrarca/loctree/internal/model"
)

// Shadows finds files that import a name and also export a same-named
// local definition, so any same-file reference to that name resolves
// to the local binding rather than the import — the local declaration
// shadows the import (spec.md §6 findings.json "shadows" key).
// Re-export entries are excluded: `export { x } from './y'` rebinds
// x, it doesn't shadow it.
func (e *Engine) Shadows() []model.Shadow {
	var out []model.Shadow

	for _, fa := range e.snap.Files {
		imported := map[string]string{} // local name -> raw specifier it came from
		for _, imp := range fa.Imports {
			if imp.Kind == model.ImportReExportStar || imp.Kind == model.ImportReExportNamed {
				continue
			}
			for _, sym := range imp.Symbols {
				local := sym.Alias
				if local == "" {
					local = sym.Name
				}
				imported[local] = imp.RawSpecifier
			}
		}
		if len(imported) == 0 {
			continue
		}
		for _, exp := range fa.Exports {
			if exp.Kind == model.ExportReExport {
				continue
			}
			if from, ok := imported[exp.Name]; ok {
				out = append(out, model.Shadow{File: fa.Path, Name: exp.Name, ImportedAs: from, Line: exp.Line})
			}
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
