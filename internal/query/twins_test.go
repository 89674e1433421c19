package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petrarca/loctree/internal/model"
)

// TestTwins_S6 is spec.md's literal scenario: two files both export a
// value named Button. One twin group of size 2 is expected, each
// member annotated with its importer count; the file with more
// importers is flagged canonical.
func TestTwins_S6(t *testing.T) {
	snap := &model.Snapshot{
		Files: []*model.FileAnalysis{
			{
				Path:    "src/components/Button.tsx",
				Exports: []model.ExportEntry{{Name: "Button", Kind: model.ExportValue, Line: 5}},
			},
			{
				Path:    "src/legacy/Button.tsx",
				Exports: []model.ExportEntry{{Name: "Button", Kind: model.ExportValue, Line: 3}},
			},
			{
				Path: "src/app.tsx",
				Imports: []model.ImportEntry{
					{RawSpecifier: "./components/Button", ResolvedPath: "src/components/Button.tsx", Kind: model.ImportStatic, Symbols: []model.ImportedSymbol{{Name: "Button"}}},
				},
			},
		},
	}

	twins := newEngine(snap).Twins()
	require := assert.New(t)
	if !require.Len(twins, 1) {
		return
	}
	group := twins[0]
	require.Equal("Button", group.Name)
	require.Len(group.Members, 2)

	byFile := map[string]model.TwinMember{}
	canonicalCount := 0
	for _, m := range group.Members {
		byFile[m.File] = m
		if m.Canonical {
			canonicalCount++
		}
	}
	require.Equal(1, byFile["src/components/Button.tsx"].ImporterCount)
	require.Equal(0, byFile["src/legacy/Button.tsx"].ImporterCount)
	require.Equal(1, canonicalCount, "exactly one member is flagged canonical")
	assert.True(t, byFile["src/components/Button.tsx"].Canonical)
}

// TestTwins_ExcludesReExportsAndDefault covers the exclusions spec.md
// §4.7.3 names explicitly: re-export entries and the anonymous
// "default" export never register as twins.
func TestTwins_ExcludesReExportsAndDefault(t *testing.T) {
	snap := &model.Snapshot{
		Files: []*model.FileAnalysis{
			{Path: "a.ts", Exports: []model.ExportEntry{{Name: "helper", Kind: model.ExportReExport}, {Name: "default", Kind: model.ExportValue}}},
			{Path: "b.ts", Exports: []model.ExportEntry{{Name: "helper", Kind: model.ExportReExport}, {Name: "default", Kind: model.ExportValue}}},
		},
	}
	twins := newEngine(snap).Twins()
	assert.Empty(t, twins)
}

// TestTwins_SameFileRedeclarationIsNotATwin covers a name appearing
// twice within one file: a twin is cross-file by definition.
func TestTwins_SameFileRedeclarationIsNotATwin(t *testing.T) {
	snap := &model.Snapshot{
		Files: []*model.FileAnalysis{
			{Path: "a.ts", Exports: []model.ExportEntry{
				{Name: "util", Kind: model.ExportFunction, Line: 1},
				{Name: "util", Kind: model.ExportFunction, Line: 20},
			}},
		},
	}
	twins := newEngine(snap).Twins()
	assert.Empty(t, twins)
}
