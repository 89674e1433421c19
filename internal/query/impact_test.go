package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petrarca/loctree/internal/model"
)

// TestImpact_DirectAndTransitiveConsumers covers spec.md §4.7.7: direct
// importers of the target plus every file reachable transitively
// through the reverse-import graph, partitioned correctly.
func TestImpact_DirectAndTransitiveConsumers(t *testing.T) {
	snap := &model.Snapshot{
		Files: []*model.FileAnalysis{
			{Path: "src/core.ts"}, {Path: "src/mid.ts"}, {Path: "src/top.ts"}, {Path: "src/sibling.ts"},
		},
		Edges: []model.Edge{
			{From: "src/mid.ts", To: "src/core.ts", Kind: model.EdgeImport},
			{From: "src/sibling.ts", To: "src/core.ts", Kind: model.EdgeImport},
			{From: "src/top.ts", To: "src/mid.ts", Kind: model.EdgeImport},
		},
	}

	impact := newEngine(snap).Impact("src/core.ts")
	require := assert.New(t)
	require.Equal("src/core.ts", impact.Target)
	require.ElementsMatch([]string{"src/mid.ts", "src/sibling.ts"}, impact.DirectConsumers)
	require.ElementsMatch([]string{"src/top.ts"}, impact.TransitiveConsumers)
	require.Equal(model.RiskLow, impact.Risk, "2 direct + 1 transitive is below every default threshold")
}

// TestImpact_RiskTierThresholds covers the high/medium/low boundaries
// from config.DefaultSettings (direct>=10 or transitive>=50 is high;
// direct>=5 or transitive>=20 is medium).
func TestImpact_RiskTierThresholds(t *testing.T) {
	files := []*model.FileAnalysis{{Path: "core.ts"}}
	var edges []model.Edge
	for i := 0; i < 10; i++ {
		dep := "direct" + string(rune('a'+i)) + ".ts"
		files = append(files, &model.FileAnalysis{Path: dep})
		edges = append(edges, model.Edge{From: dep, To: "core.ts", Kind: model.EdgeImport})
	}
	snap := &model.Snapshot{Files: files, Edges: edges}

	impact := newEngine(snap).Impact("core.ts")
	assert.Equal(t, model.RiskHigh, impact.Risk, "10 direct consumers meets ImpactHighDirect")
}

// TestImpact_NoConsumers covers a file nothing imports.
func TestImpact_NoConsumers(t *testing.T) {
	snap := &model.Snapshot{Files: []*model.FileAnalysis{{Path: "orphan.ts"}}}
	impact := newEngine(snap).Impact("orphan.ts")
	require := assert.New(t)
	require.Empty(impact.DirectConsumers)
	require.Empty(impact.TransitiveConsumers)
	require.Equal(model.RiskLow, impact.Risk)
}
