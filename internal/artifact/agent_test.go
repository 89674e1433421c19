package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
)

func TestBuildAgentBundle_ScoresAndRanksQuickWins(t *testing.T) {
	snap := &model.Snapshot{
		Files: make([]*model.FileAnalysis, 3),
		Edges: []model.Edge{
			{From: "a.ts", To: "shared.ts", Kind: model.EdgeImport},
			{From: "b.ts", To: "shared.ts", Kind: model.EdgeImport},
			{From: "a.ts", To: "b.ts", Kind: model.EdgeImport},
		},
	}
	findings := &model.Findings{
		Orphans: []model.Orphan{
			{Kind: "missing_handler", Name: "save_file", Site: model.CallSite{File: "ui.ts", Line: 3}},
			{Kind: "unused_handler", Name: "legacy_cmd", Site: model.CallSite{File: "cmds.rs", Line: 9}},
		},
		DeadParrots: []model.DeadExport{{File: "util.ts", Name: "dead", Line: 1}},
		Cycles:      []model.Cycle{{Files: []string{"a.ts", "b.ts"}}},
	}

	bundle := BuildAgentBundle(snap, findings)

	require.NotNil(t, bundle)
	assert.Equal(t, 3, bundle.Summary.FilesAnalyzed)
	assert.Equal(t, 1, bundle.Summary.MissingHandlers)
	assert.Equal(t, 1, bundle.Summary.UnregisteredHandlers)
	assert.Equal(t, 1, bundle.Summary.CircularCount)
	// 100 - 5(missing) - 2(unused) - 3(cycle) - 1(parrot) = 89
	assert.Equal(t, 89, bundle.Summary.HealthScore)

	require.Len(t, bundle.QuickWins, 4)
	assert.Equal(t, "implement_handler", bundle.QuickWins[0].Action)
	assert.Equal(t, "remove_or_wire_handler", bundle.QuickWins[1].Action)
	assert.Equal(t, "delete_export", bundle.QuickWins[2].Action)
	assert.Equal(t, "break_cycle", bundle.QuickWins[3].Action)

	require.Len(t, bundle.HubFiles, 2)
	assert.Equal(t, "shared.ts", bundle.HubFiles[0].Path)
	assert.Equal(t, 2, bundle.HubFiles[0].IncomingEdges)
	assert.Equal(t, "b.ts", bundle.HubFiles[1].Path)
	assert.Equal(t, 1, bundle.HubFiles[1].IncomingEdges)
}

func TestHealthScore_FloorsAtZero(t *testing.T) {
	s := model.AgentSummary{MissingHandlers: 50}
	assert.Equal(t, 0, healthScore(s, 0, 0))
}

func TestBuildQuickWins_SkipsStructuralCycles(t *testing.T) {
	findings := &model.Findings{
		Cycles: []model.Cycle{{Files: []string{"crate_a"}, Structural: true}},
	}
	wins := buildQuickWins(findings)
	assert.Empty(t, wins)
}
