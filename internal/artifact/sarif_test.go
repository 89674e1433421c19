package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
)

func TestBuildSARIF_IncludesOneResultPerFinding(t *testing.T) {
	findings := &model.Findings{
		Twins: []model.TwinGroup{{
			Name: "formatDate",
			Members: []model.TwinMember{
				{File: "src/a.ts", Line: 3},
				{File: "src/b.ts", Line: 9},
			},
		}},
		Orphans: []model.Orphan{
			{Kind: "missing_handler", Name: "save_file", Site: model.CallSite{File: "src/ui.ts", Line: 12}},
			{Kind: "unused_handler", Name: "legacy_cmd", Site: model.CallSite{File: "src-tauri/cmds.rs", Line: 40}},
			{Kind: "orphan_emit", Name: "file-saved", Site: model.CallSite{File: "src-tauri/cmds.rs", Line: 42}},
			{Kind: "orphan_listen", Name: "file-loaded", Site: model.CallSite{File: "src/ui.ts", Line: 20}},
		},
		DeadExports: []model.DeadExport{{File: "src/util.ts", Name: "unused", Line: 5}},
		Cycles:      []model.Cycle{{Files: []string{"src/a.ts", "src/b.ts"}}, {Files: []string{"crate_a"}, Structural: true}},
	}

	sarif := BuildSARIF(&model.Snapshot{}, findings)

	require.Len(t, sarif.Runs, 1)
	results := sarif.Runs[0].Results
	// 2 twin members + 4 orphans + 1 dead export + 2 cycles = 9
	assert.Len(t, results, 9)

	ruleIDs := map[string]int{}
	for _, r := range results {
		ruleIDs[r.RuleID]++
	}
	assert.Equal(t, 2, ruleIDs["duplicate-export"])
	assert.Equal(t, 1, ruleIDs["missing-handler"])
	assert.Equal(t, 1, ruleIDs["unused-handler"])
	assert.Equal(t, 1, ruleIDs["ghost-event"])
	assert.Equal(t, 1, ruleIDs["orphan-listener"])
	assert.Equal(t, 1, ruleIDs["dead-export"])
	assert.Equal(t, 2, ruleIDs["circular-import"])

	assert.Len(t, sarif.Runs[0].Tool.Driver.Rules, len(sarifRules))
	assert.Equal(t, "2.1.0", sarif.Version)
}

func TestBuildSARIF_EmptyFindingsProduceNoResults(t *testing.T) {
	sarif := BuildSARIF(&model.Snapshot{}, &model.Findings{})
	assert.Empty(t, sarif.Runs[0].Results)
}

func TestOpenURL_EscapesSpecialCharacters(t *testing.T) {
	got := openURL("src/a b.ts", 7)
	assert.Contains(t, got, "l=7")
	assert.Contains(t, got, "a+b.ts")
}
