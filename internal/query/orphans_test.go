package query

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/petrarca/loctree/internal/config"
	"github.com/petrarca/loctree/internal/model"
)

func newEngine(snap *model.Snapshot) *Engine {
	return NewEngine(snap, config.DefaultSettings(), nil)
}

func TestOrphans_FlattensEveryUnhealthyBridge(t *testing.T) {
	snap := &model.Snapshot{
		CommandBridges: []model.CommandBridge{
			{
				Name:      "save_file",
				Status:    model.BridgeMissingHandler,
				CallSites: []model.CallSite{{File: "src/ui.ts", Line: 12}},
			},
			{
				Name:        "legacy_cmd",
				Status:      model.BridgeUnusedHandler,
				HandlerFile: "src-tauri/cmds.rs",
				HandlerLine: 40,
			},
			{
				Name:      "healthy_cmd",
				Status:    model.BridgeConnected,
				CallSites: []model.CallSite{{File: "src/ui.ts", Line: 1}},
			},
		},
		EventBridges: []model.EventBridge{
			{
				Name:      "file-saved",
				Status:    model.BridgeOrphanEmit,
				EmitSites: []model.CallSite{{File: "src-tauri/cmds.rs", Line: 42}},
			},
			{
				Name:        "file-loaded",
				Status:      model.BridgeOrphanListen,
				ListenSites: []model.CallSite{{File: "src/ui.ts", Line: 20}},
			},
		},
	}

	orphans := newEngine(snap).Orphans()

	require := assert.New(t)
	require.Len(orphans, 4)

	kinds := map[string]bool{}
	for _, o := range orphans {
		kinds[o.Kind] = true
	}
	require.True(kinds["missing_handler"])
	require.True(kinds["unused_handler"])
	require.True(kinds["orphan_emit"])
	require.True(kinds["orphan_listen"])

	// sorted by site file, then line
	for i := 1; i < len(orphans); i++ {
		prev, cur := orphans[i-1], orphans[i]
		if prev.Site.File == cur.Site.File {
			require.LessOrEqual(prev.Site.Line, cur.Site.Line)
		} else {
			require.Less(prev.Site.File, cur.Site.File)
		}
	}
}

func TestOrphans_EmptySnapshotYieldsNoOrphans(t *testing.T) {
	orphans := newEngine(&model.Snapshot{}).Orphans()
	assert.Empty(t, orphans)
}
