package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
)

func TestBuild_EdgesFromResolvedImports(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path: "src/app.ts",
			Imports: []model.ImportEntry{
				{RawSpecifier: "./utils", ResolvedPath: "src/utils.ts", Kind: model.ImportStatic},
				{RawSpecifier: "react", Kind: model.ImportStatic}, // unresolved, no edge
			},
		},
		{Path: "src/utils.ts"},
	}
	r := Build(files)
	require.Len(t, r.Edges, 1)
	assert.Equal(t, model.Edge{From: "src/app.ts", To: "src/utils.ts", Kind: model.EdgeImport}, r.Edges[0])
}

func TestBuild_ReExportEdgeKind(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path: "src/index.ts",
			Imports: []model.ImportEntry{
				{RawSpecifier: "./button", ResolvedPath: "src/button.ts", Kind: model.ImportReExportStar},
			},
		},
		{Path: "src/button.ts"},
	}
	r := Build(files)
	require.Len(t, r.Edges, 1)
	assert.Equal(t, model.EdgeReExport, r.Edges[0].Kind)
}

func TestBuild_ExportAndSymbolIndices(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path:    "src/a.ts",
			Exports: []model.ExportEntry{{Name: "Widget", Kind: model.ExportFunction, Line: 3}},
			Symbols: []model.SymbolOccurrence{{Name: "Widget", Role: model.RoleDefinition, Line: 3}},
		},
	}
	r := Build(files)
	require.Contains(t, r.ExportIndex, "Widget")
	assert.Equal(t, "src/a.ts", r.ExportIndex["Widget"][0].File)
	require.Contains(t, r.SymbolIndex, "Widget")
}

func TestBuild_CommandBridgeOK(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path:         "src/api.ts",
			CommandCalls: []model.CommandCall{{Name: "loginWithPin", Line: 10}},
		},
		{
			Path:                 "src-tauri/src/main.rs",
			CommandDefs:          []model.CommandHandler{{Name: "login_with_pin", Line: 5}},
			CommandRegistrations: []model.CommandRegistration{{Name: "login_with_pin", Line: 20}},
		},
	}
	r := Build(files)
	require.Len(t, r.CommandBridges, 1)
	b := r.CommandBridges[0]
	assert.Equal(t, "login_with_pin", b.Name)
	assert.Equal(t, model.BridgeOK, b.Status)
	assert.Equal(t, "src-tauri/src/main.rs", b.HandlerFile)
	require.NotNil(t, b.RegistrationSite)
	require.Len(t, b.CallSites, 1)
}

func TestBuild_CommandBridgeMissingHandler(t *testing.T) {
	files := []*model.FileAnalysis{
		{Path: "src/api.ts", CommandCalls: []model.CommandCall{{Name: "save_libraxis_api_key", Line: 7}}},
	}
	r := Build(files)
	require.Len(t, r.CommandBridges, 1)
	assert.Equal(t, model.BridgeMissingHandler, r.CommandBridges[0].Status)
}

func TestBuild_CommandBridgeUnusedHandler(t *testing.T) {
	files := []*model.FileAnalysis{
		{Path: "src-tauri/src/main.rs", CommandDefs: []model.CommandHandler{{Name: "cancel_invitation", Line: 40}}},
	}
	r := Build(files)
	require.Len(t, r.CommandBridges, 1)
	assert.Equal(t, model.BridgeUnusedHandler, r.CommandBridges[0].Status)
}

func TestBuild_EventBridgeConnectedAndOrphans(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path:         "src/events.ts",
			EventEmits:   []model.EventEmit{{Name: "progress-update", Line: 1}, {Name: "unheard", Line: 2}},
			EventListens: []model.EventListen{{Name: "progress-update", Line: 3}, {Name: "ghost-listener", Line: 4}},
		},
	}
	r := Build(files)
	byName := map[string]model.EventBridge{}
	for _, b := range r.EventBridges {
		byName[b.Name] = b
	}
	assert.Equal(t, model.BridgeConnected, byName["progress-update"].Status)
	assert.Equal(t, model.BridgeOrphanEmit, byName["unheard"].Status)
	assert.Equal(t, model.BridgeOrphanListen, byName["ghost-listener"].Status)
}

func TestBuild_DynamicEventNameResolvedViaTopLevelConst(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path:           "src/events.ts",
			TopLevelConsts: map[string]string{"PROGRESS_EVENT": "progress-update"},
			EventEmits:     []model.EventEmit{{Name: "PROGRESS_EVENT", Line: 9, Dynamic: true}},
		},
	}
	r := Build(files)
	require.Len(t, r.EventBridges, 1)
	assert.Equal(t, "progress-update", r.EventBridges[0].Name)
}

func TestBuild_DynamicEventNameResolvedViaImportedConst(t *testing.T) {
	files := []*model.FileAnalysis{
		{
			Path: "src/events.ts",
			Imports: []model.ImportEntry{
				{RawSpecifier: "./constants", ResolvedPath: "src/constants.ts", Symbols: []model.ImportedSymbol{{Name: "PROGRESS_EVENT"}}},
			},
			EventEmits: []model.EventEmit{{Name: "PROGRESS_EVENT", Line: 9, Dynamic: true}},
		},
		{
			Path:           "src/constants.ts",
			TopLevelConsts: map[string]string{"PROGRESS_EVENT": "progress-update"},
		},
	}
	r := Build(files)
	require.Len(t, r.EventBridges, 1)
	assert.Equal(t, "progress-update", r.EventBridges[0].Name)
}

func TestBuild_UnresolvedDynamicEventStaysUngrouped(t *testing.T) {
	files := []*model.FileAnalysis{
		{Path: "src/events.ts", EventEmits: []model.EventEmit{{Name: "computedName", Line: 9, Dynamic: true}}},
	}
	r := Build(files)
	assert.Empty(t, r.EventBridges)
}

func TestNormalizeCommandName(t *testing.T) {
	assert.Equal(t, "login_with_pin", normalizeCommandName("loginWithPin"))
	assert.Equal(t, "login_with_pin", normalizeCommandName("login_with_pin"))
	assert.Equal(t, "greet", normalizeCommandName("greet"))
}
