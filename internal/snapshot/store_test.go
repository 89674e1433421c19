package snapshot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
)

func testSnapshot(root string) *model.Snapshot {
	return &model.Snapshot{
		Schema:        "loctree.snapshot/v1",
		SchemaVersion: "1.0.0",
		GeneratedAt:   "2026-01-01T00:00:00Z",
		Root:          root,
		Git:           model.GitIdentity{Branch: "main", Commit: "abc1234"},
		Files:         []*model.FileAnalysis{},
		ExportIndex:   map[string][]model.ExportRef{},
		SymbolIndex:   map[string][]model.SymbolRef{},
	}
}

func TestStore_SaveThenLoadRoundTrips(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "")
	snap := testSnapshot(root)

	wrote, err := store.Save(snap, true)
	require.NoError(t, err)
	assert.True(t, wrote)

	loaded, err := store.Load(snap.Git)
	require.NoError(t, err)
	assert.Equal(t, snap.Root, loaded.Root)
	assert.Equal(t, snap.Git, loaded.Git)
}

func TestStore_SaveIsAtomicAndLandsUnderGitIdentity(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "")
	snap := testSnapshot(root)

	_, err := store.Save(snap, false)
	require.NoError(t, err)

	path := filepath.Join(root, ".loctree", "main@abc1234", "snapshot.json")
	_, err = os.Stat(path)
	assert.NoError(t, err)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	for _, e := range entries {
		assert.Equal(t, "snapshot.json", e.Name(),
			"no leftover temp file should survive a successful save, found %s", e.Name())
	}
}

func TestStore_SaveSkipsWriteWhenContentIdentical(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "")
	snap := testSnapshot(root)

	wrote, err := store.Save(snap, true)
	require.NoError(t, err)
	require.True(t, wrote)

	wrote, err = store.Save(snap, true)
	require.NoError(t, err)
	assert.False(t, wrote, "an unchanged snapshot should not be rewritten")
}

func TestStore_ExistsReflectsPriorSave(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "")
	id := model.GitIdentity{Branch: "main", Commit: "abc1234"}

	assert.False(t, store.Exists(id))

	_, err := store.Save(testSnapshot(root), true)
	require.NoError(t, err)
	assert.True(t, store.Exists(id))
}

func TestStore_DifferentGitIdentitiesUseSeparateDirectories(t *testing.T) {
	root := t.TempDir()
	store := NewStore(root, "")

	snapMain := testSnapshot(root)
	snapMain.Git = model.GitIdentity{Branch: "main", Commit: "abc1234"}
	_, err := store.Save(snapMain, true)
	require.NoError(t, err)

	snapFeature := testSnapshot(root)
	snapFeature.Git = model.GitIdentity{Branch: "feature", Commit: "def5678"}
	_, err = store.Save(snapFeature, true)
	require.NoError(t, err)

	assert.NotEqual(t, store.Dir(snapMain.Git), store.Dir(snapFeature.Git))
	assert.True(t, store.Exists(snapMain.Git))
	assert.True(t, store.Exists(snapFeature.Git))
}

func TestNewStore_OverrideWinsOverRoot(t *testing.T) {
	root := t.TempDir()
	override := t.TempDir()

	store := NewStore(root, override)
	id := model.GitIdentity{Branch: "main", Commit: "abc1234"}

	assert.Equal(t, filepath.Join(override, ".loctree", "main@abc1234"), store.Dir(id))
}
