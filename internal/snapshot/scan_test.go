package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/config"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func statMTime(t *testing.T, root, rel string) time.Time {
	t.Helper()
	info, err := os.Stat(filepath.Join(root, rel))
	require.NoError(t, err)
	return info.ModTime()
}

func newTestSettings(cacheDir string) *config.Settings {
	s := config.DefaultSettings()
	s.CacheDir = cacheDir
	s.IncludeTests = true
	s.FullScan = false // keep mtime reuse on; a fixture outside git gets an empty identity
	return s
}

const exportV1 = "export const X = 1;\n"
const exportV2 = "export const X = 1;\nexport const Y = 2;\n"

func TestScan_FindsFilesAndResolvesImports(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"sample"}`)
	writeFile(t, root, "src/app.ts", "import { helper } from \"./utils\";\nhelper();\n")
	writeFile(t, root, "src/utils.ts", "export function helper() {}\n")

	snap, wrote, err := Scan(root, newTestSettings(root), nil)
	require.NoError(t, err)
	assert.True(t, wrote)
	require.Len(t, snap.Files, 2)

	app := snap.FileByPath("src/app.ts")
	require.NotNil(t, app)
	require.Len(t, app.Imports, 1)
	assert.Equal(t, "src/utils.ts", app.Imports[0].ResolvedPath)
}

// TestScan_ReusesFileAnalysisBasedOnMtime proves reuse keys off mtime,
// not content: the file is overwritten with a second export but its
// mtime is restored to the original, so the rescan must still report
// only the first scan's export.
func TestScan_ReusesFileAnalysisBasedOnMtime(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"sample"}`)
	writeFile(t, root, "src/a.ts", exportV1)
	settings := newTestSettings(root)

	_, _, err := Scan(root, settings, nil)
	require.NoError(t, err)
	original := statMTime(t, root, "src/a.ts")

	writeFile(t, root, "src/a.ts", exportV2)
	require.NoError(t, os.Chtimes(filepath.Join(root, "src/a.ts"), original, original))

	snap, _, err := Scan(root, settings, nil)
	require.NoError(t, err)
	fa := snap.FileByPath("src/a.ts")
	require.NotNil(t, fa)
	assert.Len(t, fa.Exports, 1, "unchanged mtime should reuse the stale first-scan analysis")
}

// TestScan_MtimeChangeTriggersReExtraction is the converse: bumping the
// mtime forward when the content also changes must re-extract.
func TestScan_MtimeChangeTriggersReExtraction(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"sample"}`)
	writeFile(t, root, "src/a.ts", exportV1)
	settings := newTestSettings(root)

	_, _, err := Scan(root, settings, nil)
	require.NoError(t, err)

	writeFile(t, root, "src/a.ts", exportV2)
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(filepath.Join(root, "src/a.ts"), future, future))

	snap, _, err := Scan(root, settings, nil)
	require.NoError(t, err)
	fa := snap.FileByPath("src/a.ts")
	require.NotNil(t, fa)
	assert.Len(t, fa.Exports, 2, "changed mtime must trigger re-extraction")
}

// TestScan_ForceRescanBypassesReuse shows ForceRescan ignores mtime
// reuse entirely, even when the mtime was left untouched.
func TestScan_ForceRescanBypassesReuse(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"sample"}`)
	writeFile(t, root, "src/a.ts", exportV1)
	settings := newTestSettings(root)

	_, _, err := Scan(root, settings, nil)
	require.NoError(t, err)
	original := statMTime(t, root, "src/a.ts")

	writeFile(t, root, "src/a.ts", exportV2)
	require.NoError(t, os.Chtimes(filepath.Join(root, "src/a.ts"), original, original))

	settings.ForceRescan = true
	snap, _, err := Scan(root, settings, nil)
	require.NoError(t, err)
	fa := snap.FileByPath("src/a.ts")
	require.NotNil(t, fa)
	assert.Len(t, fa.Exports, 2, "force rescan must not reuse a prior FileAnalysis")
}

func TestScan_RespectsCustomCacheDir(t *testing.T) {
	root := t.TempDir()
	cache := t.TempDir()
	writeFile(t, root, "package.json", `{"name":"sample"}`)
	writeFile(t, root, "src/a.ts", exportV1)
	settings := newTestSettings(cache)

	_, wrote, err := Scan(root, settings, nil)
	require.NoError(t, err)
	assert.True(t, wrote)

	entries, err := os.ReadDir(filepath.Join(cache, ".loctree"))
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
