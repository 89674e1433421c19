package stackdetect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/petrarca/loctree/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, root, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, name), []byte(""), 0o644))
}

func TestDetect_RustOnly(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "Cargo.toml")

	cfg := Detect(root, nil)
	assert.True(t, cfg.HasLanguage(model.LangRust))
	assert.False(t, cfg.HasLanguage(model.LangCSS))
	assert.Contains(t, cfg.DefaultIgnores, "target/**")
	assert.False(t, cfg.TauriProject)
}

func TestDetect_TauriHybridProject(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "package.json")
	touch(t, root, "Cargo.toml")
	require.NoError(t, os.Mkdir(filepath.Join(root, "src-tauri"), 0o755))

	cfg := Detect(root, nil)
	assert.True(t, cfg.HasLanguage(model.LangTypeScript))
	assert.True(t, cfg.HasLanguage(model.LangRust))
	assert.True(t, cfg.HasLanguage(model.LangCSS))
	assert.True(t, cfg.TauriProject)
}

func TestDetect_NoMarkersYieldsEmptyConfig(t *testing.T) {
	root := t.TempDir()

	cfg := Detect(root, nil)
	assert.Empty(t, cfg.Languages)
	assert.False(t, cfg.TauriProject)
	assert.Equal(t, baseIgnores, cfg.DefaultIgnores)
}

func TestDetect_UserIgnoresAreAppended(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "go.mod")

	cfg := Detect(root, []string{"testdata/**"})
	assert.Contains(t, cfg.DefaultIgnores, "testdata/**")
	assert.Contains(t, cfg.DefaultIgnores, "vendor/**")
}

func TestDetect_PythonMarkersBothRecognized(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "pyproject.toml")

	cfg := Detect(root, nil)
	assert.True(t, cfg.HasLanguage(model.LangPython))

	legacy := t.TempDir()
	touch(t, legacy, "setup.py")
	assert.True(t, Detect(legacy, nil).HasLanguage(model.LangPython))
}
