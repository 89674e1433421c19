package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/model"
	"github.com/petrarca/loctree/internal/provider"
)

func fa(path string, lang model.Language, imports ...model.ImportEntry) *model.FileAnalysis {
	f := model.NewFileAnalysis(path, lang)
	f.Imports = imports
	return f
}

func TestResolveAll_TSRelativeImport(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/app.ts", model.LangTypeScript, model.ImportEntry{RawSpecifier: "./utils", Kind: model.ImportStatic}),
		fa("src/utils.ts", model.LangTypeScript),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "src/utils.ts", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_TSConfigPathsAlias(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("tsconfig.json", `{
		"compilerOptions": { "baseUrl": ".", "paths": { "@lib/*": ["src/lib/*"] } }
	}`)
	files := []*model.FileAnalysis{
		fa("src/app.ts", model.LangTypeScript, model.ImportEntry{RawSpecifier: "@lib/format", Kind: model.ImportStatic}),
		fa("src/lib/format.ts", model.LangTypeScript),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "src/lib/format.ts", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_SvelteKitVirtualModuleLeftUnresolved(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/routes/+page.ts", model.LangTypeScript, model.ImportEntry{RawSpecifier: "$app/stores", Kind: model.ImportStatic}),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Empty(t, files[0].Imports[0].ResolvedPath)
	require.Len(t, r.Warnings, 1)
}

func TestResolveAll_RustCrateRelative(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/main.rs", model.LangRust, model.ImportEntry{RawSpecifier: "crate::handlers::greet", Kind: model.ImportStatic, CrateRelative: true}),
		fa("src/handlers.rs", model.LangRust),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "src/handlers.rs", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_RustFuzzyModuleMatch(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/main.rs", model.LangRust, model.ImportEntry{RawSpecifier: "crate::handler::greet", Kind: model.ImportStatic, CrateRelative: true}),
		fa("src/handlers.rs", model.LangRust),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "src/handlers.rs", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_RustSuperRelative(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/handlers/admin.rs", model.LangRust, model.ImportEntry{RawSpecifier: "super::shared", Kind: model.ImportStatic, SuperRelative: true}),
		fa("src/handlers/shared.rs", model.LangRust),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "src/handlers/shared.rs", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_PythonRelativeImport(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("pkg/mod_a.py", model.LangPython, model.ImportEntry{RawSpecifier: ".mod_b", Kind: model.ImportStatic}),
		fa("pkg/mod_b.py", model.LangPython),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "pkg/mod_b.py", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_PythonAbsoluteImport(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("pkg/app.py", model.LangPython, model.ImportEntry{RawSpecifier: "pkg.util", Kind: model.ImportStatic}),
		fa("pkg/util.py", model.LangPython),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "pkg/util.py", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_GoModulePath(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("go.mod", "module github.com/example/proj\n\ngo 1.25\n")
	files := []*model.FileAnalysis{
		fa("cmd/app/main.go", model.LangGo, model.ImportEntry{RawSpecifier: "github.com/example/proj/internal/core", Kind: model.ImportStatic}),
		fa("internal/core/core.go", model.LangGo),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "internal/core/core.go", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_DartPackageImport(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("pubspec.yaml", "name: my_app\nversion: 1.0.0\n")
	files := []*model.FileAnalysis{
		fa("lib/main.dart", model.LangDart, model.ImportEntry{RawSpecifier: "package:my_app/widgets/button.dart", Kind: model.ImportStatic}),
		fa("lib/widgets/button.dart", model.LangDart),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "lib/widgets/button.dart", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_CSSRelativeImport(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/app.css", model.LangCSS, model.ImportEntry{RawSpecifier: "./reset.css", Kind: model.ImportStatic}),
		fa("src/reset.css", model.LangCSS),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Equal(t, "src/reset.css", files[0].Imports[0].ResolvedPath)
}

func TestResolveAll_UnresolvableBareImportIsNotAnError(t *testing.T) {
	p := provider.NewFakeProvider()
	files := []*model.FileAnalysis{
		fa("src/app.ts", model.LangTypeScript, model.ImportEntry{RawSpecifier: "react", Kind: model.ImportStatic}),
	}
	r := New(p, "/", files, nil, nil)
	r.ResolveAll(files)

	assert.Empty(t, files[0].Imports[0].ResolvedPath)
	require.Len(t, r.Warnings, 1)
	assert.Equal(t, "unresolved", r.Warnings[0].Reason)
}

func TestIndex_TieBreakPrefersNonTestFile(t *testing.T) {
	files := []*model.FileAnalysis{
		{Path: "src/utils.ts", IsTest: false},
		{Path: "src/utils.js", IsTest: true},
	}
	idx := BuildIndex(files)
	resolved, ok := idx.Lookup("src/utils", model.LangTypeScript)
	require.True(t, ok)
	assert.Equal(t, "src/utils.ts", resolved)
}
