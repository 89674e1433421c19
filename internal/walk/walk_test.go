package walk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/petrarca/loctree/internal/progress"
	"github.com/petrarca/loctree/internal/provider"
)

func newTestWalker(p *provider.FakeProvider, extensions, ignores []string) *Walker {
	prog := progress.New(false, nil)
	return New(p, extensions, ignores, prog)
}

func TestWalk_CollectsMatchingExtensions(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("main.go", "package main\n")
	p.AddFile("README.md", "# hi\n")

	w := newTestWalker(p, []string{".go"}, nil)

	var seen []string
	err := w.Walk(func(f File) error {
		seen = append(seen, f.Path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, seen)
}

func TestWalk_SkipsIgnoredGlob(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("main.go", "package main\n")
	p.AddFile("generated/api.go", "package generated\n")
	p.AddDir("generated")

	w := newTestWalker(p, []string{".go"}, []string{"generated/**"})

	var seen []string
	err := w.Walk(func(f File) error {
		seen = append(seen, f.Path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, seen)
}

func TestWalk_SkipsBinaryContent(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("main.go", "package main\n")
	p.AddFile("blob.go", "\x00\x01\x02binary")

	w := newTestWalker(p, []string{".go"}, nil)

	var seen []string
	err := w.Walk(func(f File) error {
		seen = append(seen, f.Path)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"main.go"}, seen)
	require.Len(t, w.Skipped, 1)
	assert.Equal(t, "binary", w.Skipped[0].Reason)
}

func TestWalk_NoExtensionFilterAcceptsEverything(t *testing.T) {
	p := provider.NewFakeProvider()
	p.AddFile("main.go", "package main\n")
	p.AddFile("README.md", "# hi\n")

	w := newTestWalker(p, nil, nil)

	var seen []string
	err := w.Walk(func(f File) error {
		seen = append(seen, f.Path)
		return nil
	})

	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"main.go", "README.md"}, seen)
}
