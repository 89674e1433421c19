// Package walk recursively enumerates a project tree, honoring
// .gitignore hierarchy and user ignore globs, and hands each
// candidate source file's bytes to the caller. Grounded on the
// teacher's Scanner.recurse in internal/scanner/scanner.go: same
// provider.ListDir + stack-based gitignore + doublestar exclude-glob
// shape, generalized from "walk to feed rule detectors" to "walk to
// feed per-language extractors".
package walk

import (
	"bytes"
	"path/filepath"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-enry/go-enry/v2"

	"github.com/petrarca/loctree/internal/git"
	"github.com/petrarca/loctree/internal/progress"
	"github.com/petrarca/loctree/internal/provider"
)

// binarySniffLen is how much of a file is inspected to decide whether
// it is binary before handing it to a language extractor.
const binarySniffLen = 8192

// File is a source file discovered during the walk, along with its
// full contents (read once here so extractors never re-touch disk).
type File struct {
	Path    string // relative to the scan root
	Content []byte
	ModTime int64 // provider.FileEntry.Modified, for snapshot mtime reuse (spec.md §4.6)
}

// SkippedFile records a file that was found but not handed to an
// extractor, and why.
type SkippedFile struct {
	Path   string
	Reason string
}

// Walker recursively enumerates a provider's tree, filtering by
// extension, ignore globs and .gitignore hierarchy.
type Walker struct {
	provider   provider.Provider
	basePath   string
	extensions map[string]bool
	ignores    []string
	gitignore  *git.StackBasedLoader
	progress   *progress.Progress

	Skipped []SkippedFile
}

// New builds a Walker over root, restricted to the given extensions
// (e.g. ".go", ".ts") and ignore globs (doublestar patterns, matched
// both against the path relative to root and the bare filename).
func New(p provider.Provider, extensions []string, ignores []string, prog *progress.Progress) *Walker {
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		extSet[ext] = true
	}

	loader := git.NewStackBasedLoaderWithProgress(prog)
	_ = loader.InitializeWithTopLevelExcludes(p.GetBasePath(), ignores, nil)

	return &Walker{
		provider:   p,
		basePath:   p.GetBasePath(),
		extensions: extSet,
		ignores:    ignores,
		gitignore:  loader,
		progress:   prog,
	}
}

// Walk enumerates every matching source file under the provider's
// base path and invokes fn for each. fn errors abort the walk; a
// binary or unreadable file is recorded in Skipped and never reaches
// fn, while an ignored file or directory is passed over without a
// Skipped entry.
func (w *Walker) Walk(fn func(File) error) error {
	return w.recurse(w.provider.GetBasePath(), fn)
}

func (w *Walker) recurse(dir string, fn func(File) error) error {
	w.progress.EnterDirectory(dir)
	defer w.progress.LeaveDirectory(dir)

	hasGitignore := w.gitignore.LoadAndPushGitignore(dir)
	if hasGitignore {
		w.progress.GitIgnoreEnter(dir)
		defer func() {
			w.progress.GitIgnoreLeave(dir)
			w.gitignore.PopGitignore()
		}()
	}

	entries, err := w.provider.ListDir(dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		fullPath := filepath.Join(dir, entry.Name)
		relPath, err := filepath.Rel(w.basePath, fullPath)
		if err != nil {
			relPath = entry.Name
		}

		if entry.Type == "dir" {
			if w.shouldIgnoreDir(entry.Name, relPath) {
				w.progress.Skipped(fullPath, "excluded")
				continue
			}
			if err := w.recurse(fullPath, fn); err != nil {
				return err
			}
			continue
		}

		if w.shouldIgnoreFile(entry.Name, relPath) {
			continue
		}
		if !w.hasWantedExtension(entry.Name) {
			continue
		}

		content, err := w.provider.ReadFile(fullPath)
		if err != nil {
			w.Skipped = append(w.Skipped, SkippedFile{Path: relPath, Reason: "read error: " + err.Error()})
			w.progress.Skipped(fullPath, "read error")
			continue
		}

		if isBinary(content) {
			w.Skipped = append(w.Skipped, SkippedFile{Path: relPath, Reason: "binary"})
			w.progress.Skipped(fullPath, "binary")
			continue
		}

		if err := fn(File{Path: relPath, Content: content, ModTime: entry.Modified}); err != nil {
			return err
		}
	}

	return nil
}

func (w *Walker) hasWantedExtension(name string) bool {
	if len(w.extensions) == 0 {
		return true
	}
	return w.extensions[filepath.Ext(name)]
}

func (w *Walker) shouldIgnoreFile(name, relPath string) bool {
	for _, pattern := range w.ignores {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, name); err == nil && matched {
			return true
		}
	}
	return w.gitignore.ShouldExclude(name, relPath)
}

func (w *Walker) shouldIgnoreDir(name, relPath string) bool {
	if enry.IsVendor(relPath + "/") {
		return true
	}
	return w.shouldIgnoreFile(name, relPath)
}

// isBinary reports whether content looks like binary data: a NUL byte
// or invalid UTF-8 in the first binarySniffLen bytes, matching the
// spec's "binary if NUL or undecodable as UTF-8 in the first 8 KiB"
// rule. go-enry's own heuristic (used by the teacher for tech
// detection, internal/scanner/language.go) is intentionally not reused
// here: it treats many non-UTF-8-but-non-binary encodings as binary
// and would over-skip source files loctree needs to parse as text.
func isBinary(content []byte) bool {
	sniff := content
	if len(sniff) > binarySniffLen {
		sniff = sniff[:binarySniffLen]
	}
	if bytes.IndexByte(sniff, 0) != -1 {
		return true
	}
	return !utf8.Valid(sniff)
}
