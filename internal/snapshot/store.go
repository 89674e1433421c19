// Package snapshot is the Snapshot Store (spec.md §4.6): it persists
// and reloads Snapshots with an atomic write, keyed by git identity,
// and orchestrates a rescan (walk, extract, resolve, build the graph)
// reusing any FileAnalysis whose mtime hasn't changed since the last
// snapshot under the same identity. Grounded on the teacher's
// Scanner.Scan in internal/scanner/scanner.go: git identity fetched up
// front, a recursion over the tree, then a post-pass that resolves
// cross-component references — the same three-step shape, generalized
// from a component tree to a flat FileAnalysis list plus an edge/index
// graph.
package snapshot

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/petrarca/loctree/internal/model"
)

const fileName = "snapshot.json"

// Store persists and loads Snapshots under a per-repository,
// per-git-identity cache directory.
type Store struct {
	cacheRoot string
}

// NewStore resolves the cache root: override (LOCT_CACHE_DIR /
// LOCTREE_CACHE_DIR, or an explicit caller value) when non-empty, else
// root itself — "a per-repository cache directory" (spec.md §4.6).
func NewStore(root, override string) *Store {
	base := root
	if override != "" {
		base = override
	}
	return &Store{cacheRoot: filepath.Join(base, ".loctree")}
}

// Dir returns the cache directory for one git identity,
// `<cache-root>/.loctree/<branch>@<commit>`.
func (s *Store) Dir(id model.GitIdentity) string {
	return filepath.Join(s.cacheRoot, id.Key())
}

func (s *Store) path(id model.GitIdentity) string {
	return filepath.Join(s.Dir(id), fileName)
}

// Exists reports whether a snapshot is already on disk for id.
func (s *Store) Exists(id model.GitIdentity) bool {
	_, err := os.Stat(s.path(id))
	return err == nil
}

// Load reads and unmarshals the snapshot for id.
func (s *Store) Load(id model.GitIdentity) (*model.Snapshot, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, err
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// Save atomically persists snap under its own Git identity, skipping
// the write when its content is byte-identical to what's already on
// disk — spec.md §4.6: "writing is skipped with an informational
// message" — wrote reports whether a write actually happened, so the
// caller can log that message.
func (s *Store) Save(snap *model.Snapshot, pretty bool) (wrote bool, err error) {
	data, err := marshal(snap, pretty)
	if err != nil {
		return false, err
	}

	target := s.path(snap.Git)
	if existing, readErr := os.ReadFile(target); readErr == nil && bytes.Equal(existing, data) {
		return false, nil
	}

	if err := writeAtomic(target, data, 0o644); err != nil {
		return false, err
	}
	return true, nil
}

func marshal(snap *model.Snapshot, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(snap, "", "  ")
	}
	return json.Marshal(snap)
}
