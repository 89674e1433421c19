// Package artifact is C8's in-scope half (spec.md §1, §6): JSON
// serialization of the snapshot, findings, agent bundle, and SARIF
// 2.1.0 results to the persisted-state layout under
// `<cache-root>/.loctree/<branch>@<commit>/`. HTML rendering and the
// jq-style query grammar are the out-of-scope remainder, left to the
// CLI front-end.
//
// Grounded on internal/util/output_format.go's pretty-vs-compact JSON
// switch, generalized from "pick an output format string" to "write
// one of several artifact kinds"; there is no teacher/pack analogue
// for SARIF or an "agent bundle" shape specifically, so those two are
// built directly from spec.md §6's field list, the same way
// internal/query builds analyses that have no corpus precedent.
package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/petrarca/loctree/internal/model"
)

// Names of the files spec.md §6's "Persisted state layout" lists.
const (
	SnapshotFile = "snapshot.json"
	FindingsFile = "findings.json"
	ManifestFile = "manifest.json"
	AgentFile    = "agent.json"
	SarifFile    = "report.sarif"
)

// Manifest is a small index of what was written and when, so a
// consumer (editor plugin, MCP wrapper) can discover the artifact set
// for one git identity without re-deriving it.
type Manifest struct {
	SchemaVersion string      `json:"schema_version"`
	GeneratedAt   string      `json:"generated_at"`
	Root          string      `json:"root"`
	Git           model.GitIdentity `json:"git"`
	Files         []string    `json:"files"`
}

func marshal(v interface{}, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// WriteJSON marshals v (pretty or compact) and writes it to
// dir/name, creating dir if needed. Plain os.WriteFile, not the
// snapshot store's atomic rename: these are derived, re-buildable
// artifacts, not the authoritative persisted snapshot spec.md §4.6
// demands atomicity for.
func WriteJSON(dir, name string, v interface{}, pretty bool) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	data, err := marshal(v, pretty)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0o644)
}

// WriteAll emits snapshot.json, findings.json, agent.json,
// report.sarif, and manifest.json into dir, validating the snapshot
// against the embedded schema first (spec.md §6's schema_version
// contract: additions are permitted, removals bump the major
// version).
func WriteAll(dir string, snap *model.Snapshot, findings *model.Findings, bundle *model.AgentBundle, settings Settings) error {
	if err := ValidateSnapshot(snap); err != nil {
		return err
	}

	sarif := BuildSARIF(snap, findings)

	written := []string{}
	for _, item := range []struct {
		name string
		v    interface{}
	}{
		{SnapshotFile, snap},
		{FindingsFile, findings},
		{AgentFile, bundle},
		{SarifFile, sarif},
	} {
		if err := WriteJSON(dir, item.name, item.v, settings.Pretty); err != nil {
			return err
		}
		written = append(written, item.name)
	}

	manifest := Manifest{
		SchemaVersion: snap.SchemaVersion,
		GeneratedAt:   snap.GeneratedAt,
		Root:          snap.Root,
		Git:           snap.Git,
		Files:         written,
	}
	return WriteJSON(dir, ManifestFile, manifest, settings.Pretty)
}

// Settings bundles the small amount of emitter-wide config artifact
// writers need, kept separate from config.Settings to avoid an import
// cycle (config never needs to know about artifact).
type Settings struct {
	Pretty bool
}
