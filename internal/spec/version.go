package spec

const (
	// SchemaVersion is the snapshot/findings/agent-bundle JSON schema version.
	// Bump on any removal per spec.md §6; additions may happen under the same version.
	SchemaVersion = "1.0.0"

	// Schema is the snapshot's declared schema identifier.
	Schema = "loctree.snapshot/v1"
)
