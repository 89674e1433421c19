package model

// Confidence is a dead-export finding's confidence level (spec.md §4.7.1).
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// DeadExport is an ExportEntry with no detected use.
type DeadExport struct {
	File       string     `json:"file"`
	Name       string     `json:"name"`
	Kind       ExportKind `json:"kind"`
	Line       int        `json:"line"`
	Confidence Confidence `json:"confidence"`
}

// Cycle is a non-trivial strongly-connected component (or self-loop)
// in the import-only edge graph.
type Cycle struct {
	Files      []string `json:"files"`
	Structural bool     `json:"structural"` // intra-crate Rust only: informational
}

// TwinMember is one file's contribution to a TwinGroup.
type TwinMember struct {
	File          string `json:"file"`
	Line          int    `json:"line"`
	ImporterCount int    `json:"importer_count"`
	Canonical     bool   `json:"canonical"`
}

// TwinGroup is a same-named export group spanning more than one file.
type TwinGroup struct {
	Name    string       `json:"name"`
	Members []TwinMember `json:"members"`
}

// Crowd is a cluster of files whose basenames share a substring and
// whose import sets overlap (spec.md §4.7.5).
type Crowd struct {
	Pattern         string   `json:"pattern"`
	Members         []string `json:"members"`
	SharedMass      int      `json:"shared_import_mass"`
	UsageAsymmetry  float64  `json:"usage_asymmetry"`
	TopPairOverlap  float64  `json:"top_pair_overlap"`
	Issues          []string `json:"issues"`
	Score           float64  `json:"score"`
}

// SliceEntry is one file in a Slice's deps or consumers layer.
type SliceEntry struct {
	File  string `json:"file"`
	Depth int    `json:"depth"`
}

// Slice is the 3-layer holographic context around a target file
// (spec.md §4.7.6).
type Slice struct {
	Core           string       `json:"core"`
	Deps           []SliceEntry `json:"deps"`
	Consumers      []SliceEntry `json:"consumers,omitempty"`
	TotalFiles     int          `json:"total_files"`
	TotalLines     int          `json:"total_lines"`
	DepsTruncated  bool         `json:"deps_truncated,omitempty"`
	ConsTruncated  bool         `json:"consumers_truncated,omitempty"`
}

// RiskTier is Impact's blast-radius classification.
type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

// Impact is the transitive-closure blast radius of changing a file
// (spec.md §4.7.7).
type Impact struct {
	Target               string   `json:"target"`
	DirectConsumers      []string `json:"direct_consumers"`
	TransitiveConsumers  []string `json:"transitive_consumers"`
	Risk                 RiskTier `json:"risk"`
}

// HandlerTrace is the full source-ordered story of one Tauri command
// (spec.md §4.7.8).
type HandlerTrace struct {
	Command          string     `json:"command"`
	RegistrationSite *CallSite  `json:"registration_site,omitempty"`
	Implementation   *CallSite  `json:"implementation,omitempty"`
	CallSites        []CallSite `json:"call_sites"`
}

// CoverageSeverity is a Tauri-coverage gap's severity (spec.md §4.7.9).
type CoverageSeverity string

const (
	CoverageCritical CoverageSeverity = "CRITICAL"
	CoverageHigh     CoverageSeverity = "HIGH"
	CoverageMedium   CoverageSeverity = "MEDIUM"
)

// CoverageIssue is one untested Tauri bridge surface.
type CoverageIssue struct {
	Severity CoverageSeverity `json:"severity"`
	Kind     string           `json:"kind"` // "untested_bridge" | "unlistened_emit" | "untested_export"
	Target   string           `json:"target"`
	Detail   string           `json:"detail"`
}

// SemanticMatch is one Find result ranked by relevance.
type SemanticMatch struct {
	File     string  `json:"file"`
	Name     string  `json:"name"`
	Kind     string  `json:"kind"` // "export" | "symbol" | "basename" | "parameter" | "import"
	Line     int     `json:"line,omitempty"`
	Score    float64 `json:"score"`
	MatchedTerms []string `json:"matched_terms"`
}

// FindResult is the full output of a multi-term Find query
// (spec.md §4.7.10).
type FindResult struct {
	Semantic    []SemanticMatch     `json:"semantic"`
	BySymbol    map[string][]SemanticMatch `json:"by_symbol"`
	CrossMatch  []string            `json:"cross_match"` // files where >=2 distinct terms matched
}

// Orphan is one half of a command/event bridge left without its other
// half: a frontend invoke() with no backend handler, a handler nothing
// calls, or an emit/listen with no counterpart (spec.md §6's
// findings.json "orphans" key).
type Orphan struct {
	Kind   string       `json:"kind"` // "missing_handler" | "unused_handler" | "orphan_emit" | "orphan_listen"
	Name   string       `json:"name"`
	Site   CallSite     `json:"site"`
	Status BridgeStatus `json:"status"`
}

// Shadow is a file that both imports a name and also defines (exports
// or locally declares) an export of the same name, so the local
// binding shadows the imported one for any same-file reference
// (spec.md §6's findings.json "shadows" key).
type Shadow struct {
	File       string `json:"file"`
	Name       string `json:"name"`
	ImportedAs string `json:"imported_from"`
	Line       int    `json:"line"`
}

// Findings bundles every query-engine output for one snapshot,
// mirroring the findings.json shape from spec.md §6.
type Findings struct {
	DeadParrots []DeadExport    `json:"dead_parrots"`
	DeadExports []DeadExport    `json:"dead_exports"`
	Cycles      []Cycle         `json:"cycles"`
	Twins       []TwinGroup     `json:"twins"`
	Orphans     []Orphan        `json:"orphans"`
	Shadows     []Shadow        `json:"shadows"`
	Crowds      []Crowd         `json:"crowds"`
	Coverage    []CoverageIssue `json:"coverage"`
}
