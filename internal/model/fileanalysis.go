// Package model holds the persistable data model shared by every
// stage of the analysis pipeline: per-file extraction results, the
// cross-file graph, and the snapshot that bundles them.
package model

// Language is the closed set of source languages loctree understands.
type Language string

const (
	LangTypeScript Language = "typescript"
	LangJavaScript Language = "javascript"
	LangVue        Language = "vue"
	LangSvelte     Language = "svelte"
	LangRust       Language = "rust"
	LangPython     Language = "python"
	LangGo         Language = "go"
	LangDart       Language = "dart"
	LangCSS        Language = "css"
	LangUnknown    Language = "unknown"
)

// ImportKind classifies how an import was written.
type ImportKind string

const (
	ImportStatic        ImportKind = "static"
	ImportDynamic       ImportKind = "dynamic"
	ImportTypeOnly      ImportKind = "type-only"
	ImportReExportStar  ImportKind = "re-export-star"
	ImportReExportNamed ImportKind = "re-export-named"
)

// ExportKind classifies what an export denotes.
type ExportKind string

const (
	ExportValue    ExportKind = "value"
	ExportType     ExportKind = "type"
	ExportFunction ExportKind = "function"
	ExportClass    ExportKind = "class"
	ExportConst    ExportKind = "const"
	ExportReExport ExportKind = "re-export"
)

// Visibility of an ExportEntry.
type Visibility string

const (
	VisibilityPublic          Visibility = "public"
	VisibilityPackageInternal Visibility = "package-internal"
)

// OccurrenceRole classifies a SymbolOccurrence.
type OccurrenceRole string

const (
	RoleDefinition OccurrenceRole = "definition"
	RoleUse        OccurrenceRole = "use"
	RoleParameter  OccurrenceRole = "parameter"
)

// ImportedSymbol is one name bound by an ImportEntry.
type ImportedSymbol struct {
	Name  string `json:"name"`
	Alias string `json:"alias,omitempty"`
}

// ImportEntry records one import/require/use statement.
type ImportEntry struct {
	RawSpecifier string           `json:"raw_specifier"`
	ResolvedPath string           `json:"resolved_path,omitempty"`
	Kind         ImportKind       `json:"kind"`
	Symbols      []ImportedSymbol `json:"symbols,omitempty"`
	Line         int              `json:"line"`

	// Language-specific flags.
	CrateRelative bool `json:"crate_relative,omitempty"` // Rust use crate::
	SuperRelative bool `json:"super_relative,omitempty"` // Rust use super::
	SelfRelative  bool `json:"self_relative,omitempty"`  // Rust use self::
	TypeOnly      bool `json:"type_only,omitempty"`      // TS `import type`
	TypeChecking  bool `json:"type_checking,omitempty"`  // Python TYPE_CHECKING guard
	DynamicImport bool `json:"dynamic_import,omitempty"` // importlib.import_module / __import__
}

// ExportEntry records one exported symbol.
type ExportEntry struct {
	Name       string     `json:"name"`
	Kind       ExportKind `json:"kind"`
	Line       int        `json:"line"`
	Visibility Visibility `json:"visibility"`
	PublicAPI  bool       `json:"public_api,omitempty"` // listed in package "exports" / __all__
	// LiteralValue holds a const export's initializer when it is a
	// plain string/template literal. The Graph Builder resolves dynamic
	// invoke()/emit()/listen() names through TopLevelConsts, not through
	// this field.
	LiteralValue string `json:"literal_value,omitempty"`
}

// SymbolOccurrence records one definition/use/parameter site.
type SymbolOccurrence struct {
	Name  string         `json:"name"`
	Role  OccurrenceRole `json:"role"`
	Line  int            `json:"line"`
	Owner string         `json:"owner"`
}

// CommandCall is a Tauri frontend `invoke(...)` call-site.
type CommandCall struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Dynamic bool   `json:"dynamic,omitempty"` // name wasn't a string literal
}

// CommandHandler is a Rust `#[tauri::command]` function.
type CommandHandler struct {
	Name string `json:"name"`
	Line int     `json:"line"`
}

// CommandRegistration is one name registered via Tauri's
// generate_handler![...] macro, which wires a #[tauri::command]
// function into the app's invoke_handler.
type CommandRegistration struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// EventEmit is a frontend/backend event-emit call-site.
type EventEmit struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Dynamic bool   `json:"dynamic,omitempty"`
}

// EventListen is a frontend/backend event-listen call-site.
type EventListen struct {
	Name    string `json:"name"`
	Line    int    `json:"line"`
	Dynamic bool   `json:"dynamic,omitempty"`
}

// FileAnalysis is the per-file extraction record, spec.md §3.
type FileAnalysis struct {
	Path         string             `json:"path"`
	Language     Language           `json:"language"`
	LineCount    int                `json:"line_count"`
	ModTime      int64              `json:"mtime"`
	IsTest       bool               `json:"is_test"`
	IsGenerated  bool               `json:"is_generated"`
	ParseFailed  bool               `json:"parse_failed,omitempty"`
	ParseError   string             `json:"parse_error,omitempty"`
	Imports      []ImportEntry      `json:"imports"`
	Exports      []ExportEntry      `json:"exports"`
	Symbols      []SymbolOccurrence `json:"symbols"`
	CommandCalls []CommandCall      `json:"command_calls,omitempty"`
	CommandDefs  []CommandHandler   `json:"command_handlers,omitempty"`
	CommandRegistrations []CommandRegistration `json:"command_registrations,omitempty"`
	EventEmits   []EventEmit        `json:"event_emits,omitempty"`
	EventListens []EventListen      `json:"event_listens,omitempty"`
	UsesWeakRegistry bool           `json:"uses_weak_registry,omitempty"`
	// TopLevelConsts maps a module-top-level `const NAME = "literal"`
	// binding to its literal value, feeding the Graph Builder's
	// constant-resolution pass for dynamic command/event names.
	TopLevelConsts map[string]string `json:"top_level_consts,omitempty"`

	// PublicAPI carries the Python `__all__` literal (name-sorted by
	// the extractor, not re-sorted here so original order is visible).
	PublicAPI []string `json:"public_api,omitempty"`
	// DynamicExport records a detected `sys.modules[...] = ` style
	// assignment. Kept separate from PublicAPI per spec.md §9 Open
	// Questions: the finding engine combines both signals explicitly.
	DynamicExport bool `json:"dynamic_export,omitempty"`
}

// NewFileAnalysis returns an empty, non-nil-slice FileAnalysis for
// path, so JSON marshaling never emits `null` for the list fields.
func NewFileAnalysis(path string, lang Language) *FileAnalysis {
	return &FileAnalysis{
		Path:     path,
		Language: lang,
		Imports:  []ImportEntry{},
		Exports:  []ExportEntry{},
		Symbols:  []SymbolOccurrence{},
	}
}
