package model

// BridgeStatus is the health of a Tauri command/event bridge.
type BridgeStatus string

const (
	BridgeOK             BridgeStatus = "ok"
	BridgeMissingHandler BridgeStatus = "missing_handler"
	BridgeUnusedHandler  BridgeStatus = "unused_handler"
	BridgeConnected      BridgeStatus = "connected"
	BridgeOrphanEmit     BridgeStatus = "orphan_emit"
	BridgeOrphanListen   BridgeStatus = "orphan_listen"
)

// CallSite locates one occurrence of a bridge endpoint.
type CallSite struct {
	File string `json:"file"`
	Line int    `json:"line"`
}

// CommandBridge pairs frontend invoke() call-sites with a backend
// #[tauri::command] handler, keyed by normalized command name.
type CommandBridge struct {
	Name            string       `json:"name"`
	CallSites       []CallSite   `json:"call_sites"`
	HandlerFile     string       `json:"handler_file,omitempty"`
	HandlerLine     int          `json:"handler_line,omitempty"`
	RegistrationSite *CallSite   `json:"registration_site,omitempty"`
	Status          BridgeStatus `json:"status"`
}

// EventBridge pairs emit sites with listen sites by literal event name.
type EventBridge struct {
	Name      string       `json:"name"`
	EmitSites []CallSite   `json:"emit_sites"`
	ListenSites []CallSite `json:"listen_sites"`
	Status    BridgeStatus `json:"status"`
}
