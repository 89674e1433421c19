package progress

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Progress is the centralized verbose-output system. EventType, Event,
// Reporter, and Handler are defined in types.go.
type Progress struct {
	enabled      bool
	handler      Handler
	withTimings  bool
	traceQueries bool
	dirTimings   map[string]time.Time // Track directory entry times
}

// New creates a new progress reporter.
func New(enabled bool, handler Handler) *Progress {
	if handler == nil {
		handler = NewSimpleHandler(os.Stderr)
	}
	return &Progress{
		enabled:      enabled,
		handler:      handler,
		withTimings:  false,
		traceQueries: false,
		dirTimings:   make(map[string]time.Time),
	}
}

// EnableTimings enables timing information in progress output.
func (p *Progress) EnableTimings() {
	p.withTimings = true
}

// EnableQueryTracing enables detailed per-query check information.
func (p *Progress) EnableQueryTracing() {
	p.traceQueries = true
}

// Report sends an event to the handler (only if enabled).
func (p *Progress) Report(event Event) {
	if !p.enabled {
		return
	}
	p.handler.Handle(event)
}

// Convenience methods for the pipeline to report events.

func (p *Progress) ScanStart(path string, ignorePatterns []string) {
	p.Report(Event{
		Type: EventScanStart,
		Path: path,
		Info: strings.Join(ignorePatterns, ", "),
	})
}

func (p *Progress) ScanComplete(files, dirs int, duration time.Duration) {
	p.Report(Event{
		Type:      EventScanComplete,
		FileCount: files,
		DirCount:  dirs,
		Duration:  duration,
	})
}

func (p *Progress) EnterDirectory(path string) {
	if p.withTimings {
		p.dirTimings[path] = time.Now()
	}
	p.Report(Event{
		Type:      EventEnterDirectory,
		Path:      path,
		Timestamp: time.Now(),
	})
}

func (p *Progress) LeaveDirectory(path string) {
	var duration time.Duration
	if p.withTimings {
		if startTime, ok := p.dirTimings[path]; ok {
			duration = time.Since(startTime)
			delete(p.dirTimings, path)
		}
	}
	p.Report(Event{
		Type:     EventLeaveDirectory,
		Path:     path,
		Duration: duration,
	})
}

// FindingDetected reports one query finding (a cycle, a dead export, a
// crowd, a bridge issue) as it's produced.
func (p *Progress) FindingDetected(name, category, path string) {
	p.Report(Event{
		Type:     EventFindingDetected,
		Name:     name,
		Category: category,
		Path:     path,
	})
}

func (p *Progress) FileProcessingStart(path, info string) {
	p.Report(Event{
		Type: EventFileProcessingStart,
		Path: path,
		Info: info,
	})
}

func (p *Progress) FileProcessingEnd(path string, duration time.Duration) {
	p.Report(Event{
		Type:     EventFileProcessingEnd,
		Path:     path,
		Duration: duration,
	})
}

func (p *Progress) FolderFileProcessingStart(path string) {
	p.Report(Event{
		Type: EventFolderFileProcessingStart,
		Path: path,
	})
}

func (p *Progress) FolderFileProcessingEnd(path string, duration time.Duration) {
	p.Report(Event{
		Type:     EventFolderFileProcessingEnd,
		Path:     path,
		Duration: duration,
	})
}

func (p *Progress) Skipped(path, reason string) {
	p.Report(Event{
		Type:   EventSkipped,
		Path:   path,
		Reason: reason,
	})
}

func (p *Progress) ProgressUpdate(files, dirs int) {
	p.Report(Event{
		Type:      EventProgress,
		FileCount: files,
		DirCount:  dirs,
	})
}

func (p *Progress) ScanInitializing(path string, ignorePatterns []string) {
	p.Report(Event{
		Type: EventScanInitializing,
		Path: path,
		Info: strings.Join(ignorePatterns, ", "),
	})
}

func (p *Progress) FileWriting(path string) {
	p.Report(Event{
		Type: EventFileWriting,
		Path: path,
	})
}

func (p *Progress) FileWritten(path string) {
	p.Report(Event{
		Type: EventFileWritten,
		Path: path,
	})
}

func (p *Progress) Info(message string) {
	p.Report(Event{
		Type: EventInfo,
		Info: message,
	})
}

func (p *Progress) GitIgnoreEnter(path string) {
	p.Report(Event{
		Type: EventGitIgnoreEnter,
		Path: path,
		Info: fmt.Sprintf("📁 GitIgnore context: %s (patterns active)", path),
	})
}

func (p *Progress) GitIgnoreLeave(path string) {
	p.Report(Event{
		Type: EventGitIgnoreLeave,
		Path: path,
		Info: fmt.Sprintf("📤 GitIgnore context: %s (patterns removed)", path),
	})
}

// QueryCheck reports that a query rule (e.g. a confidence threshold, a
// crowd-similarity check) is being evaluated.
func (p *Progress) QueryCheck(category string, details []string) {
	if !p.traceQueries {
		return
	}
	p.Report(Event{
		Type:     EventQueryCheck,
		Category: category,
		Details:  details,
	})
}

// QueryResult reports a query rule's outcome. Non-matches are dropped
// to avoid flooding verbose output.
func (p *Progress) QueryResult(category string, matched bool, reason string) {
	if !p.traceQueries || !matched {
		return
	}
	p.Report(Event{
		Type:     EventQueryResult,
		Category: category,
		Matched:  matched,
		Reason:   reason,
	})
}

func (p *Progress) QueryResultWithPath(category string, matched bool, reason string, path string) {
	if !p.traceQueries || !matched {
		return
	}
	p.Report(Event{
		Type:     EventQueryResult,
		Category: category,
		Matched:  matched,
		Reason:   reason,
		Path:     path,
	})
}
