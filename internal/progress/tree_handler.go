package progress

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// TreeHandler outputs events with tree-like visualization
type TreeHandler struct {
	writer    io.Writer
	depth     int
	timings   []TimingEntry // Track all timings for summary
	findings  []FindingEntry   // Track all query findings for summary
	scanStart time.Time     // Track overall scan start time
}

func NewTreeHandler(writer io.Writer) *TreeHandler {
	return &TreeHandler{
		writer:  writer,
		depth:   0,
		timings: make([]TimingEntry, 0),
		findings: make([]FindingEntry, 0),
	}
}

func (h *TreeHandler) Handle(event Event) {
	indent := strings.Repeat("│  ", h.depth)
	prefix := "├─ "

	switch event.Type {
	case EventScanStart:
		h.scanStart = time.Now()
		fmt.Fprintf(h.writer, "Scanning %s...\n", event.Path)
		if event.Info != "" {
			fmt.Fprintf(h.writer, "Excluding: %s\n", event.Info)
		}
		fmt.Fprintln(h.writer)

	case EventScanComplete:
		msPerKFiles := 0.0
		if event.FileCount > 0 {
			msPerKFiles = (event.Duration.Seconds() * 1000) / (float64(event.FileCount) / 1000)
		}
		fmt.Fprintf(h.writer, "└─ Completed: %d files, %d directories in %.1fs (%.1fms per 1000 files)\n",
			event.FileCount, event.DirCount, event.Duration.Seconds(), msPerKFiles)

		// Print the slowest-directory and finding summaries
		h.printMachineReadableTimingData()
		h.printMachineReadableFindingData()

	case EventEnterDirectory:
		fmt.Fprintf(h.writer, "%s%s%s\n", indent, prefix, event.Path)
		h.depth++

	case EventFindingDetected:
		fmt.Fprintf(h.writer, "%s%sDetected: %s (%s)\n", indent, prefix, event.Name, event.Category)

	case EventLeaveDirectory:
		h.depth--
		if h.depth < 0 {
			h.depth = 0
		}
		// Show timing if duration is set and track it
		if event.Duration > 0 {
			indent := strings.Repeat("│  ", h.depth)

			// Track timing for summary - use cumulative time if available
			duration := event.Duration
			// For now, use the event duration since cumulative timing needs progress system access
			h.timings = append(h.timings, TimingEntry{
				Path:     event.Path,
				Duration: duration,
				Depth:    h.depth,
			})

			seconds := duration.Seconds()
			fmt.Fprintf(h.writer, "%s└─ %s ⏱  %.2fs\n", indent, getTimingIcon(seconds), seconds)
		}

	case EventProgress:
		fmt.Fprintf(h.writer, "%s%sProgress: %d files, %d directories\n",
			indent, prefix, event.FileCount, event.DirCount)

	case EventFolderFileProcessingStart:
		// Start timing for folder file processing (TreeHandler)
		fmt.Fprintf(h.writer, "%s%sProcessing files in: %s\n", indent, prefix, event.Path)

	case EventFolderFileProcessingEnd:
		// Track timing for individual folder file processing (TreeHandler)
		if event.Duration > 0 {
			h.timings = append(h.timings, TimingEntry{
				Path:     event.Path,
				Duration: event.Duration,
				Depth:    h.depth,
			})
			seconds := event.Duration.Seconds()
			fmt.Fprintf(h.writer, "%s└─ %s 📁 %.2fs\n", indent, getTimingIcon(seconds), seconds)
		}

	case EventScanInitializing:
		fmt.Fprintf(h.writer, "%s%sInitializing: %s\n", indent, prefix, event.Path)
		if event.Info != "" {
			fmt.Fprintf(h.writer, "%s%sExcluding: %s\n", indent, prefix, event.Info)
		}

	case EventFileWriting:
		fmt.Fprintf(h.writer, "%s%sWriting results to: %s\n", indent, prefix, event.Path)

	case EventFileWritten:
		fmt.Fprintf(h.writer, "%s%sResults written: %s\n", indent, prefix, event.Path)

	case EventInfo:
		fmt.Fprintf(h.writer, "%s%s%s\n", indent, prefix, event.Info)

	case EventGitIgnoreEnter:
		fmt.Fprintf(h.writer, "%s%s%s\n", indent, prefix, event.Info)

	case EventGitIgnoreLeave:
		fmt.Fprintf(h.writer, "%s%s%s\n", indent, prefix, event.Info)

	case EventQueryCheck:
		fmt.Fprintf(h.writer, "%s%sChecking: %s\n", indent, prefix, event.Category)
		for _, detail := range event.Details {
			fmt.Fprintf(h.writer, "%s│  %s\n", indent, detail)
		}

	case EventQueryResult:
		// Track query findings for the finding summary
		h.findings = append(h.findings, FindingEntry{
			Category:    event.Category,
			Reason:  event.Reason,
			Path:    event.Path,
			Matched: event.Matched,
		})

		if event.Matched {
			if event.Path != "" {
				fmt.Fprintf(h.writer, "%s└─ ✓ MATCHED: %s - %s (in %s)\n", indent, event.Category, event.Reason, event.Path)
			} else {
				fmt.Fprintf(h.writer, "%s└─ ✓ MATCHED: %s - %s\n", indent, event.Category, event.Reason)
			}
		} else {
			fmt.Fprintf(h.writer, "%s└─ ✗ NOT MATCHED: %s - %s\n", indent, event.Category, event.Reason)
		}
	}
}

// printMachineReadableTimingData outputs top 10 slowest directories for TreeHandler
func (h *TreeHandler) printMachineReadableTimingData() {
	if len(h.timings) == 0 {
		return
	}

	sortedTimings := sortTimingsByDuration(h.timings, 10)

	fmt.Fprintln(h.writer)
	fmt.Fprintf(h.writer, "🐌 TOP 10 SLOWEST DIRECTORIES\n")
	fmt.Fprintf(h.writer, "═══════════════════════════════════════\n")

	maxShow := len(sortedTimings)
	if maxShow > 10 {
		maxShow = 10
	}

	for i := 0; i < maxShow; i++ {
		timing := sortedTimings[i]
		seconds := timing.Duration.Seconds()
		fmt.Fprintf(h.writer, " %s %2d. %-45s %6.2fs\n", getTimingIcon(seconds), i+1, shortenPath(timing.Path, 60), seconds)
	}

	fmt.Fprintln(h.writer)
}

// printMachineReadableFindingData outputs finding summary for TreeHandler
func (h *TreeHandler) printMachineReadableFindingData() {
	if len(h.findings) == 0 {
		return
	}

	// Count matches and group by category
	matchedCount := 0
	categoryMatches := make(map[string]int)

	for _, finding := range h.findings {
		if finding.Matched {
			matchedCount++
			categoryMatches[finding.Category]++
		}
	}

	fmt.Fprintf(h.writer, "🔍 QUERY ANALYSIS\n")
	fmt.Fprintf(h.writer, "═══════════════════════════════════════\n")
	fmt.Fprintf(h.writer, " Total checks run: %d\n", len(h.findings))
	fmt.Fprintf(h.writer, " Findings confirmed: %d\n", matchedCount)
	fmt.Fprintf(h.writer, " Categories detected: %d\n", len(categoryMatches))

	if len(categoryMatches) > 0 {
		fmt.Fprintln(h.writer)
		fmt.Fprintf(h.writer, " Detected categories:\n")
		for category, count := range categoryMatches {
			fmt.Fprintf(h.writer, "   • %s (%d matches)\n", category, count)
		}
	}

	fmt.Fprintln(h.writer)
}

// NullHandler discards all events (for disabled verbose mode)
type NullHandler struct{}

func NewNullHandler() *NullHandler {
	return &NullHandler{}
}

func (h *NullHandler) Handle(event Event) {
	// Do nothing
}
