package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/petrarca/loctree/internal/config"
	"github.com/petrarca/loctree/internal/errs"
	"github.com/petrarca/loctree/internal/model"
	"github.com/petrarca/loctree/internal/progress"
	"github.com/petrarca/loctree/internal/query"
	"github.com/petrarca/loctree/internal/snapshot"
)

// resolveRoot validates and absolutizes a scan-root argument, defaulting
// to the working directory, matching the teacher's resolveScanPath
// (internal/cmd/scan.go) minus the single-file special case this spec
// has no analogue for.
func resolveRoot(args []string) (string, error) {
	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err := filepath.Abs(strings.TrimSpace(root))
	if err != nil {
		return "", &errs.InputError{Path: root, Reason: err.Error()}
	}
	if info, statErr := os.Stat(root); statErr != nil || !info.IsDir() {
		return "", &errs.InputError{Path: root, Reason: "not a directory"}
	}
	return root, nil
}

// loadEngine scans (or reuses) root's snapshot and builds a query
// Engine over it — the one setup every non-scan subcommand shares.
func loadEngine(root string, s *config.Settings) (*model.Snapshot, *query.Engine, error) {
	prog := progress.New(s.Verbose || s.Debug, nil)
	if s.Debug {
		prog.EnableQueryTracing()
	}
	snap, _, err := snapshot.Scan(root, s, prog)
	if err != nil {
		return nil, nil, &errs.IOFailure{Path: root, Op: "scan", Err: err}
	}
	return snap, query.NewEngine(snap, s, prog), nil
}
