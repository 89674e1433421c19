package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/artifact"
	"github.com/petrarca/loctree/internal/config"
	"github.com/petrarca/loctree/internal/errs"
	"github.com/petrarca/loctree/internal/progress"
	"github.com/petrarca/loctree/internal/query"
	"github.com/petrarca/loctree/internal/snapshot"
)

var (
	settings   = config.LoadSettingsFromEnvironment()
	lintCycles int
	lintDead   int
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Scan a project and build its cross-file structure graph",
	Long: `scan walks a project tree, extracts imports/exports/symbols per
language, resolves cross-file references, and writes the resulting
snapshot plus every derived finding (dead exports, cycles, twins,
Tauri bridge health) under <cache-root>/.loctree/<branch>@<commit>/.

A rescan keyed by the same git identity reuses any file whose mtime
hasn't moved since the last scan; --full-scan bypasses that cache.`,
	Example: `  loctree scan .
  loctree scan --full-scan /path/to/project
  loctree scan --lint --lint-cycles 0 --lint-dead 20 .`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScan,
}

var lintMode bool

func init() {
	rootCmd.AddCommand(scanCmd)

	scanCmd.Flags().BoolVar(&settings.FullScan, "full-scan", settings.FullScan, "Bypass the mtime-reuse cache")
	scanCmd.Flags().BoolVar(&settings.ForceRescan, "force-rescan", settings.ForceRescan, "Ignore any existing snapshot for this git identity")
	scanCmd.Flags().BoolVar(&settings.IncludeTests, "include-tests", settings.IncludeTests, "Include test files in finding output")
	scanCmd.Flags().BoolVar(&settings.LibraryMode, "library-mode", settings.LibraryMode, "Respect __all__/package-exports as public API")
	scanCmd.Flags().BoolVar(&settings.ScanAll, "scan-all", settings.ScanAll, "Disable default ignore globs")
	scanCmd.Flags().StringSliceVar(&settings.Ignore, "ignore", settings.Ignore, "Extra ignore globs")
	scanCmd.Flags().StringVar(&settings.CacheDir, "cache-dir", settings.CacheDir, "Override the cache root (also LOCT_CACHE_DIR)")
	scanCmd.Flags().BoolVar(&settings.PrettyPrint, "pretty", settings.PrettyPrint, "Pretty-print JSON artifacts")
	scanCmd.Flags().IntVar(&settings.Workers, "workers", settings.Workers, "Extraction worker-pool size (0 = hardware threads)")
	scanCmd.Flags().BoolVar(&lintMode, "lint", false, "Exit 2 if cycle/dead-export thresholds are exceeded")
	scanCmd.Flags().IntVar(&lintCycles, "lint-cycles", 0, "Max allowed cycle count in --lint mode")
	scanCmd.Flags().IntVar(&lintDead, "lint-dead", 0, "Max allowed high-confidence dead-export count in --lint mode")
}

func runScan(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot(args)
	if err != nil {
		return err
	}

	prog := progress.New(settings.Verbose || settings.Debug, nil)
	if settings.Debug {
		prog.EnableQueryTracing()
	}

	snap, _, err := snapshot.Scan(root, settings, prog)
	if err != nil {
		return &errs.IOFailure{Path: root, Op: "scan", Err: err}
	}

	engine := query.NewEngine(snap, settings, prog)
	findings := engine.Findings()
	bundle := artifact.BuildAgentBundle(snap, findings)

	store := snapshot.NewStore(root, settings.CacheDir)
	dir := store.Dir(snap.Git)
	if err := artifact.WriteAll(dir, snap, findings, bundle, artifact.Settings{Pretty: settings.PrettyPrint}); err != nil {
		return &errs.IOFailure{Path: dir, Op: "write artifacts", Err: err}
	}

	fmt.Printf("scanned %d files, %d cycles, %d dead exports, %d twin groups -> %s\n",
		len(snap.Files), len(findings.Cycles), len(findings.DeadExports), len(findings.Twins), dir)

	if lintMode {
		if len(findings.Cycles) > lintCycles {
			return &errs.PolicyViolation{Reason: "circular imports", Count: len(findings.Cycles), Limit: lintCycles}
		}
		highDead := 0
		for _, d := range findings.DeadExports {
			if d.Confidence == "high" {
				highDead++
			}
		}
		if highDead > lintDead {
			return &errs.PolicyViolation{Reason: "high-confidence dead exports", Count: highDead, Limit: lintDead}
		}
	}

	return nil
}
