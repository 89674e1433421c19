package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/errs"
)

var rootCmd = &cobra.Command{
	Use:   "loctree",
	Short: "Cross-file structure analyzer for polyglot codebases",
	Long: `loctree builds an import/export/symbol graph across a polyglot codebase
(TypeScript, JavaScript, Vue, Svelte, Rust, Python, Go, Dart, CSS) and answers
structural questions about it: dead exports, import cycles, duplicate-looking
files, symbol crowds, blast radius of a change, and Tauri command/event
bridge health.

Results are cached as a snapshot keyed by git branch and commit, so repeat
queries against an unchanged tree are instant.`,
	Version: "1.0.0",
}

// Execute runs the root command, mapping a returned error to the exit
// code spec.md §6 "Return codes" assigns its taxonomy (internal/errs).
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(int(exitCodeFor(err)))
	}
}

func exitCodeFor(err error) errs.ExitCode {
	switch err.(type) {
	case *errs.InputError:
		return errs.ExitUsageError
	case *errs.PolicyViolation:
		return errs.ExitPolicyViolation
	case *errs.IOFailure:
		return errs.ExitInternal
	case *errs.InternalFailure:
		return errs.ExitInternal
	default:
		return errs.ExitUsageError
	}
}

func init() {
	// Global flags can be added here if needed
}
