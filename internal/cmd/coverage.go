package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/model"
)

type coverageResult struct{ issues []model.CoverageIssue }

func (r coverageResult) ToJSON() interface{} { return r.issues }

func (r coverageResult) ToText(w io.Writer) {
	for _, i := range r.issues {
		label := render(severityStyle(string(i.Severity)), string(i.Severity))
		fmt.Fprintf(w, "[%s] %s: %s (%s)\n", label, i.Kind, i.Target, i.Detail)
	}
	fmt.Fprintf(w, "%d issues\n", len(r.issues))
}

var coverageFormat string

var coverageCmd = &cobra.Command{
	Use:   "coverage [root]",
	Short: "Cross-reference Tauri bridges and exports against test files",
	Long: `coverage reports every Tauri command/event bridge or export that
production code uses but no test exercises (spec.md §4.7.9).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := resolveRoot(args)
		if err != nil {
			return err
		}
		_, engine, err := loadEngine(root, settings)
		if err != nil {
			return err
		}
		Output(coverageResult{engine.Coverage()}, coverageFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(coverageCmd)
	setupFormatFlag(coverageCmd, &coverageFormat)
}
