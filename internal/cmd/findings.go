package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/model"
)

type findingsResult struct{ *model.Findings }

func (r findingsResult) ToJSON() interface{} { return r.Findings }

func (r findingsResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "dead parrots: %d\n", len(r.DeadParrots))
	fmt.Fprintf(w, "dead exports: %d\n", len(r.DeadExports))
	fmt.Fprintf(w, "cycles: %d\n", len(r.Cycles))
	for _, c := range r.Cycles {
		tag := ""
		if c.Structural {
			tag = " (structural)"
		}
		label := render(severityStyle("high"), "cycle")
		fmt.Fprintf(w, "  [%s] %v%s\n", label, c.Files, tag)
	}
	fmt.Fprintf(w, "twins: %d\n", len(r.Twins))
	fmt.Fprintf(w, "orphans: %d\n", len(r.Orphans))
	fmt.Fprintf(w, "shadows: %d\n", len(r.Shadows))
	fmt.Fprintf(w, "crowds: %d\n", len(r.Crowds))
	fmt.Fprintf(w, "coverage issues: %d\n", len(r.Coverage))
}

var findingsFormat string

var findingsCmd = &cobra.Command{
	Use:   "findings [root]",
	Short: "Every derived finding for a snapshot (dead exports, cycles, twins, ...)",
	Long: `findings runs every query-engine analysis (spec.md §4.7) and prints
the full bundle, the same shape persisted to findings.json by scan.`,
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
		Output(findingsResult{engine.Findings()}, findingsFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findingsCmd)
	setupFormatFlag(findingsCmd, &findingsFormat)
}
