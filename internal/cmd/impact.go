package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/model"
)

type impactResult struct{ *model.Impact }

func (r impactResult) ToJSON() interface{} { return r.Impact }

func (r impactResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "target: %s\n", r.Target)
	fmt.Fprintf(w, "risk: %s\n", r.Risk)
	fmt.Fprintf(w, "direct consumers (%d):\n", len(r.DirectConsumers))
	for _, f := range r.DirectConsumers {
		fmt.Fprintf(w, "  %s\n", f)
	}
	fmt.Fprintf(w, "transitive consumers (%d):\n", len(r.TransitiveConsumers))
	for _, f := range r.TransitiveConsumers {
		fmt.Fprintf(w, "  %s\n", f)
	}
}

var impactFormat string

var impactCmd = &cobra.Command{
	Use:   "impact <file> [root]",
	Short: "Blast-radius analysis: everything that transitively depends on a file",
	Long: `impact reports direct and transitive consumers of a file (reverse
import-edge closure) and a risk tier, spec.md §4.7.7.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		target := args[0]
		root, err := resolveRoot(args[1:])
		if err != nil {
			return err
		}
		_, engine, err := loadEngine(root, settings)
		if err != nil {
			return err
		}
		Output(impactResult{engine.Impact(target)}, impactFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(impactCmd)
	setupFormatFlag(impactCmd, &impactFormat)
}
