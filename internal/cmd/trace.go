package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/model"
)

type traceResult struct{ *model.HandlerTrace }

func (r traceResult) ToJSON() interface{} { return r.HandlerTrace }

func (r traceResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "command: %s\n", r.Command)
	if r.RegistrationSite != nil {
		fmt.Fprintf(w, "registered at: %s:%d\n", r.RegistrationSite.File, r.RegistrationSite.Line)
	} else {
		fmt.Fprintln(w, "registered at: (not found)")
	}
	if r.Implementation != nil {
		fmt.Fprintf(w, "implemented at: %s:%d\n", r.Implementation.File, r.Implementation.Line)
	} else {
		fmt.Fprintln(w, "implemented at: (not found)")
	}
	fmt.Fprintf(w, "call sites (%d):\n", len(r.CallSites))
	for _, c := range r.CallSites {
		fmt.Fprintf(w, "  %s:%d\n", c.File, c.Line)
	}
}

var traceFormat string

var traceCmd = &cobra.Command{
	Use:   "trace <command> [root]",
	Short: "Full source-ordered story of one Tauri command",
	Long: `trace reports a Tauri command's registration site, implementation
file/line, and every frontend invoke() call-site, in source order
(spec.md §4.7.8).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		root, err := resolveRoot(args[1:])
		if err != nil {
			return err
		}
		_, engine, err := loadEngine(root, settings)
		if err != nil {
			return err
		}
		Output(traceResult{engine.Trace(name)}, traceFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(traceCmd)
	setupFormatFlag(traceCmd, &traceFormat)
}
