package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/model"
)

type sliceResult struct{ *model.Slice }

func (r sliceResult) ToJSON() interface{} { return r.Slice }

func (r sliceResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "core: %s\n", r.Core)
	fmt.Fprintf(w, "deps (%d):\n", len(r.Deps))
	for _, d := range r.Deps {
		fmt.Fprintf(w, "  [%d] %s\n", d.Depth, d.File)
	}
	if len(r.Consumers) > 0 {
		fmt.Fprintf(w, "consumers (%d):\n", len(r.Consumers))
		for _, c := range r.Consumers {
			fmt.Fprintf(w, "  [%d] %s\n", c.Depth, c.File)
		}
	}
	fmt.Fprintf(w, "total files: %d, total lines: %d\n", r.TotalFiles, r.TotalLines)
	if r.DepsTruncated {
		fmt.Fprintln(w, "(deps truncated at 25)")
	}
	if r.ConsTruncated {
		fmt.Fprintln(w, "(consumers truncated at 25)")
	}
}

var (
	sliceDepth      int
	sliceConsumers  bool
	sliceFormat     string
)

var sliceCmd = &cobra.Command{
	Use:   "slice <file> [root]",
	Short: "Holographic 3-layer context (core/deps/consumers) around a file",
	Long: `slice prints the file itself, its transitive import dependencies out
to --depth hops, and (with --consumers) the files that import it
directly — spec.md §4.7.6's "holographic slice".`,
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
		depth := sliceDepth
		if depth <= 0 {
			depth = settings.MaxDepth
		}
		result := engine.Slice(target, depth, sliceConsumers)
		Output(sliceResult{result}, sliceFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sliceCmd)
	sliceCmd.Flags().IntVar(&sliceDepth, "depth", 0, "Dependency BFS depth (default: config max_depth, 2)")
	sliceCmd.Flags().BoolVar(&sliceConsumers, "consumers", false, "Include the consumers layer")
	setupFormatFlag(sliceCmd, &sliceFormat)
}
