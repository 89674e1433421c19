package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/petrarca/loctree/internal/model"
)

type findResult struct{ *model.FindResult }

func (r findResult) ToJSON() interface{} { return r.FindResult }

func (r findResult) ToText(w io.Writer) {
	fmt.Fprintf(w, "semantic matches (%d):\n", len(r.Semantic))
	for _, m := range r.Semantic {
		fmt.Fprintf(w, "  [%.2f] %s %s (%s:%d) terms=%s\n", m.Score, m.Kind, m.Name, m.File, m.Line, strings.Join(m.MatchedTerms, ","))
	}
	files := make([]string, 0, len(r.BySymbol))
	for f := range r.BySymbol {
		files = append(files, f)
	}
	sort.Strings(files)
	for _, f := range files {
		fmt.Fprintf(w, "symbols in %s:\n", f)
		for _, m := range r.BySymbol[f] {
			fmt.Fprintf(w, "  %s (%s:%d)\n", m.Name, m.File, m.Line)
		}
	}
	if len(r.CrossMatch) > 0 {
		fmt.Fprintf(w, "cross-match (%d files matched >=2 terms):\n", len(r.CrossMatch))
		for _, f := range r.CrossMatch {
			fmt.Fprintf(w, "  %s\n", f)
		}
	}
}

var findFormat string

var findCmd = &cobra.Command{
	Use:   "find <query> [root]",
	Short: "Multi-term search over export names, symbols, basenames, and imports",
	Long: `find matches each whitespace-separated term independently against
export names, symbol occurrences, file basenames, parameter names, and
dotted import paths, then reports semantic matches, per-file symbol
matches, and files where two or more distinct terms co-occur
(spec.md §4.7.10).`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := args[0]
		root, err := resolveRoot(args[1:])
		if err != nil {
			return err
		}
		_, engine, err := loadEngine(root, settings)
		if err != nil {
			return err
		}
		Output(findResult{engine.Find(q)}, findFormat)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	setupFormatFlag(findCmd, &findFormat)
}
