package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/petrarca/loctree/internal/util"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Outputter is implemented by any subcommand result that can render
// itself as structured data or as human-readable text, the same
// split the teacher's Outputter interface uses (internal/cmd/output.go).
type Outputter interface {
	ToJSON() interface{}
	ToText(w io.Writer)
}

// Output renders o in format to stdout.
func Output(o Outputter, format string) {
	switch util.NormalizeFormat(format) {
	case "json":
		data, err := json.MarshalIndent(o.ToJSON(), "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to marshal JSON:", err)
			os.Exit(70)
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(o.ToJSON())
		if err != nil {
			fmt.Fprintln(os.Stderr, "failed to marshal YAML:", err)
			os.Exit(70)
		}
		fmt.Print(string(data))
	default:
		o.ToText(os.Stdout)
	}
}

// setupFormatFlag registers the --format flag every query subcommand
// shares, validating it once up front rather than at render time.
func setupFormatFlag(cmd *cobra.Command, formatPtr *string) {
	cmd.Flags().StringVarP(formatPtr, "format", "f", "text", "Output format: json, yaml, or text")
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		*formatPtr = util.NormalizeFormat(*formatPtr)
		return util.ValidateOutputFormat(*formatPtr)
	}
}
