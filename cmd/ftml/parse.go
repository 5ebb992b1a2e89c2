package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/scpwiki/ftml/internal/cli/ui"
	"github.com/scpwiki/ftml/pkg/ftml"
)

var (
	parseCataloguePath string
	parseLayout        string
	parseAllowHTML     bool
	parseRecursion     int
	parseEnableInclude bool
	parseJSON          bool
	parseErrorsOnly    bool
)

func init() {
	parseCmd.Flags().StringVar(&parseCataloguePath, "catalogue", "", "Path to a catalogue YAML file (default: bundled catalogue)")
	parseCmd.Flags().StringVar(&parseLayout, "layout", "wikidot", "Disambiguation layout: wikidot or wikijump")
	parseCmd.Flags().BoolVar(&parseAllowHTML, "allow-html-attributes", true, "Accept safe HTML attributes in block heads")
	parseCmd.Flags().IntVar(&parseRecursion, "recursion-limit", 100, "Maximum block nesting depth")
	parseCmd.Flags().BoolVar(&parseEnableInclude, "enable-include", false, "Allow [[include]] blocks to be recorded")
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Emit the tree (and errors) as JSON")
	parseCmd.Flags().BoolVar(&parseErrorsOnly, "errors-only", false, "Print only diagnostics, not the tree")
}

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a wikitext file into an AST",
	Long: `parse runs the full lexer -> consolidation -> block-aware parser
pipeline over a file and prints the resulting tree plus any diagnostics.
Parsing never fails outright: malformed constructs degrade to text nodes
plus a diagnostic, so a file is always "parsed" in some form.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	source, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read %s: %w", args[0], err)
	}

	cat := (*ftml.Catalogue)(nil)
	if parseCataloguePath != "" {
		cat, err = ftml.LoadCatalogue(parseCataloguePath)
		if err != nil {
			return fmt.Errorf("load catalogue: %w", err)
		}
	}

	settings := ftml.Settings{
		Layout:              parseLayout,
		AllowHTMLAttributes: parseAllowHTML,
		RecursionLimit:      parseRecursion,
		EnableInclude:       parseEnableInclude,
	}

	// Every "ftml parse" run gets a correlation id; it is reported as
	// run_id in the --json output and not printed otherwise.
	runID := uuid.New()

	tree, diags, err := ftml.Parse(string(source), cat, &settings)
	if err != nil {
		return fmt.Errorf("parse: %w", err)
	}

	if parseJSON {
		out := struct {
			RunID  string              `json:"run_id"`
			Tree   *ftml.Tree          `json:"tree"`
			Errors []*ftml.Diagnostic  `json:"errors"`
		}{RunID: runID.String(), Tree: tree, Errors: diags}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	if !parseErrorsOnly {
		treeJSON, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("render tree: %w", err)
		}
		fmt.Println(string(treeJSON))
	}

	printDiagnostics(diags, args[0])
	return nil
}

// printDiagnostics reports every diagnostic through ui.DiagnosticError, the
// same compiler-style rendering the rest of the CLI uses for parse output.
func printDiagnostics(diags []*ftml.Diagnostic, file string) {
	if len(diags) == 0 {
		return
	}
	for _, d := range diags {
		fmt.Fprint(os.Stderr, ui.DiagnosticError(d, false))
	}
	color.New(color.FgYellow).Fprintf(os.Stderr, "%s: %d diagnostic(s)\n", file, len(diags))
}
