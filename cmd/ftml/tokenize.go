package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/scpwiki/ftml/pkg/ftml"
)

var tokenizeJSON bool

func init() {
	tokenizeCmd.Flags().BoolVar(&tokenizeJSON, "json", false, "Emit tokens as a JSON array instead of a table")
}

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file>",
	Short: "Lex a wikitext file into its token stream",
	Long: `tokenize runs just the lexer and token-consolidation pass over a
file, without building an AST. It's the diagnostic entry point for tooling
that needs to inspect the lexical layer in isolation.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read %s: %w", args[0], err)
		}

		tokens := ftml.Tokenize(string(source))

		if tokenizeJSON {
			type jsonToken struct {
				Kind  string `json:"kind"`
				Span  [2]int `json:"span"`
				Slice string `json:"slice"`
			}
			out := make([]jsonToken, len(tokens))
			for i, t := range tokens {
				out[i] = jsonToken{Kind: t.Kind.String(), Span: [2]int{t.Span.Start, t.Span.End}, Slice: t.Slice}
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}

		kindColor := color.New(color.FgCyan)
		spanColor := color.New(color.FgHiBlack)
		for _, t := range tokens {
			kindColor.Printf("%-20s", t.Kind)
			spanColor.Printf(" [%d,%d) ", t.Span.Start, t.Span.End)
			fmt.Printf("%q\n", t.Slice)
		}
		return nil
	},
}
