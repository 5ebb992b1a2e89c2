// Command ftml is the CLI front end for the ftml wikitext parser: tokenize
// or parse a document, run a long-lived LSP server, or watch a workspace of
// wikitext files for changes.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Version information, set at build time via -ldflags.
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "ftml",
		Short: "ftml wikitext parser and tooling",
		Long: `ftml transforms Wikidot-flavored wikitext into a typed AST and
back out to tokens, diagnostics, or a JSON tree.`,
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(lspCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(catalogueCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
