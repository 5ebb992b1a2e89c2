package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/scpwiki/ftml/internal/lsp"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Run the ftml Language Server over stdio",
	Long: `lsp starts a Language Server Protocol server that parses wikitext
documents on open/change/save and republishes diagnostics to the client. It
has no completion, hover, or go-to-definition: wikitext has no symbol table
to navigate.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		server := lsp.NewServer()
		return server.Run(context.Background())
	},
}
