// Package ftml is the public entry point: tokenize or parse wikitext source
// into tokens or a Tree, backed by a block Catalogue and Settings.
package ftml

import (
	"github.com/scpwiki/ftml/internal/catalogue"
	"github.com/scpwiki/ftml/internal/compiler/ast"
	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
	"github.com/scpwiki/ftml/internal/compiler/lexer"
	"github.com/scpwiki/ftml/internal/compiler/parser"
)

// Settings controls parse-time behavior. It's a type alias so callers never
// need to import internal/compiler/parser directly.
type Settings = parser.Settings

// DefaultSettings returns the settings used when a nil *Settings is passed
// to Parse.
func DefaultSettings() Settings {
	return parser.DefaultSettings()
}

// Catalogue is the table of known block names and their shapes.
type Catalogue = catalogue.Catalogue

// DefaultCatalogue loads the catalogue bundled with ftml.
func DefaultCatalogue() (*Catalogue, error) {
	return catalogue.Default()
}

// LoadCatalogue reads and validates a catalogue document from disk.
func LoadCatalogue(path string) (*Catalogue, error) {
	return catalogue.Load(path)
}

// Tree is a parsed document's AST root.
type Tree = ast.Tree

// Diagnostic is a single non-fatal parse problem.
type Diagnostic = ftmlerrors.Diagnostic

// Token is a single lexical unit, exposed for tooling that wants to inspect
// or render the raw token stream (e.g. a "tokenize" CLI subcommand).
type Token = lexer.Token

// CatalogueError reports a malformed block catalogue. It's the only error
// Parse itself can't recover from, because it happens before parsing starts.
type CatalogueError = ftmlerrors.CatalogueError

// Parse lexes and parses source against cat, returning the resulting tree
// and any diagnostics collected along the way. Parse never fails outright:
// every malformed construct in source degrades to a text node plus one
// diagnostic. If cat is nil, DefaultCatalogue is used; if settings is nil,
// DefaultSettings is used.
func Parse(source string, cat *Catalogue, settings *Settings) (*Tree, []*Diagnostic, error) {
	if cat == nil {
		var err error
		cat, err = DefaultCatalogue()
		if err != nil {
			return nil, nil, err
		}
	}
	s := DefaultSettings()
	if settings != nil {
		s = *settings
	}
	tree, diags := parser.Parse(source, cat, s)
	return tree, []*Diagnostic(diags), nil
}

// Tokenize runs just the lexer and token consolidation pass, without
// parsing. Useful for tooling and debugging the lexical layer in isolation.
func Tokenize(source string) []Token {
	return lexer.Consolidate(lexer.Lex(source))
}
