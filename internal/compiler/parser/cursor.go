// Package parser implements a block-aware recursive-descent parser over the
// lexer's consolidated token stream. It never hard-fails: every construct
// that doesn't parse degrades to a text node plus one diagnostic. The only
// unusual piece relative to a typical recursive-descent parser is
// checkpointing - save()/restore() used by the inline formatter to try a
// balanced-delimiter parse and cleanly back out if no closer is found,
// including rolling back any diagnostics emitted while trying.
package parser

import (
	"github.com/scpwiki/ftml/internal/catalogue"
	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
	"github.com/scpwiki/ftml/internal/compiler/lexer"
)

// Settings configures parse-time behavior.
type Settings struct {
	Layout              string // "wikidot" or "wikijump"
	AllowHTMLAttributes bool
	RecursionLimit      int
	EnableInclude       bool
}

// DefaultSettings returns the settings a bare Parse call uses when none are
// supplied.
func DefaultSettings() Settings {
	return Settings{
		Layout:              "wikidot",
		AllowHTMLAttributes: true,
		RecursionLimit:      100,
		EnableInclude:       false,
	}
}

// Parser walks a token stream and builds an AST, collecting diagnostics as
// it goes rather than failing.
type Parser struct {
	source    string
	tokens    []lexer.Token
	current   int
	diags     []*ftmlerrors.Diagnostic
	catalogue *catalogue.Catalogue
	settings  Settings
	depth     int
}

// New creates a Parser over an already-consolidated token stream.
func New(source string, tokens []lexer.Token, cat *catalogue.Catalogue, settings Settings) *Parser {
	return &Parser{
		source:    source,
		tokens:    tokens,
		catalogue: cat,
		settings:  settings,
	}
}

// checkpoint is an opaque save point for speculative parsing.
type checkpoint struct {
	pos        int
	diagsCount int
}

// save records the current cursor position and diagnostic count.
func (p *Parser) save() checkpoint {
	return checkpoint{pos: p.current, diagsCount: len(p.diags)}
}

// restore rewinds the cursor and truncates any diagnostics emitted since the
// matching save(). This is what makes speculative try-parse safe: a failed
// attempt leaves no trace.
func (p *Parser) restore(ck checkpoint) {
	p.current = ck.pos
	p.diags = p.diags[:ck.diagsCount]
}

func (p *Parser) isAtEnd() bool {
	return p.peek().Kind == lexer.KindEOF
}

func (p *Parser) peek() lexer.Token {
	if p.current >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.tokens[p.current]
}

func (p *Parser) peekAt(n int) lexer.Token {
	idx := p.current + n
	if idx >= len(p.tokens) {
		return lexer.Token{Kind: lexer.KindEOF}
	}
	return p.tokens[idx]
}

func (p *Parser) previous() lexer.Token {
	if p.current == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.current-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.current++
	}
	return tok
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

// consume advances past the expected kind, or emits a diagnostic and leaves
// the cursor in place so the caller can decide how to recover.
func (p *Parser) consume(kind lexer.Kind, code ftmlerrors.Code) (lexer.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.emitAtToken(code, p.peek())
	return lexer.Token{}, false
}

func (p *Parser) emit(code ftmlerrors.Code, span ftmlerrors.Span) {
	p.diags = append(p.diags, ftmlerrors.New(code, span))
}

func (p *Parser) emitAtToken(code ftmlerrors.Code, tok lexer.Token) {
	p.diags = append(p.diags, ftmlerrors.NewAtToken(code, tok))
}

// emitWithToken anchors a diagnostic at span while naming a token slice that
// differs from the span's own text, e.g. a NoSuchBlock error spanning the
// whole "[[foobar]]" opener but naming just "foobar".
func (p *Parser) emitWithToken(code ftmlerrors.Code, span ftmlerrors.Span, token string) {
	p.diags = append(p.diags, &ftmlerrors.Diagnostic{Kind: code, Span: span, Token: token})
}

// sliceSince returns the literal source text covered by tokens
// [from, p.current).
func (p *Parser) sliceSince(from int) string {
	if from >= p.current {
		return ""
	}
	return lexer.StringifyTokens(p.tokens[from:p.current])
}

func (p *Parser) spanSince(from int) ftmlerrors.Span {
	if from >= len(p.tokens) || p.current == from {
		return ftmlerrors.Span{}
	}
	start := p.tokens[from].Span.Start
	end := p.tokens[p.current-1].Span.End
	return ftmlerrors.Span{Start: start, End: end}
}
