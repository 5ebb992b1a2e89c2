// Package errors defines the diagnostic taxonomy the parser emits. Parsing
// itself never fails: every local problem degrades to a text fallback plus
// one Diagnostic here. The single fatal condition in the system - a
// malformed catalogue - is represented separately by CatalogueError.
package errors

import (
	"encoding/json"
	"fmt"

	"github.com/scpwiki/ftml/internal/compiler/lexer"
)

// Code names a diagnostic category.
type Code string

const (
	CodeNoSuchBlock             Code = "no-such-block"
	CodeBlockNotClosed          Code = "block-not-closed"
	CodeUnknownArgument         Code = "unknown-argument"
	CodeInvalidArgumentValue    Code = "invalid-argument-value"
	CodeMissingRequiredArgument Code = "missing-required-argument"
	CodeInvalidFlag             Code = "invalid-flag"
	CodeRecursionLimit          Code = "recursion-limit"
	CodeMismatchedCloser        Code = "mismatched-closer"
	CodeInvalidURL              Code = "invalid-url"
	CodeInvalidColor            Code = "invalid-color"
	CodeInvalidRuby             Code = "invalid-ruby"
	CodeInvalidInclude          Code = "invalid-include"
	CodeRawBlockNotClosed       Code = "raw-block-not-closed"
	CodeCommentNotClosed        Code = "comment-not-closed"
)

// Span is a byte range, mirroring lexer.Span without importing it for the
// plain-int-pair JSON shape.
type Span struct {
	Start int
	End   int
}

// Diagnostic is a single non-fatal parse problem, paired with a text
// fallback node at the same span.
type Diagnostic struct {
	Kind  Code
	Span  Span
	Token string // offending token slice, empty when not applicable
}

// New creates a Diagnostic anchored at span.
func New(kind Code, span Span) *Diagnostic {
	return &Diagnostic{Kind: kind, Span: span}
}

// NewAtToken creates a Diagnostic anchored at a single token, capturing its
// slice for display.
func NewAtToken(kind Code, tok lexer.Token) *Diagnostic {
	return &Diagnostic{
		Kind:  kind,
		Span:  Span{Start: tok.Span.Start, End: tok.Span.End},
		Token: tok.Slice,
	}
}

// Error implements the error interface, used for Go-side logging; the
// parser communicates diagnostics by value, never by returning error.
func (d *Diagnostic) Error() string {
	if d.Token != "" {
		return fmt.Sprintf("%s at [%d,%d) near %q", d.Kind, d.Span.Start, d.Span.End, d.Token)
	}
	return fmt.Sprintf("%s at [%d,%d)", d.Kind, d.Span.Start, d.Span.End)
}

type jsonDiagnostic struct {
	Kind  Code   `json:"kind"`
	Span  [2]int `json:"span"`
	Token string `json:"token,omitempty"`
}

// MarshalJSON implements the diagnostic JSON contract:
// {"kind": "...", "span": [start, end], "token": "<optional>"}.
func (d *Diagnostic) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonDiagnostic{
		Kind:  d.Kind,
		Span:  [2]int{d.Span.Start, d.Span.End},
		Token: d.Token,
	})
}

// List is a collection of diagnostics produced by one parse.
type List []*Diagnostic

// ToJSON renders the list per the error JSON contract: a bare JSON array.
func (l List) ToJSON() (string, error) {
	bytes, err := json.Marshal(l)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CatalogueError is the one fatal condition in the system: a malformed
// block catalogue detected at load time, before any document is parsed.
type CatalogueError struct {
	Message string
}

func (e *CatalogueError) Error() string {
	return "invalid catalogue: " + e.Message
}
