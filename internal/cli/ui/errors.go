package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
)

// ErrorLevel represents the severity of an error message
type ErrorLevel int

const (
	ErrorLevelError ErrorLevel = iota
	ErrorLevelWarning
	ErrorLevelInfo
)

// ErrorOptions configures the error message formatting
type ErrorOptions struct {
	Level        ErrorLevel
	Context      string
	Problem      string
	Consequence  string
	Suggestions  []string
	HelpCommands []string
	NoColor      bool
}

// FormatError creates a standardized error message with suggestions and help commands
//
// Example output:
//
//	❌ NO SUCH BLOCK: Cannot find block 'fooblock' in the catalogue.
//	   Cannot find block 'fooblock' in the catalogue.
//
//	   Did you mean: footer, code, blockquote?
//
//	   → See all blocks: ftml catalogue list
//	   → Get help: ftml parse --help
func FormatError(opts ErrorOptions) string {
	var b strings.Builder

	// Determine colors and symbol based on level
	var headerColor, bodyColor *color.Color
	var symbol string

	switch opts.Level {
	case ErrorLevelError:
		headerColor = color.New(color.FgRed, color.Bold)
		bodyColor = color.New(color.FgRed)
		symbol = "❌"
	case ErrorLevelWarning:
		headerColor = color.New(color.FgYellow, color.Bold)
		bodyColor = color.New(color.FgYellow)
		symbol = "⚠️"
	case ErrorLevelInfo:
		headerColor = color.New(color.FgCyan, color.Bold)
		bodyColor = color.New(color.FgCyan)
		symbol = "ℹ️"
	}

	// Disable colors if requested
	if opts.NoColor {
		headerColor.DisableColor()
		bodyColor.DisableColor()
	}

	// Header line with context
	if opts.Context != "" {
		headerColor.Fprintf(&b, "%s %s: %s\n", symbol, strings.ToUpper(opts.Context), opts.Problem)
	} else {
		headerColor.Fprintf(&b, "%s %s\n", symbol, opts.Problem)
	}

	// Problem description with indentation
	if opts.Problem != "" && opts.Context != "" {
		bodyColor.Fprintf(&b, "   %s\n", opts.Problem)
	}

	// Consequence (if provided)
	if opts.Consequence != "" {
		b.WriteString("\n")
		bodyColor.Fprintf(&b, "   %s\n", opts.Consequence)
	}

	// Suggestions
	if len(opts.Suggestions) > 0 {
		b.WriteString("\n")
		yellow := color.New(color.FgYellow)
		if opts.NoColor {
			yellow.DisableColor()
		}
		yellow.Fprintf(&b, "   Did you mean: %s?\n", strings.Join(opts.Suggestions, ", "))
	}

	// Help commands
	if len(opts.HelpCommands) > 0 {
		b.WriteString("\n")
		cyan := color.New(color.FgCyan)
		if opts.NoColor {
			cyan.DisableColor()
		}
		for _, cmd := range opts.HelpCommands {
			cyan.Fprintf(&b, "   → %s\n", cmd)
		}
	}

	return b.String()
}

// WriteError writes a formatted error message to the writer
func WriteError(w io.Writer, opts ErrorOptions) {
	fmt.Fprint(w, FormatError(opts))
}

// FormatSuccess creates a success message
func FormatSuccess(message string, noColor bool) string {
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		green.DisableColor()
	}
	return green.Sprintf("✓ %s", message)
}

// WriteSuccess writes a success message to the writer
func WriteSuccess(w io.Writer, message string, noColor bool) {
	fmt.Fprintln(w, FormatSuccess(message, noColor))
}

// DiagnosticError formats a parse diagnostic the way a compiler error would
// be shown on a terminal: the code, its span, and the offending token text
// when one was captured.
func DiagnosticError(d *ftmlerrors.Diagnostic, noColor bool) string {
	problem := fmt.Sprintf("%s at byte range [%d, %d)", d.Kind, d.Span.Start, d.Span.End)
	if d.Token != "" {
		problem = fmt.Sprintf("%s near %q", problem, d.Token)
	}
	opts := ErrorOptions{
		Level:   ErrorLevelWarning,
		Context: "PARSE DIAGNOSTIC",
		Problem: problem,
		NoColor: noColor,
	}
	return FormatError(opts)
}

// NoSuchBlockError creates a standardized unknown-block error.
func NoSuchBlockError(blockName string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "NO SUCH BLOCK",
		Problem:     fmt.Sprintf("Cannot find block '%s' in the catalogue.", blockName),
		Suggestions: suggestions,
		HelpCommands: []string{
			"See all blocks: ftml catalogue list",
			"Get help: ftml parse --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// CatalogueError creates a standardized catalogue-load error. Unlike parse
// diagnostics, a malformed catalogue stops ftml before parsing begins.
func CatalogueError(err *ftmlerrors.CatalogueError, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelError,
		Context: "CATALOGUE ERROR",
		Problem: err.Error(),
		HelpCommands: []string{
			"Check your catalogue file for duplicate or malformed block entries",
			"Get help: ftml --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// ConfigError creates a standardized configuration error
func ConfigError(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelError,
		Context:     "CONFIGURATION ERROR",
		Problem:     message,
		Suggestions: suggestions,
		HelpCommands: []string{
			"View config: cat ftml.yaml",
			"Get help: ftml --help",
		},
		NoColor: noColor,
	}
	return FormatError(opts)
}

// Warning creates a standardized warning message
func Warning(message string, suggestions []string, noColor bool) string {
	opts := ErrorOptions{
		Level:       ErrorLevelWarning,
		Problem:     message,
		Suggestions: suggestions,
		NoColor:     noColor,
	}
	return FormatError(opts)
}

// Info creates a standardized info message
func Info(message string, noColor bool) string {
	opts := ErrorOptions{
		Level:   ErrorLevelInfo,
		Problem: message,
		NoColor: noColor,
	}
	return FormatError(opts)
}
