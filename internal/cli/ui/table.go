package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// The widgets here are deliberately small: the CLI prints catalogue
// listings, per-block detail views, and scaffold summaries, and that's the
// whole surface. Every widget takes an explicit noColor flag so output
// stays readable when piped.

// style builds a color that's a no-op when noColor is set.
func style(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	}
	return c
}

// pad right-pads s with spaces to the target width.
func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Table prints column-aligned rows under a bold header and rule, used by
// "ftml catalogue list".
type Table struct {
	w       io.Writer
	headers []string
	rows    [][]string
	noColor bool
}

// NewTable creates a table with the given column headers.
func NewTable(w io.Writer, headers []string, noColor bool) *Table {
	return &Table{w: w, headers: headers, noColor: noColor}
}

// AddRow appends one row; short rows leave trailing columns empty.
func (t *Table) AddRow(cells ...string) {
	t.rows = append(t.rows, cells)
}

// Render writes the table with each column padded to its widest cell.
func (t *Table) Render() {
	if len(t.headers) == 0 {
		return
	}

	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = len(h)
	}
	for _, row := range t.rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	head := style(t.noColor, color.Bold, color.FgCyan)
	for i, h := range t.headers {
		head.Fprint(t.w, pad(h, widths[i]))
		if i < len(t.headers)-1 {
			fmt.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)

	rule := style(t.noColor, color.FgHiBlack)
	for i, width := range widths {
		rule.Fprint(t.w, strings.Repeat("─", width))
		if i < len(widths)-1 {
			rule.Fprint(t.w, "  ")
		}
	}
	fmt.Fprintln(t.w)

	for _, row := range t.rows {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			fmt.Fprint(t.w, pad(cell, widths[i]))
			if i < len(row)-1 {
				fmt.Fprint(t.w, "  ")
			}
		}
		fmt.Fprintln(t.w)
	}
}

// KeyValueTable prints aligned "key: value" lines, used for the head/body/
// flag summary in "ftml catalogue show".
type KeyValueTable struct {
	w       io.Writer
	keys    []string
	values  []string
	noColor bool
}

// NewKeyValueTable creates an empty key-value table.
func NewKeyValueTable(w io.Writer, noColor bool) *KeyValueTable {
	return &KeyValueTable{w: w, noColor: noColor}
}

// AddRow appends one pair.
func (t *KeyValueTable) AddRow(key, value string) {
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

// Render writes the pairs with keys padded to a common column.
func (t *KeyValueTable) Render() {
	width := 0
	for _, k := range t.keys {
		if len(k) > width {
			width = len(k)
		}
	}

	keyStyle := style(t.noColor, color.FgCyan)
	for i, k := range t.keys {
		keyStyle.Fprint(t.w, pad(k+":", width+1))
		fmt.Fprintf(t.w, " %s\n", t.values[i])
	}
}

// Section prints a bold title over indented content lines, with a trailing
// blank line separating it from whatever follows.
type Section struct {
	w       io.Writer
	title   string
	lines   []string
	noColor bool
}

// NewSection creates a section with the given title.
func NewSection(w io.Writer, title string, noColor bool) *Section {
	return &Section{w: w, title: title, noColor: noColor}
}

// AddLine appends one content line.
func (s *Section) AddLine(line string) {
	s.lines = append(s.lines, line)
}

// Render writes the section.
func (s *Section) Render() {
	style(s.noColor, color.Bold, color.FgCyan).Fprintln(s.w, s.title)
	for _, line := range s.lines {
		fmt.Fprintf(s.w, "  %s\n", line)
	}
	fmt.Fprintln(s.w)
}

// List prints bulleted items, used for a block's argument list.
type List struct {
	w       io.Writer
	items   []string
	noColor bool
}

// NewList creates an empty list.
func NewList(w io.Writer, noColor bool) *List {
	return &List{w: w, noColor: noColor}
}

// AddItem appends one item.
func (l *List) AddItem(item string) {
	l.items = append(l.items, item)
}

// Render writes the items.
func (l *List) Render() {
	bullet := style(l.noColor, color.FgCyan)
	for _, item := range l.items {
		bullet.Fprint(l.w, "• ")
		fmt.Fprintln(l.w, item)
	}
}

// Header prints a bold title over a rule of the same width.
func Header(w io.Writer, title string, noColor bool) {
	style(noColor, color.Bold, color.FgCyan).Fprintln(w, title)
	style(noColor, color.FgHiBlack).Fprintln(w, strings.Repeat("─", len(title)))
}
