package parser

import (
	"strings"

	"github.com/scpwiki/ftml/internal/catalogue"
	"github.com/scpwiki/ftml/internal/compiler/ast"
	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
	"github.com/scpwiki/ftml/internal/compiler/lexer"
)

// parseBlockTag handles the full "[[name head]] body [[/name]]" shape,
// including the star/score anchor variants and the catalogue-declared head
// and body kinds. On any recognition failure it degrades to a text node
// covering whatever was consumed.
func (p *Parser) parseBlockTag() *ast.Node {
	start := p.current
	opener := p.advance() // LeftBlock / LeftBlockStar / LeftBlockAnchor

	star := opener.Kind == lexer.KindLeftBlockStar
	anchor := opener.Kind == lexer.KindLeftBlockAnchor

	// Score flag: "[[_name ...]]", the newline-suppressing variant.
	score := false
	if p.check(lexer.KindUnderscore) {
		score = true
		p.advance()
	}

	nameTok, ok := p.consume(lexer.KindIdentifier, ftmlerrors.CodeNoSuchBlock)
	if !ok {
		return p.fallbackText(start)
	}
	name := nameTok.Slice

	spec, found := p.catalogue.Resolve(name)
	if !found {
		p.emitWithToken(ftmlerrors.CodeNoSuchBlock, p.openingTagSpan(start), nameTok.Slice)
		return p.fallbackText(start)
	}
	if star && !spec.AcceptsStar {
		p.emitAtToken(ftmlerrors.CodeInvalidFlag, nameTok)
	}
	if score && !spec.AcceptsScore {
		p.emitAtToken(ftmlerrors.CodeInvalidFlag, nameTok)
	}
	if anchor {
		// Anchor blocks are headless id markers; no head/body/closer expected.
		p.consumeClosingBracket()
		node := &ast.Node{Kind: ast.KindAnchor, Span: ast.Span(p.spanSince(start))}
		node.SetAttr("name", name)
		return node
	}

	value, attrs := p.parseBlockHead(spec)
	if !p.consumeClosingBracket() {
		return p.fallbackText(start)
	}

	// Module and include arguments follow schemas external to the catalogue,
	// so only ordinary blocks validate against the argument table (which also
	// fills omitted optionals from their declared defaults).
	if spec.Special == "" {
		p.validateArguments(spec, attrs, p.spanSince(start))
	}

	node := &ast.Node{}
	switch {
	case spec.Name == "a":
		// The catalogue's "a" block doesn't produce a generic block
		// container: it maps onto the same Anchor kind used by [[#name]]
		// markers and [#anchor label] free links, carrying its href from
		// the map head instead of a name/value attribute pair.
		node.Kind = ast.KindAnchor
		if href, ok := attrs["href"]; ok {
			node.SetAttr("href", href)
		}
	case spec.Special == "module":
		// Modules record the request and nothing else; the module name is
		// the head value, and the remaining pairs are module arguments the
		// renderer's schema interprets, not the catalogue's.
		node.Kind = ast.KindModule
		node.SetAttr("module", value)
		for k, v := range attrs {
			node.SetAttr(k, v)
		}
	case spec.Special == "include" || spec.Special == "include-elements":
		// Includes record the page reference and its variable bindings;
		// the actual substitution is an external pre-pass.
		node.Kind = ast.KindInclude
		node.SetAttr("target", value)
		if len(attrs) > 0 {
			vars := make(map[string]interface{}, len(attrs))
			for k, v := range attrs {
				vars[k] = v
			}
			node.SetAttr("vars", vars)
		}
	default:
		node.Kind = ast.KindBlock
		node.SetAttr("name", spec.Name)
		if value != "" {
			node.SetAttr("value", value)
		}
		for k, v := range attrs {
			node.SetAttr(k, v)
		}
		// The starred variant is recorded on the node itself for
		// catalogue-driven blocks like [[*user]]/[[*checkbox]]; rendering
		// the distinction is the renderer's job, the parser's job is only
		// to not lose it.
		if star && spec.AcceptsStar {
			node.SetAttr("star", true)
		}
		if score && spec.AcceptsScore {
			node.SetAttr("score", true)
		}
	}

	switch spec.Special {
	case "module":
		p.parseModuleBody(node, spec)
	case "include", "include-elements":
		p.parseIncludeBody(node, spec, p.spanSince(start))
	default:
		p.parseGenericBody(node, spec)
	}

	// A ruby annotation with no content at all renders as nothing; flag it
	// rather than silently emitting an empty element.
	if spec.Name == "ruby" && len(node.Children) == 0 {
		p.emit(ftmlerrors.CodeInvalidRuby, p.spanSince(start))
	}

	node.Span = ast.Span(p.spanSince(start))
	return node
}

// parseBlockHead consumes everything between the block name and the closing
// "]]" according to the block's declared head kind, returning a bare value (for
// value/value+map heads) and a key/value attribute map (for map/value+map
// heads).
func (p *Parser) parseBlockHead(spec *catalogue.BlockSpec) (string, map[string]string) {
	attrs := make(map[string]string)
	var value strings.Builder

	if spec.Head == catalogue.HeadNone {
		return "", attrs
	}

	for !p.isAtEnd() && !p.check(lexer.KindRightBlock) {
		// Heads never span lines. Stopping here leaves an unclosed opener's
		// BlockNotClosed fallback covering just its own line, not the rest
		// of the document.
		if p.check(lexer.KindLineBreak) || p.check(lexer.KindParagraphBreak) {
			break
		}
		if p.checkAhead(lexer.KindEquals) && spec.Head != catalogue.HeadValue {
			key := p.advance().Slice
			p.advance() // Equals
			p.skipLeadingSpace()
			attrs[key] = p.parseHeadScalar()
			continue
		}

		if spec.Head == catalogue.HeadMap {
			if p.check(lexer.KindSpace) {
				p.advance()
				continue
			}
			// Unexpected bare token in a map-only head; skip it.
			p.emitAtToken(ftmlerrors.CodeUnknownArgument, p.peek())
			p.advance()
			continue
		}

		// Value text accumulates verbatim, spaces included, so multi-token
		// targets like "component:image-block" survive without inserted
		// gaps; leading/trailing whitespace is trimmed at the end.
		tok := p.advance()
		if tok.Kind == lexer.KindString {
			if s, ok := tok.Literal.(string); ok {
				value.WriteString(s)
				continue
			}
		}
		value.WriteString(tok.Slice)
	}

	return strings.TrimSpace(value.String()), attrs
}

// checkAhead reports whether the token after the current one has kind k,
// used to distinguish a bare value token from the start of a "key=value"
// pair without consuming anything.
func (p *Parser) checkAhead(k lexer.Kind) bool {
	if !p.check(lexer.KindIdentifier) {
		return false
	}
	return p.peekAt(1).Kind == k
}

// parseHeadScalar reads one map value: either a quoted String token (the
// escaped literal), or a run of non-structural tokens terminated by
// whitespace or the closing "]]".
func (p *Parser) parseHeadScalar() string {
	if p.check(lexer.KindString) {
		tok := p.advance()
		if s, ok := tok.Literal.(string); ok {
			return s
		}
		return tok.Slice
	}
	var b strings.Builder
	for !p.isAtEnd() {
		switch p.peek().Kind {
		case lexer.KindSpace, lexer.KindRightBlock, lexer.KindLineBreak, lexer.KindParagraphBreak:
			return b.String()
		}
		b.WriteString(p.advance().Slice)
	}
	return b.String()
}

// validateArguments checks the parsed head pairs against the block's
// argument table, anchoring every diagnostic at the opening tag's span.
func (p *Parser) validateArguments(spec *catalogue.BlockSpec, attrs map[string]string, tagSpan ftmlerrors.Span) {
	known := make(map[string]*catalogue.ArgumentSpec)
	for i := range spec.Arguments {
		known[spec.Arguments[i].Name] = &spec.Arguments[i]
	}

	// A missing optional argument is filled from its catalogue-declared
	// default before anything else runs, so a renderer sees the same
	// attribute set whether the author wrote it out or relied on the
	// default.
	for _, arg := range spec.Arguments {
		if arg.Default == "" {
			continue
		}
		if _, ok := attrs[arg.Name]; !ok {
			attrs[arg.Name] = arg.Default
		}
	}

	for key, val := range attrs {
		arg, ok := known[key]
		if !ok {
			// Unknown keys are tolerated only when both the block and the
			// parse settings allow pass-through HTML attributes.
			if !spec.HTMLAttributes || !p.settings.AllowHTMLAttributes {
				p.emitWithToken(ftmlerrors.CodeUnknownArgument, tagSpan, key)
			}
			continue
		}
		if len(arg.Enum) > 0 {
			valid := false
			for _, e := range arg.Enum {
				if e == val {
					valid = true
					break
				}
			}
			if !valid {
				p.emitWithToken(ftmlerrors.CodeInvalidArgumentValue, tagSpan, val)
				continue
			}
		}
		if _, err := arg.Coerce(val); err != nil {
			p.emitWithToken(ftmlerrors.CodeInvalidArgumentValue, tagSpan, val)
		}
	}
	for _, arg := range spec.Arguments {
		if arg.Required {
			if _, ok := attrs[arg.Name]; !ok {
				p.emitWithToken(ftmlerrors.CodeMissingRequiredArgument, tagSpan, arg.Name)
			}
		}
	}
}

func (p *Parser) consumeClosingBracket() bool {
	_, ok := p.consume(lexer.KindRightBlock, ftmlerrors.CodeBlockNotClosed)
	return ok
}

// parseGenericBody parses a block's body per its BodyKind: none bodies
// consume nothing, raw bodies are a verbatim source slice up to the closer,
// elements bodies recurse through parseFlow bounded by the matching
// "[[/name]]".
func (p *Parser) parseGenericBody(node *ast.Node, spec *catalogue.BlockSpec) {
	switch spec.Body {
	case catalogue.BodyNone:
		return
	case catalogue.BodyRaw:
		from := p.current
		for !p.isAtEnd() && !p.atClosingTag(spec.Name) {
			p.advance()
		}
		raw := p.sliceSince(from)
		node.Value = raw
		// Generic (non-text) nodes don't serialize Value, so a raw body is
		// also exposed as a "body" attribute for the JSON tree contract.
		node.SetAttr("body", raw)
		p.consumeClosingTag(spec.Name)
	case catalogue.BodyElements:
		p.depth++
		if p.depth > p.settings.RecursionLimit {
			p.emitAtToken(ftmlerrors.CodeRecursionLimit, p.previous())
			// Exceeding the limit falls back to text rather than recursing
			// further. Skip to the matching closer the same way
			// fallbackText does elsewhere, so the cursor doesn't desync
			// for whatever follows this block.
			bodyStart := p.current
			for !p.isAtEnd() && !p.atClosingTag(spec.Name) {
				p.advance()
			}
			if p.current > bodyStart {
				node.AppendChild(ast.NewText(p.sliceSince(bodyStart), ast.Span(p.spanSince(bodyStart))))
			}
			p.consumeClosingTag(spec.Name)
			p.depth--
			return
		}
		children := p.parseFlow(func(lexer.Token) bool {
			return p.atClosingTag(spec.Name)
		})
		// Inline-shaped containers (anchors, spans, scored blocks) suppress
		// the implicit paragraph wrapper their content would otherwise get.
		inline := node.Kind == ast.KindAnchor || isInlineBlock(node)
		for _, c := range children {
			if inline && c.Kind == ast.KindParagraph {
				for _, gc := range c.Children {
					node.AppendChild(gc)
				}
				continue
			}
			node.AppendChild(c)
		}
		p.consumeClosingTag(spec.Name)
		p.depth--
	}
}

func (p *Parser) parseModuleBody(node *ast.Node, spec *catalogue.BlockSpec) {
	// Modules are opaque to the parser: their body is a server-side
	// component the renderer resolves, not wikitext to descend into.
	p.parseGenericBody(node, &catalogue.BlockSpec{Name: spec.Name, Body: catalogue.BodyRaw})
}

func (p *Parser) parseIncludeBody(node *ast.Node, spec *catalogue.BlockSpec, openSpan ftmlerrors.Span) {
	if target, ok := node.Attr("target"); !ok || target == "" {
		p.emit(ftmlerrors.CodeInvalidInclude, openSpan)
	} else if !p.settings.EnableInclude {
		p.emit(ftmlerrors.CodeInvalidInclude, openSpan)
	}
	if spec.Body == catalogue.BodyElements {
		p.parseGenericBody(node, spec)
	}
}

// atClosingTag reports whether the cursor sits at "[[/name]]" (or any
// closing tag, when name is empty), case-insensitively.
func (p *Parser) atClosingTag(name string) bool {
	if !p.check(lexer.KindLeftBlockEnd) {
		return false
	}
	id := p.peekAt(1)
	if id.Kind != lexer.KindIdentifier {
		return false
	}
	return strings.EqualFold(id.Slice, name)
}

func (p *Parser) consumeClosingTag(name string) {
	if !p.atClosingTag(name) {
		p.emitAtToken(ftmlerrors.CodeBlockNotClosed, p.previous())
		return
	}
	p.advance() // LeftBlockEnd
	p.advance() // name identifier
	p.consume(lexer.KindRightBlock, ftmlerrors.CodeBlockNotClosed)
}

// openingTagSpan reports the span of the whole "[[name ...]]" opening tag
// starting at token index start, looking ahead (without consuming anything)
// to the next RightBlock token. This is used for diagnostics raised before
// the head/closer has actually been parsed - e.g. an unresolved block name,
// where the error must cover the whole "[[foobar]]" opener and not just
// the bare "foobar" identifier token. If end of input, a paragraph break or
// another block opener comes before any RightBlock, the span covers only
// what's been consumed so far.
func (p *Parser) openingTagSpan(start int) ftmlerrors.Span {
	end := p.spanSince(start).End
	for i := 0; ; i++ {
		tok := p.peekAt(i)
		if tok.Kind == lexer.KindRightBlock {
			end = tok.Span.End
			break
		}
		if tok.Kind == lexer.KindEOF || tok.Kind == lexer.KindParagraphBreak ||
			tok.Kind == lexer.KindLeftBlock || tok.Kind == lexer.KindLeftBlockEnd ||
			tok.Kind == lexer.KindLeftBlockStar || tok.Kind == lexer.KindLeftBlockAnchor {
			break
		}
	}
	return ftmlerrors.Span{Start: p.tokens[start].Span.Start, End: end}
}

// fallbackText converts everything consumed since start back into a single
// literal text node, used whenever block recognition fails partway through.
func (p *Parser) fallbackText(start int) *ast.Node {
	if p.current == start {
		p.advance()
	}
	slice := p.sliceSince(start)
	return ast.NewText(slice, ast.Span(p.spanSince(start)))
}

// parseList consumes a run of BulletItem/NumberedItem lines into a single
// List node. The list is flat: indentation does not create nested child
// lists.
func (p *Parser) parseList() *ast.Node {
	start := p.current
	kind := p.peek().Kind
	list := &ast.Node{Kind: ast.KindList}
	if kind == lexer.KindNumberedItem {
		list.SetAttr("ordered", true)
	}

	for !p.isAtEnd() && p.check(kind) {
		p.advance()
		p.skipLeadingSpace()
		item := &ast.Node{Kind: ast.KindListItem}
		children := p.parseFlow(func(t lexer.Token) bool {
			return t.Kind == lexer.KindBulletItem || t.Kind == lexer.KindNumberedItem ||
				t.Kind == lexer.KindParagraphBreak
		})
		for _, c := range children {
			if c.Kind == ast.KindParagraph {
				for _, gc := range c.Children {
					item.AppendChild(gc)
				}
				continue
			}
			item.AppendChild(c)
		}
		list.AppendChild(item)
	}
	list.Span = ast.Span(p.spanSince(start))
	return list
}

// parseTable consumes a run of "||"-delimited rows into a Table node. Each
// row is split on column delimiters; a leading "~" marker turns a cell into
// a header title cell.
func (p *Parser) parseTable() *ast.Node {
	start := p.current
	table := &ast.Node{Kind: ast.KindTable}

	for p.atTableRowStart() {
		row := &ast.Node{Kind: ast.KindTableRow}
		for p.atTableRowStart() {
			colTok := p.advance()
			// The "||" before a line break closes the row; it is not the
			// start of one more (empty) cell.
			switch p.peek().Kind {
			case lexer.KindLineBreak, lexer.KindParagraphBreak, lexer.KindEOF:
				continue
			}
			cell := &ast.Node{Kind: ast.KindTableCell}
			switch colTok.Kind {
			case lexer.KindTableColumnLeft:
				cell.SetAttr("align", "left")
			case lexer.KindTableColumnRight:
				cell.SetAttr("align", "right")
			case lexer.KindTableColumnCenter:
				cell.SetAttr("align", "center")
			case lexer.KindTableColumnTitle:
				cell.SetAttr("header", true)
			}
			children := p.parseFlow(func(t lexer.Token) bool {
				switch t.Kind {
				case lexer.KindTableColumn, lexer.KindTableColumnLeft, lexer.KindTableColumnRight,
					lexer.KindTableColumnCenter, lexer.KindTableColumnTitle,
					lexer.KindLineBreak, lexer.KindParagraphBreak:
					return true
				}
				return false
			})
			for _, c := range children {
				if c.Kind == ast.KindParagraph {
					for _, gc := range c.Children {
						cell.AppendChild(gc)
					}
					continue
				}
				cell.AppendChild(c)
			}
			row.AppendChild(cell)
		}
		table.AppendChild(row)
		if p.check(lexer.KindLineBreak) {
			p.advance()
		}
	}
	table.Span = ast.Span(p.spanSince(start))
	return table
}

func (p *Parser) atTableRowStart() bool {
	switch p.peek().Kind {
	case lexer.KindTableColumn, lexer.KindTableColumnLeft, lexer.KindTableColumnRight,
		lexer.KindTableColumnCenter, lexer.KindTableColumnTitle:
		return true
	}
	return false
}
