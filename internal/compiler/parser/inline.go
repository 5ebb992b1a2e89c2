package parser

import (
	"strings"

	"github.com/scpwiki/ftml/internal/compiler/ast"
	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
	"github.com/scpwiki/ftml/internal/compiler/lexer"
)

// formatDelimiters maps a formatting open token to the Kind it produces and
// the closer token expected to balance it. Bold/Italics/Underline/Super/Sub
// and Strike share a closer identical to their opener; Monospace uses
// distinct left/right tokens. Color is not listed here (tryParseColor).
var formatDelimiters = map[lexer.Kind]struct {
	kind   ast.Kind
	closer lexer.Kind
}{
	lexer.KindBold:          {ast.KindBold, lexer.KindBold},
	lexer.KindItalics:       {ast.KindItalics, lexer.KindItalics},
	lexer.KindUnderline:     {ast.KindUnderline, lexer.KindUnderline},
	lexer.KindSuperscript:   {ast.KindSuperscript, lexer.KindSuperscript},
	lexer.KindSubscript:     {ast.KindSubscript, lexer.KindSubscript},
	lexer.KindDoubleDash:    {ast.KindStrike, lexer.KindDoubleDash},
	lexer.KindLeftMonospace: {ast.KindMonospace, lexer.KindRightMonospace},
}

// parseInline dispatches on the current token's kind and returns exactly one
// node (never nil; unrecognized tokens fall back to literal text).
func (p *Parser) parseInline() *ast.Node {
	tok := p.peek()

	switch tok.Kind {
	case lexer.KindBold, lexer.KindItalics, lexer.KindUnderline, lexer.KindSuperscript,
		lexer.KindSubscript, lexer.KindDoubleDash, lexer.KindLeftMonospace:
		if n := p.tryParseFormatted(tok.Kind); n != nil {
			return n
		}
		return p.consumeLiteral()

	case lexer.KindColor:
		if n := p.tryParseColor(); n != nil {
			return n
		}
		return p.consumeLiteral()

	case lexer.KindLeftLinkStar, lexer.KindLeftLink:
		if n := p.tryParseWikiLink(); n != nil {
			return n
		}
		return p.consumeLiteral()

	case lexer.KindLeftBracket, lexer.KindLeftBracketStar, lexer.KindLeftBracketAnchor:
		if n := p.tryParseFreeLink(); n != nil {
			return n
		}
		return p.consumeLiteral()

	case lexer.KindRaw, lexer.KindLeftRaw:
		return p.parseRaw(tok.Kind)

	case lexer.KindVariable:
		p.advance()
		node := &ast.Node{Kind: ast.KindVariable, Span: ast.SpanFromToken(tok)}
		node.SetAttr("name", strings.Trim(tok.Slice, "{}$"))
		return node

	case lexer.KindURL:
		p.advance()
		node := &ast.Node{Kind: ast.KindLink, Span: ast.SpanFromToken(tok)}
		node.SetAttr("url", tok.Slice)
		node.AppendChild(ast.NewText(tok.Slice, ast.SpanFromToken(tok)))
		return node

	case lexer.KindEmail:
		p.advance()
		node := &ast.Node{Kind: ast.KindLink, Span: ast.SpanFromToken(tok)}
		node.SetAttr("url", "mailto:"+tok.Slice)
		node.AppendChild(ast.NewText(tok.Slice, ast.SpanFromToken(tok)))
		return node

	default:
		return p.consumeLiteral()
	}
}

// consumeLiteral advances one token and returns its slice as a text node.
// This is the universal fallback: every token kind the grammar doesn't
// special-case (Equals, Colon, Underscore, DoubleTilde, stray brackets,
// Identifier, Space, Text, Other, ...) degrades to its own literal text.
func (p *Parser) consumeLiteral() *ast.Node {
	tok := p.advance()
	value := tok.Slice
	if tok.Kind == lexer.KindString {
		if s, ok := tok.Literal.(string); ok {
			value = s
		}
	}
	return ast.NewText(value, ast.SpanFromToken(tok))
}

// tryParseFormatted attempts a balanced-delimiter parse for the simple
// formatting marks (bold, italics, underline, super/subscript, strike,
// monospace). It checkpoints so a missing closer costs nothing.
func (p *Parser) tryParseFormatted(openKind lexer.Kind) *ast.Node {
	spec := formatDelimiters[openKind]
	ck := p.save()
	start := p.current
	p.advance() // opener

	children := p.parseFlow(func(t lexer.Token) bool {
		return t.Kind == spec.closer || t.Kind == lexer.KindParagraphBreak
	})
	if !p.check(spec.closer) {
		p.restore(ck)
		return nil
	}
	p.advance()

	node := &ast.Node{Kind: spec.kind, Span: ast.Span(p.spanSince(start))}
	for _, c := range children {
		if c.Kind == ast.KindParagraph {
			for _, gc := range c.Children {
				node.AppendChild(gc)
			}
			continue
		}
		node.AppendChild(c)
	}
	return node
}

// tryParseColor handles "##color|text##", a map-like single-argument
// formatting span rather than a plain balanced delimiter.
func (p *Parser) tryParseColor() *ast.Node {
	ck := p.save()
	start := p.current
	p.advance() // opening ##

	colorName := ""
	switch {
	case p.check(lexer.KindIdentifier):
		colorName = p.advance().Slice
		if !p.check(lexer.KindPipe) {
			p.restore(ck)
			return nil
		}
		p.advance()
	case p.check(lexer.KindPipe):
		// "##|text##": the color-span syntax with nothing named. Keep the
		// span, flag the missing color. The diagnostic rolls back with the
		// checkpoint if no closer turns up.
		p.emitAtToken(ftmlerrors.CodeInvalidColor, p.peek())
		p.advance()
	}

	children := p.parseFlow(func(t lexer.Token) bool {
		return t.Kind == lexer.KindColor || t.Kind == lexer.KindParagraphBreak
	})
	if !p.check(lexer.KindColor) {
		p.restore(ck)
		return nil
	}
	p.advance()

	node := &ast.Node{Kind: ast.KindColorText, Span: ast.Span(p.spanSince(start))}
	if colorName != "" {
		node.SetAttr("color", colorName)
	}
	for _, c := range children {
		if c.Kind == ast.KindParagraph {
			for _, gc := range c.Children {
				node.AppendChild(gc)
			}
			continue
		}
		node.AppendChild(c)
	}
	return node
}

// tryParseWikiLink handles "[[[target|label]]]" and "[[[*target|label]]]".
func (p *Parser) tryParseWikiLink() *ast.Node {
	ck := p.save()
	start := p.current
	opener := p.advance() // LeftLinkStar / LeftLink
	newTab := opener.Kind == lexer.KindLeftLinkStar

	var target strings.Builder
	for !p.isAtEnd() && !p.check(lexer.KindPipe) && !p.check(lexer.KindRightLink) {
		target.WriteString(p.advance().Slice)
	}

	label := strings.TrimSpace(target.String())
	if p.check(lexer.KindPipe) {
		p.advance()
		var lb strings.Builder
		for !p.isAtEnd() && !p.check(lexer.KindRightLink) {
			lb.WriteString(p.advance().Slice)
		}
		label = strings.TrimSpace(lb.String())
	}

	if !p.check(lexer.KindRightLink) {
		p.restore(ck)
		return nil
	}
	p.advance()

	node := &ast.Node{Kind: ast.KindLink, Span: ast.Span(p.spanSince(start))}
	node.SetAttr("url", strings.TrimSpace(target.String()))
	if newTab {
		node.SetAttr("new-tab", true)
	}
	if label != "" {
		node.AppendChild(ast.NewText(label, node.Span))
	}
	return node
}

// tryParseFreeLink handles "[url label]", "[*url label]", and
// "[#anchor label]". A bare "[" only opens a link when a URL follows;
// anything else stays literal bracket text.
func (p *Parser) tryParseFreeLink() *ast.Node {
	ck := p.save()
	start := p.current
	opener := p.advance() // LeftBracket / LeftBracketStar / LeftBracketAnchor
	anchor := opener.Kind == lexer.KindLeftBracketAnchor
	newTab := opener.Kind == lexer.KindLeftBracketStar

	if !anchor && !p.check(lexer.KindURL) {
		p.restore(ck)
		return nil
	}

	var urlBuilder strings.Builder
	for !p.isAtEnd() && !p.check(lexer.KindSpace) && !p.check(lexer.KindRightBracket) {
		urlBuilder.WriteString(p.advance().Slice)
	}
	url := urlBuilder.String()

	var label strings.Builder
	if p.check(lexer.KindSpace) {
		p.advance()
		for !p.isAtEnd() && !p.check(lexer.KindRightBracket) {
			label.WriteString(p.advance().Slice)
		}
	}

	if !p.check(lexer.KindRightBracket) {
		p.restore(ck)
		return nil
	}
	p.advance()

	kind := ast.KindLink
	if anchor {
		kind = ast.KindAnchor
		url = "#" + url
	}
	node := &ast.Node{Kind: kind, Span: ast.Span(p.spanSince(start))}
	node.SetAttr("url", url)
	if newTab {
		node.SetAttr("new-tab", true)
	}
	text := strings.TrimSpace(label.String())
	if text == "" {
		text = url
	}
	node.AppendChild(ast.NewText(text, node.Span))
	return node
}

// parseRaw handles "@@literal@@" and "@<literal>@": the lexer tokenizes the
// interior normally, but the parser discards that tokenization and slices
// the literal source directly between the matching delimiters, per the
// stateless-lexer design - raw content is never reinterpreted as markup.
func (p *Parser) parseRaw(openKind lexer.Kind) *ast.Node {
	start := p.current
	p.advance() // opening delimiter

	closer := lexer.KindRaw
	if openKind == lexer.KindLeftRaw {
		closer = lexer.KindRightRaw
	}

	contentStart := p.current
	for !p.isAtEnd() && !p.check(closer) {
		p.advance()
	}
	if !p.check(closer) {
		p.emit(ftmlerrors.CodeRawBlockNotClosed, p.spanSince(start))
		return ast.NewText(p.sliceSince(start), ast.Span(p.spanSince(start)))
	}
	literal := p.sliceSince(contentStart)
	p.advance() // closing delimiter

	node := ast.NewElement(ast.KindRaw, ast.Span(p.spanSince(start)))
	node.Value = literal
	// Raw nodes aren't text leaves, so Value alone would vanish from the
	// JSON tree; expose the literal as a "body" attribute the same way
	// math and raw-bodied blocks do.
	node.SetAttr("body", literal)
	return node
}
