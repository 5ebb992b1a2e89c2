package parser

import (
	"github.com/scpwiki/ftml/internal/catalogue"
	"github.com/scpwiki/ftml/internal/compiler/ast"
	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
	"github.com/scpwiki/ftml/internal/compiler/lexer"
)

// Parse lexes, consolidates, and parses source into a Tree plus whatever
// diagnostics were collected along the way. It never returns an error: a
// malformed catalogue is the only condition that fails before parsing
// begins, and that's surfaced separately by catalogue.Load.
func Parse(source string, cat *catalogue.Catalogue, settings Settings) (*ast.Tree, ftmlerrors.List) {
	tokens := lexer.Consolidate(lexer.Lex(source))
	p := New(source, tokens, cat, settings)
	return p.ParseDocument()
}

// ParseDocument runs the parser to completion over its token stream.
func (p *Parser) ParseDocument() (*ast.Tree, ftmlerrors.List) {
	tree := ast.NewTree()
	children := p.parseFlow(func(lexer.Token) bool { return false })
	for _, c := range children {
		tree.Root.AppendChild(c)
	}
	return tree, ftmlerrors.List(p.diags)
}

// stopFn decides whether the flow parser should stop before consuming the
// given token (used to bound a block's body to its closing tag).
type stopFn func(lexer.Token) bool

// parseFlow parses a mixed sequence of block and inline content until stop
// returns true (or EOF), grouping runs of inline content between paragraph
// breaks and block starts into paragraph nodes.
func (p *Parser) parseFlow(stop stopFn) []*ast.Node {
	var out []*ast.Node
	var para *ast.Node

	flush := func() {
		if para != nil && len(para.Children) > 0 {
			out = append(out, para)
		}
		para = nil
	}

	appendInline := func(n *ast.Node) {
		if n == nil {
			return
		}
		if para == nil {
			para = &ast.Node{Kind: ast.KindParagraph}
		}
		para.AppendChild(n)
	}

	for !p.isAtEnd() && !stop(p.peek()) {
		tok := p.peek()

		switch tok.Kind {
		case lexer.KindParagraphBreak:
			p.advance()
			flush()
		case lexer.KindLineBreak:
			p.advance()
			appendInline(&ast.Node{Kind: ast.KindLineBreak, Span: ast.SpanFromToken(tok)})
		case lexer.KindLeftBlock, lexer.KindLeftBlockStar, lexer.KindLeftBlockAnchor:
			node := p.parseBlockTag()
			// A failed block degrades to literal text; anchors (the "a"
			// block, or a "[[#name]]" id marker), leaf markers like
			// [[user]], and score-flagged blocks all read as inline content.
			// None of those should force a paragraph break.
			if node.Kind == ast.KindText || node.Kind == ast.KindAnchor || isInlineBlock(node) {
				appendInline(node)
			} else {
				flush()
				out = append(out, node)
			}
		case lexer.KindLeftBlockEnd:
			appendInline(p.parseStrayCloser())
		case lexer.KindHeading:
			if !p.atLineStart() {
				appendInline(p.consumeLiteral())
				break
			}
			flush()
			out = append(out, p.parseHeading())
		case lexer.KindTripleDash:
			if !p.atLineStart() {
				appendInline(p.consumeLiteral())
				break
			}
			flush()
			p.advance()
			out = append(out, &ast.Node{Kind: ast.KindHorizontalRule, Span: ast.SpanFromToken(tok)})
		case lexer.KindClearFloat, lexer.KindClearFloatLeft, lexer.KindClearFloatRight:
			flush()
			p.advance()
			node := &ast.Node{Kind: ast.KindClearFloat, Span: ast.SpanFromToken(tok)}
			switch tok.Kind {
			case lexer.KindClearFloatLeft:
				node.SetAttr("float", "left")
			case lexer.KindClearFloatRight:
				node.SetAttr("float", "right")
			default:
				node.SetAttr("float", "both")
			}
			out = append(out, node)
		case lexer.KindQuote:
			if !p.atLineStart() {
				appendInline(p.consumeLiteral())
				break
			}
			flush()
			out = append(out, p.parseBlockquote())
		case lexer.KindBulletItem, lexer.KindNumberedItem:
			if !p.atLineStart() {
				appendInline(p.consumeLiteral())
				break
			}
			flush()
			out = append(out, p.parseList())
		case lexer.KindTableColumn, lexer.KindTableColumnLeft, lexer.KindTableColumnRight,
			lexer.KindTableColumnCenter, lexer.KindTableColumnTitle:
			if !p.atLineStart() {
				appendInline(p.consumeLiteral())
				break
			}
			flush()
			out = append(out, p.parseTable())
		case lexer.KindLeftMath:
			node := p.parseMathBlock()
			// An unclosed math block degrades to literal text, which reads
			// as inline content rather than forcing a paragraph break.
			if node.Kind == ast.KindText {
				appendInline(node)
			} else {
				flush()
				out = append(out, node)
			}
		case lexer.KindLeftComment:
			p.skipComment()
		default:
			appendInline(p.parseInline())
		}
	}
	flush()
	return out
}

// skipComment discards every token between a LeftComment and its matching
// RightComment. No node is emitted; comments never appear in the tree.
func (p *Parser) skipComment() {
	start := p.current
	p.advance() // LeftComment
	for !p.isAtEnd() && !p.check(lexer.KindRightComment) {
		p.advance()
	}
	if p.check(lexer.KindRightComment) {
		p.advance()
		return
	}
	p.emit(ftmlerrors.CodeCommentNotClosed, p.spanSince(start))
}

// parseMathBlock handles "[[$ ... $]]": the body is raw, consumed verbatim
// up to the matching RightMath delimiter with no token reinterpretation,
// the same treatment raw blocks get.
func (p *Parser) parseMathBlock() *ast.Node {
	start := p.current
	p.advance() // LeftMath

	contentStart := p.current
	for !p.isAtEnd() && !p.check(lexer.KindRightMath) {
		p.advance()
	}
	if !p.check(lexer.KindRightMath) {
		p.emit(ftmlerrors.CodeRawBlockNotClosed, p.spanSince(start))
		return ast.NewText(p.sliceSince(start), ast.Span(p.spanSince(start)))
	}
	literal := p.sliceSince(contentStart)
	p.advance() // RightMath

	node := ast.NewElement(ast.KindMath, ast.Span(p.spanSince(start)))
	node.Value = literal
	node.SetAttr("body", literal)
	return node
}

// parseHeading consumes a Heading token ("+" through "++++++", optional
// trailing "*") and the inline run up to the next LineBreak/ParagraphBreak.
func (p *Parser) parseHeading() *ast.Node {
	tok := p.advance()
	level, noToc := headingLevel(tok.Slice)

	node := &ast.Node{Kind: ast.KindHeading, Span: ast.SpanFromToken(tok)}
	node.SetAttr("level", level)
	node.SetAttr("no-toc", noToc)
	if level < 1 || level > 6 {
		p.emitAtToken(ftmlerrors.CodeInvalidArgumentValue, tok)
	}

	p.skipLeadingSpace()
	children := p.parseFlow(func(t lexer.Token) bool {
		return t.Kind == lexer.KindLineBreak || t.Kind == lexer.KindParagraphBreak
	})
	for _, c := range children {
		// Headings never introduce their own nested paragraph wrapper.
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

func headingLevel(slice string) (level int, noToc bool) {
	for _, c := range slice {
		switch c {
		case '+':
			level++
		case '*':
			noToc = true
		}
	}
	return level, noToc
}

// parseBlockquote consumes one or more Quote-prefixed lines at the same
// nesting depth into a single Blockquote node. A deeper '>' run starts a
// nested Blockquote; a shallower one ends this one.
func (p *Parser) parseBlockquote() *ast.Node {
	start := p.current
	depth := len(p.peek().Slice)
	node := &ast.Node{Kind: ast.KindBlockquote}
	node.SetAttr("depth", depth)

	for p.check(lexer.KindQuote) && len(p.peek().Slice) >= depth {
		if len(p.peek().Slice) > depth {
			node.AppendChild(p.parseBlockquote())
			continue
		}
		p.advance() // this line's '>' marker
		p.skipLeadingSpace()
		children := p.parseFlow(func(t lexer.Token) bool {
			return t.Kind == lexer.KindQuote || t.Kind == lexer.KindParagraphBreak
		})
		for _, c := range children {
			if c.Kind == ast.KindParagraph {
				for _, gc := range c.Children {
					node.AppendChild(gc)
				}
				continue
			}
			node.AppendChild(c)
		}
		if p.check(lexer.KindParagraphBreak) {
			p.advance()
		}
	}
	node.Span = ast.Span(p.spanSince(start))
	return node
}

func (p *Parser) skipLeadingSpace() {
	if p.check(lexer.KindSpace) {
		p.advance()
	}
}

// atLineStart reports whether the current token begins a line (start of
// input, or right after a line/paragraph break or a blockquote marker, with
// leading indentation allowed). Line-shaped constructs - headings, rules,
// list items, table rows, quote lines - only fire here; the same tokens
// mid-line read as plain text.
func (p *Parser) atLineStart() bool {
	i := p.current - 1
	if i >= 0 && p.tokens[i].Kind == lexer.KindSpace {
		i--
	}
	if i < 0 {
		return true
	}
	switch p.tokens[i].Kind {
	case lexer.KindLineBreak, lexer.KindParagraphBreak, lexer.KindQuote:
		return true
	}
	return false
}

// parseStrayCloser consumes a "[[/name]]" with no matching open block,
// degrading the tag to literal text. Only a closer naming a real block
// draws MismatchedCloser; an unknown name already drew NoSuchBlock at its
// opener, and one failed construct gets one diagnostic.
func (p *Parser) parseStrayCloser() *ast.Node {
	start := p.current
	p.advance() // LeftBlockEnd
	known := false
	if p.check(lexer.KindIdentifier) {
		_, known = p.catalogue.Resolve(p.advance().Slice)
	}
	if p.check(lexer.KindRightBlock) {
		p.advance()
	}
	if known {
		p.emit(ftmlerrors.CodeMismatchedCloser, p.spanSince(start))
	}
	return ast.NewText(p.sliceSince(start), ast.Span(p.spanSince(start)))
}

// inlineBlockNames are the catalogue blocks that read as inline content:
// leaf markers like [[user]] and [[date]], and the span-shaped containers.
// Every other block flushes the surrounding paragraph.
var inlineBlockNames = map[string]bool{
	"span":     true,
	"size":     true,
	"ruby":     true,
	"user":     true,
	"date":     true,
	"checkbox": true,
	"radio":    true,
}

// isInlineBlock reports whether a parsed block node should be grouped into
// the surrounding paragraph. Score-flagged blocks always are: the [[_name]]
// variant exists to suppress the paragraph break its block form would
// otherwise force.
func isInlineBlock(n *ast.Node) bool {
	if n.Kind != ast.KindBlock {
		return false
	}
	if v, ok := n.Attr("score"); ok {
		if scored, _ := v.(bool); scored {
			return true
		}
	}
	name, _ := n.Attr("name")
	s, _ := name.(string)
	return inlineBlockNames[s]
}
