// Package ast defines the Abstract Syntax Tree produced by the parser. Unlike
// a language compiler's per-construct AST, a markup tree is homogeneous:
// every node is a tag with attributes and children, or a leaf of text. We
// follow that shape with a single tagged Node type (the idiom used by
// golang.org/x/net/html and blackfriday's ast package) instead of one Go
// struct per element kind.
package ast

import (
	"encoding/json"

	"github.com/scpwiki/ftml/internal/compiler/lexer"
)

// Span tracks the byte range of a node in the original source.
type Span struct {
	Start int
	End   int
}

// SpanFromToken builds a single-token Span.
func SpanFromToken(tok lexer.Token) Span {
	return Span{Start: tok.Span.Start, End: tok.Span.End}
}

// Cover returns the smallest Span containing both s and other.
func (s Span) Cover(other Span) Span {
	start, end := s.Start, s.End
	if other.Start < start {
		start = other.Start
	}
	if other.End > end {
		end = other.End
	}
	return Span{Start: start, End: end}
}

// Kind names a node's role in the tree. It is open-ended on purpose: the
// catalogue can register block kinds the core parser has never heard of, so
// Kind is a string rather than a closed enum.
type Kind string

// Built-in kinds the parser itself produces, independent of any catalogue
// entry.
const (
	KindDocument       Kind = "document"
	KindText           Kind = "text"
	KindParagraph      Kind = "p"
	KindLineBreak      Kind = "line-break"
	KindHorizontalRule Kind = "horizontal-rule"
	KindHeading        Kind = "heading"
	KindBold           Kind = "strong"
	KindItalics        Kind = "em"
	KindUnderline      Kind = "u"
	KindStrike         Kind = "s"
	KindSuperscript    Kind = "sup"
	KindSubscript      Kind = "sub"
	KindMonospace      Kind = "tt"
	KindColorText      Kind = "span-color"
	KindLink           Kind = "a"
	KindAnchor         Kind = "anchor"
	KindImage          Kind = "img"
	KindVariable       Kind = "var"
	KindRaw            Kind = "raw"
	KindMath           Kind = "math"
	KindBlock          Kind = "block" // catalogue-driven generic container/leaf
	KindModule         Kind = "module"
	KindInclude        Kind = "include"
	KindClearFloat     Kind = "clear-float"
	KindList           Kind = "list"
	KindListItem       Kind = "list-item"
	KindTable          Kind = "table"
	KindTableRow       Kind = "table-row"
	KindTableCell      Kind = "table-cell"
	KindBlockquote     Kind = "blockquote"
	KindErrorText      Kind = "error" // text-fallback substitute for a failed construct
)

// Node is a single element of the tree: either a container/leaf with a Kind,
// Attributes, and Children, or a leaf carrying literal text in Value.
type Node struct {
	Kind       Kind
	Attributes map[string]interface{}
	Children   []*Node
	Value      string // literal text for text leaves; verbatim body for raw/math nodes
	Span       Span
}

// NewText builds a text leaf node.
func NewText(value string, span Span) *Node {
	return &Node{Kind: KindText, Value: value, Span: span}
}

// NewElement builds a container/leaf node of the given kind.
func NewElement(kind Kind, span Span, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children, Span: span}
}

// SetAttr sets a single attribute, lazily allocating the map.
func (n *Node) SetAttr(key string, value interface{}) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]interface{})
	}
	n.Attributes[key] = value
}

// Attr fetches an attribute, returning false if absent.
func (n *Node) Attr(key string) (interface{}, bool) {
	if n.Attributes == nil {
		return nil, false
	}
	v, ok := n.Attributes[key]
	return v, ok
}

// AppendChild appends a child node, widening Span to cover it. A Text child
// following another Text child is merged into it rather than appended as a
// new sibling: the parser emits one Text leaf per source token, and runs of
// plain tokens (space, identifiers, stray punctuation, failed constructs
// degrading to their literal slice) should read back as a single string.
func (n *Node) AppendChild(child *Node) {
	if child == nil {
		return
	}
	if child.Kind == KindText && len(n.Children) > 0 {
		if last := n.Children[len(n.Children)-1]; last.Kind == KindText {
			last.Value += child.Value
			last.Span = last.Span.Cover(child.Span)
			n.Span = n.Span.Cover(child.Span)
			return
		}
	}
	n.Children = append(n.Children, child)
	n.Span = n.Span.Cover(child.Span)
}

// jsonNode mirrors the public AST JSON contract: text leaves carry
// element+value+span, everything else carries element+attributes+children+span.
type jsonNode struct {
	Element    Kind                   `json:"element"`
	Value      string                 `json:"value,omitempty"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
	Children   []*Node                `json:"children,omitempty"`
	Span       [2]int                 `json:"span"`
}

// MarshalJSON renders a node per the tree JSON contract: a text leaf is
// {"element":"text","value":"...","span":[...]}, everything else is
// {"element":tag,"attributes":{...},"children":[...],"span":[...]}.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := jsonNode{
		Element: n.Kind,
		Span:    [2]int{n.Span.Start, n.Span.End},
	}
	if n.Kind == KindText || n.Kind == KindErrorText {
		out.Value = n.Value
		return json.Marshal(out)
	}
	out.Attributes = n.Attributes
	out.Children = n.Children
	return json.Marshal(out)
}

// Tree is the root of a parsed document.
type Tree struct {
	Root *Node
}

// NewTree creates an empty document root.
func NewTree() *Tree {
	return &Tree{Root: &Node{Kind: KindDocument}}
}

// MarshalJSON delegates to the root node so a Tree serializes identically to
// any other node in the document.
func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Root)
}
