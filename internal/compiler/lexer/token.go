package lexer

import "fmt"

// Kind represents the type of a token produced by the lexer.
type Kind int

const (
	// KindEOF marks the end of the token stream.
	KindEOF Kind = iota

	// Raw / comment delimiters.
	KindRaw          // @@
	KindLeftRaw      // @<
	KindRightRaw     // >@
	KindLeftComment  // [!--
	KindRightComment // --]

	// Text-like runs.
	KindURL        // http(s)/ftp URL
	KindIdentifier // alnum+
	KindEmail      // user@host.tld
	KindVariable   // {$ident}
	KindString     // "escaped text"

	// Bracket combinations, longest match first.
	KindLeftLinkStar      // [[[*
	KindLeftLink          // [[[
	KindRightLink         // ]]]
	KindLeftBlockEnd      // [[/
	KindLeftBlockAnchor   // [[#
	KindLeftBlockStar     // [[*
	KindLeftMath          // [[$
	KindLeftBlock         // [[
	KindRightMath         // $]]
	KindRightBlock        // ]]
	KindLeftBracketAnchor // [#
	KindLeftBracketStar   // [*
	KindLeftBracket       // [
	KindRightBracket      // ]

	KindLeftParens  // ((
	KindRightParens // ))

	// Formatting delimiters.
	KindBold           // **
	KindItalics        // //
	KindUnderline      // __
	KindSuperscript    // ^^
	KindSubscript      // ,,
	KindColor          // ##
	KindLeftMonospace  // {{
	KindRightMonospace // }}

	// Table delimiters, longest match first.
	KindTableColumnLeft   // ||<
	KindTableColumnRight  // ||>
	KindTableColumnCenter // ||=
	KindTableColumnTitle  // ||~
	KindTableColumn       // ||

	// Singular symbols.
	KindClearFloatLeft  // ~~~<
	KindClearFloatRight // ~~~>
	KindClearFloat      // ~~~ (3 or more tildes, no direction suffix)
	KindTripleDash      // --- (3 or more dashes): horizontal rule
	KindDoubleDash      // -- : strikethrough delimiter
	KindDoubleTilde     // ~~
	KindLeftDoubleAngle // <<
	KindPipe            // |
	KindEquals          // =
	KindColon           // :
	KindUnderscore      // _
	KindQuote           // one or more '>' : blockquote nesting marker
	KindHeading         // one to six '+', optional trailing '*'
	KindBulletItem      // '*' not followed by '*'
	KindNumberedItem    // '#' not followed by '#'

	// Whitespace.
	KindParagraphBreak // 2+ newlines
	KindLineBreak      // single newline
	KindSpace          // run of spaces/tabs

	// Fallback and consolidated text.
	KindOther // exactly one unmatched character
	KindText  // consolidated run of Other tokens
)

// KindNames maps token kinds to their string representations.
var KindNames = map[Kind]string{
	KindEOF:               "EOF",
	KindRaw:               "RAW",
	KindLeftRaw:           "LEFT_RAW",
	KindRightRaw:          "RIGHT_RAW",
	KindLeftComment:       "LEFT_COMMENT",
	KindRightComment:      "RIGHT_COMMENT",
	KindURL:               "URL",
	KindIdentifier:        "IDENTIFIER",
	KindEmail:             "EMAIL",
	KindVariable:          "VARIABLE",
	KindString:            "STRING",
	KindLeftLinkStar:      "LEFT_LINK_STAR",
	KindLeftLink:          "LEFT_LINK",
	KindRightLink:         "RIGHT_LINK",
	KindLeftBlockEnd:      "LEFT_BLOCK_END",
	KindLeftBlockAnchor:   "LEFT_BLOCK_ANCHOR",
	KindLeftBlockStar:     "LEFT_BLOCK_STAR",
	KindLeftMath:          "LEFT_MATH",
	KindLeftBlock:         "LEFT_BLOCK",
	KindRightMath:         "RIGHT_MATH",
	KindRightBlock:        "RIGHT_BLOCK",
	KindLeftBracketAnchor: "LEFT_BRACKET_ANCHOR",
	KindLeftBracketStar:   "LEFT_BRACKET_STAR",
	KindLeftBracket:       "LEFT_BRACKET",
	KindRightBracket:      "RIGHT_BRACKET",
	KindLeftParens:        "LEFT_PARENS",
	KindRightParens:       "RIGHT_PARENS",
	KindBold:              "BOLD",
	KindItalics:           "ITALICS",
	KindUnderline:         "UNDERLINE",
	KindSuperscript:       "SUPERSCRIPT",
	KindSubscript:         "SUBSCRIPT",
	KindColor:             "COLOR",
	KindLeftMonospace:     "LEFT_MONOSPACE",
	KindRightMonospace:    "RIGHT_MONOSPACE",
	KindTableColumnLeft:   "TABLE_COLUMN_LEFT",
	KindTableColumnRight:  "TABLE_COLUMN_RIGHT",
	KindTableColumnCenter: "TABLE_COLUMN_CENTER",
	KindTableColumnTitle:  "TABLE_COLUMN_TITLE",
	KindTableColumn:       "TABLE_COLUMN",
	KindClearFloatLeft:    "CLEAR_FLOAT_LEFT",
	KindClearFloatRight:   "CLEAR_FLOAT_RIGHT",
	KindClearFloat:        "CLEAR_FLOAT",
	KindTripleDash:        "TRIPLE_DASH",
	KindDoubleDash:        "DOUBLE_DASH",
	KindDoubleTilde:       "DOUBLE_TILDE",
	KindLeftDoubleAngle:   "LEFT_DOUBLE_ANGLE",
	KindPipe:              "PIPE",
	KindEquals:            "EQUALS",
	KindColon:             "COLON",
	KindUnderscore:        "UNDERSCORE",
	KindQuote:             "QUOTE",
	KindHeading:           "HEADING",
	KindBulletItem:        "BULLET_ITEM",
	KindNumberedItem:      "NUMBERED_ITEM",
	KindParagraphBreak:    "PARAGRAPH_BREAK",
	KindLineBreak:         "LINE_BREAK",
	KindSpace:             "SPACE",
	KindOther:             "OTHER",
	KindText:              "TEXT",
}

// String returns the string representation of a Kind.
func (k Kind) String() string {
	if name, ok := KindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", k)
}

// Span is a half-open byte range [Start, End) over the original input.
type Span struct {
	Start int
	End   int
}

// Slice returns the substring of source covered by the span.
func (s Span) Slice(source string) string {
	return source[s.Start:s.End]
}

// Cover returns the smallest span containing both s and other.
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

// Token is a single lexical unit: a kind, its span, and the literal slice of
// text that span covers.
type Token struct {
	Kind    Kind        // The kind of the token
	Slice   string      // The raw text of the token
	Span    Span        // Byte offsets into the source
	Literal interface{} // Parsed value, set only for String tokens
	Line    int         // Line number (1-indexed)
	Column  int         // Column number (1-indexed)
}

// String returns a string representation of the token.
func (t Token) String() string {
	if t.Literal != nil {
		return fmt.Sprintf("%s '%s' (%v) at %d:%d",
			t.Kind.String(), t.Slice, t.Literal, t.Line, t.Column)
	}
	return fmt.Sprintf("%s '%s' at %d:%d",
		t.Kind.String(), t.Slice, t.Line, t.Column)
}
