package parser

import (
	"testing"

	"github.com/scpwiki/ftml/internal/catalogue"
	"github.com/scpwiki/ftml/internal/compiler/ast"
	ftmlerrors "github.com/scpwiki/ftml/internal/compiler/errors"
)

func mustCatalogue(t *testing.T) *catalogue.Catalogue {
	t.Helper()
	cat, err := catalogue.Default()
	if err != nil {
		t.Fatalf("load default catalogue: %v", err)
	}
	return cat
}

func parseSource(t *testing.T, source string) (*ast.Tree, int) {
	t.Helper()
	tree, diags := Parse(source, mustCatalogue(t), DefaultSettings())
	return tree, len(diags)
}

func firstChild(n *ast.Node) *ast.Node {
	if len(n.Children) == 0 {
		return nil
	}
	return n.Children[0]
}

func TestParse_PlainParagraph(t *testing.T) {
	tree, diagCount := parseSource(t, "hello world")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("expected 1 top-level node, got %d", len(tree.Root.Children))
	}
	if tree.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("expected paragraph, got %s", tree.Root.Children[0].Kind)
	}
}

func TestParse_ParagraphBreakSplitsParagraphs(t *testing.T) {
	tree, _ := parseSource(t, "first\n\nsecond")
	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected 2 paragraphs, got %d", len(tree.Root.Children))
	}
}

func TestParse_Bold(t *testing.T) {
	tree, diagCount := parseSource(t, "**strong text**")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	para := tree.Root.Children[0]
	if len(para.Children) != 1 || para.Children[0].Kind != ast.KindBold {
		t.Fatalf("expected single bold node, got %+v", para.Children)
	}
}

func TestParse_UnclosedBoldFallsBackToText(t *testing.T) {
	tree, _ := parseSource(t, "**never closed")
	para := tree.Root.Children[0]
	for _, c := range para.Children {
		if c.Kind == ast.KindBold {
			t.Fatalf("expected no bold node for unclosed delimiter, got one")
		}
	}
}

func TestParse_NestedFormatting(t *testing.T) {
	tree, _ := parseSource(t, "**bold //and italic// text**")
	para := tree.Root.Children[0]
	bold := firstChild(para)
	if bold == nil || bold.Kind != ast.KindBold {
		t.Fatalf("expected outer bold node, got %+v", para.Children)
	}
	found := false
	for _, c := range bold.Children {
		if c.Kind == ast.KindItalics {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected nested italics inside bold, got %+v", bold.Children)
	}
}

func TestParse_Heading(t *testing.T) {
	tree, diagCount := parseSource(t, "++ Section Title")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if tree.Root.Children[0].Kind != ast.KindHeading {
		t.Fatalf("expected heading, got %s", tree.Root.Children[0].Kind)
	}
	level, ok := tree.Root.Children[0].Attr("level")
	if !ok || level != 2 {
		t.Fatalf("expected level 2, got %v", level)
	}
}

func TestParse_HeadingOutOfRangeEmitsDiagnostic(t *testing.T) {
	tree, diagCount := parseSource(t, "+++++++++ too deep")
	if diagCount == 0 {
		t.Fatalf("expected a diagnostic for an out-of-range heading level")
	}
	if tree.Root.Children[0].Kind != ast.KindHeading {
		t.Fatalf("expected the heading to still be produced, got %s", tree.Root.Children[0].Kind)
	}
}

func TestParse_HorizontalRule(t *testing.T) {
	tree, _ := parseSource(t, "text\n\n----\n\nmore")
	found := false
	for _, c := range tree.Root.Children {
		if c.Kind == ast.KindHorizontalRule {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a horizontal rule node, got %+v", tree.Root.Children)
	}
}

func TestParse_UnorderedList(t *testing.T) {
	tree, _ := parseSource(t, "* one\n* two\n* three")
	if tree.Root.Children[0].Kind != ast.KindList {
		t.Fatalf("expected list, got %s", tree.Root.Children[0].Kind)
	}
	if len(tree.Root.Children[0].Children) != 3 {
		t.Fatalf("expected 3 items, got %d", len(tree.Root.Children[0].Children))
	}
}

func TestParse_DivBlock(t *testing.T) {
	tree, diagCount := parseSource(t, "[[div class=\"note\"]]\ncontent\n[[/div]]")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	block := tree.Root.Children[0]
	if block.Kind != ast.KindBlock {
		t.Fatalf("expected block, got %s", block.Kind)
	}
	name, _ := block.Attr("name")
	if name != "div" {
		t.Fatalf("expected name div, got %v", name)
	}
	class, ok := block.Attr("class")
	if !ok || class != "note" {
		t.Fatalf("expected class note, got %v", class)
	}
}

func TestParse_CollapsibleBlockFillsArgumentDefaults(t *testing.T) {
	tree, diagCount := parseSource(t, "[[collapsible]]\nhidden text\n[[/collapsible]]")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	block := tree.Root.Children[0]
	if block.Kind != ast.KindBlock {
		t.Fatalf("expected block, got %s", block.Kind)
	}
	show, ok := block.Attr("show")
	if !ok || show != "+ show" {
		t.Fatalf("expected show default %q, got %v", "+ show", show)
	}
	hide, ok := block.Attr("hide")
	if !ok || hide != "- hide" {
		t.Fatalf("expected hide default %q, got %v", "- hide", hide)
	}
	folded, ok := block.Attr("folded")
	if !ok || folded != "true" {
		t.Fatalf("expected folded default %q, got %v", "true", folded)
	}
}

func TestParse_CollapsibleBlockExplicitArgumentOverridesDefault(t *testing.T) {
	tree, diagCount := parseSource(t, "[[collapsible show=\"+ expand\"]]\nhidden text\n[[/collapsible]]")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	block := tree.Root.Children[0]
	show, ok := block.Attr("show")
	if !ok || show != "+ expand" {
		t.Fatalf("expected explicit show value to win over the default, got %v", show)
	}
	hide, ok := block.Attr("hide")
	if !ok || hide != "- hide" {
		t.Fatalf("expected hide default still filled, got %v", hide)
	}
}

func TestParse_StarredUserBlockRecordsStarAttribute(t *testing.T) {
	tree, diagCount := parseSource(t, "[[*user someguy]]")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	para := tree.Root.Children[0]
	if para.Kind != ast.KindParagraph {
		t.Fatalf("expected the user marker to stay inline in a paragraph, got %s", para.Kind)
	}
	block := firstChild(para)
	if block == nil || block.Kind != ast.KindBlock {
		t.Fatalf("expected a user block, got %+v", para.Children)
	}
	star, ok := block.Attr("star")
	if !ok || star != true {
		t.Fatalf("expected star attribute to be recorded, got %v", block.Attributes)
	}
}

func TestParse_ScoreFlagKeepsBlockInline(t *testing.T) {
	tree, diagCount := parseSource(t, "before [[_span]]x[[/span]] after")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if len(tree.Root.Children) != 1 || tree.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("expected one paragraph containing the scored span, got %+v", tree.Root.Children)
	}
	para := tree.Root.Children[0]
	var span *ast.Node
	for _, c := range para.Children {
		if c.Kind == ast.KindBlock {
			span = c
		}
	}
	if span == nil {
		t.Fatalf("expected a span block inside the paragraph, got %+v", para.Children)
	}
	if scored, ok := span.Attr("score"); !ok || scored != true {
		t.Fatalf("expected score attribute, got %v", span.Attributes)
	}
}

func TestParse_ScoreFlagOnNonScoreBlockEmitsDiagnostic(t *testing.T) {
	_, diagCount := parseSource(t, "[[_code]]x[[/code]]")
	if diagCount != 1 {
		t.Fatalf("expected one invalid-flag diagnostic, got %d", diagCount)
	}
}

func TestParse_ModuleBlockRecordsNameAndRawBody(t *testing.T) {
	tree, diagCount := parseSource(t, "[[module Rate max=5]]body text[[/module]]")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	mod := tree.Root.Children[0]
	if mod.Kind != ast.KindModule {
		t.Fatalf("expected module node, got %s", mod.Kind)
	}
	name, _ := mod.Attr("module")
	if name != "Rate" {
		t.Fatalf("expected module name Rate, got %v", name)
	}
	max, ok := mod.Attr("max")
	if !ok || max != "5" {
		t.Fatalf("expected module argument max=5 carried through unvalidated, got %v", mod.Attributes)
	}
	if mod.Value != "body text" {
		t.Fatalf("expected raw module body, got %q", mod.Value)
	}
}

func TestParse_IncludeRecordsTargetAndVars(t *testing.T) {
	settings := DefaultSettings()
	settings.EnableInclude = true
	tree, diags := Parse("[[include component:image-block name=test]]", mustCatalogue(t), settings)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics with includes enabled, got %v", diags)
	}
	inc := tree.Root.Children[0]
	if inc.Kind != ast.KindInclude {
		t.Fatalf("expected include node, got %s", inc.Kind)
	}
	target, _ := inc.Attr("target")
	if target != "component:image-block" {
		t.Fatalf("expected target component:image-block, got %v", target)
	}
	vars, ok := inc.Attr("vars")
	if !ok {
		t.Fatalf("expected vars map, got %v", inc.Attributes)
	}
	m, ok := vars.(map[string]interface{})
	if !ok || m["name"] != "test" {
		t.Fatalf("expected vars name=test, got %v", vars)
	}
}

func TestParse_IncludeDisabledEmitsDiagnostic(t *testing.T) {
	_, diags := Parse("[[include some-page]]", mustCatalogue(t), DefaultSettings())
	if len(diags) != 1 || diags[0].Kind != ftmlerrors.CodeInvalidInclude {
		t.Fatalf("expected one invalid-include diagnostic, got %v", diags)
	}
}

func TestParse_StrayCloserEmitsMismatchedCloser(t *testing.T) {
	tree, diags := Parse("text [[/div]] more", mustCatalogue(t), DefaultSettings())
	if len(diags) != 1 || diags[0].Kind != ftmlerrors.CodeMismatchedCloser {
		t.Fatalf("expected one mismatched-closer diagnostic, got %v", diags)
	}
	para := tree.Root.Children[0]
	if len(para.Children) != 1 || para.Children[0].Kind != ast.KindText {
		t.Fatalf("expected the stray closer to merge into the surrounding text, got %+v", para.Children)
	}
	if para.Children[0].Value != "text [[/div]] more" {
		t.Fatalf("expected full literal fallback, got %q", para.Children[0].Value)
	}
}

func TestParse_ClearFloat(t *testing.T) {
	tree, diagCount := parseSource(t, "above\n\n~~~~\n\nbelow")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	var cf *ast.Node
	for _, c := range tree.Root.Children {
		if c.Kind == ast.KindClearFloat {
			cf = c
		}
	}
	if cf == nil {
		t.Fatalf("expected a clear-float node, got %+v", tree.Root.Children)
	}
	float, _ := cf.Attr("float")
	if float != "both" {
		t.Fatalf("expected float both, got %v", float)
	}
}

func TestParse_MidLineMarkersStayLiteral(t *testing.T) {
	tree, diagCount := parseSource(t, "a > b * c || d")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if len(tree.Root.Children) != 1 || tree.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("expected one plain paragraph, got %+v", tree.Root.Children)
	}
	para := tree.Root.Children[0]
	if len(para.Children) != 1 || para.Children[0].Value != "a > b * c || d" {
		t.Fatalf("expected mid-line markers to read as text, got %+v", para.Children)
	}
}

func TestParse_StarredFlagOnNonStarBlockEmitsDiagnostic(t *testing.T) {
	tree, diagCount := parseSource(t, "[[*code]]x[[/code]]")
	if diagCount != 1 {
		t.Fatalf("expected one invalid-flag diagnostic, got %d", diagCount)
	}
	block := tree.Root.Children[0]
	if _, ok := block.Attr("star"); ok {
		t.Fatalf("expected no star attribute on a block that rejects it, got %v", block.Attributes)
	}
}

// TestParse_RecursionLimitFallsBackToTextAndResyncsCursor pins that
// exceeding the recursion limit on a nested elements-body block emits
// RecursionLimit and falls back to text, but the matching closer must still
// be consumed - a later sibling must parse normally instead of getting
// swallowed by a desynced cursor.
func TestParse_RecursionLimitFallsBackToTextAndResyncsCursor(t *testing.T) {
	settings := DefaultSettings()
	settings.RecursionLimit = 2
	source := "[[div]][[div]][[div]]deep[[/div]][[/div]][[/div]]\n\nsibling paragraph"
	tree, diags := Parse(source, mustCatalogue(t), settings)

	foundRecursionLimit := false
	for _, d := range diags {
		if d.Kind == ftmlerrors.CodeRecursionLimit {
			foundRecursionLimit = true
		}
	}
	if !foundRecursionLimit {
		t.Fatalf("expected a RecursionLimit diagnostic, got %v", diags)
	}

	if len(tree.Root.Children) != 2 {
		t.Fatalf("expected the outer block plus a resynced sibling paragraph, got %d top-level nodes", len(tree.Root.Children))
	}
	sibling := tree.Root.Children[1]
	if sibling.Kind != ast.KindParagraph {
		t.Fatalf("expected the cursor to resync onto a sibling paragraph, got %s", sibling.Kind)
	}
}

func TestParse_UnknownBlockNameEmitsDiagnosticAndFallsBack(t *testing.T) {
	tree, diagCount := parseSource(t, "[[not-a-real-block]]x[[/not-a-real-block]]")
	if diagCount == 0 {
		t.Fatalf("expected a diagnostic for an unknown block")
	}
	if tree.Root.Children[0].Kind == ast.KindBlock {
		t.Fatalf("expected the unknown block to fall back to text, got a block node")
	}
}

// TestParse_NoSuchBlockErrorSpansOpeningTag pins the diagnostic span:
// "[[foobar]]x[[/foobar]]" must raise one NoSuchBlock error
// spanning exactly "[[foobar]]" (bytes 0-10), not just the bare "foobar"
// identifier (bytes 2-8).
func TestParse_NoSuchBlockErrorSpansOpeningTag(t *testing.T) {
	source := "[[foobar]]x[[/foobar]]"
	_, diags := Parse(source, mustCatalogue(t), DefaultSettings())
	if len(diags) != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d: %v", len(diags), diags)
	}
	d := diags[0]
	if d.Kind != ftmlerrors.CodeNoSuchBlock {
		t.Fatalf("expected no-such-block, got %s", d.Kind)
	}
	if d.Span.Start != 0 || d.Span.End != len("[[foobar]]") {
		t.Fatalf("expected span [0,%d) covering the opening tag, got [%d,%d)",
			len("[[foobar]]"), d.Span.Start, d.Span.End)
	}
}

func TestParse_CodeBlockBodyIsRaw(t *testing.T) {
	tree, _ := parseSource(t, "[[code type=\"go\"]]\nfunc f() {}\n[[/code]]")
	block := tree.Root.Children[0]
	if block.Value == "" {
		t.Fatalf("expected raw code body to be captured verbatim")
	}
}

func TestParse_CommentIsDropped(t *testing.T) {
	tree, _ := parseSource(t, "before [!-- a comment --] after")
	para := tree.Root.Children[0]
	for _, c := range para.Children {
		if c.Kind == ast.KindText && c.Value == "a comment" {
			t.Fatalf("expected comment text to be dropped entirely")
		}
	}
}

func TestParse_RawBlockIsLiteral(t *testing.T) {
	tree, _ := parseSource(t, "@@**not bold**@@")
	para := tree.Root.Children[0]
	raw := firstChild(para)
	if raw == nil || raw.Kind != ast.KindRaw {
		t.Fatalf("expected raw node, got %+v", para.Children)
	}
	if raw.Value != "**not bold**" {
		t.Fatalf("expected literal raw content, got %q", raw.Value)
	}
	// The verbatim body must survive JSON serialization, which only emits
	// Value for text leaves.
	body, ok := raw.Attr("body")
	if !ok || body != "**not bold**" {
		t.Fatalf("expected raw body attribute, got %v", raw.Attributes)
	}
}

func TestParse_EmptyColorNameEmitsDiagnostic(t *testing.T) {
	tree, diags := Parse("##|red text##", mustCatalogue(t), DefaultSettings())
	if len(diags) != 1 || diags[0].Kind != ftmlerrors.CodeInvalidColor {
		t.Fatalf("expected one invalid-color diagnostic, got %v", diags)
	}
	para := tree.Root.Children[0]
	span := firstChild(para)
	if span == nil || span.Kind != ast.KindColorText {
		t.Fatalf("expected the color span to still be produced, got %+v", para.Children)
	}
	if _, ok := span.Attr("color"); ok {
		t.Fatalf("expected no color attribute for an empty color name, got %v", span.Attributes)
	}
}

func TestParse_EmptyRubyEmitsDiagnostic(t *testing.T) {
	_, diags := Parse("[[ruby]][[/ruby]]", mustCatalogue(t), DefaultSettings())
	if len(diags) != 1 || diags[0].Kind != ftmlerrors.CodeInvalidRuby {
		t.Fatalf("expected one invalid-ruby diagnostic, got %v", diags)
	}
}

func TestParse_MathBlockBodyIsLiteral(t *testing.T) {
	tree, diagCount := parseSource(t, "[[$ x^2 + y^2 $]]")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if len(tree.Root.Children) != 1 {
		t.Fatalf("expected a single top-level math node, got %+v", tree.Root.Children)
	}
	math := tree.Root.Children[0]
	if math.Kind != ast.KindMath {
		t.Fatalf("expected math node, got %+v", math)
	}
	body, _ := math.Attr("body")
	if body != " x^2 + y^2 " {
		t.Fatalf("expected literal math body, got %q", body)
	}
}

func TestParse_UnclosedMathBlockEmitsDiagnostic(t *testing.T) {
	tree, diagCount := parseSource(t, "[[$ x^2")
	if diagCount != 1 {
		t.Fatalf("expected one diagnostic, got %d", diagCount)
	}
	para := tree.Root.Children[0]
	text := firstChild(para)
	if text == nil || text.Kind != ast.KindText || text.Value != "[[$ x^2" {
		t.Fatalf("expected literal text fallback, got %+v", para.Children)
	}
}

func TestParse_FreeLink(t *testing.T) {
	tree, _ := parseSource(t, "[http://example.com label]")
	para := tree.Root.Children[0]
	link := firstChild(para)
	if link == nil || link.Kind != ast.KindLink {
		t.Fatalf("expected link node, got %+v", para.Children)
	}
	url, _ := link.Attr("url")
	if url != "http://example.com" {
		t.Fatalf("expected url http://example.com, got %v", url)
	}
}

func TestParse_WikiLink(t *testing.T) {
	tree, _ := parseSource(t, "[[[some-page|Some Page]]]")
	para := tree.Root.Children[0]
	link := firstChild(para)
	if link == nil || link.Kind != ast.KindLink {
		t.Fatalf("expected link node, got %+v", para.Children)
	}
	url, _ := link.Attr("url")
	if url != "some-page" {
		t.Fatalf("expected url some-page, got %v", url)
	}
}

func TestParse_Table(t *testing.T) {
	tree, _ := parseSource(t, "||a||b||\n||c||d||")
	if tree.Root.Children[0].Kind != ast.KindTable {
		t.Fatalf("expected table, got %s", tree.Root.Children[0].Kind)
	}
	if len(tree.Root.Children[0].Children) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(tree.Root.Children[0].Children))
	}
}

func TestParse_Blockquote(t *testing.T) {
	tree, _ := parseSource(t, "> quoted text")
	if tree.Root.Children[0].Kind != ast.KindBlockquote {
		t.Fatalf("expected blockquote, got %s", tree.Root.Children[0].Kind)
	}
}

func TestParse_PlainTextMergesIntoSingleTextNode(t *testing.T) {
	tree, diagCount := parseSource(t, "hello world")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	para := tree.Root.Children[0]
	if len(para.Children) != 1 || para.Children[0].Kind != ast.KindText {
		t.Fatalf("expected a single merged text node, got %+v", para.Children)
	}
	if para.Children[0].Value != "hello world" {
		t.Fatalf("expected merged value %q, got %q", "hello world", para.Children[0].Value)
	}
}

func TestParse_UnclosedBoldMergesIntoSingleTextNode(t *testing.T) {
	tree, diagCount := parseSource(t, "** not bold ")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	para := tree.Root.Children[0]
	if len(para.Children) != 1 || para.Children[0].Kind != ast.KindText {
		t.Fatalf("expected a single merged text node, got %+v", para.Children)
	}
	if para.Children[0].Value != "** not bold " {
		t.Fatalf("expected merged value %q, got %q", "** not bold ", para.Children[0].Value)
	}
}

func TestParse_AnchorBlock(t *testing.T) {
	tree, diagCount := parseSource(t, `[[a href="/foo"]]link[[/a]]`)
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if tree.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("expected the anchor to stay inline inside a paragraph, got %s", tree.Root.Children[0].Kind)
	}
	anchor := firstChild(tree.Root.Children[0])
	if anchor == nil || anchor.Kind != ast.KindAnchor {
		t.Fatalf("expected anchor node, got %+v", tree.Root.Children[0].Children)
	}
	href, ok := anchor.Attr("href")
	if !ok || href != "/foo" {
		t.Fatalf("expected href /foo, got %v", href)
	}
	if len(anchor.Children) != 1 || anchor.Children[0].Kind != ast.KindText || anchor.Children[0].Value != "link" {
		t.Fatalf("expected a single Text(\"link\") child, got %+v", anchor.Children)
	}
}

func TestParse_UnknownBlockMergesSurroundingTextIntoOneNode(t *testing.T) {
	tree, diagCount := parseSource(t, "[[foobar]]x[[/foobar]]")
	if diagCount != 1 {
		t.Fatalf("expected exactly one diagnostic, got %d", diagCount)
	}
	if tree.Root.Children[0].Kind != ast.KindParagraph {
		t.Fatalf("expected a paragraph, got %s", tree.Root.Children[0].Kind)
	}
	para := tree.Root.Children[0]
	if len(para.Children) != 1 || para.Children[0].Kind != ast.KindText {
		t.Fatalf("expected a single merged text node, got %+v", para.Children)
	}
	if para.Children[0].Value != "[[foobar]]x[[/foobar]]" {
		t.Fatalf("expected merged value %q, got %q", "[[foobar]]x[[/foobar]]", para.Children[0].Value)
	}
}

func TestParse_ArgumentBelowMinimumEmitsDiagnostic(t *testing.T) {
	tree, diagCount := parseSource(t, `[[iframe src width=0]][[/iframe]]`)
	if diagCount == 0 {
		t.Fatalf("expected a diagnostic for an out-of-range argument")
	}
	if tree.Root.Children[0].Kind != ast.KindBlock {
		t.Fatalf("expected the block to still be produced, got %s", tree.Root.Children[0].Kind)
	}
}

func TestParse_EmptySourceProducesEmptyDocument(t *testing.T) {
	tree, diagCount := parseSource(t, "")
	if diagCount != 0 {
		t.Fatalf("expected no diagnostics, got %d", diagCount)
	}
	if len(tree.Root.Children) != 0 {
		t.Fatalf("expected an empty document, got %+v", tree.Root.Children)
	}
}
