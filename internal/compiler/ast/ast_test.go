package ast

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewText_MarshalJSON(t *testing.T) {
	n := NewText("hello", Span{Start: 0, End: 5})

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "text", decoded["element"])
	assert.Equal(t, "hello", decoded["value"])
	assert.Equal(t, []interface{}{float64(0), float64(5)}, decoded["span"])
	assert.NotContains(t, decoded, "children")
	assert.NotContains(t, decoded, "attributes")
}

func TestNewElement_MarshalJSON(t *testing.T) {
	child := NewText("hi", Span{Start: 2, End: 4})
	n := NewElement(KindBold, Span{Start: 0, End: 0}, child)
	n.SetAttr("class", "x")

	data, err := json.Marshal(n)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, "strong", decoded["element"])
	assert.NotContains(t, decoded, "value")
	attrs, ok := decoded["attributes"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "x", attrs["class"])
	children, ok := decoded["children"].([]interface{})
	require.True(t, ok)
	assert.Len(t, children, 1)
}

func TestAppendChild_WidensSpan(t *testing.T) {
	parent := &Node{Kind: KindParagraph, Span: Span{Start: 5, End: 5}}
	parent.AppendChild(NewElement(KindBold, Span{Start: 0, End: 1}))
	parent.AppendChild(NewElement(KindItalics, Span{Start: 10, End: 12}))

	assert.Equal(t, Span{Start: 0, End: 12}, parent.Span)
	assert.Len(t, parent.Children, 2)
}

func TestAppendChild_MergesConsecutiveText(t *testing.T) {
	parent := &Node{Kind: KindParagraph}
	parent.AppendChild(NewText("hello", Span{Start: 0, End: 5}))
	parent.AppendChild(NewText(" ", Span{Start: 5, End: 6}))
	parent.AppendChild(NewText("world", Span{Start: 6, End: 11}))

	require.Len(t, parent.Children, 1)
	assert.Equal(t, "hello world", parent.Children[0].Value)
	assert.Equal(t, Span{Start: 0, End: 11}, parent.Children[0].Span)
}

func TestAppendChild_DoesNotMergeAcrossNonText(t *testing.T) {
	parent := &Node{Kind: KindParagraph}
	parent.AppendChild(NewText("a", Span{Start: 0, End: 1}))
	parent.AppendChild(NewElement(KindBold, Span{Start: 1, End: 2}))
	parent.AppendChild(NewText("b", Span{Start: 2, End: 3}))

	require.Len(t, parent.Children, 3)
	assert.Equal(t, "a", parent.Children[0].Value)
	assert.Equal(t, "b", parent.Children[2].Value)
}

func TestAppendChild_IgnoresNil(t *testing.T) {
	parent := &Node{Kind: KindParagraph}
	parent.AppendChild(nil)
	assert.Empty(t, parent.Children)
}

func TestSetAttrAndAttr(t *testing.T) {
	n := &Node{Kind: KindHeading}
	_, ok := n.Attr("level")
	assert.False(t, ok)

	n.SetAttr("level", 2)
	v, ok := n.Attr("level")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestTree_MarshalJSON_DelegatesToRoot(t *testing.T) {
	tree := NewTree()
	tree.Root.AppendChild(NewText("x", Span{Start: 0, End: 1}))

	data, err := json.Marshal(tree)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "document", decoded["element"])
}
