package format

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/dhamidi/ldn/ldn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestASTJSONEncoder(t *testing.T) {
	doc, err := ldn.ParseString("(a 0 :k)\n; c")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewASTJSONEncoder(&buf).Encode(doc))

	var got treeNode
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.Equal(t, "document", got.Kind)
	require.Len(t, got.Children, 2)

	list := got.Children[0]
	assert.Equal(t, "list", list.Kind)
	assert.Equal(t, treePosition{Line: 0, Column: 8}, list.Span.End)
	require.Len(t, list.Children, 3)
	assert.Equal(t, "symbol", list.Children[0].Kind)
	assert.Equal(t, "a", list.Children[0].Value)
	assert.Equal(t, "integer", list.Children[1].Kind)
	assert.EqualValues(t, 0, list.Children[1].Value)
	assert.Equal(t, "k", list.Children[2].Value)

	comment := got.Children[1]
	assert.Equal(t, "comment", comment.Kind)
	assert.Equal(t, "c", comment.Value)
	assert.Equal(t, treePosition{Line: 1, Column: 0}, comment.Span.Start)
}

func TestASTYAMLEncoder(t *testing.T) {
	doc, err := ldn.ParseString(`("x")`)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewASTYAMLEncoder(&buf).Encode(doc))

	var got treeNode
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Children, 1)
	require.Len(t, got.Children[0].Children, 1)
	assert.Equal(t, "string", got.Children[0].Children[0].Kind)
	assert.Equal(t, "x", got.Children[0].Children[0].Value)

	text, err := NewASTYAMLEncoder(nil).MarshalText(doc)
	require.NoError(t, err)
	assert.Contains(t, string(text), "kind: document")
}
