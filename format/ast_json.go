package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/ldn/ldn"
)

type ASTJSONEncoder struct {
	w io.Writer
}

func NewASTJSONEncoder(w io.Writer) *ASTJSONEncoder {
	return &ASTJSONEncoder{w: w}
}

func (e *ASTJSONEncoder) Encode(doc *ldn.Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(append(text, '\n'))
	return err
}

func (e *ASTJSONEncoder) MarshalText(doc *ldn.Document) ([]byte, error) {
	return json.MarshalIndent(documentToTree(doc), "", "  ")
}

// treeNode is the serialized shape of an item, shared by the JSON and YAML
// encoders. Positions stay zero-based.
type treeNode struct {
	Kind     string      `json:"kind" yaml:"kind"`
	Span     *treeSpan   `json:"span,omitempty" yaml:"span,omitempty"`
	Value    any         `json:"value,omitempty" yaml:"value,omitempty"`
	Children []*treeNode `json:"children,omitempty" yaml:"children,omitempty"`
}

type treeSpan struct {
	Start treePosition `json:"start" yaml:"start,flow"`
	End   treePosition `json:"end" yaml:"end,flow"`
}

type treePosition struct {
	Line   int `json:"line" yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

func documentToTree(doc *ldn.Document) *treeNode {
	return &treeNode{
		Kind:     "document",
		Children: itemsToTree(doc.Items),
	}
}

func itemsToTree(items []ldn.Item) []*treeNode {
	if len(items) == 0 {
		return nil
	}
	nodes := make([]*treeNode, len(items))
	for i, item := range items {
		nodes[i] = itemToTree(item)
	}
	return nodes
}

func itemToTree(item ldn.Item) *treeNode {
	s := item.Span()
	n := &treeNode{
		Span: &treeSpan{
			Start: treePosition{Line: s.Start.Line, Column: s.Start.Column},
			End:   treePosition{Line: s.End.Line, Column: s.End.Column},
		},
	}

	switch it := item.(type) {
	case ldn.Comment:
		n.Kind = "comment"
		n.Value = it.Text
	case ldn.List:
		n.Kind = "list"
		n.Children = itemsToTree(it.Items)
	case ldn.Integer:
		n.Kind = "integer"
		n.Value = it.Value
	case ldn.Keyword:
		n.Kind = "keyword"
		n.Value = it.Name
	case ldn.String:
		n.Kind = "string"
		n.Value = it.Value
	case ldn.Symbol:
		n.Kind = "symbol"
		n.Value = it.Name
	}

	return n
}
