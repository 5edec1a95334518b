package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/dhamidi/ldn/ldn"
)

// LineEncoder writes one tab-separated line per item, parents before their
// children: depth, kind, span and value. Lists report their number of
// non-comment items as the value.
type LineEncoder struct {
	w io.Writer
}

func NewLineEncoder(w io.Writer) *LineEncoder {
	return &LineEncoder{w: w}
}

func (e *LineEncoder) Encode(doc *ldn.Document) error {
	text, err := e.MarshalText(doc)
	if err != nil {
		return err
	}
	_, err = e.w.Write(text)
	return err
}

func (e *LineEncoder) MarshalText(doc *ldn.Document) ([]byte, error) {
	var sb strings.Builder
	writeLines(&sb, doc.Items, 0)
	return []byte(sb.String()), nil
}

func writeLines(sb *strings.Builder, items []ldn.Item, depth int) {
	for _, item := range items {
		kind, value := lineKindValue(item)
		fmt.Fprintf(sb, "%d\t%s\t%s\t%s\n", depth, kind, item.Span(), value)
		if l, ok := item.(ldn.List); ok {
			writeLines(sb, l.Items, depth+1)
		}
	}
}

func lineKindValue(item ldn.Item) (string, string) {
	switch it := item.(type) {
	case ldn.Comment:
		return "comment", fmt.Sprintf("%q", it.Text)
	case ldn.List:
		n := 0
		for _, child := range it.Items {
			if !child.IsComment() {
				n++
			}
		}
		return "list", fmt.Sprint(n)
	case ldn.Integer:
		return "integer", fmt.Sprint(it.Value)
	case ldn.Keyword:
		return "keyword", Atom(it)
	case ldn.String:
		return "string", fmt.Sprintf("%q", it.Value)
	case ldn.Symbol:
		return "symbol", it.Name
	}
	return "unknown", ""
}
