// Package format renders LDN documents back to text.
package format

import (
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/ldn/ldn"
)

// DefaultIndent is the number of spaces added per list nesting level.
const DefaultIndent = 4

type Option func(*Formatter)

// WithIndent sets the indentation step for continuation lines inside lists.
func WithIndent(n int) Option {
	return func(f *Formatter) {
		if n >= 0 {
			f.indent = n
		}
	}
}

// Formatter is a layout-preserving pretty-printer.
//
// Line breaks and indentation are decided from the original line numbers of
// sibling items, never from the width of the text already written, so the
// output depends only on the tree and its spans.
type Formatter struct {
	indent int
}

func NewFormatter(opts ...Option) *Formatter {
	f := &Formatter{indent: DefaultIndent}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats doc with the default options.
func Format(doc *ldn.Document) string {
	return NewFormatter().Format(doc)
}

func (f *Formatter) Format(doc *ldn.Document) string {
	var sb strings.Builder
	f.writeItems(&sb, doc.Items, true, 0)
	return sb.String()
}

// Encode writes the formatted document to w.
func (f *Formatter) Encode(w io.Writer, doc *ldn.Document) error {
	_, err := io.WriteString(w, f.Format(doc))
	return err
}

func (f *Formatter) writeItems(sb *strings.Builder, items []ldn.Item, topLevel bool, lhs int) {
	if !topLevel {
		sb.WriteByte('(')
	}

	var prev ldn.Item
	for _, item := range items {
		if prev != nil {
			f.writeSeparator(sb, prev, item, topLevel, lhs)
		}
		f.writeItem(sb, item, lhs)
		prev = item
	}

	if topLevel {
		sb.WriteByte('\n')
		return
	}

	// A comment runs to the end of its line and would swallow the paren.
	if prev != nil && prev.IsComment() {
		sb.WriteByte('\n')
		sb.WriteString(strings.Repeat(" ", max(lhs-f.indent, 0)))
	}
	sb.WriteByte(')')
}

func (f *Formatter) writeSeparator(sb *strings.Builder, prev, item ldn.Item, topLevel bool, lhs int) {
	var delta int
	if topLevel && !prev.IsComment() && !item.IsComment() {
		// Top-level declarations are always separated by one blank line.
		delta = 2
	} else {
		delta = item.Span().Start.Line - prev.Span().Start.Line
	}
	if prev.IsComment() && delta < 1 {
		delta = 1
	}

	if delta <= 0 {
		sb.WriteByte(' ')
		return
	}

	sb.WriteByte('\n')
	if topLevel {
		if delta > 1 {
			sb.WriteByte('\n')
		}
		return
	}
	sb.WriteString(strings.Repeat(" ", lhs))
}

func (f *Formatter) writeItem(sb *strings.Builder, item ldn.Item, lhs int) {
	switch it := item.(type) {
	case ldn.Comment:
		sb.WriteString("; ")
		sb.WriteString(it.Text)
	case ldn.List:
		f.writeItems(sb, it.Items, false, lhs+f.indent)
	case ldn.Atom:
		sb.WriteString(Atom(it))
	}
}

// Atom renders a single atom. Quotes inside strings are escaped so the
// result parses back to the same value.
func Atom(a ldn.Atom) string {
	switch a := a.(type) {
	case ldn.Integer:
		return strconv.FormatInt(a.Value, 10)
	case ldn.Keyword:
		return ":" + a.Name
	case ldn.String:
		return `"` + strings.ReplaceAll(a.Value, `"`, `\"`) + `"`
	case ldn.Symbol:
		return a.Name
	}
	return ""
}
