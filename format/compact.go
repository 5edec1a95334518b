package format

import (
	"strings"

	"github.com/dhamidi/ldn/ldn"
)

// Compact prints doc without looking at the original layout: top-level items
// are separated by a blank line and list items by a single space. Comments
// are printed as bare text followed by a newline, so the output is meant for
// reading, not for parsing back.
func Compact(doc *ldn.Document) string {
	parts := make([]string, len(doc.Items))
	for i, item := range doc.Items {
		parts[i] = compactItem(item)
	}
	return strings.Join(parts, "\n\n")
}

func compactItem(item ldn.Item) string {
	switch it := item.(type) {
	case ldn.Comment:
		return it.Text + "\n"
	case ldn.List:
		parts := make([]string, len(it.Items))
		for i, child := range it.Items {
			parts[i] = compactItem(child)
		}
		return "(" + strings.Join(parts, " ") + ")"
	case ldn.Atom:
		return Atom(it)
	}
	return ""
}
