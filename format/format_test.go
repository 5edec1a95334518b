package format

import (
	"strings"
	"testing"

	"github.com/dhamidi/ldn/ldn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func formatString(t *testing.T, src string, opts ...Option) string {
	t.Helper()
	doc, err := ldn.ParseString(src)
	require.NoError(t, err)
	return NewFormatter(opts...).Format(doc)
}

func TestFormat_Spacing(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty document",
			input:    "",
			expected: "\n",
		},
		{
			name:     "single atom",
			input:    "  foo  ",
			expected: "foo\n",
		},
		{
			name:     "top-level items on one line get a blank line",
			input:    "a b",
			expected: "a\n\nb\n",
		},
		{
			name:     "large top-level gap collapses to one blank line",
			input:    "(a)\n\n\n\n\n(b)",
			expected: "(a)\n\n(b)\n",
		},
		{
			name:     "comment keeps its distance",
			input:    "; one\n; two\n\n\n; three\n",
			expected: "; one\n; two\n\n; three\n",
		},
		{
			name:     "comment after item on same line",
			input:    "(a) ; note",
			expected: "(a) ; note\n",
		},
		{
			name:     "list items on one line",
			input:    "(a   b  c)",
			expected: "(a b c)\n",
		},
		{
			name:     "nested continuation lines are indented",
			input:    "(a\nb\n(c\nd))",
			expected: "(a\n    b\n    (c\n        d))\n",
		},
		{
			name:     "blank lines inside lists are dropped",
			input:    "(a\n\n\nb)",
			expected: "(a\n    b)\n",
		},
		{
			name:     "trailing comment in list moves the paren",
			input:    "((x ; c\n))",
			expected: "((x ; c\n    ))\n",
		},
		{
			name:     "empty list",
			input:    "()",
			expected: "()\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatString(t, tt.input))
		})
	}
}

func TestFormat_Atoms(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"integers", "(0 -5 42)", "(0 -5 42)\n"},
		{"keyword", ":key", ":key\n"},
		{"symbol", "string->int", "string->int\n"},
		{"lone minus", "-", "-\n"},
		{"string", `"plain"`, "\"plain\"\n"},
		{"escaped quotes survive", `"foo \"bar\" baz"`, "\"foo \\\"bar\\\" baz\"\n"},
		{"comment semicolons normalized", ";;;   hi  ", "; hi\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatString(t, tt.input))
		})
	}
}

func TestFormat_Indent(t *testing.T) {
	got := formatString(t, "(a\nb\n(c\nd))", WithIndent(2))
	assert.Equal(t, "(a\n  b\n  (c\n    d))\n", got)
}

func TestFormat_ConstructedTree(t *testing.T) {
	// Trees built by hand have no meaningful spans.
	doc := &ldn.Document{Items: []ldn.Item{
		ldn.Comment{Text: "generated"},
		ldn.List{Items: []ldn.Item{
			ldn.Symbol{Name: "point"},
			ldn.Integer{Value: 1},
			ldn.Comment{Text: "x"},
			ldn.Integer{Value: -2},
		}},
		ldn.Keyword{Name: "end"},
	}}

	got := Format(doc)
	assert.Equal(t, "; generated\n(point 1 ; x\n    -2)\n\n:end\n", got)

	reparsed, err := ldn.ParseString(got)
	require.NoError(t, err)
	assert.Equal(t, stripSpans(doc.Items), stripSpans(reparsed.Items))
}

func TestFormat_StringEscapingRoundTrips(t *testing.T) {
	doc := &ldn.Document{Items: []ldn.Item{ldn.String{Value: `say "hi"`}}}
	out := Format(doc)
	assert.Equal(t, "\"say \\\"hi\\\"\"\n", out)

	reparsed, err := ldn.ParseString(out)
	require.NoError(t, err)
	require.Len(t, reparsed.Items, 1)
	assert.Equal(t, `say "hi"`, reparsed.Items[0].(ldn.String).Value)
}

func TestFormat_Encode(t *testing.T) {
	doc, err := ldn.ParseString("(a)")
	require.NoError(t, err)

	var sb strings.Builder
	require.NoError(t, NewFormatter().Encode(&sb, doc))
	assert.Equal(t, "(a)\n", sb.String())
}

var roundTripInputs = []string{
	"",
	"0",
	"-",
	`(1 (2 3) 4 ("foo"))`,
	`"foo \"bar\" baz"`,
	";; foo",
	"(a ; c\n)",
	"(a\n  (b\n    c) ; x\n  d)\n\n\n; tail",
	"\"multi\nline\" (x\n\"y\nz\" w)",
	"(:k \"v\" :n -12 :s sym)",
	`"x\\"y"`,
	`"unterminated`,
	"(((((deep)))))",
}

func TestFormat_RoundTrip(t *testing.T) {
	for _, input := range roundTripInputs {
		t.Run(input, func(t *testing.T) {
			doc, err := ldn.ParseString(input)
			require.NoError(t, err)

			out := Format(doc)
			reparsed, err := ldn.ParseString(out)
			require.NoError(t, err, "formatted output:\n%s", out)
			assert.Equal(t, stripSpans(doc.Items), stripSpans(reparsed.Items))
		})
	}
}

func TestFormat_Idempotent(t *testing.T) {
	for _, input := range roundTripInputs {
		t.Run(input, func(t *testing.T) {
			doc, err := ldn.ParseString(input)
			require.NoError(t, err)

			once := Format(doc)
			reparsed, err := ldn.ParseString(once)
			require.NoError(t, err)
			assert.Equal(t, once, Format(reparsed))
		})
	}
}

// Separator deltas are measured between start lines. A multi-line string
// followed by a top-level comment moves the comment down by the string's
// extra lines, so the first pass gains a blank line on the second and is
// stable from then on. Inside a list any positive delta is a single newline.
func TestFormat_MultilineStringBeforeComment(t *testing.T) {
	doc, err := ldn.ParseString("\"a\nb\" ; c")
	require.NoError(t, err)
	once := Format(doc)
	assert.Equal(t, "\"a\nb\"\n; c\n", once)

	doc, err = ldn.ParseString(once)
	require.NoError(t, err)
	twice := Format(doc)
	assert.Equal(t, "\"a\nb\"\n\n; c\n", twice)

	doc, err = ldn.ParseString(twice)
	require.NoError(t, err)
	assert.Equal(t, twice, Format(doc))

	doc, err = ldn.ParseString("(\"a\nb\" ; c\n)")
	require.NoError(t, err)
	nested := Format(doc)
	assert.Equal(t, "(\"a\nb\"\n  ; c\n)\n", nested)

	doc, err = ldn.ParseString(nested)
	require.NoError(t, err)
	assert.Equal(t, nested, Format(doc))
}

func TestCompact(t *testing.T) {
	doc, err := ldn.ParseString("; hello\n(a\n  b   (c))\n\n\n:k \"s\"")
	require.NoError(t, err)
	assert.Equal(t, "hello\n\n\n(a b (c))\n\n:k\n\n\"s\"", Compact(doc))
}

// stripSpans returns a copy of items with every span zeroed.
func stripSpans(items []ldn.Item) []ldn.Item {
	out := make([]ldn.Item, len(items))
	for i, item := range items {
		switch it := item.(type) {
		case ldn.Comment:
			out[i] = ldn.Comment{Text: it.Text}
		case ldn.List:
			out[i] = ldn.List{Items: stripSpans(it.Items)}
		case ldn.Integer:
			out[i] = ldn.Integer{Value: it.Value}
		case ldn.Keyword:
			out[i] = ldn.Keyword{Name: it.Name}
		case ldn.String:
			out[i] = ldn.String{Value: it.Value}
		case ldn.Symbol:
			out[i] = ldn.Symbol{Name: it.Name}
		}
	}
	return out
}
