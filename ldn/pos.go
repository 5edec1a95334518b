package ldn

import "fmt"

// Position is a location in a text document expressed as zero-based line and
// column offsets. Columns count bytes, not runes.
type Position struct {
	Line   int
	Column int
}

// Pos is shorthand for Position{Line: line, Column: column}.
func Pos(line, column int) Position {
	return Position{Line: line, Column: column}
}

// String renders the position one-based, as "line:column".
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Before reports whether p comes strictly before q.
func (p Position) Before(q Position) bool {
	if p.Line != q.Line {
		return p.Line < q.Line
	}
	return p.Column < q.Column
}

// Span is a range in a text document. End is exclusive.
type Span struct {
	Start Position
	End   Position
}

// SpanOf builds a span from raw zero-based offsets.
func SpanOf(startLine, startColumn, endLine, endColumn int) Span {
	return Span{
		Start: Position{Line: startLine, Column: startColumn},
		End:   Position{Line: endLine, Column: endColumn},
	}
}

// String renders the span as "a:b:c:d", the one-based start followed by the
// one-based end.
func (s Span) String() string {
	return s.Start.String() + ":" + s.End.String()
}

// IsEmpty reports whether the span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.Start == s.End
}

// Contains reports whether p falls inside the span.
func (s Span) Contains(p Position) bool {
	return !p.Before(s.Start) && p.Before(s.End)
}
