package ldn

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"01", "1:1:1:3 found leading zero while parsing integer constant '01'"},
		{"99999999999999999999", "1:1:1:21 cannot parse '99999999999999999999' as integer"},
		{" \r", `1:2 invalid character '\r'`},
		{"a$b", "1:1:1:4 cannot parse 'a$b' as symbol"},
		{"(1 (2) 3", "1:9 unbalanced parentheses in list"},
		{"\n)", "2:1 unexpected ')' at top level"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := ParseString(tt.input)
			require.Error(t, err)
			assert.Equal(t, tt.want, err.Error())
		})
	}
}

func TestErrorIs(t *testing.T) {
	_, err := ParseString("-0")
	wrapped := fmt.Errorf("load config: %w", err)

	assert.ErrorIs(t, wrapped, ErrIntegerLeadingZero)
	assert.NotErrorIs(t, wrapped, ErrIntegerParse)

	var perr *Error
	require.True(t, errors.As(wrapped, &perr))
	assert.Equal(t, "-0", perr.Token)
}

func TestErrorKindStrings(t *testing.T) {
	kinds := []ErrorKind{
		KindIntegerLeadingZero,
		KindIntegerParse,
		KindUnknownCharacter,
		KindSymbolParse,
		KindUnbalancedParentheses,
		KindUTF8,
		KindUnexpectedCloseParen,
		KindNestingTooDeep,
	}
	seen := make(map[string]bool)
	for _, k := range kinds {
		name := k.String()
		assert.False(t, seen[name], "duplicate name %q", name)
		seen[name] = true
		assert.NotEqual(t, "Parse error", k.Summary(), "%v has no summary", k)
	}
	assert.Equal(t, "ErrorKind(99)", ErrorKind(99).String())
}

func TestPositionString(t *testing.T) {
	assert.Equal(t, "1:1", Pos(0, 0).String())
	assert.Equal(t, "2:3:4:5", SpanOf(1, 2, 3, 4).String())
}

func TestSpanContains(t *testing.T) {
	s := SpanOf(0, 2, 1, 3)
	tests := []struct {
		pos  Position
		want bool
	}{
		{Pos(0, 1), false},
		{Pos(0, 2), true},
		{Pos(0, 80), true},
		{Pos(1, 2), true},
		{Pos(1, 3), false},
		{Pos(2, 0), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, s.Contains(tt.pos), "Contains(%v)", tt.pos)
	}
}

func TestItemAt(t *testing.T) {
	doc, err := ParseString("(a (b c)\n  d)")
	require.NoError(t, err)

	tests := []struct {
		pos  Position
		want string
	}{
		{Pos(0, 1), "a"},
		{Pos(0, 6), "c"},
		{Pos(1, 2), "d"},
	}
	for _, tt := range tests {
		sym, ok := ItemAt(doc.Items, tt.pos).(Symbol)
		if assert.True(t, ok, "ItemAt(%v) = %#v", tt.pos, ItemAt(doc.Items, tt.pos)) {
			assert.Equal(t, tt.want, sym.Name)
		}
	}

	assert.IsType(t, List{}, ItemAt(doc.Items, Pos(0, 2)), "outer list")
	assert.Nil(t, ItemAt(doc.Items, Pos(5, 0)))
}
