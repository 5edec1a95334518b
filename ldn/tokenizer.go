package ldn

import "unicode/utf8"

// Tokenizer adds one byte of lookahead to a Cursor.
//
// The peeked byte lives in a single slot that only Advance clears, so
// repeated calls to Peek return the same byte and leave Position unchanged.
type Tokenizer struct {
	cursor *Cursor

	peeked    bool
	peekedCh  byte
	peekedOK  bool
	peekedPos Position
}

func NewTokenizer(c *Cursor) *Tokenizer {
	return &Tokenizer{cursor: c}
}

// Peek returns the next byte without consuming it.
func (t *Tokenizer) Peek() (byte, bool) {
	if !t.peeked {
		t.peekedPos = t.cursor.Position()
		t.peekedCh, t.peekedOK = t.cursor.Next()
		t.peeked = true
	}
	return t.peekedCh, t.peekedOK
}

// Advance consumes and returns the next byte, starting with the peeked one.
func (t *Tokenizer) Advance() (byte, bool) {
	if t.peeked {
		t.peeked = false
		return t.peekedCh, t.peekedOK
	}
	return t.cursor.Next()
}

// Position returns the position of the next unconsumed byte.
func (t *Tokenizer) Position() Position {
	if t.peeked {
		return t.peekedPos
	}
	return t.cursor.Position()
}

// ConsumeWhile consumes bytes for as long as pred holds and returns them as
// text together with the span they cover. The bytes must form valid UTF-8.
func (t *Tokenizer) ConsumeWhile(pred func(byte) bool) (string, Span, error) {
	var buf []byte
	start := t.Position()

	for {
		ch, ok := t.Peek()
		if !ok || !pred(ch) {
			break
		}
		buf = append(buf, ch)
		t.Advance()
	}

	span := Span{Start: start, End: t.Position()}
	if !utf8.Valid(buf) {
		return "", span, &Error{Kind: KindUTF8, Span: span}
	}
	return string(buf), span, nil
}
