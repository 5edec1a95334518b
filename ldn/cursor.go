package ldn

import "io"

// Cursor wraps a byte source and tracks the position of the next byte.
type Cursor struct {
	r    io.ByteReader
	pos  Position
	done bool
	err  error
}

func NewCursor(r io.ByteReader) *Cursor {
	return &Cursor{r: r}
}

// Next returns the next byte. It reports false once the source is exhausted;
// exhaustion is sticky.
func (c *Cursor) Next() (byte, bool) {
	if c.done {
		return 0, false
	}
	ch, err := c.r.ReadByte()
	if err != nil {
		c.done = true
		if err != io.EOF {
			c.err = err
		}
		return 0, false
	}
	if ch == '\n' {
		c.pos.Line++
		c.pos.Column = 0
	} else {
		c.pos.Column++
	}
	return ch, true
}

// Position returns the position of the byte about to be produced by Next.
func (c *Cursor) Position() Position {
	return c.pos
}

// Err returns the read error that ended the stream, if it was not io.EOF.
func (c *Cursor) Err() error {
	return c.err
}
