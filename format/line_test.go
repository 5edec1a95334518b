package format

import (
	"bytes"
	"testing"

	"github.com/dhamidi/ldn/ldn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineEncoder(t *testing.T) {
	doc, err := ldn.ParseString("(def x ; note\n  \"a\nb\")\n:k 7")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewLineEncoder(&buf).Encode(doc))

	want := "0\tlist\t1:1:3:4\t3\n" +
		"1\tsymbol\t1:2:1:5\tdef\n" +
		"1\tsymbol\t1:6:1:7\tx\n" +
		"1\tcomment\t1:8:1:14\t\"note\"\n" +
		"1\tstring\t2:3:3:2\t\"a\\nb\"\n" +
		"0\tkeyword\t4:1:4:3\t:k\n" +
		"0\tinteger\t4:4:4:5\t7\n"
	assert.Equal(t, want, buf.String())
}

func TestLineEncoderEmpty(t *testing.T) {
	doc, err := ldn.ParseString("")
	require.NoError(t, err)

	text, err := NewLineEncoder(nil).MarshalText(doc)
	require.NoError(t, err)
	assert.Empty(t, text)
}
