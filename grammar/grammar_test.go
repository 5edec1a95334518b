package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	g, err := Load()
	require.NoError(t, err)

	for _, want := range []string{"Document", "List", "Atom", "integer", "keyword", "string", "symbol", "comment"} {
		assert.Contains(t, g, want, "production %q missing", want)
	}
}

func TestLoadFromUnreachable(t *testing.T) {
	// Document is not reachable from List.
	_, err := LoadFrom("List")
	assert.Error(t, err)
}

func TestLoadFromSyntaxOnly(t *testing.T) {
	_, err := LoadFrom("")
	assert.NoError(t, err)
}
