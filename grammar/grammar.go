// Package grammar carries the EBNF description of LDN.
package grammar

import (
	_ "embed"
	"fmt"
	"strings"

	"golang.org/x/exp/ebnf"
)

// Start is the production a document is parsed from.
const Start = "Document"

//go:embed ldn.ebnf
var Source string

// Load parses the embedded grammar and verifies it from Start.
func Load() (ebnf.Grammar, error) {
	return LoadFrom(Start)
}

// LoadFrom parses the embedded grammar and verifies it from start. An empty
// start only checks the syntax.
func LoadFrom(start string) (ebnf.Grammar, error) {
	g, err := ebnf.Parse("ldn.ebnf", strings.NewReader(Source))
	if err != nil {
		return nil, fmt.Errorf("parse grammar: %w", err)
	}
	if start == "" {
		return g, nil
	}
	if err := ebnf.Verify(g, start); err != nil {
		return nil, fmt.Errorf("verify grammar: %w", err)
	}
	return g, nil
}
