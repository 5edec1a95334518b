package grammar

import (
	"fmt"

	"golang.org/x/exp/ebnf"
)

// SyntaxError reports the token at which recognition failed.
type SyntaxError struct {
	Token Token
}

func (e *SyntaxError) Error() string {
	if e.Token.Kind == KindEOF {
		return fmt.Sprintf("%s unexpected end of input", e.Token.Pos)
	}
	return fmt.Sprintf("%s unexpected %s %q", e.Token.Pos, e.Token.Kind, e.Token.Literal)
}

// Recognize reports whether tokens form a sentence of the non-lexical
// production start. Alternatives are tried in order and repetitions are
// greedy, which is enough for grammars that need one token of lookahead.
func Recognize(g ebnf.Grammar, tokens []Token, start string) error {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != KindEOF {
		tokens = append(tokens, Token{Kind: KindEOF})
	}
	r := &recognizer{grammar: g, tokens: tokens}

	prod, ok := g[start]
	if !ok {
		return fmt.Errorf("unknown production %s", start)
	}
	end := r.match(prod.Expr, 0)
	if end == len(tokens)-1 {
		return nil
	}
	if end > r.furthest {
		r.furthest = end
	}
	return &SyntaxError{Token: tokens[min(r.furthest, len(tokens)-1)]}
}

// atomDelimiters makes the lexer split atoms the way the parser does: an
// atom runs up to whitespace or a closing paren.
var atomDelimiters = WithDelimiters(" \n)", "integer", "keyword", "symbol")

// Check tokenizes input with the embedded grammar and recognizes it as a
// Document.
func Check(input []byte) error {
	g, err := Load()
	if err != nil {
		return err
	}
	tokens, err := NewLexer(g, input, atomDelimiters).Tokenize()
	if err != nil {
		return err
	}
	return Recognize(g, tokens, Start)
}

// Tokenize splits input into tokens of the embedded grammar.
func Tokenize(input []byte) ([]Token, error) {
	g, err := Load()
	if err != nil {
		return nil, err
	}
	return NewLexer(g, input, atomDelimiters).Tokenize()
}

type recognizer struct {
	grammar  ebnf.Grammar
	tokens   []Token
	furthest int
}

// match returns the index after expr matched at i, or -1.
func (r *recognizer) match(expr ebnf.Expression, i int) int {
	switch e := expr.(type) {
	case nil:
		return i

	case *ebnf.Token:
		return r.expect(e.String, i)

	case *ebnf.Name:
		if isLexical(e.String) {
			return r.expect(e.String, i)
		}
		prod, ok := r.grammar[e.String]
		if !ok {
			return -1
		}
		return r.match(prod.Expr, i)

	case ebnf.Sequence:
		for _, item := range e {
			i = r.match(item, i)
			if i < 0 {
				return -1
			}
		}
		return i

	case ebnf.Alternative:
		for _, alt := range e {
			if j := r.match(alt, i); j >= 0 {
				return j
			}
		}
		return -1

	case *ebnf.Repetition:
		for {
			j := r.match(e.Body, i)
			if j <= i {
				return i
			}
			i = j
		}

	case *ebnf.Option:
		if j := r.match(e.Body, i); j >= 0 {
			return j
		}
		return i

	case *ebnf.Group:
		return r.match(e.Body, i)
	}
	return -1
}

func (r *recognizer) expect(kind string, i int) int {
	if i < len(r.tokens) && r.tokens[i].Kind == kind {
		return i + 1
	}
	if i > r.furthest {
		r.furthest = i
	}
	return -1
}
