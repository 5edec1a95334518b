package grammar

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dhamidi/ldn/ldn"
	"golang.org/x/exp/ebnf"
)

// Token kinds that do not come from the grammar.
const (
	KindEOF   = "EOF"
	KindError = "ERROR"
)

// Token is a lexeme recognized by a grammar production or literal.
type Token struct {
	Kind    string
	Literal string
	Pos     ldn.Position
}

func (t Token) String() string {
	return fmt.Sprintf("%s %s %q", t.Pos, t.Kind, t.Literal)
}

type memoKey struct {
	name   string
	offset int
}

// Lexer tokenizes input with the lexical productions of a grammar. A token is
// either a lexical production named by a non-lexical one (its kind is the
// production name) or a literal used directly in a non-lexical production
// (its kind is the literal). The longest match wins. Spaces and newlines
// between tokens are skipped.
type Lexer struct {
	grammar  ebnf.Grammar
	names    []string
	literals []string
	input    []byte
	pos      int
	line     int
	column   int
	memo     map[memoKey]int  // match length, -1 for no match
	visiting map[memoKey]bool // cycle detection

	delims    string
	delimited map[string]bool
}

type LexerOption func(*Lexer)

// WithDelimiters requires a token of one of the given kinds to be followed by
// a byte from delims or by the end of the input. When it is not, the lexer
// reads on up to the next delimiter and returns the whole run as a single
// KindError token.
func WithDelimiters(delims string, kinds ...string) LexerOption {
	return func(l *Lexer) {
		l.delims = delims
		l.delimited = make(map[string]bool, len(kinds))
		for _, kind := range kinds {
			l.delimited[kind] = true
		}
	}
}

func NewLexer(g ebnf.Grammar, input []byte, opts ...LexerOption) *Lexer {
	names, literals := tokenProductions(g)
	l := &Lexer{
		grammar:  g,
		names:    names,
		literals: literals,
		input:    input,
		memo:     make(map[memoKey]int),
		visiting: make(map[memoKey]bool),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Position returns the current position in the input.
func (l *Lexer) Position() ldn.Position {
	return ldn.Pos(l.line, l.column)
}

func (l *Lexer) advance() {
	if l.pos >= len(l.input) {
		return
	}
	if l.input[l.pos] == '\n' {
		l.line++
		l.column = 0
	} else {
		l.column++
	}
	l.pos++
}

// NextToken returns the next token, or a token of kind KindEOF and io.EOF
// at the end of the input. Bytes no token matches come back one at a time as
// KindError tokens, and so do undelimited runs (see WithDelimiters).
func (l *Lexer) NextToken() (Token, error) {
	for l.pos < len(l.input) && (l.input[l.pos] == ' ' || l.input[l.pos] == '\n') {
		l.advance()
	}
	if l.pos >= len(l.input) {
		return Token{Kind: KindEOF, Pos: l.Position()}, io.EOF
	}

	start := l.Position()
	offset := l.pos

	// Positions change with every token.
	l.memo = make(map[memoKey]int)

	var bestKind string
	bestLen := 0

	for _, name := range l.names {
		l.visiting = make(map[memoKey]bool)
		if n := l.matchName(name, offset); n > bestLen {
			bestLen = n
			bestKind = name
		}
	}
	for _, lit := range l.literals {
		if len(lit) > bestLen && bytes.HasPrefix(l.input[offset:], []byte(lit)) {
			bestLen = len(lit)
			bestKind = lit
		}
	}

	if bestLen == 0 {
		l.advance()
		return Token{Kind: KindError, Literal: string(l.input[offset:l.pos]), Pos: start}, nil
	}

	if l.delimited[bestKind] && !l.delimitedAt(offset+bestLen) {
		for l.pos < len(l.input) && !l.delimitedAt(l.pos) {
			l.advance()
		}
		return Token{Kind: KindError, Literal: string(l.input[offset:l.pos]), Pos: start}, nil
	}

	for i := 0; i < bestLen; i++ {
		l.advance()
	}
	return Token{Kind: bestKind, Literal: string(l.input[offset:l.pos]), Pos: start}, nil
}

func (l *Lexer) delimitedAt(offset int) bool {
	return offset >= len(l.input) || strings.IndexByte(l.delims, l.input[offset]) >= 0
}

// Tokenize reads all tokens, including the final KindEOF token.
func (l *Lexer) Tokenize() ([]Token, error) {
	var tokens []Token
	for {
		tok, err := l.NextToken()
		tokens = append(tokens, tok)
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
	}
}

// match returns the length matched by expr at offset, or -1.
func (l *Lexer) match(expr ebnf.Expression, offset int) int {
	switch e := expr.(type) {
	case nil:
		return 0

	case *ebnf.Token:
		if bytes.HasPrefix(l.input[offset:], []byte(e.String)) {
			return len(e.String)
		}
		return -1

	case *ebnf.Range:
		return l.matchRange(e, offset)

	case ebnf.Sequence:
		total := 0
		for _, item := range e {
			n := l.match(item, offset+total)
			if n < 0 {
				return -1
			}
			total += n
		}
		return total

	case ebnf.Alternative:
		best := -1
		for _, alt := range e {
			if n := l.match(alt, offset); n > best {
				best = n
			}
		}
		return best

	case *ebnf.Repetition:
		total := 0
		for {
			n := l.match(e.Body, offset+total)
			if n <= 0 {
				return total
			}
			total += n
		}

	case *ebnf.Option:
		if n := l.match(e.Body, offset); n > 0 {
			return n
		}
		return 0

	case *ebnf.Group:
		return l.match(e.Body, offset)

	case *ebnf.Name:
		return l.matchName(e.String, offset)
	}
	return -1
}

func (l *Lexer) matchName(name string, offset int) int {
	key := memoKey{name: name, offset: offset}
	if n, ok := l.memo[key]; ok {
		return n
	}
	// Left recursion.
	if l.visiting[key] {
		return -1
	}

	prod, ok := l.grammar[name]
	if !ok {
		l.memo[key] = -1
		return -1
	}

	l.visiting[key] = true
	n := l.match(prod.Expr, offset)
	delete(l.visiting, key)

	l.memo[key] = n
	return n
}

func (l *Lexer) matchRange(e *ebnf.Range, offset int) int {
	if offset >= len(l.input) {
		return -1
	}
	r, size := utf8.DecodeRune(l.input[offset:])
	if r == utf8.RuneError && size <= 1 {
		return -1
	}
	begin, _ := utf8.DecodeRuneInString(e.Begin.String)
	end, _ := utf8.DecodeRuneInString(e.End.String)
	if r < begin || r > end {
		return -1
	}
	return size
}

// tokenProductions collects the lexical production names and the literals
// used directly by non-lexical productions.
func tokenProductions(g ebnf.Grammar) (names, literals []string) {
	seenNames := make(map[string]bool)
	seenLiterals := make(map[string]bool)

	var walk func(ebnf.Expression)
	walk = func(expr ebnf.Expression) {
		switch e := expr.(type) {
		case *ebnf.Name:
			if isLexical(e.String) {
				seenNames[e.String] = true
			}
		case *ebnf.Token:
			seenLiterals[e.String] = true
		case ebnf.Sequence:
			for _, item := range e {
				walk(item)
			}
		case ebnf.Alternative:
			for _, alt := range e {
				walk(alt)
			}
		case *ebnf.Repetition:
			walk(e.Body)
		case *ebnf.Option:
			walk(e.Body)
		case *ebnf.Group:
			walk(e.Body)
		}
	}

	for name, prod := range g {
		if !isLexical(name) {
			walk(prod.Expr)
		}
	}

	for name := range seenNames {
		names = append(names, name)
	}
	for lit := range seenLiterals {
		literals = append(literals, lit)
	}
	sort.Strings(names)
	sort.Strings(literals)
	return names, literals
}

func isLexical(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsLower(r)
}
