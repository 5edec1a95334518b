package ldn

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds list nesting unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 512

type Option func(*Parser)

// WithMaxDepth limits how deeply lists may nest. Zero disables the limit.
func WithMaxDepth(n int) Option {
	return func(p *Parser) {
		p.maxDepth = n
	}
}

// Parser is a recursive-descent parser for LDN documents. The nesting depth
// of the list being parsed is its only state.
type Parser struct {
	tokenizer *Tokenizer
	cursor    *Cursor
	maxDepth  int
	depth     int
}

// NewParser creates a parser reading from r.
func NewParser(r io.ByteReader, opts ...Option) *Parser {
	c := NewCursor(r)
	p := &Parser{
		tokenizer: NewTokenizer(c),
		cursor:    c,
		maxDepth:  DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse parses a complete document.
func Parse(input []byte, opts ...Option) (*Document, error) {
	return NewParser(bytes.NewReader(input), opts...).Parse()
}

func ParseString(input string, opts ...Option) (*Document, error) {
	return NewParser(strings.NewReader(input), opts...).Parse()
}

// ParseReader reads r to the end before parsing it.
func ParseReader(r io.Reader, opts ...Option) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return Parse(data, opts...)
}

// Parse consumes the whole input as a top-level item sequence. A read error
// ends the input early, so it takes precedence over any syntax error found
// at that point.
func (p *Parser) Parse() (*Document, error) {
	items, err := p.parseItems(true)
	if rerr := p.cursor.Err(); rerr != nil {
		return nil, fmt.Errorf("read input: %w", rerr)
	}
	if err != nil {
		return nil, err
	}
	return &Document{Items: items}, nil
}

// parseItems is shared by the top level and by lists. The only difference is
// that nested lists end at a closing parenthesis, while the top level ends
// with the input.
func (p *Parser) parseItems(topLevel bool) ([]Item, error) {
	items := []Item{}

	for {
		ch, ok := p.tokenizer.Peek()
		if !ok {
			break
		}

		var item Item
		var err error

		switch {
		case isWhitespace(ch):
			p.tokenizer.Advance()
			continue
		case ch == ';':
			item, err = p.parseComment()
		case ch == '0' || ch == '-' || isDigit19(ch):
			item, err = p.parseIntegerOrSymbol()
		case ch == '"':
			item, err = p.parseString()
		case ch == ':':
			item, err = p.parseKeyword()
		case isSymbol(ch):
			item, err = p.parseSymbol()
		case ch == '(':
			item, err = p.parseList()
		case ch == ')':
			if topLevel {
				return nil, errorAt(KindUnexpectedCloseParen, p.tokenizer.Position())
			}
			p.tokenizer.Advance()
			return items, nil
		default:
			e := errorAt(KindUnknownCharacter, p.tokenizer.Position())
			e.Char = ch
			return nil, e
		}

		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	if !topLevel {
		return nil, errorAt(KindUnbalancedParentheses, p.tokenizer.Position())
	}
	return items, nil
}

// Productions. Each is entered with the first byte of the production peeked.

func (p *Parser) parseList() (Item, error) {
	start := p.tokenizer.Position()
	if p.maxDepth > 0 && p.depth >= p.maxDepth {
		e := errorAt(KindNestingTooDeep, start)
		e.Limit = p.maxDepth
		return nil, e
	}
	p.tokenizer.Advance()

	p.depth++
	items, err := p.parseItems(false)
	p.depth--
	if err != nil {
		return nil, err
	}

	return List{Items: items, Loc: Span{Start: start, End: p.tokenizer.Position()}}, nil
}

func (p *Parser) parseComment() (Item, error) {
	text, span, err := p.tokenizer.ConsumeWhile(func(ch byte) bool { return ch != '\n' })
	if err != nil {
		return nil, err
	}
	return Comment{
		Text: strings.TrimSpace(strings.TrimLeft(text, ";")),
		Loc:  span,
	}, nil
}

func (p *Parser) parseIntegerOrSymbol() (Item, error) {
	token, span, err := p.nextToken()
	if err != nil {
		return nil, err
	}

	if (strings.HasPrefix(token, "0") && token != "0") || strings.HasPrefix(token, "-0") {
		return nil, &Error{Kind: KindIntegerLeadingZero, Token: token, Span: span}
	}
	if token == "-" {
		return Symbol{Name: token, Loc: span}, nil
	}

	v, err := strconv.ParseInt(token, 10, 64)
	if err != nil {
		return nil, &Error{Kind: KindIntegerParse, Token: token, Span: span}
	}
	return Integer{Value: v, Loc: span}, nil
}

// parseString accumulates chunks up to each quote. A chunk ending in a
// backslash means the quote was escaped and the string goes on. The span ends
// where the last chunk ends, before the closing quote.
func (p *Parser) parseString() (Item, error) {
	start := p.tokenizer.Position()
	p.tokenizer.Advance()

	var sb strings.Builder
	var last Span

	for {
		chunk, span, err := p.tokenizer.ConsumeWhile(func(ch byte) bool { return ch != '"' })
		if err != nil {
			return nil, err
		}
		p.tokenizer.Advance()
		last = span

		if strings.HasSuffix(chunk, `\`) {
			sb.WriteString(chunk[:len(chunk)-1])
			sb.WriteByte('"')
			continue
		}
		sb.WriteString(chunk)
		break
	}

	return String{Value: sb.String(), Loc: Span{Start: start, End: last.End}}, nil
}

func (p *Parser) parseKeyword() (Item, error) {
	start := p.tokenizer.Position()
	p.tokenizer.Advance()

	item, err := p.parseSymbol()
	if err != nil {
		return nil, err
	}
	sym := item.(Symbol)
	return Keyword{Name: sym.Name, Loc: Span{Start: start, End: sym.Loc.End}}, nil
}

func (p *Parser) parseSymbol() (Item, error) {
	token, span, err := p.nextToken()
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(token); i++ {
		if !isSymbol(token[i]) {
			return nil, &Error{Kind: KindSymbolParse, Token: token, Span: span}
		}
	}
	return Symbol{Name: token, Loc: span}, nil
}

// nextToken consumes up to the next whitespace byte or closing parenthesis.
// Validation happens on the whole token afterwards, so errors report all of it.
func (p *Parser) nextToken() (string, Span, error) {
	return p.tokenizer.ConsumeWhile(func(ch byte) bool {
		return !isWhitespace(ch) && ch != ')'
	})
}

// Recognizers

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\n'
}

func isDigit19(ch byte) bool {
	return ch >= '1' && ch <= '9'
}

func isAlpha(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z'
}

func isSymbol(ch byte) bool {
	switch ch {
	case '+', '-', '*', '/', '%', '=', '<', '>', '?', '!':
		return true
	}
	return isAlpha(ch)
}
