package ldn

import "fmt"

// ErrorKind classifies parse failures.
type ErrorKind int

const (
	KindIntegerLeadingZero ErrorKind = iota + 1
	KindIntegerParse
	KindUnknownCharacter
	KindSymbolParse
	KindUnbalancedParentheses
	KindUTF8
	KindUnexpectedCloseParen
	KindNestingTooDeep
)

var errorKindNames = map[ErrorKind]string{
	KindIntegerLeadingZero:    "IntegerLeadingZero",
	KindIntegerParse:          "IntegerParseError",
	KindUnknownCharacter:      "UnknownCharacter",
	KindSymbolParse:           "SymbolParseError",
	KindUnbalancedParentheses: "UnbalancedParentheses",
	KindUTF8:                  "Utf8Error",
	KindUnexpectedCloseParen:  "UnexpectedCloseParen",
	KindNestingTooDeep:        "NestingTooDeep",
}

var errorKindSummaries = map[ErrorKind]string{
	KindIntegerLeadingZero:    "Found leading zero while parsing integer constant",
	KindIntegerParse:          "Invalid integer constant",
	KindUnknownCharacter:      "Invalid character",
	KindSymbolParse:           "Symbol parse error",
	KindUnbalancedParentheses: "Unbalanced parentheses",
	KindUTF8:                  "UTF-8 decode error",
	KindUnexpectedCloseParen:  "Unexpected closing parenthesis",
	KindNestingTooDeep:        "Lists nested too deeply",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Summary is a short, position-free description suitable for editor
// diagnostics.
func (k ErrorKind) Summary() string {
	if s, ok := errorKindSummaries[k]; ok {
		return s
	}
	return "Parse error"
}

// HasSpan reports whether errors of this kind cover a token rather than a
// single position.
func (k ErrorKind) HasSpan() bool {
	switch k {
	case KindIntegerLeadingZero, KindIntegerParse, KindSymbolParse, KindUTF8:
		return true
	}
	return false
}

// Error is returned by the parser for malformed input.
//
// Token-level kinds carry the whole offending token and its span. Position
// kinds carry a collapsed span whose Start and End are equal.
type Error struct {
	Kind  ErrorKind
	Token string
	Char  byte
	Limit int
	Span  Span
}

// Sentinels for errors.Is. Only the Kind is compared.
var (
	ErrIntegerLeadingZero    = &Error{Kind: KindIntegerLeadingZero}
	ErrIntegerParse          = &Error{Kind: KindIntegerParse}
	ErrUnknownCharacter      = &Error{Kind: KindUnknownCharacter}
	ErrSymbolParse           = &Error{Kind: KindSymbolParse}
	ErrUnbalancedParentheses = &Error{Kind: KindUnbalancedParentheses}
	ErrUTF8                  = &Error{Kind: KindUTF8}
	ErrUnexpectedCloseParen  = &Error{Kind: KindUnexpectedCloseParen}
	ErrNestingTooDeep        = &Error{Kind: KindNestingTooDeep}
)

func errorAt(kind ErrorKind, pos Position) *Error {
	return &Error{Kind: kind, Span: Span{Start: pos, End: pos}}
}

// Position returns where the error starts.
func (e *Error) Position() Position {
	return e.Span.Start
}

func (e *Error) Error() string {
	return e.location() + " " + e.Message()
}

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func (e *Error) location() string {
	if e.Kind.HasSpan() {
		return e.Span.String()
	}
	return e.Span.Start.String()
}

// Message describes the error without its location.
func (e *Error) Message() string {
	switch e.Kind {
	case KindIntegerLeadingZero:
		return fmt.Sprintf("found leading zero while parsing integer constant '%s'", e.Token)
	case KindIntegerParse:
		return fmt.Sprintf("cannot parse '%s' as integer", e.Token)
	case KindUnknownCharacter:
		return fmt.Sprintf("invalid character %q", rune(e.Char))
	case KindSymbolParse:
		return fmt.Sprintf("cannot parse '%s' as symbol", e.Token)
	case KindUnbalancedParentheses:
		return "unbalanced parentheses in list"
	case KindUTF8:
		return "utf-8 decode error"
	case KindUnexpectedCloseParen:
		return "unexpected ')' at top level"
	case KindNestingTooDeep:
		return fmt.Sprintf("lists nested deeper than %d", e.Limit)
	}
	return "parse error"
}
