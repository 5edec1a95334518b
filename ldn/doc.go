// Package ldn parses LDN, a small S-expression data notation.
//
// # Overview
//
// A document is a sequence of items. An item is an atom, a line comment, or a
// parenthesized list of items:
//
//	; servers we talk to
//	(server :name "primary" :port 8080)
//	(server :name "backup"  :port 8081 :weight -1)
//
// Atoms are integers, keywords (":name"), strings and symbols. Strings only
// recognize the \" escape; a string may span several lines.
//
// # Architecture
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Cursor    │────▶│  Tokenizer  │────▶│   Parser    │
//	│  (bytes)    │     │ (peek/take) │     │ (Document)  │
//	└─────────────┘     └─────────────┘     └─────────────┘
//
// The Cursor tracks zero-based line and column numbers as bytes are consumed.
// The Tokenizer adds a single byte of lookahead and ConsumeWhile, which
// returns a run of bytes together with the Span that covers it. The Parser is
// a recursive-descent consumer that builds the tree.
//
// # Positions
//
// Every node carries its Span. Positions are zero-based; String renders
// them one-based, which is what most editors expect on stderr.
//
// # Errors
//
// Parsing is all or nothing: the first malformed construct aborts the parse
// and is returned as an *Error. Use errors.Is with the Err* sentinels to test
// the kind:
//
//	doc, err := ldn.ParseString(src)
//	if errors.Is(err, ldn.ErrUnbalancedParentheses) {
//		...
//	}
package ldn
