package ldn

// Item is a node of the document tree: an Atom, a Comment or a List.
type Item interface {
	Span() Span
	IsComment() bool
	item()
}

// Atom is an indivisible item: Integer, Keyword, String or Symbol.
type Atom interface {
	Item
	atom()
}

// Document is the top-level sequence of items. It has no enclosing
// parentheses.
type Document struct {
	Items []Item
}

// Comment is a line comment. Text has its leading semicolons and
// surrounding whitespace removed.
type Comment struct {
	Text string
	Loc  Span
}

func (c Comment) Span() Span      { return c.Loc }
func (c Comment) IsComment() bool { return true }
func (Comment) item()             {}

// List is a parenthesized sequence of items. Loc runs from the opening
// parenthesis through the closing one.
type List struct {
	Items []Item
	Loc   Span
}

func (l List) Span() Span      { return l.Loc }
func (l List) IsComment() bool { return false }
func (List) item()             {}

type Integer struct {
	Value int64
	Loc   Span
}

func (i Integer) Span() Span      { return i.Loc }
func (i Integer) IsComment() bool { return false }
func (Integer) item()             {}
func (Integer) atom()             {}

// Keyword is written ":name" in source. Name excludes the colon.
type Keyword struct {
	Name string
	Loc  Span
}

func (k Keyword) Span() Span      { return k.Loc }
func (k Keyword) IsComment() bool { return false }
func (Keyword) item()             {}
func (Keyword) atom()             {}

// String holds the unescaped value of a quoted string. Loc starts at the
// opening quote and ends before the closing one.
type String struct {
	Value string
	Loc   Span
}

func (s String) Span() Span      { return s.Loc }
func (s String) IsComment() bool { return false }
func (String) item()             {}
func (String) atom()             {}

type Symbol struct {
	Name string
	Loc  Span
}

func (s Symbol) Span() Span      { return s.Loc }
func (s Symbol) IsComment() bool { return false }
func (Symbol) item()             {}
func (Symbol) atom()             {}

// Walk calls fn for every item in depth-first order, parents before their
// children. If fn returns false the children of that item are skipped.
func Walk(items []Item, fn func(Item) bool) {
	for _, it := range items {
		if !fn(it) {
			continue
		}
		if l, ok := it.(List); ok {
			Walk(l.Items, fn)
		}
	}
}

// ItemAt returns the innermost item whose span contains pos, or nil.
func ItemAt(items []Item, pos Position) Item {
	var found Item
	Walk(items, func(it Item) bool {
		if !it.Span().Contains(pos) {
			return false
		}
		found = it
		return true
	})
	return found
}
