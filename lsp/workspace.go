package lsp

import (
	"sync"

	"github.com/dhamidi/ldn/ldn"
)

// Workspace is the table of open documents and their parsed trees. Every
// change re-parses the whole document.
type Workspace struct {
	mu        sync.RWMutex
	documents map[string]*Document
	opts      []ldn.Option
}

type Document struct {
	URI     string
	Content string
	Tree    *ldn.Document
}

func NewWorkspace(opts ...ldn.Option) *Workspace {
	return &Workspace{
		documents: make(map[string]*Document),
		opts:      opts,
	}
}

// Update parses content and stores it under uri. A document that fails to
// parse is dropped from the table and the parse error is returned.
func (w *Workspace) Update(uri, content string) error {
	tree, err := ldn.ParseString(content, w.opts...)

	w.mu.Lock()
	defer w.mu.Unlock()

	if err != nil {
		delete(w.documents, uri)
		return err
	}
	w.documents[uri] = &Document{
		URI:     uri,
		Content: content,
		Tree:    tree,
	}
	return nil
}

func (w *Workspace) Remove(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.documents, uri)
}

// Get returns the document stored under uri, or nil.
func (w *Workspace) Get(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.documents[uri]
}

func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.documents)
}
