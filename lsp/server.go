// Package lsp serves LDN documents to editors over the Language Server
// Protocol: parse diagnostics, whole-document formatting and hover.
package lsp

import (
	"fmt"

	"github.com/dhamidi/ldn/config"
	"github.com/dhamidi/ldn/format"
	"github.com/dhamidi/ldn/ldn"
	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"
)

const lsName = "ldn"

var log = commonlog.GetLogger("ldn.lsp")

type LSPServer struct {
	workspace *Workspace
	formatter *format.Formatter
	handler   protocol.Handler
	server    *server.Server
	version   string
}

func NewLSPServer(version string, cfg *config.Config) *LSPServer {
	ls := &LSPServer{
		workspace: NewWorkspace(cfg.ParseOptions()...),
		formatter: cfg.Formatter(),
		version:   version,
	}

	ls.handler = protocol.Handler{
		Initialize:             ls.initialize,
		Initialized:            ls.initialized,
		Shutdown:               ls.shutdown,
		SetTrace:               ls.setTrace,
		TextDocumentDidOpen:    ls.textDocumentDidOpen,
		TextDocumentDidChange:  ls.textDocumentDidChange,
		TextDocumentDidClose:   ls.textDocumentDidClose,
		TextDocumentDidSave:    ls.textDocumentDidSave,
		TextDocumentFormatting: ls.textDocumentFormatting,
		TextDocumentHover:      ls.textDocumentHover,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *LSPServer) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *LSPServer) Workspace() *Workspace {
	return ls.workspace
}

func (ls *LSPServer) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    syncKindPtr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *LSPServer) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	log.Infof("%s %s ready", lsName, ls.version)
	return nil
}

func (ls *LSPServer) shutdown(ctx *glsp.Context) error {
	protocol.SetTraceValue(protocol.TraceValueOff)
	return nil
}

func (ls *LSPServer) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *LSPServer) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return nil
}

func (ls *LSPServer) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.update(ctx, params.TextDocument.URI, textChange.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.workspace.Remove(params.TextDocument.URI)
	publish(ctx, params.TextDocument.URI, nil)
	return nil
}

func (ls *LSPServer) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.update(ctx, params.TextDocument.URI, *params.Text)
	}
	return nil
}

func (ls *LSPServer) textDocumentFormatting(ctx *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	return []protocol.TextEdit{{
		Range:   wholeDocument,
		NewText: ls.formatter.Format(doc.Tree),
	}}, nil
}

func (ls *LSPServer) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.workspace.Get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	item := ldn.ItemAt(doc.Tree.Items, fromPosition(params.Position))
	if item == nil {
		return nil, nil
	}
	r := toRange(item.Span())
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: describe(item),
		},
		Range: &r,
	}, nil
}

func (ls *LSPServer) update(ctx *glsp.Context, uri protocol.DocumentUri, text string) {
	if err := ls.workspace.Update(uri, text); err != nil {
		log.Debugf("parse %s: %s", uri, err)
		publish(ctx, uri, []protocol.Diagnostic{Diagnostic(err)})
		return
	}
	publish(ctx, uri, nil)
}

func publish(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func describe(item ldn.Item) string {
	switch it := item.(type) {
	case ldn.List:
		return fmt.Sprintf("**list** with %d items", countValues(it.Items))
	case ldn.Comment:
		return "**comment**"
	case ldn.Integer:
		return fmt.Sprintf("**integer** `%d`", it.Value)
	case ldn.Keyword:
		return fmt.Sprintf("**keyword** `%s`", format.Atom(it))
	case ldn.String:
		return fmt.Sprintf("**string** of %d bytes", len(it.Value))
	case ldn.Symbol:
		return fmt.Sprintf("**symbol** `%s`", it.Name)
	}
	return ""
}

func countValues(items []ldn.Item) int {
	n := 0
	for _, it := range items {
		if !it.IsComment() {
			n++
		}
	}
	return n
}

func boolPtr(b bool) *bool {
	return &b
}

func syncKindPtr(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
