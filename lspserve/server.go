// Package lspserve runs the parser behind a minimal Language Server
// Protocol server: it treats parser.Parser and visitor.Visitor exactly as
// the external collaborator boundary they are, running a parse on every
// document change and republishing the resulting diagnostics.
package lspserve

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	_ "github.com/tliron/commonlog/simple"

	"github.com/example/esparse/parser"
)

const lsName = "esparse"

// Server is a stdio Language Server that parses JavaScript documents on
// open/change/save and publishes syntax diagnostics for each.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string

	docs map[string][]byte // path -> last known content
}

// New returns a Server that has not yet started serving.
func New(version string) *Server {
	ls := &Server{version: version, docs: make(map[string][]byte)}

	ls.handler = protocol.Handler{
		Initialize:            ls.initialize,
		Initialized:           ls.initialized,
		Shutdown:              ls.shutdown,
		SetTrace:              ls.setTrace,
		TextDocumentDidOpen:   ls.textDocumentDidOpen,
		TextDocumentDidChange: ls.textDocumentDidChange,
		TextDocumentDidClose:  ls.textDocumentDidClose,
		TextDocumentDidSave:   ls.textDocumentDidSave,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)
	return ls
}

// RunStdio serves requests over stdin/stdout until the client disconnects.
func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()
	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    intPtr(int(protocol.TextDocumentSyncKindFull)),
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

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	ls.parseAndPublish(ctx, params.TextDocument.URI, []byte(params.TextDocument.Text))
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	if textChange, ok := change.(protocol.TextDocumentContentChangeEventWhole); ok {
		ls.parseAndPublish(ctx, params.TextDocument.URI, []byte(textChange.Text))
	}
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	path, err := uriToPath(params.TextDocument.URI)
	if err == nil {
		delete(ls.docs, path)
	}
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text != nil {
		ls.parseAndPublish(ctx, params.TextDocument.URI, []byte(*params.Text))
	}
	return nil
}

// parseAndPublish runs a fresh parse of content and republishes every
// diagnostic the parse produced, replacing whatever was published for
// this document before.
func (ls *Server) parseAndPublish(ctx *glsp.Context, uri protocol.DocumentUri, content []byte) {
	path, err := uriToPath(uri)
	if err != nil {
		return
	}
	ls.docs[path] = content

	p := parser.New(content)
	p.ParseAndVisitModule(newDiagnosticOnlyVisitor())

	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: toProtocolDiagnostics(p.Errors(), p.Locator()),
	})
}

func uriToPath(uri protocol.DocumentUri) (string, error) {
	s := string(uri)
	if strings.HasPrefix(s, "file://") {
		parsed, err := url.Parse(s)
		if err != nil {
			return "", err
		}
		return filepath.Clean(parsed.Path), nil
	}
	return s, nil
}

func boolPtr(b bool) *bool {
	return &b
}

func intPtr(i int) *protocol.TextDocumentSyncKind {
	v := protocol.TextDocumentSyncKind(i)
	return &v
}
