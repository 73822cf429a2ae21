package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/dshills/texspell/internal/logging"
	"github.com/dshills/texspell/internal/spell"
	"github.com/dshills/texspell/internal/spell/quickfix"
)

// Commands executed through workspace/executeCommand. The single argument
// is the ID of a proposal returned by the last codeAction request.
const (
	CommandAddWord         = "texspell.addWord"
	CommandIgnoreWord      = "texspell.ignoreWord"
	CommandDisableSpelling = "texspell.disableSpelling"
)

// DiagnosticSource tags every published diagnostic.
const DiagnosticSource = "texspell"

var commandKinds = map[string]quickfix.Kind{
	CommandAddWord:         quickfix.KindAddWord,
	CommandIgnoreWord:      quickfix.KindIgnoreWord,
	CommandDisableSpelling: quickfix.KindDisableChecking,
}

// offer is a proposal returned to the client and the document it was made for.
type offer struct {
	proposal quickfix.Proposal
	uri      DocumentURI
}

// Server is a stdio language server reporting spelling problems as
// diagnostics and quick fixes as code actions.
type Server struct {
	processor *quickfix.Processor
	host      *quickfix.Host
	scanner   *spell.Scanner
	reload    func() error
	version   string
	logger    *logging.Logger

	mu          sync.Mutex
	docs        map[DocumentURI]*Document
	offered     map[string]offer
	initialized bool
	shutdown    bool
	transport   *Transport
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Server) {
		s.logger = l
	}
}

// WithReload sets the function called on workspace/didChangeConfiguration.
func WithReload(fn func() error) Option {
	return func(s *Server) {
		s.reload = fn
	}
}

// WithVersion sets the version reported in the initialize result.
func WithVersion(v string) Option {
	return func(s *Server) {
		s.version = v
	}
}

// NewServer creates a server acting on the processor's host, which must
// carry an Engine. The server installs itself as the host's View and
// Prompter.
func NewServer(processor *quickfix.Processor, opts ...Option) *Server {
	host := processor.Host()
	s := &Server{
		processor: processor,
		host:      host,
		scanner:   spell.NewScanner(host.Engine),
		docs:      make(map[DocumentURI]*Document),
		offered:   make(map[string]offer),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNull(s.logger).WithComponent("lsp")
	host.View = s
	host.Prompter = s
	return s
}

// Serve answers LSP messages read from r on w until exit or end of input.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	t := NewTransport(r, w)
	s.mu.Lock()
	s.transport = t
	s.mu.Unlock()

	if err := t.Run(ctx, s); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if t.IsClosed() && !s.shutdown {
		return ErrExitWithoutShutdown
	}
	return nil
}

// Handle implements Handler.
func (s *Server) Handle(_ context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "initialize":
		return s.initialize()
	case "initialized", "$/cancelRequest", "$/setTrace":
		return nil, nil
	case "shutdown":
		s.mu.Lock()
		s.shutdown = true
		s.mu.Unlock()
		return nil, nil
	case "exit":
		s.mu.Lock()
		t := s.transport
		s.mu.Unlock()
		if t != nil {
			_ = t.Close()
		}
		return nil, nil
	}

	s.mu.Lock()
	ready := s.initialized
	s.mu.Unlock()
	if !ready {
		return nil, ErrNotInitialized
	}

	switch method {
	case "textDocument/didOpen":
		var p DidOpenTextDocumentParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		s.didOpen(p)
		return nil, nil
	case "textDocument/didChange":
		var p DidChangeTextDocumentParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		return nil, s.didChange(p)
	case "textDocument/didClose":
		var p DidCloseTextDocumentParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		s.didClose(p)
		return nil, nil
	case "textDocument/codeAction":
		var p CodeActionParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		return s.CodeActions(p), nil
	case "workspace/executeCommand":
		var p ExecuteCommandParams
		if err := decode(params, &p); err != nil {
			return nil, err
		}
		return nil, s.ExecuteCommand(p)
	case "workspace/didChangeConfiguration":
		s.didChangeConfiguration()
		return nil, nil
	}
	return nil, &RPCError{Code: CodeMethodNotFound, Message: "method not found: " + method}
}

func decode(params json.RawMessage, v any) error {
	if len(params) == 0 {
		return &RPCError{Code: CodeInvalidParams, Message: "missing params"}
	}
	if err := json.Unmarshal(params, v); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	}
	return nil
}

func (s *Server) initialize() (*InitializeResult, error) {
	s.mu.Lock()
	s.initialized = true
	s.mu.Unlock()

	commands := make([]string, 0, len(commandKinds))
	for c := range commandKinds {
		commands = append(commands, c)
	}
	sort.Strings(commands)

	return &InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: SyncFull,
			CodeActionProvider: &CodeActionOptions{
				CodeActionKinds: []CodeActionKind{CodeActionQuickFix},
			},
			ExecuteCommandProvider: &ExecuteCommandOptions{Commands: commands},
		},
		ServerInfo: &ServerInfo{Name: "texspell", Version: s.version},
	}, nil
}

func (s *Server) didOpen(p DidOpenTextDocumentParams) {
	item := p.TextDocument
	doc := NewDocument(item.URI, item.Version, item.Text, s.publish)
	s.mu.Lock()
	s.docs[item.URI] = doc
	s.mu.Unlock()

	s.logger.Debug("opened %s", item.URI)
	s.check(doc)
}

func (s *Server) didChange(p DidChangeTextDocumentParams) error {
	doc := s.Document(p.TextDocument.URI)
	if doc == nil {
		return fmt.Errorf("%w: %s", ErrDocumentNotOpen, p.TextDocument.URI)
	}
	if len(p.ContentChanges) == 0 {
		return nil
	}
	// Full sync: the last change holds the whole text.
	doc.SetText(p.TextDocument.Version, p.ContentChanges[len(p.ContentChanges)-1].Text)
	s.check(doc)
	return nil
}

func (s *Server) didClose(p DidCloseTextDocumentParams) {
	s.mu.Lock()
	delete(s.docs, p.TextDocument.URI)
	for id, o := range s.offered {
		if o.uri == p.TextDocument.URI {
			delete(s.offered, id)
		}
	}
	s.mu.Unlock()

	s.notify("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         p.TextDocument.URI,
		Diagnostics: []Diagnostic{},
	})
}

func (s *Server) didChangeConfiguration() {
	if s.reload != nil {
		if err := s.reload(); err != nil {
			s.logger.Warn("reloading preferences: %v", err)
			s.showMessage(MessageWarning, fmt.Sprintf("texspell: %v", err))
		}
	}
	s.Refresh()
}

// Document returns the open document for uri, or nil.
func (s *Server) Document(uri DocumentURI) *Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[uri]
}

// Documents returns the open documents ordered by URI.
func (s *Server) Documents() []*Document {
	s.mu.Lock()
	docs := make([]*Document, 0, len(s.docs))
	for _, d := range s.docs {
		docs = append(docs, d)
	}
	s.mu.Unlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].URI() < docs[j].URI() })
	return docs
}

// Refresh rescans every open document.
func (s *Server) Refresh() {
	for _, doc := range s.Documents() {
		s.check(doc)
	}
}

func (s *Server) enabled() bool {
	if s.host.Preferences == nil {
		return true
	}
	return s.host.Preferences.Bool(quickfix.PrefEnabled)
}

// check scans doc and publishes its diagnostics. Nothing is reported while
// spell checking is disabled.
func (s *Server) check(doc *Document) {
	var problems []spell.Problem
	if s.enabled() && s.host.Engine.Checker() != nil {
		problems = s.scanner.Scan(doc.Text())
	}
	doc.SetProblems(problems)
	s.publish(doc)
}

func (s *Server) publish(doc *Document) {
	s.notify("textDocument/publishDiagnostics", &PublishDiagnosticsParams{
		URI:         doc.URI(),
		Version:     doc.Version(),
		Diagnostics: s.diagnostics(doc),
	})
}

func (s *Server) diagnostics(doc *Document) []Diagnostic {
	conv := doc.Converter()
	problems := doc.Problems()
	diags := make([]Diagnostic, 0, len(problems))
	for _, p := range problems {
		diags = append(diags, diagnosticFor(conv, p))
	}
	return diags
}

func diagnosticFor(conv *PositionConverter, p spell.Problem) Diagnostic {
	return Diagnostic{
		Range:    conv.SpanToRange(p.Offset, p.Length),
		Severity: SeverityInformation,
		Code:     p.ID,
		Source:   DiagnosticSource,
		Message:  quickfix.Describe(p),
		Data:     p.Arguments,
	}
}

func (s *Server) notify(method string, params any) {
	s.mu.Lock()
	t := s.transport
	s.mu.Unlock()
	if t == nil {
		return
	}
	if err := t.Notify(method, params); err != nil {
		s.logger.Debug("sending %s: %v", method, err)
	}
}

func (s *Server) showMessage(typ MessageType, msg string) {
	s.notify("window/showMessage", &ShowMessageParams{Type: typ, Message: msg})
}

// RemoveProblems implements quickfix.View for every open document.
func (s *Server) RemoveProblems(word string) {
	for _, doc := range s.Documents() {
		doc.RemoveProblems(word)
	}
}

// AskToConfigure implements quickfix.Prompter. Editors have no blocking
// question channel here, so the user is told how to set up a personal
// dictionary and the request is declined.
func (s *Server) AskToConfigure() (accept, doNotAskAgain bool) {
	s.showMessage(MessageInfo,
		"texspell: no personal dictionary is configured. Set spelling.userDictionary in the settings file to add words.")
	return false, false
}
