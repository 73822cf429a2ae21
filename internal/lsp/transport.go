package lsp

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
)

// Handler answers the messages read by a Transport. Notifications have a nil
// result and any error is only logged.
type Handler interface {
	Handle(ctx context.Context, method string, params json.RawMessage) (any, error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, method string, params json.RawMessage) (any, error)

// Handle implements Handler.
func (f HandlerFunc) Handle(ctx context.Context, method string, params json.RawMessage) (any, error) {
	return f(ctx, method, params)
}

// Transport handles JSON-RPC 2.0 communication for the server side of the
// LSP base protocol with Content-Length headers.
type Transport struct {
	reader *bufio.Reader
	writer io.Writer

	mu     sync.Mutex // guards writer
	closed atomic.Bool
}

// Request is an incoming JSON-RPC request or notification.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// IsNotification reports whether the request carries no ID.
func (r *Request) IsNotification() bool {
	return len(r.ID) == 0 || string(r.ID) == "null"
}

// Response is an outgoing JSON-RPC response.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result"`
	Error   *RPCError       `json:"error,omitempty"`
}

// outgoing is a server-to-client notification.
type outgoing struct {
	JSONRPC string `json:"jsonrpc"`
	Method  string `json:"method"`
	Params  any    `json:"params,omitempty"`
}

// NewTransport creates a transport reading from r and writing to w.
func NewTransport(r io.Reader, w io.Writer) *Transport {
	return &Transport{
		reader: bufio.NewReaderSize(r, 64*1024),
		writer: w,
	}
}

// Close marks the transport closed. Subsequent writes fail with ErrShutdown.
func (t *Transport) Close() error {
	t.closed.Store(true)
	return nil
}

// IsClosed returns true if the transport has been closed.
func (t *Transport) IsClosed() bool {
	return t.closed.Load()
}

// Notify sends a notification to the client.
func (t *Transport) Notify(method string, params any) error {
	return t.send(&outgoing{JSONRPC: "2.0", Method: method, Params: params})
}

// Reply sends the response for request id.
func (t *Transport) Reply(id json.RawMessage, result any, rpcErr *RPCError) error {
	resp := &Response{JSONRPC: "2.0", ID: id, Result: result, Error: rpcErr}
	if rpcErr != nil {
		resp.Result = nil
	}
	return t.send(resp)
}

// send writes a message with LSP content-length header.
func (t *Transport) send(msg any) error {
	if t.closed.Load() {
		return ErrShutdown
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	header := fmt.Sprintf("Content-Length: %d\r\n\r\n", len(data))

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, err := io.WriteString(t.writer, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if _, err := t.writer.Write(data); err != nil {
		return fmt.Errorf("write body: %w", err)
	}
	return nil
}

// Run reads messages until the input ends, ctx is cancelled or the
// transport is closed, answering requests through h. Messages are handled
// in arrival order so document changes and code action requests never race.
func (t *Transport) Run(ctx context.Context, h Handler) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if t.closed.Load() {
			return nil
		}

		body, err := t.ReadMessage()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrClosedPipe) || t.closed.Load() {
				return nil
			}
			if errors.Is(err, errMissingLength) {
				continue
			}
			return err
		}

		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			_ = t.Reply(json.RawMessage("null"), nil, &RPCError{Code: CodeParseError, Message: err.Error()})
			continue
		}
		if req.Method == "" {
			// Responses to server requests are not expected.
			continue
		}

		result, err := h.Handle(ctx, req.Method, req.Params)
		if req.IsNotification() {
			continue
		}
		if err != nil {
			_ = t.Reply(req.ID, nil, toRPCError(err))
			continue
		}
		if err := t.Reply(req.ID, result, nil); err != nil && !errors.Is(err, ErrShutdown) {
			return err
		}
	}
}

var errMissingLength = errors.New("missing Content-Length header")

// ReadMessage reads a single LSP message body.
func (t *Transport) ReadMessage() (json.RawMessage, error) {
	var contentLength int
	for {
		line, err := t.reader.ReadString('\n')
		if err != nil {
			return nil, err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			break // End of headers
		}
		name, value, ok := strings.Cut(line, ":")
		if ok && strings.EqualFold(strings.TrimSpace(name), "content-length") {
			if length, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				contentLength = length
			}
		}
		// Ignore Content-Type and other headers
	}

	if contentLength <= 0 {
		return nil, errMissingLength
	}

	body := make([]byte, contentLength)
	if _, err := io.ReadFull(t.reader, body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
