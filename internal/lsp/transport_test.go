package lsp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func frame(body string) string {
	return fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(body), body)
}

func readAll(t *testing.T, out *bytes.Buffer) []map[string]json.RawMessage {
	t.Helper()
	tr := NewTransport(out, nil)
	var msgs []map[string]json.RawMessage
	for {
		body, err := tr.ReadMessage()
		if err != nil {
			return msgs
		}
		var m map[string]json.RawMessage
		if err := json.Unmarshal(body, &m); err != nil {
			t.Fatal(err)
		}
		msgs = append(msgs, m)
	}
}

func TestTransport_ReadMessage(t *testing.T) {
	input := "Content-Type: application/vscode-jsonrpc\r\ncontent-length: 2\r\n\r\n{}" + frame(`{"a":1}`)
	tr := NewTransport(strings.NewReader(input), nil)

	for _, want := range []string{`{}`, `{"a":1}`} {
		body, err := tr.ReadMessage()
		if err != nil {
			t.Fatalf("ReadMessage() error = %v", err)
		}
		if string(body) != want {
			t.Errorf("body = %s, want %s", body, want)
		}
	}
}

func TestTransport_MissingLength(t *testing.T) {
	tr := NewTransport(strings.NewReader("X-Other: 1\r\n\r\n"), nil)
	if _, err := tr.ReadMessage(); !errors.Is(err, errMissingLength) {
		t.Errorf("ReadMessage() error = %v", err)
	}
}

func TestTransport_Run(t *testing.T) {
	input := frame(`{"jsonrpc":"2.0","id":1,"method":"echo","params":{"x":2}}`) +
		frame(`{"jsonrpc":"2.0","method":"note"}`) +
		frame(`{"jsonrpc":"2.0","id":"b","method":"fail"}`) +
		frame(`not json`)

	var out bytes.Buffer
	var notes []string
	h := HandlerFunc(func(_ context.Context, method string, params json.RawMessage) (any, error) {
		switch method {
		case "echo":
			return params, nil
		case "fail":
			return nil, ErrDocumentNotOpen
		}
		notes = append(notes, method)
		return nil, nil
	})

	tr := NewTransport(strings.NewReader(input), &out)
	if err := tr.Run(context.Background(), h); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(notes) != 1 || notes[0] != "note" {
		t.Errorf("notifications = %v", notes)
	}

	msgs := readAll(t, &out)
	if len(msgs) != 3 {
		t.Fatalf("got %d responses, want 3", len(msgs))
	}
	if string(msgs[0]["id"]) != "1" || string(msgs[0]["result"]) != `{"x":2}` {
		t.Errorf("echo response = %v", msgs[0])
	}

	var rpcErr RPCError
	if err := json.Unmarshal(msgs[1]["error"], &rpcErr); err != nil {
		t.Fatal(err)
	}
	if string(msgs[1]["id"]) != `"b"` || rpcErr.Code != CodeInvalidParams {
		t.Errorf("error response = %v", msgs[1])
	}
	if err := json.Unmarshal(msgs[2]["error"], &rpcErr); err != nil || rpcErr.Code != CodeParseError {
		t.Errorf("parse error response = %v", msgs[2])
	}
}

func TestTransport_Closed(t *testing.T) {
	var out bytes.Buffer
	tr := NewTransport(strings.NewReader(""), &out)
	if err := tr.Notify("window/showMessage", nil); err != nil {
		t.Fatalf("Notify() error = %v", err)
	}
	tr.Close()
	if !tr.IsClosed() {
		t.Error("IsClosed() = false")
	}
	if err := tr.Notify("window/showMessage", nil); !errors.Is(err, ErrShutdown) {
		t.Errorf("Notify after Close error = %v", err)
	}
}

func TestToRPCError(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{ErrNotInitialized, CodeServerNotInitialized},
		{fmt.Errorf("wrap: %w", ErrUnknownCommand), CodeInvalidParams},
		{ErrStaleProposal, CodeRequestFailed},
		{&RPCError{Code: CodeMethodNotFound}, CodeMethodNotFound},
		{errors.New("boom"), CodeInternalError},
	}
	for _, tt := range tests {
		if got := toRPCError(tt.err).Code; got != tt.code {
			t.Errorf("toRPCError(%v).Code = %d, want %d", tt.err, got, tt.code)
		}
	}
}
