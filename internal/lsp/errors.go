package lsp

import (
	"errors"
	"fmt"
)

// Standard errors returned by the language server.
var (
	// ErrShutdown indicates the transport has been closed.
	ErrShutdown = errors.New("lsp server shut down")

	// ErrNotInitialized indicates a request arrived before initialize.
	ErrNotInitialized = errors.New("server not initialized")

	// ErrDocumentNotOpen indicates the document is not open.
	ErrDocumentNotOpen = errors.New("document not open")

	// ErrInvalidSpan indicates an edit outside the document.
	ErrInvalidSpan = errors.New("span outside document")

	// ErrUnknownCommand indicates an executeCommand for a command the server
	// does not provide.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrStaleProposal indicates a command refers to a proposal that is no
	// longer offered.
	ErrStaleProposal = errors.New("proposal no longer available")

	// ErrExitWithoutShutdown indicates the client sent exit before shutdown.
	ErrExitWithoutShutdown = errors.New("exit without shutdown")
)

// RPCError is a JSON-RPC error object.
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Error implements the error interface.
func (e *RPCError) Error() string {
	if e.Data != nil {
		return fmt.Sprintf("rpc error %d: %s (data: %v)", e.Code, e.Message, e.Data)
	}
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// Standard JSON-RPC error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603

	CodeServerNotInitialized = -32002
	CodeRequestFailed        = -32803
)

// toRPCError maps handler errors to JSON-RPC errors.
func toRPCError(err error) *RPCError {
	var rpcErr *RPCError
	switch {
	case errors.As(err, &rpcErr):
		return rpcErr
	case errors.Is(err, ErrNotInitialized):
		return &RPCError{Code: CodeServerNotInitialized, Message: err.Error()}
	case errors.Is(err, ErrUnknownCommand), errors.Is(err, ErrDocumentNotOpen):
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	case errors.Is(err, ErrStaleProposal):
		return &RPCError{Code: CodeRequestFailed, Message: err.Error()}
	default:
		return &RPCError{Code: CodeInternalError, Message: err.Error()}
	}
}
