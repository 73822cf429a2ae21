package quickfix

import "errors"

var (
	// ErrMalformedArguments indicates a problem location without the full
	// set of spelling arguments.
	ErrMalformedArguments = errors.New("malformed spelling problem arguments")

	// ErrNoDocument indicates a replacement proposal was applied without a document.
	ErrNoDocument = errors.New("no document to apply the proposal to")
)
