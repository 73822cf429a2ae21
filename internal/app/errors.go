package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrClosed indicates the application has been shut down.
	ErrClosed = errors.New("application closed")

	// ErrNoProblem indicates no spelling problem covers the requested offset.
	ErrNoProblem = errors.New("no spelling problem at offset")

	// ErrNoProposal indicates the chosen proposal index is out of range.
	ErrNoProposal = errors.New("no such proposal")

	// ErrCheckingUnavailable indicates no checker could be built.
	ErrCheckingUnavailable = errors.New("spell checking unavailable")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// FileError represents an error reading or writing a document.
type FileError struct {
	Op   string // "read" or "write"
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
