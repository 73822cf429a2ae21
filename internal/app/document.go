package app

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrInvalidRange indicates an edit outside the document text.
var ErrInvalidRange = errors.New("range outside document")

// Document is a text file being corrected. It implements quickfix.Document.
type Document struct {
	mu       sync.RWMutex
	path     string
	text     string
	modified bool
}

// NewDocument creates a document with the given text. path may be empty.
func NewDocument(path, text string) *Document {
	return &Document{path: path, text: text}
}

// OpenDocument reads the file at path.
func OpenDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &FileError{Op: "read", Path: path, Err: err}
	}
	return NewDocument(path, string(data)), nil
}

// Path returns the file path.
func (d *Document) Path() string { return d.path }

// Text returns the current text.
func (d *Document) Text() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.text
}

// IsModified reports whether the text changed since it was read or saved.
func (d *Document) IsModified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// Replace substitutes length bytes at offset with text.
func (d *Document) Replace(offset, length int, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if offset < 0 || length < 0 || offset+length > len(d.text) {
		return ErrInvalidRange
	}
	d.text = d.text[:offset] + text + d.text[offset+length:]
	d.modified = true
	return nil
}

// Save writes the text back to the file, keeping its permissions. The file
// is replaced atomically.
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path == "" {
		return &FileError{Op: "write", Path: d.path, Err: os.ErrInvalid}
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(d.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), ".texspell-*")
	if err != nil {
		return &FileError{Op: "write", Path: d.path, Err: err}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(d.text); err != nil {
		tmp.Close()
		return &FileError{Op: "write", Path: d.path, Err: err}
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return &FileError{Op: "write", Path: d.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FileError{Op: "write", Path: d.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), d.path); err != nil {
		return &FileError{Op: "write", Path: d.path, Err: err}
	}
	d.modified = false
	return nil
}
