package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/dshills/inkwell/internal/engine/buffer"
)

// Document is the buffer being edited. It is the session's surface: the
// session reads its state and applies commits to it.
type Document struct {
	mu sync.RWMutex

	path     string
	state    buffer.State
	modified bool
	version  uint64
}

// NewDocument creates a document holding text with the caret at the end.
func NewDocument(text string) *Document {
	return &Document{state: buffer.CaretState(text, buffer.RuneLen(text))}
}

// OpenDocument reads path into a new document with the caret at the
// start. A missing file gives an empty document for that path.
func OpenDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return &Document{path: path, state: buffer.CaretState(string(data), 0)}, nil
}

// Path returns the file the document was opened from, if any.
func (d *Document) Path() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.path
}

// State returns the current text and selection.
func (d *Document) State() buffer.State {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.state
}

// Text returns the current text.
func (d *Document) Text() string {
	return d.State().Text
}

// Apply replaces the text and selection.
func (d *Document) Apply(st buffer.State) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if st.Text != d.state.Text {
		d.modified = true
	}
	d.state = st
	d.version++
}

// Modified reports whether the text changed since the document was opened.
func (d *Document) Modified() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.modified
}

// Version counts applied states.
func (d *Document) Version() uint64 {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}
