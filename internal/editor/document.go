// Package editor holds the text buffer behind the editing page: the file it
// belongs to, its save state and a bounded undo/redo history.
package editor

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/platform"
)

// MaxHistory bounds the number of undo snapshots kept per document
const MaxHistory = 200

// ErrNoPath is returned by Save for a document that was never saved
var ErrNoPath = errors.New("editor: document has no path")

// Document is a text buffer optionally bound to a file
type Document struct {
	mu    sync.Mutex
	path  string
	text  string
	state model.DocumentState
	undo  []string
	redo  []string
}

// NewDocument creates an empty untitled document
func NewDocument() *Document {
	return &Document{state: model.DocumentUntitled}
}

// Open reads path into a new clean document
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &Document{
		path:  model.NewFileRecord(path).FullPath,
		text:  string(data),
		state: model.DocumentClean,
	}, nil
}

// Path returns the file path, or "" for an untitled document
func (d *Document) Path() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.path
}

// Text returns the current content
func (d *Document) Text() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.text
}

// State returns the save state
func (d *Document) State() model.DocumentState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Record returns the recent-file record for the document's path
func (d *Document) Record() (model.FileRecord, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.path == "" {
		return model.FileRecord{}, false
	}
	return model.NewFileRecord(d.path), true
}

// SetText replaces the content and records an undo snapshot.
// Setting identical text changes nothing.
func (d *Document) SetText(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if text == d.text {
		return
	}
	d.pushUndo(d.text)
	d.redo = nil
	d.text = text
	d.state = model.DocumentModified
}

// CanUndo reports whether Undo would change the text
func (d *Document) CanUndo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.undo) > 0
}

// CanRedo reports whether Redo would change the text
func (d *Document) CanRedo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.redo) > 0
}

// Undo restores the previous snapshot and reports whether anything changed
func (d *Document) Undo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.undo) == 0 {
		return false
	}
	last := d.undo[len(d.undo)-1]
	d.undo = d.undo[:len(d.undo)-1]
	d.redo = append(d.redo, d.text)
	d.text = last
	d.state = model.DocumentModified
	return true
}

// Redo reapplies the last undone change and reports whether anything changed
func (d *Document) Redo() bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.redo) == 0 {
		return false
	}
	next := d.redo[len(d.redo)-1]
	d.redo = d.redo[:len(d.redo)-1]
	d.pushUndo(d.text)
	d.text = next
	d.state = model.DocumentModified
	return true
}

// Save writes the content to the document's file
func (d *Document) Save() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.path == "" {
		return ErrNoPath
	}
	return d.writeLocked(d.path)
}

// SaveAs writes the content to path and binds the document to it
func (d *Document) SaveAs(path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if path == "" {
		return ErrNoPath
	}
	clean := model.NewFileRecord(path).FullPath
	if err := d.writeLocked(clean); err != nil {
		return err
	}
	d.path = clean
	return nil
}

func (d *Document) writeLocked(path string) error {
	if err := platform.WriteFileAtomic(path, []byte(d.text)); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	d.state = model.DocumentClean
	return nil
}

func (d *Document) pushUndo(text string) {
	d.undo = append(d.undo, text)
	if len(d.undo) > MaxHistory {
		d.undo = d.undo[len(d.undo)-MaxHistory:]
	}
}
