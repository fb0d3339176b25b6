package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// Names of the undo and redo shortcuts the desktop driver sends to a focused entry
const (
	driverUndoName = "Undo"
	driverRedoName = "Redo"
)

// DocumentEntry is a multiline entry whose undo and redo go through the
// document history instead of the entry's own.
type DocumentEntry struct {
	widget.Entry

	onUndo func()
	onRedo func()
}

// NewDocumentEntry creates a wrapping multiline entry
func NewDocumentEntry(onUndo, onRedo func()) *DocumentEntry {
	e := &DocumentEntry{onUndo: onUndo, onRedo: onRedo}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.ExtendBaseWidget(e)
	return e
}

// TypedShortcut routes undo and redo to the document and everything else to the entry
func (e *DocumentEntry) TypedShortcut(shortcut fyne.Shortcut) {
	switch shortcut.ShortcutName() {
	case driverUndoName, ShortcutUndo.ShortcutName():
		if e.onUndo != nil {
			e.onUndo()
		}
		return
	case driverRedoName, ShortcutRedo.ShortcutName():
		if e.onRedo != nil {
			e.onRedo()
		}
		return
	}
	e.Entry.TypedShortcut(shortcut)
}
