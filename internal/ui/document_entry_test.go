package ui

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

// namedShortcut carries only a name, like the driver's undo and redo shortcuts
type namedShortcut string

func (s namedShortcut) ShortcutName() string { return string(s) }

func TestDocumentEntry_RoutesHistoryShortcuts(t *testing.T) {
	test.NewTempApp(t)

	var undos, redos int
	e := NewDocumentEntry(func() { undos++ }, func() { redos++ })

	e.TypedShortcut(ShortcutUndo)
	e.TypedShortcut(namedShortcut(driverUndoName))
	e.TypedShortcut(ShortcutRedo)
	e.TypedShortcut(namedShortcut(driverRedoName))

	if undos != 2 || redos != 2 {
		t.Errorf("Expected 2 undos and 2 redos, got %d and %d", undos, redos)
	}
}

func TestDocumentEntry_PassesOtherShortcuts(t *testing.T) {
	test.NewTempApp(t)

	e := NewDocumentEntry(nil, nil)
	e.SetText("hello")
	e.TypedShortcut(&fyne.ShortcutSelectAll{})

	if e.SelectedText() != "hello" {
		t.Errorf("Expected select all to reach the entry, got %q", e.SelectedText())
	}
	if !e.MultiLine {
		t.Error("Expected a multiline entry")
	}
}
