package ui

// Package ui contains the Fyne-based desktop shell: main menu, page router, the
// recent files page and the editor page. File actions go through the editor
// document and are mirrored into the recent files registry. All UI strings are
// localized via Localization.
