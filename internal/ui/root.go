package ui

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/tiptapri/tiptapri/internal/config"
	"github.com/tiptapri/tiptapri/internal/editor"
	"github.com/tiptapri/tiptapri/internal/logging"
	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/platform"
	"github.com/tiptapri/tiptapri/internal/recent"
)

// Keyboard shortcuts for the main menu
var (
	ShortcutOpen   = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}
	ShortcutSave   = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	ShortcutSaveAs = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
	ShortcutNew    = &desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierShortcutDefault}
	ShortcutUndo   = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	ShortcutRedo   = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
)

// RootUI represents the main UI structure
type RootUI struct {
	ctx          context.Context
	window       fyne.Window
	app          fyne.App
	settings     *config.Settings
	localization *Localization
	logger       *zap.Logger
	registry     *recent.Registry
	router       *Router

	doc         *editor.Document
	editorEntry *DocumentEntry
	statusLabel *widget.Label
	statusTimer *time.Timer

	// menu items whose enabled state follows the document and history
	editMenu    *fyne.Menu
	undoItem    *fyne.MenuItem
	redoItem    *fyne.MenuItem
	viewMenu    *fyne.Menu
	backItem    *fyne.MenuItem
	forwardItem *fyne.MenuItem

	recentMu    sync.Mutex
	recentFiles []model.FileRecord
}

// NewRootUI creates and initializes the main UI
func NewRootUI(ctx context.Context, window fyne.Window, app fyne.App, settings *config.Settings, registry *recent.Registry, logger *zap.Logger) *RootUI {
	localization := NewLocalization()
	localization.SetLanguage(settings.GetLanguage())

	ui := &RootUI{
		ctx:          ctx,
		window:       window,
		app:          app,
		settings:     settings,
		localization: localization,
		logger:       logging.Named(logger, "ui"),
		registry:     registry,
		doc:          editor.NewDocument(),
	}

	ui.setupUI()
	ui.loadRecentFiles()
	ui.updateTitle()

	ui.logger.Debug("root UI initialized")
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.editorEntry = NewDocumentEntry(ui.onUndo, ui.onRedo)
	ui.editorEntry.SetMinRowsVisible(24)
	ui.editorEntry.OnChanged = ui.onEditorChanged

	ui.statusLabel = widget.NewLabel("")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	ui.router = NewRouter(map[string]PageFunc{
		RouteHome:   ui.buildHomePage,
		RouteEditor: ui.buildEditorPage,
	})
	ui.router.SetOnChange(func(Location) { ui.updateNavigationMenu() })

	toolbar := widget.NewToolbar(
		widget.NewToolbarAction(theme.NavigateBackIcon(), ui.onBack),
		widget.NewToolbarAction(theme.NavigateNextIcon(), ui.onForward),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.DocumentCreateIcon(), ui.onNew),
		widget.NewToolbarAction(theme.FolderOpenIcon(), ui.onOpenDialog),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), ui.onSave),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentUndoIcon(), ui.onUndo),
		widget.NewToolbarAction(theme.ContentRedoIcon(), ui.onRedo),
		widget.NewToolbarSpacer(),
		widget.NewToolbarAction(theme.SettingsIcon(), ui.onShowSettings),
	)

	ui.createMenu()
	ui.registerShortcuts()

	content := container.NewBorder(toolbar, ui.statusLabel, nil, nil, ui.router.Container())
	ui.window.SetContent(content)
	ui.window.SetCloseIntercept(ui.onCloseRequested)

	ui.navigate(Location{Path: RouteHome})
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	l := ui.localization

	newItem := fyne.NewMenuItem(l.GetText(KeyNew), ui.onNew)
	newItem.Shortcut = ShortcutNew
	openItem := fyne.NewMenuItem(l.GetText(KeyOpenFile), ui.onOpenDialog)
	openItem.Shortcut = ShortcutOpen
	saveItem := fyne.NewMenuItem(l.GetText(KeySave), ui.onSave)
	saveItem.Shortcut = ShortcutSave
	saveAsItem := fyne.NewMenuItem(l.GetText(KeySaveAs), ui.onSaveAs)
	saveAsItem.Shortcut = ShortcutSaveAs

	recentItem := fyne.NewMenuItem(l.GetText(KeyRecentFiles), nil)
	recentItem.ChildMenu = ui.recentMenu()

	settingsItem := fyne.NewMenuItem(l.GetText(KeySettings), ui.onShowSettings)

	// Language submenu
	languageItem := fyne.NewMenuItem(l.GetText(KeyLanguage), nil)
	languageItem.ChildMenu = fyne.NewMenu(l.GetText(KeyLanguage))
	for code, name := range l.GetAvailableLanguages() {
		langCode := code
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		langItem.Checked = l.GetCurrentLanguage() == code
		languageItem.ChildMenu.Items = append(languageItem.ChildMenu.Items, langItem)
	}

	fileMenu := fyne.NewMenu(l.GetText(KeyFile),
		newItem,
		openItem,
		saveItem,
		saveAsItem,
		fyne.NewMenuItemSeparator(),
		recentItem,
		fyne.NewMenuItemSeparator(),
		settingsItem,
		languageItem,
	)

	ui.undoItem = fyne.NewMenuItem(l.GetText(KeyUndo), ui.onUndo)
	ui.undoItem.Shortcut = ShortcutUndo
	ui.redoItem = fyne.NewMenuItem(l.GetText(KeyRedo), ui.onRedo)
	ui.redoItem.Shortcut = ShortcutRedo

	ui.editMenu = fyne.NewMenu(l.GetText(KeyEdit),
		ui.undoItem,
		ui.redoItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(l.GetText(KeyCut), ui.onCut),
		fyne.NewMenuItem(l.GetText(KeyCopy), ui.onCopy),
		fyne.NewMenuItem(l.GetText(KeyPaste), ui.onPaste),
	)

	ui.backItem = fyne.NewMenuItem(l.GetText(KeyBack), ui.onBack)
	ui.forwardItem = fyne.NewMenuItem(l.GetText(KeyForward), ui.onForward)

	ui.viewMenu = fyne.NewMenu(l.GetText(KeyView),
		fyne.NewMenuItem(l.GetText(KeyHome), func() { ui.navigate(Location{Path: RouteHome}) }),
		fyne.NewMenuItem(l.GetText(KeyRecentFiles), func() {
			ui.navigate(ParseLocation(RouteHome + "#" + AnchorRecent))
		}),
		fyne.NewMenuItemSeparator(),
		ui.backItem,
		ui.forwardItem,
	)

	ui.syncEditItems()
	ui.syncNavigationItems()
	ui.window.SetMainMenu(fyne.NewMainMenu(fileMenu, ui.editMenu, ui.viewMenu))
}

func (ui *RootUI) syncEditItems() {
	ui.undoItem.Disabled = !ui.doc.CanUndo()
	ui.redoItem.Disabled = !ui.doc.CanRedo()
}

func (ui *RootUI) syncNavigationItems() {
	ui.backItem.Disabled = !ui.router.CanGoBack()
	ui.forwardItem.Disabled = !ui.router.CanGoForward()
}

// updateEditMenu enables Undo and Redo only when the document has history for them
func (ui *RootUI) updateEditMenu() {
	if ui.editMenu == nil {
		return
	}
	ui.syncEditItems()
	ui.editMenu.Refresh()
}

// updateNavigationMenu enables Back and Forward only when the router can move
func (ui *RootUI) updateNavigationMenu() {
	if ui.viewMenu == nil {
		return
	}
	ui.syncNavigationItems()
	ui.viewMenu.Refresh()
}

// recentMenu lists recent files, most recently added first
func (ui *RootUI) recentMenu() *fyne.Menu {
	menu := fyne.NewMenu(ui.localization.GetText(KeyRecentFiles))

	files := ui.RecentFiles()
	if len(files) == 0 {
		empty := fyne.NewMenuItem(ui.localization.GetText(KeyNoRecentFiles), nil)
		empty.Disabled = true
		menu.Items = append(menu.Items, empty)
		return menu
	}

	for i := len(files) - 1; i >= 0; i-- {
		rec := files[i]
		menu.Items = append(menu.Items, fyne.NewMenuItem(rec.FullPath, func() {
			ui.onOpenRecent(rec)
		}))
	}
	return menu
}

// registerShortcuts binds the menu shortcuts on the window canvas
func (ui *RootUI) registerShortcuts() {
	bindings := map[*desktop.CustomShortcut]func(){
		ShortcutNew:    ui.onNew,
		ShortcutOpen:   ui.onOpenDialog,
		ShortcutSave:   ui.onSave,
		ShortcutSaveAs: ui.onSaveAs,
		ShortcutUndo:   ui.onUndo,
		ShortcutRedo:   ui.onRedo,
	}
	for shortcut, action := range bindings {
		run := action
		ui.window.Canvas().AddShortcut(shortcut, func(fyne.Shortcut) { run() })
	}
}

// buildHomePage renders the actions and the recent file list
func (ui *RootUI) buildHomePage(_ Location, anchors Anchors) fyne.CanvasObject {
	l := ui.localization

	actions := container.NewHBox(
		widget.NewButtonWithIcon(l.GetText(KeyNew), theme.DocumentCreateIcon(), ui.onNew),
		widget.NewButtonWithIcon(l.GetText(KeyOpenFile), theme.FolderOpenIcon(), ui.onOpenDialog),
	)
	anchors[AnchorActions] = actions

	heading := widget.NewLabelWithStyle(l.GetText(KeyRecentFiles), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	anchors[AnchorRecent] = heading

	rows := container.NewVBox()
	files := ui.RecentFiles()
	if len(files) == 0 {
		rows.Add(widget.NewLabel(l.GetText(KeyNoRecentFiles)))
	}
	for i := len(files) - 1; i >= 0; i-- {
		row := NewRecentRow(l)
		row.SetRecord(files[i])
		row.SetActions(RecentRowActions{
			Open:         ui.onOpenRecent,
			OpenExternal: ui.onOpenRecentExternal,
			Reveal:       ui.onRevealRecent,
			Remove:       ui.onRemoveRecent,
		})
		rows.Add(row)
	}

	return container.NewVBox(actions, widget.NewSeparator(), heading, rows)
}

// buildEditorPage hosts the shared editor entry
func (ui *RootUI) buildEditorPage(_ Location, _ Anchors) fyne.CanvasObject {
	return container.NewPadded(ui.editorEntry)
}

// Router returns the page router
func (ui *RootUI) Router() *Router {
	return ui.router
}

// Document returns the document being edited
func (ui *RootUI) Document() *editor.Document {
	return ui.doc
}

// RecentFiles returns a copy of the last known recent file list
func (ui *RootUI) RecentFiles() []model.FileRecord {
	ui.recentMu.Lock()
	defer ui.recentMu.Unlock()
	out := make([]model.FileRecord, len(ui.recentFiles))
	copy(out, ui.recentFiles)
	return out
}

// SetRecentFiles replaces the displayed list. Must run on the UI goroutine.
func (ui *RootUI) SetRecentFiles(files []model.FileRecord) {
	ui.recentMu.Lock()
	ui.recentFiles = append([]model.FileRecord(nil), files...)
	ui.recentMu.Unlock()

	ui.createMenu()
	if ui.router.Current().Path == RouteHome {
		ui.router.Refresh()
	}
}

// ReopenLastFile opens the newest recent file that still exists
func (ui *RootUI) ReopenLastFile() bool {
	files := ui.RecentFiles()
	for i := len(files) - 1; i >= 0; i-- {
		if platform.FileExists(files[i].FullPath) {
			return ui.OpenPath(files[i].FullPath) == nil
		}
	}
	return false
}

// OpenPath loads path into the editor and records it as recently opened
func (ui *RootUI) OpenPath(path string) error {
	doc, err := editor.Open(path)
	if err != nil {
		ui.logger.Error("failed to open file", zap.String("path", path), zap.Error(err))
		ui.showError(KeyErrorOpeningFile, err)
		return err
	}

	ui.setDocument(doc)
	ui.logger.Info("opened file", zap.String("path", doc.Path()))

	if rec, ok := doc.Record(); ok {
		ui.addRecent(rec)
	}
	ui.showEditor()
	return nil
}

// SavePath writes the document to path and records it as recently opened
func (ui *RootUI) SavePath(path string) error {
	if err := ui.doc.SaveAs(path); err != nil {
		ui.logger.Error("failed to save file", zap.String("path", path), zap.Error(err))
		ui.showError(KeyErrorSavingFile, err)
		return err
	}

	ui.afterSave()
	return nil
}

func (ui *RootUI) setDocument(doc *editor.Document) {
	ui.doc = doc
	ui.editorEntry.SetText(doc.Text())
	ui.updateTitle()
	ui.updateEditMenu()
}

// showEditor navigates to the editor, re-rendering it in place when already there
func (ui *RootUI) showEditor() {
	loc := Location{Path: RouteEditor}
	if ui.router.Current().Path == RouteEditor {
		if err := ui.router.Replace(loc); err != nil {
			ui.logger.Error("failed to show editor", zap.Error(err))
		}
		return
	}
	ui.navigate(loc)
}

func (ui *RootUI) navigate(loc Location) {
	if err := ui.router.Push(loc); err != nil {
		ui.logger.Error("failed to navigate", zap.String("location", loc.String()), zap.Error(err))
	}
}

func (ui *RootUI) onBack() {
	ui.router.Back()
}

func (ui *RootUI) onForward() {
	ui.router.Forward()
}

func (ui *RootUI) afterSave() {
	ui.logger.Info("saved file", zap.String("path", ui.doc.Path()))
	ui.showStatus(ui.localization.GetText(KeyFileSaved) + MiddleDotSeparator + ui.doc.Path())
	if rec, ok := ui.doc.Record(); ok {
		ui.addRecent(rec)
	}
	ui.updateTitle()
}

// loadRecentFiles reads the registry into the UI
func (ui *RootUI) loadRecentFiles() {
	files, err := ui.registry.List(ui.ctx)
	if err != nil {
		ui.logger.Error("failed to list recent files", zap.Error(err))
		ui.showError(KeyErrorRecentFiles, err)
		return
	}
	ui.SetRecentFiles(files)
}

func (ui *RootUI) addRecent(rec model.FileRecord) {
	files, err := ui.registry.Add(ui.ctx, rec)
	if err != nil {
		ui.logger.Error("failed to add recent file", zap.String("path", rec.FullPath), zap.Error(err))
		ui.showError(KeyErrorRecentFiles, err)
		return
	}
	ui.SetRecentFiles(files)
}

func (ui *RootUI) removeRecent(rec model.FileRecord) {
	files, err := ui.registry.Remove(ui.ctx, rec)
	if err != nil {
		ui.logger.Error("failed to remove recent file", zap.String("path", rec.FullPath), zap.Error(err))
		ui.showError(KeyErrorRecentFiles, err)
		return
	}
	ui.SetRecentFiles(files)
}

// onEditorChanged mirrors user edits into the document
func (ui *RootUI) onEditorChanged(text string) {
	ui.doc.SetText(text)
	ui.updateTitle()
	ui.updateEditMenu()
}

// updateTitle shows the document name and a marker for unsaved changes
func (ui *RootUI) updateTitle() {
	l := ui.localization
	name := l.GetText(KeyUntitled)
	if rec, ok := ui.doc.Record(); ok {
		name = rec.DisplayName()
	}
	if ui.doc.State().IsDirty() {
		name += l.GetText(KeyModifiedMarker)
	}
	ui.window.SetTitle(name + TitleSeparator + l.GetText(KeyAppTitle))
}

// confirmDiscard runs next immediately for a clean document, otherwise after the user agrees
func (ui *RootUI) confirmDiscard(next func()) {
	if !ui.doc.State().IsDirty() {
		next()
		return
	}
	l := ui.localization
	dialog.ShowConfirm(l.GetText(KeyDiscardChanges), l.GetText(KeyDiscardChangesText), func(ok bool) {
		if ok {
			next()
		}
	}, ui.window)
}

func (ui *RootUI) onNew() {
	ui.confirmDiscard(func() {
		ui.setDocument(editor.NewDocument())
		ui.showEditor()
	})
}

func (ui *RootUI) onOpenDialog() {
	ui.confirmDiscard(func() {
		dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
			if err != nil {
				ui.showError(KeyErrorOpeningFile, err)
				return
			}
			if reader == nil {
				return
			}
			path := reader.URI().Path()
			_ = reader.Close()
			_ = ui.OpenPath(path)
		}, ui.window)
	})
}

func (ui *RootUI) onSave() {
	err := ui.doc.Save()
	if errors.Is(err, editor.ErrNoPath) {
		ui.onSaveAs()
		return
	}
	if err != nil {
		ui.logger.Error("failed to save file", zap.String("path", ui.doc.Path()), zap.Error(err))
		ui.showError(KeyErrorSavingFile, err)
		return
	}
	ui.afterSave()
}

func (ui *RootUI) onSaveAs() {
	dialog.ShowFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			ui.showError(KeyErrorSavingFile, err)
			return
		}
		if writer == nil {
			return
		}
		path := writer.URI().Path()
		// the document writes atomically on its own
		_ = writer.Close()
		_ = ui.SavePath(path)
	}, ui.window)
}

func (ui *RootUI) onUndo() {
	if ui.doc.Undo() {
		ui.editorEntry.SetText(ui.doc.Text())
		ui.updateTitle()
		ui.updateEditMenu()
	}
}

func (ui *RootUI) onRedo() {
	if ui.doc.Redo() {
		ui.editorEntry.SetText(ui.doc.Text())
		ui.updateTitle()
		ui.updateEditMenu()
	}
}

func (ui *RootUI) onCut() {
	ui.editorEntry.TypedShortcut(&fyne.ShortcutCut{Clipboard: ui.app.Clipboard()})
}

func (ui *RootUI) onCopy() {
	ui.editorEntry.TypedShortcut(&fyne.ShortcutCopy{Clipboard: ui.app.Clipboard()})
}

func (ui *RootUI) onPaste() {
	ui.editorEntry.TypedShortcut(&fyne.ShortcutPaste{Clipboard: ui.app.Clipboard()})
}

// onOpenRecent opens rec, offering to drop it from the list when the file is gone
func (ui *RootUI) onOpenRecent(rec model.FileRecord) {
	if !platform.FileExists(rec.FullPath) {
		l := ui.localization
		ui.logger.Warn("recent file is missing", zap.String("path", rec.FullPath))
		dialog.ShowConfirm(l.GetText(KeyFileMissing), l.GetText(KeyFileMissingRemove), func(ok bool) {
			if ok {
				ui.removeRecent(rec)
			}
		}, ui.window)
		return
	}
	ui.confirmDiscard(func() {
		_ = ui.OpenPath(rec.FullPath)
	})
}

func (ui *RootUI) onRevealRecent(rec model.FileRecord) {
	if err := platform.OpenFileInManager(rec.FullPath); err != nil {
		ui.logger.Warn("failed to reveal file", zap.String("path", rec.FullPath), zap.Error(err))
		ui.showError(KeyErrorOpeningFile, err)
	}
}

func (ui *RootUI) onOpenRecentExternal(rec model.FileRecord) {
	if err := platform.OpenFileWithDefaultApp(rec.FullPath); err != nil {
		ui.logger.Warn("failed to open file externally", zap.String("path", rec.FullPath), zap.Error(err))
		ui.showError(KeyErrorOpeningFile, err)
	}
}

func (ui *RootUI) onRemoveRecent(rec model.FileRecord) {
	ui.removeRecent(rec)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ShowSettingsDialog(ui.window, ui.settings, ui.localization, func(changed SettingsChange) {
		ui.showStatus(ui.localization.GetText(KeySettingsSaved))
		if changed.Language {
			ui.onLanguageChange(ui.settings.GetLanguage())
		}
		if changed.Store {
			dialog.ShowInformation(ui.localization.GetText(KeySettings), ui.localization.GetText(KeyRestartRequired), ui.window)
		}
	})
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.localization.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)

	ui.createMenu()
	ui.updateTitle()
	ui.router.Refresh()
}

// onCloseRequested saves the window size and closes once changes are settled
func (ui *RootUI) onCloseRequested() {
	ui.confirmDiscard(func() {
		size := ui.window.Canvas().Size()
		ui.settings.SetWindowSize(int(size.Width), int(size.Height))
		ui.window.Close()
	})
}

// showStatus shows text in the status line until ToastAutoHide passes
func (ui *RootUI) showStatus(text string) {
	ui.statusLabel.SetText(text)
	if ui.statusTimer != nil {
		ui.statusTimer.Stop()
	}
	ui.statusTimer = time.AfterFunc(ToastAutoHide, func() {
		fyne.Do(func() {
			if ui.statusLabel.Text == text {
				ui.statusLabel.SetText("")
			}
		})
	})
}

func (ui *RootUI) showError(key string, err error) {
	dialog.ShowError(fmt.Errorf("%s: %w", ui.localization.GetText(key), err), ui.window)
}
