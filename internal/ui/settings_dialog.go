package ui

import (
	"maps"
	"slices"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/tiptapri/tiptapri/internal/config"
	"github.com/tiptapri/tiptapri/internal/logging"
)

// SettingsChange reports which groups of settings were modified on save
type SettingsChange struct {
	Language bool
	Store    bool
	Logging  bool
}

// Any reports whether anything changed
func (c SettingsChange) Any() bool {
	return c.Language || c.Store || c.Logging
}

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings     *config.Settings
	localization *Localization
	window       fyne.Window
	dialog       *dialog.ConfirmDialog
	onSaved      func(SettingsChange)

	// UI components
	languageSelect *widget.Select
	backendSelect  *widget.Select
	storeDirEntry  *widget.Entry
	logLevelSelect *widget.Select
	logFileEntry   *widget.Entry
	reopenCheck    *widget.Check
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func(SettingsChange)) *SettingsDialog {
	sd := &SettingsDialog{
		settings:     settings,
		localization: localization,
		window:       window,
		onSaved:      onSaved,
	}

	sd.createUI()
	return sd
}

// ShowSettingsDialog builds and shows the settings dialog in one step
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, localization *Localization, onSaved func(SettingsChange)) *SettingsDialog {
	sd := NewSettingsDialog(window, settings, localization, onSaved)
	sd.Show()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	l := sd.localization

	sd.languageSelect = widget.NewSelect(slices.Sorted(maps.Keys(sd.settings.GetLanguageOptions())), nil)
	sd.backendSelect = widget.NewSelect(sd.settings.GetStoreBackendOptions(), nil)

	sd.storeDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(l.GetText(KeyBrowse), sd.onBrowseDirectory)
	storeDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.storeDirEntry)

	sd.logLevelSelect = widget.NewSelect(logging.Levels(), nil)
	sd.logFileEntry = widget.NewEntry()
	sd.logFileEntry.SetPlaceHolder("tiptapri.log")

	sd.reopenCheck = widget.NewCheck(l.GetText(KeyReopenLastFile), nil)

	form := widget.NewForm(
		widget.NewFormItem(l.GetText(KeyLanguage), sd.languageSelect),
		widget.NewFormItem(l.GetText(KeyStoreBackend), sd.backendSelect),
		widget.NewFormItem(l.GetText(KeyStoreDirectory), storeDirRow),
		widget.NewFormItem(l.GetText(KeyLogLevel), sd.logLevelSelect),
		widget.NewFormItem(l.GetText(KeyLogFile), sd.logFileEntry),
	)

	content := container.NewVBox(form, widget.NewSeparator(), sd.reopenCheck)

	sd.dialog = dialog.NewCustomConfirm(
		l.GetText(KeySettings),
		l.GetText(KeySave),
		l.GetText(KeyCancel),
		content,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsWidth, SettingsHeight))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
	sd.backendSelect.SetSelected(sd.settings.GetStoreBackend())
	sd.storeDirEntry.SetText(sd.settings.GetStoreDirectory())
	sd.logLevelSelect.SetSelected(sd.settings.GetLogLevel())
	sd.logFileEntry.SetText(sd.settings.GetLogFile())
	sd.reopenCheck.SetChecked(sd.settings.GetReopenLastFile())
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.storeDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	change := sd.apply()
	if sd.onSaved != nil {
		sd.onSaved(change)
	}
}

// apply writes the form values and reports what changed
func (sd *SettingsDialog) apply() SettingsChange {
	var change SettingsChange

	if lang := sd.languageSelect.Selected; lang != "" && lang != sd.settings.GetLanguage() {
		sd.settings.SetLanguage(lang)
		change.Language = true
	}

	if backend := sd.backendSelect.Selected; backend != "" && backend != sd.settings.GetStoreBackend() {
		sd.settings.SetStoreBackend(backend)
		change.Store = true
	}
	if dir := sd.storeDirEntry.Text; dir != "" && dir != sd.settings.GetStoreDirectory() {
		sd.settings.SetStoreDirectory(dir)
		change.Store = true
	}

	if level := sd.logLevelSelect.Selected; level != "" && level != sd.settings.GetLogLevel() {
		sd.settings.SetLogLevel(level)
		change.Logging = true
	}
	if file := sd.logFileEntry.Text; file != sd.settings.GetLogFile() {
		sd.settings.SetLogFile(file)
		change.Logging = true
	}

	sd.settings.SetReopenLastFile(sd.reopenCheck.Checked)
	return change
}
