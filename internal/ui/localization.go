package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle           = "app_title"
	KeyFile               = "file"
	KeyEdit               = "edit"
	KeyNew                = "new"
	KeyOpenFile           = "open_file"
	KeySave               = "save"
	KeySaveAs             = "save_as"
	KeyRecentFiles        = "recent_files"
	KeyNoRecentFiles      = "no_recent_files"
	KeyUndo               = "undo"
	KeyRedo               = "redo"
	KeyCut                = "cut"
	KeyCopy               = "copy"
	KeyPaste              = "paste"
	KeyView               = "view"
	KeyHome               = "home"
	KeyBack               = "back"
	KeyForward            = "forward"
	KeySettings           = "settings"
	KeyLanguage           = "language"
	KeyStoreBackend       = "store_backend"
	KeyStoreDirectory     = "store_directory"
	KeyLogLevel           = "log_level"
	KeyLogFile            = "log_file"
	KeyReopenLastFile     = "reopen_last_file"
	KeyCancel             = "cancel"
	KeyBrowse             = "browse"
	KeySettingsSaved      = "settings_saved"
	KeyRestartRequired    = "restart_required"
	KeyFileSaved          = "file_saved"
	KeyFileMissing        = "file_missing"
	KeyFileMissingRemove  = "file_missing_remove"
	KeyDiscardChanges     = "discard_changes"
	KeyDiscardChangesText = "discard_changes_text"
	KeyErrorOpeningFile   = "error_opening_file"
	KeyErrorSavingFile    = "error_saving_file"
	KeyErrorRecentFiles   = "error_recent_files"
	KeyUntitled           = "untitled"
	KeyModifiedMarker     = "modified_marker"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		// Use system locale - simplified to English for now
		lang = "en"
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ja": "日本語",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:           "tiptapri",
		KeyFile:               "File",
		KeyEdit:               "Edit",
		KeyNew:                "New",
		KeyOpenFile:           "Open...",
		KeySave:               "Save",
		KeySaveAs:             "Save As...",
		KeyRecentFiles:        "Recent Files",
		KeyNoRecentFiles:      "No recently opened files",
		KeyUndo:               "Undo",
		KeyRedo:               "Redo",
		KeyCut:                "Cut",
		KeyCopy:               "Copy",
		KeyPaste:              "Paste",
		KeyView:               "View",
		KeyHome:               "Home",
		KeyBack:               "Back",
		KeyForward:            "Forward",
		KeySettings:           "Settings",
		KeyLanguage:           "Language",
		KeyStoreBackend:       "Storage Backend",
		KeyStoreDirectory:     "Storage Directory",
		KeyLogLevel:           "Log Level",
		KeyLogFile:            "Log File",
		KeyReopenLastFile:     "Reopen last file on start",
		KeyCancel:             "Cancel",
		KeyBrowse:             "Browse",
		KeySettingsSaved:      "Settings saved successfully!",
		KeyRestartRequired:    "Storage changes apply after restart.",
		KeyFileSaved:          "File saved",
		KeyFileMissing:        "File not found",
		KeyFileMissingRemove:  "The file no longer exists. Remove it from the recent list?",
		KeyDiscardChanges:     "Unsaved changes",
		KeyDiscardChangesText: "Discard the changes to the current document?",
		KeyErrorOpeningFile:   "Error opening file",
		KeyErrorSavingFile:    "Error saving file",
		KeyErrorRecentFiles:   "Error updating recent files",
		KeyUntitled:           "Untitled",
		KeyModifiedMarker:     "*",
	}

	// Japanese texts
	l.texts["ja"] = map[string]string{
		KeyAppTitle:           "tiptapri",
		KeyFile:               "ファイル",
		KeyEdit:               "編集",
		KeyNew:                "新規",
		KeyOpenFile:           "開く...",
		KeySave:               "保存",
		KeySaveAs:             "名前を付けて保存...",
		KeyRecentFiles:        "最近使ったファイル",
		KeyNoRecentFiles:      "最近開いたファイルはありません",
		KeyUndo:               "元に戻す",
		KeyRedo:               "やり直し",
		KeyCut:                "切り取り",
		KeyCopy:               "コピー",
		KeyPaste:              "貼り付け",
		KeyView:               "表示",
		KeyHome:               "ホーム",
		KeyBack:               "戻る",
		KeyForward:            "進む",
		KeySettings:           "設定",
		KeyLanguage:           "言語",
		KeyStoreBackend:       "保存方式",
		KeyStoreDirectory:     "保存先フォルダ",
		KeyLogLevel:           "ログレベル",
		KeyLogFile:            "ログファイル",
		KeyReopenLastFile:     "起動時に前回のファイルを開く",
		KeyCancel:             "キャンセル",
		KeyBrowse:             "参照",
		KeySettingsSaved:      "設定を保存しました",
		KeyRestartRequired:    "保存方式の変更は再起動後に反映されます。",
		KeyFileSaved:          "保存しました",
		KeyFileMissing:        "ファイルが見つかりません",
		KeyFileMissingRemove:  "ファイルが存在しません。一覧から削除しますか？",
		KeyDiscardChanges:     "未保存の変更",
		KeyDiscardChangesText: "現在の変更を破棄しますか？",
		KeyErrorOpeningFile:   "ファイルを開けませんでした",
		KeyErrorSavingFile:    "ファイルを保存できませんでした",
		KeyErrorRecentFiles:   "最近使ったファイルを更新できませんでした",
		KeyUntitled:           "無題",
		KeyModifiedMarker:     "*",
	}
}
