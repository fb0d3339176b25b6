package config

import (
	"fyne.io/fyne/v2"

	"github.com/tiptapri/tiptapri/internal/logging"
	"github.com/tiptapri/tiptapri/internal/platform"
	"github.com/tiptapri/tiptapri/internal/store"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage       = "app_language"
	KeyStoreBackend   = "store_backend"
	KeyStoreDirectory = "store_directory"
	KeyLogLevel       = "log_level"
	KeyLogFile        = "log_file"
	KeyWindowWidth    = "window_width"
	KeyWindowHeight   = "window_height"
	KeyReopenLastFile = "reopen_last_file"
)

// Default values
const (
	DefaultLanguage       = "system"
	DefaultStoreBackend   = store.BackendFile
	DefaultLogLevel       = logging.DefaultLevel
	DefaultWindowWidth    = 800
	DefaultWindowHeight   = 600
	DefaultReopenLastFile = false
)

// Window size bounds
const (
	MinWindowWidth  = 320
	MinWindowHeight = 240
	MaxWindowWidth  = 7680
	MaxWindowHeight = 4320
)

// fallbackStoreDirectory is used when no user config dir can be resolved
const fallbackStoreDirectory = ".tiptapri"

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ja":     "日本語",
	}
}

// GetStoreBackend returns the configured store backend
func (s *Settings) GetStoreBackend() string {
	backend := s.app.Preferences().String(KeyStoreBackend)
	if !isKnownBackend(backend) {
		s.SetStoreBackend(DefaultStoreBackend)
		return DefaultStoreBackend
	}
	return backend
}

// SetStoreBackend sets the store backend; unknown names reset to the default
func (s *Settings) SetStoreBackend(backend string) {
	if !isKnownBackend(backend) {
		backend = DefaultStoreBackend
	}
	s.app.Preferences().SetString(KeyStoreBackend, backend)
}

// GetStoreBackendOptions returns the selectable store backends
func (s *Settings) GetStoreBackendOptions() []string {
	return store.Backends()
}

// GetStoreDirectory returns the directory holding the store file
func (s *Settings) GetStoreDirectory() string {
	dir := s.app.Preferences().String(KeyStoreDirectory)
	if dir == "" {
		defaultDir, err := platform.GetAppDataDir()
		if err != nil {
			defaultDir = fallbackStoreDirectory
		}
		s.SetStoreDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetStoreDirectory sets the directory holding the store file
func (s *Settings) SetStoreDirectory(dir string) {
	s.app.Preferences().SetString(KeyStoreDirectory, dir)
}

// StoreOptions assembles store options from the current settings
func (s *Settings) StoreOptions() store.Options {
	return store.Options{
		Backend: s.GetStoreBackend(),
		Dir:     s.GetStoreDirectory(),
		App:     s.app,
	}
}

// GetLogLevel returns the configured log level
func (s *Settings) GetLogLevel() string {
	level := s.app.Preferences().String(KeyLogLevel)
	if level == "" {
		s.SetLogLevel(DefaultLogLevel)
		return DefaultLogLevel
	}
	return level
}

// SetLogLevel sets the log level
func (s *Settings) SetLogLevel(level string) {
	if level == "" {
		level = DefaultLogLevel
	}
	s.app.Preferences().SetString(KeyLogLevel, level)
}

// GetLogFile returns the optional log file path
func (s *Settings) GetLogFile() string {
	return s.app.Preferences().String(KeyLogFile)
}

// SetLogFile sets the optional log file path; empty disables file logging
func (s *Settings) SetLogFile(path string) {
	s.app.Preferences().SetString(KeyLogFile, path)
}

// LoggingConfig assembles logging configuration from the current settings
func (s *Settings) LoggingConfig() logging.Config {
	return logging.Config{
		Level:      s.GetLogLevel(),
		Format:     logging.FormatConsole,
		OutputPath: s.GetLogFile(),
	}
}

// GetWindowSize returns the saved window size
func (s *Settings) GetWindowSize() (width, height int) {
	width = s.app.Preferences().IntWithFallback(KeyWindowWidth, DefaultWindowWidth)
	height = s.app.Preferences().IntWithFallback(KeyWindowHeight, DefaultWindowHeight)
	return clamp(width, MinWindowWidth, MaxWindowWidth), clamp(height, MinWindowHeight, MaxWindowHeight)
}

// SetWindowSize saves the window size, clamped to sane bounds
func (s *Settings) SetWindowSize(width, height int) {
	s.app.Preferences().SetInt(KeyWindowWidth, clamp(width, MinWindowWidth, MaxWindowWidth))
	s.app.Preferences().SetInt(KeyWindowHeight, clamp(height, MinWindowHeight, MaxWindowHeight))
}

// GetReopenLastFile returns whether the last recent file is opened on start
func (s *Settings) GetReopenLastFile() bool {
	return s.app.Preferences().BoolWithFallback(KeyReopenLastFile, DefaultReopenLastFile)
}

// SetReopenLastFile sets whether the last recent file is opened on start
func (s *Settings) SetReopenLastFile(reopen bool) {
	s.app.Preferences().SetBool(KeyReopenLastFile, reopen)
}

func isKnownBackend(backend string) bool {
	for _, b := range store.Backends() {
		if b == backend {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
