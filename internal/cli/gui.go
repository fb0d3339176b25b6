package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"go.uber.org/zap"

	"github.com/tiptapri/tiptapri/internal/config"
	"github.com/tiptapri/tiptapri/internal/logging"
	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/recent"
	"github.com/tiptapri/tiptapri/internal/store"
	"github.com/tiptapri/tiptapri/internal/ui"
)

const (
	AppID   = "com.tiptapri.app"
	AppName = "tiptapri"
)

// runGUI starts the desktop editor and blocks until its window is closed
func runGUI(parent context.Context, opts *rootOptions, version string, args []string) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	// Create new Fyne app
	a := app.NewWithID(AppID)
	a.Settings().SetTheme(ui.NewEditorTheme())

	settings := config.NewSettings(a)

	logCfg := settings.LoggingConfig()
	if opts.logLevel != "" {
		logCfg.Level = opts.logLevel
	}
	logger, err := logging.New(logCfg)
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	logger.Info("starting", zap.String("version", version))

	storeOpts := opts.applyStore(settings.StoreOptions())
	if err := prepareStoreDir(storeOpts); err != nil {
		return err
	}

	st, err := store.Open(ctx, storeOpts)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logger.Error("failed to close store", zap.Error(err))
		}
	}()
	logger.Info("store opened", zap.String("backend", storeOpts.Backend), zap.String("path", storeOpts.Path()))

	registry := recent.NewRegistry(st, logger)

	window := a.NewWindow(AppName)
	width, height := settings.GetWindowSize()
	window.Resize(fyne.NewSize(float32(width), float32(height)))

	root := ui.NewRootUI(ctx, window, a, settings, registry, logger)

	// Another instance may change the list; only the file backend has a file to follow
	if storeOpts.Backend == store.BackendFile {
		watcher, err := registry.Watch(ctx, storeOpts.Path(), func(files []model.FileRecord) {
			fyne.Do(func() { root.SetRecentFiles(files) })
		})
		if err != nil {
			logger.Warn("recent list will not follow external changes", zap.Error(err))
		} else {
			defer func() { _ = watcher.Close() }()
		}
	}

	if len(args) == 1 {
		path, err := filepath.Abs(args[0])
		if err != nil {
			return fmt.Errorf("resolve %s: %w", args[0], err)
		}
		_ = root.OpenPath(path)
	} else if settings.GetReopenLastFile() {
		root.ReopenLastFile()
	}

	// Interrupts cancel parent; quit the event loop when that happens
	stopped := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			fyne.Do(a.Quit)
		case <-stopped:
		}
	}()

	// Show and run
	window.ShowAndRun()
	close(stopped)
	logger.Info("stopped")
	return nil
}
