// Package cli wires the tiptapri command line. Running the root command
// without a subcommand starts the desktop editor; the recent subcommands
// manage the recently opened file list without starting the GUI.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tiptapri/tiptapri/internal/logging"
	"github.com/tiptapri/tiptapri/internal/platform"
	"github.com/tiptapri/tiptapri/internal/store"
)

// headlessLogLevel keeps informational registry logs off the terminal for subcommands
const headlessLogLevel = "warn"

// rootOptions holds the persistent flags shared by every command
type rootOptions struct {
	storeBackend string
	storeDir     string
	logLevel     string
	ephemeral    bool
}

// Execute runs the root command
func Execute(ctx context.Context, version string) error {
	return NewRootCommand(version).ExecuteContext(ctx)
}

// NewRootCommand builds the command tree
func NewRootCommand(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "tiptapri [file]",
		Short: "tiptapri - a small desktop text editor",
		Long: `tiptapri opens, edits and saves plain-text files and remembers the
files opened recently.

Run without a subcommand to start the editor, optionally opening [file].`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd.Context(), opts, version, args)
		},
	}

	// Persistent flags available to all commands
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.storeBackend, "store-backend", "",
		fmt.Sprintf("store backend (%s)", strings.Join(store.Backends(), ", ")))
	flags.StringVar(&opts.storeDir, "store-dir", "", "directory holding the store file")
	flags.StringVar(&opts.logLevel, "log-level", "",
		fmt.Sprintf("log level (%s)", strings.Join(logging.Levels(), ", ")))
	flags.BoolVar(&opts.ephemeral, "ephemeral", false, "keep the recent list in memory for this run only")

	// Add subcommands
	rootCmd.AddCommand(newRecentCommand(opts))
	rootCmd.AddCommand(newVersionCommand(version))

	return rootCmd
}

func (o *rootOptions) validate() error {
	if o.storeBackend != "" && !isKnownBackend(o.storeBackend) {
		return fmt.Errorf("%w: %q", store.ErrUnknownBackend, o.storeBackend)
	}
	if o.logLevel != "" && !isKnownLevel(o.logLevel) {
		return fmt.Errorf("unknown log level %q, want one of %s", o.logLevel, strings.Join(logging.Levels(), ", "))
	}
	if o.ephemeral && o.storeBackend != "" && o.storeBackend != store.BackendMemory {
		return fmt.Errorf("--ephemeral cannot be combined with --store-backend=%s", o.storeBackend)
	}
	return nil
}

// applyStore overrides base with the flags that were given
func (o *rootOptions) applyStore(base store.Options) store.Options {
	if o.storeBackend != "" {
		base.Backend = o.storeBackend
	}
	if o.storeDir != "" {
		base.Dir = o.storeDir
	}
	if o.ephemeral {
		base.Backend = store.BackendMemory
	}
	return base
}

// headlessStore resolves store options for subcommands, which run without settings
func (o *rootOptions) headlessStore() (store.Options, error) {
	opts := o.applyStore(store.Options{Backend: store.BackendFile})
	if opts.Dir == "" && usesDirectory(opts.Backend) {
		dir, err := platform.GetAppDataDir()
		if err != nil {
			return store.Options{}, fmt.Errorf("resolve store directory: %w", err)
		}
		opts.Dir = dir
	}
	return opts, nil
}

func (o *rootOptions) headlessLogging() logging.Config {
	level := o.logLevel
	if level == "" {
		level = headlessLogLevel
	}
	return logging.Config{Level: level, Format: logging.FormatConsole}
}

// prepareStoreDir creates the directory used by file-based backends
func prepareStoreDir(opts store.Options) error {
	if !usesDirectory(opts.Backend) {
		return nil
	}
	if err := platform.CreateDirectoryIfNotExists(opts.Dir); err != nil {
		return fmt.Errorf("create store directory: %w", err)
	}
	return nil
}

func usesDirectory(backend string) bool {
	return backend == "" || backend == store.BackendFile || backend == store.BackendSQLite
}

func isKnownLevel(level string) bool {
	for _, l := range logging.Levels() {
		if strings.EqualFold(l, level) {
			return true
		}
	}
	return false
}

func isKnownBackend(backend string) bool {
	for _, b := range store.Backends() {
		if b == backend {
			return true
		}
	}
	return false
}
