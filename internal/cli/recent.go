package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tiptapri/tiptapri/internal/logging"
	"github.com/tiptapri/tiptapri/internal/model"
	"github.com/tiptapri/tiptapri/internal/recent"
	"github.com/tiptapri/tiptapri/internal/store"
)

func newRecentCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "Manage the recently opened file list",
	}

	cmd.AddCommand(newRecentListCommand(opts))
	cmd.AddCommand(newRecentAddCommand(opts))
	cmd.AddCommand(newRecentRemoveCommand(opts))

	return cmd
}

func newRecentListCommand(opts *rootOptions) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the recently opened files, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRegistry(cmd.Context(), opts, func(r *recent.Registry) error {
				files, err := r.List(cmd.Context())
				if err != nil {
					return err
				}
				return printFiles(cmd, files, asJSON)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	return cmd
}

func newRecentAddCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <path>",
		Short: "Add a file to the recent list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recordFor(args[0])
			if err != nil {
				return err
			}
			return withRegistry(cmd.Context(), opts, func(r *recent.Registry) error {
				if _, err := r.Add(cmd.Context(), rec); err != nil {
					return err
				}
				_, err := fmt.Fprintln(cmd.OutOrStdout(), rec.FullPath)
				return err
			})
		},
	}
}

func newRecentRemoveCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <path>",
		Short: "Remove a file from the recent list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := recordFor(args[0])
			if err != nil {
				return err
			}
			return withRegistry(cmd.Context(), opts, func(r *recent.Registry) error {
				_, err := r.Remove(cmd.Context(), rec)
				return err
			})
		},
	}
}

// withRegistry opens the store for one command and closes it afterwards
func withRegistry(ctx context.Context, opts *rootOptions, fn func(*recent.Registry) error) error {
	storeOpts, err := opts.headlessStore()
	if err != nil {
		return err
	}
	if err := prepareStoreDir(storeOpts); err != nil {
		return err
	}

	logger, err := logging.New(opts.headlessLogging())
	if err != nil {
		return err
	}
	defer func() { _ = logging.Sync(logger) }()

	logger.Debug("opening store", zap.String("backend", storeOpts.Backend), zap.String("path", storeOpts.Path()))

	return store.WithStore(ctx, storeOpts, func(s store.Store) error {
		return fn(recent.NewRegistry(s, logger))
	})
}

// recordFor builds a record from a command line path, resolved against the working directory
func recordFor(path string) (model.FileRecord, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return model.FileRecord{}, fmt.Errorf("resolve %s: %w", path, err)
	}
	return model.NewFileRecord(abs), nil
}

func printFiles(cmd *cobra.Command, files []model.FileRecord, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(files)
	}
	for _, f := range files {
		if _, err := fmt.Fprintln(out, f.FullPath); err != nil {
			return err
		}
	}
	return nil
}
