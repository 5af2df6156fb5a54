package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/store"
)

// CacheListResult is the JSON payload of cache list.
type CacheListResult struct {
	Path    string        `json:"path"`
	Entries []store.Entry `json:"entries"`
}

// CacheRemoveResult is the JSON payload of cache rm and cache prune.
type CacheRemoveResult struct {
	Path    string   `json:"path"`
	Keys    []string `json:"keys,omitempty"`
	Removed int64    `json:"removed"`
}

// NewCacheCommand creates the cache command and its subcommands.
func NewCacheCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and trim the SQLite plan cache",
		Long: `Inspect and trim the plan cache selected with --cache-db or
SCENE2VIDEO_CACHE_DB.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newCacheListCommand(rootOpts))
	cmd.AddCommand(newCacheRemoveCommand(rootOpts))
	cmd.AddCommand(newCachePruneCommand(rootOpts))
	return cmd
}

func newCacheListCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List cached plans, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			db, err := openCache(rootOpts, f)
			if err != nil {
				return err
			}
			defer db.Close()

			entries, err := db.List(cmd.Context())
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeCache, "failed to list plan cache", err, nil)
			}

			result := CacheListResult{Path: rootOpts.Config.CacheDB, Entries: entries}
			return f.Success(result, func(w io.Writer) {
				if len(entries) == 0 {
					fmt.Fprintln(w, "[*] Plan cache is empty")
					return
				}
				for _, e := range entries {
					fmt.Fprintf(w, "%s %dx%d v%s %d frames %s\n",
						e.Key, e.Width, e.Height, e.Version, e.TotalFrames, e.CreatedAt.Format(time.RFC3339))
				}
			})
		},
	}
}

func newCacheRemoveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "rm <key>...",
		Short:         "Remove cached plans by key, at every output size",
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			db, err := openCache(rootOpts, f)
			if err != nil {
				return err
			}
			defer db.Close()

			for _, key := range args {
				if err := db.Delete(cmd.Context(), key); err != nil {
					return f.Fail(ExitCommandError, ErrCodeCache, "failed to remove plan", err, nil)
				}
				f.VerboseLog("[*] Removed %s", key)
			}

			result := CacheRemoveResult{Path: rootOpts.Config.CacheDB, Keys: args, Removed: int64(len(args))}
			return f.Success(result, func(w io.Writer) {
				fmt.Fprintf(w, "[*] Removed %d key(s)\n", len(args))
			})
		},
	}
}

func newCachePruneCommand(rootOpts *RootOptions) *cobra.Command {
	var olderThan time.Duration

	cmd := &cobra.Command{
		Use:           "prune",
		Short:         "Remove cached plans older than --older-than",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			f := newFormatter(rootOpts, cmd)
			if olderThan < 0 {
				return f.Fail(ExitCommandError, ErrCodeRange, fmt.Sprintf("invalid age %s", olderThan), nil, nil)
			}
			db, err := openCache(rootOpts, f)
			if err != nil {
				return err
			}
			defer db.Close()

			n, err := db.Prune(cmd.Context(), time.Now().Add(-olderThan))
			if err != nil {
				return f.Fail(ExitCommandError, ErrCodeCache, "failed to prune plan cache", err, nil)
			}

			result := CacheRemoveResult{Path: rootOpts.Config.CacheDB, Removed: n}
			return f.Success(result, func(w io.Writer) {
				fmt.Fprintf(w, "[*] Pruned %d plan(s)\n", n)
			})
		},
	}

	cmd.Flags().DurationVar(&olderThan, "older-than", 30*24*time.Hour, "remove plans stored at least this long ago")
	return cmd
}

func openCache(rootOpts *RootOptions, f *OutputFormatter) (*store.Store, error) {
	path := rootOpts.Config.CacheDB
	if path == "" {
		return nil, f.Fail(ExitCommandError, ErrCodeCache,
			"no plan cache configured (use --cache-db or SCENE2VIDEO_CACHE_DB)", nil, nil)
	}
	db, err := store.Open(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeCache, "failed to open plan cache", err, nil)
	}
	return db, nil
}
