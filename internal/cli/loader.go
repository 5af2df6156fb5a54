package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/engine"
	"github.com/ivlev/scene2video/internal/scene"
	"github.com/ivlev/scene2video/internal/source"
	"github.com/ivlev/scene2video/internal/store"
	"github.com/ivlev/scene2video/internal/system"
)

// DefaultInputDir is searched for the newest project when no path is given.
const DefaultInputDir = "input/scenes"

func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}

// resolveInput returns the project path from args, the configured input, or
// the newest project in DefaultInputDir.
func resolveInput(opts *RootOptions, args []string, f *OutputFormatter) (string, error) {
	if len(args) > 0 && args[0] != "" {
		return args[0], nil
	}
	if opts.Config.InputPath != "" {
		return opts.Config.InputPath, nil
	}
	latest, err := system.FindLatestProject(DefaultInputDir)
	if err != nil {
		return "", err
	}
	f.VerboseLog("[*] Selected project: %s", latest)
	return latest, nil
}

// loadedPlan is a composed plan plus the project it came from.
type loadedPlan struct {
	Path    string
	Project scene.Project
	Plan    *engine.Plan
	Cached  bool
}

// loadPlan reads the project at path and composes it, going through the
// SQLite plan cache when one is configured.
func loadPlan(ctx context.Context, opts *RootOptions, path string, f *OutputFormatter) (*loadedPlan, error) {
	project, err := source.Load(path)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeLoad, "failed to load project", err, nil)
	}
	cfg := opts.Config

	if cfg.Strict {
		if err := source.ValidateFile(path); err != nil {
			return nil, f.Fail(ExitFailure, ErrCodeValidation, "project failed validation", err, nil)
		}
	}

	composer := engine.NewComposer(cfg.Width, cfg.Height)
	cache := engine.NewCache(composer)
	out := &loadedPlan{Path: path, Project: project}

	var db *store.Store
	if cfg.CacheDB != "" {
		db, err = store.Open(cfg.CacheDB)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeCache, "failed to open plan cache", err, nil)
		}
		defer db.Close()

		key, err := engine.ContentKey(project)
		if err != nil {
			return nil, f.Fail(ExitCommandError, ErrCodeCache, "failed to key project", err, nil)
		}
		stored, err := db.Get(ctx, key, cfg.Width, cfg.Height)
		switch {
		case err == nil:
			cache.Add(stored)
			out.Cached = true
			f.VerboseLog("[*] Plan cache hit: %s", key)
		case errors.Is(err, store.ErrNotFound):
			f.VerboseLog("[*] Plan cache miss: %s", key)
		default:
			return nil, f.Fail(ExitCommandError, ErrCodeCache, "failed to read plan cache", err, nil)
		}
	}

	plan, err := cache.Get(project)
	if err != nil {
		return nil, f.Fail(ExitCommandError, ErrCodeLoad, "failed to compose project", err, nil)
	}
	out.Plan = plan

	if db != nil && !out.Cached {
		if err := db.Put(ctx, plan); err != nil {
			f.Warn("failed to store plan: %v", err)
		}
	}

	for _, w := range plan.Warnings {
		f.Warn("%s", w)
	}
	if cfg.Strict && len(plan.Warnings) > 0 {
		return nil, f.Fail(ExitFailure, ErrCodeValidation,
			fmt.Sprintf("%d record(s) skipped or repaired", len(plan.Warnings)), nil, plan.Warnings)
	}

	if opts.Verbose {
		for _, track := range plan.Timeline.Scenes {
			f.VerboseLog("[>] scene %s [%d,%d) assets=%d overlays=%d",
				track.ID, track.Window.Start, track.Window.End(), len(track.Assets), len(track.Overlays))
		}
	}
	return out, nil
}
