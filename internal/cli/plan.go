package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/director"
	"github.com/ivlev/scene2video/internal/engine"
)

// PlanResult is the JSON payload of the plan command.
type PlanResult struct {
	Path     string             `json:"path"`
	Key      string             `json:"key"`
	Cached   bool               `json:"cached"`
	Metadata engine.Metadata    `json:"metadata"`
	Timeline *director.Timeline `json:"timeline"`
	Warnings []string           `json:"warnings,omitempty"`
	Output   string             `json:"output,omitempty"`
	Compared string             `json:"compared,omitempty"`
}

type planOptions struct {
	out     string
	outDir  string
	compare string
}

// NewPlanCommand creates the plan command.
func NewPlanCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &planOptions{}

	cmd := &cobra.Command{
		Use:   "plan [project]",
		Short: "Compose a project and print its frame timeline",
		Long: `Compose a project into scene, asset and overlay windows.

Without a project path the newest .json/.yaml file in input/scenes is used.
The timeline can be written as YAML with --out or --out-dir; --out - prints
the YAML instead of the summary.

--compare checks the new timeline against a saved one (a file, or the newest
timeline in a directory) and fails with exit code 1 when any window moved.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "write the timeline YAML to this file")
	cmd.Flags().StringVar(&opts.outDir, "out-dir", "", "write a timestamped timeline YAML into this directory")
	cmd.Flags().StringVar(&opts.compare, "compare", "", "timeline file or directory to compare against")
	return cmd
}

func runPlan(rootOpts *RootOptions, opts *planOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	path, err := resolveInput(rootOpts, args, f)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, "no project given", err, nil)
	}
	lp, err := loadPlan(cmd.Context(), rootOpts, path, f)
	if err != nil {
		return err
	}
	plan := lp.Plan

	compared := ""
	if opts.compare != "" {
		compared, err = compareTimeline(opts.compare, plan.Timeline, f)
		if err != nil {
			return err
		}
	}

	if opts.out == "-" {
		if err := director.EncodeTimeline(f.Writer, plan.Timeline); err != nil {
			return f.Fail(ExitCommandError, ErrCodeNotFound, "failed to write timeline", err, nil)
		}
		return nil
	}

	output := opts.out
	if output == "" && opts.outDir != "" {
		if err := os.MkdirAll(opts.outDir, 0755); err != nil {
			return f.Fail(ExitCommandError, ErrCodeNotFound, "failed to create output dir", err, nil)
		}
		output = director.GenerateTimelinePath(opts.outDir)
	}
	if output != "" {
		if err := director.WriteTimeline(plan.Timeline, output); err != nil {
			return f.Fail(ExitCommandError, ErrCodeNotFound, "failed to write timeline", err, nil)
		}
		f.VerboseLog("[*] Timeline written: %s", output)
	}

	result := PlanResult{
		Path:   path,
		Key:    plan.Key,
		Cached: lp.Cached,
		Metadata: engine.Metadata{
			FPS:              plan.Timeline.FPS,
			Width:            plan.Timeline.Width,
			Height:           plan.Timeline.Height,
			DurationInFrames: plan.TotalFrames(),
		},
		Timeline: plan.Timeline,
		Warnings: plan.Warnings,
		Output:   output,
		Compared: compared,
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprint(w, director.Describe(plan.Timeline))
		if output != "" {
			fmt.Fprintf(w, "[*] Timeline written: %s\n", output)
		}
		if compared != "" {
			fmt.Fprintf(w, "[*] Timeline matches %s\n", compared)
		}
	})
}

// compareTimeline diffs tl against the saved timeline at path. A directory
// selects its newest timeline. It returns the file compared against.
func compareTimeline(path string, tl *director.Timeline, f *OutputFormatter) (string, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		latest, err := director.FindLatestTimeline(path)
		if err != nil {
			return "", f.Fail(ExitCommandError, ErrCodeNotFound, "no timeline to compare against", err, nil)
		}
		path = latest
	}

	saved, err := director.ReadTimeline(path)
	if err != nil {
		return "", f.Fail(ExitCommandError, ErrCodeLoad, "failed to read timeline", err, nil)
	}
	if diffs := director.Diff(saved, tl); len(diffs) > 0 {
		for _, d := range diffs {
			f.Warn("%s", d)
		}
		return "", f.Fail(ExitFailure, ErrCodeMismatch,
			fmt.Sprintf("timeline differs from %s in %d place(s)", path, len(diffs)), nil, diffs)
	}
	f.VerboseLog("[*] Timeline matches %s", path)
	return path, nil
}
