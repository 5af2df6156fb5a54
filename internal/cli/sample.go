package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"reflect"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/engine"
	"github.com/ivlev/scene2video/internal/system"
)

// SampleStats summarizes a sample run.
type SampleStats struct {
	RunID         string  `json:"runId"`
	Frames        int     `json:"frames"`
	Workers       int     `json:"workers"`
	ElapsedMS     int64   `json:"elapsedMs"`
	Deterministic bool    `json:"deterministic"`
	MemUsedPct    float64 `json:"memUsedPercent,omitempty"`
}

type sampleOptions struct {
	from  int
	to    int
	step  int
	check bool
	stats bool
}

// NewSampleCommand creates the sample command.
func NewSampleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &sampleOptions{}

	cmd := &cobra.Command{
		Use:   "sample <project>",
		Short: "Resolve a frame range in parallel and stream it as JSON lines",
		Long: `Resolve frames [from, to) with a worker pool and print one JSON frame per line,
in frame order. With --check the range is resolved a second time in reverse
order and compared, which fails with exit code 1 on any difference.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSample(rootOpts, opts, args[0], cmd)
		},
	}

	cmd.Flags().IntVar(&opts.from, "from", 0, "first frame")
	cmd.Flags().IntVar(&opts.to, "to", -1, "frame after the last one (default: end of composition)")
	cmd.Flags().IntVar(&opts.step, "step", 1, "resolve and print every n-th frame")
	cmd.Flags().BoolVar(&opts.check, "check", false, "re-resolve in reverse order and compare")
	cmd.Flags().BoolVar(&opts.stats, "stats", false, "print run statistics to stderr")
	return cmd
}

func runSample(rootOpts *RootOptions, opts *sampleOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	lp, err := loadPlan(cmd.Context(), rootOpts, path, f)
	if err != nil {
		return err
	}
	plan := lp.Plan

	to := opts.to
	if to < 0 {
		to = plan.TotalFrames()
	}
	if opts.from < 0 || to < opts.from || opts.step < 1 {
		return f.Fail(ExitCommandError, ErrCodeRange,
			fmt.Sprintf("invalid range [%d,%d) step %d", opts.from, to, opts.step), nil, nil)
	}

	workers := rootOpts.Config.Workers
	start := time.Now()
	frames, err := engine.SampleEvery(cmd.Context(), plan, opts.from, to, opts.step, workers)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeRange, "sampling failed", err, nil)
	}

	stats := SampleStats{
		RunID:         uuid.NewString(),
		Frames:        len(frames),
		Workers:       workers,
		ElapsedMS:     time.Since(start).Milliseconds(),
		Deterministic: opts.check,
	}

	if opts.check {
		for i := len(frames) - 1; i >= 0; i-- {
			again := engine.Resolve(plan, frames[i].Frame)
			if !reflect.DeepEqual(again, frames[i]) {
				return f.Fail(ExitFailure, ErrCodeMismatch,
					fmt.Sprintf("frame %d resolved differently on the second pass", frames[i].Frame), nil, nil)
			}
		}
	}

	if err := writeFrames(f.Writer, frames); err != nil {
		return f.Fail(ExitCommandError, ErrCodeRange, "failed to write frames", err, nil)
	}

	if opts.stats || rootOpts.Config.ShowStats {
		if mem, err := system.MemoryStats(); err == nil {
			stats.MemUsedPct = mem.UsedPercent
		}
		data, _ := json.Marshal(stats)
		fmt.Fprintf(f.GetErrWriter(), "[*] stats %s\n", data)
	}
	return nil
}

// writeFrames prints frames as JSON lines, reusing pooled encode buffers.
func writeFrames(w io.Writer, frames []engine.Frame) error {
	for _, frame := range frames {
		buf := system.GetBuffer()
		if err := json.NewEncoder(buf).Encode(frame); err != nil {
			system.PutBuffer(buf)
			return err
		}
		_, err := w.Write(buf.Bytes())
		system.PutBuffer(buf)
		if err != nil {
			return err
		}
	}
	return nil
}
