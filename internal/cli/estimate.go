package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/engine"
	"github.com/ivlev/scene2video/internal/source"
	"github.com/ivlev/scene2video/internal/system"
	"github.com/ivlev/scene2video/internal/timing"
)

// voiceTolerance is how far the voice track may drift from the timeline
// before estimate warns, in seconds.
const voiceTolerance = 0.5

// EstimateResult is the JSON payload of the estimate command.
type EstimateResult struct {
	Path         string          `json:"path"`
	Metadata     engine.Metadata `json:"metadata"`
	Seconds      float64         `json:"seconds"`
	VoiceFile    string          `json:"voiceFile,omitempty"`
	VoiceSeconds float64         `json:"voiceSeconds,omitempty"`
}

type estimateOptions struct {
	voiceFile string
}

// NewEstimateCommand creates the estimate command.
func NewEstimateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &estimateOptions{}

	cmd := &cobra.Command{
		Use:   "estimate [project]",
		Short: "Print composition metadata without composing the full plan",
		Long: `Print fps, size and duration in frames, computed from scene durations only.

With --voice-file (a file, or a directory whose newest audio file is used) the
voice track length is measured with ffprobe and compared against the timeline.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEstimate(rootOpts, opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.voiceFile, "voice-file", "", "local voice track to compare against the timeline")
	return cmd
}

func runEstimate(rootOpts *RootOptions, opts *estimateOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	path, err := resolveInput(rootOpts, args, f)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeNotFound, "no project given", err, nil)
	}
	project, err := source.Load(path)
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeLoad, "failed to load project", err, nil)
	}

	md := engine.NewComposer(rootOpts.Config.Width, rootOpts.Config.Height).Metadata(project)
	result := EstimateResult{
		Path:     path,
		Metadata: md,
		Seconds:  timing.FramesToSeconds(md.DurationInFrames),
	}

	if opts.voiceFile != "" {
		voice, err := resolveVoiceFile(opts.voiceFile)
		if err != nil {
			return f.Fail(ExitCommandError, ErrCodeNotFound, "voice file not found", err, nil)
		}
		d, err := system.GetAudioDuration(cmd.Context(), voice)
		if err != nil {
			f.Warn("failed to read voice duration: %v", err)
		} else {
			result.VoiceFile = voice
			result.VoiceSeconds = d
			if diff := d - result.Seconds; diff > voiceTolerance || diff < -voiceTolerance {
				f.Warn("voice track is %.2fs, timeline is %.2fs", d, result.Seconds)
			}
		}
	}

	return f.Success(result, func(w io.Writer) {
		fmt.Fprintf(w, "%d frames (%.2fs) @ %d fps, %dx%d\n",
			md.DurationInFrames, result.Seconds, md.FPS, md.Width, md.Height)
		if result.VoiceFile != "" {
			fmt.Fprintf(w, "voice %s: %.2fs\n", result.VoiceFile, result.VoiceSeconds)
		}
	})
}

func resolveVoiceFile(path string) (string, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if fi.IsDir() {
		return system.FindLatestAudio(path)
	}
	return path, nil
}
