package cli

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/scene2video/internal/engine"
)

// NewFrameCommand creates the frame command.
func NewFrameCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "frame <project> <frame>",
		Short:         "Resolve the layers visible at one frame",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFrame(rootOpts, args, cmd)
		},
	}
	return cmd
}

func runFrame(rootOpts *RootOptions, args []string, cmd *cobra.Command) error {
	f := newFormatter(rootOpts, cmd)

	n, err := strconv.Atoi(args[1])
	if err != nil {
		return f.Fail(ExitCommandError, ErrCodeRange, fmt.Sprintf("invalid frame %q", args[1]), err, nil)
	}

	lp, err := loadPlan(cmd.Context(), rootOpts, args[0], f)
	if err != nil {
		return err
	}

	frame := engine.Resolve(lp.Plan, n)
	if n < 0 || n >= lp.Plan.TotalFrames() {
		f.Warn("frame %d is outside the composition [0,%d)", n, lp.Plan.TotalFrames())
	}

	return f.Success(frame, func(w io.Writer) {
		writeFrameText(w, frame)
	})
}

func writeFrameText(w io.Writer, frame engine.Frame) {
	if frame.SceneID == "" {
		fmt.Fprintf(w, "frame %d: empty\n", frame.Frame)
		return
	}
	fmt.Fprintf(w, "frame %d: scene %s +%d\n", frame.Frame, frame.SceneID, frame.SceneFrame)
	for _, l := range frame.Layers {
		switch l.Kind {
		case engine.AssetLayer:
			fmt.Fprintf(w, "  asset %s +%d %s %s transform=%q\n", l.ID, l.FrameOffset, l.Media, l.URL, l.Transform)
		case engine.OverlayLayer:
			text := ""
			if l.Overlay != nil {
				text = l.Overlay.Text
			}
			fmt.Fprintf(w, "  overlay %s +%d %q opacity=%s transform=%q\n",
				l.ID, l.FrameOffset, text, strconv.FormatFloat(l.Opacity, 'f', -1, 64), l.Transform)
		}
	}
	if frame.Audio != nil {
		fmt.Fprintf(w, "  audio %s @ %.3fs\n", frame.Audio.URL, frame.Audio.PlayheadSeconds)
	}
}
