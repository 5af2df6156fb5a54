package engine

import (
	"github.com/ivlev/scene2video/internal/director"
	"github.com/ivlev/scene2video/internal/effects"
	"github.com/ivlev/scene2video/internal/overlay"
	"github.com/ivlev/scene2video/internal/renderer"
	"github.com/ivlev/scene2video/internal/scene"
	"github.com/ivlev/scene2video/internal/timing"
)

// LayerKind tells the rendering surface what to draw for a layer.
type LayerKind string

const (
	AssetLayer   LayerKind = "asset"
	OverlayLayer LayerKind = "overlay"
)

// Layer is one renderable item at one frame. Layers are listed back to
// front: the scene's asset first, then its overlays in declaration order.
type Layer struct {
	Kind        LayerKind          `json:"kind"`
	ID          string             `json:"id"`
	FrameOffset int                `json:"frameOffset"`
	Transform   string             `json:"transform"`
	Opacity     float64            `json:"opacity"`
	Visible     bool               `json:"visible"`
	Ops         renderer.Transform `json:"ops,omitempty"`
	Media       scene.MediaKind    `json:"media,omitempty"`
	URL         string             `json:"url,omitempty"`
	Overlay     *OverlayState      `json:"overlay,omitempty"`
}

// OverlayState carries the text, style and animated placement of an overlay layer.
type OverlayState struct {
	Text     string           `json:"text"`
	Style    Style            `json:"style"`
	Resolved overlay.Resolved `json:"resolved"`
}

// Style is the fixed presentation of an overlay.
type Style struct {
	Color           string  `json:"color"`
	FontSize        float64 `json:"fontSize"`
	BackgroundColor string  `json:"backgroundColor"`
	Padding         string  `json:"padding"`
	BorderRadius    int     `json:"borderRadius"`
	TextShadow      string  `json:"textShadow"`
}

// AudioCue says which voice track plays and where its playhead is.
type AudioCue struct {
	URL             string  `json:"url"`
	StartFrom       int     `json:"startFrom"`
	PlayheadSeconds float64 `json:"playheadSeconds"`
	DurationFrames  int     `json:"durationFrames"`
}

// Frame is the resolved content of one global frame.
type Frame struct {
	Frame      int       `json:"frame"`
	SceneID    string    `json:"sceneId,omitempty"`
	SceneFrame int       `json:"sceneFrame"`
	Layers     []Layer   `json:"layers"`
	Audio      *AudioCue `json:"audio,omitempty"`
}

// Resolve returns the layers visible at a global frame. Frames outside the
// composition resolve to an empty layer list.
func Resolve(plan *Plan, frame int) Frame {
	out := Frame{Frame: frame, Layers: []Layer{}}
	if plan == nil || plan.Timeline == nil {
		return out
	}

	idx, ok := findScene(plan.Timeline.Scenes, frame)
	if !ok {
		return out
	}
	track := plan.Timeline.Scenes[idx]
	s := plan.Scenes[idx]
	local := frame - track.Window.Start

	out.SceneID = track.ID
	out.SceneFrame = local

	for _, clip := range track.Assets {
		if clip.Window.Contains(local) {
			out.Layers = append(out.Layers, assetLayer(s.Assets[clip.Index], local-clip.Window.Start))
		}
	}
	for _, clip := range track.Overlays {
		if clip.Window.Contains(local) {
			out.Layers = append(out.Layers, overlayLayer(s.Overlays[clip.Index], local-clip.Window.Start))
		}
	}

	if plan.VoiceURL != "" {
		out.Audio = &AudioCue{
			URL:             plan.VoiceURL,
			StartFrom:       0,
			PlayheadSeconds: timing.FramesToSeconds(frame),
			DurationFrames:  plan.Timeline.TotalFrames,
		}
	}

	return out
}

// findScene binary-searches the contiguous scene windows.
func findScene(tracks []director.SceneTrack, frame int) (int, bool) {
	lo, hi := 0, len(tracks)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		w := tracks[mid].Window
		switch {
		case frame < w.Start:
			hi = mid - 1
		case frame >= w.End():
			lo = mid + 1
		default:
			return mid, true
		}
	}
	return 0, false
}

func assetLayer(a scene.Asset, offset int) Layer {
	ops := effects.Resolve(a.Effects, offset)
	return Layer{
		Kind:        AssetLayer,
		ID:          a.ID,
		FrameOffset: offset,
		Transform:   ops.String(),
		Opacity:     1,
		Visible:     true,
		Ops:         ops,
		Media:       a.Kind,
		URL:         a.URL(),
	}
}

func overlayLayer(o scene.Overlay, offset int) Layer {
	r := overlay.Resolve(o, offset)
	return Layer{
		Kind:        OverlayLayer,
		ID:          o.ID,
		FrameOffset: offset,
		Transform:   r.Transform,
		Opacity:     r.Opacity,
		Visible:     r.Visible,
		Overlay: &OverlayState{
			Text: o.Text,
			Style: Style{
				Color:           o.Color,
				FontSize:        o.FontSize,
				BackgroundColor: o.BackgroundColor,
				Padding:         "4px 12px",
				BorderRadius:    8,
				TextShadow:      "2px 2px 8px rgba(0,0,0,0.7)",
			},
			Resolved: r,
		},
	}
}
