// Package director lays scenes, assets and overlays out on the frame timeline.
package director

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/ivlev/scene2video/internal/scene"
	"github.com/ivlev/scene2video/internal/timing"
)

// Director builds timelines for a fixed output size.
type Director struct {
	Width  int
	Height int
}

// NewDirector creates a new Director with the given output size
func NewDirector(width, height int) *Director {
	return &Director{Width: width, Height: height}
}

// Plan lays out every scene back to back starting at frame 0.
// The result depends only on the input, so planning twice gives equal timelines.
func (d *Director) Plan(scenes []scene.Scene) *Timeline {
	durations := make([]int, len(scenes))
	for i, s := range scenes {
		durations[i] = SceneFrames(s)
	}
	windows := Layout(durations)

	tl := &Timeline{
		Version: Version,
		FPS:     timing.FPS,
		Width:   d.Width,
		Height:  d.Height,
		Scenes:  make([]SceneTrack, len(scenes)),
	}
	for i, s := range scenes {
		track := PlanScene(s)
		track.Window = windows[i]
		tl.Scenes[i] = track
		tl.TotalFrames += windows[i].Duration
	}
	return tl
}

// Layout assigns contiguous windows in list order, starting at 0. Durations
// below one frame are raised to one frame.
func Layout(durations []int) []Window {
	windows := make([]Window, len(durations))
	cursor := 0
	for i, d := range durations {
		if d < 1 {
			d = 1
		}
		windows[i] = Window{Start: cursor, Duration: d}
		cursor += d
	}
	return windows
}

// PlanScene lays out the assets and overlays of one scene relative to the
// scene start. The scene window itself is left for the caller.
func PlanScene(s scene.Scene) SceneTrack {
	track := SceneTrack{
		ID:       s.ID,
		Window:   Window{Start: 0, Duration: SceneFrames(s)},
		Assets:   make([]AssetClip, 0, len(s.Assets)),
		Overlays: make([]OverlayClip, 0, len(s.Overlays)),
	}

	order := SortedAssets(s.Assets)
	durations := make([]int, len(order))
	for i, idx := range order {
		durations[i] = AssetFrames(s.Assets[idx])
	}
	for i, w := range Layout(durations) {
		idx := order[i]
		track.Assets = append(track.Assets, AssetClip{ID: s.Assets[idx].ID, Index: idx, Window: w})
	}

	for i, o := range s.Overlays {
		track.Overlays = append(track.Overlays, OverlayClip{ID: o.ID, Index: i, Window: OverlayWindow(o)})
	}

	return track
}

// SceneFrames is the length of a scene window. The composer and the duration
// estimator both go through it, so they always agree.
func SceneFrames(s scene.Scene) int {
	return timing.WindowFrames(s.Duration)
}

// AssetSeconds is the explicit asset duration if set, else the latest effect
// end (asset-relative), else the 3 second default.
func AssetSeconds(a scene.Asset) float64 {
	if a.Duration != nil {
		return *a.Duration
	}
	if len(a.Effects) == 0 {
		return scene.DefaultAssetSeconds
	}
	end := math.Inf(-1)
	for _, fx := range a.Effects {
		end = math.Max(end, fx.End())
	}
	return end
}

// AssetFrames is the length of an asset window, at least one frame.
func AssetFrames(a scene.Asset) int {
	return timing.WindowFrames(AssetSeconds(a))
}

// OverlayWindow places an overlay inside its scene.
func OverlayWindow(o scene.Overlay) Window {
	start := timing.SecondsToFrames(o.StartTime)
	if start < 0 {
		start = 0
	}
	return Window{Start: start, Duration: timing.WindowFrames(o.Duration)}
}

// SortedAssets returns asset indices ordered by Order ascending; input order
// breaks ties.
func SortedAssets(assets []scene.Asset) []int {
	idx := make([]int, len(assets))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(i, j int) bool {
		return assets[idx[i]].Order < assets[idx[j]].Order
	})
	return idx
}

// Describe renders a timeline as stable, human-readable text.
func Describe(tl *Timeline) string {
	var b strings.Builder
	fmt.Fprintf(&b, "timeline v%s %dx%d @ %d fps, %d frames\n", tl.Version, tl.Width, tl.Height, tl.FPS, tl.TotalFrames)
	for _, s := range tl.Scenes {
		fmt.Fprintf(&b, "scene %s [%d,%d)\n", s.ID, s.Window.Start, s.Window.End())
		for _, a := range s.Assets {
			fmt.Fprintf(&b, "  asset %s [%d,%d)\n", a.ID, a.Window.Start, a.Window.End())
		}
		for _, o := range s.Overlays {
			fmt.Fprintf(&b, "  overlay %s [%d,%d)\n", o.ID, o.Window.Start, o.Window.End())
		}
	}
	return b.String()
}
