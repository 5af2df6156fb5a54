package director

// Version of the timeline document format.
const Version = "1.0"

// Timeline is the frame-windowed layout of a whole composition.
type Timeline struct {
	Version     string       `yaml:"version" json:"version"`
	FPS         int          `yaml:"fps" json:"fps"`
	Width       int          `yaml:"width" json:"width"`
	Height      int          `yaml:"height" json:"height"`
	TotalFrames int          `yaml:"totalFrames" json:"totalFrames"`
	Scenes      []SceneTrack `yaml:"scenes" json:"scenes"`
}

// SceneTrack is one scene's window (global frames) and the windows of its
// assets and overlays (frames relative to the scene start).
type SceneTrack struct {
	ID       string        `yaml:"id" json:"id"`
	Window   Window        `yaml:"window" json:"window"`
	Assets   []AssetClip   `yaml:"assets" json:"assets"`
	Overlays []OverlayClip `yaml:"overlays" json:"overlays"`
}

// AssetClip places an asset. Index points into the scene's asset list.
type AssetClip struct {
	ID     string `yaml:"id" json:"id"`
	Index  int    `yaml:"index" json:"index"`
	Window Window `yaml:"window" json:"window"`
}

// OverlayClip places an overlay. Index points into the scene's overlay list.
type OverlayClip struct {
	ID     string `yaml:"id" json:"id"`
	Index  int    `yaml:"index" json:"index"`
	Window Window `yaml:"window" json:"window"`
}

// Window is the half-open frame interval [Start, Start+Duration).
type Window struct {
	Start    int `yaml:"start" json:"start"`
	Duration int `yaml:"duration" json:"duration"`
}

// End returns the first frame after the window.
func (w Window) End() int {
	return w.Start + w.Duration
}

// Contains reports whether frame falls inside the window.
func (w Window) Contains(frame int) bool {
	return frame >= w.Start && frame < w.End()
}
