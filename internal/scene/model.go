// Package scene holds the canonical scene graph model and the normalization
// step that builds it from loosely shaped input records.
package scene

import "strings"

// Defaults applied during normalization and planning (seconds).
const (
	DefaultSceneSeconds   = 5.0
	DefaultAssetSeconds   = 3.0
	DefaultOverlaySeconds = 2.0
)

// Overlay style defaults.
const (
	DefaultOverlayColor      = "#FFFFFF"
	DefaultOverlayFontSize   = 36.0
	DefaultOverlayBackground = "transparent"
	DefaultOverlayText       = "Text Overlay"
	DefaultPosition          = 0.5
)

// MediaKind is the kind of media an asset points to.
type MediaKind string

const (
	Image MediaKind = "IMAGE"
	Video MediaKind = "VIDEO"
)

// ParseMediaKind maps "IMAGE" (any case) to Image and everything else to Video.
func ParseMediaKind(s string) MediaKind {
	if strings.EqualFold(strings.TrimSpace(s), string(Image)) {
		return Image
	}
	return Video
}

// EffectKind is a camera effect applied to an asset.
type EffectKind string

const (
	ZoomIn        EffectKind = "zoomIn"
	ZoomOut       EffectKind = "zoomOut"
	PanLeft       EffectKind = "panLeft"
	PanRight      EffectKind = "panRight"
	TiltUp        EffectKind = "tiltUp"
	TiltDown      EffectKind = "tiltDown"
	EffectUnknown EffectKind = ""
)

var effectKinds = map[string]EffectKind{
	"zoomin":   ZoomIn,
	"zoomout":  ZoomOut,
	"panleft":  PanLeft,
	"panright": PanRight,
	"tiltup":   TiltUp,
	"tiltdown": TiltDown,
}

// ParseEffectKind accepts zoomIn, ZOOM_IN, zoom-in and similar spellings.
func ParseEffectKind(s string) EffectKind {
	return effectKinds[foldName(s)]
}

// OverlayEffect is the entrance animation of a text overlay.
type OverlayEffect string

const (
	FadeIn    OverlayEffect = "fadeIn"
	Zoom      OverlayEffect = "zoom"
	SlideUp   OverlayEffect = "slideUp"
	SlideLeft OverlayEffect = "slideLeft"
	NoEffect  OverlayEffect = "none"
)

var overlayEffects = map[string]OverlayEffect{
	"fadein":    FadeIn,
	"zoom":      Zoom,
	"slideup":   SlideUp,
	"slideleft": SlideLeft,
}

// ParseOverlayEffect returns NoEffect for anything unrecognized.
func ParseOverlayEffect(s string) OverlayEffect {
	if e, ok := overlayEffects[foldName(s)]; ok {
		return e
	}
	return NoEffect
}

func foldName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("_", "", "-", "", " ", "").Replace(s)
}

// Scene is a normalized scene. Duration is in seconds with the default applied.
type Scene struct {
	ID          string    `json:"id" yaml:"id"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Narration   string    `json:"narration,omitempty" yaml:"narration,omitempty"`
	StartTime   *float64  `json:"startTime,omitempty" yaml:"startTime,omitempty"`
	EndTime     *float64  `json:"endTime,omitempty" yaml:"endTime,omitempty"`
	Duration    float64   `json:"duration" yaml:"duration"`
	Assets      []Asset   `json:"assets" yaml:"assets"`
	Overlays    []Overlay `json:"overlays" yaml:"overlays"`
}

// Asset is a normalized asset. Effect times are relative to the asset's own
// window origin.
type Asset struct {
	ID        string    `json:"id" yaml:"id"`
	Name      string    `json:"name,omitempty" yaml:"name,omitempty"`
	Kind      MediaKind `json:"kind" yaml:"kind"`
	SourceURL string    `json:"sourceUrl,omitempty" yaml:"sourceUrl,omitempty"`
	StoredURL string    `json:"storedUrl,omitempty" yaml:"storedUrl,omitempty"`
	Order     float64   `json:"order" yaml:"order"`
	Duration  *float64  `json:"duration,omitempty" yaml:"duration,omitempty"`
	Effects   []Effect  `json:"effects" yaml:"effects"`
}

// URL prefers the stored copy over the original source.
func (a Asset) URL() string {
	if a.StoredURL != "" {
		return a.StoredURL
	}
	return a.SourceURL
}

// Effect is a normalized camera effect. Name keeps the spelling from the input.
type Effect struct {
	Kind      EffectKind `json:"kind" yaml:"kind"`
	Name      string     `json:"name,omitempty" yaml:"name,omitempty"`
	StartTime float64    `json:"startTime" yaml:"startTime"`
	Duration  float64    `json:"duration" yaml:"duration"`
}

// End returns StartTime + Duration in seconds.
func (e Effect) End() float64 {
	return e.StartTime + e.Duration
}

// Overlay is a normalized text overlay. StartTime is scene-relative.
type Overlay struct {
	ID              string        `json:"id" yaml:"id"`
	Text            string        `json:"text" yaml:"text"`
	StartTime       float64       `json:"startTime" yaml:"startTime"`
	Duration        float64       `json:"duration" yaml:"duration"`
	Effect          OverlayEffect `json:"effect" yaml:"effect"`
	TransitionDelay float64       `json:"transitionDelay" yaml:"transitionDelay"`
	AnimationSpeed  float64       `json:"animationSpeed" yaml:"animationSpeed"`
	ExitEffect      bool          `json:"exitEffect" yaml:"exitEffect"`
	PositionX       float64       `json:"positionX" yaml:"positionX"`
	PositionY       float64       `json:"positionY" yaml:"positionY"`
	Color           string        `json:"color" yaml:"color"`
	FontSize        float64       `json:"fontSize" yaml:"fontSize"`
	BackgroundColor string        `json:"backgroundColor" yaml:"backgroundColor"`
}
