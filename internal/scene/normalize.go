package scene

import (
	"fmt"
	"math"

	"golang.org/x/text/unicode/norm"

	"github.com/ivlev/scene2video/internal/timing"
)

// Normalize converts every raw scene of the project into its canonical form.
// Scenes are never dropped, so the number of scenes (and therefore the total
// duration) always matches the input. Skipped or repaired records are
// reported as issues.
func Normalize(p Project) ([]Scene, []Issue) {
	scenes := make([]Scene, 0, len(p.Scenes))
	var issues []Issue
	for i, raw := range p.Scenes {
		s, sceneIssues := NormalizeScene(raw, i)
		scenes = append(scenes, s)
		issues = append(issues, sceneIssues...)
	}
	return scenes, issues
}

// NormalizeScene builds a canonical Scene. index is the scene position and is
// used to name scenes that come without an id.
func NormalizeScene(raw RawScene, index int) (Scene, []Issue) {
	id := nfc(raw.ID)
	if id == "" {
		id = fmt.Sprintf("scene-%d", index+1)
	}

	s := Scene{
		ID:          id,
		Description: raw.Description,
		Narration:   raw.Narration,
		StartTime:   finite(raw.StartTime),
		EndTime:     finite(raw.EndTime),
		Duration:    DefaultSceneSeconds,
	}

	var issues []Issue
	if raw.Duration != nil && *raw.Duration != 0 {
		d := *raw.Duration
		switch {
		case !timing.Finite(d):
			issues = append(issues, Issue{Scene: id, Record: "scene", Index: index, ID: id,
				Err: fmt.Errorf("%w: duration %v clamped to one frame", ErrInvalidTimeWindow, d)})
			s.Duration = timing.FramesToSeconds(1)
		case d < 0:
			issues = append(issues, Issue{Scene: id, Record: "scene", Index: index, ID: id,
				Err: fmt.Errorf("%w: duration %v clamped to one frame", ErrInvalidTimeWindow, d)})
			s.Duration = d
		default:
			s.Duration = d
		}
	}

	assets, assetIssues := NormalizeAssets(id, SceneAssets(raw))
	s.Assets = assets
	issues = append(issues, assetIssues...)

	overlays, overlayIssues := NormalizeOverlays(id, raw.TextOverlays)
	s.Overlays = overlays
	issues = append(issues, overlayIssues...)

	return s, issues
}

// SceneAssets returns the asset collection of a raw scene: "assets" when the
// key is present (even if empty), else "sceneAssets".
func SceneAssets(raw RawScene) []RawAsset {
	if raw.Assets != nil {
		return raw.Assets
	}
	return raw.SceneAssets
}

// NormalizeAssets maps raw asset records into canonical assets, keeping input
// order. Effect start times are rebased from scene-relative to asset-relative:
// start = max(0, effect.startTime - asset.startTime).
func NormalizeAssets(sceneID string, raws []RawAsset) ([]Asset, []Issue) {
	assets := make([]Asset, 0, len(raws))
	var issues []Issue

	for i, a := range raws {
		var m RawMedia
		if a.Asset != nil {
			m = *a.Asset
		}

		id := nfc(pick(m.ID, a.ID))
		if id == "" {
			issues = append(issues, Issue{Scene: sceneID, Record: "asset", Index: i,
				Err: fmt.Errorf("%w: missing id", ErrMalformedAsset)})
			continue
		}

		asset := Asset{
			ID:        id,
			Name:      nfc(pick(m.Name, a.Name)),
			Kind:      ParseMediaKind(pick(m.Type, a.Type)),
			SourceURL: pick(m.OriginalURL, a.OriginalURL),
			StoredURL: pick(m.StoredURL, a.StoredURL),
			Effects:   make([]Effect, 0, len(a.Effects)),
		}
		if a.Order != nil && timing.Finite(*a.Order) {
			asset.Order = *a.Order
		}
		if a.Duration != nil {
			d := *a.Duration
			if timing.Finite(d) {
				asset.Duration = &d
				if d <= 0 {
					issues = append(issues, Issue{Scene: sceneID, Record: "asset", Index: i, ID: id,
						Err: fmt.Errorf("%w: duration %v clamped to one frame", ErrInvalidTimeWindow, d)})
				}
			} else {
				issues = append(issues, Issue{Scene: sceneID, Record: "asset", Index: i, ID: id,
					Err: fmt.Errorf("%w: duration %v ignored", ErrInvalidTimeWindow, d)})
			}
		}

		assetStart := value(a.StartTime, 0)
		for _, fx := range a.Effects {
			name := pick(fx.FX, pick(fx.Kind, fx.Type))
			asset.Effects = append(asset.Effects, Effect{
				Kind:      ParseEffectKind(name),
				Name:      name,
				StartTime: math.Max(0, value(fx.StartTime, 0)-assetStart),
				Duration:  value(fx.Duration, 0),
			})
		}

		assets = append(assets, asset)
	}

	return assets, issues
}

// NormalizeOverlays maps raw overlays into canonical overlays with defaults
// applied. Overlays without an id get one derived from their position.
func NormalizeOverlays(sceneID string, raws []RawOverlay) ([]Overlay, []Issue) {
	overlays := make([]Overlay, 0, len(raws))
	var issues []Issue

	for i, o := range raws {
		id := nfc(o.ID)
		if id == "" {
			id = fmt.Sprintf("%s-overlay-%d", sceneID, i+1)
		}

		start := 0.0
		if o.StartTime != nil {
			start = *o.StartTime
			if !timing.Finite(start) {
				issues = append(issues, Issue{Scene: sceneID, Record: "overlay", Index: i, ID: id,
					Err: fmt.Errorf("%w: start time %v", ErrMalformedOverlay, start)})
				continue
			}
			if start < 0 {
				start = 0
			}
		}

		// A zero duration takes the default rather than an empty window.
		// Zero positions, below, are kept as given.
		duration := DefaultOverlaySeconds
		if o.Duration != nil && *o.Duration != 0 {
			d := *o.Duration
			if !timing.Finite(d) || d < 0 {
				issues = append(issues, Issue{Scene: sceneID, Record: "overlay", Index: i, ID: id,
					Err: fmt.Errorf("%w: duration %v clamped to one frame", ErrInvalidTimeWindow, d)})
				d = timing.FramesToSeconds(1)
			}
			duration = d
		}

		speed := value(o.AnimationSpeed, 1)
		if speed <= 0 {
			speed = 1
		}
		delay := value(o.TransitionDelay, 0)
		if delay < 0 {
			delay = 0
		}

		text := o.Text
		if text == "" && o.SceneEntity != nil && o.SceneEntity.Entity != nil {
			text = o.SceneEntity.Entity.Name
		}
		if text == "" {
			text = DefaultOverlayText
		}

		overlays = append(overlays, Overlay{
			ID:              id,
			Text:            nfc(text),
			StartTime:       start,
			Duration:        duration,
			Effect:          ParseOverlayEffect(o.Effect),
			TransitionDelay: delay,
			AnimationSpeed:  speed,
			ExitEffect:      o.ExitEffect,
			PositionX:       value(o.PositionX, DefaultPosition),
			PositionY:       value(o.PositionY, DefaultPosition),
			Color:           pick(o.Color, DefaultOverlayColor),
			FontSize:        positive(o.FontSize, DefaultOverlayFontSize),
			BackgroundColor: pick(o.BackgroundColor, DefaultOverlayBackground),
		})
	}

	return overlays, issues
}

// pick returns primary unless it is empty.
func pick(primary, fallback string) string {
	if primary != "" {
		return primary
	}
	return fallback
}

// value dereferences p, falling back to def for nil or non-finite values.
func value(p *float64, def float64) float64 {
	if p == nil || !timing.Finite(*p) {
		return def
	}
	return *p
}

// finite drops a non-finite value so it cannot leak into encoded plans.
func finite(p *float64) *float64 {
	if p == nil || !timing.Finite(*p) {
		return nil
	}
	return p
}

func positive(p *float64, def float64) float64 {
	v := value(p, def)
	if v <= 0 {
		return def
	}
	return v
}

func nfc(s string) string {
	return norm.NFC.String(s)
}
