// Package overlay resolves text overlay animation for one frame.
package overlay

import (
	"fmt"
	"math"

	"github.com/ivlev/scene2video/internal/renderer"
	"github.com/ivlev/scene2video/internal/scene"
	"github.com/ivlev/scene2video/internal/timing"
)

// Resolved is the state of an overlay at one frame. Left and Top are the
// anchor position as fractions of the frame; the overlay is centered on it
// and then moved by OffsetX/OffsetY pixels and scaled by Scale.
type Resolved struct {
	Visible   bool    `json:"visible" yaml:"visible"`
	Progress  float64 `json:"progress" yaml:"progress"`
	Opacity   float64 `json:"opacity" yaml:"opacity"`
	Scale     float64 `json:"scale" yaml:"scale"`
	OffsetX   float64 `json:"offsetX" yaml:"offsetX"`
	OffsetY   float64 `json:"offsetY" yaml:"offsetY"`
	Left      float64 `json:"left" yaml:"left"`
	Top       float64 `json:"top" yaml:"top"`
	Transform string  `json:"transform" yaml:"transform"`
}

// WindowFrames is the length of the overlay's window in frames.
func WindowFrames(o scene.Overlay) int {
	return timing.WindowFrames(o.Duration)
}

// Progress returns the animation cursor at frameOffset, relative to the
// overlay's first frame.
//
// With ExitEffect set the cursor is reflected once it passes
// 1 - transitionDelay/duration; the exit window reuses the entrance delay
// fraction, which is kept for compatibility with existing documents.
func Progress(o scene.Overlay, frameOffset int) float64 {
	fps := float64(timing.FPS)
	adjusted := math.Max(0, float64(frameOffset)-o.TransitionDelay*fps)

	speed := o.AnimationSpeed
	if speed <= 0 {
		speed = 1
	}
	effective := o.Duration * fps / speed

	progress := 1.0
	if effective > 0 {
		progress = math.Min(adjusted/effective, 1)
	}

	if o.ExitEffect && o.Duration > 0 {
		frac := o.TransitionDelay / o.Duration
		threshold := 1 - frac
		if progress > threshold {
			exit := (progress - threshold) / frac
			progress = 1 - exit
		}
	}

	return progress
}

// Resolve computes the overlay state at frameOffset.
func Resolve(o scene.Overlay, frameOffset int) Resolved {
	p := Progress(o, frameOffset)
	r := Resolved{
		Visible:  frameOffset >= 0 && frameOffset < WindowFrames(o),
		Progress: p,
		Opacity:  1,
		Scale:    1,
		Left:     o.PositionX,
		Top:      o.PositionY,
	}

	unit := [2]float64{0, 1}
	switch o.Effect {
	case scene.FadeIn:
		r.Opacity = renderer.Interpolate(p, unit, [2]float64{0, 1}, renderer.ClampBoth)
	case scene.Zoom:
		r.Scale = renderer.Interpolate(p, unit, [2]float64{0.8, 1.1}, renderer.ClampBoth)
	case scene.SlideUp:
		r.OffsetY = renderer.Interpolate(p, unit, [2]float64{50, 0}, renderer.ClampBoth)
	case scene.SlideLeft:
		r.OffsetX = renderer.Interpolate(p, unit, [2]float64{100, 0}, renderer.ClampBoth)
	}

	r.Transform = transformFor(o.Effect, r)
	return r
}

// transformFor renders the CSS transform that centers the overlay on its
// anchor and applies the animated offset or scale.
func transformFor(effect scene.OverlayEffect, r Resolved) string {
	switch effect {
	case scene.Zoom:
		return fmt.Sprintf("translate(-50%%, -50%%) scale(%s)", renderer.FormatNumber(r.Scale))
	case scene.SlideUp:
		return fmt.Sprintf("translate(-50%%, calc(-50%% + %spx))", renderer.FormatNumber(r.OffsetY))
	case scene.SlideLeft:
		return fmt.Sprintf("translate(calc(-50%% + %spx), -50%%)", renderer.FormatNumber(r.OffsetX))
	default:
		return "translate(-50%, -50%)"
	}
}
