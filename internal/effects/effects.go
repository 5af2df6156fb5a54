// Package effects resolves the camera effects of an asset for one frame.
package effects

import (
	"github.com/ivlev/scene2video/internal/renderer"
	"github.com/ivlev/scene2video/internal/scene"
	"github.com/ivlev/scene2video/internal/timing"
)

// Curve describes how one effect kind animates: a single transform function
// moving from From to To over the effect duration.
type Curve struct {
	Op   func(float64) renderer.Op
	From float64
	To   float64
}

// Curves holds the curve of every known effect kind. Translations are in
// pixels at the composition's native resolution.
var Curves = map[scene.EffectKind]Curve{
	scene.ZoomIn:   {Op: renderer.Scale, From: 1, To: 1.2},
	scene.ZoomOut:  {Op: renderer.Scale, From: 1.2, To: 1},
	scene.PanLeft:  {Op: renderer.TranslateX, From: 0, To: -100},
	scene.PanRight: {Op: renderer.TranslateX, From: 0, To: 100},
	scene.TiltUp:   {Op: renderer.TranslateY, From: 0, To: -80},
	scene.TiltDown: {Op: renderer.TranslateY, From: 0, To: 80},
}

// Active reports whether the effect runs at frameOffset, both window ends
// included. frameOffset is relative to the asset's first frame.
func Active(fx scene.Effect, frameOffset int) bool {
	t := timing.FramesToSeconds(frameOffset)
	return t >= fx.StartTime && t <= fx.StartTime+fx.Duration
}

// ResolveOne returns the op contributed by a single effect, or false when the
// effect is inactive or of an unknown kind.
func ResolveOne(fx scene.Effect, frameOffset int) (renderer.Op, bool) {
	curve, ok := Curves[fx.Kind]
	if !ok || !Active(fx, frameOffset) {
		return renderer.Op{}, false
	}

	fps := float64(timing.FPS)
	localFrame := float64(frameOffset) - fx.StartTime*fps
	v := renderer.Interpolate(localFrame,
		[2]float64{0, fx.Duration * fps},
		[2]float64{curve.From, curve.To},
		renderer.ClampRight,
	)
	return curve.Op(v), true
}

// Resolve composes the ops of all active effects in declaration order.
// With nothing active the result is an empty (identity) transform.
func Resolve(fxList []scene.Effect, frameOffset int) renderer.Transform {
	t := renderer.Transform{}
	for _, fx := range fxList {
		if op, ok := ResolveOne(fx, frameOffset); ok {
			t = append(t, op)
		}
	}
	return t
}
