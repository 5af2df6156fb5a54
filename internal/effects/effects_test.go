package effects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scene2video/internal/renderer"
	"github.com/ivlev/scene2video/internal/scene"
)

func TestActiveBoundaries(t *testing.T) {
	fx := scene.Effect{Kind: scene.ZoomIn, StartTime: 0, Duration: 2}

	assert.True(t, Active(fx, 0))
	assert.True(t, Active(fx, 30))
	assert.True(t, Active(fx, 60), "end frame is inclusive")
	assert.False(t, Active(fx, 61))

	late := scene.Effect{Kind: scene.PanLeft, StartTime: 1, Duration: 1}
	assert.False(t, Active(late, 29))
	assert.True(t, Active(late, 30))
	assert.True(t, Active(late, 60))
	assert.False(t, Active(late, 61))
}

func TestCurves(t *testing.T) {
	tests := []struct {
		kind  scene.EffectKind
		frame int
		name  string
		value float64
	}{
		{scene.ZoomIn, 0, "scale", 1},
		{scene.ZoomIn, 30, "scale", 1.1},
		{scene.ZoomIn, 60, "scale", 1.2},
		{scene.ZoomOut, 0, "scale", 1.2},
		{scene.ZoomOut, 60, "scale", 1},
		{scene.PanLeft, 30, "translateX", -50},
		{scene.PanRight, 60, "translateX", 100},
		{scene.TiltUp, 60, "translateY", -80},
		{scene.TiltDown, 15, "translateY", 20},
	}

	for _, tt := range tests {
		fx := scene.Effect{Kind: tt.kind, StartTime: 0, Duration: 2}
		op, ok := ResolveOne(fx, tt.frame)
		require.True(t, ok, "%s@%d", tt.kind, tt.frame)
		assert.Equal(t, tt.name, op.Name)
		assert.InDelta(t, tt.value, op.Value, 1e-9, "%s@%d", tt.kind, tt.frame)
	}
}

func TestInterpolationClampsPastEnd(t *testing.T) {
	// The window test rejects frames past the end, so evaluate the curve at a
	// point that is active but beyond duration*fps through a longer window.
	fx := scene.Effect{Kind: scene.ZoomIn, StartTime: 0, Duration: 2}
	curve := Curves[fx.Kind]
	v := renderer.Interpolate(60+10, [2]float64{0, 60}, [2]float64{curve.From, curve.To}, renderer.ClampRight)
	assert.Equal(t, 1.2, v)

	op, ok := ResolveOne(fx, 60)
	require.True(t, ok)
	assert.Equal(t, 1.2, op.Value)
}

func TestResolveComposesInDeclarationOrder(t *testing.T) {
	fxList := []scene.Effect{
		{Kind: scene.ZoomIn, StartTime: 0, Duration: 2},
		{Kind: scene.PanLeft, StartTime: 1, Duration: 1},
		{Kind: scene.TiltDown, StartTime: 3, Duration: 1},
	}

	at0 := Resolve(fxList, 0)
	assert.Equal(t, "scale(1)", at0.String())

	at45 := Resolve(fxList, 45)
	require.Len(t, at45, 2)
	assert.Equal(t, "scale", at45[0].Name)
	assert.Equal(t, "translateX", at45[1].Name)
	assert.Equal(t, "scale(1.15) translateX(-50px)", at45.String())

	at70 := Resolve(fxList, 70)
	assert.Empty(t, at70)
	assert.Equal(t, "", at70.String())
	assert.Equal(t, renderer.Identity, at70.Matrix())
}

func TestUnknownKindContributesNothing(t *testing.T) {
	fxList := []scene.Effect{{Kind: scene.EffectUnknown, Name: "spin", StartTime: 0, Duration: 2}}
	assert.Empty(t, Resolve(fxList, 10))
}

func TestResolveIsDeterministic(t *testing.T) {
	fxList := []scene.Effect{
		{Kind: scene.ZoomOut, StartTime: 0.5, Duration: 1.5},
		{Kind: scene.PanRight, StartTime: 0, Duration: 3},
	}
	for frame := 0; frame < 120; frame++ {
		assert.Equal(t, Resolve(fxList, frame), Resolve(fxList, frame))
	}
}
