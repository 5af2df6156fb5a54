package engine

import (
	"context"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivlev/scene2video/internal/scene"
)

func singleSceneProject() scene.Project {
	return scene.Project{
		Scenes: []scene.RawScene{
			{
				ID: "s1",
				Assets: []scene.RawAsset{
					{ID: "a1", Type: "IMAGE", OriginalURL: "https://cdn/a1.png"},
				},
				TextOverlays: []scene.RawOverlay{
					{ID: "o1", Text: "Hello", StartTime: scene.Float(1), Duration: scene.Float(1), Effect: "fadeIn"},
				},
			},
		},
	}
}

func mixedProject() scene.Project {
	return scene.Project{
		VoiceURL: "https://cdn/voice.mp3",
		Scenes: []scene.RawScene{
			{
				ID:       "intro",
				Duration: scene.Float(4),
				Assets: []scene.RawAsset{
					{
						ID:   "a1",
						Type: "VIDEO",
						Effects: []scene.RawEffect{
							{FX: "zoomIn", StartTime: scene.Float(0), Duration: scene.Float(2)},
						},
					},
					{ID: "a2", Type: "IMAGE", Order: scene.Float(2)},
				},
				TextOverlays: []scene.RawOverlay{
					{Text: "Title", StartTime: scene.Float(0.5), Effect: "slideUp"},
				},
			},
			{
				ID:       "body",
				Duration: scene.Float(2.5),
				SceneAssets: []scene.RawAsset{
					{
						Asset:     &scene.RawMedia{ID: "b1", Type: "IMAGE", StoredURL: "https://store/b1.png"},
						StartTime: scene.Float(3),
						Effects: []scene.RawEffect{
							{Kind: "PAN_RIGHT", StartTime: scene.Float(3), Duration: scene.Float(2)},
						},
					},
				},
			},
			{ID: "outro", Duration: scene.Float(-1)},
		},
	}
}

func TestResolveEndToEnd(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(singleSceneProject())
	require.Empty(t, plan.Issues)
	assert.Equal(t, 150, plan.TotalFrames())

	f := Resolve(plan, 45)
	assert.Equal(t, "s1", f.SceneID)
	assert.Equal(t, 45, f.SceneFrame)
	require.Len(t, f.Layers, 2)

	asset := f.Layers[0]
	assert.Equal(t, AssetLayer, asset.Kind)
	assert.Equal(t, "a1", asset.ID)
	assert.Equal(t, "", asset.Transform)
	assert.Equal(t, scene.Image, asset.Media)
	assert.Equal(t, "https://cdn/a1.png", asset.URL)

	ov := f.Layers[1]
	assert.Equal(t, OverlayLayer, ov.Kind)
	assert.Equal(t, 15, ov.FrameOffset)
	assert.InDelta(t, 0.5, ov.Opacity, 1e-9)
	require.NotNil(t, ov.Overlay)
	assert.Equal(t, "Hello", ov.Overlay.Text)
	assert.Equal(t, "#FFFFFF", ov.Overlay.Style.Color)
	assert.Equal(t, 36.0, ov.Overlay.Style.FontSize)
	assert.Equal(t, "4px 12px", ov.Overlay.Style.Padding)
}

func TestResolveAssetWindowEndsBeforeScene(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(singleSceneProject())

	// a1 has no effects so it lasts 3s; the scene lasts 5s.
	f := Resolve(plan, 100)
	assert.Equal(t, "s1", f.SceneID)
	assert.Empty(t, f.Layers)
}

func TestResolveOutsideComposition(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(singleSceneProject())

	for _, frame := range []int{-1, plan.TotalFrames(), plan.TotalFrames() + 500} {
		f := Resolve(plan, frame)
		assert.NotNil(t, f.Layers, "frame %d", frame)
		assert.Empty(t, f.Layers, "frame %d", frame)
		assert.Empty(t, f.SceneID)
		assert.Nil(t, f.Audio)
	}
}

func TestResolveEffectsAndOrdering(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(mixedProject())
	require.Len(t, plan.Scenes, 3)

	// intro: a1 [0,60) zoomIn, a2 [60,150) is cut by the 120 frame scene.
	f := Resolve(plan, 30)
	require.Len(t, f.Layers, 2)
	assert.Equal(t, "scale(1.1)", f.Layers[0].Transform)
	assert.Equal(t, OverlayLayer, f.Layers[1].Kind)
	assert.Equal(t, "intro-overlay-1", f.Layers[1].ID)

	f = Resolve(plan, 90)
	require.NotEmpty(t, f.Layers)
	assert.Equal(t, "a2", f.Layers[0].ID)
	assert.Equal(t, 30, f.Layers[0].FrameOffset)

	// body starts at 120; b1 effect is rebased to start 0.
	f = Resolve(plan, 120+30)
	assert.Equal(t, "body", f.SceneID)
	require.Len(t, f.Layers, 1)
	assert.Equal(t, "b1", f.Layers[0].ID)
	assert.Equal(t, "translateX(50px)", f.Layers[0].Transform)
	assert.Equal(t, "https://store/b1.png", f.Layers[0].URL)

	// outro has a negative duration and gets a single frame.
	last := plan.TotalFrames() - 1
	assert.Equal(t, "outro", Resolve(plan, last).SceneID)
	assert.NotEmpty(t, plan.Warnings)
}

func TestResolveAudioCue(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(mixedProject())

	f := Resolve(plan, 45)
	require.NotNil(t, f.Audio)
	assert.Equal(t, "https://cdn/voice.mp3", f.Audio.URL)
	assert.Equal(t, 0, f.Audio.StartFrom)
	assert.InDelta(t, 1.5, f.Audio.PlayheadSeconds, 1e-12)
	assert.Equal(t, plan.TotalFrames(), f.Audio.DurationFrames)

	noVoice := NewComposer(1280, 720).Compose(singleSceneProject())
	assert.Nil(t, Resolve(noVoice, 45).Audio)
}

func TestEstimateMatchesCompose(t *testing.T) {
	projects := map[string]scene.Project{
		"empty":  {},
		"single": singleSceneProject(),
		"mixed":  mixedProject(),
		"odd durations": {Scenes: []scene.RawScene{
			{Duration: scene.Float(0)},
			{Duration: scene.Float(0.01)},
			{Duration: scene.Float(4.1)},
			{Duration: scene.Float(1.0 / 3)},
		}},
		"non-finite durations": {Scenes: []scene.RawScene{
			{Duration: scene.Float(math.Inf(1))},
			{Duration: scene.Float(math.NaN())},
			{Duration: scene.Float(math.Inf(-1))},
		}},
	}

	c := NewComposer(1280, 720)
	for name, p := range projects {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, c.Compose(p).TotalFrames(), EstimateTotalFrames(p))
		})
	}
}

func TestMetadata(t *testing.T) {
	md := NewComposer(1280, 720).Metadata(mixedProject())
	assert.Equal(t, Metadata{FPS: 30, Width: 1280, Height: 720, DurationInFrames: 120 + 75 + 1}, md)
}

func TestEmptyProject(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(scene.Project{})
	assert.Equal(t, 0, plan.TotalFrames())
	assert.Empty(t, plan.Timeline.Scenes)
	assert.Empty(t, Resolve(plan, 0).Layers)
}

func TestComposeIsRepeatable(t *testing.T) {
	c := NewComposer(1280, 720)
	a := c.Compose(mixedProject())
	b := c.Compose(mixedProject())
	assert.Equal(t, a.Timeline, b.Timeline)
	for frame := 0; frame < a.TotalFrames(); frame += 7 {
		assert.Equal(t, Resolve(a, frame), Resolve(b, frame))
	}
}

func TestSampleMatchesSequentialResolve(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(mixedProject())

	frames, err := Sample(context.Background(), plan, 0, plan.TotalFrames(), 8)
	require.NoError(t, err)
	require.Len(t, frames, plan.TotalFrames())
	for i, f := range frames {
		assert.Equal(t, i, f.Frame)
		assert.Equal(t, Resolve(plan, i), f)
	}
}

func TestSampleRangeAndCancel(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(singleSceneProject())

	frames, err := Sample(context.Background(), plan, 10, 10, 4)
	require.NoError(t, err)
	assert.Empty(t, frames)

	_, err = Sample(context.Background(), plan, 10, 5, 4)
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Sample(ctx, plan, 0, 100, 2)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSampleEveryResolvesOnlyStepFrames(t *testing.T) {
	plan := NewComposer(1280, 720).Compose(singleSceneProject())

	frames, err := SampleEvery(context.Background(), plan, 0, 150, 50, 4)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	for i, f := range frames {
		assert.Equal(t, i*50, f.Frame)
		assert.Equal(t, Resolve(plan, i*50), f)
	}

	frames, err = SampleEvery(context.Background(), plan, 10, 21, 5, 2)
	require.NoError(t, err)
	require.Len(t, frames, 3)
	assert.Equal(t, 20, frames[2].Frame)

	_, err = SampleEvery(context.Background(), plan, 0, 10, 0, 2)
	assert.Error(t, err)
}

func TestContentKey(t *testing.T) {
	k1, err := ContentKey(mixedProject())
	require.NoError(t, err)
	k2, err := ContentKey(mixedProject())
	require.NoError(t, err)
	assert.Equal(t, k1, k2)
	assert.Len(t, k1, 64)

	other := mixedProject()
	other.Scenes[0].Duration = scene.Float(5)
	k3, err := ContentKey(other)
	require.NoError(t, err)
	assert.NotEqual(t, k1, k3)

	composed := scene.Project{Scenes: []scene.RawScene{{ID: "caf\u00e9"}}}
	decomposed := scene.Project{Scenes: []scene.RawScene{{ID: "cafe\u0301"}}}
	kc, err := ContentKey(composed)
	require.NoError(t, err)
	kd, err := ContentKey(decomposed)
	require.NoError(t, err)
	assert.Equal(t, kc, kd)
}

func TestContentKeySeparatesEmptyAndAbsentAssets(t *testing.T) {
	legacy := []scene.RawAsset{{ID: "x", Type: "IMAGE"}}
	empty := scene.Project{Scenes: []scene.RawScene{{ID: "s", Assets: []scene.RawAsset{}, SceneAssets: legacy}}}
	absent := scene.Project{Scenes: []scene.RawScene{{ID: "s", SceneAssets: legacy}}}

	ke, err := ContentKey(empty)
	require.NoError(t, err)
	ka, err := ContentKey(absent)
	require.NoError(t, err)
	assert.NotEqual(t, ke, ka)

	cache := NewCache(NewComposer(1280, 720))
	pe, err := cache.Get(empty)
	require.NoError(t, err)
	pa, err := cache.Get(absent)
	require.NoError(t, err)
	assert.Empty(t, pe.Scenes[0].Assets)
	require.Len(t, pa.Scenes[0].Assets, 1)
	assert.Equal(t, "x", pa.Scenes[0].Assets[0].ID)
	assert.Equal(t, 2, cache.Len())
}

func TestContentKeyNonFiniteNumbers(t *testing.T) {
	inf := scene.Project{Scenes: []scene.RawScene{{ID: "s", Duration: scene.Float(math.Inf(1))}}}
	negInf := scene.Project{Scenes: []scene.RawScene{{ID: "s", Duration: scene.Float(math.Inf(-1))}}}
	nan := scene.Project{Scenes: []scene.RawScene{{ID: "s", Duration: scene.Float(math.NaN())}}}

	keys := map[string]bool{}
	for _, p := range []scene.Project{inf, negInf, nan} {
		k, err := ContentKey(p)
		require.NoError(t, err)
		again, err := ContentKey(p)
		require.NoError(t, err)
		assert.Equal(t, k, again)
		keys[k] = true
	}
	assert.Len(t, keys, 3)

	plan, err := NewCache(NewComposer(1280, 720)).Get(inf)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Key)
	assert.Equal(t, 1, plan.TotalFrames())
}

func TestNonFiniteSceneDurationIsOneFrame(t *testing.T) {
	for _, d := range []float64{math.Inf(1), math.Inf(-1), math.NaN()} {
		p := scene.Project{Scenes: []scene.RawScene{{ID: "s", Duration: scene.Float(d)}}}
		plan := NewComposer(1280, 720).Compose(p)
		assert.Equal(t, 1, plan.TotalFrames(), "duration %v", d)
		assert.Equal(t, 1, EstimateTotalFrames(p), "duration %v", d)
		require.Len(t, plan.Issues, 1)
		assert.ErrorIs(t, plan.Issues[0], scene.ErrInvalidTimeWindow)
	}
}

func TestCacheComposesOnce(t *testing.T) {
	cache := NewCache(NewComposer(1280, 720))

	const n = 16
	plans := make([]*Plan, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			p, err := cache.Get(mixedProject())
			assert.NoError(t, err)
			plans[i] = p
		}(i)
	}
	wg.Wait()

	require.NotNil(t, plans[0])
	assert.NotEmpty(t, plans[0].Key)
	for _, p := range plans[1:] {
		assert.Same(t, plans[0], p)
	}
	assert.Equal(t, 1, cache.Len())

	_, err := cache.Get(singleSceneProject())
	require.NoError(t, err)
	assert.Equal(t, 2, cache.Len())
}

func TestCacheAdd(t *testing.T) {
	cache := NewCache(NewComposer(1280, 720))
	cache.Add(&Plan{})
	assert.Equal(t, 0, cache.Len())

	key, err := ContentKey(singleSceneProject())
	require.NoError(t, err)
	stored := NewComposer(1280, 720).Compose(singleSceneProject())
	stored.Key = key
	cache.Add(stored)

	got, err := cache.Get(singleSceneProject())
	require.NoError(t, err)
	assert.Same(t, stored, got)
}
