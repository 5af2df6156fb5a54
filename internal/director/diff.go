package director

import "fmt"

// Diff lists how got differs from want. An empty result means both
// timelines place every scene, asset and overlay on the same frames.
func Diff(want, got *Timeline) []string {
	if want == nil || got == nil {
		return []string{"missing timeline"}
	}

	var out []string
	if want.Version != got.Version {
		out = append(out, fmt.Sprintf("version: %s != %s", want.Version, got.Version))
	}
	if want.FPS != got.FPS {
		out = append(out, fmt.Sprintf("fps: %d != %d", want.FPS, got.FPS))
	}
	if want.Width != got.Width || want.Height != got.Height {
		out = append(out, fmt.Sprintf("size: %dx%d != %dx%d", want.Width, want.Height, got.Width, got.Height))
	}
	if want.TotalFrames != got.TotalFrames {
		out = append(out, fmt.Sprintf("total frames: %d != %d", want.TotalFrames, got.TotalFrames))
	}

	for i := 0; i < max(len(want.Scenes), len(got.Scenes)); i++ {
		switch {
		case i >= len(got.Scenes):
			out = append(out, fmt.Sprintf("scene %s: removed", want.Scenes[i].ID))
		case i >= len(want.Scenes):
			out = append(out, fmt.Sprintf("scene %s: added", got.Scenes[i].ID))
		default:
			out = append(out, diffScene(want.Scenes[i], got.Scenes[i])...)
		}
	}
	return out
}

func diffScene(want, got SceneTrack) []string {
	var out []string
	if want.ID != got.ID {
		out = append(out, fmt.Sprintf("scene %s: replaced by %s", want.ID, got.ID))
	}
	if want.Window != got.Window {
		out = append(out, fmt.Sprintf("scene %s: window %s != %s", want.ID, window(want.Window), window(got.Window)))
	}

	out = append(out, diffClips(want.ID, "asset", want.Assets, got.Assets)...)

	wantOverlays := make([]AssetClip, len(want.Overlays))
	for i, c := range want.Overlays {
		wantOverlays[i] = AssetClip(c)
	}
	gotOverlays := make([]AssetClip, len(got.Overlays))
	for i, c := range got.Overlays {
		gotOverlays[i] = AssetClip(c)
	}
	return append(out, diffClips(want.ID, "overlay", wantOverlays, gotOverlays)...)
}

func diffClips(sceneID, kind string, want, got []AssetClip) []string {
	var out []string
	for i := 0; i < max(len(want), len(got)); i++ {
		switch {
		case i >= len(got):
			out = append(out, fmt.Sprintf("scene %s: %s %s removed", sceneID, kind, want[i].ID))
		case i >= len(want):
			out = append(out, fmt.Sprintf("scene %s: %s %s added", sceneID, kind, got[i].ID))
		case want[i] != got[i]:
			out = append(out, fmt.Sprintf("scene %s: %s %s %s != %s %s", sceneID, kind,
				want[i].ID, window(want[i].Window), got[i].ID, window(got[i].Window)))
		}
	}
	return out
}

func window(w Window) string {
	return fmt.Sprintf("[%d,%d)", w.Start, w.End())
}
