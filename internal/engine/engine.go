// Package engine composes scene graphs into frame-windowed plans and answers
// "what is visible and audible at frame N".
//
// Compose is a one-time, cacheable step; Resolve is a pure function of
// (plan, frame) and may be called concurrently, repeatedly and in any order.
package engine

import (
	"github.com/ivlev/scene2video/internal/director"
	"github.com/ivlev/scene2video/internal/scene"
	"github.com/ivlev/scene2video/internal/timing"
)

// Plan is a composed scene graph. It is never mutated after Compose returns.
type Plan struct {
	Key      string             `json:"key,omitempty"`
	VoiceURL string             `json:"voiceUrl,omitempty"`
	Scenes   []scene.Scene      `json:"scenes"`
	Timeline *director.Timeline `json:"timeline"`
	Warnings []string           `json:"warnings,omitempty"`
	Issues   []scene.Issue      `json:"-"`
}

// TotalFrames is the number of frames in the composition.
func (p *Plan) TotalFrames() int {
	return p.Timeline.TotalFrames
}

// Metadata is what a composition-registration layer needs to declare a
// composition.
type Metadata struct {
	FPS              int `json:"fps" yaml:"fps"`
	Width            int `json:"width" yaml:"width"`
	Height           int `json:"height" yaml:"height"`
	DurationInFrames int `json:"durationInFrames" yaml:"durationInFrames"`
}

// Composer turns projects into plans for one output size.
type Composer struct {
	director *director.Director
}

// NewComposer creates a Composer for the given output size.
func NewComposer(width, height int) *Composer {
	return &Composer{director: director.NewDirector(width, height)}
}

// Compose normalizes the project and lays it out. It never fails: malformed
// records are skipped and reported in Plan.Issues.
func (c *Composer) Compose(p scene.Project) *Plan {
	scenes, issues := scene.Normalize(p)
	plan := &Plan{
		VoiceURL: p.VoiceURL,
		Scenes:   scenes,
		Timeline: c.director.Plan(scenes),
		Issues:   issues,
	}
	for _, is := range issues {
		plan.Warnings = append(plan.Warnings, is.Error())
	}
	return plan
}

// Metadata reports the composition size and length for p.
func (c *Composer) Metadata(p scene.Project) Metadata {
	return Metadata{
		FPS:              timing.FPS,
		Width:            c.director.Width,
		Height:           c.director.Height,
		DurationInFrames: EstimateTotalFrames(p),
	}
}

// EstimateTotalFrames sums the scene window lengths without composing the
// full plan. It uses the same scene duration rule as Compose, so
// EstimateTotalFrames(p) == Compose(p).TotalFrames() for every project.
func EstimateTotalFrames(p scene.Project) int {
	total := 0
	for i, raw := range p.Scenes {
		s, _ := scene.NormalizeScene(scene.RawScene{ID: raw.ID, Duration: raw.Duration}, i)
		total += director.SceneFrames(s)
	}
	return total
}
