// Package timing is the single conversion point between seconds and frames.
package timing

import "math"

// FPS is the frame rate of every composition.
const FPS = 30

// epsilon absorbs binary representation error such as 4.1*30 = 122.99999999999999.
const epsilon = 1e-9

// SecondsToFrames returns floor(s * FPS). Non-finite input yields 0.
func SecondsToFrames(s float64) int {
	if math.IsNaN(s) || math.IsInf(s, 0) {
		return 0
	}
	return int(math.Floor(s*FPS + epsilon))
}

// FramesToSeconds returns f / FPS.
func FramesToSeconds(f int) float64 {
	return float64(f) / FPS
}

// WindowFrames converts a duration in seconds to a window length that is
// never shorter than one frame.
func WindowFrames(s float64) int {
	n := SecondsToFrames(s)
	if n < 1 {
		return 1
	}
	return n
}

// Finite reports whether v can be used as a time value.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
