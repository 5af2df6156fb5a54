package renderer

// Extrapolate selects what happens outside the input range.
type Extrapolate int

const (
	// Extend continues the line beyond the range.
	Extend Extrapolate = iota
	// Clamp holds the boundary output value.
	Clamp
)

// Options configures each side of an interpolation independently.
type Options struct {
	Left  Extrapolate
	Right Extrapolate
}

// ClampRight extends to the left and clamps to the right.
var ClampRight = Options{Left: Extend, Right: Clamp}

// ClampBoth clamps on both sides.
var ClampBoth = Options{Left: Clamp, Right: Clamp}

// Interpolate maps x linearly from the input range onto the output range.
// A degenerate input range yields out[1] once x reaches it and out[0] before.
func Interpolate(x float64, in, out [2]float64, opt Options) float64 {
	if in[1] <= in[0] {
		if x >= in[1] {
			return out[1]
		}
		return out[0]
	}

	if x < in[0] && opt.Left == Clamp {
		return out[0]
	}
	if x > in[1] && opt.Right == Clamp {
		return out[1]
	}

	t := (x - in[0]) / (in[1] - in[0])
	return lerp(out[0], out[1], t)
}

// lerp performs linear interpolation between a and b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
