package renderer

import (
	"strconv"
	"strings"
)

// Op is a single transform function such as scale(1.1) or translateX(-40px).
type Op struct {
	Name  string  `json:"name" yaml:"name"`
	Value float64 `json:"value" yaml:"value"`
	Unit  string  `json:"unit,omitempty" yaml:"unit,omitempty"`
}

func (o Op) String() string {
	return o.Name + "(" + FormatNumber(o.Value) + o.Unit + ")"
}

// Scale returns a uniform scale op.
func Scale(v float64) Op { return Op{Name: "scale", Value: v} }

// TranslateX returns a horizontal translation in pixels.
func TranslateX(px float64) Op { return Op{Name: "translateX", Value: px, Unit: "px"} }

// TranslateY returns a vertical translation in pixels.
func TranslateY(px float64) Op { return Op{Name: "translateY", Value: px, Unit: "px"} }

// Transform is an ordered transform chain. Later ops apply after earlier ones.
type Transform []Op

// String renders the chain in CSS transform syntax. An empty chain is "".
func (t Transform) String() string {
	parts := make([]string, len(t))
	for i, op := range t {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// Affine is a 2D transform without rotation or skew:
// x' = Sx*x + Tx, y' = Sy*y + Ty.
type Affine struct {
	Sx, Sy float64
	Tx, Ty float64
}

// Identity is the transform that changes nothing.
var Identity = Affine{Sx: 1, Sy: 1}

// Then composes a with b, b being the op listed after a in a chain.
func (a Affine) Then(b Affine) Affine {
	return Affine{
		Sx: a.Sx * b.Sx,
		Sy: a.Sy * b.Sy,
		Tx: a.Sx*b.Tx + a.Tx,
		Ty: a.Sy*b.Ty + a.Ty,
	}
}

// Matrix folds the chain into a single affine transform, preserving order.
func (t Transform) Matrix() Affine {
	m := Identity
	for _, op := range t {
		switch op.Name {
		case "scale":
			m = m.Then(Affine{Sx: op.Value, Sy: op.Value})
		case "translateX":
			m = m.Then(Affine{Sx: 1, Sy: 1, Tx: op.Value})
		case "translateY":
			m = m.Then(Affine{Sx: 1, Sy: 1, Ty: op.Value})
		}
	}
	return m
}

// FormatNumber prints the shortest decimal form of v without an exponent.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
