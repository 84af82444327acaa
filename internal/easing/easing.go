// Package easing maps normalised time onto normalised progress.
package easing

import "math"

// DefaultExponent gives a cubic ease-in-out.
const DefaultExponent = 3.0

// Curve is a symmetric S-curve built from two mirrored power curves that
// meet at (0.5, 0.5). Higher exponents sharpen the acceleration at both ends.
type Curve struct {
	Exponent float64
}

// Default returns the cubic curve.
func Default() Curve {
	return Curve{Exponent: DefaultExponent}
}

// Ease maps t in [0,1] to progress in [0,1]. Values outside the range are clamped.
func (c Curve) Ease(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}

	e := c.Exponent
	if e <= 0 {
		e = DefaultExponent
	}

	u := t * 2
	if u <= 1 {
		return math.Pow(u, e) / 2
	}
	return (2 - math.Pow(2-u, e)) / 2
}

// Lerp interpolates between a and b using eased progress.
func (c Curve) Lerp(a, b, t float64) float64 {
	return a + c.Ease(t)*(b-a)
}

// Ease applies the default cubic curve.
func Ease(t float64) float64 {
	return Default().Ease(t)
}
