package animation

import "math"

// Easing maps linear progress in [0,1] to eased progress
type Easing func(t float64) float64

// Linear is the identity curve
func Linear(t float64) float64 { return clamp01(t) }

// RotationEasing is the decelerating curve used for board quarter turns
var RotationEasing = CubicBezier(0.22, 0.61, 0.36, 1)

// StepEasing is the curve used for token hops between tiles
var StepEasing = CubicBezier(0.25, 0.1, 0.25, 1)

// CubicBezier builds a timing curve through (0,0), (x1,y1), (x2,y2), (1,1)
// x1 and x2 are clamped to [0,1] so the curve stays a function of time
func CubicBezier(x1, y1, x2, y2 float64) Easing {
	x1 = clamp01(x1)
	x2 = clamp01(x2)

	sample := func(a1, a2, t float64) float64 {
		u := 1 - t
		return 3*u*u*t*a1 + 3*u*t*t*a2 + t*t*t
	}
	slope := func(a1, a2, t float64) float64 {
		u := 1 - t
		return 3*u*u*a1 + 6*u*t*(a2-a1) + 3*t*t*(1-a2)
	}

	return func(x float64) float64 {
		x = clamp01(x)
		if x == 0 || x == 1 {
			return x
		}

		// Newton first, bisection when the slope flattens out
		t := x
		for i := 0; i < 8; i++ {
			dx := sample(x1, x2, t) - x
			if math.Abs(dx) < 1e-7 {
				return sample(y1, y2, t)
			}
			d := slope(x1, x2, t)
			if math.Abs(d) < 1e-6 {
				break
			}
			t -= dx / d
		}

		lo, hi := 0.0, 1.0
		t = x
		for i := 0; i < 40; i++ {
			v := sample(x1, x2, t)
			if math.Abs(v-x) < 1e-7 {
				break
			}
			if v < x {
				lo = t
			} else {
				hi = t
			}
			t = (lo + hi) / 2
		}
		return sample(y1, y2, t)
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
