package glm

import "golang.org/x/exp/constraints"

type float interface {
	~float32 | ~float64
}

type numeric interface {
	constraints.Float | constraints.Integer
}

// Rad is an angle in radians
type Rad float32

func Clamp[T numeric](value, lo, hi T) T {
	return min(max(value, lo), hi)
}

// Lerp interpolates linearly between a and b.
func Lerp[T float](a, b, t T) T {
	return a + t*(b-a)
}

// InverseLerp returns where value lies between a and b, clamped to [0, 1].
// Returns zero if a and b are equal.
func InverseLerp[T float](a, b, value T) T {
	if a == b {
		return 0
	}

	return Clamp((value-a)/(b-a), 0, 1)
}

// SmoothStep is the hermite curve 3t² - 2t³ for t clamped to [0, 1].
func SmoothStep[T float](t T) T {
	t = Clamp(t, 0, 1)
	return t * t * (3 - 2*t)
}

// SmootherStep is 6t⁵ - 15t⁴ + 10t³ for t clamped to [0, 1]. The first and second
// derivatives vanish at both ends.
func SmootherStep[T float](t T) T {
	t = Clamp(t, 0, 1)
	return t * t * t * (t*(t*6-15) + 10)
}
