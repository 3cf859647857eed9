// Package noise provides seeded gradient noise for terrain generation.
package noise

import (
	"github.com/furui/fastnoiselite-go"
)

// Field samples classic perlin noise. A Field is read only after construction
// and can be shared between goroutines.
type Field struct {
	seed  int64
	noise *fastnoiselite.FastNoiseLite
}

func New(seed int64) *Field {
	n := fastnoiselite.NewNoise()
	n.SetNoiseType(fastnoiselite.NoiseTypePerlin)
	n.Seed = int32(seed ^ seed>>32)

	// callers scale their coordinates themselves
	n.Frequency = 1

	return &Field{seed: seed, noise: n}
}

func (f *Field) Seed() int64 {
	return f.seed
}

// Sample2 returns noise in [-1, 1] at the given point.
func (f *Field) Sample2(x, z float64) float64 {
	return float64(f.noise.GetNoise2D(fastnoiselite.FNLfloat(x), fastnoiselite.FNLfloat(z)))
}

// Sample3 returns noise in [-1, 1] at the given point.
func (f *Field) Sample3(x, y, z float64) float64 {
	return float64(f.noise.GetNoise3D(
		fastnoiselite.FNLfloat(x),
		fastnoiselite.FNLfloat(y),
		fastnoiselite.FNLfloat(z),
	))
}

// FBM2 sums octaves of 2d noise starting at the given frequency. Each octave
// has twice the frequency and half the amplitude of the previous one. The
// result is normalized to [-1, 1].
func (f *Field) FBM2(x, z float64, scale float32, octaves int) float32 {
	var total, maxValue float32

	frequency := float64(scale)
	amplitude := float32(1)

	for range octaves {
		total += float32(f.Sample2(x*frequency, z*frequency)) * amplitude
		maxValue += amplitude

		amplitude *= 0.5
		frequency *= 2
	}

	if maxValue == 0 {
		return 0
	}

	return total / maxValue
}

// FBM3 sums octaves of 3d noise with the given persistence and lacunarity,
// normalized to [-1, 1].
func (f *Field) FBM3(x, y, z float64, scale float32, octaves int, persistence, lacunarity float32) float32 {
	var total, maxValue float32

	frequency := float64(scale)
	amplitude := float32(1)

	for range octaves {
		total += float32(f.Sample3(x*frequency, y*frequency, z*frequency)) * amplitude
		maxValue += amplitude

		amplitude *= persistence
		frequency *= float64(lacunarity)
	}

	if maxValue == 0 {
		return 0
	}

	return total / maxValue
}
