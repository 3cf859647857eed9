package noise

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldIsDeterministic(t *testing.T) {
	a := New(1234)
	b := New(1234)

	for idx := range 100 {
		x := float64(idx)*0.37 + 0.1
		z := float64(idx)*-1.91 + 0.3

		require.Equal(t, a.Sample2(x, z), b.Sample2(x, z))
		require.Equal(t, a.Sample3(x, z, x*z), b.Sample3(x, z, x*z))
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)

	differences := 0
	for idx := range 64 {
		x := float64(idx)*0.731 + 0.5
		if a.Sample2(x, x*0.5) != b.Sample2(x, x*0.5) {
			differences++
		}
	}

	assert.Greater(t, differences, 32)
}

func TestSamplesStayInRange(t *testing.T) {
	field := New(99)

	for idx := range 2000 {
		x := float64(idx)*0.173 - 100
		z := float64(idx)*0.291 + 50

		assert.InDelta(t, 0, field.Sample2(x, z), 1.0001)
		assert.InDelta(t, 0, field.Sample3(x, z*0.5, z), 1.0001)
		assert.InDelta(t, 0, field.FBM2(x, z, 0.05, 3), 1.0001)
		assert.InDelta(t, 0, field.FBM3(x, z, x, 0.05, 4, 0.5, 2), 1.0001)
	}
}

func TestFBMWithoutOctaves(t *testing.T) {
	field := New(7)
	assert.Equal(t, float32(0), field.FBM2(10.5, 3.25, 0.1, 0))
	assert.Equal(t, float32(0), field.FBM3(10.5, 3.25, 1, 0.1, 0, 0.5, 2))
}

func TestHighSeedBitsChangeNoise(t *testing.T) {
	low := New(0)
	high := New(1 << 40)

	assert.Equal(t, int64(1<<40), high.Seed())

	differences := 0
	for idx := range 64 {
		x := float64(idx)*0.613 + 0.25
		if low.Sample2(x, x*0.5) != high.Sample2(x, x*0.5) {
			differences++
		}
	}

	assert.Greater(t, differences, 32)
}
