package pulse

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAsByteSlice(t *testing.T) {
	value := struct {
		A float32
		B uint32
	}{A: 1.5, B: 7}

	buf := AsByteSlice(&value)
	require.Len(t, buf, 8)

	assert.Equal(t, math.Float32bits(1.5), binary.NativeEndian.Uint32(buf[0:4]))
	assert.Equal(t, uint32(7), binary.NativeEndian.Uint32(buf[4:8]))

	// the slice aliases the value
	value.B = 9
	assert.Equal(t, uint32(9), binary.NativeEndian.Uint32(buf[4:8]))
}
