package orion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandle(t *testing.T) {
	assert.NotPanics(t, func() { Handle(nil, "nothing") })

	cause := errors.New("bad shader")

	defer func() {
		recovered := recover()
		require.NotNil(t, recovered)

		err, ok := recovered.(error)
		require.True(t, ok)

		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "compile voxel: bad shader", err.Error())
	}()

	Handle(cause, "compile %s", "voxel")
}
