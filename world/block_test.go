package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockRegistry(t *testing.T) {
	assert.Equal(t, "GRASS", Grass.String())
	assert.Equal(t, LayerGrassTop, Grass.Info().Top)
	assert.Equal(t, LayerDirt, Grass.Info().Bottom)
	assert.Equal(t, LayerGrassSide, Grass.Info().Side)
	assert.Equal(t, TintTop, Grass.Info().TintMode)

	assert.Equal(t, LayerLogTop, Log.Info().Top)
	assert.Equal(t, LayerLog, Log.Info().Side)

	assert.True(t, Stone.IsOpaque())
	assert.False(t, Leaves.IsOpaque())
	assert.False(t, Water.IsOpaque())
	assert.False(t, Air.IsOpaque())

	assert.True(t, PlantGrass.Info().Plant)
	assert.True(t, PlantTallTop.Info().Plant)
	assert.False(t, Dirt.Info().Plant)
}

func TestUnknownBlockIsAir(t *testing.T) {
	assert.Equal(t, Air, BlockID(9).Info().ID)
	assert.Equal(t, "AIR", BlockID(200).String())
	assert.False(t, BlockID(200).IsOpaque())
}

func TestFluids(t *testing.T) {
	assert.True(t, Water.IsFluid())
	assert.True(t, Lava.IsFluid())
	assert.False(t, Stone.IsFluid())
	assert.False(t, Air.IsFluid())
}

func TestLayerNames(t *testing.T) {
	assert.Equal(t, 15, LayerCount)
	assert.Equal(t, "grass_block_top", LayerGrassTop.Name())
	assert.Equal(t, "lava_still", LayerLava.Name())
	assert.Equal(t, "unknown", Layer(99).Name())
}
