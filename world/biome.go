package world

import (
	"image/color"
	"math/rand/v2"
)

type Biome uint8

const (
	Ocean Biome = iota
	Beach
	Plains
	Forest
	Mountains
	SnowyMountains
	Desert
	SnowyPlains

	biomeCount = int(iota)
)

type BiomeInfo struct {
	Name string

	Temperature float32
	Humidity    float32

	Top    BlockID
	Filler BlockID

	TreeDensity float32

	// MapColor is the color used for this biome on the overview map
	MapColor color.RGBA
}

var biomes = [biomeCount]BiomeInfo{
	Ocean:          {"OCEAN", 0.5, 0.5, Sand, Sand, 0, color.RGBA{R: 0, G: 0, B: 180, A: 255}},
	Beach:          {"BEACH", 0.5, 0.4, Sand, Sand, 0, color.RGBA{R: 240, G: 220, B: 130, A: 255}},
	Plains:         {"PLAINS", 0.5, 0.4, Grass, Dirt, 0.05, color.RGBA{R: 100, G: 200, B: 100, A: 255}},
	Forest:         {"FOREST", 0.5, 0.8, Grass, Dirt, 0.9, color.RGBA{R: 34, G: 139, B: 34, A: 255}},
	Mountains:      {"MOUNTAINS", 0.2, 0.4, Stone, Stone, 0.1, color.RGBA{R: 120, G: 120, B: 120, A: 255}},
	SnowyMountains: {"SNOWY_MOUNTAINS", -1, 0.5, Snow, Stone, 0, color.RGBA{R: 240, G: 240, B: 255, A: 255}},
	Desert:         {"DESERT", 2, 0, Sand, Sand, 0, color.RGBA{R: 210, G: 180, B: 100, A: 255}},
	SnowyPlains:    {"SNOWY_PLAINS", -1, 0.5, Snow, Dirt, 0.05, color.RGBA{R: 200, G: 240, B: 255, A: 255}},
}

func (b Biome) Info() *BiomeInfo {
	if int(b) >= biomeCount {
		return &biomes[Plains]
	}

	return &biomes[b]
}

func (b Biome) String() string {
	return b.Info().Name
}

// Classify picks the biome for the given climate values.
func Classify(continent, temperature, humidity float32) Biome {
	switch {
	case continent < -0.10:
		return Ocean

	case continent < -0.05:
		return Beach

	case continent > 0.6:
		if temperature < -0.2 {
			return SnowyMountains
		}

		return Mountains

	case temperature < -0.3:
		return SnowyPlains

	case temperature > 0.4:
		if humidity < 0 {
			return Desert
		}

		return Plains

	case humidity > 0.3:
		return Forest

	default:
		return Plains
	}
}

// plantVegetation decorates the surface block at (x, y, z) of the chunk.
// The order of the random draws matters for reproducible worlds.
func (b Biome) plantVegetation(c *Chunk, models *Models, x, y, z int, rng *rand.Rand) {
	switch b {
	case Mountains, SnowyMountains, Ocean, Beach:
		return
	}

	info := b.Info()

	if rng.Float32() < info.TreeDensity*0.1 {
		switch {
		case b == Forest:
			c.PlaceModel(x, y+1, z, models.Oak)
		case b == Plains && rng.IntN(5) == 0:
			c.PlaceModel(x, y+1, z, models.Oak)
		case b == SnowyPlains && rng.IntN(10) == 0:
			c.PlaceModel(x, y+1, z, models.Oak)
		}

		return
	}

	switch {
	case info.Top == Grass:
		if rng.IntN(10) == 0 {
			c.PlaceModel(x, y+1, z, models.TallGrass)
		} else if rng.IntN(15) == 0 {
			c.Set(x, y+1, z, PlantGrass)
		}

	case b == Desert:
		if rng.IntN(150) == 0 {
			c.PlaceModel(x, y+1, z, models.BushShort)
		}
	}
}
