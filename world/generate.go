package world

import (
	"math/rand/v2"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/noise"
)

const (
	scaleTemperature = 0.0012
	scaleHumidity    = 0.0012
	scaleContinent   = 0.0018
	scaleErosion     = 0.002
	scaleDensity     = 0.006

	hardSolid = 0.25
	hardAir   = -0.25
)

// Climate holds the per column noise values that shape terrain and biomes.
type Climate struct {
	Continent    float32
	PeaksValleys float32
	Erosion      float32
	Temperature  float32
	Humidity     float32
}

func (c Climate) Biome() Biome {
	return Classify(c.Continent, c.Temperature, c.Humidity)
}

// TargetHeight is the smoothed surface height the density field is biased towards.
func (c Climate) TargetHeight() float32 {
	return TargetHeight(c.Continent, c.Erosion, c.PeaksValleys)
}

var (
	splineContinent = [...]float32{-1.0, -0.2, -0.1, 0.0, 0.4, 1.0}
	splineHeight    = [...]float32{20, 50, 60, 66, 85, 140}
)

// TargetHeight maps continentalness to a base height and adds roughness
// from the peaks & valleys noise, dampened by erosion.
func TargetHeight(continent, erosion, pv float32) float32 {
	base := float32(63)
	for i := range len(splineContinent) - 1 {
		lo, hi := splineContinent[i], splineContinent[i+1]
		if continent >= lo && continent <= hi {
			t := glm.SmootherStep(glm.InverseLerp(lo, hi, continent))
			base = glm.Lerp(splineHeight[i], splineHeight[i+1], t)
			break
		}
	}

	var roughness float32

	switch {
	case continent < 0.05:
		roughness = pv * 2
		if pv < -0.5 {
			roughness -= 2
		}

	case continent > 0.6:
		mountain := glm.SmootherStep(glm.InverseLerp(0.6, 1.0, continent))
		roughness = pv * pv * 110 * mountain

	default:
		roughness = pv * 8
		if (erosion+1)/2 > 0.6 {
			roughness *= 0.2
		}
	}

	return base + roughness
}

// Generator produces chunks for a world seed. It is safe for concurrent use.
type Generator struct {
	seed   int64
	noise  *noise.Field
	models *Models
}

func NewGenerator(seed int64, models *Models) *Generator {
	if models == nil {
		models = BuiltinModels()
	}

	return &Generator{
		seed:   seed,
		noise:  noise.New(seed),
		models: models,
	}
}

func (g *Generator) Seed() int64 {
	return g.seed
}

// Climate samples the column noise at world position (x, z).
func (g *Generator) Climate(x, z int) Climate {
	wx, wz := float64(x), float64(z)

	return Climate{
		Continent:    g.noise.FBM2(wx, wz, scaleContinent, 3),
		PeaksValleys: float32(g.noise.Sample2(wx*0.004, wz*0.004)),
		Erosion:      g.noise.FBM2(wx+2000, wz+2000, scaleErosion, 2),
		Temperature:  g.noise.FBM2(wx+5000, wz+5000, scaleTemperature, 2),
		Humidity:     g.noise.FBM2(wx+1000, wz+1000, scaleHumidity, 2),
	}
}

func (g *Generator) BiomeAt(x, z int) Biome {
	return g.Climate(x, z).Biome()
}

// Generate builds the terrain and vegetation of the chunk at pos.
func (g *Generator) Generate(pos ChunkPos) *Chunk {
	chunk := NewChunk(pos)
	ox, oz := pos.Origin()

	biomes := make([]Biome, ChunkSize*ChunkSize)

	for x := range ChunkSize {
		for z := range ChunkSize {
			climate := g.Climate(ox+x, oz+z)
			biome := climate.Biome()
			biomes[z*ChunkSize+x] = biome

			g.fillColumn(chunk, x, z, biome, climate.TargetHeight())
		}
	}

	g.decorate(chunk, biomes)

	return chunk
}

func (g *Generator) fillColumn(chunk *Chunk, x, z int, biome Biome, target float32) {
	ox, oz := chunk.Pos.Origin()
	wx, wz := float64(ox+x), float64(oz+z)

	info := biome.Info()

	for y := MinY; y < MaxY; y++ {
		fy := float64(y)

		warp := g.noise.Sample3(wx*0.02, fy*0.02, wz*0.02) * 3
		shape := g.noise.FBM3(wx, fy+warp, wz, scaleDensity, 4, 0.5, 2)

		bias := (target - float32(y)) / 60
		if y < -50 {
			bias += 5
		}
		if y > 200 {
			bias -= 5
		}

		density := shape + bias

		id := Air

		switch {
		case density > hardSolid:
			id = Stone

		case density < hardAir:
			if y <= SeaLevel {
				id = Water
			}

		default:
			t := glm.SmootherStep(glm.InverseLerp(hardAir, hardSolid, density))
			t += float32(g.noise.Sample3(wx*0.12, fy*0.35, wz*0.12)) * 0.15

			if t > 0.5 {
				id = Stone
			} else if y <= SeaLevel {
				id = Water
			}
		}

		if id == Stone {
			id = g.carve(wx, y, wz)
		}

		if id == Stone && density < 0.45 {
			id = paintSurface(biome, info, y, target, density)
		}

		if id != Air {
			chunk.Set(x, y, z, id)
		}
	}
}

// carve turns stone into caves or deepslate.
func (g *Generator) carve(wx float64, y int, wz float64) BlockID {
	fy := float64(y)

	if g.isCave(wx, fy, wz) {
		if y < -54 {
			return Lava
		}

		return Air
	}

	if y < -50 {
		ds := glm.InverseLerp(-40, -8, float32(y))
		ds += float32(g.noise.Sample3(wx*0.02, fy*0.05, wz*0.02)) * 0.12
		if ds < 0.35 {
			return Deepslate
		}
	}

	return Stone
}

func (g *Generator) isCave(wx, wy, wz float64) bool {
	n1 := g.noise.Sample3(wx*0.02, wy*0.02, wz*0.02)
	n2 := g.noise.Sample3(wx*0.02+1337, wy*0.02+1337, wz*0.02+1337)
	return n1*n1+n2*n2 < 0.003
}

func paintSurface(biome Biome, info *BiomeInfo, y int, target, density float32) BlockID {
	fy := float32(y)
	steep := fy > target+28

	switch {
	case biome == Mountains:
		return Stone

	case biome == SnowyMountains:
		if fy > target+10 && !steep {
			return Snow
		}

		return Stone

	case biome == Desert:
		return Sand

	case steep:
		return Stone

	case fy >= target-10:
		if density < 0.2 {
			return info.Top
		}

		return info.Filler

	default:
		return Stone
	}
}

// chunkSeed derives the seed of the vegetation rng of a chunk.
func chunkSeed(pos ChunkPos) int64 {
	return int64(pos.X)*341873128712 + int64(pos.Z)*132897987541
}

func (g *Generator) decorate(chunk *Chunk, biomes []Biome) {
	rng := rand.New(rand.NewPCG(uint64(chunkSeed(chunk.Pos)), uint64(g.seed)))

	for x := range ChunkSize {
		for z := range ChunkSize {
			surface := chunk.Highest(x, z)
			if surface <= SeaLevel || surface >= MaxY-10 {
				continue
			}

			biome := biomes[z*ChunkSize+x]
			if chunk.Get(x, surface, z) != biome.Info().Top {
				continue
			}

			biome.plantVegetation(chunk, g.models, x, surface, z, rng)
		}
	}
}
