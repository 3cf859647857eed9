package world

import "github.com/oliverbestmann/xylo/glm"

// BlockID identifies a block type. The zero value is air.
type BlockID uint8

const (
	Air             BlockID = 0
	Grass           BlockID = 1
	Dirt            BlockID = 2
	Stone           BlockID = 3
	Log             BlockID = 4
	Leaves          BlockID = 5
	Sand            BlockID = 6
	Water           BlockID = 7
	Snow            BlockID = 8
	PlantGrass      BlockID = 10
	PlantTallBottom BlockID = 11
	PlantTallTop    BlockID = 12
	Deepslate       BlockID = 13
	Lava            BlockID = 14
)

// Layer is an index into the block texture array.
type Layer uint8

const (
	LayerGrassTop Layer = iota
	LayerGrassSide
	LayerDirt
	LayerStone
	LayerLog
	LayerLogTop
	LayerLeaves
	LayerSand
	LayerWater
	LayerSnow
	LayerShortGrass
	LayerTallGrassBottom
	LayerTallGrassTop
	LayerDeepslate
	LayerLava

	LayerCount = int(iota)
)

var layerNames = [LayerCount]string{
	"grass_block_top",
	"grass_block_side",
	"dirt",
	"stone",
	"oak_log",
	"oak_log_top",
	"oak_leaves",
	"sand",
	"water_still",
	"snow",
	"short_grass",
	"tall_grass_bottom",
	"tall_grass_top",
	"deepslate",
	"lava_still",
}

// Name returns the file name (without extension) of the texture for this layer.
func (l Layer) Name() string {
	if int(l) < LayerCount {
		return layerNames[l]
	}

	return "unknown"
}

// TintMode decides which faces of a block are multiplied with its tint color.
type TintMode uint8

const (
	TintNone TintMode = iota
	TintAll
	TintTop
)

var (
	colorDefault = glm.Vec3f{1.0, 1.0, 1.0}
	colorGrass   = glm.Vec3f{0.57, 0.74, 0.35}
	colorFluid   = glm.Vec3f{0.8, 0.8, 0.9}
)

type Block struct {
	ID   BlockID
	Name string

	Top, Bottom, Side Layer

	Tint     glm.Vec3f
	TintMode TintMode

	Opaque bool
	Plant  bool
}

var blocks [256]Block

func register(b Block) {
	blocks[b.ID] = b
}

func init() {
	register(Block{ID: Air, Name: "AIR", Tint: colorDefault})

	// the grass top texture is grayscale and gets tinted, sides are colored already
	register(Block{ID: Grass, Name: "GRASS", Top: LayerGrassTop, Bottom: LayerDirt, Side: LayerGrassSide, Tint: colorGrass, TintMode: TintTop, Opaque: true})

	register(Block{ID: Leaves, Name: "LEAVES", Top: LayerLeaves, Bottom: LayerLeaves, Side: LayerLeaves, Tint: colorGrass, TintMode: TintAll})
	register(Block{ID: Water, Name: "WATER", Top: LayerWater, Bottom: LayerWater, Side: LayerWater, Tint: colorFluid, TintMode: TintAll})
	register(Block{ID: Lava, Name: "LAVA", Top: LayerLava, Bottom: LayerLava, Side: LayerLava, Tint: colorFluid, TintMode: TintAll})

	register(Block{ID: PlantGrass, Name: "PLANT_GRASS", Top: LayerShortGrass, Bottom: LayerShortGrass, Side: LayerShortGrass, Tint: colorGrass, TintMode: TintAll, Plant: true})
	register(Block{ID: PlantTallBottom, Name: "PLANT_TALL_BOT", Top: LayerTallGrassBottom, Bottom: LayerTallGrassBottom, Side: LayerTallGrassBottom, Tint: colorGrass, TintMode: TintAll, Plant: true})
	register(Block{ID: PlantTallTop, Name: "PLANT_TALL_TOP", Top: LayerTallGrassTop, Bottom: LayerTallGrassTop, Side: LayerTallGrassTop, Tint: colorGrass, TintMode: TintAll, Plant: true})

	register(Block{ID: Dirt, Name: "DIRT", Top: LayerDirt, Bottom: LayerDirt, Side: LayerDirt, Tint: colorDefault, Opaque: true})
	register(Block{ID: Stone, Name: "STONE", Top: LayerStone, Bottom: LayerStone, Side: LayerStone, Tint: colorDefault, Opaque: true})
	register(Block{ID: Log, Name: "LOG", Top: LayerLogTop, Bottom: LayerLogTop, Side: LayerLog, Tint: colorDefault, Opaque: true})
	register(Block{ID: Sand, Name: "SAND", Top: LayerSand, Bottom: LayerSand, Side: LayerSand, Tint: colorDefault, Opaque: true})
	register(Block{ID: Snow, Name: "SNOW", Top: LayerSnow, Bottom: LayerDirt, Side: LayerSnow, Tint: colorDefault, Opaque: true})
	register(Block{ID: Deepslate, Name: "DEEPSLATE", Top: LayerDeepslate, Bottom: LayerDeepslate, Side: LayerDeepslate, Tint: colorDefault, Opaque: true})
}

// Info returns the block definition. Unknown ids resolve to air.
func (id BlockID) Info() *Block {
	b := &blocks[id]
	if b.ID != id {
		return &blocks[Air]
	}

	return b
}

func (id BlockID) String() string {
	return id.Info().Name
}

func (id BlockID) IsFluid() bool {
	return id == Water || id == Lava
}

func (id BlockID) IsOpaque() bool {
	return id.Info().Opaque
}
