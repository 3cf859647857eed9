package world

import (
	"sync"
	"sync/atomic"
)

const (
	ChunkSize = 16
	MinY      = -64
	MaxY      = 320
	Height    = MaxY - MinY
	SeaLevel  = 70
)

// ChunkPos is the position of a chunk in chunk coordinates.
type ChunkPos struct {
	X, Z int
}

// ChunkPosOf returns the position of the chunk containing the block at (x, z).
func ChunkPosOf(x, z int) ChunkPos {
	return ChunkPos{X: x >> 4, Z: z >> 4}
}

// Key packs the position into a single map key.
func (p ChunkPos) Key() int64 {
	return int64(p.X)<<32 | int64(uint32(int32(p.Z)))
}

func (p ChunkPos) Add(dx, dz int) ChunkPos {
	return ChunkPos{X: p.X + dx, Z: p.Z + dz}
}

// Chebyshev returns the larger of the axis distances to other.
func (p ChunkPos) Chebyshev(other ChunkPos) int {
	return max(abs(p.X-other.X), abs(p.Z-other.Z))
}

// Origin returns the world coordinates of the chunks (0, 0) column.
func (p ChunkPos) Origin() (x, z int) {
	return p.X * ChunkSize, p.Z * ChunkSize
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}

// Chunk is a 16 x 384 x 16 column of blocks. The block data is written once
// during generation and is read-only afterwards.
type Chunk struct {
	Pos ChunkPos

	blocks [ChunkSize * Height * ChunkSize]BlockID

	meshMu  sync.Mutex
	meshSeq uint64
	pending *Mesh

	unloaded atomic.Bool
}

func NewChunk(pos ChunkPos) *Chunk {
	return &Chunk{Pos: pos}
}

func index(x, y, z int) int {
	return ((y-MinY)*ChunkSize+z)*ChunkSize + x
}

func inBounds(x, y, z int) bool {
	return x >= 0 && x < ChunkSize && z >= 0 && z < ChunkSize && y >= MinY && y < MaxY
}

// Get returns the block at the local position. Positions outside of the chunk are air.
func (c *Chunk) Get(x, y, z int) BlockID {
	if !inBounds(x, y, z) {
		return Air
	}

	return c.blocks[index(x, y, z)]
}

// Set writes a block at the local position. Writes outside of the chunk are dropped.
func (c *Chunk) Set(x, y, z int, id BlockID) {
	if !inBounds(x, y, z) {
		return
	}

	c.blocks[index(x, y, z)] = id
}

// PlaceModel writes all parts of the model relative to (x, y, z).
func (c *Chunk) PlaceModel(x, y, z int, model Model) {
	for _, part := range model.Parts {
		c.Set(x+int(part.DX), y+int(part.DY), z+int(part.DZ), part.Block)
	}
}

// Highest returns the y of the topmost block in the column that is neither
// air nor water, or MinY if there is none.
func (c *Chunk) Highest(x, z int) int {
	for y := MaxY - 1; y >= MinY; y-- {
		id := c.Get(x, y, z)
		if id != Air && id != Water {
			return y
		}
	}

	return MinY
}

// Count returns the number of blocks of the given type.
func (c *Chunk) Count(id BlockID) int {
	var count int
	for _, b := range c.blocks {
		if b == id {
			count++
		}
	}

	return count
}

// offerMesh stores the mesh unless a mesh of a newer request was stored already.
func (c *Chunk) offerMesh(seq uint64, mesh *Mesh) {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()

	if seq < c.meshSeq {
		return
	}

	c.meshSeq = seq
	c.pending = mesh
}

// TakeMesh returns the most recently built mesh that was not taken yet, or nil.
func (c *Chunk) TakeMesh() *Mesh {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()

	mesh := c.pending
	c.pending = nil
	return mesh
}

// HasPendingMesh reports whether TakeMesh would return a mesh.
func (c *Chunk) HasPendingMesh() bool {
	c.meshMu.Lock()
	defer c.meshMu.Unlock()
	return c.pending != nil
}

// Unloaded reports whether the world dropped this chunk.
func (c *Chunk) Unloaded() bool {
	return c.unloaded.Load()
}
