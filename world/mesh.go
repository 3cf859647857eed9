package world

import (
	"structs"

	"github.com/oliverbestmann/xylo/glm"
)

// Vertex is the GPU vertex layout of chunk meshes.
type Vertex struct {
	_ structs.HostLayout

	Position glm.Vec3f
	UV       glm.Vec2f
	Layer    float32
	Color    glm.Vec3f
}

// Mesh holds the triangle lists of a chunk, split by render pass.
type Mesh struct {
	Pos ChunkPos

	Solid     []Vertex
	Water     []Vertex
	Foliage   []Vertex
	TallGrass []Vertex
}

func (m *Mesh) Empty() bool {
	return len(m.Solid) == 0 && len(m.Water) == 0 && len(m.Foliage) == 0 && len(m.TallGrass) == 0
}

func (m *Mesh) VertexCount() int {
	return len(m.Solid) + len(m.Water) + len(m.Foliage) + len(m.TallGrass)
}

// Neighborhood holds a chunk and its eight neighbours, indexed [dx+1][dz+1].
// Missing neighbours are nil.
type Neighborhood [3][3]*Chunk

type faceTemplate [4]struct {
	X, Y, Z float32
	U, V    float32
}

type face struct {
	DX, DY, DZ int
	template   faceTemplate
}

var faces = [6]face{
	{0, 1, 0, faceTemplate{{0, 1, 1, 0, 0}, {1, 1, 1, 1, 0}, {1, 1, 0, 1, 1}, {0, 1, 0, 0, 1}}},
	{0, -1, 0, faceTemplate{{0, 0, 1, 0, 1}, {0, 0, 0, 0, 0}, {1, 0, 0, 1, 0}, {1, 0, 1, 1, 1}}},
	{0, 0, 1, faceTemplate{{1, 0, 1, 1, 1}, {1, 1, 1, 1, 0}, {0, 1, 1, 0, 0}, {0, 0, 1, 0, 1}}},
	{0, 0, -1, faceTemplate{{0, 0, 0, 1, 1}, {0, 1, 0, 1, 0}, {1, 1, 0, 0, 0}, {1, 0, 0, 0, 1}}},
	{1, 0, 0, faceTemplate{{1, 0, 0, 1, 1}, {1, 1, 0, 1, 0}, {1, 1, 1, 0, 0}, {1, 0, 1, 0, 1}}},
	{-1, 0, 0, faceTemplate{{0, 0, 1, 1, 1}, {0, 1, 1, 1, 0}, {0, 1, 0, 0, 0}, {0, 0, 0, 0, 1}}},
}

var quadIndices = [6]int{0, 1, 3, 1, 2, 3}

// BuildMesh creates the mesh of the center chunk of the neighborhood.
func BuildMesh(n Neighborhood) *Mesh {
	chunk := n[1][1]

	mesh := &Mesh{
		Pos:       chunk.Pos,
		Solid:     make([]Vertex, 0, 8192),
		Water:     make([]Vertex, 0, 1024),
		Foliage:   make([]Vertex, 0, 1024),
		TallGrass: make([]Vertex, 0, 256),
	}

	for y := MinY; y < MaxY; y++ {
		for z := range ChunkSize {
			for x := range ChunkSize {
				id := chunk.Get(x, y, z)
				if id == Air {
					continue
				}

				switch id {
				case Water, Lava:
					mesh.Water = n.appendFaces(mesh.Water, x, y, z, id)
				case PlantGrass:
					mesh.Foliage = appendCross(mesh.Foliage, chunk.Pos, x, y, z, id)
				case PlantTallBottom, PlantTallTop:
					mesh.TallGrass = appendCross(mesh.TallGrass, chunk.Pos, x, y, z, id)
				case Leaves:
					mesh.Foliage = n.appendFaces(mesh.Foliage, x, y, z, id)
				default:
					mesh.Solid = n.appendFaces(mesh.Solid, x, y, z, id)
				}
			}
		}
	}

	return mesh
}

// neighbor looks up a block relative to the center chunk. x and z may be
// one block outside of the chunk.
func (n *Neighborhood) neighbor(self BlockID, x, y, z int) BlockID {
	cx, cz := (x>>4)+1, (z>>4)+1

	chunk := n[cx][cz]
	if chunk == nil {
		// hide faces towards chunks that are not loaded yet
		if self.IsFluid() {
			return self
		}

		return Air
	}

	return chunk.Get(x&15, y, z&15)
}

func (n *Neighborhood) appendFaces(verts []Vertex, x, y, z int, id BlockID) []Vertex {
	for i := range faces {
		f := &faces[i]

		other := n.neighbor(id, x+f.DX, y+f.DY, z+f.DZ)
		if !faceVisible(id, other) {
			continue
		}

		verts = appendFace(verts, n[1][1].Pos, x, y, z, id, f)
	}

	return verts
}

func faceVisible(self, other BlockID) bool {
	switch {
	case other.IsOpaque():
		return false
	case self.IsFluid() && other.IsFluid():
		return false
	case self == Leaves && other == Leaves:
		return false
	default:
		return true
	}
}

func appendFace(verts []Vertex, pos ChunkPos, x, y, z int, id BlockID, f *face) []Vertex {
	block := id.Info()

	ox, oz := pos.Origin()
	wx, wy, wz := float32(ox+x), float32(y), float32(oz+z)

	layer := block.Side
	switch f.DY {
	case 1:
		layer = block.Top
	case -1:
		layer = block.Bottom
	}

	color := glm.Vec3f{1, 1, 1}
	if block.TintMode == TintAll || (block.TintMode == TintTop && f.DY == 1) {
		color = block.Tint
	}

	switch {
	case f.DY == -1:
		color = color.Scale(0.7)
	case f.DX != 0 || f.DZ != 0:
		color = color.Scale(0.85)
	}

	for _, idx := range quadIndices {
		c := f.template[idx]
		verts = append(verts, Vertex{
			Position: glm.Vec3f{wx + c.X, wy + c.Y, wz + c.Z},
			UV:       glm.Vec2f{c.U, c.V},
			Layer:    float32(layer),
			Color:    color,
		})
	}

	return verts
}

// crossOffset returns a stable pseudo random horizontal offset for a plant
// at the given world position, up to 0.15 blocks in each direction.
func crossOffset(wx, wy, wz int) (float32, float32) {
	seed := int64(wx)*3129871 ^ int64(wz)*116129781 ^ int64(wy)
	offX := (float32(seed&15)/15 - 0.5) * 0.3
	offZ := (float32((seed>>4)&15)/15 - 0.5) * 0.3
	return offX, offZ
}

// appendCross emits two diagonal quads forming a plant billboard.
func appendCross(verts []Vertex, pos ChunkPos, x, y, z int, id BlockID) []Vertex {
	block := id.Info()

	ox, oz := pos.Origin()
	offX, offZ := crossOffset(ox+x, y, oz+z)

	wx := float32(ox+x) + offX
	wy := float32(y)
	wz := float32(oz+z) + offZ

	color := glm.Vec3f{1, 1, 1}
	if block.TintMode != TintNone {
		color = block.Tint
	}

	layer := float32(block.Side)

	vertex := func(dx, dy, dz, u, v float32) Vertex {
		return Vertex{
			Position: glm.Vec3f{wx + dx, wy + dy, wz + dz},
			UV:       glm.Vec2f{u, v},
			Layer:    layer,
			Color:    color,
		}
	}

	return append(verts,
		// quad from (0, 0) to (1, 1)
		vertex(0, 0, 0, 0, 1), vertex(1, 0, 1, 1, 1), vertex(1, 1, 1, 1, 0),
		vertex(0, 0, 0, 0, 1), vertex(1, 1, 1, 1, 0), vertex(0, 1, 0, 0, 0),

		// quad from (0, 1) to (1, 0)
		vertex(0, 0, 1, 0, 1), vertex(1, 0, 0, 1, 1), vertex(1, 1, 0, 1, 0),
		vertex(0, 0, 1, 0, 1), vertex(1, 1, 0, 1, 0), vertex(0, 1, 1, 0, 0),
	)
}
