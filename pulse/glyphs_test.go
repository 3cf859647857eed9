package pulse

import (
	"testing"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGlyphAtlasImage(t *testing.T) {
	atlas := NewGlyphAtlas()

	require.Equal(t, 7, atlas.CellWidth)
	require.Equal(t, 13, atlas.CellHeight)

	// 95 glyphs in 16 columns need 6 rows
	assert.Equal(t, 16*7, atlas.Image.Bounds().Dx())
	assert.Equal(t, 6*13, atlas.Image.Bounds().Dy())

	// the cell of 'A' must contain some opaque pixels
	region := atlas.Region('A')

	var opaque int
	for y := region.Min[1]; y < region.Max[1]; y++ {
		for x := region.Min[0]; x < region.Max[0]; x++ {
			if atlas.Image.RGBAAt(int(x), int(y)).A > 0 {
				opaque++
			}
		}
	}

	assert.Positive(t, opaque)
}

func TestGlyphAtlasRegion(t *testing.T) {
	atlas := NewGlyphAtlas()

	assert.Equal(t, RectangleFromXYWH[uint32](0, 0, 7, 13), atlas.Region(' '))
	assert.Equal(t, RectangleFromXYWH[uint32](7, 0, 7, 13), atlas.Region('!'))

	// 'A' is glyph 33: column 1 of row 2
	assert.Equal(t, RectangleFromXYWH[uint32](7, 26, 7, 13), atlas.Region('A'))

	// unknown glyphs fall back to '?'
	assert.Equal(t, atlas.Region('?'), atlas.Region('ä'))
	assert.Equal(t, atlas.Region('?'), atlas.Region('\x01'))
}

func TestGlyphAtlasLayout(t *testing.T) {
	atlas := NewGlyphAtlas()

	quads := atlas.Layout("ab c\nd", glm.Vec2f{10, 20}, 2)
	require.Len(t, quads, 4)

	assert.Equal(t, RectangleFromXYWH[float32](10, 20, 14, 26), quads[0].Target)
	assert.Equal(t, RectangleFromXYWH[float32](24, 20, 14, 26), quads[1].Target)

	// the space advances without producing a quad
	assert.Equal(t, RectangleFromXYWH[float32](52, 20, 14, 26), quads[2].Target)

	// a new line starts at the origin again
	assert.Equal(t, RectangleFromXYWH[float32](10, 50, 14, 26), quads[3].Target)
	assert.Equal(t, atlas.Region('d'), quads[3].Source)
}

func TestGlyphAtlasMeasure(t *testing.T) {
	atlas := NewGlyphAtlas()

	assert.Equal(t, glm.Vec2f{}, atlas.Measure("", 1))
	assert.Equal(t, glm.Vec2f{21, 13}, atlas.Measure("abc", 1))
	assert.Equal(t, glm.Vec2f{28, 28}, atlas.Measure("a\nbcd", 1))
	assert.Equal(t, glm.Vec2f{42, 26}, atlas.Measure("abc", 2))
}
