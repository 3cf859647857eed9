package pulse

import (
	"image"

	"github.com/oliverbestmann/xylo/glm"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	firstGlyph = ' '
	lastGlyph  = '~'

	atlasColumns = 16
)

// GlyphAtlas is a bitmap font rasterized into a single image. It contains
// the printable ascii range.
type GlyphAtlas struct {
	Image *image.RGBA

	CellWidth  int
	CellHeight int

	// Advance is the horizontal distance between two glyphs in pixels
	Advance int

	// LineHeight is the vertical distance between two lines in pixels
	LineHeight int
}

// GlyphQuad describes one glyph to draw: the pixel rectangle in the atlas
// and the target rectangle on screen.
type GlyphQuad struct {
	Source Rectangle2u
	Target Rectangle2f
}

func NewGlyphAtlas() *GlyphAtlas {
	face := basicfont.Face7x13

	cellWidth := face.Advance
	cellHeight := face.Height

	glyphCount := int(lastGlyph-firstGlyph) + 1
	rows := (glyphCount + atlasColumns - 1) / atlasColumns

	img := image.NewRGBA(image.Rect(0, 0, atlasColumns*cellWidth, rows*cellHeight))

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.White,
		Face: face,
	}

	for ch := rune(firstGlyph); ch <= lastGlyph; ch++ {
		idx := int(ch - firstGlyph)
		x := (idx % atlasColumns) * cellWidth
		y := (idx / atlasColumns) * cellHeight

		drawer.Dot = fixed.P(x, y+face.Ascent)
		drawer.DrawString(string(ch))
	}

	return &GlyphAtlas{
		Image:      img,
		CellWidth:  cellWidth,
		CellHeight: cellHeight,
		Advance:    face.Advance,
		LineHeight: face.Height + 2,
	}
}

// Region returns the pixel rectangle of the given rune within the atlas.
// Runes outside of the atlas are mapped to '?'.
func (a *GlyphAtlas) Region(ch rune) Rectangle2u {
	if ch < firstGlyph || ch > lastGlyph {
		ch = '?'
	}

	idx := int(ch - firstGlyph)
	x := (idx % atlasColumns) * a.CellWidth
	y := (idx / atlasColumns) * a.CellHeight

	return RectangleFromXYWH(uint32(x), uint32(y), uint32(a.CellWidth), uint32(a.CellHeight))
}

// Layout places the text with its top left corner at origin. Glyphs are scaled
// by the given factor, newlines start a new line. Whitespace does not produce quads.
func (a *GlyphAtlas) Layout(text string, origin glm.Vec2f, scale float32) []GlyphQuad {
	var quads []GlyphQuad

	cursor := origin

	for _, ch := range text {
		switch ch {
		case '\n':
			cursor[0] = origin[0]
			cursor[1] += float32(a.LineHeight) * scale
			continue

		case ' ', '\t':
			cursor[0] += float32(a.Advance) * scale
			continue
		}

		quads = append(quads, GlyphQuad{
			Source: a.Region(ch),
			Target: RectangleFromSize(cursor, glm.Vec2f{
				float32(a.CellWidth) * scale,
				float32(a.CellHeight) * scale,
			}),
		})

		cursor[0] += float32(a.Advance) * scale
	}

	return quads
}

// Measure returns the size of the text as laid out by Layout.
func (a *GlyphAtlas) Measure(text string, scale float32) glm.Vec2f {
	if text == "" {
		return glm.Vec2f{}
	}

	var width, lineWidth int
	lines := 1

	for _, ch := range text {
		if ch == '\n' {
			lines++
			lineWidth = 0
			continue
		}

		lineWidth += a.Advance
		width = max(width, lineWidth)
	}

	height := (lines-1)*a.LineHeight + a.CellHeight

	return glm.Vec2f{float32(width) * scale, float32(height) * scale}
}
