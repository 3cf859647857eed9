package game

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"

	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/pulse"
	"github.com/oliverbestmann/xylo/world"
	"golang.org/x/sync/errgroup"
)

const (
	// MapSamples is the number of columns sampled along each axis of the map
	MapSamples = 400

	// MapDisplaySize is the edge length of the map on screen in pixels
	MapDisplaySize = 500
)

type BiomeSource interface {
	BiomeAt(x, z int) world.Biome
}

// RenderBiomeMap paints one pixel per column of a size x size area centered
// on (cx, cz). Rows are sampled in parallel.
func RenderBiomeMap(ctx context.Context, source BiomeSource, cx, cz, size int) (*image.NRGBA, error) {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	startX := cx - size/2
	startZ := cz - size/2

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(runtime.GOMAXPROCS(0))

	for row := range size {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			for col := range size {
				c := source.BiomeAt(startX+col, startZ+row).Info().MapColor

				offset := img.PixOffset(col, row)
				img.Pix[offset+0] = c.R
				img.Pix[offset+1] = c.G
				img.Pix[offset+2] = c.B
				img.Pix[offset+3] = 255
			}

			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("render biome map: %w", err)
	}

	return img, nil
}

// MapWorldPos converts a position on the map, with local coordinates in
// [0, 1], into world coordinates.
func MapWorldPos(cx, cz int, local glm.Vec2f, size int) (x, z int) {
	x = cx + int(math.Floor(float64((local[0]-0.5)*float32(size))))
	z = cz + int(math.Floor(float64((local[1]-0.5)*float32(size))))
	return x, z
}

// MapRect returns the screen rectangle the map is drawn to, centered on screen.
func MapRect(screenWidth, screenHeight float32) pulse.Rectangle2f {
	return pulse.RectangleFromXYWH(
		(screenWidth-MapDisplaySize)/2,
		(screenHeight-MapDisplaySize)/2,
		MapDisplaySize,
		MapDisplaySize,
	)
}

// MapView keeps the biome map around the player up to date.
type MapView struct {
	source BiomeSource

	image *image.NRGBA

	centerX, centerZ int
	valid            bool
}

func NewMapView(source BiomeSource) *MapView {
	return &MapView{source: source}
}

// Update regenerates the map if the player moved to another column since
// the last update. It reports whether the map changed.
func (m *MapView) Update(ctx context.Context, x, z int) (bool, error) {
	if m.valid && m.centerX == x && m.centerZ == z {
		return false, nil
	}

	img, err := RenderBiomeMap(ctx, m.source, x, z, MapSamples)
	if err != nil {
		return false, err
	}

	m.image = img
	m.centerX, m.centerZ = x, z
	m.valid = true

	return true, nil
}

func (m *MapView) Image() *image.NRGBA {
	return m.image
}

func (m *MapView) Center() (x, z int) {
	return m.centerX, m.centerZ
}

// Hover returns the text describing the column below the cursor, if the
// cursor is on the map drawn to rect.
func (m *MapView) Hover(cursor glm.Vec2f, rect pulse.Rectangle2f) (string, bool) {
	if !m.valid {
		return "", false
	}

	inside := cursor[0] >= rect.Min[0] && cursor[0] <= rect.Max[0] &&
		cursor[1] >= rect.Min[1] && cursor[1] <= rect.Max[1]

	if !inside {
		return "", false
	}

	local := cursor.Sub(rect.Min).Div(rect.Size())
	x, z := MapWorldPos(m.centerX, m.centerZ, local, MapSamples)

	biome := m.source.BiomeAt(x, z)
	return fmt.Sprintf("%s (%d, %d)", biome, x, z), true
}
