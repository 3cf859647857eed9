package game

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"

	"github.com/oliverbestmann/xylo/world"
)

// TextureSize is the edge length of a block texture in pixels.
const TextureSize = 16

type pattern uint8

const (
	patternNoise pattern = iota
	patternGrassSide
	patternLogSide
	patternLogTop
	patternLeaves
	patternFluid
	patternPlant
)

type layerStyle struct {
	base      color.NRGBA
	variation int
	pattern   pattern

	// plant blades reach at least this many pixels up
	minBlade int
}

// tinted layers are kept close to gray, the mesh multiplies them with the block tint.
var layerStyles = [world.LayerCount]layerStyle{
	world.LayerGrassTop:        {base: color.NRGBA{170, 170, 170, 255}, variation: 28},
	world.LayerGrassSide:       {base: color.NRGBA{134, 96, 67, 255}, variation: 18, pattern: patternGrassSide},
	world.LayerDirt:            {base: color.NRGBA{134, 96, 67, 255}, variation: 18},
	world.LayerStone:           {base: color.NRGBA{125, 125, 125, 255}, variation: 16},
	world.LayerLog:             {base: color.NRGBA{102, 81, 51, 255}, variation: 14, pattern: patternLogSide},
	world.LayerLogTop:          {base: color.NRGBA{168, 134, 84, 255}, variation: 10, pattern: patternLogTop},
	world.LayerLeaves:          {base: color.NRGBA{150, 150, 150, 255}, variation: 40, pattern: patternLeaves},
	world.LayerSand:            {base: color.NRGBA{219, 207, 163, 255}, variation: 10},
	world.LayerWater:           {base: color.NRGBA{50, 90, 210, 170}, variation: 12, pattern: patternFluid},
	world.LayerSnow:            {base: color.NRGBA{245, 250, 252, 255}, variation: 6},
	world.LayerShortGrass:      {base: color.NRGBA{160, 160, 160, 255}, variation: 30, pattern: patternPlant, minBlade: 5},
	world.LayerTallGrassBottom: {base: color.NRGBA{160, 160, 160, 255}, variation: 30, pattern: patternPlant, minBlade: 16},
	world.LayerTallGrassTop:    {base: color.NRGBA{160, 160, 160, 255}, variation: 30, pattern: patternPlant, minBlade: 4},
	world.LayerDeepslate:       {base: color.NRGBA{77, 77, 82, 255}, variation: 12},
	world.LayerLava:            {base: color.NRGBA{230, 110, 20, 255}, variation: 30, pattern: patternFluid},
}

// BlockTextures returns one image per texture layer. Layers are generated and
// replaced by <overrideDir>/<layer name>.png if such a file exists.
func BlockTextures(overrideDir string) []image.Image {
	layers := make([]image.Image, world.LayerCount)

	var overrides int

	for idx := range world.LayerCount {
		layer := world.Layer(idx)
		layers[idx] = GenerateLayer(layer)

		if overrideDir == "" {
			continue
		}

		path := filepath.Join(overrideDir, layer.Name()+".png")

		img, err := loadOverride(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			continue

		case err != nil:
			slog.Warn("Ignoring texture override", slog.String("path", path), slog.String("err", err.Error()))
			continue
		}

		layers[idx] = img
		overrides++
	}

	if overrideDir != "" {
		slog.Info("Block textures loaded", slog.String("dir", overrideDir), slog.Int("overrides", overrides))
	}

	return layers
}

func loadOverride(path string) (image.Image, error) {
	fp, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer fp.Close()

	img, err := png.Decode(fp)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", path, err)
	}

	if size := img.Bounds().Size(); size.X != TextureSize || size.Y != TextureSize {
		return nil, fmt.Errorf("texture %q has size %s, expected %dx%d", path, size, TextureSize, TextureSize)
	}

	return img, nil
}

// GenerateLayer paints the texture of the given layer. The result only
// depends on the layer.
func GenerateLayer(layer world.Layer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, TextureSize, TextureSize))

	if int(layer) >= world.LayerCount {
		return img
	}

	style := layerStyles[layer]
	rng := rand.New(rand.NewPCG(uint64(layer)+1, 0x9e3779b97f4a7c15))

	for y := range TextureSize {
		for x := range TextureSize {
			shade := rng.IntN(2*style.variation+1) - style.variation
			img.SetNRGBA(x, y, shaded(style.base, shade))
		}
	}

	switch style.pattern {
	case patternGrassSide:
		paintGrassSide(img, rng)
	case patternLogSide:
		paintLogSide(img, style)
	case patternLogTop:
		paintLogTop(img, style)
	case patternLeaves:
		paintLeaves(img, rng)
	case patternFluid:
		paintFluid(img, style)
	case patternPlant:
		paintPlant(img, rng, style.minBlade)
	}

	return img
}

func shaded(c color.NRGBA, delta int) color.NRGBA {
	channel := func(v uint8) uint8 {
		return uint8(min(max(int(v)+delta, 0), 255))
	}

	return color.NRGBA{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: c.A}
}

// paintGrassSide draws a green band with an uneven lower edge over dirt.
func paintGrassSide(img *image.NRGBA, rng *rand.Rand) {
	green := color.NRGBA{R: 106, G: 163, B: 60, A: 255}

	for x := range TextureSize {
		depth := 3 + rng.IntN(3)
		for y := range depth {
			img.SetNRGBA(x, y, shaded(green, rng.IntN(21)-10))
		}
	}
}

func paintLogSide(img *image.NRGBA, style layerStyle) {
	for x := range TextureSize {
		// darker bark grooves every few columns
		if x%4 != 1 {
			continue
		}

		for y := range TextureSize {
			img.SetNRGBA(x, y, shaded(style.base, -30))
		}
	}
}

func paintLogTop(img *image.NRGBA, style layerStyle) {
	const center = (TextureSize - 1) / 2.0

	bark := color.NRGBA{R: 102, G: 81, B: 51, A: 255}

	for y := range TextureSize {
		for x := range TextureSize {
			dx, dy := float64(x)-center, float64(y)-center
			dist := math.Max(math.Abs(dx), math.Abs(dy))

			switch {
			case dist >= center-0.5:
				img.SetNRGBA(x, y, bark)
			case int(dist)%3 == 0:
				img.SetNRGBA(x, y, shaded(style.base, -25))
			}
		}
	}
}

func paintLeaves(img *image.NRGBA, rng *rand.Rand) {
	for y := range TextureSize {
		for x := range TextureSize {
			if rng.IntN(5) == 0 {
				img.SetNRGBA(x, y, color.NRGBA{})
			}
		}
	}
}

// paintFluid adds horizontal waves by brightening every other diagonal band.
func paintFluid(img *image.NRGBA, style layerStyle) {
	for y := range TextureSize {
		for x := range TextureSize {
			if (x+2*y)%8 < 2 {
				img.SetNRGBA(x, y, shaded(style.base, 20))
			}
		}
	}
}

// paintPlant clears the background and draws vertical blades growing from
// the bottom row.
func paintPlant(img *image.NRGBA, rng *rand.Rand, minBlade int) {
	blades := image.NewNRGBA(img.Rect)

	for x := range TextureSize {
		if rng.IntN(3) == 0 {
			continue
		}

		height := min(minBlade+rng.IntN(TextureSize-minBlade+1), TextureSize)
		for dy := range height {
			y := TextureSize - 1 - dy
			blades.SetNRGBA(x, y, img.NRGBAAt(x, y))
		}
	}

	copy(img.Pix, blades.Pix)
}
