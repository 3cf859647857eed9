package pulse

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/xylo/glm"
)

// Texture wraps a wgpu.Texture and a default wgpu.TextureView.
// Multisample textures that are sampled also hold a resolve target
// texture. A Texture can represent a sub region of another texture.
type Texture struct {
	// point to root Texture this texture is a part of.
	root *Texture

	texture     *wgpu.Texture
	textureView *wgpu.TextureView

	resolveTarget *Texture

	// number of array layers
	layers uint32

	// sub texture
	region Rectangle2u
}

type NewTextureOptions struct {
	Format wgpu.TextureFormat
	Width  uint32
	Height uint32

	// Layers creates a 2d array texture if larger than one
	Layers uint32

	MSAA  bool
	Label string
}

func NewTexture(ctx *Context, opts NewTextureOptions) *Texture {
	var sampleCount uint32 = 1

	if opts.MSAA {
		sampleCount = 4
	}

	layers := max(opts.Layers, 1)

	desc := &wgpu.TextureDescriptor{
		Label:         opts.Label,
		Format:        opts.Format,
		SampleCount:   sampleCount,
		MipLevelCount: 1,

		Dimension: wgpu.TextureDimension2D,
		Size: wgpu.Extent3D{
			Width:              opts.Width,
			Height:             opts.Height,
			DepthOrArrayLayers: layers,
		},

		// allow to do almost everything with this texture
		Usage: wgpu.TextureUsageTextureBinding |
			wgpu.TextureUsageCopyDst |
			wgpu.TextureUsageCopySrc,
	}

	if layers == 1 {
		desc.Usage |= wgpu.TextureUsageRenderAttachment
	}

	return NewTextureFromDesc(ctx, desc)
}

// NewTextureFromDesc gives you full control and creates a texture directly from
// a texture descriptor
func NewTextureFromDesc(ctx *Context, desc *wgpu.TextureDescriptor) *Texture {
	texture := ctx.Device.CreateTexture(desc)

	layers := max(desc.Size.DepthOrArrayLayers, 1)

	// now create a default texture view
	var viewDesc *wgpu.TextureViewDescriptor
	if layers > 1 {
		viewDesc = &wgpu.TextureViewDescriptor{
			Label:           desc.Label,
			Format:          desc.Format,
			Dimension:       wgpu.TextureViewDimension2DArray,
			BaseMipLevel:    0,
			MipLevelCount:   desc.MipLevelCount,
			BaseArrayLayer:  0,
			ArrayLayerCount: layers,
			Aspect:          wgpu.TextureAspectAll,
		}
	}

	textureView := texture.CreateView(viewDesc)

	var resolveTarget *Texture

	if needsResolveTarget(desc) {
		// create resolve target texture
		descResolve := *desc
		descResolve.SampleCount = 1

		resolveTarget = NewTextureFromDesc(ctx, &descResolve)
	}

	region := RectangleFromSize(
		glm.Vec2u{},
		glm.Vec2u{
			desc.Size.Width,
			desc.Size.Height,
		},
	)

	t := &Texture{
		texture:       texture,
		textureView:   textureView,
		resolveTarget: resolveTarget,

		region: region,
		layers: layers,
	}

	// texture itself is the root
	t.root = t

	return t
}

// needsResolveTarget reports whether the texture is multisampled and bound
// for sampling. Pure render attachments resolve into the surface.
func needsResolveTarget(desc *wgpu.TextureDescriptor) bool {
	return desc.SampleCount > 1 && desc.Usage&wgpu.TextureUsageTextureBinding != 0
}

func (t *Texture) SourceView() *wgpu.TextureView {
	if t.resolveTarget != nil {
		return t.resolveTarget.textureView
	}

	return t.textureView
}

func (t *Texture) Root() *Texture {
	return t.root
}

func (t *Texture) Width() uint32 {
	return t.region.Width()
}

func (t *Texture) Height() uint32 {
	return t.region.Height()
}

func (t *Texture) Offset() glm.Vec2u {
	return t.region.Min
}

func (t *Texture) Size() glm.Vec2u {
	return t.region.Size()
}

// UV returns the region of this texture within its root in uv coordinates.
func (t *Texture) UV() Rectangle2f {
	rootSize := t.root.Size().ToVec2f()
	uvOffset := t.Offset().ToVec2f().Div(rootSize)
	uvScale := t.Size().ToVec2f().Div(rootSize)
	return RectangleFromSize(uvOffset, uvScale)
}

// Release releases the texture view. This only works for the root texture,
// not for a sub texture. You must be sure to not use the texture after
// calling release.
func (t *Texture) Release() {
	if t.root == t {
		t.textureView.Release()
		t.texture.Release()

		if t.resolveTarget != nil {
			t.resolveTarget.Release()
		}
	}
}

func (t *Texture) WritePixels(ctx *Context, pixels []byte) error {
	rect := RectangleFromXYWH(0, 0, t.Width(), t.Height())

	return t.WritePixelsToRect(ctx, WritePixelsOptions{
		Pixels: pixels,
		Region: rect,
	})
}

type WritePixelsOptions struct {
	Pixels   []byte
	Region   Rectangle2u
	Stride   uint32
	MipLevel uint32

	// array layer to write to
	Layer uint32
}

func (t *Texture) WritePixelsToRect(ctx *Context, opts WritePixelsOptions) error {
	// fail if not in rect
	if !t.region.Contains(opts.Region) {
		return fmt.Errorf("target rect %s not in texture region %s", opts.Region, t.region)
	}

	if opts.Layer >= t.layers {
		return fmt.Errorf("layer %d out of range, texture has %d layers", opts.Layer, t.layers)
	}

	if opts.Stride == 0 {
		opts.Stride = opts.Region.Width() * 4
	}

	if need := int(opts.Stride * opts.Region.Height()); len(opts.Pixels) < need {
		return fmt.Errorf("expected %d bytes of pixel data, got %d", need, len(opts.Pixels))
	}

	layout := &wgpu.TexelCopyBufferLayout{
		Offset:       0,
		BytesPerRow:  opts.Stride,
		RowsPerImage: opts.Region.Height(),
	}

	size := &wgpu.Extent3D{
		Width:              opts.Region.Width(),
		Height:             opts.Region.Height(),
		DepthOrArrayLayers: 1,
	}

	dest := &wgpu.TexelCopyTextureInfo{
		Texture:  t.texture,
		MipLevel: opts.MipLevel,
		Origin: wgpu.Origin3D{
			X: opts.Region.Min[0],
			Y: opts.Region.Min[1],
			Z: opts.Layer,
		},
		Aspect: wgpu.TextureAspectAll,
	}

	// send data to the gpu
	ctx.WriteTexture(dest, opts.Pixels, layout, size)

	return nil
}

// ToNRGBA converts any image into a tightly packed image with straight alpha,
// the layout expected by the rgba8 textures.
func ToNRGBA(src image.Image) *image.NRGBA {
	if img, ok := src.(*image.NRGBA); ok && img.Rect.Min == (image.Point{}) && img.Stride == 4*img.Rect.Dx() {
		return img
	}

	iw, ih := src.Bounds().Dx(), src.Bounds().Dy()
	img := image.NewNRGBA(image.Rect(0, 0, iw, ih))

	draw.Draw(img, img.Bounds(), src, src.Bounds().Min, draw.Src)

	return img
}

func NewTextureFromImage(ctx *Context, label string, src image.Image) (*Texture, error) {
	img := ToNRGBA(src)

	t := NewTexture(ctx, NewTextureOptions{
		Label:  label,
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  uint32(img.Rect.Dx()),
		Height: uint32(img.Rect.Dy()),
	})

	if err := t.WritePixels(ctx, img.Pix); err != nil {
		t.Release()
		return nil, fmt.Errorf("upload texture: %w", err)
	}

	return t, nil
}

// NewTextureArray uploads all images as layers of a single 2d array texture.
// All images must have the same size.
func NewTextureArray(ctx *Context, label string, images []image.Image) (*Texture, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("texture array %q has no layers", label)
	}

	size := images[0].Bounds().Size()
	for idx, img := range images {
		if img.Bounds().Size() != size {
			return nil, fmt.Errorf("layer %d of %q has size %s, expected %s", idx, label, img.Bounds().Size(), size)
		}
	}

	t := NewTexture(ctx, NewTextureOptions{
		Label:  label,
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  uint32(size.X),
		Height: uint32(size.Y),
		Layers: uint32(len(images)),
	})

	for idx, img := range images {
		err := t.WritePixelsToRect(ctx, WritePixelsOptions{
			Pixels: ToNRGBA(img).Pix,
			Region: RectangleFromXYWH(0, 0, uint32(size.X), uint32(size.Y)),
			Layer:  uint32(idx),
		})

		if err != nil {
			t.Release()
			return nil, fmt.Errorf("upload layer %d of %q: %w", idx, label, err)
		}
	}

	return t, nil
}
