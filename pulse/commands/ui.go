package commands

import (
	_ "embed"
	"fmt"
	"log/slog"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/pulse"
)

//go:embed ui.wgsl
var uiShaderCode string

// maximum number of quads to render in one frame
const maxUIInstances = 16 * 1024

type uiUniforms struct {
	_ structs.HostLayout

	ScreenSize glm.Vec2f
	_          glm.Vec2f
}

type uiInstance struct {
	_ structs.HostLayout

	// Color to tint the texture with
	Color glm.Vec4f

	// Target region on screen in pixels (x, y, w, h)
	TargetRegion glm.Vec4f

	// Source region within the texture in uv coordinates (x, y, w, h)
	SourceRegion glm.Vec4f
}

// uiBatch is a range of instances sharing the same texture.
type uiBatch struct {
	texture *pulse.Texture
	first   uint32
	count   uint32
}

// UICommand draws screen space quads, text and images on top of the frame.
// Quads are collected and drawn in order on Flush.
type UICommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[uiPipelineConfig]

	instances    []uiInstance
	batches      []uiBatch
	bufInstances *wgpu.Buffer
	bufIndices   *wgpu.Buffer
	bufUniforms  *wgpu.Buffer

	sampler *wgpu.Sampler

	glyphs       *pulse.GlyphAtlas
	glyphTexture *pulse.Texture
	whiteTexture *pulse.Texture
}

func NewUICommand(ctx *pulse.Context) (*UICommand, error) {
	bufInstances := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "UI.Instances",
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(uiInstance{})) * maxUIInstances,
	})

	bufIndices := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "UI.Indices",
		Contents: wgpu.ToBytes([]uint16{2, 0, 1, 1, 3, 2}),
		Usage:    wgpu.BufferUsageIndex,
	})

	bufUniforms := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "UI.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(uiUniforms{})),
	})

	glyphs := pulse.NewGlyphAtlas()

	glyphTexture, err := pulse.NewTextureFromImage(ctx, "Glyphs", glyphs.Image)
	if err != nil {
		return nil, fmt.Errorf("upload glyph atlas: %w", err)
	}

	whiteTexture := pulse.NewTexture(ctx, pulse.NewTextureOptions{
		Label:  "White",
		Format: wgpu.TextureFormatRGBA8Unorm,
		Width:  1,
		Height: 1,
	})

	if err := whiteTexture.WritePixels(ctx, []byte{0xff, 0xff, 0xff, 0xff}); err != nil {
		glyphTexture.Release()
		return nil, fmt.Errorf("upload white texture: %w", err)
	}

	return &UICommand{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[uiPipelineConfig](ctx),
		bufInstances:  bufInstances,
		bufIndices:    bufIndices,
		bufUniforms:   bufUniforms,
		sampler:       pulse.PixelSampler(ctx.Device, wgpu.AddressModeClampToEdge),
		glyphs:        glyphs,
		glyphTexture:  glyphTexture,
		whiteTexture:  whiteTexture,
	}, nil
}

// Glyphs returns the glyph atlas used to draw text.
func (p *UICommand) Glyphs() *pulse.GlyphAtlas {
	return p.glyphs
}

// DrawImage draws the given texture stretched into the target rectangle.
func (p *UICommand) DrawImage(texture *pulse.Texture, target pulse.Rectangle2f, color pulse.Color) {
	p.push(texture, texture.UV(), target, color)
}

// DrawRect fills the target rectangle with a solid color.
func (p *UICommand) DrawRect(target pulse.Rectangle2f, color pulse.Color) {
	p.push(p.whiteTexture, pulse.RectangleFromXYWH[float32](0, 0, 1, 1), target, color)
}

// DrawText draws text with its top left corner at origin.
func (p *UICommand) DrawText(text string, origin glm.Vec2f, scale float32, color pulse.Color) {
	size := p.glyphTexture.Size().ToVec2f()

	for _, quad := range p.glyphs.Layout(text, origin, scale) {
		uv := pulse.RectangleFromPoints(
			quad.Source.Min.ToVec2f().Div(size),
			quad.Source.Max.ToVec2f().Div(size),
		)

		p.push(p.glyphTexture, uv, quad.Target, color)
	}
}

// MeasureText returns the size in pixels of the text drawn with DrawText.
func (p *UICommand) MeasureText(text string, scale float32) glm.Vec2f {
	return p.glyphs.Measure(text, scale)
}

func (p *UICommand) push(texture *pulse.Texture, uv pulse.Rectangle2f, target pulse.Rectangle2f, color pulse.Color) {
	if len(p.instances) >= maxUIInstances {
		slog.Warn("Too many ui quads, dropping quad", slog.Int("limit", maxUIInstances))
		return
	}

	root := texture.Root()

	if n := len(p.batches); n == 0 || p.batches[n-1].texture != root {
		p.batches = append(p.batches, uiBatch{
			texture: root,
			first:   uint32(len(p.instances)),
		})
	}

	p.batches[len(p.batches)-1].count++

	tx, ty, tw, th := target.XYWH()
	sx, sy, sw, sh := uv.XYWH()

	p.instances = append(p.instances, uiInstance{
		Color:        color.ToVec(),
		TargetRegion: glm.Vec4f{tx, ty, tw, th},
		SourceRegion: glm.Vec4f{sx, sy, sw, sh},
	})
}

// Flush draws all collected quads onto the target.
func (p *UICommand) Flush(target *pulse.RenderTarget) {
	defer p.reset()

	if len(p.instances) == 0 {
		return
	}

	slog.Debug("Rendering ui", slog.Int("instanceCount", len(p.instances)), slog.Int("batches", len(p.batches)))

	p.ctx.WriteBuffer(p.bufInstances, 0, wgpu.ToBytes(p.instances))

	uni := uiUniforms{
		ScreenSize: glm.Vec2f{float32(target.Width), float32(target.Height)},
	}

	p.ctx.WriteBuffer(p.bufUniforms, 0, wgpu.ToBytes([]uiUniforms{uni}))

	pc := p.pipelineCache.Get(uiPipelineConfig{
		TargetFormat:      target.Format,
		TargetSampleCount: target.SampleCount,
	})

	encoder := p.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "UI"})
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassUI",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			target.ColorAttachment(wgpu.LoadOpLoad, pulse.ColorBlack),
		},
	})

	pass.SetPipeline(pc.Pipeline)
	pass.SetVertexBuffer(0, p.bufInstances, 0, wgpu.WholeSize)
	pass.SetIndexBuffer(p.bufIndices, wgpu.IndexFormatUint16, 0, wgpu.WholeSize)

	for _, batch := range p.batches {
		bindGroup := p.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "UI BindGroup",
			Layout: pc.GetBindGroupLayout(0),
			Entries: []wgpu.BindGroupEntry{
				{
					Binding:     0,
					TextureView: batch.texture.SourceView(),
				},
				{
					Binding: 1,
					Sampler: p.sampler,
				},
				{
					Binding: 2,
					Buffer:  p.bufUniforms,
					Size:    wgpu.WholeSize,
				},
			},
		})

		defer bindGroup.Release()

		pass.SetBindGroup(0, bindGroup, nil)
		pass.DrawIndexed(6, batch.count, 0, 0, batch.first)
	}

	pass.End()

	cmdBuffer := encoder.Finish(nil)
	defer cmdBuffer.Release()

	p.ctx.Submit(cmdBuffer)
}

func (p *UICommand) reset() {
	p.instances = p.instances[:0]
	p.batches = p.batches[:0]
}

func (p *UICommand) Release() {
	p.pipelineCache.Purge()
	p.glyphTexture.Release()
	p.whiteTexture.Release()
	p.bufInstances.Release()
	p.bufIndices.Release()
	p.bufUniforms.Release()
}

type uiPipelineConfig struct {
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
}

func (conf uiPipelineConfig) Specialize(dev *wgpu.Device) *wgpu.RenderPipeline {
	slog.Info(
		"Create RenderPipeline for ui",
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "UI.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: uiShaderCode},
	})

	defer shader.Release()

	blendState := wgpu.BlendStateAlphaBlending

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("UI.%s", conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers: []wgpu.VertexBufferLayout{
				{
					StepMode:    wgpu.VertexStepModeInstance,
					ArrayStride: uint64(unsafe.Sizeof(uiInstance{})),
					Attributes: []wgpu.VertexAttribute{
						{
							// color
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(uiInstance{}.Color)),
							ShaderLocation: 0,
						},
						{
							// target rect
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(uiInstance{}.TargetRegion)),
							ShaderLocation: 1,
						},
						{
							// source rect
							Format:         wgpu.VertexFormatFloat32x4,
							Offset:         uint64(unsafe.Offsetof(uiInstance{}.SourceRegion)),
							ShaderLocation: 2,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     &blendState,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		DepthStencil: nil,
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	return dev.CreateRenderPipeline(desc)
}
