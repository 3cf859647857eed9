package commands

import (
	"cmp"
	_ "embed"
	"fmt"
	"log/slog"
	"slices"
	"structs"
	"unsafe"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/xylo/glm"
	"github.com/oliverbestmann/xylo/pulse"
	"github.com/oliverbestmann/xylo/world"
)

//go:embed voxel.wgsl
var voxelShaderCode string

//go:generate go tool stringer -type=voxelPass -trimprefix=pass

type voxelPass uint8

const (
	passSolid voxelPass = iota
	passFoliage
	passTallGrass
	passWater
	passCount
)

type voxelUniforms struct {
	_ structs.HostLayout

	ViewProj [16]float32
	Camera   glm.Vec3f
	Time     float32
}

// chunkBuffers holds the vertex buffers of one chunk on the gpu, one per pass.
type chunkBuffers struct {
	pos     world.ChunkPos
	buffers [passCount]*wgpu.Buffer
	counts  [passCount]uint32
}

func (c *chunkBuffers) release() {
	for idx, buf := range c.buffers {
		if buf != nil {
			buf.Release()
		}

		c.buffers[idx] = nil
		c.counts[idx] = 0
	}
}

// bounds returns the axis aligned bounding box of the chunk column.
func (c *chunkBuffers) bounds() (lo, hi glm.Vec3f) {
	ox, oz := c.pos.Origin()

	lo = glm.Vec3f{float32(ox), world.MinY, float32(oz)}
	hi = glm.Vec3f{float32(ox + world.ChunkSize), world.MaxY, float32(oz + world.ChunkSize)}
	return lo, hi
}

// distanceSqr returns the squared horizontal distance of the chunk center to the camera.
func distanceSqr(pos world.ChunkPos, camera glm.Vec3f) float32 {
	ox, oz := pos.Origin()
	dx := float32(ox) + world.ChunkSize/2 - camera[0]
	dz := float32(oz) + world.ChunkSize/2 - camera[2]
	return dx*dx + dz*dz
}

func meshBuckets(mesh *world.Mesh) [passCount][]world.Vertex {
	return [passCount][]world.Vertex{
		passSolid:     mesh.Solid,
		passFoliage:   mesh.Foliage,
		passTallGrass: mesh.TallGrass,
		passWater:     mesh.Water,
	}
}

type VoxelCommand struct {
	ctx *pulse.Context

	pipelineCache *pulse.PipelineCache[voxelPipelineConfig]

	blocks  *pulse.Texture
	sampler *wgpu.Sampler

	bufUniforms *wgpu.Buffer

	chunks map[int64]*chunkBuffers

	// maximum number of chunk meshes uploaded per call to Sync
	uploadBudget int

	stats VoxelStats

	// scratch buffers reused between frames
	pending []*world.Chunk
	visible []*chunkBuffers
}

// NewVoxelCommand creates a command to render chunk meshes. The block textures
// are expected to be a 2d array texture with one layer per world.Layer.
func NewVoxelCommand(ctx *pulse.Context, blocks *pulse.Texture, uploadBudget int) *VoxelCommand {
	bufUniforms := ctx.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Voxel.Uniforms",
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		Size:  uint64(unsafe.Sizeof(voxelUniforms{})),
	})

	return &VoxelCommand{
		ctx:           ctx,
		pipelineCache: pulse.NewPipelineCache[voxelPipelineConfig](ctx),
		blocks:        blocks,
		sampler:       pulse.PixelSampler(ctx.Device, wgpu.AddressModeRepeat),
		bufUniforms:   bufUniforms,
		chunks:        map[int64]*chunkBuffers{},
		uploadBudget:  max(uploadBudget, 1),
	}
}

type VoxelStats struct {
	// number of chunks with buffers on the gpu
	Chunks int

	// number of meshes uploaded in the last Sync
	Uploaded int

	// number of chunks drawn in the last Draw
	Visible int
}

// Sync releases the buffers of chunks that are no longer loaded and uploads
// pending meshes, nearest chunks first, up to the upload budget.
// It returns the number of uploaded meshes.
func (v *VoxelCommand) Sync(chunks []*world.Chunk, camera glm.Vec3f) int {
	loaded := make(map[int64]struct{}, len(chunks))

	v.pending = v.pending[:0]

	for _, chunk := range chunks {
		loaded[chunk.Pos.Key()] = struct{}{}

		if chunk.HasPendingMesh() {
			v.pending = append(v.pending, chunk)
		}
	}

	for key, buffers := range v.chunks {
		if _, ok := loaded[key]; !ok {
			buffers.release()
			delete(v.chunks, key)
		}
	}

	slices.SortFunc(v.pending, func(a, b *world.Chunk) int {
		return cmp.Compare(distanceSqr(a.Pos, camera), distanceSqr(b.Pos, camera))
	})

	var uploaded int

	for _, chunk := range v.pending {
		if uploaded >= v.uploadBudget {
			break
		}

		mesh := chunk.TakeMesh()
		if mesh == nil {
			continue
		}

		v.upload(chunk.Pos, mesh)
		uploaded++
	}

	v.stats.Uploaded = uploaded
	v.stats.Chunks = len(v.chunks)

	return uploaded
}

func (v *VoxelCommand) upload(pos world.ChunkPos, mesh *world.Mesh) {
	key := pos.Key()

	buffers, ok := v.chunks[key]
	if ok {
		buffers.release()
	} else {
		buffers = &chunkBuffers{pos: pos}
		v.chunks[key] = buffers
	}

	for pass, vertices := range meshBuckets(mesh) {
		if len(vertices) == 0 {
			continue
		}

		buffers.buffers[pass] = v.ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
			Label:    fmt.Sprintf("Voxel.%s(%d, %d)", voxelPass(pass), pos.X, pos.Z),
			Contents: wgpu.ToBytes(vertices),
			Usage:    wgpu.BufferUsageVertex,
		})

		buffers.counts[pass] = uint32(len(vertices))
	}
}

type DrawVoxelOptions struct {
	ViewProj glm.Mat4f
	Camera   glm.Vec3f

	// Time in seconds, drives the wind animation
	Time float32
}

// Draw renders all chunks in the view frustum to the target. Opaque passes are
// drawn front to back, water is drawn last from back to front.
func (v *VoxelCommand) Draw(target *pulse.RenderTarget, opts DrawVoxelOptions) int {
	v.visible = cullAndSort(v.visible[:0], v.chunks, glm.FrustumOf(opts.ViewProj), opts.Camera)
	v.stats.Visible = len(v.visible)

	if len(v.visible) == 0 {
		return 0
	}

	uniforms := voxelUniforms{
		ViewProj: opts.ViewProj.ToWGPU(),
		Camera:   opts.Camera,
		Time:     opts.Time,
	}

	v.ctx.WriteBuffer(v.bufUniforms, 0, pulse.AsByteSlice(&uniforms))

	encoder := v.ctx.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "Voxel"})
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "RenderPassVoxel",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			target.ColorAttachment(wgpu.LoadOpLoad, pulse.ColorBlack),
		},
		DepthStencilAttachment: target.DepthAttachment(wgpu.LoadOpLoad),
	})

	for kind := range passCount {
		pc := v.pipelineCache.Get(voxelPipelineConfig{
			Pass:              kind,
			TargetFormat:      target.Format,
			TargetSampleCount: target.SampleCount,
			Depth:             target.Depth != nil,
		})

		bindGroup := v.ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "Voxel BindGroup",
			Layout: pc.GetBindGroupLayout(0),
			Entries: []wgpu.BindGroupEntry{
				{
					Binding: 0,
					Buffer:  v.bufUniforms,
					Size:    wgpu.WholeSize,
				},
				{
					Binding:     1,
					TextureView: v.blocks.SourceView(),
				},
				{
					Binding: 2,
					Sampler: v.sampler,
				},
			},
		})

		defer bindGroup.Release()

		pass.SetPipeline(pc.Pipeline)
		pass.SetBindGroup(0, bindGroup, nil)

		for idx := range v.visible {
			// transparent geometry must be blended from back to front
			chunk := v.visible[idx]
			if kind == passWater {
				chunk = v.visible[len(v.visible)-1-idx]
			}

			count := chunk.counts[kind]
			if count == 0 {
				continue
			}

			pass.SetVertexBuffer(0, chunk.buffers[kind], 0, wgpu.WholeSize)
			pass.Draw(count, 1, 0, 0)
		}
	}

	pass.End()

	cmdBuffer := encoder.Finish(nil)
	defer cmdBuffer.Release()

	v.ctx.Submit(cmdBuffer)

	return len(v.visible)
}

// cullAndSort collects all chunks intersecting the frustum, sorted by distance to the camera.
func cullAndSort(result []*chunkBuffers, chunks map[int64]*chunkBuffers, frustum glm.Frustum, camera glm.Vec3f) []*chunkBuffers {
	for _, chunk := range chunks {
		lo, hi := chunk.bounds()
		if !frustum.IntersectsAABB(lo, hi) {
			continue
		}

		result = append(result, chunk)
	}

	slices.SortFunc(result, func(a, b *chunkBuffers) int {
		return cmp.Or(
			cmp.Compare(distanceSqr(a.pos, camera), distanceSqr(b.pos, camera)),
			cmp.Compare(a.pos.X, b.pos.X),
			cmp.Compare(a.pos.Z, b.pos.Z),
		)
	})

	return result
}

func (v *VoxelCommand) Stats() VoxelStats {
	return v.stats
}

// Release frees all chunk buffers and the uniform buffer.
func (v *VoxelCommand) Release() {
	for key, buffers := range v.chunks {
		buffers.release()
		delete(v.chunks, key)
	}

	v.pipelineCache.Purge()
	v.bufUniforms.Release()
}

type voxelPipelineConfig struct {
	Pass              voxelPass
	TargetFormat      wgpu.TextureFormat
	TargetSampleCount uint32
	Depth             bool
}

func (conf voxelPipelineConfig) Specialize(dev *wgpu.Device) *wgpu.RenderPipeline {
	slog.Info(
		"Create RenderPipeline for voxels",
		slog.String("pass", conf.Pass.String()),
		slog.Any("format", conf.TargetFormat),
		slog.Any("sampleCount", conf.TargetSampleCount),
	)

	shader := dev.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:      "Voxel.ShaderSource",
		WGSLSource: &wgpu.ShaderSourceWGSL{Code: voxelShaderCode},
	})

	defer shader.Release()

	vertexEntryPoint := "vs_main"
	fragmentEntryPoint := "fs_main"
	cullMode := wgpu.CullModeBack
	depthWrite := true

	var blend *wgpu.BlendState

	switch conf.Pass {
	case passFoliage:
		vertexEntryPoint = "vs_foliage"
		fragmentEntryPoint = "fs_cutout"
		cullMode = wgpu.CullModeNone

	case passTallGrass:
		vertexEntryPoint = "vs_grass"
		fragmentEntryPoint = "fs_cutout"
		cullMode = wgpu.CullModeNone

	case passWater:
		fragmentEntryPoint = "fs_water"
		cullMode = wgpu.CullModeNone
		depthWrite = false
		blendState := wgpu.BlendStateAlphaBlending
		blend = &blendState
	}

	var depthStencil *wgpu.DepthStencilState
	if conf.Depth {
		depthStencil = &wgpu.DepthStencilState{
			Format:            pulse.DepthFormat,
			DepthWriteEnabled: depthWrite,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare:     wgpu.CompareFunctionAlways,
				FailOp:      wgpu.StencilOperationKeep,
				DepthFailOp: wgpu.StencilOperationKeep,
				PassOp:      wgpu.StencilOperationKeep,
			},
		}
	}

	desc := &wgpu.RenderPipelineDescriptor{
		Label: fmt.Sprintf("Voxel.%s.%s", conf.Pass, conf.TargetFormat),
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: vertexEntryPoint,
			Buffers: []wgpu.VertexBufferLayout{
				{
					StepMode:    wgpu.VertexStepModeVertex,
					ArrayStride: uint64(unsafe.Sizeof(world.Vertex{})),
					Attributes: []wgpu.VertexAttribute{
						{
							// position
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(world.Vertex{}.Position)),
							ShaderLocation: 0,
						},
						{
							// uv
							Format:         wgpu.VertexFormatFloat32x2,
							Offset:         uint64(unsafe.Offsetof(world.Vertex{}.UV)),
							ShaderLocation: 1,
						},
						{
							// texture layer
							Format:         wgpu.VertexFormatFloat32,
							Offset:         uint64(unsafe.Offsetof(world.Vertex{}.Layer)),
							ShaderLocation: 2,
						},
						{
							// tint and shading
							Format:         wgpu.VertexFormatFloat32x3,
							Offset:         uint64(unsafe.Offsetof(world.Vertex{}.Color)),
							ShaderLocation: 3,
						},
					},
				},
			},
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{
				{
					Format:    conf.TargetFormat,
					Blend:     blend,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  cullMode,
		},
		DepthStencil: depthStencil,
		Multisample: wgpu.MultisampleState{
			Count:                  conf.TargetSampleCount,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	}

	return dev.CreateRenderPipeline(desc)
}
