package pulse

import "github.com/oliverbestmann/webgpu/wgpu"

// RenderTarget holds all the information of something that can be rendered to.
// This is normally the screen of the current frame.
type RenderTarget struct {
	View *wgpu.TextureView

	// In case of multisample rendering, this holds the
	// texture the multisampled fragment is resolved to.
	ResolveTarget *wgpu.TextureView

	// Depth attachment, nil if the target has no depth buffer
	Depth *wgpu.TextureView

	// Texture format of View
	Format wgpu.TextureFormat

	// Size of the target to render to
	Width  uint32
	Height uint32

	// The number of samples of the View texture
	SampleCount uint32
}

func (r *RenderTarget) Size() (float32, float32) {
	return float32(r.Width), float32(r.Height)
}

// ColorAttachment describes the color attachment of a render pass on this target.
func (r *RenderTarget) ColorAttachment(load wgpu.LoadOp, clear Color) wgpu.RenderPassColorAttachment {
	c := clear.ToWGPU()

	return wgpu.RenderPassColorAttachment{
		View:          r.View,
		ResolveTarget: r.ResolveTarget,
		LoadOp:        load,
		StoreOp:       wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: float64(c[0]),
			G: float64(c[1]),
			B: float64(c[2]),
			A: float64(c[3]),
		},
	}
}

// DepthAttachment describes the depth attachment of a render pass, or nil if the
// target has no depth buffer.
func (r *RenderTarget) DepthAttachment(load wgpu.LoadOp) *wgpu.RenderPassDepthStencilAttachment {
	if r.Depth == nil {
		return nil
	}

	return &wgpu.RenderPassDepthStencilAttachment{
		View:            r.Depth,
		DepthLoadOp:     load,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: 1,
	}
}
