package commands

import (
	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/oliverbestmann/xylo/pulse"
)

type ClearCommand struct {
	context *pulse.Context
}

func NewClear(ctx *pulse.Context) *ClearCommand {
	return &ClearCommand{context: ctx}
}

// Clear fills the color attachment of the target with the given color and
// resets the depth buffer, if the target has one.
func (c *ClearCommand) Clear(target *pulse.RenderTarget, color pulse.Color) {
	enc := c.context.CreateCommandEncoder(&wgpu.CommandEncoderDescriptor{Label: "ClearTarget"})
	defer enc.Release()

	desc := &wgpu.RenderPassDescriptor{
		Label: "ClearTarget",
		ColorAttachments: []wgpu.RenderPassColorAttachment{
			target.ColorAttachment(wgpu.LoadOpClear, color),
		},
		DepthStencilAttachment: target.DepthAttachment(wgpu.LoadOpClear),
	}

	enc.BeginRenderPass(desc).End()

	// encode into a command buffer
	buf := enc.Finish(&wgpu.CommandBufferDescriptor{Label: "ClearTarget"})
	defer buf.Release()

	c.context.Submit(buf)
}
