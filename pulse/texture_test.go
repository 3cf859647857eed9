package pulse

import (
	"testing"

	"github.com/oliverbestmann/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
)

func TestNeedsResolveTarget(t *testing.T) {
	cases := []struct {
		name     string
		desc     wgpu.TextureDescriptor
		expected bool
	}{
		{
			name: "single sample",
			desc: wgpu.TextureDescriptor{Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageRenderAttachment, SampleCount: 1},
		},
		{
			name: "render attachment only",
			desc: wgpu.TextureDescriptor{Usage: wgpu.TextureUsageRenderAttachment, SampleCount: 4},
		},
		{
			name:     "sampled render target",
			desc:     wgpu.TextureDescriptor{Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageRenderAttachment, SampleCount: 4},
			expected: true,
		},
		{
			name:     "sampled copy target",
			desc:     wgpu.TextureDescriptor{Usage: wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst, SampleCount: 4},
			expected: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, needsResolveTarget(&tc.desc))
		})
	}
}
