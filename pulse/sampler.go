package pulse

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oliverbestmann/webgpu/wgpu"
)

var samplerCache, _ = lru.NewWithEvict[wgpu.SamplerDescriptor, *wgpu.Sampler](16, samplerCacheOnEvict)

func samplerCacheOnEvict(key wgpu.SamplerDescriptor, value *wgpu.Sampler) {
	value.Release()
}

// CachedSampler returns a sampler matching your description. The sampler may be cached,
// you must not call wgpu.Sampler.Release() on it.
func CachedSampler(dev *wgpu.Device, desc wgpu.SamplerDescriptor) *wgpu.Sampler {
	cachedSampler, ok := samplerCache.Get(desc)
	if ok {
		return cachedSampler
	}

	sampler := dev.CreateSampler(&desc)
	samplerCache.Add(desc, sampler)

	return sampler
}

// PixelSampler returns a sampler with nearest filtering, as used for block
// textures and glyphs.
func PixelSampler(dev *wgpu.Device, addressMode wgpu.AddressMode) *wgpu.Sampler {
	return CachedSampler(dev, wgpu.SamplerDescriptor{
		Label:         "PixelSampler",
		AddressModeU:  addressMode,
		AddressModeV:  addressMode,
		AddressModeW:  addressMode,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		MaxAnisotropy: 1,
	})
}
