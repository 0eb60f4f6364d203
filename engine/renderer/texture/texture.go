// Package texture wraps GPU texture objects sampled by material uniforms.
package texture

import (
	"image"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// Texture is a GPU texture object that a material can bind to a texture unit.
type Texture interface {
	// Handle returns the GPU texture object, zero after Dispose.
	Handle() gpu.Texture

	// Target returns Texture2D or TextureCubeMap.
	Target() gpu.TextureTarget

	// Bind selects the texture unit and binds the texture to it.
	//
	// Parameters:
	//   - unit: the zero-based texture unit
	Bind(unit int)

	// Dispose deletes the GPU texture.
	Dispose()
}

// sampling holds the filter and wrap parameters shared by both texture kinds.
type sampling struct {
	magFilter int32
	minFilter int32
	wrapS     int32
	wrapT     int32
	flipY     bool
}

func (s sampling) apply(ctx gpu.Context, target gpu.TextureTarget) {
	ctx.TexParameteri(target, gpu.TextureMagFilter, s.magFilter)
	ctx.TexParameteri(target, gpu.TextureMinFilter, s.minFilter)
	ctx.TexParameteri(target, gpu.TextureWrapS, s.wrapS)
	ctx.TexParameteri(target, gpu.TextureWrapT, s.wrapT)
}

// placeholder is the single opaque white texel uploaded until real image data arrives.
var placeholder = common.TextureStagingData{Pixels: []byte{255, 255, 255, 255}, Width: 1, Height: 1}

func upload(ctx gpu.Context, target gpu.TextureTarget, data common.TextureStagingData) {
	ctx.TexImage2D(target, int32(data.Width), int32(data.Height), gpu.RGBA, gpu.UnsignedByte, data.Pixels)
}

func stage(img image.Image, flipY bool) common.TextureStagingData {
	if img == nil {
		return placeholder
	}
	return common.NewTextureStagingData(img, flipY)
}

func bindUnit(ctx gpu.Context, unit int, target gpu.TextureTarget, handle gpu.Texture) {
	ctx.ActiveTexture(uint32(unit))
	ctx.BindTexture(target, handle)
}
