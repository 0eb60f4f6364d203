package texture

import "image"

// config collects the options shared by NewTexture2D and NewTextureCube.
type config struct {
	sampling
	images []image.Image
}

// TextureBuilderOption is a functional option for configuring a texture.
type TextureBuilderOption func(*config)

// WithFilter sets the magnification and minification filters.
//
// Parameters:
//   - mag: gpu.Nearest or gpu.Linear
//   - min: any filter value, mipmap filters generate mipmaps on Update
//
// Returns:
//   - TextureBuilderOption: a function that sets the filters
func WithFilter(mag, min int32) TextureBuilderOption {
	return func(c *config) {
		c.magFilter = mag
		c.minFilter = min
	}
}

// WithWrap sets the S and T wrap modes.
func WithWrap(s, t int32) TextureBuilderOption {
	return func(c *config) {
		c.wrapS = s
		c.wrapT = t
	}
}

// WithFlipY controls whether 2D uploads are flipped to a bottom-left origin. Ignored by cube maps.
func WithFlipY(flip bool) TextureBuilderOption {
	return func(c *config) {
		c.flipY = flip
	}
}

// WithImage uploads an already decoded image at construction. Cube maps take up to six
// images, one per WithImage call, in face order.
//
// Parameters:
//   - img: the decoded image
//
// Returns:
//   - TextureBuilderOption: a function that appends the image
func WithImage(img image.Image) TextureBuilderOption {
	return func(c *config) {
		c.images = append(c.images, img)
	}
}
