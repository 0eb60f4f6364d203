package texture

import (
	"image"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

type texture2D struct {
	ctx    gpu.Context
	handle gpu.Texture
	sampling
	image  image.Image
	width  int
	height int
}

// Texture2D is a two-dimensional texture created with a 1x1 white placeholder and filled
// with Update once an image has been decoded.
type Texture2D interface {
	Texture

	// Update uploads a decoded image, replacing the current contents. The image rows are
	// flipped to a bottom-left origin unless disabled with WithFlipY(false).
	//
	// Parameters:
	//   - img: the decoded image
	Update(img image.Image)

	// Image returns the last uploaded image, or nil while the placeholder is in place.
	Image() image.Image

	// Size returns the texel dimensions of the current contents.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Size() (int, int)

	// Allocate reserves uninitialized RGBA storage, discarding the current image. Render
	// targets draw into textures allocated this way.
	//
	// Parameters:
	//   - width: the width in texels
	//   - height: the height in texels
	Allocate(width, height int)
}

var _ Texture2D = &texture2D{}

// NewTexture2D creates a texture holding a single white texel. Defaults are nearest
// filtering, clamp-to-edge wrapping and flip-Y on upload.
//
// Parameters:
//   - ctx: the graphics context
//   - options: functional options for sampling and the initial image
//
// Returns:
//   - Texture2D: the new texture
func NewTexture2D(ctx gpu.Context, options ...TextureBuilderOption) Texture2D {
	cfg := config{
		sampling: sampling{
			magFilter: gpu.Nearest,
			minFilter: gpu.Nearest,
			wrapS:     gpu.ClampToEdge,
			wrapT:     gpu.ClampToEdge,
			flipY:     true,
		},
	}
	for _, option := range options {
		option(&cfg)
	}

	t := &texture2D{
		ctx:      ctx,
		handle:   ctx.CreateTexture(),
		sampling: cfg.sampling,
		width:    1,
		height:   1,
	}

	ctx.BindTexture(gpu.Texture2D, t.handle)
	upload(ctx, gpu.Texture2D, placeholder)
	t.apply(ctx, gpu.Texture2D)
	ctx.BindTexture(gpu.Texture2D, 0)

	if len(cfg.images) > 0 && cfg.images[0] != nil {
		t.Update(cfg.images[0])
	}
	return t
}

func (t *texture2D) Handle() gpu.Texture       { return t.handle }
func (t *texture2D) Target() gpu.TextureTarget { return gpu.Texture2D }
func (t *texture2D) Image() image.Image        { return t.image }
func (t *texture2D) Size() (int, int)          { return t.width, t.height }

func (t *texture2D) Bind(unit int) {
	bindUnit(t.ctx, unit, gpu.Texture2D, t.handle)
}

func (t *texture2D) Update(img image.Image) {
	if t.handle == 0 || img == nil {
		return
	}
	data := stage(img, t.flipY)

	t.ctx.BindTexture(gpu.Texture2D, t.handle)
	upload(t.ctx, gpu.Texture2D, data)
	if usesMipmaps(t.minFilter) {
		t.ctx.GenerateMipmap(gpu.Texture2D)
	}
	t.ctx.BindTexture(gpu.Texture2D, 0)

	t.image = img
	t.width, t.height = int(data.Width), int(data.Height)
}

func (t *texture2D) Allocate(width, height int) {
	if t.handle == 0 || width <= 0 || height <= 0 {
		return
	}
	t.ctx.BindTexture(gpu.Texture2D, t.handle)
	t.ctx.TexImage2D(gpu.Texture2D, int32(width), int32(height), gpu.RGBA, gpu.UnsignedByte, nil)
	t.ctx.BindTexture(gpu.Texture2D, 0)

	t.image = nil
	t.width, t.height = width, height
}

func (t *texture2D) Dispose() {
	if t.handle == 0 {
		return
	}
	t.ctx.DeleteTexture(t.handle)
	t.handle = 0
	t.image = nil
}

func usesMipmaps(minFilter int32) bool {
	switch minFilter {
	case gpu.NearestMipmapNearest, gpu.LinearMipmapNearest, gpu.NearestMipmapLinear, gpu.LinearMipmapLinear:
		return true
	}
	return false
}
