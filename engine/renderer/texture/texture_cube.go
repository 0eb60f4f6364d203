package texture

import (
	"image"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

type textureCube struct {
	ctx    gpu.Context
	handle gpu.Texture
	sampling
	images [6]image.Image
}

// TextureCube is a cube map texture whose six faces start as 1x1 white placeholders.
type TextureCube interface {
	Texture

	// Update uploads six decoded face images in +X, -X, +Y, -Y, +Z, -Z order. A nil entry
	// keeps the placeholder for that face. Cube faces are never flipped.
	//
	// Parameters:
	//   - faces: the face images
	Update(faces [6]image.Image)

	// Images returns the last uploaded face images.
	Images() [6]image.Image
}

var _ TextureCube = &textureCube{}

// NewTextureCube creates a cube map with placeholder faces. Defaults are linear filtering
// and clamp-to-edge wrapping.
//
// Parameters:
//   - ctx: the graphics context
//   - options: functional options for sampling and the initial face images
//
// Returns:
//   - TextureCube: the new cube map
func NewTextureCube(ctx gpu.Context, options ...TextureBuilderOption) TextureCube {
	cfg := config{
		sampling: sampling{
			magFilter: gpu.Linear,
			minFilter: gpu.Linear,
			wrapS:     gpu.ClampToEdge,
			wrapT:     gpu.ClampToEdge,
		},
	}
	for _, option := range options {
		option(&cfg)
	}
	cfg.flipY = false

	t := &textureCube{
		ctx:      ctx,
		handle:   ctx.CreateTexture(),
		sampling: cfg.sampling,
	}

	var faces [6]image.Image
	copy(faces[:], cfg.images)
	t.upload(faces)
	return t
}

func (t *textureCube) Handle() gpu.Texture       { return t.handle }
func (t *textureCube) Target() gpu.TextureTarget { return gpu.TextureCubeMap }
func (t *textureCube) Images() [6]image.Image    { return t.images }

func (t *textureCube) Bind(unit int) {
	bindUnit(t.ctx, unit, gpu.TextureCubeMap, t.handle)
}

func (t *textureCube) Update(faces [6]image.Image) {
	if t.handle == 0 {
		return
	}
	t.upload(faces)
}

func (t *textureCube) upload(faces [6]image.Image) {
	t.ctx.BindTexture(gpu.TextureCubeMap, t.handle)
	for i, target := range gpu.CubeFaces {
		upload(t.ctx, target, stage(faces[i], false))
	}
	t.apply(t.ctx, gpu.TextureCubeMap)
	t.ctx.BindTexture(gpu.TextureCubeMap, 0)
	t.images = faces
}

func (t *textureCube) Dispose() {
	if t.handle == 0 {
		return
	}
	t.ctx.DeleteTexture(t.handle)
	t.handle = 0
	t.images = [6]image.Image{}
}
