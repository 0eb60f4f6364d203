package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

type renderTarget struct {
	ctx          gpu.Context
	framebuffer  gpu.Framebuffer
	renderbuffer gpu.Renderbuffer
	texture      texture.Texture2D

	width      int
	height     int
	pixelRatio float32
	viewport   viewport
	clearColor mgl32.Vec4
	autoClear  bool
}

// RenderTarget draws a scene into an offscreen color texture with a 16-bit depth buffer.
// The texture can then be sampled by a material through a material.Sampler2D uniform.
type RenderTarget interface {
	// Texture returns the color attachment.
	Texture() texture.Texture2D

	// Framebuffer returns the framebuffer handle.
	Framebuffer() gpu.Framebuffer

	// Size returns the logical size of the target.
	//
	// Returns:
	//   - int: the width
	//   - int: the height
	Size() (int, int)

	// SetSize reallocates the color and depth storage and resets the viewport to cover it.
	// Nothing happens if the size is unchanged.
	//
	// Parameters:
	//   - width: the logical width
	//   - height: the logical height
	SetSize(width, height int)

	// SetViewport sets the viewport used by the next Render from logical coordinates.
	SetViewport(x, y, width, height int)

	// SetClearColor sets the color the target is cleared to.
	SetClearColor(r, g, b, a float32)

	// SetAutoClear toggles clearing color and depth at the start of each Render.
	SetAutoClear(enable bool)

	// SetScissorTest toggles the scissor test.
	SetScissorTest(enable bool)

	// SetScissor sets the scissor rectangle from logical coordinates.
	SetScissor(x, y, width, height int)

	// Render draws the scene into the target and rebinds the default framebuffer.
	//
	// Parameters:
	//   - scn: the scene to draw
	//   - cam: the camera the scene is viewed through
	Render(scn scene.Scene, cam camera.Camera)

	// Dispose releases the framebuffer, the depth renderbuffer and the color texture.
	Dispose()
}

var _ RenderTarget = &renderTarget{}

// NewRenderTarget creates the framebuffer with a linear, clamped color texture and a depth
// renderbuffer, both sized width x height scaled by the pixel ratio.
//
// Parameters:
//   - ctx: the graphics context
//   - width: the logical width
//   - height: the logical height
//   - options: functional options for the pixel ratio, clear color and auto clear
//
// Returns:
//   - RenderTarget: the render target
func NewRenderTarget(ctx gpu.Context, width, height int, options ...RenderTargetBuilderOption) RenderTarget {
	t := &renderTarget{
		ctx:        ctx,
		width:      width,
		height:     height,
		pixelRatio: 1,
		clearColor: mgl32.Vec4{0, 0, 0, 1},
		autoClear:  true,
	}
	for _, option := range options {
		option(t)
	}

	t.framebuffer = ctx.CreateFramebuffer()
	ctx.BindFramebuffer(t.framebuffer)

	t.texture = texture.NewTexture2D(ctx,
		texture.WithFilter(gpu.Linear, gpu.Linear),
		texture.WithWrap(gpu.ClampToEdge, gpu.ClampToEdge),
	)
	t.texture.Allocate(t.deviceWidth(), t.deviceHeight())

	t.renderbuffer = ctx.CreateRenderbuffer()
	ctx.BindRenderbuffer(t.renderbuffer)
	ctx.RenderbufferStorage(gpu.DepthComponent16, int32(t.deviceWidth()), int32(t.deviceHeight()))

	ctx.FramebufferTexture2D(gpu.ColorAttachment0, gpu.Texture2D, t.texture.Handle())
	ctx.FramebufferRenderbuffer(gpu.DepthAttachment, t.renderbuffer)

	ctx.BindRenderbuffer(0)
	ctx.BindFramebuffer(0)

	t.SetViewport(0, 0, width, height)
	return t
}

func (t *renderTarget) Texture() texture.Texture2D   { return t.texture }
func (t *renderTarget) Framebuffer() gpu.Framebuffer { return t.framebuffer }
func (t *renderTarget) Size() (int, int)             { return t.width, t.height }
func (t *renderTarget) SetAutoClear(enable bool)     { t.autoClear = enable }
func (t *renderTarget) deviceWidth() int             { return int(scale(t.width, t.pixelRatio)) }
func (t *renderTarget) deviceHeight() int            { return int(scale(t.height, t.pixelRatio)) }
func (t *renderTarget) SetClearColor(r, g, b, a float32) {
	t.clearColor = mgl32.Vec4{r, g, b, a}
}

func (t *renderTarget) SetSize(width, height int) {
	if t.framebuffer == 0 || (width == t.width && height == t.height) {
		return
	}
	t.width = width
	t.height = height

	t.texture.Allocate(t.deviceWidth(), t.deviceHeight())
	t.ctx.BindRenderbuffer(t.renderbuffer)
	t.ctx.RenderbufferStorage(gpu.DepthComponent16, int32(t.deviceWidth()), int32(t.deviceHeight()))
	t.ctx.BindRenderbuffer(0)

	t.SetViewport(0, 0, width, height)
}

func (t *renderTarget) SetViewport(x, y, width, height int) {
	t.viewport = viewport{
		x:      scale(x, t.pixelRatio),
		y:      scale(y, t.pixelRatio),
		width:  scale(width, t.pixelRatio),
		height: scale(height, t.pixelRatio),
	}
}

func (t *renderTarget) SetScissorTest(enable bool) {
	if enable {
		t.ctx.Enable(gpu.CapScissorTest)
		return
	}
	t.ctx.Disable(gpu.CapScissorTest)
}

func (t *renderTarget) SetScissor(x, y, width, height int) {
	t.ctx.Scissor(scale(x, t.pixelRatio), scale(y, t.pixelRatio), scale(width, t.pixelRatio), scale(height, t.pixelRatio))
}

func (t *renderTarget) Render(scn scene.Scene, cam camera.Camera) {
	if t.framebuffer == 0 {
		return
	}
	t.ctx.Viewport(t.viewport.x, t.viewport.y, t.viewport.width, t.viewport.height)
	t.ctx.BindFramebuffer(t.framebuffer)
	if t.autoClear {
		t.ctx.ClearColor(t.clearColor[0], t.clearColor[1], t.clearColor[2], t.clearColor[3])
		t.ctx.Clear(gpu.ClearColor | gpu.ClearDepth)
	}
	drawScene(scn, cam)
	t.ctx.BindFramebuffer(0)
}

func (t *renderTarget) Dispose() {
	if t.framebuffer == 0 {
		return
	}
	t.ctx.DeleteFramebuffer(t.framebuffer)
	t.ctx.DeleteRenderbuffer(t.renderbuffer)
	t.texture.Dispose()
	t.framebuffer = 0
	t.renderbuffer = 0
}
