package renderer

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// Default drawing buffer size.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// ErrNoSurface is returned by NewRenderer when neither a surface nor a context was supplied.
var ErrNoSurface = errors.New("renderer requires a surface or a context")

// viewport is a rectangle in device pixels.
type viewport struct {
	x, y, width, height int32
}

// renderer is the implementation of the Renderer interface.
type renderer struct {
	backendType RendererBackendType
	surface     Surface
	ctx         gpu.Context
	logger      *zap.Logger
	glOptions   []gpu.GLContextBuilderOption

	attrs       gpu.ContextAttributes
	width       int
	height      int
	aspectRatio float32
	pixelRatio  float32
	viewport    viewport

	clearColor  mgl32.Vec4
	autoClear   bool
	presentMode PresentMode
}

// Renderer owns the graphics context and draws a scene once per frame.
//
// The Renderer creates the context through its Surface, scales every viewport and scissor
// rectangle by the device pixel ratio, and draws scene objects in insertion order without
// sorting, culling or batching. Sizes passed to its methods are logical sizes.
type Renderer interface {
	// Context returns the graphics context every GPU resource must be created with.
	//
	// Returns:
	//   - gpu.Context: the renderer's context
	Context() gpu.Context

	// Logger returns the logger shared with the context.
	Logger() *zap.Logger

	// Attributes returns the drawing buffer attributes the context was requested with.
	Attributes() gpu.ContextAttributes

	// Width returns the logical drawing buffer width.
	Width() int

	// Height returns the logical drawing buffer height.
	Height() int

	// AspectRatio returns the drawing buffer aspect ratio.
	AspectRatio() float32

	// PixelRatio returns the device pixel ratio in use, never greater than gpu.MaxDevicePixelRatio.
	PixelRatio() float32

	// Viewport returns the current viewport in device pixels.
	//
	// Returns:
	//   - int32: x
	//   - int32: y
	//   - int32: width
	//   - int32: height
	Viewport() (int32, int32, int32, int32)

	// ClearColor returns the color the drawing buffer is cleared to.
	ClearColor() mgl32.Vec4

	// SetClearColor sets the color the drawing buffer is cleared to.
	//
	// Parameters:
	//   - r, g, b, a: the color components in [0, 1]
	SetClearColor(r, g, b, a float32)

	// SetSize resizes the surface and resets the viewport to cover it. Nothing happens if the
	// size is unchanged.
	//
	// Parameters:
	//   - width: the logical width
	//   - height: the logical height
	SetSize(width, height int)

	// SetDevicePixelRatio changes the device pixel ratio and rescales the viewport. Ratios above
	// gpu.MaxDevicePixelRatio are clamped and non-positive ratios become 1.
	//
	// Parameters:
	//   - ratio: the requested ratio
	SetDevicePixelRatio(ratio float32)

	// SetScissorTest toggles the scissor test.
	SetScissorTest(enable bool)

	// SetScissor sets the scissor rectangle from logical coordinates.
	//
	// Parameters:
	//   - x, y: the lower-left corner
	//   - width, height: the rectangle size
	SetScissor(x, y, width, height int)

	// SetViewport sets the viewport used by the next Render from logical coordinates.
	//
	// Parameters:
	//   - x, y: the lower-left corner
	//   - width, height: the rectangle size
	SetViewport(x, y, width, height int)

	// AutoClear reports whether Render clears color and depth before drawing.
	AutoClear() bool

	// SetAutoClear toggles clearing color and depth at the start of each Render.
	SetAutoClear(enable bool)

	// SetPresentMode sets how presented frames are synchronized with the display.
	//
	// Parameters:
	//   - mode: the PresentMode to use (VSync or Uncapped)
	SetPresentMode(mode PresentMode)

	// Render draws every object of the scene against the camera. Instanced objects are drawn
	// with DrawInstance, the rest with Draw.
	//
	// Parameters:
	//   - scn: the scene to draw, nil to only clear
	//   - cam: the camera the scene is viewed through
	Render(scn scene.Scene, cam camera.Camera)

	// Present swaps the surface's buffers. Call once per frame after Render.
	Present()
}

var _ Renderer = &renderer{}

// NewRenderer creates the graphics context through the surface and prepares the viewport.
//
// When WithContext supplies a context, no backend context is created and the surface may be
// nil, which is how the renderer is driven in tests.
//
// Parameters:
//   - backendType: the type of rendering backend to use (e.g., GL)
//   - surface: the surface that creates the platform context and presents frames
//   - options: variadic list of RendererBuilderOption functions to configure the Renderer
//
// Returns:
//   - Renderer: the ready-to-use renderer
//   - error: an error if the surface or the backend context could not be initialized
func NewRenderer(backendType RendererBackendType, surface Surface, options ...RendererBuilderOption) (Renderer, error) {
	r := &renderer{
		backendType: backendType,
		surface:     surface,
		attrs:       gpu.DefaultContextAttributes(),
		width:       DefaultWidth,
		height:      DefaultHeight,
		clearColor:  mgl32.Vec4{0, 0, 0, 1},
		autoClear:   true,
		presentMode: PresentModeVSync,
	}

	for _, opt := range options {
		opt(r)
	}

	if surface == nil && r.ctx == nil {
		return nil, ErrNoSurface
	}

	if r.aspectRatio <= 0 {
		r.aspectRatio = float32(r.width) / float32(max(r.height, 1))
	}

	if surface != nil {
		if err := surface.CreateContext(r.attrs); err != nil {
			return nil, fmt.Errorf("failed to create surface context: %w", err)
		}
		surface.SetSwapInterval(r.presentMode.SwapInterval())
		if r.pixelRatio <= 0 {
			r.pixelRatio = surface.ContentScale()
		}
	}
	r.pixelRatio = gpu.ClampPixelRatio(r.pixelRatio)

	if r.logger == nil {
		if r.ctx != nil {
			r.logger = r.ctx.Logger()
		} else if l, err := zap.NewProduction(); err == nil {
			r.logger = l
		} else {
			r.logger = zap.NewNop()
		}
	}

	if r.ctx == nil {
		switch backendType {
		case BackendTypeGL:
			fallthrough
		default:
			ctx, err := gpu.NewGLContext(r.logger, r.glOptions...)
			if err != nil {
				return nil, fmt.Errorf("failed to create GL context: %w", err)
			}
			r.ctx = ctx
		}
	}

	r.SetViewport(0, 0, r.width, r.height)

	if r.attrs.Depth {
		r.ctx.Enable(gpu.CapDepthTest)
	}

	r.logger.Debug("renderer created",
		zap.Int("width", r.width),
		zap.Int("height", r.height),
		zap.Float32("pixelRatio", r.pixelRatio),
		zap.Bool("depth", r.attrs.Depth),
	)
	return r, nil
}

func (r *renderer) Context() gpu.Context              { return r.ctx }
func (r *renderer) Logger() *zap.Logger               { return r.logger }
func (r *renderer) Attributes() gpu.ContextAttributes { return r.attrs }
func (r *renderer) Width() int                        { return r.width }
func (r *renderer) Height() int                       { return r.height }
func (r *renderer) AspectRatio() float32              { return r.aspectRatio }
func (r *renderer) PixelRatio() float32               { return r.pixelRatio }
func (r *renderer) ClearColor() mgl32.Vec4            { return r.clearColor }
func (r *renderer) AutoClear() bool                   { return r.autoClear }
func (r *renderer) SetAutoClear(enable bool)          { r.autoClear = enable }
func (r *renderer) SetClearColor(red, green, blue, alpha float32) {
	r.clearColor = mgl32.Vec4{red, green, blue, alpha}
}

func (r *renderer) Viewport() (int32, int32, int32, int32) {
	return r.viewport.x, r.viewport.y, r.viewport.width, r.viewport.height
}

func (r *renderer) SetSize(width, height int) {
	if width == r.width && height == r.height {
		return
	}
	r.resize(width, height)
}

func (r *renderer) resize(width, height int) {
	r.width = width
	r.height = height
	r.aspectRatio = float32(width) / float32(max(height, 1))
	if r.surface != nil {
		r.surface.SetSize(width, height)
	}
	r.SetViewport(0, 0, width, height)
}

func (r *renderer) SetDevicePixelRatio(ratio float32) {
	r.pixelRatio = gpu.ClampPixelRatio(ratio)
	r.resize(r.width, r.height)
}

func (r *renderer) SetScissorTest(enable bool) {
	if enable {
		r.ctx.Enable(gpu.CapScissorTest)
		return
	}
	r.ctx.Disable(gpu.CapScissorTest)
}

func (r *renderer) SetScissor(x, y, width, height int) {
	r.ctx.Scissor(scale(x, r.pixelRatio), scale(y, r.pixelRatio), scale(width, r.pixelRatio), scale(height, r.pixelRatio))
}

func (r *renderer) SetViewport(x, y, width, height int) {
	r.viewport = viewport{
		x:      scale(x, r.pixelRatio),
		y:      scale(y, r.pixelRatio),
		width:  scale(width, r.pixelRatio),
		height: scale(height, r.pixelRatio),
	}
}

func (r *renderer) SetPresentMode(mode PresentMode) {
	r.presentMode = mode
	if r.surface != nil {
		r.surface.SetSwapInterval(mode.SwapInterval())
	}
}

func (r *renderer) Render(scn scene.Scene, cam camera.Camera) {
	r.ctx.Viewport(r.viewport.x, r.viewport.y, r.viewport.width, r.viewport.height)
	r.ctx.ClearColor(r.clearColor[0], r.clearColor[1], r.clearColor[2], r.clearColor[3])
	if r.autoClear {
		r.ctx.Clear(gpu.ClearColor | gpu.ClearDepth)
	}
	drawScene(scn, cam)
}

func (r *renderer) Present() {
	if r.surface != nil {
		r.surface.SwapBuffers()
	}
}

// drawScene dispatches each object of the scene in insertion order.
func drawScene(scn scene.Scene, cam camera.Camera) {
	if scn == nil {
		return
	}
	for _, obj := range scn.Objects() {
		if obj.Instanced() {
			obj.DrawInstance(cam)
			continue
		}
		obj.Draw(cam)
	}
}

func scale(v int, ratio float32) int32 {
	return int32(float32(v) * ratio)
}
