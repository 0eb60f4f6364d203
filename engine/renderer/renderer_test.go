package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSurface struct {
	attrs    gpu.ContextAttributes
	scale    float32
	err      error
	width    int
	height   int
	swaps    int
	interval int
}

func (s *fakeSurface) CreateContext(attrs gpu.ContextAttributes) error {
	s.attrs = attrs
	return s.err
}

func (s *fakeSurface) ContentScale() float32        { return s.scale }
func (s *fakeSurface) SetSize(width, height int)    { s.width, s.height = width, height }
func (s *fakeSurface) SwapBuffers()                 { s.swaps++ }
func (s *fakeSurface) SetSwapInterval(interval int) { s.interval = interval }

type fakeDrawable struct {
	name      string
	instanced bool
	log       *[]string
}

func (d *fakeDrawable) Draw(camera.Camera)         { *d.log = append(*d.log, "draw "+d.name) }
func (d *fakeDrawable) DrawInstance(camera.Camera) { *d.log = append(*d.log, "instance "+d.name) }
func (d *fakeDrawable) Instanced() bool            { return d.instanced }
func (d *fakeDrawable) Dispose()                   {}

func newTestRenderer(t *testing.T, surface *fakeSurface, options ...RendererBuilderOption) (Renderer, *gputest.Recorder) {
	t.Helper()
	rec := gputest.NewRecorder()
	r, err := NewRenderer(BackendTypeGL, surface, append([]RendererBuilderOption{WithContext(rec)}, options...)...)
	require.NoError(t, err)
	return r, rec
}

func TestNewRendererDefaults(t *testing.T) {
	surface := &fakeSurface{scale: 1}
	r, rec := newTestRenderer(t, surface)

	assert.Equal(t, gpu.DefaultContextAttributes(), surface.attrs)
	assert.Equal(t, 1280, r.Width())
	assert.Equal(t, 720, r.Height())
	assert.InDelta(t, 1280.0/720.0, r.AspectRatio(), 1e-6)
	assert.Equal(t, float32(1), r.PixelRatio())
	assert.True(t, r.AutoClear())
	assert.Equal(t, 1, surface.interval)
	assert.Equal(t, 0, rec.Count("Enable"))

	x, y, w, h := r.Viewport()
	assert.Equal(t, []int32{0, 0, 1280, 720}, []int32{x, y, w, h})
}

func TestNewRendererRequiresSurfaceOrContext(t *testing.T) {
	_, err := NewRenderer(BackendTypeGL, nil)
	assert.ErrorIs(t, err, ErrNoSurface)
}

func TestNewRendererSurfaceError(t *testing.T) {
	boom := errors.New("no pixel format")
	_, err := NewRenderer(BackendTypeGL, &fakeSurface{err: boom}, WithContext(gputest.NewRecorder()))
	assert.ErrorIs(t, err, boom)
}

func TestNewRendererAttributes(t *testing.T) {
	surface := &fakeSurface{scale: 1}
	_, rec := newTestRenderer(t, surface,
		WithDepth(true),
		WithAlpha(true),
		WithStencil(true),
		WithAntialias(true),
		WithPowerPreference(gpu.PowerPreferenceHighPerformance),
		WithPresentMode(PresentModeUncapped),
	)

	assert.True(t, surface.attrs.Depth)
	assert.True(t, surface.attrs.Alpha)
	assert.True(t, surface.attrs.Stencil)
	assert.True(t, surface.attrs.Antialias)
	assert.Equal(t, gpu.PowerPreferenceHighPerformance, surface.attrs.PowerPreference)
	assert.Equal(t, 0, surface.interval)

	enables := rec.Named("Enable")
	require.Len(t, enables, 1)
	assert.Equal(t, []any{gpu.CapDepthTest}, enables[0].Args)
}

func TestPixelRatioIsClamped(t *testing.T) {
	r, _ := newTestRenderer(t, &fakeSurface{scale: 3}, WithWidth(100), WithHeight(50))
	assert.Equal(t, gpu.MaxDevicePixelRatio, r.PixelRatio())

	x, y, w, h := r.Viewport()
	assert.Equal(t, []int32{0, 0, 200, 100}, []int32{x, y, w, h})

	r, _ = newTestRenderer(t, &fakeSurface{scale: 2}, WithPixelRatio(1.5), WithWidth(100), WithHeight(50))
	assert.Equal(t, float32(1.5), r.PixelRatio())
	_, _, w, h = r.Viewport()
	assert.Equal(t, []int32{150, 75}, []int32{w, h})
}

func TestSetSize(t *testing.T) {
	surface := &fakeSurface{scale: 2}
	r, _ := newTestRenderer(t, surface)

	r.SetSize(400, 200)
	assert.Equal(t, 400, surface.width)
	assert.Equal(t, 200, surface.height)
	assert.InDelta(t, 2.0, r.AspectRatio(), 1e-6)

	_, _, w, h := r.Viewport()
	assert.Equal(t, []int32{800, 400}, []int32{w, h})

	surface.width = 0
	r.SetSize(400, 200)
	assert.Equal(t, 0, surface.width)
}

func TestSetDevicePixelRatio(t *testing.T) {
	r, _ := newTestRenderer(t, &fakeSurface{scale: 1}, WithWidth(100), WithHeight(100))

	r.SetDevicePixelRatio(4)
	assert.Equal(t, float32(2), r.PixelRatio())
	_, _, w, h := r.Viewport()
	assert.Equal(t, []int32{200, 200}, []int32{w, h})

	r.SetDevicePixelRatio(0)
	assert.Equal(t, float32(1), r.PixelRatio())
	assert.Equal(t, 100, r.Width())
}

func TestScissor(t *testing.T) {
	r, rec := newTestRenderer(t, &fakeSurface{scale: 2})

	r.SetScissorTest(true)
	r.SetScissor(1, 2, 3, 4)
	r.SetScissorTest(false)

	assert.Equal(t, []string{"Enable", "Scissor", "Disable"}, rec.Names())
	assert.Equal(t, []any{gpu.CapScissorTest}, rec.Calls()[0].Args)
	assert.Equal(t, []any{int32(2), int32(4), int32(6), int32(8)}, rec.Calls()[1].Args)
}

func TestRenderOrder(t *testing.T) {
	r, rec := newTestRenderer(t, &fakeSurface{scale: 1}, WithClearColor(0.1, 0.2, 0.3, 1))

	var log []string
	scn := scene.NewScene("main")
	scn.Add(
		&fakeDrawable{name: "a", log: &log},
		&fakeDrawable{name: "b", instanced: true, log: &log},
		&fakeDrawable{name: "c", log: &log},
	)

	r.Render(scn, camera.NewCamera())

	assert.Equal(t, []string{"Viewport", "ClearColor", "Clear"}, rec.Names())
	assert.Equal(t, []any{float32(0.1), float32(0.2), float32(0.3), float32(1)}, rec.Calls()[1].Args)
	assert.Equal(t, []any{gpu.ClearColor | gpu.ClearDepth}, rec.Calls()[2].Args)
	assert.Equal(t, []string{"draw a", "instance b", "draw c"}, log)
}

func TestRenderWithoutAutoClear(t *testing.T) {
	r, rec := newTestRenderer(t, &fakeSurface{scale: 1})
	r.SetAutoClear(false)

	r.Render(nil, nil)
	assert.Equal(t, []string{"Viewport", "ClearColor"}, rec.Names())
}

func TestPresent(t *testing.T) {
	surface := &fakeSurface{scale: 1}
	r, _ := newTestRenderer(t, surface)

	r.Present()
	r.Present()
	assert.Equal(t, 2, surface.swaps)

	r.SetPresentMode(PresentModeUncapped)
	assert.Equal(t, 0, surface.interval)
}

func TestHeadlessRenderer(t *testing.T) {
	rec := gputest.NewRecorder()
	r, err := NewRenderer(BackendTypeGL, nil, WithContext(rec), WithPixelRatio(1))
	require.NoError(t, err)

	r.SetSize(10, 10)
	r.Present()
	assert.Same(t, rec.Log, r.Logger())
}
