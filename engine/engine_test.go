package engine

import (
	"testing"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeWindow overrides the methods the engine calls; anything else panics on the nil embed.
type fakeWindow struct {
	window.Window
	frames   int
	onResize func(width, height int)
	closed   bool
}

func (w *fakeWindow) PollEvents() bool {
	if w.frames <= 0 {
		return false
	}
	w.frames--
	return true
}

func (w *fakeWindow) SetResizeCallback(callback func(width, height int)) { w.onResize = callback }
func (w *fakeWindow) Close() error                                       { w.closed = true; return nil }

type fakeDrawable struct {
	name     string
	log      *[]string
	disposed bool
}

func (d *fakeDrawable) Draw(camera.Camera)         { *d.log = append(*d.log, d.name) }
func (d *fakeDrawable) DrawInstance(camera.Camera) { *d.log = append(*d.log, d.name) }
func (d *fakeDrawable) Instanced() bool            { return false }
func (d *fakeDrawable) Dispose()                   { d.disposed = true }

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time          { return c.t }
func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestEngine(t *testing.T, w *fakeWindow, options ...EngineBuilderOption) (*engine, *gputest.Recorder, *fakeClock) {
	t.Helper()
	rec := gputest.NewRecorder()
	r, err := renderer.NewRenderer(renderer.BackendTypeGL, nil, renderer.WithContext(rec), renderer.WithPixelRatio(1))
	require.NoError(t, err)

	e, err := NewEngine(append([]EngineBuilderOption{WithWindow(w), WithRenderer(r)}, options...)...)
	require.NoError(t, err)

	clock := &fakeClock{t: time.Unix(100, 0)}
	impl := e.(*engine)
	impl.now = clock.now
	impl.sleep = func(d time.Duration) { clock.advance(d) }
	return impl, rec, clock
}

func TestNewEngineRequiresWindow(t *testing.T) {
	_, err := NewEngine()
	assert.ErrorIs(t, err, ErrNoWindow)
}

func TestRenderScenesInKeyOrder(t *testing.T) {
	var log []string
	background := scene.NewScene("background", scene.WithObjects(&fakeDrawable{name: "sky", log: &log}))
	foreground := scene.NewScene("foreground", scene.WithObjects(&fakeDrawable{name: "hud", log: &log}))
	hidden := scene.NewScene("hidden", scene.WithActive(false), scene.WithObjects(&fakeDrawable{name: "menu", log: &log}))

	e, rec, _ := newTestEngine(t, &fakeWindow{},
		WithScene(10, foreground),
		WithScene(0, background),
		WithScene(5, hidden),
	)

	e.Frame()
	assert.Equal(t, []string{"sky", "hud"}, log)
	assert.Equal(t, 2, rec.Count("Viewport"))
	assert.Equal(t, 1, rec.Count("Clear"))
	assert.True(t, e.Renderer().AutoClear())
}

func TestTickRate(t *testing.T) {
	e, _, clock := newTestEngine(t, &fakeWindow{}, WithTickRate(10))

	var ticks []float32
	var frames int
	e.SetTickCallback(func(dt float32) { ticks = append(ticks, dt) })
	e.SetRenderCallback(func(float32) { frames++ })

	e.Frame()
	clock.advance(50 * time.Millisecond)
	e.Frame()
	clock.advance(60 * time.Millisecond)
	e.Frame()

	assert.Equal(t, 3, frames)
	require.Len(t, ticks, 1)
	assert.InDelta(t, 0.11, ticks[0], 1e-4)
}

func TestRenderFrameLimit(t *testing.T) {
	e, _, clock := newTestEngine(t, &fakeWindow{}, WithRenderFrameLimit(50))
	start := clock.t

	e.Frame()
	assert.Equal(t, 20*time.Millisecond, clock.t.Sub(start))

	e.SetRenderFrameLimit(0)
	start = clock.t
	e.Frame()
	assert.Equal(t, start, clock.t)
}

func TestRunStopsWithWindow(t *testing.T) {
	w := &fakeWindow{frames: 3}
	e, _, _ := newTestEngine(t, w)

	frames := 0
	e.SetRenderCallback(func(float32) { frames++ })
	e.Run()
	assert.Equal(t, 3, frames)
}

func TestQuit(t *testing.T) {
	w := &fakeWindow{frames: 100}
	e, _, _ := newTestEngine(t, w)

	frames := 0
	e.SetRenderCallback(func(float32) {
		frames++
		if frames == 2 {
			e.Quit()
		}
	})
	e.Run()
	assert.Equal(t, 2, frames)
}

func TestResizeUpdatesRendererAndCameras(t *testing.T) {
	w := &fakeWindow{}
	cam := camera.NewCamera()
	e, _, _ := newTestEngine(t, w, WithScene(0, scene.NewScene("main", scene.WithCamera(cam))))
	require.NotNil(t, w.onResize)

	before := cam.ProjectionMatrix()
	w.onResize(800, 400)
	assert.Equal(t, 800, e.Renderer().Width())
	assert.Equal(t, 400, e.Renderer().Height())
	assert.NotEqual(t, before, cam.ProjectionMatrix())

	w.onResize(0, 0)
	assert.Equal(t, 800, e.Renderer().Width())
}

func TestCloseDisposesScenes(t *testing.T) {
	var log []string
	obj := &fakeDrawable{name: "a", log: &log}
	w := &fakeWindow{}
	e, _, _ := newTestEngine(t, w, WithScene(0, scene.NewScene("main", scene.WithObjects(obj))))

	require.NoError(t, e.Close())
	assert.True(t, obj.disposed)
	assert.True(t, w.closed)
	assert.Equal(t, 0, e.Scene(0).Len())
}

func TestScenesCopy(t *testing.T) {
	e, _, _ := newTestEngine(t, &fakeWindow{})
	e.AddScene(1, scene.NewScene("a"))

	scenes := e.Scenes()
	delete(scenes, 1)
	assert.NotNil(t, e.Scene(1))

	e.RemoveScene(1)
	assert.Nil(t, e.Scene(1))
	assert.Same(t, e.Renderer().Context().(*gputest.Recorder).Log, e.Logger())
	assert.Equal(t, gpu.DefaultContextAttributes(), e.Renderer().Attributes())
}
