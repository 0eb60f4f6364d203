package engine

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Carmen-Shannon/oxy-gl/engine/profiler"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"go.uber.org/zap"
)

// ErrNoWindow is returned by NewEngine when no window was configured.
var ErrNoWindow = errors.New("engine requires a window")

// engine implements the Engine interface.
// Runs ticks, rendering and window events on the calling goroutine, which must own the GL context.
type engine struct {
	running bool

	window          window.Window
	renderer        renderer.Renderer
	rendererOptions []renderer.RendererBuilderOption
	logger          *zap.Logger

	profiler         *profiler.Profiler
	profilingEnabled bool

	engineTickRate time.Duration
	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	scenes map[int]scene.Scene

	renderFrameLimit time.Duration // minimum frame duration; 0 = uncapped

	lastTick   time.Time
	lastRender time.Time

	now   func() time.Time
	sleep func(time.Duration)
}

// Engine is the main entry point for the engine.
// It owns the window and the renderer and runs the tick and render loop.
type Engine interface {
	// Window returns the underlying window.
	//
	// Returns:
	//   - window.Window: the window instance
	Window() window.Window

	// Renderer returns the renderer drawing the scenes. GPU resources for meshes must be created
	// with its Context.
	//
	// Returns:
	//   - renderer.Renderer: the renderer instance
	Renderer() renderer.Renderer

	// Logger returns the logger shared by the engine, the renderer and the profiler.
	Logger() *zap.Logger

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// SetTickRate sets the engine tick rate in frames per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - fps: target frames per second (defaults to 60 if <= 0)
	SetTickRate(fps float64)

	// SetTickCallback registers the function called each engine tick.
	// Use this for game logic, physics, input processing, and animation updates.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called each render frame after the scenes were drawn
	// and before the frame is presented.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetRenderFrameLimit sets an optional render frame rate cap in frames per second.
	// Pass 0 to uncap the render loop (default).
	//
	// Parameters:
	//   - fps: maximum render frames per second (0 = uncapped)
	SetRenderFrameLimit(fps float64)

	// AddScene registers a scene at the given z-index key.
	// Scenes are rendered in ascending key order during the render loop.
	//
	// Parameters:
	//   - key: the z-index determining render order (lower renders first)
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Frame runs one iteration of the loop: the tick callback if a tick period has elapsed since
	// the last tick, then every active scene in ascending key order, the render callback and
	// presentation. The first call only starts the clocks and never ticks.
	Frame()

	// Run polls window events and runs frames until the window closes or Quit is called.
	// Blocks the calling goroutine.
	Run()

	// Quit makes Run return after the current frame.
	// Safe to call multiple times; subsequent calls are no-ops.
	Quit()

	// Close disposes every scene's objects and closes the window.
	//
	// Returns:
	//   - error: error if the window could not be closed
	Close() error
}

// NewEngine creates a new Engine instance with the provided options.
// Unless WithRenderer supplies one, the renderer is created on the window, which creates the
// OpenGL context on the calling goroutine's OS thread.
//
// Parameters:
//   - options: functional options for engine configuration (window, renderer, profiling, tick rate, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: an error if no window was given or the renderer could not be created
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		scenes:           make(map[int]scene.Scene),
		profilingEnabled: false,
		engineTickRate:   time.Second / 60,
		now:              time.Now,
		sleep:            time.Sleep,
	}

	for _, opt := range options {
		opt(e)
	}

	if e.window == nil {
		return nil, ErrNoWindow
	}

	if e.renderer == nil {
		opts := e.rendererOptions
		if e.logger != nil {
			opts = append([]renderer.RendererBuilderOption{renderer.WithLogger(e.logger)}, opts...)
		}
		r, err := renderer.NewRenderer(renderer.BackendTypeGL, e.window, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create renderer: %w", err)
		}
		e.renderer = r
	}

	if e.logger == nil {
		e.logger = e.renderer.Logger()
	}
	e.profiler = profiler.NewProfiler(profiler.WithLogger(e.logger))

	e.window.SetResizeCallback(e.resize)
	return e, nil
}

// resize keeps the renderer and every scene camera in step with the window.
func (e *engine) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	e.renderer.SetSize(width, height)
	for _, s := range e.scenes {
		if c := s.Camera(); c != nil {
			c.SetAspect(float32(width) / float32(height))
		}
	}
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) Renderer() renderer.Renderer {
	return e.renderer
}

func (e *engine) Logger() *zap.Logger {
	return e.logger
}

func (e *engine) Run() {
	e.running = true
	e.logger.Info("engine started", zap.Int("scenes", len(e.scenes)))

	for e.running && e.window.PollEvents() {
		e.Frame()
	}

	e.running = false
	e.logger.Info("engine stopped")
}

func (e *engine) Frame() {
	now := e.now()
	if e.lastRender.IsZero() {
		e.lastTick = now
		e.lastRender = now
	}

	if elapsed := now.Sub(e.lastTick); elapsed >= e.engineTickRate {
		if e.tickCallback != nil {
			e.tickCallback(float32(elapsed.Seconds()))
		}
		e.lastTick = now
	}

	dt := float32(now.Sub(e.lastRender).Seconds())
	e.lastRender = now

	e.render()

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	e.renderer.Present()

	if e.profilingEnabled {
		e.profiler.Tick()
	}

	if e.renderFrameLimit > 0 {
		if remaining := e.renderFrameLimit - e.now().Sub(now); remaining > 0 {
			e.sleep(remaining)
		}
	}
}

// render draws all active scenes in ascending z-index order. Only the first scene is cleared so
// later scenes composite over earlier ones.
func (e *engine) render() {
	keys := make([]int, 0, len(e.scenes))
	for k := range e.scenes {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	autoClear := e.renderer.AutoClear()
	first := true
	for _, k := range keys {
		s := e.scenes[k]
		if !s.Active() {
			continue
		}
		cam := s.Camera()
		if cam != nil {
			cam.Update()
		}
		e.renderer.SetAutoClear(autoClear && first)
		e.renderer.Render(s, cam)
		first = false
	}
	e.renderer.SetAutoClear(autoClear)
}

func (e *engine) Quit() {
	e.running = false
}

func (e *engine) Close() error {
	for _, s := range e.scenes {
		s.Clear(true)
	}
	if err := e.window.Close(); err != nil && !errors.Is(err, window.ErrNotCreated) {
		return err
	}
	return nil
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) SetTickRate(fps float64) {
	e.engineTickRate = tickInterval(fps)
}

func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetRenderFrameLimit(fps float64) {
	e.renderFrameLimit = frameInterval(fps)
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	cp := make(map[int]scene.Scene, len(e.scenes))
	for k, v := range e.scenes {
		cp[k] = v
	}
	return cp
}

// tickInterval converts a tick rate to a period, treating rates <= 0 as 60Hz.
func tickInterval(fps float64) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Duration(float64(time.Second) / fps)
}

// frameInterval converts a frame cap to a minimum frame duration, 0 for uncapped.
func frameInterval(fps float64) time.Duration {
	if fps <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / fps)
}
