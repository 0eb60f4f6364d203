package window

import (
	"errors"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// ErrNotCreated is returned by operations that need the platform window before CreateContext
// has been called.
var ErrNotCreated = errors.New("window is not initialized")

// Window provides platform windowing, the OpenGL context and input event handling.
// Wraps platform-specific window implementations with a common interface.
//
// The platform window is created by CreateContext, which the renderer calls with the
// drawing buffer attributes it was configured with. Window satisfies renderer.Surface.
type Window interface {
	// CreateContext creates the platform window with an OpenGL 4.1 core profile context
	// matching attrs and makes the context current on the calling OS thread, which stays
	// locked to the calling goroutine.
	//
	// Parameters:
	//   - attrs: the requested drawing buffer attributes
	//
	// Returns:
	//   - error: error if the window or context could not be created
	CreateContext(attrs gpu.ContextAttributes) error

	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the window is resized.
	//
	// Parameters:
	//   - callback: function receiving the new logical width and height
	SetResizeCallback(callback func(width, height int))

	// SetScrollCallback sets the callback for mouse scroll wheel events.
	//
	// Parameters:
	//   - callback: function receiving scroll delta (positive = up/zoom in, negative = down/zoom out)
	SetScrollCallback(callback func(delta float32))

	// SetKeyDownCallback sets the callback for key press events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyDownCallback(callback func(keyCode uint32))

	// SetKeyUpCallback sets the callback for key release events.
	//
	// Parameters:
	//   - callback: function receiving the virtual key code
	SetKeyUpCallback(callback func(keyCode uint32))

	// SetMiddleMouseDownCallback sets the callback for middle mouse button press.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMiddleMouseDownCallback(callback func(x, y int32))

	// SetMiddleMouseUpCallback sets the callback for middle mouse button release.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMiddleMouseUpCallback(callback func(x, y int32))

	// SetMouseMoveCallback sets the callback for mouse movement.
	//
	// Parameters:
	//   - callback: function receiving mouse x, y position
	SetMouseMoveCallback(callback func(x, y int32))

	// ContentScale returns the ratio between framebuffer pixels and window coordinates,
	// 1 before the window exists.
	ContentScale() float32

	// FramebufferSize returns the drawable size in pixels.
	//
	// Returns:
	//   - int: width in pixels
	//   - int: height in pixels
	FramebufferSize() (int, int)

	// SetSize resizes the window client area, clamped to the configured limits.
	//
	// Parameters:
	//   - width: the logical width
	//   - height: the logical height
	SetSize(width, height int)

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// SetSwapInterval sets the number of vertical blanks to wait for per swap.
	SetSwapInterval(interval int)

	// PollEvents processes pending events without blocking.
	//
	// Returns:
	//   - bool: true if the window is still running afterwards
	PollEvents() bool

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close closes the window and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls OnUpdate callback each iteration.
	ProcessMessages()

	// Width returns the current window client area width in window coordinates.
	//
	// Returns:
	//   - int: width
	Width() int

	// Height returns the current window client area height in window coordinates.
	//
	// Returns:
	//   - int: height
	Height() int
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, GLFW state, and event callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar.
	title string

	// maxWidth is the maximum allowed window width during resize.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current window client area width.
	width int

	// height is the current window client area height.
	height int

	// resizable allows the user to resize the window.
	resizable bool

	// internalWindow holds the platform-specific window data (glfwWindow).
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the window is resized.
	onResize func(width, height int)

	// onScroll is called for mouse wheel events.
	// Positive delta = scroll up (zoom in), negative = scroll down (zoom out).
	onScroll func(delta float32)

	// onKeyDown is called when a key is pressed.
	onKeyDown func(keyCode uint32)

	// onKeyUp is called when a key is released.
	onKeyUp func(keyCode uint32)

	// onMiddleMouseDown is called when the middle mouse button is pressed.
	onMiddleMouseDown func(x, y int32)

	// onMiddleMouseUp is called when the middle mouse button is released.
	onMiddleMouseUp func(x, y int32)

	// onMouseMove is called when the mouse moves within the window.
	onMouseMove func(x, y int32)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order. The platform window is not
// created until CreateContext.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured window (not yet spawned)
func NewWindow(options ...WindowBuilderOption) Window {
	w := &engineWindow{
		title:     "Default Window Title",
		maxWidth:  1600,
		maxHeight: 1200,
		minWidth:  600,
		minHeight: 200,
		width:     1280,
		height:    720,
		resizable: true,
	}
	for _, opt := range options {
		opt(w)
	}
	w.width, w.height = w.clamp(w.width, w.height)
	return w
}

// clamp limits a size to the configured minimum and maximum. A zero limit is ignored.
func (w *engineWindow) clamp(width, height int) (int, int) {
	if w.minWidth > 0 && width < w.minWidth {
		width = w.minWidth
	}
	if w.maxWidth > 0 && width > w.maxWidth {
		width = w.maxWidth
	}
	if w.minHeight > 0 && height < w.minHeight {
		height = w.minHeight
	}
	if w.maxHeight > 0 && height > w.maxHeight {
		height = w.maxHeight
	}
	return width, height
}

func (w *engineWindow) CreateContext(attrs gpu.ContextAttributes) error {
	return newPlatformWindow(w, attrs)
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SetScrollCallback(callback func(delta float32)) {
	w.onScroll = callback
}

func (w *engineWindow) SetKeyDownCallback(callback func(keyCode uint32)) {
	w.onKeyDown = callback
}

func (w *engineWindow) SetKeyUpCallback(callback func(keyCode uint32)) {
	w.onKeyUp = callback
}

func (w *engineWindow) SetMiddleMouseDownCallback(callback func(x, y int32)) {
	w.onMiddleMouseDown = callback
}

func (w *engineWindow) SetMiddleMouseUpCallback(callback func(x, y int32)) {
	w.onMiddleMouseUp = callback
}

func (w *engineWindow) SetMouseMoveCallback(callback func(x, y int32)) {
	w.onMouseMove = callback
}

func (w *engineWindow) ContentScale() float32 {
	return platformContentScale(w)
}

func (w *engineWindow) FramebufferSize() (int, int) {
	return platformFramebufferSize(w)
}

func (w *engineWindow) SetSize(width, height int) {
	width, height = w.clamp(width, height)
	w.width, w.height = width, height
	platformSetSize(w, width, height)
}

func (w *engineWindow) SwapBuffers() {
	platformSwapBuffers(w)
}

func (w *engineWindow) SetSwapInterval(interval int) {
	platformSetSwapInterval(w, interval)
}

func (w *engineWindow) PollEvents() bool {
	return platformProcessMessages(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	for w.IsRunning() {
		if succ := platformProcessMessages(w); !succ {
			break
		}

		if w.onUpdate != nil {
			w.onUpdate()
		}

		runtime.Gosched()
	}
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}
