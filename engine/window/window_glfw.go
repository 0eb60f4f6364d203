package window

import (
	"fmt"
	"runtime"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/glfw/v3.3/glfw"
)

// glfwWindow holds the GLFW-specific window state.
type glfwWindow struct {
	parent  *engineWindow
	window  *glfw.Window
	running bool
}

// contextHints translates drawing buffer attributes into GLFW window hints for an
// OpenGL 4.1 core profile context.
//
// Reference: https://www.glfw.org/docs/latest/window_guide.html#window_hints_ctx
func contextHints(attrs gpu.ContextAttributes, resizable bool) map[glfw.Hint]int {
	hints := map[glfw.Hint]int{
		glfw.ClientAPI:               glfw.OpenGLAPI,
		glfw.ContextVersionMajor:     4,
		glfw.ContextVersionMinor:     1,
		glfw.OpenGLProfile:           glfw.OpenGLCoreProfile,
		glfw.OpenGLForwardCompatible: glfw.True,
		glfw.Resizable:               boolHint(resizable),
		glfw.DepthBits:               0,
		glfw.StencilBits:             0,
		glfw.Samples:                 0,
		glfw.AlphaBits:               0,
		glfw.TransparentFramebuffer:  boolHint(attrs.Alpha),
		glfw.ScaleToMonitor:          glfw.True,
	}
	if attrs.Depth {
		hints[glfw.DepthBits] = 24
	}
	if attrs.Stencil {
		hints[glfw.StencilBits] = 8
	}
	if attrs.Antialias {
		hints[glfw.Samples] = 4
	}
	if attrs.Alpha {
		hints[glfw.AlphaBits] = 8
	}
	return hints
}

func boolHint(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// newPlatformWindow creates the GLFW window and its OpenGL context, registers input callbacks
// and stores it as the internal window. The calling goroutine is locked to its OS thread since
// the context is only current there.
//
// GLFW reference: https://www.glfw.org/docs/latest/window_guide.html
// go-gl/glfw: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw
func newPlatformWindow(w *engineWindow, attrs gpu.ContextAttributes) error {
	if w.internalWindow != nil {
		return fmt.Errorf("window already has a context")
	}

	runtime.LockOSThread()

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("failed to initialize GLFW: %v", err)
	}

	glfw.DefaultWindowHints()
	for hint, value := range contextHints(attrs, w.resizable) {
		glfw.WindowHint(hint, value)
	}

	win, err := glfw.CreateWindow(w.width, w.height, w.title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return fmt.Errorf("failed to create GLFW window: %v", err)
	}
	win.MakeContextCurrent()
	win.SetSizeLimits(limit(w.minWidth), limit(w.minHeight), limit(w.maxWidth), limit(w.maxHeight))

	gw := &glfwWindow{
		parent:  w,
		window:  win,
		running: true,
	}
	w.internalWindow = gw

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetKeyCallback
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if key == glfw.KeyEscape && action == glfw.Press {
			gw.running = false
			win.SetShouldClose(true)
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			if w.onKeyDown != nil {
				w.onKeyDown(uint32(key))
			}
		case glfw.Release:
			if w.onKeyUp != nil {
				w.onKeyUp(uint32(key))
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetScrollCallback
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		if w.onScroll != nil {
			w.onScroll(float32(yoff))
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetMouseButtonCallback
	win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonMiddle {
			xpos, ypos := win.GetCursorPos()
			switch action {
			case glfw.Press:
				if w.onMiddleMouseDown != nil {
					w.onMiddleMouseDown(int32(xpos), int32(ypos))
				}
			case glfw.Release:
				if w.onMiddleMouseUp != nil {
					w.onMiddleMouseUp(int32(xpos), int32(ypos))
				}
			}
		}
	})

	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetCursorPosCallback
	win.SetCursorPosCallback(func(_ *glfw.Window, xpos, ypos float64) {
		if w.onMouseMove != nil {
			w.onMouseMove(int32(xpos), int32(ypos))
		}
	})

	// The renderer scales logical sizes by the content scale itself, so resize events report
	// window coordinates rather than framebuffer pixels.
	// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Window.SetSizeCallback
	win.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.width = width
		w.height = height
		if w.onResize != nil {
			w.onResize(width, height)
		}
	})

	w.width, w.height = win.GetSize()
	return nil
}

func limit(v int) int {
	if v <= 0 {
		return glfw.DontCare
	}
	return v
}

func glfwOf(w *engineWindow) (*glfwWindow, bool) {
	gw, ok := w.internalWindow.(*glfwWindow)
	return gw, ok && gw != nil
}

// platformContentScale returns the ratio between framebuffer pixels and window coordinates.
// Falls back to 1 before the window exists or for a zero-sized window.
func platformContentScale(w *engineWindow) float32 {
	gw, ok := glfwOf(w)
	if !ok {
		return 1
	}
	fbWidth, _ := gw.window.GetFramebufferSize()
	width, _ := gw.window.GetSize()
	if width <= 0 || fbWidth <= 0 {
		return 1
	}
	return float32(fbWidth) / float32(width)
}

func platformFramebufferSize(w *engineWindow) (int, int) {
	gw, ok := glfwOf(w)
	if !ok {
		return w.width, w.height
	}
	return gw.window.GetFramebufferSize()
}

func platformSetSize(w *engineWindow, width, height int) {
	if gw, ok := glfwOf(w); ok {
		gw.window.SetSize(width, height)
	}
}

func platformSwapBuffers(w *engineWindow) {
	if gw, ok := glfwOf(w); ok {
		gw.window.SwapBuffers()
	}
}

// platformSetSwapInterval applies to the context current on the calling thread.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#SwapInterval
func platformSetSwapInterval(w *engineWindow, interval int) {
	if _, ok := glfwOf(w); ok {
		glfw.SwapInterval(interval)
	}
}

// platformIsRunningCheck returns whether the GLFW window is still active.
// Returns false if the internal window is nil, the running flag is cleared, or GLFW reports ShouldClose.
//
// Parameters:
//   - w: the engineWindow to check
//
// Returns:
//   - bool: true if the window is still running
func platformIsRunningCheck(w *engineWindow) bool {
	gw, ok := glfwOf(w)
	if !ok {
		return false
	}
	return gw.running && !gw.window.ShouldClose()
}

// platformCloseWindow destroys the GLFW window and terminates the GLFW library.
// Returns ErrNotCreated if the internal window has not been initialized.
//
// Parameters:
//   - w: the engineWindow to close
//
// Returns:
//   - error: error if the window is not initialized
func platformCloseWindow(w *engineWindow) error {
	gw, ok := glfwOf(w)
	if !ok {
		return ErrNotCreated
	}
	gw.running = false
	gw.window.SetShouldClose(true)
	gw.window.Destroy()
	glfw.Terminate()
	w.internalWindow = nil
	return nil
}

// platformProcessMessages polls GLFW for pending events without blocking.
//
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#PollEvents
func platformProcessMessages(w *engineWindow) bool {
	if _, ok := glfwOf(w); !ok {
		return false
	}
	glfw.PollEvents()
	return platformIsRunningCheck(w)
}
