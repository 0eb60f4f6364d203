package renderer

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// RendererBackendType identifies the GPU backend implementation used by the Renderer.
type RendererBackendType int

const (
	// BackendTypeGL selects the OpenGL 4.1 core profile backend.
	BackendTypeGL RendererBackendType = iota
)

// PresentMode controls how rendered frames are presented to the display surface.
type PresentMode int

const (
	// PresentModeVSync waits for the next vertical blank before presenting, capping frame rate
	// to the monitor's refresh rate. Eliminates tearing.
	PresentModeVSync PresentMode = iota

	// PresentModeUncapped presents frames immediately without waiting for vertical blank.
	// May cause screen tearing but provides the lowest latency.
	PresentModeUncapped
)

// SwapInterval returns the buffer swap interval implementing the mode.
//
// Returns:
//   - int: 1 for VSync, 0 for Uncapped
func (m PresentMode) SwapInterval() int {
	if m == PresentModeUncapped {
		return 0
	}
	return 1
}

// Surface is the drawable a Renderer presents to. window.Window implements it; tests supply
// a fake.
type Surface interface {
	// CreateContext creates the platform context with the requested drawing buffer attributes
	// and makes it current on the calling thread.
	//
	// Parameters:
	//   - attrs: the requested drawing buffer attributes
	//
	// Returns:
	//   - error: an error if no context satisfying the attributes could be created
	CreateContext(attrs gpu.ContextAttributes) error

	// ContentScale returns the ratio between framebuffer pixels and logical size.
	ContentScale() float32

	// SetSize resizes the surface to a logical size.
	SetSize(width, height int)

	// SwapBuffers presents the back buffer.
	SwapBuffers()

	// SetSwapInterval sets the number of vertical blanks to wait for per swap.
	SetSwapInterval(interval int)
}
