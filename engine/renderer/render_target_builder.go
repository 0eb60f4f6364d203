package renderer

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// RenderTargetBuilderOption is a functional option applied to a render target during construction.
type RenderTargetBuilderOption func(*renderTarget)

// WithTargetPixelRatio scales the target's storage, clamped to gpu.MaxDevicePixelRatio.
// Defaults to 1.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - RenderTargetBuilderOption: a function that applies the pixel ratio
func WithTargetPixelRatio(ratio float32) RenderTargetBuilderOption {
	return func(t *renderTarget) {
		t.pixelRatio = gpu.ClampPixelRatio(ratio)
	}
}

// WithTargetClearColor sets the initial clear color of the target.
func WithTargetClearColor(r, g, b, a float32) RenderTargetBuilderOption {
	return func(t *renderTarget) {
		t.SetClearColor(r, g, b, a)
	}
}

// WithTargetAutoClear sets whether Render clears the target before drawing.
func WithTargetAutoClear(enable bool) RenderTargetBuilderOption {
	return func(t *renderTarget) {
		t.autoClear = enable
	}
}
