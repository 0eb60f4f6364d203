package renderer

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"go.uber.org/zap"
)

// RendererBuilderOption is a functional option applied to a renderer during construction via NewRenderer.
type RendererBuilderOption func(*renderer)

// WithWidth sets the logical drawing buffer width.
//
// Parameters:
//   - width: the width, 1280 by default
//
// Returns:
//   - RendererBuilderOption: a function that applies the width option to a renderer
func WithWidth(width int) RendererBuilderOption {
	return func(r *renderer) {
		if width > 0 {
			r.width = width
		}
	}
}

// WithHeight sets the logical drawing buffer height.
//
// Parameters:
//   - height: the height, 720 by default
//
// Returns:
//   - RendererBuilderOption: a function that applies the height option to a renderer
func WithHeight(height int) RendererBuilderOption {
	return func(r *renderer) {
		if height > 0 {
			r.height = height
		}
	}
}

// WithAspectRatio overrides the aspect ratio otherwise derived from width and height.
//
// Parameters:
//   - aspect: the width to height ratio
//
// Returns:
//   - RendererBuilderOption: a function that applies the aspect ratio option to a renderer
func WithAspectRatio(aspect float32) RendererBuilderOption {
	return func(r *renderer) {
		r.aspectRatio = aspect
	}
}

// WithAlpha requests a drawing buffer with an alpha channel.
func WithAlpha(alpha bool) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.Alpha = alpha
	}
}

// WithAntialias requests a multisampled drawing buffer.
func WithAntialias(antialias bool) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.Antialias = antialias
	}
}

// WithDepth requests a depth buffer. The depth test is enabled when the renderer is created.
func WithDepth(depth bool) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.Depth = depth
	}
}

// WithStencil requests a stencil buffer.
func WithStencil(stencil bool) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.Stencil = stencil
	}
}

// WithPremultipliedAlpha declares whether the drawing buffer colors have premultiplied alpha.
func WithPremultipliedAlpha(premultiplied bool) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.PremultipliedAlpha = premultiplied
	}
}

// WithPreserveDrawingBuffer requests that presented buffers keep their contents.
func WithPreserveDrawingBuffer(preserve bool) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.PreserveDrawingBuffer = preserve
	}
}

// WithPowerPreference hints which GPU should be used on multi-GPU systems.
//
// Parameters:
//   - preference: the power preference
//
// Returns:
//   - RendererBuilderOption: a function that applies the power preference option to a renderer
func WithPowerPreference(preference gpu.PowerPreference) RendererBuilderOption {
	return func(r *renderer) {
		r.attrs.PowerPreference = preference
	}
}

// WithPixelRatio overrides the device pixel ratio otherwise read from the surface's content
// scale. The ratio is clamped to gpu.MaxDevicePixelRatio.
//
// Parameters:
//   - ratio: the device pixel ratio
//
// Returns:
//   - RendererBuilderOption: a function that applies the pixel ratio option to a renderer
func WithPixelRatio(ratio float32) RendererBuilderOption {
	return func(r *renderer) {
		r.pixelRatio = ratio
	}
}

// WithLogger sets the logger handed to the graphics context. Defaults to a production zap
// logger, or to the injected context's logger when WithContext is used.
//
// Parameters:
//   - logger: the logger
//
// Returns:
//   - RendererBuilderOption: a function that applies the logger option to a renderer
func WithLogger(logger *zap.Logger) RendererBuilderOption {
	return func(r *renderer) {
		r.logger = logger
	}
}

// WithContext injects an existing graphics context instead of creating a backend context.
//
// Parameters:
//   - ctx: the context
//
// Returns:
//   - RendererBuilderOption: a function that applies the context option to a renderer
func WithContext(ctx gpu.Context) RendererBuilderOption {
	return func(r *renderer) {
		r.ctx = ctx
	}
}

// WithGLOptions forwards options to gpu.NewGLContext when the GL backend creates the context.
//
// Parameters:
//   - options: the GL context options
//
// Returns:
//   - RendererBuilderOption: a function that applies the GL options to a renderer
func WithGLOptions(options ...gpu.GLContextBuilderOption) RendererBuilderOption {
	return func(r *renderer) {
		r.glOptions = append(r.glOptions, options...)
	}
}

// WithClearColor sets the initial clear color, opaque black by default.
//
// Parameters:
//   - red, green, blue, alpha: the color components in [0, 1]
//
// Returns:
//   - RendererBuilderOption: a function that applies the clear color option to a renderer
func WithClearColor(red, green, blue, alpha float32) RendererBuilderOption {
	return func(r *renderer) {
		r.SetClearColor(red, green, blue, alpha)
	}
}

// WithAutoClear sets whether Render clears before drawing. Enabled by default.
func WithAutoClear(enable bool) RendererBuilderOption {
	return func(r *renderer) {
		r.autoClear = enable
	}
}

// WithPresentMode sets the surface present mode which controls how frames are delivered to the display.
//
// Parameters:
//   - mode: the PresentMode to use (VSync or Uncapped)
//
// Returns:
//   - RendererBuilderOption: a function that applies the present mode option to a renderer
func WithPresentMode(mode PresentMode) RendererBuilderOption {
	return func(r *renderer) {
		r.presentMode = mode
	}
}
