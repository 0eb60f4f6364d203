package window

// WindowBuilderOption configures a window before CreateContext spawns the GLFW window.
// Sizes are in window coordinates; the OpenGL framebuffer behind them is larger by the
// monitor content scale (see Window.FramebufferSize).
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the title bar text.
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMaxWidth caps the window width. The limit is enforced by NewWindow and SetSize, and
// handed to GLFW as a size limit once the context exists. 0 removes the cap.
//
// Parameters:
//   - maxWidth: maximum width in window coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxWidth(maxWidth int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = maxWidth
	}
}

// WithMaxHeight caps the window height. 0 removes the cap.
//
// Parameters:
//   - maxHeight: maximum height in window coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxHeight(maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxHeight = maxHeight
	}
}

// WithMinWidth sets the smallest width the user can shrink the window to. 0 removes the limit.
//
// Parameters:
//   - minWidth: minimum width in window coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinWidth(minWidth int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
	}
}

// WithMinHeight sets the smallest height the user can shrink the window to. 0 removes the limit.
//
// Parameters:
//   - minHeight: minimum height in window coordinates
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinHeight(minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minHeight = minHeight
	}
}

// WithWidth sets the initial width. The renderer created on the window uses it as its logical
// width and sizes the viewport by the content scale, so a 1280 wide window on a 2x display
// renders into 2560 device pixels.
//
// Parameters:
//   - width: initial width in window coordinates, clamped to the limits
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial height, see WithWidth.
//
// Parameters:
//   - height: initial height in window coordinates, clamped to the limits
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithResizable sets the GLFW resizable hint. Resize events report window coordinates, which
// the engine forwards to the renderer and the scene cameras. Windows are resizable by default.
func WithResizable(resizable bool) WindowBuilderOption {
	return func(w *engineWindow) {
		w.resizable = resizable
	}
}
