package gpu

// PowerPreference hints which GPU the platform should select on multi-GPU systems.
type PowerPreference string

const (
	PowerPreferenceDefault         PowerPreference = "default"
	PowerPreferenceHighPerformance PowerPreference = "high-performance"
	PowerPreferenceLowPower        PowerPreference = "low-power"
)

// ContextAttributes are the drawing buffer attributes requested when a context is created.
type ContextAttributes struct {
	Alpha                 bool
	Antialias             bool
	Depth                 bool
	Stencil               bool
	PremultipliedAlpha    bool
	PreserveDrawingBuffer bool
	PowerPreference       PowerPreference
}

// DefaultContextAttributes returns the attributes used when the host does not override them.
//
// Returns:
//   - ContextAttributes: alpha, antialias, depth and stencil off, premultiplied alpha on
func DefaultContextAttributes() ContextAttributes {
	return ContextAttributes{
		Alpha:                 false,
		Antialias:             false,
		Depth:                 false,
		Stencil:               false,
		PremultipliedAlpha:    true,
		PreserveDrawingBuffer: false,
		PowerPreference:       PowerPreferenceDefault,
	}
}

// ClampPixelRatio limits a device pixel ratio to MaxDevicePixelRatio.
// Non-positive ratios are treated as 1.
//
// Parameters:
//   - ratio: the ratio reported by the surface or requested by the host
//
// Returns:
//   - float32: the ratio the renderer will use
func ClampPixelRatio(ratio float32) float32 {
	if ratio <= 0 {
		return 1
	}
	if ratio > MaxDevicePixelRatio {
		return MaxDevicePixelRatio
	}
	return ratio
}
