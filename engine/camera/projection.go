package camera

import "github.com/go-gl/mathgl/mgl32"

// Projection is the closed set of camera projections: Perspective or Orthographic.
type Projection interface {
	// clip returns the near and far plane distances.
	clip() (near, far float32)
	// withClip returns a copy with the near and far planes replaced.
	withClip(near, far float32) Projection
}

// Perspective is a symmetric frustum projection.
type Perspective struct {
	// FieldOfView is the vertical field of view in degrees.
	FieldOfView float32
	// Aspect is width divided by height.
	Aspect float32
	Near   float32
	Far    float32
}

// Orthographic is a box projection.
type Orthographic struct {
	Left   float32
	Right  float32
	Bottom float32
	Top    float32
	Near   float32
	Far    float32
}

func (p Perspective) clip() (float32, float32) { return p.Near, p.Far }

func (p Perspective) withClip(near, far float32) Projection {
	p.Near, p.Far = near, far
	return p
}

func (o Orthographic) clip() (float32, float32) { return o.Near, o.Far }

func (o Orthographic) withClip(near, far float32) Projection {
	o.Near, o.Far = near, far
	return o
}

// Default projection parameters.
const (
	DefaultNear        float32 = 0.1
	DefaultFar         float32 = 100
	DefaultFieldOfView float32 = 70
)

// DefaultPerspective returns a 70 degree perspective sized for the default drawing surface.
func DefaultPerspective() Perspective {
	return Perspective{
		FieldOfView: DefaultFieldOfView,
		Aspect:      1280.0 / 720.0,
		Near:        DefaultNear,
		Far:         DefaultFar,
	}
}

// DefaultOrthographic returns a unit box projection.
func DefaultOrthographic() Orthographic {
	return Orthographic{
		Left:   -1,
		Right:  1,
		Bottom: -1,
		Top:    1,
		Near:   DefaultNear,
		Far:    DefaultFar,
	}
}

// ComputeProjection builds the OpenGL clip-space matrix for a projection.
//
// Parameters:
//   - p: the projection variant
//
// Returns:
//   - mgl32.Mat4: the column-major projection matrix, identity for a nil projection
func ComputeProjection(p Projection) mgl32.Mat4 {
	switch p := p.(type) {
	case Perspective:
		return mgl32.Perspective(mgl32.DegToRad(p.FieldOfView), p.Aspect, p.Near, p.Far)
	case Orthographic:
		return mgl32.Ortho(p.Left, p.Right, p.Bottom, p.Top, p.Near, p.Far)
	default:
		return mgl32.Ident4()
	}
}
