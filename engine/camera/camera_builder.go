package camera

import "github.com/go-gl/mathgl/mgl32"

type CameraBuilderOption func(*cameraImpl)

// WithPerspective sets a perspective projection.
//
// Parameters:
//   - fieldOfView: vertical field of view in degrees
//   - aspect: width divided by height
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithPerspective(fieldOfView, aspect, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = Perspective{FieldOfView: fieldOfView, Aspect: aspect, Near: near, Far: far}
	}
}

// WithOrthographic sets an orthographic projection.
//
// Parameters:
//   - left, right, bottom, top: the box bounds in view space
//   - near, far: clipping plane distances
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithOrthographic(left, right, bottom, top, near, far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.projection = Orthographic{Left: left, Right: right, Bottom: bottom, Top: top, Near: near, Far: far}
	}
}

// WithProjection sets the projection variant directly.
//
// Parameters:
//   - p: a Perspective or Orthographic value
//
// Returns:
//   - CameraBuilderOption: a function that sets the projection
func WithProjection(p Projection) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p != nil {
			c.projection = p
		}
	}
}

// WithFieldOfView sets the vertical field of view of a perspective projection.
//
// Parameters:
//   - degrees: field of view in degrees
//
// Returns:
//   - CameraBuilderOption: a function that sets the field of view
func WithFieldOfView(degrees float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p, ok := c.projection.(Perspective); ok {
			p.FieldOfView = degrees
			c.projection = p
		}
	}
}

// WithAspect sets the aspect ratio of a perspective projection.
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		if p, ok := c.projection.(Perspective); ok {
			p.Aspect = aspect
			c.projection = p
		}
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		_, far := c.projection.clip()
		c.projection = c.projection.withClip(near, far)
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		near, _ := c.projection.clip()
		c.projection = c.projection.withClip(near, far)
	}
}

// WithPosition sets the camera's world-space position.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the position
func WithPosition(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.position = mgl32.Vec3{x, y, z}
	}
}

// WithTarget sets the point the camera looks at.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraBuilderOption: a function that sets the target
func WithTarget(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.target = mgl32.Vec3{x, y, z}
	}
}

// WithUp sets the camera's up vector.
//
// Parameters:
//   - x, y, z: up vector components
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(x, y, z float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = mgl32.Vec3{x, y, z}
	}
}

// WithController attaches a CameraController and adopts its position and target.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: a function that attaches the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
		if ctrl != nil {
			c.position = ctrl.Position()
			c.target = ctrl.Target()
		}
	}
}
