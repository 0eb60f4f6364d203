package camera

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
)

type cameraImpl struct {
	mu *sync.Mutex

	position mgl32.Vec3
	target   mgl32.Vec3
	up       mgl32.Vec3

	projection Projection

	worldInverseMatrix mgl32.Mat4
	projectionMatrix   mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the camera system.
// The camera holds a projection variant plus position, target and up, and exposes the
// projection and world-inverse (view) matrices consumed by meshes at draw time.
type Camera interface {
	transform.Viewer

	// Position returns the camera's world-space position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// SetPosition sets the camera's world-space position. Call UpdateMatrixWorld afterwards.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetPosition(x, y, z float32)

	// Target returns the point the camera looks at.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at point
	Target() mgl32.Vec3

	// LookAt sets the point the camera looks at. Call UpdateMatrixWorld afterwards.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	LookAt(x, y, z float32)

	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up reference
	Up() mgl32.Vec3

	// SetUp sets the camera's up vector. Call UpdateMatrixWorld afterwards.
	//
	// Parameters:
	//   - x, y, z: up vector components
	SetUp(x, y, z float32)

	// Projection returns the current projection variant.
	//
	// Returns:
	//   - Projection: a Perspective or Orthographic value
	Projection() Projection

	// SetProjection replaces the projection variant and recomputes the projection matrix.
	//
	// Parameters:
	//   - p: a Perspective or Orthographic value
	SetProjection(p Projection)

	// Near returns the near clipping plane distance.
	Near() float32

	// Far returns the far clipping plane distance.
	Far() float32

	// SetNear sets the near clipping plane distance and recomputes the projection matrix.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes the projection matrix.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetAspect sets the aspect ratio of a perspective projection and recomputes the
	// projection matrix. Orthographic projections are left unchanged.
	//
	// Parameters:
	//   - aspect: width divided by height
	SetAspect(aspect float32)

	// ProjectionMatrix returns the projection matrix computed by the last UpdateProjectionMatrix.
	//
	// Returns:
	//   - mgl32.Mat4: the column-major projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns projection * worldInverse.
	//
	// Returns:
	//   - mgl32.Mat4: the combined matrix
	ViewProjectionMatrix() mgl32.Mat4

	// UpdateMatrixWorld recomputes the world-inverse matrix from position, target and up.
	UpdateMatrixWorld()

	// UpdateProjectionMatrix recomputes the projection matrix from the projection variant.
	UpdateProjectionMatrix()

	// Controller returns the attached CameraController, or nil.
	Controller() CameraController

	// SetController attaches a CameraController driving position and target.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)

	// Update reads position and target from the attached controller and recomputes the
	// world-inverse matrix. Without a controller it does nothing.
	Update()
}

var _ Camera = &cameraImpl{}

// NewCamera creates a camera with a 70 degree perspective projection at the origin looking
// at the origin with +Y up, then applies the options. Both matrices are computed before
// returning.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:         &sync.Mutex{},
		up:         mgl32.Vec3{0, 1, 0},
		projection: DefaultPerspective(),
	}

	for _, option := range options {
		option(c)
	}

	c.updateWorld()
	c.updateProjection()
	return c
}

func (c *cameraImpl) updateWorld() {
	c.worldInverseMatrix = common.LookAt(c.position, c.target, c.up)
}

func (c *cameraImpl) updateProjection() {
	c.projectionMatrix = ComputeProjection(c.projection)
}

func (c *cameraImpl) WorldInverseMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worldInverseMatrix
}

func (c *cameraImpl) Position() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.position
}

func (c *cameraImpl) SetPosition(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.position = mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) Target() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

func (c *cameraImpl) LookAt(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.target = mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) SetUp(x, y, z float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = mgl32.Vec3{x, y, z}
}

func (c *cameraImpl) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projection
}

func (c *cameraImpl) SetProjection(p Projection) {
	if p == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projection = p
	c.updateProjection()
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	near, _ := c.projection.clip()
	return near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, far := c.projection.clip()
	return far
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, far := c.projection.clip()
	c.projection = c.projection.withClip(near, far)
	c.updateProjection()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	near, _ := c.projection.clip()
	c.projection = c.projection.withClip(near, far)
	c.updateProjection()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if p, ok := c.projection.(Perspective); ok {
		p.Aspect = aspect
		c.projection = p
		c.updateProjection()
	}
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix.Mul4(c.worldInverseMatrix)
}

func (c *cameraImpl) UpdateMatrixWorld() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateWorld()
}

func (c *cameraImpl) UpdateProjectionMatrix() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateProjection()
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.controller == nil {
		return
	}
	c.position = c.controller.Position()
	c.target = c.controller.Target()
	c.updateWorld()
}
