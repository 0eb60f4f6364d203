package camera

import "github.com/go-gl/mathgl/mgl32"

// CameraController drives a camera's position and target. It orbits on a sphere around the
// target and pans both points along the camera's local axes, keeping the orbit relationship.
// Attach it with Camera.SetController and call Camera.Update once per frame.
type CameraController interface {
	// Position returns the controlled world-space eye position.
	//
	// Returns:
	//   - mgl32.Vec3: the eye position
	Position() mgl32.Vec3

	// Target returns the orbit pivot.
	//
	// Returns:
	//   - mgl32.Vec3: the look-at point
	Target() mgl32.Vec3

	// SetTarget moves the pivot and recomputes the position from the spherical coordinates.
	//
	// Parameters:
	//   - x, y, z: world-space coordinates
	SetTarget(x, y, z float32)

	// OrbitLeft rotates the eye left around the target by one orbit speed step.
	OrbitLeft()

	// OrbitRight rotates the eye right around the target by one orbit speed step.
	OrbitRight()

	// OrbitUp tilts the eye upward by one orbit speed step, clamped to the max elevation.
	OrbitUp()

	// OrbitDown tilts the eye downward by one orbit speed step, clamped to the min elevation.
	OrbitDown()

	// Drag orbits by a pointer delta scaled by the mouse sensitivity.
	//
	// Parameters:
	//   - dx, dy: pointer movement in pixels
	Drag(dx, dy float32)

	// Zoom moves the eye toward the target. Positive delta zooms in.
	//
	// Parameters:
	//   - delta: zoom amount scaled by the zoom speed
	Zoom(delta float32)

	// Radius returns the distance from the target.
	Radius() float32

	// Azimuth returns the horizontal angle around the Y axis in radians.
	Azimuth() float32

	// Elevation returns the vertical angle from the horizontal plane in radians.
	Elevation() float32

	// PanRight translates eye and target along the camera's right axis.
	//
	// Parameters:
	//   - delta: distance scaled by the pan speed
	PanRight(delta float32)

	// PanUp translates eye and target along the camera's up axis.
	//
	// Parameters:
	//   - delta: distance scaled by the pan speed
	PanUp(delta float32)

	// PanForward translates eye and target along the viewing direction.
	//
	// Parameters:
	//   - delta: distance scaled by the pan speed
	PanForward(delta float32)
}
