package camera

// CameraControllerOption is a functional option for configuring a CameraController.
type CameraControllerOption func(*cameraControllerImpl)

// WithRadius sets the initial distance from the target.
//
// Parameters:
//   - radius: distance in world units
//
// Returns:
//   - CameraControllerOption: a function that sets the radius
func WithRadius(radius float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.radius = radius
	}
}

// WithAzimuth sets the initial horizontal angle.
//
// Parameters:
//   - azimuth: angle around the Y axis in radians
//
// Returns:
//   - CameraControllerOption: a function that sets the azimuth
func WithAzimuth(azimuth float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.azimuth = azimuth
	}
}

// WithElevation sets the initial vertical angle.
//
// Parameters:
//   - elevation: angle above the horizontal plane in radians
//
// Returns:
//   - CameraControllerOption: a function that sets the elevation
func WithElevation(elevation float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.elevation = elevation
	}
}

// WithOrbitTarget sets the initial orbit pivot.
//
// Parameters:
//   - x, y, z: world-space coordinates
//
// Returns:
//   - CameraControllerOption: a function that sets the pivot
func WithOrbitTarget(x, y, z float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.target[0], cc.target[1], cc.target[2] = x, y, z
	}
}

// WithRadiusBounds sets the zoom limits.
//
// Parameters:
//   - min, max: the closest and farthest allowed distances
//
// Returns:
//   - CameraControllerOption: a function that sets the bounds
func WithRadiusBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minRadius = min
		cc.maxRadius = max
	}
}

// WithElevationBounds sets the tilt limits.
//
// Parameters:
//   - min, max: the lowest and highest allowed elevations in radians
//
// Returns:
//   - CameraControllerOption: a function that sets the bounds
func WithElevationBounds(min, max float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.minElevation = min
		cc.maxElevation = max
	}
}

// WithOrbitSpeed sets the keyboard orbit step in radians.
func WithOrbitSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.orbitSpeed = speed
	}
}

// WithMouseSensitivity sets the radians orbited per dragged pixel.
func WithMouseSensitivity(sensitivity float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.mouseSensitivity = sensitivity
	}
}

// WithZoomSpeed sets the distance moved per unit of zoom.
func WithZoomSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.zoomSpeed = speed
	}
}

// WithPanSpeed sets the distance moved per unit of pan.
func WithPanSpeed(speed float32) CameraControllerOption {
	return func(cc *cameraControllerImpl) {
		cc.panSpeed = speed
	}
}
