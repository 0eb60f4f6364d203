package common

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
)

// epsilon is the length below which a direction is treated as degenerate.
const epsilon = 1e-6

// WorldUp is the fixed up reference used for look-at orientation.
var WorldUp = mgl32.Vec3{0, 1, 0}

// SliceToBytes reinterprets a slice of fixed-size values as its raw bytes without copying.
//
// Parameters:
//   - data: the slice to reinterpret
//
// Returns:
//   - []byte: the backing memory of data, or nil for an empty slice
func SliceToBytes[T any](data []T) []byte {
	if len(data) == 0 {
		return nil
	}
	var zero T
	size := unsafe.Sizeof(zero)
	totalBytes := int(size) * len(data)
	return unsafe.Slice((*byte)(unsafe.Pointer(&data[0])), totalBytes)
}

// LookAt builds a right-handed view matrix looking from eye toward center.
// When eye and center coincide the identity matrix is returned.
//
// Parameters:
//   - eye: the viewer position
//   - center: the point being looked at
//   - up: the up reference
//
// Returns:
//   - mgl32.Mat4: the column-major view matrix
func LookAt(eye, center, up mgl32.Vec3) mgl32.Mat4 {
	z := eye.Sub(center)
	if z.Len() < epsilon {
		return mgl32.Ident4()
	}
	z = z.Normalize()

	x := up.Cross(z)
	if l := x.Len(); l > 0 {
		x = x.Mul(1 / l)
	}
	y := z.Cross(x)

	return mgl32.Mat4{
		x[0], y[0], z[0], 0,
		x[1], y[1], z[1], 0,
		x[2], y[2], z[2], 0,
		-x.Dot(eye), -y.Dot(eye), -z.Dot(eye), 1,
	}
}

// LookAtBasis returns the orthonormal basis an object at eye uses to face target.
// forward points from target to eye. A zero-length forward falls back to +Z and a
// forward parallel to up is nudged along Z before the side axis is recomputed, so the
// result is always finite and unit length.
//
// Parameters:
//   - eye: the object position
//   - target: the point to face
//   - up: the up reference
//
// Returns:
//   - side, upAxis, forward: the basis vectors
func LookAtBasis(eye, target, up mgl32.Vec3) (side, upAxis, forward mgl32.Vec3) {
	forward = eye.Sub(target)
	if forward.Len() < epsilon {
		forward = mgl32.Vec3{0, 0, 1}
	}
	forward = forward.Normalize()

	side = up.Cross(forward)
	if side.Len() < epsilon {
		forward[2] += 1e-4
		forward = forward.Normalize()
		side = up.Cross(forward)
	}
	if side.Len() < epsilon {
		// up itself is degenerate
		side = mgl32.Vec3{1, 0, 0}
	}
	side = side.Normalize()
	upAxis = forward.Cross(side).Normalize()
	return side, upAxis, forward
}

// LookAtQuat returns the inverse of the rotation whose rows are the look-at basis, which
// turns an object's local +Z away from target. It is the orientation seed applied before
// Euler rotation on transform nodes.
//
// Parameters:
//   - eye: the object position
//   - target: the point to face
//   - up: the up reference
//
// Returns:
//   - mgl32.Quat: the unit orientation quaternion
func LookAtQuat(eye, target, up mgl32.Vec3) mgl32.Quat {
	side, upAxis, forward := LookAtBasis(eye, target, up)
	basis := mgl32.Mat3FromRows(side, upAxis, forward)
	return mgl32.Mat4ToQuat(basis.Mat4()).Normalize().Inverse()
}

// NormalMatrix returns the transpose of the inverse of the upper 3x3 of a model matrix.
// A singular model yields the zero matrix.
//
// Parameters:
//   - model: the model matrix
//
// Returns:
//   - mgl32.Mat3: the matrix that transforms normals into world space
func NormalMatrix(model mgl32.Mat4) mgl32.Mat3 {
	return model.Mat3().Inv().Transpose()
}
