package geometry

import "github.com/go-gl/mathgl/mgl32"

// Face is one indexed triangle with its cached normal.
type Face struct {
	// Indices are the three vertex indices, counter-clockwise.
	Indices [3]int
	// Normal is normalize((v2 - v1) x (v0 - v1)).
	Normal mgl32.Vec3
}

// NewFace builds a face and computes its normal from the given vertex list.
//
// Parameters:
//   - a, b, c: vertex indices
//   - vertices: the vertex positions the indices refer to
//
// Returns:
//   - Face: the face with its normal set
func NewFace(a, b, c int, vertices []mgl32.Vec3) Face {
	f := Face{Indices: [3]int{a, b, c}}
	f.UpdateNormal(vertices)
	return f
}

// UpdateNormal recomputes the cached normal. A degenerate triangle gets a zero normal.
//
// Parameters:
//   - vertices: the vertex positions the indices refer to
func (f *Face) UpdateNormal(vertices []mgl32.Vec3) {
	for _, i := range f.Indices {
		if i < 0 || i >= len(vertices) {
			f.Normal = mgl32.Vec3{}
			return
		}
	}
	v0 := vertices[f.Indices[0]]
	v1 := vertices[f.Indices[1]]
	v2 := vertices[f.Indices[2]]

	n := v2.Sub(v1).Cross(v0.Sub(v1))
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	f.Normal = n
}
