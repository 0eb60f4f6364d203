package transform

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/go-gl/mathgl/mgl32"
)

// Object3D is a handle to a hierarchical transform node stored in a Graph.
// Handles are cheap to copy; every accessor resolves the node through the arena, so a
// handle to a disposed node reads zero values and ignores writes.
type Object3D interface {
	// ID returns the arena address of the node.
	ID() NodeID

	// Graph returns the arena the node lives in.
	Graph() *Graph

	// Valid reports whether the node has not been disposed.
	Valid() bool

	// Position returns the local translation.
	Position() mgl32.Vec3

	// SetPosition sets the local translation.
	//
	// Parameters:
	//   - x, y, z: the translation in parent space
	SetPosition(x, y, z float32)

	// Rotation returns the local Euler rotation in radians, applied X then Y then Z.
	Rotation() mgl32.Vec3

	// SetRotation sets the local Euler rotation.
	//
	// Parameters:
	//   - x, y, z: rotation about each axis in radians
	SetRotation(x, y, z float32)

	// Scale returns the local scale.
	Scale() mgl32.Vec3

	// SetScale sets the local scale.
	//
	// Parameters:
	//   - x, y, z: scale factors along each axis
	SetScale(x, y, z float32)

	// MatrixAutoUpdate reports whether UpdateMatrix recomposes the model matrix.
	MatrixAutoUpdate() bool

	// SetMatrixAutoUpdate toggles recomposition of the model matrix. With it disabled the
	// model matrix keeps whatever SetModelMatrix last stored.
	SetMatrixAutoUpdate(enabled bool)

	// LocalMatrix returns the parent model matrix captured by the last update.
	LocalMatrix() mgl32.Mat4

	// ModelMatrix returns the object-to-world matrix computed by the last update.
	ModelMatrix() mgl32.Mat4

	// SetModelMatrix stores a model matrix directly, for use with auto-update disabled.
	SetModelMatrix(m mgl32.Mat4)

	// ModelViewMatrix returns the object-to-view matrix computed by the last update.
	ModelViewMatrix() mgl32.Mat4

	// Quaternion returns the rotation composed by the last update.
	Quaternion() mgl32.Quat

	// LookAtQuaternion returns the orientation seed set by LookAt.
	LookAtQuaternion() mgl32.Quat

	// UpdateMatrix recomputes this node's matrices from its local state and its parent's
	// current model matrix. It does not touch children.
	//
	// Parameters:
	//   - viewer: optional view source; nil leaves the model-view matrix at identity
	UpdateMatrix(viewer Viewer)

	// LookAt orients the node toward target using the world up axis. The Euler rotation
	// is applied on top of the resulting orientation.
	//
	// Parameters:
	//   - target: the world-space point to face
	LookAt(target mgl32.Vec3)

	// Parent returns the parent node if there is one.
	Parent() (Object3D, bool)

	// Children returns the child nodes in attachment order.
	Children() []Object3D

	// SetParent detaches the node from its current parent and attaches it to parent.
	//
	// Parameters:
	//   - parent: the new parent, which must live in the same Graph
	//
	// Returns:
	//   - error: ErrInvalidNode for a disposed or foreign node, ErrCycle if parent is a descendant
	SetParent(parent Object3D) error

	// UnsetParent detaches the node from its parent. It is a no-op for root nodes.
	UnsetParent()

	// Dispose detaches the node from its parent, clears its children list and invalidates
	// its ID. Children are not disposed; they become roots.
	Dispose()
}

// object3D is the handle implementation of Object3D.
type object3D struct {
	graph *Graph
	id    NodeID
}

var _ Object3D = &object3D{}

func (o *object3D) n() *node {
	return o.graph.get(o.id)
}

func (o *object3D) ID() NodeID {
	return o.id
}

func (o *object3D) Graph() *Graph {
	return o.graph
}

func (o *object3D) Valid() bool {
	return o.n() != nil
}

func (o *object3D) Position() mgl32.Vec3 {
	if n := o.n(); n != nil {
		return n.position
	}
	return mgl32.Vec3{}
}

func (o *object3D) SetPosition(x, y, z float32) {
	if n := o.n(); n != nil {
		n.position = mgl32.Vec3{x, y, z}
	}
}

func (o *object3D) Rotation() mgl32.Vec3 {
	if n := o.n(); n != nil {
		return n.rotation
	}
	return mgl32.Vec3{}
}

func (o *object3D) SetRotation(x, y, z float32) {
	if n := o.n(); n != nil {
		n.rotation = mgl32.Vec3{x, y, z}
	}
}

func (o *object3D) Scale() mgl32.Vec3 {
	if n := o.n(); n != nil {
		return n.scale
	}
	return mgl32.Vec3{}
}

func (o *object3D) SetScale(x, y, z float32) {
	if n := o.n(); n != nil {
		n.scale = mgl32.Vec3{x, y, z}
	}
}

func (o *object3D) MatrixAutoUpdate() bool {
	if n := o.n(); n != nil {
		return n.matrixAutoUpdate
	}
	return false
}

func (o *object3D) SetMatrixAutoUpdate(enabled bool) {
	if n := o.n(); n != nil {
		n.matrixAutoUpdate = enabled
	}
}

func (o *object3D) LocalMatrix() mgl32.Mat4 {
	if n := o.n(); n != nil {
		return n.localMatrix
	}
	return mgl32.Ident4()
}

func (o *object3D) ModelMatrix() mgl32.Mat4 {
	if n := o.n(); n != nil {
		return n.modelMatrix
	}
	return mgl32.Ident4()
}

func (o *object3D) SetModelMatrix(m mgl32.Mat4) {
	if n := o.n(); n != nil {
		n.modelMatrix = m
	}
}

func (o *object3D) ModelViewMatrix() mgl32.Mat4 {
	if n := o.n(); n != nil {
		return n.modelViewMatrix
	}
	return mgl32.Ident4()
}

func (o *object3D) Quaternion() mgl32.Quat {
	if n := o.n(); n != nil {
		return n.quaternion
	}
	return mgl32.QuatIdent()
}

func (o *object3D) LookAtQuaternion() mgl32.Quat {
	if n := o.n(); n != nil {
		return n.lookAtQuat
	}
	return mgl32.QuatIdent()
}

func (o *object3D) UpdateMatrix(viewer Viewer) {
	n := o.n()
	if n == nil {
		return
	}

	n.modelViewMatrix = mgl32.Ident4()

	if n.matrixAutoUpdate {
		n.localMatrix = mgl32.Ident4()
		n.modelMatrix = mgl32.Ident4()

		if parent := o.graph.get(n.parent); parent != nil {
			n.localMatrix = parent.modelMatrix
			n.modelMatrix = n.modelMatrix.Mul4(n.localMatrix)
		}

		// rotation is applied on top of the look-at orientation, never replaced by it
		q := n.lookAtQuat
		q = q.Mul(mgl32.QuatRotate(n.rotation[0], mgl32.Vec3{1, 0, 0}))
		q = q.Mul(mgl32.QuatRotate(n.rotation[1], mgl32.Vec3{0, 1, 0}))
		q = q.Mul(mgl32.QuatRotate(n.rotation[2], mgl32.Vec3{0, 0, 1}))
		n.quaternion = q

		n.modelMatrix = n.modelMatrix.
			Mul4(mgl32.Translate3D(n.position[0], n.position[1], n.position[2])).
			Mul4(q.Normalize().Mat4()).
			Mul4(mgl32.Scale3D(n.scale[0], n.scale[1], n.scale[2]))
	}

	if viewer != nil {
		n.modelViewMatrix = viewer.WorldInverseMatrix().Mul4(n.modelMatrix)
	}
}

func (o *object3D) LookAt(target mgl32.Vec3) {
	if n := o.n(); n != nil {
		n.lookAtQuat = common.LookAtQuat(n.position, target, common.WorldUp)
	}
}

func (o *object3D) Parent() (Object3D, bool) {
	n := o.n()
	if n == nil {
		return nil, false
	}
	return o.graph.Object(n.parent)
}

func (o *object3D) Children() []Object3D {
	n := o.n()
	if n == nil {
		return nil
	}
	out := make([]Object3D, 0, len(n.children))
	for _, id := range n.children {
		if child, ok := o.graph.Object(id); ok {
			out = append(out, child)
		}
	}
	return out
}

func (o *object3D) SetParent(parent Object3D) error {
	if parent == nil || parent.Graph() != o.graph || o.n() == nil || o.graph.get(parent.ID()) == nil {
		return ErrInvalidNode
	}
	if o.graph.isAncestor(o.id, parent.ID()) {
		return ErrCycle
	}

	o.UnsetParent()

	p := o.graph.get(parent.ID())
	p.children = append(p.children, o.id)
	o.n().parent = parent.ID()
	return nil
}

func (o *object3D) UnsetParent() {
	n := o.n()
	if n == nil {
		return
	}
	if p := o.graph.get(n.parent); p != nil {
		p.children = removeID(p.children, o.id)
	}
	n.parent = NodeID{}
}

func (o *object3D) Dispose() {
	if o.n() == nil {
		return
	}
	o.UnsetParent()
	o.graph.release(o.id)
}
