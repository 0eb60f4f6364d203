package transform

import (
	"errors"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	// ErrInvalidNode is returned when an operation references a disposed or foreign node.
	ErrInvalidNode = errors.New("transform: invalid node")
	// ErrCycle is returned when re-parenting would make a node its own ancestor.
	ErrCycle = errors.New("transform: parent would create a cycle")
)

// NodeID addresses a node inside a Graph. IDs of disposed nodes stop resolving once the slot
// is released, even if the slot is later reused. The zero NodeID never resolves.
type NodeID struct {
	index      uint32
	generation uint32
}

// Viewer supplies the view matrix composed into a node's model-view matrix.
type Viewer interface {
	WorldInverseMatrix() mgl32.Mat4
}

// node is one arena slot. Parent and child links are NodeIDs into the same arena.
type node struct {
	generation uint32
	alive      bool

	parent   NodeID
	children []NodeID

	position         mgl32.Vec3
	rotation         mgl32.Vec3
	scale            mgl32.Vec3
	matrixAutoUpdate bool

	lookAtQuat mgl32.Quat
	quaternion mgl32.Quat

	localMatrix     mgl32.Mat4
	modelMatrix     mgl32.Mat4
	modelViewMatrix mgl32.Mat4
}

// Graph is an arena of transform nodes. Each node stores the index of its parent and the
// indices of its children, similar to a skeleton's bone table, so no node holds a pointer to
// another. Graph is not safe for concurrent use; it is driven from the render thread.
type Graph struct {
	nodes []node
	free  []uint32
}

// NewGraph creates an empty arena.
func NewGraph() *Graph {
	return &Graph{}
}

// NewObject allocates a root node with identity transforms and unit scale.
//
// Returns:
//   - Object3D: a handle to the new node
func (g *Graph) NewObject() Object3D {
	var index uint32
	if n := len(g.free); n > 0 {
		index = g.free[n-1]
		g.free = g.free[:n-1]
	} else {
		g.nodes = append(g.nodes, node{})
		index = uint32(len(g.nodes) - 1)
	}

	n := &g.nodes[index]
	generation := n.generation + 1
	*n = node{
		generation:       generation,
		alive:            true,
		scale:            mgl32.Vec3{1, 1, 1},
		matrixAutoUpdate: true,
		lookAtQuat:       mgl32.QuatIdent(),
		quaternion:       mgl32.QuatIdent(),
		localMatrix:      mgl32.Ident4(),
		modelMatrix:      mgl32.Ident4(),
		modelViewMatrix:  mgl32.Ident4(),
	}

	return &object3D{graph: g, id: NodeID{index: index, generation: generation}}
}

// Object returns a handle for id if it still resolves.
func (g *Graph) Object(id NodeID) (Object3D, bool) {
	if g.get(id) == nil {
		return nil, false
	}
	return &object3D{graph: g, id: id}, true
}

// Len returns the number of live nodes.
func (g *Graph) Len() int {
	return len(g.nodes) - len(g.free)
}

// Traverse visits root and then its descendants depth-first, parents before children.
// Traversal stops early when visit returns false.
//
// Parameters:
//   - root: the subtree root
//   - visit: called once per live node
func (g *Graph) Traverse(root NodeID, visit func(Object3D) bool) {
	g.traverse(root, visit)
}

func (g *Graph) traverse(id NodeID, visit func(Object3D) bool) bool {
	n := g.get(id)
	if n == nil {
		return true
	}
	if !visit(&object3D{graph: g, id: id}) {
		return false
	}
	// copy: visit may re-parent
	children := append([]NodeID(nil), n.children...)
	for _, child := range children {
		if !g.traverse(child, visit) {
			return false
		}
	}
	return true
}

// UpdateMatrices recomputes the matrices of root and all its descendants in parent-first
// order, so every node composes with an up-to-date parent model matrix.
//
// Parameters:
//   - root: the subtree root
//   - viewer: optional view source for model-view matrices, may be nil
func (g *Graph) UpdateMatrices(root NodeID, viewer Viewer) {
	g.Traverse(root, func(o Object3D) bool {
		o.UpdateMatrix(viewer)
		return true
	})
}

// get resolves id to its slot, or nil when the id is stale or out of range.
func (g *Graph) get(id NodeID) *node {
	if id.generation == 0 || int(id.index) >= len(g.nodes) {
		return nil
	}
	n := &g.nodes[id.index]
	if !n.alive || n.generation != id.generation {
		return nil
	}
	return n
}

// release invalidates id and returns its slot to the free list.
func (g *Graph) release(id NodeID) {
	n := g.get(id)
	if n == nil {
		return
	}
	n.alive = false
	n.parent = NodeID{}
	n.children = nil
	g.free = append(g.free, id.index)
}

// isAncestor reports whether candidate is id or one of its ancestors.
func (g *Graph) isAncestor(candidate, id NodeID) bool {
	for cur := id; ; {
		if cur == candidate {
			return true
		}
		n := g.get(cur)
		if n == nil {
			return false
		}
		cur = n.parent
	}
}

func removeID(ids []NodeID, id NodeID) []NodeID {
	for i, c := range ids {
		if c == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
