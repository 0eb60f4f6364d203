package mesh

// MeshBuilderOption is a function that configures a mesh instance during construction.
type MeshBuilderOption func(*mesh)

// WithPosition sets the initial local position of the mesh node.
//
// Parameters:
//   - x, y, z: the position components
//
// Returns:
//   - MeshBuilderOption: a function that applies the position option to a mesh
func WithPosition(x, y, z float32) MeshBuilderOption {
	return func(m *mesh) {
		m.object.SetPosition(x, y, z)
	}
}

// WithRotation sets the initial Euler rotation of the mesh node, in radians.
func WithRotation(x, y, z float32) MeshBuilderOption {
	return func(m *mesh) {
		m.object.SetRotation(x, y, z)
	}
}

// WithScale sets the initial scale of the mesh node.
func WithScale(x, y, z float32) MeshBuilderOption {
	return func(m *mesh) {
		m.object.SetScale(x, y, z)
	}
}

// WithVisible sets whether the mesh starts visible.
func WithVisible(visible bool) MeshBuilderOption {
	return func(m *mesh) {
		m.visible = visible
	}
}

// WithInstanceCount makes the mesh instanced with the given number of instances.
//
// Parameters:
//   - count: the number of instances drawn by DrawInstance
//
// Returns:
//   - MeshBuilderOption: a function that applies the instance count option to a mesh
func WithInstanceCount(count int) MeshBuilderOption {
	return func(m *mesh) {
		m.instanceCount = max(count, 0)
	}
}
