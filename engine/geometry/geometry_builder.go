package geometry

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// GeometryBuilderOption is a functional option for configuring a Geometry.
type GeometryBuilderOption func(*geometryImpl)

// WithIndices supplies 16-bit triangle indices.
//
// Parameters:
//   - indices: three indices per triangle
//
// Returns:
//   - GeometryBuilderOption: a function that sets the indices
func WithIndices(indices []uint16) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.indices16 = indices
		g.indices32 = nil
	}
}

// WithIndices32 supplies 32-bit triangle indices for meshes with more than 65536 vertices.
//
// Parameters:
//   - indices: three indices per triangle
//
// Returns:
//   - GeometryBuilderOption: a function that sets the indices
func WithIndices32(indices []uint32) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.indices32 = indices
		g.indices16 = nil
	}
}

// WithNormals supplies flattened xyz vertex normals.
func WithNormals(normals []float32) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.normals = normals
	}
}

// WithUVs supplies flattened uv texture coordinates.
func WithUVs(uvs []float32) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.uvs = uvs
	}
}

// WithColors supplies flattened rgb vertex colors.
func WithColors(colors []float32) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.colors = colors
	}
}

// WithPositionUsage sets the usage hint of the position buffer. Geometries whose vertices
// are edited through UpdateVertices should use gpu.DynamicDraw.
//
// Parameters:
//   - usage: the usage hint
//
// Returns:
//   - GeometryBuilderOption: a function that sets the usage
func WithPositionUsage(usage gpu.BufferUsage) GeometryBuilderOption {
	return func(g *geometryImpl) {
		g.positionUsage = usage
	}
}
