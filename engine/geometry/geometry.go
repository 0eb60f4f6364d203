package geometry

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/go-gl/mathgl/mgl32"
)

// Attribute names bound to the base shader templates.
const (
	AttributePosition = "aVertexPosition"
	AttributeIndex    = "aIndex"
	AttributeNormal   = "aVertexNormal"
	AttributeUV       = "aUv"
	AttributeColor    = "aVertexColor"
)

// Layout is the set of optional vertex streams a geometry provides. A material compiles its
// shader defines from the layout of the first geometry it is drawn with.
type Layout struct {
	Normals bool
	Colors  bool
	UVs     bool
}

// NamedAttribute pairs a vertex attribute with the shader input it feeds.
type NamedAttribute struct {
	Name      string
	Attribute BufferAttribute
}

// Geometry aggregates the buffer attributes of one drawable shape together with the CPU-side
// vertex, uv and face lists derived from them.
type Geometry interface {
	// Attributes returns the vertex attributes in the order they were added, excluding the index buffer.
	Attributes() []NamedAttribute

	// Attribute looks up a vertex attribute by shader input name.
	Attribute(name string) (BufferAttribute, bool)

	// AddAttribute adds or replaces a custom vertex attribute, such as a per-instance offset.
	// A replaced attribute is disposed.
	//
	// Parameters:
	//   - name: the shader input name
	//   - attr: the attribute, which the geometry takes ownership of
	AddAttribute(name string, attr BufferAttribute)

	// Index returns the element buffer if the geometry is indexed.
	Index() (BufferAttribute, bool)

	// Layout reports which optional streams are present.
	Layout() Layout

	// Vertices returns the CPU-side vertex positions. Editing them and calling
	// UpdateVertices re-uploads the position buffer.
	Vertices() []mgl32.Vec3

	// Faces returns the indexed triangles, empty for non-indexed geometry.
	Faces() []Face

	// UVs returns the CPU-side texture coordinates.
	UVs() []mgl32.Vec2

	// UpdateVertices writes the CPU-side vertices back into the position buffer.
	UpdateVertices()

	// UpdateNormals recomputes every face normal and writes it into the normal slots of the
	// face's three vertices; a vertex shared by several faces keeps the last face's normal.
	// The normal buffer is created if the geometry has none.
	UpdateNormals()

	// Dispose releases every owned buffer.
	Dispose()
}

type geometryImpl struct {
	ctx gpu.Context

	positions []float32
	normals   []float32
	uvs       []float32
	colors    []float32
	indices16 []uint16
	indices32 []uint32

	positionUsage gpu.BufferUsage

	attributes []NamedAttribute
	index      BufferAttribute

	vertices []mgl32.Vec3
	faces    []Face
	uvList   []mgl32.Vec2

	disposed bool
}

var _ Geometry = &geometryImpl{}

// NewGeometry uploads positions and any optional streams supplied through options.
//
// Parameters:
//   - ctx: the graphics context
//   - positions: flattened xyz vertex positions
//   - options: functional options supplying indices, normals, uvs and colors
//
// Returns:
//   - Geometry: the uploaded geometry
func NewGeometry(ctx gpu.Context, positions []float32, options ...GeometryBuilderOption) Geometry {
	g := &geometryImpl{
		ctx:           ctx,
		positions:     append([]float32(nil), positions...),
		positionUsage: gpu.StaticDraw,
	}

	for _, option := range options {
		option(g)
	}

	if len(g.positions) > 0 {
		g.add(AttributePosition, NewFloat32Attribute(ctx, g.positions, 3, WithUsage(g.positionUsage)))
		g.vertices = make([]mgl32.Vec3, len(g.positions)/3)
		for i := range g.vertices {
			g.vertices[i] = mgl32.Vec3{g.positions[i*3], g.positions[i*3+1], g.positions[i*3+2]}
		}
	}

	switch {
	case len(g.indices16) > 0:
		g.index = NewUint16IndexAttribute(ctx, g.indices16)
		g.buildFaces(len(g.indices16), func(i int) int { return int(g.indices16[i]) })
	case len(g.indices32) > 0:
		g.index = NewUint32IndexAttribute(ctx, g.indices32)
		g.buildFaces(len(g.indices32), func(i int) int { return int(g.indices32[i]) })
	}

	if len(g.normals) > 0 {
		g.add(AttributeNormal, NewFloat32Attribute(ctx, g.normals, 3))
	}

	if len(g.uvs) > 0 {
		g.add(AttributeUV, NewFloat32Attribute(ctx, g.uvs, 2))
		g.uvList = make([]mgl32.Vec2, len(g.uvs)/2)
		for i := range g.uvList {
			g.uvList[i] = mgl32.Vec2{g.uvs[i*2], g.uvs[i*2+1]}
		}
	}

	if len(g.colors) > 0 {
		g.add(AttributeColor, NewFloat32Attribute(ctx, g.colors, 3))
	}

	return g
}

func (g *geometryImpl) buildFaces(count int, at func(int) int) {
	g.faces = make([]Face, 0, count/3)
	for i := 0; i+2 < count; i += 3 {
		g.faces = append(g.faces, NewFace(at(i), at(i+1), at(i+2), g.vertices))
	}
}

func (g *geometryImpl) add(name string, attr BufferAttribute) {
	for i, a := range g.attributes {
		if a.Name == name {
			a.Attribute.Dispose()
			g.attributes[i].Attribute = attr
			return
		}
	}
	g.attributes = append(g.attributes, NamedAttribute{Name: name, Attribute: attr})
}

func (g *geometryImpl) Attributes() []NamedAttribute {
	return g.attributes
}

func (g *geometryImpl) Attribute(name string) (BufferAttribute, bool) {
	if name == AttributeIndex {
		return g.Index()
	}
	for _, a := range g.attributes {
		if a.Name == name {
			return a.Attribute, true
		}
	}
	return nil, false
}

func (g *geometryImpl) AddAttribute(name string, attr BufferAttribute) {
	if attr == nil || name == AttributeIndex {
		return
	}
	g.add(name, attr)
}

func (g *geometryImpl) Index() (BufferAttribute, bool) {
	return g.index, g.index != nil
}

func (g *geometryImpl) Layout() Layout {
	_, normals := g.Attribute(AttributeNormal)
	_, colors := g.Attribute(AttributeColor)
	_, uvs := g.Attribute(AttributeUV)
	return Layout{Normals: normals, Colors: colors, UVs: uvs}
}

func (g *geometryImpl) Vertices() []mgl32.Vec3 {
	return g.vertices
}

func (g *geometryImpl) Faces() []Face {
	return g.faces
}

func (g *geometryImpl) UVs() []mgl32.Vec2 {
	return g.uvList
}

func (g *geometryImpl) UpdateVertices() {
	attr, ok := g.Attribute(AttributePosition)
	if !ok {
		return
	}
	for i, v := range g.vertices {
		copy(g.positions[i*3:i*3+3], v[:])
	}
	attr.Update(0, g.positions)
}

func (g *geometryImpl) UpdateNormals() {
	if len(g.vertices) == 0 {
		return
	}

	attr, ok := g.Attribute(AttributeNormal)
	if !ok || len(g.normals) != len(g.vertices)*3 {
		g.normals = make([]float32, len(g.vertices)*3)
	}

	for i := range g.faces {
		f := &g.faces[i]
		f.UpdateNormal(g.vertices)
		for _, vi := range f.Indices {
			if vi < 0 || vi >= len(g.vertices) {
				continue
			}
			copy(g.normals[vi*3:vi*3+3], f.Normal[:])
		}
	}

	if ok {
		attr.Update(0, g.normals)
		return
	}
	g.add(AttributeNormal, NewFloat32Attribute(g.ctx, g.normals, 3, WithUsage(gpu.DynamicDraw)))
}

func (g *geometryImpl) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	for _, a := range g.attributes {
		a.Attribute.Dispose()
	}
	if g.index != nil {
		g.index.Dispose()
	}
	g.attributes = nil
	g.index = nil
	g.vertices = nil
	g.faces = nil
	g.uvList = nil
}
