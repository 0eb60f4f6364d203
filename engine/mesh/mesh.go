package mesh

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"go.uber.org/zap"
)

type mesh struct {
	ctx      gpu.Context
	object   transform.Object3D
	geometry geometry.Geometry
	material material.Material
	vao      VertexArrayObject

	visible       bool
	instanceCount int
	disposed      bool
}

// Mesh couples a transform node with one geometry and one material and issues the draw
// calls for them. A mesh owns its geometry and material: disposing the mesh disposes both,
// so a material shared between meshes must be disposed through only one of them.
type Mesh interface {
	// Object returns the transform node that positions the mesh.
	//
	// Returns:
	//   - transform.Object3D: the node handle
	Object() transform.Object3D

	// Geometry returns the vertex data drawn by the mesh.
	//
	// Returns:
	//   - geometry.Geometry: the geometry
	Geometry() geometry.Geometry

	// Material returns the material the mesh draws with.
	//
	// Returns:
	//   - material.Material: the material
	Material() material.Material

	// VertexArray returns the vertex array wrapper recorded at construction.
	//
	// Returns:
	//   - VertexArrayObject: the wrapper
	VertexArray() VertexArrayObject

	// Visible reports whether Draw issues any calls.
	Visible() bool

	// SetVisible shows or hides the mesh.
	SetVisible(visible bool)

	// InstanceCount returns the number of instances drawn by DrawInstance.
	InstanceCount() int

	// SetInstanceCount sets the number of instances drawn by DrawInstance.
	//
	// Parameters:
	//   - count: the instance count, zero to draw the mesh once through Draw
	SetInstanceCount(count int)

	// Instanced reports whether a renderer should call DrawInstance instead of Draw.
	Instanced() bool

	// Draw updates the mesh matrices against cam and issues one draw call. It is a no-op when
	// the mesh is hidden, its material did not link or cam is nil.
	//
	// Parameters:
	//   - cam: the camera supplying the projection and view matrices
	Draw(cam camera.Camera)

	// DrawInstance is Draw with blending toggled around an instanced draw call of
	// InstanceCount instances. Nothing is drawn when the count is zero or the context lacks
	// instancing support.
	//
	// Parameters:
	//   - cam: the camera supplying the projection and view matrices
	DrawInstance(cam camera.Camera)

	// Dispose releases the material, then the geometry, then the vertex array, then the
	// transform node.
	Dispose()
}

var _ Mesh = &mesh{}

// NewMesh creates a mesh on a new node of graph. A material that was never compiled is
// compiled against the geometry layout here; calling material.Compile beforehand surfaces the
// error at the call site instead. When the context supports vertex array objects the
// attribute pointers and index buffer binding are recorded once.
//
// Parameters:
//   - ctx: the graphics context
//   - graph: the transform graph the mesh node is allocated in
//   - geo: the geometry, owned by the mesh from now on
//   - mat: the material, owned by the mesh from now on
//   - options: functional options to configure the mesh
//
// Returns:
//   - Mesh: the new mesh
func NewMesh(ctx gpu.Context, graph *transform.Graph, geo geometry.Geometry, mat material.Material, options ...MeshBuilderOption) Mesh {
	m := &mesh{
		ctx:      ctx,
		object:   graph.NewObject(),
		geometry: geo,
		material: mat,
		visible:  true,
	}

	for _, option := range options {
		option(m)
	}

	if mat.State() == material.StateUncompiled {
		if err := mat.Compile(geo.Layout()); err != nil {
			ctx.Logger().Debug("mesh material did not compile", zap.String("material", mat.Name()), zap.Error(err))
		}
	}

	m.vao = NewVertexArrayObject(ctx)
	if m.vao.Enabled() && mat.Created() {
		m.vao.Bind()
		m.bindAttributes()
		m.bindIndexBuffer()
		m.vao.Unbind()
	}
	return m
}

func (m *mesh) Object() transform.Object3D {
	return m.object
}

func (m *mesh) Geometry() geometry.Geometry {
	return m.geometry
}

func (m *mesh) Material() material.Material {
	return m.material
}

func (m *mesh) VertexArray() VertexArrayObject {
	return m.vao
}

func (m *mesh) Visible() bool {
	return m.visible
}

func (m *mesh) SetVisible(visible bool) {
	m.visible = visible
}

func (m *mesh) InstanceCount() int {
	return m.instanceCount
}

func (m *mesh) SetInstanceCount(count int) {
	m.instanceCount = max(count, 0)
}

func (m *mesh) Instanced() bool {
	return m.instanceCount > 0
}

func (m *mesh) bindAttributes() {
	p := m.material.Program()
	for _, a := range m.geometry.Attributes() {
		a.Attribute.Bind()
		p.SetAttributePointer(a.Name, a.Attribute.ItemSize(), a.Attribute.Divisor())
	}
}

func (m *mesh) bindIndexBuffer() {
	if index, ok := m.geometry.Index(); ok {
		index.Bind()
	}
}

func (m *mesh) drawable(cam camera.Camera) bool {
	return !m.disposed && m.visible && cam != nil && m.material.Created()
}

// begin updates the matrices, binds the program and vertex state and uploads the uniforms.
func (m *mesh) begin(cam camera.Camera) {
	m.object.UpdateMatrix(cam)
	m.material.Program().Bind()

	if culling := m.material.Culling(); culling != gpu.CullNone {
		m.ctx.Enable(gpu.CapCullFace)
		m.ctx.CullFace(culling)
	}

	m.material.SetUniforms(cam.ProjectionMatrix(), m.object.ModelViewMatrix(), m.object.ModelMatrix(), cam)

	if m.vao.Enabled() {
		m.vao.Bind()
	} else {
		m.bindAttributes()
		m.bindIndexBuffer()
	}
}

func (m *mesh) end() {
	m.vao.Unbind()
	if m.material.Culling() != gpu.CullNone {
		m.ctx.Disable(gpu.CapCullFace)
	}
}

func (m *mesh) Draw(cam camera.Camera) {
	if !m.drawable(cam) {
		return
	}
	m.begin(cam)

	mode := m.material.DrawType()
	if index, ok := m.geometry.Index(); ok {
		m.ctx.DrawElements(mode, int32(index.NumItems()), index.DataType(), 0)
	} else if position, ok := m.geometry.Attribute(geometry.AttributePosition); ok {
		m.ctx.DrawArrays(mode, 0, int32(position.NumItems()))
	}

	m.end()
}

func (m *mesh) DrawInstance(cam camera.Camera) {
	if !m.drawable(cam) || m.instanceCount <= 0 || !m.ctx.Capabilities().Instancing {
		return
	}
	m.begin(cam)

	blending := m.material.Blending()
	if blending {
		m.ctx.Enable(gpu.CapBlend)
		m.ctx.BlendFunc(m.material.BlendFunc())
	}

	mode := m.material.DrawType()
	instances := int32(m.instanceCount)
	if index, ok := m.geometry.Index(); ok {
		m.ctx.DrawElementsInstanced(mode, int32(index.NumItems()), index.DataType(), 0, instances)
	} else if position, ok := m.geometry.Attribute(geometry.AttributePosition); ok {
		m.ctx.DrawArraysInstanced(mode, 0, int32(position.NumItems()), instances)
	}

	if blending {
		m.ctx.Disable(gpu.CapBlend)
	}
	m.end()
}

func (m *mesh) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true

	m.material.Dispose()
	m.geometry.Dispose()
	m.vao.Dispose()
	m.object.Dispose()
}
