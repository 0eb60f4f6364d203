package mesh

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/transform"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

var triangle = []float32{
	0, 1, 0,
	-1, -1, 0,
	1, -1, 0,
}

func newTriangle(rec *gputest.Recorder, options ...geometry.GeometryBuilderOption) geometry.Geometry {
	return geometry.NewGeometry(rec, triangle, options...)
}

func TestNewMeshCompilesAndRecordsVertexArray(t *testing.T) {
	rec := gputest.NewRecorder()
	geo := newTriangle(rec, geometry.WithIndices([]uint16{0, 1, 2}))
	mat := material.NewMaterial(rec)

	m := NewMesh(rec, transform.NewGraph(), geo, mat)
	assert.True(t, mat.Created())
	require.True(t, m.VertexArray().Enabled())

	vao := m.VertexArray().Handle()
	bind := rec.Index("BindVertexArray")
	require.GreaterOrEqual(t, bind, 0)
	assert.Equal(t, []any{vao}, rec.Calls()[bind].Args)
	assert.Greater(t, rec.Index("VertexAttribPointer"), bind)
	assert.Equal(t, []any{gpu.VertexArray(0)}, rec.Calls()[rec.LastIndex("BindVertexArray")].Args)

	index, _ := geo.Index()
	last := rec.Named("BindBuffer")
	assert.Equal(t, []any{gpu.ElementArrayBuffer, index.Buffer()}, last[len(last)-1].Args)
}

func TestNewMeshSkipsCompiledMaterial(t *testing.T) {
	rec := gputest.NewRecorder()
	mat := material.NewMaterial(rec)
	require.NoError(t, mat.Compile(geometry.Layout{}))

	graph := transform.NewGraph()
	NewMesh(rec, graph, newTriangle(rec), mat)
	NewMesh(rec, graph, newTriangle(rec), mat)
	assert.Equal(t, 1, rec.Count("LinkProgram"))
	assert.Equal(t, 1, rec.Count("CreateProgram"))
}

func TestMeshesSharingMaterialRecordEnabledAttributes(t *testing.T) {
	rec := gputest.NewRecorder()
	mat := material.NewMaterial(rec)
	graph := transform.NewGraph()

	first := NewMesh(rec, graph, newTriangle(rec, geometry.WithNormals(make([]float32, 9))), mat)
	second := NewMesh(rec, graph, newTriangle(rec, geometry.WithNormals(make([]float32, 9))), mat)
	assert.Equal(t, 1, rec.Count("LinkProgram"))

	for _, m := range []Mesh{first, second} {
		state := rec.VertexArrayState(m.VertexArray().Handle())
		require.Len(t, state, 2)
		for loc, a := range state {
			assert.True(t, a.Enabled, "location %d", loc)
			assert.Equal(t, int32(3), a.Size, "location %d", loc)
		}
	}
}

func TestDrawIndexedWithVertexArray(t *testing.T) {
	rec := gputest.NewRecorder()
	geo := newTriangle(rec, geometry.WithIndices([]uint16{0, 1, 2}))
	mat := material.NewMaterial(rec, material.WithCulling(gpu.CullBack))
	m := NewMesh(rec, transform.NewGraph(), geo, mat)
	cam := camera.NewCamera()

	rec.Reset()
	m.Draw(cam)

	names := rec.Names()
	assert.Equal(t, "UseProgram", names[0])
	assert.Equal(t, []string{"Enable", "CullFace"}, names[1:3])
	assert.Equal(t, []any{gpu.CapCullFace}, rec.Calls()[1].Args)
	assert.Equal(t, []any{gpu.CullBack}, rec.Calls()[2].Args)

	assert.Equal(t, 0, rec.Count("VertexAttribPointer"))
	draws := rec.Named("DrawElements")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{gpu.DrawTriangles, int32(3), gpu.UnsignedShort, 0}, draws[0].Args)

	assert.Less(t, rec.Index("BindVertexArray"), rec.Index("DrawElements"))
	assert.Greater(t, rec.LastIndex("BindVertexArray"), rec.Index("DrawElements"))
	assert.Equal(t, "Disable", names[len(names)-1])
}

func TestDrawWithoutVertexArrayRebindsAttributes(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Caps.VertexArrayObject = false
	geo := newTriangle(rec, geometry.WithNormals(make([]float32, 9)))
	m := NewMesh(rec, transform.NewGraph(), geo, material.NewMaterial(rec))
	assert.False(t, m.VertexArray().Enabled())
	assert.Equal(t, 0, rec.Count("CreateVertexArray"))

	rec.Reset()
	m.Draw(camera.NewCamera())
	assert.Equal(t, 2, rec.Count("VertexAttribPointer"))
	assert.Equal(t, 0, rec.Count("BindVertexArray"))
	assert.Equal(t, 0, rec.Count("Enable"))

	draws := rec.Named("DrawArrays")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{gpu.DrawTriangles, int32(0), int32(3)}, draws[0].Args)
	assert.Less(t, rec.LastIndex("VertexAttribPointer"), rec.Index("DrawArrays"))
}

func TestDrawWithoutVertexArrayResetsDivisors(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Caps.VertexArrayObject = false
	graph := transform.NewGraph()
	cam := camera.NewCamera()

	instancedGeo := newTriangle(rec)
	instancedGeo.AddAttribute("aOffset", geometry.NewFloat32Attribute(rec, []float32{0, 0, 0, 1, 1, 1}, 3, geometry.WithDivisor(1)))
	instanced := NewMesh(rec, graph, instancedGeo, material.NewMaterial(rec), WithInstanceCount(2))
	plain := NewMesh(rec, graph, newTriangle(rec, geometry.WithNormals(make([]float32, 9))), material.NewMaterial(rec))

	instanced.DrawInstance(cam)
	var perInstance int
	for _, a := range rec.VertexArrayState(0) {
		if a.Divisor == 1 {
			perInstance++
		}
	}
	require.Equal(t, 1, perInstance)

	plain.Draw(cam)
	state := rec.VertexArrayState(0)
	require.Len(t, state, 2)
	for loc, a := range state {
		assert.True(t, a.Enabled, "location %d", loc)
		assert.Zero(t, a.Divisor, "location %d", loc)
	}
}

func TestDrawUpdatesMatrices(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMesh(rec, transform.NewGraph(), newTriangle(rec), material.NewMaterial(rec),
		WithPosition(1, 2, 3))
	cam := camera.NewCamera(camera.WithPosition(0, 0, 5))

	m.Draw(cam)
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, m.Object().ModelMatrix().Col(3).Vec3())
	expected := cam.WorldInverseMatrix().Mul4(m.Object().ModelMatrix())
	assert.True(t, expected.ApproxEqualThreshold(m.Object().ModelViewMatrix(), 1e-5))
}

func TestDrawSkipsWhenHiddenOrUnlinked(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := gputest.NewRecorder()
	rec.Log = zap.New(core)
	rec.FailLink = true
	rec.InfoLog = "link error"

	m := NewMesh(rec, transform.NewGraph(), newTriangle(rec), material.NewMaterial(rec))
	assert.False(t, m.Material().Created())
	assert.Equal(t, 1, logs.FilterMessage("failed to link program").Len())

	rec.Reset()
	m.Draw(camera.NewCamera())
	m.SetInstanceCount(4)
	m.DrawInstance(camera.NewCamera())
	assert.Empty(t, rec.Calls())

	rec2 := gputest.NewRecorder()
	hidden := NewMesh(rec2, transform.NewGraph(), newTriangle(rec2), material.NewMaterial(rec2), WithVisible(false))
	rec2.Reset()
	hidden.Draw(camera.NewCamera())
	hidden.Draw(nil)
	assert.Empty(t, rec2.Calls())
}

func TestDrawInstance(t *testing.T) {
	rec := gputest.NewRecorder()
	geo := newTriangle(rec)
	geo.AddAttribute("aOffset", geometry.NewFloat32Attribute(rec, []float32{0, 0, 0, 1, 1, 1}, 3, geometry.WithDivisor(1)))
	mat := material.NewMaterial(rec,
		material.WithBlending(true),
		material.WithBlendFunc(gpu.BlendSrcAlpha, gpu.BlendOne),
	)
	m := NewMesh(rec, transform.NewGraph(), geo, mat, WithInstanceCount(2))
	assert.True(t, m.Instanced())
	var instanced int
	for _, a := range rec.VertexArrayState(m.VertexArray().Handle()) {
		if a.Divisor == 1 {
			instanced++
		}
	}
	assert.Equal(t, 1, instanced)

	rec.Reset()
	m.DrawInstance(camera.NewCamera())

	draws := rec.Named("DrawArraysInstanced")
	require.Len(t, draws, 1)
	assert.Equal(t, []any{gpu.DrawTriangles, int32(0), int32(3), int32(2)}, draws[0].Args)

	enable := rec.Index("Enable")
	require.GreaterOrEqual(t, enable, 0)
	assert.Equal(t, []any{gpu.CapBlend}, rec.Calls()[enable].Args)
	assert.Equal(t, []any{gpu.BlendSrcAlpha, gpu.BlendOne}, rec.Named("BlendFunc")[0].Args)
	assert.Less(t, enable, rec.Index("DrawArraysInstanced"))
	assert.Greater(t, rec.Index("Disable"), rec.Index("DrawArraysInstanced"))

	// plain draws never touch blending
	rec.Reset()
	m.Draw(camera.NewCamera())
	assert.Equal(t, 0, rec.Count("Enable"))
	assert.Equal(t, 0, rec.Count("BlendFunc"))
}

func TestDrawInstanceRequiresCapability(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Caps.Instancing = false
	m := NewMesh(rec, transform.NewGraph(), newTriangle(rec), material.NewMaterial(rec), WithInstanceCount(3))

	rec.Reset()
	m.DrawInstance(camera.NewCamera())
	assert.Empty(t, rec.Calls())
}

type spyMaterial struct {
	material.Material
	dispose func()
}

func (s *spyMaterial) Dispose() {
	s.dispose()
	s.Material.Dispose()
}

type spyGeometry struct {
	geometry.Geometry
	dispose func()
}

func (s *spyGeometry) Dispose() {
	s.dispose()
	s.Geometry.Dispose()
}

func TestDisposeOrder(t *testing.T) {
	rec := gputest.NewRecorder()
	graph := transform.NewGraph()
	parent := graph.NewObject()

	var order []string
	var m Mesh
	record := func(name string) func() {
		return func() {
			require.True(t, m.Object().Valid(), "node disposed before %s", name)
			order = append(order, name)
		}
	}

	mat := &spyMaterial{Material: material.NewMaterial(rec)}
	geo := &spyGeometry{Geometry: newTriangle(rec)}
	m = NewMesh(rec, graph, geo, mat)
	mat.dispose = record("material")
	geo.dispose = record("geometry")
	rec.OnCall = func(c gputest.Call) {
		if c.Name == "DeleteVertexArray" {
			record("vertexArray")()
		}
	}

	child := graph.NewObject()
	require.NoError(t, m.Object().SetParent(parent))
	require.NoError(t, child.SetParent(m.Object()))

	m.Dispose()
	assert.Equal(t, []string{"material", "geometry", "vertexArray"}, order)
	assert.False(t, m.Object().Valid())
	assert.Empty(t, parent.Children())
	_, hasParent := child.Parent()
	assert.False(t, hasParent)
	assert.True(t, child.Valid())

	m.Dispose()
	assert.Len(t, order, 3)
}
