package material

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type eye mgl32.Vec3

func (e eye) Position() mgl32.Vec3 { return mgl32.Vec3(e) }

func uniformCalls(rec *gputest.Recorder, loc gpu.UniformLocation) []gputest.Call {
	var out []gputest.Call
	for _, c := range rec.Calls() {
		if len(c.Args) > 0 && len(c.Name) > 7 && c.Name[:7] == "Uniform" && c.Args[0] == loc {
			out = append(out, c)
		}
	}
	return out
}

func TestCompileInjectsLayoutDefines(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMaterial(rec, WithName("lit"))

	require.NoError(t, m.Compile(geometry.Layout{Normals: true, UVs: true}))
	assert.True(t, m.Created())
	assert.Equal(t, StateLinked, m.State())
	assert.Contains(t, m.VertexShader(), "#define HAS_UVS")
	assert.Contains(t, m.VertexShader(), "#define HAS_NORMALS")
	assert.NotContains(t, m.VertexShader(), "#define HAS_VERTEX_COLORS")
	assert.Contains(t, m.FragmentShader(), "#define SHADER_NAME lit")
	assert.Contains(t, m.FragmentShader(), "precision highp float;")
	assert.NotContains(t, m.VertexShader(), "<HOOK_")
}

func TestCompileRunsOnce(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMaterial(rec)

	require.NoError(t, m.Compile(geometry.Layout{}))
	require.NoError(t, m.Compile(geometry.Layout{Normals: true}))
	assert.Equal(t, 1, rec.Count("LinkProgram"))
	assert.NotContains(t, m.VertexShader(), "#define HAS_NORMALS")
}

func TestCompileFailureIsTerminal(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	rec := gputest.NewRecorder()
	rec.Log = zap.New(core)
	rec.FailLink = true
	rec.InfoLog = "link error"

	m := NewMaterial(rec, WithName("broken"))
	err := m.Compile(geometry.Layout{})
	require.ErrorIs(t, err, ErrCompileFailed)
	assert.False(t, m.Created())
	assert.Equal(t, StateFailed, m.State())
	assert.Equal(t, 1, logs.FilterMessage("failed to link program").Len())

	rec.FailLink = false
	require.ErrorIs(t, m.Compile(geometry.Layout{}), ErrCompileFailed)
	assert.Equal(t, 1, rec.Count("LinkProgram"))

	rec.Reset()
	m.SetUniforms(mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4(), nil)
	assert.Empty(t, rec.Calls())
}

func TestCompileKeepsUnresolvedHooks(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	rec := gputest.NewRecorder()
	rec.Log = zap.New(core)

	m := NewMaterial(rec, WithVertexShader("// <HOOK_UNKNOWN>\nvoid main(){}"))
	require.NoError(t, m.Compile(geometry.Layout{}))
	assert.Equal(t, StateLinked, m.State())
	assert.True(t, m.Created())
	assert.Equal(t, 1, rec.Count("LinkProgram"))
	assert.Contains(t, m.VertexShader(), "// <HOOK_UNKNOWN>")

	entries := logs.FilterMessage("shader placeholder left unresolved").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "<HOOK_UNKNOWN>", entries[0].ContextMap()["token"])
	assert.Equal(t, int64(1), entries[0].ContextMap()["line"])
	assert.Zero(t, logs.FilterLevelExact(zapcore.WarnLevel).Len())
}

func TestHooksAreInjected(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMaterial(rec, WithHooks(shader.Hooks{
		FragmentMain: "color = vec3(1.0, 0.0, 0.0);",
	}))
	require.NoError(t, m.Compile(geometry.Layout{}))
	assert.Contains(t, m.FragmentShader(), "color = vec3(1.0, 0.0, 0.0);")
}

func TestVec3UniformIssuesExactlyOneCall(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMaterial(rec, WithUniform("uTint", Vec3{1, 2, 3}))
	require.NoError(t, m.Compile(geometry.Layout{}))

	u, ok := m.Uniform("uTint")
	require.True(t, ok)
	require.GreaterOrEqual(t, int(u.Location), 0)

	rec.Reset()
	m.SetUniforms(mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4(), nil)

	calls := uniformCalls(rec, u.Location)
	require.Len(t, calls, 1)
	assert.Equal(t, "Uniform3f", calls[0].Name)
	assert.Equal(t, []any{u.Location, float32(1), float32(2), float32(3)}, calls[0].Args)
}

func TestSetUniformsDispatchesEveryType(t *testing.T) {
	rec := gputest.NewRecorder()
	values := []struct {
		name  string
		value UniformValue
		call  string
	}{
		{"uInt", Int(4), "Uniform1i"},
		{"uFloat", Float(0.5), "Uniform1f"},
		{"uVec2", Vec2{1, 2}, "Uniform2f"},
		{"uVec4", Vec4{1, 2, 3, 4}, "Uniform4f"},
		{"uInts", IntArray{1, 2}, "Uniform1iv"},
		{"uIVec2s", IVec2Array{1, 2}, "Uniform2iv"},
		{"uFloats", FloatArray{1}, "Uniform1fv"},
		{"uVec2s", Vec2Array{1, 2}, "Uniform2fv"},
		{"uVec3s", Vec3Array{1, 2, 3}, "Uniform3fv"},
		{"uVec4s", Vec4Array{1, 2, 3, 4}, "Uniform4fv"},
		{"uMat3", Mat3(mgl32.Ident3()), "UniformMatrix3fv"},
		{"uMat4", Mat4(mgl32.Ident4()), "UniformMatrix4fv"},
	}

	options := make([]MaterialBuilderOption, 0, len(values))
	for _, v := range values {
		options = append(options, WithUniform(v.name, v.value))
	}
	m := NewMaterial(rec, options...)
	require.NoError(t, m.Compile(geometry.Layout{}))

	rec.Reset()
	m.SetUniforms(mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4(), nil)

	for _, v := range values {
		u, ok := m.Uniform(v.name)
		require.True(t, ok, v.name)
		calls := uniformCalls(rec, u.Location)
		require.Len(t, calls, 1, v.name)
		assert.Equal(t, v.call, calls[0].Name, v.name)
	}
}

func TestBuiltinUniforms(t *testing.T) {
	rec := gputest.NewRecorder()
	m := NewMaterial(rec, WithDiffuse(mgl32.Vec3{0.1, 0.2, 0.3}))
	require.NoError(t, m.Compile(geometry.Layout{}))

	model := mgl32.Translate3D(1, 2, 3).Mul4(mgl32.Scale3D(2, 2, 2))
	projection := mgl32.Perspective(1, 1, 0.1, 100)
	rec.Reset()
	m.SetUniforms(projection, mgl32.Ident4(), model, eye{4, 5, 6})

	p := m.Program().Handle()
	loc := func(name string) gpu.UniformLocation {
		l, ok := rec.UniformLocationOf(p, name)
		require.True(t, ok, name)
		return l
	}

	proj := uniformCalls(rec, loc(UniformProjectionMatrix))
	require.Len(t, proj, 1)
	assert.Equal(t, [16]float32(projection), proj[0].Args[1])

	normal := uniformCalls(rec, loc(UniformNormalMatrix))
	require.Len(t, normal, 1)
	assert.Equal(t, "UniformMatrix3fv", normal[0].Name)
	got := mgl32.Mat3(normal[0].Args[1].([9]float32))
	assert.InDelta(t, 0.5, got.At(0, 0), 1e-6)
	assert.InDelta(t, 0.5, got.At(2, 2), 1e-6)

	diffuse := uniformCalls(rec, loc(UniformDiffuse))
	require.Len(t, diffuse, 1)
	assert.Equal(t, []any{loc(UniformDiffuse), float32(0.1), float32(0.2), float32(0.3)}, diffuse[0].Args)

	camera := uniformCalls(rec, loc(UniformCameraPosition))
	require.Len(t, camera, 1)
	assert.Equal(t, []any{loc(UniformCameraPosition), float32(4), float32(5), float32(6)}, camera[0].Args)

	// custom uniforms come before the built-ins
	m.SetUniform("uLate", Float(1))
	rec.Reset()
	m.SetUniforms(projection, mgl32.Ident4(), model, nil)
	names := rec.Names()
	require.NotEmpty(t, names)
	assert.Equal(t, "Uniform1f", names[0])
	assert.Empty(t, uniformCalls(rec, loc(UniformCameraPosition)))
}

func TestInactiveUniformIsSkipped(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Inactive["uUnused"] = true
	rec.Inactive[UniformCameraPosition] = true
	m := NewMaterial(rec, WithUniform("uUnused", Float(1)))
	require.NoError(t, m.Compile(geometry.Layout{}))

	rec.Reset()
	m.SetUniforms(mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4(), eye{})
	assert.Equal(t, 0, rec.Count("Uniform1f"))
	assert.Equal(t, 1, rec.Count("Uniform3f"))
}

func TestTextureUnitsAreSequential(t *testing.T) {
	rec := gputest.NewRecorder()
	rec.Caps.MaxTextureUnits = 2

	a := texture.NewTexture2D(rec)
	b := texture.NewTextureCube(rec)
	c := texture.NewTexture2D(rec)
	m := NewMaterial(rec,
		WithUniform("uA", Sampler2D{Texture: a}),
		WithUniform("uScale", Float(2)),
		WithUniform("uB", SamplerCube{Texture: b}),
		WithUniform("uC", Sampler2D{Texture: c}),
	)
	require.NoError(t, m.Compile(geometry.Layout{UVs: true}))

	units := map[string]int{}
	for _, u := range m.Uniforms() {
		units[u.Name] = u.TextureUnit
	}
	assert.Equal(t, map[string]int{"uA": 0, "uScale": -1, "uB": 1, "uC": -1}, units)

	rec.Reset()
	m.SetUniforms(mgl32.Ident4(), mgl32.Ident4(), mgl32.Ident4(), nil)
	active := rec.Named("ActiveTexture")
	require.Len(t, active, 2)
	assert.Equal(t, []any{uint32(0)}, active[0].Args)
	assert.Equal(t, []any{uint32(1)}, active[1].Args)

	binds := rec.Named("BindTexture")
	require.Len(t, binds, 2)
	assert.Equal(t, []any{gpu.Texture2D, a.Handle()}, binds[0].Args)
	assert.Equal(t, []any{gpu.TextureCubeMap, b.Handle()}, binds[1].Args)
}

func TestDisposeReleasesTexturesThenProgram(t *testing.T) {
	rec := gputest.NewRecorder()
	tex := texture.NewTexture2D(rec)
	m := NewMaterial(rec, WithUniform("uMap", Sampler2D{Texture: tex}))
	require.NoError(t, m.Compile(geometry.Layout{UVs: true}))
	handle := tex.Handle()

	rec.Reset()
	m.Dispose()
	require.Equal(t, 1, rec.Count("DeleteTexture"))
	assert.Equal(t, []any{handle}, rec.Named("DeleteTexture")[0].Args)
	assert.Less(t, rec.Index("DeleteTexture"), rec.Index("DeleteProgram"))

	rec.Reset()
	m.Dispose()
	assert.Empty(t, rec.Calls())
}

func TestParseUniformType(t *testing.T) {
	for _, tag := range []string{"t", "tc", "i", "f", "2f", "3f", "4f", "1iv", "2iv", "1fv", "2fv", "3fv", "4fv", "Matrix3fv", "Matrix4fv"} {
		typ, err := ParseUniformType(tag)
		require.NoError(t, err, tag)
		assert.Equal(t, tag, string(typ))
	}
	_, err := ParseUniformType("5f")
	assert.Error(t, err)
}

func TestNewUniformValue(t *testing.T) {
	v, err := NewUniformValue(Uniform3f, []float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, Vec3{1, 2, 3}, v)

	v, err = NewUniformValue(Uniform2iv, []float64{1, 2, 3, 4})
	require.NoError(t, err)
	assert.Equal(t, IVec2Array{1, 2, 3, 4}, v)

	v, err = NewUniformValue(UniformMatrix3fv, []float64{1, 0, 0, 0, 1, 0, 0, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, Mat3(mgl32.Ident3()), v)

	_, err = NewUniformValue(Uniform3f, []float64{1, 2})
	assert.Error(t, err)
	_, err = NewUniformValue(Uniform3fv, []float64{1, 2, 3, 4})
	assert.Error(t, err)
	_, err = NewUniformValue(UniformTexture2D, nil)
	assert.Error(t, err)
}
