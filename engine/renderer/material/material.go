package material

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/geometry"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/program"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"
)

// ErrCompileFailed is returned by Compile when preprocessing, compiling or linking failed,
// and by every later Compile call on the same material.
var ErrCompileFailed = errors.New("material: compile failed")

// Built-in uniforms uploaded by SetUniforms after the custom uniform table.
const (
	UniformProjectionMatrix = "uProjectionMatrix"
	UniformModelViewMatrix  = "uModelViewMatrix"
	UniformModelMatrix      = "uModelMatrix"
	UniformNormalMatrix     = "uNormalMatrix"
	UniformDiffuse          = "uDiffuse"
	UniformCameraPosition   = "uCameraPosition"
)

var builtins = []string{
	UniformProjectionMatrix,
	UniformModelViewMatrix,
	UniformModelMatrix,
	UniformNormalMatrix,
	UniformDiffuse,
	UniformCameraPosition,
}

// State is the position of a material in its compile lifecycle.
type State int

const (
	// StateUncompiled is the initial state.
	StateUncompiled State = iota
	// StateLinked means the program linked and uniform locations are resolved.
	StateLinked
	// StateFailed is terminal; the material never draws.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUncompiled:
		return "uncompiled"
	case StateLinked:
		return "linked"
	case StateFailed:
		return "failed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Eye is anything with a world position, normally the camera being rendered from.
type Eye interface {
	Position() mgl32.Vec3
}

// material is the implementation of the Material interface.
type material struct {
	ctx     gpu.Context
	name    string
	program program.Program
	state   State

	vertexShader   string
	fragmentShader string
	hooks          shader.Hooks

	uniforms []*Uniform
	diffuse  mgl32.Vec3

	drawType gpu.DrawMode
	culling  gpu.CullMode
	blending bool
	blendSrc gpu.BlendFactor
	blendDst gpu.BlendFactor
	disposed bool
}

// Material defines the interface for a shader-driven surface: shader templates with hooks,
// an ordered uniform table and the fixed-function state a mesh applies around its draw call.
//
// A material compiles its program at most once. Meshes that share a material share its program.
type Material interface {
	// Name retrieves the material identifier, also injected as SHADER_NAME.
	//
	// Returns:
	//   - string: the name of the material
	Name() string

	// Program retrieves the GPU program owned by the material.
	//
	// Returns:
	//   - program.Program: the program
	Program() program.Program

	// State reports where the material is in its compile lifecycle.
	//
	// Returns:
	//   - State: the current state
	State() State

	// Created reports whether the program linked and the material can draw.
	//
	// Returns:
	//   - bool: true once Compile succeeded
	Created() bool

	// Compile preprocesses both shader templates for the given geometry layout, links the
	// program, resolves uniform locations and assigns texture units. It runs once: later calls
	// return nil after success and ErrCompileFailed after failure. Failures are also logged as
	// warnings through the context logger.
	//
	// Parameters:
	//   - layout: the optional vertex streams of the first geometry drawn with the material
	//
	// Returns:
	//   - error: an error wrapping ErrCompileFailed on failure
	Compile(layout geometry.Layout) error

	// Uniforms returns the custom uniform table in insertion order.
	//
	// Returns:
	//   - []*Uniform: the uniform entries
	Uniforms() []*Uniform

	// Uniform looks up a custom uniform by name.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - *Uniform: the entry
	//   - bool: whether the entry exists
	Uniform(name string) (*Uniform, bool)

	// SetUniform replaces the value of a custom uniform, or appends a new entry. Entries added
	// after Compile get their location and texture unit immediately.
	//
	// Parameters:
	//   - name: the uniform name
	//   - value: the new value
	SetUniform(name string, value UniformValue)

	// Diffuse retrieves the color uploaded as uDiffuse.
	Diffuse() mgl32.Vec3

	// SetDiffuse sets the color uploaded as uDiffuse.
	SetDiffuse(color mgl32.Vec3)

	// DrawType retrieves the primitive topology used by meshes drawing with this material.
	DrawType() gpu.DrawMode

	// Culling retrieves the face culling mode, gpu.CullNone to leave culling disabled.
	Culling() gpu.CullMode

	// Blending reports whether instanced draws enable blending.
	Blending() bool

	// BlendFunc retrieves the source and destination blend factors.
	//
	// Returns:
	//   - gpu.BlendFactor: the source factor
	//   - gpu.BlendFactor: the destination factor
	BlendFunc() (gpu.BlendFactor, gpu.BlendFactor)

	// VertexShader retrieves the vertex source, processed once Compile has run.
	VertexShader() string

	// FragmentShader retrieves the fragment source, processed once Compile has run.
	FragmentShader() string

	// SetUniforms uploads every custom uniform in table order and then the built-in matrices,
	// uDiffuse and, when eye is non-nil, uCameraPosition. The program must already be bound.
	// Uniforms the program does not use are skipped.
	//
	// Parameters:
	//   - projection: the camera projection matrix
	//   - modelView: the mesh model-view matrix
	//   - model: the mesh model matrix, also used to derive uNormalMatrix
	//   - eye: the camera position source, may be nil
	SetUniforms(projection, modelView, model mgl32.Mat4, eye Eye)

	// Dispose deletes the textures of texture uniforms and then the program.
	Dispose()
}

var _ Material = &material{}

// NewMaterial creates a material using the base shader templates unless overridden.
// The program object is created immediately but not compiled.
//
// Parameters:
//   - ctx: the graphics context
//   - options: functional options to configure the material
//
// Returns:
//   - Material: the uncompiled material
func NewMaterial(ctx gpu.Context, options ...MaterialBuilderOption) Material {
	m := &material{
		ctx:            ctx,
		vertexShader:   shader.BaseVertexShader,
		fragmentShader: shader.BaseFragmentShader,
		diffuse:        mgl32.Vec3{1, 1, 1},
		drawType:       gpu.DrawTriangles,
		culling:        gpu.CullNone,
		blendSrc:       gpu.BlendSrcAlpha,
		blendDst:       gpu.BlendOneMinusSrcAlpha,
	}

	for _, option := range options {
		option(m)
	}

	if m.hooks.Name == "" {
		m.hooks.Name = m.name
	}
	m.program = program.NewProgram(ctx, m.name)
	return m
}

func (m *material) Name() string {
	return m.name
}

func (m *material) Program() program.Program {
	return m.program
}

func (m *material) State() State {
	return m.state
}

func (m *material) Created() bool {
	return m.state == StateLinked && m.program.Created()
}

func (m *material) Compile(layout geometry.Layout) error {
	switch m.state {
	case StateLinked:
		return nil
	case StateFailed:
		return fmt.Errorf("%w: %s", ErrCompileFailed, m.name)
	}

	var defines []string
	if layout.UVs {
		defines = append(defines, shader.DefineUVs)
	}
	if layout.Colors {
		defines = append(defines, shader.DefineVertexColors)
	}
	if layout.Normals {
		defines = append(defines, shader.DefineNormals)
	}

	pp := shader.NewPreProcessor(m.ctx.Capabilities().Precision, defines, m.hooks)

	vs, leftovers := pp.Process(m.vertexShader)
	m.logLeftovers(shader.ShaderTypeVertex, leftovers)
	fs, leftovers := pp.Process(m.fragmentShader)
	m.logLeftovers(shader.ShaderTypeFragment, leftovers)
	m.vertexShader, m.fragmentShader = vs, fs

	if err := m.program.Link(vs, fs); err != nil {
		m.state = StateFailed
		return fmt.Errorf("%w: %w", ErrCompileFailed, err)
	}

	m.state = StateLinked
	for _, u := range m.uniforms {
		u.Location = m.program.UniformLocation(u.Name)
	}
	for _, name := range builtins {
		m.program.UniformLocation(name)
	}
	m.assignTextureUnits()
	return nil
}

func (m *material) logLeftovers(t shader.ShaderType, leftovers []shader.Leftover) {
	for _, l := range leftovers {
		m.ctx.Logger().Debug("shader placeholder left unresolved",
			zap.String("material", m.name),
			zap.Stringer("shader", t),
			zap.Int("line", l.Line),
			zap.String("token", l.Token),
		)
	}
}

// assignTextureUnits numbers texture uniforms sequentially in table order. Uniforms past the
// context's unit count get -1 and are never bound.
func (m *material) assignTextureUnits() {
	limit := m.ctx.Capabilities().MaxTextureUnits
	next := 0
	for _, u := range m.uniforms {
		if !u.Value.Type().IsTexture() {
			u.TextureUnit = -1
			continue
		}
		if next >= limit {
			u.TextureUnit = -1
			m.ctx.Logger().Warn("texture unit limit reached",
				zap.String("material", m.name),
				zap.String("uniform", u.Name),
				zap.Int("limit", limit),
			)
			continue
		}
		u.TextureUnit = next
		next++
	}
}

func (m *material) Uniforms() []*Uniform {
	return m.uniforms
}

func (m *material) Uniform(name string) (*Uniform, bool) {
	for _, u := range m.uniforms {
		if u.Name == name {
			return u, true
		}
	}
	return nil, false
}

func (m *material) SetUniform(name string, value UniformValue) {
	if value == nil {
		return
	}
	if u, ok := m.Uniform(name); ok {
		wasTexture := u.Value.Type().IsTexture()
		u.Value = value
		if m.state == StateLinked && wasTexture != value.Type().IsTexture() {
			m.assignTextureUnits()
		}
		return
	}

	u := &Uniform{Name: name, Value: value, Location: -1, TextureUnit: -1}
	m.uniforms = append(m.uniforms, u)
	if m.state == StateLinked {
		u.Location = m.program.UniformLocation(name)
		if value.Type().IsTexture() {
			m.assignTextureUnits()
		}
	}
}

func (m *material) Diffuse() mgl32.Vec3 {
	return m.diffuse
}

func (m *material) SetDiffuse(color mgl32.Vec3) {
	m.diffuse = color
}

func (m *material) DrawType() gpu.DrawMode {
	return m.drawType
}

func (m *material) Culling() gpu.CullMode {
	return m.culling
}

func (m *material) Blending() bool {
	return m.blending
}

func (m *material) BlendFunc() (gpu.BlendFactor, gpu.BlendFactor) {
	return m.blendSrc, m.blendDst
}

func (m *material) VertexShader() string {
	return m.vertexShader
}

func (m *material) FragmentShader() string {
	return m.fragmentShader
}

func (m *material) SetUniforms(projection, modelView, model mgl32.Mat4, eye Eye) {
	if !m.Created() {
		return
	}

	for _, u := range m.uniforms {
		if u.Location < 0 {
			continue
		}
		if u.Value.Type().IsTexture() && u.TextureUnit < 0 {
			continue
		}
		u.Value.upload(m.ctx, u.Location, u.TextureUnit)
	}

	if loc := m.program.UniformLocation(UniformProjectionMatrix); loc >= 0 {
		m.ctx.UniformMatrix4fv(loc, projection)
	}
	if loc := m.program.UniformLocation(UniformModelViewMatrix); loc >= 0 {
		m.ctx.UniformMatrix4fv(loc, modelView)
	}
	if loc := m.program.UniformLocation(UniformModelMatrix); loc >= 0 {
		m.ctx.UniformMatrix4fv(loc, model)
	}
	if loc := m.program.UniformLocation(UniformNormalMatrix); loc >= 0 {
		m.ctx.UniformMatrix3fv(loc, common.NormalMatrix(model))
	}
	if loc := m.program.UniformLocation(UniformDiffuse); loc >= 0 {
		m.ctx.Uniform3f(loc, m.diffuse[0], m.diffuse[1], m.diffuse[2])
	}
	if eye == nil {
		return
	}
	if loc := m.program.UniformLocation(UniformCameraPosition); loc >= 0 {
		p := eye.Position()
		m.ctx.Uniform3f(loc, p[0], p[1], p[2])
	}
}

func (m *material) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	for _, u := range m.uniforms {
		switch v := u.Value.(type) {
		case Sampler2D:
			if v.Texture != nil {
				v.Texture.Dispose()
			}
		case SamplerCube:
			if v.Texture != nil {
				v.Texture.Dispose()
			}
		}
	}
	m.program.Dispose()
}
