package material

import (
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/go-gl/mathgl/mgl32"
)

// MaterialBuilderOption is a function that configures a material instance during construction.
type MaterialBuilderOption func(*material)

// WithName is an option builder that sets the name of the material.
//
// Parameters:
//   - name: the identifier for the material
//
// Returns:
//   - MaterialBuilderOption: a function that applies the name option to a material
func WithName(name string) MaterialBuilderOption {
	return func(m *material) {
		m.name = name
	}
}

// WithVertexShader replaces the base vertex template.
//
// Parameters:
//   - source: the template source, which may contain hook placeholders
//
// Returns:
//   - MaterialBuilderOption: a function that applies the vertex shader option to a material
func WithVertexShader(source string) MaterialBuilderOption {
	return func(m *material) {
		m.vertexShader = source
	}
}

// WithFragmentShader replaces the base fragment template.
//
// Parameters:
//   - source: the template source, which may contain hook placeholders
//
// Returns:
//   - MaterialBuilderOption: a function that applies the fragment shader option to a material
func WithFragmentShader(source string) MaterialBuilderOption {
	return func(m *material) {
		m.fragmentShader = source
	}
}

// WithHooks sets the code injected at the template hooks. An empty Name defaults to the
// material name.
func WithHooks(hooks shader.Hooks) MaterialBuilderOption {
	return func(m *material) {
		m.hooks = hooks
	}
}

// WithUniform appends a custom uniform, or replaces the value of an existing one of the same name.
//
// Parameters:
//   - name: the uniform name as declared in the shader
//   - value: the typed value
//
// Returns:
//   - MaterialBuilderOption: a function that applies the uniform option to a material
func WithUniform(name string, value UniformValue) MaterialBuilderOption {
	return func(m *material) {
		m.SetUniform(name, value)
	}
}

// WithDrawType sets the primitive topology.
func WithDrawType(mode gpu.DrawMode) MaterialBuilderOption {
	return func(m *material) {
		m.drawType = mode
	}
}

// WithCulling sets the face culling mode.
func WithCulling(mode gpu.CullMode) MaterialBuilderOption {
	return func(m *material) {
		m.culling = mode
	}
}

// WithBlending enables blending around instanced draws.
func WithBlending(enabled bool) MaterialBuilderOption {
	return func(m *material) {
		m.blending = enabled
	}
}

// WithBlendFunc sets the blend factors used when blending is enabled.
//
// Parameters:
//   - src: the source factor
//   - dst: the destination factor
//
// Returns:
//   - MaterialBuilderOption: a function that applies the blend function option to a material
func WithBlendFunc(src, dst gpu.BlendFactor) MaterialBuilderOption {
	return func(m *material) {
		m.blendSrc = src
		m.blendDst = dst
	}
}

// WithDiffuse sets the color uploaded as uDiffuse.
func WithDiffuse(color mgl32.Vec3) MaterialBuilderOption {
	return func(m *material) {
		m.diffuse = color
	}
}
