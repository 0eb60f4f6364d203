package material

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/texture"
	"github.com/go-gl/mathgl/mgl32"
)

// UniformType is the closed vocabulary of uniform kinds. Each kind maps to exactly one
// graphics API call.
type UniformType string

const (
	UniformTexture2D   UniformType = "t"
	UniformTextureCube UniformType = "tc"
	UniformInt         UniformType = "i"
	UniformFloat       UniformType = "f"
	Uniform2f          UniformType = "2f"
	Uniform3f          UniformType = "3f"
	Uniform4f          UniformType = "4f"
	Uniform1iv         UniformType = "1iv"
	Uniform2iv         UniformType = "2iv"
	Uniform1fv         UniformType = "1fv"
	Uniform2fv         UniformType = "2fv"
	Uniform3fv         UniformType = "3fv"
	Uniform4fv         UniformType = "4fv"
	UniformMatrix3fv   UniformType = "Matrix3fv"
	UniformMatrix4fv   UniformType = "Matrix4fv"
)

var uniformTypes = map[string]UniformType{
	"t": UniformTexture2D, "tc": UniformTextureCube,
	"i": UniformInt, "f": UniformFloat,
	"2f": Uniform2f, "3f": Uniform3f, "4f": Uniform4f,
	"1iv": Uniform1iv, "2iv": Uniform2iv,
	"1fv": Uniform1fv, "2fv": Uniform2fv, "3fv": Uniform3fv, "4fv": Uniform4fv,
	"Matrix3fv": UniformMatrix3fv, "Matrix4fv": UniformMatrix4fv,
}

// ParseUniformType resolves a type tag.
//
// Parameters:
//   - tag: one of t, tc, i, f, 2f, 3f, 4f, 1iv, 2iv, 1fv, 2fv, 3fv, 4fv, Matrix3fv, Matrix4fv
//
// Returns:
//   - UniformType: the parsed type
//   - error: an error if the tag is unknown
func ParseUniformType(tag string) (UniformType, error) {
	t, ok := uniformTypes[tag]
	if !ok {
		return "", fmt.Errorf("unknown uniform type %q", tag)
	}
	return t, nil
}

// IsTexture reports whether the type samples a texture.
func (t UniformType) IsTexture() bool {
	return t == UniformTexture2D || t == UniformTextureCube
}

// UniformValue is a typed uniform value. The set of implementations is closed; each one
// issues exactly one value call when uploaded.
type UniformValue interface {
	// Type returns the tag of the value.
	Type() UniformType

	upload(ctx gpu.Context, loc gpu.UniformLocation, unit int)
}

// Sampler2D binds a 2D texture to the uniform's texture unit.
type Sampler2D struct{ Texture texture.Texture2D }

// SamplerCube binds a cube map to the uniform's texture unit.
type SamplerCube struct{ Texture texture.TextureCube }

type (
	Int   int32
	Float float32
	Vec2  mgl32.Vec2
	Vec3  mgl32.Vec3
	Vec4  mgl32.Vec4
	// IntArray is an int[] uniform.
	IntArray []int32
	// IVec2Array is an ivec2[] uniform, two components per element.
	IVec2Array []int32
	// FloatArray is a float[] uniform.
	FloatArray []float32
	// Vec2Array is a vec2[] uniform, two components per element.
	Vec2Array []float32
	// Vec3Array is a vec3[] uniform, three components per element.
	Vec3Array []float32
	// Vec4Array is a vec4[] uniform, four components per element.
	Vec4Array []float32
	Mat3      mgl32.Mat3
	Mat4      mgl32.Mat4
)

var (
	_ UniformValue = Sampler2D{}
	_ UniformValue = SamplerCube{}
	_ UniformValue = Int(0)
	_ UniformValue = Float(0)
	_ UniformValue = Vec2{}
	_ UniformValue = Vec3{}
	_ UniformValue = Vec4{}
	_ UniformValue = IntArray(nil)
	_ UniformValue = IVec2Array(nil)
	_ UniformValue = FloatArray(nil)
	_ UniformValue = Vec2Array(nil)
	_ UniformValue = Vec3Array(nil)
	_ UniformValue = Vec4Array(nil)
	_ UniformValue = Mat3{}
	_ UniformValue = Mat4{}
)

func (Sampler2D) Type() UniformType   { return UniformTexture2D }
func (SamplerCube) Type() UniformType { return UniformTextureCube }
func (Int) Type() UniformType         { return UniformInt }
func (Float) Type() UniformType       { return UniformFloat }
func (Vec2) Type() UniformType        { return Uniform2f }
func (Vec3) Type() UniformType        { return Uniform3f }
func (Vec4) Type() UniformType        { return Uniform4f }
func (IntArray) Type() UniformType    { return Uniform1iv }
func (IVec2Array) Type() UniformType  { return Uniform2iv }
func (FloatArray) Type() UniformType  { return Uniform1fv }
func (Vec2Array) Type() UniformType   { return Uniform2fv }
func (Vec3Array) Type() UniformType   { return Uniform3fv }
func (Vec4Array) Type() UniformType   { return Uniform4fv }
func (Mat3) Type() UniformType        { return UniformMatrix3fv }
func (Mat4) Type() UniformType        { return UniformMatrix4fv }

func (v Sampler2D) upload(ctx gpu.Context, loc gpu.UniformLocation, unit int) {
	ctx.Uniform1i(loc, int32(unit))
	if v.Texture != nil {
		v.Texture.Bind(unit)
	}
}

func (v SamplerCube) upload(ctx gpu.Context, loc gpu.UniformLocation, unit int) {
	ctx.Uniform1i(loc, int32(unit))
	if v.Texture != nil {
		v.Texture.Bind(unit)
	}
}

func (v Int) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) { ctx.Uniform1i(loc, int32(v)) }
func (v Float) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform1f(loc, float32(v))
}

func (v Vec2) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform2f(loc, v[0], v[1])
}

func (v Vec3) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform3f(loc, v[0], v[1], v[2])
}

func (v Vec4) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform4f(loc, v[0], v[1], v[2], v[3])
}

func (v IntArray) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform1iv(loc, v)
}

func (v IVec2Array) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform2iv(loc, v)
}

func (v FloatArray) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform1fv(loc, v)
}

func (v Vec2Array) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform2fv(loc, v)
}

func (v Vec3Array) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform3fv(loc, v)
}

func (v Vec4Array) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.Uniform4fv(loc, v)
}

func (v Mat3) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.UniformMatrix3fv(loc, [9]float32(v))
}

func (v Mat4) upload(ctx gpu.Context, loc gpu.UniformLocation, _ int) {
	ctx.UniformMatrix4fv(loc, [16]float32(v))
}

// NewUniformValue builds a non-texture value from plain numbers, as read from a config file.
// Texture uniforms carry GPU objects and must be constructed in code.
//
// Parameters:
//   - t: the uniform type
//   - values: the components, in column-major order for matrices
//
// Returns:
//   - UniformValue: the typed value
//   - error: an error if the type is a texture or the component count does not fit
func NewUniformValue(t UniformType, values []float64) (UniformValue, error) {
	fixed := func(n int) ([]float32, error) {
		if len(values) != n {
			return nil, fmt.Errorf("uniform type %s takes %d values, got %d", t, n, len(values))
		}
		return toFloat32(values), nil
	}
	multiple := func(n int) ([]float32, error) {
		if len(values) == 0 || len(values)%n != 0 {
			return nil, fmt.Errorf("uniform type %s takes a non-empty multiple of %d values, got %d", t, n, len(values))
		}
		return toFloat32(values), nil
	}

	switch t {
	case UniformTexture2D, UniformTextureCube:
		return nil, fmt.Errorf("uniform type %s must be bound in code", t)
	case UniformInt:
		f, err := fixed(1)
		if err != nil {
			return nil, err
		}
		return Int(int32(f[0])), nil
	case UniformFloat:
		f, err := fixed(1)
		if err != nil {
			return nil, err
		}
		return Float(f[0]), nil
	case Uniform2f:
		f, err := fixed(2)
		if err != nil {
			return nil, err
		}
		return Vec2{f[0], f[1]}, nil
	case Uniform3f:
		f, err := fixed(3)
		if err != nil {
			return nil, err
		}
		return Vec3{f[0], f[1], f[2]}, nil
	case Uniform4f:
		f, err := fixed(4)
		if err != nil {
			return nil, err
		}
		return Vec4{f[0], f[1], f[2], f[3]}, nil
	case Uniform1iv, Uniform2iv:
		n := 1
		if t == Uniform2iv {
			n = 2
		}
		f, err := multiple(n)
		if err != nil {
			return nil, err
		}
		ints := make([]int32, len(f))
		for i, v := range f {
			ints[i] = int32(v)
		}
		if t == Uniform2iv {
			return IVec2Array(ints), nil
		}
		return IntArray(ints), nil
	case Uniform1fv, Uniform2fv, Uniform3fv, Uniform4fv:
		n := map[UniformType]int{Uniform1fv: 1, Uniform2fv: 2, Uniform3fv: 3, Uniform4fv: 4}[t]
		f, err := multiple(n)
		if err != nil {
			return nil, err
		}
		switch n {
		case 1:
			return FloatArray(f), nil
		case 2:
			return Vec2Array(f), nil
		case 3:
			return Vec3Array(f), nil
		default:
			return Vec4Array(f), nil
		}
	case UniformMatrix3fv:
		f, err := fixed(9)
		if err != nil {
			return nil, err
		}
		var m Mat3
		copy(m[:], f)
		return m, nil
	case UniformMatrix4fv:
		f, err := fixed(16)
		if err != nil {
			return nil, err
		}
		var m Mat4
		copy(m[:], f)
		return m, nil
	default:
		return nil, fmt.Errorf("unknown uniform type %q", string(t))
	}
}

func toFloat32(values []float64) []float32 {
	out := make([]float32, len(values))
	for i, v := range values {
		out[i] = float32(v)
	}
	return out
}

// Uniform is one entry of a material's uniform table.
type Uniform struct {
	Name  string
	Value UniformValue
	// Location is resolved after the program links; -1 before that or when inactive.
	Location gpu.UniformLocation
	// TextureUnit is assigned to texture uniforms after link; -1 otherwise.
	TextureUnit int
}
