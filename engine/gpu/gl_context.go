package gpu

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"
)

// glContext implements Context on top of an OpenGL 4.1 core profile context.
// The OS thread that created the GL context must be the one calling into it.
type glContext struct {
	logger *zap.Logger
	caps   Capabilities

	// defaultVAO is bound for the lifetime of the context when the VAO fast path is disabled,
	// since the core profile refuses attribute pointers without a bound vertex array.
	defaultVAO uint32
}

var _ Context = &glContext{}

// NewGLContext loads the OpenGL function pointers for the context current on the calling
// thread and queries its capabilities.
//
// Parameters:
//   - logger: the logger components will warn through; nil selects a no-op logger
//   - options: functional options overriding queried capabilities
//
// Returns:
//   - Context: the ready-to-use context
//   - error: an error if the GL bindings could not be initialized
func NewGLContext(logger *zap.Logger, options ...GLContextBuilderOption) (Context, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL bindings: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	var units int32
	gl.GetIntegerv(gl.MAX_TEXTURE_IMAGE_UNITS, &units)

	c := &glContext{
		logger: logger,
		caps: Capabilities{
			VertexArrayObject: true,
			Instancing:        true,
			Precision:         DefaultPrecision,
			MaxTextureUnits:   int(units),
		},
	}

	for _, option := range options {
		option(c)
	}

	if !c.caps.VertexArrayObject {
		gl.GenVertexArrays(1, &c.defaultVAO)
		gl.BindVertexArray(c.defaultVAO)
	}

	logger.Debug("OpenGL context ready",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Int("textureUnits", c.caps.MaxTextureUnits),
	)
	return c, nil
}

func (c *glContext) Capabilities() Capabilities { return c.caps }

func (c *glContext) Logger() *zap.Logger { return c.logger }

func (c *glContext) Enable(cp Cap)  { gl.Enable(uint32(cp)) }
func (c *glContext) Disable(cp Cap) { gl.Disable(uint32(cp)) }

func (c *glContext) CullFace(mode CullMode) {
	if mode == CullNone {
		return
	}
	gl.CullFace(uint32(mode))
}

func (c *glContext) BlendFunc(src, dst BlendFactor) { gl.BlendFunc(uint32(src), uint32(dst)) }

func (c *glContext) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }
func (c *glContext) Scissor(x, y, width, height int32)  { gl.Scissor(x, y, width, height) }

func (c *glContext) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }
func (c *glContext) Clear(mask ClearMask)          { gl.Clear(uint32(mask)) }

func (c *glContext) CreateBuffer() Buffer {
	var b uint32
	gl.GenBuffers(1, &b)
	return Buffer(b)
}

func (c *glContext) BindBuffer(target BufferTarget, buffer Buffer) {
	gl.BindBuffer(uint32(target), uint32(buffer))
}

func (c *glContext) BufferData(target BufferTarget, data []byte, usage BufferUsage) {
	gl.BufferData(uint32(target), len(data), bytesPtr(data), uint32(usage))
}

func (c *glContext) BufferSubData(target BufferTarget, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	gl.BufferSubData(uint32(target), offset, len(data), gl.Ptr(data))
}

func (c *glContext) DeleteBuffer(buffer Buffer) {
	b := uint32(buffer)
	gl.DeleteBuffers(1, &b)
}

func (c *glContext) CreateShader(kind ShaderKind) Shader {
	return Shader(gl.CreateShader(uint32(kind)))
}

func (c *glContext) ShaderSource(shader Shader, source string) {
	sources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(uint32(shader), 1, sources, nil)
	free()
}

func (c *glContext) CompileShader(shader Shader) { gl.CompileShader(uint32(shader)) }

func (c *glContext) ShaderCompileStatus(shader Shader) bool {
	var status int32
	gl.GetShaderiv(uint32(shader), gl.COMPILE_STATUS, &status)
	return status == gl.TRUE
}

func (c *glContext) ShaderInfoLog(shader Shader) string {
	var length int32
	gl.GetShaderiv(uint32(shader), gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetShaderInfoLog(uint32(shader), length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) DeleteShader(shader Shader) { gl.DeleteShader(uint32(shader)) }

func (c *glContext) CreateProgram() Program { return Program(gl.CreateProgram()) }

func (c *glContext) AttachShader(program Program, shader Shader) {
	gl.AttachShader(uint32(program), uint32(shader))
}

func (c *glContext) DetachShader(program Program, shader Shader) {
	gl.DetachShader(uint32(program), uint32(shader))
}

func (c *glContext) LinkProgram(program Program) { gl.LinkProgram(uint32(program)) }

func (c *glContext) ProgramLinkStatus(program Program) bool {
	var status int32
	gl.GetProgramiv(uint32(program), gl.LINK_STATUS, &status)
	return status == gl.TRUE
}

func (c *glContext) ProgramInfoLog(program Program) string {
	var length int32
	gl.GetProgramiv(uint32(program), gl.INFO_LOG_LENGTH, &length)
	if length == 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(length+1))
	gl.GetProgramInfoLog(uint32(program), length, nil, gl.Str(log))
	return strings.TrimRight(log, "\x00")
}

func (c *glContext) UseProgram(program Program)    { gl.UseProgram(uint32(program)) }
func (c *glContext) DeleteProgram(program Program) { gl.DeleteProgram(uint32(program)) }

func (c *glContext) GetAttribLocation(program Program, name string) int32 {
	return gl.GetAttribLocation(uint32(program), gl.Str(name+"\x00"))
}

func (c *glContext) EnableVertexAttribArray(index uint32)  { gl.EnableVertexAttribArray(index) }
func (c *glContext) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (c *glContext) VertexAttribPointer(index uint32, size int32, dataType DataType, normalized bool, stride int32, offset int) {
	gl.VertexAttribPointer(index, size, uint32(dataType), normalized, stride, gl.PtrOffset(offset))
}

func (c *glContext) VertexAttribDivisor(index uint32, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (c *glContext) GetUniformLocation(program Program, name string) UniformLocation {
	return UniformLocation(gl.GetUniformLocation(uint32(program), gl.Str(name+"\x00")))
}

func (c *glContext) Uniform1i(loc UniformLocation, v int32)   { gl.Uniform1i(int32(loc), v) }
func (c *glContext) Uniform1f(loc UniformLocation, v float32) { gl.Uniform1f(int32(loc), v) }
func (c *glContext) Uniform2f(loc UniformLocation, x, y float32) {
	gl.Uniform2f(int32(loc), x, y)
}
func (c *glContext) Uniform3f(loc UniformLocation, x, y, z float32) {
	gl.Uniform3f(int32(loc), x, y, z)
}
func (c *glContext) Uniform4f(loc UniformLocation, x, y, z, w float32) {
	gl.Uniform4f(int32(loc), x, y, z, w)
}

func (c *glContext) Uniform1iv(loc UniformLocation, v []int32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1iv(int32(loc), int32(len(v)), &v[0])
}

func (c *glContext) Uniform2iv(loc UniformLocation, v []int32) {
	if len(v) < 2 {
		return
	}
	gl.Uniform2iv(int32(loc), int32(len(v)/2), &v[0])
}

func (c *glContext) Uniform1fv(loc UniformLocation, v []float32) {
	if len(v) == 0 {
		return
	}
	gl.Uniform1fv(int32(loc), int32(len(v)), &v[0])
}

func (c *glContext) Uniform2fv(loc UniformLocation, v []float32) {
	if len(v) < 2 {
		return
	}
	gl.Uniform2fv(int32(loc), int32(len(v)/2), &v[0])
}

func (c *glContext) Uniform3fv(loc UniformLocation, v []float32) {
	if len(v) < 3 {
		return
	}
	gl.Uniform3fv(int32(loc), int32(len(v)/3), &v[0])
}

func (c *glContext) Uniform4fv(loc UniformLocation, v []float32) {
	if len(v) < 4 {
		return
	}
	gl.Uniform4fv(int32(loc), int32(len(v)/4), &v[0])
}

func (c *glContext) UniformMatrix3fv(loc UniformLocation, m [9]float32) {
	gl.UniformMatrix3fv(int32(loc), 1, false, &m[0])
}

func (c *glContext) UniformMatrix4fv(loc UniformLocation, m [16]float32) {
	gl.UniformMatrix4fv(int32(loc), 1, false, &m[0])
}

func (c *glContext) CreateTexture() Texture {
	var t uint32
	gl.GenTextures(1, &t)
	return Texture(t)
}

func (c *glContext) ActiveTexture(unit uint32) { gl.ActiveTexture(gl.TEXTURE0 + unit) }

func (c *glContext) BindTexture(target TextureTarget, texture Texture) {
	gl.BindTexture(uint32(target), uint32(texture))
}

func (c *glContext) TexImage2D(target TextureTarget, width, height int32, format PixelFormat, dataType DataType, pixels []byte) {
	gl.TexImage2D(uint32(target), 0, int32(format), width, height, 0, uint32(format), uint32(dataType), bytesPtr(pixels))
}

func (c *glContext) TexParameteri(target TextureTarget, param TextureParam, value int32) {
	gl.TexParameteri(uint32(target), uint32(param), value)
}

func (c *glContext) GenerateMipmap(target TextureTarget) { gl.GenerateMipmap(uint32(target)) }

func (c *glContext) DeleteTexture(texture Texture) {
	t := uint32(texture)
	gl.DeleteTextures(1, &t)
}

func (c *glContext) CreateVertexArray() VertexArray {
	var v uint32
	gl.GenVertexArrays(1, &v)
	return VertexArray(v)
}

func (c *glContext) BindVertexArray(vao VertexArray) {
	if vao == 0 {
		gl.BindVertexArray(c.defaultVAO)
		return
	}
	gl.BindVertexArray(uint32(vao))
}

func (c *glContext) DeleteVertexArray(vao VertexArray) {
	v := uint32(vao)
	gl.DeleteVertexArrays(1, &v)
}

func (c *glContext) DrawArrays(mode DrawMode, first, count int32) {
	gl.DrawArrays(uint32(mode), first, count)
}

func (c *glContext) DrawElements(mode DrawMode, count int32, dataType DataType, offset int) {
	gl.DrawElements(uint32(mode), count, uint32(dataType), gl.PtrOffset(offset))
}

func (c *glContext) DrawArraysInstanced(mode DrawMode, first, count, instances int32) {
	gl.DrawArraysInstanced(uint32(mode), first, count, instances)
}

func (c *glContext) DrawElementsInstanced(mode DrawMode, count int32, dataType DataType, offset int, instances int32) {
	gl.DrawElementsInstanced(uint32(mode), count, uint32(dataType), gl.PtrOffset(offset), instances)
}

func (c *glContext) CreateFramebuffer() Framebuffer {
	var f uint32
	gl.GenFramebuffers(1, &f)
	return Framebuffer(f)
}

func (c *glContext) BindFramebuffer(fb Framebuffer) {
	gl.BindFramebuffer(FramebufferTarget, uint32(fb))
}

func (c *glContext) FramebufferTexture2D(attachment uint32, target TextureTarget, texture Texture) {
	gl.FramebufferTexture2D(FramebufferTarget, attachment, uint32(target), uint32(texture), 0)
}

func (c *glContext) FramebufferRenderbuffer(attachment uint32, rb Renderbuffer) {
	gl.FramebufferRenderbuffer(FramebufferTarget, attachment, RenderbufferTarget, uint32(rb))
}

func (c *glContext) DeleteFramebuffer(fb Framebuffer) {
	f := uint32(fb)
	gl.DeleteFramebuffers(1, &f)
}

func (c *glContext) CreateRenderbuffer() Renderbuffer {
	var r uint32
	gl.GenRenderbuffers(1, &r)
	return Renderbuffer(r)
}

func (c *glContext) BindRenderbuffer(rb Renderbuffer) {
	gl.BindRenderbuffer(RenderbufferTarget, uint32(rb))
}

func (c *glContext) RenderbufferStorage(format uint32, width, height int32) {
	gl.RenderbufferStorage(RenderbufferTarget, format, width, height)
}

func (c *glContext) DeleteRenderbuffer(rb Renderbuffer) {
	r := uint32(rb)
	gl.DeleteRenderbuffers(1, &r)
}

// bytesPtr returns a pointer to the first byte, or nil for an empty slice so GL allocates
// uninitialized storage.
func bytesPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
