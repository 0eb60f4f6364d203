package gpu

import "go.uber.org/zap"

// Object handles. The zero value of every handle means "no object".
type (
	Buffer       uint32
	Shader       uint32
	Program      uint32
	Texture      uint32
	VertexArray  uint32
	Framebuffer  uint32
	Renderbuffer uint32
)

// UniformLocation is a uniform's location inside a linked program, -1 when the uniform is inactive.
type UniformLocation int32

// Capabilities describes what the active context supports. It is queried once when the
// context is created and consulted by components choosing between fast and slow paths.
type Capabilities struct {
	// VertexArrayObject reports whether vertex array objects can record attribute state.
	VertexArrayObject bool
	// Instancing reports whether instanced draws and attribute divisors are available.
	Instancing bool
	// Precision is the float precision qualifier injected into shaders.
	Precision string
	// MaxTextureUnits is the number of texture image units a fragment shader can sample.
	MaxTextureUnits int
}

// Context is the graphics context every GPU-facing component issues its calls through.
// One Context is created by the renderer and handed to meshes, materials, geometries and
// textures explicitly; there is no process-wide instance.
type Context interface {
	// Capabilities returns the flags queried when the context was created.
	Capabilities() Capabilities

	// Logger returns the logger components report warnings through.
	Logger() *zap.Logger

	// Fixed-function state
	Enable(c Cap)
	Disable(c Cap)
	CullFace(mode CullMode)
	BlendFunc(src, dst BlendFactor)
	Viewport(x, y, width, height int32)
	Scissor(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask ClearMask)

	// Buffers
	CreateBuffer() Buffer
	BindBuffer(target BufferTarget, buffer Buffer)
	BufferData(target BufferTarget, data []byte, usage BufferUsage)
	BufferSubData(target BufferTarget, offset int, data []byte)
	DeleteBuffer(buffer Buffer)

	// Shaders and programs
	CreateShader(kind ShaderKind) Shader
	ShaderSource(shader Shader, source string)
	CompileShader(shader Shader)
	ShaderCompileStatus(shader Shader) bool
	ShaderInfoLog(shader Shader) string
	DeleteShader(shader Shader)
	CreateProgram() Program
	AttachShader(program Program, shader Shader)
	DetachShader(program Program, shader Shader)
	LinkProgram(program Program)
	ProgramLinkStatus(program Program) bool
	ProgramInfoLog(program Program) string
	UseProgram(program Program)
	DeleteProgram(program Program)

	// Attributes
	GetAttribLocation(program Program, name string) int32
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, dataType DataType, normalized bool, stride int32, offset int)
	VertexAttribDivisor(index uint32, divisor uint32)

	// Uniforms
	GetUniformLocation(program Program, name string) UniformLocation
	Uniform1i(loc UniformLocation, v int32)
	Uniform1f(loc UniformLocation, v float32)
	Uniform2f(loc UniformLocation, x, y float32)
	Uniform3f(loc UniformLocation, x, y, z float32)
	Uniform4f(loc UniformLocation, x, y, z, w float32)
	Uniform1iv(loc UniformLocation, v []int32)
	Uniform2iv(loc UniformLocation, v []int32)
	Uniform1fv(loc UniformLocation, v []float32)
	Uniform2fv(loc UniformLocation, v []float32)
	Uniform3fv(loc UniformLocation, v []float32)
	Uniform4fv(loc UniformLocation, v []float32)
	UniformMatrix3fv(loc UniformLocation, m [9]float32)
	UniformMatrix4fv(loc UniformLocation, m [16]float32)

	// Textures
	CreateTexture() Texture
	ActiveTexture(unit uint32)
	BindTexture(target TextureTarget, texture Texture)
	TexImage2D(target TextureTarget, width, height int32, format PixelFormat, dataType DataType, pixels []byte)
	TexParameteri(target TextureTarget, param TextureParam, value int32)
	GenerateMipmap(target TextureTarget)
	DeleteTexture(texture Texture)

	// Vertex array objects
	CreateVertexArray() VertexArray
	BindVertexArray(vao VertexArray)
	DeleteVertexArray(vao VertexArray)

	// Draw calls
	DrawArrays(mode DrawMode, first, count int32)
	DrawElements(mode DrawMode, count int32, dataType DataType, offset int)
	DrawArraysInstanced(mode DrawMode, first, count, instances int32)
	DrawElementsInstanced(mode DrawMode, count int32, dataType DataType, offset int, instances int32)

	// Off-screen targets
	CreateFramebuffer() Framebuffer
	BindFramebuffer(fb Framebuffer)
	FramebufferTexture2D(attachment uint32, target TextureTarget, texture Texture)
	FramebufferRenderbuffer(attachment uint32, rb Renderbuffer)
	DeleteFramebuffer(fb Framebuffer)
	CreateRenderbuffer() Renderbuffer
	BindRenderbuffer(rb Renderbuffer)
	RenderbufferStorage(format uint32, width, height int32)
	DeleteRenderbuffer(rb Renderbuffer)
}
