// Package gputest provides an in-memory gpu.Context that records every call it receives,
// for testing components that issue GPU commands without a display.
package gputest

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"go.uber.org/zap"
)

// Call is one recorded context call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// VertexAttrib is the state of one attribute slot captured by a vertex array.
type VertexAttrib struct {
	Enabled bool
	Size    int32
	// Buffer is the array buffer bound when the pointer was set.
	Buffer  gpu.Buffer
	Divisor uint32
}

// Recorder implements gpu.Context by appending every call to an in-memory log.
// Handles are allocated from a single counter starting at 1, attribute and uniform
// locations are allocated per program in first-query order starting at 0.
type Recorder struct {
	// Caps is returned by Capabilities.
	Caps gpu.Capabilities
	// Log is returned by Logger.
	Log *zap.Logger

	// FailCompile makes every shader report a failed compile with InfoLog.
	FailCompile bool
	// FailLink makes every program report a failed link with InfoLog.
	FailLink bool
	// InfoLog is the driver log reported for failures.
	InfoLog string
	// Inactive lists attribute and uniform names that resolve to -1.
	Inactive map[string]bool

	// OnCall, when set, observes each call as it is recorded.
	OnCall func(Call)

	calls     []Call
	next      uint32
	attribs   map[gpu.Program]map[string]int32
	uniforms  map[gpu.Program]map[string]gpu.UniformLocation
	compiled  map[gpu.Shader]bool
	linked    map[gpu.Program]bool
	attached  map[gpu.Program][]gpu.Shader
	bufferLen map[gpu.Buffer]int
	bound     map[gpu.BufferTarget]gpu.Buffer

	// vao is the bound vertex array, 0 for the default one.
	vao    gpu.VertexArray
	arrays map[gpu.VertexArray]map[uint32]VertexAttrib
}

var _ gpu.Context = &Recorder{}

// NewRecorder returns a recorder advertising the vertex array object and instancing
// capabilities, highp precision and 16 texture units.
func NewRecorder() *Recorder {
	return &Recorder{
		Caps: gpu.Capabilities{
			VertexArrayObject: true,
			Instancing:        true,
			Precision:         gpu.DefaultPrecision,
			MaxTextureUnits:   16,
		},
		Log:       zap.NewNop(),
		Inactive:  map[string]bool{},
		attribs:   map[gpu.Program]map[string]int32{},
		uniforms:  map[gpu.Program]map[string]gpu.UniformLocation{},
		compiled:  map[gpu.Shader]bool{},
		linked:    map[gpu.Program]bool{},
		attached:  map[gpu.Program][]gpu.Shader{},
		bufferLen: map[gpu.Buffer]int{},
		bound:     map[gpu.BufferTarget]gpu.Buffer{},
		arrays:    map[gpu.VertexArray]map[uint32]VertexAttrib{},
	}
}

// Calls returns every recorded call in order.
func (r *Recorder) Calls() []Call {
	return r.calls
}

// Named returns the recorded calls with the given name in order.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many calls with the given name were recorded.
func (r *Recorder) Count(name string) int {
	return len(r.Named(name))
}

// Index returns the position of the first call with the given name, or -1.
func (r *Recorder) Index(name string) int {
	for i, c := range r.calls {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// LastIndex returns the position of the last call with the given name, or -1.
func (r *Recorder) LastIndex(name string) int {
	for i := len(r.calls) - 1; i >= 0; i-- {
		if r.calls[i].Name == name {
			return i
		}
	}
	return -1
}

// Names returns the names of every recorded call in order.
func (r *Recorder) Names() []string {
	out := make([]string, len(r.calls))
	for i, c := range r.calls {
		out[i] = c.Name
	}
	return out
}

// Reset forgets the recorded calls while keeping allocated handles and locations.
func (r *Recorder) Reset() {
	r.calls = nil
}

// UniformLocationOf returns the location previously handed out for a uniform name.
func (r *Recorder) UniformLocationOf(program gpu.Program, name string) (gpu.UniformLocation, bool) {
	loc, ok := r.uniforms[program][name]
	return loc, ok
}

// BufferSize returns the byte size last uploaded to a buffer with BufferData.
func (r *Recorder) BufferSize(buffer gpu.Buffer) int {
	return r.bufferLen[buffer]
}

// VertexArrayState returns a copy of the attribute slots captured by a vertex array, keyed
// by location. Vertex array 0 is the default array used when none is bound.
func (r *Recorder) VertexArrayState(vao gpu.VertexArray) map[uint32]VertexAttrib {
	out := make(map[uint32]VertexAttrib, len(r.arrays[vao]))
	for loc, a := range r.arrays[vao] {
		out[loc] = a
	}
	return out
}

// BoundVertexArray returns the vertex array bound last, 0 for the default one.
func (r *Recorder) BoundVertexArray() gpu.VertexArray {
	return r.vao
}

// attrib applies fn to the slot at index of the bound vertex array.
func (r *Recorder) attrib(index uint32, fn func(*VertexAttrib)) {
	slots := r.arrays[r.vao]
	if slots == nil {
		slots = map[uint32]VertexAttrib{}
		r.arrays[r.vao] = slots
	}
	a := slots[index]
	fn(&a)
	slots[index] = a
}

func (r *Recorder) record(name string, args ...any) {
	c := Call{Name: name, Args: args}
	r.calls = append(r.calls, c)
	if r.OnCall != nil {
		r.OnCall(c)
	}
}

func (r *Recorder) handle() uint32 {
	r.next++
	return r.next
}

func (r *Recorder) Capabilities() gpu.Capabilities { return r.Caps }

func (r *Recorder) Logger() *zap.Logger { return r.Log }

func (r *Recorder) Enable(c gpu.Cap)        { r.record("Enable", c) }
func (r *Recorder) Disable(c gpu.Cap)       { r.record("Disable", c) }
func (r *Recorder) CullFace(m gpu.CullMode) { r.record("CullFace", m) }

func (r *Recorder) BlendFunc(src, dst gpu.BlendFactor) { r.record("BlendFunc", src, dst) }

func (r *Recorder) Viewport(x, y, width, height int32) {
	r.record("Viewport", x, y, width, height)
}

func (r *Recorder) Scissor(x, y, width, height int32) {
	r.record("Scissor", x, y, width, height)
}

func (r *Recorder) ClearColor(red, green, blue, alpha float32) {
	r.record("ClearColor", red, green, blue, alpha)
}

func (r *Recorder) Clear(mask gpu.ClearMask) { r.record("Clear", mask) }

func (r *Recorder) CreateBuffer() gpu.Buffer {
	b := gpu.Buffer(r.handle())
	r.record("CreateBuffer", b)
	return b
}

func (r *Recorder) BindBuffer(target gpu.BufferTarget, buffer gpu.Buffer) {
	r.bound[target] = buffer
	r.record("BindBuffer", target, buffer)
}

func (r *Recorder) BufferData(target gpu.BufferTarget, data []byte, usage gpu.BufferUsage) {
	r.bufferLen[r.bound[target]] = len(data)
	r.record("BufferData", target, len(data), usage)
}

func (r *Recorder) BufferSubData(target gpu.BufferTarget, offset int, data []byte) {
	r.record("BufferSubData", target, offset, len(data))
}

func (r *Recorder) DeleteBuffer(buffer gpu.Buffer) { r.record("DeleteBuffer", buffer) }

func (r *Recorder) CreateShader(kind gpu.ShaderKind) gpu.Shader {
	s := gpu.Shader(r.handle())
	r.record("CreateShader", kind, s)
	return s
}

func (r *Recorder) ShaderSource(shader gpu.Shader, source string) {
	r.record("ShaderSource", shader, source)
}

func (r *Recorder) CompileShader(shader gpu.Shader) {
	r.compiled[shader] = !r.FailCompile
	r.record("CompileShader", shader)
}

func (r *Recorder) ShaderCompileStatus(shader gpu.Shader) bool {
	return r.compiled[shader]
}

func (r *Recorder) ShaderInfoLog(shader gpu.Shader) string {
	if r.compiled[shader] {
		return ""
	}
	return r.InfoLog
}

func (r *Recorder) DeleteShader(shader gpu.Shader) { r.record("DeleteShader", shader) }

func (r *Recorder) CreateProgram() gpu.Program {
	p := gpu.Program(r.handle())
	r.record("CreateProgram", p)
	return p
}

func (r *Recorder) AttachShader(program gpu.Program, shader gpu.Shader) {
	r.attached[program] = append(r.attached[program], shader)
	r.record("AttachShader", program, shader)
}

func (r *Recorder) DetachShader(program gpu.Program, shader gpu.Shader) {
	r.record("DetachShader", program, shader)
}

func (r *Recorder) LinkProgram(program gpu.Program) {
	ok := !r.FailLink
	for _, s := range r.attached[program] {
		ok = ok && r.compiled[s]
	}
	r.linked[program] = ok
	r.record("LinkProgram", program)
}

func (r *Recorder) ProgramLinkStatus(program gpu.Program) bool { return r.linked[program] }

func (r *Recorder) ProgramInfoLog(program gpu.Program) string {
	if r.linked[program] {
		return ""
	}
	return r.InfoLog
}

func (r *Recorder) UseProgram(program gpu.Program)    { r.record("UseProgram", program) }
func (r *Recorder) DeleteProgram(program gpu.Program) { r.record("DeleteProgram", program) }

func (r *Recorder) GetAttribLocation(program gpu.Program, name string) int32 {
	r.record("GetAttribLocation", program, name)
	if r.Inactive[name] {
		return -1
	}
	locs := r.attribs[program]
	if locs == nil {
		locs = map[string]int32{}
		r.attribs[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = int32(len(locs))
		locs[name] = loc
	}
	return loc
}

func (r *Recorder) EnableVertexAttribArray(index uint32) {
	r.attrib(index, func(a *VertexAttrib) { a.Enabled = true })
	r.record("EnableVertexAttribArray", index)
}

func (r *Recorder) DisableVertexAttribArray(index uint32) {
	r.attrib(index, func(a *VertexAttrib) { a.Enabled = false })
	r.record("DisableVertexAttribArray", index)
}

func (r *Recorder) VertexAttribPointer(index uint32, size int32, dataType gpu.DataType, normalized bool, stride int32, offset int) {
	r.attrib(index, func(a *VertexAttrib) {
		a.Size = size
		a.Buffer = r.bound[gpu.ArrayBuffer]
	})
	r.record("VertexAttribPointer", index, size, dataType, normalized, stride, offset)
}

func (r *Recorder) VertexAttribDivisor(index uint32, divisor uint32) {
	r.attrib(index, func(a *VertexAttrib) { a.Divisor = divisor })
	r.record("VertexAttribDivisor", index, divisor)
}

func (r *Recorder) GetUniformLocation(program gpu.Program, name string) gpu.UniformLocation {
	r.record("GetUniformLocation", program, name)
	if r.Inactive[name] {
		return -1
	}
	locs := r.uniforms[program]
	if locs == nil {
		locs = map[string]gpu.UniformLocation{}
		r.uniforms[program] = locs
	}
	loc, ok := locs[name]
	if !ok {
		loc = gpu.UniformLocation(len(locs))
		locs[name] = loc
	}
	return loc
}

func (r *Recorder) Uniform1i(loc gpu.UniformLocation, v int32)   { r.record("Uniform1i", loc, v) }
func (r *Recorder) Uniform1f(loc gpu.UniformLocation, v float32) { r.record("Uniform1f", loc, v) }

func (r *Recorder) Uniform2f(loc gpu.UniformLocation, x, y float32) {
	r.record("Uniform2f", loc, x, y)
}

func (r *Recorder) Uniform3f(loc gpu.UniformLocation, x, y, z float32) {
	r.record("Uniform3f", loc, x, y, z)
}

func (r *Recorder) Uniform4f(loc gpu.UniformLocation, x, y, z, w float32) {
	r.record("Uniform4f", loc, x, y, z, w)
}

func (r *Recorder) Uniform1iv(loc gpu.UniformLocation, v []int32) { r.record("Uniform1iv", loc, v) }
func (r *Recorder) Uniform2iv(loc gpu.UniformLocation, v []int32) { r.record("Uniform2iv", loc, v) }

func (r *Recorder) Uniform1fv(loc gpu.UniformLocation, v []float32) {
	r.record("Uniform1fv", loc, v)
}

func (r *Recorder) Uniform2fv(loc gpu.UniformLocation, v []float32) {
	r.record("Uniform2fv", loc, v)
}

func (r *Recorder) Uniform3fv(loc gpu.UniformLocation, v []float32) {
	r.record("Uniform3fv", loc, v)
}

func (r *Recorder) Uniform4fv(loc gpu.UniformLocation, v []float32) {
	r.record("Uniform4fv", loc, v)
}

func (r *Recorder) UniformMatrix3fv(loc gpu.UniformLocation, m [9]float32) {
	r.record("UniformMatrix3fv", loc, m)
}

func (r *Recorder) UniformMatrix4fv(loc gpu.UniformLocation, m [16]float32) {
	r.record("UniformMatrix4fv", loc, m)
}

func (r *Recorder) CreateTexture() gpu.Texture {
	t := gpu.Texture(r.handle())
	r.record("CreateTexture", t)
	return t
}

func (r *Recorder) ActiveTexture(unit uint32) { r.record("ActiveTexture", unit) }

func (r *Recorder) BindTexture(target gpu.TextureTarget, texture gpu.Texture) {
	r.record("BindTexture", target, texture)
}

func (r *Recorder) TexImage2D(target gpu.TextureTarget, width, height int32, format gpu.PixelFormat, dataType gpu.DataType, pixels []byte) {
	r.record("TexImage2D", target, width, height, format, dataType, len(pixels))
}

func (r *Recorder) TexParameteri(target gpu.TextureTarget, param gpu.TextureParam, value int32) {
	r.record("TexParameteri", target, param, value)
}

func (r *Recorder) GenerateMipmap(target gpu.TextureTarget) { r.record("GenerateMipmap", target) }

func (r *Recorder) DeleteTexture(texture gpu.Texture) { r.record("DeleteTexture", texture) }

func (r *Recorder) CreateVertexArray() gpu.VertexArray {
	v := gpu.VertexArray(r.handle())
	r.record("CreateVertexArray", v)
	return v
}

func (r *Recorder) BindVertexArray(vao gpu.VertexArray) {
	r.vao = vao
	r.record("BindVertexArray", vao)
}

func (r *Recorder) DeleteVertexArray(vao gpu.VertexArray) {
	delete(r.arrays, vao)
	if r.vao == vao {
		r.vao = 0
	}
	r.record("DeleteVertexArray", vao)
}

func (r *Recorder) DrawArrays(mode gpu.DrawMode, first, count int32) {
	r.record("DrawArrays", mode, first, count)
}

func (r *Recorder) DrawElements(mode gpu.DrawMode, count int32, dataType gpu.DataType, offset int) {
	r.record("DrawElements", mode, count, dataType, offset)
}

func (r *Recorder) DrawArraysInstanced(mode gpu.DrawMode, first, count, instances int32) {
	r.record("DrawArraysInstanced", mode, first, count, instances)
}

func (r *Recorder) DrawElementsInstanced(mode gpu.DrawMode, count int32, dataType gpu.DataType, offset int, instances int32) {
	r.record("DrawElementsInstanced", mode, count, dataType, offset, instances)
}

func (r *Recorder) CreateFramebuffer() gpu.Framebuffer {
	f := gpu.Framebuffer(r.handle())
	r.record("CreateFramebuffer", f)
	return f
}

func (r *Recorder) BindFramebuffer(fb gpu.Framebuffer) { r.record("BindFramebuffer", fb) }

func (r *Recorder) FramebufferTexture2D(attachment uint32, target gpu.TextureTarget, texture gpu.Texture) {
	r.record("FramebufferTexture2D", attachment, target, texture)
}

func (r *Recorder) FramebufferRenderbuffer(attachment uint32, rb gpu.Renderbuffer) {
	r.record("FramebufferRenderbuffer", attachment, rb)
}

func (r *Recorder) DeleteFramebuffer(fb gpu.Framebuffer) { r.record("DeleteFramebuffer", fb) }

func (r *Recorder) CreateRenderbuffer() gpu.Renderbuffer {
	rb := gpu.Renderbuffer(r.handle())
	r.record("CreateRenderbuffer", rb)
	return rb
}

func (r *Recorder) BindRenderbuffer(rb gpu.Renderbuffer) { r.record("BindRenderbuffer", rb) }

func (r *Recorder) RenderbufferStorage(format uint32, width, height int32) {
	r.record("RenderbufferStorage", format, width, height)
}

func (r *Recorder) DeleteRenderbuffer(rb gpu.Renderbuffer) { r.record("DeleteRenderbuffer", rb) }
