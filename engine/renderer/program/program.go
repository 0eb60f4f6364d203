package program

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"go.uber.org/zap"
)

// ErrLinkFailed is returned when shaders compile or link unsuccessfully.
var ErrLinkFailed = errors.New("program: shader compile or link failed")

// program is the implementation of the Program interface.
// It owns one GPU program object plus the two shader objects attached to it.
type program struct {
	ctx gpu.Context
	key string

	handle   gpu.Program
	vertex   gpu.Shader
	fragment gpu.Shader

	// created is true once the program linked successfully; it never resets
	created bool

	attributeLocations map[string]int32
	uniformLocations   map[string]gpu.UniformLocation
}

// Program defines the interface for a linked GPU program. A failed compile or link is
// reported once through the context logger and leaves the program permanently uncreated;
// callers check Created before drawing.
type Program interface {
	// Key returns the name used when logging about the program.
	//
	// Returns:
	//   - string: the program key
	Key() string

	// Handle returns the GPU program object.
	//
	// Returns:
	//   - gpu.Program: the program handle
	Handle() gpu.Program

	// Created reports whether Link succeeded.
	//
	// Returns:
	//   - bool: true when the program can be used for drawing
	Created() bool

	// Link compiles both shader sources, attaches them and links the program. On failure a
	// warning carrying the driver log and the line-numbered source is logged.
	//
	// Parameters:
	//   - vertexSource: processed vertex shader source
	//   - fragmentSource: processed fragment shader source
	//
	// Returns:
	//   - error: an error wrapping ErrLinkFailed when compilation or linking failed
	Link(vertexSource, fragmentSource string) error

	// AttributeLocation resolves and caches an attribute location.
	//
	// Parameters:
	//   - name: the attribute name
	//
	// Returns:
	//   - int32: the location, or -1 if the attribute is inactive or the program is not created
	AttributeLocation(name string) int32

	// SetAttributePointer enables the attribute array and describes a tightly packed float
	// attribute bound to the current array buffer. Enable and divisor state belong to the bound
	// vertex array, so both are issued on every call; the divisor is reset to 0 for per-vertex
	// data whenever instancing is available.
	//
	// Parameters:
	//   - name: the attribute name
	//   - itemSize: components per vertex
	//   - divisor: per-instance advance rate, 0 for per-vertex data
	SetAttributePointer(name string, itemSize int, divisor int)

	// UniformLocation resolves and caches a uniform location.
	//
	// Parameters:
	//   - name: the uniform name
	//
	// Returns:
	//   - gpu.UniformLocation: the location, or -1 if the uniform is inactive or the program is not created
	UniformLocation(name string) gpu.UniformLocation

	// Bind makes the program current.
	Bind()

	// Dispose disables the attribute arrays of every resolved location, detaches and deletes its
	// shaders and deletes the program.
	Dispose()
}

var _ Program = &program{}

// NewProgram creates an empty GPU program object.
//
// Parameters:
//   - ctx: the graphics context
//   - key: the name used in log messages
//
// Returns:
//   - Program: the unlinked program
func NewProgram(ctx gpu.Context, key string) Program {
	return &program{
		ctx:                ctx,
		key:                key,
		handle:             ctx.CreateProgram(),
		attributeLocations: map[string]int32{},
		uniformLocations:   map[string]gpu.UniformLocation{},
	}
}

func (p *program) Key() string {
	return p.key
}

func (p *program) Handle() gpu.Program {
	return p.handle
}

func (p *program) Created() bool {
	return p.created
}

// compile builds one shader object, logging and returning an error on failure.
func (p *program) compile(t shader.ShaderType, source string) (gpu.Shader, error) {
	s := p.ctx.CreateShader(t.Kind())
	p.ctx.ShaderSource(s, source)
	p.ctx.CompileShader(s)
	if !p.ctx.ShaderCompileStatus(s) {
		log := p.ctx.ShaderInfoLog(s)
		p.ctx.Logger().Warn("failed to compile shader",
			zap.String("program", p.key),
			zap.Stringer("shader", t),
			zap.String("log", log),
			zap.String("source", shader.AddLineNumbers(source)),
		)
		p.ctx.DeleteShader(s)
		return 0, fmt.Errorf("%w: %s %s shader: %s", ErrLinkFailed, p.key, t, log)
	}
	return s, nil
}

func (p *program) Link(vertexSource, fragmentSource string) error {
	if p.created {
		return nil
	}

	vs, err := p.compile(shader.ShaderTypeVertex, vertexSource)
	if err != nil {
		return err
	}
	fs, err := p.compile(shader.ShaderTypeFragment, fragmentSource)
	if err != nil {
		p.ctx.DeleteShader(vs)
		return err
	}
	p.vertex, p.fragment = vs, fs

	p.ctx.AttachShader(p.handle, vs)
	p.ctx.AttachShader(p.handle, fs)
	p.ctx.LinkProgram(p.handle)

	if !p.ctx.ProgramLinkStatus(p.handle) {
		log := p.ctx.ProgramInfoLog(p.handle)
		p.ctx.Logger().Warn("failed to link program",
			zap.String("program", p.key),
			zap.String("log", log),
			zap.String("vertex", shader.AddLineNumbers(vertexSource)),
			zap.String("fragment", shader.AddLineNumbers(fragmentSource)),
		)
		return fmt.Errorf("%w: %s: %s", ErrLinkFailed, p.key, log)
	}

	p.created = true
	return nil
}

func (p *program) AttributeLocation(name string) int32 {
	if !p.created {
		return -1
	}
	if loc, ok := p.attributeLocations[name]; ok {
		return loc
	}
	loc := p.ctx.GetAttribLocation(p.handle, name)
	p.attributeLocations[name] = loc
	return loc
}

func (p *program) SetAttributePointer(name string, itemSize int, divisor int) {
	loc := p.AttributeLocation(name)
	if loc < 0 {
		return
	}
	p.ctx.EnableVertexAttribArray(uint32(loc))
	p.ctx.VertexAttribPointer(uint32(loc), int32(itemSize), gpu.Float, false, 0, 0)
	if p.ctx.Capabilities().Instancing {
		p.ctx.VertexAttribDivisor(uint32(loc), uint32(divisor))
	}
}

func (p *program) UniformLocation(name string) gpu.UniformLocation {
	if !p.created {
		return -1
	}
	if loc, ok := p.uniformLocations[name]; ok {
		return loc
	}
	loc := p.ctx.GetUniformLocation(p.handle, name)
	p.uniformLocations[name] = loc
	return loc
}

func (p *program) Bind() {
	p.ctx.UseProgram(p.handle)
}

func (p *program) Dispose() {
	if p.handle == 0 {
		return
	}
	for _, loc := range p.attributeLocations {
		if loc >= 0 {
			p.ctx.DisableVertexAttribArray(uint32(loc))
		}
	}
	for _, s := range []gpu.Shader{p.vertex, p.fragment} {
		if s != 0 {
			p.ctx.DetachShader(p.handle, s)
			p.ctx.DeleteShader(s)
		}
	}
	p.ctx.DeleteProgram(p.handle)

	p.handle = 0
	p.vertex, p.fragment = 0, 0
	p.created = false
	p.attributeLocations = map[string]int32{}
	p.uniformLocations = map[string]gpu.UniformLocation{}
}
