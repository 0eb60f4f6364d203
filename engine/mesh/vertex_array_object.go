package mesh

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

type vertexArrayObject struct {
	ctx     gpu.Context
	handle  gpu.VertexArray
	enabled bool
}

// VertexArrayObject records attribute pointers and the index buffer binding once so a draw
// only has to bind one object. Without the capability every method is a no-op and callers
// fall back to binding attributes manually.
type VertexArrayObject interface {
	// Enabled reports whether the context supports vertex array objects.
	Enabled() bool

	// Handle returns the GPU object, zero when disabled or disposed.
	Handle() gpu.VertexArray

	// Bind makes the vertex array current.
	Bind()

	// Unbind restores the default vertex array.
	Unbind()

	// Dispose deletes the GPU object.
	Dispose()
}

var _ VertexArrayObject = &vertexArrayObject{}

// NewVertexArrayObject creates a vertex array when the context advertises support for it.
//
// Parameters:
//   - ctx: the graphics context
//
// Returns:
//   - VertexArrayObject: the wrapper, disabled if unsupported
func NewVertexArrayObject(ctx gpu.Context) VertexArrayObject {
	v := &vertexArrayObject{
		ctx:     ctx,
		enabled: ctx.Capabilities().VertexArrayObject,
	}
	if v.enabled {
		v.handle = ctx.CreateVertexArray()
	}
	return v
}

func (v *vertexArrayObject) Enabled() bool {
	return v.enabled && v.handle != 0
}

func (v *vertexArrayObject) Handle() gpu.VertexArray {
	return v.handle
}

func (v *vertexArrayObject) Bind() {
	if v.Enabled() {
		v.ctx.BindVertexArray(v.handle)
	}
}

func (v *vertexArrayObject) Unbind() {
	if v.Enabled() {
		v.ctx.BindVertexArray(0)
	}
}

func (v *vertexArrayObject) Dispose() {
	if v.handle != 0 {
		v.ctx.DeleteVertexArray(v.handle)
	}
	v.handle = 0
}
