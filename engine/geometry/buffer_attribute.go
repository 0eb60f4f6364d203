package geometry

import (
	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// BufferAttribute owns one GPU buffer holding vertex or index data.
type BufferAttribute interface {
	// Buffer returns the GPU buffer handle.
	Buffer() gpu.Buffer

	// Target returns the binding point, ArrayBuffer for vertex data or ElementArrayBuffer for indices.
	Target() gpu.BufferTarget

	// DataType returns the component type of the stored data.
	DataType() gpu.DataType

	// ItemSize returns the number of components per item, 3 for positions or 1 for indices.
	ItemSize() int

	// NumItems returns the number of items, len(data) / ItemSize.
	NumItems() int

	// Divisor returns the per-instance advance rate, 0 for per-vertex attributes.
	Divisor() int

	// Bind binds the buffer to its target.
	Bind()

	// Update re-uploads float data starting at a component offset without reallocating the
	// buffer. Data past the end of the buffer is ignored.
	//
	// Parameters:
	//   - offset: first component to overwrite
	//   - data: replacement components
	Update(offset int, data []float32)

	// Dispose releases the GPU buffer.
	Dispose()
}

type bufferAttribute struct {
	ctx      gpu.Context
	buffer   gpu.Buffer
	target   gpu.BufferTarget
	dataType gpu.DataType
	usage    gpu.BufferUsage
	itemSize int
	length   int
	divisor  int
}

var _ BufferAttribute = &bufferAttribute{}

type numeric interface {
	~float32 | ~uint16 | ~uint32
}

func newBufferAttribute[T numeric](ctx gpu.Context, target gpu.BufferTarget, dataType gpu.DataType, data []T, itemSize int, options ...BufferAttributeBuilderOption) *bufferAttribute {
	if itemSize <= 0 {
		itemSize = 1
	}
	b := &bufferAttribute{
		ctx:      ctx,
		target:   target,
		dataType: dataType,
		usage:    gpu.StaticDraw,
		itemSize: itemSize,
		length:   len(data),
	}

	for _, option := range options {
		option(b)
	}

	b.buffer = ctx.CreateBuffer()
	ctx.BindBuffer(target, b.buffer)
	ctx.BufferData(target, common.SliceToBytes(data), b.usage)
	return b
}

// NewFloat32Attribute uploads per-vertex float data into a new array buffer.
//
// Parameters:
//   - ctx: the graphics context
//   - data: the flattened components
//   - itemSize: components per vertex
//   - options: functional options for usage and instancing
//
// Returns:
//   - BufferAttribute: the uploaded attribute
func NewFloat32Attribute(ctx gpu.Context, data []float32, itemSize int, options ...BufferAttributeBuilderOption) BufferAttribute {
	return newBufferAttribute(ctx, gpu.ArrayBuffer, gpu.Float, data, itemSize, options...)
}

// NewUint16IndexAttribute uploads 16-bit triangle indices into a new element buffer.
//
// Parameters:
//   - ctx: the graphics context
//   - data: the indices, three per triangle
//   - options: functional options for usage
//
// Returns:
//   - BufferAttribute: the uploaded attribute
func NewUint16IndexAttribute(ctx gpu.Context, data []uint16, options ...BufferAttributeBuilderOption) BufferAttribute {
	return newBufferAttribute(ctx, gpu.ElementArrayBuffer, gpu.UnsignedShort, data, 1, options...)
}

// NewUint32IndexAttribute uploads 32-bit triangle indices into a new element buffer.
//
// Parameters:
//   - ctx: the graphics context
//   - data: the indices, three per triangle
//   - options: functional options for usage
//
// Returns:
//   - BufferAttribute: the uploaded attribute
func NewUint32IndexAttribute(ctx gpu.Context, data []uint32, options ...BufferAttributeBuilderOption) BufferAttribute {
	return newBufferAttribute(ctx, gpu.ElementArrayBuffer, gpu.UnsignedInt, data, 1, options...)
}

func (b *bufferAttribute) Buffer() gpu.Buffer       { return b.buffer }
func (b *bufferAttribute) Target() gpu.BufferTarget { return b.target }
func (b *bufferAttribute) DataType() gpu.DataType   { return b.dataType }
func (b *bufferAttribute) ItemSize() int            { return b.itemSize }
func (b *bufferAttribute) NumItems() int            { return b.length / b.itemSize }
func (b *bufferAttribute) Divisor() int             { return b.divisor }
func (b *bufferAttribute) Bind()                    { b.ctx.BindBuffer(b.target, b.buffer) }

func (b *bufferAttribute) Update(offset int, data []float32) {
	if b.dataType != gpu.Float || offset < 0 || offset >= b.length {
		return
	}
	if end := offset + len(data); end > b.length {
		data = data[:b.length-offset]
	}
	b.ctx.BindBuffer(b.target, b.buffer)
	b.ctx.BufferSubData(b.target, offset*b.dataType.Size(), common.SliceToBytes(data))
}

func (b *bufferAttribute) Dispose() {
	if b.buffer == 0 {
		return
	}
	b.ctx.DeleteBuffer(b.buffer)
	b.buffer = 0
}
