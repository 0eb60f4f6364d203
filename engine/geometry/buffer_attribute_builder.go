package geometry

import "github.com/Carmen-Shannon/oxy-gl/engine/gpu"

// BufferAttributeBuilderOption is a functional option for configuring a BufferAttribute.
type BufferAttributeBuilderOption func(*bufferAttribute)

// WithUsage sets the usage hint for the buffer's data store.
// Use gpu.DynamicDraw for attributes updated every frame.
//
// Parameters:
//   - usage: the usage hint
//
// Returns:
//   - BufferAttributeBuilderOption: a function that sets the usage
func WithUsage(usage gpu.BufferUsage) BufferAttributeBuilderOption {
	return func(b *bufferAttribute) {
		b.usage = usage
	}
}

// WithDivisor makes the attribute advance once per divisor instances instead of once per vertex.
//
// Parameters:
//   - divisor: instances per item, 1 for one item per instance
//
// Returns:
//   - BufferAttributeBuilderOption: a function that sets the divisor
func WithDivisor(divisor int) BufferAttributeBuilderOption {
	return func(b *bufferAttribute) {
		b.divisor = divisor
	}
}
