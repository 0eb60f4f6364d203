package gpu

// GLContextBuilderOption is a functional option for configuring a GL context.
type GLContextBuilderOption func(*glContext)

// WithVertexArrayObjects overrides the vertex array object capability.
// Disabling it forces every mesh onto the per-draw attribute rebinding path.
//
// Parameters:
//   - enabled: whether meshes may record their attribute state in vertex array objects
//
// Returns:
//   - GLContextBuilderOption: a function that applies the capability override
func WithVertexArrayObjects(enabled bool) GLContextBuilderOption {
	return func(c *glContext) {
		c.caps.VertexArrayObject = enabled
	}
}

// WithPrecision overrides the float precision qualifier injected into shader templates.
//
// Parameters:
//   - precision: one of "lowp", "mediump" or "highp"
//
// Returns:
//   - GLContextBuilderOption: a function that applies the precision
func WithPrecision(precision string) GLContextBuilderOption {
	return func(c *glContext) {
		if precision != "" {
			c.caps.Precision = precision
		}
	}
}
