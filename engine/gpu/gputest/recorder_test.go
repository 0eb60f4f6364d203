package gputest

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderLocationsArePerProgram(t *testing.T) {
	r := NewRecorder()
	a := r.CreateProgram()
	b := r.CreateProgram()

	assert.Equal(t, gpu.UniformLocation(0), r.GetUniformLocation(a, "uModelMatrix"))
	assert.Equal(t, gpu.UniformLocation(1), r.GetUniformLocation(a, "uColor"))
	assert.Equal(t, gpu.UniformLocation(0), r.GetUniformLocation(a, "uModelMatrix"))
	assert.Equal(t, gpu.UniformLocation(0), r.GetUniformLocation(b, "uColor"))

	r.Inactive["uUnused"] = true
	assert.Equal(t, gpu.UniformLocation(-1), r.GetUniformLocation(a, "uUnused"))
	assert.Equal(t, int32(-1), r.GetAttribLocation(a, "uUnused"))
}

func TestRecorderLinkFollowsCompile(t *testing.T) {
	r := NewRecorder()
	r.FailCompile = true
	r.InfoLog = "0:1: syntax error"

	p := r.CreateProgram()
	s := r.CreateShader(gpu.VertexShader)
	r.CompileShader(s)
	r.AttachShader(p, s)
	r.LinkProgram(p)

	assert.False(t, r.ShaderCompileStatus(s))
	assert.Equal(t, "0:1: syntax error", r.ShaderInfoLog(s))
	assert.False(t, r.ProgramLinkStatus(p))
}

func TestRecorderOrderAndObserver(t *testing.T) {
	r := NewRecorder()
	var seen []string
	r.OnCall = func(c Call) { seen = append(seen, c.Name) }

	buf := r.CreateBuffer()
	r.BindBuffer(gpu.ArrayBuffer, buf)
	r.BufferData(gpu.ArrayBuffer, make([]byte, 12), gpu.StaticDraw)
	r.DeleteBuffer(buf)

	require.Equal(t, []string{"CreateBuffer", "BindBuffer", "BufferData", "DeleteBuffer"}, r.Names())
	assert.Equal(t, r.Names(), seen)
	assert.Equal(t, 12, r.BufferSize(buf))
	assert.Equal(t, 1, r.Index("BindBuffer"))
	assert.Equal(t, 3, r.LastIndex("DeleteBuffer"))

	r.Reset()
	assert.Empty(t, r.Calls())
}

func TestRecorderTracksVertexArrayState(t *testing.T) {
	r := NewRecorder()
	buf := r.CreateBuffer()
	vao := r.CreateVertexArray()

	r.BindVertexArray(vao)
	r.BindBuffer(gpu.ArrayBuffer, buf)
	r.EnableVertexAttribArray(2)
	r.VertexAttribPointer(2, 3, gpu.Float, false, 0, 0)
	r.VertexAttribDivisor(2, 1)
	r.BindVertexArray(0)

	assert.Equal(t, gpu.VertexArray(0), r.BoundVertexArray())
	assert.Equal(t, map[uint32]VertexAttrib{
		2: {Enabled: true, Size: 3, Buffer: buf, Divisor: 1},
	}, r.VertexArrayState(vao))
	assert.Empty(t, r.VertexArrayState(0))

	r.DisableVertexAttribArray(1)
	assert.Equal(t, map[uint32]VertexAttrib{1: {}}, r.VertexArrayState(0))

	r.DeleteVertexArray(vao)
	assert.Empty(t, r.VertexArrayState(vao))
}
