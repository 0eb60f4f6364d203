package renderer

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu/gputest"
	"github.com/Carmen-Shannon/oxy-gl/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRenderTarget(t *testing.T) {
	rec := gputest.NewRecorder()
	target := NewRenderTarget(rec, 64, 32, WithTargetPixelRatio(2))

	fb := target.Framebuffer()
	tex := target.Texture()
	require.NotZero(t, fb)

	storage := rec.Named("RenderbufferStorage")
	require.Len(t, storage, 1)
	assert.Equal(t, []any{gpu.DepthComponent16, int32(128), int32(64)}, storage[0].Args)

	w, h := tex.Size()
	assert.Equal(t, 128, w)
	assert.Equal(t, 64, h)

	color := rec.Named("FramebufferTexture2D")
	require.Len(t, color, 1)
	assert.Equal(t, []any{gpu.ColorAttachment0, gpu.Texture2D, tex.Handle()}, color[0].Args)
	assert.Len(t, rec.Named("FramebufferRenderbuffer"), 1)

	binds := rec.Named("BindFramebuffer")
	require.Len(t, binds, 2)
	assert.Equal(t, []any{fb}, binds[0].Args)
	assert.Equal(t, []any{gpu.Framebuffer(0)}, binds[1].Args)
	assert.Greater(t, rec.LastIndex("BindFramebuffer"), rec.Index("FramebufferRenderbuffer"))
}

func TestRenderTargetRender(t *testing.T) {
	rec := gputest.NewRecorder()
	target := NewRenderTarget(rec, 10, 20)
	rec.Reset()

	var log []string
	scn := scene.NewScene("offscreen", scene.WithObjects(&fakeDrawable{name: "a", log: &log}))
	target.Render(scn, camera.NewCamera())

	assert.Equal(t, []string{"Viewport", "BindFramebuffer", "ClearColor", "Clear", "BindFramebuffer"}, rec.Names())
	assert.Equal(t, []any{int32(0), int32(0), int32(10), int32(20)}, rec.Calls()[0].Args)
	assert.Equal(t, []any{gpu.Framebuffer(0)}, rec.Calls()[4].Args)
	assert.Equal(t, []string{"draw a"}, log)

	rec.Reset()
	target.SetAutoClear(false)
	target.Render(scn, nil)
	assert.Equal(t, []string{"Viewport", "BindFramebuffer", "BindFramebuffer"}, rec.Names())
}

func TestRenderTargetSetSize(t *testing.T) {
	rec := gputest.NewRecorder()
	target := NewRenderTarget(rec, 10, 10)
	rec.Reset()

	target.SetSize(10, 10)
	assert.Empty(t, rec.Calls())

	target.SetSize(30, 15)
	assert.Equal(t, 1, rec.Count("TexImage2D"))
	storage := rec.Named("RenderbufferStorage")
	require.Len(t, storage, 1)
	assert.Equal(t, []any{gpu.DepthComponent16, int32(30), int32(15)}, storage[0].Args)

	w, h := target.Size()
	assert.Equal(t, 30, w)
	assert.Equal(t, 15, h)
}

func TestRenderTargetDispose(t *testing.T) {
	rec := gputest.NewRecorder()
	target := NewRenderTarget(rec, 10, 10)
	rec.Reset()

	target.Dispose()
	assert.Equal(t, []string{"DeleteFramebuffer", "DeleteRenderbuffer", "DeleteTexture"}, rec.Names())

	rec.Reset()
	target.Dispose()
	target.Render(nil, nil)
	assert.Empty(t, rec.Calls())
}
