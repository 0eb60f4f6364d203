package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Carmen-Shannon/oxy-gl/common"
	"github.com/Carmen-Shannon/oxy-gl/engine/camera"
	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/material"
	"github.com/Carmen-Shannon/oxy-gl/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-gl/engine/window"
	"github.com/go-gl/mathgl/mgl32"
)

var (
	powerPreferences = map[string]gpu.PowerPreference{
		"default":          gpu.PowerPreferenceDefault,
		"high-performance": gpu.PowerPreferenceHighPerformance,
		"low-power":        gpu.PowerPreferenceLowPower,
	}

	presentModes = map[string]renderer.PresentMode{
		"vsync":    renderer.PresentModeVSync,
		"uncapped": renderer.PresentModeUncapped,
	}

	drawModes = map[string]gpu.DrawMode{
		"points":         gpu.DrawPoints,
		"lines":          gpu.DrawLines,
		"line_loop":      gpu.DrawLineLoop,
		"line_strip":     gpu.DrawLineStrip,
		"triangles":      gpu.DrawTriangles,
		"triangle_strip": gpu.DrawTriangleStrip,
		"triangle_fan":   gpu.DrawTriangleFan,
	}

	cullModes = map[string]gpu.CullMode{
		"none":           gpu.CullNone,
		"front":          gpu.CullFront,
		"back":           gpu.CullBack,
		"front_and_back": gpu.CullFrontAndBack,
	}

	blendFactors = map[string]gpu.BlendFactor{
		"zero":                gpu.BlendZero,
		"one":                 gpu.BlendOne,
		"src_color":           gpu.BlendSrcColor,
		"one_minus_src_color": gpu.BlendOneMinusSrcColor,
		"src_alpha":           gpu.BlendSrcAlpha,
		"one_minus_src_alpha": gpu.BlendOneMinusSrcAlpha,
		"dst_alpha":           gpu.BlendDstAlpha,
		"one_minus_dst_alpha": gpu.BlendOneMinusDstAlpha,
		"dst_color":           gpu.BlendDstColor,
		"one_minus_dst_color": gpu.BlendOneMinusDstColor,
	}
)

func lookup[T any](table map[string]T, field, value string) (T, error) {
	v, ok := table[strings.ToLower(value)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s: unknown value %q", field, value)
	}
	return v, nil
}

func vec3(field string, v []float32) (mgl32.Vec3, error) {
	if len(v) != 3 {
		return mgl32.Vec3{}, fmt.Errorf("%s: expected 3 components, got %d", field, len(v))
	}
	return mgl32.Vec3{v[0], v[1], v[2]}, nil
}

// RendererOptions converts the renderer section.
//
// Returns:
//   - []renderer.RendererBuilderOption: the options for renderer.NewRenderer
//   - error: an error naming the first invalid field
func (c *Config) RendererOptions() ([]renderer.RendererBuilderOption, error) {
	rc := c.Renderer
	var opts []renderer.RendererBuilderOption

	if rc.Width > 0 {
		opts = append(opts, renderer.WithWidth(rc.Width))
	}
	if rc.Height > 0 {
		opts = append(opts, renderer.WithHeight(rc.Height))
	}
	if rc.AspectRatio > 0 {
		opts = append(opts, renderer.WithAspectRatio(rc.AspectRatio))
	}
	if rc.Alpha != nil {
		opts = append(opts, renderer.WithAlpha(*rc.Alpha))
	}
	if rc.Antialias != nil {
		opts = append(opts, renderer.WithAntialias(*rc.Antialias))
	}
	if rc.Depth != nil {
		opts = append(opts, renderer.WithDepth(*rc.Depth))
	}
	if rc.Stencil != nil {
		opts = append(opts, renderer.WithStencil(*rc.Stencil))
	}
	if rc.PremultipliedAlpha != nil {
		opts = append(opts, renderer.WithPremultipliedAlpha(*rc.PremultipliedAlpha))
	}
	if rc.PreserveDrawingBuffer != nil {
		opts = append(opts, renderer.WithPreserveDrawingBuffer(*rc.PreserveDrawingBuffer))
	}
	if rc.PowerPreference != "" {
		p, err := lookup(powerPreferences, "renderer.power_preference", rc.PowerPreference)
		if err != nil {
			return nil, err
		}
		opts = append(opts, renderer.WithPowerPreference(p))
	}
	if rc.PixelRatio > 0 {
		opts = append(opts, renderer.WithPixelRatio(rc.PixelRatio))
	}
	if rc.ClearColor != nil {
		if len(rc.ClearColor) != 4 {
			return nil, fmt.Errorf("renderer.clear_color: expected 4 components, got %d", len(rc.ClearColor))
		}
		cc := rc.ClearColor
		opts = append(opts, renderer.WithClearColor(cc[0], cc[1], cc[2], cc[3]))
	}
	if rc.AutoClear != nil {
		opts = append(opts, renderer.WithAutoClear(*rc.AutoClear))
	}
	if rc.PresentMode != "" {
		m, err := lookup(presentModes, "renderer.present_mode", rc.PresentMode)
		if err != nil {
			return nil, err
		}
		opts = append(opts, renderer.WithPresentMode(m))
	}
	return opts, nil
}

// CameraOptions converts the camera section.
//
// Returns:
//   - []camera.CameraBuilderOption: the options for camera.NewCamera
//   - error: an error naming the first invalid field
func (c *Config) CameraOptions() ([]camera.CameraBuilderOption, error) {
	cc := c.Camera
	var opts []camera.CameraBuilderOption

	switch strings.ToLower(cc.Projection) {
	case "", "perspective":
		p := camera.DefaultPerspective()
		set(&p.FieldOfView, cc.FieldOfView)
		set(&p.Aspect, cc.Aspect)
		set(&p.Near, cc.Near)
		set(&p.Far, cc.Far)
		opts = append(opts, camera.WithProjection(p))
	case "orthographic":
		o := camera.DefaultOrthographic()
		set(&o.Left, cc.Left)
		set(&o.Right, cc.Right)
		set(&o.Bottom, cc.Bottom)
		set(&o.Top, cc.Top)
		set(&o.Near, cc.Near)
		set(&o.Far, cc.Far)
		opts = append(opts, camera.WithProjection(o))
	default:
		return nil, fmt.Errorf("camera.projection: unknown value %q", cc.Projection)
	}

	for _, v := range []struct {
		field  string
		values []float32
		option func(x, y, z float32) camera.CameraBuilderOption
	}{
		{"camera.position", cc.Position, camera.WithPosition},
		{"camera.target", cc.Target, camera.WithTarget},
		{"camera.up", cc.Up, camera.WithUp},
	} {
		if v.values == nil {
			continue
		}
		p, err := vec3(v.field, v.values)
		if err != nil {
			return nil, err
		}
		opts = append(opts, v.option(p[0], p[1], p[2]))
	}
	return opts, nil
}

func set(dst *float32, src *float32) {
	if src != nil {
		*dst = *src
	}
}

// WindowOptions converts the window section.
//
// Returns:
//   - []window.WindowBuilderOption: the options for window.NewWindow
func (c *Config) WindowOptions() []window.WindowBuilderOption {
	wc := c.Window
	var opts []window.WindowBuilderOption

	if wc.Title != "" {
		opts = append(opts, window.WithTitle(wc.Title))
	}
	for _, v := range []struct {
		value  int
		option func(int) window.WindowBuilderOption
	}{
		{wc.Width, window.WithWidth},
		{wc.Height, window.WithHeight},
		{wc.MinWidth, window.WithMinWidth},
		{wc.MinHeight, window.WithMinHeight},
		{wc.MaxWidth, window.WithMaxWidth},
		{wc.MaxHeight, window.WithMaxHeight},
	} {
		if v.value > 0 {
			opts = append(opts, v.option(v.value))
		}
	}
	if wc.Resizable != nil {
		opts = append(opts, window.WithResizable(*wc.Resizable))
	}
	return opts
}

// MaterialOptions converts every material entry, keyed by name. Shader paths are resolved
// against baseDir, or against the config file's directory when baseDir is empty.
//
// Parameters:
//   - baseDir: the directory relative shader paths are resolved against
//
// Returns:
//   - map[string][]material.MaterialBuilderOption: the options for material.NewMaterial per material
//   - error: an error naming the first invalid material field or unreadable shader
func (c *Config) MaterialOptions(baseDir string) (map[string][]material.MaterialBuilderOption, error) {
	baseDir = common.Coalesce(baseDir, c.dir)
	out := make(map[string][]material.MaterialBuilderOption, len(c.Materials))
	for i, mc := range c.Materials {
		if mc.Name == "" {
			return nil, fmt.Errorf("materials[%d]: missing name", i)
		}
		if _, dup := out[mc.Name]; dup {
			return nil, fmt.Errorf("materials[%d]: duplicate name %q", i, mc.Name)
		}
		opts, err := mc.Options(baseDir)
		if err != nil {
			return nil, err
		}
		out[mc.Name] = opts
	}
	return out, nil
}

// Options converts one material entry.
//
// Parameters:
//   - baseDir: the directory relative shader paths are resolved against
//
// Returns:
//   - []material.MaterialBuilderOption: the options for material.NewMaterial
//   - error: an error naming the first invalid field or unreadable shader
func (m MaterialConfig) Options(baseDir string) ([]material.MaterialBuilderOption, error) {
	field := func(name string) string { return fmt.Sprintf("materials.%s.%s", m.Name, name) }
	opts := []material.MaterialBuilderOption{material.WithName(m.Name)}

	if m.VertexShader != "" {
		src, err := shader.ReadSource(resolve(baseDir, m.VertexShader))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field("vertex_shader"), err)
		}
		opts = append(opts, material.WithVertexShader(src))
	}
	if m.FragmentShader != "" {
		src, err := shader.ReadSource(resolve(baseDir, m.FragmentShader))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field("fragment_shader"), err)
		}
		opts = append(opts, material.WithFragmentShader(src))
	}
	if m.DrawType != "" {
		mode, err := lookup(drawModes, field("draw_type"), m.DrawType)
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithDrawType(mode))
	}
	if m.Culling != "" {
		mode, err := lookup(cullModes, field("culling"), m.Culling)
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithCulling(mode))
	}
	if m.Blending != nil {
		opts = append(opts, material.WithBlending(*m.Blending))
	}
	if m.BlendFunc != nil {
		if len(m.BlendFunc) != 2 {
			return nil, fmt.Errorf("%s: expected source and destination factors", field("blend_func"))
		}
		src, err := lookup(blendFactors, field("blend_func"), m.BlendFunc[0])
		if err != nil {
			return nil, err
		}
		dst, err := lookup(blendFactors, field("blend_func"), m.BlendFunc[1])
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithBlendFunc(src, dst))
	}
	if m.Diffuse != nil {
		d, err := vec3(field("diffuse"), m.Diffuse)
		if err != nil {
			return nil, err
		}
		opts = append(opts, material.WithDiffuse(d))
	}

	h := m.Hooks
	opts = append(opts, material.WithHooks(shader.Hooks{
		Name:         m.Name,
		VertexPre:    h.VertexPre,
		VertexMain:   h.VertexMain,
		VertexEnd:    h.VertexEnd,
		FragmentPre:  h.FragmentPre,
		FragmentMain: h.FragmentMain,
		FragmentEnd:  h.FragmentEnd,
	}))

	for _, u := range m.Uniforms {
		t, err := material.ParseUniformType(u.Type)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field("uniforms."+u.Name), err)
		}
		v, err := material.NewUniformValue(t, u.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", field("uniforms."+u.Name), err)
		}
		opts = append(opts, material.WithUniform(u.Name, v))
	}
	return opts, nil
}

func resolve(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
