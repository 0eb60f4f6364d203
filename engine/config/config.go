// Package config loads renderer, camera, window and material settings from a TOML or YAML file
// and converts them into the functional options of the respective packages.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for files whose extension is neither TOML nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Format is the encoding of a config document.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from a file extension.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - Format: the format
//   - error: ErrUnsupportedFormat for any extension other than .toml, .yaml or .yml
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
}

// Config is the root of a config document. Every section is optional.
type Config struct {
	Renderer  RendererConfig   `toml:"renderer" yaml:"renderer"`
	Camera    CameraConfig     `toml:"camera" yaml:"camera"`
	Window    WindowConfig     `toml:"window" yaml:"window"`
	Materials []MaterialConfig `toml:"materials" yaml:"materials"`

	// dir is the directory of the loaded file, used to resolve shader paths.
	dir string
}

// RendererConfig mirrors the renderer options. Unset fields keep the renderer defaults.
type RendererConfig struct {
	Width                 int       `toml:"width" yaml:"width"`
	Height                int       `toml:"height" yaml:"height"`
	AspectRatio           float32   `toml:"aspect_ratio" yaml:"aspect_ratio"`
	Alpha                 *bool     `toml:"alpha" yaml:"alpha"`
	Antialias             *bool     `toml:"antialias" yaml:"antialias"`
	Depth                 *bool     `toml:"depth" yaml:"depth"`
	Stencil               *bool     `toml:"stencil" yaml:"stencil"`
	PremultipliedAlpha    *bool     `toml:"premultiplied_alpha" yaml:"premultiplied_alpha"`
	PreserveDrawingBuffer *bool     `toml:"preserve_drawing_buffer" yaml:"preserve_drawing_buffer"`
	PowerPreference       string    `toml:"power_preference" yaml:"power_preference"`
	PixelRatio            float32   `toml:"pixel_ratio" yaml:"pixel_ratio"`
	ClearColor            []float32 `toml:"clear_color" yaml:"clear_color"`
	AutoClear             *bool     `toml:"auto_clear" yaml:"auto_clear"`
	PresentMode           string    `toml:"present_mode" yaml:"present_mode"`
}

// CameraConfig mirrors the camera options. Projection is "perspective" (default) or
// "orthographic"; the bounds apply to the orthographic projection only.
type CameraConfig struct {
	Projection  string    `toml:"projection" yaml:"projection"`
	Near        *float32  `toml:"near" yaml:"near"`
	Far         *float32  `toml:"far" yaml:"far"`
	FieldOfView *float32  `toml:"field_of_view" yaml:"field_of_view"`
	Aspect      *float32  `toml:"aspect" yaml:"aspect"`
	Left        *float32  `toml:"left" yaml:"left"`
	Right       *float32  `toml:"right" yaml:"right"`
	Bottom      *float32  `toml:"bottom" yaml:"bottom"`
	Top         *float32  `toml:"top" yaml:"top"`
	Position    []float32 `toml:"position" yaml:"position"`
	Target      []float32 `toml:"target" yaml:"target"`
	Up          []float32 `toml:"up" yaml:"up"`
}

// WindowConfig mirrors the window options.
type WindowConfig struct {
	Title     string `toml:"title" yaml:"title"`
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	MinWidth  int    `toml:"min_width" yaml:"min_width"`
	MinHeight int    `toml:"min_height" yaml:"min_height"`
	MaxWidth  int    `toml:"max_width" yaml:"max_width"`
	MaxHeight int    `toml:"max_height" yaml:"max_height"`
	Resizable *bool  `toml:"resizable" yaml:"resizable"`
}

// MaterialConfig mirrors the material options. Shader paths are relative to the config file.
type MaterialConfig struct {
	Name           string          `toml:"name" yaml:"name"`
	VertexShader   string          `toml:"vertex_shader" yaml:"vertex_shader"`
	FragmentShader string          `toml:"fragment_shader" yaml:"fragment_shader"`
	DrawType       string          `toml:"draw_type" yaml:"draw_type"`
	Culling        string          `toml:"culling" yaml:"culling"`
	Blending       *bool           `toml:"blending" yaml:"blending"`
	BlendFunc      []string        `toml:"blend_func" yaml:"blend_func"`
	Diffuse        []float32       `toml:"diffuse" yaml:"diffuse"`
	Hooks          HooksConfig     `toml:"hooks" yaml:"hooks"`
	Uniforms       []UniformConfig `toml:"uniforms" yaml:"uniforms"`
}

// HooksConfig holds the GLSL snippets injected into the shader templates.
type HooksConfig struct {
	VertexPre    string `toml:"vertex_pre" yaml:"vertex_pre"`
	VertexMain   string `toml:"vertex_main" yaml:"vertex_main"`
	VertexEnd    string `toml:"vertex_end" yaml:"vertex_end"`
	FragmentPre  string `toml:"fragment_pre" yaml:"fragment_pre"`
	FragmentMain string `toml:"fragment_main" yaml:"fragment_main"`
	FragmentEnd  string `toml:"fragment_end" yaml:"fragment_end"`
}

// UniformConfig is one uniform entry. Type is a uniform tag such as "3f" or "Matrix4fv";
// texture tags are rejected since textures come from decoded images, not config.
type UniformConfig struct {
	Name  string    `toml:"name" yaml:"name"`
	Type  string    `toml:"type" yaml:"type"`
	Value []float64 `toml:"value" yaml:"value"`
}

// Load reads and decodes a config file, picking the format from its extension.
//
// Parameters:
//   - path: the file path
//
// Returns:
//   - *Config: the decoded config
//   - error: ErrUnsupportedFormat, a read error or a decode error
func Load(path string) (*Config, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", path, err)
	}
	cfg.dir = filepath.Dir(path)
	return cfg, nil
}

// Decode parses a config document. Unknown keys are rejected.
//
// Parameters:
//   - data: the document
//   - format: the encoding
//
// Returns:
//   - *Config: the decoded config
//   - error: ErrUnsupportedFormat or a decode error
func Decode(data []byte, format Format) (*Config, error) {
	cfg := &Config{}
	switch format {
	case FormatTOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(cfg); err != nil {
			return nil, err
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return cfg, nil
}

// Dir returns the directory the config was loaded from, empty for decoded documents.
func (c *Config) Dir() string {
	return c.dir
}
