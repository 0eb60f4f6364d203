package shader

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/Carmen-Shannon/oxy-gl/engine/gpu"
)

// ShaderType identifies the pipeline stage a shader source targets.
type ShaderType int

const (
	// ShaderTypeVertex is the vertex shader type, used for vertex processing.
	ShaderTypeVertex ShaderType = iota

	// ShaderTypeFragment is the fragment shader type, used in pair with a vertex shader.
	ShaderTypeFragment
)

// Kind returns the graphics context enum for the stage.
func (t ShaderType) Kind() gpu.ShaderKind {
	if t == ShaderTypeFragment {
		return gpu.FragmentShader
	}
	return gpu.VertexShader
}

func (t ShaderType) String() string {
	switch t {
	case ShaderTypeVertex:
		return "vertex"
	case ShaderTypeFragment:
		return "fragment"
	default:
		return fmt.Sprintf("ShaderType(%d)", int(t))
	}
}

// BaseVertexShader is the default vertex template. It declares the built-in matrices,
// uDiffuse and uCameraPosition, and the optional attribute streams behind HAS_* defines.
//
//go:embed assets/base.vert
var BaseVertexShader string

// BaseFragmentShader is the default fragment template. It outputs the interpolated diffuse
// color; FRAGMENT_MAIN hooks may overwrite color and alpha.
//
//go:embed assets/base.frag
var BaseFragmentShader string

// ReadSource loads a shader template from disk.
//
// Parameters:
//   - path: the file path of the template
//
// Returns:
//   - string: the template source
//   - error: an error if the file could not be read
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader source %s: %w", path, err)
	}
	return string(data), nil
}
