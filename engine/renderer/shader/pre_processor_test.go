package shader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessReplacesEveryHook(t *testing.T) {
	pp := NewPreProcessor("highp", []string{DefineUVs, DefineNormals}, Hooks{
		Name:         "grid",
		VertexPre:    "uniform float uTime;",
		VertexMain:   "transformed.y += sin(uTime);",
		VertexEnd:    "// vertex end",
		FragmentPre:  "uniform sampler2D uMap;",
		FragmentMain: "color = texture(uMap, vUv).rgb;",
		FragmentEnd:  "// fragment end",
	})

	for _, template := range []string{BaseVertexShader, BaseFragmentShader} {
		out, leftovers := pp.Process(template)
		require.Empty(t, leftovers)
		assert.NotContains(t, out, hookPrefix)
		assert.True(t, strings.HasPrefix(out, "#version 410 core\n"))
		assert.Contains(t, out, "#define SHADER_NAME grid")
		assert.Contains(t, out, "precision highp float;")
		assert.Contains(t, out, "#define HAS_UVS \n#define HAS_NORMALS \n")
		assert.NotContains(t, out, "#define HAS_VERTEX_COLORS")
	}

	vert, leftovers := pp.Process(BaseVertexShader)
	require.Empty(t, leftovers)
	assert.Contains(t, vert, "transformed.y += sin(uTime);")
	assert.NotContains(t, vert, "uniform sampler2D uMap;")
}

func TestProcessIsSinglePass(t *testing.T) {
	pp := NewPreProcessor("mediump", nil, Hooks{VertexMain: "// literal " + HookVertexMain})

	out, leftovers := pp.Process("void main() { <HOOK_VERTEX_MAIN> }")
	assert.Equal(t, "void main() { // literal <HOOK_VERTEX_MAIN> }", out)
	assert.Equal(t, []Leftover{{Line: 1, Token: HookVertexMain}}, leftovers)
}

func TestProcessPassesUnknownHooksThrough(t *testing.T) {
	pp := NewPreProcessor("highp", nil, Hooks{})

	src := "#version 410 core\n<HOOK_NAME>\n<HOOK_VERTX_MAIN> // see <HOOK_OTHER>\nvoid main() {}\n"
	out, leftovers := pp.Process(src)
	assert.Contains(t, out, "#define SHADER_NAME")
	assert.Contains(t, out, "<HOOK_VERTX_MAIN> // see <HOOK_OTHER>")
	assert.Contains(t, out, "void main() {}")
	require.Len(t, leftovers, 2)
	assert.Equal(t, "line 3: <HOOK_VERTX_MAIN>", leftovers[0].String())
	assert.Equal(t, Leftover{Line: 3, Token: "<HOOK_OTHER>"}, leftovers[1])
}

func TestDefines(t *testing.T) {
	pp := NewPreProcessor("highp", []string{DefineVertexColors}, Hooks{})
	assert.Equal(t, []string{DefineVertexColors}, pp.Defines())
}

func TestAddLineNumbers(t *testing.T) {
	src := strings.Repeat("x\n", 10) + "y"
	out := strings.Split(AddLineNumbers(src), "\n")

	require.Len(t, out, 11)
	assert.Equal(t, " 1: x", out[0])
	assert.Equal(t, "11: y", out[10])
}

func TestShaderType(t *testing.T) {
	assert.Equal(t, "vertex", ShaderTypeVertex.String())
	assert.Equal(t, "fragment", ShaderTypeFragment.String())
	assert.NotEqual(t, ShaderTypeVertex.Kind(), ShaderTypeFragment.Kind())
}

func TestReadSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.frag")
	require.NoError(t, os.WriteFile(path, []byte(BaseFragmentShader), 0o644))

	src, err := ReadSource(path)
	require.NoError(t, err)
	assert.Equal(t, BaseFragmentShader, src)

	_, err = ReadSource(filepath.Join(t.TempDir(), "missing.frag"))
	assert.Error(t, err)
}
