// pre_processor.go implements the shader hook pre-processor. Shader templates carry
// <HOOK_*> placeholders that are replaced by literal substring match with the material's
// name, the context precision, the layout #defines and the material's hook snippets.
package shader

import (
	"fmt"
	"strings"
)

// Hook placeholders recognised in shader templates.
const (
	HookName         = "<HOOK_NAME>"
	HookPrecision    = "<HOOK_PRECISION>"
	HookDefines      = "<HOOK_DEFINES>"
	HookVertexPre    = "<HOOK_VERTEX_PRE>"
	HookVertexMain   = "<HOOK_VERTEX_MAIN>"
	HookVertexEnd    = "<HOOK_VERTEX_END>"
	HookFragmentPre  = "<HOOK_FRAGMENT_PRE>"
	HookFragmentMain = "<HOOK_FRAGMENT_MAIN>"
	HookFragmentEnd  = "<HOOK_FRAGMENT_END>"
)

// Defines injected from the geometry layout.
const (
	DefineUVs          = "HAS_UVS"
	DefineVertexColors = "HAS_VERTEX_COLORS"
	DefineNormals      = "HAS_NORMALS"
)

// hookPrefix marks an unresolved placeholder left in processed output.
const hookPrefix = "<HOOK_"

// Leftover is a placeholder still present after processing, such as a misspelled hook name
// or one quoted in a comment. Leftovers are passed to the compiler untouched.
type Leftover struct {
	// Line is 1-based.
	Line  int
	Token string
}

func (l Leftover) String() string {
	return fmt.Sprintf("line %d: %s", l.Line, l.Token)
}

// Hooks are the snippets a material splices into its shader templates.
type Hooks struct {
	// Name becomes "#define SHADER_NAME <Name>", which drivers show in debuggers.
	Name         string
	VertexPre    string
	VertexMain   string
	VertexEnd    string
	FragmentPre  string
	FragmentMain string
	FragmentEnd  string
}

// preProcessor is the implementation of the PreProcessor interface.
type preProcessor struct {
	// replacer performs every placeholder substitution in a single pass, so hook text is
	// never itself scanned for placeholders.
	replacer *strings.Replacer
	defines  []string
}

// PreProcessor substitutes hook placeholders in shader templates.
type PreProcessor interface {
	// Process replaces every known placeholder in source in a single pass. Unknown or
	// absent placeholders are left as they are.
	//
	// Parameters:
	//   - source: the shader template
	//
	// Returns:
	//   - string: the processed source
	//   - []Leftover: placeholders still present in the processed source, in line order
	Process(source string) (string, []Leftover)

	// Defines returns the preprocessor symbols emitted for <HOOK_DEFINES>, in order.
	//
	// Returns:
	//   - []string: the defined symbols
	Defines() []string
}

var _ PreProcessor = &preProcessor{}

// NewPreProcessor creates a pre-processor for one material compile.
//
// Parameters:
//   - precision: the float precision qualifier, such as "highp"
//   - defines: the symbols to #define, in order
//   - hooks: the material's hook snippets
//
// Returns:
//   - PreProcessor: a ready-to-use pre-processor instance
func NewPreProcessor(precision string, defines []string, hooks Hooks) PreProcessor {
	var defineBlock strings.Builder
	for _, d := range defines {
		fmt.Fprintf(&defineBlock, "#define %s \n", d)
	}

	return &preProcessor{
		replacer: strings.NewReplacer(
			HookPrecision, fmt.Sprintf("precision %s float;", precision),
			HookDefines, defineBlock.String(),
			HookName, fmt.Sprintf("#define SHADER_NAME %s", hooks.Name),
			HookVertexPre, hooks.VertexPre,
			HookVertexMain, hooks.VertexMain,
			HookVertexEnd, hooks.VertexEnd,
			HookFragmentPre, hooks.FragmentPre,
			HookFragmentMain, hooks.FragmentMain,
			HookFragmentEnd, hooks.FragmentEnd,
		),
		defines: defines,
	}
}

func (p *preProcessor) Process(source string) (string, []Leftover) {
	out := p.replacer.Replace(source)

	var leftovers []Leftover
	for i, line := range strings.Split(out, "\n") {
		for rest := line; ; {
			idx := strings.Index(rest, hookPrefix)
			if idx < 0 {
				break
			}
			token := rest[idx:]
			if end := strings.IndexByte(token, '>'); end >= 0 {
				token = token[:end+1]
			}
			leftovers = append(leftovers, Leftover{Line: i + 1, Token: token})
			rest = rest[idx+len(token):]
		}
	}
	return out, leftovers
}

func (p *preProcessor) Defines() []string {
	return p.defines
}

// AddLineNumbers prefixes every line of source with its 1-based line number, matching the
// numbering drivers use in compile logs.
//
// Parameters:
//   - source: the shader source
//
// Returns:
//   - string: the numbered source
func AddLineNumbers(source string) string {
	lines := strings.Split(source, "\n")
	width := len(fmt.Sprint(len(lines)))
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%*d: %s", width, i+1, line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}
