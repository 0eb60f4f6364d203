package gpu

// The numeric values below match the OpenGL enums so the GL backend can pass them straight through.

// MaxDevicePixelRatio caps the device pixel ratio the renderer will honour.
const MaxDevicePixelRatio float32 = 2

// DefaultWidth and DefaultHeight are the drawing surface size used when no size is configured.
const (
	DefaultWidth  = 1280
	DefaultHeight = 720
)

// DefaultPrecision is the fragment float precision injected into shader templates.
const DefaultPrecision = "highp"

// DrawMode is the primitive topology used by a draw call.
type DrawMode uint32

const (
	DrawPoints        DrawMode = 0x0000
	DrawLines         DrawMode = 0x0001
	DrawLineLoop      DrawMode = 0x0002
	DrawLineStrip     DrawMode = 0x0003
	DrawTriangles     DrawMode = 0x0004
	DrawTriangleStrip DrawMode = 0x0005
	DrawTriangleFan   DrawMode = 0x0006
)

// CullMode selects which faces are discarded. CullNone disables culling entirely.
type CullMode int32

const (
	CullNone         CullMode = -1
	CullFront        CullMode = 0x0404
	CullBack         CullMode = 0x0405
	CullFrontAndBack CullMode = 0x0408
)

// Cap is a server-side capability toggled with Enable/Disable.
type Cap uint32

const (
	CapCullFace    Cap = 0x0B44
	CapDepthTest   Cap = 0x0B71
	CapBlend       Cap = 0x0BE2
	CapScissorTest Cap = 0x0C11
)

// ClearMask selects the buffers cleared by Clear.
type ClearMask uint32

const (
	ClearDepth   ClearMask = 0x00000100
	ClearStencil ClearMask = 0x00000400
	ClearColor   ClearMask = 0x00004000
)

// BlendFactor is a source or destination blend factor.
type BlendFactor uint32

const (
	BlendZero             BlendFactor = 0
	BlendOne              BlendFactor = 1
	BlendSrcColor         BlendFactor = 0x0300
	BlendOneMinusSrcColor BlendFactor = 0x0301
	BlendSrcAlpha         BlendFactor = 0x0302
	BlendOneMinusSrcAlpha BlendFactor = 0x0303
	BlendDstAlpha         BlendFactor = 0x0304
	BlendOneMinusDstAlpha BlendFactor = 0x0305
	BlendDstColor         BlendFactor = 0x0306
	BlendOneMinusDstColor BlendFactor = 0x0307
)

// BufferTarget is the binding point of a buffer object.
type BufferTarget uint32

const (
	ArrayBuffer        BufferTarget = 0x8892
	ElementArrayBuffer BufferTarget = 0x8893
)

// BufferUsage is the expected update pattern of a buffer's data store.
type BufferUsage uint32

const (
	StaticDraw  BufferUsage = 0x88E4
	DynamicDraw BufferUsage = 0x88E8
)

// DataType is a component type for vertex attributes, indices and pixel data.
type DataType uint32

const (
	UnsignedByte  DataType = 0x1401
	UnsignedShort DataType = 0x1403
	UnsignedInt   DataType = 0x1405
	Float         DataType = 0x1406
)

// Size returns the size in bytes of one component of the type.
func (t DataType) Size() int {
	switch t {
	case UnsignedByte:
		return 1
	case UnsignedShort:
		return 2
	default:
		return 4
	}
}

// ShaderKind is the pipeline stage of a shader object.
type ShaderKind uint32

const (
	FragmentShader ShaderKind = 0x8B30
	VertexShader   ShaderKind = 0x8B31
)

// TextureTarget is the binding point of a texture object or one face of a cube map.
type TextureTarget uint32

const (
	Texture2D               TextureTarget = 0x0DE1
	TextureCubeMap          TextureTarget = 0x8513
	TextureCubeMapPositiveX TextureTarget = 0x8515
	TextureCubeMapNegativeX TextureTarget = 0x8516
	TextureCubeMapPositiveY TextureTarget = 0x8517
	TextureCubeMapNegativeY TextureTarget = 0x8518
	TextureCubeMapPositiveZ TextureTarget = 0x8519
	TextureCubeMapNegativeZ TextureTarget = 0x851A
)

// CubeFaces lists the cube map face targets in +X, -X, +Y, -Y, +Z, -Z order.
var CubeFaces = [6]TextureTarget{
	TextureCubeMapPositiveX,
	TextureCubeMapNegativeX,
	TextureCubeMapPositiveY,
	TextureCubeMapNegativeY,
	TextureCubeMapPositiveZ,
	TextureCubeMapNegativeZ,
}

// TextureParam names a sampling parameter set with TexParameteri.
type TextureParam uint32

const (
	TextureMagFilter TextureParam = 0x2800
	TextureMinFilter TextureParam = 0x2801
	TextureWrapS     TextureParam = 0x2802
	TextureWrapT     TextureParam = 0x2803
)

// Filter values for TextureMagFilter and TextureMinFilter.
const (
	Nearest              int32 = 0x2600
	Linear               int32 = 0x2601
	NearestMipmapNearest int32 = 0x2700
	LinearMipmapNearest  int32 = 0x2701
	NearestMipmapLinear  int32 = 0x2702
	LinearMipmapLinear   int32 = 0x2703
)

// Wrap values for TextureWrapS and TextureWrapT.
const (
	Repeat         int32 = 0x2901
	ClampToEdge    int32 = 0x812F
	MirroredRepeat int32 = 0x8370
)

// PixelFormat is the layout of texel data.
type PixelFormat uint32

const (
	DepthComponent PixelFormat = 0x1902
	RGB            PixelFormat = 0x1907
	RGBA           PixelFormat = 0x1908
)

// Framebuffer and renderbuffer targets, attachments and storage formats.
const (
	FramebufferTarget  uint32 = 0x8D40
	RenderbufferTarget uint32 = 0x8D41

	ColorAttachment0 uint32 = 0x8CE0
	DepthAttachment  uint32 = 0x8D00

	DepthComponent16 uint32 = 0x81A5
)
