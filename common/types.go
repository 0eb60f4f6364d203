// package common contains common types that are used throughout this engine. They are not interface-wrapped structs, just plain structs that express
// commonly used data-types.
package common

import (
	"image"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

// TextureStagingData holds RGBA pixel data for a texture pending GPU upload.
type TextureStagingData struct {
	// Pixels is the byte slice representing the actual pixel data for the texture. It is in RGBA format, with 4 bytes per pixel.
	Pixels []byte
	// Width is the width of the texture in pixels.
	Width uint32
	// Height is the height of the texture in pixels.
	Height uint32
}

// NewTextureStagingData converts an already decoded image into tightly packed RGBA rows.
// With flipY the first row of the result is the bottom row of the image, matching the
// bottom-left texture origin of OpenGL.
//
// Parameters:
//   - img: the decoded image
//   - flipY: whether to reverse the row order
//
// Returns:
//   - TextureStagingData: the staged pixels
func NewTextureStagingData(img image.Image, flipY bool) TextureStagingData {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))

	if flipY {
		m := f64.Aff3{
			1, 0, float64(-bounds.Min.X),
			0, -1, float64(bounds.Min.Y + h),
		}
		draw.NearestNeighbor.Transform(rgba, m, img, bounds, draw.Src, nil)
	} else {
		draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)
	}

	return TextureStagingData{
		Pixels: rgba.Pix,
		Width:  uint32(w),
		Height: uint32(h),
	}
}
