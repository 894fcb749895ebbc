// Package texture uploads CPU images to OpenGL textures.
package texture

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Options controls sampling of an uploaded texture.
type Options struct {
	Filter int32 // gl.LINEAR or gl.NEAREST
	Wrap   int32 // gl.CLAMP_TO_EDGE or gl.REPEAT
}

// DefaultOptions returns linear filtering clamped to the edges.
func DefaultOptions() Options {
	return Options{Filter: gl.LINEAR, Wrap: gl.CLAMP_TO_EDGE}
}

// Upload creates a texture from tightly packed RGBA8 pixels, first row at
// the bottom.
func Upload(pixels []byte, width, height int, opts Options) (uint32, error) {
	if width < 1 || height < 1 {
		return 0, fmt.Errorf("texture size %dx%d", width, height)
	}
	if len(pixels) != width*height*4 {
		return 0, fmt.Errorf("texture %dx%d needs %d bytes, got %d",
			width, height, width*height*4, len(pixels))
	}

	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(width), int32(height), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, opts.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, opts.Filter)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, opts.Wrap)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, opts.Wrap)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	return id, nil
}

// Delete releases a texture created by Upload.
func Delete(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
