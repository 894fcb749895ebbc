package renderer

import "github.com/Faultbox/strangefruit/internal/engine/lighting"

// Gradient end colors: the north pole is orange, the south pole purple.
var (
	GradientTop    = lighting.HexColor(0xFFA500)
	GradientBottom = lighting.HexColor(0x800080)
)

// GradientPixels returns a 1 x height RGBA strip blending bottom into top.
// Row 0 is the bottom (v = 0) to match OpenGL texture orientation.
func GradientPixels(height int, top, bottom [3]float32) []byte {
	if height < 1 {
		height = 1
	}
	pixels := make([]byte, height*4)
	for row := 0; row < height; row++ {
		t := (float32(row) + 0.5) / float32(height)
		for c := 0; c < 3; c++ {
			v := bottom[c] + (top[c]-bottom[c])*t
			pixels[row*4+c] = byte(v*255 + 0.5)
		}
		pixels[row*4+3] = 255
	}
	return pixels
}
