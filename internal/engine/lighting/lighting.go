// Package lighting describes the light rig and surface material of the fruit.
package lighting

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color     [3]float32
	Intensity float32
}

// PointLight represents a point light source for GPU upload.
type PointLight struct {
	Position  [3]float32 // World position
	Color     [3]float32 // RGB color (0-1 range)
	Intensity float32
}

// Material holds Phong surface parameters.
type Material struct {
	Specular  [3]float32
	Emissive  [3]float32
	Shininess float32
}

// Rig is everything the fruit shader needs besides geometry and texture.
type Rig struct {
	Ambient  AmbientLight
	Point    PointLight
	Material Material
}

// DefaultRig returns the studio look: white ambient fill, a white point light
// up and to the right, a faint purple glow and moderate highlights.
func DefaultRig() Rig {
	white := [3]float32{1, 1, 1}
	return Rig{
		Ambient: AmbientLight{Color: white, Intensity: 1},
		Point: PointLight{
			Position:  [3]float32{10, 10, 10},
			Color:     white,
			Intensity: 1,
		},
		Material: Material{
			Specular:  HexColor(0x111111),
			Emissive:  HexColor(0x330033),
			Shininess: 50,
		},
	}
}

// HexColor converts 0xRRGGBB to linear 0-1 components.
func HexColor(hex uint32) [3]float32 {
	return [3]float32{
		float32((hex>>16)&0xFF) / 255,
		float32((hex>>8)&0xFF) / 255,
		float32(hex&0xFF) / 255,
	}
}

// AmbientTerm returns the premultiplied ambient color.
func (r Rig) AmbientTerm() [3]float32 {
	return scale(r.Ambient.Color, r.Ambient.Intensity)
}

// PointTerm returns the premultiplied point light color.
func (r Rig) PointTerm() [3]float32 {
	return scale(r.Point.Color, r.Point.Intensity)
}

func scale(c [3]float32, s float32) [3]float32 {
	return [3]float32{c[0] * s, c[1] * s, c[2] * s}
}
