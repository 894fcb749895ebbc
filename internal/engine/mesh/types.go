// Package mesh builds UV-sphere topologies and deforms them with a noise
// field into immutable fruit meshes.
package mesh

import "github.com/Faultbox/strangefruit/pkg/math"

// Vertex is a mesh vertex laid out for direct GPU upload.
type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	TexCoord [2]float32
}

// Mesh is a finished, immutable deformation result.
// Callers must not modify the slices; regeneration produces a new Mesh.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Bounds   Bounds
	Segments int
	Radius   float32
}

// Bounds is an axis-aligned bounding box.
type Bounds struct {
	Min math.Vec3
	Max math.Vec3
}

// Center returns the midpoint of the box.
func (b Bounds) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent along each axis.
func (b Bounds) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// TriangleCount returns the number of triangles in the index buffer.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// RadiusRange returns the smallest and largest vertex distance from the origin.
func (m *Mesh) RadiusRange() (minR, maxR float32) {
	if len(m.Vertices) == 0 {
		return 0, 0
	}
	minR = m.Vertices[0].Position.Length()
	maxR = minR
	for _, v := range m.Vertices[1:] {
		r := v.Position.Length()
		if r < minR {
			minR = r
		}
		if r > maxR {
			maxR = r
		}
	}
	return minR, maxR
}

func computeBounds(vertices []Vertex) Bounds {
	if len(vertices) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: vertices[0].Position, Max: vertices[0].Position}
	for _, v := range vertices[1:] {
		b.Min = b.Min.Min(v.Position)
		b.Max = b.Max.Max(v.Position)
	}
	return b
}
