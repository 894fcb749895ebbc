package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/strangefruit/pkg/math"
)

// Topology is the undisplaced UV-sphere for a (radius, segments) pair.
//
// Vertices form (segments+1) rows of (segments+1) columns, north pole row
// first. The pole rows and the seam column are duplicated so each vertex
// carries its own texture coordinate; duplicates share a bit-identical
// direction and are welded when normals are computed.
type Topology struct {
	Radius   float32
	Segments int

	// Positions are the undisplaced vertex positions, Directions[i] * Radius.
	Positions []math.Vec3
	// Directions are unit vectors from the origin through each vertex.
	Directions []math.Vec3
	TexCoords  [][2]float32
	Indices    []uint32

	// weld maps each vertex to the lowest index sharing its position.
	weld []int
}

// BuildSphere builds the topology of a UV-sphere.
// The index buffer depends only on segments.
func BuildSphere(radius float32, segments int) (*Topology, error) {
	if err := checkRadius(radius); err != nil {
		return nil, err
	}
	if err := checkSegments(segments); err != nil {
		return nil, err
	}

	n := segments
	row := n + 1
	count := row * row

	t := &Topology{
		Radius:     radius,
		Segments:   segments,
		Positions:  make([]math.Vec3, 0, count),
		Directions: make([]math.Vec3, 0, count),
		TexCoords:  make([][2]float32, 0, count),
		weld:       make([]int, 0, count),
	}

	for iy := 0; iy <= n; iy++ {
		v := float32(iy) / float32(n)
		sinTheta, cosTheta := math32.Sincos(v * math32.Pi)

		for ix := 0; ix <= n; ix++ {
			u := float32(ix) / float32(n)

			var dir math.Vec3
			switch iy {
			case 0:
				dir = math.Vec3{Y: 1}
			case n:
				dir = math.Vec3{Y: -1}
			default:
				// The seam column reuses column 0's angle so both ends match exactly.
				phi := float32(ix%n) / float32(n) * 2 * math32.Pi
				sinPhi, cosPhi := math32.Sincos(phi)
				dir = math.Vec3{
					X: -cosPhi * sinTheta,
					Y: cosTheta,
					Z: sinPhi * sinTheta,
				}
			}

			t.Directions = append(t.Directions, dir)
			t.Positions = append(t.Positions, dir.Scale(radius))
			t.TexCoords = append(t.TexCoords, [2]float32{u, 1 - v})
			t.weld = append(t.weld, weldTarget(ix, iy, n))
		}
	}

	t.Indices = sphereIndices(n)
	return t, nil
}

func weldTarget(ix, iy, n int) int {
	row := n + 1
	switch {
	case iy == 0:
		return 0
	case iy == n:
		return n * row
	case ix == n:
		return iy * row
	default:
		return iy*row + ix
	}
}

// sphereIndices emits counter-clockwise (outward facing) triangles.
// Quads touching a pole collapse to one triangle.
func sphereIndices(n int) []uint32 {
	row := n + 1
	indices := make([]uint32, 0, 6*n*(n-1))

	for iy := 0; iy < n; iy++ {
		for ix := 0; ix < n; ix++ {
			a := uint32(iy*row + ix + 1)
			b := uint32(iy*row + ix)
			c := uint32((iy+1)*row + ix)
			d := uint32((iy+1)*row + ix + 1)

			if iy != 0 {
				indices = append(indices, a, b, d)
			}
			if iy != n-1 {
				indices = append(indices, b, c, d)
			}
		}
	}
	return indices
}

// VertexCount returns the number of vertices, duplicates included.
func (t *Topology) VertexCount() int {
	return len(t.Positions)
}

// Canonical returns the weld group representative for vertex i.
func (t *Topology) Canonical(i int) int {
	return t.weld[i]
}
