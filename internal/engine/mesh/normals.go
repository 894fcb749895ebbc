package mesh

import "github.com/Faultbox/strangefruit/pkg/math"

// computeNormals writes angle-weighted vertex normals.
//
// Each triangle contributes its unit face normal weighted by the corner angle
// at each of its vertices. Contributions of welded duplicates are summed into
// the group representative so seams and poles shade continuously. A vertex
// whose sum vanishes falls back to its radial direction.
func computeNormals(vertices []Vertex, topo *Topology) {
	acc := make([]math.Vec3, len(vertices))
	indices := topo.Indices

	for t := 0; t+2 < len(indices); t += 3 {
		i0, i1, i2 := indices[t], indices[t+1], indices[t+2]
		p0 := vertices[i0].Position
		p1 := vertices[i1].Position
		p2 := vertices[i2].Position

		e01 := p1.Sub(p0)
		e02 := p2.Sub(p0)
		e12 := p2.Sub(p1)

		face := e01.Cross(e02).Normalize()
		if face == (math.Vec3{}) {
			continue
		}

		a0 := e01.Angle(e02)
		a1 := e01.Scale(-1).Angle(e12)
		a2 := e02.Angle(e12)

		acc[i0] = acc[i0].Add(face.Scale(a0))
		acc[i1] = acc[i1].Add(face.Scale(a1))
		acc[i2] = acc[i2].Add(face.Scale(a2))
	}

	// Representatives precede their duplicates, so one ascending pass folds
	// every group.
	for i := range acc {
		if w := topo.weld[i]; w != i {
			acc[w] = acc[w].Add(acc[i])
		}
	}

	for i := range vertices {
		vertices[i].Normal = acc[topo.weld[i]].NormalizeOr(topo.Directions[i])
	}
}
