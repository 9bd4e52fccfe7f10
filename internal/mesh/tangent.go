package mesh

// SolveTangents computes per-vertex tangents for a triangle list using
// per-triangle UV-space derivatives, accumulated per vertex and then
// Gram-Schmidt orthogonalized against each vertex's averaged normal
// (§4.5). It mutates the Tangent and TangentW fields of vertices in
// place; positions, normals and UVs are read-only inputs.
func SolveTangents(vertices []Vertex, triangles [][3]uint16) {
	sums := make([]Vec3, len(vertices))

	for _, tri := range triangles {
		i0, i1, i2 := tri[0], tri[1], tri[2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			continue
		}
		p0, p1, p2 := vertices[i0].Pos, vertices[i1].Pos, vertices[i2].Pos
		u0, u1, u2 := vertices[i0].UV0, vertices[i1].UV0, vertices[i2].UV0

		edge1 := p1.Sub(p0)
		edge2 := p2.Sub(p0)
		du1 := [2]float32{u1[0] - u0[0], u1[1] - u0[1]}
		du2 := [2]float32{u2[0] - u0[0], u2[1] - u0[1]}

		det := du1[0]*du2[1] - du2[0]*du1[1]

		var t Vec3
		if absf(det) < 1e-8 {
			avgNormal := vertices[i0].Normal.Add(vertices[i1].Normal).Add(vertices[i2].Normal).Normalize()
			t = deterministicPerpendicular(avgNormal)
		} else {
			inv := 1 / det
			t = Vec3{
				(edge1[0]*du2[1] - edge2[0]*du1[1]) * inv,
				(edge1[1]*du2[1] - edge2[1]*du1[1]) * inv,
				(edge1[2]*du2[1] - edge2[2]*du1[1]) * inv,
			}
		}

		sums[i0] = sums[i0].Add(t)
		sums[i1] = sums[i1].Add(t)
		sums[i2] = sums[i2].Add(t)
	}

	for i := range vertices {
		n := vertices[i].Normal.Normalize()
		sum := sums[i]

		t := sum.Sub(n.Scale(n.Dot(sum))).Normalize()
		if !t.Finite() || t == (Vec3{}) {
			t = deterministicPerpendicular(n)
		}

		vertices[i].Tangent = t
		vertices[i].TangentW = 255
	}
}

// deterministicPerpendicular returns a unit vector perpendicular to n,
// chosen deterministically by crossing with whichever world axis is
// least aligned with n (§4.5).
func deterministicPerpendicular(n Vec3) Vec3 {
	axes := []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}}
	best := 0
	bestAbsDot := float32(2) // larger than any possible |dot| with a unit vector
	for i, a := range axes {
		d := absf(n.Dot(a))
		if d < bestAbsDot {
			bestAbsDot = d
			best = i
		}
	}
	p := n.Cross(axes[best]).Normalize()
	if !p.Finite() || p == (Vec3{}) {
		// n itself was degenerate (zero); fall back to a fixed axis.
		return Vec3{1, 0, 0}
	}
	return p
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
