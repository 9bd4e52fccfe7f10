package mesh

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveTangents_DegenerateUVsProduceFiniteUnitTangents(t *testing.T) {
	vertices := []Vertex{
		{Pos: Vec3{0, 0, 0}, Normal: Vec3{0, 0, 1}, UV0: [2]float32{0.5, 0.5}},
		{Pos: Vec3{1, 0, 0}, Normal: Vec3{0, 0, 1}, UV0: [2]float32{0.5, 0.5}},
		{Pos: Vec3{0, 1, 0}, Normal: Vec3{0, 0, 1}, UV0: [2]float32{0.5, 0.5}},
	}
	triangles := [][3]uint16{{0, 1, 2}}

	SolveTangents(vertices, triangles)

	for i, v := range vertices {
		require.True(t, v.Tangent.Finite(), "vertex %d tangent not finite", i)
		require.InDelta(t, 1.0, float64(v.Tangent.Len()), 1e-5, "vertex %d tangent not unit length", i)
		require.InDelta(t, 0.0, float64(v.Tangent.Dot(v.Normal)), 1e-5, "vertex %d tangent not perpendicular to normal", i)
		require.Equal(t, uint8(255), v.TangentW)
	}
}

func TestSolveTangents_RegularTriangle(t *testing.T) {
	vertices := []Vertex{
		{Pos: Vec3{0, 0, 0}, Normal: Vec3{0, 0, 1}, UV0: [2]float32{0, 0}},
		{Pos: Vec3{1, 0, 0}, Normal: Vec3{0, 0, 1}, UV0: [2]float32{1, 0}},
		{Pos: Vec3{0, 1, 0}, Normal: Vec3{0, 0, 1}, UV0: [2]float32{0, 1}},
	}
	triangles := [][3]uint16{{0, 1, 2}}

	SolveTangents(vertices, triangles)

	for _, v := range vertices {
		require.True(t, v.Tangent.Finite())
		require.InDelta(t, 1.0, float64(v.Tangent.Len()), 1e-5)
	}
	// UVs match positions 1:1 here, so the tangent should point along +X.
	require.InDelta(t, 1.0, float64(vertices[0].Tangent[0]), 1e-4)
}

func TestDeterministicPerpendicular_IsUnitAndPerpendicular(t *testing.T) {
	for _, n := range []Vec3{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {1, 1, 1}} {
		n = n.Normalize()
		p := deterministicPerpendicular(n)
		require.True(t, p.Finite())
		require.InDelta(t, 1.0, float64(p.Len()), 1e-5)
		require.InDelta(t, 0.0, float64(p.Dot(n)), 1e-5)
	}
}
