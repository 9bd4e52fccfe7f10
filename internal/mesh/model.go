// Package mesh implements the domain-specific vertex/index codec
// (Vertex Format 1), tangent generation, and the neutral mesh-exchange
// model translated to/from a Tree by TreeMeshBinding.
package mesh

import "github.com/ironleaf-tools/ntfcore/internal/wire"

// Triangle is a single triangle's vertex index triple.
type Triangle = [3]uint16

// Group is the logical mesh-group view extracted from a Child of type
// -254 (§3's MeshGroup) — it also serves as the neutral per-group
// interchange shape the spec's component list calls MeshModel; the two
// names describe one shape used at two points in the pipeline, so this
// module keeps a single type rather than two isomorphic ones.
type Group struct {
	Name         string
	VertexFormat int32
	Vertices     []Vertex
	Triangles    []Triangle
	Material     Shader
}

// MeshModel is an alias kept for vocabulary fidelity with the spec's
// component list; Group is the canonical type.
type MeshModel = Group

// Shader is the material-bearing Child of type -253 nested inside a
// mesh group (§3).
type Shader struct {
	Name       string
	ShaderName string
	TexS0      string
	TexS1      string
	TexS2      string
	DestColor  [4]float32
	SpecColor  [4]float32
	Alpha      float32
	NearRange  float32
	FarRange   float32

	// Extra carries any additional chunks under the shader child
	// verbatim, so unrecognized engine-private shader fields survive
	// extraction even though this struct doesn't model them.
	Extra []*wire.Chunk
}

// Locator is the logical view of a Child of type 5 (§3): a named
// reference point with position and direction, plus an is-locator flag.
type Locator struct {
	Name      string
	IsLocator int32
	LPos      [4]int32
	LDir      [4]float32
}
