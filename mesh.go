package ntf

import (
	"github.com/ironleaf-tools/ntfcore/internal/mesh"
	"github.com/ironleaf-tools/ntfcore/internal/wire"
)

// Vertex is one Vertex Format 1 record: position, tangent-space basis
// and two UV sets.
type Vertex = mesh.Vertex

// Triangle is a single triangle's vertex index triple.
type Triangle = mesh.Triangle

// Group is the neutral mesh-exchange shape extracted from (and
// injected back into) a tree's -254 mesh-group children.
type Group = mesh.Group

// Shader is the material-bearing data nested inside a mesh group.
type Shader = mesh.Shader

// Locator is a named reference point with position and direction.
type Locator = mesh.Locator

// Vec3 is the single-precision vector type used throughout Vertex
// Format 1 and its derived geometry (tangents, bounding boxes).
type Vec3 = mesh.Vec3

// MaxVertices is the per-group vertex count ceiling imposed by the
// 16-bit triangle index space.
const MaxVertices = mesh.MaxVertices

// ExtractMeshGroups decodes every -254 Child of tree into a Group,
// including its nested -253 Shader.
func ExtractMeshGroups(tree *Tree) ([]Group, error) {
	return mesh.ExtractGroups(tree)
}

// InjectMeshGroups overwrites the mesh payload chunks of tree's -254
// Children with groups, matched by position, and recomputes each
// group's bounding box. On any error tree is left completely
// unmodified.
func InjectMeshGroups(tree *Tree, groups []Group) error {
	return mesh.InjectGroups(tree, groups)
}

// ExtractLocators decodes every top-level Child of type 5 into a Locator.
func ExtractLocators(tree *Tree) ([]Locator, error) {
	return mesh.ExtractLocators(tree)
}

// SolveTangents computes a per-vertex tangent basis for vertices given
// triangles, writing into each vertex's Tangent and TangentW fields.
func SolveTangents(vertices []Vertex, triangles []Triangle) {
	mesh.SolveTangents(vertices, triangles)
}

// ChildType constants identify the three Child kinds TreeMeshBinding
// and ExtractLocators recognize.
const (
	ChildTypeMeshGroup = wire.ChildTypeMeshGroup
	ChildTypeShader    = wire.ChildTypeShader
	ChildTypeLocator   = wire.ChildTypeLocator
)
