package skeleton

import (
	"math"
	"testing"

	"github.com/ironleaf-tools/ntfcore/internal/mesh"
	"github.com/ironleaf-tools/ntfcore/internal/wire"
	"github.com/stretchr/testify/require"
)

func meshGroupTree(name, shaderName string, pos [3][3]float32) *wire.Tree {
	vertexBuf := make([]byte, 0, 3*mesh.VertexFormat1Stride)
	for _, p := range pos {
		rec := make([]byte, mesh.VertexFormat1Stride)
		// position only; normal/tangent bytes left zero for this fixture.
		putF32(rec[0:4], p[0])
		putF32(rec[4:8], p[1])
		putF32(rec[8:12], p[2])
		vertexBuf = append(vertexBuf, rec...)
	}

	mg := &wire.Child{
		ChildType: wire.ChildTypeMeshGroup,
		Entries: []wire.Entry{
			&wire.Chunk{Name: "Name", Type: wire.ChunkString, Value: wire.StringValue(name)},
			&wire.Chunk{Name: "VertexFormat", Type: wire.ChunkInt32, Value: wire.Int32Value(1)},
			&wire.Chunk{Name: "NumVertexes", Type: wire.ChunkUint32, Value: wire.Uint32Value(3)},
			&wire.Chunk{Name: "NumFaces", Type: wire.ChunkUint32, Value: wire.Uint32Value(3)},
			&wire.Chunk{Name: "Vertexes", Type: wire.ChunkRaw, Value: wire.RawValue(vertexBuf)},
			&wire.Chunk{Name: "Faces", Type: wire.ChunkRaw, Value: wire.RawValue([]byte{0, 0, 1, 0, 2, 0})},
			&wire.Child{
				ChildType: wire.ChildTypeShader,
				Entries: []wire.Entry{
					&wire.Chunk{Name: "ShaderName", Type: wire.ChunkString, Value: wire.StringValue(shaderName)},
				},
			},
		},
	}

	locator := &wire.Child{
		ChildType: wire.ChildTypeLocator,
		Entries: []wire.Entry{
			&wire.Chunk{Name: "Name", Type: wire.ChunkString, Value: wire.StringValue(name + "_anchor")},
			&wire.Chunk{Name: "IsLocator", Type: wire.ChunkInt32, Value: wire.Int32Value(1)},
		},
	}

	return &wire.Tree{Entries: []wire.Entry{mg, locator}}
}

func putF32(dst []byte, f float32) {
	bits := math.Float32bits(f)
	dst[0] = byte(bits)
	dst[1] = byte(bits >> 8)
	dst[2] = byte(bits >> 16)
	dst[3] = byte(bits >> 24)
}

func TestEmit_ZeroesMeshDataLeavesOriginalUntouched(t *testing.T) {
	tree := meshGroupTree("Body", "skin", [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	originalBytes, err := wire.Write(tree)
	require.NoError(t, err)

	skel, err := Emit(tree)
	require.NoError(t, err)

	afterBytes, err := wire.Write(tree)
	require.NoError(t, err)
	require.Equal(t, originalBytes, afterBytes, "Emit must not mutate its input tree")

	restored, err := Restore(skel)
	require.NoError(t, err)

	mg := restored.TopChildren(wire.ChildTypeMeshGroup)[0]
	nv, ok := mg.FindChunk("NumVertexes")
	require.True(t, ok)
	require.Equal(t, wire.Uint32Value(0), nv.Value)
	nf, ok := mg.FindChunk("NumFaces")
	require.True(t, ok)
	require.Equal(t, wire.Uint32Value(0), nf.Value)
	vb, ok := mg.FindChunk("Vertexes")
	require.True(t, ok)
	require.Empty(t, []byte(vb.Value.(wire.RawValue)))

	shaderChild, ok := mg.FindChild(wire.ChildTypeShader)
	require.True(t, ok)
	sn, ok := shaderChild.FindChunk("ShaderName")
	require.True(t, ok)
	require.Equal(t, wire.StringValue("skin"), sn.Value)
}

func TestSkeletonTransplant_PreservesShellSwapsGeometry(t *testing.T) {
	treeA := meshGroupTree("Hero", "hero_skin", [3][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}})
	treeB := meshGroupTree("Villain", "villain_skin", [3][3]float32{{0, 0, 0}, {2, 0, 0}, {0, 2, 0}})

	skelA, err := Emit(treeA)
	require.NoError(t, err)

	groupsB, err := mesh.ExtractGroups(treeB)
	require.NoError(t, err)

	restoredA, err := Restore(skelA)
	require.NoError(t, err)

	require.NoError(t, mesh.InjectGroups(restoredA, groupsB))

	groups, err := mesh.ExtractGroups(restoredA)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	require.Equal(t, mesh.Vec3{2, 0, 0}, groups[0].Vertices[1].Pos)

	mg := restoredA.TopChildren(wire.ChildTypeMeshGroup)[0]
	shaderChild, ok := mg.FindChild(wire.ChildTypeShader)
	require.True(t, ok)
	sn, ok := shaderChild.FindChunk("ShaderName")
	require.True(t, ok)
	require.Equal(t, wire.StringValue("hero_skin"), sn.Value, "shader shell comes from A, not B")

	locators := restoredA.TopChildren(wire.ChildTypeLocator)
	require.Len(t, locators, 1)
	name, ok := locators[0].FindChunk("Name")
	require.True(t, ok)
	require.Equal(t, wire.StringValue("Hero_anchor"), name.Value)
}
