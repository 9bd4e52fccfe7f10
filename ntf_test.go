package ntf

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/ironleaf-tools/ntfcore/internal/wire"
	"github.com/stretchr/testify/require"
)

// buildFixtureTree assembles a minimal but representative tree: one
// mesh group (triangle + shader), one locator, and an unrelated raw
// chunk standing in for engine-private data the core never interprets.
func buildFixtureTree(vertexName, shaderName string, scale float32) *Tree {
	vertexBuf := make([]byte, 3*36)
	positions := [3][3]float32{{0, 0, 0}, {scale, 0, 0}, {0, scale, 0}}
	for i, p := range positions {
		rec := vertexBuf[i*36 : (i+1)*36]
		putF32At(rec, 0, p[0])
		putF32At(rec, 4, p[1])
		putF32At(rec, 8, p[2])
		copy(rec[12:16], []byte{128, 128, 255, 255})
	}

	mg := &Child{
		ChildType: ChildTypeMeshGroup,
		Entries: []Entry{
			&Chunk{Name: "Name", Type: wire.ChunkString, Value: wire.StringValue(vertexName)},
			&Chunk{Name: "VertexFormat", Type: wire.ChunkInt32, Value: wire.Int32Value(1)},
			&Chunk{Name: "NumVertexes", Type: wire.ChunkUint32, Value: wire.Uint32Value(3)},
			&Chunk{Name: "NumFaces", Type: wire.ChunkUint32, Value: wire.Uint32Value(3)},
			&Chunk{Name: "Vertexes", Type: wire.ChunkRaw, Value: wire.RawValue(vertexBuf)},
			&Chunk{Name: "Faces", Type: wire.ChunkRaw, Value: wire.RawValue([]byte{0, 0, 1, 0, 2, 0})},
			&Chunk{Name: "BBoxMin", Type: wire.ChunkVec4, Value: wire.Vec4FValue{0, 0, 0, 1}},
			&Chunk{Name: "BBoxMax", Type: wire.ChunkVec4, Value: wire.Vec4FValue{scale, scale, 0, 1}},
			&Child{
				ChildType: ChildTypeShader,
				Entries: []Entry{
					&Chunk{Name: "ShaderName", Type: wire.ChunkString, Value: wire.StringValue(shaderName)},
					&Chunk{Name: "TexS0", Type: wire.ChunkString, Value: wire.StringValue("A.dds")},
				},
			},
		},
	}

	locator := &Child{
		ChildType: ChildTypeLocator,
		Entries: []Entry{
			&Chunk{Name: "Name", Type: wire.ChunkString, Value: wire.StringValue("spawn")},
			&Chunk{Name: "IsLocator", Type: wire.ChunkInt32, Value: wire.Int32Value(1)},
			&Chunk{Name: "LPos", Type: wire.ChunkVec4, Value: wire.Vec4IValue{10, 20, 30, 0}},
		},
	}

	privateData := &Chunk{Name: "EngineTag", Type: wire.ChunkRaw, Value: wire.RawValue([]byte{0xDE, 0xAD, 0xBE, 0xEF})}

	return &Tree{Entries: []Entry{mg, locator, privateData}}
}

func putF32At(dst []byte, off int, f float32) {
	bits := math.Float32bits(f)
	dst[off] = byte(bits)
	dst[off+1] = byte(bits >> 8)
	dst[off+2] = byte(bits >> 16)
	dst[off+3] = byte(bits >> 24)
}

func TestFullRoundTrip_ParseWriteIsByteIdentical(t *testing.T) {
	tree := buildFixtureTree("Body", "buildings_lmap", 1)
	data, err := Write(tree)
	require.NoError(t, err)

	reparsed, err := ParseDefault(data)
	require.NoError(t, err)

	again, err := Write(reparsed)
	require.NoError(t, err)
	require.Equal(t, data, again)
}

func TestExtractInjectRoundTrip_PreservesUnrelatedData(t *testing.T) {
	tree := buildFixtureTree("Body", "buildings_lmap", 1)
	before, err := Write(tree)
	require.NoError(t, err)

	groups, err := ExtractMeshGroups(tree)
	require.NoError(t, err)
	require.NoError(t, InjectMeshGroups(tree, groups))

	after, err := Write(tree)
	require.NoError(t, err)
	require.Equal(t, before, after, "re-injecting an unmodified extraction must be a no-op")
}

func TestSkeletonRecord_RoundTripAndTransplant(t *testing.T) {
	source := buildFixtureTree("Hero", "hero_skin", 1)
	target := buildFixtureTree("Villain", "villain_skin", 2)

	groups, err := ExtractMeshGroups(source)
	require.NoError(t, err)

	rec, err := NewSkeletonRecord(source, groups)
	require.NoError(t, err)
	require.Equal(t, 1, rec.MeshGroups)
	require.Contains(t, rec.ShaderNames, "hero_skin")

	encoded, err := json.Marshal(rec)
	require.NoError(t, err)

	restoredTree, restoredRec, err := ParseSkeletonRecord(encoded)
	require.NoError(t, err)
	require.Equal(t, rec.RawSkeleton, restoredRec.RawSkeleton)

	villainGroups, err := ExtractMeshGroups(target)
	require.NoError(t, err)
	require.NoError(t, InjectMeshGroups(restoredTree, villainGroups))

	final, err := ExtractMeshGroups(restoredTree)
	require.NoError(t, err)
	require.Len(t, final, 1)
	require.Equal(t, Vec3{2, 0, 0}, final[0].Vertices[1].Pos, "geometry comes from the target, not the skeleton source")
	require.Equal(t, "hero_skin", final[0].Material.ShaderName, "shell comes from the skeleton source")

	locators, err := ExtractLocators(restoredTree)
	require.NoError(t, err)
	require.Len(t, locators, 1)
	require.Equal(t, [4]int32{10, 20, 30, 0}, locators[0].LPos)
}

func TestInterchangeRoundTrip_PositionsExactNormalsClose(t *testing.T) {
	tree := buildFixtureTree("Body", "buildings_lmap", 1)
	groups, err := ExtractMeshGroups(tree)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteMesh(&buf, groups))

	back, err := ReadMesh(&buf, nil)
	require.NoError(t, err)
	require.Len(t, back, 1)

	for i, v := range groups[0].Vertices {
		require.Equal(t, v.Pos, back[0].Vertices[i].Pos)
		require.InDelta(t, float64(v.Normal[2]), float64(back[0].Vertices[i].Normal[2]), 1e-6)
		require.Equal(t, [2]float32{}, back[0].Vertices[i].UV1)
	}
}

func TestInterchangeAndMaterialRoundTrip(t *testing.T) {
	tree := buildFixtureTree("Body", "buildings_lmap", 1)
	groups, err := ExtractMeshGroups(tree)
	require.NoError(t, err)
	groups[0].Material.Name = "skin"

	var meshBuf, matBuf bytes.Buffer
	require.NoError(t, WriteMesh(&meshBuf, groups))
	require.NoError(t, WriteMaterials(&matBuf, groups))

	materials, err := ReadMaterials(strings.NewReader(matBuf.String()))
	require.NoError(t, err)

	back, err := ReadMesh(&meshBuf, materials)
	require.NoError(t, err)
	require.Len(t, back, 1)
	require.Equal(t, "skin", back[0].Material.Name)
}

func TestInjectMeshGroups_RejectsMismatchedGroupCount(t *testing.T) {
	tree := buildFixtureTree("Body", "buildings_lmap", 1)
	err := InjectMeshGroups(tree, nil)
	require.ErrorIs(t, err, ErrSkeletonMismatch)
}

func TestParse_RejectsBadMagic(t *testing.T) {
	_, err := ParseDefault([]byte{0, 1, 2, 3})
	require.ErrorIs(t, err, ErrNotAnNtfFile)
}
