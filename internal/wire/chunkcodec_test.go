package wire

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeChunk_LPosDiscrimination(t *testing.T) {
	payload := []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0x2A, 0, 0, 0,
	}

	v, err := DecodeChunk("LPos", ChunkVec4, payload)
	require.NoError(t, err)
	require.Equal(t, Vec4IValue{0, 0, 0, 42}, v)

	tag, out, err := EncodeChunk("LPos", v)
	require.NoError(t, err)
	require.Equal(t, ChunkVec4, tag)
	require.Equal(t, payload, out)
}

func TestDecodeChunk_SameBytesUnderOtherNameAreFloat(t *testing.T) {
	payload := []byte{
		0, 0, 0, 0,
		0, 0, 0, 0,
		0, 0, 0, 0,
		0x2A, 0, 0, 0,
	}

	v, err := DecodeChunk("DestColor", ChunkVec4, payload)
	require.NoError(t, err)
	fv, ok := v.(Vec4FValue)
	require.True(t, ok, "expected Vec4FValue, got %T", v)
	require.Greater(t, fv[3], float32(0))
	require.Less(t, fv[3], float32(1e-30)) // bit pattern 0x2A as float32 is a tiny denormal, not 42
}

func TestChunkCodec_RoundTripEachShape(t *testing.T) {
	cases := []struct {
		name  string
		tag   ChunkType
		value ChunkValue
	}{
		{"VertexFormat", ChunkInt32, Int32Value(-7)},
		{"NumVertexes", ChunkUint32, Uint32Value(3)},
		{"Alpha", ChunkFloat32, Float32Value(0.25)},
		{"DestColor", ChunkVec4, Vec4FValue{1, 2, 3, 4}},
		{"LPos", ChunkVec4, Vec4IValue{1, -2, 3, -4}},
		{"SomeMatrix", ChunkMat4, Mat4Value{1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 0, 1}},
		{"Name", ChunkString, StringValue("buildings_lmap")},
		{"Vertexes", ChunkRaw, RawValue{1, 2, 3, 4, 5}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tag, payload, err := EncodeChunk(tc.name, tc.value)
			require.NoError(t, err)
			require.Equal(t, tc.tag, tag)

			decoded, err := DecodeChunk(tc.name, tag, payload)
			require.NoError(t, err)
			require.Equal(t, tc.value, decoded)
		})
	}
}

func TestDecodeChunk_WrongPayloadLength(t *testing.T) {
	_, err := DecodeChunk("Alpha", ChunkFloat32, []byte{1, 2, 3})
	require.Error(t, err)
}

func TestDecodeChunk_UnknownTag(t *testing.T) {
	_, err := DecodeChunk("X", ChunkType(99), []byte{1, 2, 3, 4})
	require.Error(t, err)
}
