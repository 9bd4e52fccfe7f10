package wire

import (
	"encoding/binary"
	"math"

	"github.com/ironleaf-tools/ntfcore/internal/errs"
)

// expectedPayloadLen reports the fixed payload width for tag, or -1 if
// the shape is variable-length (string/raw, which consume the entire
// remainder of the node).
func expectedPayloadLen(tag ChunkType) int {
	switch tag {
	case ChunkInt32, ChunkUint32, ChunkFloat32:
		return 4
	case ChunkVec4:
		return 16
	case ChunkMat4:
		return 64
	case ChunkString, ChunkRaw:
		return -1
	default:
		return -1
	}
}

// DecodeChunk interprets payload (already sliced to the node's exact
// payload length by TreeCodec) as tag's shape. The int/float variant of
// tag 20 is resolved solely by name equality to "LPos", per §4.2.
func DecodeChunk(name string, tag ChunkType, payload []byte) (ChunkValue, error) {
	want := expectedPayloadLen(tag)
	if want >= 0 && len(payload) != want {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "chunk %q: tag %d expects %d payload bytes, got %d", name, tag, want, len(payload))
	}

	switch tag {
	case ChunkInt32:
		return Int32Value(int32(binary.LittleEndian.Uint32(payload))), nil
	case ChunkUint32:
		return Uint32Value(binary.LittleEndian.Uint32(payload)), nil
	case ChunkFloat32:
		return Float32Value(math.Float32frombits(binary.LittleEndian.Uint32(payload))), nil
	case ChunkVec4:
		if IsVec4IntName(name) {
			var v Vec4IValue
			for i := 0; i < 4; i++ {
				v[i] = int32(binary.LittleEndian.Uint32(payload[i*4:]))
			}
			return v, nil
		}
		var v Vec4FValue
		for i := 0; i < 4; i++ {
			v[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		return v, nil
	case ChunkMat4:
		var v Mat4Value
		for i := 0; i < 16; i++ {
			v[i] = math.Float32frombits(binary.LittleEndian.Uint32(payload[i*4:]))
		}
		return v, nil
	case ChunkString:
		// Copy: payload aliases the parse buffer, and strings must not
		// retain it.
		return StringValue(string(payload)), nil
	case ChunkRaw:
		cp := make([]byte, len(payload))
		copy(cp, payload)
		return RawValue(cp), nil
	default:
		return nil, errs.Wrapf(errs.ErrUnknownChunkTag, "tag %d", tag)
	}
}

// EncodeChunk serializes value to its on-disk payload bytes. The tag-20
// int variant is emitted iff name is "LPos", matching DecodeChunk.
func EncodeChunk(name string, value ChunkValue) (ChunkType, []byte, error) {
	switch v := value.(type) {
	case Int32Value:
		return ChunkInt32, u32le(uint32(int32(v))), nil
	case Uint32Value:
		return ChunkUint32, u32le(uint32(v)), nil
	case Float32Value:
		return ChunkFloat32, u32le(math.Float32bits(float32(v))), nil
	case Vec4FValue:
		if IsVec4IntName(name) {
			return 0, nil, errs.Wrapf(errs.ErrCorruptNode, "chunk %q: float vec4 value under int-variant name", name)
		}
		buf := make([]byte, 16)
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
		}
		return ChunkVec4, buf, nil
	case Vec4IValue:
		if !IsVec4IntName(name) {
			return 0, nil, errs.Wrapf(errs.ErrCorruptNode, "chunk %q: int vec4 value under float-variant name", name)
		}
		buf := make([]byte, 16)
		for i := 0; i < 4; i++ {
			binary.LittleEndian.PutUint32(buf[i*4:], uint32(v[i]))
		}
		return ChunkVec4, buf, nil
	case Mat4Value:
		buf := make([]byte, 64)
		for i := 0; i < 16; i++ {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v[i]))
		}
		return ChunkMat4, buf, nil
	case StringValue:
		return ChunkString, []byte(v), nil
	case RawValue:
		cp := make([]byte, len(v))
		copy(cp, v)
		return ChunkRaw, cp, nil
	default:
		return 0, nil, errs.Wrapf(errs.ErrUnknownChunkTag, "unhandled ChunkValue %T", value)
	}
}

func u32le(v uint32) []byte {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, v)
	return buf
}
