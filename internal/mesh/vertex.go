package mesh

import (
	"encoding/binary"
	"math"

	"github.com/ironleaf-tools/ntfcore/internal/errs"
)

// VertexFormat1Stride is the fixed on-disk size of one Vertex Format 1 record.
const VertexFormat1Stride = 36

// Vertex is one decoded Vertex Format 1 record.
type Vertex struct {
	Pos      Vec3
	Normal   Vec3
	NormalW  uint8
	Tangent  Vec3
	TangentW uint8
	UV0      [2]float32
	UV1      [2]float32
}

// DecodeUBYTE4N unpacks a UBYTE4N-encoded vector: the first three bytes
// decode with the engine's asymmetric (byte-128)/127 convention, and the
// fourth is preserved verbatim as an opaque byte rather than decoded —
// callers round-trip it through EncodeUBYTE4N to keep unedited data
// byte-identical.
func DecodeUBYTE4N(b [4]byte) (v Vec3, w uint8) {
	v = Vec3{
		ubyteToFloat(b[0]),
		ubyteToFloat(b[1]),
		ubyteToFloat(b[2]),
	}
	return v, b[3]
}

// EncodeUBYTE4N packs v and the opaque 4th byte w back to UBYTE4N bytes.
func EncodeUBYTE4N(v Vec3, w uint8) [4]byte {
	return [4]byte{
		floatToUbyte(v[0]),
		floatToUbyte(v[1]),
		floatToUbyte(v[2]),
		w,
	}
}

func ubyteToFloat(b byte) float32 {
	return (float32(b) - 128) / 127.0
}

func floatToUbyte(f float32) byte {
	v := math.Round(float64(f)*127.0 + 128.0)
	if v < 0 {
		v = 0
	}
	if v > 255 {
		v = 255
	}
	return byte(v)
}

// DecodeVertexBuffer decodes a Vertex Format 1 buffer (36 bytes/vertex)
// into count Vertex records.
func DecodeVertexBuffer(data []byte, count int) ([]Vertex, error) {
	want := count * VertexFormat1Stride
	if len(data) != want {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "vertex buffer length %d does not match %d vertices * %d bytes", len(data), count, VertexFormat1Stride)
	}

	out := make([]Vertex, count)
	for i := 0; i < count; i++ {
		rec := data[i*VertexFormat1Stride : (i+1)*VertexFormat1Stride]

		var vtx Vertex
		vtx.Pos = Vec3{
			readF32(rec[0:4]),
			readF32(rec[4:8]),
			readF32(rec[8:12]),
		}
		vtx.Normal, vtx.NormalW = DecodeUBYTE4N([4]byte{rec[12], rec[13], rec[14], rec[15]})
		vtx.Tangent, vtx.TangentW = DecodeUBYTE4N([4]byte{rec[16], rec[17], rec[18], rec[19]})
		vtx.UV0 = [2]float32{readF32(rec[20:24]), readF32(rec[24:28])}
		vtx.UV1 = [2]float32{readF32(rec[28:32]), readF32(rec[32:36])}

		out[i] = vtx
	}
	return out, nil
}

// EncodeVertexBuffer serializes vertices back to the 36-byte Vertex
// Format 1 stride.
func EncodeVertexBuffer(vertices []Vertex) []byte {
	out := make([]byte, len(vertices)*VertexFormat1Stride)
	for i, v := range vertices {
		rec := out[i*VertexFormat1Stride : (i+1)*VertexFormat1Stride]

		writeF32(rec[0:4], v.Pos[0])
		writeF32(rec[4:8], v.Pos[1])
		writeF32(rec[8:12], v.Pos[2])

		n := EncodeUBYTE4N(v.Normal, v.NormalW)
		copy(rec[12:16], n[:])
		tg := EncodeUBYTE4N(v.Tangent, v.TangentW)
		copy(rec[16:20], tg[:])

		writeF32(rec[20:24], v.UV0[0])
		writeF32(rec[24:28], v.UV0[1])
		writeF32(rec[28:32], v.UV1[0])
		writeF32(rec[32:36], v.UV1[1])
	}
	return out
}

func readF32(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func writeF32(b []byte, f float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(f))
}

// DecodeIndexBuffer decodes a flat little-endian u16 index buffer (the
// Faces chunk payload) into triangle triples. numFaces is the *index*
// count (§4.6), not the triangle count; it must be a multiple of three.
func DecodeIndexBuffer(data []byte, numFaces uint32) ([][3]uint16, error) {
	if numFaces%3 != 0 {
		return nil, errs.Wrapf(errs.ErrIndexCountNotMultipleOf3, "NumFaces=%d", numFaces)
	}
	want := int(numFaces) * 2
	if len(data) != want {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "faces buffer length %d does not match NumFaces %d (%d bytes)", len(data), numFaces, want)
	}

	triCount := int(numFaces) / 3
	out := make([][3]uint16, triCount)
	for i := 0; i < triCount; i++ {
		base := i * 6
		out[i] = [3]uint16{
			binary.LittleEndian.Uint16(data[base : base+2]),
			binary.LittleEndian.Uint16(data[base+2 : base+4]),
			binary.LittleEndian.Uint16(data[base+4 : base+6]),
		}
	}
	return out, nil
}

// EncodeIndexBuffer flattens triangles back to the Faces chunk's raw
// u16 index payload, and returns the NumFaces (index count) to store
// alongside it.
func EncodeIndexBuffer(triangles [][3]uint16) (data []byte, numFaces uint32) {
	out := make([]byte, len(triangles)*6)
	for i, tri := range triangles {
		base := i * 6
		binary.LittleEndian.PutUint16(out[base:base+2], tri[0])
		binary.LittleEndian.PutUint16(out[base+2:base+4], tri[1])
		binary.LittleEndian.PutUint16(out[base+4:base+6], tri[2])
	}
	return out, uint32(len(triangles) * 3)
}
