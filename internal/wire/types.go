package wire

// ChunkType is the on-disk type tag for a Chunk payload. Tag 20 is
// dual-shaped: it decodes to a float vec4 for every chunk name except
// "LPos", which decodes to an int vec4. The dispatcher keys on name
// equality, never on heuristics over the bytes themselves.
type ChunkType uint8

const (
	ChunkInt32   ChunkType = 17
	ChunkUint32  ChunkType = 18
	ChunkFloat32 ChunkType = 19
	ChunkVec4    ChunkType = 20
	ChunkMat4    ChunkType = 21
	ChunkString  ChunkType = 22
	ChunkRaw     ChunkType = 23
)

// lposName is the one chunk name that forces the integer variant of tag 20.
const lposName = "LPos"

// IsVec4IntName reports whether name forces the tag-20 int variant.
func IsVec4IntName(name string) bool { return name == lposName }

// ChunkValue is the sum type over the eight chunk payload shapes. Each
// concrete type below implements it; Tag reports the on-disk type tag
// it encodes to.
type ChunkValue interface {
	Tag() ChunkType
}

// Int32Value is an ChunkInt32 payload (signed 32-bit integer).
type Int32Value int32

// Tag implements ChunkValue.
func (Int32Value) Tag() ChunkType { return ChunkInt32 }

// Uint32Value is a ChunkUint32 payload (unsigned 32-bit integer).
type Uint32Value uint32

// Tag implements ChunkValue.
func (Uint32Value) Tag() ChunkType { return ChunkUint32 }

// Float32Value is a ChunkFloat32 payload.
type Float32Value float32

// Tag implements ChunkValue.
func (Float32Value) Tag() ChunkType { return ChunkFloat32 }

// Vec4FValue is the float variant of a ChunkVec4 payload.
type Vec4FValue [4]float32

// Tag implements ChunkValue.
func (Vec4FValue) Tag() ChunkType { return ChunkVec4 }

// Vec4IValue is the int variant of a ChunkVec4 payload, used only for
// chunks named "LPos".
type Vec4IValue [4]int32

// Tag implements ChunkValue.
func (Vec4IValue) Tag() ChunkType { return ChunkVec4 }

// Mat4Value is a ChunkMat4 payload: 16 floats, row-major as stored.
type Mat4Value [16]float32

// Tag implements ChunkValue.
func (Mat4Value) Tag() ChunkType { return ChunkMat4 }

// StringValue is a ChunkString payload. The raw bytes are preserved
// exactly (no trimming, no encoding normalization) to keep round-trips
// byte-identical.
type StringValue string

// Tag implements ChunkValue.
func (StringValue) Tag() ChunkType { return ChunkString }

// RawValue is a ChunkRaw payload. Tag-20 chunks never decode to it:
// DecodeChunk turns every tag-20 chunk into Vec4IValue or Vec4FValue.
type RawValue []byte

// Tag implements ChunkValue.
func (RawValue) Tag() ChunkType { return ChunkRaw }

// Entry is either a *Chunk or a *Child, in the order they appeared on
// disk. Order is load-bearing: §3 requires it be preserved exactly.
type Entry interface {
	isEntry()
}

// Chunk is a leaf entry: a named, typed payload.
type Chunk struct {
	Name  string
	Type  ChunkType
	Value ChunkValue
}

func (*Chunk) isEntry() {}

// Child is a non-leaf entry: a typed container of further entries.
type Child struct {
	ChildType int32
	Entries   []Entry
}

func (*Child) isEntry() {}

// Tree is the parsed, in-memory form of one NTF file: an ordered
// sequence of top-level entries following the magic header.
type Tree struct {
	Entries []Entry
}

// Magic is the 4-byte NTF file signature, 0xF6 0x66 0x99 0x9F on disk
// (0x9F9966F6 read as a little-endian uint32).
var Magic = [4]byte{0xF6, 0x66, 0x99, 0x9F}

// FindChunk returns the first direct Chunk entry named name, if any.
func (c *Child) FindChunk(name string) (*Chunk, bool) {
	for _, e := range c.Entries {
		if ch, ok := e.(*Chunk); ok && ch.Name == name {
			return ch, true
		}
	}
	return nil, false
}

// FindChild returns the first direct Child entry of the given type.
func (c *Child) FindChild(childType int32) (*Child, bool) {
	for _, e := range c.Entries {
		if ch, ok := e.(*Child); ok && ch.ChildType == childType {
			return ch, true
		}
	}
	return nil, false
}

// Children returns every direct Child entry of the given type, in order.
func (c *Child) Children(childType int32) []*Child {
	var out []*Child
	for _, e := range c.Entries {
		if ch, ok := e.(*Child); ok && ch.ChildType == childType {
			out = append(out, ch)
		}
	}
	return out
}

// TopChildren returns every top-level Child entry of the given type, in order.
func (t *Tree) TopChildren(childType int32) []*Child {
	var out []*Child
	for _, e := range t.Entries {
		if ch, ok := e.(*Child); ok && ch.ChildType == childType {
			out = append(out, ch)
		}
	}
	return out
}
