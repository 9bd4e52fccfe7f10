package wire

// ChunkSchema is the de-facto binding between well-known chunk names and
// their ChunkType, reverse-engineered from the corpus (§3 invariants).
// It is exposed for callers through LookupExpectedType. Neither Parse
// nor Write consults it: Parse accepts any tag under any name, and
// Write takes each chunk's tag from the Go type of its value (with the
// LPos name rule for tag 20), not from this table.
var ChunkSchema = map[string]ChunkType{
	"Name":         ChunkString,
	"ShaderName":   ChunkString,
	"TexS0":        ChunkString,
	"TexS1":        ChunkString,
	"TexS2":        ChunkString,
	"AniFileName":  ChunkString,
	"NumVertexes":  ChunkUint32,
	"NumFaces":     ChunkUint32,
	"Vertexes":     ChunkRaw,
	"Faces":        ChunkRaw,
	"VertexFormat": ChunkInt32,
	"Type":         ChunkInt32,
	"IsLocator":    ChunkInt32,
	"Alpha":        ChunkFloat32,
	"NearRange":    ChunkFloat32,
	"FarRange":     ChunkFloat32,
	"DestColor":    ChunkVec4,
	"SpecColor":    ChunkVec4,
	"LDir":         ChunkVec4,
	"BBoxMin":      ChunkVec4,
	"BBoxMax":      ChunkVec4,
	"TMin":         ChunkVec4,
	"TMax":         ChunkVec4,
	"LPos":         ChunkVec4, // int variant, see IsVec4IntName
}

// LookupExpectedType reports the schema-expected ChunkType for name, if
// the name is one of the well-known ones.
func LookupExpectedType(name string) (ChunkType, bool) {
	t, ok := ChunkSchema[name]
	return t, ok
}

// Known child type tags (§3, §4.6, GLOSSARY).
const (
	ChildTypeMeshGroup int32 = -254
	ChildTypeShader    int32 = -253
	ChildTypeLocator   int32 = 5
)
