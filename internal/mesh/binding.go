package mesh

import (
	"github.com/ironleaf-tools/ntfcore/internal/errs"
	"github.com/ironleaf-tools/ntfcore/internal/wire"
)

// MaxVertices is the per-group vertex count ceiling imposed by the
// 16-bit triangle index space (§4.6).
const MaxVertices = 65535

// ExtractGroups walks every top-level Child of type -254 and decodes
// its mesh payload and nested shader into a Group.
func ExtractGroups(tree *wire.Tree) ([]Group, error) {
	groupChildren := tree.TopChildren(wire.ChildTypeMeshGroup)
	groups := make([]Group, 0, len(groupChildren))
	for _, gc := range groupChildren {
		g, err := extractGroup(gc)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func extractGroup(gc *wire.Child) (Group, error) {
	name, err := requireString(gc, "Name")
	if err != nil {
		return Group{}, err
	}
	vf, err := requireInt32(gc, "VertexFormat")
	if err != nil {
		return Group{}, err
	}
	numVertexes, err := requireUint32(gc, "NumVertexes")
	if err != nil {
		return Group{}, err
	}
	numFaces, err := requireUint32(gc, "NumFaces")
	if err != nil {
		return Group{}, err
	}
	vertexBytes, err := requireRaw(gc, "Vertexes")
	if err != nil {
		return Group{}, err
	}
	faceBytes, err := requireRaw(gc, "Faces")
	if err != nil {
		return Group{}, err
	}

	if vf != 1 {
		return Group{}, errs.Wrapf(errs.ErrUnsupportedVertexFormat, "group %q: VertexFormat=%d", name, vf)
	}

	vertices, err := DecodeVertexBuffer(vertexBytes, int(numVertexes))
	if err != nil {
		return Group{}, errs.Wrap("group "+name, err)
	}
	triangles, err := DecodeIndexBuffer(faceBytes, numFaces)
	if err != nil {
		return Group{}, errs.Wrap("group "+name, err)
	}

	shaderChild, ok := gc.FindChild(wire.ChildTypeShader)
	if !ok {
		return Group{}, errs.Wrapf(errs.ErrMissingRequiredChunk, "group %q: no shader child", name)
	}
	shader := extractShader(shaderChild)

	return Group{
		Name:         name,
		VertexFormat: vf,
		Vertices:     vertices,
		Triangles:    triangles,
		Material:     shader,
	}, nil
}

var shaderKnownFields = map[string]bool{
	"Name": true, "ShaderName": true, "TexS0": true, "TexS1": true, "TexS2": true,
	"DestColor": true, "SpecColor": true, "Alpha": true, "NearRange": true, "FarRange": true,
}

func extractShader(sc *wire.Child) Shader {
	var s Shader
	s.Name, _ = optionalString(sc, "Name")
	s.ShaderName, _ = optionalString(sc, "ShaderName")
	s.TexS0, _ = optionalString(sc, "TexS0")
	s.TexS1, _ = optionalString(sc, "TexS1")
	s.TexS2, _ = optionalString(sc, "TexS2")
	if v, ok := optionalVec4F(sc, "DestColor"); ok {
		s.DestColor = v
	}
	if v, ok := optionalVec4F(sc, "SpecColor"); ok {
		s.SpecColor = v
	}
	s.Alpha, _ = optionalFloat32(sc, "Alpha")
	s.NearRange, _ = optionalFloat32(sc, "NearRange")
	s.FarRange, _ = optionalFloat32(sc, "FarRange")

	for _, e := range sc.Entries {
		if c, ok := e.(*wire.Chunk); ok && !shaderKnownFields[c.Name] {
			s.Extra = append(s.Extra, c)
		}
	}
	return s
}

// ExtractLocators walks every top-level Child of type 5 (Locator) and
// decodes its IsLocator/LPos/LDir fields.
func ExtractLocators(tree *wire.Tree) ([]Locator, error) {
	var out []Locator
	for _, lc := range tree.TopChildren(wire.ChildTypeLocator) {
		var loc Locator
		loc.Name, _ = optionalString(lc, "Name")
		if v, ok := optionalInt32(lc, "IsLocator"); ok {
			loc.IsLocator = v
		}
		if v, ok := optionalVec4I(lc, "LPos"); ok {
			loc.LPos = v
		}
		if v, ok := optionalVec4F(lc, "LDir"); ok {
			loc.LDir = v
		}
		out = append(out, loc)
	}
	return out, nil
}

// InjectGroups overwrites the mesh payload chunks of the tree's -254
// Children with groups, matched by position. It recomputes each
// group's bounding box into whichever of BBoxMin/BBoxMax/TMin/TMax the
// group already carries; a missing one is not added.
// On any error the tree is left completely unmodified — validation runs
// to completion before any chunk is mutated.
func InjectGroups(tree *wire.Tree, groups []Group) error {
	targets := tree.TopChildren(wire.ChildTypeMeshGroup)
	if len(targets) != len(groups) {
		return errs.Wrapf(errs.ErrSkeletonMismatch, "tree has %d mesh groups, supplied %d", len(targets), len(groups))
	}

	type plannedWrite struct {
		child       *wire.Child
		vertexBytes []byte
		numVertexes uint32
		faceBytes   []byte
		numFaces    uint32
		bboxMin     Vec3
		bboxMax     Vec3
	}

	plans := make([]plannedWrite, len(groups))
	for i, g := range groups {
		if len(g.Vertices) > MaxVertices {
			return errs.Wrapf(errs.ErrTooManyVertices, "group %q: %d vertices exceeds %d", g.Name, len(g.Vertices), MaxVertices)
		}
		if _, ok := targets[i].FindChunk("NumVertexes"); !ok {
			return errs.Wrapf(errs.ErrMissingRequiredChunk, "group %d: NumVertexes", i)
		}
		if _, ok := targets[i].FindChunk("NumFaces"); !ok {
			return errs.Wrapf(errs.ErrMissingRequiredChunk, "group %d: NumFaces", i)
		}
		if _, ok := targets[i].FindChunk("Vertexes"); !ok {
			return errs.Wrapf(errs.ErrMissingRequiredChunk, "group %d: Vertexes", i)
		}
		if _, ok := targets[i].FindChunk("Faces"); !ok {
			return errs.Wrapf(errs.ErrMissingRequiredChunk, "group %d: Faces", i)
		}

		faceBytes, numFaces := EncodeIndexBuffer(g.Triangles)
		bmin, bmax := boundingBox(g.Vertices)

		plans[i] = plannedWrite{
			child:       targets[i],
			vertexBytes: EncodeVertexBuffer(g.Vertices),
			numVertexes: uint32(len(g.Vertices)),
			faceBytes:   faceBytes,
			numFaces:    numFaces,
			bboxMin:     bmin,
			bboxMax:     bmax,
		}
	}

	for _, p := range plans {
		setRaw(p.child, "Vertexes", p.vertexBytes)
		setUint32(p.child, "NumVertexes", p.numVertexes)
		setRaw(p.child, "Faces", p.faceBytes)
		setUint32(p.child, "NumFaces", p.numFaces)

		setVec4FIfPresent(p.child, "BBoxMin", vec4From(p.bboxMin, 1))
		setVec4FIfPresent(p.child, "BBoxMax", vec4From(p.bboxMax, 1))
		setVec4FIfPresent(p.child, "TMin", vec4From(p.bboxMin, 1))
		setVec4FIfPresent(p.child, "TMax", vec4From(p.bboxMax, 1))
	}
	return nil
}

func vec4From(v Vec3, w float32) [4]float32 { return [4]float32{v[0], v[1], v[2], w} }

func boundingBox(vertices []Vertex) (min, max Vec3) {
	if len(vertices) == 0 {
		return Vec3{}, Vec3{}
	}
	min, max = vertices[0].Pos, vertices[0].Pos
	for _, v := range vertices[1:] {
		min = min.Min(v.Pos)
		max = max.Max(v.Pos)
	}
	return min, max
}
