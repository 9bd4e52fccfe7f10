package objbridge

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironleaf-tools/ntfcore/internal/mesh"
)

// vertexKey identifies a unique (position, uv0) combination within a
// group so that faces sharing a corner share a vertex, the way a fan
// of triangles around a shared point should.
type vertexKey struct {
	v, vt int
}

type groupBuilder struct {
	name      string
	material  string
	vertices  []mesh.Vertex
	triangles []mesh.Triangle
	index     map[vertexKey]uint16
}

// ReadMesh parses the interchange format from r into one Group per
// logical mesh group. materials, if non-nil, is consulted to resolve
// each group's usemtl name into a full Shader; groups referencing a
// name absent from materials still get their Name field set from the
// usemtl token.
func ReadMesh(r io.Reader, materials map[string]mesh.Shader) ([]mesh.Group, error) {
	var positions []mesh.Vec3
	var uvs [][2]float32
	var normals []mesh.Vec3

	var builders []*groupBuilder
	var cur *groupBuilder
	var pendingName, pendingMaterial string
	pendingSet := false

	// resolveGroup applies any buffered g/usemtl directives the moment
	// the first face that needs them shows up. Deferring the decision
	// this way means "g"/"usemtl" can appear in either order without
	// the merge-if-consecutive-material rule depending on which one
	// was seen first.
	resolveGroup := func() *groupBuilder {
		if cur != nil && !pendingSet {
			return cur
		}
		name := pendingName
		material := pendingMaterial
		if cur != nil {
			if name == "" {
				name = cur.name
			}
			if material == "" {
				material = cur.material
			}
		}
		if cur != nil && material != "" && material == cur.material {
			cur.name = name
			pendingSet = false
			return cur
		}
		if name == "" {
			name = "default"
		}
		gb := &groupBuilder{name: name, material: material, index: make(map[vertexKey]uint16)}
		builders = append(builders, gb)
		cur = gb
		pendingSet = false
		return cur
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad vertex: %w", lineNo, err)
			}
			positions = append(positions, p)
		case "vn":
			n, err := parseVec3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: bad normal: %w", lineNo, err)
			}
			normals = append(normals, n)
		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("line %d: bad texture coordinate", lineNo)
			}
			u, err1 := strconv.ParseFloat(fields[1], 32)
			v, err2 := strconv.ParseFloat(fields[2], 32)
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("line %d: bad texture coordinate", lineNo)
			}
			uvs = append(uvs, [2]float32{float32(u), float32(v)})
		case "g":
			if len(fields) > 1 {
				pendingName = fields[1]
				pendingSet = true
			}
		case "usemtl":
			if len(fields) < 2 {
				return nil, fmt.Errorf("line %d: usemtl missing a name", lineNo)
			}
			pendingMaterial = fields[1]
			pendingSet = true
		case "mtllib":
			// material libraries are resolved by the caller and passed
			// in via materials; the directive itself carries no data
			// this core needs to act on.
		case "f":
			g := resolveGroup()
			if err := addFace(g, fields[1:], positions, uvs, normals); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			pendingName, pendingMaterial = "", ""
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	groups := make([]mesh.Group, 0, len(builders))
	for _, gb := range builders {
		if len(gb.triangles) == 0 {
			continue
		}
		g := mesh.Group{
			Name:         gb.name,
			VertexFormat: 1,
			Vertices:     gb.vertices,
			Triangles:    gb.triangles,
		}
		if sh, ok := materials[gb.material]; ok {
			g.Material = sh
		}
		g.Material.Name = gb.material
		groups = append(groups, g)
	}
	return groups, nil
}

func addFace(gb *groupBuilder, corners []string, positions []mesh.Vec3, uvs [][2]float32, normals []mesh.Vec3) error {
	if len(corners) < 3 {
		return fmt.Errorf("face has fewer than 3 corners")
	}

	type resolved struct {
		vIdx, vtIdx, vnIdx int
		hasVt, hasVn       bool
	}
	resolvedCorners := make([]resolved, len(corners))
	for i, c := range corners {
		vIdx, vtIdx, vnIdx, hasVt, hasVn, err := parseFaceCorner(c, len(positions), len(uvs), len(normals))
		if err != nil {
			return err
		}
		resolvedCorners[i] = resolved{vIdx, vtIdx, vnIdx, hasVt, hasVn}
	}

	faceNormal := mesh.Vec3{}
	needsFaceNormal := false
	for _, rc := range resolvedCorners {
		if !rc.hasVn {
			needsFaceNormal = true
		}
	}
	if needsFaceNormal {
		p0 := positions[resolvedCorners[0].vIdx]
		p1 := positions[resolvedCorners[1].vIdx]
		p2 := positions[resolvedCorners[2].vIdx]
		faceNormal = p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
	}

	corner := func(rc resolved) uint16 {
		vt := -1
		if rc.hasVt {
			vt = rc.vtIdx
		}
		key := vertexKey{rc.vIdx, vt}
		if idx, ok := gb.index[key]; ok {
			n := gb.vertices[idx].Normal
			var add mesh.Vec3
			if rc.hasVn {
				add = normals[rc.vnIdx]
			} else {
				add = faceNormal
			}
			gb.vertices[idx].Normal = n.Add(add).Normalize()
			return idx
		}

		var uv0 [2]float32
		if rc.hasVt {
			uv0 = uvs[rc.vtIdx]
		}
		n := faceNormal
		if rc.hasVn {
			n = normals[rc.vnIdx]
		}
		v := mesh.Vertex{Pos: positions[rc.vIdx], Normal: n, UV0: uv0}
		idx := uint16(len(gb.vertices))
		gb.vertices = append(gb.vertices, v)
		gb.index[key] = idx
		return idx
	}

	first := corner(resolvedCorners[0])
	prev := corner(resolvedCorners[1])
	for i := 2; i < len(resolvedCorners); i++ {
		next := corner(resolvedCorners[i])
		gb.triangles = append(gb.triangles, mesh.Triangle{first, prev, next})
		prev = next
	}
	return nil
}

// parseFaceCorner decodes one "v", "v/vt", "v//vn" or "v/vt/vn" token.
// 1-based indices are converted to 0-based; negative indices count
// back from the end of the respective list as it stands when the face
// line is read (numV, numVt, numVn).
func parseFaceCorner(tok string, numV, numVt, numVn int) (vIdx, vtIdx, vnIdx int, hasVt, hasVn bool, err error) {
	parts := strings.Split(tok, "/")
	vIdx, err = resolveIndex(parts[0], numV)
	if err != nil {
		return 0, 0, 0, false, false, fmt.Errorf("bad vertex index %q: %w", tok, err)
	}
	if len(parts) >= 2 && parts[1] != "" {
		vtIdx, err = resolveIndex(parts[1], numVt)
		if err != nil {
			return 0, 0, 0, false, false, fmt.Errorf("bad texture index %q: %w", tok, err)
		}
		hasVt = true
	}
	if len(parts) >= 3 && parts[2] != "" {
		vnIdx, err = resolveIndex(parts[2], numVn)
		if err != nil {
			return 0, 0, 0, false, false, fmt.Errorf("bad normal index %q: %w", tok, err)
		}
		hasVn = true
	}
	return vIdx, vtIdx, vnIdx, hasVt, hasVn, nil
}

func resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return n - 1, nil
	}
	if n < 0 {
		return count + n, nil
	}
	return 0, fmt.Errorf("index 0 is not valid (indices are 1-based)")
}

func parseVec3(fields []string) (mesh.Vec3, error) {
	if len(fields) < 3 {
		return mesh.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out mesh.Vec3
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return mesh.Vec3{}, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// WriteMesh emits groups in the interchange format: positions, uv0 and
// per-vertex normals, followed by a g/usemtl header and triangle list
// for each group. uv1 is intentionally never written — it survives
// only via the skeleton.
func WriteMesh(w io.Writer, groups []mesh.Group) error {
	bw := bufio.NewWriter(w)

	vOffset, vtOffset := 1, 1
	for _, g := range groups {
		for _, v := range g.Vertices {
			if _, err := fmt.Fprintf(bw, "v %s %s %s\n", ftoa(v.Pos[0]), ftoa(v.Pos[1]), ftoa(v.Pos[2])); err != nil {
				return err
			}
		}
		for _, v := range g.Vertices {
			if _, err := fmt.Fprintf(bw, "vt %s %s\n", ftoa(v.UV0[0]), ftoa(v.UV0[1])); err != nil {
				return err
			}
		}
		for _, v := range g.Vertices {
			if _, err := fmt.Fprintf(bw, "vn %s %s %s\n", ftoa(v.Normal[0]), ftoa(v.Normal[1]), ftoa(v.Normal[2])); err != nil {
				return err
			}
		}

		name := g.Name
		if name == "" {
			name = "group"
		}
		if _, err := fmt.Fprintf(bw, "g %s\n", name); err != nil {
			return err
		}
		if g.Material.Name != "" {
			if _, err := fmt.Fprintf(bw, "usemtl %s\n", g.Material.Name); err != nil {
				return err
			}
		}

		for _, tri := range g.Triangles {
			a := vOffset + int(tri[0])
			b := vOffset + int(tri[1])
			c := vOffset + int(tri[2])
			ta := vtOffset + int(tri[0])
			tb := vtOffset + int(tri[1])
			tc := vtOffset + int(tri[2])
			if _, err := fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, ta, a, b, tb, b, c, tc, c); err != nil {
				return err
			}
		}

		vOffset += len(g.Vertices)
		vtOffset += len(g.Vertices)
	}

	return bw.Flush()
}

func ftoa(f float32) string {
	return strconv.FormatFloat(float64(f), 'f', -1, 32)
}
