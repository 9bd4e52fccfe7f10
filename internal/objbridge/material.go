package objbridge

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/ironleaf-tools/ntfcore/internal/mesh"
)

// ReadMaterials parses the companion material file into a map keyed by
// each material's newmtl name. Texture filenames are normalized to a
// ".dds" extension (case-insensitive) as they're assigned to a shader
// field, since that's the only texture format the engine loads.
func ReadMaterials(r io.Reader) (map[string]mesh.Shader, error) {
	materials := make(map[string]mesh.Shader)
	var name string
	var cur mesh.Shader

	flush := func() {
		if name != "" {
			cur.Name = name
			materials[name] = cur
		}
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
		case "newmtl":
			flush()
			name = ""
			cur = mesh.Shader{}
			if len(fields) > 1 {
				name = fields[1]
			}
		case "Kd":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: Kd: %w", lineNo, err)
			}
			cur.DestColor = [4]float32{v[0], v[1], v[2], 1}
		case "Ks":
			v, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("line %d: Ks: %w", lineNo, err)
			}
			cur.SpecColor[0], cur.SpecColor[1], cur.SpecColor[2] = v[0], v[1], v[2]
		case "Ns":
			f, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: Ns: %w", lineNo, err)
			}
			cur.SpecColor[3] = float32(f)
		case "d":
			f, err := strconv.ParseFloat(fields[1], 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: d: %w", lineNo, err)
			}
			cur.Alpha = float32(f)
		case "map_Kd":
			cur.TexS0 = normalizeToDDS(fields[len(fields)-1])
		case "map_bump", "bump":
			cur.TexS1 = normalizeToDDS(fields[len(fields)-1])
		case "map_Ka":
			cur.TexS2 = normalizeToDDS(fields[len(fields)-1])
		case "Ka", "Ni", "illum":
			// not represented in the shader model.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flush()
	return materials, nil
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	for i := 0; i < 3; i++ {
		f, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return out, err
		}
		out[i] = float32(f)
	}
	return out, nil
}

// normalizeToDDS replaces any extension other than ".dds" (matched
// case-insensitively) with ".dds".
func normalizeToDDS(name string) string {
	dot := strings.LastIndexByte(name, '.')
	if dot < 0 {
		return name + ".dds"
	}
	if strings.EqualFold(name[dot:], ".dds") {
		return name
	}
	return name[:dot] + ".dds"
}

// WriteMaterials emits one newmtl block per distinct material name
// found across groups, in first-seen order.
func WriteMaterials(w io.Writer, groups []mesh.Group) error {
	bw := bufio.NewWriter(w)

	seen := make(map[string]bool)
	for _, g := range groups {
		name := g.Material.Name
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		s := g.Material

		if _, err := fmt.Fprintf(bw, "newmtl %s\n", name); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "Kd %s %s %s\n", ftoa(s.DestColor[0]), ftoa(s.DestColor[1]), ftoa(s.DestColor[2])); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "Ks %s %s %s\n", ftoa(s.SpecColor[0]), ftoa(s.SpecColor[1]), ftoa(s.SpecColor[2])); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "Ns %s\n", ftoa(s.SpecColor[3])); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "d %s\n", ftoa(s.Alpha)); err != nil {
			return err
		}
		if s.TexS0 != "" {
			if _, err := fmt.Fprintf(bw, "map_Kd %s\n", s.TexS0); err != nil {
				return err
			}
		}
		if s.TexS1 != "" {
			if _, err := fmt.Fprintf(bw, "map_bump %s\n", s.TexS1); err != nil {
				return err
			}
		}
		if s.TexS2 != "" {
			if _, err := fmt.Fprintf(bw, "map_Ka %s\n", s.TexS2); err != nil {
				return err
			}
		}
	}

	return bw.Flush()
}
