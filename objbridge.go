package ntf

import (
	"io"

	"github.com/ironleaf-tools/ntfcore/internal/objbridge"
)

// ReadMesh parses the textual interchange format from r into one
// Group per logical mesh group. materials, if non-nil, resolves each
// group's usemtl name into a full Shader.
func ReadMesh(r io.Reader, materials map[string]Shader) ([]Group, error) {
	return objbridge.ReadMesh(r, materials)
}

// WriteMesh emits groups in the textual interchange format. uv1 is
// never written — it survives only via the skeleton.
func WriteMesh(w io.Writer, groups []Group) error {
	return objbridge.WriteMesh(w, groups)
}

// ReadMaterials parses the companion material file into a map keyed by
// each material's name.
func ReadMaterials(r io.Reader) (map[string]Shader, error) {
	return objbridge.ReadMaterials(r)
}

// WriteMaterials emits one material block per distinct material name
// found across groups.
func WriteMaterials(w io.Writer, groups []Group) error {
	return objbridge.WriteMaterials(w, groups)
}
