package ntf

import (
	"encoding/base64"
	"encoding/json"

	"github.com/ironleaf-tools/ntfcore/internal/skeleton"
)

// SkeletonRecord is the sidecar JSON document a shell persists
// alongside an exported mesh so a later edit cycle can restore
// everything the exchange format doesn't carry. RawSkeleton is the
// only authoritative field on injection; the rest are redundant,
// human-inspectable summaries.
type SkeletonRecord struct {
	RawSkeleton   string   `json:"raw_ntf_skeleton"`
	MeshGroups    int      `json:"mesh_group_count"`
	ShaderNames   []string `json:"shader_names,omitempty"`
	SourceVersion string   `json:"source_version,omitempty"`
}

// EmitSkeleton clones tree, blanks its mesh-group geometry, and
// serializes the result. tree itself is left unmodified.
func EmitSkeleton(tree *Tree) ([]byte, error) {
	return skeleton.Emit(tree)
}

// RestoreSkeleton parses bytes produced by EmitSkeleton back into a
// Tree. The caller is expected to immediately call InjectMeshGroups to
// repopulate the blanked chunks.
func RestoreSkeleton(data []byte) (*Tree, error) {
	return skeleton.Restore(data)
}

// NewSkeletonRecord builds the sidecar JSON record for tree: it emits
// the skeleton, base64-wraps it, and fills in the redundant inspection
// fields from groups.
func NewSkeletonRecord(tree *Tree, groups []Group) (SkeletonRecord, error) {
	raw, err := EmitSkeleton(tree)
	if err != nil {
		return SkeletonRecord{}, err
	}
	rec := SkeletonRecord{
		RawSkeleton: base64.StdEncoding.EncodeToString(raw),
		MeshGroups:  len(groups),
	}
	for _, g := range groups {
		if g.Material.ShaderName != "" {
			rec.ShaderNames = append(rec.ShaderNames, g.Material.ShaderName)
		}
	}
	return rec, nil
}

// ParseSkeletonRecord decodes the sidecar JSON document and restores
// its authoritative raw_ntf_skeleton payload into a Tree.
func ParseSkeletonRecord(data []byte) (*Tree, SkeletonRecord, error) {
	var rec SkeletonRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, SkeletonRecord{}, err
	}
	raw, err := base64.StdEncoding.DecodeString(rec.RawSkeleton)
	if err != nil {
		return nil, SkeletonRecord{}, err
	}
	tree, err := RestoreSkeleton(raw)
	if err != nil {
		return nil, SkeletonRecord{}, err
	}
	return tree, rec, nil
}
