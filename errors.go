package ntf

import "github.com/ironleaf-tools/ntfcore/internal/errs"

// Error kinds returned by this package's operations. Test with
// errors.Is, not string comparison — errors from parsing, writing,
// skeleton emit/restore and mesh binding are one of these sentinels,
// usually wrapped with additional context. ReadMesh, ReadMaterials and
// ParseSkeletonRecord can also return plain text, JSON or base64 errors
// that match none of them.
var (
	ErrNotAnNtfFile             = errs.ErrNotAnNtfFile
	ErrUnexpectedEOF            = errs.ErrUnexpectedEOF
	ErrCorruptNode              = errs.ErrCorruptNode
	ErrUnknownChunkTag          = errs.ErrUnknownChunkTag
	ErrUnsupportedVertexFormat  = errs.ErrUnsupportedVertexFormat
	ErrIndexCountNotMultipleOf3 = errs.ErrIndexCountNotMultipleOf3
	ErrTooManyVertices          = errs.ErrTooManyVertices
	ErrMissingRequiredChunk     = errs.ErrMissingRequiredChunk
	ErrSkeletonMismatch         = errs.ErrSkeletonMismatch
)
