// Package errs defines the stable error kinds the NTF core returns and a
// small context-wrapping helper, in the spirit of the teacher library's
// H5Error/WrapError pair.
package errs

import (
	"errors"
	"fmt"
)

// Sentinel error kinds. Each has a stable identity so callers can use
// errors.Is against it regardless of the surrounding context message.
var (
	ErrNotAnNtfFile             = errors.New("not an ntf file")
	ErrUnexpectedEOF            = errors.New("unexpected end of buffer")
	ErrCorruptNode              = errors.New("corrupt node")
	ErrUnknownChunkTag          = errors.New("unknown chunk tag")
	ErrUnsupportedVertexFormat  = errors.New("unsupported vertex format")
	ErrIndexCountNotMultipleOf3 = errors.New("index count not a multiple of three")
	ErrTooManyVertices          = errors.New("too many vertices for a u16 index space")
	ErrMissingRequiredChunk     = errors.New("missing required chunk")
	ErrSkeletonMismatch         = errors.New("skeleton mesh group count mismatch")
)

// NtfError carries a human-readable context around a sentinel (or any)
// cause while preserving errors.Is/errors.As through Unwrap.
type NtfError struct {
	Context string
	Cause   error
}

// Error implements the error interface.
func (e *NtfError) Error() string {
	return fmt.Sprintf("%s: %v", e.Context, e.Cause)
}

// Unwrap provides compatibility with errors.Unwrap.
func (e *NtfError) Unwrap() error {
	return e.Cause
}

// Wrap creates a contextual error around cause. Returns nil if cause is nil.
func Wrap(context string, cause error) error {
	if cause == nil {
		return nil
	}
	return &NtfError{Context: context, Cause: cause}
}

// Wrapf is Wrap with a formatted context.
func Wrapf(cause error, format string, args ...any) error {
	if cause == nil {
		return nil
	}
	return &NtfError{Context: fmt.Sprintf(format, args...), Cause: cause}
}
