package wire

// ParseLimits bounds the recursive tree parse against adversarial or
// corrupt input, the NTF analogue of the teacher's
// CheckMultiplyOverflow/ValidateBufferSize guards: a parser that trusts
// a hostile size field can be driven into unbounded recursion or
// allocation.
type ParseLimits struct {
	MaxDepth    int
	MaxNodeSize uint32
}

// DefaultParseLimits returns the limits used when a caller doesn't
// supply its own: a generous ceiling for the 1-10MB files described in
// §5, not a tight budget.
func DefaultParseLimits() ParseLimits {
	return ParseLimits{
		MaxDepth:    64,
		MaxNodeSize: 64 << 20, // 64MiB
	}
}
