// Package ntf parses and serializes NTF node-tree container files, the
// proprietary binary format a 2007-era game engine uses to hold
// geometry and associated engine data in one file. It decodes Vertex
// Format 1 mesh payloads into a neutral exchange model, round-trips
// that model through a textual interchange format for external
// editing, and preserves everything the core doesn't model via a
// skeleton snapshot so an edit cycle never loses engine-private data.
//
// The package does no I/O: every operation is a pure function over
// byte slices, an io.Reader, or an io.Writer supplied by the caller.
package ntf
