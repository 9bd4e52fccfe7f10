// Package objbridge reads and writes the textual triangle-mesh
// interchange format (and its sibling material file) used to hand mesh
// geometry to and from external editing tools. Like the rest of the
// core, it does no I/O of its own: callers supply an io.Reader or
// io.Writer over bytes they already own.
package objbridge
