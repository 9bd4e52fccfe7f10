// Package wire implements the NTF binary codec: a random-access byte
// cursor, the eight chunk payload shapes, and the recursive node-tree
// reader/writer. It performs no I/O of its own — callers hand it byte
// slices and get byte slices back, per the core's single-threaded,
// no-hidden-state contract.
package wire

import (
	"encoding/binary"
	"math"

	"github.com/ironleaf-tools/ntfcore/internal/errs"
)

// Cursor is a bounds-checked, little-endian reader over a fixed byte
// slice. It never grows its backing buffer; all reads are relative to
// the slice passed to NewCursor.
type Cursor struct {
	data []byte
	off  int
}

// NewCursor wraps data for sequential, bounds-checked reads.
func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.off }

// Len returns the total length of the wrapped buffer.
func (c *Cursor) Len() int { return len(c.data) }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.off }

// Seek moves the cursor to an absolute offset.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.data) {
		return errs.Wrapf(errs.ErrUnexpectedEOF, "seek to %d exceeds buffer length %d", off, len(c.data))
	}
	c.off = off
	return nil
}

// Skip advances the cursor by n bytes (relative skip).
func (c *Cursor) Skip(n int) error {
	return c.Seek(c.off + n)
}

// need checks that n bytes remain, returning ErrUnexpectedEOF otherwise.
func (c *Cursor) need(n int) error {
	if n < 0 || c.off+n > len(c.data) {
		return errs.Wrapf(errs.ErrUnexpectedEOF, "need %d bytes at offset %d, have %d", n, c.off, len(c.data)-c.off)
	}
	return nil
}

// Bytes returns the next n bytes without copying and advances the cursor.
// The returned slice aliases the cursor's backing array.
func (c *Cursor) Bytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := c.data[c.off : c.off+n]
	c.off += n
	return b, nil
}

// U8 reads an unsigned byte.
func (c *Cursor) U8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

// U32 reads a little-endian uint32.
func (c *Cursor) U32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}

// I32 reads a little-endian int32.
func (c *Cursor) I32() (int32, error) {
	v, err := c.U32()
	return int32(v), err
}

// F32 reads a little-endian float32.
func (c *Cursor) F32() (float32, error) {
	v, err := c.U32()
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(v), nil
}

// U16 reads a little-endian uint16.
func (c *Cursor) U16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v, nil
}

// Writer accumulates bytes for little-endian output. It supports the
// mark/patch idiom used by TreeCodec to backfill self-inclusive size
// fields once a node's payload length is known.
type Writer struct {
	buf []byte
}

// NewWriter returns an empty Writer with cap pre-sized as a hint.
func NewWriter(sizeHint int) *Writer {
	return &Writer{buf: make([]byte, 0, sizeHint)}
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Bytes returns the accumulated buffer.
func (w *Writer) Bytes() []byte { return w.buf }

// Mark returns the current length, to be paired with a later PatchU32.
func (w *Writer) Mark() int { return len(w.buf) }

// U8 appends a byte.
func (w *Writer) U8(v uint8) { w.buf = append(w.buf, v) }

// U32 appends a little-endian uint32.
func (w *Writer) U32(v uint32) {
	var tmp [4]byte
	binary.LittleEndian.PutUint32(tmp[:], v)
	w.buf = append(w.buf, tmp[:]...)
}

// I32 appends a little-endian int32.
func (w *Writer) I32(v int32) { w.U32(uint32(v)) }

// F32 appends a little-endian float32.
func (w *Writer) F32(v float32) { w.U32(math.Float32bits(v)) }

// Raw appends bytes verbatim.
func (w *Writer) Raw(b []byte) { w.buf = append(w.buf, b...) }

// PatchU32 overwrites 4 bytes at a previously-returned Mark position
// with a little-endian uint32 — the "return" half of the mark/return
// idiom, used once a node's payload length is known.
func (w *Writer) PatchU32(at int, v uint32) {
	binary.LittleEndian.PutUint32(w.buf[at:at+4], v)
}
