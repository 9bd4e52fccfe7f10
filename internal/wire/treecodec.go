package wire

import (
	"bytes"

	"github.com/ironleaf-tools/ntfcore/internal/errs"
)

const (
	flagChunk uint8 = 1
	flagChild uint8 = 2
)

// Parse decodes data into a Tree, validating the magic header and the
// self-inclusive size field of every node along the way. Entry order is
// preserved exactly as encountered.
func Parse(data []byte, limits ParseLimits) (*Tree, error) {
	if len(data) < len(Magic) || !bytes.Equal(data[:len(Magic)], Magic[:]) {
		return nil, errs.ErrNotAnNtfFile
	}

	cur := NewCursor(data[len(Magic):])
	entries, err := parseEntries(cur, cur.Len(), limits, 0)
	if err != nil {
		return nil, err
	}
	return &Tree{Entries: entries}, nil
}

// parseEntries reads entries from cur until it reaches the absolute
// offset end (within cur's own coordinate space), which is either the
// buffer's length (top-level Root) or a Child node's computed boundary.
func parseEntries(cur *Cursor, end int, limits ParseLimits, depth int) ([]Entry, error) {
	if depth > limits.MaxDepth {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "tree depth exceeds limit %d", limits.MaxDepth)
	}

	var entries []Entry
	for cur.Offset() < end {
		e, err := parseEntry(cur, end, limits, depth)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if cur.Offset() != end {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "node boundary mismatch: at %d, expected %d", cur.Offset(), end)
	}
	return entries, nil
}

func parseEntry(cur *Cursor, levelEnd int, limits ParseLimits, depth int) (Entry, error) {
	flag, err := cur.U8()
	if err != nil {
		return nil, err
	}

	size, err := cur.U32()
	if err != nil {
		return nil, err
	}
	if size < 4 {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "size field %d below minimum of 4", size)
	}
	if size > limits.MaxNodeSize {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "size field %d exceeds maximum node size %d", size, limits.MaxNodeSize)
	}

	nodeEnd := cur.Offset() + int(size) - 4
	if nodeEnd > levelEnd {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "node size %d exceeds remaining parent budget", size)
	}

	switch flag {
	case flagChunk:
		return parseChunkBody(cur, nodeEnd)
	case flagChild:
		return parseChildBody(cur, nodeEnd, limits, depth)
	default:
		return nil, errs.Wrapf(errs.ErrCorruptNode, "unknown entry flag %d", flag)
	}
}

func parseChunkBody(cur *Cursor, nodeEnd int) (*Chunk, error) {
	tagByte, err := cur.U8()
	if err != nil {
		return nil, err
	}
	tag := ChunkType(tagByte)
	if tag < ChunkInt32 || tag > ChunkRaw {
		return nil, errs.Wrapf(errs.ErrUnknownChunkTag, "tag %d", tagByte)
	}

	nameLen, err := cur.U32()
	if err != nil {
		return nil, err
	}
	if cur.Offset()+int(nameLen) > nodeEnd {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "name length %d implausible for node", nameLen)
	}
	nameBytes, err := cur.Bytes(int(nameLen))
	if err != nil {
		return nil, err
	}
	name := string(nameBytes)

	payloadLen := nodeEnd - cur.Offset()
	payload, err := cur.Bytes(payloadLen)
	if err != nil {
		return nil, err
	}

	value, err := DecodeChunk(name, tag, payload)
	if err != nil {
		return nil, err
	}
	return &Chunk{Name: name, Type: tag, Value: value}, nil
}

func parseChildBody(cur *Cursor, nodeEnd int, limits ParseLimits, depth int) (*Child, error) {
	childType, err := cur.I32()
	if err != nil {
		return nil, err
	}
	entries, err := parseEntries(cur, nodeEnd, limits, depth+1)
	if err != nil {
		return nil, err
	}
	return &Child{ChildType: childType, Entries: entries}, nil
}

// Write serializes tree back to NTF bytes: magic header followed by the
// flat sequence of top-level entries, each written with the mark/return
// idiom (write payload, measure it, backfill the self-inclusive size).
func Write(tree *Tree) ([]byte, error) {
	w := NewWriter(1024)
	w.Raw(Magic[:])
	for _, e := range tree.Entries {
		if err := writeEntry(w, e); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

func writeEntry(w *Writer, e Entry) error {
	switch v := e.(type) {
	case *Chunk:
		return writeChunk(w, v)
	case *Child:
		return writeChild(w, v)
	default:
		return errs.Wrapf(errs.ErrCorruptNode, "unknown entry type %T", e)
	}
}

func writeChunk(w *Writer, c *Chunk) error {
	tag, payload, err := EncodeChunk(c.Name, c.Value)
	if err != nil {
		return err
	}

	w.U8(flagChunk)
	sizeAt := w.Mark()
	w.U32(0) // placeholder, patched below

	bodyStart := w.Mark()
	w.U8(uint8(tag))
	w.U32(uint32(len(c.Name)))
	w.Raw([]byte(c.Name))
	w.Raw(payload)
	bodyLen := w.Mark() - bodyStart

	w.PatchU32(sizeAt, uint32(bodyLen+4))
	return nil
}

func writeChild(w *Writer, c *Child) error {
	w.U8(flagChild)
	sizeAt := w.Mark()
	w.U32(0) // placeholder

	bodyStart := w.Mark()
	w.I32(c.ChildType)
	for _, e := range c.Entries {
		if err := writeEntry(w, e); err != nil {
			return err
		}
	}
	bodyLen := w.Mark() - bodyStart

	w.PatchU32(sizeAt, uint32(bodyLen+4))
	return nil
}
