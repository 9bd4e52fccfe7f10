package ntf

import "github.com/ironleaf-tools/ntfcore/internal/wire"

// Tree is the parsed, in-memory form of one NTF file: an ordered
// sequence of top-level entries following the magic header.
type Tree = wire.Tree

// Entry is either a *Chunk or a *Child, in the order they appeared on
// disk. Order is load-bearing.
type Entry = wire.Entry

// Chunk is a leaf entry: a named, typed payload.
type Chunk = wire.Chunk

// Child is a non-leaf entry: a typed container of further entries.
type Child = wire.Child

// ParseLimits bounds recursion depth and per-node size during Parse,
// guarding against malformed or hostile input.
type ParseLimits = wire.ParseLimits

// DefaultParseLimits returns the limits Parse applies when none are
// supplied explicitly.
func DefaultParseLimits() ParseLimits { return wire.DefaultParseLimits() }

// Parse decodes an NTF byte stream into a Tree using limits.
func Parse(data []byte, limits ParseLimits) (*Tree, error) {
	return wire.Parse(data, limits)
}

// ParseDefault decodes an NTF byte stream using DefaultParseLimits.
func ParseDefault(data []byte) (*Tree, error) {
	return wire.Parse(data, DefaultParseLimits())
}

// Write serializes tree back to its binary form.
func Write(tree *Tree) ([]byte, error) {
	return wire.Write(tree)
}

// ParseAll decodes several independent NTF byte streams, e.g. a base
// mesh file and its LOD siblings. The core performs no filename
// inspection or pairing of its own — that stays a caller concern.
func ParseAll(files [][]byte, limits ParseLimits) ([]*Tree, error) {
	trees := make([]*Tree, 0, len(files))
	for _, data := range files {
		tree, err := Parse(data, limits)
		if err != nil {
			return nil, err
		}
		trees = append(trees, tree)
	}
	return trees, nil
}

// WriteAll serializes several trees back to their binary form, in order.
func WriteAll(trees []*Tree) ([][]byte, error) {
	out := make([][]byte, 0, len(trees))
	for _, tree := range trees {
		data, err := Write(tree)
		if err != nil {
			return nil, err
		}
		out = append(out, data)
	}
	return out, nil
}
