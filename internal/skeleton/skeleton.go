// Package skeleton implements the NTF skeleton mechanism: emitting a
// copy of a tree with mesh geometry zeroed out, and restoring it later
// so it can be paired with freshly injected geometry. The whole point
// is that everything the core doesn't understand about a particular
// tree survives the round trip untouched.
package skeleton

import (
	"github.com/ironleaf-tools/ntfcore/internal/wire"
)

// Emit returns the serialized bytes of a clone of tree in which every
// -254 mesh group's Vertexes and Faces chunks are zero-length and its
// NumVertexes/NumFaces chunks read 0. tree itself is never mutated.
func Emit(tree *wire.Tree) ([]byte, error) {
	clone := cloneTree(tree)
	for _, mg := range clone.TopChildren(wire.ChildTypeMeshGroup) {
		zeroMeshGroup(mg)
	}
	return wire.Write(clone)
}

// Restore parses skeleton bytes produced by Emit back into a Tree,
// ready for InjectGroups.
func Restore(data []byte) (*wire.Tree, error) {
	return wire.Parse(data, wire.DefaultParseLimits())
}

func zeroMeshGroup(mg *wire.Child) {
	for _, e := range mg.Entries {
		ch, ok := e.(*wire.Chunk)
		if !ok {
			continue
		}
		switch ch.Name {
		case "Vertexes", "Faces":
			ch.Value = wire.RawValue(nil)
		case "NumVertexes", "NumFaces":
			ch.Value = wire.Uint32Value(0)
		}
	}
}

func cloneTree(t *wire.Tree) *wire.Tree {
	out := &wire.Tree{Entries: make([]wire.Entry, len(t.Entries))}
	for i, e := range t.Entries {
		out.Entries[i] = cloneEntry(e)
	}
	return out
}

func cloneEntry(e wire.Entry) wire.Entry {
	switch v := e.(type) {
	case *wire.Chunk:
		return cloneChunk(v)
	case *wire.Child:
		return cloneChild(v)
	default:
		return e
	}
}

func cloneChunk(c *wire.Chunk) *wire.Chunk {
	return &wire.Chunk{Name: c.Name, Type: c.Type, Value: cloneValue(c.Value)}
}

func cloneValue(v wire.ChunkValue) wire.ChunkValue {
	if raw, ok := v.(wire.RawValue); ok {
		cp := make([]byte, len(raw))
		copy(cp, raw)
		return wire.RawValue(cp)
	}
	// every other ChunkValue variant is a value type (string or a fixed
	// array), so the interface copy above already duplicated it.
	return v
}

func cloneChild(c *wire.Child) *wire.Child {
	out := &wire.Child{ChildType: c.ChildType, Entries: make([]wire.Entry, len(c.Entries))}
	for i, e := range c.Entries {
		out.Entries[i] = cloneEntry(e)
	}
	return out
}
