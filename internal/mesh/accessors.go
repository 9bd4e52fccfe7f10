package mesh

import (
	"github.com/ironleaf-tools/ntfcore/internal/errs"
	"github.com/ironleaf-tools/ntfcore/internal/wire"
)

func requireString(c *wire.Child, name string) (string, error) {
	v, ok := optionalString(c, name)
	if !ok {
		return "", errs.Wrapf(errs.ErrMissingRequiredChunk, "missing chunk %q", name)
	}
	return v, nil
}

func requireInt32(c *wire.Child, name string) (int32, error) {
	v, ok := optionalInt32(c, name)
	if !ok {
		return 0, errs.Wrapf(errs.ErrMissingRequiredChunk, "missing chunk %q", name)
	}
	return v, nil
}

func requireUint32(c *wire.Child, name string) (uint32, error) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return 0, errs.Wrapf(errs.ErrMissingRequiredChunk, "missing chunk %q", name)
	}
	v, ok := ch.Value.(wire.Uint32Value)
	if !ok {
		return 0, errs.Wrapf(errs.ErrCorruptNode, "chunk %q: expected uint32, got %T", name, ch.Value)
	}
	return uint32(v), nil
}

func requireRaw(c *wire.Child, name string) ([]byte, error) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return nil, errs.Wrapf(errs.ErrMissingRequiredChunk, "missing chunk %q", name)
	}
	v, ok := ch.Value.(wire.RawValue)
	if !ok {
		return nil, errs.Wrapf(errs.ErrCorruptNode, "chunk %q: expected raw bytes, got %T", name, ch.Value)
	}
	return []byte(v), nil
}

func optionalString(c *wire.Child, name string) (string, bool) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return "", false
	}
	v, ok := ch.Value.(wire.StringValue)
	if !ok {
		return "", false
	}
	return string(v), true
}

func optionalInt32(c *wire.Child, name string) (int32, bool) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return 0, false
	}
	v, ok := ch.Value.(wire.Int32Value)
	if !ok {
		return 0, false
	}
	return int32(v), true
}

func optionalFloat32(c *wire.Child, name string) (float32, bool) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return 0, false
	}
	v, ok := ch.Value.(wire.Float32Value)
	if !ok {
		return 0, false
	}
	return float32(v), true
}

func optionalVec4F(c *wire.Child, name string) ([4]float32, bool) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return [4]float32{}, false
	}
	v, ok := ch.Value.(wire.Vec4FValue)
	if !ok {
		return [4]float32{}, false
	}
	return [4]float32(v), true
}

func optionalVec4I(c *wire.Child, name string) ([4]int32, bool) {
	ch, ok := c.FindChunk(name)
	if !ok {
		return [4]int32{}, false
	}
	v, ok := ch.Value.(wire.Vec4IValue)
	if !ok {
		return [4]int32{}, false
	}
	return [4]int32(v), true
}

func setRaw(c *wire.Child, name string, data []byte) {
	for _, e := range c.Entries {
		if ch, ok := e.(*wire.Chunk); ok && ch.Name == name {
			ch.Value = wire.RawValue(data)
			return
		}
	}
}

func setUint32(c *wire.Child, name string, v uint32) {
	for _, e := range c.Entries {
		if ch, ok := e.(*wire.Chunk); ok && ch.Name == name {
			ch.Value = wire.Uint32Value(v)
			return
		}
	}
}

// setVec4FIfPresent overwrites name's payload only if the chunk already
// exists in c — the skeleton mechanism never invents chunks the tree
// didn't originally carry.
func setVec4FIfPresent(c *wire.Child, name string, v [4]float32) {
	for _, e := range c.Entries {
		if ch, ok := e.(*wire.Chunk); ok && ch.Name == name {
			ch.Value = wire.Vec4FValue(v)
			return
		}
	}
}
