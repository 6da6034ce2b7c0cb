package dyncodec

import "reflect"

// KeyCompressor is a bidirectional key<->index table enabling array-indexed
// record encoding. It is built once from a finite key slice (first-seen key
// wins on duplicates) and answers Compress in O(1) through two parallel
// lookup tables. Unknown keys compress to -1, never panic.
type KeyCompressor struct {
	ops      DynamicOps
	byNode   map[any]int
	byString map[string]int
	keys     []any
}

// NewKeyCompressor indexes the given keys for the given ops.
func NewKeyCompressor(ops DynamicOps, keys []any) *KeyCompressor {
	c := &KeyCompressor{
		ops:      ops,
		byNode:   make(map[any]int, len(keys)),
		byString: make(map[string]int, len(keys)),
	}
	for _, key := range keys {
		s, hasString := ops.GetStringValue(key).Result()
		if hasString {
			if _, dup := c.byString[s]; dup {
				continue
			}
		} else if comparableNode(key) {
			if _, dup := c.byNode[key]; dup {
				continue
			}
		}
		index := len(c.keys)
		c.keys = append(c.keys, key)
		if hasString {
			c.byString[s] = index
		}
		if comparableNode(key) {
			c.byNode[key] = index
		}
	}
	return c
}

// Compress returns the index of a key node, or -1 when unknown.
func (c *KeyCompressor) Compress(key any) int {
	if comparableNode(key) {
		if i, ok := c.byNode[key]; ok {
			return i
		}
	}
	if s, ok := c.ops.GetStringValue(key).Result(); ok {
		return c.CompressString(s)
	}
	return -1
}

// CompressString returns the index of a string key, or -1 when unknown.
func (c *KeyCompressor) CompressString(key string) int {
	if i, ok := c.byString[key]; ok {
		return i
	}
	return -1
}

// Decompress returns the key node at the given index, or nil when out of
// range.
func (c *KeyCompressor) Decompress(index int) any {
	if index < 0 || index >= len(c.keys) {
		return nil
	}
	return c.keys[index]
}

// Size is the number of distinct keys.
func (c *KeyCompressor) Size() int { return len(c.keys) }

func comparableNode(key any) bool {
	if key == nil {
		return false
	}
	return reflect.TypeOf(key).Comparable()
}
