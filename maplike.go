package dyncodec

import "reflect"

// MapLike is a read-only view over a partially-parsed record: key lookup plus
// ordered entry enumeration. Map decoders consume it instead of a raw node so
// independently-defined field codecs can read from the same record.
type MapLike interface {
	// Get looks a value up by key node; nil when absent.
	Get(key any) any
	// GetString looks a value up by string key; nil when absent.
	GetString(key string) any
	// Entries enumerates the record in its deterministic order.
	Entries() []MapEntry
}

// ForMap wraps a record node of the given ops in a MapLike view.
func ForMap(input any, ops DynamicOps) DataResult[MapLike] {
	return FlatMap(ops.GetMapEntries(input), func(entries []MapEntry) DataResult[MapLike] {
		return Success(ForMapEntries(entries, ops))
	})
}

// ForMapEntries builds a MapLike directly from entries.
func ForMapEntries(entries []MapEntry, ops DynamicOps) MapLike {
	byString := make(map[string]any, len(entries))
	for _, e := range entries {
		if s, ok := ops.GetStringValue(e.Key).Result(); ok {
			if _, dup := byString[s]; !dup {
				byString[s] = e.Value
			}
		}
	}
	return &entriesMapLike{ops: ops, entries: entries, byString: byString}
}

type entriesMapLike struct {
	ops      DynamicOps
	entries  []MapEntry
	byString map[string]any
}

func (m *entriesMapLike) Get(key any) any {
	if s, ok := m.ops.GetStringValue(key).Result(); ok {
		return m.byString[s]
	}
	for _, e := range m.entries {
		if nodeEqual(e.Key, key) {
			return e.Value
		}
	}
	return nil
}

func (m *entriesMapLike) GetString(key string) any { return m.byString[key] }

func (m *entriesMapLike) Entries() []MapEntry { return m.entries }

// CompressedMapLike views an array-indexed record: element i of the list
// holds the value of the key at compressor index i.
func CompressedMapLike(ops DynamicOps, compressor *KeyCompressor, items []any) MapLike {
	return &compressedMapLike{ops: ops, compressor: compressor, items: items}
}

type compressedMapLike struct {
	ops        DynamicOps
	compressor *KeyCompressor
	items      []any
}

func (m *compressedMapLike) at(i int) any {
	if i < 0 || i >= len(m.items) {
		return nil
	}
	item := m.items[i]
	if item == nil || nodeEqual(item, m.ops.Empty()) {
		return nil
	}
	return item
}

func (m *compressedMapLike) Get(key any) any {
	return m.at(m.compressor.Compress(key))
}

func (m *compressedMapLike) GetString(key string) any {
	return m.at(m.compressor.CompressString(key))
}

func (m *compressedMapLike) Entries() []MapEntry {
	entries := make([]MapEntry, 0, len(m.items))
	for i := range m.items {
		if v := m.at(i); v != nil {
			entries = append(entries, MapEntry{Key: m.compressor.Decompress(i), Value: v})
		}
	}
	return entries
}

// nodeEqual compares tree nodes structurally. Record keys are almost always
// comparable string nodes; DeepEqual covers the rest.
func nodeEqual(a, b any) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb && ta.Comparable() {
		return a == b
	}
	return reflect.DeepEqual(a, b)
}
