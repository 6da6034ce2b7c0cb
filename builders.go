package dyncodec

// RecordBuilder accumulates the fields of one record during a single encode
// call. Every add folds into an internal DataResult, so a failing field does
// not stop later fields from being added; Build reports an error carrying
// the partially-built node when any field failed.
//
// Builders are not safe for concurrent use and must be confined to one
// encode call. Build flushes into the prefix and resets the accumulator.
type RecordBuilder interface {
	Ops() DynamicOps
	// Add sets a string key to an already-encoded value node.
	Add(key string, value any) RecordBuilder
	// AddNode sets a key node to a value node.
	AddNode(key any, value any) RecordBuilder
	// AddResult sets a string key to the result of encoding a value.
	AddResult(key string, value DataResult[any]) RecordBuilder
	// AddNodeResults sets a key result to a value result.
	AddNodeResults(key DataResult[any], value DataResult[any]) RecordBuilder
	// WithError poisons the builder with an error, keeping accumulated
	// fields as the partial state.
	WithError(message string) RecordBuilder
	SetLifecycle(lc Lifecycle) RecordBuilder
	MapError(f func(message string) string) RecordBuilder
	// Build merges the accumulated fields into prefix and resets state.
	Build(prefix any) DataResult[any]
}

// ListBuilder is the list counterpart of RecordBuilder.
type ListBuilder interface {
	Ops() DynamicOps
	Add(value any) ListBuilder
	AddResult(value DataResult[any]) ListBuilder
	WithError(message string) ListBuilder
	SetLifecycle(lc Lifecycle) ListBuilder
	MapError(f func(message string) string) ListBuilder
	Build(prefix any) DataResult[any]
}

// ErrorsFrom folds the error state of any result into a record builder,
// discarding the result's value.
func ErrorsFrom[T any](b RecordBuilder, r DataResult[T]) RecordBuilder {
	if r.IsError() {
		return b.WithError(r.Message())
	}
	return b
}

// NewRecordBuilder returns a named-field record builder for ops.
func NewRecordBuilder(ops DynamicOps) RecordBuilder {
	return &recordBuilder{ops: ops, state: Success([]MapEntry(nil))}
}

type recordBuilder struct {
	ops   DynamicOps
	state DataResult[[]MapEntry]
}

func (b *recordBuilder) Ops() DynamicOps { return b.ops }

// fold applies an entry result to the accumulated state, guaranteeing the
// state always carries at least a partial entry list.
func (b *recordBuilder) fold(entry DataResult[MapEntry]) {
	prev, _ := b.state.PartialOrErr()
	next := Apply2(func(entries []MapEntry, e MapEntry) []MapEntry {
		return append(entries, e)
	}, b.state, entry)
	if next.IsError() && !next.HasPartial() {
		next = next.WithPartial(prev)
	}
	b.state = next
}

func (b *recordBuilder) Add(key string, value any) RecordBuilder {
	return b.AddNode(b.ops.CreateString(key), value)
}

func (b *recordBuilder) AddNode(key any, value any) RecordBuilder {
	b.fold(Success(MapEntry{Key: key, Value: value}))
	return b
}

func (b *recordBuilder) AddResult(key string, value DataResult[any]) RecordBuilder {
	return b.AddNodeResults(Success(b.ops.CreateString(key)), value)
}

func (b *recordBuilder) AddNodeResults(key DataResult[any], value DataResult[any]) RecordBuilder {
	b.fold(Apply2(func(k, v any) MapEntry { return MapEntry{Key: k, Value: v} }, key, value))
	return b
}

func (b *recordBuilder) WithError(message string) RecordBuilder {
	prev, _ := b.state.PartialOrErr()
	next := Apply2(func(entries []MapEntry, _ Unit) []MapEntry {
		return entries
	}, b.state, Error[Unit](message))
	if !next.HasPartial() {
		next = next.WithPartial(prev)
	}
	b.state = next
	return b
}

func (b *recordBuilder) SetLifecycle(lc Lifecycle) RecordBuilder {
	b.state = b.state.SetLifecycle(lc)
	return b
}

func (b *recordBuilder) MapError(f func(string) string) RecordBuilder {
	b.state = b.state.MapError(f)
	return b
}

func (b *recordBuilder) Build(prefix any) DataResult[any] {
	built := FlatMap(b.state, func(entries []MapEntry) DataResult[any] {
		result := Success(prefix)
		for _, e := range entries {
			entry := e
			result = FlatMap(result, func(m any) DataResult[any] {
				return b.ops.MergeToMap(m, entry.Key, entry.Value)
			})
		}
		return result
	})
	b.state = Success([]MapEntry(nil))
	return built
}

// NewCompressedRecordBuilder returns a builder that writes an array-indexed
// record: slot i holds the value of the compressor's key i, absent fields
// hold ops.Empty(). Used when ops.CompressMaps() is set.
func NewCompressedRecordBuilder(ops DynamicOps, compressor *KeyCompressor) RecordBuilder {
	return &compressedRecordBuilder{
		ops:        ops,
		compressor: compressor,
		state:      Success(make([]any, compressor.Size())),
	}
}

type compressedRecordBuilder struct {
	ops        DynamicOps
	compressor *KeyCompressor
	state      DataResult[[]any]
}

func (b *compressedRecordBuilder) Ops() DynamicOps { return b.ops }

func (b *compressedRecordBuilder) set(index DataResult[int], value DataResult[any]) {
	prev, _ := b.state.PartialOrErr()
	next := Apply3(func(items []any, i int, v any) []any {
		items[i] = v
		return items
	}, b.state, index, value)
	if next.IsError() && !next.HasPartial() {
		next = next.WithPartial(prev)
	}
	b.state = next
}

func (b *compressedRecordBuilder) indexOf(i int, key string) DataResult[int] {
	if i < 0 {
		return ErrorLazy[int](func() string { return "attempted to build unknown key: " + key })
	}
	return Success(i)
}

func (b *compressedRecordBuilder) Add(key string, value any) RecordBuilder {
	b.set(b.indexOf(b.compressor.CompressString(key), key), Success(value))
	return b
}

func (b *compressedRecordBuilder) AddNode(key any, value any) RecordBuilder {
	s, _ := b.ops.GetStringValue(key).Result()
	b.set(b.indexOf(b.compressor.Compress(key), s), Success(value))
	return b
}

func (b *compressedRecordBuilder) AddResult(key string, value DataResult[any]) RecordBuilder {
	b.set(b.indexOf(b.compressor.CompressString(key), key), value)
	return b
}

func (b *compressedRecordBuilder) AddNodeResults(key DataResult[any], value DataResult[any]) RecordBuilder {
	index := FlatMap(key, func(k any) DataResult[int] {
		s, _ := b.ops.GetStringValue(k).Result()
		return b.indexOf(b.compressor.Compress(k), s)
	})
	b.set(index, value)
	return b
}

func (b *compressedRecordBuilder) WithError(message string) RecordBuilder {
	prev, _ := b.state.PartialOrErr()
	next := Apply2(func(items []any, _ Unit) []any {
		return items
	}, b.state, Error[Unit](message))
	if !next.HasPartial() {
		next = next.WithPartial(prev)
	}
	b.state = next
	return b
}

func (b *compressedRecordBuilder) SetLifecycle(lc Lifecycle) RecordBuilder {
	b.state = b.state.SetLifecycle(lc)
	return b
}

func (b *compressedRecordBuilder) MapError(f func(string) string) RecordBuilder {
	b.state = b.state.MapError(f)
	return b
}

func (b *compressedRecordBuilder) Build(prefix any) DataResult[any] {
	built := FlatMap(b.state, func(items []any) DataResult[any] {
		if !nodeEqual(prefix, b.ops.Empty()) {
			return ErrorLazy[any](func() string {
				return "cannot append a compressed map to a non-empty prefix"
			})
		}
		nodes := make([]any, len(items))
		for i, item := range items {
			if item == nil {
				nodes[i] = b.ops.Empty()
			} else {
				nodes[i] = item
			}
		}
		return Success(b.ops.CreateList(nodes))
	})
	b.state = Success(make([]any, b.compressor.Size()))
	return built
}

// NewListBuilder returns a list builder for ops.
func NewListBuilder(ops DynamicOps) ListBuilder {
	return &listBuilder{ops: ops, state: Success([]any(nil))}
}

type listBuilder struct {
	ops   DynamicOps
	state DataResult[[]any]
}

func (b *listBuilder) Ops() DynamicOps { return b.ops }

func (b *listBuilder) fold(value DataResult[any]) {
	prev, _ := b.state.PartialOrErr()
	next := Apply2(func(items []any, v any) []any {
		return append(items, v)
	}, b.state, value)
	if next.IsError() && !next.HasPartial() {
		next = next.WithPartial(prev)
	}
	b.state = next
}

func (b *listBuilder) Add(value any) ListBuilder {
	b.fold(Success(value))
	return b
}

func (b *listBuilder) AddResult(value DataResult[any]) ListBuilder {
	b.fold(value)
	return b
}

func (b *listBuilder) WithError(message string) ListBuilder {
	prev, _ := b.state.PartialOrErr()
	next := Apply2(func(items []any, _ Unit) []any {
		return items
	}, b.state, Error[Unit](message))
	if !next.HasPartial() {
		next = next.WithPartial(prev)
	}
	b.state = next
	return b
}

func (b *listBuilder) SetLifecycle(lc Lifecycle) ListBuilder {
	b.state = b.state.SetLifecycle(lc)
	return b
}

func (b *listBuilder) MapError(f func(string) string) ListBuilder {
	b.state = b.state.MapError(f)
	return b
}

func (b *listBuilder) Build(prefix any) DataResult[any] {
	built := FlatMap(b.state, func(items []any) DataResult[any] {
		result := Success(prefix)
		for _, item := range items {
			node := item
			result = FlatMap(result, func(list any) DataResult[any] {
				return b.ops.MergeToList(list, node)
			})
		}
		return result
	})
	b.state = Success([]any(nil))
	return built
}
