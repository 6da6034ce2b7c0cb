package dyncodec

import (
	"encoding/json"
	"strconv"
)

// DynamicOps is the per-format adapter contract. A format module implements
// it over an opaque tree-node representation (passed around as any) and the
// codec combinators stay format-agnostic.
//
// Number traffic uses json.Number so integers keep full 64-bit precision on
// the way through the engine; adapters decide the concrete representation in
// CreateNumeric.
//
// Ops instances should be comparable (pointer or small value types): the
// codec layer caches per-ops key compressors keyed by the instance.
type DynamicOps interface {
	// Empty returns the node representing "nothing", used as the encode
	// prefix and as the remainder of fully-consumed input.
	Empty() any
	// EmptyMap returns an empty record node.
	EmptyMap() any
	// EmptyList returns an empty list node.
	EmptyList() any

	GetNumberValue(input any) DataResult[json.Number]
	CreateNumeric(n json.Number) any
	GetStringValue(input any) DataResult[string]
	CreateString(s string) any
	GetBoolValue(input any) DataResult[bool]
	CreateBool(b bool) any

	GetList(input any) DataResult[[]any]
	CreateList(items []any) any

	// GetMapEntries enumerates a record node in deterministic order.
	GetMapEntries(input any) DataResult[[]MapEntry]
	// GetMap wraps a record node in a read-only MapLike view.
	GetMap(input any) DataResult[MapLike]
	CreateMap(entries []MapEntry) any

	// MergeToList appends value to an existing list node (or Empty).
	MergeToList(list any, value any) DataResult[any]
	// MergeToMap sets key to value in an existing record node (or Empty).
	MergeToMap(m any, key any, value any) DataResult[any]
	// MergeToPrimitive replaces an Empty prefix with a primitive node; any
	// other prefix is an error.
	MergeToPrimitive(prefix any, value any) DataResult[any]

	// Remove drops a record key; non-record inputs pass through unchanged.
	Remove(input any, key string) any

	// ConvertTo rebuilds one of this format's nodes in another format.
	// Converting there and back through an equivalent codec preserves
	// semantic equality, not byte-identical representation.
	ConvertTo(out DynamicOps, input any) any

	// CompressMaps selects compact array-indexed record encoding instead of
	// named fields.
	CompressMaps() bool
}

// ByteSliceOps is implemented by formats with a native byte-string type.
// Formats without one fall back to a list of numbers via the package-level
// GetByteSlice/CreateByteSlice helpers.
type ByteSliceOps interface {
	GetByteSlice(input any) DataResult[[]byte]
	CreateByteSlice(b []byte) any
}

// IntListOps is implemented by formats with a packed integer-list type.
type IntListOps interface {
	GetIntList(input any) DataResult[[]int64]
	CreateIntList(items []int64) any
}

// ---- optional-capability helpers (delegate to numeric/list defaults) ----

// CreateInt encodes an int through CreateNumeric.
func CreateInt(ops DynamicOps, v int) any { return CreateInt64(ops, int64(v)) }

// CreateInt64 encodes an int64 through CreateNumeric without precision loss.
func CreateInt64(ops DynamicOps, v int64) any {
	return ops.CreateNumeric(json.Number(strconv.FormatInt(v, 10)))
}

// CreateFloat64 encodes a float64 through CreateNumeric using the canonical
// shortest formatting.
func CreateFloat64(ops DynamicOps, v float64) any {
	return ops.CreateNumeric(json.Number(strconv.FormatFloat(v, 'g', -1, 64)))
}

// GetInt64Value reads an integral number, rejecting fractional values.
func GetInt64Value(ops DynamicOps, input any) DataResult[int64] {
	return FlatMap(ops.GetNumberValue(input), func(n json.Number) DataResult[int64] {
		i, err := n.Int64()
		if err != nil {
			return ErrorLazy[int64](func() string { return "not an integer: " + n.String() })
		}
		return Success(i)
	})
}

// GetFloat64Value reads any number as a float64.
func GetFloat64Value(ops DynamicOps, input any) DataResult[float64] {
	return FlatMap(ops.GetNumberValue(input), func(n json.Number) DataResult[float64] {
		f, err := strconv.ParseFloat(n.String(), 64)
		if err != nil {
			return ErrorLazy[float64](func() string { return "not a number: " + n.String() })
		}
		return Success(f)
	})
}

// GetByteSlice reads a byte string, via ByteSliceOps when the format has a
// native form, otherwise as a list of numbers in [0, 255].
func GetByteSlice(ops DynamicOps, input any) DataResult[[]byte] {
	if bo, ok := ops.(ByteSliceOps); ok {
		return bo.GetByteSlice(input)
	}
	return FlatMap(ops.GetList(input), func(items []any) DataResult[[]byte] {
		out := make([]byte, 0, len(items))
		for i, item := range items {
			n, ok := GetInt64Value(ops, item).Result()
			if !ok || n < 0 || n > 255 {
				idx := i
				return ErrorLazy[[]byte](func() string {
					return "list element " + strconv.Itoa(idx) + " is not a byte"
				})
			}
			out = append(out, byte(n))
		}
		return Success(out)
	})
}

// CreateByteSlice writes a byte string, natively when supported.
func CreateByteSlice(ops DynamicOps, b []byte) any {
	if bo, ok := ops.(ByteSliceOps); ok {
		return bo.CreateByteSlice(b)
	}
	items := make([]any, len(b))
	for i, v := range b {
		items[i] = CreateInt64(ops, int64(v))
	}
	return ops.CreateList(items)
}

// GetIntList reads a list of integers, via IntListOps when available.
func GetIntList(ops DynamicOps, input any) DataResult[[]int64] {
	if io, ok := ops.(IntListOps); ok {
		return io.GetIntList(input)
	}
	return FlatMap(ops.GetList(input), func(items []any) DataResult[[]int64] {
		out := make([]int64, 0, len(items))
		for i, item := range items {
			n, ok := GetInt64Value(ops, item).Result()
			if !ok {
				idx := i
				return ErrorLazy[[]int64](func() string {
					return "list element " + strconv.Itoa(idx) + " is not an integer"
				})
			}
			out = append(out, n)
		}
		return Success(out)
	})
}

// CreateIntList writes a list of integers, natively when supported.
func CreateIntList(ops DynamicOps, items []int64) any {
	if io, ok := ops.(IntListOps); ok {
		return io.CreateIntList(items)
	}
	nodes := make([]any, len(items))
	for i, v := range items {
		nodes[i] = CreateInt64(ops, v)
	}
	return ops.CreateList(nodes)
}

// ---- generic structural conversion ----

// ConvertValue rebuilds a node from one format in another by probing the
// source format's getters: record, list, native byte string, number, string,
// bool. Unrecognized nodes convert to out.Empty().
func ConvertValue(out DynamicOps, from DynamicOps, input any) any {
	if out == from {
		return input
	}
	if _, ok := from.GetMapEntries(input).Result(); ok {
		return ConvertMap(out, from, input)
	}
	if bo, ok := from.(ByteSliceOps); ok {
		if b, ok := bo.GetByteSlice(input).Result(); ok {
			return CreateByteSlice(out, b)
		}
	}
	if _, ok := from.GetList(input).Result(); ok {
		return ConvertList(out, from, input)
	}
	if n, ok := from.GetNumberValue(input).Result(); ok {
		return out.CreateNumeric(n)
	}
	if s, ok := from.GetStringValue(input).Result(); ok {
		return out.CreateString(s)
	}
	if b, ok := from.GetBoolValue(input).Result(); ok {
		return out.CreateBool(b)
	}
	return out.Empty()
}

// ConvertList converts every element of a list node.
func ConvertList(out DynamicOps, from DynamicOps, input any) any {
	items, ok := from.GetList(input).Result()
	if !ok {
		return out.Empty()
	}
	converted := make([]any, len(items))
	for i, item := range items {
		converted[i] = ConvertValue(out, from, item)
	}
	return out.CreateList(converted)
}

// ConvertMap converts every entry of a record node.
func ConvertMap(out DynamicOps, from DynamicOps, input any) any {
	entries, ok := from.GetMapEntries(input).Result()
	if !ok {
		return out.Empty()
	}
	converted := make([]MapEntry, len(entries))
	for i, e := range entries {
		converted[i] = MapEntry{
			Key:   ConvertValue(out, from, e.Key),
			Value: ConvertValue(out, from, e.Value),
		}
	}
	return out.CreateMap(converted)
}
