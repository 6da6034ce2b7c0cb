package dyncodec

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cast"
)

// NumberMode dictates the concrete representation of numeric nodes.
type NumberMode int

const (
	// NumberJSONNumber stores numbers as json.Number, preserving the exact
	// decimal text (JSON-flavored trees).
	NumberJSONNumber NumberMode = iota
	// NumberNative stores integral numbers as int64 and everything else as
	// float64 (YAML/MessagePack-flavored trees).
	NumberNative
)

// TreeOps is a DynamicOps over native Go values: nil (empty), bool, string,
// json.Number/int64/float64, []any and map[string]any. Format adapters that
// unmarshal into plain Go trees reuse it directly.
//
// Go maps are unordered, so record entries enumerate in lexicographic key
// order; this keeps encoding deterministic for a given input.
type TreeOps struct {
	mode       NumberMode
	compressed bool
}

// TreeOpsOption configures a TreeOps.
type TreeOpsOption func(*TreeOps)

// WithNumberMode selects the numeric node representation.
func WithNumberMode(mode NumberMode) TreeOpsOption {
	return func(o *TreeOps) { o.mode = mode }
}

// WithCompressedMaps makes the ops request array-indexed record encoding.
func WithCompressedMaps() TreeOpsOption {
	return func(o *TreeOps) { o.compressed = true }
}

// NewTreeOps builds a TreeOps. The zero configuration is json.Number nodes
// with named-field records.
func NewTreeOps(opts ...TreeOpsOption) *TreeOps {
	o := &TreeOps{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *TreeOps) Empty() any     { return nil }
func (o *TreeOps) EmptyMap() any  { return map[string]any{} }
func (o *TreeOps) EmptyList() any { return []any{} }

func (o *TreeOps) CompressMaps() bool { return o.compressed }

func (o *TreeOps) GetNumberValue(input any) DataResult[json.Number] {
	switch v := input.(type) {
	case json.Number:
		return Success(v)
	case int, int8, int16, int32, int64:
		return Success(json.Number(strconv.FormatInt(cast.ToInt64(v), 10)))
	case uint, uint8, uint16, uint32, uint64:
		// Formatted unsigned: values above MaxInt64 must not wrap.
		return Success(json.Number(strconv.FormatUint(cast.ToUint64(v), 10)))
	case float32, float64:
		return Success(json.Number(strconv.FormatFloat(cast.ToFloat64(v), 'g', -1, 64)))
	default:
		return ErrorLazy[json.Number](func() string { return fmt.Sprintf("not a number: %v", input) })
	}
}

func (o *TreeOps) CreateNumeric(n json.Number) any {
	if o.mode == NumberJSONNumber {
		return n
	}
	if i, err := n.Int64(); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(n.String(), 10, 64); err == nil {
		return u
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return n
	}
	return f
}

func (o *TreeOps) GetStringValue(input any) DataResult[string] {
	if s, ok := input.(string); ok {
		return Success(s)
	}
	return ErrorLazy[string](func() string { return fmt.Sprintf("not a string: %v", input) })
}

func (o *TreeOps) CreateString(s string) any { return s }

func (o *TreeOps) GetBoolValue(input any) DataResult[bool] {
	if b, ok := input.(bool); ok {
		return Success(b)
	}
	// Numeric truthiness mirrors formats that encode booleans as 0/1.
	if n, ok := o.GetNumberValue(input).Result(); ok {
		if i, err := n.Int64(); err == nil {
			return Success(i != 0)
		}
	}
	return ErrorLazy[bool](func() string { return fmt.Sprintf("not a boolean: %v", input) })
}

func (o *TreeOps) CreateBool(b bool) any { return b }

func (o *TreeOps) GetList(input any) DataResult[[]any] {
	if items, ok := input.([]any); ok {
		return Success(items)
	}
	return ErrorLazy[[]any](func() string { return fmt.Sprintf("not a list: %v", input) })
}

func (o *TreeOps) CreateList(items []any) any {
	out := make([]any, len(items))
	copy(out, items)
	return out
}

func (o *TreeOps) GetMapEntries(input any) DataResult[[]MapEntry] {
	m, ok := input.(map[string]any)
	if !ok {
		return ErrorLazy[[]MapEntry](func() string { return fmt.Sprintf("not a map: %v", input) })
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entries := make([]MapEntry, len(keys))
	for i, k := range keys {
		entries[i] = MapEntry{Key: k, Value: m[k]}
	}
	return Success(entries)
}

func (o *TreeOps) GetMap(input any) DataResult[MapLike] {
	return ForMap(input, o)
}

func (o *TreeOps) CreateMap(entries []MapEntry) any {
	m := make(map[string]any, len(entries))
	for _, e := range entries {
		m[o.mapKey(e.Key)] = e.Value
	}
	return m
}

// mapKey renders a key node as the string key of a Go map. Non-string keys
// (numbers from compressed records) stringify through their node form.
func (o *TreeOps) mapKey(key any) string {
	if s, ok := o.GetStringValue(key).Result(); ok {
		return s
	}
	if n, ok := o.GetNumberValue(key).Result(); ok {
		return n.String()
	}
	return fmt.Sprint(key)
}

func (o *TreeOps) MergeToList(list any, value any) DataResult[any] {
	if list == nil {
		return Success(any([]any{value}))
	}
	items, ok := list.([]any)
	if !ok {
		return ErrorLazy[any](func() string { return fmt.Sprintf("mergeToList called with not a list: %v", list) })
	}
	out := make([]any, len(items)+1)
	copy(out, items)
	out[len(items)] = value
	return Success(any(out))
}

func (o *TreeOps) MergeToMap(m any, key any, value any) DataResult[any] {
	if m == nil {
		m = map[string]any{}
	}
	existing, ok := m.(map[string]any)
	if !ok {
		return ErrorLazy[any](func() string { return fmt.Sprintf("mergeToMap called with not a map: %v", m) })
	}
	k, ok := o.GetStringValue(key).Result()
	if !ok {
		return ErrorLazy[any](func() string { return fmt.Sprintf("key is not a string: %v", key) })
	}
	out := make(map[string]any, len(existing)+1)
	for ek, ev := range existing {
		out[ek] = ev
	}
	out[k] = value
	return Success(any(out))
}

func (o *TreeOps) MergeToPrimitive(prefix any, value any) DataResult[any] {
	if prefix != nil {
		return ErrorLazy[any](func() string {
			return fmt.Sprintf("do not know how to append a primitive value %v to %v", value, prefix)
		})
	}
	return Success(value)
}

func (o *TreeOps) Remove(input any, key string) any {
	m, ok := input.(map[string]any)
	if !ok {
		return input
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		if k != key {
			out[k] = v
		}
	}
	return out
}

func (o *TreeOps) ConvertTo(out DynamicOps, input any) any {
	return ConvertValue(out, o, input)
}

func (o *TreeOps) String() string { return "Tree" }
