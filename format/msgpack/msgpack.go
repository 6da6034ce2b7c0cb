// Package msgpack adapts MessagePack documents to the dyncodec engine using
// vmihailenco/msgpack. It is the one bundled format with a native byte
// string type, so ByteSlice codecs round-trip through bin nodes instead of
// number lists.
package msgpack

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	mp "github.com/vmihailenco/msgpack/v5"

	dyncodec "github.com/reoring/dyncodec"
)

// msgpackOps wraps the native tree ops with byte string support. ConvertTo
// is re-declared so structural conversion probes the wrapper, not the
// embedded ops, and sees the byte string capability.
type msgpackOps struct {
	*dyncodec.TreeOps
}

var defaultOps = msgpackOps{
	TreeOps: dyncodec.NewTreeOps(dyncodec.WithNumberMode(dyncodec.NumberNative)),
}

// Ops returns the shared MessagePack tree ops singleton.
func Ops() dyncodec.DynamicOps { return defaultOps }

func (o msgpackOps) GetByteSlice(input any) dyncodec.DataResult[[]byte] {
	if b, ok := input.([]byte); ok {
		return dyncodec.Success(b)
	}
	return dyncodec.ErrorLazy[[]byte](func() string { return fmt.Sprintf("not a byte string: %v", input) })
}

func (o msgpackOps) CreateByteSlice(b []byte) any {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func (o msgpackOps) ConvertTo(out dyncodec.DynamicOps, input any) any {
	return dyncodec.ConvertValue(out, o, input)
}

func (o msgpackOps) String() string { return "MessagePack" }

// Unmarshal parses a MessagePack document into a tree node.
func Unmarshal(data []byte) (any, error) {
	var node any
	if err := mp.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return normalize(node), nil
}

// Marshal renders a tree node as MessagePack.
func Marshal(node any) ([]byte, error) {
	return mp.Marshal(denumber(node))
}

// denumber replaces json.Number leaves with native values so they hit the
// wire as numbers, not strings. Integers above MaxInt64 stay exact as
// uint64.
func denumber(node any) any {
	switch v := node.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if u, err := strconv.ParseUint(v.String(), 10, 64); err == nil {
			return u
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = denumber(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = denumber(e)
		}
		return out
	}
	return node
}

// normalize coerces decoder output into the tree node vocabulary.
func normalize(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	case int:
		return int64(v)
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case uint8:
		return int64(v)
	case uint16:
		return int64(v)
	case uint32:
		return int64(v)
	case uint:
		if uint64(v) > math.MaxInt64 {
			return json.Number(strconv.FormatUint(uint64(v), 10))
		}
		return int64(v)
	case uint64:
		// Legal wire values above MaxInt64 must not wrap negative; the
		// number vocabulary carries them exactly as decimal text.
		if v > math.MaxInt64 {
			return json.Number(strconv.FormatUint(v, 10))
		}
		return int64(v)
	case float32:
		return float64(v)
	}
	return node
}
