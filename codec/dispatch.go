package codec

import (
	"fmt"
	"sync"

	dyncodec "github.com/reoring/dyncodec"
)

// valueKey is the single field compact formats store variant payloads under.
const valueKey = "value"

// PartialDispatch builds a map codec for a sum type V: the type-key field is
// decoded through keyCodec, codecFor resolves the variant codec for that key,
// and the variant's fields live alongside the type key (or, for formats that
// compress maps, under a single "value" field). typeOf extracts the key from
// a value on encode; both resolution functions may fail with a DataResult.
func PartialDispatch[K, V any](
	typeKey string,
	keyCodec Codec[K],
	typeOf func(V) dyncodec.DataResult[K],
	codecFor func(K) dyncodec.DataResult[MapCodec[V]],
) MapCodec[V] {
	return &keyDispatchCodec[K, V]{
		typeKey:  typeKey,
		keyCodec: keyCodec,
		typeOf:   typeOf,
		codecFor: codecFor,
	}
}

// Dispatch is PartialDispatch over a fixed variant table with total key
// extraction, lowered to a whole-record codec. The table must not be
// modified after the codec is built.
func Dispatch[K comparable, V any](
	typeKey string,
	keyCodec Codec[K],
	typeOf func(V) K,
	codecs map[K]MapCodec[V],
) Codec[V] {
	return AsCodec[V](PartialDispatch(typeKey, keyCodec,
		func(v V) dyncodec.DataResult[K] {
			return dyncodec.Success(typeOf(v))
		},
		func(k K) dyncodec.DataResult[MapCodec[V]] {
			mc, ok := codecs[k]
			if !ok {
				return dyncodec.ErrorLazy[MapCodec[V]](func() string {
					return fmt.Sprintf("no codec for key: %v", k)
				})
			}
			return dyncodec.Success(mc)
		},
	))
}

type keyDispatchCodec[K, V any] struct {
	typeKey  string
	keyCodec Codec[K]
	typeOf   func(V) dyncodec.DataResult[K]
	codecFor func(K) dyncodec.DataResult[MapCodec[V]]
	lowered  sync.Map // MapCodec[V] -> Codec[V]
}

// lower reuses one whole-record codec per resolved variant so its per-ops
// key compressor cache survives across calls.
func (c *keyDispatchCodec[K, V]) lower(mc MapCodec[V]) Codec[V] {
	if v, ok := c.lowered.Load(mc); ok {
		return v.(Codec[V])
	}
	v, _ := c.lowered.LoadOrStore(mc, AsCodec(mc))
	return v.(Codec[V])
}

func (c *keyDispatchCodec[K, V]) Keys(ops dyncodec.DynamicOps) []any {
	return []any{ops.CreateString(c.typeKey), ops.CreateString(valueKey)}
}

func (c *keyDispatchCodec[K, V]) Decode(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[V] {
	keyNode := input.GetString(c.typeKey)
	if keyNode == nil {
		return dyncodec.ErrorLazy[V](func() string {
			return "input does not contain a key [" + c.typeKey + "]"
		})
	}
	return dyncodec.FlatMap(Parse(c.keyCodec, ops, keyNode), func(k K) dyncodec.DataResult[V] {
		return dyncodec.FlatMap(c.codecFor(k), func(mc MapCodec[V]) dyncodec.DataResult[V] {
			if ops.CompressMaps() {
				payload := input.GetString(valueKey)
				if payload == nil {
					return dyncodec.ErrorLazy[V](func() string {
						return "input does not contain a [" + valueKey + "] entry"
					})
				}
				return Parse(c.lower(mc), ops, payload)
			}
			return mc.Decode(ops, input)
		})
	})
}

func (c *keyDispatchCodec[K, V]) Encode(value V, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
	resolvedKey := c.typeOf(value)
	resolved := dyncodec.FlatMap(resolvedKey, c.codecFor)
	mc, ok := resolved.Result()
	if !ok {
		return dyncodec.ErrorsFrom(builder, resolved)
	}
	if ops.CompressMaps() {
		builder = builder.AddResult(valueKey, EncodeStart(c.lower(mc), ops, value))
	} else {
		builder = mc.Encode(value, ops, builder)
	}
	keyValue := dyncodec.FlatMap(resolvedKey, func(k K) dyncodec.DataResult[any] {
		return EncodeStart(c.keyCodec, ops, k)
	})
	return builder.AddResult(c.typeKey, keyValue)
}

func (c *keyDispatchCodec[K, V]) String() string { return "KeyDispatch[" + c.typeKey + "]" }
