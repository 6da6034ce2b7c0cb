package codec

import (
	"sync"

	dyncodec "github.com/reoring/dyncodec"
)

// MapEncoder writes a value as a set of record fields into a RecordBuilder,
// so multiple independently-defined encoders can be merged into one record.
type MapEncoder[A any] interface {
	// Keys declares the key nodes this encoder may produce, for the given
	// ops. A finite key set is required for compressed encoding.
	Keys(ops dyncodec.DynamicOps) []any
	Encode(value A, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder
}

// MapDecoder reads a value out of a MapLike record view.
type MapDecoder[A any] interface {
	Keys(ops dyncodec.DynamicOps) []any
	Decode(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[A]
}

// MapCodec is the fixed-field-set counterpart of Codec.
type MapCodec[A any] interface {
	MapEncoder[A]
	MapDecoder[A]
}

// MapCodecOf assembles a map codec from its three parts.
func MapCodecOf[A any](
	name string,
	keys func(ops dyncodec.DynamicOps) []any,
	encode func(value A, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder,
	decode func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[A],
) MapCodec[A] {
	return &funcMapCodec[A]{name: name, keys: keys, encode: encode, decode: decode}
}

type funcMapCodec[A any] struct {
	name   string
	keys   func(ops dyncodec.DynamicOps) []any
	encode func(value A, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder
	decode func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[A]
}

func (c *funcMapCodec[A]) Keys(ops dyncodec.DynamicOps) []any { return c.keys(ops) }

func (c *funcMapCodec[A]) Encode(value A, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
	return c.encode(value, ops, builder)
}

func (c *funcMapCodec[A]) Decode(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[A] {
	return c.decode(ops, input)
}

func (c *funcMapCodec[A]) String() string { return c.name }

// Ap combines a decoded transformation function with a value decoder: the
// applicative operator multi-field record decoding is built from. Errors on
// either side accumulate per DataResult.Ap.
func Ap[A, B any](fn MapDecoder[func(A) B], val MapDecoder[A]) MapDecoder[B] {
	return &apDecoder[A, B]{fn: fn, val: val}
}

type apDecoder[A, B any] struct {
	fn  MapDecoder[func(A) B]
	val MapDecoder[A]
}

func (d *apDecoder[A, B]) Keys(ops dyncodec.DynamicOps) []any {
	return append(d.fn.Keys(ops), d.val.Keys(ops)...)
}

func (d *apDecoder[A, B]) Decode(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[B] {
	return dyncodec.Ap(d.fn.Decode(ops, input), d.val.Decode(ops, input))
}

// XmapMap changes a map codec's value type with a total mapping.
func XmapMap[A, B any](c MapCodec[A], to func(A) B, from func(B) A) MapCodec[B] {
	return MapCodecOf(codecName(c)+"[xmapped]",
		c.Keys,
		func(value B, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			return c.Encode(from(value), ops, builder)
		},
		func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[B] {
			return dyncodec.Map(c.Decode(ops, input), to)
		},
	)
}

// FlatXmapMap changes a map codec's value type with a partial mapping.
func FlatXmapMap[A, B any](c MapCodec[A], to func(A) dyncodec.DataResult[B], from func(B) dyncodec.DataResult[A]) MapCodec[B] {
	return MapCodecOf(codecName(c)+"[flatXmapped]",
		c.Keys,
		func(value B, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			r := from(value)
			if a, ok := r.Result(); ok {
				return c.Encode(a, ops, builder)
			}
			return dyncodec.ErrorsFrom(builder, r)
		},
		func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[B] {
			return dyncodec.FlatMap(c.Decode(ops, input), to)
		},
	)
}

// MapWithLifecycle stamps every result of a map codec with the lifecycle.
func MapWithLifecycle[A any](c MapCodec[A], lc dyncodec.Lifecycle) MapCodec[A] {
	return MapCodecOf(codecName(c),
		c.Keys,
		func(value A, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			return c.Encode(value, ops, builder).SetLifecycle(lc)
		},
		func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[A] {
			return c.Decode(ops, input).SetLifecycle(lc)
		},
	)
}

// AsCodec lowers a map codec to a whole-record codec. When the ops request
// compressed maps, the record is written and read as an array indexed by the
// codec's KeyCompressor; otherwise fields are named. The remainder of a
// decode is the input itself, since other map codecs may read sibling keys.
func AsCodec[A any](mc MapCodec[A]) Codec[A] {
	c := &mapCodecCodec[A]{mc: mc}
	return c
}

type mapCodecCodec[A any] struct {
	mc          MapCodec[A]
	compressors sync.Map // dyncodec.DynamicOps -> *dyncodec.KeyCompressor
}

// compressor returns the cached key compressor for the given ops, building
// it at most once per ops instance.
func (c *mapCodecCodec[A]) compressor(ops dyncodec.DynamicOps) *dyncodec.KeyCompressor {
	if v, ok := c.compressors.Load(ops); ok {
		return v.(*dyncodec.KeyCompressor)
	}
	built := dyncodec.NewKeyCompressor(ops, c.mc.Keys(ops))
	v, _ := c.compressors.LoadOrStore(ops, built)
	return v.(*dyncodec.KeyCompressor)
}

func (c *mapCodecCodec[A]) Decode(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
	var decoded dyncodec.DataResult[A]
	if ops.CompressMaps() {
		decoded = dyncodec.FlatMap(ops.GetList(input), func(items []any) dyncodec.DataResult[A] {
			view := dyncodec.CompressedMapLike(ops, c.compressor(ops), items)
			return c.mc.Decode(ops, view)
		})
	} else {
		decoded = dyncodec.FlatMap(ops.GetMap(input), func(view dyncodec.MapLike) dyncodec.DataResult[A] {
			return c.mc.Decode(ops, view)
		})
	}
	return dyncodec.Map(decoded, func(a A) dyncodec.Pair[A, any] {
		return dyncodec.NewPair(a, input)
	})
}

func (c *mapCodecCodec[A]) Encode(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
	var builder dyncodec.RecordBuilder
	if ops.CompressMaps() {
		builder = dyncodec.NewCompressedRecordBuilder(ops, c.compressor(ops))
	} else {
		builder = dyncodec.NewRecordBuilder(ops)
	}
	return c.mc.Encode(value, ops, builder).Build(prefix)
}

func (c *mapCodecCodec[A]) String() string { return codecName(c.mc) }
