// Package codec provides the Encoder/Decoder/Codec and MapEncoder/MapDecoder/
// MapCodec combinator families: immutable, format-agnostic schema values that
// encode to and decode from any tree representation satisfying the
// dyncodec.DynamicOps contract.
//
// Codecs are constructed once (typically at package initialization through
// combinator chains) and are safe for unlimited concurrent use afterwards.
package codec

import (
	"fmt"

	dyncodec "github.com/reoring/dyncodec"
)

// Decoder reads a value of type A out of a tree node, returning the value
// together with the remainder of the input that it did not consume.
type Decoder[A any] interface {
	Decode(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]]
}

// Encoder writes a value of type A onto a prefix node.
type Encoder[A any] interface {
	Encode(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any]
}

// Codec is an immutable bidirectional schema for A.
type Codec[A any] interface {
	Decoder[A]
	Encoder[A]
}

// Parse decodes and drops the remainder.
func Parse[A any](d Decoder[A], ops dyncodec.DynamicOps, input any) dyncodec.DataResult[A] {
	return dyncodec.Map(d.Decode(ops, input), func(p dyncodec.Pair[A, any]) A {
		return p.First
	})
}

// EncodeStart encodes onto an empty prefix.
func EncodeStart[A any](e Encoder[A], ops dyncodec.DynamicOps, value A) dyncodec.DataResult[any] {
	return e.Encode(value, ops, ops.Empty())
}

// Of assembles a codec from an encode and a decode function.
func Of[A any](
	name string,
	encode func(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any],
	decode func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]],
) Codec[A] {
	return &funcCodec[A]{name: name, encode: encode, decode: decode}
}

type funcCodec[A any] struct {
	name   string
	encode func(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any]
	decode func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]]
}

func (c *funcCodec[A]) Decode(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
	return c.decode(ops, input)
}

func (c *funcCodec[A]) Encode(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
	return c.encode(value, ops, prefix)
}

func (c *funcCodec[A]) String() string { return c.name }

func codecName(c any) string {
	if s, ok := c.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%T", c)
}
