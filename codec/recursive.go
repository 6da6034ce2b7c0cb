package codec

import (
	"sync"

	dyncodec "github.com/reoring/dyncodec"
)

// Recursive builds a self-referential codec: f receives the not-yet-resolved
// codec itself as a forward reference, so a codec can mention itself for
// recursive grammars (tree-shaped values). The wrapped codec is constructed
// at most once, on first use, even under concurrent first access. f must not
// decode or encode through the self reference while constructing.
func Recursive[A any](name string, f func(self Codec[A]) Codec[A]) Codec[A] {
	return &recursiveCodec[A]{name: name, f: f}
}

type recursiveCodec[A any] struct {
	name     string
	f        func(Codec[A]) Codec[A]
	once     sync.Once
	resolved Codec[A]
}

func (c *recursiveCodec[A]) delegate() Codec[A] {
	c.once.Do(func() {
		c.resolved = c.f(c)
	})
	return c.resolved
}

func (c *recursiveCodec[A]) Decode(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
	return c.delegate().Decode(ops, input)
}

func (c *recursiveCodec[A]) Encode(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
	return c.delegate().Encode(value, ops, prefix)
}

func (c *recursiveCodec[A]) String() string { return "Recursive[" + c.name + "]" }

// Lazy defers codec construction to first use with compute-once semantics.
func Lazy[A any](f func() Codec[A]) Codec[A] {
	return &lazyCodec[A]{f: sync.OnceValue(f)}
}

type lazyCodec[A any] struct {
	f func() Codec[A]
}

func (c *lazyCodec[A]) Decode(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
	return c.f().Decode(ops, input)
}

func (c *lazyCodec[A]) Encode(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
	return c.f().Encode(value, ops, prefix)
}

func (c *lazyCodec[A]) String() string { return codecName(c.f()) + "[lazy]" }
