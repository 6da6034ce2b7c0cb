package codec

import (
	dyncodec "github.com/reoring/dyncodec"
)

// Xmap changes the value type with a total bidirectional mapping.
func Xmap[A, B any](c Codec[A], to func(A) B, from func(B) A) Codec[B] {
	return FlatXmap(c,
		func(a A) dyncodec.DataResult[B] { return dyncodec.Success(to(a)) },
		func(b B) dyncodec.DataResult[A] { return dyncodec.Success(from(b)) },
	)
}

// FlatXmap changes the value type with a partial mapping in both directions.
func FlatXmap[A, B any](c Codec[A], to func(A) dyncodec.DataResult[B], from func(B) dyncodec.DataResult[A]) Codec[B] {
	name := codecName(c) + "[flatXmapped]"
	return Of(name,
		func(value B, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			return dyncodec.FlatMap(from(value), func(a A) dyncodec.DataResult[any] {
				return c.Encode(a, ops, prefix)
			})
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[B, any]] {
			return dyncodec.FlatMap(c.Decode(ops, input), func(p dyncodec.Pair[A, any]) dyncodec.DataResult[dyncodec.Pair[B, any]] {
				return dyncodec.Map(to(p.First), func(b B) dyncodec.Pair[B, any] {
					return dyncodec.NewPair(b, p.Second)
				})
			})
		},
	)
}

// ComapFlatMap is partial on decode and total on encode.
func ComapFlatMap[A, B any](c Codec[A], to func(A) dyncodec.DataResult[B], from func(B) A) Codec[B] {
	return FlatXmap(c, to, func(b B) dyncodec.DataResult[A] { return dyncodec.Success(from(b)) })
}

// FlatComapMap is total on decode and partial on encode.
func FlatComapMap[A, B any](c Codec[A], to func(A) B, from func(B) dyncodec.DataResult[A]) Codec[B] {
	return FlatXmap(c, func(a A) dyncodec.DataResult[B] { return dyncodec.Success(to(a)) }, from)
}

// Validate runs the same invariant check on both decode and encode.
func Validate[A any](c Codec[A], check func(A) dyncodec.DataResult[A]) Codec[A] {
	return FlatXmap(c, check, check)
}

// WithLifecycle stamps every result of the codec with the given lifecycle.
func WithLifecycle[A any](c Codec[A], lc dyncodec.Lifecycle) Codec[A] {
	return Of(codecName(c),
		func(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			return c.Encode(value, ops, prefix).SetLifecycle(lc)
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
			return c.Decode(ops, input).SetLifecycle(lc)
		},
	)
}

// StableCodec marks results stable.
func StableCodec[A any](c Codec[A]) Codec[A] { return WithLifecycle(c, dyncodec.Stable()) }

// DeprecatedCodec marks results deprecated since the given version.
func DeprecatedCodec[A any](c Codec[A], since int) Codec[A] {
	return WithLifecycle(c, dyncodec.DeprecatedSince(since))
}

// ExperimentalCodec marks results experimental.
func ExperimentalCodec[A any](c Codec[A]) Codec[A] {
	return WithLifecycle(c, dyncodec.Experimental())
}

// OrElse substitutes a fixed fallback value for any decode failure,
// reporting the message to onError (which may be nil). Encode failures
// fall back to the untouched prefix.
func OrElse[A any](c Codec[A], fallback A, onError func(message string)) Codec[A] {
	return OrElseGet(c, func() A { return fallback }, onError)
}

// OrElseGet is OrElse with a lazily-supplied fallback.
func OrElseGet[A any](c Codec[A], supplier func() A, onError func(message string)) Codec[A] {
	report := func(msg string) {
		if onError != nil {
			onError(msg)
		}
	}
	return Of(codecName(c)+"[orElse]",
		func(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			r := c.Encode(value, ops, prefix)
			if r.IsError() {
				report(r.Message())
				return dyncodec.Success(prefix)
			}
			return r
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
			r := c.Decode(ops, input)
			if r.IsError() {
				report(r.Message())
				return dyncodec.Success(dyncodec.NewPair(supplier(), input))
			}
			return r
		},
	)
}

// PromotePartial accepts the partial value of failed decodes, reporting the
// message to onError.
func PromotePartial[A any](c Codec[A], onError func(message string)) Codec[A] {
	return Of(codecName(c)+"[promotePartial]",
		c.Encode,
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
			return c.Decode(ops, input).PromotePartial(onError)
		},
	)
}
