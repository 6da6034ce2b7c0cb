package codec

import (
	"reflect"

	dyncodec "github.com/reoring/dyncodec"
)

// FieldOf lowers a codec to a map codec reading and writing a single named
// field. A missing field is a total decode failure naming the key.
func FieldOf[A any](name string, elem Codec[A]) MapCodec[A] {
	return MapCodecOf("Field["+name+": "+codecName(elem)+"]",
		func(ops dyncodec.DynamicOps) []any {
			return []any{ops.CreateString(name)}
		},
		func(value A, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			return builder.AddResult(name, EncodeStart(elem, ops, value))
		},
		func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[A] {
			node := input.GetString(name)
			if node == nil {
				return dyncodec.ErrorLazy[A](func() string { return "no key " + name + " in input" })
			}
			return Parse(elem, ops, node)
		},
	)
}

// OptionalFieldOf lowers a codec to a map codec over an optional field:
// an absent field decodes to None and None writes nothing. With lenient set,
// a decode error on a present field also downgrades to None instead of
// propagating — a swallow-and-default policy callers opt into explicitly.
func OptionalFieldOf[A any](name string, elem Codec[A], lenient bool) MapCodec[dyncodec.Optional[A]] {
	return MapCodecOf("OptionalField["+name+": "+codecName(elem)+"]",
		func(ops dyncodec.DynamicOps) []any {
			return []any{ops.CreateString(name)}
		},
		func(value dyncodec.Optional[A], ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			if v, ok := value.Get(); ok {
				return builder.AddResult(name, EncodeStart(elem, ops, v))
			}
			return builder
		},
		func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[dyncodec.Optional[A]] {
			node := input.GetString(name)
			if node == nil {
				return dyncodec.Success(dyncodec.None[A]())
			}
			parsed := Parse(elem, ops, node)
			if parsed.IsError() && lenient {
				return dyncodec.Success(dyncodec.None[A]())
			}
			return dyncodec.Map(parsed, dyncodec.Some[A])
		},
	)
}

// OptionalFieldOfDefault substitutes a default for an absent field and,
// symmetrically, skips writing the field when the value equals the default.
func OptionalFieldOfDefault[A any](name string, elem Codec[A], def A) MapCodec[A] {
	return withDefault(OptionalFieldOf(name, elem, false), def)
}

// LenientOptionalFieldOfDefault is OptionalFieldOfDefault with the lenient
// error-swallowing decode policy.
func LenientOptionalFieldOfDefault[A any](name string, elem Codec[A], def A) MapCodec[A] {
	return withDefault(OptionalFieldOf(name, elem, true), def)
}

func withDefault[A any](field MapCodec[dyncodec.Optional[A]], def A) MapCodec[A] {
	return XmapMap(field,
		func(o dyncodec.Optional[A]) A { return o.OrElse(def) },
		func(a A) dyncodec.Optional[A] {
			if reflect.DeepEqual(a, def) {
				return dyncodec.None[A]()
			}
			return dyncodec.Some(a)
		},
	)
}
