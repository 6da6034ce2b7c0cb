package codec

import (
	"encoding/json"
	"math"
	"strconv"

	dyncodec "github.com/reoring/dyncodec"
)

// primitive builds a terminal codec from a getter and a node constructor.
// Decoding consumes the whole input, so the remainder is ops.Empty().
func primitive[A any](
	name string,
	get func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[A],
	create func(ops dyncodec.DynamicOps, value A) any,
) Codec[A] {
	return Of(name,
		func(value A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			return ops.MergeToPrimitive(prefix, create(ops, value))
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[A, any]] {
			return dyncodec.Map(get(ops, input), func(a A) dyncodec.Pair[A, any] {
				return dyncodec.NewPair(a, ops.Empty())
			})
		},
	)
}

// Bool is the boolean codec.
func Bool() Codec[bool] {
	return primitive("Bool",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[bool] {
			return ops.GetBoolValue(input)
		},
		func(ops dyncodec.DynamicOps, v bool) any { return ops.CreateBool(v) },
	)
}

// String is the string codec.
func String() Codec[string] {
	return primitive("String",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[string] {
			return ops.GetStringValue(input)
		},
		func(ops dyncodec.DynamicOps, v string) any { return ops.CreateString(v) },
	)
}

// Int64 is the 64-bit integer codec. Fractional input fails.
func Int64() Codec[int64] {
	return primitive("Int64",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[int64] {
			return dyncodec.GetInt64Value(ops, input)
		},
		func(ops dyncodec.DynamicOps, v int64) any { return dyncodec.CreateInt64(ops, v) },
	)
}

// Int is the platform-int codec; range-checked down from int64.
func Int() Codec[int] {
	return rangedInt[int]("Int", math.MinInt, math.MaxInt)
}

// Int32 is the 32-bit integer codec; range-checked down from int64.
func Int32() Codec[int32] {
	return rangedInt[int32]("Int32", math.MinInt32, math.MaxInt32)
}

// Int16 is the 16-bit integer codec; range-checked down from int64.
func Int16() Codec[int16] {
	return rangedInt[int16]("Int16", math.MinInt16, math.MaxInt16)
}

// Int8 is the 8-bit integer codec; range-checked down from int64.
func Int8() Codec[int8] {
	return rangedInt[int8]("Int8", math.MinInt8, math.MaxInt8)
}

func rangedInt[A ~int | ~int8 | ~int16 | ~int32](name string, lo, hi int64) Codec[A] {
	return primitive(name,
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[A] {
			return dyncodec.FlatMap(dyncodec.GetInt64Value(ops, input), func(i int64) dyncodec.DataResult[A] {
				if i < lo || i > hi {
					return dyncodec.ErrorLazy[A](func() string {
						return "value " + strconv.FormatInt(i, 10) + " outside of range [" +
							strconv.FormatInt(lo, 10) + ":" + strconv.FormatInt(hi, 10) + "]"
					})
				}
				return dyncodec.Success(A(i))
			})
		},
		func(ops dyncodec.DynamicOps, v A) any { return dyncodec.CreateInt64(ops, int64(v)) },
	)
}

// Float64 is the 64-bit float codec.
func Float64() Codec[float64] {
	return primitive("Float64",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[float64] {
			return dyncodec.GetFloat64Value(ops, input)
		},
		func(ops dyncodec.DynamicOps, v float64) any { return dyncodec.CreateFloat64(ops, v) },
	)
}

// Float32 is the 32-bit float codec.
func Float32() Codec[float32] {
	return primitive("Float32",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[float32] {
			return dyncodec.Map(dyncodec.GetFloat64Value(ops, input), func(f float64) float32 {
				return float32(f)
			})
		},
		func(ops dyncodec.DynamicOps, v float32) any {
			return ops.CreateNumeric(json.Number(strconv.FormatFloat(float64(v), 'g', -1, 32)))
		},
	)
}

// Number is the raw decimal codec, preserving the exact numeric text.
func Number() Codec[json.Number] {
	return primitive("Number",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[json.Number] {
			return ops.GetNumberValue(input)
		},
		func(ops dyncodec.DynamicOps, v json.Number) any { return ops.CreateNumeric(v) },
	)
}

// ByteSlice is the byte-string codec: native where the format supports it,
// a list of numbers otherwise.
func ByteSlice() Codec[[]byte] {
	return primitive("ByteSlice",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[[]byte] {
			return dyncodec.GetByteSlice(ops, input)
		},
		func(ops dyncodec.DynamicOps, v []byte) any { return dyncodec.CreateByteSlice(ops, v) },
	)
}

// Int64List is the packed integer-list codec.
func Int64List() Codec[[]int64] {
	return primitive("Int64List",
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[[]int64] {
			return dyncodec.GetIntList(ops, input)
		},
		func(ops dyncodec.DynamicOps, v []int64) any { return dyncodec.CreateIntList(ops, v) },
	)
}

// IntList is Int64List over platform ints.
func IntList() Codec[[]int] {
	return Xmap(Int64List(),
		func(items []int64) []int {
			out := make([]int, len(items))
			for i, v := range items {
				out[i] = int(v)
			}
			return out
		},
		func(items []int) []int64 {
			out := make([]int64, len(items))
			for i, v := range items {
				out[i] = int64(v)
			}
			return out
		},
	)
}

// Unit is the empty codec: it consumes nothing and writes nothing.
func Unit() Codec[dyncodec.Unit] {
	return Of("Unit",
		func(_ dyncodec.Unit, _ dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			return dyncodec.Success(prefix)
		},
		func(_ dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[dyncodec.Unit, any]] {
			return dyncodec.Success(dyncodec.NewPair(dyncodec.Unit{}, input))
		},
	)
}

// PassThrough is the raw-node codec: the decoded value is the input node
// itself, converted into the encoding ops' representation on the way out.
func PassThrough() Codec[any] {
	return Of("PassThrough",
		func(value any, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			return ops.MergeToPrimitive(prefix, value)
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[any, any]] {
			return dyncodec.Success(dyncodec.NewPair(input, ops.Empty()))
		},
	)
}
