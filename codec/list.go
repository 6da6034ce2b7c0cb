package codec

import (
	"fmt"
	"math"
	"strings"

	dyncodec "github.com/reoring/dyncodec"
)

// ListOf is SizedListOf without bounds.
func ListOf[A any](elem Codec[A]) Codec[[]A] {
	return SizedListOf(elem, 0, math.MaxInt)
}

// SizedListOf builds a list codec with inclusive size bounds. Decoding
// attempts every element: malformed elements are reported by index while the
// valid subset survives as a partial result; the decode only fails outright
// when the valid count falls below minSize or the total count exceeds
// maxSize. Encoding enforces the same bounds.
func SizedListOf[A any](elem Codec[A], minSize, maxSize int) Codec[[]A] {
	name := "List[" + codecName(elem) + "]"
	return Of(name,
		func(value []A, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			if msg := checkBounds(len(value), minSize, maxSize); msg != "" {
				return dyncodec.Error[any](msg)
			}
			builder := dyncodec.NewListBuilder(ops)
			for _, v := range value {
				builder = builder.AddResult(EncodeStart(elem, ops, v))
			}
			return builder.Build(prefix)
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[[]A, any]] {
			return dyncodec.FlatMap(ops.GetList(input), func(items []any) dyncodec.DataResult[dyncodec.Pair[[]A, any]] {
				if len(items) > maxSize {
					return dyncodec.ErrorLazy[dyncodec.Pair[[]A, any]](func() string {
						return fmt.Sprintf("list is too long: %d, expected range [%d-%d]", len(items), minSize, maxSize)
					})
				}
				valid := make([]A, 0, len(items))
				var failures []string
				lifecycle := dyncodec.Stable()
				for i, item := range items {
					r := Parse(elem, ops, item)
					lifecycle = lifecycle.Add(r.Lifecycle())
					if v, ok := r.Result(); ok {
						valid = append(valid, v)
					} else {
						failures = append(failures, fmt.Sprintf("%d: %s", i, r.Message()))
					}
				}
				if len(valid) < minSize {
					return dyncodec.ErrorLazy[dyncodec.Pair[[]A, any]](func() string {
						return fmt.Sprintf("list is too short: %d, expected range [%d-%d]", len(valid), minSize, maxSize)
					}).SetLifecycle(lifecycle)
				}
				pair := dyncodec.NewPair(valid, ops.Empty())
				if len(failures) > 0 {
					return dyncodec.ErrorWithPartial(
						"failed to parse list elements: "+strings.Join(failures, "; "),
						pair,
					).SetLifecycle(lifecycle)
				}
				return dyncodec.Success(pair).SetLifecycle(lifecycle)
			})
		},
	)
}

func checkBounds(size, minSize, maxSize int) string {
	switch {
	case size < minSize:
		return fmt.Sprintf("list is too short: %d, expected range [%d-%d]", size, minSize, maxSize)
	case size > maxSize:
		return fmt.Sprintf("list is too long: %d, expected range [%d-%d]", size, minSize, maxSize)
	default:
		return ""
	}
}
