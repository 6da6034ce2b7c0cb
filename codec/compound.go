package codec

import (
	"fmt"
	"sort"
	"strings"

	dyncodec "github.com/reoring/dyncodec"
)

// PairOf builds a codec over two values sharing one node: the first codec
// decodes and leaves a remainder, the second consumes the remainder.
// Encoding layers both onto the same prefix in order.
func PairOf[F, S any](first Codec[F], second Codec[S]) Codec[dyncodec.Pair[F, S]] {
	name := "Pair[" + codecName(first) + ", " + codecName(second) + "]"
	return Of(name,
		func(value dyncodec.Pair[F, S], ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			return dyncodec.FlatMap(first.Encode(value.First, ops, prefix), func(mid any) dyncodec.DataResult[any] {
				return second.Encode(value.Second, ops, mid)
			})
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[dyncodec.Pair[F, S], any]] {
			return dyncodec.FlatMap(first.Decode(ops, input), func(p1 dyncodec.Pair[F, any]) dyncodec.DataResult[dyncodec.Pair[dyncodec.Pair[F, S], any]] {
				return dyncodec.Map(second.Decode(ops, p1.Second), func(p2 dyncodec.Pair[S, any]) dyncodec.Pair[dyncodec.Pair[F, S], any] {
					return dyncodec.NewPair(dyncodec.NewPair(p1.First, p2.First), p2.Second)
				})
			})
		},
	)
}

// EitherOf tries the left codec first and falls back to the right; a decode
// fails only when both alternatives do, reporting both messages.
func EitherOf[L, R any](left Codec[L], right Codec[R]) Codec[dyncodec.Either[L, R]] {
	name := "Either[" + codecName(left) + ", " + codecName(right) + "]"
	return Of(name,
		func(value dyncodec.Either[L, R], ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			if l, ok := value.Left(); ok {
				return left.Encode(l, ops, prefix)
			}
			r, _ := value.Right()
			return right.Encode(r, ops, prefix)
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[dyncodec.Either[L, R], any]] {
			rl := left.Decode(ops, input)
			if p, ok := rl.Result(); ok {
				pair := dyncodec.NewPair(dyncodec.Left[L, R](p.First), p.Second)
				return dyncodec.Success(pair).SetLifecycle(rl.Lifecycle())
			}
			rr := right.Decode(ops, input)
			if p, ok := rr.Result(); ok {
				pair := dyncodec.NewPair(dyncodec.Right[L, R](p.First), p.Second)
				return dyncodec.Success(pair).SetLifecycle(rr.Lifecycle())
			}
			return dyncodec.ErrorLazy[dyncodec.Pair[dyncodec.Either[L, R], any]](func() string {
				return "failed to decode either: " + rl.Message() + "; " + rr.Message()
			}).SetLifecycle(rl.Lifecycle().Add(rr.Lifecycle()))
		},
	)
}

// UnboundedMapOf builds a codec over a homogeneous map with arbitrary keys.
// Decoding attempts every entry; malformed entries are reported while the
// valid subset survives as a partial result. Encoding writes entries in
// sorted key order so output stays deterministic.
func UnboundedMapOf[K comparable, V any](key Codec[K], value Codec[V]) Codec[map[K]V] {
	name := "UnboundedMap[" + codecName(key) + " -> " + codecName(value) + "]"
	return Of(name,
		func(m map[K]V, ops dyncodec.DynamicOps, prefix any) dyncodec.DataResult[any] {
			keys := make([]K, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Slice(keys, func(i, j int) bool {
				return fmt.Sprint(keys[i]) < fmt.Sprint(keys[j])
			})
			builder := dyncodec.NewRecordBuilder(ops)
			for _, k := range keys {
				builder = builder.AddNodeResults(
					EncodeStart(key, ops, k),
					EncodeStart(value, ops, m[k]),
				)
			}
			return builder.Build(prefix)
		},
		func(ops dyncodec.DynamicOps, input any) dyncodec.DataResult[dyncodec.Pair[map[K]V, any]] {
			return dyncodec.FlatMap(ops.GetMapEntries(input), func(entries []dyncodec.MapEntry) dyncodec.DataResult[dyncodec.Pair[map[K]V, any]] {
				valid := make(map[K]V, len(entries))
				var failures []string
				lifecycle := dyncodec.Stable()
				for _, e := range entries {
					rk := Parse(key, ops, e.Key)
					rv := Parse(value, ops, e.Value)
					lifecycle = lifecycle.Add(rk.Lifecycle()).Add(rv.Lifecycle())
					k, okK := rk.Result()
					v, okV := rv.Result()
					if okK && okV {
						valid[k] = v
						continue
					}
					if !okK {
						failures = append(failures, fmt.Sprintf("key %v: %s", e.Key, rk.Message()))
					}
					if !okV {
						failures = append(failures, fmt.Sprintf("value for %v: %s", e.Key, rv.Message()))
					}
				}
				pair := dyncodec.NewPair(valid, ops.Empty())
				if len(failures) > 0 {
					return dyncodec.ErrorWithPartial(
						"failed to parse map entries: "+strings.Join(failures, "; "),
						pair,
					).SetLifecycle(lifecycle)
				}
				return dyncodec.Success(pair).SetLifecycle(lifecycle)
			})
		},
	)
}
