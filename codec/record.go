package codec

import (
	dyncodec "github.com/reoring/dyncodec"
)

// Record constructors combine per-field map codecs with getters and a
// constructor function into a map codec for the whole record. Decoding is
// applicative (built on Ap): every field is attempted and independent field
// failures accumulate into one message. Only the arities record call sites
// actually use are provided; deeper records nest or use Ap directly.

func mapDecode[A, B any](d MapDecoder[A], f func(A) B) MapDecoder[B] {
	return &mappedDecoder[A, B]{d: d, f: f}
}

type mappedDecoder[A, B any] struct {
	d MapDecoder[A]
	f func(A) B
}

func (m *mappedDecoder[A, B]) Keys(ops dyncodec.DynamicOps) []any { return m.d.Keys(ops) }

func (m *mappedDecoder[A, B]) Decode(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[B] {
	return dyncodec.Map(m.d.Decode(ops, input), m.f)
}

// Record1 wraps a single field.
func Record1[O, A any](ctor func(A) O, fa MapCodec[A], ga func(O) A) MapCodec[O] {
	return MapCodecOf("Record",
		fa.Keys,
		func(value O, ops dyncodec.DynamicOps, b dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			return fa.Encode(ga(value), ops, b)
		},
		func(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[O] {
			return dyncodec.Map(fa.Decode(ops, input), ctor)
		},
	)
}

// Record2 combines two fields.
func Record2[O, A, B any](
	ctor func(A, B) O,
	fa MapCodec[A], ga func(O) A,
	fb MapCodec[B], gb func(O) B,
) MapCodec[O] {
	decoder := Ap(mapDecode[A](fa, func(a A) func(B) O {
		return func(b B) O { return ctor(a, b) }
	}), MapDecoder[B](fb))
	return MapCodecOf("Record",
		func(ops dyncodec.DynamicOps) []any {
			return append(fa.Keys(ops), fb.Keys(ops)...)
		},
		func(value O, ops dyncodec.DynamicOps, b dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			b = fa.Encode(ga(value), ops, b)
			return fb.Encode(gb(value), ops, b)
		},
		decoder.Decode,
	)
}

// Record3 combines three fields.
func Record3[O, A, B, C any](
	ctor func(A, B, C) O,
	fa MapCodec[A], ga func(O) A,
	fb MapCodec[B], gb func(O) B,
	fc MapCodec[C], gc func(O) C,
) MapCodec[O] {
	partial := Ap(mapDecode[A](fa, func(a A) func(B) func(C) O {
		return func(b B) func(C) O {
			return func(c C) O { return ctor(a, b, c) }
		}
	}), MapDecoder[B](fb))
	decoder := Ap(partial, MapDecoder[C](fc))
	return MapCodecOf("Record",
		func(ops dyncodec.DynamicOps) []any {
			keys := append(fa.Keys(ops), fb.Keys(ops)...)
			return append(keys, fc.Keys(ops)...)
		},
		func(value O, ops dyncodec.DynamicOps, b dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			b = fa.Encode(ga(value), ops, b)
			b = fb.Encode(gb(value), ops, b)
			return fc.Encode(gc(value), ops, b)
		},
		decoder.Decode,
	)
}

// Record4 combines four fields.
func Record4[O, A, B, C, D any](
	ctor func(A, B, C, D) O,
	fa MapCodec[A], ga func(O) A,
	fb MapCodec[B], gb func(O) B,
	fc MapCodec[C], gc func(O) C,
	fd MapCodec[D], gd func(O) D,
) MapCodec[O] {
	partial := Ap(Ap(mapDecode[A](fa, func(a A) func(B) func(C) func(D) O {
		return func(b B) func(C) func(D) O {
			return func(c C) func(D) O {
				return func(d D) O { return ctor(a, b, c, d) }
			}
		}
	}), MapDecoder[B](fb)), MapDecoder[C](fc))
	decoder := Ap(partial, MapDecoder[D](fd))
	return MapCodecOf("Record",
		func(ops dyncodec.DynamicOps) []any {
			keys := append(fa.Keys(ops), fb.Keys(ops)...)
			keys = append(keys, fc.Keys(ops)...)
			return append(keys, fd.Keys(ops)...)
		},
		func(value O, ops dyncodec.DynamicOps, b dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			b = fa.Encode(ga(value), ops, b)
			b = fb.Encode(gb(value), ops, b)
			b = fc.Encode(gc(value), ops, b)
			return fd.Encode(gd(value), ops, b)
		},
		decoder.Decode,
	)
}

// Record5 combines five fields.
func Record5[O, A, B, C, D, E any](
	ctor func(A, B, C, D, E) O,
	fa MapCodec[A], ga func(O) A,
	fb MapCodec[B], gb func(O) B,
	fc MapCodec[C], gc func(O) C,
	fd MapCodec[D], gd func(O) D,
	fe MapCodec[E], ge func(O) E,
) MapCodec[O] {
	partial := Ap(Ap(Ap(mapDecode[A](fa, func(a A) func(B) func(C) func(D) func(E) O {
		return func(b B) func(C) func(D) func(E) O {
			return func(c C) func(D) func(E) O {
				return func(d D) func(E) O {
					return func(e E) O { return ctor(a, b, c, d, e) }
				}
			}
		}
	}), MapDecoder[B](fb)), MapDecoder[C](fc)), MapDecoder[D](fd))
	decoder := Ap(partial, MapDecoder[E](fe))
	return MapCodecOf("Record",
		func(ops dyncodec.DynamicOps) []any {
			keys := append(fa.Keys(ops), fb.Keys(ops)...)
			keys = append(keys, fc.Keys(ops)...)
			keys = append(keys, fd.Keys(ops)...)
			return append(keys, fe.Keys(ops)...)
		},
		func(value O, ops dyncodec.DynamicOps, b dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			b = fa.Encode(ga(value), ops, b)
			b = fb.Encode(gb(value), ops, b)
			b = fc.Encode(gc(value), ops, b)
			b = fd.Encode(gd(value), ops, b)
			return fe.Encode(ge(value), ops, b)
		},
		decoder.Decode,
	)
}

// Record6 combines six fields.
func Record6[O, A, B, C, D, E, F any](
	ctor func(A, B, C, D, E, F) O,
	fa MapCodec[A], ga func(O) A,
	fb MapCodec[B], gb func(O) B,
	fc MapCodec[C], gc func(O) C,
	fd MapCodec[D], gd func(O) D,
	fe MapCodec[E], ge func(O) E,
	ff MapCodec[F], gf func(O) F,
) MapCodec[O] {
	partial := Ap(Ap(Ap(Ap(mapDecode[A](fa, func(a A) func(B) func(C) func(D) func(E) func(F) O {
		return func(b B) func(C) func(D) func(E) func(F) O {
			return func(c C) func(D) func(E) func(F) O {
				return func(d D) func(E) func(F) O {
					return func(e E) func(F) O {
						return func(f F) O { return ctor(a, b, c, d, e, f) }
					}
				}
			}
		}
	}), MapDecoder[B](fb)), MapDecoder[C](fc)), MapDecoder[D](fd)), MapDecoder[E](fe))
	decoder := Ap(partial, MapDecoder[F](ff))
	return MapCodecOf("Record",
		func(ops dyncodec.DynamicOps) []any {
			keys := append(fa.Keys(ops), fb.Keys(ops)...)
			keys = append(keys, fc.Keys(ops)...)
			keys = append(keys, fd.Keys(ops)...)
			keys = append(keys, fe.Keys(ops)...)
			return append(keys, ff.Keys(ops)...)
		},
		func(value O, ops dyncodec.DynamicOps, b dyncodec.RecordBuilder) dyncodec.RecordBuilder {
			b = fa.Encode(ga(value), ops, b)
			b = fb.Encode(gb(value), ops, b)
			b = fc.Encode(gc(value), ops, b)
			b = fd.Encode(gd(value), ops, b)
			b = fe.Encode(ge(value), ops, b)
			return ff.Encode(gf(value), ops, b)
		},
		decoder.Decode,
	)
}
