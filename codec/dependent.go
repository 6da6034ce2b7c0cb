package codec

import (
	dyncodec "github.com/reoring/dyncodec"
)

// Dependent decodes a base value first and then decodes additional fields
// from the same record, choosing the codec for those fields based on the
// base value. splitter projects the dependent part out of a full value for
// encoding, combiner folds a decoded dependent part back in.
//
// Because the dependent keys are not known statically, the result is always
// marked experimental and cannot participate in compressed records.
func Dependent[O, D any](
	base MapCodec[O],
	resolver func(O) MapCodec[D],
	splitter func(O) D,
	combiner func(O, D) O,
) MapCodec[O] {
	return &dependentCodec[O, D]{base: base, resolver: resolver, splitter: splitter, combiner: combiner}
}

type dependentCodec[O, D any] struct {
	base     MapCodec[O]
	resolver func(O) MapCodec[D]
	splitter func(O) D
	combiner func(O, D) O
}

func (c *dependentCodec[O, D]) Keys(ops dyncodec.DynamicOps) []any {
	return c.base.Keys(ops)
}

func (c *dependentCodec[O, D]) Decode(ops dyncodec.DynamicOps, input dyncodec.MapLike) dyncodec.DataResult[O] {
	r := dyncodec.FlatMap(c.base.Decode(ops, input), func(o O) dyncodec.DataResult[O] {
		return dyncodec.Map(c.resolver(o).Decode(ops, input), func(d D) O {
			return c.combiner(o, d)
		})
	})
	return r.SetLifecycle(dyncodec.Experimental())
}

func (c *dependentCodec[O, D]) Encode(value O, ops dyncodec.DynamicOps, builder dyncodec.RecordBuilder) dyncodec.RecordBuilder {
	builder = c.base.Encode(value, ops, builder)
	builder = c.resolver(value).Encode(c.splitter(value), ops, builder)
	return builder.SetLifecycle(dyncodec.Experimental())
}

func (c *dependentCodec[O, D]) String() string {
	return "Dependent[" + codecName(c.base) + "]"
}
