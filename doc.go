package dyncodec

// Package dyncodec provides:
//
// - A format-agnostic, bidirectional serialization core based on DataResult
//   (success / error-with-optional-partial-value / lifecycle marker)
// - The DynamicOps contract abstracting over a concrete serialized tree
//   representation, plus TreeOps over native Go values
// - Per-call RecordBuilder/ListBuilder accumulators and the MapLike record
//   view consumed by the codec combinators
// - KeyCompressor for compact array-indexed record encoding
//
// Design policy:
// - Keep only leaf types and the ops contract in the root package; the
//   Encoder/Decoder/Codec combinator families live under codec/.
// - Wire-format adapters live under format/ and only consume the DynamicOps
//   contract; the core performs no I/O.
// - Errors are values: every decode/encode path returns a DataResult and
//   conversion to a Go error happens only at extraction.
//
// Typical usage:
//
//	c := codec.SizedListOf(codec.Int(), 1, 16)
//	r := codec.Parse(c, json.Ops(), node)
//	v, err := r.ResultOrErr()
//
//	out := codec.EncodeStart(c, yaml.Ops(), v)
