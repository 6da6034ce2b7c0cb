package msgpack_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	dyncodec "github.com/reoring/dyncodec"
	"github.com/reoring/dyncodec/codec"
	jsonfmt "github.com/reoring/dyncodec/format/json"
	msgpackfmt "github.com/reoring/dyncodec/format/msgpack"
)

func TestMarshal_RoundTrip(t *testing.T) {
	in := map[string]any{
		"name": "alice",
		"n":    int64(42),
		"blob": []byte{1, 2, 3},
		"list": []any{int64(1), "two"},
	}
	data, err := msgpackfmt.Marshal(in)
	require.NoError(t, err)

	out, err := msgpackfmt.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestMarshal_Uint64AboveMaxInt64StaysExact(t *testing.T) {
	big := uint64(1) << 63
	data, err := msgpackfmt.Marshal(map[string]any{"big": big})
	require.NoError(t, err)

	out, err := msgpackfmt.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, map[string]any{"big": json.Number("9223372036854775808")}, out)

	again, err := msgpackfmt.Marshal(out)
	require.NoError(t, err)
	back, err := msgpackfmt.Unmarshal(again)
	require.NoError(t, err)
	require.Equal(t, out, back)
}

func TestOps_NativeByteStrings(t *testing.T) {
	ops := msgpackfmt.Ops()
	bo, ok := ops.(dyncodec.ByteSliceOps)
	require.True(t, ok, "msgpack ops must expose native byte strings")

	node := dyncodec.CreateByteSlice(ops, []byte{9, 8})
	require.IsType(t, []byte(nil), node)

	b, err := bo.GetByteSlice(node).ResultOrErr()
	require.NoError(t, err)
	require.Equal(t, []byte{9, 8}, b)
}

func TestByteSliceCodec_UsesBinNodes(t *testing.T) {
	ops := msgpackfmt.Ops()
	in := []byte{0, 127, 255}

	node, err := codec.EncodeStart(codec.ByteSlice(), ops, in).ResultOrErr()
	require.NoError(t, err)
	require.IsType(t, []byte(nil), node)

	out, err := codec.Parse(codec.ByteSlice(), ops, node).ResultOrErr()
	require.NoError(t, err)
	require.Equal(t, in, out)
}

func TestConvertTo_JSONTurnsBytesIntoNumberList(t *testing.T) {
	ops := msgpackfmt.Ops()
	node := map[string]any{"blob": []byte{1, 255}}

	converted := ops.ConvertTo(jsonfmt.Ops(), node)
	require.Equal(t, map[string]any{
		"blob": []any{json.Number("1"), json.Number("255")},
	}, converted)
}

func TestConvertTo_FromJSONKeepsStructure(t *testing.T) {
	node, err := jsonfmt.Unmarshal([]byte(`{"a": 7, "b": [false]}`))
	require.NoError(t, err)

	converted := jsonfmt.Ops().ConvertTo(msgpackfmt.Ops(), node)
	require.Equal(t, map[string]any{"a": int64(7), "b": []any{false}}, converted)

	data, err := msgpackfmt.Marshal(converted)
	require.NoError(t, err)
	back, err := msgpackfmt.Unmarshal(data)
	require.NoError(t, err)
	require.Equal(t, converted, back)
}
