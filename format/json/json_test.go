package json_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/reoring/dyncodec/codec"
	jsonfmt "github.com/reoring/dyncodec/format/json"
)

func TestUnmarshal_NumbersKeepExactText(t *testing.T) {
	node, err := jsonfmt.Unmarshal([]byte(`{"big": 9007199254740993, "frac": 0.300}`))
	require.NoError(t, err)

	m, ok := node.(map[string]any)
	require.True(t, ok)
	require.Equal(t, json.Number("9007199254740993"), m["big"])
	require.Equal(t, json.Number("0.300"), m["frac"])
}

func TestMarshal_RoundTrip(t *testing.T) {
	in := []byte(`{"name":"alice","tags":["a","b"],"n":42}`)
	node, err := jsonfmt.Unmarshal(in)
	require.NoError(t, err)

	out, err := jsonfmt.Marshal(node)
	require.NoError(t, err)
	require.JSONEq(t, string(in), string(out))
}

type point struct {
	X int64
	Y int64
}

var pointCodec = codec.AsCodec(codec.Record2(
	func(x, y int64) point { return point{X: x, Y: y} },
	codec.FieldOf("x", codec.Int64()), func(p point) int64 { return p.X },
	codec.FieldOf("y", codec.Int64()), func(p point) int64 { return p.Y },
))

func TestCodecThroughJSON(t *testing.T) {
	node, err := jsonfmt.Unmarshal([]byte(`{"x": 1, "y": 2}`))
	require.NoError(t, err)

	p, err := codec.Parse(pointCodec, jsonfmt.Ops(), node).ResultOrErr()
	require.NoError(t, err)
	require.Equal(t, point{X: 1, Y: 2}, p)

	encoded, err := codec.EncodeStart(pointCodec, jsonfmt.Ops(), p).ResultOrErr()
	require.NoError(t, err)
	data, err := jsonfmt.Marshal(encoded)
	require.NoError(t, err)
	require.JSONEq(t, `{"x":1,"y":2}`, string(data))
}

func TestCompressedOps_EncodeAsArray(t *testing.T) {
	encoded, err := codec.EncodeStart(pointCodec, jsonfmt.CompressedOps(), point{X: 3, Y: 4}).ResultOrErr()
	require.NoError(t, err)

	data, err := jsonfmt.Marshal(encoded)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "["), "compressed records render as arrays: %s", data)
	require.JSONEq(t, `[3,4]`, string(data))

	node, err := jsonfmt.Unmarshal(data)
	require.NoError(t, err)
	p, err := codec.Parse(pointCodec, jsonfmt.CompressedOps(), node).ResultOrErr()
	require.NoError(t, err)
	require.Equal(t, point{X: 3, Y: 4}, p)
}

func TestOps_SingletonsAreShared(t *testing.T) {
	require.Same(t, jsonfmt.Ops(), jsonfmt.Ops())
	require.Same(t, jsonfmt.CompressedOps(), jsonfmt.CompressedOps())
}
