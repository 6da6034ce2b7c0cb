package codec_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	dyncodec "github.com/reoring/dyncodec"
	"github.com/reoring/dyncodec/codec"
)

var ops = dyncodec.NewTreeOps()

func TestBool_RoundTrip(t *testing.T) {
	node, err := codec.EncodeStart(codec.Bool(), ops, true).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if node != true {
		t.Fatalf("encoded %v", node)
	}
	v, err := codec.Parse(codec.Bool(), ops, node).ResultOrErr()
	if err != nil || v != true {
		t.Fatalf("decode %v %v", v, err)
	}
}

func TestString_DecodeRejectsNumbers(t *testing.T) {
	r := codec.Parse(codec.String(), ops, json.Number("1"))
	if !r.IsError() {
		t.Fatalf("expected type error")
	}
	if !strings.Contains(r.Message(), "not a string") {
		t.Fatalf("unexpected message: %q", r.Message())
	}
}

func TestInt64_KeepsFullPrecision(t *testing.T) {
	const big = int64(1) << 62
	node, err := codec.EncodeStart(codec.Int64(), ops, big).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	v, err := codec.Parse(codec.Int64(), ops, node).ResultOrErr()
	if err != nil || v != big {
		t.Fatalf("decode %v %v", v, err)
	}
}

func TestInt64_RejectsFractions(t *testing.T) {
	r := codec.Parse(codec.Int64(), ops, json.Number("1.5"))
	if !r.IsError() || !strings.Contains(r.Message(), "not an integer") {
		t.Fatalf("expected integer error, got %q", r.Message())
	}
}

func TestInt8_RangeCheck(t *testing.T) {
	if v, err := codec.Parse(codec.Int8(), ops, json.Number("127")).ResultOrErr(); err != nil || v != 127 {
		t.Fatalf("in-range decode failed: %v %v", v, err)
	}
	r := codec.Parse(codec.Int8(), ops, json.Number("128"))
	if !r.IsError() {
		t.Fatalf("expected range error")
	}
	if !strings.Contains(r.Message(), "outside of range [-128:127]") {
		t.Fatalf("unexpected message: %q", r.Message())
	}
}

func TestFloat64_RoundTrip(t *testing.T) {
	node, err := codec.EncodeStart(codec.Float64(), ops, 2.5).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	v, err := codec.Parse(codec.Float64(), ops, node).ResultOrErr()
	if err != nil || v != 2.5 {
		t.Fatalf("decode %v %v", v, err)
	}
}

func TestNumber_PreservesText(t *testing.T) {
	in := json.Number("0.300")
	node, err := codec.EncodeStart(codec.Number(), ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	v, err := codec.Parse(codec.Number(), ops, node).ResultOrErr()
	if err != nil || v != in {
		t.Fatalf("number text altered: %v %v", v, err)
	}
}

func TestByteSlice_RoundTripViaNumberList(t *testing.T) {
	in := []byte{0, 128, 255}
	node, err := codec.EncodeStart(codec.ByteSlice(), ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	v, err := codec.Parse(codec.ByteSlice(), ops, node).ResultOrErr()
	if err != nil || !reflect.DeepEqual(v, in) {
		t.Fatalf("decode %v %v", v, err)
	}
}

func TestIntList_RoundTrip(t *testing.T) {
	in := []int{3, -4, 5}
	node, err := codec.EncodeStart(codec.IntList(), ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	v, err := codec.Parse(codec.IntList(), ops, node).ResultOrErr()
	if err != nil || !reflect.DeepEqual(v, in) {
		t.Fatalf("decode %v %v", v, err)
	}
}

func TestUnit_ConsumesNothing(t *testing.T) {
	r := codec.Unit().Decode(ops, "anything")
	p, err := r.ResultOrErr()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Second != any("anything") {
		t.Fatalf("unit must leave the input as remainder, got %v", p.Second)
	}
	node, err := codec.Unit().Encode(dyncodec.Unit{}, ops, ops.Empty()).ResultOrErr()
	if err != nil || node != nil {
		t.Fatalf("unit must write nothing, got %v %v", node, err)
	}
}

func TestPassThrough_KeepsRawNode(t *testing.T) {
	in := map[string]any{"raw": true}
	v, err := codec.Parse(codec.PassThrough(), ops, in).ResultOrErr()
	if err != nil || !reflect.DeepEqual(v, in) {
		t.Fatalf("decode %v %v", v, err)
	}
	node, err := codec.EncodeStart(codec.PassThrough(), ops, any(in)).ResultOrErr()
	if err != nil || !reflect.DeepEqual(node, in) {
		t.Fatalf("encode %v %v", node, err)
	}
}

func TestPrimitive_EncodeRejectsOccupiedPrefix(t *testing.T) {
	r := codec.String().Encode("x", ops, "occupied")
	if !r.IsError() {
		t.Fatalf("expected prefix error")
	}
}
