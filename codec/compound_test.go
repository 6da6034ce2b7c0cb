package codec_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	dyncodec "github.com/reoring/dyncodec"
	"github.com/reoring/dyncodec/codec"
)

func TestPairOf_FieldsShareOneRecord(t *testing.T) {
	first := codec.AsCodec(codec.FieldOf("a", codec.String()))
	second := codec.AsCodec(codec.FieldOf("b", codec.Int64()))
	c := codec.PairOf(first, second)

	in := dyncodec.NewPair("hello", int64(7))
	node, err := codec.EncodeStart(c, ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := map[string]any{"a": "hello", "b": json.Number("7")}
	if !reflect.DeepEqual(node, want) {
		t.Fatalf("encoded %v, want %v", node, want)
	}

	out, err := codec.Parse(c, ops, node).ResultOrErr()
	if err != nil || out != in {
		t.Fatalf("decode %v %v", out, err)
	}
}

func TestEitherOf_TriesLeftThenRight(t *testing.T) {
	c := codec.EitherOf(codec.Int64(), codec.String())

	out, err := codec.Parse(c, ops, json.Number("4")).ResultOrErr()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if l, ok := out.Left(); !ok || l != 4 {
		t.Fatalf("expected Left(4), got %v", out)
	}

	out, err = codec.Parse(c, ops, "word").ResultOrErr()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if r, ok := out.Right(); !ok || r != "word" {
		t.Fatalf("expected Right(word), got %v", out)
	}
}

func TestEitherOf_BothFailReportsBoth(t *testing.T) {
	c := codec.EitherOf(codec.Int64(), codec.Bool())
	r := codec.Parse(c, ops, "neither")
	if !r.IsError() {
		t.Fatalf("expected error")
	}
	msg := r.Message()
	if !strings.Contains(msg, "failed to decode either") ||
		!strings.Contains(msg, "not a number") ||
		!strings.Contains(msg, "not a boolean") {
		t.Fatalf("both alternatives should be reported, got %q", msg)
	}
}

func TestEitherOf_BothFailJoinsLifecycles(t *testing.T) {
	c := codec.EitherOf(codec.ExperimentalCodec(codec.Int64()), codec.Bool())
	r := codec.Parse(c, ops, "neither")
	if !r.IsError() {
		t.Fatalf("expected error")
	}
	if !r.Lifecycle().IsExperimental() {
		t.Fatalf("failure must carry the joined branch lifecycles, got %v", r.Lifecycle())
	}
}

func TestEitherOf_EncodesHeldAlternative(t *testing.T) {
	c := codec.EitherOf(codec.Int64(), codec.String())
	node, err := codec.EncodeStart(c, ops, dyncodec.Left[int64, string](9)).ResultOrErr()
	if err != nil || node != json.Number("9") {
		t.Fatalf("encode left: %v %v", node, err)
	}
	node, err = codec.EncodeStart(c, ops, dyncodec.Right[int64, string]("s")).ResultOrErr()
	if err != nil || node != any("s") {
		t.Fatalf("encode right: %v %v", node, err)
	}
}

func TestUnboundedMapOf_RoundTrip(t *testing.T) {
	c := codec.UnboundedMapOf(codec.String(), codec.Int64())
	in := map[string]int64{"one": 1, "two": 2}
	node, err := codec.EncodeStart(c, ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.Parse(c, ops, node).ResultOrErr()
	if err != nil || !reflect.DeepEqual(out, in) {
		t.Fatalf("decode %v %v", out, err)
	}
}

func TestUnboundedMapOf_MalformedEntriesSurviveAsPartial(t *testing.T) {
	c := codec.UnboundedMapOf(codec.String(), codec.Int64())
	r := codec.Parse(c, ops, map[string]any{
		"good": json.Number("1"),
		"bad":  "word",
	})
	if !r.IsError() || !strings.Contains(r.Message(), "failed to parse map entries") {
		t.Fatalf("unexpected result: %q", r.Message())
	}
	partial, err := r.PartialOrErr()
	if err != nil {
		t.Fatalf("valid entries must survive: %v", err)
	}
	if !reflect.DeepEqual(partial, map[string]int64{"good": 1}) {
		t.Fatalf("partial %v", partial)
	}
}
