package codec_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/reoring/dyncodec/codec"
)

func TestListOf_RoundTrip(t *testing.T) {
	c := codec.ListOf(codec.Int64())
	in := []int64{1, 2, 3}
	node, err := codec.EncodeStart(c, ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := codec.Parse(c, ops, node).ResultOrErr()
	if err != nil || !reflect.DeepEqual(out, in) {
		t.Fatalf("decode %v %v", out, err)
	}
}

func TestSizedListOf_MalformedElementsSurviveAsPartial(t *testing.T) {
	c := codec.SizedListOf(codec.Int64(), 1, 3)
	r := codec.Parse(c, ops, []any{json.Number("1"), "x", json.Number("3")})
	if !r.IsError() {
		t.Fatalf("expected error")
	}
	if !strings.Contains(r.Message(), "failed to parse list elements") {
		t.Fatalf("unexpected message: %q", r.Message())
	}
	if !strings.Contains(r.Message(), "1:") {
		t.Fatalf("failing index should be named, got %q", r.Message())
	}
	partial, err := r.PartialOrErr()
	if err != nil {
		t.Fatalf("valid elements must survive: %v", err)
	}
	if !reflect.DeepEqual(partial, []int64{1, 3}) {
		t.Fatalf("partial %v", partial)
	}
}

func TestSizedListOf_TooShort(t *testing.T) {
	c := codec.SizedListOf(codec.Int64(), 2, 3)
	// Only one element decodes, which is under the minimum.
	r := codec.Parse(c, ops, []any{json.Number("1"), "x"})
	if !r.IsError() || r.HasPartial() {
		t.Fatalf("under-minimum lists fail outright")
	}
	if !strings.Contains(r.Message(), "list is too short: 1, expected range [2-3]") {
		t.Fatalf("unexpected message: %q", r.Message())
	}
}

func TestSizedListOf_TooLong(t *testing.T) {
	c := codec.SizedListOf(codec.Int64(), 0, 2)
	r := codec.Parse(c, ops, []any{json.Number("1"), json.Number("2"), json.Number("3")})
	if !r.IsError() || r.HasPartial() {
		t.Fatalf("over-maximum lists fail outright")
	}
	if !strings.Contains(r.Message(), "list is too long: 3, expected range [0-2]") {
		t.Fatalf("unexpected message: %q", r.Message())
	}
}

func TestSizedListOf_EncodeEnforcesBounds(t *testing.T) {
	c := codec.SizedListOf(codec.Int64(), 2, 3)
	if r := codec.EncodeStart(c, ops, []int64{1}); !r.IsError() {
		t.Fatalf("encoding an under-minimum list must fail")
	}
	if r := codec.EncodeStart(c, ops, []int64{1, 2, 3, 4}); !r.IsError() {
		t.Fatalf("encoding an over-maximum list must fail")
	}
}

func TestListOf_DecodeRejectsNonLists(t *testing.T) {
	if r := codec.Parse(codec.ListOf(codec.Int64()), ops, "nope"); !r.IsError() {
		t.Fatalf("expected type error")
	}
}
