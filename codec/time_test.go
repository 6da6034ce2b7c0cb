package codec_test

import (
	"strings"
	"testing"
	"time"

	"github.com/reoring/dyncodec/codec"
)

func TestTimeRFC3339_RoundTrip(t *testing.T) {
	in := time.Date(2024, 3, 1, 12, 30, 0, 500000000, time.UTC)
	node, err := codec.EncodeStart(codec.TimeRFC3339(), ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if node != any("2024-03-01T12:30:00.5Z") {
		t.Fatalf("encoded %v", node)
	}
	out, err := codec.Parse(codec.TimeRFC3339(), ops, node).ResultOrErr()
	if err != nil || !out.Equal(in) {
		t.Fatalf("decode %v %v", out, err)
	}
}

func TestTimeRFC3339_NormalizesToUTC(t *testing.T) {
	loc := time.FixedZone("plus2", 2*60*60)
	in := time.Date(2024, 3, 1, 14, 0, 0, 0, loc)
	node, err := codec.EncodeStart(codec.TimeRFC3339(), ops, in).ResultOrErr()
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if node != any("2024-03-01T12:00:00Z") {
		t.Fatalf("encoded %v", node)
	}
}

func TestTimeRFC3339_RejectsGarbage(t *testing.T) {
	r := codec.Parse(codec.TimeRFC3339(), ops, "not-a-time")
	if !r.IsError() || !strings.Contains(r.Message(), "invalid RFC3339 time") {
		t.Fatalf("unexpected result: %q", r.Message())
	}
}

func TestTimeRFC3339_AcceptsSecondsPrecision(t *testing.T) {
	out, err := codec.Parse(codec.TimeRFC3339(), ops, "2020-01-02T03:04:05Z").ResultOrErr()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Second() != 5 {
		t.Fatalf("decoded %v", out)
	}
}
