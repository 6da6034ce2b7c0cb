package dyncodec_test

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	dyncodec "github.com/reoring/dyncodec"
)

func TestRecordBuilder_Build(t *testing.T) {
	ops := dyncodec.NewTreeOps()
	b := dyncodec.NewRecordBuilder(ops)
	b = b.Add("name", ops.CreateString("alice"))
	b = b.AddResult("age", dyncodec.Success(dyncodec.CreateInt(ops, 30)))

	node, err := b.Build(ops.Empty()).ResultOrErr()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	want := map[string]any{"name": "alice", "age": json.Number("30")}
	if !reflect.DeepEqual(node, want) {
		t.Fatalf("built %v, want %v", node, want)
	}
}

func TestRecordBuilder_FailedFieldKeepsPartialRecord(t *testing.T) {
	ops := dyncodec.NewTreeOps()
	b := dyncodec.NewRecordBuilder(ops)
	b = b.Add("good", ops.CreateString("kept"))
	b = b.AddResult("bad", dyncodec.Error[any]("field exploded"))
	b = b.Add("later", ops.CreateString("also kept"))

	r := b.Build(ops.Empty())
	if !r.IsError() {
		t.Fatalf("expected error")
	}
	if !strings.Contains(r.Message(), "field exploded") {
		t.Fatalf("message should carry the field error, got %q", r.Message())
	}
	partial, err := r.PartialOrErr()
	if err != nil {
		t.Fatalf("expected a partial node: %v", err)
	}
	want := map[string]any{"good": "kept", "later": "also kept"}
	if !reflect.DeepEqual(partial, want) {
		t.Fatalf("partial %v, want %v", partial, want)
	}
}

func TestRecordBuilder_BuildResetsState(t *testing.T) {
	ops := dyncodec.NewTreeOps()
	b := dyncodec.NewRecordBuilder(ops)
	b = b.Add("a", ops.CreateString("1"))
	if _, err := b.Build(ops.Empty()).ResultOrErr(); err != nil {
		t.Fatalf("first build failed: %v", err)
	}

	node, err := b.Add("b", ops.CreateString("2")).Build(ops.Empty()).ResultOrErr()
	if err != nil {
		t.Fatalf("second build failed: %v", err)
	}
	if !reflect.DeepEqual(node, map[string]any{"b": "2"}) {
		t.Fatalf("state leaked across builds: %v", node)
	}
}

func TestCompressedRecordBuilder_Build(t *testing.T) {
	ops := dyncodec.NewTreeOps(dyncodec.WithCompressedMaps())
	c := dyncodec.NewKeyCompressor(ops, []any{"x", "y", "z"})
	b := dyncodec.NewCompressedRecordBuilder(ops, c)
	b = b.Add("z", ops.CreateString("last"))
	b = b.Add("x", ops.CreateString("first"))

	node, err := b.Build(ops.Empty()).ResultOrErr()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	// Absent y holds the empty node.
	want := []any{"first", nil, "last"}
	if !reflect.DeepEqual(node, want) {
		t.Fatalf("built %v, want %v", node, want)
	}
}

func TestCompressedRecordBuilder_UnknownKey(t *testing.T) {
	ops := dyncodec.NewTreeOps(dyncodec.WithCompressedMaps())
	c := dyncodec.NewKeyCompressor(ops, []any{"x"})
	b := dyncodec.NewCompressedRecordBuilder(ops, c)
	b = b.Add("nope", ops.CreateString("v"))

	r := b.Build(ops.Empty())
	if !r.IsError() {
		t.Fatalf("expected error")
	}
	if !strings.Contains(r.Message(), "attempted to build unknown key: nope") {
		t.Fatalf("unexpected message: %q", r.Message())
	}
}

func TestCompressedRecordBuilder_RejectsNonEmptyPrefix(t *testing.T) {
	ops := dyncodec.NewTreeOps(dyncodec.WithCompressedMaps())
	c := dyncodec.NewKeyCompressor(ops, []any{"x"})
	b := dyncodec.NewCompressedRecordBuilder(ops, c)
	b = b.Add("x", ops.CreateString("v"))

	r := b.Build(map[string]any{"existing": true})
	if !r.IsError() || !strings.Contains(r.Message(), "non-empty prefix") {
		t.Fatalf("expected prefix rejection, got %v (%q)", r.IsError(), r.Message())
	}
}

func TestListBuilder_Build(t *testing.T) {
	ops := dyncodec.NewTreeOps()
	b := dyncodec.NewListBuilder(ops)
	b = b.Add(ops.CreateString("a"))
	b = b.AddResult(dyncodec.Success(ops.CreateString("b")))

	node, err := b.Build(ops.Empty()).ResultOrErr()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if !reflect.DeepEqual(node, []any{"a", "b"}) {
		t.Fatalf("built %v", node)
	}
}

func TestListBuilder_FailedElementKeepsPartialList(t *testing.T) {
	ops := dyncodec.NewTreeOps()
	b := dyncodec.NewListBuilder(ops)
	b = b.Add(ops.CreateString("a"))
	b = b.AddResult(dyncodec.Error[any]("bad element"))
	b = b.Add(ops.CreateString("c"))

	r := b.Build(ops.Empty())
	if !r.IsError() {
		t.Fatalf("expected error")
	}
	partial, err := r.PartialOrErr()
	if err != nil {
		t.Fatalf("expected a partial list: %v", err)
	}
	if !reflect.DeepEqual(partial, []any{"a", "c"}) {
		t.Fatalf("partial %v", partial)
	}
}

func TestErrorsFrom(t *testing.T) {
	ops := dyncodec.NewTreeOps()
	b := dyncodec.NewRecordBuilder(ops)
	b = dyncodec.ErrorsFrom(b, dyncodec.Success("ignored"))
	b = dyncodec.ErrorsFrom(b, dyncodec.Error[string]("poisoned"))

	r := b.Build(ops.Empty())
	if !r.IsError() || !strings.Contains(r.Message(), "poisoned") {
		t.Fatalf("expected poisoned builder, got %q", r.Message())
	}
}
