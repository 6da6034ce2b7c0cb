// Package toml adapts TOML documents to the dyncodec engine using
// BurntSushi/toml. TOML documents are tables, so only record-rooted trees
// can be marshaled; native datetimes decode to RFC3339 strings.
package toml

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	bt "github.com/BurntSushi/toml"

	dyncodec "github.com/reoring/dyncodec"
)

var defaultOps = dyncodec.NewTreeOps(dyncodec.WithNumberMode(dyncodec.NumberNative))

// Ops returns the shared TOML tree ops singleton.
func Ops() *dyncodec.TreeOps { return defaultOps }

// Unmarshal parses a TOML document into a record-rooted tree node.
func Unmarshal(data []byte) (any, error) {
	var m map[string]any
	if err := bt.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return normalize(m), nil
}

// Marshal renders a record-rooted tree node as TOML.
func Marshal(node any) ([]byte, error) {
	m, ok := denumber(node).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("toml documents must be records, got %T", node)
	}
	var buf bytes.Buffer
	if err := bt.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalize coerces decoder output into the tree node vocabulary. Arrays of
// tables decode as []map[string]any and need rebuilding as []any.
func normalize(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	case []map[string]any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = normalize(e)
		}
		return out
	case time.Time:
		return v.UTC().Format(time.RFC3339Nano)
	case int:
		return int64(v)
	}
	return node
}

// denumber replaces json.Number leaves with native values so the encoder
// emits TOML numbers.
func denumber(node any) any {
	switch v := node.(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i
		}
		if f, err := v.Float64(); err == nil {
			return f
		}
		return v.String()
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = denumber(e)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = denumber(e)
		}
		return out
	}
	return node
}
