// Package yaml adapts YAML documents to the dyncodec engine using
// gopkg.in/yaml.v3. Numbers are stored natively as int64/float64.
package yaml

import (
	"encoding/json"
	"fmt"

	y "gopkg.in/yaml.v3"

	dyncodec "github.com/reoring/dyncodec"
)

var defaultOps = dyncodec.NewTreeOps(dyncodec.WithNumberMode(dyncodec.NumberNative))

// Ops returns the shared YAML tree ops singleton.
func Ops() *dyncodec.TreeOps { return defaultOps }

// Unmarshal parses a YAML document into a tree node.
func Unmarshal(data []byte) (any, error) {
	var node any
	if err := y.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	return normalize(node), nil
}

// Marshal renders a tree node as YAML.
func Marshal(node any) ([]byte, error) {
	return y.Marshal(denumber(node))
}

// normalize coerces decoder output into the tree node vocabulary: string
// keys everywhere and int widened to int64.
func normalize(node any) any {
	switch v := node.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	case int:
		return int64(v)
	}
	return node
}

// denumber replaces json.Number nodes with native values so the encoder
// emits numbers rather than quoted strings. Trees converted in from a
// JSON-flavored ops still carry json.Number leaves.
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
