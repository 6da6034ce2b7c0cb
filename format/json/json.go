// Package json adapts JSON documents to the dyncodec engine using
// goccy/go-json. Numbers decode as json.Number so 64-bit integers survive
// the trip through the tree untouched.
package json

import (
	"bytes"

	j "github.com/goccy/go-json"

	dyncodec "github.com/reoring/dyncodec"
)

var (
	defaultOps    = dyncodec.NewTreeOps()
	compressedOps = dyncodec.NewTreeOps(dyncodec.WithCompressedMaps())
)

// Ops returns the shared JSON tree ops. The instance is a singleton so the
// codec layer's per-ops caches are reused across calls.
func Ops() *dyncodec.TreeOps { return defaultOps }

// CompressedOps returns ops that request array-indexed record encoding.
func CompressedOps() *dyncodec.TreeOps { return compressedOps }

// Unmarshal parses a JSON document into a tree node.
func Unmarshal(data []byte) (any, error) {
	dec := j.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var node any
	if err := dec.Decode(&node); err != nil {
		return nil, err
	}
	return node, nil
}

// Marshal renders a tree node as JSON.
func Marshal(node any) ([]byte, error) {
	return j.Marshal(node)
}
