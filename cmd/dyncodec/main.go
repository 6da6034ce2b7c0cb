package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	dyncodec "github.com/reoring/dyncodec"
	jsonfmt "github.com/reoring/dyncodec/format/json"
	msgpackfmt "github.com/reoring/dyncodec/format/msgpack"
	tomlfmt "github.com/reoring/dyncodec/format/toml"
	yamlfmt "github.com/reoring/dyncodec/format/yaml"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "convert":
		convertCmd(os.Args[2:])
	case "formats":
		for _, name := range formatNames() {
			fmt.Println(name)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "dyncodec CLI\n\nUsage:\n  dyncodec convert -from json -to yaml [-in file] [-o file]\n  dyncodec formats\n\nReads stdin and writes stdout unless -in/-o are given.")
}

type format struct {
	ops       dyncodec.DynamicOps
	unmarshal func([]byte) (any, error)
	marshal   func(any) ([]byte, error)
}

var formats = map[string]format{
	"json":    {jsonfmt.Ops(), jsonfmt.Unmarshal, jsonfmt.Marshal},
	"yaml":    {yamlfmt.Ops(), yamlfmt.Unmarshal, yamlfmt.Marshal},
	"msgpack": {msgpackfmt.Ops(), msgpackfmt.Unmarshal, msgpackfmt.Marshal},
	"toml":    {tomlfmt.Ops(), tomlfmt.Unmarshal, tomlfmt.Marshal},
}

func formatNames() []string {
	return []string{"json", "msgpack", "toml", "yaml"}
}

func convertCmd(args []string) {
	fs := flag.NewFlagSet("convert", flag.ExitOnError)
	var from, to, in, out string
	fs.StringVar(&from, "from", "json", "input format")
	fs.StringVar(&to, "to", "yaml", "output format")
	fs.StringVar(&in, "in", "", "input file (default stdin)")
	fs.StringVar(&out, "o", "", "output file (default stdout)")
	_ = fs.Parse(args)

	src, ok := formats[from]
	if !ok {
		fatalf("unknown input format: %s", from)
	}
	dst, ok := formats[to]
	if !ok {
		fatalf("unknown output format: %s", to)
	}

	data, err := readInput(in)
	if err != nil {
		fatalf("read: %v", err)
	}
	node, err := src.unmarshal(data)
	if err != nil {
		fatalf("parse %s: %v", from, err)
	}
	converted := src.ops.ConvertTo(dst.ops, node)
	rendered, err := dst.marshal(converted)
	if err != nil {
		fatalf("render %s: %v", to, err)
	}
	if err := writeOutput(out, rendered); err != nil {
		fatalf("write: %v", err)
	}
}

func readInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func writeOutput(path string, data []byte) error {
	if path == "" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
