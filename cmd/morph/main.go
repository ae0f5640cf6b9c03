package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	j "github.com/goccy/go-json"

	morph "github.com/gomorph/morph"
	"github.com/gomorph/morph/schemafile"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "apply":
		applyCmd(os.Args[2:])
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "morph CLI\n\nUsage:\n  morph apply -schema schema.{json,yaml} [-in records.json] [-out file] [-pretty]\n  morph check -schema schema.{json,yaml}\n\nNotes:\n  - apply reads one JSON record or an array of records and writes the transformed JSON.\n  - schema documents may reference the builtin functions: upper, lower, trim, string, count, identity.")
}

func applyCmd(args []string) {
	fs := flag.NewFlagSet("apply", flag.ExitOnError)
	var schemaPath, in, out string
	var pretty bool
	fs.StringVar(&schemaPath, "schema", "", "schema document (JSON or YAML)")
	fs.StringVar(&in, "in", "-", "input records file, - for stdin")
	fs.StringVar(&out, "out", "-", "output file, - for stdout")
	fs.BoolVar(&pretty, "pretty", false, "indent output JSON")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	s := loadSchema(schemaPath)
	data := readRecords(in)

	res, err := morph.Transform(context.Background(), s, data)
	if err != nil {
		fatalf("transform: %v", err)
	}

	w := os.Stdout
	if out != "-" {
		f, err := os.Create(out)
		if err != nil {
			fatalf("creating output: %v", err)
		}
		defer f.Close()
		w = f
	}
	enc := j.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		fatalf("encoding output: %v", err)
	}
}

// checkCmd compiles a schema document without transforming anything, so
// defects can be caught before wiring the schema into a pipeline.
func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var schemaPath string
	fs.StringVar(&schemaPath, "schema", "", "schema document (JSON or YAML)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	s := loadSchema(schemaPath)
	if _, err := morph.NewMapper(s); err != nil {
		fatalf("schema: %v", err)
	}
	fmt.Printf("%s: %d destination fields, ok\n", schemaPath, s.Len())
}

func loadSchema(path string) *morph.Schema {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading schema: %v", err)
	}
	var s *morph.Schema
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		s, err = schemafile.ParseYAML(data, builtins())
	default:
		s, err = schemafile.ParseJSON(data, builtins())
	}
	if err != nil {
		fatalf("parsing schema: %v", err)
	}
	return s
}

func readRecords(in string) any {
	var r io.Reader = os.Stdin
	if in != "-" {
		f, err := os.Open(in)
		if err != nil {
			fatalf("opening input: %v", err)
		}
		defer f.Close()
		r = f
	}
	dec := j.NewDecoder(r)
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		fatalf("decoding input: %v", err)
	}
	return data
}

// builtins returns the registry of functions schema documents may name
// without any caller-side registration.
func builtins() *schemafile.Registry {
	return schemafile.NewRegistry().
		Func("identity", func(ctx context.Context, src any, all []any, dst map[string]any) (any, error) {
			return src, nil
		}).
		Select("upper", stringSelect(strings.ToUpper)).
		Select("lower", stringSelect(strings.ToLower)).
		Select("trim", stringSelect(strings.TrimSpace)).
		Select("string", func(ctx context.Context, v, src any, all []any, dst map[string]any) (any, error) {
			if v == nil {
				return nil, nil
			}
			return fmt.Sprint(v), nil
		}).
		Select("count", func(ctx context.Context, v, src any, all []any, dst map[string]any) (any, error) {
			switch c := v.(type) {
			case string:
				return len(c), nil
			case []any:
				return len(c), nil
			case map[string]any:
				return len(c), nil
			default:
				return 0, nil
			}
		})
}

// stringSelect lifts a string transform into a SelectFunc; non-string
// resolved values pass through untouched.
func stringSelect(f func(string) string) morph.SelectFunc {
	return func(ctx context.Context, v, src any, all []any, dst map[string]any) (any, error) {
		s, ok := v.(string)
		if !ok {
			return v, nil
		}
		return f(s), nil
	}
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
