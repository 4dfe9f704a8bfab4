package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/goccy/go-json"

	mjs "github.com/cainus/mongojsonschema"
	"github.com/cainus/mongojsonschema/internal/jsondoc"
	"github.com/cainus/mongojsonschema/tree"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

const usageText = `mongojsonschema CLI

Usage:
  mongojsonschema compile  -schema schema.yaml [-standard] [-partial] [-name N] [-additional] [-full]
  mongojsonschema validate -schema schema.yaml -doc doc.json [-partial] [-name N] [-additional] [-full]
  mongojsonschema paths    -schema schema.yaml [-full]

Notes:
  - Schema files are YAML or JSON. By default they hold the top-level properties
    and an _id objectid property is added; -full reads a complete schema node.
  - -doc - reads the document from stdin.
  - -v logs debug records to stderr.`

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprintln(stderr, usageText)
		return 2
	}
	switch args[0] {
	case "compile":
		return compileCmd(args[1:], stdout, stderr)
	case "validate":
		return validateCmd(args[1:], stdin, stdout, stderr)
	case "paths":
		return pathsCmd(args[1:], stdout, stderr)
	default:
		fmt.Fprintln(stderr, usageText)
		return 2
	}
}

// schemaFlags are shared by every subcommand.
type schemaFlags struct {
	schema     string
	name       string
	additional bool
	full       bool
	verbose    bool
}

func (sf *schemaFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&sf.schema, "schema", "", "schema file (YAML or JSON)")
	fs.StringVar(&sf.name, "name", "", "schema name used in error summaries")
	fs.BoolVar(&sf.additional, "additional", false, "allow additional top-level properties")
	fs.BoolVar(&sf.full, "full", false, "the schema file holds a complete node; no _id is added")
	fs.BoolVar(&sf.verbose, "v", false, "enable verbose logs")
}

func (sf *schemaFlags) load(stderr io.Writer) (*mjs.Schema, error) {
	data, err := os.ReadFile(sf.schema)
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	level := slog.LevelInfo
	if sf.verbose {
		level = slog.LevelDebug
	}
	opts := []mjs.Option{
		mjs.WithName(sf.name),
		mjs.WithAdditionalProperties(sf.additional),
		mjs.WithLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))),
	}
	if sf.full {
		root, err := tree.Parse(data)
		if err != nil {
			return nil, err
		}
		return mjs.FromStandard(root, opts...)
	}
	props, err := tree.ParseProperties(data)
	if err != nil {
		return nil, err
	}
	return mjs.New(props, opts...)
}

func compileCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("compile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf schemaFlags
	sf.register(fs)
	standard := fs.Bool("standard", true, "print the standard schema")
	partial := fs.Bool("partial", false, "print the partial schema (no required properties)")
	if err := fs.Parse(args); err != nil || sf.schema == "" {
		fs.Usage()
		return 2
	}
	s, err := sf.load(stderr)
	if err != nil {
		return failf(stderr, "compile: %v", err)
	}

	var out any
	switch {
	case *standard && *partial:
		out = map[string]any{"standard": s.StandardJSONSchema(), "partial": s.PartialJSONSchema()}
	case *partial:
		out = s.PartialJSONSchema()
	default:
		out = s.StandardJSONSchema()
	}
	return writeJSON(stdout, stderr, out)
}

func validateCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf schemaFlags
	sf.register(fs)
	docPath := fs.String("doc", "", "JSON document to validate (- for stdin)")
	partial := fs.Bool("partial", false, "validate against the partial schema")
	if err := fs.Parse(args); err != nil || sf.schema == "" || *docPath == "" {
		fs.Usage()
		return 2
	}
	s, err := sf.load(stderr)
	if err != nil {
		return failf(stderr, "validate: %v", err)
	}
	doc, err := readDocument(*docPath, stdin)
	if err != nil {
		return failf(stderr, "validate: %v", err)
	}

	validate := s.Validate
	if *partial {
		validate = s.ValidatePartial
	}
	err = validate(doc)
	if err == nil {
		fmt.Fprintln(stdout, "ok")
		return 0
	}
	ve, ok := mjs.AsValidationError(err)
	if !ok {
		return failf(stderr, "validate: %v", err)
	}
	fmt.Fprintln(stderr, ve.Summary)
	if code := writeJSON(stdout, stderr, ve.Violations); code != 0 {
		return code
	}
	return 1
}

func pathsCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("paths", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var sf schemaFlags
	sf.register(fs)
	if err := fs.Parse(args); err != nil || sf.schema == "" {
		fs.Usage()
		return 2
	}
	s, err := sf.load(stderr)
	if err != nil {
		return failf(stderr, "paths: %v", err)
	}
	return writeJSON(stdout, stderr, map[string][][]string{
		"identifiers": pathStrings(s.IdentifierPaths()),
		"timestamps":  pathStrings(s.TimestampPaths()),
	})
}

func readDocument(path string, stdin io.Reader) (any, error) {
	var (
		doc any
		err error
	)
	if path == "-" {
		doc, err = jsondoc.DecodeReader(stdin)
	} else {
		var data []byte
		if data, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("reading document: %w", err)
		}
		doc, err = jsondoc.Decode(data)
	}
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, errors.New("document is null")
	}
	return doc, nil
}

func pathStrings(ps []tree.Path) [][]string {
	out := make([][]string, len(ps))
	for i, p := range ps {
		out[i] = p.Strings()
	}
	return out
}

func writeJSON(stdout, stderr io.Writer, v any) int {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return failf(stderr, "encoding output: %v", err)
	}
	fmt.Fprintln(stdout, string(b))
	return 0
}

func failf(stderr io.Writer, format string, a ...any) int {
	fmt.Fprintf(stderr, format+"\n", a...)
	return 1
}
