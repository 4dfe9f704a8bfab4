// Package validator adapts the draft-7 validator to compiled schema trees.
// It compiles a tree once and reports every failed keyword together with the
// offending instance value, resolved against the tree that produced the
// schema.
package validator

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/qri-io/jsonpointer"
	jsv "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/cainus/mongojsonschema/internal/compile"
	"github.com/cainus/mongojsonschema/tree"
)

// Keywords reported with a dedicated detail format.
const (
	KeywordType                 = "type"
	KeywordPattern              = "pattern"
	KeywordRequired             = "required"
	KeywordAdditionalProperties = "additionalProperties"
)

// Failure is one violated keyword at one instance location.
type Failure struct {
	// Pointer is the JSON Pointer of the offending instance value.
	Pointer string
	// Keyword is the failed JSON Schema keyword.
	Keyword string
	// Detail explains the failure in terms of the document.
	Detail string
	// Message is the validator's own wording.
	Message string
}

// Validator checks documents against one compiled tree. It is safe for
// concurrent use.
type Validator struct {
	root   tree.Node
	schema *jsv.Schema
}

// Compile exports root as a draft-7 document and compiles it. root must be a
// standardized tree (see compile.Standard).
func Compile(name string, root tree.Node) (*Validator, error) {
	b, err := json.Marshal(compile.JSONSchema(root))
	if err != nil {
		return nil, fmt.Errorf("validator: marshal schema: %w", err)
	}
	if name == "" {
		name = "schema"
	}
	loc := "mem://mongojsonschema/" + url.PathEscape(name) + ".json"
	c := jsv.NewCompiler()
	c.Draft = jsv.Draft7
	if err := c.AddResource(loc, bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("validator: add schema %q: %w", name, err)
	}
	s, err := c.Compile(loc)
	if err != nil {
		return nil, fmt.Errorf("validator: compile schema %q: %w", name, err)
	}
	return &Validator{root: root, schema: s}, nil
}

// Validate checks doc and returns every failure, ordered by instance
// location. A nil slice means the document is valid. The error is non-nil
// only when doc cannot be evaluated at all.
func (v *Validator) Validate(doc any) ([]Failure, error) {
	doc, err := normalize(doc)
	if err != nil {
		return nil, err
	}
	verr := v.schema.Validate(doc)
	if verr == nil {
		return nil, nil
	}
	var ve *jsv.ValidationError
	if !errors.As(verr, &ve) {
		return nil, fmt.Errorf("validator: %w", verr)
	}
	var out []Failure
	for _, leaf := range leaves(ve, nil) {
		out = append(out, v.explain(doc, leaf)...)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Pointer < out[j].Pointer })
	return dedupe(out), nil
}

func leaves(e *jsv.ValidationError, acc []*jsv.ValidationError) []*jsv.ValidationError {
	if len(e.Causes) == 0 {
		return append(acc, e)
	}
	for _, c := range e.Causes {
		acc = leaves(c, acc)
	}
	return acc
}

func (v *Validator) explain(doc any, e *jsv.ValidationError) []Failure {
	steps := splitPointer(e.KeywordLocation)
	if len(steps) == 0 {
		return []Failure{{Pointer: e.InstanceLocation, Message: e.Message, Detail: e.Message}}
	}
	keyword := steps[len(steps)-1]
	node := locate(v.root, steps[:len(steps)-1])
	value, _ := evaluate(doc, e.InstanceLocation)
	base := Failure{Pointer: e.InstanceLocation, Keyword: keyword, Message: e.Message}

	switch keyword {
	case KeywordType:
		base.Detail = fmt.Sprintf("needed type %s; got type %s", neededType(node), typeOf(value))
	case KeywordPattern:
		base.Detail = fmt.Sprintf("needed pattern %s; got %v", patternOf(node), value)
	case KeywordRequired:
		if missing := missingRequired(node, value); len(missing) > 0 {
			out := make([]Failure, 0, len(missing))
			for _, name := range missing {
				f := base
				f.Pointer = e.InstanceLocation + "/" + tree.PointerToken(name)
				f.Detail = "missing property " + name
				out = append(out, f)
			}
			return out
		}
		base.Detail = e.Message
	case KeywordAdditionalProperties:
		if extra := undeclared(node, value); len(extra) > 0 {
			base.Detail = strings.Join(extra, ", ")
		} else {
			base.Detail = e.Message
		}
	default:
		base.Detail = e.Message
	}
	return []Failure{base}
}

func dedupe(fs []Failure) []Failure {
	if len(fs) < 2 {
		return fs
	}
	out := fs[:1]
	for _, f := range fs[1:] {
		if f != out[len(out)-1] {
			out = append(out, f)
		}
	}
	return out
}

// splitPointer splits a JSON Pointer (optionally carrying a URI fragment
// prefix) into unescaped tokens.
func splitPointer(p string) []string {
	if i := strings.IndexByte(p, '#'); i >= 0 {
		p = p[i+1:]
	}
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	parts := strings.Split(p, "/")
	for i, s := range parts {
		parts[i] = strings.ReplaceAll(strings.ReplaceAll(s, "~1", "/"), "~0", "~")
	}
	return parts
}

// locate walks schema keyword steps ("properties/<name>", "items") from root.
// It returns nil when a step leaves the tree.
func locate(n tree.Node, steps []string) tree.Node {
	for len(steps) > 0 && n != nil {
		switch steps[0] {
		case "properties":
			if len(steps) < 2 {
				return nil
			}
			n, _ = propertiesOf(n).Get(steps[1])
			steps = steps[2:]
		case "items":
			n = itemsOf(n)
			steps = steps[1:]
		default:
			return nil
		}
	}
	return n
}

func propertiesOf(n tree.Node) tree.Properties {
	switch t := n.(type) {
	case *tree.Object:
		return t.Properties
	case *tree.Union:
		return t.Properties
	}
	return nil
}

func itemsOf(n tree.Node) tree.Node {
	switch t := n.(type) {
	case *tree.Array:
		return t.Items
	case *tree.Union:
		return t.Items
	}
	return nil
}

func neededType(n tree.Node) string {
	switch t := n.(type) {
	case *tree.Primitive:
		if t.Name != "" {
			return t.Name
		}
	case *tree.Union:
		return strings.Join(t.Types, " or ")
	case nil:
		return "unknown"
	}
	return n.Kind().String()
}

func patternOf(n tree.Node) string {
	if p, ok := n.(*tree.Primitive); ok {
		return p.Pattern
	}
	return ""
}

func missingRequired(n tree.Node, value any) []string {
	obj, _ := value.(map[string]any)
	var out []string
	for _, p := range propertiesOf(n) {
		if p.Node == nil || !p.Node.NodeMeta().Required {
			continue
		}
		if _, ok := obj[p.Name]; !ok {
			out = append(out, p.Name)
		}
	}
	return out
}

// undeclared lists the keys of value that n does not declare, sorted.
func undeclared(n tree.Node, value any) []string {
	obj, _ := value.(map[string]any)
	props := propertiesOf(n)
	var out []string
	for k := range obj {
		if _, ok := props.Get(k); !ok {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

func evaluate(doc any, at string) (any, error) {
	ptr, err := jsonpointer.Parse(at)
	if err != nil {
		return nil, err
	}
	return ptr.Eval(doc)
}

func typeOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return fmt.Sprintf("%T", v)
}
