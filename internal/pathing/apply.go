package pathing

import (
	"errors"
	"fmt"

	"github.com/cainus/mongojsonschema/tree"
)

// ErrArgument reports a programming error in a call to the applier.
var ErrArgument = errors.New("mongojsonschema: argument error")

// Func transforms the value found at a path. at is the concrete JSON Pointer
// of the position, such as "/participants/1".
type Func func(at string, v any) any

// Apply returns doc with fn applied at every position matched by p. The input
// is never modified: maps on the way down are shallow-copied and arrays are
// rebuilt element by element.
//
// Missing structure is not an error. A wildcard over a non-array, or a
// property that is absent or null, leaves that part of the document as is.
// Only a nil document with a non-empty path is rejected.
func Apply(doc any, p tree.Path, fn Func) (any, error) {
	if fn == nil {
		return nil, fmt.Errorf("%w: nil transform", ErrArgument)
	}
	if doc == nil && len(p) > 0 {
		return nil, fmt.Errorf("%w: cannot apply path %q to a nil document", ErrArgument, p.String())
	}
	return apply(doc, p, pointer{}, fn), nil
}

// ApplyAll deep-copies doc and applies fn along each path in turn. Each
// distinct path must be listed once; overlapping paths see the output of the
// earlier ones.
func ApplyAll(doc any, paths []tree.Path, fn Func) (any, error) {
	out := Clone(doc)
	for _, p := range paths {
		var err error
		if out, err = Apply(out, p, fn); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func apply(doc any, p tree.Path, at pointer, fn Func) any {
	if len(p) == 0 {
		return fn(at.String(), doc)
	}
	seg, rest := p[0], p[1:]
	if seg.Wildcard {
		arr, ok := asArray(doc)
		if !ok {
			return doc
		}
		out := make([]any, len(arr))
		for i, el := range arr {
			if el == nil && len(rest) > 0 {
				continue
			}
			out[i] = apply(el, rest, at.Index(i), fn)
		}
		return out
	}
	obj, ok := asObject(doc)
	if !ok {
		return doc
	}
	v := obj[seg.Name]
	if v == nil {
		return doc
	}
	out := make(map[string]any, len(obj))
	for k, vv := range obj {
		out[k] = vv
	}
	out[seg.Name] = apply(v, rest, at.Field(seg.Name), fn)
	return out
}
