package pathing

import "reflect"

// Clone returns a structural deep copy of a JSON-like value. Maps with string
// keys become map[string]any and slices (other than []byte) become []any, so
// the copy only holds the value shapes the applier walks. Scalars, including
// ObjectIDs and times, are copied by value; pointers are kept as they are.
func Clone(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, vv := range t {
			out[k] = Clone(vv)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, vv := range t {
			out[i] = Clone(vv)
		}
		return out
	case []byte:
		return append([]byte(nil), t...)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Clone(iter.Value().Interface())
		}
		return out
	case reflect.Slice:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Clone(rv.Index(i).Interface())
		}
		return out
	}
	return v
}

// asArray views doc as a sequence.
func asArray(doc any) ([]any, bool) {
	if arr, ok := doc.([]any); ok {
		return arr, true
	}
	if _, ok := doc.([]byte); ok {
		return nil, false
	}
	rv := reflect.ValueOf(doc)
	if rv.Kind() != reflect.Slice {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asObject views doc as a string-keyed map.
func asObject(doc any) (map[string]any, bool) {
	if m, ok := doc.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(doc)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}
