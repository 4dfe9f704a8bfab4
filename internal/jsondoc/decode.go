// Package jsondoc decodes instance documents into the generic value model
// (map[string]any, []any, string, json.Number, bool, nil) and rejects objects
// that repeat a key.
package jsondoc

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/cainus/mongojsonschema/tree"
)

// ErrSyntax reports malformed JSON.
var ErrSyntax = errors.New("jsondoc: malformed document")

// DuplicateKeyError reports the first repeated object key.
type DuplicateKeyError struct {
	Pointer string // JSON Pointer of the repeated member
	Key     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("jsondoc: key %q duplicated at %s", e.Key, e.Pointer)
}

// Decode parses exactly one JSON document.
func Decode(data []byte) (any, error) {
	return DecodeReader(bytes.NewReader(data))
}

// DecodeReader parses exactly one JSON document from r, consuming it fully.
func DecodeReader(r io.Reader) (any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	v, err := value(dec, "")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrSyntax)
	}
	return v, nil
}

func value(dec *json.Decoder, at string) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, syntax(err)
	}
	d, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch d {
	case '{':
		obj := map[string]any{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, syntax(err)
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("%w: object key at %s is not a string", ErrSyntax, at)
			}
			child := at + "/" + tree.PointerToken(key)
			if _, dup := obj[key]; dup {
				return nil, &DuplicateKeyError{Pointer: child, Key: key}
			}
			v, err := value(dec, child)
			if err != nil {
				return nil, err
			}
			obj[key] = v
		}
		return obj, closing(dec)
	case '[':
		arr := []any{}
		for i := 0; dec.More(); i++ {
			v, err := value(dec, at+"/"+strconv.Itoa(i))
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, closing(dec)
	}
	return nil, fmt.Errorf("%w: unexpected %q at %s", ErrSyntax, d, at)
}

func closing(dec *json.Decoder) error {
	if _, err := dec.Token(); err != nil {
		return syntax(err)
	}
	return nil
}

func syntax(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %v", ErrSyntax, err)
}
