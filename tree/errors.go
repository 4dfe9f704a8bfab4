package tree

import "fmt"

// CompileError reports a malformed schema tree. At is a JSON Pointer into the
// schema document ("" for the root).
type CompileError struct {
	At     string
	Reason string
}

func (e *CompileError) Error() string {
	at := e.At
	if at == "" {
		at = "/"
	}
	return fmt.Sprintf("mongojsonschema: invalid schema at %s: %s", at, e.Reason)
}

func compileErrorf(at, format string, a ...any) error {
	return &CompileError{At: at, Reason: fmt.Sprintf(format, a...)}
}
