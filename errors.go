package mongojsonschema

import (
	"errors"
	"fmt"
	"strings"

	"github.com/cainus/mongojsonschema/internal/pathing"
	"github.com/cainus/mongojsonschema/tree"
)

// Violation codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType   = "invalid_type"
	CodePattern       = "pattern"
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidFormat = "invalid_format"
	// CodeConstraint covers every other failed keyword (minimum, enum...).
	CodeConstraint = "constraint"
)

// ErrorKind tells schema violations apart from timestamp format failures.
type ErrorKind int

const (
	// KindSchemaValidation: the validator rejected the document.
	KindSchemaValidation ErrorKind = iota
	// KindTimestampFormat: a value at a timestamp path does not parse.
	KindTimestampFormat
)

func (k ErrorKind) String() string {
	if k == KindTimestampFormat {
		return "TimestampFormatError"
	}
	return "SchemaValidationError"
}

// ErrArgument reports a programming error such as a nil document applied to
// a non-empty path. Check with errors.Is.
var ErrArgument = pathing.ErrArgument

// CompileError reports a malformed schema tree.
type CompileError = tree.CompileError

// Violation is a single failed constraint.
type Violation struct {
	Path    string `json:"path"`    // JSON Pointer of the offending value (for example: /items/2/price).
	Code    string `json:"code"`    // One of the codes listed above.
	Message string `json:"message"` // Translated message for Code.
	// Detail clarifies the failure, e.g. "needed pattern X; got Y" or the
	// names of undeclared properties.
	Detail string `json:"detail,omitempty"`
}

// Violations is a collection of violations that implements error.
type Violations []Violation

// Error summarizes the first few violations.
func (vs Violations) Error() string {
	if len(vs) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(vs)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		v := vs[i]
		// e.g. invalid_type at /count (needed type number; got type string)
		fmt.Fprintf(b, "%s at %s", v.Code, pointerOrRoot(v.Path))
		if v.Detail != "" {
			fmt.Fprintf(b, " (%s)", v.Detail)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// ValidationError is returned by Validate and ValidatePartial. It always
// carries the complete violation list.
type ValidationError struct {
	Kind ErrorKind
	// Schema is the name given with WithName, possibly empty.
	Schema     string
	Summary    string
	Violations Violations
}

func (e *ValidationError) Error() string {
	return e.Summary + ": " + e.Violations.Error()
}

// Unwrap exposes the violations to errors.As.
func (e *ValidationError) Unwrap() error { return e.Violations }

func newValidationError(kind ErrorKind, schema string, vs Violations) *ValidationError {
	var summary string
	switch kind {
	case KindTimestampFormat:
		summary = "timestamp validation error in schema " + schema
	default:
		summary = "JSON Schema validation error for schema " + schema
	}
	return &ValidationError{Kind: kind, Schema: schema, Summary: strings.TrimSpace(summary), Violations: vs}
}

// AsViolations extracts Violations from an error using errors.As internally.
func AsViolations(err error) (Violations, bool) {
	if err == nil {
		return nil, false
	}
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
