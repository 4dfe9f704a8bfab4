package mongojsonschema

import (
	"fmt"

	"github.com/cainus/mongojsonschema/internal/compile"
	"github.com/cainus/mongojsonschema/internal/pathing"
	"github.com/cainus/mongojsonschema/internal/validator"
	js "github.com/cainus/mongojsonschema/jsonschema"
	"github.com/cainus/mongojsonschema/tree"
)

// IDProperty is the identifier property New adds to every shorthand schema.
const IDProperty = "_id"

// Schema validates and converts documents for one schema tree. It is
// immutable after construction and safe for concurrent use.
type Schema struct {
	cfg      config
	root     tree.Node
	standard tree.Node
	partial  tree.Node
	full     *validator.Validator
	loose    *validator.Validator
}

// New builds a Schema from top-level properties. An _id objectid property is
// injected (replacing any declared _id in place, otherwise appended last) and
// the properties are wrapped in a root object whose additionalProperties is
// false unless WithAdditionalProperties says otherwise.
func New(props tree.Properties, opts ...Option) (*Schema, error) {
	cfg := configure(opts)
	root := &tree.Object{
		Properties:           props.With(IDProperty, &tree.ObjectID{}),
		AdditionalProperties: tree.Bool(cfg.additional),
	}
	return build(root, cfg)
}

// FromStandard builds a Schema from a complete node, used as is: nothing is
// injected and the root may be of any kind.
func FromStandard(root tree.Node, opts ...Option) (*Schema, error) {
	return build(root, configure(opts))
}

func configure(opts []Option) config {
	cfg := defaultConfig()
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	return cfg
}

func build(root tree.Node, cfg config) (*Schema, error) {
	standard, err := compile.Standard(root)
	if err != nil {
		return nil, err
	}
	partial, err := compile.Partial(standard)
	if err != nil {
		return nil, err
	}
	full, err := validator.Compile(cfg.name, standard)
	if err != nil {
		return nil, fmt.Errorf("mongojsonschema: %w", err)
	}
	loose, err := validator.Compile(cfg.name+"-partial", partial)
	if err != nil {
		return nil, fmt.Errorf("mongojsonschema: %w", err)
	}
	s := &Schema{cfg: cfg, root: root, standard: standard, partial: partial, full: full, loose: loose}
	cfg.logger.Debug("schema compiled",
		"schema", cfg.name,
		"identifier_paths", len(s.IdentifierPaths()),
		"timestamp_paths", len(s.TimestampPaths()))
	return s, nil
}

// Name returns the name given with WithName.
func (s *Schema) Name() string { return s.cfg.name }

// Root returns the tree the Schema was built from, including the injected
// _id. The returned tree must not be modified.
func (s *Schema) Root() tree.Node { return s.root }

// StandardSchema returns the compiled tree with objectid and date nodes
// rewritten to pattern-constrained strings. It must not be modified.
func (s *Schema) StandardSchema() tree.Node { return s.standard }

// PartialSchema returns the standard tree with every required marker
// cleared. It must not be modified.
func (s *Schema) PartialSchema() tree.Node { return s.partial }

// StandardJSONSchema projects StandardSchema into a draft-7 document.
func (s *Schema) StandardJSONSchema() *js.Schema { return compile.JSONSchema(s.standard) }

// PartialJSONSchema projects PartialSchema into a draft-7 document.
func (s *Schema) PartialJSONSchema() *js.Schema { return compile.JSONSchema(s.partial) }

// IdentifierPaths lists every path at which an objectid value may occur, in
// declared property order.
func (s *Schema) IdentifierPaths() []tree.Path { return pathing.Resolve(s.root, tree.Identifier) }

// TimestampPaths lists every path at which a date value may occur, in
// declared property order.
func (s *Schema) TimestampPaths() []tree.Path { return pathing.Resolve(s.root, tree.Timestamp) }

// Validate checks doc against the standard schema. Typed identifiers and
// timestamps are converted to their string forms first; doc itself is not
// modified. Timestamp format failures are reported before schema violations.
// A rejected document yields a *ValidationError.
func (s *Schema) Validate(doc any) error { return s.validate(doc, s.full) }

// ValidatePartial is Validate against the partial schema: required
// properties may be missing, everything else is enforced.
func (s *Schema) ValidatePartial(doc any) error { return s.validate(doc, s.loose) }

func (s *Schema) validate(doc any, v *validator.Validator) error {
	out, err := s.TimestampsToStrings(doc)
	if err != nil {
		s.logRejected(err)
		return err
	}
	if out, err = s.IdentifiersToStrings(out); err != nil {
		return err
	}
	failures, err := v.Validate(out)
	if err != nil {
		return fmt.Errorf("mongojsonschema: schema %q: %w", s.cfg.name, err)
	}
	if len(failures) == 0 {
		return nil
	}
	vs := make(Violations, 0, len(failures))
	for _, f := range failures {
		vs = append(vs, s.violation(f))
	}
	verr := newValidationError(KindSchemaValidation, s.cfg.name, vs)
	s.logRejected(verr)
	return verr
}

func (s *Schema) violation(f validator.Failure) Violation {
	code, data := CodeConstraint, map[string]string(nil)
	switch f.Keyword {
	case validator.KeywordType:
		code = CodeInvalidType
	case validator.KeywordPattern:
		code = CodePattern
	case validator.KeywordRequired:
		code = CodeRequired
		data = map[string]string{"property": lastToken(f.Pointer)}
	case validator.KeywordAdditionalProperties:
		code = CodeUnknownKey
		data = map[string]string{"keys": f.Detail}
	}
	return Violation{Path: f.Pointer, Code: code, Message: s.message(code, data), Detail: f.Detail}
}

func (s *Schema) logRejected(err error) {
	ve, ok := AsValidationError(err)
	if !ok {
		return
	}
	s.cfg.logger.Debug("document rejected",
		"schema", s.cfg.name,
		"kind", ve.Kind.String(),
		"violations", len(ve.Violations))
}
