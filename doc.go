// Package mongojsonschema provides:
//
// - JSON Schema with two extra scalar types: objectid (24 hex characters)
//   and date (ISO-8601 timestamps)
// - Compilation into standard draft-7 schemas and a partial variant without
//   required properties
// - Path resolution: every place in a document where an objectid or date may
//   occur, with "*" for array elements
// - Conversion between typed values (primitive.ObjectID, time.Time) and
//   their string forms at those paths
// - A stable error model via Violations (JSON Pointer, code, message, detail)
//
// Design policy:
// - Keep only public APIs in the root package; put detailed implementations under internal/.
// - Place the node model under tree/, codecs under codec/, and the CLI under cmd/mongojsonschema.
// - Prefer black-box testing against public APIs.
//
// Typical usage:
//
//	props, err := tree.ParseProperties(data)
//	s, err := mongojsonschema.New(props, mongojsonschema.WithName("users"))
//
//	if err := s.Validate(doc); err != nil {
//		vs, _ := mongojsonschema.AsViolations(err)
//	}
//	typed, err := s.StringsToIdentifiers(doc)
package mongojsonschema
