// Package formschema validates arbitrary nested data against a declarative
// schema that follows a small subset of JSON Schema:
//
//   - type (one name, or an ordered list of candidates), label
//   - properties, required (object-level list or per-property flag),
//     additionalProperties (disallow, or a schema applied to every key)
//   - items
//   - enum, pattern, format (email), minLength, maxLength
//   - minimum, maximum (compared at the precision of the bound's literal)
//
// Data is whatever a JSON or YAML decoder produces, or plain Go values:
// string-keyed maps, slices, strings, numbers (including json.Number and
// numeric strings) and booleans.
//
// Every problem in the tree is collected in one pass and returned as Issues,
// each carrying a code and a path such as "submission:audience[0]". A
// successful Validate returns the input value unchanged.
//
// Typical usage:
//
//	s, err := formschema.ParseSchemaJSON(schemaBytes)
//	v := formschema.New(s, formschema.WithPatternDescriber(descriptions))
//	data, err := v.ValidateFrom(ctx, formschema.JSONBytes(body))
//	if iss, ok := formschema.AsIssues(err); ok {
//		for _, it := range iss {
//			fmt.Printf("%s at %s: %s\n", it.Code, it.Path, it.Message)
//		}
//	}
//
// Not supported: $ref, oneOf/allOf/anyOf, conditionals and formats other
// than email.
package formschema
