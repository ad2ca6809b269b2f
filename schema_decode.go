package formschema

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"

	eng "github.com/reoring/formschema/internal/engine"
)

// ErrInvalidSchema is wrapped by every error returned while building a Schema
// from a document.
var ErrInvalidSchema = errors.New("formschema: invalid schema document")

// ParseSchemaJSON builds a Schema from a JSON document. The declaration order
// of properties is kept.
func ParseSchemaJSON(data []byte) (*Schema, error) {
	tree, err := eng.Decode(eng.NewJSONBytes(data), eng.DecodeOptions{Ordered: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return schemaFromNode(tree, "#")
}

// ParseSchemaYAML builds a Schema from a YAML document.
func ParseSchemaYAML(data []byte) (*Schema, error) {
	tree, err := eng.DecodeYAML(data, eng.DecodeOptions{Ordered: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	return schemaFromNode(tree, "#")
}

// SchemaFromMap builds a Schema from nested Go maps shaped like a JSON schema
// document. Go maps are unordered, so properties are declared in key order.
func SchemaFromMap(m map[string]any) (*Schema, error) {
	return schemaFromNode(m, "#")
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *Schema) UnmarshalJSON(data []byte) error {
	out, err := ParseSchemaJSON(data)
	if err != nil {
		return err
	}
	*s = *out
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *Schema) UnmarshalYAML(value *yaml.Node) error {
	tree, err := eng.ConvertYAMLNode(value, eng.DecodeOptions{Ordered: true})
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSchema, err)
	}
	out, err := schemaFromNode(tree, "#")
	if err != nil {
		return err
	}
	*s = *out
	return nil
}

func invalidf(path, format string, a ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidSchema, path, fmt.Sprintf(format, a...))
}

func schemaFromNode(node any, path string) (*Schema, error) {
	keys, values, ok := objectEntries(node)
	if !ok {
		return nil, invalidf(path, "schema must be an object, got %T", node)
	}
	s := &Schema{}
	for _, key := range keys {
		v := values[key]
		at := path + "/" + key
		var err error
		switch key {
		case "type":
			s.Type, err = typeSpecFromNode(v, at)
		case "label":
			s.Label, err = stringFromNode(v, at)
		case "properties":
			s.Properties, err = propertiesFromNode(v, at)
		case "required":
			err = requiredFromNode(s, v, at)
		case "additionalProperties":
			s.AdditionalProperties, err = additionalFromNode(v, at)
		case "items":
			s.Items, err = schemaFromNode(v, at)
		case "enum":
			s.Enum, err = enumFromNode(v, at)
		case "pattern":
			s.Pattern, err = stringFromNode(v, at)
		case "format":
			s.Format, err = stringFromNode(v, at)
		case "minLength":
			s.MinLength, err = lengthFromNode(v, at)
		case "maxLength":
			s.MaxLength, err = lengthFromNode(v, at)
		case "minimum":
			s.Minimum, err = numberFromNode(v, at)
		case "maximum":
			s.Maximum, err = numberFromNode(v, at)
		default:
			// annotations such as default or input_filters belong to callers
		}
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// objectEntries lists the keys of a decoded object in document order, or in
// sorted order for plain Go maps.
func objectEntries(node any) ([]string, map[string]any, bool) {
	switch t := node.(type) {
	case *eng.Object:
		return t.Keys, t.Values, true
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		return keys, t, true
	default:
		return nil, nil, false
	}
}

func typeSpecFromNode(v any, path string) (TypeSpec, error) {
	switch t := v.(type) {
	case string:
		return Single(Type(t)), nil
	case Type:
		return Single(t), nil
	case []any:
		names := make([]Type, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return TypeSpec{}, invalidf(path, "entry %d must be a type name, got %T", i, item)
			}
			names = append(names, Type(s))
		}
		return OneOf(names...), nil
	case []string:
		names := make([]Type, len(t))
		for i, s := range t {
			names[i] = Type(s)
		}
		return OneOf(names...), nil
	default:
		return TypeSpec{}, invalidf(path, "must be a type name or a list of type names, got %T", v)
	}
}

func stringFromNode(v any, path string) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", invalidf(path, "must be a string, got %T", v)
	}
	return s, nil
}

func propertiesFromNode(v any, path string) (Properties, error) {
	keys, values, ok := objectEntries(v)
	if !ok {
		return nil, invalidf(path, "must be an object, got %T", v)
	}
	props := make(Properties, 0, len(keys))
	for _, name := range keys {
		sub, err := schemaFromNode(values[name], path+"/"+name)
		if err != nil {
			return nil, err
		}
		props = append(props, Property{Name: name, Schema: sub})
	}
	return props, nil
}

// requiredFromNode accepts both conventions: a list of names on the object
// schema, or a boolean flag on a property schema.
func requiredFromNode(s *Schema, v any, path string) error {
	switch t := v.(type) {
	case bool:
		s.IsRequired = t
		return nil
	case []any:
		names := make([]string, 0, len(t))
		for i, item := range t {
			name, ok := item.(string)
			if !ok {
				return invalidf(path, "entry %d must be a property name, got %T", i, item)
			}
			names = append(names, name)
		}
		s.Required = names
		return nil
	case []string:
		s.Required = append([]string{}, t...)
		return nil
	default:
		return invalidf(path, "must be a list of names or a boolean, got %T", v)
	}
}

func additionalFromNode(v any, path string) (*Additional, error) {
	switch t := v.(type) {
	case bool:
		if t {
			return nil, nil
		}
		return DisallowAdditional(), nil
	case string:
		if t == "disallow" {
			return DisallowAdditional(), nil
		}
		return nil, invalidf(path, "unknown policy %q", t)
	default:
		sub, err := schemaFromNode(v, path)
		if err != nil {
			return nil, err
		}
		return AdditionalSchema(sub), nil
	}
}

func enumFromNode(v any, path string) ([]string, error) {
	switch t := v.(type) {
	case []string:
		return append([]string{}, t...), nil
	case []any:
		out := make([]string, 0, len(t))
		for i, item := range t {
			s, ok := item.(string)
			if !ok {
				return nil, invalidf(path, "entry %d must be a string, got %T", i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, invalidf(path, "must be a list of strings, got %T", v)
	}
}

func lengthFromNode(v any, path string) (*int, error) {
	n, err := numberFromNode(v, path)
	if err != nil {
		return nil, err
	}
	d := n.Decimal()
	if !d.Equal(d.Truncate(0)) || d.Sign() < 0 || d.IntPart() > math.MaxInt32 {
		return nil, invalidf(path, "must be a non-negative integer, got %s", n)
	}
	l := int(d.IntPart())
	return &l, nil
}

func numberFromNode(v any, path string) (*Number, error) {
	var (
		n   *Number
		err error
	)
	switch t := v.(type) {
	case json.Number:
		n, err = ParseNumber(string(t))
	case string:
		n, err = ParseNumber(t)
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, invalidf(path, "must be finite")
		}
		n = NumberFromFloat(t)
	case float32:
		n = NumberFromFloat(float64(t))
	case int:
		n = NumberFromInt(int64(t))
	case int64:
		n = NumberFromInt(t)
	case int32:
		n = NumberFromInt(int64(t))
	case uint:
		n, err = ParseNumber(strconv.FormatUint(uint64(t), 10))
	case uint64:
		n, err = ParseNumber(strconv.FormatUint(t, 10))
	default:
		return nil, invalidf(path, "must be a number, got %T", v)
	}
	if err != nil {
		return nil, invalidf(path, "%v", err)
	}
	return n, nil
}
