package formschema

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/grafana/regexp"
)

// Validator checks data values against one schema. The schema is fixed at
// construction and never validated itself; a schema without a type is
// reported when Validate is called.
//
// Issues are collected per Validate call, so a Validator can be shared by
// concurrent callers.
type Validator struct {
	schema   *Schema
	describe PatternDescriber
	patterns sync.Map // pattern -> compiledPattern
}

// Option configures a Validator.
type Option func(*Validator)

// WithPatternDescriber sets the lookup used to explain failed pattern checks.
func WithPatternDescriber(d PatternDescriber) Option {
	return func(v *Validator) {
		if d != nil {
			v.describe = d
		}
	}
}

// New returns a Validator for schema.
func New(schema *Schema, opts ...Option) *Validator {
	v := &Validator{schema: schema, describe: noDescription{}}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Schema returns the schema the validator was built with.
func (v *Validator) Schema() *Schema { return v.schema }

// Validate checks data against the schema. On success it returns data itself,
// not a copy. On failure it returns a nil value and Issues holding every
// problem found in the tree.
func (v *Validator) Validate(data any) (any, error) {
	if v.schema == nil || v.schema.Type.IsZero() {
		return nil, Issues{{Code: CodeSchemaTypeMissing, Message: msgSchemaTypeMissing}}
	}
	r := &run{v: v}
	if !r.route(v.schema.Type, data, v.schema.label(), v.schema) {
		return nil, r.issues
	}
	return data, nil
}

// ValidateFrom decodes src and validates the result. Decoding problems are
// returned as Issues with input codes; they are never mixed with validation
// issues.
func (v *Validator) ValidateFrom(ctx context.Context, src Source) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := src.Decode()
	if err != nil {
		return nil, err
	}
	return v.Validate(data)
}

// run is the state of one Validate call.
type run struct {
	v      *Validator
	issues Issues
}

func (r *run) add(code, path, msg string, params map[string]any) {
	r.issues = AppendIssues(r.issues, Issue{Path: path, Code: code, Message: msg, Params: params})
}

// route sends value to the validator for its type. A single type is final.
// For a candidate list the first type whose cheap check accepts the raw value
// is committed to, and its result stands even if deeper checks fail.
func (r *run) route(ts TypeSpec, value any, path string, s *Schema) bool {
	if !ts.IsList() {
		return r.validateAs(ts.names[0], value, path, s)
	}
	for _, t := range ts.names {
		if matchesType(t, value) {
			return r.validateAs(t, value, path, s)
		}
	}
	names := make([]string, len(ts.names))
	for i, t := range ts.names {
		names[i] = string(t)
	}
	r.add(CodeTypeUnion, path,
		fmt.Sprintf(msgTypeUnion, path, strings.Join(names, ", ")),
		map[string]any{"types": names})
	return false
}

func (r *run) validateAs(t Type, value any, path string, s *Schema) bool {
	switch t {
	case TypeObject:
		return r.validateObject(value, path, s)
	case TypeArray:
		return r.validateArray(value, path, s)
	case TypeString:
		return r.validateString(value, path, s)
	case TypeNumber:
		return r.validateNumber(value, path, s)
	case TypeInteger:
		return r.validateInteger(value, path, s)
	case TypeBoolean:
		return r.validateBoolean(value, path)
	default:
		r.add(CodeUnsupportedType, path, fmt.Sprintf(msgUnsupportedType, path, t), map[string]any{"type": string(t)})
		return false
	}
}

// matchesType is the cheap check used to pick among candidate types.
func matchesType(t Type, value any) bool {
	switch t {
	case TypeBoolean:
		return isBool(value)
	case TypeNumber:
		return isNumeric(value)
	case TypeInteger:
		return isInteger(value)
	case TypeString:
		return isString(value)
	case TypeArray:
		return classify(value) == shapeSequence
	case TypeObject:
		return classify(value) == shapeMap
	default:
		return false
	}
}

type compiledPattern struct {
	re  *regexp.Regexp
	err error
}

// compile caches compiled patterns for the lifetime of the validator.
func (v *Validator) compile(pattern string) (*regexp.Regexp, error) {
	if c, ok := v.patterns.Load(pattern); ok {
		cp := c.(compiledPattern)
		return cp.re, cp.err
	}
	re, err := regexp.Compile(pattern)
	v.patterns.Store(pattern, compiledPattern{re: re, err: err})
	return re, err
}
