package formschema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Type names a kind of data value.
type Type string

const (
	TypeString  Type = "string"
	TypeBoolean Type = "boolean"
	TypeInteger Type = "integer"
	TypeNumber  Type = "number"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

// Known reports whether t is one of the six supported type names.
func (t Type) Known() bool {
	switch t {
	case TypeString, TypeBoolean, TypeInteger, TypeNumber, TypeArray, TypeObject:
		return true
	}
	return false
}

// TypeSpec is the value of a schema's "type" keyword: either a single type
// name or an ordered list of candidates. A list with one entry is still a
// list and is routed through candidate matching.
type TypeSpec struct {
	names []Type
	list  bool
}

// Single returns a TypeSpec naming exactly one type.
func Single(t Type) TypeSpec { return TypeSpec{names: []Type{t}} }

// OneOf returns a TypeSpec with ordered candidate types.
func OneOf(ts ...Type) TypeSpec {
	return TypeSpec{names: append([]Type(nil), ts...), list: true}
}

// IsZero reports whether no type was declared.
func (ts TypeSpec) IsZero() bool { return !ts.list && len(ts.names) == 0 }

// IsList reports whether a candidate list was declared.
func (ts TypeSpec) IsList() bool { return ts.list }

// Types returns a copy of the declared type names.
func (ts TypeSpec) Types() []Type { return append([]Type(nil), ts.names...) }

func (ts TypeSpec) String() string {
	if !ts.list {
		if len(ts.names) == 0 {
			return ""
		}
		return string(ts.names[0])
	}
	parts := make([]string, len(ts.names))
	for i, n := range ts.names {
		parts[i] = string(n)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// Number is a numeric schema bound. It keeps the literal it was written with
// because the literal's decimal places decide the comparison precision.
type Number struct {
	literal string
	value   decimal.Decimal
}

// ParseNumber parses a numeric literal such as "10", "1.5" or "2.50".
func ParseNumber(literal string) (*Number, error) {
	s := strings.TrimSpace(literal)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("formschema: invalid numeric bound %q: %w", literal, err)
	}
	return &Number{literal: s, value: d}, nil
}

// Num is like ParseNumber but panics on an invalid literal. It is meant for
// schemas written as Go literals.
func Num(literal string) *Number {
	n, err := ParseNumber(literal)
	if err != nil {
		panic(err)
	}
	return n
}

// NumberFromFloat returns the bound written the shortest way f can be
// represented, so 1.5 keeps one decimal place and 2.0 has none.
func NumberFromFloat(f float64) *Number {
	return Num(strconv.FormatFloat(f, 'f', -1, 64))
}

// NumberFromInt returns an integral bound.
func NumberFromInt(i int64) *Number {
	return &Number{literal: strconv.FormatInt(i, 10), value: decimal.NewFromInt(i)}
}

// String returns the literal.
func (n *Number) String() string { return n.literal }

// Decimal returns the exact value of the literal.
func (n *Number) Decimal() decimal.Decimal { return n.value }

// Float64 returns the nearest float64 to the literal.
func (n *Number) Float64() float64 {
	f, _ := n.value.Float64()
	return f
}

// Places is the number of digits after the literal's decimal point.
func (n *Number) Places() int32 {
	if exp := n.value.Exponent(); exp < 0 {
		return -exp
	}
	return 0
}

// Additional is the additionalProperties policy of an object schema: either
// the disallow literal or a schema applied to every key.
type Additional struct {
	Disallow bool
	Schema   *Schema
}

// DisallowAdditional rejects keys not declared in properties.
func DisallowAdditional() *Additional { return &Additional{Disallow: true} }

// AdditionalSchema validates every key of the object against s, including
// keys already declared in properties. A declared key is checked against
// both its own schema and s, so it can be reported twice at the same path.
func AdditionalSchema(s *Schema) *Additional { return &Additional{Schema: s} }

// Property is a named entry of an object schema's properties.
type Property struct {
	Name   string
	Schema *Schema
}

// Properties is an ordered property list. Order is the declaration order and
// decides the order in which property errors are reported.
type Properties []Property

// Props builds Properties from alternating name/schema pairs.
func Props(pairs ...any) Properties {
	if len(pairs)%2 != 0 {
		panic("formschema: Props needs name/schema pairs")
	}
	out := make(Properties, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			panic(fmt.Sprintf("formschema: property name at %d is %T, not string", i, pairs[i]))
		}
		s, ok := pairs[i+1].(*Schema)
		if !ok {
			panic(fmt.Sprintf("formschema: property %q schema is %T, not *Schema", name, pairs[i+1]))
		}
		out = append(out, Property{Name: name, Schema: s})
	}
	return out
}

// Get returns the schema declared for name.
func (p Properties) Get(name string) (*Schema, bool) {
	for _, prop := range p {
		if prop.Name == name {
			return prop.Schema, true
		}
	}
	return nil, false
}

// Has reports whether name is declared.
func (p Properties) Has(name string) bool {
	_, ok := p.Get(name)
	return ok
}

// Names returns the declared names in order.
func (p Properties) Names() []string {
	out := make([]string, len(p))
	for i, prop := range p {
		out[i] = prop.Name
	}
	return out
}

// Schema describes the expected shape of a data value. Only Type is required.
//
// Required holds the object-level list of required property names. Legacy
// schemas instead flag individual properties with IsRequired; when Required
// is nil those flags are collected into the required set.
type Schema struct {
	Type  TypeSpec
	Label string

	// object
	Properties           Properties
	Required             []string
	AdditionalProperties *Additional

	// property-level legacy flag ("required": true)
	IsRequired bool

	// array
	Items *Schema

	// string
	Enum      []string
	Pattern   string
	Format    string
	MinLength *int
	MaxLength *int

	// number, integer
	Minimum *Number
	Maximum *Number
}

// Len returns a pointer to n, for MinLength and MaxLength literals.
func Len(n int) *int { return &n }

// requiredSet resolves the required property names. An explicit Required
// list wins, even when empty; otherwise property flags are collected in
// declaration order.
func (s *Schema) requiredSet() []string {
	if s.Required != nil {
		return s.Required
	}
	var names []string
	for _, p := range s.Properties {
		if p.Schema != nil && p.Schema.IsRequired {
			names = append(names, p.Name)
		}
	}
	return names
}

// label returns the display label used as the root path.
func (s *Schema) label() string {
	if s.Label != "" {
		return s.Label
	}
	return "data"
}
