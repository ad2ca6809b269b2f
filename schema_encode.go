package formschema

import (
	"bytes"

	gojson "github.com/goccy/go-json"
)

// MarshalJSON writes the schema as a document ParseSchemaJSON reads back to an
// equal Schema. Property order and bound literals are kept.
func (s *Schema) MarshalJSON() ([]byte, error) {
	var b bytes.Buffer
	if err := writeSchema(&b, s); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type objectWriter struct {
	b     *bytes.Buffer
	first bool
	err   error
}

func (w *objectWriter) key(k string) {
	enc, err := gojson.Marshal(k)
	if err != nil {
		w.err = err
		return
	}
	if !w.first {
		w.b.WriteByte(',')
	}
	w.first = false
	w.b.Write(enc)
	w.b.WriteByte(':')
}

func (w *objectWriter) value(k string, v any) {
	if w.err != nil {
		return
	}
	enc, err := gojson.Marshal(v)
	if err != nil {
		w.err = err
		return
	}
	w.key(k)
	w.b.Write(enc)
}

// number writes a bound by its literal so the precision survives a round
// trip. Literals JSON cannot hold, such as ".5", are normalized.
func (w *objectWriter) number(k string, n *Number) {
	if w.err != nil {
		return
	}
	lit := n.String()
	if !gojson.Valid([]byte(lit)) {
		lit = n.Decimal().String()
	}
	w.key(k)
	w.b.WriteString(lit)
}

func (w *objectWriter) schema(k string, s *Schema) {
	if w.err != nil {
		return
	}
	w.key(k)
	w.err = writeSchema(w.b, s)
}

func writeSchema(b *bytes.Buffer, s *Schema) error {
	if s == nil {
		b.WriteString("null")
		return nil
	}
	w := &objectWriter{b: b, first: true}
	b.WriteByte('{')

	switch {
	case s.Type.IsList():
		names := make([]string, len(s.Type.names))
		for i, t := range s.Type.names {
			names[i] = string(t)
		}
		w.value("type", names)
	case !s.Type.IsZero():
		w.value("type", string(s.Type.names[0]))
	}
	if s.Label != "" {
		w.value("label", s.Label)
	}

	if s.Properties != nil && w.err == nil {
		w.key("properties")
		b.WriteByte('{')
		pw := &objectWriter{b: b, first: true}
		for _, p := range s.Properties {
			pw.schema(p.Name, p.Schema)
		}
		if pw.err != nil {
			return pw.err
		}
		b.WriteByte('}')
	}
	switch {
	case s.Required != nil:
		w.value("required", s.Required)
	case s.IsRequired:
		w.value("required", true)
	}
	if ap := s.AdditionalProperties; ap != nil {
		switch {
		case ap.Disallow:
			w.value("additionalProperties", false)
		case ap.Schema != nil:
			w.schema("additionalProperties", ap.Schema)
		}
	}

	if s.Items != nil {
		w.schema("items", s.Items)
	}
	if s.Enum != nil {
		w.value("enum", s.Enum)
	}
	if s.Pattern != "" {
		w.value("pattern", s.Pattern)
	}
	if s.Format != "" {
		w.value("format", s.Format)
	}
	if s.MinLength != nil {
		w.value("minLength", *s.MinLength)
	}
	if s.MaxLength != nil {
		w.value("maxLength", *s.MaxLength)
	}
	if s.Minimum != nil {
		w.number("minimum", s.Minimum)
	}
	if s.Maximum != nil {
		w.number("maximum", s.Maximum)
	}

	b.WriteByte('}')
	return w.err
}
