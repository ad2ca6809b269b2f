package formschema

import "fmt"

// validateNumber accepts native numbers and numeric strings. Each bound is
// compared after rounding the value to the bound's own decimal places, so a
// minimum of 1.5 accepts 1.45.
func (r *run) validateNumber(value any, path string, s *Schema) bool {
	if !isNumeric(value) {
		r.add(CodeInvalidType, path, fmt.Sprintf(msgNotNumeric, path), map[string]any{"expected": string(TypeNumber)})
		return false
	}
	if s.Minimum == nil && s.Maximum == nil {
		return true
	}
	n := toNumeric(value)

	if s.Minimum != nil {
		if cmp, ok := n.compare(s.Minimum); ok && cmp < 0 {
			r.add(CodeTooSmall, path, fmt.Sprintf(msgTooSmall, path, s.Minimum.Float64()),
				map[string]any{"min": s.Minimum.String()})
			return false
		}
	}
	if s.Maximum != nil {
		if cmp, ok := n.compare(s.Maximum); ok && cmp > 0 {
			r.add(CodeTooBig, path, fmt.Sprintf(msgTooBig, path, s.Maximum.Float64()),
				map[string]any{"max": s.Maximum.String()})
			return false
		}
	}
	return true
}

// validateInteger requires a native integer, then applies the number bounds.
// Numeric strings are not integers.
func (r *run) validateInteger(value any, path string, s *Schema) bool {
	if !isInteger(value) {
		r.add(CodeInvalidType, path, fmt.Sprintf(msgNotInteger, path), map[string]any{"expected": string(TypeInteger)})
		return false
	}
	return r.validateNumber(value, path, s)
}
