package formschema

import "fmt"

// validateArray checks that value is a sequence and, when the item schema
// declares a type, validates every element.
func (r *run) validateArray(value any, path string, s *Schema) bool {
	if classify(value) != shapeSequence {
		r.add(CodeInvalidType, path, fmt.Sprintf(msgNotArray, path), map[string]any{"expected": string(TypeArray)})
		return false
	}
	if s.Items == nil || s.Items.Type.IsZero() {
		return true
	}
	ok := true
	for i, item := range sequenceView(value) {
		if !r.route(s.Items.Type, item, itemPath(path, i), s.Items) {
			ok = false
		}
	}
	return ok
}
