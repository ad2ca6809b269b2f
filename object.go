package formschema

import "fmt"

// validateObject checks an object and descends into its properties. Every
// required, declared and additional property is checked even after a failure,
// so all problems below the object are reported together.
func (r *run) validateObject(value any, path string, s *Schema) bool {
	if classify(value) != shapeMap {
		r.add(CodeInvalidType, path, fmt.Sprintf(msgNotObject, path), map[string]any{"expected": string(TypeObject)})
		return false
	}
	obj := objectView(value)
	ok := true

	for _, name := range s.requiredSet() {
		if obj.has(name) {
			continue
		}
		r.add(CodeRequired, propertyPath(path, name), fmt.Sprintf(msgRequired, name, path), map[string]any{"property": name})
		ok = false
	}

	for _, prop := range s.Properties {
		sub := prop.Schema
		v, present := obj.values[prop.Name]
		// absent and null properties are left to the required check
		if !present || v == nil || sub == nil || sub.Type.IsZero() {
			continue
		}
		if !r.route(sub.Type, v, propertyPath(path, prop.Name), sub) {
			ok = false
		}
	}

	if ap := s.AdditionalProperties; ap != nil {
		switch {
		case ap.Disallow:
			for _, key := range obj.keys {
				if s.Properties.Has(key) {
					continue
				}
				r.add(CodeUnknownKey, propertyPath(path, key), fmt.Sprintf(msgUnknownProperty, key, path), map[string]any{"property": key})
				ok = false
			}
		case ap.Schema != nil && !ap.Schema.Type.IsZero():
			// every key, declared ones included, must satisfy the schema
			for _, key := range obj.keys {
				if !r.route(ap.Schema.Type, obj.values[key], propertyPath(path, key), ap.Schema) {
					ok = false
				}
			}
		}
	}

	return ok
}
