package workshop

import (
	"strings"

	fs "github.com/reoring/formschema"
)

// FieldErrors groups the messages of a validation error by field name so a
// form can show them next to their inputs. Issues about list entries are
// reported on the list field. Issues about the submission as a whole use the
// empty name. ok is false when err carries no issues.
func FieldErrors(err error) (fields map[string][]string, ok bool) {
	iss, ok := fs.AsIssues(err)
	if !ok {
		return nil, false
	}
	fields = make(map[string][]string)
	for _, it := range iss {
		name := FieldName(it.Path)
		fields[name] = append(fields[name], it.Message)
	}
	return fields, true
}

// FieldName returns the field an issue path points into, e.g. "audience" for
// "submission:audience[2]".
func FieldName(path string) string {
	rest, found := strings.CutPrefix(path, Label+":")
	if !found {
		return ""
	}
	if i := strings.IndexAny(rest, "[:"); i >= 0 {
		rest = rest[:i]
	}
	return rest
}
