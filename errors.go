package formschema

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	// configuration
	CodeSchemaTypeMissing = "schema_type_missing"
	CodeUnsupportedType   = "unsupported_type"
	// type mismatch
	CodeInvalidType = "invalid_type"
	// unresolvable type among candidates
	CodeTypeUnion = "type_union"
	// constraint violations
	CodeRequired      = "required"
	CodeUnknownKey    = "unknown_key"
	CodeInvalidEnum   = "invalid_enum"
	CodePattern       = "pattern"
	CodeInvalidFormat = "invalid_format"
	CodeTooShort      = "too_short"
	CodeTooLong       = "too_long"
	CodeTooSmall      = "too_small"
	CodeTooBig        = "too_big"
	// input decoding (Source)
	CodeParseError     = "parse_error"
	CodeDuplicateKey   = "duplicate_key"
	CodeDepthExceeded  = "depth_exceeded"
	CodeAliasExpansion = "alias_expansion"
)

// ErrMissingType is matched (errors.Is) by the Issues returned when the root
// schema declares no type.
var ErrMissingType = errors.New("formschema: the schema does not define the data type")

// Kind groups issue codes into the error taxonomy.
type Kind int

const (
	KindConstraint Kind = iota
	KindConfiguration
	KindType
	KindUnion
	KindInput
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindType:
		return "type"
	case KindUnion:
		return "union"
	case KindInput:
		return "input"
	default:
		return "constraint"
	}
}

// Issue represents a single validation entry.
type Issue struct {
	// Path locates the value: the root label followed by ":name" for object
	// properties and "[i]" for array items, e.g. "submission:audience[0]".
	// Configuration issues about the root schema have no path. Input issues
	// from a Source carry a JSON Pointer.
	Path    string         `json:"path,omitempty"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

// Kind classifies the issue by its code.
func (it Issue) Kind() Kind {
	switch it.Code {
	case CodeSchemaTypeMissing, CodeUnsupportedType:
		return KindConfiguration
	case CodeInvalidType:
		return KindType
	case CodeTypeUnion:
		return KindUnion
	case CodeParseError, CodeDuplicateKey, CodeDepthExceeded, CodeAliasExpansion:
		return KindInput
	default:
		return KindConstraint
	}
}

// Issues is a collection of validation errors that implements error. Issues
// are only ever appended: repeated codes keep every occurrence.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		if it.Path == "" {
			b.WriteString(it.Code)
			continue
		}
		// e.g. invalid_type at data:name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is lets errors.Is match ErrMissingType.
func (iss Issues) Is(target error) bool {
	if target != ErrMissingType {
		return false
	}
	for _, it := range iss {
		if it.Code == CodeSchemaTypeMissing {
			return true
		}
	}
	return false
}

// Codes returns the distinct codes in first-seen order.
func (iss Issues) Codes() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, it := range iss {
		if _, ok := seen[it.Code]; ok {
			continue
		}
		seen[it.Code] = struct{}{}
		out = append(out, it.Code)
	}
	return out
}

// Paths returns the path of every issue recorded under code, in order.
// Paths repeat when one location has several issues with that code.
func (iss Issues) Paths(code string) []string {
	var out []string
	for _, it := range iss {
		if it.Code == code {
			out = append(out, it.Path)
		}
	}
	return out
}

// Messages returns the message of every issue recorded under code, in order.
func (iss Issues) Messages(code string) []string {
	var out []string
	for _, it := range iss {
		if it.Code == code {
			out = append(out, it.Message)
		}
	}
	return out
}

// ByPath groups messages by path.
func (iss Issues) ByPath() map[string][]string {
	out := make(map[string][]string, len(iss))
	for _, it := range iss {
		out[it.Path] = append(out[it.Path], it.Message)
	}
	return out
}

// Has reports whether any issue was recorded at path.
func (iss Issues) Has(path string) bool {
	for _, it := range iss {
		if it.Path == path {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
