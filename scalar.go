package formschema

import (
	"fmt"
	"slices"
	"strings"
)

// validateString runs the string checks in order and stops at the first one
// that fails, so a string produces at most one issue.
func (r *run) validateString(value any, path string, s *Schema) bool {
	str, ok := value.(string)
	if !ok {
		r.add(CodeInvalidType, path, fmt.Sprintf(msgNotString, path), map[string]any{"expected": string(TypeString)})
		return false
	}

	if s.Enum != nil && !slices.Contains(s.Enum, str) {
		r.add(CodeInvalidEnum, path, fmt.Sprintf(msgInvalidEnum, str, path), map[string]any{"value": str})
		return false
	}

	if s.Pattern != "" && !r.v.matchPattern(s.Pattern, str) {
		r.add(CodePattern, path, r.v.patternMessage(s.Pattern, path), map[string]any{"pattern": s.Pattern})
		return false
	}

	if s.Format == FormatEmail && !IsEmail(str) {
		r.add(CodeInvalidFormat, path, fmt.Sprintf(msgInvalidEmail, path), map[string]any{"format": FormatEmail})
		return false
	}

	// lengths count bytes
	if s.MinLength != nil && len(str) < *s.MinLength {
		r.add(CodeTooShort, path, fmt.Sprintf(msgTooShort, path, *s.MinLength),
			map[string]any{"min": *s.MinLength, "got": len(str)})
		return false
	}
	if s.MaxLength != nil && len(str) > *s.MaxLength {
		r.add(CodeTooLong, path, fmt.Sprintf(msgTooLong, path, *s.MaxLength),
			map[string]any{"max": *s.MaxLength, "got": len(str)})
		return false
	}

	return true
}

func (r *run) validateBoolean(value any, path string) bool {
	if _, ok := value.(bool); !ok {
		r.add(CodeInvalidType, path, fmt.Sprintf(msgNotBoolean, path), map[string]any{"expected": string(TypeBoolean)})
		return false
	}
	return true
}

// matchPattern searches str for pattern. A pattern that does not compile
// matches nothing.
func (v *Validator) matchPattern(pattern, str string) bool {
	re, err := v.compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(str)
}

// patternMessage asks the describer for a friendlier message. A description
// may contain %s, which is replaced with the path.
func (v *Validator) patternMessage(pattern, path string) string {
	if desc := v.describe.Describe(pattern); desc != "" {
		return strings.ReplaceAll(desc, "%s", path)
	}
	return fmt.Sprintf(msgPattern, path)
}
