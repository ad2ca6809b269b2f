package formschema

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// PatternDescriber explains a regular expression to people. The description
// ends up in the error message of a failed pattern check, so it should read as
// an instruction, e.g. `\.css$` -> "The value of %s must end in .css". Any %s
// is replaced with the path of the value. An empty result means no
// description is available.
type PatternDescriber interface {
	Describe(pattern string) string
}

// PatternDescriberFunc adapts a function to PatternDescriber.
type PatternDescriberFunc func(pattern string) string

// Describe implements PatternDescriber.
func (f PatternDescriberFunc) Describe(pattern string) string { return f(pattern) }

// PatternDescriptions looks descriptions up by exact pattern.
type PatternDescriptions map[string]string

// Describe implements PatternDescriber.
func (d PatternDescriptions) Describe(pattern string) string { return d[pattern] }

// LoadPatternDescriptions reads a YAML (or JSON) mapping of pattern to description.
func LoadPatternDescriptions(data []byte) (PatternDescriptions, error) {
	var d PatternDescriptions
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("formschema: pattern descriptions: %w", err)
	}
	return d, nil
}

// ChainDescribers asks each describer in turn and returns the first
// non-empty description.
func ChainDescribers(ds ...PatternDescriber) PatternDescriber {
	return PatternDescriberFunc(func(pattern string) string {
		for _, d := range ds {
			if d == nil {
				continue
			}
			if desc := d.Describe(pattern); desc != "" {
				return desc
			}
		}
		return ""
	})
}

type noDescription struct{}

func (noDescription) Describe(string) string { return "" }
