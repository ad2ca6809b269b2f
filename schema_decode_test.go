package formschema_test

import (
	"errors"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	fs "github.com/reoring/formschema"
)

const submissionSchemaJSON = `{
	"type": "object",
	"label": "submission",
	"properties": {
		"zeta": {"type": "string", "required": true, "maxLength": 10},
		"alpha": {"type": ["integer", "string"], "minimum": 1.50},
		"tags": {"type": "array", "items": {"type": "string", "enum": ["a", "b"]}},
		"mail": {"type": "string", "format": "email", "pattern": "@example\\.org$"},
		"default_ignored": {"type": "boolean", "default": true}
	},
	"additionalProperties": false
}`

func TestParseSchemaJSON(t *testing.T) {
	s, err := fs.ParseSchemaJSON([]byte(submissionSchemaJSON))
	require.NoError(t, err)

	assert.Equal(t, fs.Single(fs.TypeObject), s.Type)
	assert.Equal(t, "submission", s.Label)
	assert.Equal(t, []string{"zeta", "alpha", "tags", "mail", "default_ignored"}, s.Properties.Names(), "declaration order is kept")
	assert.Nil(t, s.Required)
	require.NotNil(t, s.AdditionalProperties)
	assert.True(t, s.AdditionalProperties.Disallow)

	zeta, ok := s.Properties.Get("zeta")
	require.True(t, ok)
	assert.True(t, zeta.IsRequired)
	require.NotNil(t, zeta.MaxLength)
	assert.Equal(t, 10, *zeta.MaxLength)

	alpha, _ := s.Properties.Get("alpha")
	assert.True(t, alpha.Type.IsList())
	assert.Equal(t, []fs.Type{fs.TypeInteger, fs.TypeString}, alpha.Type.Types())
	assert.Equal(t, "1.50", alpha.Minimum.String())
	assert.Equal(t, int32(2), alpha.Minimum.Places(), "precision comes from the literal")

	tags, _ := s.Properties.Get("tags")
	require.NotNil(t, tags.Items)
	assert.Equal(t, []string{"a", "b"}, tags.Items.Enum)

	mail, _ := s.Properties.Get("mail")
	assert.Equal(t, fs.FormatEmail, mail.Format)
	assert.Equal(t, `@example\.org$`, mail.Pattern)
}

func TestParseSchemaYAML(t *testing.T) {
	src := `
type: object
required: [name, email]
properties:
  name:
    type: string
    minLength: 1
  email:
    type: string
    format: email
  score:
    type: number
    maximum: 10
additionalProperties:
  type: string
`
	s, err := fs.ParseSchemaYAML([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "email"}, s.Required)
	assert.Equal(t, []string{"name", "email", "score"}, s.Properties.Names())

	score, _ := s.Properties.Get("score")
	assert.Equal(t, "10", score.Maximum.String())
	assert.Equal(t, int32(0), score.Maximum.Places())

	require.NotNil(t, s.AdditionalProperties)
	assert.False(t, s.AdditionalProperties.Disallow)
	assert.Equal(t, fs.Single(fs.TypeString), s.AdditionalProperties.Schema.Type)
}

func TestParseSchema_AdditionalPropertiesForms(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		disallow bool
		isNil    bool
	}{
		{name: "false", src: `{"type":"object","additionalProperties":false}`, disallow: true},
		{name: "disallow literal", src: `{"type":"object","additionalProperties":"disallow"}`, disallow: true},
		{name: "true", src: `{"type":"object","additionalProperties":true}`, isNil: true},
		{name: "absent", src: `{"type":"object"}`, isNil: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := fs.ParseSchemaJSON([]byte(tt.src))
			require.NoError(t, err)
			if tt.isNil {
				assert.Nil(t, s.AdditionalProperties)
				return
			}
			require.NotNil(t, s.AdditionalProperties)
			assert.Equal(t, tt.disallow, s.AdditionalProperties.Disallow)
		})
	}
}

func TestParseSchema_Errors(t *testing.T) {
	for name, src := range map[string]string{
		"not an object":      `["string"]`,
		"type not a name":    `{"type": 1}`,
		"type list mixed":    `{"type": ["string", 2]}`,
		"required mixed":     `{"type": "object", "required": ["a", 1]}`,
		"enum not strings":   `{"type": "string", "enum": [1, 2]}`,
		"negative length":    `{"type": "string", "minLength": -1}`,
		"fractional length":  `{"type": "string", "maxLength": 1.5}`,
		"minimum not number": `{"type": "number", "minimum": true}`,
		"unknown policy":     `{"type": "object", "additionalProperties": "maybe"}`,
		"nested":             `{"type": "object", "properties": {"a": {"type": "string", "pattern": 3}}}`,
		"malformed":          `{"type": `,
		"duplicate key":      `{"type": "string", "type": "number"}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := fs.ParseSchemaJSON([]byte(src))
			require.Error(t, err)
			assert.True(t, errors.Is(err, fs.ErrInvalidSchema), "got %v", err)
		})
	}

	_, err := fs.ParseSchemaJSON([]byte(`{"type": "object", "properties": {"a": {"type": "string", "pattern": 3}}}`))
	assert.ErrorContains(t, err, "#/properties/a/pattern")
}

func TestParseSchema_TypelessSchemaIsAccepted(t *testing.T) {
	s, err := fs.ParseSchemaJSON([]byte(`{"label": "x"}`))
	require.NoError(t, err)
	assert.True(t, s.Type.IsZero())

	_, err = fs.New(s).Validate("anything")
	assert.ErrorIs(t, err, fs.ErrMissingType)
}

func TestSchemaFromMap(t *testing.T) {
	s, err := fs.SchemaFromMap(map[string]any{
		"type":     "object",
		"required": []string{"b"},
		"properties": map[string]any{
			"b": map[string]any{"type": "integer", "minimum": 2},
			"a": map[string]any{"type": []string{"string", "boolean"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, s.Properties.Names())
	b, _ := s.Properties.Get("b")
	assert.Equal(t, "2", b.Minimum.String())

	_, err = fs.New(s).Validate(map[string]any{"a": true, "b": 1})
	iss, ok := fs.AsIssues(err)
	require.True(t, ok)
	assert.Equal(t, []string{"data:b"}, iss.Paths(fs.CodeTooSmall))
}

func TestSchema_EmbeddedInDocuments(t *testing.T) {
	type formConfig struct {
		Name   string     `json:"name" yaml:"name"`
		Schema *fs.Schema `json:"schema" yaml:"schema"`
	}

	var fromJSON formConfig
	require.NoError(t, gojson.Unmarshal([]byte(`{"name":"signup","schema":{"type":"string","minLength":2}}`), &fromJSON))
	require.NotNil(t, fromJSON.Schema)
	assert.Equal(t, fs.Single(fs.TypeString), fromJSON.Schema.Type)
	assert.Equal(t, 2, *fromJSON.Schema.MinLength)

	var fromYAML formConfig
	require.NoError(t, yaml.Unmarshal([]byte("name: signup\nschema:\n  type: [number, string]\n  maximum: 2.5\n"), &fromYAML))
	require.NotNil(t, fromYAML.Schema)
	assert.True(t, fromYAML.Schema.Type.IsList())
	assert.Equal(t, "2.5", fromYAML.Schema.Maximum.String())
}

func TestNumber(t *testing.T) {
	n, err := fs.ParseNumber(" 2.50 ")
	require.NoError(t, err)
	assert.Equal(t, "2.50", n.String())
	assert.Equal(t, int32(2), n.Places())
	assert.InDelta(t, 2.5, n.Float64(), 1e-12)

	assert.Equal(t, int32(1), fs.NumberFromFloat(1.5).Places())
	assert.Equal(t, int32(0), fs.NumberFromFloat(2.0).Places())
	assert.Equal(t, "-7", fs.NumberFromInt(-7).String())

	_, err = fs.ParseNumber("1,5")
	assert.Error(t, err)
	assert.Panics(t, func() { fs.Num("x") })
}

func TestTypeSpec(t *testing.T) {
	assert.True(t, fs.TypeSpec{}.IsZero())
	assert.False(t, fs.Single(fs.TypeString).IsZero())
	assert.False(t, fs.OneOf().IsZero(), "an explicit empty list is still declared")
	assert.Equal(t, "string", fs.Single(fs.TypeString).String())
	assert.Equal(t, "[string, integer]", fs.OneOf(fs.TypeString, fs.TypeInteger).String())
	assert.True(t, fs.TypeObject.Known())
	assert.False(t, fs.Type("null").Known())
}

func TestSchema_MarshalJSONRoundTrip(t *testing.T) {
	s, err := fs.ParseSchemaJSON([]byte(submissionSchemaJSON))
	require.NoError(t, err)
	s.Required = []string{"zeta"}
	alpha, _ := s.Properties.Get("alpha")
	alpha.Maximum = fs.Num("010")

	out, err := gojson.Marshal(s)
	require.NoError(t, err)

	back, err := fs.ParseSchemaJSON(out)
	require.NoError(t, err)
	assert.Equal(t, s.Properties.Names(), back.Properties.Names())
	assert.Equal(t, []string{"zeta"}, back.Required)
	assert.True(t, back.AdditionalProperties.Disallow)

	backAlpha, _ := back.Properties.Get("alpha")
	assert.Equal(t, "1.50", backAlpha.Minimum.String())
	assert.Equal(t, "10", backAlpha.Maximum.String(), "literals JSON cannot hold are normalized")
	assert.Equal(t, alpha.Type, backAlpha.Type)

	zeta, _ := back.Properties.Get("zeta")
	assert.True(t, zeta.IsRequired)
	assert.Equal(t, 10, *zeta.MaxLength)

	tags, _ := back.Properties.Get("tags")
	assert.Equal(t, []string{"a", "b"}, tags.Items.Enum)

	mail, _ := back.Properties.Get("mail")
	assert.Equal(t, `@example\.org$`, mail.Pattern)
}
