// Package workshop validates workshop application submissions: it defines the
// application fields, turns posted form values into a submission and checks it
// against the field schema before storing it.
package workshop

import (
	fs "github.com/reoring/formschema"
)

// Sanitize names the input filter applied to a posted field.
type Sanitize int

const (
	// SanitizeString strips markup and encodes quotes.
	SanitizeString Sanitize = iota
	// SanitizeEmail drops characters that cannot appear in an address.
	SanitizeEmail
	// SanitizeStringList requires a list and applies SanitizeString to each
	// entry.
	SanitizeStringList
)

// Field is one input of the application form.
type Field struct {
	Name     string
	Sanitize Sanitize
	Schema   *fs.Schema
	// Default is the initial form value shown to the applicant.
	Default any
}

// Label is the root label of submission issue paths.
const Label = "submission"

// Field names set from the signed-in user.
const (
	FieldUserName  = "wporg-user-name"
	FieldFirstName = "first-name"
	FieldLastName  = "last-name"
	FieldEmail     = "email"
	FieldLanguage  = "language"
	FieldNonce     = "nonce"
)

func text(required bool) *fs.Schema {
	return &fs.Schema{Type: fs.Single(fs.TypeString), IsRequired: required}
}

func list() *fs.Schema {
	return &fs.Schema{
		Type:       fs.Single(fs.TypeArray),
		Items:      &fs.Schema{Type: fs.Single(fs.TypeString)},
		IsRequired: true,
	}
}

// Fields returns the application fields in form order. languages is the enum
// of accepted language codes.
func Fields(languages []string) []Field {
	email := text(true)
	email.Format = fs.FormatEmail

	language := text(true)
	language.Enum = append([]string{}, languages...)

	return []Field{
		{Name: FieldUserName, Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: FieldFirstName, Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: FieldLastName, Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: FieldEmail, Sanitize: SanitizeEmail, Schema: email, Default: ""},
		{Name: "online-presence", Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: "workshop-title", Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: "description", Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: "description-short", Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: "learning-objectives", Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: "comprehension-questions", Sanitize: SanitizeString, Schema: text(true), Default: ""},
		{Name: "audience", Sanitize: SanitizeStringList, Schema: list(), Default: []string{}},
		{Name: "experience-level", Sanitize: SanitizeStringList, Schema: list(), Default: []string{}},
		{Name: FieldLanguage, Sanitize: SanitizeString, Schema: language, Default: "en_US"},
		{Name: "timezone", Sanitize: SanitizeString, Schema: text(true), Default: "UTC-0"},
		{Name: "comments", Sanitize: SanitizeString, Schema: text(false), Default: ""},
		{Name: FieldNonce, Sanitize: SanitizeString, Schema: text(true), Default: ""},
	}
}

// SchemaFor builds the submission schema from fields. Required properties come
// from each field's required flag.
func SchemaFor(fields []Field) *fs.Schema {
	props := make(fs.Properties, 0, len(fields))
	for _, f := range fields {
		props = append(props, fs.Property{Name: f.Name, Schema: f.Schema})
	}
	return &fs.Schema{
		Type:       fs.Single(fs.TypeObject),
		Label:      Label,
		Properties: props,
	}
}

// NewSchema returns the submission schema for the given language codes.
func NewSchema(languages []string) *fs.Schema {
	return SchemaFor(Fields(languages))
}

// Defaults returns the initial form values keyed by field name.
func Defaults(fields []Field) map[string]any {
	out := make(map[string]any, len(fields))
	for _, f := range fields {
		out[f.Name] = f.Default
	}
	return out
}
