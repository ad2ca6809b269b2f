package workshop

import (
	"net/url"
	"strings"

	"github.com/grafana/regexp"
)

// Submission is a sanitized application keyed by field name. Text fields hold
// strings and list fields hold []any of strings.
type Submission map[string]any

// User is the signed-in applicant. Its values replace whatever the form
// posted for the same fields.
type User struct {
	Login     string
	FirstName string
	LastName  string
	Email     string
}

func (u *User) values() map[string]string {
	return map[string]string{
		FieldUserName:  u.Login,
		FieldFirstName: u.FirstName,
		FieldLastName:  u.LastName,
		FieldEmail:     u.Email,
	}
}

// SubmissionFromForm reads the posted values of fields, applies each field's
// sanitizer, overlays the user's identity and drops empty values. Only empty
// strings and empty lists count as empty: a posted "0" is kept, so a field
// holding zero still reaches validation. Values for names that are not
// fields are ignored. user may be nil.
func SubmissionFromForm(form url.Values, user *User, fields []Field) Submission {
	sub := make(Submission, len(fields))
	for _, f := range fields {
		switch f.Sanitize {
		case SanitizeStringList:
			values, ok := form[f.Name+"[]"]
			if !ok {
				values = form[f.Name]
			}
			items := make([]any, 0, len(values))
			for _, v := range values {
				items = append(items, sanitizeString(v))
			}
			sub[f.Name] = items
		default:
			values := form[f.Name]
			if len(values) == 0 {
				continue
			}
			// the last posted value wins, like a PHP form handler
			v := values[len(values)-1]
			if f.Sanitize == SanitizeEmail {
				sub[f.Name] = sanitizeEmail(v)
			} else {
				sub[f.Name] = sanitizeString(v)
			}
		}
	}

	if user != nil {
		for name, v := range user.values() {
			sub[name] = v
		}
	}

	for name, v := range sub {
		if isEmpty(v) {
			delete(sub, name)
		}
	}
	return sub
}

func isEmpty(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	}
	return false
}

var markup = regexp.MustCompile(`<[^>]*>?`)

var quotes = strings.NewReplacer(`"`, "&#34;", `'`, "&#39;")

// sanitizeString removes tags and NUL bytes and encodes quotes.
func sanitizeString(s string) string {
	s = strings.ReplaceAll(s, "\x00", "")
	s = markup.ReplaceAllString(s, "")
	return quotes.Replace(s)
}

// sanitizeEmail keeps letters, digits and the punctuation allowed in
// addresses.
func sanitizeEmail(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case strings.ContainsRune("!#$%&'*+-=?^_`{|}~@.[]", r):
			return r
		}
		return -1
	}, s)
}
