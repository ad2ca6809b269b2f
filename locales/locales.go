// Package locales lists the locales a submission may declare as its language,
// keyed by WordPress-style codes such as "en_US" or "ja", with the name each
// language uses for itself.
package locales

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Lister provides the locale codes accepted as a language.
type Lister interface {
	Codes() []string
}

// Locale is one supported locale.
type Locale struct {
	Code       string
	Tag        language.Tag
	NativeName string
}

// Option is a locale as offered in a language picker.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Set is an ordered, immutable collection of locales.
type Set struct {
	locales []Locale
	byCode  map[string]int
}

// defaultCodes are the locales offered by default, in display order.
var defaultCodes = []string{
	"en_US", "en_GB", "en_AU", "en_CA",
	"af", "ar", "bg_BG", "bn_BD", "ca", "cs_CZ", "cy", "da_DK",
	"de_DE", "de_CH", "el", "es_ES", "es_MX", "es_AR", "et", "eu",
	"fa_IR", "fi", "fr_FR", "fr_CA", "gl_ES", "he_IL", "hi_IN", "hr",
	"hu_HU", "id_ID", "it_IT", "ja", "ka_GE", "ko_KR", "lt_LT", "lv",
	"ms_MY", "nb_NO", "nl_NL", "pl_PL", "pt_BR", "pt_PT", "ro_RO", "ru_RU",
	"sk_SK", "sl_SI", "sq", "sr_RS", "sv_SE", "th", "tr_TR", "uk",
	"vi", "zh_CN", "zh_TW",
}

var defaultSet = MustNew(defaultCodes...)

// Default returns the built-in locale set.
func Default() *Set { return defaultSet }

// New builds a Set from locale codes. Codes use an underscore between
// language and region; duplicates are rejected.
func New(codes ...string) (*Set, error) {
	s := &Set{
		locales: make([]Locale, 0, len(codes)),
		byCode:  make(map[string]int, len(codes)),
	}
	for _, code := range codes {
		if _, dup := s.byCode[code]; dup {
			return nil, fmt.Errorf("locales: duplicate code %q", code)
		}
		tag, err := Tag(code)
		if err != nil {
			return nil, err
		}
		s.byCode[code] = len(s.locales)
		s.locales = append(s.locales, Locale{Code: code, Tag: tag, NativeName: nativeName(tag, code)})
	}
	return s, nil
}

// MustNew is like New but panics on an invalid code.
func MustNew(codes ...string) *Set {
	s, err := New(codes...)
	if err != nil {
		panic(err)
	}
	return s
}

// Tag parses a WordPress-style locale code into a BCP 47 tag.
func Tag(code string) (language.Tag, error) {
	if code == "" {
		return language.Und, fmt.Errorf("locales: empty code")
	}
	tag, err := language.Parse(strings.ReplaceAll(code, "_", "-"))
	if err != nil {
		return language.Und, fmt.Errorf("locales: invalid code %q: %w", code, err)
	}
	return tag, nil
}

func nativeName(tag language.Tag, code string) string {
	if name := display.Self.Name(tag); name != "" {
		return name
	}
	return code
}

// Codes returns every code in the set's order.
func (s *Set) Codes() []string {
	out := make([]string, len(s.locales))
	for i, l := range s.locales {
		out[i] = l.Code
	}
	return out
}

// Locales returns a copy of the set.
func (s *Set) Locales() []Locale { return slices.Clone(s.locales) }

// Has reports whether code is in the set.
func (s *Set) Has(code string) bool {
	_, ok := s.byCode[code]
	return ok
}

// NativeName returns the self-name of the locale's language.
func (s *Set) NativeName(code string) (string, bool) {
	i, ok := s.byCode[code]
	if !ok {
		return "", false
	}
	return s.locales[i].NativeName, true
}

// Options returns picker entries sorted by label. When two locales share a
// native name only the first one is offered.
func (s *Set) Options() []Option {
	seen := make(map[string]struct{}, len(s.locales))
	out := make([]Option, 0, len(s.locales))
	for _, l := range s.locales {
		if _, ok := seen[l.NativeName]; ok {
			continue
		}
		seen[l.NativeName] = struct{}{}
		out = append(out, Option{Value: l.Code, Label: l.NativeName})
	}
	c := collate.New(language.Und, collate.IgnoreCase)
	slices.SortStableFunc(out, func(a, b Option) int {
		return c.CompareString(a.Label, b.Label)
	})
	return out
}
