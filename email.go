package formschema

import (
	"strings"

	"github.com/grafana/regexp"
)

// FormatEmail is the only format keyword the validator checks. Other formats
// are accepted without inspection.
const FormatEmail = "email"

var (
	emailLocalPart = regexp.MustCompile("^[a-zA-Z0-9!#$%&'*+/=?^_`{|}~.-]+$")
	emailSubdomain = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)
)

const emailTrimSet = " \t\n\r\x00\x0B"

// IsEmail reports whether s is an acceptable email address: at least 6 bytes,
// a local part of common atom characters, and a domain of two or more labels
// made of letters, digits and inner hyphens.
func IsEmail(s string) bool {
	if len(s) < 6 {
		return false
	}
	at := strings.IndexByte(s, '@')
	if at < 1 {
		return false
	}
	local, domain := s[:at], s[at+1:]

	if !emailLocalPart.MatchString(local) {
		return false
	}

	if strings.Contains(domain, "..") {
		return false
	}
	if strings.Trim(domain, emailTrimSet+".") != domain {
		return false
	}
	labels := strings.Split(domain, ".")
	if len(labels) < 2 {
		return false
	}
	for _, label := range labels {
		if strings.Trim(label, emailTrimSet+"-") != label {
			return false
		}
		if !emailSubdomain.MatchString(label) {
			return false
		}
	}
	return true
}
