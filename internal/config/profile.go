package config

import (
	"strings"
	"unicode"
)

// Profile identifies the person whose conversations these are. It feeds the
// header badge and export front matter; nothing authenticates against it.
type Profile struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// DisplayName returns the profile name, falling back to the email's local
// part, then to "Anonymous".
func (p Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if at := strings.IndexByte(p.Email, '@'); at > 0 {
		return p.Email[:at]
	}
	return "Anonymous"
}

// Initials returns up to two uppercase initials for the header badge.
func (p Profile) Initials() string {
	fields := strings.Fields(p.DisplayName())
	if len(fields) == 0 {
		return "?"
	}

	first := []rune(fields[0])
	initials := []rune{unicode.ToUpper(first[0])}
	if len(fields) > 1 {
		last := []rune(fields[len(fields)-1])
		initials = append(initials, unicode.ToUpper(last[0]))
	}
	return string(initials)
}
