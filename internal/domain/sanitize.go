package domain

import (
	"math"
	"strings"
)

// trimCutset matches the characters stripped from both ends of text input.
const trimCutset = " \t\n\r\x00\x0B"

// emailSpecials are the non-alphanumeric bytes kept by SanitizeEmail.
const emailSpecials = "!#$%&'*+-=?^_`{|}~@.[]"

var htmlReplacer = strings.NewReplacer(
	"&", "&amp;",
	`"`, "&quot;",
	"'", "&#039;",
	"<", "&lt;",
	">", "&gt;",
)

// Clean trims s, substitutes malformed UTF-8 with U+FFFD and escapes
// HTML-significant characters. The result is safe to interpolate into HTML
// as-is and must not be escaped again.
func Clean(s string) string {
	s = strings.Trim(s, trimCutset)
	s = strings.ToValidUTF8(s, "\uFFFD")
	return htmlReplacer.Replace(s)
}

// SanitizeEmail drops every byte that cannot appear in an email address.
func SanitizeEmail(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isEmailByte(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func isEmailByte(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	return strings.IndexByte(emailSpecials, c) >= 0
}

// LeadingInt parses the integer prefix of s: optional leading whitespace,
// an optional sign, then decimal digits. Input without a digit prefix yields
// 0. Values beyond the int range saturate.
func LeadingInt(s string) int {
	s = strings.TrimLeft(s, " \t\n\r\v\f")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}

	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			break
		}
		d := int(c - '0')
		if neg {
			if n < (math.MinInt+d)/10 {
				return math.MinInt
			}
			n = n*10 - d
		} else {
			if n > (math.MaxInt-d)/10 {
				return math.MaxInt
			}
			n = n*10 + d
		}
	}
	return n
}
