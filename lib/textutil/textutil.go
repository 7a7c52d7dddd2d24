package textutil

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRegex = regexp.MustCompile(`\s+`)

// NormalizeSpace collapses every run of whitespace into a single space and
// trims both ends.
func NormalizeSpace(text string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(text, " "))
}

// NormalizeName lowercases and whitespace-normalizes a label so it can be
// compared against keyword lists.
func NormalizeName(name string) string {
	return strings.ToLower(NormalizeSpace(name))
}

// MatchName reports whether the normalized name contains any of the matchers.
// Matchers are expected to already be lowercase.
func MatchName(name string, matchers []string) bool {
	name = NormalizeName(name)
	for _, m := range matchers {
		if m != "" && strings.Contains(name, m) {
			return true
		}
	}
	return false
}

// Optional returns nil for an empty string so that "not found" never leaks
// out as "".
func Optional(text string) *string {
	if text == "" {
		return nil
	}
	return &text
}

// Deref returns the pointed string or "" for nil.
func Deref(text *string) string {
	if text == nil {
		return ""
	}
	return *text
}

var stripMarks = transform.Chain(
	norm.NFD,
	runes.Remove(runes.In(unicode.Mn)),
	runes.Map(func(r rune) rune {
		switch r {
		case 'đ':
			return 'd'
		case 'Đ':
			return 'D'
		}
		return r
	}),
)

var nonAlphanumRegex = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slugify turns arbitrary text into a url-safe token.
//
// "Data Engineer" -> "data-engineer", "Kỹ sư phần mềm" -> "ky-su-phan-mem"
func Slugify(text string) string {
	ascii, _, err := transform.String(stripMarks, text)
	if err != nil {
		ascii = text
	}
	ascii = nonAlphanumRegex.ReplaceAllString(ascii, "-")
	ascii = strings.Trim(ascii, "-")
	return strings.ToLower(ascii)
}
