package dom

import (
	"unicode"
	"unicode/utf8"
)

func isNameStart(r rune) bool {
	return r == ':' || r == '_' || unicode.IsLetter(r)
}

func isNameChar(r rune) bool {
	return isNameStart(r) || r == '-' || r == '.' || unicode.IsDigit(r) ||
		unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r)
}

// ValidName reports whether s matches the XML Name production, the
// check browsers apply to element and attribute names.
func ValidName(s string) bool {
	if s == "" {
		return false
	}
	first, size := utf8.DecodeRuneInString(s)
	if first == utf8.RuneError || !isNameStart(first) {
		return false
	}
	for _, r := range s[size:] {
		if r == utf8.RuneError || !isNameChar(r) {
			return false
		}
	}
	return true
}
