package scanner

import "unicode"

// ===== Классификаторы =====

// IsSpace reports horizontal whitespace: space or tab.
func IsSpace(b byte) bool { return b == ' ' || b == '\t' }

// IsSpaceRune is IsSpace for runes.
func IsSpaceRune(r rune) bool { return r == ' ' || r == '\t' }

// IsNameStart reports whether r may begin a command name.
func IsNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsNameContinue reports whether r may continue a command name.
func IsNameContinue(r rune) bool {
	return r == '_' || r == '-' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsWordRune reports characters that glue to a preceding closing delimiter
// and therefore keep it from closing.
func IsWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// IsBlank reports whether line holds only spaces and tabs.
func IsBlank(line string) bool {
	for i := 0; i < len(line); i++ {
		if !IsSpace(line[i]) {
			return false
		}
	}
	return true
}
