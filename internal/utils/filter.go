package utils

import (
	"unicode"
)

// IsSeparator reports runes allowed inside a Malagasy word besides letters:
// the apostrophe of amin'ny and the hyphen of an-tsena.
func IsSeparator(r rune) bool {
	return r == '\'' || r == '-' || r == '’'
}

// IsOnlyNumbers checks if a string consists entirely of numeric digits
func IsOnlyNumbers(s string) bool {
	if len(s) == 0 {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ContainsSpecialChars checks for anything that is not a letter, digit or separator.
func ContainsSpecialChars(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && !IsSeparator(r) {
			return true
		}
	}
	return false
}

// IsValidInput checks if a word or prefix is worth looking up.
// Numbers, special characters and runs like "aaaa" are rejected.
func IsValidInput(s string) bool {
	if len(s) == 0 {
		return false
	}
	if IsOnlyNumbers(s) {
		return false
	}
	if ContainsSpecialChars(s) {
		return false
	}
	if IsRepetitive(s) {
		return false
	}
	return true
}

// IsRepetitive checks for one rune repeated 4 or more times. Three is allowed
// so that a triple vowel still reaches the checker.
func IsRepetitive(s string) bool {
	runes := []rune(s)
	if len(runes) <= 3 {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.ToLower(r) != unicode.ToLower(runes[0]) {
			return false
		}
	}
	return true
}
