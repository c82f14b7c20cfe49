package utils

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// TokenPunct is stripped from both ends of tokens before dictionary lookups.
const TokenPunct = ".,!?;:\"'"

// RulePunct is the narrower set the morphology and foreign-word rules strip.
const RulePunct = ".,!?;:"

// CleanToken lowercases tok and trims cutset from both ends.
func CleanToken(tok, cutset string) string {
	return strings.Trim(strings.ToLower(tok), cutset)
}

// ASCIILower lowercases A-Z only, so byte offsets stay aligned with s.
func ASCIILower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}

// WordAt returns the run of letters and digits around byte offset pos.
func WordAt(text string, pos int) string {
	if pos < 0 || pos > len(text) {
		return ""
	}
	start := pos
	for start > 0 {
		r, size := utf8.DecodeLastRuneInString(text[:start])
		if !isAlnum(r) {
			break
		}
		start -= size
	}
	end := pos
	for end < len(text) {
		r, size := utf8.DecodeRuneInString(text[end:])
		if !isAlnum(r) {
			break
		}
		end += size
	}
	return text[start:end]
}

func isAlnum(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

// Truncate shortens s to max runes and appends "..." when it was longer.
func Truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max]) + "..."
}

// RuneLen is utf8.RuneCountInString.
func RuneLen(s string) int {
	return utf8.RuneCountInString(s)
}

// CharOffset converts byte offset pos of text to a rune offset. Negative pos gives -1.
func CharOffset(text string, pos int) int {
	if pos < 0 {
		return -1
	}
	if pos > len(text) {
		pos = len(text)
	}
	return utf8.RuneCountInString(text[:pos])
}

// IndexChar is strings.Index counted in runes.
func IndexChar(text, sub string) int {
	return CharOffset(text, strings.Index(text, sub))
}
