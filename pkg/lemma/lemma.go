// Package lemma exposes the root of a Malagasy word by stripping one known prefix
// and one known suffix, longest match first.
//
// It is a heuristic segmentation: a coincidental substring that looks like an affix
// is stripped too.
package lemma

import (
	"errors"
	"sort"
	"strings"
	"unicode/utf8"
)

// MinRootLen is the minimum remainder length (exclusive) an affix must leave.
const MinRootLen = 2

var ErrEmptyWord = errors.New("empty word")

var (
	defaultPrefixes = []string{
		"maha", "mpam", "mpan", "fam", "fan", "mam", "man", "mpa",
		"ma", "mi", "fi", "mp", "f", "m", "tsy",
	}
	defaultSuffixes = []string{
		"nana", "itra", "ana", "ina", "na", "tra", "ka", "ny",
	}
)

// AffixTable holds prefixes and suffixes sorted by descending length.
// The order matters: a shorter affix can be a false match inside a longer one.
type AffixTable struct {
	prefixes []string
	suffixes []string
}

// NewAffixTable copies and sorts the given affixes longest first. Equal lengths keep
// their given order.
func NewAffixTable(prefixes, suffixes []string) AffixTable {
	return AffixTable{
		prefixes: byLengthDesc(prefixes),
		suffixes: byLengthDesc(suffixes),
	}
}

// DefaultAffixTable returns the standard Malagasy affix table.
func DefaultAffixTable() AffixTable {
	return NewAffixTable(defaultPrefixes, defaultSuffixes)
}

func byLengthDesc(in []string) []string {
	out := make([]string, 0, len(in))
	for _, a := range in {
		if a = strings.ToLower(strings.TrimSpace(a)); a != "" {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return len(out[i]) > len(out[j])
	})
	return out
}

// Prefixes returns a copy of the prefixes in match order.
func (t AffixTable) Prefixes() []string {
	return append([]string(nil), t.prefixes...)
}

// Suffixes returns a copy of the suffixes in match order.
func (t AffixTable) Suffixes() []string {
	return append([]string(nil), t.suffixes...)
}

// Lemma is the segmentation of one word.
type Lemma struct {
	Original string `json:"original" msgpack:"o"`
	Root     string `json:"root" msgpack:"r"`
	Prefix   string `json:"prefix" msgpack:"p"`
	Suffix   string `json:"suffix" msgpack:"s"`
}

// HasPrefix reports whether a prefix was stripped.
func (l Lemma) HasPrefix() bool { return l.Prefix != "" }

// HasSuffix reports whether a suffix was stripped.
func (l Lemma) HasSuffix() bool { return l.Suffix != "" }

// Lemmatizer splits words with an AffixTable.
type Lemmatizer struct {
	table AffixTable
}

// New returns a Lemmatizer using table.
func New(table AffixTable) *Lemmatizer {
	return &Lemmatizer{table: table}
}

// NewDefault returns a Lemmatizer with the standard affix table.
func NewDefault() *Lemmatizer {
	return New(DefaultAffixTable())
}

// Table returns the affix table.
func (lz *Lemmatizer) Table() AffixTable {
	return lz.table
}

// Lemmatize lowercases word and strips at most one prefix, then at most one suffix
// from what remains. Each affix must leave more than MinRootLen bytes.
func (lz *Lemmatizer) Lemmatize(word string) Lemma {
	w := strings.ToLower(strings.TrimSpace(word))
	out := Lemma{Original: w}

	for _, p := range lz.table.prefixes {
		if strings.HasPrefix(w, p) && runeLen(w) > runeLen(p)+MinRootLen {
			out.Prefix = p
			w = w[len(p):]
			break
		}
	}
	for _, s := range lz.table.suffixes {
		if strings.HasSuffix(w, s) && runeLen(w) > runeLen(s)+MinRootLen {
			out.Suffix = s
			w = w[:len(w)-len(s)]
			break
		}
	}
	out.Root = w
	return out
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// Word validates word before lemmatizing it.
func (lz *Lemmatizer) Word(word string) (Lemma, error) {
	if strings.TrimSpace(word) == "" {
		return Lemma{}, ErrEmptyWord
	}
	return lz.Lemmatize(word), nil
}

const tokenPunct = ".,!?;:\"'"

// LemmatizeText lemmatizes every whitespace token of text after stripping punctuation.
// Tokens that are only punctuation are skipped.
func (lz *Lemmatizer) LemmatizeText(text string) []Lemma {
	var out []Lemma
	for _, tok := range strings.Fields(text) {
		clean := strings.Trim(tok, tokenPunct)
		if clean == "" {
			continue
		}
		out = append(out, lz.Lemmatize(clean))
	}
	return out
}
