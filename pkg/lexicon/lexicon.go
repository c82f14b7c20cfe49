/*
Package lexicon owns the set of known Malagasy word forms and their optional definitions.

A Lexicon answers membership for the spelling and rule checks and is the candidate
pool for fuzzy matching. It is filled once at startup by merging sources additively:

 1. the embedded base list (pronouns, common verbs, nouns, numbers ...)
 2. an optional JSON definitions file: {"word": "definition", ...}
 3. an optional plain word list, one word per line

After loading it is read-only; Add is the single mutation path and callers must
serialize it themselves if it is ever used while requests are being served.
*/
package lexicon

import (
	"sort"
	"strings"
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
)

// punctuation stripped from both ends of a token before lookup
const punctuation = ".,!?;:\"'"

// Normalize lowercases a token and strips surrounding whitespace and punctuation.
func Normalize(token string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(token)), punctuation)
}

// Lexicon is a set of normalized word forms plus a definitions map.
type Lexicon struct {
	forms       mapset.Set[string]
	definitions map[string]string
	sorted      []string
	mu          sync.RWMutex
}

// Entry is one word with its optional definition.
type Entry struct {
	Word       string `msgpack:"w" json:"word"`
	Definition string `msgpack:"d,omitempty" json:"definition,omitempty"`
}

// Stats summarizes the lexicon.
type Stats struct {
	TotalWords           int     `json:"total_words" msgpack:"total_words"`
	WordsWithDefinitions int     `json:"words_with_definitions" msgpack:"words_with_definitions"`
	CoveragePercentage   float64 `json:"coverage_percentage" msgpack:"coverage_percentage"`
}

// New returns an empty Lexicon.
func New() *Lexicon {
	return &Lexicon{
		forms:       mapset.NewThreadUnsafeSet[string](),
		definitions: make(map[string]string),
	}
}

// FromWords builds a Lexicon holding words, without definitions.
func FromWords(words ...string) *Lexicon {
	lex := New()
	for _, w := range words {
		lex.Add(w, "")
	}
	return lex
}

// Add inserts word, normalized like lookups are, and, when non-empty, its definition.
// Words that normalize to nothing are ignored.
func (l *Lexicon) Add(word, definition string) bool {
	w := Normalize(word)
	if w == "" {
		return false
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	added := l.forms.Add(w)
	if added {
		l.sorted = nil
	}
	if definition != "" {
		l.definitions[w] = definition
	}
	return added
}

// Contains reports whether token, once normalized, is a known form.
func (l *Lexicon) Contains(token string) bool {
	w := Normalize(token)
	if w == "" {
		return false
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.forms.Contains(w)
}

// Define returns the definition of token, if any.
func (l *Lexicon) Define(token string) (string, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	def, ok := l.definitions[Normalize(token)]
	return def, ok
}

// Len returns the number of forms.
func (l *Lexicon) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.forms.Cardinality()
}

// Forms returns every form in sorted order. The slice is shared and must not be modified.
func (l *Lexicon) Forms() []string {
	l.mu.RLock()
	s := l.sorted
	l.mu.RUnlock()
	if s != nil {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if l.sorted == nil {
		words := l.forms.ToSlice()
		sort.Strings(words)
		l.sorted = words
	}
	return l.sorted
}

// Words returns a copy of every form in sorted order.
func (l *Lexicon) Words() []string {
	return append([]string(nil), l.Forms()...)
}

// WithPrefix returns the sorted forms starting with prefix (lowercased).
func (l *Lexicon) WithPrefix(prefix string, limit int) []string {
	p := strings.ToLower(prefix)
	var out []string
	for _, w := range l.Forms() {
		if strings.HasPrefix(w, p) {
			out = append(out, w)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}

// Entries returns every form with its definition, sorted by word.
func (l *Lexicon) Entries() []Entry {
	words := l.Forms()
	l.mu.RLock()
	defer l.mu.RUnlock()
	entries := make([]Entry, len(words))
	for i, w := range words {
		entries[i] = Entry{Word: w, Definition: l.definitions[w]}
	}
	return entries
}

// Merge adds every entry of other into l.
func (l *Lexicon) Merge(other *Lexicon) int {
	added := 0
	for _, e := range other.Entries() {
		if l.Add(e.Word, e.Definition) {
			added++
		}
	}
	return added
}

// Stats reports the form count and definition coverage.
func (l *Lexicon) Stats() Stats {
	l.mu.RLock()
	defer l.mu.RUnlock()
	total := l.forms.Cardinality()
	st := Stats{
		TotalWords:           total,
		WordsWithDefinitions: len(l.definitions),
	}
	if total > 0 {
		st.CoveragePercentage = float64(len(l.definitions)) / float64(total) * 100
	}
	return st
}
