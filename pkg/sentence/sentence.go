// Package sentence segments text into sentences and inspects their structure:
// verb position, connector and preposition use, and length.
package sentence

import (
	"errors"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var ErrEmptySentence = errors.New("empty sentence")

// Structure classifies a sentence.
type Structure string

const (
	Simple   Structure = "simple"
	Complex  Structure = "complex"
	Compound Structure = "compound"
)

// compoundWords is the length above which a sentence without connectors is compound.
const compoundWords = 10

var (
	defaultVerbPrefixes = []string{"mi", "ma", "man", "mam", "maha", "mpan", "mpam", "m"}
	defaultConjunctions = []string{"sy", "ary", "fa", "kanefa", "nefa", "satria", "raha", "na"}
	defaultPrepositions = []string{"amin'ny", "amin", "eo", "any", "aty", "avy", "ho", "ao"}
)

// Analysis describes one sentence. VerbPosition is -1 when no verb was found.
type Analysis struct {
	Sentence     string    `json:"sentence" msgpack:"s"`
	WordCount    int       `json:"word_count" msgpack:"wc"`
	HasVerb      bool      `json:"has_verb" msgpack:"hv"`
	VerbPosition int       `json:"verb_position" msgpack:"vp"`
	Conjunctions []string  `json:"conjunctions_found" msgpack:"cj"`
	Prepositions []string  `json:"prepositions_found" msgpack:"pp"`
	Structure    Structure `json:"structure_type" msgpack:"st"`
	VSO          bool      `json:"vso_order" msgpack:"vso"`
}

// HasConjunction reports whether any connector word was found.
func (a Analysis) HasConjunction() bool { return len(a.Conjunctions) > 0 }

// TextAnalysis aggregates the analyses of every sentence of a text.
type TextAnalysis struct {
	Text             string     `json:"text" msgpack:"t"`
	SentenceCount    int        `json:"sentence_count" msgpack:"sc"`
	Sentences        []Analysis `json:"sentences" msgpack:"s"`
	AverageWords     float64    `json:"average_words" msgpack:"aw"`
	VSOPercentage    float64    `json:"vso_percentage" msgpack:"vso"`
	ComplexSentences int        `json:"complex_sentences" msgpack:"cx"`
}

// Analyzer holds the word lists used to classify tokens.
type Analyzer struct {
	verbPrefixes []string
	conjunctions mapset.Set[string]
	prepositions mapset.Set[string]
}

// NewAnalyzer returns an Analyzer with the standard Malagasy word lists.
func NewAnalyzer() *Analyzer {
	return &Analyzer{
		verbPrefixes: defaultVerbPrefixes,
		conjunctions: mapset.NewThreadUnsafeSet(defaultConjunctions...),
		prepositions: mapset.NewThreadUnsafeSet(defaultPrepositions...),
	}
}

// IsVerb reports whether token looks like a verb: a verbal prefix followed by at
// least two more characters.
func (a *Analyzer) IsVerb(token string) bool {
	w := strings.ToLower(token)
	for _, p := range a.verbPrefixes {
		if strings.HasPrefix(w, p) && len(w) > len(p)+1 {
			return true
		}
	}
	return false
}

// Analyze inspects one sentence. Tokens are lowercased but keep their punctuation.
func (a *Analyzer) Analyze(sentence string) (Analysis, error) {
	words := strings.Fields(sentence)
	if len(words) == 0 {
		return Analysis{}, ErrEmptySentence
	}

	out := Analysis{
		Sentence:     sentence,
		WordCount:    len(words),
		VerbPosition: -1,
		Conjunctions: []string{},
		Prepositions: []string{},
		Structure:    Simple,
	}
	for i, word := range words {
		w := strings.ToLower(word)
		if !out.HasVerb && a.IsVerb(w) {
			out.HasVerb = true
			out.VerbPosition = i
		}
		if a.conjunctions.Contains(w) {
			out.Conjunctions = append(out.Conjunctions, w)
		}
		if a.prepositions.Contains(w) {
			out.Prepositions = append(out.Prepositions, w)
		}
	}

	out.VSO = out.VerbPosition == 0
	switch {
	case out.HasConjunction():
		out.Structure = Complex
	case out.WordCount > compoundWords:
		out.Structure = Compound
	}
	return out, nil
}

// Split cuts text on runs of '.', '!' and '?' and drops blank fragments.
func Split(text string) []string {
	parts := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?'
	})
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// AnalyzeText analyzes every sentence of text and aggregates the results.
// A text without sentences yields zero averages.
func (a *Analyzer) AnalyzeText(text string) TextAnalysis {
	sentences := Split(text)
	out := TextAnalysis{
		Text:          text,
		SentenceCount: len(sentences),
		Sentences:     make([]Analysis, 0, len(sentences)),
	}

	var words, vso int
	for _, s := range sentences {
		an, err := a.Analyze(s)
		if err != nil {
			continue
		}
		out.Sentences = append(out.Sentences, an)
		words += an.WordCount
		if an.VSO {
			vso++
		}
		if an.Structure != Simple {
			out.ComplexSentences++
		}
	}
	if n := len(sentences); n > 0 {
		out.AverageWords = float64(words) / float64(n)
		out.VSOPercentage = float64(vso) / float64(n) * 100
	}
	return out
}
