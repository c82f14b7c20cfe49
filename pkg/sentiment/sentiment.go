// Package sentiment gives a coarse polarity for Malagasy text by counting which
// words of two fixed lists occur in it.
package sentiment

import (
	_ "embed"
	"fmt"
	"math"
	"strings"

	"github.com/bastiangx/teny/internal/utils"
	"gopkg.in/yaml.v3"
)

//go:embed data/lexicon.yaml
var defaultLexicon []byte

// Label is the overall polarity.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// Confidence levels.
const (
	High   = "high"
	Medium = "medium"
)

// previewLen is how much of the text a Result echoes back.
const previewLen = 100

// Result is the polarity of one text. Score is the share of the winning side, or 0.5
// when neither side wins.
type Result struct {
	Text       string  `json:"text" msgpack:"t"`
	Label      Label   `json:"sentiment" msgpack:"l"`
	Score      float64 `json:"score" msgpack:"s"`
	Positive   int     `json:"positive_words" msgpack:"p"`
	Negative   int     `json:"negative_words" msgpack:"n"`
	Confidence string  `json:"confidence" msgpack:"c"`
}

// Analyzer holds the polarity word lists.
type Analyzer struct {
	positive []string
	negative []string
}

type wordLists struct {
	Positive []string `yaml:"positive"`
	Negative []string `yaml:"negative"`
}

// New parses YAML word lists with positive and negative keys.
func New(data []byte) (*Analyzer, error) {
	var wl wordLists
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("parse sentiment lists: %w", err)
	}
	if len(wl.Positive) == 0 || len(wl.Negative) == 0 {
		return nil, fmt.Errorf("parse sentiment lists: both lists must be non-empty")
	}
	return &Analyzer{positive: lower(wl.Positive), negative: lower(wl.Negative)}, nil
}

// Default returns the analyzer over the embedded lists.
func Default() (*Analyzer, error) {
	return New(defaultLexicon)
}

func lower(words []string) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" {
			out = append(out, w)
		}
	}
	return out
}

// Analyze counts how many listed words appear anywhere in text, as substrings, and
// labels the text by the larger count.
func (a *Analyzer) Analyze(text string) Result {
	lowered := strings.ToLower(text)
	res := Result{
		Text:     utils.Truncate(lowered, previewLen),
		Positive: countIn(lowered, a.positive),
		Negative: countIn(lowered, a.negative),
		Label:    Neutral,
		Score:    0.5,
	}

	total := res.Positive + res.Negative
	switch {
	case total == 0:
	case res.Positive > res.Negative:
		res.Label = Positive
		res.Score = round2(float64(res.Positive) / float64(total))
	case res.Negative > res.Positive:
		res.Label = Negative
		res.Score = round2(float64(res.Negative) / float64(total))
	}

	res.Confidence = Medium
	if diff := res.Positive - res.Negative; diff > 2 || diff < -2 {
		res.Confidence = High
	}
	return res
}

func countIn(text string, words []string) int {
	n := 0
	for _, w := range words {
		if strings.Contains(text, w) {
			n++
		}
	}
	return n
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
