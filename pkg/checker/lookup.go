package checker

import (
	"strings"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/fuzzy"
	"github.com/bastiangx/teny/pkg/lemma"
	"github.com/bastiangx/teny/pkg/ngram"
)

// WordInfo gathers what the pipeline knows about one word. Distance is the edit
// distance to BestMatch, 0 for known words and -1 when nothing matched.
// Frequency is the corpus count from the model, 0 without one.
type WordInfo struct {
	Word        string      `json:"word" msgpack:"w"`
	Exists      bool        `json:"exists" msgpack:"ok"`
	Definition  string      `json:"definition,omitempty" msgpack:"d,omitempty"`
	Lemma       lemma.Lemma `json:"lemmatization" msgpack:"l"`
	Suggestions []string    `json:"suggestions" msgpack:"s"`
	BestMatch   string      `json:"best_match,omitempty" msgpack:"b,omitempty"`
	Distance    int         `json:"distance" msgpack:"dist"`
	Frequency   int         `json:"frequency" msgpack:"f"`
}

// WordInfo looks word up, lemmatizes it and suggests corrections when unknown.
func (c *Checker) WordInfo(word string) (WordInfo, error) {
	clean := utils.CleanToken(word, utils.TokenPunct)
	lm, err := c.lemmatizer.Word(clean)
	if err != nil {
		return WordInfo{}, err
	}

	info := WordInfo{
		Word:        word,
		Exists:      c.lex.Contains(clean),
		Lemma:       lm,
		Suggestions: []string{},
		Distance:    -1,
	}
	info.Definition, _ = c.lex.Define(clean)
	if c.model != nil {
		info.Frequency = c.model.Frequency(clean)
	}

	if info.Exists {
		info.BestMatch = clean
		info.Distance = 0
		return info, nil
	}
	res := c.matcher.Suggest(clean, c.opts.Threshold, c.opts.Limit)
	info.Suggestions = res.Suggestions
	if res.BestMatch != "" {
		info.BestMatch = res.BestMatch
		info.Distance = fuzzy.Distance(clean, res.BestMatch)
	}
	return info, nil
}

// Suggest checks a single token with the configured threshold and limit.
func (c *Checker) Suggest(token string) fuzzy.Result {
	return c.matcher.Suggest(token, c.opts.Threshold, c.opts.Limit)
}

// Autocomplete completes prefix from the model, or from the sorted lexicon when
// no model is loaded. Prefixes shorter than MinPrefix yield nothing.
func (c *Checker) Autocomplete(prefix string, k int) []string {
	prefix = strings.TrimSpace(prefix)
	if utils.RuneLen(prefix) < c.opts.MinPrefix || prefix == "" {
		return []string{}
	}
	var out []string
	if c.model == nil {
		out = c.lex.WithPrefix(prefix, k)
	} else {
		out = c.model.Autocomplete(prefix, k)
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// Predict ranks the likely next words after context. Without a model it returns
// an empty list.
func (c *Checker) Predict(context []string, k int) ([]ngram.Prediction, error) {
	if len(context) == 0 {
		return nil, ngram.ErrEmptyContext
	}
	if c.model == nil {
		return []ngram.Prediction{}, nil
	}
	return c.model.PredictNext(context, k)
}
