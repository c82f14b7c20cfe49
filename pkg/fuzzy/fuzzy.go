// Package fuzzy ranks lexicon entries by string similarity to a possibly misspelled token.
//
// Similarity is the Indel ratio: 100 * 2*LCS(a, b) / (len(a) + len(b)), computed over runes.
// Identical strings score 100, strings without a common character score 0.
// Thresholding happens after ranking so callers can tell "no good match" from "no match".
package fuzzy

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/hbollon/go-edlib"
)

const (
	DefaultThreshold = 70.0
	DefaultLimit     = 5
)

// Candidate is one scored lexicon entry.
type Candidate struct {
	Word  string  `json:"word" msgpack:"w"`
	Score float64 `json:"score" msgpack:"s"`
}

// Result is the outcome of checking one token.
type Result struct {
	Word        string   `json:"word" msgpack:"w"`
	Correct     bool     `json:"correct" msgpack:"ok"`
	Suggestions []string `json:"suggestions" msgpack:"s"`
	BestMatch   string   `json:"best_match,omitempty" msgpack:"b,omitempty"`
	Confidence  float64  `json:"confidence" msgpack:"c"`
}

// Correction is an incorrect token found in running text.
type Correction struct {
	Position    int      `json:"position" msgpack:"pos"`
	Original    string   `json:"original" msgpack:"o"`
	Suggestions []string `json:"suggestions" msgpack:"s"`
}

// Suggester is what the checker needs from a matcher.
type Suggester interface {
	Known(token string) bool
	Rank(token string, limit int) []Candidate
	Suggest(token string, threshold float64, limit int) Result
}

// Matcher scores tokens against a read-only Lexicon.
type Matcher struct {
	lex *lexicon.Lexicon
}

// NewMatcher returns a Matcher over lex.
func NewMatcher(lex *lexicon.Lexicon) *Matcher {
	return &Matcher{lex: lex}
}

// Lexicon returns the lexicon the matcher reads.
func (m *Matcher) Lexicon() *lexicon.Lexicon {
	return m.lex
}

// Ratio returns the Indel similarity of a and b in [0,100].
func Ratio(a, b string) float64 {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	return 200 * float64(edlib.LCS(a, b)) / float64(total)
}

// Distance returns the optimal string alignment edit distance between a and b.
func Distance(a, b string) int {
	return edlib.OSADamerauLevenshteinDistance(a, b)
}

// Known reports whether token is already in the lexicon.
func (m *Matcher) Known(token string) bool {
	return m.lex.Contains(token)
}

// Rank scores token against every lexicon form and returns the best limit candidates,
// highest score first, ties broken alphabetically. limit <= 0 returns all.
func (m *Matcher) Rank(token string, limit int) []Candidate {
	w := lexicon.Normalize(token)
	forms := m.lex.Forms()
	cands := make([]Candidate, 0, len(forms))
	for _, f := range forms {
		cands = append(cands, Candidate{Word: f, Score: Ratio(w, f)})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		return cands[i].Score > cands[j].Score
	})
	if limit > 0 && len(cands) > limit {
		cands = cands[:limit]
	}
	return cands
}

// Suggest checks one token. Known tokens return Correct without scanning the lexicon.
// Otherwise the top limit candidates are kept and those under threshold dropped;
// Confidence is the best score before thresholding.
func (m *Matcher) Suggest(token string, threshold float64, limit int) Result {
	if m.Known(token) {
		return Result{Word: token, Correct: true, Suggestions: []string{}}
	}
	return suggestFromRanked(token, m.Rank(token, limit), threshold)
}

func suggestFromRanked(token string, ranked []Candidate, threshold float64) Result {
	res := Result{Word: token, Suggestions: []string{}}
	if len(ranked) > 0 {
		res.Confidence = ranked[0].Score
	}
	for _, c := range ranked {
		if c.Score >= threshold {
			res.Suggestions = append(res.Suggestions, c.Word)
		}
	}
	if len(res.Suggestions) > 0 {
		res.BestMatch = res.Suggestions[0]
	}
	return res
}

// Above returns the words of cands scoring strictly more than min.
func Above(cands []Candidate, min float64) []string {
	var out []string
	for _, c := range cands {
		if c.Score > min {
			out = append(out, c.Word)
		}
	}
	return out
}

// CorrectText runs Suggest over every whitespace token of text with default settings and
// returns the incorrect ones. Position is the first occurrence of the token in text, so a
// repeated token always reports its earliest offset.
func CorrectText(s Suggester, text string) []Correction {
	var out []Correction
	for _, tok := range strings.Fields(text) {
		res := s.Suggest(tok, DefaultThreshold, DefaultLimit)
		if res.Correct {
			continue
		}
		out = append(out, Correction{
			Position:    utils.IndexChar(text, tok),
			Original:    tok,
			Suggestions: res.Suggestions,
		})
	}
	return out
}
