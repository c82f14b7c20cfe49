package fuzzy

import (
	"testing"

	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLexicon() *lexicon.Lexicon {
	return lexicon.FromWords(
		"aho", "ianao", "izy", "manao", "ahoana", "mandeha", "mihinana",
		"tsara", "ratsy", "trano", "rano", "sakafo", "daholo", "tsia",
	)
}

func TestRatio(t *testing.T) {
	testCases := []struct {
		a, b        string
		expected    float64
		description string
	}{
		{"tsara", "tsara", 100, "identical"},
		{"", "", 100, "both empty"},
		{"abc", "xyz", 0, "no overlap"},
		{"abc", "", 0, "one empty"},
		{"tsaara", "tsara", 200.0 * 5 / 11, "one insertion"},
		{"rano", "trano", 200.0 * 4 / 9, "prefix missing"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.InDelta(t, tc.expected, Ratio(tc.a, tc.b), 1e-9)
			assert.InDelta(t, Ratio(tc.a, tc.b), Ratio(tc.b, tc.a), 1e-9, "symmetric")
		})
	}
}

func TestRatioBounds(t *testing.T) {
	words := []string{"a", "manao", "mihinana", "zzz", "amin'ny", "ñy"}
	for _, a := range words {
		for _, b := range words {
			r := Ratio(a, b)
			assert.GreaterOrEqual(t, r, 0.0)
			assert.LessOrEqual(t, r, 100.0)
		}
	}
}

func TestKnownWordsAreCorrect(t *testing.T) {
	lex := testLexicon()
	m := NewMatcher(lex)
	for _, w := range lex.Words() {
		res := m.Suggest(w, DefaultThreshold, DefaultLimit)
		assert.True(t, res.Correct, w)
		assert.Empty(t, res.Suggestions, w)
	}
	res := m.Suggest("Manao,", DefaultThreshold, DefaultLimit)
	assert.True(t, res.Correct, "normalized before lookup")
}

func TestSuggestMisspelling(t *testing.T) {
	m := NewMatcher(testLexicon())

	res := m.Suggest("tsaara", DefaultThreshold, DefaultLimit)
	require.False(t, res.Correct)
	require.NotEmpty(t, res.Suggestions)
	assert.Equal(t, "tsara", res.BestMatch)
	assert.Equal(t, "tsara", res.Suggestions[0])
	assert.InDelta(t, 90.909, res.Confidence, 0.01)
}

func TestSuggestBelowThresholdKeepsConfidence(t *testing.T) {
	m := NewMatcher(testLexicon())

	res := m.Suggest("qwxz", DefaultThreshold, DefaultLimit)
	assert.False(t, res.Correct)
	assert.Empty(t, res.Suggestions)
	assert.Empty(t, res.BestMatch)
	assert.Less(t, res.Confidence, DefaultThreshold)
}

func TestSuggestEmptyLexicon(t *testing.T) {
	m := NewMatcher(lexicon.New())
	res := m.Suggest("tsara", DefaultThreshold, DefaultLimit)
	assert.False(t, res.Correct)
	assert.Zero(t, res.Confidence)
}

func TestRankOrderAndLimit(t *testing.T) {
	m := NewMatcher(testLexicon())

	all := m.Rank("rano", 0)
	assert.Len(t, all, testLexicon().Len())
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].Score, all[i].Score)
	}
	top := m.Rank("rano", 3)
	require.Len(t, top, 3)
	assert.Equal(t, "rano", top[0].Word)
	assert.Equal(t, all[:3], top)
}

func TestAbove(t *testing.T) {
	cands := []Candidate{{"tsara", 90.9}, {"tsia", 70}, {"ratsy", 40}}
	assert.Equal(t, []string{"tsara"}, Above(cands, 70))
	assert.Nil(t, Above(cands, 95))
}

func TestCorrectText(t *testing.T) {
	m := NewMatcher(testLexicon())
	text := "Tsaara daholo ianao tsaara"

	got := CorrectText(m, text)
	require.Len(t, got, 2)
	assert.Equal(t, "Tsaara", got[0].Original)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, []string{"tsara"}, got[0].Suggestions[:1])
	// second occurrence has its own offset because the case differs
	assert.Equal(t, len("Tsaara daholo ianao "), got[1].Position)
}

func TestCorrectTextRepeatedTokenReportsFirstOffset(t *testing.T) {
	m := NewMatcher(testLexicon())
	got := CorrectText(m, "tsaara aho tsaara")
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, 0, got[1].Position)
}

func TestCorrectTextCountsCharacters(t *testing.T) {
	m := NewMatcher(testLexicon())
	got := CorrectText(m, "tsara àà tsaara")
	require.Len(t, got, 2)
	assert.Equal(t, 6, got[0].Position)
	assert.Equal(t, "tsaara", got[1].Original)
	assert.Equal(t, 9, got[1].Position)
}

func TestDistance(t *testing.T) {
	assert.Equal(t, 1, Distance("tsaara", "tsara"))
	assert.Equal(t, 1, Distance("ahoana", "ahaona"), "adjacent transposition costs one edit")
	assert.Equal(t, 1, Distance("ahoan", "ahona"))
	assert.Equal(t, 0, Distance("aho", "aho"))
}

func TestCachedMatcher(t *testing.T) {
	cm, err := NewCachedMatcher(NewMatcher(testLexicon()), 8)
	require.NoError(t, err)

	var s Suggester = cm
	first := s.Suggest("tsaara", DefaultThreshold, DefaultLimit)
	assert.Equal(t, 1, cm.Len())
	second := s.Suggest("tsaara", DefaultThreshold, DefaultLimit)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, cm.Len())

	assert.True(t, s.Suggest("aho", DefaultThreshold, DefaultLimit).Correct)
	assert.Equal(t, 1, cm.Len(), "known words skip the cache")

	cm.Purge()
	assert.Zero(t, cm.Len())
}
