package rules

import (
	"strings"
	"testing"

	"github.com/bastiangx/teny/pkg/finding"
	"github.com/bastiangx/teny/pkg/fuzzy"
	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T, words ...string) *Engine {
	t.Helper()
	tables, err := DefaultTables()
	require.NoError(t, err)
	if words == nil {
		return NewEngine(tables, nil)
	}
	return NewEngine(tables, fuzzy.NewMatcher(lexicon.FromWords(words...)))
}

func TestDefaultTables(t *testing.T) {
	tables, err := DefaultTables()
	require.NoError(t, err)
	assert.Len(t, tables.Clusters, 5)
	assert.Equal(t, "nb", tables.Clusters[0].Cluster)
	assert.Equal(t, finding.SevError, tables.ClusterSeverity)
	assert.Equal(t, 2, tables.MinRoot)
	assert.Equal(t, 3, tables.MinVowelRun)
	assert.Equal(t, "nk", tables.RareInitial)
	assert.Equal(t, "wqx", tables.ForeignLetters)
	assert.Equal(t, 3, tables.DictAlternatives)
	assert.Equal(t, finding.SevInfo, tables.ForeignSeverity)
}

func TestParseTablesErrors(t *testing.T) {
	testCases := []struct {
		yaml        string
		description string
	}{
		{"clusters: [", "broken yaml"},
		{"clusters: {severity: fatal}", "unknown severity"},
		{`clusters: {severity: error}
affixes: {severity: warning}
vowels: {severity: warning, min_run: 1}
rare_initial: {severity: warning}
foreign_letters: {severity: warning}
dictionary: {severity: warning, alternatives: 3}
foreign_words: {severity: info}`, "vowel run too short"},
		{`clusters: {severity: error}
affixes: {severity: warning}
vowels: {severity: warning, min_run: 3}
rare_initial: {severity: warning}
foreign_letters: {severity: warning}
dictionary: {severity: warning, alternatives: 0}
foreign_words: {severity: info}`, "no alternatives"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			_, err := ParseTables([]byte(tc.yaml))
			assert.Error(t, err)
		})
	}
}

func TestRuleOrder(t *testing.T) {
	assert.Equal(t, []string{
		"forbidden-cluster", "prefix-root", "suffix-root",
		"vowel-run", "rare-initial", "foreign-letter",
	}, newTestEngine(t).Rules())

	withDict := newTestEngine(t, "tsara")
	assert.Len(t, withDict.Rules(), 8)
	assert.Equal(t, "foreign-word", withDict.Rules()[7])
}

func TestForbiddenClusters(t *testing.T) {
	got := newTestEngine(t).Check("nbp nb")
	require.Len(t, got, 3)

	assert.Equal(t, 0, got[0].Position)
	assert.Equal(t, "nbp", got[0].Word)
	assert.Equal(t, 4, got[1].Position)
	assert.Equal(t, "nb", got[1].Word)
	assert.Equal(t, 1, got[2].Position)
	assert.Contains(t, got[2].Message, "'bp'")
	for _, f := range got {
		assert.Equal(t, finding.KindPhonotactic, f.Kind)
		assert.Equal(t, finding.SevError, f.Severity)
	}
}

func TestClusterIsCaseInsensitive(t *testing.T) {
	got := newTestEngine(t).Check("Ny NBA")
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Position)
	assert.Equal(t, "NBA", got[0].Word)
	assert.Equal(t, "Use 'mb' instead", got[0].Suggestion)
}

func TestAffixPlausibility(t *testing.T) {
	testCases := []struct {
		text        string
		prefixes    int
		suffixes    int
		description string
	}{
		{"mia", 1, 0, "mi leaves one letter"},
		{"mika", 0, 0, "two letter root is fine"},
		{"Fana.", 1, 1, "fan and ana both too greedy"},
		{"mihinana", 0, 0, "long word"},
		{"ahoana", 0, 0, "suffix leaves a real root"},
	}
	e := newTestEngine(t)
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := finding.Filter(e.Check(tc.text), finding.KindMorphology)
			var p, s int
			for _, f := range got {
				assert.Equal(t, finding.SevWarning, f.Severity)
				if strings.HasPrefix(f.Message, "Prefix") {
					p++
				} else {
					s++
				}
			}
			assert.Equal(t, tc.prefixes, p)
			assert.Equal(t, tc.suffixes, s)
		})
	}
}

func TestVowelRuns(t *testing.T) {
	e := newTestEngine(t)

	got := e.Check("Eee aaaa oo")
	require.Len(t, got, 2)
	assert.Equal(t, 0, got[0].Position)
	assert.Contains(t, got[0].Message, "'Eee'")
	assert.Equal(t, "Eee", got[0].Word)
	assert.Equal(t, 4, got[1].Position)
	assert.Equal(t, finding.KindOrthography, got[1].Kind)

	assert.Empty(t, e.Check("vaovao"))
}

func TestRareInitial(t *testing.T) {
	e := newTestEngine(t)

	got := e.Check("Nkomba vaovao")
	require.Len(t, got, 1)
	assert.Equal(t, finding.KindPhonotactic, got[0].Kind)
	assert.Equal(t, finding.SevWarning, got[0].Severity)
	assert.Equal(t, "Nkomba", got[0].Word)
	assert.Equal(t, 0, got[0].Position)

	assert.Empty(t, e.Check("nk"), "bare cluster is not a word start")
}

func TestForeignLettersAndVowels(t *testing.T) {
	got := newTestEngine(t).Check("Maxime aaa")
	require.Len(t, got, 2)

	assert.Equal(t, finding.KindOrthography, got[0].Kind)
	assert.Equal(t, 7, got[0].Position)
	assert.Equal(t, "aaa", got[0].Word)

	assert.Equal(t, 0, got[1].Position)
	assert.Equal(t, "Maxime", got[1].Word)
	assert.Contains(t, got[1].Suggestion, "w, q and x")
}

func TestPositionsCountCharacters(t *testing.T) {
	testCases := []struct {
		text        string
		kind        finding.Kind
		position    int
		word        string
		description string
	}{
		{"Tsy nahità nbiana", finding.KindPhonotactic, 11, "nbiana", "cluster after an accented word"},
		{"Tonga àry ôwa", finding.KindOrthography, 10, "ôwa", "foreign letter in an accented word"},
		{"à aaa", finding.KindOrthography, 2, "aaa", "vowel run after an accented letter"},
	}
	e := newTestEngine(t)
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := finding.Filter(e.Check(tc.text), tc.kind)
			require.Len(t, got, 1)
			assert.Equal(t, tc.position, got[0].Position)
			assert.Equal(t, tc.word, got[0].Word)
		})
	}
}

func TestDictionaryCrossCheck(t *testing.T) {
	e, err := NewDefaultEngine(fuzzy.NewMatcher(lexicon.NewBase()))
	require.NoError(t, err)

	got := e.Check("Tsaara daholo")
	require.Len(t, got, 1)
	f := got[0]
	assert.Equal(t, finding.KindDictionary, f.Kind)
	assert.Equal(t, finding.SevWarning, f.Severity)
	assert.Equal(t, "Tsaara", f.Word)
	assert.Equal(t, 0, f.Position)
	require.NotEmpty(t, f.Alternatives)
	assert.Equal(t, "tsara", f.Alternatives[0])
	assert.LessOrEqual(t, len(f.Alternatives), 3)
	assert.Equal(t, "Unknown word 'Tsaara'", f.Message)

	assert.Empty(t, e.Check("Manao ahoana ianao?"))
}

func TestDictionarySkipsHopelessTokens(t *testing.T) {
	got := newTestEngine(t, "tsara").Check("xyz")
	assert.Empty(t, finding.Filter(got, finding.KindDictionary))
}

func TestForeignWords(t *testing.T) {
	got := newTestEngine(t, "tsara").Check("Le livre est nbien")
	require.Len(t, got, 2)

	assert.Equal(t, finding.KindPhonotactic, got[0].Kind)
	assert.Equal(t, 13, got[0].Position)
	assert.Equal(t, "nbien", got[0].Word)

	assert.Equal(t, finding.KindLanguageMix, got[1].Kind)
	assert.Equal(t, finding.SevInfo, got[1].Severity)
	assert.Equal(t, "Word 'Le' looks French", got[1].Message)
	assert.Equal(t, 0, got[1].Position)
}

func TestForeignWordKnownToLexicon(t *testing.T) {
	got := newTestEngine(t, "la").Check("la the")
	mix := finding.Filter(got, finding.KindLanguageMix)
	require.Len(t, mix, 1)
	assert.Equal(t, "the", mix[0].Word)
	assert.Contains(t, mix[0].Message, "English")
}

func TestCheckIsPure(t *testing.T) {
	e := newTestEngine(t, "tsara")
	text := "Nbp aaa le Tsaara"
	assert.Equal(t, e.Check(text), e.Check(text))
}
