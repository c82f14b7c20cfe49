package lemma

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableIsLongestFirst(t *testing.T) {
	table := DefaultAffixTable()
	for _, list := range [][]string{table.Prefixes(), table.Suffixes()} {
		for i := 1; i < len(list); i++ {
			assert.GreaterOrEqual(t, len(list[i-1]), len(list[i]), list)
		}
	}
	assert.Equal(t, "maha", table.Prefixes()[0])
	assert.Equal(t, "nana", table.Suffixes()[0])
}

func TestNewAffixTableSortsInput(t *testing.T) {
	table := NewAffixTable([]string{"m", "ma", "maha", " MI "}, []string{"na", "ana", ""})
	assert.Equal(t, []string{"maha", "ma", "mi", "m"}, table.Prefixes())
	assert.Equal(t, []string{"ana", "na"}, table.Suffixes())
}

func TestLemmatize(t *testing.T) {
	lz := NewDefault()
	testCases := []struct {
		input       string
		root        string
		prefix      string
		suffix      string
		description string
	}{
		{"mihinana", "hin", "mi", "ana", "prefix and suffix"},
		{"mandeha", "deha", "man", "", "three letter prefix"},
		{"mahafantatra", "fanta", "maha", "tra", "longest prefix wins"},
		{"fanomezana", "omez", "fan", "ana", "noun prefix"},
		{"mitô", "itô", "m", "", "accented letter counts as one toward the root"},
		{"mitôna", "tôna", "mi", "", "suffix would leave a two letter root"},
		{"mamakiana", "aki", "mam", "ana", "mam before ma"},
		{"Manao", "nao", "ma", "", "man would leave two letters"},
		{"aho", "aho", "", "", "no affix"},
		{"ma", "ma", "", "", "short word untouched"},
		{"tsyfantatra", "fanta", "tsy", "tra", "negation prefix"},
		{"", "", "", "", "empty"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := lz.Lemmatize(tc.input)
			assert.Equal(t, tc.root, got.Root)
			assert.Equal(t, tc.prefix, got.Prefix)
			assert.Equal(t, tc.suffix, got.Suffix)
			assert.Equal(t, tc.prefix != "", got.HasPrefix())
			assert.Equal(t, tc.suffix != "", got.HasSuffix())
		})
	}
}

func TestLemmatizeRootNeverEmpty(t *testing.T) {
	lz := NewDefault()
	words := []string{
		"mam", "mama", "mamak", "fanana", "mpanana", "mitra", "fiana",
		"ahoana", "tsyny", "mpampianatra", "fitiavana", "manana",
	}
	for _, w := range words {
		got := lz.Lemmatize(w)
		if len(w) > 2 {
			assert.NotEmpty(t, got.Root, w)
		}
		assert.Equal(t, got.Original, got.Prefix+got.Root+got.Suffix, "reconstructs %s", w)
	}
}

func TestLongestPrefixChosen(t *testing.T) {
	lz := NewDefault()
	got := lz.Lemmatize("mahalala")
	assert.Equal(t, "maha", got.Prefix, "4-letter prefix beats ma")
}

func TestWordRejectsEmpty(t *testing.T) {
	lz := NewDefault()
	_, err := lz.Word("   ")
	assert.ErrorIs(t, err, ErrEmptyWord)

	got, err := lz.Word("mihinana")
	require.NoError(t, err)
	assert.Equal(t, "hin", got.Root)
}

func TestLemmatizeText(t *testing.T) {
	lz := NewDefault()
	got := lz.LemmatizeText("Mihinana sakafo aho ... !")
	require.Len(t, got, 3)
	assert.Equal(t, "mihinana", got[0].Original)
	assert.Equal(t, "sakafo", got[1].Root)
	assert.Equal(t, "aho", got[2].Root)
}
