package glossary

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	testCases := []struct {
		word        string
		dir         Direction
		expected    string
		found       bool
		description string
	}{
		{"Manao", MalagasyToFrench, "faire", true, "verb, any case"},
		{" boky ", MalagasyToFrench, "livre", true, "noun with spaces"},
		{"veloma", MalagasyToFrench, "au revoir", true, "phrase value"},
		{"faire", FrenchToMalagasy, "manao", true, "reverse"},
		{"aller/partir", FrenchToMalagasy, "mandeha", true, "whole reverse key"},
		{"partir", FrenchToMalagasy, "mandeha", true, "one alternative"},
		{"nous (inclusif)", FrenchToMalagasy, "isika", true, "parenthesized"},
		{"trano", FrenchToMalagasy, "", false, "wrong direction"},
		{"xyz", MalagasyToFrench, "", false, "unknown word"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := g.Translate(tc.word, tc.dir)
			assert.Equal(t, tc.found, got.Found)
			assert.Equal(t, tc.expected, got.Translation)
			assert.Equal(t, tc.dir, got.Direction)
		})
	}
}

func TestEntriesKeepFileOrder(t *testing.T) {
	g, err := Default()
	require.NoError(t, err)

	assert.Equal(t, 53, g.Len())
	entries := g.Entries()
	assert.Equal(t, Entry{Malagasy: "manao", French: "faire", Group: "verbs"}, entries[0])
	assert.Equal(t, "veloma", entries[len(entries)-1].Malagasy)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, MalagasyToFrench, d)

	d, err = ParseDirection("FR-MG")
	require.NoError(t, err)
	assert.Equal(t, FrenchToMalagasy, d)

	_, err = ParseDirection("en-mg")
	assert.ErrorIs(t, err, ErrUnknownDirection)
}

func TestNewRejectsBadShape(t *testing.T) {
	_, err := New([]byte("- a\n- b\n"))
	assert.Error(t, err)
	_, err = New([]byte("verbs: [manao]\n"))
	assert.Error(t, err)
}
