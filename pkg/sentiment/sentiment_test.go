package sentiment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyze(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)

	testCases := []struct {
		text        string
		label       Label
		score       float64
		positive    int
		negative    int
		confidence  string
		description string
	}{
		{"Faly aho androany", Positive, 1, 1, 0, Medium, "one positive word"},
		{"Malahelo aho fa marary", Negative, 1, 0, 2, Medium, "two negative words"},
		{"Manao ahoana", Neutral, 0.5, 0, 0, Medium, "no polar words"},
		{"tsara fa tsy tsara", Neutral, 0.5, 1, 1, Medium, "tie is neutral"},
		{"faly sy sambatra, tsara sy mazava", Positive, 1, 4, 0, High, "clear margin"},
		{"faly sy tsara fa diso", Positive, 0.67, 2, 1, Medium, "rounded share"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			got := a.Analyze(tc.text)
			assert.Equal(t, tc.label, got.Label)
			assert.InDelta(t, tc.score, got.Score, 1e-9)
			assert.Equal(t, tc.positive, got.Positive)
			assert.Equal(t, tc.negative, got.Negative)
			assert.Equal(t, tc.confidence, got.Confidence)
		})
	}
}

func TestAnalyzeEchoesTruncatedText(t *testing.T) {
	a, err := Default()
	require.NoError(t, err)

	long := strings.Repeat("a", 150)
	assert.Equal(t, strings.Repeat("a", 100)+"...", a.Analyze(long).Text)
	assert.Equal(t, "faly aho", a.Analyze("FALY aho").Text)
}

func TestNewRejectsBadLists(t *testing.T) {
	_, err := New([]byte("positive: [faly]"))
	assert.Error(t, err)
	_, err = New([]byte("positive: ["))
	assert.Error(t, err)
}
