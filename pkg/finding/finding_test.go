package finding

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityOrdering(t *testing.T) {
	assert.Greater(t, int(SevError), int(SevWarning))
	assert.Greater(t, int(SevWarning), int(SevInfo))
}

func TestSeverityFromName(t *testing.T) {
	testCases := []struct {
		name        string
		expected    Severity
		description string
	}{
		{"error", SevError, "error label"},
		{"Warning", SevWarning, "mixed case"},
		{"info", SevInfo, "info label"},
		{"fatal", -1, "unknown label"},
	}
	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			assert.Equal(t, tc.expected, SeverityFromName(tc.name))
		})
	}
}

func TestFindingJSONUsesLabels(t *testing.T) {
	f := Finding{Position: 3, Kind: KindDictionary, Severity: SevWarning, Word: "tsaara"}
	data, err := json.Marshal(f)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"severity":"warning"`)
	assert.Contains(t, string(data), `"type":"dictionary"`)

	var back Finding
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, f, back)
}

func TestCountAndFilter(t *testing.T) {
	fs := []Finding{
		{Kind: KindPhonotactic, Severity: SevError},
		{Kind: KindDictionary, Severity: SevWarning},
		{Kind: KindSpelling, Severity: SevWarning},
		{Kind: KindLanguageMix, Severity: SevInfo},
	}
	assert.Equal(t, Counts{Errors: 1, Warnings: 2, Info: 1}, Count(fs))
	assert.Len(t, Filter(fs, KindDictionary), 1)
	assert.Empty(t, Filter(fs, KindSyntax))
}

func TestWithCategoryCopiesAlternatives(t *testing.T) {
	orig := Finding{Alternatives: []string{"tsara"}}
	tagged := orig.WithCategory(CategorySymbolic)
	tagged.Alternatives[0] = "ratsy"
	assert.Equal(t, "tsara", orig.Alternatives[0])
	assert.Equal(t, CategorySymbolic, tagged.Category)
	assert.Empty(t, orig.Category)
}
