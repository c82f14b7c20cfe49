package sentence

import (
	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/finding"
)

const (
	shortWords = 2
	// verbless sentences longer than this are flagged
	verblessWords = 3
	// a non-initial verb is only reported above this length
	inversionWords = 4
	longWords      = 20

	// WordPreview is how many characters of a sentence a finding quotes.
	WordPreview = 30
)

// Validator turns sentence analyses into structural findings.
type Validator struct {
	analyzer *Analyzer
}

// NewValidator returns a Validator using a.
func NewValidator(a *Analyzer) *Validator {
	return &Validator{analyzer: a}
}

// Validate evaluates every structural rule against sentence. Findings quote the
// sentence, truncated, at position 0; callers place them in the full text.
// A blank sentence has no findings.
func (v *Validator) Validate(sentence string) []finding.Finding {
	an, err := v.analyzer.Analyze(sentence)
	if err != nil {
		return nil
	}
	return v.validate(an)
}

func (v *Validator) validate(an Analysis) []finding.Finding {
	word := utils.Truncate(an.Sentence, WordPreview)
	var out []finding.Finding

	if an.WordCount < shortWords {
		out = append(out, finding.Finding{
			Kind:       finding.KindStructure,
			Severity:   finding.SevInfo,
			Word:       word,
			Message:    "Very short sentence",
			Suggestion: "A complete sentence usually has at least a verb and a subject",
		})
	}
	if !an.HasVerb && an.WordCount > verblessWords {
		out = append(out, finding.Finding{
			Kind:       finding.KindStructure,
			Severity:   finding.SevWarning,
			Word:       word,
			Message:    "No verb detected in this sentence",
			Suggestion: "A Malagasy sentence usually starts with a verb (VSO order)",
		})
	}
	if an.HasVerb && !an.VSO && an.WordCount > inversionWords {
		out = append(out, finding.Finding{
			Kind:       finding.KindSyntax,
			Severity:   finding.SevInfo,
			Word:       word,
			Message:    "The verb is not in first position",
			Suggestion: "Standard Malagasy order is VSO (Verb-Subject-Object)",
		})
	}
	if an.WordCount > longWords && !an.HasConjunction() {
		out = append(out, finding.Finding{
			Kind:       finding.KindStructure,
			Severity:   finding.SevWarning,
			Word:       word,
			Message:    "Very long sentence without a conjunction",
			Suggestion: "Consider splitting it or joining its parts with conjunctions",
		})
	}
	return out
}
