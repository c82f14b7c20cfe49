// Package finding defines the values every analysis component reports.
package finding

import (
	"fmt"
	"strings"
)

// Severity orders findings for scoring. Higher is worse.
type Severity int

const (
	SevInfo    Severity = 0
	SevWarning Severity = 1
	SevError   Severity = 2
)

// String returns the wire label of the severity.
func (s Severity) String() string {
	switch s {
	case SevInfo:
		return "info"
	case SevWarning:
		return "warning"
	case SevError:
		return "error"
	default:
		return "unknown"
	}
}

// SeverityFromName maps a label to its Severity.
// Returns -1 for unknown names.
func SeverityFromName(name string) Severity {
	switch strings.ToLower(name) {
	case "info":
		return SevInfo
	case "warning":
		return SevWarning
	case "error":
		return SevError
	default:
		return -1
	}
}

// MarshalText keeps severities readable in JSON and msgpack payloads.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a severity label.
func (s *Severity) UnmarshalText(b []byte) error {
	v := SeverityFromName(string(b))
	if v < 0 {
		return fmt.Errorf("unknown severity %q", b)
	}
	*s = v
	return nil
}

// Kind tells which check produced a finding.
type Kind string

const (
	KindPhonotactic Kind = "phonotactic"
	KindMorphology  Kind = "morphology"
	KindOrthography Kind = "orthography"
	KindDictionary  Kind = "dictionary"
	KindSyntax      Kind = "syntax"
	KindStructure   Kind = "structure"
	KindLanguageMix Kind = "language-mix"
	KindSpelling    Kind = "spelling"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindPhonotactic, KindMorphology, KindOrthography, KindDictionary,
		KindSyntax, KindStructure, KindLanguageMix, KindSpelling:
		return true
	}
	return false
}

// Category groups findings by the stage that emitted them.
type Category string

const (
	CategorySymbolic    Category = "symbolic"
	CategoryAlgorithmic Category = "algorithmic"
	CategoryStructure   Category = "structure"
)

// Categories lists every category in display order.
var Categories = []Category{CategorySymbolic, CategoryAlgorithmic, CategoryStructure}

// Finding is one reported issue. Treat it as an immutable value.
type Finding struct {
	Position     int      `json:"position" msgpack:"pos"`
	Kind         Kind     `json:"type" msgpack:"k"`
	Severity     Severity `json:"severity" msgpack:"sev"`
	Word         string   `json:"word" msgpack:"w"`
	Message      string   `json:"message" msgpack:"m"`
	Suggestion   string   `json:"suggestion" msgpack:"s"`
	Alternatives []string `json:"alternatives,omitempty" msgpack:"alt,omitempty"`
	Category     Category `json:"category,omitempty" msgpack:"cat,omitempty"`
}

// WithCategory returns a copy of f tagged with c.
func (f Finding) WithCategory(c Category) Finding {
	f.Category = c
	if f.Alternatives != nil {
		f.Alternatives = append([]string(nil), f.Alternatives...)
	}
	return f
}

// Counts tallies findings by severity.
type Counts struct {
	Errors   int `json:"errors" msgpack:"errors"`
	Warnings int `json:"warnings" msgpack:"warnings"`
	Info     int `json:"info" msgpack:"info"`
}

// Count tallies fs by severity.
func Count(fs []Finding) Counts {
	var c Counts
	for _, f := range fs {
		switch f.Severity {
		case SevError:
			c.Errors++
		case SevWarning:
			c.Warnings++
		case SevInfo:
			c.Info++
		}
	}
	return c
}

// Filter returns the findings of kind k, in order.
func Filter(fs []Finding, k Kind) []Finding {
	var out []Finding
	for _, f := range fs {
		if f.Kind == k {
			out = append(out, f)
		}
	}
	return out
}
