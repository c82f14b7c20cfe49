package rules

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/bastiangx/teny/pkg/finding"
	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var defaultTablesYAML []byte

// Cluster is a forbidden character sequence with its remediation hint.
type Cluster struct {
	Cluster    string `yaml:"cluster"`
	Suggestion string `yaml:"suggestion"`
}

// Suffix is a known suffix and what it usually marks.
type Suffix struct {
	Suffix  string `yaml:"suffix"`
	Meaning string `yaml:"meaning"`
}

// ForeignWord is a function word of another language.
type ForeignWord struct {
	Word     string `yaml:"word"`
	Language string `yaml:"language"`
}

// yamlTables is the YAML-serialized form of Tables.
type yamlTables struct {
	Clusters struct {
		Severity string    `yaml:"severity"`
		Entries  []Cluster `yaml:"entries"`
	} `yaml:"clusters"`
	Affixes struct {
		Severity string   `yaml:"severity"`
		MinRoot  int      `yaml:"min_root"`
		Prefixes []string `yaml:"prefixes"`
		Suffixes []Suffix `yaml:"suffixes"`
	} `yaml:"affixes"`
	Vowels struct {
		Severity string `yaml:"severity"`
		Letters  string `yaml:"letters"`
		MinRun   int    `yaml:"min_run"`
	} `yaml:"vowels"`
	RareInitial struct {
		Severity string `yaml:"severity"`
		Cluster  string `yaml:"cluster"`
	} `yaml:"rare_initial"`
	ForeignLetters struct {
		Severity string `yaml:"severity"`
		Letters  string `yaml:"letters"`
	} `yaml:"foreign_letters"`
	Dictionary struct {
		Severity     string  `yaml:"severity"`
		Alternatives int     `yaml:"alternatives"`
		MinScore     float64 `yaml:"min_score"`
	} `yaml:"dictionary"`
	ForeignWords struct {
		Severity string        `yaml:"severity"`
		Entries  []ForeignWord `yaml:"entries"`
	} `yaml:"foreign_words"`
}

// Tables are the immutable rule tables the engine evaluates.
type Tables struct {
	Clusters        []Cluster
	ClusterSeverity finding.Severity

	Prefixes       []string
	Suffixes       []Suffix
	MinRoot        int
	AffixSeverity  finding.Severity
	Vowels         string
	MinVowelRun    int
	VowelSeverity  finding.Severity
	RareInitial    string
	RareSeverity   finding.Severity
	ForeignLetters string
	LetterSeverity finding.Severity

	DictAlternatives int
	DictMinScore     float64
	DictSeverity     finding.Severity

	ForeignWords    []ForeignWord
	ForeignSeverity finding.Severity
}

// DefaultTables parses the embedded rule tables.
func DefaultTables() (Tables, error) {
	return ParseTables(defaultTablesYAML)
}

// ParseTables decodes and validates YAML rule tables.
func ParseTables(data []byte) (Tables, error) {
	var yt yamlTables
	if err := yaml.Unmarshal(data, &yt); err != nil {
		return Tables{}, fmt.Errorf("parse rule tables: %w", err)
	}
	return convertTables(yt)
}

func convertTables(yt yamlTables) (Tables, error) {
	var t Tables
	var err error

	sev := func(section, name string) finding.Severity {
		if err != nil {
			return 0
		}
		s := finding.SeverityFromName(name)
		if s < 0 {
			err = fmt.Errorf("%s: unknown severity %q", section, name)
		}
		return s
	}

	t.ClusterSeverity = sev("clusters", yt.Clusters.Severity)
	t.AffixSeverity = sev("affixes", yt.Affixes.Severity)
	t.VowelSeverity = sev("vowels", yt.Vowels.Severity)
	t.RareSeverity = sev("rare_initial", yt.RareInitial.Severity)
	t.LetterSeverity = sev("foreign_letters", yt.ForeignLetters.Severity)
	t.DictSeverity = sev("dictionary", yt.Dictionary.Severity)
	t.ForeignSeverity = sev("foreign_words", yt.ForeignWords.Severity)
	if err != nil {
		return Tables{}, err
	}

	for i, c := range yt.Clusters.Entries {
		c.Cluster = strings.ToLower(strings.TrimSpace(c.Cluster))
		if c.Cluster == "" {
			return Tables{}, fmt.Errorf("clusters[%d]: empty cluster", i)
		}
		t.Clusters = append(t.Clusters, c)
	}
	for i, p := range yt.Affixes.Prefixes {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			return Tables{}, fmt.Errorf("affixes.prefixes[%d]: empty prefix", i)
		}
		t.Prefixes = append(t.Prefixes, p)
	}
	for i, s := range yt.Affixes.Suffixes {
		s.Suffix = strings.ToLower(strings.TrimSpace(s.Suffix))
		if s.Suffix == "" {
			return Tables{}, fmt.Errorf("affixes.suffixes[%d]: empty suffix", i)
		}
		t.Suffixes = append(t.Suffixes, s)
	}
	t.MinRoot = yt.Affixes.MinRoot

	t.Vowels = strings.ToLower(yt.Vowels.Letters)
	t.MinVowelRun = yt.Vowels.MinRun
	if t.MinVowelRun < 2 {
		return Tables{}, fmt.Errorf("vowels.min_run must be >= 2, got %d", t.MinVowelRun)
	}
	t.RareInitial = strings.ToLower(yt.RareInitial.Cluster)
	t.ForeignLetters = strings.ToLower(yt.ForeignLetters.Letters)

	t.DictAlternatives = yt.Dictionary.Alternatives
	if t.DictAlternatives <= 0 {
		return Tables{}, fmt.Errorf("dictionary.alternatives must be > 0, got %d", t.DictAlternatives)
	}
	t.DictMinScore = yt.Dictionary.MinScore

	for i, fw := range yt.ForeignWords.Entries {
		fw.Word = strings.ToLower(strings.TrimSpace(fw.Word))
		if fw.Word == "" {
			return Tables{}, fmt.Errorf("foreign_words[%d]: empty word", i)
		}
		t.ForeignWords = append(t.ForeignWords, fw)
	}
	return t, nil
}
