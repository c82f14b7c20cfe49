// Package rules scans raw text against phonotactic, morphological, orthographic
// and language-mixing tables and reports typed findings.
//
// Every rule is stateless and independent. The engine runs them in a fixed order and
// concatenates their output without deduplication, so one token may be reported by
// several rules. Offsets count runes and come from first-occurrence search.
package rules

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/finding"
	"github.com/bastiangx/teny/pkg/fuzzy"
	aho "github.com/petar-dambovaliev/aho-corasick"
)

// Rule is one pure check over the whole text.
type Rule interface {
	Name() string
	Check(text string) []finding.Finding
}

// Engine evaluates an ordered RuleSet.
type Engine struct {
	rules []Rule
}

// NewEngine builds the canonical rule set from tables. The dictionary and foreign-word
// rules consult matcher; pass nil to leave both out.
func NewEngine(t Tables, matcher fuzzy.Suggester) *Engine {
	rs := []Rule{
		newClusterRule(t),
		&prefixRule{prefixes: t.Prefixes, minRoot: t.MinRoot, severity: t.AffixSeverity},
		&suffixRule{suffixes: t.Suffixes, minRoot: t.MinRoot, severity: t.AffixSeverity},
		&vowelRunRule{vowels: t.Vowels, minRun: t.MinVowelRun, severity: t.VowelSeverity},
		&rareInitialRule{cluster: t.RareInitial, severity: t.RareSeverity},
		newForeignLetterRule(t),
	}
	if matcher != nil {
		rs = append(rs,
			&dictionaryRule{matcher: matcher, limit: t.DictAlternatives, minScore: t.DictMinScore, severity: t.DictSeverity},
			newForeignWordRule(t, matcher),
		)
	}
	return &Engine{rules: rs}
}

// NewDefaultEngine builds an engine from the embedded tables.
func NewDefaultEngine(matcher fuzzy.Suggester) (*Engine, error) {
	t, err := DefaultTables()
	if err != nil {
		return nil, err
	}
	return NewEngine(t, matcher), nil
}

// Rules returns the rule names in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name()
	}
	return names
}

// Check runs every rule over text and concatenates the findings in rule order.
func (e *Engine) Check(text string) []finding.Finding {
	var out []finding.Finding
	for _, r := range e.rules {
		out = append(out, r.Check(text)...)
	}
	return out
}

// =============================================================================
// Forbidden clusters
// =============================================================================

type clusterRule struct {
	clusters  []Cluster
	automaton aho.AhoCorasick
	severity  finding.Severity
}

func newClusterRule(t Tables) *clusterRule {
	patterns := make([]string, len(t.Clusters))
	for i, c := range t.Clusters {
		patterns[i] = c.Cluster
	}
	builder := aho.NewAhoCorasickBuilder(aho.Opts{DFA: true})
	return &clusterRule{
		clusters:  t.Clusters,
		automaton: builder.Build(patterns),
		severity:  t.ClusterSeverity,
	}
}

func (r *clusterRule) Name() string { return "forbidden-cluster" }

type clusterHit struct {
	pattern, start int
}

func (r *clusterRule) Check(text string) []finding.Finding {
	if len(r.clusters) == 0 {
		return nil
	}
	// clusters are ASCII, lowering A-Z keeps offsets valid for text
	iter := r.automaton.IterOverlappingByte([]byte(utils.ASCIILower(text)))
	var hits []clusterHit
	for next := iter.Next(); next != nil; next = iter.Next() {
		m := *next
		hits = append(hits, clusterHit{pattern: m.Pattern(), start: m.Start()})
	}
	// report grouped by table order, then by position
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].pattern != hits[j].pattern {
			return hits[i].pattern < hits[j].pattern
		}
		return hits[i].start < hits[j].start
	})

	out := make([]finding.Finding, 0, len(hits))
	for _, h := range hits {
		c := r.clusters[h.pattern]
		out = append(out, finding.Finding{
			Position:   utils.CharOffset(text, h.start),
			Kind:       finding.KindPhonotactic,
			Severity:   r.severity,
			Word:       utils.WordAt(text, h.start),
			Message:    fmt.Sprintf("Forbidden combination '%s' found", c.Cluster),
			Suggestion: c.Suggestion,
		})
	}
	return out
}

// =============================================================================
// Affix plausibility
// =============================================================================

type prefixRule struct {
	prefixes []string
	minRoot  int
	severity finding.Severity
}

func (r *prefixRule) Name() string { return "prefix-root" }

func (r *prefixRule) Check(text string) []finding.Finding {
	var out []finding.Finding
	for _, tok := range strings.Fields(text) {
		w := utils.CleanToken(tok, utils.RulePunct)
		for _, p := range r.prefixes {
			if !strings.HasPrefix(w, p) || utils.RuneLen(w[len(p):]) >= r.minRoot {
				continue
			}
			out = append(out, finding.Finding{
				Position:   utils.IndexChar(text, tok),
				Kind:       finding.KindMorphology,
				Severity:   r.severity,
				Word:       tok,
				Message:    fmt.Sprintf("Prefix '%s' on a root that is too short", p),
				Suggestion: fmt.Sprintf("Check the word '%s': incomplete root", tok),
			})
		}
	}
	return out
}

type suffixRule struct {
	suffixes []Suffix
	minRoot  int
	severity finding.Severity
}

func (r *suffixRule) Name() string { return "suffix-root" }

func (r *suffixRule) Check(text string) []finding.Finding {
	var out []finding.Finding
	for _, tok := range strings.Fields(text) {
		w := utils.CleanToken(tok, utils.RulePunct)
		for _, s := range r.suffixes {
			if !strings.HasSuffix(w, s.Suffix) || utils.RuneLen(w[:len(w)-len(s.Suffix)]) >= r.minRoot {
				continue
			}
			out = append(out, finding.Finding{
				Position:   utils.IndexChar(text, tok),
				Kind:       finding.KindMorphology,
				Severity:   r.severity,
				Word:       tok,
				Message:    fmt.Sprintf("Suffix '%s' (%s) on a root that is too short", s.Suffix, s.Meaning),
				Suggestion: fmt.Sprintf("Check the word '%s': incomplete root", tok),
			})
		}
	}
	return out
}

// =============================================================================
// Vowel runs
// =============================================================================

type vowelRunRule struct {
	vowels   string
	minRun   int
	severity finding.Severity
}

func (r *vowelRunRule) Name() string { return "vowel-run" }

// Check reports every maximal run of minRun or more identical vowels, case-insensitive.
func (r *vowelRunRule) Check(text string) []finding.Finding {
	var out []finding.Finding
	lower := utils.ASCIILower(text)
	for i := 0; i < len(lower); {
		c := lower[i]
		if strings.IndexByte(r.vowels, c) < 0 {
			i++
			continue
		}
		j := i + 1
		for j < len(lower) && lower[j] == c {
			j++
		}
		if j-i >= r.minRun {
			out = append(out, finding.Finding{
				Position:   utils.CharOffset(text, i),
				Kind:       finding.KindOrthography,
				Severity:   r.severity,
				Word:       utils.WordAt(text, i),
				Message:    fmt.Sprintf("Triple vowel '%s' found", text[i:j]),
				Suggestion: "Check the spelling: uncommon in Malagasy",
			})
		}
		i = j
	}
	return out
}

// =============================================================================
// Rare word-initial cluster
// =============================================================================

type rareInitialRule struct {
	cluster  string
	severity finding.Severity
}

func (r *rareInitialRule) Name() string { return "rare-initial" }

func (r *rareInitialRule) Check(text string) []finding.Finding {
	if r.cluster == "" {
		return nil
	}
	var out []finding.Finding
	for _, tok := range strings.Fields(text) {
		w := strings.ToLower(tok)
		if !strings.HasPrefix(w, r.cluster) || utils.RuneLen(w) <= utils.RuneLen(r.cluster) {
			continue
		}
		out = append(out, finding.Finding{
			Position:   utils.IndexChar(text, tok),
			Kind:       finding.KindPhonotactic,
			Severity:   r.severity,
			Word:       tok,
			Message:    fmt.Sprintf("Word starting with '%s': '%s'", r.cluster, tok),
			Suggestion: fmt.Sprintf("Check it: '%s' at the start of a word is rare", r.cluster),
		})
	}
	return out
}

// =============================================================================
// Non-native letters
// =============================================================================

type foreignLetterRule struct {
	letters  string
	pattern  *regexp.Regexp
	severity finding.Severity
}

func newForeignLetterRule(t Tables) *foreignLetterRule {
	r := &foreignLetterRule{letters: t.ForeignLetters, severity: t.LetterSeverity}
	if t.ForeignLetters != "" {
		r.pattern = regexp.MustCompile(`(?i)[\p{L}\p{N}_]*[` + regexp.QuoteMeta(t.ForeignLetters) + `][\p{L}\p{N}_]*`)
	}
	return r
}

func (r *foreignLetterRule) Name() string { return "foreign-letter" }

func (r *foreignLetterRule) Check(text string) []finding.Finding {
	if r.pattern == nil {
		return nil
	}
	var out []finding.Finding
	for _, loc := range r.pattern.FindAllStringIndex(text, -1) {
		word := text[loc[0]:loc[1]]
		out = append(out, finding.Finding{
			Position:   utils.CharOffset(text, loc[0]),
			Kind:       finding.KindOrthography,
			Severity:   r.severity,
			Word:       word,
			Message:    fmt.Sprintf("Non-standard letter in '%s'", word),
			Suggestion: fmt.Sprintf("Check the spelling: %s are rare in Malagasy", joinLetters(r.letters)),
		})
	}
	return out
}

func joinLetters(letters string) string {
	parts := strings.Split(letters, "")
	if len(parts) < 2 {
		return letters
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " and " + parts[len(parts)-1]
}

// =============================================================================
// Dictionary cross-check
// =============================================================================

type dictionaryRule struct {
	matcher  fuzzy.Suggester
	limit    int
	minScore float64
	severity finding.Severity
}

func (r *dictionaryRule) Name() string { return "dictionary" }

// Check reports unknown tokens that have at least one candidate scoring above minScore.
func (r *dictionaryRule) Check(text string) []finding.Finding {
	var out []finding.Finding
	for _, tok := range strings.Fields(text) {
		w := utils.CleanToken(tok, utils.TokenPunct)
		if r.matcher.Known(w) {
			continue
		}
		alts := fuzzy.Above(r.matcher.Rank(w, r.limit), r.minScore)
		if len(alts) == 0 {
			continue
		}
		out = append(out, finding.Finding{
			Position:     utils.IndexChar(text, tok),
			Kind:         finding.KindDictionary,
			Severity:     r.severity,
			Word:         tok,
			Message:      fmt.Sprintf("Unknown word '%s'", tok),
			Suggestion:   "Suggestions: " + strings.Join(alts, ", "),
			Alternatives: alts,
		})
	}
	return out
}

// =============================================================================
// Foreign function words
// =============================================================================

type foreignWordRule struct {
	words    map[string]string
	matcher  fuzzy.Suggester
	severity finding.Severity
}

func newForeignWordRule(t Tables, matcher fuzzy.Suggester) *foreignWordRule {
	words := make(map[string]string, len(t.ForeignWords))
	for _, fw := range t.ForeignWords {
		words[fw.Word] = fw.Language
	}
	return &foreignWordRule{words: words, matcher: matcher, severity: t.ForeignSeverity}
}

func (r *foreignWordRule) Name() string { return "foreign-word" }

// Check flags closed-list function words of other languages unless the lexicon knows them.
func (r *foreignWordRule) Check(text string) []finding.Finding {
	var out []finding.Finding
	for _, tok := range strings.Fields(text) {
		w := utils.CleanToken(tok, utils.RulePunct)
		lang, ok := r.words[w]
		if !ok || r.matcher.Known(w) {
			continue
		}
		out = append(out, finding.Finding{
			Position:   utils.IndexChar(text, tok),
			Kind:       finding.KindLanguageMix,
			Severity:   r.severity,
			Word:       tok,
			Message:    fmt.Sprintf("Word '%s' looks %s", tok, lang),
			Suggestion: "Check whether this is intentional",
		})
	}
	return out
}
