// Package checker runs the full analysis pipeline over one text: symbolic rules,
// spelling, sentence structure and lemmas, then scores the result.
//
// A Checker only reads its collaborators, so one instance serves concurrent requests.
package checker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/finding"
	"github.com/bastiangx/teny/pkg/fuzzy"
	"github.com/bastiangx/teny/pkg/lemma"
	"github.com/bastiangx/teny/pkg/lexicon"
	"github.com/bastiangx/teny/pkg/ngram"
	"github.com/bastiangx/teny/pkg/rules"
	"github.com/bastiangx/teny/pkg/sentence"
	"github.com/charmbracelet/log"
)

var ErrEmptyText = errors.New("empty text")

// Options tune the pipeline.
type Options struct {
	// Threshold and Limit drive the spelling pass and word info.
	Threshold float64
	Limit     int
	// DictAlternatives and DictMinScore override the dictionary rule when > 0.
	DictAlternatives int
	DictMinScore     float64
	// MinPrefix is the shortest prefix Autocomplete answers.
	MinPrefix int
	// CacheSize bounds the ranking memo. 0 disables it.
	CacheSize int
}

// DefaultOptions returns the standard settings.
func DefaultOptions() Options {
	return Options{
		Threshold: fuzzy.DefaultThreshold,
		Limit:     fuzzy.DefaultLimit,
		MinPrefix: 2,
	}
}

// Checker wires every analysis stage around one lexicon and an optional model.
type Checker struct {
	opts       Options
	lex        *lexicon.Lexicon
	matcher    fuzzy.Suggester
	engine     *rules.Engine
	lemmatizer *lemma.Lemmatizer
	analyzer   *sentence.Analyzer
	validator  *sentence.Validator
	model      *ngram.Model
}

// New builds a Checker over lex with the embedded rule tables. model may be nil,
// in which case prediction is empty and autocomplete falls back to the lexicon.
func New(lex *lexicon.Lexicon, model *ngram.Model, opts Options) (*Checker, error) {
	tables, err := rules.DefaultTables()
	if err != nil {
		return nil, err
	}
	return NewWithTables(lex, model, tables, opts)
}

// NewWithTables is New with custom rule tables.
func NewWithTables(lex *lexicon.Lexicon, model *ngram.Model, tables rules.Tables, opts Options) (*Checker, error) {
	if lex == nil {
		return nil, fmt.Errorf("checker: nil lexicon")
	}
	if opts.Limit <= 0 {
		opts.Limit = fuzzy.DefaultLimit
	}
	if opts.DictAlternatives > 0 {
		tables.DictAlternatives = opts.DictAlternatives
	}
	if opts.DictMinScore > 0 {
		tables.DictMinScore = opts.DictMinScore
	}

	var matcher fuzzy.Suggester = fuzzy.NewMatcher(lex)
	if opts.CacheSize > 0 {
		cached, err := fuzzy.NewCachedMatcher(fuzzy.NewMatcher(lex), opts.CacheSize)
		if err != nil {
			return nil, fmt.Errorf("checker: %w", err)
		}
		matcher = cached
	}

	engine := rules.NewEngine(tables, matcher)
	log.Debugf("Rule engine ready: %s", strings.Join(engine.Rules(), ", "))

	analyzer := sentence.NewAnalyzer()
	return &Checker{
		opts:       opts,
		lex:        lex,
		matcher:    matcher,
		engine:     engine,
		lemmatizer: lemma.NewDefault(),
		analyzer:   analyzer,
		validator:  sentence.NewValidator(analyzer),
		model:      model,
	}, nil
}

// Lexicon returns the lexicon the checker reads.
func (c *Checker) Lexicon() *lexicon.Lexicon { return c.lex }

// Model returns the n-gram model, or nil.
func (c *Checker) Model() *ngram.Model { return c.model }

// Matcher returns the fuzzy matcher shared by the rules and the spelling pass.
func (c *Checker) Matcher() fuzzy.Suggester { return c.matcher }

// Lemmatizer returns the lemmatizer.
func (c *Checker) Lemmatizer() *lemma.Lemmatizer { return c.lemmatizer }

// Analyzer returns the sentence analyzer.
func (c *Checker) Analyzer() *sentence.Analyzer { return c.analyzer }

// Analysis is the informational part of a report.
type Analysis struct {
	Sentences sentence.TextAnalysis `json:"sentences" msgpack:"s"`
	Lemmas    []lemma.Lemma         `json:"lemmatization" msgpack:"l"`
}

// Statistics summarizes a text and its findings.
type Statistics struct {
	TotalWords            int     `json:"total_words" msgpack:"tw"`
	UniqueWords           int     `json:"unique_words" msgpack:"uw"`
	TotalSentences        int     `json:"total_sentences" msgpack:"ts"`
	AverageSentenceLength float64 `json:"average_sentence_length" msgpack:"asl"`
	VSOCompliance         float64 `json:"vso_compliance" msgpack:"vso"`
	ComplexSentences      int     `json:"complex_sentences" msgpack:"cx"`
	TotalSuggestions      int     `json:"total_suggestions" msgpack:"tsg"`
	Errors                int     `json:"errors" msgpack:"e"`
	Warnings              int     `json:"warnings" msgpack:"w"`
	Info                  int     `json:"info" msgpack:"i"`
}

// Report is the full result of CheckComplete. Error is set only for rejected input.
type Report struct {
	Text       string            `json:"text" msgpack:"t"`
	Findings   []finding.Finding `json:"suggestions" msgpack:"f"`
	Analysis   *Analysis         `json:"analysis,omitempty" msgpack:"a,omitempty"`
	Statistics Statistics        `json:"statistics" msgpack:"st"`
	Quality    *Quality          `json:"quality,omitempty" msgpack:"q,omitempty"`
	Error      string            `json:"error,omitempty" msgpack:"err,omitempty"`
}

// CheckComplete runs every stage over text. Findings come in stage order: rule
// engine, then spelling, then sentence structure. Blank text returns ErrEmptyText
// together with a report carrying the error.
func (c *Checker) CheckComplete(text string) (*Report, error) {
	if strings.TrimSpace(text) == "" {
		return &Report{Text: text, Findings: []finding.Finding{}, Error: ErrEmptyText.Error()}, ErrEmptyText
	}

	findings := make([]finding.Finding, 0)
	for _, f := range c.engine.Check(text) {
		findings = append(findings, f.WithCategory(finding.CategorySymbolic))
	}
	findings = append(findings, c.spelling(text)...)

	sentences := sentence.Split(text)
	for _, s := range sentences {
		pos := utils.IndexChar(text, s)
		for _, f := range c.validator.Validate(s) {
			f.Position = pos
			findings = append(findings, f.WithCategory(finding.CategoryStructure))
		}
	}

	textAnalysis := c.analyzer.AnalyzeText(text)
	report := &Report{
		Text:     text,
		Findings: findings,
		Analysis: &Analysis{
			Sentences: textAnalysis,
			Lemmas:    c.lemmatizer.LemmatizeText(text),
		},
		Statistics: statistics(text, len(sentences), textAnalysis, findings),
	}
	q := QualityScore(report.Statistics)
	report.Quality = &q

	log.Debugf("Checked %d words: %d findings, score %d", report.Statistics.TotalWords, len(findings), q.Score)
	return report, nil
}

// spelling reports every unknown whitespace token with its suggestions.
func (c *Checker) spelling(text string) []finding.Finding {
	var out []finding.Finding
	for _, tok := range strings.Fields(text) {
		res := c.matcher.Suggest(tok, c.opts.Threshold, c.opts.Limit)
		if res.Correct {
			continue
		}
		hint := "No close match in the dictionary"
		if len(res.Suggestions) > 0 {
			shown := res.Suggestions
			if len(shown) > 3 {
				shown = shown[:3]
			}
			hint = "Suggestions: " + strings.Join(shown, ", ")
		}
		out = append(out, finding.Finding{
			Position:     utils.IndexChar(text, tok),
			Kind:         finding.KindSpelling,
			Severity:     finding.SevWarning,
			Word:         tok,
			Message:      fmt.Sprintf("Word '%s' possibly misspelled", tok),
			Suggestion:   hint,
			Alternatives: res.Suggestions,
			Category:     finding.CategoryAlgorithmic,
		})
	}
	return out
}

func statistics(text string, sentences int, an sentence.TextAnalysis, findings []finding.Finding) Statistics {
	words := strings.Fields(text)
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		unique[utils.CleanToken(w, utils.TokenPunct)] = struct{}{}
	}
	counts := finding.Count(findings)
	return Statistics{
		TotalWords:            len(words),
		UniqueWords:           len(unique),
		TotalSentences:        sentences,
		AverageSentenceLength: an.AverageWords,
		VSOCompliance:         an.VSOPercentage,
		ComplexSentences:      an.ComplexSentences,
		TotalSuggestions:      len(findings),
		Errors:                counts.Errors,
		Warnings:              counts.Warnings,
		Info:                  counts.Info,
	}
}

// ByCategory groups findings by category, keeping their order. Every category is
// present; findings without one count as algorithmic.
func ByCategory(findings []finding.Finding) map[finding.Category][]finding.Finding {
	out := make(map[finding.Category][]finding.Finding, len(finding.Categories))
	for _, cat := range finding.Categories {
		out[cat] = []finding.Finding{}
	}
	for _, f := range findings {
		cat := f.Category
		if _, ok := out[cat]; !ok {
			cat = finding.CategoryAlgorithmic
		}
		out[cat] = append(out[cat], f)
	}
	return out
}
