package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/bastiangx/teny/pkg/checker"
	"github.com/bastiangx/teny/pkg/finding"
	"github.com/bastiangx/teny/pkg/fuzzy"
	"github.com/bastiangx/teny/pkg/glossary"
	"github.com/bastiangx/teny/pkg/lemma"
	"github.com/bastiangx/teny/pkg/ngram"
	"github.com/bastiangx/teny/pkg/sentiment"
	"github.com/bastiangx/teny/pkg/server"
	"github.com/charmbracelet/lipgloss"
	"github.com/cheynewallace/tabby"
)

var (
	wordStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	scoreStyle   = lipgloss.NewStyle().Bold(true)
)

// Printer renders op results as tables.
type Printer struct {
	out   io.Writer
	color bool
}

// NewPrinter writes to out. With color off, output is plain text.
func NewPrinter(out io.Writer, color bool) *Printer {
	return &Printer{out: out, color: color}
}

func (p *Printer) style(s lipgloss.Style, text string) string {
	if !p.color {
		return text
	}
	return s.Render(text)
}

func (p *Printer) table() *tabby.Tabby {
	return tabby.NewCustom(tabwriter.NewWriter(p.out, 0, 0, 2, ' ', 0))
}

func (p *Printer) severity(s finding.Severity) string {
	switch s {
	case finding.SevError:
		return p.style(errorStyle, s.String())
	case finding.SevWarning:
		return p.style(warningStyle, s.String())
	}
	return p.style(infoStyle, s.String())
}

// Print renders any op result. Unknown types fall back to %+v.
func (p *Printer) Print(result any) {
	switch r := result.(type) {
	case *checker.Report:
		p.Report(r)
	case checker.WordInfo:
		p.WordInfo(r)
	case server.CompletionResponse:
		p.Completions(r)
	case []ngram.Prediction:
		p.Predictions(r)
	case []lemma.Lemma:
		p.Lemmas(r)
	case fuzzy.Result:
		p.Suggestion(r)
	case []fuzzy.Correction:
		p.Corrections(r)
	case sentiment.Result:
		fmt.Fprintf(p.out, "%s (score %.2f, %d positive, %d negative, %s confidence)\n",
			r.Label, r.Score, r.Positive, r.Negative, r.Confidence)
	case glossary.Translation:
		p.Translation(r)
	case server.StatsResponse:
		p.Stats(r)
	case ngram.Stats:
		t := p.table()
		p.modelLines(t, &r)
		t.Print()
	case server.StatusResponse:
		fmt.Fprintln(p.out, r.Status)
	default:
		fmt.Fprintf(p.out, "%+v\n", r)
	}
}

// Report prints findings then the score line.
func (p *Printer) Report(r *checker.Report) {
	if len(r.Findings) == 0 {
		fmt.Fprintln(p.out, "No issues found.")
	} else {
		t := p.table()
		t.AddHeader("POS", "SEVERITY", "KIND", "WORD", "MESSAGE", "SUGGESTION")
		for _, f := range r.Findings {
			t.AddLine(f.Position, p.severity(f.Severity), f.Kind, p.style(wordStyle, f.Word), f.Message, f.Suggestion)
		}
		t.Print()
	}
	st := r.Statistics
	fmt.Fprintf(p.out, "\n%d words, %d sentences, VSO %.0f%%\n", st.TotalWords, st.TotalSentences, st.VSOCompliance)
	if r.Quality != nil {
		fmt.Fprintf(p.out, "Quality: %s (%s)\n", p.style(scoreStyle, fmt.Sprintf("%d/100", r.Quality.Score)), r.Quality.Level)
		for _, d := range r.Quality.Details {
			fmt.Fprintf(p.out, "  %s\n", d)
		}
	}
}

// WordInfo prints a word card.
func (p *Printer) WordInfo(w checker.WordInfo) {
	t := p.table()
	t.AddLine("word", p.style(wordStyle, w.Word))
	t.AddLine("known", w.Exists)
	if w.Definition != "" {
		t.AddLine("definition", w.Definition)
	}
	t.AddLine("root", w.Lemma.Root)
	if w.Frequency > 0 {
		t.AddLine("frequency", w.Frequency)
	}
	var affixes []string
	if w.Lemma.HasPrefix() {
		affixes = append(affixes, w.Lemma.Prefix+"-")
	}
	if w.Lemma.HasSuffix() {
		affixes = append(affixes, "-"+w.Lemma.Suffix)
	}
	if len(affixes) > 0 {
		t.AddLine("affixes", strings.Join(affixes, " "))
	}
	if len(w.Suggestions) > 0 {
		t.AddLine("suggestions", strings.Join(w.Suggestions, ", "))
		t.AddLine("distance", w.Distance)
	}
	t.Print()
}

// Completions prints ranked completions.
func (p *Printer) Completions(c server.CompletionResponse) {
	if c.Count == 0 {
		fmt.Fprintf(p.out, "No completions for '%s'\n", c.Prefix)
		return
	}
	t := p.table()
	t.AddHeader("RANK", "WORD")
	for _, s := range c.Suggestions {
		t.AddLine(s.Rank, p.style(wordStyle, s.Word))
	}
	t.Print()
}

// Predictions prints next-word guesses. Fallback rows carry raw counts.
func (p *Printer) Predictions(preds []ngram.Prediction) {
	if len(preds) == 0 {
		fmt.Fprintln(p.out, "No predictions.")
		return
	}
	t := p.table()
	t.AddHeader("RANK", "WORD", "VALUE")
	for i, pr := range preds {
		value := fmt.Sprintf("%.3f", pr.Value)
		if pr.Fallback {
			value = fmt.Sprintf("%.0f (unigram)", pr.Value)
		}
		t.AddLine(i+1, p.style(wordStyle, pr.Word), value)
	}
	t.Print()
}

// Lemmas prints one row per token.
func (p *Printer) Lemmas(lemmas []lemma.Lemma) {
	t := p.table()
	t.AddHeader("WORD", "PREFIX", "ROOT", "SUFFIX")
	for _, l := range lemmas {
		t.AddLine(l.Original, l.Prefix, p.style(wordStyle, l.Root), l.Suffix)
	}
	t.Print()
}

// Suggestion prints a single-token spelling result.
func (p *Printer) Suggestion(r fuzzy.Result) {
	if r.Correct {
		fmt.Fprintf(p.out, "'%s' is correct\n", r.Word)
		return
	}
	if len(r.Suggestions) == 0 {
		fmt.Fprintf(p.out, "No suggestions for '%s'\n", r.Word)
		return
	}
	fmt.Fprintf(p.out, "'%s' -> %s (confidence %.1f)\n", r.Word, p.style(wordStyle, strings.Join(r.Suggestions, ", ")), r.Confidence)
}

// Corrections prints unknown tokens with their suggestions.
func (p *Printer) Corrections(cs []fuzzy.Correction) {
	if len(cs) == 0 {
		fmt.Fprintln(p.out, "No issues found.")
		return
	}
	t := p.table()
	t.AddHeader("POS", "WORD", "SUGGESTIONS")
	for _, c := range cs {
		t.AddLine(c.Position, c.Original, strings.Join(c.Suggestions, ", "))
	}
	t.Print()
}

// Translation prints one glossary lookup.
func (p *Printer) Translation(tr glossary.Translation) {
	if !tr.Found {
		fmt.Fprintf(p.out, "'%s' is not in the glossary (%s)\n", tr.Word, tr.Direction)
		return
	}
	fmt.Fprintf(p.out, "%s -> %s\n", tr.Word, p.style(wordStyle, tr.Translation))
}

// Stats prints lexicon and model sizes.
func (p *Printer) Stats(s server.StatsResponse) {
	t := p.table()
	t.AddLine("lexicon words", s.Lexicon.TotalWords)
	t.AddLine("with definitions", s.Lexicon.WordsWithDefinitions)
	t.AddLine("coverage", fmt.Sprintf("%.2f%%", s.Lexicon.CoveragePercentage))
	p.modelLines(t, s.Model)
	t.Print()
}

func (p *Printer) modelLines(t *tabby.Tabby, m *ngram.Stats) {
	if m == nil {
		t.AddLine("model", "none")
		return
	}
	t.AddLine("model order", m.Order)
	t.AddLine("model tokens", m.TotalTokens)
	t.AddLine("model words", m.UniqueWords)
	t.AddLine("model contexts", m.Contexts)
}
