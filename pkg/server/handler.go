package server

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/bastiangx/teny/internal/utils"
	"github.com/bastiangx/teny/pkg/checker"
	"github.com/bastiangx/teny/pkg/config"
	"github.com/bastiangx/teny/pkg/finding"
	"github.com/bastiangx/teny/pkg/fuzzy"
	"github.com/bastiangx/teny/pkg/glossary"
	"github.com/bastiangx/teny/pkg/lemma"
	"github.com/bastiangx/teny/pkg/ngram"
	"github.com/bastiangx/teny/pkg/sentiment"
	"github.com/charmbracelet/log"
)

// RequestError is an op failure with the code reported to the client.
type RequestError struct {
	Message string
	Code    int
}

func (e *RequestError) Error() string { return e.Message }

func badRequest(format string, args ...any) *RequestError {
	return &RequestError{Message: fmt.Sprintf(format, args...), Code: 400}
}

// Handler runs ops against the current checker. The checker can be replaced at
// any time with Swap; each request reads it once.
type Handler struct {
	checker   atomic.Pointer[checker.Checker]
	sentiment *sentiment.Analyzer
	glossary  *glossary.Glossary
	limits    config.ServerConfig
	requests  atomic.Int64
}

// NewHandler builds a Handler with the embedded sentiment lists and glossary.
func NewHandler(c *checker.Checker, limits config.ServerConfig) (*Handler, error) {
	if c == nil {
		return nil, errors.New("server: nil checker")
	}
	sa, err := sentiment.Default()
	if err != nil {
		return nil, err
	}
	g, err := glossary.Default()
	if err != nil {
		return nil, err
	}
	h := &Handler{sentiment: sa, glossary: g, limits: limits}
	h.checker.Store(c)
	return h, nil
}

// Swap installs a new checker for subsequent requests.
func (h *Handler) Swap(c *checker.Checker) {
	if c == nil {
		return
	}
	h.checker.Store(c)
	log.Debugf("Checker swapped: %d words", c.Lexicon().Len())
}

// Checker returns the checker currently serving requests.
func (h *Handler) Checker() *checker.Checker {
	return h.checker.Load()
}

// Handle runs one request and returns its result. Errors are always *RequestError.
func (h *Handler) Handle(req Request) (any, error) {
	h.requests.Add(1)
	c := h.checker.Load()

	switch req.Op {
	case OpCheck:
		text, err := h.text(req)
		if err != nil {
			return nil, err
		}
		kind := finding.Kind(req.Kind)
		if req.Kind != "" && !kind.Valid() {
			return nil, badRequest("unknown finding kind %q", req.Kind)
		}
		report, err := c.CheckComplete(text)
		if errors.Is(err, checker.ErrEmptyText) {
			return nil, badRequest("%v", err)
		}
		// The score still covers every check.
		if err == nil && req.Kind != "" {
			report.Findings = finding.Filter(report.Findings, kind)
		}
		return report, err
	case OpCorrect:
		text, err := h.text(req)
		if err != nil {
			return nil, err
		}
		out := fuzzy.CorrectText(c.Matcher(), text)
		if out == nil {
			out = []fuzzy.Correction{}
		}
		return out, nil
	case OpSuggest:
		word, err := h.word(req)
		if err != nil {
			return nil, err
		}
		return c.Suggest(word), nil
	case OpWord:
		word, err := h.word(req)
		if err != nil {
			return nil, err
		}
		info, err := c.WordInfo(word)
		if errors.Is(err, lemma.ErrEmptyWord) {
			return nil, badRequest("%v", err)
		}
		return info, err
	case OpLemmatize:
		return h.lemmatize(c, req)
	case OpPredict:
		return h.predict(c, req)
	case OpComplete:
		return h.complete(c, req)
	case OpSentiment:
		text, err := h.text(req)
		if err != nil {
			return nil, err
		}
		return h.sentiment.Analyze(text), nil
	case OpTranslate:
		word, err := h.word(req)
		if err != nil {
			return nil, err
		}
		dir, err := glossary.ParseDirection(req.Direction)
		if err != nil {
			return nil, badRequest("%v", err)
		}
		return h.glossary.Translate(word, dir), nil
	case OpStats:
		return h.stats(c), nil
	case OpHealth:
		return StatusResponse{Status: "ok"}, nil
	case "":
		return nil, badRequest("Missing 'op' field")
	}
	return nil, badRequest("Unknown op: %s", req.Op)
}

func (h *Handler) text(req Request) (string, error) {
	if strings.TrimSpace(req.Text) == "" {
		return "", badRequest("Missing 'text' field")
	}
	if h.limits.MaxTextLength > 0 && len(req.Text) > h.limits.MaxTextLength {
		return "", badRequest("Text exceeds maximum length of %d bytes", h.limits.MaxTextLength)
	}
	return req.Text, nil
}

func (h *Handler) word(req Request) (string, error) {
	w := strings.TrimSpace(req.Word)
	if w == "" {
		return "", badRequest("Missing 'w' field")
	}
	return w, nil
}

// limit applies the default and clamps to the configured maximum.
func (h *Handler) limit(requested, fallback int) int {
	if requested < 1 {
		requested = fallback
	}
	if h.limits.MaxLimit > 0 && requested > h.limits.MaxLimit {
		requested = h.limits.MaxLimit
	}
	return requested
}

func (h *Handler) lemmatize(c *checker.Checker, req Request) (any, error) {
	if w := strings.TrimSpace(req.Word); w != "" {
		lm, err := c.Lemmatizer().Word(w)
		if err != nil {
			return nil, badRequest("%v", err)
		}
		return []lemma.Lemma{lm}, nil
	}
	text, err := h.text(req)
	if err != nil {
		return nil, err
	}
	return c.Lemmatizer().LemmatizeText(text), nil
}

func (h *Handler) predict(c *checker.Checker, req Request) (any, error) {
	context := req.Context
	if len(context) == 0 {
		context = strings.Fields(req.Text)
	}
	preds, err := c.Predict(context, h.limit(req.Limit, 5))
	if errors.Is(err, ngram.ErrEmptyContext) {
		return nil, badRequest("%v", err)
	}
	return preds, err
}

func (h *Handler) complete(c *checker.Checker, req Request) (any, error) {
	prefix := strings.TrimSpace(req.Prefix)
	if prefix == "" {
		return nil, badRequest("Missing 'p' field")
	}
	if utils.RuneLen(prefix) > 60 {
		return nil, badRequest("Prefix exceeds maximum length of 60 characters")
	}

	resp := CompletionResponse{Prefix: prefix, Suggestions: []CompletionSuggestion{}}
	if !utils.IsValidInput(prefix) {
		log.Debugf("Skipping completion for %q", prefix)
		return resp, nil
	}
	words := c.Autocomplete(prefix, h.limit(req.Limit, 10))
	for i, w := range words {
		resp.Suggestions = append(resp.Suggestions, CompletionSuggestion{Word: w, Rank: uint16(i + 1)})
	}
	resp.Count = len(resp.Suggestions)
	return resp, nil
}

func (h *Handler) stats(c *checker.Checker) StatsResponse {
	out := StatsResponse{Lexicon: c.Lexicon().Stats(), Requests: h.requests.Load()}
	if m := c.Model(); m != nil {
		st := m.Stats()
		out.Model = &st
	}
	return out
}
