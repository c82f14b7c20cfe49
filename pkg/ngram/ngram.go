// Package ngram is a frequency model over token sequences. It predicts the next
// token for a context and completes word prefixes.
package ngram

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

const DefaultOrder = 2

var (
	ErrInvalidOrder = errors.New("n-gram order must be at least 2")
	ErrEmptyContext = errors.New("empty context")
)

// Count is one token with its occurrence count.
type Count struct {
	Word  string `json:"word" msgpack:"w"`
	Count int    `json:"count" msgpack:"c"`
}

// counter keeps counts together with the order in which tokens first appeared,
// so that equal counts rank by first appearance.
type counter struct {
	seen   []string
	counts map[string]int
	total  int
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(word string, n int) {
	if _, ok := c.counts[word]; !ok {
		c.seen = append(c.seen, word)
	}
	c.counts[word] += n
	c.total += n
}

// entries returns every count in first-appearance order.
func (c *counter) entries() []Count {
	out := make([]Count, len(c.seen))
	for i, w := range c.seen {
		out[i] = Count{Word: w, Count: c.counts[w]}
	}
	return out
}

// mostCommon returns the k highest counts. k <= 0 returns all.
func (c *counter) mostCommon(k int) []Count {
	out := c.entries()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if k > 0 && len(out) > k {
		out = out[:k]
	}
	return out
}

// contextNode is one level of the transition table, keyed by a single context token.
// Only nodes at depth n-1 carry a counter, so a context is matched token by token
// and never through a joined string.
type contextNode struct {
	children map[string]*contextNode
	next     *counter
}

func (n *contextNode) walk(tokens []string) *contextNode {
	for _, t := range tokens {
		n = n.children[t]
		if n == nil {
			return nil
		}
	}
	return n
}

func (n *contextNode) ensure(tokens []string) *contextNode {
	for _, t := range tokens {
		if n.children == nil {
			n.children = make(map[string]*contextNode)
		}
		c, ok := n.children[t]
		if !ok {
			c = &contextNode{}
			n.children[t] = c
		}
		n = c
	}
	return n
}

// Prediction is one next-token candidate. Value is a probability when the context
// was observed, and a raw unigram count when Fallback is set.
type Prediction struct {
	Word     string  `json:"word" msgpack:"w"`
	Value    float64 `json:"value" msgpack:"v"`
	Fallback bool    `json:"fallback,omitempty" msgpack:"f,omitempty"`
}

// Model is an order-n frequency table. Training only ever adds counts.
type Model struct {
	mu    sync.RWMutex
	order int

	transitions *contextNode
	contexts    [][]string // first-appearance order of observed contexts
	unigrams    *counter

	// words maps each token to its first-appearance index for prefix walks.
	words *patricia.Trie
}

// New returns an empty model of the given order.
func New(order int) (*Model, error) {
	if order < 2 {
		return nil, ErrInvalidOrder
	}
	return &Model{
		order:       order,
		transitions: &contextNode{},
		unigrams:    newCounter(),
		words:       patricia.NewTrie(),
	}, nil
}

// Order returns n.
func (m *Model) Order() int {
	return m.order
}

// Train folds sentences into the model. Each sentence is lowercased and split on
// whitespace; every window of n tokens counts one (context, next) transition.
func (m *Model) Train(sentences []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, s := range sentences {
		tokens := strings.Fields(strings.ToLower(s))
		for _, t := range tokens {
			m.addUnigram(t, 1)
		}
		for i := 0; i+m.order <= len(tokens); i++ {
			ctx := tokens[i : i+m.order-1]
			m.addTransition(ctx, tokens[i+m.order-1], 1)
		}
	}
}

func (m *Model) addUnigram(word string, n int) {
	if _, ok := m.unigrams.counts[word]; !ok {
		m.words.Insert(patricia.Prefix(word), len(m.unigrams.seen))
	}
	m.unigrams.add(word, n)
}

func (m *Model) addTransition(ctx []string, next string, n int) {
	node := m.transitions.ensure(ctx)
	if node.next == nil {
		node.next = newCounter()
		m.contexts = append(m.contexts, append([]string(nil), ctx...))
	}
	node.next.add(next, n)
}

// follower returns the counter of an observed context, or nil. Only full n-1 token
// contexts are ever observed.
func (m *Model) follower(ctx []string) *counter {
	if node := m.transitions.walk(ctx); node != nil {
		return node.next
	}
	return nil
}

// PredictNext ranks the tokens that followed the last n-1 tokens of context.
// A shorter context is used as is. When that context was never observed the global
// top-k unigrams are returned with raw counts and Fallback set.
func (m *Model) PredictNext(context []string, k int) ([]Prediction, error) {
	if len(context) == 0 {
		return nil, ErrEmptyContext
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	ctx := context
	if len(ctx) > m.order-1 {
		ctx = ctx[len(ctx)-(m.order-1):]
	}
	lowered := make([]string, len(ctx))
	for i, t := range ctx {
		lowered[i] = strings.ToLower(t)
	}

	c := m.follower(lowered)
	if c == nil {
		log.Debugf("Unseen context %q, falling back to unigrams", lowered)
		top := m.unigrams.mostCommon(k)
		out := make([]Prediction, len(top))
		for i, e := range top {
			out[i] = Prediction{Word: e.Word, Value: float64(e.Count), Fallback: true}
		}
		return out, nil
	}

	top := c.mostCommon(k)
	out := make([]Prediction, len(top))
	for i, e := range top {
		out[i] = Prediction{Word: e.Word, Value: float64(e.Count) / float64(c.total)}
	}
	return out, nil
}

// Autocomplete returns up to k known tokens starting with prefix (lowercased), most
// frequent first, ties by first appearance. k <= 0 returns all.
func (m *Model) Autocomplete(prefix string, k int) []string {
	lower := strings.ToLower(prefix)

	m.mu.RLock()
	defer m.mu.RUnlock()

	type hit struct {
		word  string
		freq  int
		first int
	}
	var hits []hit
	err := m.words.VisitSubtree(patricia.Prefix(lower), func(p patricia.Prefix, item patricia.Item) error {
		w := string(p)
		hits = append(hits, hit{word: w, freq: m.unigrams.counts[w], first: item.(int)})
		return nil
	})
	if err != nil {
		log.Errorf("Error visiting trie subtree: %v", err)
		return []string{}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].freq != hits[j].freq {
			return hits[i].freq > hits[j].freq
		}
		return hits[i].first < hits[j].first
	})
	if k > 0 && len(hits) > k {
		hits = hits[:k]
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.word
	}
	return out
}

// Frequency returns the global count of word.
func (m *Model) Frequency(word string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.unigrams.counts[strings.ToLower(word)]
}

// Next returns every observed follower of context in first-appearance order,
// or nil when the context is unknown.
func (m *Model) Next(context []string) []Count {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c := m.follower(context)
	if c == nil {
		return nil
	}
	return c.entries()
}

// Stats summarizes a model.
type Stats struct {
	Order       int `json:"order" msgpack:"n"`
	TotalTokens int `json:"total_tokens" msgpack:"tt"`
	UniqueWords int `json:"unique_words" msgpack:"uw"`
	Contexts    int `json:"contexts" msgpack:"ctx"`
}

// Stats returns the table sizes.
func (m *Model) Stats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Stats{
		Order:       m.order,
		TotalTokens: m.unigrams.total,
		UniqueWords: len(m.unigrams.seen),
		Contexts:    len(m.contexts),
	}
}
