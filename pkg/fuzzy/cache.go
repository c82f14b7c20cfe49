package fuzzy

import (
	"strconv"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the memo used by long-running servers.
const DefaultCacheSize = 10_000

// CachedMatcher memoizes Rank results of a Matcher in a bounded LRU.
// The cache is only valid for one lexicon; Purge it whenever the lexicon changes.
type CachedMatcher struct {
	*Matcher
	ranks *lru.Cache[string, []Candidate]
}

// NewCachedMatcher wraps m with an LRU of size entries.
func NewCachedMatcher(m *Matcher, size int) (*CachedMatcher, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, []Candidate](size)
	if err != nil {
		return nil, err
	}
	return &CachedMatcher{Matcher: m, ranks: cache}, nil
}

func rankKey(token string, limit int) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(limit))
	b.WriteByte(0)
	b.WriteString(token)
	return b.String()
}

// Rank returns the cached ranking for token, computing it on a miss.
func (c *CachedMatcher) Rank(token string, limit int) []Candidate {
	key := rankKey(token, limit)
	if cands, ok := c.ranks.Get(key); ok {
		return cands
	}
	cands := c.Matcher.Rank(token, limit)
	c.ranks.Add(key, cands)
	return cands
}

// Suggest is Matcher.Suggest backed by the cached ranking.
func (c *CachedMatcher) Suggest(token string, threshold float64, limit int) Result {
	if c.Known(token) {
		return Result{Word: token, Correct: true, Suggestions: []string{}}
	}
	return suggestFromRanked(token, c.Rank(token, limit), threshold)
}

// Purge drops every cached ranking.
func (c *CachedMatcher) Purge() {
	c.ranks.Purge()
}

// Len returns the number of cached rankings.
func (c *CachedMatcher) Len() int {
	return c.ranks.Len()
}
