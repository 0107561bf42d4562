package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/kailas-cloud/unisearch/internal/metrics"
)

// minTokenRunes is the shortest token kept for expansion; shorter ones are noise.
const minTokenRunes = 2

// Expander widens a query with keyword dictionary terms and synonyms.
// Expansion is best effort: dictionary failures degrade to the raw terms.
type Expander struct {
	dict   KeywordDictionary
	logger *zap.Logger
}

// NewExpander creates an expander. dict may be nil (no dictionary).
func NewExpander(dict KeywordDictionary, logger *zap.Logger) *Expander {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Expander{dict: dict, logger: logger}
}

// Expand returns the raw query, its tokens and every dictionary term and
// synonym matching a token. The raw query is always the first element.
func (e *Expander) Expand(ctx context.Context, query string) []string {
	terms := newTermList()
	terms.add(query)
	tokens := tokenize(query)
	terms.add(tokens...)
	terms.add(e.lookup(ctx, tokens)...)
	return terms.items
}

// ExpandSeeds expands extra terms, such as classifier keywords, the same way
// without a raw query.
func (e *Expander) ExpandSeeds(ctx context.Context, seeds []string) []string {
	terms := newTermList()
	var tokens []string
	for _, s := range seeds {
		terms.add(s)
		tokens = append(tokens, tokenize(s)...)
	}
	terms.add(tokens...)
	terms.add(e.lookup(ctx, tokens)...)
	return terms.items
}

func (e *Expander) lookup(ctx context.Context, tokens []string) []string {
	if e.dict == nil || len(tokens) == 0 {
		return nil
	}
	lowered := make([]string, len(tokens))
	for i, t := range tokens {
		lowered[i] = strings.ToLower(t)
	}

	entries, err := e.dict.Lookup(ctx, lowered)
	if err != nil {
		metrics.ExpansionDegradedTotal.Inc()
		e.logger.Warn("Keyword expansion degraded to raw terms",
			zap.Strings("tokens", tokens),
			zap.Error(err),
		)
		return nil
	}

	var out []string
	for i := range entries {
		kw := &entries[i]
		if !matchesAny(kw.Matches, lowered) {
			continue
		}
		out = append(out, kw.Term())
		out = append(out, kw.Synonyms()...)
	}
	return out
}

func matchesAny(match func(string) bool, tokens []string) bool {
	for _, t := range tokens {
		if match(t) {
			return true
		}
	}
	return false
}

// tokenize splits on whitespace and drops tokens of a single rune.
func tokenize(s string) []string {
	fields := strings.Fields(s)
	out := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) >= minTokenRunes {
			out = append(out, f)
		}
	}
	return out
}

// termList is an insertion-ordered, case-insensitively deduplicated list.
type termList struct {
	seen  map[string]struct{}
	items []string
}

func newTermList() *termList {
	return &termList{seen: make(map[string]struct{}), items: []string{}}
}

func (l *termList) add(terms ...string) {
	for _, t := range terms {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		key := strings.ToLower(t)
		if _, ok := l.seen[key]; ok {
			continue
		}
		l.seen[key] = struct{}{}
		l.items = append(l.items, t)
	}
}

// mergeTerms unions term lists preserving first-seen order.
func mergeTerms(lists ...[]string) []string {
	l := newTermList()
	for _, terms := range lists {
		l.add(terms...)
	}
	return l.items
}

// ExpandWith expands query and seeds together.
func (e *Expander) ExpandWith(ctx context.Context, query string, seeds []string) []string {
	return mergeTerms(e.Expand(ctx, query), e.ExpandSeeds(ctx, seeds))
}
