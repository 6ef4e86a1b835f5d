package selection

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PhilSing24/finreport/internal/model"
)

// ArticleStore is the read-only source of candidate articles. The query
// window is [start, end); implementations filter on fetch success, body
// presence, body length and ticker membership.
type ArticleStore interface {
	QueryByTickerPeriod(ctx context.Context, ticker string, start, end time.Time, minBodyChars int) ([]model.ArticleRecord, error)
}

// Selector picks a bounded, diverse, high-relevance subset of articles for
// one ticker and period.
type Selector struct {
	store  ArticleStore
	policy ScoringPolicy
	lambda float64
}

func NewSelector(store ArticleStore, policy ScoringPolicy) *Selector {
	return &Selector{store: store, policy: policy, lambda: DefaultLambda}
}

// WithLambda overrides the MMR relevance/diversity balance (default 0.5).
func (s *Selector) WithLambda(lambda float64) *Selector {
	s.lambda = lambda
	return s
}

// Select queries candidates, collapses duplicates, scores them under the
// configured policy and returns at most maxArticles records. With
// useDiversity the subset is MMR-diverse; without it, plain top-by-score.
// Scores are internal to the call and never returned.
func (s *Selector) Select(ctx context.Context, ticker string, start, end time.Time, maxArticles, minBodyChars int, useDiversity bool) ([]model.ArticleRecord, error) {
	ticker = strings.ToUpper(ticker)

	candidates, err := s.store.QueryByTickerPeriod(ctx, ticker, start, end, minBodyChars)
	if err != nil {
		return nil, fmt.Errorf("query articles for %s: %w", ticker, err)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	deduped := Deduplicate(candidates)

	scored := make([]ScoredArticle, len(deduped))
	for i, a := range deduped {
		scored[i] = ScoredArticle{Article: a, Score: s.policy.Score(a, ticker)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if maxArticles > 0 {
		if useDiversity {
			scored = ApplyMMR(scored, maxArticles, s.lambda)
		} else if len(scored) > maxArticles {
			scored = scored[:maxArticles]
		}
	}

	out := make([]model.ArticleRecord, len(scored))
	for i, sa := range scored {
		out[i] = sa.Article
	}
	return out, nil
}
