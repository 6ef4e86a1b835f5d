package selection

import (
	"fmt"
	"strings"

	"github.com/PhilSing24/finreport/internal/model"
)

// financialKeywords drive the content-relevance signal. Matching is plain
// lowercase substring containment, same for every field.
var financialKeywords = []string{
	// Earnings and guidance
	"earnings", "eps", "revenue", "profit", "loss", "income",
	"guidance", "outlook", "forecast", "beat", "miss", "results",
	// Quarters and periods
	"q1", "q2", "q3", "q4", "quarter", "quarterly", "annual", "fy",
	// Analyst actions
	"upgrade", "downgrade", "rating", "price target", "valuation",
	// Market movement
	"surge", "plunge", "rally", "drop", "soar", "tumble",
	"jump", "fall", "rise", "climb",
	// Corporate actions
	"merger", "acquisition", "buyback", "deal", "investment",
	"partnership", "stake", "divest",
	// Operational
	"delivery", "deliveries", "production", "sales", "growth",
	"orders", "backlog", "shipment",
	// Financial health
	"margin", "cash flow", "dividend", "debt", "assets", "balance sheet",
	// Market position
	"market share", "competition", "leader", "expansion",
	// Risk factors
	"lawsuit", "investigation", "recall", "regulatory",
	// Indicators
	"%", "billion", "million", "$", "bps",
}

// financialTitleKeywords back the smaller title-signal bonus used by the
// summary-weighted and hint-overlap policies.
var financialTitleKeywords = []string{
	"guidance", "margin", "eps", "revenue", "earnings", "profit",
	"beat", "miss", "outlook", "forecast", "upgrade", "downgrade",
	"q1", "q2", "q3", "q4", "%", "surge", "plunge", "rally", "drop",
	"delivery", "deliveries", "production", "sales", "growth",
}

// ScoringPolicy is a named weight vector over the scoring signals. Only
// signals with a non-zero weight are computed.
type ScoringPolicy struct {
	Name          string
	BodyLength    float64
	Content       float64
	SummaryLength float64
	TitleSignals  float64
	HintOverlap   float64
}

// ContentWeightedPolicy is the default: content relevance over raw length.
func ContentWeightedPolicy() ScoringPolicy {
	return ScoringPolicy{Name: "content-weighted", BodyLength: 0.30, Content: 0.70}
}

// SummaryWeightedPolicy favors articles with substantial extracted summaries.
func SummaryWeightedPolicy() ScoringPolicy {
	return ScoringPolicy{Name: "summary-weighted", SummaryLength: 0.60, BodyLength: 0.30, TitleSignals: 0.10}
}

// HintOverlapPolicy mixes in the ticker-hint keyword overlap signal. It
// requires enriched keywords on the record to contribute anything.
func HintOverlapPolicy() ScoringPolicy {
	return ScoringPolicy{Name: "hint-overlap", SummaryLength: 0.45, HintOverlap: 0.30, BodyLength: 0.15, TitleSignals: 0.10}
}

// PolicyByName resolves a policy from its configured name.
func PolicyByName(name string) (ScoringPolicy, error) {
	switch name {
	case "", "content-weighted":
		return ContentWeightedPolicy(), nil
	case "summary-weighted":
		return SummaryWeightedPolicy(), nil
	case "hint-overlap":
		return HintOverlapPolicy(), nil
	}
	return ScoringPolicy{}, fmt.Errorf("unknown scoring policy %q", name)
}

// Score computes the composite relevance score for an article under this
// policy. Deterministic, no I/O; missing fields score zero. Result is
// clamped to [0,1].
func (p ScoringPolicy) Score(a model.ArticleRecord, ticker string) float64 {
	total := 0.0
	if p.BodyLength != 0 {
		total += p.BodyLength * scoreBodyLength(a.FullBodyChars)
	}
	if p.Content != 0 {
		total += p.Content * scoreContentRelevance(a.Title, a.Description, a.Summary)
	}
	if p.SummaryLength != 0 {
		total += p.SummaryLength * scoreSummaryLength(a.Summary)
	}
	if p.TitleSignals != 0 {
		total += p.TitleSignals * scoreTitleSignals(a.Title)
	}
	if p.HintOverlap != 0 {
		total += p.HintOverlap * scoreHintOverlap(a.Keywords, ticker)
	}
	if total < 0 {
		return 0
	}
	if total > 1 {
		return 1
	}
	return total
}

// scoreBodyLength applies a plateau curve over body character count:
// 0 at or below 500, linear ramp to 1.0 at 2500, gentle taper to 0.8 at
// 6000, capped at 0.8 beyond. Penalizes snippets and excessive bulk alike.
func scoreBodyLength(n int) float64 {
	if n <= 500 {
		return 0
	}
	if n >= 6000 {
		return 0.8
	}
	if n <= 2500 {
		return float64(n-500) / 2000.0
	}
	return 0.8 + float64(6000-n)/3500.0*0.2
}

// scoreContentRelevance counts financial keywords across the three text
// fields. Title carries the heaviest weight: editors pick impactful words.
func scoreContentRelevance(title, description, summary string) float64 {
	score := 0.0

	if title != "" {
		lower := strings.ToLower(title)
		matches := 0
		for _, kw := range financialKeywords {
			if strings.Contains(lower, kw) {
				matches++
			}
		}
		score += min(float64(matches)/6.0, 1.0) * 0.4
	}

	if description != "" {
		score += min(float64(countKeywordHits(description))/10.0, 1.0) * 0.3
	}

	if summary != "" {
		score += min(float64(countKeywordHits(summary))/10.0, 1.0) * 0.3
	}

	return min(score, 1.0)
}

func countKeywordHits(text string) int {
	lower := strings.ToLower(text)
	hits := 0
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			hits++
		}
	}
	return hits
}

// scoreSummaryLength saturates at 1200 chars of extracted summary.
func scoreSummaryLength(summary string) float64 {
	n := len(summary)
	if n > 1200 {
		n = 1200
	}
	return float64(n) / 1200.0
}

// scoreTitleSignals grants a small bonus per financial keyword in the
// title, capped at 0.15.
func scoreTitleSignals(title string) float64 {
	if title == "" {
		return 0
	}
	lower := strings.ToLower(title)
	score := 0.0
	for _, kw := range financialTitleKeywords {
		if strings.Contains(lower, kw) {
			score += 0.025
		}
	}
	return min(score, 0.15)
}

// scoreHintOverlap is a soft-saturating overlap measure between the
// article's extracted keywords and the ticker's hint vocabulary:
// o/(o+4) gives diminishing returns past roughly four matches.
func scoreHintOverlap(keywords []string, ticker string) float64 {
	if len(keywords) == 0 {
		return 0
	}
	hints := make(map[string]bool)
	for _, h := range HintVocabulary(ticker) {
		hints[strings.ToLower(h)] = true
	}
	overlap := 0
	seen := make(map[string]bool)
	for _, kw := range keywords {
		k := strings.ToLower(strings.TrimSpace(kw))
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		if hints[k] {
			overlap++
		}
	}
	if overlap == 0 {
		return 0
	}
	return float64(overlap) / float64(overlap+4)
}
