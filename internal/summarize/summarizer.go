package summarize

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/PhilSing24/finreport/internal/model"
)

// Completer issues one completion request. All retry and fallback policy
// lives behind this interface; the summarizer never retries.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

const (
	// LengthTolerance is the soft bound around the target summary length.
	LengthTolerance = 0.10

	// DefaultCallDelay paces map-stage completion calls to respect
	// upstream quotas.
	DefaultCallDelay = 500 * time.Millisecond

	DefaultTargetChars = 1800
)

// Summarizer condenses a selected article set into a bounded-length
// investor narrative via map, reduce and final-synthesis stages.
type Summarizer struct {
	completer Completer
	callDelay time.Duration

	// failFast aborts the whole run when one article's map stage errors.
	// Off by default: a failing article contributes zero bullets.
	failFast bool
}

func NewSummarizer(completer Completer) *Summarizer {
	return &Summarizer{completer: completer, callDelay: DefaultCallDelay}
}

// WithCallDelay overrides the inter-call delay between map-stage chunks.
func (s *Summarizer) WithCallDelay(d time.Duration) *Summarizer {
	s.callDelay = d
	return s
}

// WithFailFast makes a single article's map-stage failure abort the run
// instead of contributing zero bullets.
func (s *Summarizer) WithFailFast(on bool) *Summarizer {
	s.failFast = on
	return s
}

// MapArticle extracts up to 12 factual bullets from one article body. The
// body is split into paragraphs, grouped into chunks, and each chunk costs
// one completion call. A body with no qualifying paragraph returns nil
// without calling the backend.
func (s *Summarizer) MapArticle(ctx context.Context, body, ticker string) ([]string, error) {
	paras := splitParagraphs(body)
	if len(paras) == 0 {
		return nil, nil
	}

	chunks := groupParagraphs(paras, maxChunkChars)
	var all []string
	for i, chunk := range chunks {
		if i > 0 && s.callDelay > 0 {
			if err := sleepCtx(ctx, s.callDelay); err != nil {
				return nil, err
			}
		}
		out, err := s.completer.Complete(ctx, fmt.Sprintf(mapPrompt, ticker, chunk))
		if err != nil {
			return nil, fmt.Errorf("map chunk %d/%d: %w", i+1, len(chunks), err)
		}
		all = append(all, parseBullets(out)...)
	}
	return dedupeBullets(all, maxArticleBullets), nil
}

// ReduceBullets consolidates per-article bullet lists into at most 18
// deduplicated bullets with one completion call. Empty input returns nil
// without calling the backend.
func (s *Summarizer) ReduceBullets(ctx context.Context, perArticle [][]string, ticker string) ([]string, error) {
	var flat []string
	for _, bullets := range perArticle {
		flat = append(flat, bullets...)
	}
	if len(flat) == 0 {
		return nil, nil
	}

	out, err := s.completer.Complete(ctx, fmt.Sprintf(reducePrompt, ticker, formatBullets(flat)))
	if err != nil {
		return nil, fmt.Errorf("reduce bullets: %w", err)
	}
	return dedupeBullets(parseBullets(out), maxConsolidatedBullets), nil
}

// FinalSummary composes the investor narrative from consolidated bullets.
// Length is soft-guided: the prompt states the target and the acceptable
// range, and the output is never cut mid-sentence. Empty bullets return
// the deterministic no-news message without a backend call.
func (s *Summarizer) FinalSummary(ctx context.Context, ticker string, start, end time.Time, bullets []string, targetChars int) (string, error) {
	if len(bullets) == 0 {
		return EmptyPeriodMessage(ticker, start, end), nil
	}
	if targetChars <= 0 {
		targetChars = DefaultTargetChars
	}
	minChars := int(float64(targetChars) * (1 - LengthTolerance))
	maxChars := int(float64(targetChars) * (1 + LengthTolerance))

	prompt := fmt.Sprintf(finalPrompt,
		ticker, start.Format("2006-01-02"), end.Format("2006-01-02"),
		targetChars, minChars, maxChars, maxChars, formatBullets(bullets))

	out, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		return "", fmt.Errorf("final synthesis: %w", err)
	}
	return strings.TrimSpace(out), nil
}

// SummarizeTicker runs the full map-reduce pipeline over an already
// selected article set and returns the narrative plus the consolidated
// bullets it was built from.
func (s *Summarizer) SummarizeTicker(ctx context.Context, ticker string, start, end time.Time, articles []model.ArticleRecord, targetChars int) (string, []string, error) {
	var perArticle [][]string
	for _, a := range articles {
		if a.FullBody == "" {
			continue
		}
		bullets, err := s.MapArticle(ctx, a.FullBody, ticker)
		if err != nil {
			if s.failFast || ctx.Err() != nil {
				return "", nil, fmt.Errorf("article %d: %w", a.ID, err)
			}
			slog.Warn("map stage failed, skipping article", "article_id", a.ID, "error", err)
			continue
		}
		if len(bullets) > 0 {
			perArticle = append(perArticle, bullets)
		}
	}

	consolidated, err := s.ReduceBullets(ctx, perArticle, ticker)
	if err != nil {
		return "", nil, err
	}

	summary, err := s.FinalSummary(ctx, ticker, start, end, consolidated, targetChars)
	if err != nil {
		return "", nil, err
	}
	return summary, consolidated, nil
}

// EmptyPeriodMessage is the deterministic output for a period with no
// finance-relevant news.
func EmptyPeriodMessage(ticker string, start, end time.Time) string {
	return fmt.Sprintf("No finance-relevant news selected for %s in [%s → %s)",
		ticker, start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func formatBullets(bullets []string) string {
	var sb strings.Builder
	for _, b := range bullets {
		sb.WriteString("- ")
		sb.WriteString(b)
		sb.WriteString("\n")
	}
	return sb.String()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
