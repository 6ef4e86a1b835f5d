package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/PhilSing24/finreport/internal/model"
)

type fakeCompleter struct {
	responses []string
	calls     int
	prompts   []string
	failWhen  func(prompt string) error
}

func (f *fakeCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	f.calls++
	f.prompts = append(f.prompts, prompt)
	if f.failWhen != nil {
		if err := f.failWhen(prompt); err != nil {
			return "", err
		}
	}
	if len(f.responses) == 0 {
		return "- default bullet from the backend", nil
	}
	resp := f.responses[0]
	if len(f.responses) > 1 {
		f.responses = f.responses[1:]
	}
	return resp, nil
}

func para(n int) string {
	return strings.Repeat("Revenue grew and margins expanded this quarter. ", n/48+1)[:n]
}

func TestSplitParagraphs(t *testing.T) {
	text := para(100) + "\n\n" + "short line" + "\n \n" + para(200) + "\n\n\n" + "tiny"
	paras := splitParagraphs(text)
	if len(paras) != 2 {
		t.Fatalf("got %d paragraphs, want 2", len(paras))
	}
	for _, p := range paras {
		if len(p) <= minParagraphChars {
			t.Errorf("kept paragraph of %d chars", len(p))
		}
	}

	if got := splitParagraphs(""); len(got) != 0 {
		t.Errorf("empty text produced %d paragraphs", len(got))
	}
}

func TestGroupParagraphsRespectsBudget(t *testing.T) {
	paras := []string{para(700), para(700), para(700), para(700)}
	chunks := groupParagraphs(paras, 1800)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks, want 2", len(chunks))
	}
	for i, c := range chunks {
		if len(c) > 1800 {
			t.Errorf("chunk %d is %d chars, over budget", i, len(c))
		}
	}

	// A single oversized paragraph still becomes one chunk.
	chunks = groupParagraphs([]string{para(2500)}, 1800)
	if len(chunks) != 1 {
		t.Errorf("oversized paragraph split into %d chunks", len(chunks))
	}
}

func TestMapArticleNoQualifyingParagraphs(t *testing.T) {
	backend := &fakeCompleter{}
	s := NewSummarizer(backend).WithCallDelay(0)

	bullets, err := s.MapArticle(context.Background(), "short\n\nalso short\n\ntiny", "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bullets != nil {
		t.Errorf("got %v, want nil", bullets)
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestMapArticleParsesAndDedupes(t *testing.T) {
	backend := &fakeCompleter{responses: []string{
		"- Revenue rose 50% to $30B\n• Margin expanded to 75%\n- revenue rose 50% to $30b\n- ok\n\n- Guidance raised for Q4",
	}}
	s := NewSummarizer(backend).WithCallDelay(0)

	bullets, err := s.MapArticle(context.Background(), para(500), "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.calls != 1 {
		t.Fatalf("backend called %d times, want 1", backend.calls)
	}
	want := []string{"Revenue rose 50% to $30B", "Margin expanded to 75%", "Guidance raised for Q4"}
	if len(bullets) != len(want) {
		t.Fatalf("got %v, want %v", bullets, want)
	}
	for i := range want {
		if bullets[i] != want[i] {
			t.Errorf("bullet %d: got %q, want %q", i, bullets[i], want[i])
		}
	}
}

func TestMapArticleCapsAtTwelve(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, fmt.Sprintf("- Distinct fact number %d about earnings", i))
	}
	backend := &fakeCompleter{responses: []string{strings.Join(lines, "\n")}}
	s := NewSummarizer(backend).WithCallDelay(0)

	bullets, err := s.MapArticle(context.Background(), para(500), "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(bullets) != maxArticleBullets {
		t.Errorf("got %d bullets, want %d", len(bullets), maxArticleBullets)
	}
}

func TestMapArticleChunksLongBodies(t *testing.T) {
	body := para(1500) + "\n\n" + para(1500) + "\n\n" + para(1500)
	backend := &fakeCompleter{}
	s := NewSummarizer(backend).WithCallDelay(0)

	_, err := s.MapArticle(context.Background(), body, "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.calls != 3 {
		t.Errorf("backend called %d times, want 3", backend.calls)
	}
	for _, p := range backend.prompts {
		if !strings.Contains(p, "NVDA") {
			t.Errorf("prompt missing ticker")
		}
	}
}

func TestReduceBulletsEmptyInput(t *testing.T) {
	backend := &fakeCompleter{}
	s := NewSummarizer(backend).WithCallDelay(0)

	got, err := s.ReduceBullets(context.Background(), nil, "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil || backend.calls != 0 {
		t.Errorf("got %v with %d calls, want nil with 0 calls", got, backend.calls)
	}

	got, err = s.ReduceBullets(context.Background(), [][]string{{}, {}}, "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil || backend.calls != 0 {
		t.Errorf("all-empty lists: got %v with %d calls, want nil with 0 calls", got, backend.calls)
	}
}

func TestReduceBulletsConsolidates(t *testing.T) {
	backend := &fakeCompleter{responses: []string{
		"- Revenue rose 50%\n- Margin expanded\n- Revenue rose 50%",
	}}
	s := NewSummarizer(backend).WithCallDelay(0)

	got, err := s.ReduceBullets(context.Background(), [][]string{
		{"Revenue rose 50%", "Guidance raised"},
		{"Margin expanded"},
	}, "NVDA")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.calls != 1 {
		t.Errorf("backend called %d times, want 1", backend.calls)
	}
	if len(got) != 2 {
		t.Errorf("got %v, want 2 deduplicated bullets", got)
	}
	if !strings.Contains(backend.prompts[0], "- Guidance raised") {
		t.Errorf("reduce prompt missing flattened input bullets")
	}
}

func TestFinalSummaryEmptyBullets(t *testing.T) {
	backend := &fakeCompleter{}
	s := NewSummarizer(backend).WithCallDelay(0)
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	got, err := s.FinalSummary(context.Background(), "NVDA", start, end, nil, 1800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "No finance-relevant news selected for NVDA in [2025-10-01 → 2025-10-08)"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
}

func TestFinalSummarySoftLength(t *testing.T) {
	long := strings.Repeat("The company grew revenue and raised guidance. ", 60)
	backend := &fakeCompleter{responses: []string{"  " + long + "  "}}
	s := NewSummarizer(backend).WithCallDelay(0)
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	got, err := s.FinalSummary(context.Background(), "NVDA", start, end, []string{"Revenue rose"}, 1000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Soft guidance: output is trimmed, never truncated.
	if got != strings.TrimSpace(long) {
		t.Errorf("output was altered beyond whitespace trimming")
	}

	p := backend.prompts[0]
	for _, want := range []string{"approximately 1000 characters", "900-1100 characters"} {
		if !strings.Contains(p, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestSummarizeTickerSkipsFailingArticle(t *testing.T) {
	boom := errors.New("backend exploded")
	backend := &fakeCompleter{
		failWhen: func(prompt string) error {
			if strings.Contains(prompt, "POISON") {
				return boom
			}
			return nil
		},
		responses: []string{"- fact one", "- fact two", "- fact one\n- fact two", "A calm narrative."},
	}
	s := NewSummarizer(backend).WithCallDelay(0)
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	articles := []model.ArticleRecord{
		{ID: 1, FullBody: para(500)},
		{ID: 2, FullBody: "POISON " + para(500)},
		{ID: 3, FullBody: para(500)},
	}

	summary, bullets, err := s.SummarizeTicker(context.Background(), "NVDA", start, end, articles, 1800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "A calm narrative." {
		t.Errorf("got summary %q", summary)
	}
	if len(bullets) != 2 {
		t.Errorf("got %d consolidated bullets, want 2", len(bullets))
	}
}

func TestSummarizeTickerFailFast(t *testing.T) {
	boom := errors.New("backend exploded")
	backend := &fakeCompleter{
		failWhen: func(prompt string) error {
			if strings.Contains(prompt, "POISON") {
				return boom
			}
			return nil
		},
	}
	s := NewSummarizer(backend).WithCallDelay(0).WithFailFast(true)
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	articles := []model.ArticleRecord{
		{ID: 1, FullBody: "POISON " + para(500)},
		{ID: 2, FullBody: para(500)},
	}

	_, _, err := s.SummarizeTicker(context.Background(), "NVDA", start, end, articles, 1800)
	if !errors.Is(err, boom) {
		t.Fatalf("got %v, want wrapped backend error", err)
	}
}

func TestSummarizeTickerNoArticles(t *testing.T) {
	backend := &fakeCompleter{}
	s := NewSummarizer(backend).WithCallDelay(0)
	start := time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 10, 8, 0, 0, 0, 0, time.UTC)

	summary, bullets, err := s.SummarizeTicker(context.Background(), "NVDA", start, end, nil, 1800)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if backend.calls != 0 {
		t.Errorf("backend called %d times, want 0", backend.calls)
	}
	if len(bullets) != 0 {
		t.Errorf("got bullets %v, want none", bullets)
	}
	if summary != EmptyPeriodMessage("NVDA", start, end) {
		t.Errorf("got %q, want empty-period message", summary)
	}
}

func TestSummarizeTickerCancelledContext(t *testing.T) {
	backend := &fakeCompleter{}
	s := NewSummarizer(backend)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	body := para(1500) + "\n\n" + para(1500) + "\n\n" + para(1500)
	_, err := s.MapArticle(ctx, body, "NVDA")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("got %v, want context.Canceled", err)
	}
}
