package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PhilSing24/finreport/db"
	"github.com/PhilSing24/finreport/internal/model"
	"github.com/PhilSing24/finreport/internal/report"
	"github.com/PhilSing24/finreport/internal/repository"
	"github.com/PhilSing24/finreport/internal/selection"
	"github.com/PhilSing24/finreport/internal/summarize"
	"github.com/PhilSing24/finreport/pkg/llm"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagTicker       string
	flagStart        string
	flagEnd          string
	flagMaxArticles  int
	flagMinBodyChars int
	flagTargetChars  int
	flagPolicy       string
	flagLambda       float64
	flagNoDiversity  bool
	flagOutDir       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "reporter",
		Short: "Generate an investor-style period summary for one ticker",
		RunE:  run,
	}

	rootCmd.Flags().StringVar(&flagTicker, "ticker", "NVDA", "ticker symbol, e.g. NVDA or TSLA")
	rootCmd.Flags().StringVar(&flagStart, "start", "", "period start, YYYY-MM-DD (inclusive)")
	rootCmd.Flags().StringVar(&flagEnd, "end", "", "period end, YYYY-MM-DD (exclusive)")
	rootCmd.Flags().IntVar(&flagMaxArticles, "max-articles", 12, "max articles to summarize")
	rootCmd.Flags().IntVar(&flagMinBodyChars, "min-body-chars", 800, "minimum article body length")
	rootCmd.Flags().IntVar(&flagTargetChars, "target-chars", summarize.DefaultTargetChars, "target summary length")
	rootCmd.Flags().StringVar(&flagPolicy, "policy", "content-weighted", "scoring policy: content-weighted, summary-weighted or hint-overlap")
	rootCmd.Flags().Float64Var(&flagLambda, "lambda", selection.DefaultLambda, "MMR relevance/diversity balance")
	rootCmd.Flags().BoolVar(&flagNoDiversity, "no-diversity", false, "pick plain top-by-score instead of MMR")
	rootCmd.Flags().StringVar(&flagOutDir, "out", "build", "directory for the rendered Markdown report")
	rootCmd.MarkFlagRequired("start")
	rootCmd.MarkFlagRequired("end")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	ticker := strings.ToUpper(flagTicker)

	start, err := time.Parse("2006-01-02", flagStart)
	if err != nil {
		return fmt.Errorf("invalid --start: %w", err)
	}
	end, err := time.Parse("2006-01-02", flagEnd)
	if err != nil {
		return fmt.Errorf("invalid --end: %w", err)
	}
	if !start.Before(end) {
		return fmt.Errorf("--start must be before --end")
	}

	policy, err := selection.PolicyByName(flagPolicy)
	if err != nil {
		return err
	}

	if err := db.Connect(); err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	client, err := llm.NewClientFromEnv()
	if err != nil {
		log.Fatalf("error configuring LLM client: %v", err)
	}

	articleRepo := repository.NewArticleRepository(db.DB)
	reportRepo := repository.NewReportRepository(db.DB)

	selector := selection.NewSelector(articleRepo, policy).WithLambda(flagLambda)
	summarizer := summarize.NewSummarizer(client)

	ctx := context.Background()

	articles, err := selector.Select(ctx, ticker, start, end, flagMaxArticles, flagMinBodyChars, !flagNoDiversity)
	if err != nil {
		return fmt.Errorf("select articles: %w", err)
	}
	slog.Info("articles selected", "ticker", ticker, "count", len(articles), "policy", policy.Name)

	summary, bullets, err := summarizer.SummarizeTicker(ctx, ticker, start, end, articles, flagTargetChars)
	if err != nil {
		return fmt.Errorf("summarize %s: %w", ticker, err)
	}

	rec := &model.TickerReport{
		Ticker:       ticker,
		PeriodStart:  start,
		PeriodEnd:    end,
		Summary:      summary,
		Bullets:      bullets,
		ArticleCount: len(articles),
		TargetChars:  flagTargetChars,
		ModelUsed:    client.Model(),
	}
	if err := reportRepo.SaveReport(rec); err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	urls := make([]string, 0, len(articles))
	for _, a := range articles {
		if a.URL != "" {
			urls = append(urls, a.URL)
		}
	}
	md := report.Render(ticker, start, end, summary, urls)

	if err := os.MkdirAll(flagOutDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	outPath := filepath.Join(flagOutDir, report.FileName(ticker, start, end))
	if err := os.WriteFile(outPath, []byte(md), 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	slog.Info("report written", "report_id", rec.ID, "path", outPath,
		"articles", len(articles), "bullets", len(bullets), "chars", len(summary))
	return nil
}
