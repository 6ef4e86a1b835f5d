package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/PhilSing24/finreport/db"
	"github.com/PhilSing24/finreport/internal/keywords"
	"github.com/PhilSing24/finreport/internal/model"
	"github.com/PhilSing24/finreport/internal/repository"
	"github.com/PhilSing24/finreport/pkg/news"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	const (
		maxRetries  = 3
		popTimeout  = 30 * time.Second
		topKeywords = 8
	)

	err := db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	articleRepository := repository.NewArticleRepository(db.DB)
	bodyFetcher := news.NewBodyFetcher()
	extractor := keywords.NewTermExtractor()
	ctx := context.Background()

	for {
		id, err := db.PopFromQueue(db.EnrichQueueKey, popTimeout)
		if err != nil {
			slog.Error("error popping from Redis queue", "error", err)
			break
		}

		articleId, err := strconv.ParseInt(id, 10, 64)
		if err != nil {
			slog.Error("invalid article id in queue", "id", id, "error", err)
			continue
		}

		errorCount, err := articleRepository.GetEnrichmentErrorCount(articleId)
		if err != nil {
			slog.Error("error getting error count", "error", err, "article_id", articleId)
			continue
		}

		if errorCount >= maxRetries {
			slog.Warn("article exceeded max retries, marking as failed", "article_id", articleId, "error_count", errorCount)
			articleRepository.UpdateFetchStatus(articleId, model.FetchStatusFailed)
			db.PushToQueue(db.DeadLetterKey, id)
			continue
		}

		article, err := articleRepository.GetByID(articleId)
		if err != nil {
			slog.Error("error getting article from DB", "error", err, "article_id", articleId)
			continue
		}

		if article == nil {
			slog.Warn("article not found in DB", "article_id", articleId)
			continue
		}

		body := article.FullBody
		if body == "" {
			body, err = bodyFetcher.FetchArticleBody(ctx, article.URL)
			if err != nil {
				slog.Error("error fetching article body", "error", err, "article_id", articleId, "url", article.URL)

				articleRepository.SaveEnrichmentError(articleId, err.Error(), "body_fetch_error")

				db.PushToQueue(db.EnrichQueueKey, id)

				time.Sleep(5 * time.Second)
				continue
			}
		}

		ticker := ""
		if len(article.Tickers) > 0 {
			ticker = article.Tickers[0]
		}

		summary := keywords.ExtractiveSummary(body)
		terms := extractor.Extract(body, ticker, topKeywords)

		err = articleRepository.SaveEnrichment(articleId, body, summary, terms)
		if err != nil {
			slog.Error("error saving enrichment", "error", err, "article_id", articleId)
			continue
		}

		slog.Info("article enriched successfully", "article_id", articleId, "body_chars", len(body), "keywords", len(terms))
	}

}
