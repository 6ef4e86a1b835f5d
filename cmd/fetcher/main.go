package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/PhilSing24/finreport/db"
	"github.com/PhilSing24/finreport/internal/model"
	"github.com/PhilSing24/finreport/internal/repository"
	"github.com/PhilSing24/finreport/pkg/news"

	"github.com/joho/godotenv"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	err := db.Connect()
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis()
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	var clients []news.NewsClient
	if token := os.Getenv("TIINGO_API_TOKEN"); token != "" {
		clients = append(clients, news.NewTiingoClient(token))
	}
	if key := os.Getenv("FINNHUB_API_KEY"); key != "" {
		clients = append(clients, news.NewFinnHubClient(key))
	}

	if len(clients) == 0 {
		slog.Error("no news source API keys configured")
		return
	}

	tickers := strings.Split(envDefault("FETCH_TICKERS", "NVDA,TSLA"), ",")
	days, err := strconv.Atoi(envDefault("FETCH_DAYS", "1"))
	if err != nil || days < 1 {
		days = 1
	}

	end := time.Now().UTC().Truncate(24 * time.Hour).Add(24 * time.Hour)
	start := end.AddDate(0, 0, -days)

	repo := repository.NewArticleRepository(db.DB)
	ctx := context.Background()

	for _, ticker := range tickers {
		ticker = strings.ToUpper(strings.TrimSpace(ticker))
		if ticker == "" {
			continue
		}

		for _, client := range clients {
			source := client.Name()

			fetchedArticles, err := client.FetchCompanyNews(ctx, ticker, start, end)
			if err != nil {
				slog.Error("error fetching articles", "source", source, "ticker", ticker, "error", err)
				continue
			}

			var saved, duplicated, errors int

			for _, a := range fetchedArticles {
				article := model.ArticleRecord{
					Title:       a.Title,
					URL:         a.URL,
					Source:      a.Source,
					Tickers:     a.Tickers,
					Description: a.Description,
					FetchStatus: model.FetchStatusPending,
					PublishedAt: a.PublishedAt,
				}

				success, err := repo.SaveArticle(&article)
				if err != nil {
					slog.Error("error saving article", "source", source, "error", err)
					errors++
					continue
				}

				if !success {
					slog.Info("duplicate article skipped", "source", source, "url", a.URL)
					duplicated++
					continue
				}

				saved++

				err = db.PushToQueue(db.EnrichQueueKey, strconv.FormatInt(article.ID, 10))
				if err != nil {
					slog.Error("error pushing to Redis queue", "source", source, "error", err, "article_id", article.ID)
					errors++
				}
			}

			slog.Info("fetch complete", "source", source, "ticker", ticker,
				"saved", saved, "duplicated", duplicated, "errors", errors)
		}
	}
}

func envDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
