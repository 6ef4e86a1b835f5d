package news

import (
	"context"
	"time"
)

type Article struct {
	ExternalID  string
	Title       string
	Description string
	URL         string
	Source      string
	Tickers     []string
	PublishedAt time.Time
}

type NewsClient interface {
	FetchCompanyNews(ctx context.Context, ticker string, start, end time.Time) ([]Article, error)
	Name() string
}
