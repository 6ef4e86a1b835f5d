package news

import (
	"context"
	"strconv"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) FetchCompanyNews(ctx context.Context, ticker string, start, end time.Time) ([]Article, error) {
	symbol := strings.ToUpper(ticker)

	res, _, err := c.client.CompanyNews(ctx).
		Symbol(symbol).
		From(start.Format("2006-01-02")).
		To(end.Format("2006-01-02")).
		Execute()
	if err != nil {
		return nil, err
	}

	var articles []Article

	for _, news := range res {
		a := Article{
			Tickers: []string{symbol},
		}

		if news.Id != nil {
			a.ExternalID = "finnhub:" + strconv.FormatInt(*news.Id, 10)
		}

		if news.Headline != nil {
			a.Title = *news.Headline
		}

		if news.Summary != nil {
			a.Description = *news.Summary
		}

		if news.Url != nil {
			a.URL = *news.Url
		}

		if news.Datetime != nil {
			a.PublishedAt = time.Unix(*news.Datetime, 0).UTC()
		}

		if news.Source != nil {
			a.Source = strings.ToLower(*news.Source)
		}

		// CompanyNews takes whole days; trim to the exact window.
		if !a.PublishedAt.IsZero() && (a.PublishedAt.Before(start) || !a.PublishedAt.Before(end)) {
			continue
		}

		articles = append(articles, a)
	}

	return articles, nil
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}
