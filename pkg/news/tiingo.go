package news

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"
)

// trustedSource is the only publisher domain whose article pages we can
// reliably fetch full bodies from.
const trustedSource = "finance.yahoo.com"

type TiingoClient struct {
	token      string
	httpClient *http.Client
}

func NewTiingoClient(token string) *TiingoClient {
	return &TiingoClient{
		token:      token,
		httpClient: &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *TiingoClient) Name() string {
	return "Tiingo"
}

// FetchCompanyNews returns articles tagged with exactly the requested ticker
// and published within [start, end). Multi-ticker roundups and untrusted
// sources are dropped here so downstream stages only see fetchable,
// single-company articles.
func (c *TiingoClient) FetchCompanyNews(ctx context.Context, ticker string, start, end time.Time) ([]Article, error) {
	url := fmt.Sprintf(
		"https://api.tiingo.com/tiingo/news?tickers=%s&startDate=%s&endDate=%s&limit=1000&token=%s",
		strings.ToLower(ticker), start.Format("2006-01-02"), end.Format("2006-01-02"), c.token,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("tiingo request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tiingo fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tiingo fetch: unexpected status %d", resp.StatusCode)
	}

	var raw []tiingoItem
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("tiingo decode: %w", err)
	}

	want := strings.ToUpper(ticker)
	var articles []Article
	for _, item := range raw {
		source := strings.ToLower(strings.TrimSpace(item.Source))
		if source != trustedSource {
			continue
		}

		tickers := normalizeTickers(item.Tickers)
		if len(tickers) != 1 || tickers[0] != want {
			continue
		}

		publishedAt, err := time.Parse(time.RFC3339, item.PublishedDate)
		if err != nil {
			publishedAt = time.Time{}
		}

		articles = append(articles, Article{
			ExternalID:  "tiingo:" + strconv.FormatInt(item.ID, 10),
			Title:       item.Title,
			Description: item.Description,
			URL:         item.URL,
			Source:      source,
			Tickers:     tickers,
			PublishedAt: publishedAt,
		})
	}

	return articles, nil
}

func normalizeTickers(raw []string) []string {
	set := make(map[string]bool)
	for _, t := range raw {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			set[t] = true
		}
	}
	tickers := make([]string, 0, len(set))
	for t := range set {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}

type tiingoItem struct {
	ID            int64    `json:"id"`
	PublishedDate string   `json:"publishedDate"`
	CrawlDate     string   `json:"crawlDate"`
	Title         string   `json:"title"`
	URL           string   `json:"url"`
	Description   string   `json:"description"`
	Source        string   `json:"source"`
	Tickers       []string `json:"tickers"`
}
