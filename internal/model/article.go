package model

import "time"

const (
	FetchStatusOK      = "ok"
	FetchStatusPending = "pending"
	FetchStatusFailed  = "failed"
)

// ArticleRecord is a raw news article as stored by the fetcher. Records are
// read-only once ingested; enrichment fills Summary and Keywords in place.
type ArticleRecord struct {
	ID            int64
	PublishedAt   time.Time
	Title         string
	URL           string
	Source        string
	Tickers       []string
	Description   string
	Summary       string
	Keywords      []string
	FullBody      string
	FullBodyChars int
	FetchStatus   string
	FetchedAt     time.Time
}

// HasTicker reports whether the record is tagged with the given symbol.
func (a ArticleRecord) HasTicker(ticker string) bool {
	for _, t := range a.Tickers {
		if t == ticker {
			return true
		}
	}
	return false
}
