package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/PhilSing24/finreport/internal/model"

	"github.com/lib/pq"
)

type ArticleRepository struct {
	db *sql.DB
}

func NewArticleRepository(db *sql.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// SaveArticle inserts a fetched article, skipping URLs already present.
// Returns false when the article was a duplicate.
func (r *ArticleRepository) SaveArticle(article *model.ArticleRecord) (bool, error) {
	var id int64
	err := r.db.QueryRow(`
		INSERT INTO news_article(title, url, source, tickers, description, full_body, full_body_chars, fetch_status, published_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (url) DO NOTHING
		RETURNING id
	`, article.Title, article.URL, article.Source, pq.Array(article.Tickers),
		article.Description, article.FullBody, article.FullBodyChars,
		article.FetchStatus, article.PublishedAt).Scan(&id)

	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	article.ID = id
	return true, nil
}

// QueryByTickerPeriod returns candidate articles for one ticker over
// [start, end), filtered to successfully fetched bodies of at least
// minBodyChars, ordered by publish time. Implements selection.ArticleStore.
func (r *ArticleRepository) QueryByTickerPeriod(ctx context.Context, ticker string, start, end time.Time, minBodyChars int) ([]model.ArticleRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, url, source, tickers, description,
			COALESCE(summary, ''), COALESCE(keywords, '{}'),
			full_body, full_body_chars, fetch_status, published_at, fetched_at
		FROM news_article
		WHERE fetch_status = $1
		  AND $2 = ANY(tickers)
		  AND published_at >= $3
		  AND published_at < $4
		  AND full_body IS NOT NULL
		  AND full_body_chars >= $5
		ORDER BY published_at
	`, model.FetchStatusOK, ticker, start, end, minBodyChars)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []model.ArticleRecord
	for rows.Next() {
		var a model.ArticleRecord
		err := rows.Scan(&a.ID, &a.Title, &a.URL, &a.Source, pq.Array(&a.Tickers),
			&a.Description, &a.Summary, pq.Array(&a.Keywords),
			&a.FullBody, &a.FullBodyChars, &a.FetchStatus, &a.PublishedAt, &a.FetchedAt)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return articles, nil
}

func (r *ArticleRepository) GetByID(id int64) (*model.ArticleRecord, error) {
	var a model.ArticleRecord
	err := r.db.QueryRow(`
		SELECT id, title, url, source, tickers, description,
			COALESCE(summary, ''), COALESCE(keywords, '{}'),
			COALESCE(full_body, ''), full_body_chars, fetch_status, published_at, fetched_at
		FROM news_article
		WHERE id = $1
	`, id).Scan(&a.ID, &a.Title, &a.URL, &a.Source, pq.Array(&a.Tickers),
		&a.Description, &a.Summary, pq.Array(&a.Keywords),
		&a.FullBody, &a.FullBodyChars, &a.FetchStatus, &a.PublishedAt, &a.FetchedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return &a, nil
}

// SaveEnrichment stores the fetched body plus the extractive summary and
// keywords, and marks the article ready for selection.
func (r *ArticleRepository) SaveEnrichment(id int64, body, summary string, keywords []string) error {
	_, err := r.db.Exec(`
		UPDATE news_article
		SET full_body = $1, full_body_chars = $2, summary = $3, keywords = $4,
			fetch_status = $5, fetched_at = NOW()
		WHERE id = $6
	`, body, len(body), summary, pq.Array(keywords), model.FetchStatusOK, id)
	return err
}

func (r *ArticleRepository) UpdateFetchStatus(id int64, status string) error {
	_, err := r.db.Exec(`
		UPDATE news_article SET fetch_status = $1 WHERE id = $2
	`, status, id)
	return err
}

func (r *ArticleRepository) SaveEnrichmentError(articleID int64, errMsg string, errType string) error {
	_, err := r.db.Exec(`
		INSERT INTO enrichment_error(article_id, error_message, error_type)
		VALUES($1, $2, $3)
	`, articleID, errMsg, errType)

	return err
}

func (r *ArticleRepository) GetEnrichmentErrorCount(id int64) (int, error) {
	var count int
	err := r.db.QueryRow(`
		SELECT COUNT(*) FROM enrichment_error
		WHERE article_id = $1
	`, id).Scan(&count)

	return count, err
}
