package repository

import (
	"database/sql"
	"encoding/json"

	"github.com/PhilSing24/finreport/internal/model"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

func (r *ReportRepository) SaveReport(report *model.TickerReport) error {
	bullets, err := json.Marshal(report.Bullets)
	if err != nil {
		return err
	}

	return r.db.QueryRow(`
		INSERT INTO ticker_report(ticker, period_start, period_end, summary, bullets, article_count, target_chars, model_used)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, report.Ticker, report.PeriodStart, report.PeriodEnd, report.Summary, bullets,
		report.ArticleCount, report.TargetChars, report.ModelUsed).Scan(&report.ID)
}

func (r *ReportRepository) GetByID(id int64) (*model.TickerReport, error) {
	var report model.TickerReport
	var bulletsJSON []byte
	err := r.db.QueryRow(`
		SELECT id, ticker, period_start, period_end, summary, bullets, article_count, target_chars, model_used, created_at
		FROM ticker_report
		WHERE id = $1
	`, id).Scan(&report.ID, &report.Ticker, &report.PeriodStart, &report.PeriodEnd,
		&report.Summary, &bulletsJSON, &report.ArticleCount, &report.TargetChars,
		&report.ModelUsed, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(bulletsJSON, &report.Bullets); err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *ReportRepository) GetLatestByTicker(ticker string) (*model.TickerReport, error) {
	var report model.TickerReport
	var bulletsJSON []byte
	err := r.db.QueryRow(`
		SELECT id, ticker, period_start, period_end, summary, bullets, article_count, target_chars, model_used, created_at
		FROM ticker_report
		WHERE ticker = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, ticker).Scan(&report.ID, &report.Ticker, &report.PeriodStart, &report.PeriodEnd,
		&report.Summary, &bulletsJSON, &report.ArticleCount, &report.TargetChars,
		&report.ModelUsed, &report.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(bulletsJSON, &report.Bullets); err != nil {
		return nil, err
	}

	return &report, nil
}

func (r *ReportRepository) GetReports(limit, offset int) ([]model.TickerReport, error) {
	rows, err := r.db.Query(`
		SELECT id, ticker, period_start, period_end, summary, bullets, article_count, target_chars, model_used, created_at
		FROM ticker_report
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []model.TickerReport
	for rows.Next() {
		var report model.TickerReport
		var bulletsJSON []byte
		err := rows.Scan(&report.ID, &report.Ticker, &report.PeriodStart, &report.PeriodEnd,
			&report.Summary, &bulletsJSON, &report.ArticleCount, &report.TargetChars,
			&report.ModelUsed, &report.CreatedAt)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(bulletsJSON, &report.Bullets); err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return reports, nil
}

func (r *ReportRepository) GetReportTotal() (int, error) {
	var total int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM ticker_report`).Scan(&total)
	return total, err
}
