package handler

type ReportResponse struct {
	ID           int64    `json:"id"`
	Ticker       string   `json:"ticker"`
	PeriodStart  string   `json:"period_start"`
	PeriodEnd    string   `json:"period_end"`
	Summary      string   `json:"summary"`
	Bullets      []string `json:"bullets"`
	ArticleCount int      `json:"article_count"`
	TargetChars  int      `json:"target_chars"`
	ModelUsed    string   `json:"model_used"`
	CreatedAt    string   `json:"created_at"`
}

type ReportsResponse struct {
	Reports []ReportResponse `json:"reports"`
	Total   int              `json:"total"`
	Limit   int              `json:"limit"`
	Offset  int              `json:"offset"`
}
