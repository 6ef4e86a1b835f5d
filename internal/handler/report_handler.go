package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PhilSing24/finreport/internal/model"

	"github.com/gin-gonic/gin"
)

type ReportStore interface {
	GetReports(limit, offset int) ([]model.TickerReport, error)
	GetReportTotal() (int, error)
	GetLatestByTicker(ticker string) (*model.TickerReport, error)
	GetByID(id int64) (*model.TickerReport, error)
}

type ReportHandler struct {
	repository ReportStore
}

func NewReportHandler(repository ReportStore) *ReportHandler {
	return &ReportHandler{repository: repository}
}

func toReportResponse(r model.TickerReport) ReportResponse {
	return ReportResponse{
		ID:           r.ID,
		Ticker:       r.Ticker,
		PeriodStart:  r.PeriodStart.Format("2006-01-02"),
		PeriodEnd:    r.PeriodEnd.Format("2006-01-02"),
		Summary:      r.Summary,
		Bullets:      r.Bullets,
		ArticleCount: r.ArticleCount,
		TargetChars:  r.TargetChars,
		ModelUsed:    r.ModelUsed,
		CreatedAt:    r.CreatedAt.Format(time.RFC3339),
	}
}

func (h *ReportHandler) GetReports(c *gin.Context) {
	limit := getQueryLimit(c)
	offset := getQueryOffset(c)

	reports, err := h.repository.GetReports(limit, offset)
	if err != nil {
		slog.Error("error fetching reports", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.repository.GetReportTotal()
	if err != nil {
		slog.Error("error fetching report total", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := ReportsResponse{
		Reports: []ReportResponse{},
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}
	for _, r := range reports {
		res.Reports = append(res.Reports, toReportResponse(r))
	}

	c.JSON(http.StatusOK, res)
}

func (h *ReportHandler) GetLatestReport(c *gin.Context) {
	ticker := strings.ToUpper(strings.TrimSpace(c.Query("ticker")))
	if ticker == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing ticker parameter"})
		return
	}

	report, err := h.repository.GetLatestByTicker(ticker)
	if err != nil {
		slog.Error("error fetching latest report", "ticker", ticker, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No report available"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(*report))
}

func (h *ReportHandler) GetReport(c *gin.Context) {
	id := c.Param("id")

	reportID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		slog.Error("invalid report id", "id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid report id"})
		return
	}

	report, err := h.repository.GetByID(reportID)
	if err != nil {
		slog.Error("error fetching report", "error", err, "report_id", reportID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Report not found"})
		return
	}

	c.JSON(http.StatusOK, toReportResponse(*report))
}

func (h *ReportHandler) GetHealth(c *gin.Context) {
	_, err := h.repository.GetReportTotal()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramLimit := c.Query(name)

	if paramLimit == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramLimit)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramLimit, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 10
		maxLimit     = 100
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}

func getQueryOffset(c *gin.Context) int {
	offset := getQueryInt("offset", 0, c)
	if offset < 0 {
		slog.Warn("invalid query parameter, using default", "param", "offset", "value", offset, "default", 0)
		return 0
	}
	return offset
}
