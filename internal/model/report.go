package model

import "time"

// TickerReport is a generated investor narrative for one ticker over a
// [PeriodStart, PeriodEnd) window.
type TickerReport struct {
	ID           int64
	Ticker       string
	PeriodStart  time.Time
	PeriodEnd    time.Time
	Summary      string
	Bullets      []string
	ArticleCount int
	TargetChars  int
	ModelUsed    string
	CreatedAt    time.Time
}
