package model

import "time"

// Session is a saved set of life events with its starting score.
type Session struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	InitialScore float64     `json:"initialScore"`
	Events       []LifeEvent `json:"events"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// Snapshot is one recorded analysis of a session.
type Snapshot struct {
	RunID     string
	SessionID string
	Timeframe Timeframe
	Candles   int
	Summary   MarketSummary
	Analysis  AnalysisResult
	TakenAt   time.Time
}
