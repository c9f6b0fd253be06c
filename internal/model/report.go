package model

import "time"

// MarketReport is everything derived from one session at one timeframe.
type MarketReport struct {
	Session     Session          `json:"session"`
	Timeframe   Timeframe        `json:"timeframe"`
	Market      MarketHistory    `json:"market"`
	Indicators  MarketIndicators `json:"indicators"`
	Analysis    AnalysisResult   `json:"analysis"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// Snapshot condenses the report for the recorder.
func (r *MarketReport) Snapshot() *Snapshot {
	return &Snapshot{
		SessionID: r.Session.ID,
		Timeframe: r.Timeframe,
		Candles:   len(r.Market.History),
		Summary:   r.Market.Summary,
		Analysis:  r.Analysis,
		TakenAt:   r.GeneratedAt,
	}
}
