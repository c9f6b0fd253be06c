package collector

import (
	"context"
	"fmt"
	"log"
	"time"

	"LifeMarket/internal/calculator"
	"LifeMarket/internal/model"
	"LifeMarket/internal/strategy"
	"LifeMarket/internal/synth"
)

// MockSource serves a fixed set of sessions for development and testing.
type MockSource struct {
	Sessions []model.Session
}

func (m *MockSource) Get(_ context.Context, id string) (*model.Session, error) {
	for i := range m.Sessions {
		if m.Sessions[i].ID == id {
			s := m.Sessions[i]
			return &s, nil
		}
	}
	return nil, fmt.Errorf("session %s not found", id)
}

func (m *MockSource) List(_ context.Context) ([]model.Session, error) {
	return m.Sessions, nil
}

// Collector turns saved sessions into market reports.
type Collector struct {
	Source Source
	Now    func() time.Time
}

// NewCollector creates a new Collector.
func NewCollector(source Source) *Collector {
	return &Collector{Source: source, Now: time.Now}
}

// Collect loads a session and computes its history, indicators and analysis.
func (c *Collector) Collect(ctx context.Context, id string, tf model.Timeframe) (*model.MarketReport, error) {
	sess, err := c.Source.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return c.Build(sess, tf), nil
}

// CollectAll builds a report for every stored session, stopping early if
// ctx is cancelled.
func (c *Collector) CollectAll(ctx context.Context, tf model.Timeframe) ([]*model.MarketReport, error) {
	sessions, err := c.Source.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	reports := make([]*model.MarketReport, 0, len(sessions))
	for i := range sessions {
		if err := ctx.Err(); err != nil {
			return reports, err
		}
		reports = append(reports, c.Build(&sessions[i], tf))
	}
	return reports, nil
}

// Build computes a report for an in-memory session.
func (c *Collector) Build(sess *model.Session, tf model.Timeframe) *model.MarketReport {
	now := c.Now()
	market := synth.GenerateMarketHistory(sess.InitialScore, sess.Events, tf, synth.WithNow(now))
	if parsed, err := model.ParseTimeframe(string(tf)); err == nil {
		tf = parsed
	} else {
		log.Printf("[WARN] session %s: %v, using %s", sess.ID, err, model.Timeframe1H)
		tf = model.Timeframe1H
	}

	ind := calculator.Indicators(market.History)
	if len(ind.RSI) == 0 {
		log.Printf("[WARN] session %s: %d %s candles, RSI unavailable", sess.ID, len(market.History), tf)
	}
	if len(ind.MACD.MACDLine) == 0 {
		log.Printf("[WARN] session %s: %d %s candles, MACD unavailable", sess.ID, len(market.History), tf)
	}

	return &model.MarketReport{
		Session:     *sess,
		Timeframe:   tf,
		Market:      market,
		Indicators:  ind,
		Analysis:    strategy.Analyze(market.History),
		GeneratedAt: now,
	}
}
