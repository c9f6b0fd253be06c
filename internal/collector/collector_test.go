package collector

import (
	"context"
	"testing"
	"time"

	"LifeMarket/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, 10, 1, 12, 0, 0, 0, time.UTC)

func newTestCollector() *Collector {
	src := &MockSource{Sessions: []model.Session{
		{ID: "quiet", Name: "Quiet month", InitialScore: 50},
		{ID: "busy", Name: "Busy week", InitialScore: 40, Events: []model.LifeEvent{
			{Name: "Launch", Date: time.Date(2024, 9, 20, 14, 0, 0, 0, time.UTC), Impact: 9, Intensity: 8, Stickiness: 0.7},
			{Name: "Flu", Date: time.Date(2024, 9, 22, 8, 0, 0, 0, time.UTC), Impact: -5, Intensity: 6, Stickiness: 0.2},
		}},
	}}
	c := NewCollector(src)
	c.Now = func() time.Time { return fixedNow }
	return c
}

func TestCollector_Collect(t *testing.T) {
	c := newTestCollector()
	rep, err := c.Collect(context.Background(), "busy", model.Timeframe4H)
	require.NoError(t, err)

	assert.Equal(t, "busy", rep.Session.ID)
	assert.Equal(t, model.Timeframe4H, rep.Timeframe)
	assert.Equal(t, "4-Hour", rep.Market.PeriodName)
	assert.Equal(t, fixedNow, rep.GeneratedAt)
	assert.Len(t, rep.Indicators.EMA7, len(rep.Market.History))
	assert.NotEmpty(t, rep.Analysis.Signals)

	snap := rep.Snapshot()
	assert.Equal(t, "busy", snap.SessionID)
	assert.Equal(t, len(rep.Market.History), snap.Candles)
	assert.Equal(t, rep.Market.Summary, snap.Summary)
}

func TestCollector_CollectMissing(t *testing.T) {
	_, err := newTestCollector().Collect(context.Background(), "nope", model.Timeframe1D)
	assert.Error(t, err)
}

func TestCollector_CollectAll(t *testing.T) {
	reps, err := newTestCollector().CollectAll(context.Background(), model.Timeframe1D)
	require.NoError(t, err)
	require.Len(t, reps, 2)
	assert.Equal(t, "quiet", reps[0].Session.ID)
	for _, r := range reps {
		assert.Equal(t, "Daily", r.Market.PeriodName)
		assert.True(t, r.Market.History[0].Time.IsDate())
	}
}

func TestCollector_UnknownTimeframeFallsBack(t *testing.T) {
	c := newTestCollector()
	rep := c.Build(&model.Session{ID: "x", InitialScore: 50}, "2W")
	assert.Equal(t, model.Timeframe1H, rep.Timeframe)
	assert.Equal(t, "Hourly", rep.Market.PeriodName)
}

func TestCollector_SummaryStableAcrossTimeframes(t *testing.T) {
	c := newTestCollector()
	ctx := context.Background()
	h, err := c.Collect(ctx, "busy", model.Timeframe1H)
	require.NoError(t, err)
	d, err := c.Collect(ctx, "busy", model.Timeframe1D)
	require.NoError(t, err)
	assert.Equal(t, h.Market.Summary, d.Market.Summary)
}
