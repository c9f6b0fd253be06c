// Package synth turns a list of life events into a deterministic OHLC
// market series.
//
// The hourly master series is the single source of truth: displayed
// timeframes are folded from it and the summary is computed from it. All
// randomness comes from a sine-hash seeded by the inputs, so identical
// inputs always produce identical output.
package synth

import (
	"time"

	"LifeMarket/internal/model"
)

// Option configures a generation run.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithNow pins the reference time used when there are no events.
func WithNow(t time.Time) Option {
	return func(o *options) { o.now = func() time.Time { return t } }
}

// GenerateMarketHistory builds the master series for events, folds it into
// tf and summarizes it. Unknown timeframes are treated as 1H. It never fails.
func GenerateMarketHistory(initialScore float64, events []model.LifeEvent, tf model.Timeframe, opts ...Option) model.MarketHistory {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if parsed, err := model.ParseTimeframe(string(tf)); err == nil {
		tf = parsed
	} else {
		tf = model.Timeframe1H
	}

	hourly := BuildHourlySeries(initialScore, events, o.now())
	return model.MarketHistory{
		History:    Aggregate(hourly, tf),
		Summary:    Summarize(initialScore, hourly),
		PeriodName: tf.PeriodName(),
	}
}
