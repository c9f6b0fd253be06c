package synth

import (
	"math"
	"strings"

	"LifeMarket/internal/model"
)

// Aggregate folds the hourly master series into tf buckets. Buckets are fixed
// offsets from the first candle, not calendar-aligned; a short final bucket
// is kept. 1H returns a copy of the input. Daily buckets are keyed by the
// UTC date of their first candle.
func Aggregate(hourly []model.Candle, tf model.Timeframe) []model.Candle {
	size := tf.BucketSize()
	if size <= 1 {
		out := make([]model.Candle, len(hourly))
		copy(out, hourly)
		return out
	}

	out := make([]model.Candle, 0, (len(hourly)+size-1)/size)
	for i := 0; i < len(hourly); i += size {
		j := i + size
		if j > len(hourly) {
			j = len(hourly)
		}
		bar := foldBucket(hourly[i:j])
		if tf == model.Timeframe1D {
			bar.Time = model.DateKey(hourly[i].Time.Unix)
		}
		out = append(out, bar)
	}
	return out
}

func foldBucket(bucket []model.Candle) model.Candle {
	first := bucket[0]
	bar := model.Candle{
		Time:  first.Time,
		Open:  first.Open,
		High:  first.High,
		Low:   first.Low,
		Close: bucket[len(bucket)-1].Close,
	}
	var names []string
	for _, c := range bucket {
		bar.High = math.Max(bar.High, c.High)
		bar.Low = math.Min(bar.Low, c.Low)
		bar.Volume += c.Volume
		if c.IsEvent {
			bar.IsEvent = true
			if c.EventName != "" {
				names = append(names, c.EventName)
			}
		}
	}
	bar.EventName = strings.Join(names, eventNameSep)
	return bar
}
