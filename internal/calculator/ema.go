package calculator

import "LifeMarket/internal/model"

// EMA returns the exponential moving average of closes, one point per bar.
// The first point is seeded with the first close. Fewer bars than period
// yields an empty series.
func EMA(bars []model.Candle, period int) []model.Point {
	if period <= 0 || len(bars) < period {
		return []model.Point{}
	}
	values := emaValues(extractCloses(bars), period)
	out := make([]model.Point, len(bars))
	for i, b := range bars {
		out[i] = model.Point{Time: b.Time, Value: values[i]}
	}
	return out
}

// emaValues smooths a raw value series with k = 2/(period+1).
func emaValues(values []float64, period int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	k := 2.0 / float64(period+1)
	prev := values[0]
	out[0] = prev
	for i := 1; i < len(values); i++ {
		prev = values[i]*k + prev*(1-k)
		out[i] = prev
	}
	return out
}
