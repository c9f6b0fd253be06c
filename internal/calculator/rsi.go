package calculator

import (
	"errors"

	"LifeMarket/internal/model"
)

// DefaultRSIPeriod is the standard Wilder look-back.
const DefaultRSIPeriod = 14

// CalculateRSI returns the latest Wilder-smoothed RSI over the given period.
// Requires more than period bars.
func CalculateRSI(bars []model.Candle, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	series := RSI(bars, period)
	if len(series) == 0 {
		return 0, errors.New("not enough data for RSI calculation")
	}
	return series[len(series)-1].Value, nil
}

// RSI returns the Wilder-smoothed RSI series. The first point sits on bar
// `period`; a series of period bars or fewer yields an empty result.
func RSI(bars []model.Candle, period int) []model.Point {
	if period <= 0 || len(bars) <= period {
		return []model.Point{}
	}
	closes := extractCloses(bars)
	out := make([]model.Point, 0, len(bars)-period)

	// Initial average gain/loss over the first `period` changes
	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			avgGain += change
		} else {
			avgLoss -= change
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out = append(out, model.Point{Time: bars[period].Time, Value: rsiValue(avgGain, avgLoss)})

	for i := period + 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		gain, loss := 0.0, 0.0
		if change > 0 {
			gain = change
		} else {
			loss = -change
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out = append(out, model.Point{Time: bars[i].Time, Value: rsiValue(avgGain, avgLoss)})
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		return 100.0
	}
	rs := avgGain / avgLoss
	return 100.0 - 100.0/(1.0+rs)
}
