package calculator

import (
	"math"

	"LifeMarket/internal/model"
)

const (
	DefaultBollingerPeriod = 20
	DefaultBollingerStdDev = 2.0
)

// Bollinger computes bands over a trailing window of closes using the
// population standard deviation. The first band sits on bar period-1.
func Bollinger(bars []model.Candle, period int, stdDev float64) []model.BandPoint {
	if period <= 0 || len(bars) < period {
		return []model.BandPoint{}
	}
	closes := extractCloses(bars)
	out := make([]model.BandPoint, 0, len(bars)-period+1)
	for i := period - 1; i < len(closes); i++ {
		window := closes[i-period+1 : i+1]
		mean, err := CalculateSMA(window, period)
		if err != nil {
			break
		}
		variance := 0.0
		for _, c := range window {
			variance += (c - mean) * (c - mean)
		}
		sd := math.Sqrt(variance / float64(period))
		out = append(out, model.BandPoint{
			Time:   bars[i].Time,
			Upper:  mean + stdDev*sd,
			Middle: mean,
			Lower:  mean - stdDev*sd,
		})
	}
	return out
}
