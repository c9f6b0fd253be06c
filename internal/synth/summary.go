package synth

import (
	"LifeMarket/internal/calculator"
	"LifeMarket/internal/model"
)

// liquidationThreshold marks a session whose score touched a critical low.
const liquidationThreshold = 15.0

// Summarize derives the session summary from the hourly master series. It
// never looks at an aggregated series, so it is the same for every
// timeframe.
func Summarize(initialScore float64, hourly []model.Candle) model.MarketSummary {
	open := calculator.Clamp(initialScore, scoreMin, scoreMax)
	s := model.MarketSummary{Open: open, High: open, Low: open, Close: open}

	if high, low, err := calculator.HighLow(hourly); err == nil {
		s.High = high
		s.Low = low
		s.Close = hourly[len(hourly)-1].Close
	}
	s.Volume = calculator.TotalVolume(hourly)
	if open != 0 {
		s.ROE = (s.Close - open) / open * 100
	}
	s.IsLiquidationRisk = s.Low <= liquidationThreshold

	s.Open = calculator.Round2(s.Open)
	s.High = calculator.Round2(s.High)
	s.Low = calculator.Round2(s.Low)
	s.Close = calculator.Round2(s.Close)
	s.Volume = calculator.Round2(s.Volume)
	s.ROE = calculator.Round2(s.ROE)
	return s
}
