package calculator

import "LifeMarket/internal/model"

const (
	macdFastPeriod   = 12
	macdSlowPeriod   = 26
	macdSignalPeriod = 9

	// Histogram bar colors.
	HistogramUpColor   = "#26a69a"
	HistogramDownColor = "#ef5350"
)

// CalculateMACD computes the 12/26/9 MACD. The MACD line is the fast EMA
// minus the slow EMA matched on time key; the signal line is a 9-period EMA
// of the MACD values. Inputs shorter than 35 bars yield empty series.
func CalculateMACD(bars []model.Candle) model.MACD {
	empty := model.MACD{
		MACDLine:   []model.Point{},
		SignalLine: []model.Point{},
		Histogram:  []model.HistogramPoint{},
	}
	if len(bars) < macdSlowPeriod+macdSignalPeriod {
		return empty
	}

	fast := EMA(bars, macdFastPeriod)
	slow := EMA(bars, macdSlowPeriod)
	fastByTime := make(map[model.TimeKey]float64, len(fast))
	for _, p := range fast {
		fastByTime[p.Time] = p.Value
	}

	macdLine := make([]model.Point, 0, len(slow))
	for _, p := range slow {
		f, ok := fastByTime[p.Time]
		if !ok {
			continue
		}
		macdLine = append(macdLine, model.Point{Time: p.Time, Value: f - p.Value})
	}
	if len(macdLine) < macdSignalPeriod {
		return empty
	}

	raw := make([]float64, len(macdLine))
	for i, p := range macdLine {
		raw[i] = p.Value
	}
	signal := emaValues(raw, macdSignalPeriod)

	signalLine := make([]model.Point, len(macdLine))
	histogram := make([]model.HistogramPoint, len(macdLine))
	for i, p := range macdLine {
		signalLine[i] = model.Point{Time: p.Time, Value: signal[i]}
		h := p.Value - signal[i]
		color := HistogramUpColor
		if h < 0 {
			color = HistogramDownColor
		}
		histogram[i] = model.HistogramPoint{Time: p.Time, Value: h, Color: color}
	}
	return model.MACD{MACDLine: macdLine, SignalLine: signalLine, Histogram: histogram}
}
