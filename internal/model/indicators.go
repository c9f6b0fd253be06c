package model

// Point is one value of an indicator line, keyed by candle time.
type Point struct {
	Time  TimeKey `json:"time"`
	Value float64 `json:"value"`
}

// BandPoint is one Bollinger Band sample.
type BandPoint struct {
	Time   TimeKey `json:"time"`
	Upper  float64 `json:"upper"`
	Middle float64 `json:"middle"`
	Lower  float64 `json:"lower"`
}

// HistogramPoint is one MACD histogram bar with its display color.
type HistogramPoint struct {
	Time  TimeKey `json:"time"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// MACD holds the three aligned MACD series.
type MACD struct {
	MACDLine   []Point          `json:"macdLine"`
	SignalLine []Point          `json:"signalLine"`
	Histogram  []HistogramPoint `json:"histogram"`
}

// MarketIndicators bundles the overlays drawn on a chart.
type MarketIndicators struct {
	EMA7      []Point     `json:"ema7"`
	EMA21     []Point     `json:"ema21"`
	RSI       []Point     `json:"rsi"`
	Bollinger []BandPoint `json:"bollinger"`
	MACD      MACD        `json:"macd"`
}
