package calculator

import "LifeMarket/internal/model"

// Indicators computes every chart overlay for a series.
func Indicators(bars []model.Candle) model.MarketIndicators {
	return model.MarketIndicators{
		EMA7:      EMA(bars, 7),
		EMA21:     EMA(bars, 21),
		RSI:       RSI(bars, DefaultRSIPeriod),
		Bollinger: Bollinger(bars, DefaultBollingerPeriod, DefaultBollingerStdDev),
		MACD:      CalculateMACD(bars),
	}
}
