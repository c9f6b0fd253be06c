package strategy

import (
	"fmt"
	"math"

	"LifeMarket/internal/calculator"
	"LifeMarket/internal/model"
)

const (
	// MinCandles is the shortest series the engine will read.
	MinCandles = 5

	shortEMAPeriod = 7
	longEMAPeriod  = 21

	baseConfidence  = 60.0
	confidencePerPt = 4.0
	maxConfidence   = 95.0

	minVolatility = 0.05
)

// InsufficientDataSignal is reported when the series is too short.
const InsufficientDataSignal = "Insufficient data for analysis"

// sentimentTiers maps a score to a sentiment, highest threshold first.
var sentimentTiers = []struct {
	MinScore  int
	Sentiment model.Sentiment
}{
	{3, model.SentimentBullish},
	{-2, model.SentimentNeutral},
}

// DefaultSentiment applies below every tier.
const DefaultSentiment = model.SentimentBearish

func mapSentiment(score int) model.Sentiment {
	for _, t := range sentimentTiers {
		if score >= t.MinScore {
			return t.Sentiment
		}
	}
	return DefaultSentiment
}

// Analyze reads an OHLC series of any timeframe and produces a sentiment
// call. It never fails; short series yield a neutral result with zero
// confidence.
func Analyze(bars []model.Candle) model.AnalysisResult {
	if len(bars) < MinCandles {
		return insufficientData(bars)
	}

	emaShort := calculator.EMA(bars, shortEMAPeriod)
	emaLong := calculator.EMA(bars, longEMAPeriod)
	rsi := calculator.RSI(bars, calculator.DefaultRSIPeriod)

	score := 0
	signals := []string{}
	apply := func(f factor) {
		if f.Signal == "" {
			return
		}
		score += f.Points
		signals = append(signals, f.Signal)
	}

	// Evaluation order is the order signals are reported in.
	apply(scoreEMACross(emaShort, emaLong))
	apply(scoreMomentum(emaShort))
	apply(scoreRSI(rsi, score))
	apply(scoreVolume(bars))

	last := bars[len(bars)-1]
	target := targetPrice(last, score)
	sentiment := mapSentiment(score)

	return model.AnalysisResult{
		Sentiment:   sentiment,
		Score:       score,
		Confidence:  math.Min(maxConfidence, baseConfidence+math.Abs(float64(score))*confidencePerPt),
		TargetPrice: target,
		Signals:     signals,
		Description: describe(sentiment, target),
	}
}

// targetPrice projects the last close by a share of the last bar's range.
func targetPrice(last model.Candle, score int) float64 {
	volatility := minVolatility
	if last.Open != 0 {
		volatility = math.Max(minVolatility, (last.High-last.Low)/last.Open*5)
	}
	sign := 0.0
	switch {
	case score > 0:
		sign = 1
	case score < 0:
		sign = -1
	}
	change := sign * (math.Abs(float64(score)) / 10) * volatility
	return calculator.Round2(calculator.Clamp(last.Close*(1+change), 0, 100))
}

func describe(s model.Sentiment, target float64) string {
	switch s {
	case model.SentimentBullish:
		return fmt.Sprintf("Momentum favors the upside. Indicators project a move toward %.2f.", target)
	case model.SentimentBearish:
		return fmt.Sprintf("Pressure is building to the downside. Indicators project a slide toward %.2f.", target)
	default:
		return fmt.Sprintf("Signals are mixed. Expect range-bound action around %.2f.", target)
	}
}

func insufficientData(bars []model.Candle) model.AnalysisResult {
	target := 0.0
	if len(bars) > 0 {
		target = bars[len(bars)-1].Close
	}
	return model.AnalysisResult{
		Sentiment:   model.SentimentNeutral,
		Score:       0,
		Confidence:  0,
		TargetPrice: target,
		Signals:     []string{InsufficientDataSignal},
		Description: "Not enough history to read the market yet. Add more events or widen the range.",
	}
}
