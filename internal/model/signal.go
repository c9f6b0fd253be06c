package model

// Sentiment is the coarse direction label of an analysis.
type Sentiment string

const (
	SentimentBullish Sentiment = "Bullish"
	SentimentBearish Sentiment = "Bearish"
	SentimentNeutral Sentiment = "Neutral"
)

// AnalysisResult is the output of the analysis engine.
type AnalysisResult struct {
	Sentiment   Sentiment `json:"sentiment"`
	Score       int       `json:"score"`
	Confidence  float64   `json:"confidence"`
	TargetPrice float64   `json:"targetPrice"`
	Signals     []string  `json:"signals"`
	Description string    `json:"description"`
}
