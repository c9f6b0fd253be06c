package strategy

import (
	"fmt"

	"LifeMarket/internal/model"
)

// factor is a single rule's contribution. An empty Signal means the rule
// did not fire.
type factor struct {
	Points int
	Signal string
}

const (
	crossPoints    = 4
	momentumPoints = 2
	momentumSlope  = 0.1

	rsiOverbought   = 75.0
	rsiOversold     = 25.0
	rsiConfirmBull  = 55.0
	rsiConfirmBear  = 45.0
	volumeSpikeMult = 1.5
)

// scoreEMACross compares the latest short and long EMA.
func scoreEMACross(short, long []model.Point) factor {
	if len(short) == 0 || len(long) == 0 {
		return factor{}
	}
	s, l := short[len(short)-1].Value, long[len(long)-1].Value
	switch {
	case s > l:
		return factor{Points: crossPoints, Signal: "Golden Cross: EMA7 above EMA21"}
	case s < l:
		return factor{Points: -crossPoints, Signal: "Death Cross: EMA7 below EMA21"}
	}
	return factor{}
}

// scoreMomentum reads the slope of the short EMA over its last step.
func scoreMomentum(short []model.Point) factor {
	if len(short) < 2 {
		return factor{}
	}
	slope := short[len(short)-1].Value - short[len(short)-2].Value
	switch {
	case slope > momentumSlope:
		return factor{Points: momentumPoints, Signal: fmt.Sprintf("Strong upward momentum (EMA7 slope %+.2f)", slope)}
	case slope < -momentumSlope:
		return factor{Points: -momentumPoints, Signal: fmt.Sprintf("Strong downward momentum (EMA7 slope %+.2f)", slope)}
	}
	return factor{}
}

// scoreRSI fades extremes and otherwise confirms an established trend.
// trend is the score accumulated by the earlier rules.
func scoreRSI(rsi []model.Point, trend int) factor {
	if len(rsi) == 0 {
		return factor{}
	}
	v := rsi[len(rsi)-1].Value
	switch {
	case v > rsiOverbought:
		return factor{Points: -1, Signal: fmt.Sprintf("RSI overbought (%.1f), consolidation expected", v)}
	case v < rsiOversold:
		return factor{Points: 1, Signal: fmt.Sprintf("RSI oversold (%.1f), relief rally likely", v)}
	case trend > 0 && v > rsiConfirmBull:
		return factor{Points: 1, Signal: fmt.Sprintf("RSI confirms bullish trend (%.1f)", v)}
	case trend < 0 && v < rsiConfirmBear:
		return factor{Points: -1, Signal: fmt.Sprintf("RSI confirms bearish trend (%.1f)", v)}
	}
	return factor{}
}

// scoreVolume rewards a volume spike in the direction the last bar closed.
func scoreVolume(bars []model.Candle) factor {
	if len(bars) < 2 {
		return factor{}
	}
	last, prev := bars[len(bars)-1], bars[len(bars)-2]
	if last.Volume <= prev.Volume*volumeSpikeMult {
		return factor{}
	}
	switch {
	case last.Close > last.Open:
		return factor{Points: 1, Signal: "Volume spike on a rising bar"}
	case last.Close < last.Open:
		return factor{Points: -1, Signal: "Volume spike on a falling bar"}
	}
	return factor{}
}
