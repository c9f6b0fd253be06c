package calculator

import (
	"errors"
	"math"

	"LifeMarket/internal/model"
)

// HighLow returns the highest high and lowest low across all bars.
func HighLow(bars []model.Candle) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, errors.New("no bars provided")
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// TotalVolume sums the volume of all bars.
func TotalVolume(bars []model.Candle) float64 {
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum
}

// RangePosition returns where current sits within [low, high] (0.0~1.0).
func RangePosition(current, high, low float64) (float64, error) {
	if high == low {
		return 0.5, nil
	}
	if high < low {
		return 0, errors.New("high must be >= low")
	}
	return Clamp((current-low)/(high-low), 0, 1), nil
}
