package calculator

import (
	"math"
	"testing"

	"LifeMarket/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func barsFromCloses(closes ...float64) []model.Candle {
	bars := make([]model.Candle, len(closes))
	for i, c := range closes {
		bars[i] = model.Candle{
			Time:  model.UnixKey(int64(i) * 3600),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return bars
}

func risingBars(n int, step float64) []model.Candle {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = 10 + float64(i)*step
	}
	return barsFromCloses(closes...)
}

func TestCalculateSMA(t *testing.T) {
	sma, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	require.NoError(t, err)
	assert.InDelta(t, 4.0, sma, 1e-9)

	_, err = CalculateSMA([]float64{1, 2}, 3)
	assert.Error(t, err)
	_, err = CalculateSMA([]float64{1, 2}, 0)
	assert.Error(t, err)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{50.123, 50.12},
		{50.125, 50.13},
		{-3.456, -3.46},
		{100, 100},
		{0.004, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 0.0, Clamp(-5, 0, 100))
	assert.Equal(t, 100.0, Clamp(140, 0, 100))
	assert.Equal(t, 42.0, Clamp(42, 0, 100))
}

func TestHighLow(t *testing.T) {
	bars := []model.Candle{
		{High: 55, Low: 48},
		{High: 71, Low: 52},
		{High: 60, Low: 12},
	}
	h, l, err := HighLow(bars)
	require.NoError(t, err)
	assert.Equal(t, 71.0, h)
	assert.Equal(t, 12.0, l)

	_, _, err = HighLow(nil)
	assert.Error(t, err)
}

func TestRangePosition(t *testing.T) {
	pos, err := RangePosition(75, 100, 50)
	require.NoError(t, err)
	assert.InDelta(t, 0.5, pos, 1e-9)

	pos, err = RangePosition(10, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 0.5, pos)

	_, err = RangePosition(10, 5, 20)
	assert.Error(t, err)
}

func TestEMA_SeedAndSmoothing(t *testing.T) {
	bars := barsFromCloses(10, 20, 30)
	ema := EMA(bars, 3)
	require.Len(t, ema, 3)

	// k = 0.5
	assert.Equal(t, 10.0, ema[0].Value)
	assert.InDelta(t, 15.0, ema[1].Value, 1e-9)
	assert.InDelta(t, 22.5, ema[2].Value, 1e-9)
	assert.Equal(t, bars[2].Time, ema[2].Time)
}

func TestEMA_InsufficientData(t *testing.T) {
	ema := EMA(barsFromCloses(1, 2, 3), 7)
	assert.NotNil(t, ema)
	assert.Empty(t, ema)
}

func TestRSI(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		assert.Empty(t, RSI(risingBars(14, 1), 14))
	})

	t.Run("only gains is 100", func(t *testing.T) {
		rsi := RSI(risingBars(20, 1), 14)
		require.Len(t, rsi, 6)
		for _, p := range rsi {
			assert.Equal(t, 100.0, p.Value)
		}
	})

	t.Run("only losses is 0", func(t *testing.T) {
		rsi := RSI(risingBars(20, -0.5), 14)
		require.NotEmpty(t, rsi)
		assert.InDelta(t, 0.0, rsi[len(rsi)-1].Value, 1e-9)
	})

	t.Run("alternating is balanced", func(t *testing.T) {
		closes := make([]float64, 30)
		for i := range closes {
			closes[i] = 50
			if i%2 == 1 {
				closes[i] = 51
			}
		}
		rsi := RSI(barsFromCloses(closes...), 14)
		require.NotEmpty(t, rsi)
		assert.InDelta(t, 50.0, rsi[0].Value, 1e-9)
	})
}

func TestCalculateRSI(t *testing.T) {
	v, err := CalculateRSI(risingBars(30, 1), DefaultRSIPeriod)
	require.NoError(t, err)
	assert.Equal(t, 100.0, v)

	_, err = CalculateRSI(risingBars(5, 1), DefaultRSIPeriod)
	assert.Error(t, err)
}

func TestBollinger(t *testing.T) {
	bars := risingBars(25, 1)
	bands := Bollinger(bars, 20, 2)
	require.Len(t, bands, 6)
	assert.Equal(t, bars[19].Time, bands[0].Time)

	// closes 10..29 -> mean 19.5, population sd sqrt((20^2-1)/12)
	sd := math.Sqrt(399.0 / 12.0)
	assert.InDelta(t, 19.5, bands[0].Middle, 1e-9)
	assert.InDelta(t, 19.5+2*sd, bands[0].Upper, 1e-9)
	assert.InDelta(t, 19.5-2*sd, bands[0].Lower, 1e-9)

	flat := Bollinger(barsFromCloses(5, 5, 5, 5), 4, 2)
	require.Len(t, flat, 1)
	assert.Equal(t, flat[0].Upper, flat[0].Lower)

	assert.Empty(t, Bollinger(risingBars(10, 1), 20, 2))
}

func TestCalculateMACD(t *testing.T) {
	t.Run("insufficient data", func(t *testing.T) {
		m := CalculateMACD(risingBars(34, 1))
		assert.Empty(t, m.MACDLine)
		assert.Empty(t, m.SignalLine)
		assert.Empty(t, m.Histogram)
	})

	t.Run("aligned series", func(t *testing.T) {
		bars := risingBars(60, 1)
		m := CalculateMACD(bars)
		require.Len(t, m.MACDLine, 60)
		require.Len(t, m.SignalLine, 60)
		require.Len(t, m.Histogram, 60)

		fast := EMA(bars, 12)
		slow := EMA(bars, 26)
		last := len(bars) - 1
		assert.InDelta(t, fast[last].Value-slow[last].Value, m.MACDLine[last].Value, 1e-9)
		for i := range m.Histogram {
			assert.InDelta(t, m.MACDLine[i].Value-m.SignalLine[i].Value, m.Histogram[i].Value, 1e-9)
			assert.Equal(t, m.MACDLine[i].Time, m.Histogram[i].Time)
		}
		// Rising prices keep the fast EMA above the slow one.
		assert.Greater(t, m.MACDLine[last].Value, 0.0)
		assert.Equal(t, HistogramUpColor, m.Histogram[last].Color)
	})

	t.Run("falling histogram is red", func(t *testing.T) {
		bars := append(risingBars(40, 1), risingBars(20, -2)...)
		for i := range bars {
			bars[i].Time = model.UnixKey(int64(i) * 3600)
		}
		m := CalculateMACD(bars)
		require.NotEmpty(t, m.Histogram)
		assert.Equal(t, HistogramDownColor, m.Histogram[len(m.Histogram)-1].Color)
	})
}

func TestIndicators(t *testing.T) {
	ind := Indicators(risingBars(40, 0.5))
	assert.Len(t, ind.EMA7, 40)
	assert.Len(t, ind.EMA21, 40)
	assert.Len(t, ind.RSI, 26)
	assert.Len(t, ind.Bollinger, 21)
	assert.Len(t, ind.MACD.MACDLine, 40)
}
