package synth

import (
	"math"
	"sort"
	"strings"
	"time"

	"LifeMarket/internal/calculator"
	"LifeMarket/internal/model"
)

const (
	// Padding added before the first and after the last event.
	rangePadding = 48 * time.Hour
	// Look-back used when there are no events.
	defaultLookback = 30 * 24 * time.Hour

	scoreMin = 0.0
	scoreMax = 100.0

	noiseDrift     = 0.4
	noiseWick      = 0.2
	noiseMaxVolume = 5
)

// eventNameSep joins the names of events that share a bucket.
const eventNameSep = ", "

// BuildHourlySeries walks the padded event range hour by hour and returns the
// master series. Events may be in any order. now is only consulted when
// there are no events.
func BuildHourlySeries(initialScore float64, events []model.LifeEvent, now time.Time) []model.Candle {
	sorted := sortedEvents(events)
	start, end := seriesRange(sorted, now)

	current := calculator.Clamp(initialScore, scoreMin, scoreMax)
	rng := NewNoise(initialScore + float64(len(sorted)))

	hours := int(end.Sub(start)/time.Hour) + 1
	out := make([]model.Candle, 0, hours)
	next := 0
	for t := start; !t.After(end); t = t.Add(time.Hour) {
		bucketEnd := t.Add(time.Hour)

		first := next
		for next < len(sorted) && sorted[next].Date.Before(bucketEnd) {
			next++
		}

		var c model.Candle
		if next > first {
			c = eventCandle(current, sorted[first:next])
		} else {
			c = noiseCandle(current, &rng)
		}
		c.Time = model.UnixKey(t.Unix())
		c.Open = round(c.Open)
		c.High = round(c.High)
		c.Low = round(c.Low)
		c.Close = round(c.Close)

		current = c.Close
		out = append(out, c)
	}
	return out
}

// seriesRange returns the padded, hour-aligned [start, end] of the walk.
func seriesRange(sorted []model.LifeEvent, now time.Time) (time.Time, time.Time) {
	var first, last time.Time
	if len(sorted) == 0 {
		last = now.UTC()
		first = last.Add(-defaultLookback)
	} else {
		first = sorted[0].Date.UTC()
		last = sorted[len(sorted)-1].Date.UTC()
	}
	start := first.Add(-rangePadding).Truncate(time.Hour)
	end := last.Add(rangePadding)
	return start, end
}

func sortedEvents(events []model.LifeEvent) []model.LifeEvent {
	sorted := make([]model.LifeEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Date.Before(sorted[j].Date) })
	return sorted
}

// eventCandle applies every event in a bucket. The transient spike moves only
// the wicks; the sticky share of the impact moves the close.
func eventCandle(open float64, events []model.LifeEvent) model.Candle {
	c := model.Candle{Open: open, High: open, Low: open, Close: open, IsEvent: true}
	names := make([]string, 0, len(events))
	for _, e := range events {
		names = append(names, e.Name)
		impact := float64(e.Impact)
		peak := c.Close + impact*(e.Intensity/5)
		c.High = math.Max(c.High, peak)
		c.Low = math.Min(c.Low, peak)
		c.Close += impact * e.Stickiness
		c.Volume += e.Intensity * 10
	}
	c.High = math.Max(c.High, c.Close)
	c.Low = math.Min(c.Low, c.Close)
	c.EventName = strings.Join(names, eventNameSep)
	return c
}

// noiseCandle drifts the score by a small reproducible amount.
func noiseCandle(open float64, rng *Noise) model.Candle {
	closeV := open + (rng.Float64()-0.5)*noiseDrift
	wick := rng.Float64() * noiseWick
	return model.Candle{
		Open:   open,
		High:   math.Max(open, closeV) + wick,
		Low:    math.Min(open, closeV) - wick,
		Close:  closeV,
		Volume: math.Floor(rng.Float64() * noiseMaxVolume),
	}
}

// round clamps to the score domain and rounds to cents. Both steps are
// monotone, so low <= open,close <= high survives.
func round(v float64) float64 {
	return calculator.Round2(calculator.Clamp(v, scoreMin, scoreMax))
}
