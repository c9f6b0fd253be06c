package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the calendar-date format used for daily candle keys.
const DateLayout = "2006-01-02"

// TimeKey identifies a candle's bucket: either a Unix-seconds timestamp or a
// calendar-date label. Exactly one of the two is meaningful.
type TimeKey struct {
	Unix int64
	Date string
}

// UnixKey returns a timestamp key.
func UnixKey(sec int64) TimeKey { return TimeKey{Unix: sec} }

// DateKey returns a calendar-date key for the UTC day containing sec.
func DateKey(sec int64) TimeKey {
	return TimeKey{Date: time.Unix(sec, 0).UTC().Format(DateLayout)}
}

// IsDate reports whether the key is a calendar-date label.
func (k TimeKey) IsDate() bool { return k.Date != "" }

func (k TimeKey) String() string {
	if k.IsDate() {
		return k.Date
	}
	return strconv.FormatInt(k.Unix, 10)
}

// MarshalJSON encodes date keys as strings and timestamps as numbers.
func (k TimeKey) MarshalJSON() ([]byte, error) {
	if k.IsDate() {
		return json.Marshal(k.Date)
	}
	return []byte(strconv.FormatInt(k.Unix, 10)), nil
}

func (k *TimeKey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*k = TimeKey{Date: s}
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("time key: %w", err)
	}
	sec, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return fmt.Errorf("time key: %w", err)
		}
		sec = int64(f)
	}
	*k = TimeKey{Unix: sec}
	return nil
}

// Candle is a single OHLC bar on the 0-100 score scale.
type Candle struct {
	Time      TimeKey `json:"time"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
	IsEvent   bool    `json:"isEvent,omitempty"`
	EventName string  `json:"eventName,omitempty"`
}

// Timeframe selects the display granularity of a history.
type Timeframe string

const (
	Timeframe1H Timeframe = "1H"
	Timeframe4H Timeframe = "4H"
	Timeframe1D Timeframe = "1D"
)

// ParseTimeframe accepts "1H", "4H" or "1D" (case-insensitive).
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(strings.ToUpper(strings.TrimSpace(s))) {
	case Timeframe1H:
		return Timeframe1H, nil
	case Timeframe4H:
		return Timeframe4H, nil
	case Timeframe1D:
		return Timeframe1D, nil
	}
	return "", fmt.Errorf("unknown timeframe %q", s)
}

// BucketSize is the number of hourly candles folded into one bar.
func (tf Timeframe) BucketSize() int {
	switch tf {
	case Timeframe4H:
		return 4
	case Timeframe1D:
		return 24
	default:
		return 1
	}
}

// PeriodName is the human label shown next to the chart.
func (tf Timeframe) PeriodName() string {
	switch tf {
	case Timeframe4H:
		return "4-Hour"
	case Timeframe1D:
		return "Daily"
	default:
		return "Hourly"
	}
}

// MarketSummary is the session-level summary derived from the hourly series.
type MarketSummary struct {
	Open              float64 `json:"open"`
	High              float64 `json:"high"`
	Low               float64 `json:"low"`
	Close             float64 `json:"close"`
	Volume            float64 `json:"volume"`
	ROE               float64 `json:"roe"`
	IsLiquidationRisk bool    `json:"isLiquidationRisk"`
}

// MarketHistory is the result of a synthesis run.
type MarketHistory struct {
	History    []Candle      `json:"history"`
	Summary    MarketSummary `json:"summary"`
	PeriodName string        `json:"periodName"`
}
