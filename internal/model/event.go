package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidEvent is returned by LifeEvent.Validate.
var ErrInvalidEvent = errors.New("invalid life event")

// LifeEvent is a single subjective event fed into the synthesis.
type LifeEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Date       time.Time `json:"date"`
	Impact     int       `json:"impact"`     // -10 ~ 10
	Intensity  float64   `json:"intensity"`  // 1 ~ 10
	Stickiness float64   `json:"stickiness"` // 0 ~ 1
}

// Validate checks the documented ranges. The synthesis itself never calls
// this; it is for input boundaries such as the API and the session store.
func (e LifeEvent) Validate() error {
	switch {
	case e.Name == "":
		return fmt.Errorf("%w: name is required", ErrInvalidEvent)
	case e.Date.IsZero():
		return fmt.Errorf("%w: %q has no date", ErrInvalidEvent, e.Name)
	case e.Impact < -10 || e.Impact > 10:
		return fmt.Errorf("%w: %q impact %d outside [-10,10]", ErrInvalidEvent, e.Name, e.Impact)
	case e.Intensity < 1 || e.Intensity > 10:
		return fmt.Errorf("%w: %q intensity %.2f outside [1,10]", ErrInvalidEvent, e.Name, e.Intensity)
	case e.Stickiness < 0 || e.Stickiness > 1:
		return fmt.Errorf("%w: %q stickiness %.2f outside [0,1]", ErrInvalidEvent, e.Name, e.Stickiness)
	}
	return nil
}

// MaxEventSpan bounds the distance between the earliest and latest event.
// The hourly series grows with the span, so inputs beyond it are rejected.
const MaxEventSpan = 10 * 365 * 24 * time.Hour

// ValidateEvents validates every event and returns the first failure. It also
// rejects event sets spanning more than MaxEventSpan.
func ValidateEvents(events []LifeEvent) error {
	var first, last time.Time
	for i, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		if i == 0 || e.Date.Before(first) {
			first = e.Date
		}
		if i == 0 || e.Date.After(last) {
			last = e.Date
		}
	}
	if span := last.Sub(first); span > MaxEventSpan {
		return fmt.Errorf("%w: events span %s, more than %s", ErrInvalidEvent,
			span.Round(time.Hour), MaxEventSpan)
	}
	return nil
}
