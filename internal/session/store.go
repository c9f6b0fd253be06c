// Package session stores saved life-event sessions.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"LifeMarket/internal/calculator"
	"LifeMarket/internal/model"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no session has the requested id.
	ErrNotFound = errors.New("session not found")
	// ErrInvalidSession is returned for sessions that fail validation.
	ErrInvalidSession = errors.New("invalid session")
)

// Store persists sessions by opaque id.
type Store interface {
	Create(ctx context.Context, s *model.Session) error
	Get(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
	Update(ctx context.Context, s *model.Session) error
	Delete(ctx context.Context, id string) error
	Close() error
}

// prepare validates s and fills ids and timestamps before a write.
func prepare(s *model.Session, now time.Time, create bool) error {
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidSession)
	}
	if err := model.ValidateEvents(s.Events); err != nil {
		return err
	}
	s.InitialScore = calculator.Clamp(s.InitialScore, 0, 100)
	for i := range s.Events {
		if s.Events[i].ID == "" {
			s.Events[i].ID = uuid.NewString()
		}
	}
	if create {
		if s.ID == "" {
			s.ID = uuid.NewString()
		}
		s.CreatedAt = now
	} else if s.ID == "" {
		return fmt.Errorf("update: %w", ErrNotFound)
	}
	s.UpdatedAt = now
	if s.Events == nil {
		s.Events = []model.LifeEvent{}
	}
	return nil
}
