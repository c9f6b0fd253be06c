package collector

import (
	"context"

	"LifeMarket/internal/model"
)

// Source supplies saved sessions. session.Store satisfies it.
type Source interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	List(ctx context.Context) ([]model.Session, error)
}
