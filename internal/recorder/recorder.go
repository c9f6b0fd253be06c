package recorder

import "LifeMarket/internal/model"

// Recorder persists analysis snapshots for later review.
type Recorder interface {
	RecordSnapshot(snap *model.Snapshot) error
	// Recent returns up to limit snapshots of a session, newest first.
	Recent(sessionID string, limit int) ([]model.Snapshot, error)
	Close() error
}
