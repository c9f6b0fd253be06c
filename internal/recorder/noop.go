package recorder

import "LifeMarket/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSnapshot(_ *model.Snapshot) error           { return nil }
func (n *NoopRecorder) Recent(_ string, _ int) ([]model.Snapshot, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                     { return nil }
