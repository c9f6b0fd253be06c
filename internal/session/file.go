package session

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"LifeMarket/internal/model"
)

// FileStore keeps every session in a single JSON file, rewritten on each
// change.
type FileStore struct {
	mu       sync.Mutex
	sessions map[string]model.Session
	filePath string
	now      func() time.Time
}

// NewFileStore loads filePath, starting empty if it does not exist.
func NewFileStore(filePath string) (*FileStore, error) {
	sessions, err := loadSessions(filePath)
	if err != nil {
		return nil, err
	}
	return &FileStore{sessions: sessions, filePath: filePath, now: time.Now}, nil
}

func (f *FileStore) Create(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := prepare(s, f.now().UTC(), true); err != nil {
		return err
	}
	if _, ok := f.sessions[s.ID]; ok {
		return fmt.Errorf("session %s already exists", s.ID)
	}
	f.sessions[s.ID] = cloneSession(*s)
	if err := f.save(); err != nil {
		delete(f.sessions, s.ID)
		return err
	}
	return nil
}

func (f *FileStore) Get(_ context.Context, id string) (*model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, ok := f.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	out := cloneSession(s)
	return &out, nil
}

// List returns all sessions, oldest first.
func (f *FileStore) List(_ context.Context) ([]model.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]model.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		out = append(out, cloneSession(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (f *FileStore) Update(_ context.Context, s *model.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.sessions[s.ID]
	if !ok {
		return fmt.Errorf("%s: %w", s.ID, ErrNotFound)
	}
	if err := prepare(s, f.now().UTC(), false); err != nil {
		return err
	}
	s.CreatedAt = existing.CreatedAt
	f.sessions[s.ID] = cloneSession(*s)
	if err := f.save(); err != nil {
		f.sessions[s.ID] = existing
		return err
	}
	return nil
}

func (f *FileStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	existing, ok := f.sessions[id]
	if !ok {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	delete(f.sessions, id)
	if err := f.save(); err != nil {
		f.sessions[id] = existing
		return err
	}
	return nil
}

func (f *FileStore) Close() error { return nil }

func (f *FileStore) save() error {
	list := make([]model.Session, 0, len(f.sessions))
	for _, s := range f.sessions {
		list = append(list, s)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })

	data, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(f.filePath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create store dir: %w", err)
		}
	}
	if err := os.WriteFile(f.filePath, data, 0644); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

// loadSessions reads the store file. Returns an empty map if it doesn't exist.
func loadSessions(filePath string) (map[string]model.Session, error) {
	sessions := make(map[string]model.Session)
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return sessions, nil
		}
		return nil, err
	}
	var list []model.Session
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	for _, s := range list {
		sessions[s.ID] = s
	}
	return sessions, nil
}

func cloneSession(s model.Session) model.Session {
	s.Events = append([]model.LifeEvent(nil), s.Events...)
	if s.Events == nil {
		s.Events = []model.LifeEvent{}
	}
	return s
}
