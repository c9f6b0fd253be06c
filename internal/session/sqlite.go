package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"LifeMarket/internal/model"

	_ "modernc.org/sqlite"
)

// SQLiteStore persists sessions in SQLite with events as a JSON column.
type SQLiteStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteStore opens (or creates) the database and runs migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS sessions (
		id            TEXT PRIMARY KEY,
		name          TEXT NOT NULL,
		initial_score REAL NOT NULL,
		events        TEXT NOT NULL,
		created_at    INTEGER NOT NULL,
		updated_at    INTEGER NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Printf("[INFO] sqlite session store opened: %s", dbPath)
	return &SQLiteStore{db: db, now: time.Now}, nil
}

func (s *SQLiteStore) Create(ctx context.Context, sess *model.Session) error {
	if err := prepare(sess, s.now().UTC(), true); err != nil {
		return err
	}
	events, err := json.Marshal(sess.Events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO sessions
		(id, name, initial_score, events, created_at, updated_at)
		VALUES (?,?,?,?,?,?)`,
		sess.ID, sess.Name, sess.InitialScore, string(events),
		sess.CreatedAt.UnixNano(), sess.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT id, name, initial_score, events, created_at, updated_at
		FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

// List returns all sessions, oldest first.
func (s *SQLiteStore) List(ctx context.Context) ([]model.Session, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, initial_score, events, created_at, updated_at
		FROM sessions ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	out := []model.Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *sess)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Update(ctx context.Context, sess *model.Session) error {
	if err := prepare(sess, s.now().UTC(), false); err != nil {
		return err
	}
	events, err := json.Marshal(sess.Events)
	if err != nil {
		return fmt.Errorf("encode events: %w", err)
	}
	res, err := s.db.ExecContext(ctx, `UPDATE sessions
		SET name = ?, initial_score = ?, events = ?, updated_at = ?
		WHERE id = ?`,
		sess.Name, sess.InitialScore, string(events), sess.UpdatedAt.UnixNano(), sess.ID,
	)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", sess.ID, ErrNotFound)
	}
	var created int64
	if err := s.db.QueryRowContext(ctx, `SELECT created_at FROM sessions WHERE id = ?`, sess.ID).Scan(&created); err == nil {
		sess.CreatedAt = time.Unix(0, created).UTC()
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	log.Println("[INFO] closing sqlite session store")
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (*model.Session, error) {
	var (
		sess             model.Session
		events           string
		created, updated int64
	)
	if err := row.Scan(&sess.ID, &sess.Name, &sess.InitialScore, &events, &created, &updated); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(events), &sess.Events); err != nil {
		return nil, fmt.Errorf("decode events for %s: %w", sess.ID, err)
	}
	if sess.Events == nil {
		sess.Events = []model.LifeEvent{}
	}
	sess.CreatedAt = time.Unix(0, created).UTC()
	sess.UpdatedAt = time.Unix(0, updated).UTC()
	return &sess, nil
}
