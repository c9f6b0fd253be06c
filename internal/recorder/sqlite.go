package recorder

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"LifeMarket/internal/model"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
			id              INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id          TEXT NOT NULL,
			session_id      TEXT NOT NULL,
			timestamp       INTEGER NOT NULL,
			timeframe       TEXT,
			candles         INTEGER,
			open            REAL,
			high            REAL,
			low             REAL,
			close           REAL,
			volume          REAL,
			roe             REAL,
			liquidation     INTEGER,
			sentiment       TEXT,
			score           INTEGER,
			confidence      REAL,
			target_price    REAL,
			signals         TEXT,
			description     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_session_ts ON snapshots(session_id, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSnapshot(snap *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if snap.RunID == "" {
		snap.RunID = uuid.NewString()
	}
	if snap.TakenAt.IsZero() {
		snap.TakenAt = time.Now()
	}
	signals, err := json.Marshal(snap.Analysis.Signals)
	if err != nil {
		return fmt.Errorf("encode signals: %w", err)
	}
	sum := snap.Summary
	an := snap.Analysis

	_, err = r.db.Exec(`INSERT INTO snapshots
		(run_id, session_id, timestamp, timeframe, candles,
		 open, high, low, close, volume, roe, liquidation,
		 sentiment, score, confidence, target_price, signals, description)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		snap.RunID, snap.SessionID, snap.TakenAt.UnixNano(), string(snap.Timeframe), snap.Candles,
		sum.Open, sum.High, sum.Low, sum.Close, sum.Volume, sum.ROE, sum.IsLiquidationRisk,
		string(an.Sentiment), an.Score, an.Confidence, an.TargetPrice, string(signals), an.Description,
	)
	return err
}

func (r *SQLiteRecorder) Recent(sessionID string, limit int) ([]model.Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if limit <= 0 {
		limit = 1
	}
	rows, err := r.db.Query(`SELECT run_id, session_id, timestamp, timeframe, candles,
		open, high, low, close, volume, roe, liquidation,
		sentiment, score, confidence, target_price, signals, description
		FROM snapshots WHERE session_id = ?
		ORDER BY timestamp DESC, id DESC LIMIT ?`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query snapshots: %w", err)
	}
	defer rows.Close()

	var out []model.Snapshot
	for rows.Next() {
		var (
			snap      model.Snapshot
			ts        int64
			timeframe string
			sentiment string
			signals   string
		)
		if err := rows.Scan(&snap.RunID, &snap.SessionID, &ts, &timeframe, &snap.Candles,
			&snap.Summary.Open, &snap.Summary.High, &snap.Summary.Low, &snap.Summary.Close,
			&snap.Summary.Volume, &snap.Summary.ROE, &snap.Summary.IsLiquidationRisk,
			&sentiment, &snap.Analysis.Score, &snap.Analysis.Confidence, &snap.Analysis.TargetPrice,
			&signals, &snap.Analysis.Description,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap.TakenAt = time.Unix(0, ts)
		snap.Timeframe = model.Timeframe(timeframe)
		snap.Analysis.Sentiment = model.Sentiment(sentiment)
		if err := json.Unmarshal([]byte(signals), &snap.Analysis.Signals); err != nil {
			return nil, fmt.Errorf("decode signals: %w", err)
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
