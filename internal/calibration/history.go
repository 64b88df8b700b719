package calibration

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Terminal outcomes of a calibration attempt.
const (
	OutcomeCompleted = "completed"
	OutcomeAborted   = "aborted"
	OutcomeRejected  = "rejected"
	OutcomeTimedOut  = "timed_out"
	OutcomeFailed    = "failed"
)

// Session is one calibration attempt from start to terminal state.
type Session struct {
	ID              string
	CalibrationType string
	Outcome         string
	Quality         Quality
	Warnings        []string
	StartedAt       time.Time
	FinishedAt      time.Time
}

func newSession(calibrationType string) Session {
	return Session{
		ID:              uuid.NewString(),
		CalibrationType: calibrationType,
		StartedAt:       time.Now().UTC(),
	}
}

func (s *Session) finish(err error) {
	s.FinishedAt = time.Now().UTC()
	switch {
	case err == nil:
		s.Outcome = OutcomeCompleted
	case errors.Is(err, ErrAborted):
		s.Outcome = OutcomeAborted
	case errors.Is(err, ErrQualityRejected):
		s.Outcome = OutcomeRejected
	case errors.Is(err, ErrWaitTimeout):
		s.Outcome = OutcomeTimedOut
	default:
		s.Outcome = OutcomeFailed
	}
}

// History persists calibration sessions in SQLite.
type History struct {
	db *sql.DB
}

// NewHistory creates the repository and its table if missing.
func NewHistory(ctx context.Context, db *sql.DB) (*History, error) {
	const schema = `
		CREATE TABLE IF NOT EXISTS calibration_sessions (
			id               TEXT PRIMARY KEY,
			calibration_type TEXT NOT NULL,
			outcome          TEXT NOT NULL,
			quality          TEXT NOT NULL,
			warnings         TEXT NOT NULL DEFAULT '',
			started_at       TIMESTAMP NOT NULL,
			finished_at      TIMESTAMP NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_calibration_sessions_started
			ON calibration_sessions(started_at DESC);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return nil, fmt.Errorf("creating calibration_sessions table: %w", err)
	}
	return &History{db: db}, nil
}

// Record implements Recorder.
func (h *History) Record(s Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	_, err := h.db.Exec(`
		INSERT INTO calibration_sessions
			(id, calibration_type, outcome, quality, warnings, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.CalibrationType, s.Outcome, s.Quality.String(),
		strings.Join(s.Warnings, "\n"), s.StartedAt, s.FinishedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting calibration session: %w", err)
	}
	return nil
}

// Recent returns the most recent sessions, newest first.
func (h *History) Recent(ctx context.Context, limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := h.db.QueryContext(ctx, `
		SELECT id, calibration_type, outcome, quality, warnings, started_at, finished_at
		FROM calibration_sessions
		ORDER BY started_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying calibration sessions: %w", err)
	}
	defer rows.Close() //nolint:errcheck // Read-only cursor

	var sessions []Session
	for rows.Next() {
		var (
			s        Session
			quality  string
			warnings string
		)
		if err := rows.Scan(&s.ID, &s.CalibrationType, &s.Outcome,
			&quality, &warnings, &s.StartedAt, &s.FinishedAt); err != nil {
			return nil, fmt.Errorf("scanning calibration session: %w", err)
		}
		if q, err := QualityFromString(quality); err == nil {
			s.Quality = q
		}
		if warnings != "" {
			s.Warnings = strings.Split(warnings, "\n")
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating calibration sessions: %w", err)
	}
	return sessions, nil
}
