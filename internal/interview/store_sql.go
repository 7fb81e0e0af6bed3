package interview

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

// SQLRegistry persists sessions in a relational store (sqlite or postgres
// via internal/db). Only the session fields themselves are serialized; the
// report is always recomputed, never stored. Per-session serialization uses
// an in-process lock per id plus an optimistic current_index guard on the
// row update.
type SQLRegistry struct {
	db    *sql.DB
	locks sync.Map // map[string]*sync.Mutex
}

// NewSQLRegistry creates a registry over an opened database handle.
func NewSQLRegistry(db *sql.DB) *SQLRegistry {
	return &SQLRegistry{db: db}
}

func (r *SQLRegistry) Create(ctx context.Context, s *Session) error {
	row, err := encodeSession(s)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `INSERT INTO sessions
		(id, candidate_name, questions_json, current_index, answered_json, started_at, ended_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		row.id, row.candidateName, row.questionsJSON, row.currentIndex, row.answeredJSON, row.startedAt, row.endedAt)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *SQLRegistry) Get(ctx context.Context, id string) (Session, error) {
	return r.load(ctx, id)
}

func (r *SQLRegistry) Update(ctx context.Context, id string, fn func(*Session) error) error {
	mu := r.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	s, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	prevIndex := s.CurrentIndex

	if err := fn(&s); err != nil {
		return err
	}

	row, err := encodeSession(&s)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, `UPDATE sessions
		SET candidate_name=$1, questions_json=$2, current_index=$3, answered_json=$4, started_at=$5, ended_at=$6
		WHERE id=$7 AND current_index=$8`,
		row.candidateName, row.questionsJSON, row.currentIndex, row.answeredJSON, row.startedAt, row.endedAt,
		id, prevIndex)
	if err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// Another writer advanced the row between load and store.
		return ErrSubmissionSuperseded
	}
	return nil
}

func (r *SQLRegistry) lockFor(id string) *sync.Mutex {
	v, _ := r.locks.LoadOrStore(id, &sync.Mutex{})
	return v.(*sync.Mutex)
}

func (r *SQLRegistry) load(ctx context.Context, id string) (Session, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, candidate_name, questions_json, current_index, answered_json, started_at, ended_at
		FROM sessions WHERE id=$1`, id)

	var (
		s             Session
		questionsJSON string
		answeredJSON  string
		startedAt     int64
		endedAt       sql.NullInt64
	)
	if err := row.Scan(&s.ID, &s.CandidateName, &questionsJSON, &s.CurrentIndex, &answeredJSON, &startedAt, &endedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Session{}, ErrSessionNotFound
		}
		return Session{}, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal([]byte(questionsJSON), &s.Selected); err != nil {
		return Session{}, fmt.Errorf("decode session questions: %w", err)
	}
	if err := json.Unmarshal([]byte(answeredJSON), &s.Answered); err != nil {
		return Session{}, fmt.Errorf("decode session answers: %w", err)
	}
	s.StartedAt = time.Unix(startedAt, 0).UTC()
	if endedAt.Valid {
		t := time.Unix(endedAt.Int64, 0).UTC()
		s.EndedAt = &t
	}
	return s, nil
}

type sessionRow struct {
	id            string
	candidateName string
	questionsJSON string
	currentIndex  int
	answeredJSON  string
	startedAt     int64
	endedAt       sql.NullInt64
}

func encodeSession(s *Session) (sessionRow, error) {
	qj, err := json.Marshal(s.Selected)
	if err != nil {
		return sessionRow{}, fmt.Errorf("encode session questions: %w", err)
	}
	answered := s.Answered
	if answered == nil {
		answered = []AnsweredQuestion{}
	}
	aj, err := json.Marshal(answered)
	if err != nil {
		return sessionRow{}, fmt.Errorf("encode session answers: %w", err)
	}
	row := sessionRow{
		id:            s.ID,
		candidateName: s.CandidateName,
		questionsJSON: string(qj),
		currentIndex:  s.CurrentIndex,
		answeredJSON:  string(aj),
		startedAt:     s.StartedAt.Unix(),
	}
	if s.EndedAt != nil {
		row.endedAt = sql.NullInt64{Int64: s.EndedAt.Unix(), Valid: true}
	}
	return row, nil
}
