package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/e-taalim/quizbot/internal/model"
)

// PGStore implements Store on PostgreSQL. Mutations that touch two rows
// (result insert + learner aggregate bump) run in one transaction, which
// closes the lost-update window the file backend guards with mutexes.
type PGStore struct {
	pool *pgxpool.Pool
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS instructors (
	id         BIGINT PRIMARY KEY,
	username   TEXT NOT NULL DEFAULT '',
	name       TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS learners (
	id            BIGINT PRIMARY KEY,
	username      TEXT NOT NULL DEFAULT '',
	name          TEXT NOT NULL DEFAULT '',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
	quizzes_taken INT NOT NULL DEFAULT 0,
	total_score   INT NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS questions (
	id              TEXT PRIMARY KEY,
	seq             INT NOT NULL,
	kind            TEXT NOT NULL,
	question        TEXT NOT NULL DEFAULT '',
	photo           TEXT NOT NULL DEFAULT '',
	options         TEXT[] NOT NULL DEFAULT '{}',
	correct_answer  TEXT NOT NULL,
	instructor_id   BIGINT NOT NULL,
	instructor_name TEXT NOT NULL DEFAULT '',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE TABLE IF NOT EXISTS results (
	id         TEXT PRIMARY KEY,
	seq        INT NOT NULL,
	learner_id BIGINT NOT NULL,
	answers    JSONB NOT NULL DEFAULT '[]',
	score      INT NOT NULL,
	total      INT NOT NULL,
	percentage DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// NewPGStore connects to the database and makes sure the four collection
// tables exist.
func NewPGStore(ctx context.Context, dsn string) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, pgSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &PGStore{pool: pool}, nil
}

func (s *PGStore) Close() { s.pool.Close() }

func (s *PGStore) UpsertInstructor(ctx context.Context, id int64, username, name string) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO instructors (id, username, name) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET username = $2, name = $3`,
		id, username, name)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PGStore) UpsertLearner(ctx context.Context, id int64, username, name string) error {
	// The conflict branch deliberately leaves quizzes_taken/total_score
	// alone: picking the learner role again must not reset history.
	_, err := s.pool.Exec(ctx, `
		INSERT INTO learners (id, username, name) VALUES ($1, $2, $3)
		ON CONFLICT (id) DO UPDATE SET username = $2, name = $3`,
		id, username, name)
	if err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *PGStore) AddQuestion(ctx context.Context, ownerID int64, q model.Question) (string, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", unavailable(err)
	}
	defer tx.Rollback(ctx)

	var seq int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM questions`).Scan(&seq); err != nil {
		return "", unavailable(err)
	}
	id := fmt.Sprintf("q%d_%d", seq, ownerID)
	options := q.Options
	if options == nil {
		// A nil slice encodes as SQL NULL, which the column rejects.
		options = []string{}
	}
	_, err = tx.Exec(ctx, `
		INSERT INTO questions (id, seq, kind, question, photo, options, correct_answer, instructor_id, instructor_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		id, seq, string(q.Kind), q.Text, q.Photo, options, q.CorrectAnswer, ownerID, q.InstructorName)
	if err != nil {
		return "", unavailable(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", unavailable(err)
	}
	return id, nil
}

func (s *PGStore) QuestionsByOwner(ctx context.Context, ownerID int64) ([]model.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, seq, kind, question, photo, options, correct_answer, instructor_id, instructor_name, created_at
		FROM questions WHERE instructor_id = $1 ORDER BY seq`, ownerID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	return scanQuestions(rows)
}

func (s *PGStore) AllQuestions(ctx context.Context) (map[string]model.Question, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, seq, kind, question, photo, options, correct_answer, instructor_id, instructor_name, created_at
		FROM questions ORDER BY seq`)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()
	qs, err := scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	m := make(map[string]model.Question, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m, nil
}

func scanQuestions(rows pgx.Rows) ([]model.Question, error) {
	var out []model.Question
	for rows.Next() {
		var q model.Question
		var kind string
		if err := rows.Scan(&q.ID, &q.Seq, &kind, &q.Text, &q.Photo, &q.Options,
			&q.CorrectAnswer, &q.InstructorID, &q.InstructorName, &q.CreatedAt); err != nil {
			return nil, unavailable(err)
		}
		q.Kind = model.QuestionKind(kind)
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}

func (s *PGStore) SaveResult(ctx context.Context, learnerID int64, answers []model.AnswerRecord, score, total int) (string, error) {
	payload, err := json.Marshal(answers)
	if err != nil {
		return "", unavailable(err)
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", unavailable(err)
	}
	defer tx.Rollback(ctx)

	var seq int
	if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM results`).Scan(&seq); err != nil {
		return "", unavailable(err)
	}
	id := fmt.Sprintf("r%d_%d", seq, learnerID)
	_, err = tx.Exec(ctx, `
		INSERT INTO results (id, seq, learner_id, answers, score, total, percentage)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		id, seq, learnerID, payload, score, total, model.Percentage(score, total))
	if err != nil {
		return "", unavailable(err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE learners SET quizzes_taken = quizzes_taken + 1, total_score = total_score + $2
		WHERE id = $1`, learnerID, score)
	if err != nil {
		return "", unavailable(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return "", unavailable(err)
	}
	return id, nil
}

func (s *PGStore) ResultsByLearner(ctx context.Context, learnerID int64) ([]model.Result, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT id, seq, learner_id, answers, score, total, percentage, created_at
		FROM results WHERE learner_id = $1 ORDER BY seq`, learnerID)
	if err != nil {
		return nil, unavailable(err)
	}
	defer rows.Close()

	var out []model.Result
	for rows.Next() {
		var r model.Result
		var payload []byte
		if err := rows.Scan(&r.ID, &r.Seq, &r.LearnerID, &payload, &r.Score, &r.Total, &r.Percentage, &r.CreatedAt); err != nil {
			return nil, unavailable(err)
		}
		if err := json.Unmarshal(payload, &r.Answers); err != nil {
			return nil, unavailable(err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable(err)
	}
	return out, nil
}
