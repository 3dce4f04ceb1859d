package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/e-taalim/quizbot/internal/model"
)

// ErrUnavailable wraps every storage I/O failure. Workflows do not retry;
// they log the detail and surface a generic message to the user.
var ErrUnavailable = errors.New("storage unavailable")

// Store is the record store behind the bot: four collections of
// instructors, learners, questions and results. Questions and results are
// append-only; ids are assigned by the store and never reused.
type Store interface {
	// UpsertInstructor creates or refreshes an instructor record.
	UpsertInstructor(ctx context.Context, id int64, username, name string) error
	// UpsertLearner creates a learner. Only the very first insertion
	// initializes the quiz aggregates; later calls refresh the identity
	// fields and must leave QuizzesTaken/TotalScore untouched.
	UpsertLearner(ctx context.Context, id int64, username, name string) error
	// AddQuestion persists a question under a fresh "q<seq>_<owner>" id
	// and returns the id.
	AddQuestion(ctx context.Context, ownerID int64, q model.Question) (string, error)
	// QuestionsByOwner returns the owner's questions in insertion order.
	QuestionsByOwner(ctx context.Context, ownerID int64) ([]model.Question, error)
	// AllQuestions returns the whole question collection keyed by id.
	AllQuestions(ctx context.Context) (map[string]model.Question, error)
	// SaveResult persists a quiz result under a fresh "r<seq>_<learner>"
	// id, computes its percentage and bumps the learner's aggregates in
	// the same operation. Returns the id.
	SaveResult(ctx context.Context, learnerID int64, answers []model.AnswerRecord, score, total int) (string, error)
	// ResultsByLearner returns the learner's results in insertion order.
	ResultsByLearner(ctx context.Context, learnerID int64) ([]model.Result, error)
	// Close releases the backing resources.
	Close()
}

// unavailable tags an underlying I/O error with ErrUnavailable so callers
// can match it with errors.Is while keeping the detail for the log.
func unavailable(err error) error {
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}
