package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/e-taalim/quizbot/internal/model"
)

// collection is one JSON file holding a map from record id to record.
// The mutex is held across the whole load-mutate-save cycle, so concurrent
// writers to the same collection cannot lose updates.
type collection struct {
	path string
	mu   sync.Mutex
}

// JSONStore keeps each of the four record collections in its own
// human-readable JSON file under a data directory. Every mutation rewrites
// the full collection file.
type JSONStore struct {
	instructors collection
	learners    collection
	questions   collection
	results     collection
}

// NewJSONStore opens (and if needed creates) the collection files under dir.
func NewJSONStore(dir string) (*JSONStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, unavailable(err)
	}
	s := &JSONStore{
		instructors: collection{path: filepath.Join(dir, "instructors.json")},
		learners:    collection{path: filepath.Join(dir, "learners.json")},
		questions:   collection{path: filepath.Join(dir, "questions.json")},
		results:     collection{path: filepath.Join(dir, "results.json")},
	}
	for _, c := range []*collection{&s.instructors, &s.learners, &s.questions, &s.results} {
		if _, err := os.Stat(c.path); os.IsNotExist(err) {
			if err := os.WriteFile(c.path, []byte("{}"), 0o644); err != nil {
				return nil, unavailable(err)
			}
		} else if err != nil {
			return nil, unavailable(err)
		}
	}
	return s, nil
}

func (s *JSONStore) Close() {}

// loadJSON reads a collection file into a map. An empty file counts as an
// empty collection.
func loadJSON[T any](path string) (map[string]T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	m := make(map[string]T)
	if len(data) == 0 {
		return m, nil
	}
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return m, nil
}

// saveJSON rewrites a collection file. Indented output keeps the files
// readable; non-ASCII content is preserved verbatim.
func saveJSON[T any](path string, m map[string]T) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (s *JSONStore) UpsertInstructor(_ context.Context, id int64, username, name string) error {
	s.instructors.mu.Lock()
	defer s.instructors.mu.Unlock()
	m, err := loadJSON[model.Instructor](s.instructors.path)
	if err != nil {
		return unavailable(err)
	}
	key := fmt.Sprintf("%d", id)
	rec, ok := m[key]
	if !ok {
		rec = model.Instructor{ID: id, CreatedAt: time.Now()}
	}
	rec.Username = username
	rec.Name = name
	m[key] = rec
	if err := saveJSON(s.instructors.path, m); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *JSONStore) UpsertLearner(_ context.Context, id int64, username, name string) error {
	s.learners.mu.Lock()
	defer s.learners.mu.Unlock()
	m, err := loadJSON[model.Learner](s.learners.path)
	if err != nil {
		return unavailable(err)
	}
	key := fmt.Sprintf("%d", id)
	rec, ok := m[key]
	if !ok {
		// Aggregates start at zero on first insertion only; re-selecting
		// the learner role must not wipe quiz history.
		rec = model.Learner{ID: id, CreatedAt: time.Now()}
	}
	rec.Username = username
	rec.Name = name
	m[key] = rec
	if err := saveJSON(s.learners.path, m); err != nil {
		return unavailable(err)
	}
	return nil
}

func (s *JSONStore) AddQuestion(_ context.Context, ownerID int64, q model.Question) (string, error) {
	s.questions.mu.Lock()
	defer s.questions.mu.Unlock()
	m, err := loadJSON[model.Question](s.questions.path)
	if err != nil {
		return "", unavailable(err)
	}
	q.Seq = len(m) + 1
	q.ID = fmt.Sprintf("q%d_%d", q.Seq, ownerID)
	q.InstructorID = ownerID
	q.CreatedAt = time.Now()
	m[q.ID] = q
	if err := saveJSON(s.questions.path, m); err != nil {
		return "", unavailable(err)
	}
	return q.ID, nil
}

func (s *JSONStore) QuestionsByOwner(ctx context.Context, ownerID int64) ([]model.Question, error) {
	all, err := s.AllQuestions(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Question
	for _, q := range all {
		if q.InstructorID == ownerID {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}

func (s *JSONStore) AllQuestions(_ context.Context) (map[string]model.Question, error) {
	s.questions.mu.Lock()
	defer s.questions.mu.Unlock()
	m, err := loadJSON[model.Question](s.questions.path)
	if err != nil {
		return nil, unavailable(err)
	}
	return m, nil
}

func (s *JSONStore) SaveResult(_ context.Context, learnerID int64, answers []model.AnswerRecord, score, total int) (string, error) {
	s.results.mu.Lock()
	defer s.results.mu.Unlock()
	m, err := loadJSON[model.Result](s.results.path)
	if err != nil {
		return "", unavailable(err)
	}
	res := model.Result{
		Seq:        len(m) + 1,
		LearnerID:  learnerID,
		Answers:    answers,
		Score:      score,
		Total:      total,
		Percentage: model.Percentage(score, total),
		CreatedAt:  time.Now(),
	}
	res.ID = fmt.Sprintf("r%d_%d", res.Seq, learnerID)
	m[res.ID] = res
	if err := saveJSON(s.results.path, m); err != nil {
		return "", unavailable(err)
	}

	s.learners.mu.Lock()
	defer s.learners.mu.Unlock()
	learners, err := loadJSON[model.Learner](s.learners.path)
	if err != nil {
		return "", unavailable(err)
	}
	key := fmt.Sprintf("%d", learnerID)
	if rec, ok := learners[key]; ok {
		rec.QuizzesTaken++
		rec.TotalScore += score
		learners[key] = rec
		if err := saveJSON(s.learners.path, learners); err != nil {
			return "", unavailable(err)
		}
	}
	return res.ID, nil
}

func (s *JSONStore) ResultsByLearner(_ context.Context, learnerID int64) ([]model.Result, error) {
	s.results.mu.Lock()
	defer s.results.mu.Unlock()
	m, err := loadJSON[model.Result](s.results.path)
	if err != nil {
		return nil, unavailable(err)
	}
	var out []model.Result
	for _, r := range m {
		if r.LearnerID == learnerID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out, nil
}
