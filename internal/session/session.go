// Package session holds the in-progress workflow state of each user.
// The table lives in process memory only: a restart drops every
// half-finished authoring or quiz session, which is an accepted limitation.
package session

import (
	"sync"

	"github.com/e-taalim/quizbot/internal/model"
)

// Step tags where inside a workflow a session currently waits.
type Step string

const (
	// Authoring steps.
	StepAwaitPrompt    Step = "await_prompt"
	StepAwaitOptions   Step = "await_options"
	StepAwaitOptionKey Step = "await_option_key"
	StepAwaitTFAnswer  Step = "await_tf_answer"
	// Quiz step.
	StepQuizAnswer Step = "quiz_answer"
)

// Draft accumulates a question while an instructor is authoring it.
type Draft struct {
	Kind    model.QuestionKind
	Text    string
	Photo   string
	Options []string
}

// QuizRun accumulates a learner's quiz: the fixed question order, the
// cursor, the running score and the per-question answer log. AwaitText is
// set while a question without a defined choice set waits for a typed
// answer.
type QuizRun struct {
	Questions []model.Question
	Cursor    int
	Score     int
	Answers   []model.AnswerRecord
	AwaitText bool
}

// Session is one user's unfinished workflow. Exactly one of Draft and
// Quiz is set.
type Session struct {
	Step  Step
	Draft *Draft
	Quiz  *QuizRun
}

// Table maps user ids to sessions. An entry exists if and only if the
// user has an unfinished workflow.
type Table interface {
	Get(userID int64) (*Session, bool)
	Set(userID int64, s *Session)
	Clear(userID int64)
}

// MemoryTable is the single-process Table. Entries for different users
// never block each other beyond the map lock itself.
type MemoryTable struct {
	mu   sync.RWMutex
	data map[int64]*Session
}

func NewMemoryTable() *MemoryTable {
	return &MemoryTable{data: make(map[int64]*Session)}
}

func (t *MemoryTable) Get(userID int64) (*Session, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	s, ok := t.data[userID]
	return s, ok
}

func (t *MemoryTable) Set(userID int64, s *Session) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.data[userID] = s
}

func (t *MemoryTable) Clear(userID int64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.data, userID)
}
