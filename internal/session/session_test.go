package session

import (
	"testing"

	"github.com/e-taalim/quizbot/internal/model"
)

func TestMemoryTable(t *testing.T) {
	tab := NewMemoryTable()

	if _, ok := tab.Get(1); ok {
		t.Fatal("empty table reported a session")
	}

	tab.Set(1, &Session{Step: StepAwaitPrompt, Draft: &Draft{Kind: model.TrueFalse}})
	s, ok := tab.Get(1)
	if !ok || s.Step != StepAwaitPrompt || s.Draft == nil {
		t.Fatalf("stored session not returned: %+v ok=%v", s, ok)
	}
	if _, ok := tab.Get(2); ok {
		t.Fatal("session leaked to another user")
	}

	// Re-set replaces the whole session, not merges it.
	tab.Set(1, &Session{Step: StepQuizAnswer, Quiz: &QuizRun{}})
	s, _ = tab.Get(1)
	if s.Step != StepQuizAnswer || s.Draft != nil {
		t.Fatalf("re-set did not replace session: %+v", s)
	}

	tab.Clear(1)
	if _, ok := tab.Get(1); ok {
		t.Fatal("Clear left the session behind")
	}
	// Clearing a missing entry is a no-op.
	tab.Clear(1)
}
