package engine

import (
	"context"
	"strings"
	"testing"

	"github.com/e-taalim/quizbot/internal/messages"
	"github.com/e-taalim/quizbot/internal/model"
	"github.com/e-taalim/quizbot/internal/session"
)

func TestAuthorTrueFalseQuestion(t *testing.T) {
	eng, tab, st := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 100

	rs := eng.Handle(ctx, button(instructor, "add_question"))
	if len(rs) != 1 || rs[0].Text != messages.ChooseKind {
		t.Fatalf("kind keyboard not shown: %v", rs)
	}

	rs = eng.Handle(ctx, button(instructor, "type_true_false"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, messages.KindTrueFalse) {
		t.Fatalf("kind confirmation missing: %v", rs)
	}
	s, ok := tab.Get(instructor)
	if !ok || s.Step != session.StepAwaitPrompt || s.Draft.Kind != model.TrueFalse {
		t.Fatalf("authoring session not opened: %+v", s)
	}

	rs = eng.Handle(ctx, textMsg(instructor, "السماء زرقاء"))
	if len(rs) != 1 {
		t.Fatalf("got %d replies after prompt", len(rs))
	}
	data := buttonData(rs[0])
	if len(data) != 2 || data[0] != "answer_true" || data[1] != "answer_false" {
		t.Fatalf("answer keyboard payloads = %v", data)
	}
	s, _ = tab.Get(instructor)
	if s.Step != session.StepAwaitTFAnswer {
		t.Fatalf("step = %s, want %s", s.Step, session.StepAwaitTFAnswer)
	}

	rs = eng.Handle(ctx, button(instructor, "answer_true"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "q1_100") {
		t.Fatalf("confirmation missing question id: %v", rs)
	}
	if _, ok := tab.Get(instructor); ok {
		t.Error("session survived question persistence")
	}

	qs, err := st.QuestionsByOwner(ctx, instructor)
	if err != nil {
		t.Fatalf("QuestionsByOwner: %v", err)
	}
	if len(qs) != 1 {
		t.Fatalf("stored %d questions, want 1", len(qs))
	}
	q := qs[0]
	if q.Kind != model.TrueFalse || q.Text != "السماء زرقاء" || q.CorrectAnswer != string(model.AnswerTrue) {
		t.Errorf("stored question %+v, want canonical true answer", q)
	}
}

func TestAuthorMultipleChoiceQuestion(t *testing.T) {
	eng, tab, st := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 200

	eng.Handle(ctx, button(instructor, "add_question"))
	eng.Handle(ctx, button(instructor, "type_multiple_choice"))
	rs := eng.Handle(ctx, textMsg(instructor, "ما هي عاصمة مصر؟"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, messages.AskOptions) {
		t.Fatalf("option prompt missing: %v", rs)
	}

	rs = eng.Handle(ctx, textMsg(instructor, "أ) القاهرة\nب) الرياض\n\nج) بغداد"))
	if len(rs) != 1 || rs[0].Text != messages.OptionsSaved {
		t.Fatalf("options not accepted: %v", rs)
	}
	s, _ := tab.Get(instructor)
	if s.Step != session.StepAwaitOptionKey || len(s.Draft.Options) != 3 {
		t.Fatalf("session after options: %+v draft=%+v", s, s.Draft)
	}

	rs = eng.Handle(ctx, textMsg(instructor, "أ"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "q1_200") {
		t.Fatalf("confirmation missing question id: %v", rs)
	}
	if _, ok := tab.Get(instructor); ok {
		t.Error("session survived question persistence")
	}

	qs, err := st.QuestionsByOwner(ctx, instructor)
	if err != nil {
		t.Fatalf("QuestionsByOwner: %v", err)
	}
	q := qs[0]
	if q.Kind != model.MultipleChoice || len(q.Options) != 3 || q.CorrectAnswer != "أ" {
		t.Errorf("stored question %+v", q)
	}
	if q.InstructorName != "مستخدم" {
		t.Errorf("instructor name not recorded: %q", q.InstructorName)
	}
}

func TestAuthoringRejectsTooManyOptions(t *testing.T) {
	eng, tab, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 300

	eng.Handle(ctx, button(instructor, "type_multiple_choice"))
	eng.Handle(ctx, textMsg(instructor, "سؤال"))
	rs := eng.Handle(ctx, textMsg(instructor, "أ) 1\nب) 2\nج) 3\nد) 4\nهـ) 5"))
	if len(rs) != 1 || rs[0].Text != messages.BadOptions {
		t.Fatalf("oversized option list not rejected: %v", rs)
	}
	// The step does not advance; the instructor resends the options.
	s, _ := tab.Get(instructor)
	if s.Step != session.StepAwaitOptions {
		t.Errorf("step = %s after rejection, want %s", s.Step, session.StepAwaitOptions)
	}

	rs = eng.Handle(ctx, textMsg(instructor, "أ) 1\nب) 2"))
	if rs[0].Text != messages.OptionsSaved {
		t.Errorf("resent options not accepted: %v", rs)
	}
}

func TestAuthoringRejectsBlankCorrectKey(t *testing.T) {
	eng, tab, st := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 350

	eng.Handle(ctx, button(instructor, "type_multiple_choice"))
	eng.Handle(ctx, textMsg(instructor, "سؤال"))
	eng.Handle(ctx, textMsg(instructor, "أ) 1\nب) 2"))

	rs := eng.Handle(ctx, textMsg(instructor, "   "))
	if len(rs) != 1 || rs[0].Text != messages.BadCorrectKey {
		t.Fatalf("blank key not rejected with its own prompt: %v", rs)
	}
	s, _ := tab.Get(instructor)
	if s.Step != session.StepAwaitOptionKey {
		t.Fatalf("step = %s after rejection, want %s", s.Step, session.StepAwaitOptionKey)
	}

	// Resending a valid key completes the draft.
	rs = eng.Handle(ctx, textMsg(instructor, "ب"))
	if len(rs) != 1 || !strings.Contains(rs[0].Text, "q1_350") {
		t.Fatalf("valid key after rejection not accepted: %v", rs)
	}
	qs, err := st.QuestionsByOwner(ctx, instructor)
	if err != nil {
		t.Fatalf("QuestionsByOwner: %v", err)
	}
	if len(qs) != 1 || qs[0].CorrectAnswer != "ب" {
		t.Errorf("stored question %+v", qs)
	}
}

func TestAuthoringAbandonedByMenu(t *testing.T) {
	eng, tab, st := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 400

	eng.Handle(ctx, button(instructor, "type_true_false"))
	eng.Handle(ctx, textMsg(instructor, "سؤال معلق"))
	eng.Handle(ctx, button(instructor, "instructor_menu"))

	if _, ok := tab.Get(instructor); ok {
		t.Error("menu button did not abandon the draft")
	}
	qs, err := st.QuestionsByOwner(ctx, instructor)
	if err != nil {
		t.Fatalf("QuestionsByOwner: %v", err)
	}
	if len(qs) != 0 {
		t.Errorf("abandoned draft was persisted: %v", qs)
	}
}

func TestAuthoringIgnoresOutOfStepEvents(t *testing.T) {
	eng, tab, _ := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 500

	eng.Handle(ctx, button(instructor, "type_true_false"))
	eng.Handle(ctx, textMsg(instructor, "سؤال"))

	// A text message while the answer buttons are up changes nothing.
	if rs := eng.Handle(ctx, textMsg(instructor, "صح")); rs != nil {
		t.Errorf("out-of-step text produced replies: %v", rs)
	}
	s, ok := tab.Get(instructor)
	if !ok || s.Step != session.StepAwaitTFAnswer {
		t.Fatalf("session disturbed by stray text: %+v", s)
	}

	// An unrelated button at this step is also ignored.
	if rs := eng.Handle(ctx, button(instructor, "ans_true")); rs != nil {
		t.Errorf("stray quiz button produced replies: %v", rs)
	}
}

func TestPhotoPromptAuthoring(t *testing.T) {
	eng, _, st := newTestEngine(t, Options{})
	ctx := context.Background()
	const instructor int64 = 600

	eng.Handle(ctx, button(instructor, "type_true_false"))
	rs := eng.Handle(ctx, Event{
		UserID: instructor, FirstName: "مستخدم", Kind: PhotoMessage, PhotoRef: "data/questions/600_1.jpg",
	})
	if len(rs) != 1 || !strings.Contains(rs[0].Text, messages.PromptSavedPhoto) {
		t.Fatalf("photo prompt not acknowledged: %v", rs)
	}
	eng.Handle(ctx, button(instructor, "answer_false"))

	qs, err := st.QuestionsByOwner(ctx, instructor)
	if err != nil {
		t.Fatalf("QuestionsByOwner: %v", err)
	}
	q := qs[0]
	if q.Photo != "data/questions/600_1.jpg" || q.Text != "" {
		t.Errorf("photo question %+v", q)
	}
	if q.CorrectAnswer != string(model.AnswerFalse) {
		t.Errorf("correct answer = %q, want canonical false", q.CorrectAnswer)
	}
}

func TestSplitOptions(t *testing.T) {
	got := splitOptions("  أ) الأول \n\n ب) الثاني\n   \n")
	if len(got) != 2 || got[0] != "أ) الأول" || got[1] != "ب) الثاني" {
		t.Errorf("splitOptions = %q", got)
	}
	if got := splitOptions("   \n \n"); got != nil {
		t.Errorf("blank message produced options: %q", got)
	}
}
