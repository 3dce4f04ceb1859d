package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/e-taalim/quizbot/internal/messages"
	"github.com/e-taalim/quizbot/internal/model"
	"github.com/e-taalim/quizbot/internal/session"
)

// startQuiz samples the quiz questions and presents the first one. With an
// empty corpus no session is created at all.
func (e *Engine) startQuiz(ctx context.Context, ev Event) []Reply {
	e.sessions.Clear(ev.UserID)
	all, err := e.store.AllQuestions(ctx)
	if err != nil {
		return e.storeFailure(ev, err)
	}
	if len(all) == 0 {
		return []Reply{{Text: messages.NoQuestions}}
	}
	picked := e.sample(all, e.quizSize)
	s := &session.Session{
		Step: session.StepQuizAnswer,
		Quiz: &session.QuizRun{Questions: picked},
	}
	e.sessions.Set(ev.UserID, s)
	return []Reply{e.present(ev, s)}
}

// sample draws min(n, len(all)) distinct questions uniformly at random.
// The drawn order is fixed for the whole quiz.
func (e *Engine) sample(all map[string]model.Question, n int) []model.Question {
	qs := make([]model.Question, 0, len(all))
	for _, q := range all {
		qs = append(qs, q)
	}
	// Map iteration order is random; sort first so the shuffle alone
	// decides the draw.
	sort.Slice(qs, func(i, j int) bool { return qs[i].Seq < qs[j].Seq })
	// Events for different users arrive on different goroutines and the
	// shared rng is not safe for concurrent use.
	e.rngMu.Lock()
	e.rng.Shuffle(len(qs), func(i, j int) {
		qs[i], qs[j] = qs[j], qs[i]
	})
	e.rngMu.Unlock()
	if n > len(qs) {
		n = len(qs)
	}
	return qs[:n]
}

// present renders the question under the cursor. Kinds without a defined
// choice set fall back to a typed answer.
func (e *Engine) present(ev Event, s *session.Session) Reply {
	run := s.Quiz
	q := run.Questions[run.Cursor]

	var b strings.Builder
	fmt.Fprintf(&b, messages.QuestionOfFmt, run.Cursor+1, len(run.Questions))
	if q.Text != "" {
		b.WriteString(q.Text)
		b.WriteString("\n\n")
	}
	var rows [][]Button
	switch {
	case q.Kind == model.TrueFalse:
		b.WriteString(messages.PickAnswer)
		rows = [][]Button{{
			{Label: messages.DisplayTrueBtn, Data: "ans_true"},
			{Label: messages.DisplayFalseBtn, Data: "ans_false"},
		}}
	case q.Kind == model.MultipleChoice && len(q.Options) > 0:
		b.WriteString(messages.PickAnswer)
		for i, opt := range q.Options {
			if i == model.MaxOptions {
				break
			}
			rows = append(rows, []Button{{Label: opt, Data: "ans_" + model.OptionKey(opt)}})
		}
	default:
		b.WriteString(messages.TypeAnswer)
		run.AwaitText = true
		e.sessions.Set(ev.UserID, s)
	}
	return Reply{Text: b.String(), ImageRef: q.Photo, Buttons: rows}
}

// advanceQuiz feeds one event into the quiz workflow. Only an answer
// button, or a text message while a free-text question is open, moves the
// quiz forward; anything else is a logged no-op.
func (e *Engine) advanceQuiz(ctx context.Context, ev Event, s *session.Session) []Reply {
	switch {
	case ev.Kind == ButtonPress && strings.HasPrefix(ev.Data, "ans_") && s.Step == session.StepQuizAnswer:
		return e.gradeAnswer(ctx, ev, s, strings.TrimPrefix(ev.Data, "ans_"))
	case ev.Kind == TextMessage && s.Quiz.AwaitText:
		return e.gradeAnswer(ctx, ev, s, ev.Text)
	}
	e.log.Printf("ignoring %s event from %d during quiz", ev.Kind, ev.UserID)
	return nil
}

func (e *Engine) gradeAnswer(ctx context.Context, ev Event, s *session.Session, submitted string) []Reply {
	run := s.Quiz
	q := run.Questions[run.Cursor]

	correct := model.Grade(q, submitted)
	run.Answers = append(run.Answers, model.AnswerRecord{
		QuestionID:    q.ID,
		UserAnswer:    submitted,
		CorrectAnswer: q.CorrectAnswer,
		IsCorrect:     correct,
	})
	if correct {
		run.Score++
	}
	run.Cursor++
	run.AwaitText = false

	feedback := messages.AnswerWrong
	if correct {
		feedback = messages.AnswerCorrect
	}

	if run.Cursor < len(run.Questions) {
		e.sessions.Set(ev.UserID, s)
		next := e.present(ev, s)
		next.Pause = e.pause
		return append([]Reply{{Text: feedback + "\n\n" + messages.LoadingNext}}, next)
	}
	return e.finishQuiz(ctx, ev, s, feedback)
}

func (e *Engine) finishQuiz(ctx context.Context, ev Event, s *session.Session, feedback string) []Reply {
	run := s.Quiz
	e.sessions.Clear(ev.UserID)

	id, err := e.store.SaveResult(ctx, ev.UserID, run.Answers, run.Score, len(run.Questions))
	if err != nil {
		return append([]Reply{{Text: feedback}}, e.storeFailure(ev, err)...)
	}

	percentage := model.Percentage(run.Score, len(run.Questions))
	var b strings.Builder
	b.WriteString(messages.QuizFinished)
	fmt.Fprintf(&b, messages.ScoreFmt, run.Score, len(run.Questions))
	fmt.Fprintf(&b, messages.PercentFmt, percentage)
	b.WriteString(feedbackTier(run.Score, len(run.Questions)))

	replies := []Reply{
		{Text: feedback},
		{
			Text:  b.String(),
			Pause: e.pause,
			Buttons: [][]Button{
				{
					{Label: messages.BtnNewQuiz, Data: "start_quiz"},
					{Label: messages.BtnMyResults, Data: "my_results"},
				},
				{{Label: messages.BtnMainMenu, Data: "learner_menu"}},
			},
		},
	}

	if e.report != nil {
		res := model.Result{
			ID:         id,
			LearnerID:  ev.UserID,
			Answers:    run.Answers,
			Score:      run.Score,
			Total:      len(run.Questions),
			Percentage: percentage,
		}
		path, err := e.report(ev.FirstName, ev.Username, res, run.Questions)
		if err != nil {
			e.log.Printf("result report for %d failed: %v", ev.UserID, err)
		} else {
			replies = append(replies, Reply{Attachment: path})
		}
	}
	return replies
}

// feedbackTier picks the closing line by percentage band.
func feedbackTier(score, total int) string {
	switch {
	case score == total:
		return messages.TierTop
	case float64(score) >= float64(total)*0.7:
		return messages.TierHigh
	case float64(score) >= float64(total)*0.5:
		return messages.TierMiddle
	default:
		return messages.TierLow
	}
}
