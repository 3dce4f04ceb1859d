// Package engine drives the two conversation workflows of the bot:
// question authoring for instructors and quiz taking for learners. It is
// independent of the messaging transport: it consumes Events and produces
// Replies, and everything it remembers between events lives in the
// session table or the record store.
package engine

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/e-taalim/quizbot/internal/messages"
	"github.com/e-taalim/quizbot/internal/model"
	"github.com/e-taalim/quizbot/internal/session"
	"github.com/e-taalim/quizbot/internal/store"
)

// ReportFunc renders a finished quiz into a document file and returns its
// path. Wired from the report package; nil disables reports.
type ReportFunc func(firstName, username string, res model.Result, questions []model.Question) (string, error)

// Options tune the engine. Zero values fall back to the defaults the
// original bot used: five questions per quiz, a one second pause between
// grading feedback and the next question.
type Options struct {
	QuizSize    int
	AnswerPause time.Duration
	Rand        *rand.Rand
	Report      ReportFunc
}

type Engine struct {
	store    store.Store
	sessions session.Table
	log      *log.Logger
	rngMu    sync.Mutex // rand.Rand is not safe for concurrent use
	rng      *rand.Rand
	quizSize int
	pause    time.Duration
	report   ReportFunc
}

func New(st store.Store, sessions session.Table, logger *log.Logger, opts Options) *Engine {
	if logger == nil {
		logger = log.Default()
	}
	if opts.QuizSize <= 0 {
		opts.QuizSize = 5
	}
	if opts.AnswerPause <= 0 {
		opts.AnswerPause = time.Second
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{
		store:    st,
		sessions: sessions,
		log:      logger,
		rng:      opts.Rand,
		quizSize: opts.QuizSize,
		pause:    opts.AnswerPause,
		report:   opts.Report,
	}
}

// Handle routes one inbound event to whichever workflow owns the caller's
// session and returns the prompts to display. Events that no workflow
// expects are ignored.
func (e *Engine) Handle(ctx context.Context, ev Event) []Reply {
	switch ev.Kind {
	case Command:
		return e.handleCommand(ctx, ev)
	case ButtonPress:
		return e.handleButton(ctx, ev)
	case TextMessage:
		return e.handleText(ctx, ev)
	case PhotoMessage:
		return e.handlePhoto(ctx, ev)
	}
	return nil
}

func (e *Engine) handleCommand(_ context.Context, ev Event) []Reply {
	cmd := ev.Text
	if i := strings.IndexByte(cmd, ' '); i >= 0 {
		cmd = cmd[:i]
	}
	switch cmd {
	case "/start":
		// Restarting abandons whatever workflow was in progress.
		e.sessions.Clear(ev.UserID)
		return []Reply{{
			Text: fmt.Sprintf(messages.WelcomeFmt, ev.FirstName),
			Buttons: [][]Button{
				{{Label: messages.RoleInstructor, Data: "role_instructor"}},
				{{Label: messages.RoleLearner, Data: "role_learner"}},
			},
		}}
	case "/help":
		return []Reply{{Text: messages.Help}}
	}
	return nil
}

func (e *Engine) handleButton(ctx context.Context, ev Event) []Reply {
	data := ev.Data
	switch {
	case strings.HasPrefix(data, "role_"):
		return e.pickRole(ctx, ev)
	case data == "instructor_menu":
		e.sessions.Clear(ev.UserID)
		return []Reply{{Text: messages.InstructorMenu, Buttons: instructorMenu()}}
	case data == "learner_menu":
		e.sessions.Clear(ev.UserID)
		return []Reply{{Text: messages.LearnerMenu, Buttons: learnerMenu()}}
	case data == "add_question":
		return e.chooseKind(ev)
	case strings.HasPrefix(data, "type_"):
		return e.startAuthoring(ev)
	case strings.HasPrefix(data, "answer_"):
		return e.dispatchWorkflow(ctx, ev)
	case data == "view_questions":
		return e.viewQuestions(ctx, ev)
	case data == "instructor_stats":
		return e.instructorStats(ctx, ev)
	case data == "start_quiz":
		return e.startQuiz(ctx, ev)
	case strings.HasPrefix(data, "ans_"):
		return e.dispatchWorkflow(ctx, ev)
	case data == "my_results":
		return e.myResults(ctx, ev)
	}
	e.log.Printf("ignoring unknown button payload %q from %d", data, ev.UserID)
	return nil
}

func (e *Engine) handleText(ctx context.Context, ev Event) []Reply {
	return e.dispatchWorkflow(ctx, ev)
}

func (e *Engine) handlePhoto(ctx context.Context, ev Event) []Reply {
	return e.dispatchWorkflow(ctx, ev)
}

// dispatchWorkflow advances the workflow owning the caller's session. A
// user without a session, or an event the current step does not expect,
// is a logged no-op: stray taps never break the conversation.
func (e *Engine) dispatchWorkflow(ctx context.Context, ev Event) []Reply {
	s, ok := e.sessions.Get(ev.UserID)
	if !ok {
		e.log.Printf("ignoring %s event from %d: no active session", ev.Kind, ev.UserID)
		return nil
	}
	switch {
	case s.Draft != nil:
		return e.advanceAuthoring(ctx, ev, s)
	case s.Quiz != nil:
		return e.advanceQuiz(ctx, ev, s)
	}
	return nil
}

func (e *Engine) pickRole(ctx context.Context, ev Event) []Reply {
	e.sessions.Clear(ev.UserID)
	switch strings.TrimPrefix(ev.Data, "role_") {
	case "instructor":
		if err := e.store.UpsertInstructor(ctx, ev.UserID, ev.Username, ev.FirstName); err != nil {
			return e.storeFailure(ev, err)
		}
		return []Reply{{Text: messages.InstructorHello, Buttons: instructorMenu()}}
	case "learner":
		if err := e.store.UpsertLearner(ctx, ev.UserID, ev.Username, ev.FirstName); err != nil {
			return e.storeFailure(ev, err)
		}
		return []Reply{{Text: messages.LearnerHello, Buttons: learnerMenu()}}
	}
	e.log.Printf("ignoring unknown role payload %q from %d", ev.Data, ev.UserID)
	return nil
}

func (e *Engine) viewQuestions(ctx context.Context, ev Event) []Reply {
	qs, err := e.store.QuestionsByOwner(ctx, ev.UserID)
	if err != nil {
		return e.storeFailure(ev, err)
	}
	if len(qs) == 0 {
		return []Reply{{Text: messages.NoQuestionsYet, Buttons: backTo("instructor_menu")}}
	}
	var b strings.Builder
	fmt.Fprintf(&b, messages.YourQuestionsFmt, len(qs))
	for i, q := range qs {
		if i == 10 {
			break
		}
		prompt := q.Text
		if prompt == "" {
			prompt = messages.PhotoQuestionAlt
		}
		answer := q.CorrectAnswer
		if q.Kind == model.TrueFalse {
			answer = model.DisplayBool(q.CorrectAnswer)
		}
		fmt.Fprintf(&b, "%d. %s...\n   النوع: %s\n   الإجابة: %s\n\n",
			i+1, truncate(prompt, 30), messages.KindLabel(string(q.Kind)), answer)
	}
	return []Reply{{Text: b.String(), Buttons: backTo("instructor_menu")}}
}

func (e *Engine) instructorStats(ctx context.Context, ev Event) []Reply {
	qs, err := e.store.QuestionsByOwner(ctx, ev.UserID)
	if err != nil {
		return e.storeFailure(ev, err)
	}
	var b strings.Builder
	b.WriteString(messages.StatsHeader)
	fmt.Fprintf(&b, messages.StatsQuestionsFmt, len(qs))
	counts := map[model.QuestionKind]int{}
	for _, q := range qs {
		counts[q.Kind]++
	}
	for _, kind := range []model.QuestionKind{model.TrueFalse, model.MultipleChoice} {
		if counts[kind] > 0 {
			fmt.Fprintf(&b, "   %s: %d\n", messages.KindLabel(string(kind)), counts[kind])
		}
	}
	return []Reply{{Text: b.String(), Buttons: backTo("instructor_menu")}}
}

func (e *Engine) myResults(ctx context.Context, ev Event) []Reply {
	rs, err := e.store.ResultsByLearner(ctx, ev.UserID)
	if err != nil {
		return e.storeFailure(ev, err)
	}
	if len(rs) == 0 {
		return []Reply{{Text: messages.NoResults, Buttons: backTo("learner_menu")}}
	}
	var b strings.Builder
	fmt.Fprintf(&b, messages.YourResultsFmt, len(rs))
	totalScore, totalPossible := 0, 0
	for i, r := range rs {
		if i == 10 {
			break
		}
		fmt.Fprintf(&b, messages.ResultLineFmt,
			i+1, r.CreatedAt.Format("2006-01-02"), r.Score, r.Total, r.Percentage)
		totalScore += r.Score
		totalPossible += r.Total
	}
	if totalPossible > 0 {
		fmt.Fprintf(&b, messages.AverageFmt, float64(totalScore)/float64(totalPossible)*100)
	}
	return []Reply{{Text: b.String(), Buttons: backTo("learner_menu")}}
}

// storeFailure logs the storage error with detail and hands the user a
// generic retry-later message. The workflow layer never retries.
func (e *Engine) storeFailure(ev Event, err error) []Reply {
	e.log.Printf("storage failure for user %d: %v", ev.UserID, err)
	return []Reply{{Text: messages.StorageFailure}}
}

func instructorMenu() [][]Button {
	return [][]Button{
		{{Label: messages.BtnAddQuestion, Data: "add_question"}},
		{{Label: messages.BtnViewQuestions, Data: "view_questions"}},
		{{Label: messages.BtnStats, Data: "instructor_stats"}},
	}
}

func learnerMenu() [][]Button {
	return [][]Button{
		{{Label: messages.BtnStartQuiz, Data: "start_quiz"}},
		{{Label: messages.BtnMyResults, Data: "my_results"}},
	}
}

func backTo(menu string) [][]Button {
	return [][]Button{{{Label: messages.BtnBack, Data: menu}}}
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
