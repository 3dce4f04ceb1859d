package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/e-taalim/quizbot/internal/messages"
	"github.com/e-taalim/quizbot/internal/model"
	"github.com/e-taalim/quizbot/internal/session"
)

// authAction advances the authoring workflow one step.
type authAction func(e *Engine, ctx context.Context, ev Event, s *session.Session) []Reply

// authoringSteps is the transition table of the authoring state machine:
// which event kinds each step accepts and what they do. Any (step, event)
// pair missing here is a deliberate no-op, so out-of-order taps and stray
// messages cannot derail a session.
var authoringSteps = map[session.Step]map[EventKind]authAction{
	session.StepAwaitPrompt: {
		TextMessage:  (*Engine).authPromptText,
		PhotoMessage: (*Engine).authPromptPhoto,
	},
	session.StepAwaitOptions: {
		TextMessage: (*Engine).authOptions,
	},
	session.StepAwaitOptionKey: {
		TextMessage: (*Engine).authOptionKey,
	},
	session.StepAwaitTFAnswer: {
		ButtonPress: (*Engine).authTFAnswer,
	},
}

// chooseKind shows the question-kind keyboard. Entering authoring from the
// menu abandons any workflow already in progress.
func (e *Engine) chooseKind(ev Event) []Reply {
	e.sessions.Clear(ev.UserID)
	return []Reply{{
		Text: messages.ChooseKind,
		Buttons: [][]Button{
			{{Label: messages.KindTrueFalse, Data: "type_true_false"}},
			{{Label: messages.KindMultiple, Data: "type_multiple_choice"}},
			{{Label: messages.BtnBack, Data: "instructor_menu"}},
		},
	}}
}

// startAuthoring creates the authoring session once a kind is picked.
func (e *Engine) startAuthoring(ev Event) []Reply {
	kind := model.QuestionKind(strings.TrimPrefix(ev.Data, "type_"))
	if kind != model.TrueFalse && kind != model.MultipleChoice {
		e.log.Printf("ignoring unknown question kind %q from %d", ev.Data, ev.UserID)
		return nil
	}
	e.sessions.Set(ev.UserID, &session.Session{
		Step:  session.StepAwaitPrompt,
		Draft: &session.Draft{Kind: kind},
	})
	return []Reply{{Text: fmt.Sprintf(messages.KindChosenFmt, messages.KindLabel(string(kind)))}}
}

func (e *Engine) advanceAuthoring(ctx context.Context, ev Event, s *session.Session) []Reply {
	if actions, ok := authoringSteps[s.Step]; ok {
		if action, ok := actions[ev.Kind]; ok {
			return action(e, ctx, ev, s)
		}
	}
	e.log.Printf("ignoring %s event from %d in authoring step %s", ev.Kind, ev.UserID, s.Step)
	return nil
}

func (e *Engine) authPromptText(_ context.Context, ev Event, s *session.Session) []Reply {
	s.Draft.Text = ev.Text
	return e.afterPrompt(ev, s, messages.PromptSavedText)
}

func (e *Engine) authPromptPhoto(_ context.Context, ev Event, s *session.Session) []Reply {
	s.Draft.Photo = ev.PhotoRef
	return e.afterPrompt(ev, s, messages.PromptSavedPhoto)
}

// afterPrompt branches on the question kind: true/false goes straight to
// the correct-answer buttons, multiple-choice asks for the option list.
func (e *Engine) afterPrompt(ev Event, s *session.Session, saved string) []Reply {
	if s.Draft.Kind == model.TrueFalse {
		s.Step = session.StepAwaitTFAnswer
		e.sessions.Set(ev.UserID, s)
		return []Reply{{
			Text: saved + "\n" + messages.AskCorrectAnswer,
			Buttons: [][]Button{{
				{Label: messages.DisplayTrueBtn, Data: "answer_true"},
				{Label: messages.DisplayFalseBtn, Data: "answer_false"},
			}},
		}}
	}
	s.Step = session.StepAwaitOptions
	e.sessions.Set(ev.UserID, s)
	return []Reply{{Text: saved + "\n" + messages.AskOptions}}
}

func (e *Engine) authOptions(_ context.Context, ev Event, s *session.Session) []Reply {
	options := splitOptions(ev.Text)
	if len(options) == 0 || len(options) > model.MaxOptions {
		return []Reply{{Text: messages.BadOptions}}
	}
	s.Draft.Options = options
	s.Step = session.StepAwaitOptionKey
	e.sessions.Set(ev.UserID, s)
	return []Reply{{Text: messages.OptionsSaved}}
}

func (e *Engine) authOptionKey(ctx context.Context, ev Event, s *session.Session) []Reply {
	q, err := model.NewMultipleChoice(s.Draft.Text, s.Draft.Photo, s.Draft.Options, ev.Text)
	if err != nil {
		if errors.Is(err, model.ErrBadOptions) {
			s.Step = session.StepAwaitOptions
			e.sessions.Set(ev.UserID, s)
			return []Reply{{Text: messages.BadOptions}}
		}
		// Anything else is a bad correct key; the step stays put so the
		// instructor just resends it.
		e.log.Printf("rejecting question draft from %d: %v", ev.UserID, err)
		return []Reply{{Text: messages.BadCorrectKey}}
	}
	return e.persistQuestion(ctx, ev, q, fmt.Sprintf(messages.QuestionAddedFmt, "%s"))
}

func (e *Engine) authTFAnswer(ctx context.Context, ev Event, s *session.Session) []Reply {
	var correct string
	switch ev.Data {
	case "answer_true":
		correct = string(model.AnswerTrue)
	case "answer_false":
		correct = string(model.AnswerFalse)
	default:
		e.log.Printf("ignoring button %q from %d while awaiting a true/false answer", ev.Data, ev.UserID)
		return nil
	}
	q, err := model.NewTrueFalse(s.Draft.Text, s.Draft.Photo, correct)
	if err != nil {
		e.log.Printf("rejecting question draft from %d: %v", ev.UserID, err)
		return []Reply{{Text: messages.GenericFailure}}
	}
	added := fmt.Sprintf(messages.QuestionAddedTF, "%s", model.DisplayBool(correct))
	return e.persistQuestion(ctx, ev, q, added)
}

// persistQuestion stores the finished draft and ends the session. addedFmt
// carries a single %s placeholder for the assigned question id.
func (e *Engine) persistQuestion(ctx context.Context, ev Event, q model.Question, addedFmt string) []Reply {
	q.InstructorName = ev.FirstName
	id, err := e.store.AddQuestion(ctx, ev.UserID, q)
	if err != nil {
		return e.storeFailure(ev, err)
	}
	e.sessions.Clear(ev.UserID)
	return []Reply{{Text: fmt.Sprintf(addedFmt, id)}}
}

// splitOptions turns the newline-delimited option message into its
// non-empty lines.
func splitOptions(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, strings.TrimSpace(line))
		}
	}
	return out
}
