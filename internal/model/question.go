package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// QuestionKind distinguishes the supported question variants.
type QuestionKind string

const (
	TrueFalse      QuestionKind = "true_false"
	MultipleChoice QuestionKind = "multiple_choice"
)

// MaxOptions is the highest number of options a multiple-choice question
// may carry.
const MaxOptions = 4

var (
	ErrEmptyPrompt   = errors.New("question needs a text or an image prompt")
	ErrBadOptions    = errors.New("multiple choice needs between 1 and 4 options")
	ErrEmptyCorrect  = errors.New("correct answer must not be empty")
	ErrUnknownAnswer = errors.New("correct answer is not a recognized true/false token")
)

// Question is a persisted quiz question. Questions are immutable once
// assigned an id by the store; there is no update or delete.
type Question struct {
	ID             string       `json:"id"`
	Seq            int          `json:"seq"`
	Kind           QuestionKind `json:"type"`
	Text           string       `json:"question,omitempty"`
	Photo          string       `json:"photo,omitempty"`
	Options        []string     `json:"options,omitempty"`
	CorrectAnswer  string       `json:"correct_answer"`
	InstructorID   int64        `json:"instructor_id"`
	InstructorName string       `json:"instructor_name,omitempty"`
	CreatedAt      time.Time    `json:"created_at"`
}

// NewTrueFalse builds a true/false question. The correct answer is
// canonicalized here, never at read time.
func NewTrueFalse(text, photo, correct string) (Question, error) {
	if strings.TrimSpace(text) == "" && photo == "" {
		return Question{}, ErrEmptyPrompt
	}
	answer, ok := CanonicalBool(correct)
	if !ok {
		return Question{}, fmt.Errorf("%w: %q", ErrUnknownAnswer, correct)
	}
	return Question{
		Kind:          TrueFalse,
		Text:          text,
		Photo:         photo,
		CorrectAnswer: string(answer),
	}, nil
}

// NewMultipleChoice builds a multiple-choice question from the option
// lines the instructor sent and the key of the correct option. The key is
// trimmed and case-folded before it is stored.
func NewMultipleChoice(text, photo string, options []string, correctKey string) (Question, error) {
	if strings.TrimSpace(text) == "" && photo == "" {
		return Question{}, ErrEmptyPrompt
	}
	var kept []string
	for _, opt := range options {
		if strings.TrimSpace(opt) != "" {
			kept = append(kept, strings.TrimSpace(opt))
		}
	}
	if len(kept) == 0 || len(kept) > MaxOptions {
		return Question{}, ErrBadOptions
	}
	key := strings.ToLower(strings.TrimSpace(correctKey))
	if key == "" {
		return Question{}, ErrEmptyCorrect
	}
	return Question{
		Kind:          MultipleChoice,
		Text:          text,
		Photo:         photo,
		Options:       kept,
		CorrectAnswer: key,
	}, nil
}

// OptionKey extracts the selectable key of an option line. Instructors
// write options as "أ) النص", so the key is whatever precedes the closing
// parenthesis; an option without one is keyed by its first rune.
func OptionKey(option string) string {
	option = strings.TrimSpace(option)
	if i := strings.IndexRune(option, ')'); i > 0 {
		return strings.TrimSpace(option[:i])
	}
	for _, r := range option {
		return string(r)
	}
	return ""
}

// Grade reports whether a submitted answer matches the stored correct
// answer. True/false answers are normalized through the canonical mapping
// on both sides; option keys compare case-insensitively.
func Grade(q Question, submitted string) bool {
	if q.Kind == TrueFalse {
		sub, okSub := CanonicalBool(submitted)
		cor, okCor := CanonicalBool(q.CorrectAnswer)
		return okSub && okCor && sub == cor
	}
	return strings.EqualFold(strings.TrimSpace(submitted), strings.TrimSpace(q.CorrectAnswer))
}
