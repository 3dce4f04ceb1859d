package model

import "strings"

// Answer is the canonical internal token for a true/false choice.
// Correct answers are normalized to one of these values at write time,
// so grading never depends on the display language of the buttons.
type Answer string

const (
	AnswerTrue  Answer = "true"
	AnswerFalse Answer = "false"
)

// Display tokens shown to users for the two canonical values.
const (
	DisplayTrue  = "صح"
	DisplayFalse = "خطأ"
)

// CanonicalBool maps a submitted or stored true/false token to its
// canonical value. It accepts the canonical tokens themselves as well as
// the Arabic display tokens, so records written by older versions of the
// bot still grade correctly.
func CanonicalBool(s string) (Answer, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(AnswerTrue), DisplayTrue:
		return AnswerTrue, true
	case string(AnswerFalse), DisplayFalse:
		return AnswerFalse, true
	}
	return "", false
}

// DisplayBool returns the user-facing token for a stored true/false answer.
func DisplayBool(s string) string {
	if a, ok := CanonicalBool(s); ok && a == AnswerTrue {
		return DisplayTrue
	}
	return DisplayFalse
}

// AnswerRecord is one graded answer inside a quiz result.
type AnswerRecord struct {
	QuestionID    string `json:"question_id"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	IsCorrect     bool   `json:"is_correct"`
}
