package model

import "time"

// Result is one finished quiz. Immutable once persisted.
type Result struct {
	ID         string         `json:"id"`
	Seq        int            `json:"seq"`
	LearnerID  int64          `json:"learner_id"`
	Answers    []AnswerRecord `json:"answers"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	CreatedAt  time.Time      `json:"created_at"`
}

// Percentage computes score/total as a percentage. A quiz with zero
// questions scores 0 rather than dividing by zero.
func Percentage(score, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(score) / float64(total) * 100
}
