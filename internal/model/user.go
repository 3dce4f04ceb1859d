package model

import "time"

// Instructor is created on first role selection and never mutated.
type Instructor struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Learner carries cumulative quiz aggregates alongside the identity
// fields. QuizzesTaken and TotalScore are mutated only when a result is
// persisted.
type Learner struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
	QuizzesTaken int       `json:"quizzes_taken"`
	TotalScore   int       `json:"total_score"`
}
