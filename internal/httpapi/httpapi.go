// Package httpapi exposes a small read-only JSON API over the record
// store, for dashboards or ad-hoc inspection.
package httpapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/e-taalim/quizbot/internal/model"
	"github.com/e-taalim/quizbot/internal/store"
)

type Server struct {
	store store.Store
	log   *log.Logger
}

func New(st store.Store, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{store: st, log: logger}
}

// Handler routes the two read endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /learners/{id}/results", s.learnerResults)
	mux.HandleFunc("GET /instructors/{id}/questions", s.instructorQuestions)
	return mux
}

type learnerResultsResponse struct {
	LearnerID  int64          `json:"learner_id"`
	Results    []model.Result `json:"results"`
	Quizzes    int            `json:"quizzes"`
	AverageRaw float64        `json:"average_percentage"`
}

func (s *Server) learnerResults(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid learner id")
		return
	}
	results, err := s.store.ResultsByLearner(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	resp := learnerResultsResponse{LearnerID: id, Results: results, Quizzes: len(results)}
	score, possible := 0, 0
	for _, res := range results {
		score += res.Score
		possible += res.Total
	}
	resp.AverageRaw = model.Percentage(score, possible)
	writeJSON(w, resp)
}

type instructorQuestionsResponse struct {
	InstructorID int64            `json:"instructor_id"`
	Questions    []model.Question `json:"questions"`
	Count        int              `json:"count"`
}

func (s *Server) instructorQuestions(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		errorResponse(w, http.StatusBadRequest, "invalid instructor id")
		return
	}
	questions, err := s.store.QuestionsByOwner(r.Context(), id)
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, instructorQuestionsResponse{InstructorID: id, Questions: questions, Count: len(questions)})
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	s.log.Printf("http api storage failure: %v", err)
	status := http.StatusInternalServerError
	if errors.Is(err, store.ErrUnavailable) {
		status = http.StatusServiceUnavailable
	}
	errorResponse(w, status, "storage unavailable")
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		errorResponse(w, http.StatusInternalServerError, "failed to encode response")
	}
}

func errorResponse(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
