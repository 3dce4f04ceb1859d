package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/e-taalim/quizbot/internal/model"
	"github.com/e-taalim/quizbot/internal/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.Store) {
	t.Helper()
	st, err := store.NewJSONStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	t.Cleanup(st.Close)
	ts := httptest.NewServer(New(st, log.New(io.Discard, "", 0)).Handler())
	t.Cleanup(ts.Close)
	return ts, st
}

func getJSON(t *testing.T, url string, out any) int {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decode %s: %v", url, err)
		}
	}
	return resp.StatusCode
}

func TestLearnerResults(t *testing.T) {
	ts, st := newTestServer(t)
	ctx := context.Background()

	if err := st.UpsertLearner(ctx, 5, "sara", "سارة"); err != nil {
		t.Fatalf("UpsertLearner: %v", err)
	}
	if _, err := st.SaveResult(ctx, 5, nil, 3, 5); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}
	if _, err := st.SaveResult(ctx, 5, nil, 5, 5); err != nil {
		t.Fatalf("SaveResult: %v", err)
	}

	var resp learnerResultsResponse
	if code := getJSON(t, ts.URL+"/learners/5/results", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.LearnerID != 5 || resp.Quizzes != 2 || len(resp.Results) != 2 {
		t.Errorf("response %+v", resp)
	}
	if resp.AverageRaw != 80 {
		t.Errorf("average = %v, want 80 (8 of 10)", resp.AverageRaw)
	}
}

func TestLearnerResultsEmpty(t *testing.T) {
	ts, _ := newTestServer(t)
	var resp learnerResultsResponse
	if code := getJSON(t, ts.URL+"/learners/99/results", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.Quizzes != 0 || resp.AverageRaw != 0 {
		t.Errorf("empty learner response %+v", resp)
	}
}

func TestInstructorQuestions(t *testing.T) {
	ts, st := newTestServer(t)
	ctx := context.Background()

	q, err := model.NewTrueFalse("عبارة", "", "صح")
	if err != nil {
		t.Fatalf("NewTrueFalse: %v", err)
	}
	if _, err := st.AddQuestion(ctx, 7, q); err != nil {
		t.Fatalf("AddQuestion: %v", err)
	}

	var resp instructorQuestionsResponse
	if code := getJSON(t, ts.URL+"/instructors/7/questions", &resp); code != http.StatusOK {
		t.Fatalf("status %d", code)
	}
	if resp.Count != 1 || resp.Questions[0].CorrectAnswer != "true" {
		t.Errorf("response %+v", resp)
	}
}

func TestBadID(t *testing.T) {
	ts, _ := newTestServer(t)
	if code := getJSON(t, ts.URL+"/learners/abc/results", nil); code != http.StatusBadRequest {
		t.Errorf("status %d, want 400", code)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	ts, _ := newTestServer(t)
	resp, err := http.Post(ts.URL+"/learners/5/results", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want 405", resp.StatusCode)
	}
}
