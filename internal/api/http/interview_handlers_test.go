package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/prepdesk/interviewd/internal/evaluate"
	"github.com/prepdesk/interviewd/internal/interview"
	"github.com/prepdesk/interviewd/internal/question"
)

func testRouter(t *testing.T) chi.Router {
	t.Helper()
	bank, err := question.NewBank([]question.Question{
		{
			ID:   "m1",
			Text: "Which function adds a range?",
			Type: question.TypeMultipleChoice,
			Options: []question.Option{
				{Label: "a", Text: "SUM"},
				{Label: "b", Text: "CONCAT"},
			},
			CorrectChoice: "a",
			Category:      "basic_functions",
		},
		{
			ID:                 "o1",
			Text:               "Explain VLOOKUP.",
			Type:               question.TypeOpenEnded,
			EvaluationCriteria: []string{"exact match"},
			Category:           "lookup_functions",
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	// nil evaluator: every open-ended answer gets the fallback evaluation.
	svc := interview.NewService(bank, interview.NewMemoryRegistry(), evaluate.NewDispatcher(nil, time.Second), 1, 1)

	r := chi.NewRouter()
	r.Post("/api/interview/start", StartInterviewHandler(svc))
	r.Post("/api/interview/submit-answer", SubmitAnswerHandler(svc))
	r.Get("/api/interview/sessions/{sessionID}", GetSessionHandler(svc))
	r.Get("/api/interview/sessions/{sessionID}/report", GetReportHandler(svc))
	return r
}

func doJSON(t *testing.T, r chi.Router, method, path string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(w.Body.Bytes(), &decoded); err != nil {
			t.Fatalf("bad json response (%d): %s", w.Code, w.Body.String())
		}
	}
	return w, decoded
}

func TestInterviewFlowOverHTTP(t *testing.T) {
	r := testRouter(t)

	w, start := doJSON(t, r, http.MethodPost, "/api/interview/start", map[string]string{"candidate_name": "Grace"})
	if w.Code != http.StatusOK {
		t.Fatalf("start: status %d: %s", w.Code, w.Body.String())
	}
	sessionID, _ := start["session_id"].(string)
	if sessionID == "" {
		t.Fatalf("start: missing session_id: %v", start)
	}
	if start["total_questions"].(float64) != 2 || start["question_number"].(float64) != 1 {
		t.Errorf("start payload: %v", start)
	}

	// MCQ first; "a" is correct.
	w, res := doJSON(t, r, http.MethodPost, "/api/interview/submit-answer", map[string]string{
		"session_id": sessionID,
		"answer":     "a",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit 1: status %d: %s", w.Code, w.Body.String())
	}
	if res["status"] != "continue" || res["score"].(float64) != 10 {
		t.Errorf("submit 1 payload: %v", res)
	}
	if res["question_number"].(float64) != 2 {
		t.Errorf("submit 1 next number: %v", res["question_number"])
	}

	// Report before completion is a conflict.
	w, _ = doJSON(t, r, http.MethodGet, "/api/interview/sessions/"+sessionID+"/report", nil)
	if w.Code != http.StatusConflict {
		t.Errorf("early report: want 409, got %d", w.Code)
	}

	w, res = doJSON(t, r, http.MethodPost, "/api/interview/submit-answer", map[string]string{
		"session_id": sessionID,
		"answer":     "it looks things up",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("submit 2: status %d: %s", w.Code, w.Body.String())
	}
	if res["status"] != "completed" {
		t.Fatalf("submit 2 payload: %v", res)
	}
	report, ok := res["report"].(map[string]any)
	if !ok {
		t.Fatalf("missing report: %v", res)
	}
	// MCQ mean 10, open fallback 5 -> overall 7.5.
	if report["overall_score"].(float64) != 7.5 {
		t.Errorf("overall score: %v", report["overall_score"])
	}
	if report["performance_level"] != "Advanced" {
		t.Errorf("performance level: %v", report["performance_level"])
	}

	w, report = doJSON(t, r, http.MethodGet, "/api/interview/sessions/"+sessionID+"/report", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("report: status %d", w.Code)
	}
	if report["candidate_name"] != "Grace" {
		t.Errorf("report candidate: %v", report["candidate_name"])
	}

	w, session := doJSON(t, r, http.MethodGet, "/api/interview/sessions/"+sessionID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("session: status %d", w.Code)
	}
	if session["completed"] != true || session["answered_count"].(float64) != 2 {
		t.Errorf("session payload: %v", session)
	}
}

func TestStartRejectsBadInput(t *testing.T) {
	r := testRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/interview/start", map[string]string{})
	if w.Code != http.StatusBadRequest {
		t.Errorf("empty name: want 400, got %d", w.Code)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/interview/start", strings.NewReader("{not json"))
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("bad json: want 400, got %d", w2.Code)
	}
}

func TestUnknownSessionIsNotFound(t *testing.T) {
	r := testRouter(t)

	w, _ := doJSON(t, r, http.MethodPost, "/api/interview/submit-answer", map[string]string{
		"session_id": "no-such-session",
		"answer":     "a",
	})
	if w.Code != http.StatusNotFound {
		t.Errorf("submit: want 404, got %d", w.Code)
	}

	w2, _ := doJSON(t, r, http.MethodGet, "/api/interview/sessions/no-such-session", nil)
	if w2.Code != http.StatusNotFound {
		t.Errorf("session: want 404, got %d", w2.Code)
	}
}

func TestSubmitAfterCompletionConflicts(t *testing.T) {
	r := testRouter(t)

	_, start := doJSON(t, r, http.MethodPost, "/api/interview/start", map[string]string{"candidate_name": "Grace"})
	sessionID := start["session_id"].(string)

	for _, answer := range []string{"a", "done"} {
		w, _ := doJSON(t, r, http.MethodPost, "/api/interview/submit-answer", map[string]string{
			"session_id": sessionID,
			"answer":     answer,
		})
		if w.Code != http.StatusOK {
			t.Fatalf("submit %q: status %d", answer, w.Code)
		}
	}

	w, _ := doJSON(t, r, http.MethodPost, "/api/interview/submit-answer", map[string]string{
		"session_id": sessionID,
		"answer":     "late",
	})
	if w.Code != http.StatusConflict {
		t.Errorf("late submit: want 409, got %d", w.Code)
	}
}
