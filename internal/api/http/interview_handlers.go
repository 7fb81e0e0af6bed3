package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/prepdesk/interviewd/internal/interview"
)

// StartInterviewHandler creates a session and returns the first question.
func StartInterviewHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			CandidateName string `json:"candidate_name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.CandidateName == "" {
			http.Error(w, "candidate_name required", http.StatusBadRequest)
			return
		}
		res, err := svc.Start(r.Context(), req.CandidateName)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, map[string]any{
			"session_id":       res.SessionID,
			"message":          res.Greeting,
			"current_question": res.Question,
			"question_number":  res.Question.Number,
			"total_questions":  res.TotalQuestions,
		})
	}
}

// SubmitAnswerHandler applies one answer and returns either interim feedback
// with the next question, or the final report.
func SubmitAnswerHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			SessionID string `json:"session_id"`
			Answer    string `json:"answer"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
		if req.SessionID == "" {
			http.Error(w, "session_id required", http.StatusBadRequest)
			return
		}
		res, err := svc.SubmitAnswer(r.Context(), req.SessionID, req.Answer)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		if res.Completed {
			writeJSON(w, map[string]any{
				"status": "completed",
				"report": res.Report,
			})
			return
		}
		writeJSON(w, map[string]any{
			"status":          "continue",
			"feedback":        res.Evaluation.Feedback,
			"score":           res.Evaluation.Score,
			"next_question":   res.Next,
			"question_number": res.Next.Number,
			"total_questions": res.Next.Total,
		})
	}
}

// GetSessionHandler returns a session progress snapshot.
func GetSessionHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		pv, err := svc.Progress(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, pv)
	}
}

// GetReportHandler returns the final report for a completed session.
func GetReportHandler(svc *interview.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		report, err := svc.Report(r.Context(), id)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, report)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps the caller-visible error taxonomy onto HTTP status
// codes. Evaluator failures never reach here; they are absorbed into the
// fallback evaluation upstream.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, interview.ErrSessionNotFound):
		http.Error(w, "session not found", http.StatusNotFound)
	case errors.Is(err, interview.ErrSessionAlreadyCompleted):
		http.Error(w, "session already completed", http.StatusConflict)
	case errors.Is(err, interview.ErrSubmissionSuperseded):
		http.Error(w, "a concurrent answer was already recorded for this question", http.StatusConflict)
	case errors.Is(err, interview.ErrSessionNotCompleted):
		http.Error(w, "session not completed yet", http.StatusConflict)
	case errors.Is(err, interview.ErrInsufficientQuestions):
		http.Error(w, "question bank cannot cover the configured interview", http.StatusInternalServerError)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
