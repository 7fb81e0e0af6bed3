// Package interview owns the session state machine: one candidate's run
// through a fixed, pre-sampled question sequence, the registry that stores
// live sessions, and the report built when a session completes.
package interview

import (
	"time"

	"github.com/prepdesk/interviewd/internal/evaluate"
	"github.com/prepdesk/interviewd/internal/question"
)

// AnsweredQuestion records one submitted answer with its evaluation.
// Append-only within a session.
type AnsweredQuestion struct {
	Question   question.Question   `json:"question"`
	Answer     string              `json:"answer"`
	Evaluation evaluate.Evaluation `json:"evaluation"`
	AnsweredAt time.Time           `json:"answered_at"`
}

// Session is one candidate's interview run. Selected is fixed at creation;
// CurrentIndex == len(Answered) at all times; once EndedAt is set the
// session is terminal.
type Session struct {
	ID            string              `json:"id"`
	CandidateName string              `json:"candidate_name"`
	Selected      []question.Question `json:"selected_questions"`
	CurrentIndex  int                 `json:"current_index"`
	Answered      []AnsweredQuestion  `json:"answered"`
	StartedAt     time.Time           `json:"started_at"`
	EndedAt       *time.Time          `json:"ended_at,omitempty"`

	// Report is the cached final report, set at completion. Derived state:
	// registries must not persist it, it is always recomputable from the
	// fields above.
	Report *Report `json:"-"`
}

// Completed reports whether the session is terminal.
func (s *Session) Completed() bool {
	return s.EndedAt != nil
}

// Clone returns a deep copy so registry snapshots cannot alias live state.
func (s *Session) Clone() Session {
	cp := *s
	cp.Selected = append([]question.Question(nil), s.Selected...)
	cp.Answered = append([]AnsweredQuestion(nil), s.Answered...)
	if s.EndedAt != nil {
		t := *s.EndedAt
		cp.EndedAt = &t
	}
	return cp
}

// QuestionView is the candidate-facing projection of a question: it never
// carries the correct choice or the evaluation criteria.
type QuestionView struct {
	Number     int               `json:"question_number"`
	Total      int               `json:"total_questions"`
	ID         string            `json:"id"`
	Text       string            `json:"text"`
	Type       question.Type     `json:"type"`
	Difficulty string            `json:"difficulty,omitempty"`
	Category   string            `json:"category,omitempty"`
	Options    []question.Option `json:"options,omitempty"`
}

func viewOf(q question.Question, number, total int) QuestionView {
	return QuestionView{
		Number:     number,
		Total:      total,
		ID:         q.ID,
		Text:       q.Text,
		Type:       q.Type,
		Difficulty: q.Difficulty,
		Category:   q.Category,
		Options:    q.Options,
	}
}

// StartResult is returned when a session is created.
type StartResult struct {
	SessionID      string       `json:"session_id"`
	Greeting       string       `json:"message"`
	Question       QuestionView `json:"current_question"`
	TotalQuestions int          `json:"total_questions"`
}

// SubmitResult is returned for each submitted answer: either the next
// question with interim feedback, or the final report.
type SubmitResult struct {
	Completed  bool
	Evaluation evaluate.Evaluation
	Next       *QuestionView
	Report     *Report
}

// ProgressView is a read-only snapshot of a session for status queries.
type ProgressView struct {
	SessionID      string        `json:"session_id"`
	CandidateName  string        `json:"candidate_name"`
	Completed      bool          `json:"completed"`
	AnsweredCount  int           `json:"answered_count"`
	TotalQuestions int           `json:"total_questions"`
	StartedAt      time.Time     `json:"started_at"`
	EndedAt        *time.Time    `json:"ended_at,omitempty"`
	Current        *QuestionView `json:"current_question,omitempty"`
}
