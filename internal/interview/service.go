package interview

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/prepdesk/interviewd/internal/evaluate"
	"github.com/prepdesk/interviewd/internal/question"
)

// Service drives the interview state machine: it creates sessions with a
// freshly sampled question sequence and applies answer submissions.
type Service struct {
	bank       *question.Bank
	registry   Registry
	dispatcher *evaluate.Dispatcher

	mcqCount  int
	openCount int

	now   func() time.Time
	newID func() string
}

// NewService wires the orchestrator. mcqCount and openCount fix the session
// shape for this process.
func NewService(bank *question.Bank, registry Registry, dispatcher *evaluate.Dispatcher, mcqCount, openCount int) *Service {
	return &Service{
		bank:       bank,
		registry:   registry,
		dispatcher: dispatcher,
		mcqCount:   mcqCount,
		openCount:  openCount,
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// Start creates a session, samples its question sequence and returns the
// first question. Fails only when the bank cannot cover the configured
// counts.
func (s *Service) Start(ctx context.Context, candidateName string) (*StartResult, error) {
	if s.mcqCount+s.openCount <= 0 {
		return nil, fmt.Errorf("no questions configured: %w", ErrInsufficientQuestions)
	}
	selected, err := s.bank.Sample(s.mcqCount, s.openCount)
	if err != nil {
		return nil, err
	}

	sess := &Session{
		ID:            s.newID(),
		CandidateName: candidateName,
		Selected:      selected,
		StartedAt:     s.now(),
	}
	if err := s.registry.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("register session: %w", err)
	}

	total := len(selected)
	return &StartResult{
		SessionID:      sess.ID,
		Greeting:       greeting(candidateName, total),
		Question:       viewOf(selected[0], 1, total),
		TotalQuestions: total,
	}, nil
}

// SubmitAnswer evaluates the answer to the session's current question,
// records it and advances. The evaluator call runs outside the session lock;
// before the result is applied the session must still be active and at the
// same index, otherwise nothing is recorded and ErrSubmissionSuperseded (or
// ErrSessionAlreadyCompleted) is returned. Completion of an already-started
// evaluation is not rolled back by a departed caller: delivery here is
// at-most-once per submission.
func (s *Service) SubmitAnswer(ctx context.Context, sessionID, answer string) (*SubmitResult, error) {
	snap, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if snap.Completed() {
		return nil, ErrSessionAlreadyCompleted
	}

	idx := snap.CurrentIndex
	current := snap.Selected[idx]

	// Possibly slow (network). Deliberately out of the session lock.
	ev := s.dispatcher.Evaluate(ctx, current, answer)

	var result SubmitResult
	err = s.registry.Update(ctx, sessionID, func(sess *Session) error {
		if sess.Completed() {
			return ErrSessionAlreadyCompleted
		}
		if sess.CurrentIndex != idx {
			return ErrSubmissionSuperseded
		}

		sess.Answered = append(sess.Answered, AnsweredQuestion{
			Question:   current,
			Answer:     answer,
			Evaluation: ev,
			AnsweredAt: s.now(),
		})
		sess.CurrentIndex++

		total := len(sess.Selected)
		if sess.CurrentIndex == total {
			ended := s.now()
			sess.EndedAt = &ended
			report := BuildReport(sess)
			sess.Report = &report
			result = SubmitResult{Completed: true, Evaluation: ev, Report: &report}
			return nil
		}

		next := viewOf(sess.Selected[sess.CurrentIndex], sess.CurrentIndex+1, total)
		result = SubmitResult{Evaluation: ev, Next: &next}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// Progress returns a read-only view of a session.
func (s *Service) Progress(ctx context.Context, sessionID string) (*ProgressView, error) {
	sess, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	total := len(sess.Selected)
	pv := &ProgressView{
		SessionID:      sess.ID,
		CandidateName:  sess.CandidateName,
		Completed:      sess.Completed(),
		AnsweredCount:  len(sess.Answered),
		TotalQuestions: total,
		StartedAt:      sess.StartedAt,
		EndedAt:        sess.EndedAt,
	}
	if !sess.Completed() && sess.CurrentIndex < total {
		v := viewOf(sess.Selected[sess.CurrentIndex], sess.CurrentIndex+1, total)
		pv.Current = &v
	}
	return pv, nil
}

// Report returns the final report for a completed session, recomputing it
// when the cached copy is gone (e.g. a registry that does not persist
// derived state).
func (s *Service) Report(ctx context.Context, sessionID string) (*Report, error) {
	sess, err := s.registry.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !sess.Completed() {
		return nil, fmt.Errorf("session %s still active: %w", sessionID, ErrSessionNotCompleted)
	}
	if sess.Report != nil {
		return sess.Report, nil
	}
	report := BuildReport(&sess)
	return &report, nil
}

func greeting(candidateName string, total int) string {
	return fmt.Sprintf("Hello %s! Welcome to the mock interview. I'll ask you %d questions to assess your skills. Let's begin!", candidateName, total)
}
